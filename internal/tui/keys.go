package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Toggle   key.Binding
	Model    key.Binding
	Annotate key.Binding
	Edit     key.Binding
	Leave    key.Binding
	SVG      key.Binding
	PNG      key.Binding
	CSV      key.Binding
	Reset    key.Binding
	Unzoom   key.Binding
	Left     key.Binding
	Right    key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Toggle, k.SVG, k.PNG, k.CSV, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Leave},
		{k.Toggle, k.Model, k.Annotate, k.Edit},
		{k.SVG, k.PNG, k.CSV, k.Reset},
		{k.Left, k.Right, k.ZoomIn, k.ZoomOut, k.Unzoom},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev field"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("1", "2", "3"),
		key.WithHelp("1/2/3", "show/hide"),
	),
	Model: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "growth model"),
	),
	Annotate: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "annotations on/off"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit annotations"),
	),
	Leave: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back to chart"),
	),
	SVG: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "svg"),
	),
	PNG: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "png"),
	),
	CSV: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "csv"),
	),
	Reset: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "reset inputs"),
	),
	Unzoom: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "reset zoom"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "pan left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "pan right"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "zoom out"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
