package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// ink identifies what drew into a cell and picks the cell's color. A cell
// keeps the highest ink written to it.
type ink int8

const (
	inkNone ink = iota - 1
	inkGrid
	inkSeries0
	inkSeries1
	inkSeries2
	inkMarker
)

func seriesInk(i int) ink { return inkSeries0 + ink(i) }

// Canvas is a braille canvas with a color per cell and a text overlay.
// Sub-pixel size is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Ink           [][]ink
	Text          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Ink:    make([][]ink, h),
		Text:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Ink[i] = make([]ink, w)
		c.Text[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel (x, y) with ink k.
func (c *Canvas) Set(x, y int, k ink) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if k >= c.Ink[row][col] {
		c.Ink[row][col] = k
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Ink[i][j] = inkNone
			c.Text[i][j] = 0
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, k ink) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, k)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// PutText writes s centered on cell column col, clipped to the canvas.
func (c *Canvas) PutText(col, row int, s string) {
	if row < 0 || row >= c.Height {
		return
	}
	runes := []rune(s)
	start := col - len(runes)/2
	for i, r := range runes {
		x := start + i
		if x >= 0 && x < c.Width {
			c.Text[row][x] = r
		}
	}
}

// Render styles each cell by its ink; cells whose ink has no style print plain.
func (c *Canvas) Render(styles map[ink]lipgloss.Style) []string {
	lines := make([]string, c.Height)
	for row := range c.Grid {
		var b strings.Builder
		for col, r := range c.Grid[row] {
			if t := c.Text[row][col]; t != 0 {
				if st, ok := styles[inkMarker]; ok {
					b.WriteString(st.Render(string(t)))
				} else {
					b.WriteRune(t)
				}
				continue
			}
			if r == brailleBlank {
				b.WriteByte(' ')
				continue
			}
			st, ok := styles[c.Ink[row][col]]
			if !ok {
				b.WriteRune(r)
				continue
			}
			b.WriteString(st.Render(string(r)))
		}
		lines[row] = b.String()
	}
	return lines
}

// String renders without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, line := range c.Render(nil) {
		b.WriteString(line + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
