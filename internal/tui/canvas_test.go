package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanvasSetPacksBraille(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0, inkSeries0)
	c.Set(1, 3, inkSeries0)

	assert.Equal(t, rune(brailleBlank|0x1|0x80), c.Grid[0][0])
	assert.Equal(t, rune(brailleBlank), c.Grid[0][1])

	c.Set(-1, 0, inkSeries0)
	c.Set(4, 0, inkSeries0)
	c.Set(0, 4, inkSeries0)
	assert.Equal(t, rune(brailleBlank), c.Grid[0][1])
}

func TestCanvasInkPriority(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Set(0, 0, inkSeries2)
	c.Set(0, 1, inkGrid)
	assert.Equal(t, inkSeries2, c.Ink[0][0])

	c.Set(0, 2, inkMarker)
	assert.Equal(t, inkMarker, c.Ink[0][0])
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0, inkSeries1)
	for col := 0; col < 4; col++ {
		assert.Equal(t, rune(brailleBlank|0x1|0x8), c.Grid[0][col])
		assert.Equal(t, inkSeries1, c.Ink[0][col])
	}
}

func TestCanvasTextOverlay(t *testing.T) {
	c := NewCanvas(6, 2)
	c.PutText(1, 0, "abcd")
	c.PutText(0, 5, "hidden")

	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "bcd   ", lines[0])
	assert.Equal(t, "      ", lines[1])

	c.Clear()
	assert.Equal(t, "      ", c.Render(nil)[0])
}
