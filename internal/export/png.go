package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/san-kum/fboinator/internal/chart"
)

// Rasterizer draws a scene onto an opaque white bitmap.
type Rasterizer struct {
	// FontData is a TrueType font; the Go regular font when nil.
	FontData []byte
}

// PNG rasterizes with the default font.
func PNG(scene *chart.Scene) ([]byte, error) {
	return Rasterizer{}.PNG(scene)
}

// PNG decodes the font first and only draws once decoding succeeded.
func (r Rasterizer) PNG(scene *chart.Scene) ([]byte, error) {
	if scene == nil {
		return nil, ErrNoData
	}
	start := time.Now()
	defer func() {
		log.WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("elements", len(scene.Elements)).
			Debug("png rasterization finished")
	}()

	faces, err := r.decode()
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(int(scene.Width), int(scene.Height))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	for _, e := range scene.Elements {
		drawElement(dc, faces, e)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

type faceCache struct {
	font  *truetype.Font
	sizes map[float64]font.Face
}

func (c *faceCache) face(size float64) font.Face {
	if f, ok := c.sizes[size]; ok {
		return f
	}
	f := truetype.NewFace(c.font, &truetype.Options{Size: size, Hinting: font.HintingFull})
	c.sizes[size] = f
	return f
}

func (r Rasterizer) decode() (*faceCache, error) {
	data := r.FontData
	if data == nil {
		data = goregular.TTF
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontDecode, err)
	}
	return &faceCache{font: f, sizes: make(map[float64]font.Face)}, nil
}

func setColor(dc *gg.Context, c chart.Color) {
	r, g, b, a := c.Floats()
	dc.SetRGBA(r, g, b, a)
}

func drawElement(dc *gg.Context, faces *faceCache, e chart.Element) {
	switch el := e.(type) {
	case chart.Rect:
		setColor(dc, el.Fill)
		dc.DrawRectangle(el.X, el.Y, el.W, el.H)
		dc.Fill()
	case chart.Line:
		setColor(dc, el.Stroke)
		dc.SetLineWidth(el.Width)
		dc.DrawLine(el.X1, el.Y1, el.X2, el.Y2)
		dc.Stroke()
	case chart.Polyline:
		if len(el.Points) == 0 {
			return
		}
		setColor(dc, el.Stroke)
		dc.SetLineWidth(el.Width)
		dc.SetLineJoin(gg.LineJoinRound)
		dc.MoveTo(el.Points[0].X, el.Points[0].Y)
		for _, p := range el.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.Stroke()
	case chart.Circle:
		setColor(dc, el.Fill)
		dc.DrawCircle(el.CX, el.CY, el.R)
		dc.Fill()
	case chart.Text:
		dc.SetFontFace(faces.face(el.Size))
		setColor(dc, el.Fill)
		ax := 0.0
		switch el.Anchor {
		case chart.AnchorMiddle:
			ax = 0.5
		case chart.AnchorEnd:
			ax = 1
		}
		if el.Rotate != 0 {
			dc.Push()
			dc.RotateAbout(gg.Radians(el.Rotate), el.X, el.Y)
			dc.DrawStringAnchored(el.Value, el.X, el.Y, ax, 0)
			dc.Pop()
			return
		}
		dc.DrawStringAnchored(el.Value, el.X, el.Y, ax, 0)
	}
}
