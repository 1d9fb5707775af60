// Package ogimage draws the social share card served as the OpenGraph and
// Twitter preview image.
package ogimage

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	Width  = 1200
	Height = 630
)

// Card is the content of a share card.
type Card struct {
	Name  string
	Role  string
	Chips []string
}

var (
	background = color.NRGBA{R: 0x03, G: 0x07, B: 0x11, A: 0xff}
	dot        = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x0a}
	glassFill  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x0d}
	glassEdge  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x1a}
	nameColor  = color.NRGBA{R: 0x38, G: 0xb2, B: 0xac, A: 0xff}
	roleColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xe6}
	chipFill   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x1a}
	chipText   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xcc}
)

var (
	fontsOnce sync.Once
	fontsErr  error
	regular   *truetype.Font
	bold      *truetype.Font
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if regular, fontsErr = truetype.Parse(goregular.TTF); fontsErr != nil {
			fontsErr = fmt.Errorf("failed to parse regular font: %w", fontsErr)
			return
		}
		if bold, fontsErr = truetype.Parse(gobold.TTF); fontsErr != nil {
			fontsErr = fmt.Errorf("failed to parse bold font: %w", fontsErr)
		}
	})
	return fontsErr
}

func face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Render encodes the card as a PNG into w.
func Render(w io.Writer, card Card) error {
	if err := loadFonts(); err != nil {
		return err
	}
	dc := gg.NewContext(Width, Height)

	dc.SetColor(background)
	dc.Clear()

	// Two offset dot grids, 100px apart.
	dc.SetColor(dot)
	for y := 0.0; y < Height; y += 100 {
		for x := 0.0; x < Width; x += 100 {
			dc.DrawCircle(x+25, y+25, 2)
			dc.DrawCircle(x+75, y+75, 2)
		}
	}
	dc.Fill()

	nameFace := face(bold, 60)
	roleFace := face(bold, 40)
	chipFace := face(regular, 24)

	dc.SetFontFace(nameFace)
	nameW, nameH := dc.MeasureString(card.Name)
	dc.SetFontFace(roleFace)
	roleW, roleH := dc.MeasureString(card.Role)

	dc.SetFontFace(chipFace)
	const chipPadX, chipH, chipGap = 24.0, 44.0, 16.0
	chipWidths := make([]float64, len(card.Chips))
	chipsW := 0.0
	for i, c := range card.Chips {
		cw, _ := dc.MeasureString(c)
		chipWidths[i] = cw + chipPadX*2
		chipsW += chipWidths[i]
	}
	if n := len(card.Chips); n > 1 {
		chipsW += chipGap * float64(n-1)
	}

	const padX, padY = 80.0, 40.0
	contentW := max(nameW, roleW, chipsW)
	contentH := nameH + 20 + roleH + 20 + 12 + chipH
	panelW := min(contentW+padX*2, Width-40)
	panelH := contentH + padY*2
	panelX := (Width - panelW) / 2
	panelY := (Height - panelH) / 2

	dc.DrawRoundedRectangle(panelX, panelY, panelW, panelH, 24)
	dc.SetColor(glassFill)
	dc.FillPreserve()
	dc.SetColor(glassEdge)
	dc.SetLineWidth(2)
	dc.Stroke()

	cx := float64(Width) / 2
	y := panelY + padY

	dc.SetFontFace(nameFace)
	dc.SetColor(nameColor)
	dc.DrawStringAnchored(card.Name, cx, y+nameH/2, 0.5, 0.5)
	y += nameH + 20

	dc.SetFontFace(roleFace)
	dc.SetColor(roleColor)
	dc.DrawStringAnchored(card.Role, cx, y+roleH/2, 0.5, 0.5)
	y += roleH + 20 + 12

	dc.SetFontFace(chipFace)
	x := cx - chipsW/2
	for i, c := range card.Chips {
		dc.DrawRoundedRectangle(x, y, chipWidths[i], chipH, 16)
		dc.SetColor(chipFill)
		dc.Fill()
		dc.SetColor(chipText)
		dc.DrawStringAnchored(c, x+chipWidths[i]/2, y+chipH/2, 0.5, 0.5)
		x += chipWidths[i] + chipGap
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// Cache renders a card once and hands out the same bytes afterwards.
type Cache struct {
	card Card

	once sync.Once
	png  []byte
	err  error
}

func NewCache(card Card) *Cache {
	return &Cache{card: card}
}

func (c *Cache) PNG() ([]byte, error) {
	c.once.Do(func() {
		var buf bytes.Buffer
		if c.err = Render(&buf, c.card); c.err == nil {
			c.png = buf.Bytes()
		}
	})
	return c.png, c.err
}
