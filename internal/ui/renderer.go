package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator/internal/tile"
)

// Board layout: 4x4 variants, each a box with its name underneath.
const (
	boardColumns = 4
	boxWidth     = 9
	boxHeight    = 5
	cellWidth    = 14
	cellHeight   = boxHeight + 2
)

// Glyphs used in the plan view.
const (
	GlyphCorner = '+'
	GlyphWall   = '#'
	GlyphFloor  = '.'
	GlyphOpen   = ' '
)

// Renderer handles drawing the variant board to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// CellOrigin returns the top-left corner of the box for the variant at index i.
func CellOrigin(i int) (x, y int) {
	return (i % boardColumns) * cellWidth, (i / boardColumns) * cellHeight
}

// Render draws every variant as a plan-view box and highlights selected.
func (r *Renderer) Render(variants []tile.Variant, selected int) {
	r.screen.Clear()

	for i, v := range variants {
		x, y := CellOrigin(i)
		style := tcell.StyleDefault.Foreground(tcell.ColorGray)
		wallStyle := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
		if i == selected {
			style = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
			wallStyle = style
		}
		r.drawBox(x, y, v.Mask, style, wallStyle)
		r.drawText(x, y+boxHeight, v.Name, style)
	}

	if selected >= 0 && selected < len(variants) {
		v := variants[selected]
		msg := fmt.Sprintf("%s  mask=%d  vertices=%d  triangles=%d  [arrows] select  [q] quit",
			v.Name, v.Mask, v.Geometry.VertexCount(), v.Geometry.TriangleCount())
		r.RenderMessage(msg, boardRows(len(variants))*cellHeight)
	}

	r.screen.Show()
}

// drawBox draws a tile seen from above; north is up.
func (r *Renderer) drawBox(x0, y0 int, mask tile.WallMask, style, wallStyle tcell.Style) {
	for dy := 0; dy < boxHeight; dy++ {
		for dx := 0; dx < boxWidth; dx++ {
			glyph, s := rune(GlyphFloor), style
			top, bottom := dy == 0, dy == boxHeight-1
			left, right := dx == 0, dx == boxWidth-1

			switch {
			case (top || bottom) && (left || right):
				glyph, s = GlyphCorner, wallStyle
			case top:
				glyph, s = sideGlyph(mask, tile.North), wallStyle
			case bottom:
				glyph, s = sideGlyph(mask, tile.South), wallStyle
			case left:
				glyph, s = sideGlyph(mask, tile.West), wallStyle
			case right:
				glyph, s = sideGlyph(mask, tile.East), wallStyle
			}
			r.screen.SetContent(x0+dx, y0+dy, glyph, s)
		}
	}
}

func sideGlyph(mask tile.WallMask, d tile.Direction) rune {
	if mask.Has(d) {
		return GlyphWall
	}
	return GlyphOpen
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		r.screen.SetContent(x+i, y, ch, style)
	}
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.drawText(0, y, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

func boardRows(n int) int {
	return (n + boardColumns - 1) / boardColumns
}
