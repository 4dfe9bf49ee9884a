package ui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator/internal/grid"
	"github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator/internal/tile"
)

// Preview is an interactive board of tile variants. The cursor is a grid
// walker: arrows step across the board, w/s/a/d walk relative to its
// heading and ,/. turn it.
type Preview struct {
	screen   *Screen
	renderer *Renderer
	variants []tile.Variant
	cursor   *grid.Walker
	running  bool
}

// NewPreview creates a preview of variants on screen.
func NewPreview(screen *Screen, variants []tile.Variant) *Preview {
	p := &Preview{
		screen:   screen,
		renderer: NewRenderer(screen),
		variants: variants,
		running:  true,
	}
	p.cursor = grid.NewWalker(grid.Cell{}, grid.North, p.onBoard)
	return p
}

// Selected returns the index of the highlighted variant.
func (p *Preview) Selected() int {
	return boardIndex(p.cursor.Cell)
}

// Heading returns the direction the cursor faces.
func (p *Preview) Heading() grid.Heading {
	return p.cursor.Heading
}

// boardIndex maps a board cell to a variant index. North is up on screen,
// so rows grow towards negative Y.
func boardIndex(c grid.Cell) int {
	return c.X - c.Y*boardColumns
}

func (p *Preview) onBoard(c grid.Cell) bool {
	if c.X < 0 || c.X >= boardColumns || c.Y > 0 {
		return false
	}
	return boardIndex(c) < len(p.variants)
}

// Run draws the board and processes input until the user quits or ctx is
// done. The screen is not closed.
func (p *Preview) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			p.screen.Interrupt()
		case <-done:
		}
	}()

	for p.running {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.draw()
		p.handleInput()
	}
	return nil
}

func (p *Preview) draw() {
	selected := p.Selected()
	p.renderer.Render(p.variants, selected)
	if len(p.variants) == 0 {
		return
	}

	pos := p.cursor.WorldPosition(p.variants[selected].Size)
	msg := fmt.Sprintf("facing %s (%g deg) at x=%g z=%g  [w/s/a/d] walk  [,/.] turn",
		p.cursor.Heading, p.cursor.Yaw(), pos.X(), pos.Z())
	p.renderer.RenderMessage(msg, boardRows(len(p.variants))*cellHeight+1)
	p.screen.Show()
}

// handleInput processes a single input event.
func (p *Preview) handleInput() {
	switch ev := p.screen.PollEvent().(type) {
	case *tcell.EventKey:
		p.handleKeyEvent(ev)
	case *tcell.EventResize:
		p.screen.Sync()
	case nil:
		// Screen finalized.
		p.running = false
	}
}

func (p *Preview) handleKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		p.running = false
	case tcell.KeyUp:
		p.step(grid.North)
	case tcell.KeyDown:
		p.step(grid.South)
	case tcell.KeyLeft:
		p.step(grid.West)
	case tcell.KeyRight:
		p.step(grid.East)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			p.running = false
		case 'w':
			p.cursor.Forward()
		case 's':
			p.cursor.Back()
		case 'a':
			p.cursor.StrafeLeft()
		case 'd':
			p.cursor.StrafeRight()
		case ',':
			p.cursor.TurnLeft()
		case '.':
			p.cursor.TurnRight()
		}
	}
}

// step moves the cursor one cell towards h without turning it.
func (p *Preview) step(h grid.Heading) {
	p.cursor.TryWalk(p.cursor.Cell.Add(grid.Offset(h)))
}
