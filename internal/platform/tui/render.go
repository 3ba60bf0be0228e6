package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bricks/internal/core"
	"github.com/vovakirdan/tui-bricks/internal/render"
)

// Glyphs used by the rasterizer.
const (
	brickEdge   = '▕'
	outlineDot  = '·'
	imageShade  = '▒'
	cellPadding = ' '
)

// viewport maps the arena's pixel space onto a grid of terminal cells.
// The arena is drawn from the top-left cell, stretched to fill the grid.
type viewport struct {
	cols, rows     int
	arenaW, arenaH float64
}

// resize sets the grid size, never below one cell.
func (v *viewport) resize(cols, rows int) {
	v.cols, v.rows = max(cols, 1), max(rows, 1)
}

// scale returns the arena pixels covered by one cell.
func (v *viewport) scale() (sx, sy float64) {
	return v.arenaW / float64(v.cols), v.arenaH / float64(v.rows)
}

// pointer converts a mouse cell position into pointer coordinates: arena
// pixels at the cell's center.
func (v *viewport) pointer(col, row int) core.PointerEvent {
	sx, sy := v.scale()
	return core.PointerEvent{
		X: (float64(col) + 0.5) * sx,
		Y: (float64(row) + 0.5) * sy,
	}
}

// root reports where the arena sits in pointer coordinates.
func (v *viewport) root() (core.Bounds, bool) {
	if v.arenaW <= 0 || v.arenaH <= 0 {
		return core.Bounds{}, false
	}
	return core.Bounds{W: v.arenaW, H: v.arenaH}, true
}

// cells returns the half-open cell rectangle covered by b, at least one cell
// in each direction.
func (v *viewport) cells(b core.Bounds) (x0, y0, x1, y1 int) {
	sx, sy := v.scale()
	x0 = int(math.Floor(b.X / sx))
	y0 = int(math.Floor(b.Y / sy))
	x1 = max(int(math.Ceil((b.X+b.W)/sx)), x0+1)
	y1 = max(int(math.Ceil((b.Y+b.H)/sy)), y0+1)
	return x0, y0, x1, y1
}

// Rasterize draws sprites, already in paint order, into dst.
func Rasterize(dst *core.Screen, sprites []render.Entry, v viewport) {
	dst.Clear()
	for _, e := range sprites {
		switch sp := e.Sprite.(type) {
		case render.ColorSprite:
			if sp.Color.IsTransparent() {
				continue
			}
			x0, y0, x1, y1 := v.cells(sp.Bounds)
			dst.FillRect(x0, y0, x1-x0, y1-y0, core.Cell{Rune: cellPadding, BG: sp.Color})
		case render.BorderedSprite:
			drawBordered(dst, sp, v)
		case render.ImageSprite:
			x0, y0, x1, y1 := v.cells(sp.Bounds)
			dst.FillRect(x0, y0, x1-x0, y1-y0, core.Cell{Rune: imageShade, FG: core.ColorGray})
		default:
			panic(fmt.Sprintf("tui: unhandled sprite %T", sp))
		}
	}
}

// drawBordered fills the sprite and marks its border. Filled sprites get a
// border glyph on their right column so neighbours stay distinguishable;
// unfilled ones are outlined over whatever is below.
func drawBordered(dst *core.Screen, sp render.BorderedSprite, v viewport) {
	x0, y0, x1, y1 := v.cells(sp.Bounds)

	if !sp.Fill.IsTransparent() {
		dst.FillRect(x0, y0, x1-x0, y1-y0, core.Cell{Rune: cellPadding, BG: sp.Fill})
		if sp.Border.IsTransparent() || x1-x0 < 2 {
			return
		}
		for y := y0; y < y1; y++ {
			dst.SetCell(x1-1, y, core.Cell{Rune: brickEdge, FG: sp.Border, BG: sp.Fill})
		}
		return
	}

	if sp.Border.IsTransparent() {
		return
	}
	mark := func(x, y int) {
		c := dst.GetCell(x, y)
		c.Rune, c.FG = outlineDot, sp.Border
		dst.SetCell(x, y, c)
	}
	for x := x0; x < x1; x++ {
		mark(x, y0)
		mark(x, y1-1)
	}
	for y := y0; y < y1; y++ {
		mark(x0, y)
		mark(x1-1, y)
	}
}

// cellStyle is the color pair a run of cells is rendered with.
type cellStyle struct {
	fg, bg core.Color
}

// styles caches lipgloss styles per color pair.
type styles map[cellStyle]lipgloss.Style

func (st styles) get(k cellStyle) lipgloss.Style {
	if s, ok := st[k]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if !k.fg.IsTransparent() {
		s = s.Foreground(lipgloss.Color(string(k.fg)))
	}
	if !k.bg.IsTransparent() {
		s = s.Background(lipgloss.Color(string(k.bg)))
	}
	st[k] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	return renderScreen(s, make(styles))
}

func renderScreen(s *core.Screen, cache styles) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			key := cellStyle{fg: cell.FG, bg: cell.BG}

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (cellStyle{fg: cell.FG, bg: cell.BG}) != key {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if key == (cellStyle{}) {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(cache.get(key).Render(run.String()))
		}
	}
	return sb.String()
}

// centerText pads text on the left to center it in width columns.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
