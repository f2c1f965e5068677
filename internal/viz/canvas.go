package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal cells are treated as CellWidth x CellHeight client pixels. Each
// cell shows two vertically stacked canvas pixels using a half block glyph,
// so one canvas pixel covers CellWidth x CellHeight/2 client pixels.
const (
	CellWidth  = 8
	CellHeight = 16
	halfBlock  = "▀"
)

// Canvas is a grid of colored pixels, two per terminal cell.
type Canvas struct {
	Width, Height int // in cells
	Pix           [][]string
	bg            string
}

func NewCanvas(w, h int, bg string) *Canvas {
	c := &Canvas{Width: max(w, 0), Height: max(h, 0), bg: bg}
	c.Pix = make([][]string, c.Height*2)
	for i := range c.Pix {
		c.Pix[i] = make([]string, c.Width)
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for y := range c.Pix {
		for x := range c.Pix[y] {
			c.Pix[y][x] = c.bg
		}
	}
}

// Set colors pixel (x, y); y counts half cells.
func (c *Canvas) Set(x, y int, color string) {
	if x < 0 || y < 0 || y >= len(c.Pix) || x >= c.Width {
		return
	}
	c.Pix[y][x] = color
}

func (c *Canvas) At(x, y int) string {
	if x < 0 || y < 0 || y >= len(c.Pix) || x >= c.Width {
		return ""
	}
	return c.Pix[y][x]
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, color string) {
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
		c.Set(x0, y0, color)
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

// String renders the canvas with one styled half block per cell. Runs of
// identical cells share one style call.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		top, bottom := c.Pix[row*2], c.Pix[row*2+1]
		for x := 0; x < c.Width; {
			end := x + 1
			for end < c.Width && top[end] == top[x] && bottom[end] == bottom[x] {
				end++
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top[x])).
				Background(lipgloss.Color(bottom[x]))
			b.WriteString(style.Render(strings.Repeat(halfBlock, end-x)))
			x = end
		}
		if row < c.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
