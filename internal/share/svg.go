package share

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/chainsim/internal/motion"
)

// TransformsToSVG draws the chain as rotated rects centered in a
// width x height viewBox.
func TransformsToSVG(transforms []motion.Transform, size motion.Size) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g transform="translate(%.1f %.1f)">
`, size.Width, size.Height, size.Width, size.Height, size.Width/2, size.Height/2)

	for _, t := range transforms {
		fmt.Fprintf(&sb, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.1f" fill="%s" transform="translate(%.2f %.2f) rotate(%.2f)"/>
`, -t.Width/2, -t.Height/2, t.Width, t.Height, t.Radius, t.Color, t.X, t.Y, t.Rotation)
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// PathToSVG draws the path one node took over a run, scaled to fit.
func PathToSVG(points []motion.Vec2, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, p := range points {
		// screen y grows downward like client coordinates
		x := (p.X - minX) / rangeX * float64(width)
		y := (p.Y - minY) / rangeY * float64(height)
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// WriteSVG writes svg to path.
func WriteSVG(path, svg string) Ack {
	if svg == "" {
		return fail("nothing to export")
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return fail("export failed: %v", err)
	}
	return ok("svg written to %s", path)
}
