package export

import (
	"fmt"
	"image/color"
	"os"
	"strings"
)

const DefaultBackground = "#0a0a0a"

// FrameToSVG renders the recorded frame as an SVG document, in draw order.
func FrameToSVG(rec *Recorder, background string) string {
	if rec == nil {
		return ""
	}

	var sb strings.Builder

	// SVG header
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, rec.Width, rec.Height, rec.Width, rec.Height, background))

	for _, op := range rec.Ops {
		switch op.Kind {
		case OpCircle:
			sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.3f"/>
`, op.X0, op.Y0, op.R, hex(op.Color), opacity(op.Color)))
		case OpLine:
			sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="%.3f" stroke-width="%.1f"/>
`, op.X0, op.Y0, op.X1, op.Y1, hex(op.Color), opacity(op.Color), op.Width))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func WriteSVG(path string, rec *Recorder, background string) error {
	return os.WriteFile(path, []byte(FrameToSVG(rec, background)), 0644)
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func opacity(c color.NRGBA) float64 {
	return float64(c.A) / 255
}
