package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// ApplyGradient renders text with a horizontal color gradient, one color
// step per grapheme cluster.
func ApplyGradient(text string, from, to lipgloss.Color) string {
	if text == "" {
		return ""
	}

	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	if len(clusters) == 1 {
		return lipgloss.NewStyle().Foreground(from).Render(text)
	}

	var b strings.Builder
	for i, c := range Blend(len(clusters), from, to) {
		b.WriteString(lipgloss.NewStyle().Foreground(c).Render(clusters[i]))
	}
	return b.String()
}

// Blend returns size colors from from to to, blended in HCL space for a
// perceptually even ramp. Non-hex colors blend as neutral gray.
func Blend(size int, from, to lipgloss.Color) []lipgloss.Color {
	if size <= 0 {
		return nil
	}
	if size == 1 {
		return []lipgloss.Color{from}
	}

	c1, _ := colorful.MakeColor(toColor(from))
	c2, _ := colorful.MakeColor(toColor(to))

	colors := make([]lipgloss.Color, size)
	for i := range size {
		t := float64(i) / float64(size-1)
		colors[i] = lipgloss.Color(c1.BlendHcl(c2, t).Clamped().Hex())
	}
	return colors
}

func toColor(c lipgloss.Color) color.Color {
	hex := string(c)
	if len(hex) == 7 && hex[0] == '#' {
		if col, err := colorful.Hex(hex); err == nil {
			return col
		}
	}
	return color.RGBA{R: 128, G: 128, B: 128, A: 255}
}
