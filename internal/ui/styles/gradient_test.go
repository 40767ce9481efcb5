package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestBlend(t *testing.T) {
	from := lipgloss.Color("#000000")
	to := lipgloss.Color("#ffffff")

	assert.Nil(t, Blend(0, from, to))
	assert.Equal(t, []lipgloss.Color{from}, Blend(1, from, to))

	colors := Blend(5, from, to)
	assert.Len(t, colors, 5)
	assert.Equal(t, lipgloss.Color("#000000"), colors[0])
	assert.Equal(t, lipgloss.Color("#ffffff"), colors[4])
}

func TestBlend_NonHexFallsBackToGray(t *testing.T) {
	colors := Blend(2, lipgloss.Color("240"), lipgloss.Color("240"))
	assert.Equal(t, lipgloss.Color("#808080"), colors[0])
}

func TestApplyGradient_KeepsText(t *testing.T) {
	out := ApplyGradient("━━━━", T().Primary, T().Secondary)
	assert.Equal(t, "━━━━", stripANSI(out))
	assert.Empty(t, ApplyGradient("", T().Primary, T().Secondary))
	assert.Equal(t, "x", stripANSI(ApplyGradient("x", T().Primary, T().Secondary)))
}

func stripANSI(s string) string {
	var out []rune
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && r == 'm':
			inEsc = false
		case !inEsc:
			out = append(out, r)
		}
	}
	return string(out)
}
