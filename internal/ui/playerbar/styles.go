package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavelet/internal/ui/styles"
)

var barStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(styles.T().Border)

func titleStyle() lipgloss.Style { return styles.T().S().Title }

func artistStyle() lipgloss.Style { return styles.T().S().Muted }

func buttonStyle() lipgloss.Style { return styles.T().S().Playing }

func timeStyle() lipgloss.Style { return styles.T().S().Muted }

func errorStyle() lipgloss.Style { return styles.T().S().Error }

func progressBarEmpty() lipgloss.Style { return styles.T().S().Subtle }
