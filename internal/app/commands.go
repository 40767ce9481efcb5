package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavelet/internal/loader"
)

// FetchCmd runs a load request off the event loop.
func FetchCmd(ctx context.Context, l *loader.Loader, req loader.Request) tea.Cmd {
	return func() tea.Msg {
		return LoadedMsg{Result: l.Fetch(ctx, req)}
	}
}
