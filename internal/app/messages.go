package app

import (
	"github.com/llehouerou/wavelet/internal/loader"
)

// LoadedMsg carries the outcome of a source fetch. Results whose token is no
// longer the latest are dropped in Update.
type LoadedMsg struct {
	loader.Result
}
