//go:build !cgo

package hal

import (
	"context"

	"github.com/rs/zerolog"
)

// WindowConfig controls the desktop window host.
type WindowConfig struct {
	Title         string
	Width, Height int
	Hz            int
	Libraries     []string
	Agent         string
}

func RunWindow(_ context.Context, _ NewApp, _ WindowConfig, _ zerolog.Logger) error {
	return ErrNoWindow
}
