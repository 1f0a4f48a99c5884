//go:build !cgo

package record

import (
	"context"
	"errors"
)

func capture(ctx context.Context, opts Options) ([]int16, error) {
	return nil, errors.New("audio capture unavailable (cgo disabled)")
}

// Devices lists the names of available input devices.
func Devices() ([]string, error) {
	return nil, errors.New("audio capture unavailable (cgo disabled)")
}
