//go:build !cgo

package engine

import "errors"

// New fails on builds without cgo: the whisper.cpp backend is the only
// inference implementation.
func New(settings Settings) (Engine, error) {
	return nil, errors.New("whisper.cpp backend unavailable (cgo disabled)")
}
