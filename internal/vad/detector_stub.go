//go:build !cgo

package vad

import "errors"

type detector struct{}

func newDetector(threshold float64) (*detector, error) {
	return nil, errors.New("webrtcvad unavailable (cgo disabled)")
}

func (d *detector) Process(sampleRate int, frame []byte) (bool, error) {
	return false, errors.New("webrtcvad unavailable (cgo disabled)")
}
