//go:build cgo

package vad

import "github.com/visvasity/webrtcvad"

type detector struct {
	vad *webrtcvad.VAD
}

func newDetector(threshold float64) (*detector, error) {
	vad, err := webrtcvad.New()
	if err != nil {
		return nil, err
	}
	// WebRTC VAD modes: 0 (quality) .. 3 (aggressive).
	if err := vad.SetMode(thresholdToMode(threshold)); err != nil {
		return nil, err
	}
	return &detector{vad: vad}, nil
}

func (d *detector) Process(sampleRate int, frame []byte) (bool, error) {
	return d.vad.Process(sampleRate, frame)
}

func thresholdToMode(threshold float64) int {
	switch {
	case threshold < 0.25:
		return 0
	case threshold < 0.5:
		return 1
	case threshold < 0.75:
		return 2
	default:
		return 3
	}
}
