package vad

import (
	"time"

	"whisperd/internal/audio"
)

const frameMs = 30

// Params tunes the speech detector. Zero values fall back to Defaults.
type Params struct {
	// MinSilence is the gap below which two speech spans merge.
	MinSilence time.Duration
	// SpeechPad extends each detected span on both sides.
	SpeechPad time.Duration
	// Threshold sets detection aggressiveness in [0, 1]; higher values
	// discard more borderline audio.
	Threshold float64
}

// Defaults returns the parameters the daemon applies before inference.
func Defaults() Params {
	return Params{
		MinSilence: 300 * time.Millisecond,
		SpeechPad:  100 * time.Millisecond,
		Threshold:  0.5,
	}
}

// Filter drops non-speech audio from the clip. When the detector is
// unavailable (non-cgo builds) or the clip is too short to frame, the
// input is returned unchanged: the pre-filter must never fail a
// transcription.
func Filter(clip *audio.Clip, params Params) *audio.Clip {
	if clip == nil || len(clip.Samples) == 0 {
		return clip
	}
	if params == (Params{}) {
		params = Defaults()
	}

	detector, err := newDetector(params.Threshold)
	if err != nil {
		return clip
	}

	flags := speechFrames(detector, clip)
	if len(flags) == 0 {
		return clip
	}

	samplesPerFrame := clip.SampleRate * frameMs / 1000
	spans := speechSpans(flags, params, frameMs)
	if len(spans) == 0 {
		return &audio.Clip{Samples: nil, SampleRate: clip.SampleRate}
	}

	kept := make([]float32, 0, len(clip.Samples))
	for _, span := range spans {
		start := span.start * samplesPerFrame
		end := span.end * samplesPerFrame
		if end > len(clip.Samples) {
			end = len(clip.Samples)
		}
		if start >= end {
			continue
		}
		kept = append(kept, clip.Samples[start:end]...)
	}
	return &audio.Clip{Samples: kept, SampleRate: clip.SampleRate}
}

// speechFrames classifies fixed-size frames of the clip. Frames the
// detector cannot judge are skipped, matching a partial trailing frame.
func speechFrames(d *detector, clip *audio.Clip) []bool {
	samplesPerFrame := clip.SampleRate * frameMs / 1000
	if samplesPerFrame <= 0 {
		return nil
	}
	flags := make([]bool, 0, len(clip.Samples)/samplesPerFrame)
	for offset := 0; offset+samplesPerFrame <= len(clip.Samples); offset += samplesPerFrame {
		frame := audio.Float32ToPCM16(clip.Samples[offset : offset+samplesPerFrame])
		isSpeech, err := d.Process(clip.SampleRate, frame)
		if err != nil {
			continue
		}
		flags = append(flags, isSpeech)
	}
	return flags
}

type span struct {
	start int // inclusive frame index
	end   int // exclusive frame index
}

// speechSpans turns per-frame speech flags into padded frame ranges,
// merging spans separated by less than the minimum silence.
func speechSpans(flags []bool, params Params, frameDurMs int) []span {
	minSilenceFrames := int(params.MinSilence.Milliseconds()) / frameDurMs
	padFrames := int(params.SpeechPad.Milliseconds()) / frameDurMs

	var raw []span
	start := -1
	for i, speech := range flags {
		switch {
		case speech && start < 0:
			start = i
		case !speech && start >= 0:
			raw = append(raw, span{start: start, end: i})
			start = -1
		}
	}
	if start >= 0 {
		raw = append(raw, span{start: start, end: len(flags)})
	}
	if len(raw) == 0 {
		return nil
	}

	merged := raw[:1]
	for _, next := range raw[1:] {
		last := &merged[len(merged)-1]
		if next.start-last.end <= minSilenceFrames {
			last.end = next.end
			continue
		}
		merged = append(merged, next)
	}

	for i := range merged {
		merged[i].start -= padFrames
		if merged[i].start < 0 {
			merged[i].start = 0
		}
		merged[i].end += padFrames
		if merged[i].end > len(flags) {
			merged[i].end = len(flags)
		}
	}

	// Padding may have re-joined neighbours.
	out := merged[:1]
	for _, next := range merged[1:] {
		last := &out[len(out)-1]
		if next.start <= last.end {
			if next.end > last.end {
				last.end = next.end
			}
			continue
		}
		out = append(out, next)
	}
	return out
}
