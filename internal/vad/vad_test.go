package vad

import (
	"testing"
	"time"
)

func flagsOf(pattern string) []bool {
	flags := make([]bool, 0, len(pattern))
	for _, c := range pattern {
		flags = append(flags, c == 's')
	}
	return flags
}

func TestSpeechSpansMergesShortSilence(t *testing.T) {
	// 30ms frames; min silence 90ms = 3 frames. The 2-frame gap merges,
	// the 5-frame gap splits.
	params := Params{MinSilence: 90 * time.Millisecond}
	flags := flagsOf("sss..ss.....ss")

	spans := speechSpans(flags, params, frameMs)
	if len(spans) != 2 {
		t.Fatalf("spans = %v, want 2 spans", spans)
	}
	if spans[0].start != 0 || spans[0].end != 7 {
		t.Errorf("first span = %v, want {0 7}", spans[0])
	}
	if spans[1].start != 12 || spans[1].end != 14 {
		t.Errorf("second span = %v, want {12 14}", spans[1])
	}
}

func TestSpeechSpansAppliesPadding(t *testing.T) {
	params := Params{SpeechPad: 60 * time.Millisecond} // 2 frames
	flags := flagsOf("....ss....")

	spans := speechSpans(flags, params, frameMs)
	if len(spans) != 1 {
		t.Fatalf("spans = %v, want 1 span", spans)
	}
	if spans[0].start != 2 || spans[0].end != 8 {
		t.Errorf("span = %v, want {2 8}", spans[0])
	}
}

func TestSpeechSpansPaddingClampsToClip(t *testing.T) {
	params := Params{SpeechPad: 300 * time.Millisecond}
	flags := flagsOf("s...s")

	spans := speechSpans(flags, params, frameMs)
	if len(spans) != 1 {
		t.Fatalf("spans = %v, want single padded span", spans)
	}
	if spans[0].start != 0 || spans[0].end != len(flags) {
		t.Errorf("span = %v, want full clip", spans[0])
	}
}

func TestSpeechSpansAllSilence(t *testing.T) {
	if spans := speechSpans(flagsOf("......"), Defaults(), frameMs); spans != nil {
		t.Fatalf("spans = %v, want nil", spans)
	}
}
