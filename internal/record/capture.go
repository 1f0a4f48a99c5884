//go:build cgo

package record

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gordonklaus/portaudio"

	"whisperd/internal/audio"
)

const framesPerBuffer = 512

func capture(ctx context.Context, opts Options) ([]int16, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}
	defer portaudio.Terminate()

	device, err := selectDevice(opts.Device)
	if err != nil {
		return nil, err
	}

	// The callback runs on the audio thread; chunks are copied out and
	// drained by this goroutine so the callback never blocks.
	chunks := make(chan []int16, 64)
	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: 1,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      float64(audio.SampleRate),
		FramesPerBuffer: framesPerBuffer,
	}
	stream, err := portaudio.OpenStream(params, func(in []int16) {
		if len(in) == 0 {
			return
		}
		buf := make([]int16, len(in))
		copy(buf, in)
		select {
		case chunks <- buf:
		default:
			// Buffer full; drop rather than stall the audio thread.
		}
	})
	if err != nil {
		return nil, fmt.Errorf("open audio stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("start audio stream: %w", err)
	}
	defer stream.Stop() //nolint:errcheck

	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}

	var samples []int16
	for {
		select {
		case <-ctx.Done():
			drain(chunks, &samples)
			return samples, nil
		case chunk := <-chunks:
			samples = append(samples, chunk...)
		}
	}
}

func drain(chunks chan []int16, samples *[]int16) {
	for {
		select {
		case chunk := <-chunks:
			*samples = append(*samples, chunk...)
		case <-time.After(50 * time.Millisecond):
			return
		}
	}
}

func selectDevice(name string) (*portaudio.DeviceInfo, error) {
	if name == "" {
		device, err := portaudio.DefaultInputDevice()
		if err != nil {
			return nil, fmt.Errorf("no default input device: %w", err)
		}
		return device, nil
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("list audio devices: %w", err)
	}
	for _, device := range devices {
		if device.MaxInputChannels > 0 && strings.Contains(strings.ToLower(device.Name), strings.ToLower(name)) {
			return device, nil
		}
	}
	return nil, fmt.Errorf("no input device matching %q", name)
}

// Devices lists the names of available input devices.
func Devices() ([]string, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("list audio devices: %w", err)
	}
	var names []string
	for _, device := range devices {
		if device.MaxInputChannels > 0 {
			names = append(names, device.Name)
		}
	}
	return names, nil
}
