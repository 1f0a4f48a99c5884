package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// SampleRate is the rate the inference engine expects.
const SampleRate = 16000

const wavHeaderSize = 44

// Clip holds decoded mono PCM audio as float32 samples in [-1, 1).
type Clip struct {
	Samples    []float32
	SampleRate int
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}

// ReadFile decodes a 16-bit PCM WAV file, downmixing to mono. Formats
// other than 16-bit PCM are rejected with an error describing the
// unsupported field.
func ReadFile(path string) (*Clip, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer file.Close()
	return decode(file)
}

func decode(r io.Reader) (*Clip, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, fmt.Errorf("read riff header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a wav file")
	}

	var (
		sampleRate int
		channels   int
		bits       int
		haveFmt    bool
	)

	for {
		var chunk [8]byte
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, fmt.Errorf("wav data chunk not found")
			}
			return nil, fmt.Errorf("read chunk header: %w", err)
		}
		id := string(chunk[0:4])
		size := binary.LittleEndian.Uint32(chunk[4:8])

		switch id {
		case "fmt ":
			// A PCM fmt chunk carries at least 16 bytes of fields.
			if size < 16 {
				return nil, fmt.Errorf("truncated fmt chunk (%d bytes)", size)
			}
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, fmt.Errorf("read fmt chunk: %w", err)
			}
			format := binary.LittleEndian.Uint16(body[0:2])
			if format != 1 {
				return nil, fmt.Errorf("unsupported wav format code %d (need PCM)", format)
			}
			channels = int(binary.LittleEndian.Uint16(body[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			bits = int(binary.LittleEndian.Uint16(body[14:16]))
			if bits != 16 {
				return nil, fmt.Errorf("unsupported sample width %d bits (need 16)", bits)
			}
			if channels < 1 {
				return nil, fmt.Errorf("invalid channel count %d", channels)
			}
			haveFmt = true
		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("wav data chunk before fmt chunk")
			}
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, fmt.Errorf("read data chunk: %w", err)
			}
			samples, err := pcmToMonoFloat32(body, channels)
			if err != nil {
				return nil, err
			}
			return &Clip{Samples: samples, SampleRate: sampleRate}, nil
		default:
			if _, err := io.CopyN(io.Discard, r, int64(size)); err != nil {
				return nil, fmt.Errorf("skip chunk %q: %w", id, err)
			}
		}
	}
}

// pcmToMonoFloat32 converts little-endian 16-bit PCM to mono float32,
// averaging interleaved channels.
func pcmToMonoFloat32(data []byte, channels int) ([]float32, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("pcm data length must be even for 16-bit audio")
	}
	frameSamples := len(data) / 2 / channels
	out := make([]float32, 0, frameSamples)
	for frame := 0; frame < frameSamples; frame++ {
		var sum float32
		for ch := 0; ch < channels; ch++ {
			i := (frame*channels + ch) * 2
			sample := int16(data[i]) | int16(data[i+1])<<8
			sum += float32(sample) / 32768.0
		}
		out = append(out, sum/float32(channels))
	}
	return out, nil
}

// WriteFile writes mono 16-bit PCM samples as a WAV file.
func WriteFile(path string, samples []int16, sampleRate int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	defer file.Close()

	dataLen := len(samples) * 2
	header := make([]byte, wavHeaderSize)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataLen))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], 1) // mono
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*2))
	binary.LittleEndian.PutUint16(header[32:34], 2)
	binary.LittleEndian.PutUint16(header[34:36], 16)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataLen))
	if _, err := file.Write(header); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}

	pcm := make([]byte, dataLen)
	for i, v := range samples {
		pcm[i*2] = byte(v)
		pcm[i*2+1] = byte(v >> 8)
	}
	if _, err := file.Write(pcm); err != nil {
		return fmt.Errorf("write wav data: %w", err)
	}
	return file.Close()
}

// Float32ToPCM16 converts float32 samples back to little-endian 16-bit
// PCM bytes, clamping out-of-range values.
func Float32ToPCM16(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, v := range samples {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		s := int16(v * 32767)
		out[i*2] = byte(s)
		out[i*2+1] = byte(s >> 8)
	}
	return out
}
