// Package wavsink records the buzzer to a WAV file, one frame of samples
// for every frame the machine runs.
package wavsink

import (
	"fmt"
	"os"

	"github.com/adrichey/go-chip8vm/tone"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const bitDepth = 16

// wav format tag for integer PCM
const pcmFormat = 1

// Sink implements runner.AudioSink.
type Sink struct {
	file    *os.File
	enc     *wav.Encoder
	gen     *tone.Generator
	samples []int16
	buf     *audio.IntBuffer
}

// Create creates or truncates the file at path.
func Create(path string) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating wav file: %w", err)
	}

	s := &Sink{
		file:    f,
		enc:     wav.NewEncoder(f, tone.SampleRate, bitDepth, 1, pcmFormat),
		gen:     tone.New(tone.SampleRate, tone.Frequency, tone.Volume),
		samples: make([]int16, tone.FrameSamples),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 1, SampleRate: tone.SampleRate},
			Data:           make([]int, tone.FrameSamples),
			SourceBitDepth: bitDepth,
		},
	}
	return s, nil
}

// SetTone writes the next frame, with the tone or silent.
func (s *Sink) SetTone(on bool) error {
	if on {
		s.gen.Square(s.samples)
	} else {
		s.gen.Silence(s.samples)
	}

	for i, v := range s.samples {
		s.buf.Data[i] = int(v)
	}
	if err := s.enc.Write(s.buf); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}
	return nil
}

// Close finishes the header and closes the file.
func (s *Sink) Close() error {
	if err := s.enc.Close(); err != nil {
		_ = s.file.Close()
		return fmt.Errorf("finishing wav file: %w", err)
	}
	return s.file.Close()
}
