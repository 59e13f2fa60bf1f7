package platform

import (
	"encoding/binary"
	"fmt"

	"github.com/adrichey/go-chip8vm/tone"
	"github.com/veandco/go-sdl2/sdl"
)

// queue this many frames ahead so the device doesn't run dry between ticks
const framesQueued = 3

// Audio implements runner.AudioSink on an SDL audio queue.
type Audio struct {
	id      sdl.AudioDeviceID
	gen     *tone.Generator
	samples []int16
	buffer  []byte
	playing bool
}

func NewAudio() (*Audio, error) {
	spec := &sdl.AudioSpec{
		Freq:     tone.SampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  1024,
	}

	id, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}

	aud := &Audio{
		id:      id,
		gen:     tone.New(tone.SampleRate, tone.Frequency, tone.Volume),
		samples: make([]int16, tone.FrameSamples),
		buffer:  make([]byte, tone.FrameSamples*2),
	}

	sdl.PauseAudioDevice(aud.id, false)

	return aud, nil
}

// SetTone is called once per frame. While the tone is on the queue is kept
// topped up, switching it off drops whatever is still queued.
func (aud *Audio) SetTone(on bool) error {
	if !on {
		if aud.playing {
			sdl.ClearQueuedAudio(aud.id)
			aud.gen.Silence(aud.samples)
			aud.playing = false
		}
		return nil
	}

	aud.playing = true
	for sdl.GetQueuedAudioSize(aud.id) < uint32(framesQueued*len(aud.buffer)) {
		aud.gen.Square(aud.samples)
		encodeSamples(aud.buffer, aud.samples)
		if err := sdl.QueueAudio(aud.id, aud.buffer); err != nil {
			return err
		}
	}
	return nil
}

func (aud *Audio) Close() {
	sdl.CloseAudioDevice(aud.id)
}

// encodeSamples writes samples as little endian 16 bit values into buf.
func encodeSamples(buf []byte, samples []int16) {
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
}
