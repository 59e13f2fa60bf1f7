// Package tone generates the buzzer signal: a square wave that plays while
// the sound timer is running.
package tone

const (
	SampleRate = 44100
	Frequency  = 440
	Volume     = 0.25
)

// FrameSamples is the number of samples that cover one 60Hz frame.
const FrameSamples = SampleRate / 60

// Generator produces 16 bit mono samples. The phase carries over between
// calls so consecutive buffers join without a click.
type Generator struct {
	sampleRate int
	frequency  int
	amplitude  int16
	phase      int
}

// New returns a generator. Zero arguments select the defaults above.
func New(sampleRate, frequency int, volume float64) *Generator {
	if sampleRate <= 0 {
		sampleRate = SampleRate
	}
	if frequency <= 0 {
		frequency = Frequency
	}
	if volume <= 0 || volume > 1 {
		volume = Volume
	}
	return &Generator{
		sampleRate: sampleRate,
		frequency:  frequency,
		amplitude:  int16(volume * 32767),
	}
}

func (g *Generator) SampleRate() int {
	return g.sampleRate
}

// Square fills buf with the next samples of the wave.
func (g *Generator) Square(buf []int16) {
	// phase counts in units of 1/sampleRate of a period
	for i := range buf {
		if g.phase*2 < g.sampleRate {
			buf[i] = g.amplitude
		} else {
			buf[i] = -g.amplitude
		}
		g.phase = (g.phase + g.frequency) % g.sampleRate
	}
}

// Silence fills buf with zeros and restarts the wave.
func (g *Generator) Silence(buf []int16) {
	clear(buf)
	g.phase = 0
}
