package assets

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Tone is a short synthesized cue that sweeps linearly from Freq to EndFreq.
type Tone struct {
	Wave     string
	Freq     float64
	EndFreq  float64
	Duration time.Duration
}

// Samples renders the tone as mono samples in [-1, 1] with a linear fade
// out so cues do not click.
func (t Tone) Samples(sampleRate int) ([]float64, error) {
	if t.Duration < time.Millisecond {
		return nil, fmt.Errorf("assets: tone duration %v is shorter than 1ms", t.Duration)
	}
	if t.Freq <= 0 {
		return nil, fmt.Errorf("assets: tone frequency %v must be positive", t.Freq)
	}
	end := t.EndFreq
	if end <= 0 {
		end = t.Freq
	}

	n := sampleRate * int(t.Duration/time.Millisecond) / 1000
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(int64(t.Freq)))
	phase := 0.0
	noise := 0.0
	for i := range out {
		progress := float64(i) / float64(n)
		freq := t.Freq + (end-t.Freq)*progress
		phase += freq / float64(sampleRate)
		phase -= math.Floor(phase)

		var v float64
		switch t.Wave {
		case "", "sine":
			v = math.Sin(2 * math.Pi * phase)
		case "square":
			v = 1
			if phase >= 0.5 {
				v = -1
			}
		case "triangle":
			v = 4*math.Abs(phase-0.5) - 1
		case "noise":
			// sample-and-hold noise; freq sets how often it changes
			if phase < freq/float64(sampleRate) {
				noise = rng.Float64()*2 - 1
			}
			v = noise
		default:
			return nil, fmt.Errorf("assets: unknown wave %q", t.Wave)
		}
		out[i] = v * (1 - progress)
	}
	return out, nil
}

// PCM renders the tone as 16-bit little-endian stereo at SampleRate.
func (t Tone) PCM() ([]byte, error) {
	samples, err := t.Samples(SampleRate)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, len(samples)*4)
	for i, s := range samples {
		v := uint16(int16(s * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], v)
		binary.LittleEndian.PutUint16(buf[i*4+2:], v)
	}
	return buf, nil
}
