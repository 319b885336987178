package sound

import (
	"encoding/binary"
	"math"
	"time"
)

// Default synthesized alarm: a two-note chirp repeated a few times.
const (
	DefaultSampleRate = 44100
	defaultAmplitude  = 0.4
)

// ToneSpec describes a synthesized alarm pattern.
type ToneSpec struct {
	Frequencies []float64     // played in order within one beep group
	Beep        time.Duration // length of each note
	Gap         time.Duration // silence after each group
	Repeats     int
}

// DefaultTone is the built-in kitchen-timer chirp.
var DefaultTone = ToneSpec{
	Frequencies: []float64{1318.5, 1568.0},
	Beep:        120 * time.Millisecond,
	Gap:         250 * time.Millisecond,
	Repeats:     4,
}

// Synthesize renders spec as mono 16-bit little-endian PCM. Each note is
// faded in and out over a few milliseconds to avoid clicks.
func Synthesize(spec ToneSpec, sampleRate int) []byte {
	noteSamples := samplesFor(spec.Beep, sampleRate)
	gapSamples := samplesFor(spec.Gap, sampleRate)
	fade := sampleRate / 200 // 5ms
	if fade*2 > noteSamples {
		fade = noteSamples / 2
	}

	total := spec.Repeats * (len(spec.Frequencies)*noteSamples + gapSamples)
	out := make([]byte, 0, total*2)
	var buf [2]byte

	put := func(v float64) {
		binary.LittleEndian.PutUint16(buf[:], uint16(int16(v*math.MaxInt16)))
		out = append(out, buf[:]...)
	}

	for r := 0; r < spec.Repeats; r++ {
		for _, freq := range spec.Frequencies {
			for i := 0; i < noteSamples; i++ {
				env := 1.0
				if i < fade {
					env = float64(i) / float64(fade)
				} else if i >= noteSamples-fade {
					env = float64(noteSamples-1-i) / float64(fade)
				}
				t := float64(i) / float64(sampleRate)
				put(defaultAmplitude * env * math.Sin(2*math.Pi*freq*t))
			}
		}
		for i := 0; i < gapSamples; i++ {
			put(0)
		}
	}
	return out
}

func samplesFor(d time.Duration, sampleRate int) int {
	return int(int64(d) * int64(sampleRate) / int64(time.Second))
}
