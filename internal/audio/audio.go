// Package audio records the beeper output of the sound timer as WAV file.
package audio

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Beeper output parameters.
const (
	SampleRate = 44100
	Frequency  = 441
	Amplitude  = 28000
	BitDepth   = 16

	channels      = 1
	wavFormatPCM  = 1
	phasePerCycle = 2 * math.Pi
)

// Recorder collects mono PCM samples of the beeper tone. The tone phase
// continues across calls so consecutive sound frames do not click.
type Recorder struct {
	samples      []int
	sampleCredit time.Duration
	phase        float64
	soundSamples int
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends the samples for the elapsed duration, a tone if the beeper
// is on and silence otherwise. Fractions of a sample are carried over to the
// next call.
func (r *Recorder) Record(on bool, elapsed time.Duration) {
	if elapsed <= 0 {
		return
	}

	r.sampleCredit += elapsed * SampleRate
	count := int(r.sampleCredit / time.Second)
	r.sampleCredit %= time.Second

	step := phasePerCycle * Frequency / SampleRate
	for range count {
		if !on {
			r.samples = append(r.samples, 0)
			continue
		}
		r.samples = append(r.samples, int(math.Round(Amplitude*math.Sin(r.phase))))
		r.phase = math.Mod(r.phase+step, phasePerCycle)
		r.soundSamples++
	}
}

// Samples returns the recorded samples.
func (r *Recorder) Samples() []int {
	return r.samples
}

// Duration returns the duration of the recording.
func (r *Recorder) Duration() time.Duration {
	return time.Duration(len(r.samples)) * time.Second / SampleRate
}

// SoundDuration returns how long the beeper was on during the recording.
func (r *Recorder) SoundDuration() time.Duration {
	return time.Duration(r.soundSamples) * time.Second / SampleRate
}

// Encode writes the recording as 16 bit mono WAV data.
func (r *Recorder) Encode(ws io.WriteSeeker) error {
	enc := wav.NewEncoder(ws, SampleRate, BitDepth, channels, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  SampleRate,
		},
		Data:           r.samples,
		SourceBitDepth: BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing wav data: %w", err)
	}
	return nil
}

// WriteFile writes the recording as WAV file.
func (r *Recorder) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}

	if err := r.Encode(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing file %s: %w", path, err)
	}
	return nil
}
