// Package sound plays the timer-complete alarm tone through the system
// audio device.
package sound

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/airfryer/internal/logger"
)

// Player plays the alarm tone via oto. Only one oto context may exist per
// process, so create a single Player and share it.
type Player struct {
	ctx    *oto.Context
	pcm    []byte
	log    *logger.Logger
	mu     sync.Mutex
	active *oto.Player // currently playing, nil when idle
}

// NewPlayer initializes the system audio context. When tonePath is empty
// the built-in chirp is used, otherwise the WAV file at tonePath.
// Returns an error if the audio device is unavailable.
func NewPlayer(tonePath string, log *logger.Logger) (*Player, error) {
	format := Format{SampleRate: DefaultSampleRate, ChannelCount: 1}
	var pcm []byte

	if tonePath != "" {
		data, err := os.ReadFile(tonePath)
		if err != nil {
			return nil, fmt.Errorf("reading alarm tone: %w", err)
		}
		format, pcm, err = parseWAV(data)
		if err != nil {
			return nil, fmt.Errorf("alarm tone %s: %w", tonePath, err)
		}
	} else {
		pcm = Synthesize(DefaultTone, format.SampleRate)
	}

	op := &oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan

	log.Debug("audio player initialized (rate=%d, channels=%d, tone=%d bytes)",
		format.SampleRate, format.ChannelCount, len(pcm))
	return &Player{ctx: ctx, pcm: pcm, log: log}, nil
}

// PlayAlarm plays the alarm tone synchronously. Blocks until playback
// finishes or Stop is called. A call while the tone is already playing
// returns immediately.
func (p *Player) PlayAlarm() error {
	p.mu.Lock()
	if p.active != nil {
		p.mu.Unlock()
		return nil
	}
	player := p.ctx.NewPlayer(bytes.NewReader(p.pcm))
	p.active = player
	p.mu.Unlock()

	player.Play()
	p.log.Debug("audio player: playing %d bytes of PCM", len(p.pcm))

	// Wait for playback to complete or be interrupted.
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}

	p.mu.Lock()
	p.active = nil
	p.mu.Unlock()

	return player.Close()
}

// Stop interrupts the currently playing tone, if any. Safe to call
// concurrently and when nothing is playing.
func (p *Player) Stop() {
	p.mu.Lock()
	active := p.active
	p.mu.Unlock()

	if active != nil {
		active.Pause()
		p.log.Debug("audio player: interrupted")
	}
}
