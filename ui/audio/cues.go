// Package audio plays short tones for game events.
package audio

import (
	"sync"
	"time"

	"grid-snake/game"
	"grid-snake/game/types"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

const sampleRate = beep.SampleRate(44100)

type tone struct {
	freq     float64
	duration time.Duration
}

var (
	eatTone  = tone{freq: 880, duration: 50 * time.Millisecond}
	lostTone = tone{freq: 196, duration: 400 * time.Millisecond}
	wonTone  = tone{freq: 1318.5, duration: 300 * time.Millisecond}
)

// Player accepts streamers to play asynchronously
type Player interface {
	Play(s ...beep.Streamer)
}

// Speaker plays through the system audio device
type Speaker struct {
	mu          sync.Mutex
	initialized bool
}

// Init opens the audio device with a 100ms buffer
func (sp *Speaker) Init() error {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if sp.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	sp.initialized = true
	return nil
}

func (sp *Speaker) Play(s ...beep.Streamer) {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if sp.initialized {
		speaker.Play(s...)
	}
}

func (sp *Speaker) Close() {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if sp.initialized {
		speaker.Close()
		sp.initialized = false
	}
}

// Cues wraps a render sink and plays a tone whenever the score goes up or
// the session ends. Snapshots are forwarded unchanged.
type Cues struct {
	next   game.RenderSink
	player Player
	log    zerolog.Logger

	session string
	score   int
	state   types.State
}

func NewCues(next game.RenderSink, player Player, log zerolog.Logger) *Cues {
	return &Cues{next: next, player: player, log: log}
}

func (c *Cues) Render(s game.Snapshot) {
	if s.SessionID != c.session {
		c.session = s.SessionID
		c.score = 0
		c.state = types.Alive
	}

	if s.Score > c.score {
		c.play(eatTone)
	}
	if s.State != c.state {
		switch s.State {
		case types.Lost:
			c.play(lostTone)
		case types.Won:
			c.play(wonTone)
		}
	}
	c.score = s.Score
	c.state = s.State

	c.next.Render(s)
}

func (c *Cues) play(t tone) {
	sine, err := generators.SineTone(sampleRate, t.freq)
	if err != nil {
		c.log.Warn().Err(err).Float64("freq", t.freq).Msg("cannot build tone")
		return
	}
	c.player.Play(beep.Take(sampleRate.N(t.duration), sine))
}
