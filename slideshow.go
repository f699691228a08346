package main

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gregoryjjb/ive/cursor"
)

var showlog zerolog.Logger

func init() {
	showlog = log.With().Str("component", "slideshow").Logger()
}

type SlideshowCommand string

const (
	CommandStart    SlideshowCommand = "start"
	CommandStop     SlideshowCommand = "stop"
	CommandInterval SlideshowCommand = "interval"
)

type SlideshowState string

const (
	StateIdle    SlideshowState = "idle"
	StatePlaying SlideshowState = "playing"
	StateDead    SlideshowState = "dead"
)

type SlideshowMessage struct {
	Command  SlideshowCommand
	Interval time.Duration
}

// SlideshowStatus is the externally visible state of the slideshow
type SlideshowStatus struct {
	State    SlideshowState `json:"state"`
	Interval string         `json:"interval"`
}

// Slideshow advances the viewer on a fixed interval. It keeps wrapping
// around the images until stopped.
type Slideshow struct {
	commands chan SlideshowMessage
	done     chan struct{}

	mu       sync.RWMutex
	state    SlideshowState
	interval time.Duration
}

func NewSlideshow(ctx context.Context, viewer *Viewer, interval time.Duration) *Slideshow {
	if interval <= 0 {
		interval = DefaultSlideshowInterval
	}

	s := &Slideshow{
		commands: make(chan SlideshowMessage),
		done:     make(chan struct{}),
		state:    StateIdle,
		interval: interval,
	}
	go s.run(ctx, viewer)
	return s
}

func (s *Slideshow) Start() {
	s.send(SlideshowMessage{Command: CommandStart})
}

func (s *Slideshow) Stop() {
	s.send(SlideshowMessage{Command: CommandStop})
}

func (s *Slideshow) SetInterval(d time.Duration) {
	s.send(SlideshowMessage{Command: CommandInterval, Interval: d})
}

func (s *Slideshow) send(msg SlideshowMessage) {
	select {
	case s.commands <- msg:
	case <-s.done:
		showlog.Warn().Str("command", string(msg.Command)).Msg("Slideshow is not running")
	}
}

func (s *Slideshow) State() SlideshowState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

func (s *Slideshow) Status() SlideshowStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return SlideshowStatus{
		State:    s.state,
		Interval: s.interval.String(),
	}
}

// Done is closed once the slideshow loop has exited
func (s *Slideshow) Done() <-chan struct{} {
	return s.done
}

func (s *Slideshow) setState(state SlideshowState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
}

func (s *Slideshow) run(ctx context.Context, viewer *Viewer) {
	showlog.Print("Running slideshow loop")
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	ticker.Stop()
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			showlog.Info().Msg("Aborting slideshow")
			s.setState(StateDead)
			return

		case msg := <-s.commands:
			showlog.Debug().
				Str("command", string(msg.Command)).
				Str("interval", msg.Interval.String()).
				Msg("Received message")

			switch msg.Command {
			case CommandStart:
				ticker.Reset(s.currentInterval())
				s.setState(StatePlaying)
				viewer.notify(EventSlideshow, string(StatePlaying))

			case CommandStop:
				ticker.Stop()
				s.setState(StateIdle)
				viewer.notify(EventSlideshow, string(StateIdle))

			case CommandInterval:
				if msg.Interval <= 0 {
					showlog.Warn().Str("interval", msg.Interval.String()).Msg("Ignoring non-positive interval")
					continue
				}
				s.mu.Lock()
				s.interval = msg.Interval
				s.mu.Unlock()
				if s.State() == StatePlaying {
					ticker.Reset(msg.Interval)
				}
			}

		case <-ticker.C:
			if _, err := viewer.Next(); err != nil {
				if errors.Is(err, cursor.ErrEmptyCursor) {
					showlog.Info().Msg("No images to show, stopping")
				} else {
					showlog.Err(err).Msg("Slideshow error, stopping")
				}
				ticker.Stop()
				s.setState(StateIdle)
				viewer.notify(EventSlideshow, string(StateIdle))
			}
		}
	}
}

func (s *Slideshow) currentInterval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.interval
}
