package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/emberfield/config"
	"github.com/pthm-cable/emberfield/surface"
	"github.com/pthm-cable/emberfield/systems"
	"github.com/pthm-cable/emberfield/telemetry"
)

// ErrAttached is returned when Attach is called on a background that has already run.
var ErrAttached = errors.New("game: background already attached")

// State is the render loop lifecycle state.
type State uint8

const (
	StateUninitialized State = iota
	StateRunning
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateTornDown:
		return "torn_down"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Options configures a Background.
type Options struct {
	Seed int64 // RNG seed (0 = time-based)

	// Collector receives a sample per frame when set.
	Collector *telemetry.FrameCollector
	// OnStats is called with each completed telemetry window.
	OnStats func(telemetry.WindowStats)
}

// Background is one particle field instance bound to a host.
// All of its state lives here; instances never share anything.
type Background struct {
	cfg  *config.Config
	opts Options
	rng  *rand.Rand

	state State
	host  Host

	viewport   systems.Viewport
	pool       *systems.Pool
	compositor *Compositor
	transient  surface.Surface
	persistent surface.Surface

	frame       FrameID
	unsubscribe func()
	frames      int64
}

// NewBackground creates an unattached background.
func NewBackground(cfg *config.Config, opts Options) *Background {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Background{
		cfg:  cfg,
		opts: opts,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// State returns the lifecycle state.
func (b *Background) State() State {
	return b.state
}

// Viewport returns the current canvas size and convergence center.
func (b *Background) Viewport() systems.Viewport {
	return b.viewport
}

// Frames returns the number of frames drawn.
func (b *Background) Frames() int64 {
	return b.frames
}

// Pool returns the particle pool, or nil when not running.
func (b *Background) Pool() *systems.Pool {
	return b.pool
}

// Output returns the presented surface, or nil when not running.
func (b *Background) Output() surface.Surface {
	if b.state != StateRunning {
		return nil
	}
	return b.persistent
}

// Attach allocates surfaces, spawns the field and schedules the first frame.
// If the host cannot provide surfaces the background stays uninitialized.
func (b *Background) Attach(host Host) error {
	if b.state != StateUninitialized {
		return fmt.Errorf("%w (state %s)", ErrAttached, b.state)
	}

	w, h := host.Viewport()
	transient, err := newSurface(host, w, h)
	if err != nil {
		return fmt.Errorf("creating transient surface: %w", err)
	}
	persistent, err := newSurface(host, w, h)
	if err != nil {
		transient.Release()
		return fmt.Errorf("creating persistent surface: %w", err)
	}

	b.host = host
	b.transient = transient
	b.persistent = persistent
	b.viewport = systems.NewViewport(w, h)

	b.pool = systems.NewPool(b.cfg.Field, b.rng)
	b.pool.SpawnAll(b.viewport)
	b.compositor = NewCompositor(b.cfg, b.pool, transient, persistent)

	b.unsubscribe = host.OnResize(b.resize)
	b.state = StateRunning
	b.frame = host.RequestFrame(b.draw)

	slog.Info("background attached",
		"width", w,
		"height", h,
		"particles", b.pool.Len(),
		"lifetime_max", b.cfg.Derived.LifetimeMax,
	)
	return nil
}

func newSurface(host Host, w, h int) (surface.Surface, error) {
	s, err := host.NewSurface(w, h)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNoSurface
	}
	return s, nil
}

// Detach cancels the pending frame, drops the resize subscription and frees
// the surfaces. Calling it again, or before Attach, does nothing.
func (b *Background) Detach() {
	if b.state != StateRunning {
		return
	}

	b.host.CancelFrame(b.frame)
	b.frame = 0
	b.unsubscribe()
	b.unsubscribe = nil

	if b.opts.Collector != nil && b.opts.OnStats != nil {
		if stats, ok := b.opts.Collector.Flush(); ok {
			b.opts.OnStats(stats)
		}
	}

	b.transient.Release()
	b.persistent.Release()
	b.transient, b.persistent = nil, nil
	b.compositor = nil
	b.pool = nil
	b.host = nil
	b.state = StateTornDown

	slog.Info("background detached", "frames", b.frames)
}

// resize is the host's resize callback. Particles keep their coordinates.
func (b *Background) resize(w, h int) {
	if b.state != StateRunning {
		return
	}
	b.viewport.Resize(w, h)
	for _, s := range []surface.Surface{b.transient, b.persistent} {
		if err := s.Resize(w, h); err != nil {
			slog.Error("resizing surface", "error", err, "width", w, "height", h)
		}
	}
	slog.Debug("background resized", "width", w, "height", h)
}

// draw renders one frame and reschedules itself.
func (b *Background) draw() {
	if b.state != StateRunning {
		return
	}

	start := time.Now()
	b.compositor.Frame(b.viewport)
	b.host.Present(b.persistent)
	b.frames++

	if c := b.opts.Collector; c != nil {
		w, h := b.viewport.Size()
		end := time.Now()
		stats, ok := c.Record(telemetry.FrameSample{
			Tick:      int64(b.pool.Tick()),
			At:        end,
			Cost:      end.Sub(start),
			Respawns:  b.pool.TakeRespawns(),
			Particles: b.pool.Len(),
			Width:     w,
			Height:    h,
		})
		if ok && b.opts.OnStats != nil {
			b.opts.OnStats(stats)
		}
	}

	// OnStats may have torn the background down
	if b.state != StateRunning {
		return
	}
	b.frame = b.host.RequestFrame(b.draw)
}
