package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/voxdiff/internal/diffusion"
	"github.com/san-kum/voxdiff/internal/grid"
)

// Loop drives the render/update cycle for one grid.
type Loop struct {
	state     *grid.State
	rule      diffusion.Rule
	renderer  Renderer
	metrics   []Metric
	observers []Observer
	logger    *slog.Logger
	sleep     func(time.Duration)
	quit      atomic.Bool
	ticks     int
}

func New(state *grid.State, rule diffusion.Rule, renderer Renderer) *Loop {
	if renderer == nil {
		renderer = &Headless{}
	}
	return &Loop{
		state:     state,
		rule:      rule,
		renderer:  renderer,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    slog.Default(),
		sleep:     time.Sleep,
	}
}

func (l *Loop) AddMetric(m Metric)            { l.metrics = append(l.metrics, m) }
func (l *Loop) AddObserver(o Observer)        { l.observers = append(l.observers, o) }
func (l *Loop) SetLogger(logger *slog.Logger) { l.logger = logger }
func (l *Loop) State() *grid.State            { return l.state }

// RequestQuit sets the quit flag; the loop stops before its next iteration.
func (l *Loop) RequestQuit() { l.quit.Store(true) }

func (l *Loop) validateConfig(cfg Config) error {
	if cfg.MaxFrames <= 0 {
		return fmt.Errorf("%w: max frames must be positive, got %d", ErrConfig, cfg.MaxFrames)
	}
	if cfg.StepInterval <= 0 {
		return fmt.Errorf("%w: step interval must be positive, got %d", ErrConfig, cfg.StepInterval)
	}
	if cfg.FrameDelay < 0 {
		return fmt.Errorf("%w: negative frame delay %v", ErrConfig, cfg.FrameDelay)
	}
	return nil
}

func (l *Loop) begin() *Result {
	for _, m := range l.metrics {
		m.Reset()
	}
	l.ticks = 0
	l.quit.Store(false)
	return &Result{RunID: uuid.NewString(), Metrics: make(map[string]float64)}
}

func (l *Loop) finish(res *Result, start time.Time) {
	res.Ticks = l.ticks
	res.Quit = l.quit.Load()
	res.Elapsed = time.Since(start)
	for _, m := range l.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
}

// tick advances the grid once and notifies metrics and observers.
func (l *Loop) tick() error {
	d, err := l.rule.Tick(l.state)
	if err != nil {
		return err
	}
	l.ticks++
	for _, m := range l.metrics {
		m.Observe(l.state, l.ticks, d)
	}
	for _, obs := range l.observers {
		obs.OnTick(l.state, l.ticks, d)
	}
	return nil
}

// Run opens the renderer and loops until the quit flag is set, MaxFrames
// iterations have run, or ctx is done. A tick runs on every frame number
// divisible by StepInterval.
func (l *Loop) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := l.validateConfig(cfg); err != nil {
		return nil, err
	}

	res := l.begin()
	log := l.logger.With("run", res.RunID)
	start := time.Now()

	if err := l.renderer.Open(cfg.Title, l.state.Snapshot()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRendererOpen, err)
	}
	defer func() {
		if err := l.renderer.Close(); err != nil {
			log.Warn("renderer close failed", "error", err)
		}
	}()

	l.renderer.SetBackground(cfg.Background)
	l.renderer.SetPointSize(cfg.PointSize)
	for _, k := range cfg.QuitKeys {
		key := k
		l.renderer.OnKey(key, func() {
			log.Debug("quit key pressed", "key", string(key))
			l.RequestQuit()
		})
	}

	log.Info("loop started",
		"dims", l.state.Dims().String(),
		"max_frames", cfg.MaxFrames,
		"step_interval", cfg.StepInterval,
		"frame_delay", cfg.FrameDelay,
	)

	frame := 0
	for frame < cfg.MaxFrames && !l.quit.Load() {
		select {
		case <-ctx.Done():
			res.Frames = frame
			l.finish(res, start)
			return res, ctx.Err()
		default:
		}

		l.renderer.UpdateColors(l.state.Snapshot().Colors)
		if err := l.renderer.Poll(); err != nil {
			if !errors.Is(err, ErrInterrupted) {
				res.Frames = frame
				l.finish(res, start)
				return res, fmt.Errorf("engine: poll: %w", err)
			}
			log.Info("renderer closed by user")
			l.RequestQuit()
		}

		frame++
		if frame%cfg.StepInterval == 0 {
			if err := l.tick(); err != nil {
				res.Frames = frame
				l.finish(res, start)
				return res, &TickError{Frame: frame, Tick: l.ticks + 1, Wrapped: err}
			}
			log.Debug("tick", "frame", frame, "tick", l.ticks)
		}

		if cfg.FrameDelay > 0 {
			l.sleep(cfg.FrameDelay)
		}
	}

	res.Frames = frame
	l.finish(res, start)
	log.Info("loop finished", "frames", res.Frames, "ticks", res.Ticks, "quit", res.Quit, "elapsed", res.Elapsed)
	return res, nil
}

// RunTicks advances n ticks with no renderer involvement.
func (l *Loop) RunTicks(ctx context.Context, n int) (*Result, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative tick count %d", ErrConfig, n)
	}

	res := l.begin()
	start := time.Now()
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			l.finish(res, start)
			return res, ctx.Err()
		default:
		}
		if err := l.tick(); err != nil {
			l.finish(res, start)
			return res, &TickError{Tick: l.ticks + 1, Wrapped: err}
		}
	}
	l.finish(res, start)
	l.logger.Debug("batch finished", "run", res.RunID, "ticks", res.Ticks, "elapsed", res.Elapsed)
	return res, nil
}
