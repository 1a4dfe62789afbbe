package engine_test

import (
	"context"
	"errors"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/voxdiff/internal/diffusion"
	"github.com/san-kum/voxdiff/internal/engine"
	"github.com/san-kum/voxdiff/internal/grid"
)

type brokenRenderer struct{ engine.Headless }

func (b *brokenRenderer) Open(string, grid.Snapshot) error { return errors.New("no display") }

type tickCounter struct {
	ticks []int
}

func (c *tickCounter) Name() string { return "ticks" }
func (c *tickCounter) Observe(g *grid.State, tick int, d diffusion.Delta) {
	c.ticks = append(c.ticks, tick)
}
func (c *tickCounter) Value() float64 { return float64(len(c.ticks)) }
func (c *tickCounter) Reset()         { c.ticks = nil }

var _ = Describe("Loop", func() {
	var (
		state    *grid.State
		renderer *engine.Headless
		loop     *engine.Loop
		cfg      engine.Config
	)

	BeforeEach(func() {
		var err error
		state, _, err = grid.Initialize(grid.Dims{X: 15, Y: 15, Z: 15}, 20, 1134)
		Expect(err).NotTo(HaveOccurred())

		renderer = &engine.Headless{}
		loop = engine.New(state, diffusion.DefaultRule(), renderer)
		loop.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

		cfg = engine.DefaultConfig()
		cfg.MaxFrames = 100
		cfg.FrameDelay = 0
	})

	It("runs until the frame cap and ticks every StepInterval frames", func() {
		res, err := loop.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Frames).To(Equal(100))
		Expect(res.Ticks).To(Equal(10))
		Expect(res.Quit).To(BeFalse())
		Expect(res.RunID).NotTo(BeEmpty())

		Expect(renderer.Updates).To(Equal(100))
		Expect(renderer.Polls).To(Equal(100))
		Expect(renderer.Closed).To(BeTrue())
	})

	It("configures the renderer before the first frame", func() {
		cfg.Title = "cube"
		cfg.Background = grid.Color{0.1, 0.2, 0.3}
		cfg.PointSize = 4

		_, err := loop.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(renderer.Title).To(Equal("cube"))
		Expect(renderer.Background).To(Equal(grid.Color{0.1, 0.2, 0.3}))
		Expect(renderer.PointSize).To(Equal(4.0))
		Expect(renderer.Points).To(Equal(15 * 15 * 15))
	})

	DescribeTable("stops after the iteration in which a quit key arrives",
		func(key rune, poll, wantTicks int) {
			renderer.Presses = map[int][]rune{poll: {key}}

			res, err := loop.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Quit).To(BeTrue())
			Expect(res.Frames).To(Equal(poll))
			Expect(res.Ticks).To(Equal(wantTicks))
		},
		Entry("lower-case q", 'q', 25, 2),
		Entry("upper-case Q", 'Q', 30, 3),
		Entry("first frame", 'q', 1, 0),
	)

	It("treats a closed view as a quit request", func() {
		renderer.InterruptAt = 40

		res, err := loop.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Quit).To(BeTrue())
		Expect(res.Frames).To(Equal(40))
		Expect(res.Ticks).To(Equal(4))
	})

	It("ignores keys that are not bound", func() {
		renderer.Presses = map[int][]rune{5: {'x'}}
		res, err := loop.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Quit).To(BeFalse())
		Expect(res.Frames).To(Equal(100))
	})

	It("feeds every tick to metrics and observers", func() {
		counter := &tickCounter{}
		loop.AddMetric(counter)

		res, err := loop.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(counter.ticks).To(Equal([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}))
		Expect(res.Metrics).To(HaveKeyWithValue("ticks", 10.0))
	})

	It("matches direct diffusion ticks", func() {
		ref := state.Clone()
		rule := diffusion.DefaultRule()
		for i := 0; i < 10; i++ {
			_, err := rule.Tick(ref)
			Expect(err).NotTo(HaveOccurred())
		}

		_, err := loop.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(state.Colors()).To(Equal(ref.Colors()))
	})

	It("fails when the renderer cannot open", func() {
		loop = engine.New(state, diffusion.DefaultRule(), &brokenRenderer{})
		loop.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

		_, err := loop.Run(context.Background(), cfg)
		Expect(err).To(MatchError(engine.ErrRendererOpen))
		Expect(err.Error()).To(ContainSubstring("no display"))
	})

	DescribeTable("rejects invalid config",
		func(mutate func(*engine.Config)) {
			mutate(&cfg)
			_, err := loop.Run(context.Background(), cfg)
			Expect(err).To(MatchError(engine.ErrConfig))
			Expect(renderer.Opened).To(BeFalse())
		},
		Entry("zero frames", func(c *engine.Config) { c.MaxFrames = 0 }),
		Entry("zero interval", func(c *engine.Config) { c.StepInterval = 0 }),
		Entry("negative delay", func(c *engine.Config) { c.FrameDelay = -1 }),
	)

	It("stops when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res, err := loop.Run(ctx, cfg)
		Expect(err).To(MatchError(context.Canceled))
		Expect(res.Frames).To(Equal(0))
		Expect(renderer.Closed).To(BeTrue())
	})

	Describe("RunTicks", func() {
		It("advances exactly n ticks without touching the renderer", func() {
			res, err := loop.RunTicks(context.Background(), 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Ticks).To(Equal(7))
			Expect(renderer.Opened).To(BeFalse())
		})

		It("rejects a negative count", func() {
			_, err := loop.RunTicks(context.Background(), -1)
			Expect(err).To(MatchError(engine.ErrConfig))
		})
	})
})
