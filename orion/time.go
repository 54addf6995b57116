package orion

import (
	"time"

	"github.com/oliverbestmann/dodgeball/ecs"
)

// Time tracks the duration of the ticks of an App
type Time struct {
	FrameCount      uint64
	AverageDuration time.Duration
	MaxDuration     time.Duration

	// Delta time to previous tick
	Delta time.Duration

	// Elapsed time since the first tick
	Elapsed time.Duration

	lastTime time.Time
}

// DeltaSeconds returns Delta in seconds
func (t *Time) DeltaSeconds() float32 {
	return float32(t.Delta.Seconds())
}

func (t *Time) FPS() float64 {
	if t.AverageDuration == 0 {
		return 0
	}

	return 1.0 / t.AverageDuration.Seconds()
}

// Advance moves the clock forward by the given duration
func (t *Time) Advance(d time.Duration) {
	const window = 64

	t.Delta = d
	t.Elapsed += d
	t.MaxDuration = max(t.MaxDuration, d)

	if t.FrameCount < window/2 {
		t.AverageDuration = d
	} else {
		t.AverageDuration = ((window-1)*t.AverageDuration + d) / window
	}

	t.FrameCount += 1
}

func (t *Time) tick(now time.Time) {
	var dt time.Duration
	if !t.lastTime.IsZero() {
		dt = now.Sub(t.lastTime)
	}

	t.lastTime = now
	t.Advance(dt)
}

// TimeUpdateStrategy controls how Time advances each tick. With a
// ManualDuration set, every tick advances by exactly that duration,
// which keeps tests deterministic.
type TimeUpdateStrategy struct {
	ManualDuration time.Duration
}

type TimePlugin struct{}

func (TimePlugin) Build(app *App) {
	ecs.InitResource[Time](app.World())
	ecs.InitResource[TimeUpdateStrategy](app.World())

	app.AddSystems(First, updateTime)
}

func updateTime(w *ecs.World) {
	t := ecs.MustResource[Time](w)

	strategy, _ := ecs.Resource[TimeUpdateStrategy](w)
	if strategy != nil && strategy.ManualDuration > 0 {
		t.Advance(strategy.ManualDuration)
		return
	}

	t.tick(time.Now())
}
