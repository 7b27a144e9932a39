package gui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/model"
	"main/internal/soa"
)

type tickRecorder struct {
	soa.BaseListener[model.PriceTick]
	times  []time.Time
	clock  func() time.Time
	events []model.PriceTick
}

func (r *tickRecorder) ProcessAdd(tick model.PriceTick) {
	r.events = append(r.events, tick)
	r.times = append(r.times, r.clock())
}

// fakeClock advances only when slept on.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time        { return c.now }
func (c *fakeClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

func TestThrottleSpacingAndCap(t *testing.T) {
	const (
		throttle = 300 * time.Millisecond
		maxTicks = 100
	)
	clock := &fakeClock{now: time.Unix(0, 0)}
	svc := NewService(throttle, maxTicks, nil)
	svc.SetClock(clock.Now, clock.Sleep)

	rec := &tickRecorder{clock: clock.Now}
	svc.AddListener(rec)

	tick := model.PriceTick{Product: model.Bond{ProductID: "9128285Q9"}, Mid: 25600, BidOfferSpread: 2}
	for i := 0; i < 1000; i++ {
		svc.OnMessage(tick)
	}

	require.Len(t, rec.events, maxTicks)
	assert.Equal(t, maxTicks, svc.Published())
	for i := 1; i < len(rec.times); i++ {
		gap := rec.times[i].Sub(rec.times[i-1])
		assert.GreaterOrEqual(t, gap, throttle, "gap %d", i)
	}
}

func TestSlowFeedIsNotDelayed(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	svc := NewService(300*time.Millisecond, 100, nil)
	svc.SetClock(clock.Now, clock.Sleep)

	tick := model.PriceTick{Product: model.Bond{ProductID: "9128285Q9"}, Mid: 25600}
	svc.OnMessage(tick)
	clock.now = clock.now.Add(time.Second)

	before := clock.now
	svc.OnMessage(tick)
	assert.Equal(t, before, clock.now, "no sleep expected when interval already elapsed")
	assert.Equal(t, 2, svc.Published())
}
