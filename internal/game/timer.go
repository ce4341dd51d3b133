package game

import (
	"math"
	"time"

	"svw.info/rulerush/internal/config"
)

// ObjectCount is the pool size for a level: min(base + floor(level/divisor), max).
func ObjectCount(cfg config.Game, level int) int {
	n := cfg.BaseObjects + int(math.Floor(float64(level)/cfg.ObjectsLevelDivisor))
	return min(n, cfg.MaxObjects)
}

// RoundDuration is the countdown for a level: max(base - level*decay, min).
func RoundDuration(cfg config.Game, level int) time.Duration {
	d := cfg.TimerBase - time.Duration(level)*cfg.TimerDecayPerLevel
	return max(d, cfg.TimerMin)
}

// countdown is the round timer. Each arm issues a new token; ticks carrying
// any other token belong to a superseded round.
type countdown struct {
	token     uint64
	armed     bool
	total     time.Duration
	remaining time.Duration
}

func (c *countdown) arm(total time.Duration) {
	c.token++
	c.armed = true
	c.total = total
	c.remaining = total
}

func (c *countdown) disarm() { c.armed = false }

func (c *countdown) accepts(token uint64) bool {
	return c.armed && token == c.token
}

// advance consumes dt and reports whether time ran out.
func (c *countdown) advance(dt time.Duration) bool {
	c.remaining -= dt
	return c.remaining <= 0
}
