package model

import (
	"math"
	"strings"
)

// Context identifies the temporal and weather situation a revenue lookup is
// made for.
type Context struct {
	// Day of week, 0=Monday .. 6=Sunday.
	Day int
	// Time is the hour of day with fractions, in [0, 24).
	Time float64
	// Weather is a lowercase free-form condition such as "clear" or "rain".
	Weather string
}

// Normalize returns the context with day wrapped to [0,7), time wrapped to
// [0,24) and weather trimmed and lowercased.
func (c Context) Normalize() Context {
	c.Day = ((c.Day % 7) + 7) % 7
	c.Time = math.Mod(math.Mod(c.Time, 24)+24, 24)
	c.Weather = strings.ToLower(strings.TrimSpace(c.Weather))
	return c
}

// Advance moves the clock forward by dt hours, rolling over to the next day
// when the time wraps past midnight.
func (c Context) Advance(dt float64) Context {
	c.Time = math.Mod(c.Time+dt, 24)
	if math.Abs(c.Time) < 1e-9 {
		c.Time = 0
		c.Day = (c.Day + 1) % 7
	}
	return c
}

// ClockDistance returns the distance between two hours of day on a circular
// 24-hour clock.
func ClockDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	return math.Min(d, 24-d)
}
