package model

import (
	"math"
	"testing"
)

func TestDriverTickFloorsAtZero(t *testing.T) {
	d := &Driver{Cluster: 2, HoursLeft: 0.4}
	d.Tick(0.5)
	if d.HoursLeft != 0 {
		t.Fatalf("expected 0 hours left, got %v", d.HoursLeft)
	}
	if d.Active() {
		t.Fatal("driver with no hours must be inactive")
	}
}

func TestCloneFleetIndependent(t *testing.T) {
	a := []*Driver{{Cluster: 1, HoursLeft: 3}}
	b := CloneFleet(a)
	b[0].Cluster = 5
	b[0].HoursLeft = 0
	if a[0].Cluster != 1 || a[0].HoursLeft != 3 {
		t.Fatalf("clone mutation leaked into the original: %+v", a[0])
	}
}

func TestContextAdvanceWrapsDay(t *testing.T) {
	c := Context{Day: 6, Time: 23.5}
	c = c.Advance(0.5)
	if c.Day != 0 || c.Time != 0 {
		t.Fatalf("expected midnight of day 0, got day=%d time=%v", c.Day, c.Time)
	}
	c = c.Advance(0.5)
	if c.Day != 0 || c.Time != 0.5 {
		t.Fatalf("expected 0.5h on day 0, got day=%d time=%v", c.Day, c.Time)
	}
}

func TestContextNormalize(t *testing.T) {
	c := Context{Day: -1, Time: 25, Weather: " Rain "}.Normalize()
	if c.Day != 6 {
		t.Fatalf("expected day 6, got %d", c.Day)
	}
	if c.Time != 1 {
		t.Fatalf("expected time 1, got %v", c.Time)
	}
	if c.Weather != "rain" {
		t.Fatalf("expected weather rain, got %q", c.Weather)
	}
}

func TestClockDistanceCircular(t *testing.T) {
	if d := ClockDistance(23.5, 0.5); math.Abs(d-1) > 1e-12 {
		t.Fatalf("expected 1h across midnight, got %v", d)
	}
	if d := ClockDistance(6, 18); d != 12 {
		t.Fatalf("expected 12, got %v", d)
	}
	if d := ClockDistance(8, 8); d != 0 {
		t.Fatalf("expected 0, got %v", d)
	}
}
