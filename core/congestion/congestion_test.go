package congestion

import (
	"math"
	"testing"

	"github.com/kilianp07/fleetsim/core/factory"
)

func TestSaturation_MonotoneAndBounded(t *testing.T) {
	m, err := NewSaturation(0.6)
	if err != nil {
		t.Fatalf("new saturation: %v", err)
	}
	if got := m.Realized(0, 10); got != 0 {
		t.Fatalf("expected 0 for empty zone, got %v", got)
	}
	prev := 0.0
	for n := 1; n <= 20; n++ {
		cur := m.Realized(n, 10)
		if cur <= prev {
			t.Fatalf("realized revenue not increasing at n=%d: %v <= %v", n, cur, prev)
		}
		if cur > 10 {
			t.Fatalf("realized revenue %v exceeds base at n=%d", cur, n)
		}
		prev = cur
	}
}

func TestSaturation_InvalidAlpha(t *testing.T) {
	if _, err := NewSaturation(0); err == nil {
		t.Fatal("expected error for alpha = 0")
	}
	if _, err := NewSaturation(-1); err == nil {
		t.Fatal("expected error for negative alpha")
	}
}

func TestSplit_Indicator(t *testing.T) {
	m := Split{}
	if got := m.Realized(0, 7); got != 0 {
		t.Fatalf("expected 0 for empty zone, got %v", got)
	}
	for n := 1; n <= 5; n++ {
		if got := m.Realized(n, 7); got != 7 {
			t.Fatalf("expected full revenue 7 at n=%d, got %v", n, got)
		}
	}
}

func TestMacro(t *testing.T) {
	m, _ := NewSaturation(0.6)
	total, err := Macro([]int{2, 1, 0}, []float64{10, 4, 99}, m)
	if err != nil {
		t.Fatalf("macro: %v", err)
	}
	want := 10*(1-math.Exp(-1.2)) + 4*(1-math.Exp(-0.6))
	if math.Abs(total-want) > 1e-12 {
		t.Fatalf("expected %v got %v", want, total)
	}
}

func TestMacro_LengthMismatch(t *testing.T) {
	if _, err := Macro([]int{1}, []float64{1, 2}, Split{}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestNew_FromConfig(t *testing.T) {
	m, err := New(factory.ModuleConfig{Type: "saturation", Conf: map[string]any{"alpha": 0.6}})
	if err != nil {
		t.Fatalf("create saturation: %v", err)
	}
	if m.Name() != "saturation" {
		t.Fatalf("unexpected name %s", m.Name())
	}
	if _, err := New(factory.ModuleConfig{Type: "saturation", Conf: map[string]any{"alpha": -0.1}}); err == nil {
		t.Fatal("expected error for non-positive alpha")
	}
	if _, err := New(factory.ModuleConfig{Type: "gravity"}); err == nil {
		t.Fatal("expected error for unknown model name")
	}
	if _, err := New(factory.ModuleConfig{Type: "split"}); err != nil {
		t.Fatalf("create split: %v", err)
	}
}
