package slots

import (
	"errors"
	"testing"
)

func TestPolicy_InvalidInterval(t *testing.T) {
	_, err := NewPolicy(Config{Interval: 0, MaxCached: 1})
	if !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}
	_, err = NewPolicy(Config{Interval: -3, MaxCached: 1})
	if !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestPolicy_FirstPositionZeroValid(t *testing.T) {
	p, err := NewPolicy(Config{FirstPosition: 0, Interval: 3, MaxCached: 1})
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}
	pos, ok := p.Peek(0)
	if !ok || pos != 0 {
		t.Errorf("Peek(0) = %d, %v; want 0, true", pos, ok)
	}
}

func TestPolicy_Sequence(t *testing.T) {
	p, err := NewPolicy(Config{FirstPosition: 2, Interval: 5, MaxCached: 1})
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}

	got := p.ExtendTo(14)
	want := []int{2, 7, 12}
	if len(got) != len(want) {
		t.Fatalf("ExtendTo(14) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ExtendTo(14) = %v, want %v", got, want)
		}
	}
}

func TestPolicy_StrictlyIncreasingAndPrefixStable(t *testing.T) {
	cfg := Config{FirstPosition: 1, Interval: 4, MaxCached: 1}

	incremental, _ := NewPolicy(cfg)
	var grown []int
	for _, length := range []int{0, 3, 3, 9, 20, 47} {
		grown = append(grown, incremental.ExtendTo(length)...)
	}

	fresh, _ := NewPolicy(cfg)
	direct := fresh.ExtendTo(47)

	if len(grown) != len(direct) {
		t.Fatalf("incremental %v vs direct %v", grown, direct)
	}
	for i := range direct {
		if grown[i] != direct[i] {
			t.Fatalf("incremental %v vs direct %v", grown, direct)
		}
		if grown[i] < cfg.FirstPosition {
			t.Errorf("position %d below first slot position", grown[i])
		}
		if i > 0 && grown[i] <= grown[i-1] {
			t.Errorf("positions not strictly increasing: %v", grown)
		}
	}
}

func TestPolicy_PositionAtFeedLengthIsEligible(t *testing.T) {
	p, _ := NewPolicy(Config{FirstPosition: 5, Interval: 5, MaxCached: 1})
	if _, ok := p.Peek(4); ok {
		t.Error("position 5 should not be eligible at feed length 4")
	}
	pos, ok := p.Peek(5)
	if !ok || pos != 5 {
		t.Errorf("Peek(5) = %d, %v; want 5, true", pos, ok)
	}
}

func TestPolicy_SessionCap(t *testing.T) {
	p, _ := NewPolicy(Config{FirstPosition: 0, Interval: 1, MaxPerSession: 3, MaxCached: 1})
	got := p.ExtendTo(100)
	if len(got) != 3 {
		t.Errorf("session cap: produced %d positions, want 3", len(got))
	}
	if more := p.ExtendTo(1000); len(more) != 0 {
		t.Errorf("session cap: produced %d more positions after cap", len(more))
	}
}
