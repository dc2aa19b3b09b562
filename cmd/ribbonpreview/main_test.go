package main

import (
	"testing"

	"github.com/gogpu/ribbon"
)

func TestAnimate(t *testing.T) {
	b, err := ribbon.Build(demoLines(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	animate(b, 20)

	s := b.Stats()
	if s.InPlaceUpdates != 18 || s.Fallbacks != 2 {
		t.Errorf("Stats() = %+v, want 18 in-place updates and 2 fallbacks", s)
	}
	if got := b.Lines()[2].Points; got != 62 {
		t.Errorf("wave points = %d, want 62", got)
	}
	if !b.Lines()[1].Closed {
		t.Error("star should stay closed")
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
