package pixelterm

import "testing"

func TestBlinkHalfDuty(t *testing.T) {
	// One blink per second at 10 fps with a 50% duty: one period spans 10
	// frames, on for the first 5 and off for the last 5.
	b := newBlinkState(BlinkConfig{
		FPS:  10,
		Slow: BlinkTiming{BlinksPerSec: 1, DutyPercent: 50},
	}, true)

	var phases []bool
	for i := 0; i < 10; i++ {
		b.tick()
		phases = append(phases, b.slowOn)
	}

	for i, on := range phases {
		want := i < 5
		if on != want {
			t.Errorf("frame %d: expected on=%v, got %v", i, want, on)
		}
	}
}

func TestBlinkToggleReported(t *testing.T) {
	b := newBlinkState(BlinkConfig{
		FPS:  4,
		Slow: BlinkTiming{BlinksPerSec: 1, DutyPercent: 50},
	}, true)

	var toggles int
	for i := 0; i < 8; i++ {
		if slow, _ := b.tick(); slow {
			toggles++
		}
	}

	// Two transitions per period across two periods, minus the initial
	// frame (already on).
	if toggles != 3 {
		t.Errorf("expected 3 toggles over two periods, got %d", toggles)
	}
}

func TestBlinkDisabledPinnedOn(t *testing.T) {
	b := newBlinkState(DefaultBlinkConfig(), false)

	for i := 0; i < 100; i++ {
		slow, fast := b.tick()
		if slow || fast {
			t.Fatal("expected no toggles with blink disabled")
		}
		if !b.slowOn || !b.fastOn {
			t.Fatal("expected both phases pinned on with blink disabled")
		}
	}
}

func TestBlinkDegenerateTimings(t *testing.T) {
	tests := []struct {
		name string
		cfg  BlinkConfig
	}{
		{"zero fps", BlinkConfig{FPS: 0, Slow: BlinkTiming{BlinksPerSec: 1, DutyPercent: 50}}},
		{"zero rate", BlinkConfig{FPS: 30, Slow: BlinkTiming{BlinksPerSec: 0, DutyPercent: 50}}},
		{"rate above fps", BlinkConfig{FPS: 10, Slow: BlinkTiming{BlinksPerSec: 20, DutyPercent: 50}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBlinkState(tt.cfg, true)
			for i := 0; i < 50; i++ {
				b.tick()
				if !b.slowOn {
					t.Fatal("expected degenerate timing to pin the phase on")
				}
			}
		})
	}
}

func TestBlinkIndependentPhases(t *testing.T) {
	b := newBlinkState(BlinkConfig{
		FPS:  12,
		Slow: BlinkTiming{BlinksPerSec: 1, DutyPercent: 50},
		Fast: BlinkTiming{BlinksPerSec: 3, DutyPercent: 50},
	}, true)

	// Slow cycle is 12 frames, fast cycle is 4: at frame 2 the fast phase is
	// already off while the slow phase is still on.
	var slowAt2, fastAt2 bool
	for i := 0; i < 3; i++ {
		b.tick()
		if i == 2 {
			slowAt2, fastAt2 = b.slowOn, b.fastOn
		}
	}

	if !slowAt2 {
		t.Error("expected slow phase on at frame 2")
	}
	if fastAt2 {
		t.Error("expected fast phase off at frame 2")
	}
}
