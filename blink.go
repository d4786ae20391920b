package pixelterm

// BlinkTiming holds the timing parameters for a single blink pattern.
// Timing is counted in frames: the backend converts frame counts to elapsed
// time using the configured FPS, so no wall clock is required on the host.
type BlinkTiming struct {
	// BlinksPerSec is how many times per second the element toggles.
	// Zero disables toggling (the phase stays on).
	BlinksPerSec int

	// DutyPercent is the percentage of each cycle spent visible (0-100).
	DutyPercent int
}

// BlinkConfig holds blink timing for text modifiers and the cursor.
type BlinkConfig struct {
	// FPS is the display refresh rate the caller drives Draw at. It converts
	// frame counts to time.
	FPS int

	// Slow is the timing for CellFlagBlinkSlow and cursor blink.
	Slow BlinkTiming

	// Fast is the timing for CellFlagBlinkFast.
	Fast BlinkTiming
}

// DefaultBlinkConfig returns the default blink timing: 30 fps, slow blink
// once per second visible 85% of the cycle, fast blink three times per second
// with an even split.
func DefaultBlinkConfig() BlinkConfig {
	return BlinkConfig{
		FPS:  30,
		Slow: BlinkTiming{BlinksPerSec: 1, DutyPercent: 85},
		Fast: BlinkTiming{BlinksPerSec: 3, DutyPercent: 50},
	}
}

// blinkState advances the two blink phases once per rendered frame. When
// disabled, both phases are pinned on and blink modifiers become no-ops.
type blinkState struct {
	config  BlinkConfig
	enabled bool
	frame   uint32
	slowOn  bool
	fastOn  bool
}

func newBlinkState(config BlinkConfig, enabled bool) *blinkState {
	return &blinkState{
		config:  config,
		enabled: enabled,
		slowOn:  true,
		fastOn:  true,
	}
}

// tick advances both phases for the current frame and reports which of them
// toggled since the previous frame.
func (b *blinkState) tick() (slowToggled, fastToggled bool) {
	if !b.enabled {
		return false, false
	}

	prevSlow, prevFast := b.slowOn, b.fastOn
	b.slowOn = phaseOn(b.frame, b.config.FPS, b.config.Slow)
	b.fastOn = phaseOn(b.frame, b.config.FPS, b.config.Fast)
	b.frame++

	return b.slowOn != prevSlow, b.fastOn != prevFast
}

// phaseOn computes the on/off state for one timer at the given frame. The
// cycle spans fps/blinksPerSec frames; the first DutyPercent of it is on.
// Degenerate timings (zero fps, zero rate, cycle shorter than a frame) pin
// the phase on.
func phaseOn(frame uint32, fps int, t BlinkTiming) bool {
	if fps <= 0 || t.BlinksPerSec <= 0 {
		return true
	}

	cycle := fps / t.BlinksPerSec
	if cycle <= 0 {
		return true
	}

	on := (t.DutyPercent*cycle + 50) / 100
	if on < 1 && t.DutyPercent > 0 {
		on = 1
	}
	if on > cycle {
		on = cycle
	}

	return int(frame%uint32(cycle)) < on
}
