package vars

import (
	"fmt"
	"time"
)

// LoopOption is a functional option for configuring a Loop.
type LoopOption func(*Loop) error

// WithFrameRate sets the target update rate for the loop.
// Default is 60 fps (16ms frame duration). Valid range is 1-240 fps.
func WithFrameRate(fps int) LoopOption {
	return func(l *Loop) error {
		if fps < 1 {
			return fmt.Errorf("frame rate must be at least 1 fps")
		}
		if fps > 240 {
			return fmt.Errorf("frame rate cannot exceed 240 fps")
		}
		l.frameDuration = time.Second / time.Duration(fps)
		return nil
	}
}

// WithQueueSize sets the capacity of the update queue buffer.
// Default is 256. Must be at least 1.
func WithQueueSize(size int) LoopOption {
	return func(l *Loop) error {
		if size < 1 {
			return fmt.Errorf("queue size must be at least 1")
		}
		l.queueSize = size
		return nil
	}
}

// WithTimeScale sets the global animation playback speed factor.
// Must be positive; default is 1.
func WithTimeScale(scale float64) LoopOption {
	return func(l *Loop) error {
		if scale <= 0 {
			return fmt.Errorf("time scale must be positive, got %v", scale)
		}
		l.vs.Animations().SetTimeScale(scale)
		return nil
	}
}

// WithoutAnimations disables animation playback: every animation jumps to
// its final state on its first frame. Use this to honor reduced-motion
// accessibility settings.
func WithoutAnimations() LoopOption {
	return func(l *Loop) error {
		l.vs.Animations().SetEnabled(false)
		return nil
	}
}

// WithOnFrame sets a hook that runs once per tick, after Apply. This is
// where the host reads variables and renders.
func WithOnFrame(fn func(*Vars)) LoopOption {
	return func(l *Loop) error {
		l.onFrame = fn
		return nil
	}
}
