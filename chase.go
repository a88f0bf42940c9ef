package vars

import "time"

// ChaseHandle controls a chase animation: an easing animation whose target
// can be redirected mid-flight without a visible jump. Reset re-bases the
// transition's start point at the current interpolated value, so in-flight
// motion continues smoothly instead of teleporting.
//
// Reset must be called on the main loop, like all writes.
type ChaseHandle[T Numeric] struct {
	handle *AnimationHandle
	state  *chaseState[T]
}

type chaseState[T Numeric] struct {
	tr       Transition[T]
	d        time.Duration
	easing   EasingFn
	lastStep float64
	restart  bool

	bounded  bool
	min, max T
}

// Chase starts a chase animation on target towards to.
func Chase[T Numeric](vs *Vars, target Var[T], to T, d time.Duration, easing EasingFn) (*ChaseHandle[T], error) {
	if target.ReadOnly() {
		return nil, ErrReadOnly
	}
	s := &chaseState[T]{
		tr:     NumericTransition(target.Get(vs), to),
		d:      d,
		easing: easing,
	}
	return startChase(vs, target, s), nil
}

// ChaseBounded is Chase constrained to [min, max]: targets are clamped into
// the range, and if easing overshoot (Back, Elastic) would carry the value
// outside it, the value is clipped to the boundary and the animation stops
// early instead of escaping the hard range. The bound is checked against
// each frame's eased sample rather than precomputed from the transition
// endpoints, so the stop happens on the first frame that actually leaves
// the range.
func ChaseBounded[T Numeric](vs *Vars, target Var[T], to T, d time.Duration, easing EasingFn, min, max T) (*ChaseHandle[T], error) {
	if target.ReadOnly() {
		return nil, ErrReadOnly
	}
	s := &chaseState[T]{
		tr:      NumericTransition(target.Get(vs), clamp(to, min, max)),
		d:       d,
		easing:  easing,
		bounded: true,
		min:     min,
		max:     max,
	}
	return startChase(vs, target, s), nil
}

func startChase[T Numeric](vs *Vars, target Var[T], s *chaseState[T]) *ChaseHandle[T] {
	h := vs.anim.Animate(func(a *AnimationArgs) {
		if superseded(a, target) {
			a.Stop()
			return
		}
		if s.restart {
			a.Restart()
			s.restart = false
		}
		t := a.Elapsed(s.d)
		s.lastStep = s.easing(t)
		val := s.tr.Sample(s.lastStep)
		if s.bounded && (val < s.min || val > s.max) {
			target.Set(vs, clamp(val, s.min, s.max))
			a.Stop()
			return
		}
		target.Set(vs, val)
		if t.End() {
			a.Stop()
		}
	})
	return &ChaseHandle[T]{handle: h, state: s}
}

// Reset redirects the chase to a new target. The current interpolated value
// becomes the new transition's start point and the clock restarts, so the
// sampled value is continuous across the retarget.
func (c *ChaseHandle[T]) Reset(to T) {
	s := c.state
	cur := s.tr.Sample(s.lastStep)
	if s.bounded {
		to = clamp(to, s.min, s.max)
	}
	s.tr = NumericTransition(cur, to)
	s.lastStep = 0
	s.restart = true
}

// Transition returns the in-flight transition. Its From field reflects the
// start point of the latest Reset.
func (c *ChaseHandle[T]) Transition() Transition[T] {
	return c.state.tr
}

// Target returns the value currently being chased.
func (c *ChaseHandle[T]) Target() T {
	return c.state.tr.To
}

// Handle returns the underlying animation handle.
func (c *ChaseHandle[T]) Handle() *AnimationHandle {
	return c.handle
}

// Stop cancels the chase.
func (c *ChaseHandle[T]) Stop() {
	c.handle.Stop()
}

func clamp[T Numeric](v, min, max T) T {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
