package vars

import "time"

// Ease animates target from its current value to the given end value over
// the duration, shaped by the easing curve. The animation stops itself when
// the duration elapses or when a later writer supersedes it.
func Ease[T Numeric](vs *Vars, target Var[T], to T, d time.Duration, easing EasingFn) (*AnimationHandle, error) {
	if target.ReadOnly() {
		return nil, ErrReadOnly
	}
	tr := NumericTransition(target.Get(vs), to)
	return animateTransition(vs, target, tr, d, easing), nil
}

// EaseWith is Ease for non-numeric values: the sampler interpolates between
// the current and end values (colors, points, anything lerpable).
func EaseWith[T any](vs *Vars, target Var[T], to T, d time.Duration, easing EasingFn, sampler Sampler[T]) (*AnimationHandle, error) {
	if target.ReadOnly() {
		return nil, ErrReadOnly
	}
	tr := NewTransition(target.Get(vs), to, sampler)
	return animateTransition(vs, target, tr, d, easing), nil
}

func animateTransition[T any](vs *Vars, target Var[T], tr Transition[T], d time.Duration, easing EasingFn) *AnimationHandle {
	return vs.anim.Animate(func(a *AnimationArgs) {
		if superseded(a, target) {
			a.Stop()
			return
		}
		t := a.Elapsed(d)
		target.Set(vs, tr.Sample(easing(t)))
		if t.End() {
			a.Stop()
		}
	})
}

// Step schedules a single write of value after the delay, going through the
// animation scheduler so it honors the global time scale and the
// animations-enabled override (disabled means the write happens on the next
// frame).
func Step[T any](vs *Vars, target Var[T], value T, delay time.Duration) (*AnimationHandle, error) {
	if target.ReadOnly() {
		return nil, ErrReadOnly
	}
	h := vs.anim.Animate(func(a *AnimationArgs) {
		if superseded(a, target) {
			a.Stop()
			return
		}
		t := a.Elapsed(delay)
		if t.End() {
			target.Set(vs, value)
			a.Stop()
			return
		}
		remaining := time.Duration((1 - float64(t)) * float64(delay) / a.TimeScale())
		a.Sleep(remaining)
	})
	return h, nil
}
