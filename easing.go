package vars

import "math"

// EasingTime is a normalized animation progress in [0, 1]. 1 means the
// animation duration fully elapsed.
type EasingTime float64

// EasingEnd is the progress value at the end of an animation.
const EasingEnd EasingTime = 1

// End reports whether the progress reached the end.
func (t EasingTime) End() bool {
	return t >= 1
}

// EasingFn maps normalized progress to an interpolation step. The step is
// usually in [0, 1] but may overshoot for Back and Elastic curves.
type EasingFn func(t EasingTime) float64

// Linear is the identity easing.
func Linear(t EasingTime) float64 {
	return float64(t)
}

// InQuad accelerates quadratically.
func InQuad(t EasingTime) float64 {
	return float64(t) * float64(t)
}

// InCubic accelerates cubically.
func InCubic(t EasingTime) float64 {
	return float64(t) * float64(t) * float64(t)
}

// InQuart accelerates quartically.
func InQuart(t EasingTime) float64 {
	f := float64(t)
	return f * f * f * f
}

// InSine eases along a quarter sine wave.
func InSine(t EasingTime) float64 {
	return 1 - math.Cos(float64(t)*math.Pi/2)
}

// InExpo accelerates exponentially.
func InExpo(t EasingTime) float64 {
	if t <= 0 {
		return 0
	}
	return math.Pow(2, 10*(float64(t)-1))
}

// InCirc eases along a quarter circle.
func InCirc(t EasingTime) float64 {
	f := float64(t)
	return 1 - math.Sqrt(1-f*f)
}

// InBack pulls slightly backwards before accelerating.
func InBack(t EasingTime) float64 {
	const s = 1.70158
	f := float64(t)
	return f * f * ((s+1)*f - s)
}

// InElastic oscillates into the start.
func InElastic(t EasingTime) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	f := float64(t)
	return -math.Pow(2, 10*(f-1)) * math.Sin((f-1.1)*5*math.Pi)
}

// OutBounce bounces into the end like a dropped ball.
func OutBounce(t EasingTime) float64 {
	f := float64(t)
	switch {
	case f < 1/2.75:
		return 7.5625 * f * f
	case f < 2/2.75:
		f -= 1.5 / 2.75
		return 7.5625*f*f + 0.75
	case f < 2.5/2.75:
		f -= 2.25 / 2.75
		return 7.5625*f*f + 0.9375
	default:
		f -= 2.625 / 2.75
		return 7.5625*f*f + 0.984375
	}
}

// Out mirrors an ease-in curve into an ease-out curve.
func Out(fn EasingFn) EasingFn {
	return func(t EasingTime) float64 {
		return 1 - fn(1-t)
	}
}

// InOut runs fn in for the first half and mirrored out for the second.
func InOut(fn EasingFn) EasingFn {
	return func(t EasingTime) float64 {
		if t < 0.5 {
			return fn(t*2) / 2
		}
		return 1 - fn((1-t)*2)/2
	}
}

// StepsCeil quantizes progress into n steps, jumping at segment starts.
func StepsCeil(n int) EasingFn {
	return func(t EasingTime) float64 {
		return math.Ceil(float64(t)*float64(n)) / float64(n)
	}
}

// StepsFloor quantizes progress into n steps, jumping at segment ends.
func StepsFloor(n int) EasingFn {
	return func(t EasingTime) float64 {
		return math.Floor(float64(t)*float64(n)) / float64(n)
	}
}
