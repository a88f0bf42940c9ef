package vars

// Numeric is the constraint for built-in linear interpolation.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Sampler interpolates between two values at the given step.
type Sampler[T any] func(from, to T, step float64) T

// Lerp linearly interpolates numeric values. The arithmetic goes through
// float64 so unsigned types interpolate downwards without underflow.
func Lerp[T Numeric](from, to T, step float64) T {
	return T(float64(from) + (float64(to)-float64(from))*step)
}

// Transition interpolates from a start value to an end value. Sample takes
// an eased step, so the same transition works with any easing curve.
type Transition[T any] struct {
	From    T
	To      T
	sampler Sampler[T]
}

// NewTransition builds a transition with an explicit sampler.
func NewTransition[T any](from, to T, sampler Sampler[T]) Transition[T] {
	return Transition[T]{From: from, To: to, sampler: sampler}
}

// NumericTransition builds a linear-sampled transition for numeric types.
func NumericTransition[T Numeric](from, to T) Transition[T] {
	return NewTransition(from, to, Lerp[T])
}

// Sample returns the interpolated value at the (already eased) step.
func (tr Transition[T]) Sample(step float64) T {
	return tr.sampler(tr.From, tr.To, step)
}
