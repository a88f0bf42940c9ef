package vars

// WhenCase pairs a boolean condition variable with the value variable that
// is active while the condition holds.
type WhenCase[T any] struct {
	When  Var[bool]
	Value Var[T]
}

// Case builds a WhenCase.
func Case[T any](when Var[bool], value Var[T]) WhenCase[T] {
	return WhenCase[T]{When: when, Value: value}
}

// WhenVar selects its value from the first case whose condition is true,
// in declaration order, falling back to a default. The active case is
// re-derived fresh on every read; declaration order is the sole tie-break.
type WhenVar[T any] struct {
	def   Var[T]
	cases []WhenCase[T]

	version  uint32
	seen     []uint32
	seenInit bool
}

// When creates a conditional variable over any number of cases. Earlier
// cases always win over later ones when several conditions are true.
func When[T any](def Var[T], cases ...WhenCase[T]) *WhenVar[T] {
	return &WhenVar[T]{def: def, cases: cases}
}

// active returns the currently selected value variable.
func (w *WhenVar[T]) active(vs *Vars) Var[T] {
	for _, c := range w.cases {
		if c.When.Get(vs) {
			return c.Value
		}
	}
	return w.def
}

// Get returns the value of the first case whose condition is true, or the
// default when none is.
func (w *WhenVar[T]) Get(vs *Vars) T {
	return w.active(vs).Get(vs)
}

// GetNew returns the active value and true iff the variable is new.
func (w *WhenVar[T]) GetNew(vs *Vars) (T, bool) {
	if w.IsNew(vs) {
		return w.Get(vs), true
	}
	var zero T
	return zero, false
}

// IsNew reports a change when any condition at or before the active case is
// new, or the active value itself is new. A condition toggling true->false
// would otherwise be invisible to readers that only sample the value.
func (w *WhenVar[T]) IsNew(vs *Vars) bool {
	condNew := false
	for _, c := range w.cases {
		if c.When.IsNew(vs) {
			condNew = true
		}
		if c.When.Get(vs) {
			return condNew || c.Value.IsNew(vs)
		}
	}
	return condNew || w.def.IsNew(vs)
}

// Version bumps the self-version whenever any condition's or any value's
// version changed since the last call, including inactive cases. Consumers
// that inspect the whole structure (easing-per-case, editors) need to see
// inactive-case changes too.
func (w *WhenVar[T]) Version(vs *Vars) uint32 {
	cur := make([]uint32, 0, 2*len(w.cases)+1)
	for _, c := range w.cases {
		cur = append(cur, c.When.Version(vs), c.Value.Version(vs))
	}
	cur = append(cur, w.def.Version(vs))

	if !w.seenInit {
		w.seen = cur
		w.seenInit = true
		return w.version
	}
	for i := range cur {
		if cur[i] != w.seen[i] {
			w.seen = cur
			w.version++
			break
		}
	}
	return w.version
}

// ReadOnly reports false; writes forward to the active case's value, which
// may itself reject them with ErrReadOnly.
func (w *WhenVar[T]) ReadOnly() bool {
	return false
}

// Set forwards the write to the active case's value variable.
func (w *WhenVar[T]) Set(vs *Vars, value T) error {
	return w.active(vs).Set(vs, value)
}

// Modify forwards the mutation to the active case's value variable.
func (w *WhenVar[T]) Modify(vs *Vars, fn func(*T)) error {
	return w.active(vs).Modify(vs, fn)
}

func (w *WhenVar[T]) lastWriteID() uint32 {
	return 0
}
