package vars

// ContextVar is a dynamically-scoped variable: it resolves to the innermost
// active override pushed by WithContext, or a static default when none is
// active. Overrides are stack-scoped (push on enter, pop on exit), so nested
// and recursive use is safe. This is the substitute for threading a value
// through every call in a subtree, without global mutable state.
//
// ContextVar is read-only as a Var; the only way to change what a reader
// sees is to wrap the reader in a WithContext scope.
type ContextVar[T any] struct {
	def    T
	stack  []contextBinding[T]
	pushes uint32
}

type contextBinding[T any] struct {
	value   T
	isNew   bool
	version uint32
}

// NewContextVar creates a context variable with the given default.
func NewContextVar[T any](def T) *ContextVar[T] {
	return &ContextVar[T]{def: def}
}

// Default returns the static default value.
func (c *ContextVar[T]) Default() T {
	return c.def
}

// Get returns the innermost active override, or the default.
func (c *ContextVar[T]) Get(vs *Vars) T {
	if n := len(c.stack); n > 0 {
		return c.stack[n-1].value
	}
	return c.def
}

// GetNew returns the value and true iff the active override is new.
func (c *ContextVar[T]) GetNew(vs *Vars) (T, bool) {
	if c.IsNew(vs) {
		return c.Get(vs), true
	}
	var zero T
	return zero, false
}

// IsNew reports whether the active override was bound as new. The default
// is never new.
func (c *ContextVar[T]) IsNew(vs *Vars) bool {
	if n := len(c.stack); n > 0 {
		return c.stack[n-1].isNew
	}
	return false
}

// Version returns the active override's version, or 0 for the default.
func (c *ContextVar[T]) Version(vs *Vars) uint32 {
	if n := len(c.stack); n > 0 {
		return c.stack[n-1].version
	}
	return 0
}

// ReadOnly reports true.
func (c *ContextVar[T]) ReadOnly() bool {
	return true
}

// Set always returns ErrReadOnly.
func (c *ContextVar[T]) Set(vs *Vars, value T) error {
	return ErrReadOnly
}

// Modify always returns ErrReadOnly.
func (c *ContextVar[T]) Modify(vs *Vars, fn func(*T)) error {
	return ErrReadOnly
}

func (c *ContextVar[T]) lastWriteID() uint32 {
	return 0
}

func (c *ContextVar[T]) push(b contextBinding[T]) {
	c.stack = append(c.stack, b)
}

func (c *ContextVar[T]) pop() {
	c.stack = c.stack[:len(c.stack)-1]
}

// WithContext runs fn with cv overridden to value. Each push gets a fresh
// version so downstream memoized maps recompute against the new binding.
func WithContext[T any](cv *ContextVar[T], value T, fn func()) {
	cv.pushes++
	cv.push(contextBinding[T]{value: value, version: cv.pushes})
	defer cv.pop()
	fn()
}

// WithContextValues runs fn with cv overridden to an explicit
// (value, isNew, version) triple. This is the low-level hook for callers
// that track their own change state.
func WithContextValues[T any](cv *ContextVar[T], value T, isNew bool, version uint32, fn func()) {
	cv.push(contextBinding[T]{value: value, isNew: isNew, version: version})
	defer cv.pop()
	fn()
}

// WithContextSource runs fn with cv bound to source's current value,
// newness and version, so readers inside the scope observe the source
// variable transparently.
func WithContextSource[T any](vs *Vars, cv *ContextVar[T], source Var[T], fn func()) {
	cv.push(contextBinding[T]{
		value:   source.Get(vs),
		isNew:   source.IsNew(vs),
		version: source.Version(vs),
	})
	defer cv.pop()
	fn()
}
