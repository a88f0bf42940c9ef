package vars

// MapVar is a one-way lazy memoized mapping over a source variable.
// The mapping closure runs at most once per distinct source version,
// triggered on Get, never eagerly.
type MapVar[I, O any] struct {
	source        Var[I]
	fn            func(I) O
	cached        O
	cachedVersion uint32
	valid         bool
}

// Map creates a derived variable whose value is fn applied to source.
// The closure must be a pure function of its input; it is re-invoked only
// when the source's version changes. The result is read-only; use MapBidi
// for a writable mapping.
func Map[I, O any](source Var[I], fn func(I) O) *MapVar[I, O] {
	return &MapVar[I, O]{source: source, fn: fn}
}

// Get returns the mapped value, recomputing it only if the source's version
// changed since the cache was filled.
func (m *MapVar[I, O]) Get(vs *Vars) O {
	sv := m.source.Version(vs)
	if !m.valid || m.cachedVersion != sv {
		m.cached = m.fn(m.source.Get(vs))
		m.cachedVersion = sv
		m.valid = true
	}
	return m.cached
}

// GetNew returns the mapped value and true iff the source is new this tick.
func (m *MapVar[I, O]) GetNew(vs *Vars) (O, bool) {
	if m.IsNew(vs) {
		return m.Get(vs), true
	}
	var zero O
	return zero, false
}

// IsNew reports whether the source variable is new this tick.
func (m *MapVar[I, O]) IsNew(vs *Vars) bool {
	return m.source.IsNew(vs)
}

// Version returns the source's version; a mapped value changes exactly when
// its source does.
func (m *MapVar[I, O]) Version(vs *Vars) uint32 {
	return m.source.Version(vs)
}

// ReadOnly reports true.
func (m *MapVar[I, O]) ReadOnly() bool {
	return true
}

// Set always returns ErrReadOnly.
func (m *MapVar[I, O]) Set(vs *Vars, value O) error {
	return ErrReadOnly
}

// Modify always returns ErrReadOnly.
func (m *MapVar[I, O]) Modify(vs *Vars, fn func(*O)) error {
	return ErrReadOnly
}

func (m *MapVar[I, O]) lastWriteID() uint32 {
	return m.source.lastWriteID()
}

// MapBidiVar is a two-way mapping: reads go through fn like MapVar, writes
// round-trip through the inverse closure into the source variable's own
// deferred-apply channel. A write to the mapped variable is really a write
// to the root source, scheduled on the same tick boundary.
type MapBidiVar[I, O any] struct {
	MapVar[I, O]
	back func(O) I
}

// MapBidi creates a writable derived variable. fn maps source values out,
// back maps written values into the source. fn and back need not be exact
// inverses; Get after Set(y) returns fn(back(y)).
func MapBidi[I, O any](source Var[I], fn func(I) O, back func(O) I) *MapBidiVar[I, O] {
	return &MapBidiVar[I, O]{
		MapVar: MapVar[I, O]{source: source, fn: fn},
		back:   back,
	}
}

// ReadOnly reports whether the source is read-only.
func (m *MapBidiVar[I, O]) ReadOnly() bool {
	return m.source.ReadOnly()
}

// Set writes back(value) to the source variable.
func (m *MapBidiVar[I, O]) Set(vs *Vars, value O) error {
	return m.source.Set(vs, m.back(value))
}

// Modify applies fn to the current mapped value and writes the result back
// through the inverse.
func (m *MapBidiVar[I, O]) Modify(vs *Vars, fn func(*O)) error {
	cur := m.Get(vs)
	fn(&cur)
	return m.Set(vs, cur)
}

// Map2Var merges two source variables through a combining closure. It keeps
// its own version counter, bumped whenever either source's version changes,
// and memoizes the combined value against that counter.
type Map2Var[A, B, O any] struct {
	a  Var[A]
	b  Var[B]
	fn func(A, B) O

	version  uint32
	seenA    uint32
	seenB    uint32
	seenInit bool

	cached        O
	cachedVersion uint32
	valid         bool
}

// Map2 creates a derived variable combining two sources. Like Map, the
// closure runs at most once per distinct (a, b) version pair.
func Map2[A, B, O any](a Var[A], b Var[B], fn func(A, B) O) *Map2Var[A, B, O] {
	return &Map2Var[A, B, O]{a: a, b: b, fn: fn}
}

// Get returns the combined value, recomputing at most once per version.
func (m *Map2Var[A, B, O]) Get(vs *Vars) O {
	sv := m.Version(vs)
	if !m.valid || m.cachedVersion != sv {
		m.cached = m.fn(m.a.Get(vs), m.b.Get(vs))
		m.cachedVersion = sv
		m.valid = true
	}
	return m.cached
}

// GetNew returns the combined value and true iff either source is new.
func (m *Map2Var[A, B, O]) GetNew(vs *Vars) (O, bool) {
	if m.IsNew(vs) {
		return m.Get(vs), true
	}
	var zero O
	return zero, false
}

// IsNew reports whether either source is new this tick.
func (m *Map2Var[A, B, O]) IsNew(vs *Vars) bool {
	return m.a.IsNew(vs) || m.b.IsNew(vs)
}

// Version compares both sources against their last seen versions and bumps
// the self-version if either changed.
func (m *Map2Var[A, B, O]) Version(vs *Vars) uint32 {
	va, vb := m.a.Version(vs), m.b.Version(vs)
	if !m.seenInit {
		m.seenA, m.seenB = va, vb
		m.seenInit = true
	} else if va != m.seenA || vb != m.seenB {
		m.seenA, m.seenB = va, vb
		m.version++
	}
	return m.version
}

// ReadOnly reports true.
func (m *Map2Var[A, B, O]) ReadOnly() bool {
	return true
}

// Set always returns ErrReadOnly.
func (m *Map2Var[A, B, O]) Set(vs *Vars, value O) error {
	return ErrReadOnly
}

// Modify always returns ErrReadOnly.
func (m *Map2Var[A, B, O]) Modify(vs *Vars, fn func(*O)) error {
	return ErrReadOnly
}

func (m *Map2Var[A, B, O]) lastWriteID() uint32 {
	return 0
}
