package vars

// LocalVar caches a snapshot of a source variable so code without access to
// a Vars context can still read it. Refresh the snapshot with Update at a
// point where a Vars is available (typically once per tick), then Get reads
// the cached copy freely.
type LocalVar[T any] struct {
	source  Var[T]
	value   T
	version uint32
	isNew   bool
	valid   bool
}

// NewLocal creates an uninitialized local snapshot of source. Call Init (or
// Update) before the first Get.
func NewLocal[T any](source Var[T]) *LocalVar[T] {
	return &LocalVar[T]{source: source}
}

// Init fills the snapshot unconditionally.
func (l *LocalVar[T]) Init(vs *Vars) {
	l.value = l.source.Get(vs)
	l.version = l.source.Version(vs)
	l.isNew = l.source.IsNew(vs)
	l.valid = true
}

// Update refreshes the snapshot if the source's version changed and reports
// whether the cached value was replaced.
func (l *LocalVar[T]) Update(vs *Vars) bool {
	l.isNew = l.source.IsNew(vs)
	sv := l.source.Version(vs)
	if l.valid && sv == l.version {
		return false
	}
	l.value = l.source.Get(vs)
	l.version = sv
	l.valid = true
	return true
}

// Get returns the cached snapshot. Returns the zero value before the first
// Init or Update.
func (l *LocalVar[T]) Get() T {
	return l.value
}

// IsNew reports whether the source was new at the last Init or Update.
func (l *LocalVar[T]) IsNew() bool {
	return l.isNew
}

// Version returns the snapshot's source version.
func (l *LocalVar[T]) Version() uint32 {
	return l.version
}
