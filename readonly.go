package vars

// ReadOnlyVar wraps a writable variable and rejects writes while delegating
// all reads. Hand one out when a consumer must observe but never mutate.
type ReadOnlyVar[T any] struct {
	source Var[T]
}

// ReadOnly returns a read-only view of v. If v is already read-only it is
// returned unchanged.
func ReadOnly[T any](v Var[T]) Var[T] {
	if v.ReadOnly() {
		return v
	}
	return &ReadOnlyVar[T]{source: v}
}

func (r *ReadOnlyVar[T]) Get(vs *Vars) T            { return r.source.Get(vs) }
func (r *ReadOnlyVar[T]) GetNew(vs *Vars) (T, bool) { return r.source.GetNew(vs) }
func (r *ReadOnlyVar[T]) IsNew(vs *Vars) bool       { return r.source.IsNew(vs) }
func (r *ReadOnlyVar[T]) Version(vs *Vars) uint32   { return r.source.Version(vs) }
func (r *ReadOnlyVar[T]) ReadOnly() bool            { return true }
func (r *ReadOnlyVar[T]) lastWriteID() uint32       { return r.source.lastWriteID() }

// Set always returns ErrReadOnly.
func (r *ReadOnlyVar[T]) Set(vs *Vars, value T) error {
	return ErrReadOnly
}

// Modify always returns ErrReadOnly.
func (r *ReadOnlyVar[T]) Modify(vs *Vars, fn func(*T)) error {
	return ErrReadOnly
}
