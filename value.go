package vars

// Value is the primitive mutable variable: a shared cell with deferred-apply
// write semantics. Share it by pointer; derived variables hold it by value
// of that pointer, so no reference cycles are possible.
type Value[T any] struct {
	value      T
	version    uint32
	lastUpdate uint32
	writeID    uint32
}

// NewValue creates a primitive variable holding initial. The type T is
// inferred from the initial value.
//
// Example:
//
//	count := vars.NewValue(0)          // *Value[int]
//	name := vars.NewValue("hello")     // *Value[string]
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// Get returns the current-tick value. A Set scheduled this tick is not
// visible until the next Apply.
func (v *Value[T]) Get(vs *Vars) T {
	return v.value
}

// GetNew returns the value and true iff it changed in the current tick.
func (v *Value[T]) GetNew(vs *Vars) (T, bool) {
	if v.IsNew(vs) {
		return v.value, true
	}
	var zero T
	return zero, false
}

// IsNew reports whether the last accepted write landed in the current tick.
func (v *Value[T]) IsNew(vs *Vars) bool {
	return v.lastUpdate == vs.UpdateID()
}

// Version returns the write generation, bumped once per accepted write.
func (v *Value[T]) Version(vs *Vars) uint32 {
	return v.version
}

// ReadOnly reports false; primitive variables are always writable.
func (v *Value[T]) ReadOnly() bool {
	return false
}

// Set schedules a write of value for the next Apply. The write is rejected
// at apply time if a higher-priority writer (a later-started animation or a
// later direct Set) has touched the variable since this write was issued.
func (v *Value[T]) Set(vs *Vars, value T) error {
	id := vs.currentWriteID()
	vs.schedule(func(updateID uint32) {
		if !v.acceptWrite(id) {
			return
		}
		v.value = value
		v.commit(updateID)
	})
	return nil
}

// Modify schedules fn to mutate the value in place during the next Apply.
func (v *Value[T]) Modify(vs *Vars, fn func(*T)) error {
	id := vs.currentWriteID()
	vs.schedule(func(updateID uint32) {
		if !v.acceptWrite(id) {
			return
		}
		fn(&v.value)
		v.commit(updateID)
	})
	return nil
}

func (v *Value[T]) lastWriteID() uint32 {
	return v.writeID
}

// acceptWrite records the writer's ID and reports whether the write may
// proceed. Writes are applied only when the incoming ID is >= the last
// accepted ID, so the last started animation always wins and stale writes
// from superseded animations are dropped.
func (v *Value[T]) acceptWrite(id uint32) bool {
	if !seqGE(id, v.writeID) {
		return false
	}
	v.writeID = id
	return true
}

func (v *Value[T]) commit(updateID uint32) {
	v.version++
	v.lastUpdate = updateID
}
