package vars

import (
	"errors"
	"testing"
)

func TestReadOnly_DelegatesReads(t *testing.T) {
	vs := NewVars()
	v := NewValue(5)
	r := ReadOnly[int](v)

	if got := r.Get(vs); got != 5 {
		t.Errorf("Get = %d, want 5", got)
	}

	v.Set(vs, 6)
	vs.Apply()

	if got := r.Get(vs); got != 6 {
		t.Errorf("Get after source change = %d, want 6", got)
	}
	if !r.IsNew(vs) {
		t.Error("IsNew after source change = false, want true")
	}
	if got := r.Version(vs); got != v.Version(vs) {
		t.Errorf("Version = %d, want source's %d", got, v.Version(vs))
	}
}

func TestReadOnly_RejectsWrites(t *testing.T) {
	vs := NewVars()
	r := ReadOnly[int](NewValue(5))

	if !r.ReadOnly() {
		t.Error("ReadOnly = false, want true")
	}
	if err := r.Set(vs, 1); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Set error = %v, want ErrReadOnly", err)
	}
	if err := r.Modify(vs, func(n *int) {}); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Modify error = %v, want ErrReadOnly", err)
	}
}

func TestReadOnly_Idempotent(t *testing.T) {
	m := Map(NewValue(1), func(n int) int { return n })
	if got := ReadOnly[int](m); got != Var[int](m) {
		t.Error("ReadOnly on an already read-only variable wrapped it again")
	}
}
