package vars

import "errors"

// ErrReadOnly is returned by Set and Modify on variables that cannot be
// written: mapped variables, context variables and ReadOnly wrappers.
// It is a value-carrying error, never a panic; callers may ignore it for
// best-effort writes or surface it.
var ErrReadOnly = errors.New("variable is read-only")

// AnyVar is the type-erased capability surface shared by every variable.
type AnyVar interface {
	// Version returns the variable's current generation. It increases on
	// every accepted write and is used to detect staleness without
	// re-comparing values.
	Version(vs *Vars) uint32

	// IsNew reports whether the variable's value changed in the current
	// update tick.
	IsNew(vs *Vars) bool

	// ReadOnly reports whether Set and Modify always fail for this
	// variable kind.
	ReadOnly() bool
}

// Var is the full capability surface consumed by widget, layout and
// rendering code. All implementations live in this package; composition
// happens through the Map, MapBidi, Map2, When and ReadOnly constructors.
type Var[T any] interface {
	AnyVar

	// Get returns the current-tick value. Always succeeds.
	Get(vs *Vars) T

	// GetNew returns the value and true iff the variable is new this tick.
	GetNew(vs *Vars) (T, bool)

	// Set schedules a write of value for the next Apply. Returns
	// ErrReadOnly if this variable cannot be written.
	Set(vs *Vars, value T) error

	// Modify schedules fn to mutate the value in place during the next
	// Apply. Returns ErrReadOnly if this variable cannot be written.
	Modify(vs *Vars, fn func(*T)) error

	// lastWriteID returns the ID of the last accepted write, used by the
	// animation scheduler to detect when an animation was superseded.
	lastWriteID() uint32
}
