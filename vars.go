package vars

import (
	"sync"

	"github.com/grindlemire/go-vars/pkg/debug"
)

// Vars is the update context that owns the deferred-write queue and the
// current update ID. All variable reads and writes go through a Vars.
//
// Create one Vars per application. Apply must be called once per update
// tick by the host loop; it is the only place variable values actually
// change.
type Vars struct {
	mu       sync.Mutex
	updateID uint32
	pending  []func(updateID uint32)

	// writeID orders animation writes against direct writes. It wraps,
	// skipping 0, which is reserved as the "never written" sentinel.
	writeID uint32

	anim *Animations
}

// NewVars creates a new update context with an idle animation scheduler.
func NewVars() *Vars {
	vs := &Vars{updateID: 1}
	vs.anim = newAnimations(vs)
	return vs
}

// UpdateID returns the current update generation. A variable is "new" when
// its last accepted write happened in this generation.
func (vs *Vars) UpdateID() uint32 {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return vs.updateID
}

// Animations returns the animation scheduler for this context.
func (vs *Vars) Animations() *Animations {
	return vs.anim
}

// Apply advances the update generation and runs every queued write closure
// in the order it was scheduled. Writes scheduled by the closures themselves
// are not run in this call; they land in the next tick's queue, so there is
// exactly one settle point per tick and no unbounded recursion.
func (vs *Vars) Apply() {
	vs.mu.Lock()
	vs.updateID++
	if vs.updateID == 0 {
		// Skip 0 on wraparound so a fresh variable (lastUpdate == 0) is
		// never spuriously reported as new.
		vs.updateID = 1
	}
	id := vs.updateID
	pending := vs.pending
	vs.pending = nil
	vs.mu.Unlock()

	if len(pending) > 0 {
		debug.Log("Vars.Apply: update %d, applying %d writes", id, len(pending))
	}
	for _, fn := range pending {
		fn(id)
	}
}

// Pending returns the number of writes waiting for the next Apply.
func (vs *Vars) Pending() int {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return len(vs.pending)
}

// schedule queues a deferred write. Safe to call from any goroutine, though
// the closure itself always runs on the goroutine that calls Apply.
func (vs *Vars) schedule(fn func(updateID uint32)) {
	vs.mu.Lock()
	vs.pending = append(vs.pending, fn)
	vs.mu.Unlock()
}

// currentWriteID returns the write ID for a Set or Modify issued now: the
// running animation's ID when called from inside an animation closure, or
// a freshly allocated ID otherwise. Fresh IDs are always higher than every
// previously started animation, so direct writes override animations.
func (vs *Vars) currentWriteID() uint32 {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	if a := vs.anim.currentLocked(); a != nil {
		return a.id
	}
	return vs.nextWriteIDLocked()
}

// nextWriteIDLocked allocates the next write ID. Caller must hold vs.mu.
func (vs *Vars) nextWriteIDLocked() uint32 {
	vs.writeID++
	if vs.writeID == 0 {
		vs.writeID = 1
	}
	return vs.writeID
}

// seqGE reports whether a >= b in wrapping u32 serial-number space.
// A write is accepted when its ID is >= the variable's last accepted ID;
// the wrapping comparison keeps the ordering contract intact across the
// u32 boundary instead of rejecting every write after a wrap.
func seqGE(a, b uint32) bool {
	return a-b < 1<<31
}
