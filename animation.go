package vars

import (
	"sync"
	"time"

	"github.com/grindlemire/go-vars/pkg/debug"
)

// DefaultFrameDuration is the wake-up cadence for animations that do not
// request a longer sleep (~60fps).
const DefaultFrameDuration = 16 * time.Millisecond

// Animations is the cooperative, time-sliced animation scheduler. It drives
// per-frame closures that write through the variables' deferred-apply queue.
// The host loop calls Update when the deadline from NextDeadline elapses.
//
// All methods must run on the main loop.
type Animations struct {
	vs            *Vars
	entries       []*animation
	frameDuration time.Duration
	armed         bool
	next          time.Time
	timeScale     float64
	enabled       bool

	// current is the animation whose closure is executing, guarded by
	// vs.mu because Vars.currentWriteID reads it from Set/Modify.
	current *animation
}

type animation struct {
	fn         func(*AnimationArgs)
	id         uint32
	handle     *AnimationHandle
	start      time.Time // zero until the first frame
	restarts   int
	sleepUntil time.Time // zero = wake every frame
}

func newAnimations(vs *Vars) *Animations {
	return &Animations{
		vs:            vs,
		frameDuration: DefaultFrameDuration,
		timeScale:     1,
		enabled:       true,
	}
}

// AnimationHandle controls a running animation from outside its closure.
// Stop cancels the animation; the cancellation is observed on its next
// scheduled poll, so one more frame may still be in flight.
type AnimationHandle struct {
	mu      sync.Mutex
	stopped bool
	perm    bool
}

// Stop marks the animation for removal. Ignored after Perm.
func (h *AnimationHandle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.perm {
		h.stopped = true
	}
}

// Perm makes the animation permanent: external Stop calls are ignored from
// then on, and only the closure itself can end it (via AnimationArgs.Stop).
// Perm is irreversible; it deliberately trades always-on animation for not
// having to keep the handle alive.
func (h *AnimationHandle) Perm() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.perm = true
}

// IsStopped reports whether Stop took effect.
func (h *AnimationHandle) IsStopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

// Animate registers a per-frame closure and arms the scheduler. The closure
// runs once per frame (or per requested sleep) until it calls
// AnimationArgs.Stop or the returned handle is stopped.
//
// Writes issued from inside the closure carry the animation's write ID for
// the animation's whole life, so a later-started animation always supersedes
// an earlier one touching the same variable. An animation started from
// inside another animation's closure joins that animation's ID and handle
// instead of receiving a separate lifetime.
func (an *Animations) Animate(fn func(*AnimationArgs)) *AnimationHandle {
	an.vs.mu.Lock()
	var id uint32
	var handle *AnimationHandle
	if cur := an.current; cur != nil {
		id = cur.id
		handle = cur.handle
	} else {
		id = an.vs.nextWriteIDLocked()
		handle = &AnimationHandle{}
	}
	an.vs.mu.Unlock()

	an.entries = append(an.entries, &animation{fn: fn, id: id, handle: handle})
	// A fresh animation is due immediately, even when the scheduler is armed
	// and waiting out a long sleep for the existing entries.
	an.armed = true
	an.next = time.Time{}
	debug.Log("Animations.Animate: registered animation %d (%d live)", id, len(an.entries))
	return handle
}

// Update runs one scheduler pass at the given instant: every non-sleeping
// live animation's closure is invoked once, stopped animations are dropped,
// and the next wake-up deadline is recomputed. Animations registered during
// the pass are not invoked until the next pass.
func (an *Animations) Update(now time.Time) {
	if !an.armed {
		return
	}

	n := len(an.entries)
	live := make([]*animation, 0, n)
	for i := 0; i < n; i++ {
		a := an.entries[i]
		if a.handle.IsStopped() {
			continue
		}
		if !a.sleepUntil.IsZero() && now.Before(a.sleepUntil) {
			live = append(live, a)
			continue
		}
		a.sleepUntil = time.Time{}
		if a.start.IsZero() {
			a.start = now
		}

		args := &AnimationArgs{
			now:       now,
			timeScale: an.timeScale,
			enabled:   an.enabled,
			anim:      a,
		}
		an.setCurrent(a)
		a.fn(args)
		an.setCurrent(nil)

		if args.stop || a.handle.IsStopped() {
			continue
		}
		a.sleepUntil = args.sleep
		live = append(live, a)
	}
	// Keep animations that were registered by the closures themselves.
	live = append(live, an.entries[n:]...)
	an.entries = live

	if len(an.entries) == 0 {
		an.armed = false
		return
	}
	var next time.Time
	for _, a := range an.entries {
		wake := a.sleepUntil
		if wake.IsZero() {
			wake = now.Add(an.frameDuration)
		}
		if next.IsZero() || wake.Before(next) {
			next = wake
		}
	}
	an.next = next
}

// NextDeadline returns the instant of the next scheduled pass. The second
// result is false when no animations are live. A zero deadline means a pass
// is due immediately.
func (an *Animations) NextDeadline() (time.Time, bool) {
	if !an.armed {
		return time.Time{}, false
	}
	return an.next, true
}

// Len returns the number of live animations.
func (an *Animations) Len() int {
	return len(an.entries)
}

// SetTimeScale adjusts the global playback speed. Values below 1 slow all
// animations down, above 1 speed them up. Non-positive values are ignored.
func (an *Animations) SetTimeScale(scale float64) {
	if scale > 0 {
		an.timeScale = scale
	}
}

// TimeScale returns the global playback speed factor.
func (an *Animations) TimeScale() float64 {
	return an.timeScale
}

// SetEnabled toggles animation playback globally. When disabled, Elapsed
// reports the end immediately so every animation jumps to its final state
// on its next frame. This is the accessibility override for users who
// cannot tolerate motion.
func (an *Animations) SetEnabled(enabled bool) {
	an.enabled = enabled
}

// Enabled reports whether animations play normally.
func (an *Animations) Enabled() bool {
	return an.enabled
}

func (an *Animations) setCurrent(a *animation) {
	an.vs.mu.Lock()
	an.current = a
	an.vs.mu.Unlock()
}

// currentLocked returns the running animation. Caller must hold vs.mu.
func (an *Animations) currentLocked() *animation {
	return an.current
}

// AnimationArgs is passed to an animation closure on every frame.
type AnimationArgs struct {
	now       time.Time
	timeScale float64
	enabled   bool
	anim      *animation

	sleep time.Time
	stop  bool
}

// Now returns the frame instant supplied by the host clock.
func (a *AnimationArgs) Now() time.Time {
	return a.now
}

// Start returns when the animation (or its latest restart) began.
func (a *AnimationArgs) Start() time.Time {
	return a.anim.start
}

// TimeScale returns the global playback speed factor.
func (a *AnimationArgs) TimeScale() float64 {
	return a.timeScale
}

// AnimationsEnabled reports whether animations play normally. When false,
// Elapsed returns EasingEnd regardless of wall-clock time.
func (a *AnimationArgs) AnimationsEnabled() bool {
	return a.enabled
}

// Elapsed returns the normalized progress of a duration-d animation,
// scaled by the global time scale and clamped to the end. When animations
// are disabled it returns the end immediately.
func (a *AnimationArgs) Elapsed(d time.Duration) EasingTime {
	if !a.enabled || d <= 0 {
		return EasingEnd
	}
	scaled := time.Duration(float64(a.now.Sub(a.anim.start)) * a.timeScale)
	if scaled >= d {
		return EasingEnd
	}
	if scaled < 0 {
		return 0
	}
	return EasingTime(float64(scaled) / float64(d))
}

// ElapsedRestart is Elapsed, restarting the clock when the end is reached.
// Use it for animations that loop forever.
func (a *AnimationArgs) ElapsedRestart(d time.Duration) EasingTime {
	t := a.Elapsed(d)
	if t.End() {
		a.Restart()
	}
	return t
}

// ElapsedRestartStop is ElapsedRestart bounded to max restarts; once the
// budget is spent the animation is stopped instead of restarted.
func (a *AnimationArgs) ElapsedRestartStop(d time.Duration, max int) EasingTime {
	t := a.Elapsed(d)
	if t.End() {
		if a.anim.restarts < max {
			a.Restart()
		} else {
			a.Stop()
		}
	}
	return t
}

// Restart rebases the animation's start to the current frame instant.
func (a *AnimationArgs) Restart() {
	a.anim.start = a.now
	a.anim.restarts++
}

// RestartCount returns how many times Restart ran.
func (a *AnimationArgs) RestartCount() int {
	return a.anim.restarts
}

// Sleep requests that the next frame be coalesced to at most once per d,
// instead of every frame. The request applies to the next wake-up only.
func (a *AnimationArgs) Sleep(d time.Duration) {
	a.sleep = a.now.Add(d)
}

// Stop marks the animation for removal after this frame. This is the
// synchronous self-cancel path and works even on permanent animations.
func (a *AnimationArgs) Stop() {
	a.stop = true
}

func (a *AnimationArgs) animationID() uint32 {
	return a.anim.id
}

// superseded reports whether a higher-priority writer touched target since
// this animation started. A superseded animation should stop: its writes
// would be rejected anyway.
func superseded[T any](a *AnimationArgs, target Var[T]) bool {
	return !seqGE(a.animationID(), target.lastWriteID())
}
