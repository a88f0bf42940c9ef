package vars

import (
	"os"
	"os/signal"
	"sync"
	"time"
)

// Loop is the host update loop: it owns a Vars context, drains queued
// updates, applies pending writes once per tick and drives the animation
// scheduler. Rendering and event plumbing live outside; hook them in with
// WithOnFrame.
type Loop struct {
	vs       *Vars
	queue    chan func()
	stopCh   chan struct{}
	stopOnce sync.Once

	frameDuration time.Duration
	queueSize     int
	onFrame       func(*Vars)
	watchers      []Watcher
}

// NewLoop creates a loop with a fresh Vars context.
// Options configure frame rate, queue size and animation playback.
func NewLoop(opts ...LoopOption) (*Loop, error) {
	l := &Loop{
		vs:            NewVars(),
		stopCh:        make(chan struct{}),
		frameDuration: DefaultFrameDuration,
		queueSize:     256,
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	l.queue = make(chan func(), l.queueSize)
	return l, nil
}

// Vars returns the loop's update context.
func (l *Loop) Vars() *Vars {
	return l.vs
}

// AddWatcher registers a watcher to start when the loop runs.
func (l *Loop) AddWatcher(w Watcher) {
	l.watchers = append(l.watchers, w)
}

// Run starts the main update loop. Blocks until Stop is called or SIGINT is
// received. Each tick drains queued updates for up to half the frame budget,
// ticks due animations, applies all pending writes, runs the frame hook and
// sleeps the remainder of the frame.
func (l *Loop) Run() error {
	// Handle Ctrl+C gracefully
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		select {
		case <-sigCh:
			l.Stop()
		case <-l.stopCh:
			// Loop already stopped, clean up signal handler
		}
		signal.Stop(sigCh)
	}()

	for _, w := range l.watchers {
		w.Start(l.queue, l.stopCh)
	}

	for {
		select {
		case <-l.stopCh:
			return nil
		default:
		}

		frameStart := time.Now()

		// Process queued updates for up to half the frame budget
		deadline := frameStart.Add(l.frameDuration / 2)
		for time.Now().Before(deadline) {
			select {
			case fn := <-l.queue:
				fn()
			case <-l.stopCh:
				return nil
			default:
				goto tick
			}
		}

	tick:
		an := l.vs.Animations()
		now := time.Now()
		if d, ok := an.NextDeadline(); ok && !now.Before(d) {
			an.Update(now)
		}

		l.vs.Apply()

		if l.onFrame != nil {
			l.onFrame(l.vs)
		}

		// Sleep the remaining frame time, waking early for a due animation
		sleep := l.frameDuration - time.Since(frameStart)
		if d, ok := an.NextDeadline(); ok {
			if until := time.Until(d); until < sleep {
				sleep = until
			}
		}
		if sleep > 0 {
			select {
			case <-time.After(sleep):
			case <-l.stopCh:
				return nil
			}
		}
	}
}

// Stop signals the Run loop to exit gracefully and stops all watchers.
// Stop is idempotent - multiple calls are safe.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopCh)
	})
}

// QueueUpdate enqueues a function to run on the main loop.
// Safe to call from any goroutine. Use this for background thread safety.
func (l *Loop) QueueUpdate(fn func()) {
	select {
	case l.queue <- fn:
	case <-l.stopCh:
		// Loop is stopping, ignore update
	}
}

// StopCh returns the stop channel for manual watcher setup.
func (l *Loop) StopCh() <-chan struct{} {
	return l.stopCh
}
