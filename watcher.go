package vars

import (
	"time"

	"github.com/grindlemire/go-vars/pkg/debug"
)

// Watcher represents a deferred event source that starts when the loop runs.
// Watchers are collected during setup and started by Loop.Run.
type Watcher interface {
	// Start begins the watcher goroutine. The queue channel and stopCh are
	// provided by the Loop; queued functions run on the main loop.
	Start(queue chan<- func(), stopCh <-chan struct{})
}

// ChannelWatcher watches a channel and calls handler for each value.
type ChannelWatcher[T any] struct {
	ch      <-chan T
	handler func(T)
}

// Watch creates a watcher that calls fn on the main loop for each value
// received on ch.
//
// Example:
//
//	dataCh := make(chan string)
//	w := vars.Watch(dataCh, func(s string) {
//	    title.Set(vs, s)
//	})
func Watch[T any](ch <-chan T, fn func(T)) *ChannelWatcher[T] {
	return &ChannelWatcher[T]{ch: ch, handler: fn}
}

// WatchVar creates a watcher that writes each value received on ch to v.
// The Set is scheduled on the main loop, so it is safe regardless of which
// goroutine feeds the channel.
func WatchVar[T any](vs *Vars, ch <-chan T, v Var[T]) *ChannelWatcher[T] {
	return Watch(ch, func(val T) {
		v.Set(vs, val)
	})
}

// Start the watcher.
func (w *ChannelWatcher[T]) Start(queue chan<- func(), stopCh <-chan struct{}) {
	go func() {
		for {
			select {
			case <-stopCh:
				return
			case val, ok := <-w.ch:
				if !ok {
					return // Channel closed
				}
				v := val
				select {
				case queue <- func() {
					w.handler(v)
				}:
				case <-stopCh:
					return
				}
			}
		}
	}()
}

// timerWatcher fires at a regular interval.
type timerWatcher struct {
	interval time.Duration
	handler  func()
}

// OnTimer creates a timer watcher that fires at the given interval.
// The handler is called on the main loop.
func OnTimer(interval time.Duration, handler func()) Watcher {
	return &timerWatcher{interval: interval, handler: handler}
}

// Start the watcher.
func (w *timerWatcher) Start(queue chan<- func(), stopCh <-chan struct{}) {
	go func() {
		debug.Log("timerWatcher started")
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				select {
				case queue <- w.handler:
				case <-stopCh:
					return
				}
			}
		}
	}()
}
