// Package vars implements a pull-based, versioned reactive variable engine.
//
// Variables are read with Get and written with Set or Modify against a Vars
// update context. Writes never take effect immediately: they are queued and
// applied in FIFO order by the next call to Vars.Apply, so every read within
// one update tick observes a consistent snapshot. Derived variables (Map,
// MapBidi, Map2, When) recompute lazily, at most once per source version.
//
// A cooperative animation scheduler (Animations) drives per-frame closures
// that write through the same deferred-apply queue. Animation writes are
// ordered by a monotonically increasing write ID: the most recently started
// animation always wins over older animations touching the same variable,
// and a direct Set issued after an animation starts always overrides it.
//
// Thread Safety Rules:
//   - Get is safe to call from any goroutine
//   - Set, Modify, Apply and animation methods must run on the main loop
//   - For background updates, use Loop.QueueUpdate or channel watchers
//
// Example usage:
//
//	vs := vars.NewVars()
//	count := vars.NewValue(0)
//	label := vars.Map(count, func(n int) string {
//	    return fmt.Sprintf("Count: %d", n)
//	})
//	count.Set(vs, 1)
//	vs.Apply()
//	fmt.Println(label.Get(vs)) // "Count: 1"
package vars
