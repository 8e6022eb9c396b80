package poller

import "sync/atomic"

// Controls is the state shared between the dashboard and the poller.
// The dashboard flips the flags; the poller reads them once per tick.
type Controls struct {
	active       atomic.Bool
	showClusters atomic.Bool
}

// NewControls returns controls with monitoring active.
func NewControls(showClusters bool) *Controls {
	c := &Controls{}
	c.active.Store(true)
	c.showClusters.Store(showClusters)
	return c
}

// Active reports whether sampling is enabled.
func (c *Controls) Active() bool { return c.active.Load() }

// ShowClusters reports whether clustering runs each tick.
func (c *Controls) ShowClusters() bool { return c.showClusters.Load() }

// Pause stops sampling from the next tick on. A tick already running completes.
func (c *Controls) Pause() { c.active.Store(false) }

// Resume re-enables sampling.
func (c *Controls) Resume() { c.active.Store(true) }

// Toggle flips between paused and active and returns the new active state.
func (c *Controls) Toggle() bool {
	for {
		cur := c.active.Load()
		if c.active.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

// SetShowClusters enables or disables clustering.
func (c *Controls) SetShowClusters(on bool) { c.showClusters.Store(on) }

// ToggleClusters flips the clustering flag and returns the new value.
func (c *Controls) ToggleClusters() bool {
	for {
		cur := c.showClusters.Load()
		if c.showClusters.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}
