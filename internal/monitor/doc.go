// Package monitor implements the real-time TUI dashboard for local host metrics.
//
// The dashboard shows CPU, memory and disk read history as braille charts,
// a cpu/memory scatter colored by behavioral cluster, and live throughput
// readouts, with a control panel for pausing, toggling clusters and
// viewing recommendations.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Model: Holds the latest history snapshot, cluster assignment and UI state
//   - Update: Processes messages (keystrokes, clicks, poller updates)
//   - View: Renders the current state to a string for display
//
// Sampling does not happen here. A poller goroutine owns the history and the
// analyzer and publishes immutable snapshots on a channel; the model drains
// that channel one message at a time with waitForUpdate:
//
//  1. Init() returns waitForUpdate, which blocks on the channel
//  2. updateMsg arrives and replaces the snapshot and assignment
//  3. Update re-arms waitForUpdate and View re-renders
//
// Pause and cluster toggles are written to the poller's atomic Controls, so
// the UI never blocks on the poller. If sampling fails the poller sends a
// final update carrying the error and closes the channel; the status turns
// to Stopped and every key keeps working.
//
// # Layout Modes
//
//	LayoutMinimal  (<80 cols)  - Readouts and one-row sparklines
//	LayoutStacked  (80-120)    - Charts above the scatter
//	LayoutSplit    (120+)      - Charts left, scatter right
//
// # Keyboard Shortcuts
//
//	p, space    - Pause / resume monitoring
//	c           - Toggle cluster coloring
//	r           - Recommendations
//	o           - Start optimization
//	?           - Toggle help overlay
//	esc         - Close overlay
//	q, Ctrl+C   - Quit
//
// With mouse support on, the control panel buttons are clickable.
package monitor
