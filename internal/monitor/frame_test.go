package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/sysdash/internal/poller"
)

func TestRenderFrame(t *testing.T) {
	plainOutput(t)

	samples := makeSamples(3, 25, 35)
	u := poller.Update{Seq: 3, Sample: samples[2], Snapshot: samples}

	out := RenderFrame(u, Options{Hostname: "frame-host", Mouse: true}, 100, 40)
	assert.Contains(t, out, "frame-host")
	assert.Contains(t, out, "3/60 samples")
	assert.Contains(t, out, "CPU: 25.0%")
	assert.Equal(t, out, RenderFrame(u, Options{Hostname: "frame-host"}, 100, 40))
}
