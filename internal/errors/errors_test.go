package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrSample,
		ErrCluster,
		ErrRender,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid configuration in .sysdash.yaml",
			suggestion: "Check your configuration file syntax",
		},
		{
			name:       "sample error",
			code:       ErrSample,
			message:    "Failed to read CPU usage",
			suggestion: "Check that /proc is mounted",
		},
		{
			name:       "cluster error",
			code:       ErrCluster,
			message:    "Not enough samples to cluster",
			suggestion: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestError_Format(t *testing.T) {
	cause := fmt.Errorf("open /proc/diskstats: no such file or directory")
	err := WrapWithCode(cause, ErrSample, "Failed to read disk counters", "Run on a host that exposes disk statistics")

	out := err.Error()
	lines := strings.Split(out, "\n")
	assert.Equal(t, "✗ Failed to read disk counters", lines[0])
	assert.Contains(t, out, "no such file or directory")
	assert.Contains(t, out, "Run on a host that exposes disk statistics")
}

func TestUnwrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := WrapWithCode(sentinel, ErrConfig, "bad config", "")
	assert.True(t, errors.Is(err, sentinel))

	wrapped := fmt.Errorf("loading: %w", err)
	assert.True(t, IsCode(wrapped, ErrConfig))
	assert.False(t, IsCode(wrapped, ErrSample))
}

func TestIsCode_Nil(t *testing.T) {
	assert.False(t, IsCode(nil, ErrConfig))
	assert.False(t, IsCode(errors.New("plain"), ErrConfig))
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain", err: errors.New("disk gone"), want: "disk gone"},
		{name: "multi-line plain", err: errors.New("first\nsecond"), want: "first"},
		{
			name: "structured with cause",
			err:  WrapWithCode(errors.New("permission denied"), ErrSample, "Failed to read memory", "hint"),
			want: "Failed to read memory: permission denied",
		},
		{
			name: "structured without cause",
			err:  New(ErrRender, "Terminal too small", "Resize"),
			want: "Terminal too small",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.err))
		})
	}
}
