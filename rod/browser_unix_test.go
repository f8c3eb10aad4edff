//go:build integration && !windows

package rod_test

import (
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/pagedigest/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowser_Close_KillsLauncherProcess(t *testing.T) {
	t.Parallel()

	b, err := rod.LaunchBrowser()
	require.NoError(t, err)

	pid := b.PID()
	require.NotZero(t, pid)

	// Signal 0 only checks that the process exists
	require.NoError(t, syscall.Kill(pid, syscall.Signal(0)))

	require.NoError(t, b.Close())
	time.Sleep(100 * time.Millisecond)

	assert.Error(t, syscall.Kill(pid, syscall.Signal(0)))
	assert.Zero(t, b.PID())
}
