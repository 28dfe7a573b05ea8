package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePIDFile_WritesOwnPID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ytmirror.pid")

	cleanup, err := writePIDFile(path)
	require.NoError(t, err)
	defer cleanup()

	pid, err := readPIDFile(path)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}

func TestWritePIDFile_SecondHolderRefused(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ytmirror.pid")

	cleanup, err := writePIDFile(path)
	require.NoError(t, err)
	defer cleanup()

	_, err = writePIDFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}

func TestWritePIDFile_CleanupRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ytmirror.pid")

	cleanup, err := writePIDFile(path)
	require.NoError(t, err)

	cleanup()

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWritePIDFile_EmptyPath(t *testing.T) {
	_, err := writePIDFile("")
	require.Error(t, err)
}

func TestReadPIDFile_InvalidContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ytmirror.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid\n"), 0o644))

	_, err := readPIDFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PID")
}

func TestWatcherPID_LiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ytmirror.pid")

	cleanup, err := writePIDFile(path)
	require.NoError(t, err)
	defer cleanup()

	pid, running := watcherPID(path)
	assert.True(t, running)
	assert.Equal(t, os.Getpid(), pid)
}

func TestWatcherPID_StaleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ytmirror.pid")

	// A PID far above the default kernel pid_max.
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(1<<22+1)+"\n"), 0o644))

	_, running := watcherPID(path)
	assert.False(t, running)
}

func TestWatcherPID_NoFile(t *testing.T) {
	_, running := watcherPID(filepath.Join(t.TempDir(), "ytmirror.pid"))
	assert.False(t, running)
}

func TestSendSIGHUP_NoFile(t *testing.T) {
	err := sendSIGHUP(filepath.Join(t.TempDir(), "ytmirror.pid"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "no running watcher"))
}
