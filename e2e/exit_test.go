//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitExit(t *testing.T, tf *TUITestFramework) {
	t.Helper()
	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	select {
	case exitErr := <-done:
		require.NoError(t, exitErr, "Process should exit cleanly")
	case <-time.After(3 * time.Second):
		tf.DumpTailOnFail(t, "exit-failure", 4096)
		t.Fatal("Application did not exit within timeout")
	}
}

func TestExitSavesValues(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready(), "Should receive ready signal")

	require.NoError(t, tf.Up())
	require.True(t, tf.WaitForStatusMessage("single: Ringo", defaultWait))

	require.NoError(t, tf.Quit())
	waitExit(t, tf)

	cfg, err := tf.ReadConfig()
	require.NoError(t, err, "Config should be written on exit")
	assert.Contains(t, cfg, "Ringo")
	assert.Contains(t, cfg, "autosave_on_exit = true")
}

func TestExitWithCtrlC(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready(), "Should receive ready signal")

	require.NoError(t, tf.SendCtrlC())
	waitExit(t, tf)
}

func TestConfigFromFile(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	original := `
version = 1

[single]
options = ["Red", "Green", "Blue"]
value = "Green"

[ui]
autosave_on_exit = false
`
	require.NoError(t, tf.WriteConfig(original))

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("value: Green"), "Should use the configured value")

	require.NoError(t, tf.Down())
	require.True(t, tf.WaitForStatusMessage("single: Blue", defaultWait))

	require.NoError(t, tf.Quit())
	waitExit(t, tf)

	cfg, err := tf.ReadConfig()
	require.NoError(t, err)
	assert.Equal(t, original, cfg, "autosave is off")
}
