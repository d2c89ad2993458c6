package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/buddy/buddy"
	"github.com/lixenwraith/buddy/expression"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func noConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.yaml")
}

func TestExpressionsCommand(t *testing.T) {
	out := execute(t, "expressions")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1+len(expression.Default().All()))
	assert.True(t, strings.HasPrefix(lines[0], "KEY"))
	assert.Contains(t, lines[1], "neutral")
	assert.Contains(t, lines[2], "happy")
	assert.Contains(t, out, "until woken")
}

func TestTriggerKey(t *testing.T) {
	assert.Equal(t, "1", triggerKey(0))
	assert.Equal(t, "9", triggerKey(8))
	assert.Equal(t, "0", triggerKey(9))
	assert.Equal(t, "-", triggerKey(10))
}

func decodeStates(t *testing.T, out string) []buddy.State {
	t.Helper()
	var states []buddy.State
	sc := bufio.NewScanner(strings.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		var st buddy.State
		require.NoError(t, json.Unmarshal(sc.Bytes(), &st))
		states = append(states, st)
	}
	require.NoError(t, sc.Err())
	return states
}

func TestSimulateDeterministic(t *testing.T) {
	cfg := noConfig(t)
	args := []string{"simulate", "--config", cfg, "--seed", "7", "--frames", "240", "--every", "60"}

	a := execute(t, args...)
	b := execute(t, args...)
	assert.Equal(t, a, b)

	states := decodeStates(t, a)
	require.Len(t, states, 4)
	assert.Equal(t, uint64(240), states[3].Frame)
}

func TestSimulateTrigger(t *testing.T) {
	out := execute(t, "simulate", "--config", noConfig(t), "--frames", "10", "--every", "10",
		"--trigger", "5=wink")

	states := decodeStates(t, out)
	require.Len(t, states, 1)
	assert.Equal(t, expression.Wink, states[0].Target.Name)
}

func TestSimulateFPSFlag(t *testing.T) {
	out := execute(t, "simulate", "--config", noConfig(t), "--seed", "3", "--fps", "30", "--frames", "1")
	states := decodeStates(t, out)
	require.Len(t, states, 1)

	// intervals are rolled in frames at the reference rate
	assert.GreaterOrEqual(t, states[0].NextBlinkTime, 60)
	assert.LessOrEqual(t, states[0].NextBlinkTime, 180)
	assert.GreaterOrEqual(t, states[0].NextExpressionTime, 90)
	assert.LessOrEqual(t, states[0].NextExpressionTime, 210)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buddy.yaml")
	out := execute(t, "config", "init", path)
	assert.Equal(t, path, strings.TrimSpace(out))

	_, err := os.Stat(path)
	require.NoError(t, err)

	out = execute(t, "config", "show", "--config", path, "--fps", "24")
	var shown struct {
		File   string
		Config struct {
			Animation struct{ FPS int }
		}
	}
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, path, shown.File)
	assert.Equal(t, 24, shown.Config.Animation.FPS)
}

func TestRejectsBadFlagValue(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"simulate", "--config", noConfig(t), "--fps", "0", "--frames", "1"})
	assert.Error(t, cmd.Execute())
}
