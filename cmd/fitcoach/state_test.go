package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "storage:\n  type: leveldb\n  leveldb:\n    path: " + filepath.Join(dir, "db") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func runState(t *testing.T, cfgPath string, args ...string) string {
	t.Helper()
	cmd := stateCMD(&cfgPath)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestStateShowDefaults(t *testing.T) {
	cfgPath := writeTestConfig(t)

	var st storedState
	require.NoError(t, json.Unmarshal([]byte(runState(t, cfgPath, "show")), &st))
	assert.True(t, st.DarkMode)
	assert.Equal(t, "Jane Doe", st.Profile.Name)
	assert.Nil(t, st.Plan)
}

func TestStateDarkModeAndClear(t *testing.T) {
	cfgPath := writeTestConfig(t)

	runState(t, cfgPath, "dark-mode", "off")
	var st storedState
	require.NoError(t, json.Unmarshal([]byte(runState(t, cfgPath, "show")), &st))
	assert.False(t, st.DarkMode)

	runState(t, cfgPath, "clear", "--all")
	require.NoError(t, json.Unmarshal([]byte(runState(t, cfgPath, "show")), &st))
	assert.True(t, st.DarkMode)
}

func TestStateDarkModeRejectsBadArg(t *testing.T) {
	cfgPath := writeTestConfig(t)
	cmd := stateCMD(&cfgPath)
	cmd.SetArgs([]string{"dark-mode", "maybe"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
