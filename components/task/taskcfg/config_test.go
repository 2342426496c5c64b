package taskcfg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/open-control-systems/task-hub/components/status"
)

func testConfigWriteFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tasks.toml")
	require.Nil(t, os.WriteFile(path, []byte(content), 0600))

	return path
}

func TestLoadSpecs(t *testing.T) {
	path := testConfigWriteFile(t, `
[[task]]
name = "TASK_A"
period_ms = 10
iterations = 5

[[task]]
name = "TASK_B"
period_ms = 16
iterations = 5
`)

	specs, err := LoadSpecs(path)
	require.Nil(t, err)
	require.Equal(t, 2, len(specs))

	require.Equal(t, "TASK_A", specs[0].Name)
	require.Equal(t, time.Millisecond*10, specs[0].Period)
	require.Equal(t, 5, specs[0].Iterations)

	require.Equal(t, "TASK_B", specs[1].Name)
	require.Equal(t, time.Millisecond*16, specs[1].Period)
	require.Equal(t, 5, specs[1].Iterations)
}

func TestLoadSpecsNoTasks(t *testing.T) {
	path := testConfigWriteFile(t, "")

	specs, err := LoadSpecs(path)
	require.Nil(t, specs)
	require.NotNil(t, err)
	require.True(t, errors.Is(err, status.StatusNoData))
}

func TestLoadSpecsUnknownKey(t *testing.T) {
	path := testConfigWriteFile(t, `
[[task]]
name = "TASK_A"
period_ms = 10
iterations = 5
priority = 3
`)

	specs, err := LoadSpecs(path)
	require.Nil(t, specs)
	require.NotNil(t, err)
	require.True(t, errors.Is(err, status.StatusInvalidState))
}

func TestLoadSpecsInvalidTask(t *testing.T) {
	path := testConfigWriteFile(t, `
[[task]]
name = "TASK_A"
period_ms = 10
iterations = -1
`)

	specs, err := LoadSpecs(path)
	require.Nil(t, specs)
	require.NotNil(t, err)
	require.True(t, errors.Is(err, status.StatusInvalidState))
}

func TestLoadSpecsMissingFile(t *testing.T) {
	specs, err := LoadSpecs(filepath.Join(t.TempDir(), "no-such.toml"))
	require.Nil(t, specs)
	require.NotNil(t, err)
}
