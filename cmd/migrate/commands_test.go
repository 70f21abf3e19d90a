package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPlanThenUp(t *testing.T) {
	dsn := "sqlite://" + filepath.Join(t.TempDir(), "tracker.db")

	out, err := execute(t, "plan", "--database-url", dsn, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "create table entity")
	assert.Contains(t, out, "create table document")

	out, err = execute(t, "up", "--database-url", dsn, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "created table entity")

	out, err = execute(t, "plan", "--database-url", dsn, "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "Schema is up to date\n", out)

	out, err = execute(t, "up", "--database-url", dsn, "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "Schema is up to date\n", out)
}

func TestUnsupportedDatabaseURL(t *testing.T) {
	_, err := execute(t, "plan", "--database-url", "mysql://localhost/db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database URL scheme")
}

func TestUpRejectsArguments(t *testing.T) {
	_, err := execute(t, "up", "extra")
	require.Error(t, err)
}
