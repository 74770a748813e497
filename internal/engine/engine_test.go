package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMake writes an executable script that mimics a make binary, so the
// probe and classification logic can be tested without GNU make installed.
func fakeMake(t *testing.T, script string) *Make {
	t.Helper()
	path := filepath.Join(t.TempDir(), "make")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return NewMake(path)
}

func TestProbe(t *testing.T) {
	ctx := context.Background()

	t.Run("modern make gets grouped targets", func(t *testing.T) {
		m := fakeMake(t, `echo "GNU Make 4.3"; echo "Built for x86_64-pc-linux-gnu"`)
		caps, err := m.Probe(ctx)
		require.NoError(t, err)
		assert.Equal(t, "v4.3", caps.Version)
		assert.True(t, caps.GroupedTargets)
	})

	t.Run("old make falls back to chained rules", func(t *testing.T) {
		m := fakeMake(t, `echo "GNU Make 4.2.1"`)
		caps, err := m.Probe(ctx)
		require.NoError(t, err)
		assert.False(t, caps.GroupedTargets)
	})

	t.Run("unparseable version is not fatal", func(t *testing.T) {
		m := fakeMake(t, `echo "something else entirely"`)
		caps, err := m.Probe(ctx)
		require.NoError(t, err)
		assert.Empty(t, caps.Version)
		assert.False(t, caps.GroupedTargets)
	})

	t.Run("missing binary is an engine error", func(t *testing.T) {
		m := NewMake(filepath.Join(t.TempDir(), "no-such-make"))
		_, err := m.Probe(ctx)
		var engineErr *EngineError
		assert.ErrorAs(t, err, &engineErr)
	})
}

func TestRunOptionsArgs(t *testing.T) {
	cases := []struct {
		name string
		opts RunOptions
		want []string
	}{
		{
			name: "serial defaults",
			opts: RunOptions{Jobs: 1},
			want: []string{"-f", "wf.mk"},
		},
		{
			name: "parallel",
			opts: RunOptions{Jobs: 4},
			want: []string{"-f", "wf.mk", "-j", "4"},
		},
		{
			name: "dry run",
			opts: RunOptions{Jobs: 1, DryRun: true},
			want: []string{"-f", "wf.mk", "-n", "--no-print-directory"},
		},
		{
			name: "everything",
			opts: RunOptions{
				Jobs: 2, DryRun: true, Debug: true, IgnoreErrors: true,
				Force: true, Clean: true, ExtraArgs: []string{"--warn-undefined-variables"},
			},
			want: []string{
				"-f", "wf.mk", "-j", "2", "-n", "--no-print-directory",
				"-d", "-i", "-B", "--warn-undefined-variables", "clean",
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.opts.args("wf.mk")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("zero jobs rejected", func(t *testing.T) {
		_, err := (&RunOptions{}).args("wf.mk")
		assert.ErrorContains(t, err, "jobs must be at least 1")
	})
	t.Run("negative jobs rejected", func(t *testing.T) {
		_, err := (&RunOptions{Jobs: -2}).args("wf.mk")
		assert.ErrorContains(t, err, "jobs must be at least 1")
	})
}

func TestRunClassifiesOutcomes(t *testing.T) {
	ctx := context.Background()
	description := filepath.Join(t.TempDir(), "wf.mk")
	require.NoError(t, os.WriteFile(description, []byte("MAIN:\n"), 0o644))

	t.Run("success", func(t *testing.T) {
		m := fakeMake(t, "exit 0")
		assert.NoError(t, m.Run(ctx, description, RunOptions{Jobs: 1}))
	})

	t.Run("command failure carries the exit code", func(t *testing.T) {
		m := fakeMake(t, "exit 2")
		err := m.Run(ctx, description, RunOptions{Jobs: 1})
		var cmdErr *CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, 2, cmdErr.ExitCode)
	})

	t.Run("missing engine binary", func(t *testing.T) {
		m := NewMake(filepath.Join(t.TempDir(), "no-such-make"))
		err := m.Run(ctx, description, RunOptions{Jobs: 1})
		var engineErr *EngineError
		assert.ErrorAs(t, err, &engineErr)
	})

	t.Run("bad options surface before any invocation", func(t *testing.T) {
		m := NewMake(filepath.Join(t.TempDir(), "no-such-make"))
		err := m.Run(ctx, description, RunOptions{Jobs: 0})
		assert.ErrorContains(t, err, "jobs must be at least 1")
	})

	t.Run("cancelled context aborts before the lock wait", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		m := fakeMake(t, "exit 0")
		err := m.Run(cancelled, description, RunOptions{Jobs: 1})
		var engineErr *EngineError
		require.ErrorAs(t, err, &engineErr)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
