package hclcfg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adehecq/make-workflow/internal/workflow"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const helloFlow = `
workflow {
  title   = "*** Test flow ***"
  targets = ["hello2", "hello3"]
}

step "hello1" {
  title    = "** Hello1 **"
  commands = ["echo foo > hello1"]
  outputs  = ["hello1"]
}

step "hello2" {
  commands = ["sed 's/foo/faa/' hello1 > hello2"]
  inputs   = ["hello1"]
  outputs  = ["hello2"]
}

step "hello3" {
  commands = ["echo bar > hello3"]
  outputs  = ["hello3"]
}
`

func TestLoadSingleFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hello.hcl", helloFlow)

	w, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "*** Test flow ***", w.Title())
	assert.Equal(t, []string{"hello2", "hello3"}, w.FinalOutputs())

	steps := w.Steps()
	require.Len(t, steps, 3)
	assert.Equal(t, "** Hello1 **", steps[0].Title)
	assert.Equal(t, []string{"echo foo > hello1"}, steps[0].Commands)
	assert.Equal(t, []string{"hello1"}, steps[1].Inputs)
	assert.Equal(t, []string{"hello3"}, steps[2].Outputs)
}

func TestLoadDirectoryMergesFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "10-main.hcl", `
workflow {
  targets = ["b"]
}

step "a" {
  commands = ["gen a"]
  outputs  = ["a"]
}
`)
	writeFile(t, dir, "20-extra.hcl", `
step "b" {
  commands = ["gen b"]
  inputs   = ["a"]
  outputs  = ["b"]
}

clean {
  commands = ["rm -f a b"]
}
`)
	writeFile(t, dir, "notes.txt", "not a workflow file")

	w, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, w.Steps(), 2)
	assert.Equal(t, []string{"rm -f a b"}, w.CleanCommands())
}

func TestLoadEnvInterpolation(t *testing.T) {
	t.Setenv("MKFLOW_TEST_OUT", "result")

	path := writeFile(t, t.TempDir(), "env.hcl", `
step "gen" {
  commands = ["touch ${env.MKFLOW_TEST_OUT}.txt"]
  outputs  = ["${env.MKFLOW_TEST_OUT}.txt"]
}
`)

	w, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, w.Steps(), 1)
	assert.Equal(t, []string{"result.txt"}, w.Steps()[0].Outputs)
	assert.Equal(t, []string{"touch result.txt"}, w.Steps()[0].Commands)
}

func TestLoadSecondaryStep(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sec.hcl", `
step "tmp" {
  commands  = ["gen tmp"]
  outputs   = ["tmp"]
  secondary = true
}

step "final" {
  commands = ["gen final"]
  inputs   = ["tmp"]
  outputs  = ["final"]
}
`)

	w, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"tmp"}, w.SecondaryOutputs())
	assert.Equal(t, []string{"final"}, w.RootOutputs())
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing path", func(t *testing.T) {
		_, err := NewLoader().Load(ctx, filepath.Join(t.TempDir(), "absent.hcl"))
		assert.ErrorContains(t, err, "stat workflow path")
	})

	t.Run("directory without workflow files", func(t *testing.T) {
		_, err := NewLoader().Load(ctx, t.TempDir())
		assert.ErrorContains(t, err, "no .hcl workflow files")
	})

	t.Run("syntax error", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "broken.hcl", "step \"a\" {\n")
		_, err := NewLoader().Load(ctx, path)
		assert.ErrorContains(t, err, "parse")
	})

	t.Run("step without commands attribute", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "nocmd.hcl", `
step "a" {
  outputs = ["a"]
}
`)
		_, err := NewLoader().Load(ctx, path)
		assert.Error(t, err)
	})

	t.Run("duplicate step label", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "dup.hcl", `
step "a" {
  commands = ["true"]
  outputs  = ["x"]
}

step "a" {
  commands = ["true"]
  outputs  = ["y"]
}
`)
		_, err := NewLoader().Load(ctx, path)
		assert.ErrorContains(t, err, `duplicate step label "a"`)
	})

	t.Run("duplicate output surfaces as builder error", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "dupout.hcl", `
step "a" {
  commands = ["true"]
  outputs  = ["x"]
}

step "b" {
  commands = ["true"]
  outputs  = ["x"]
}
`)
		_, err := NewLoader().Load(ctx, path)
		var dup *workflow.DuplicateOutputError
		assert.ErrorAs(t, err, &dup)
	})
}
