package hclcfg

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/adehecq/make-workflow/internal/ctxlog"
	"github.com/adehecq/make-workflow/internal/fsutil"
	"github.com/adehecq/make-workflow/internal/schema"
	"github.com/adehecq/make-workflow/internal/workflow"
)

// Extension is the suffix of workflow declaration files.
const Extension = ".hcl"

// Loader reads workflow declaration files.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a loader with a fresh HCL parser.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load reads the given path — a single file, or a directory whose *.hcl
// files are merged — and returns the declared workflow.
func (l *Loader) Load(ctx context.Context, path string) (*workflow.Workflow, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat workflow path: %w", err)
	}

	paths := []string{path}
	if info.IsDir() {
		paths, err = fsutil.FindFilesByExtension(path, Extension)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", path, err)
		}
		if len(paths) == 0 {
			return nil, fmt.Errorf("no %s workflow files under %q", Extension, path)
		}
	}
	logger.Debug("hclcfg: loading workflow files.", "count", len(paths))

	files := make([]*hcl.File, 0, len(paths))
	for _, p := range paths {
		f, diags := l.parser.ParseHCLFile(p)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parse %s: %w", p, diags)
		}
		files = append(files, f)
	}

	var root schema.File
	if diags := gohcl.DecodeBody(hcl.MergeFiles(files), evalContext(), &root); diags.HasErrors() {
		return nil, fmt.Errorf("decode workflow: %w", diags)
	}

	return translate(ctx, &root)
}

// evalContext builds the expression scope for workflow files. The process
// environment is exposed as the `env` map, so declarations can splice
// values like `"${env.HOME}/out.txt"`.
func evalContext() *hcl.EvalContext {
	envMap := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		envMap[k] = cty.StringVal(v)
	}

	env := cty.MapValEmpty(cty.String)
	if len(envMap) > 0 {
		env = cty.MapVal(envMap)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}
}
