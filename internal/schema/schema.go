// Package schema defines the HCL shapes of workflow declaration files.
// These structs carry gohcl tags only; translation into the workflow model
// lives in the hclcfg package.
package schema

// Workflow represents the optional top-level `workflow` block: the outputs
// the run ultimately cares about and presentation settings.
type Workflow struct {
	Title   string   `hcl:"title,optional"`
	Targets []string `hcl:"targets,optional"`
	Quiet   bool     `hcl:"quiet,optional"`
}

// Step represents a `step` block: one declared unit of work.
type Step struct {
	Name       string   `hcl:"name,label"`
	Title      string   `hcl:"title,optional"`
	Commands   []string `hcl:"commands"`
	Inputs     []string `hcl:"inputs,optional"`
	SoftInputs []string `hcl:"soft_inputs,optional"`
	Outputs    []string `hcl:"outputs"`
	Secondary  bool     `hcl:"secondary,optional"`
}

// Clean represents a `clean` block: commands for the explicit clean goal.
type Clean struct {
	Commands []string `hcl:"commands"`
}

// File represents the top-level structure of a workflow file (or of several
// merged files).
type File struct {
	Workflow *Workflow `hcl:"workflow,block"`
	Steps    []*Step   `hcl:"step,block"`
	Cleans   []*Clean  `hcl:"clean,block"`
}
