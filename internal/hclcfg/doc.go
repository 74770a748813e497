// Package hclcfg loads workflow declarations from HCL files and translates
// them into the workflow model. File-declared and code-declared workflows
// go through identical builder validation: the loader never constructs a
// Step behind the builder's back.
package hclcfg
