package makefile

import "strings"

// The three escape contexts of a make description. Each function is total
// over its enumerated metacharacter set; anything outside the set passes
// through untouched.

// pathReplacer covers the characters GNU make treats specially in a target
// or prerequisite list: whitespace splits words, ':' ends the target list,
// '*', '?', '[' and ']' glob, '#' starts a comment, and '$' starts a
// variable reference (escaped by doubling, not backslash). '%' stays as-is:
// it is only a stem in pattern rules, and in an explicit rule the backslash
// of '\%' would become part of the file name.
var pathReplacer = strings.NewReplacer(
	" ", "\\ ",
	":", "\\:",
	"*", "\\*",
	"?", "\\?",
	"[", "\\[",
	"]", "\\]",
	"#", "\\#",
	"$", "$$",
)

// Path escapes a file path for use in a target or prerequisite list.
// Paths containing line breaks or backslashes are rejected earlier, at
// declaration time; they cannot round-trip through this context at all.
func Path(s string) string {
	return pathReplacer.Replace(s)
}

// recipeReplacer covers the single character make expands inside a recipe
// line: '$'. Everything else on a recipe line belongs to the shell and must
// reach it byte-for-byte.
var recipeReplacer = strings.NewReplacer(
	"$", "$$",
)

// RecipeLines escapes a shell command for embedding as recipe text. A make
// recipe line cannot contain a literal newline, so a multi-line command is
// split into consecutive recipe lines of the same rule. Each line runs in
// its own shell, sequentially, stopping at the first failure — the same
// semantics the newline had at the shell's top level.
func RecipeLines(cmd string) []string {
	lines := strings.Split(strings.ReplaceAll(cmd, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = recipeReplacer.Replace(line)
	}
	return lines
}

// displayReplacer covers text embedded in the single-quoted argument of
// printf '%b\n'. The shell only terminates a single-quoted string at an
// unescaped quote, so quotes use the close-escape-reopen idiom; make still
// expands '$' inside single quotes, so it is doubled; backslashes and line
// breaks are deferred to printf's %b escape decoding. '%' needs no escape
// here because the text is an argument, not the format string.
var displayReplacer = strings.NewReplacer(
	"\\", "\\\\",
	"'", `'\''`,
	"$", "$$",
	"\n", "\\n",
	"\r", "\\r",
	"\t", "\\t",
)

// Display escapes arbitrary text (titles, command echo lines) for the
// printf '%b' display context.
func Display(s string) string {
	return displayReplacer.Replace(s)
}
