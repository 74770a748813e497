package makefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "out/hello1", "out/hello1"},
		{"space", "a b", `a\ b`},
		// '%' is only special in pattern rules; escaping it in an explicit
		// rule would leave the backslash in the file name.
		{"percent untouched", "50%.txt", "50%.txt"},
		{"colon", "a:b", `a\:b`},
		{"star", "a*.txt", `a\*.txt`},
		{"question mark", "a?.txt", `a\?.txt`},
		{"brackets", "a[0].txt", `a\[0\].txt`},
		{"hash", "a#b", `a\#b`},
		{"dollar", "$out", "$$out"},
		{"combination", "a $b%", `a\ $$b%`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Path(tc.in))
		})
	}
}

func TestRecipeLines(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"plain", "echo foo > hello1", []string{"echo foo > hello1"}},
		{"dollar doubled", "echo $HOME", []string{"echo $$HOME"}},
		{"double dollar", "echo $$", []string{"echo $$$$"}},
		{"quotes untouched", `echo "it's"`, []string{`echo "it's"`}},
		{"newline splits", "echo a\necho b", []string{"echo a", "echo b"}},
		{"crlf splits", "echo a\r\necho b", []string{"echo a", "echo b"}},
		{"dollar on each line", "echo $A\necho $B", []string{"echo $$A", "echo $$B"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RecipeLines(tc.in))
		})
	}
}

func TestDisplay(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"single quote", "don't", `don'\''t`},
		{"two single quotes", "a'b'c", `a'\''b'\''c`},
		{"double quote untouched", `say "hi"`, `say "hi"`},
		{"dollar", "echo $HOME", "echo $$HOME"},
		{"backslash", `a\b`, `a\\b`},
		{"newline", "a\nb", `a\nb`},
		{"carriage return", "a\rb", `a\rb`},
		{"tab", "a\tb", `a\tb`},
		{"percent passes through", "100%", "100%"},
		{"combination", "'$\\", `'\''$$\\`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Display(tc.in))
		})
	}
}
