package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single word", input: "vars", want: []string{"vars"}},
		{name: "simple words", input: "set FOO bar", want: []string{"set", "FOO", "bar"}},
		{name: "collapses whitespace", input: "  set   FOO \t bar  ", want: []string{"set", "FOO", "bar"}},
		{name: "double quotes group words", input: `set MSG "hello world"`, want: []string{"set", "MSG", "hello world"}},
		{name: "single quotes group words", input: "set MSG 'hello world'", want: []string{"set", "MSG", "hello world"}},
		{name: "empty quoted argument", input: `set FOO ""`, want: []string{"set", "FOO", ""}},
		{name: "quotes joined to a word", input: `echo pre"mid"post`, want: []string{"echo", "premidpost"}},
		{name: "escaped space", input: `echo a\ b`, want: []string{"echo", "a b"}},
		{name: "escaped quote", input: `echo \"hi\"`, want: []string{"echo", `"hi"`}},
		{name: "dollar survives quoting", input: `echo "$FOO"`, want: []string{"echo", "$FOO"}},
		{name: "single quotes keep backslashes", input: `echo 'a\b'`, want: []string{"echo", `a\b`}},
		{name: "double quote inside single quotes", input: `echo 'say "hi"'`, want: []string{"echo", `say "hi"`}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Split(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSplitUnterminatedQuote(t *testing.T) {
	for _, input := range []string{`echo "open`, "echo 'open", `echo trailing\`} {
		_, err := Split(input)
		assert.ErrorIs(t, err, ErrUnterminatedQuote, "input: %s", input)
	}
}

func TestSplitEmptyInput(t *testing.T) {
	args, err := Split("   ")
	require.NoError(t, err)
	assert.Empty(t, args)
}
