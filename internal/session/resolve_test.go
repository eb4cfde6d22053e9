package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	s := NewStore()
	s.Set("FOO", "bar")
	s.Set("EMPTY", "")
	s.Set("BUCKET", "my-data-bucket")
	s.Set("A_1", "one")

	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty input", input: "", want: ""},
		{name: "no references", input: "plain text", want: "plain text"},
		{name: "bare reference", input: "name=$FOO", want: "name=bar"},
		{name: "braced reference", input: "name=${FOO}", want: "name=bar"},
		{name: "whole input is a reference", input: "$FOO", want: "bar"},
		{name: "bare form is greedy", input: "$FOOBAR", want: "$FOOBAR"},
		{name: "brace stops the name", input: "${FOO}BAR", want: "barBAR"},
		{name: "unbound bare reference", input: "[$MISSING]", want: "[$MISSING]"},
		{name: "unbound braced reference", input: "[${MISSING}]", want: "[${MISSING}]"},
		{name: "empty value substitutes", input: "[$EMPTY]", want: "[]"},
		{name: "adjacent references", input: "$FOO$FOO", want: "barbar"},
		{name: "digits and underscores in name", input: "$A_1!", want: "one!"},
		{name: "trailing dollar", input: "cost: $", want: "cost: $"},
		{name: "dollar before digit", input: "$1.50", want: "$1.50"},
		{name: "dollar before punctuation", input: "a$-b", want: "a$-b"},
		{name: "double dollar", input: "$$FOO", want: "$bar"},
		{name: "unterminated brace", input: "${FOO", want: "${FOO"},
		{name: "empty braces", input: "${}", want: "${}"},
		{name: "braced name starting with digit", input: "${1FOO}", want: "${1FOO}"},
		{name: "s3 uri", input: "s3://$BUCKET/logs/app.log", want: "s3://my-data-bucket/logs/app.log"},
		{name: "multiple references in one input", input: "cp $FOO ${BUCKET}/$A_1", want: "cp bar my-data-bucket/one"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.Resolve(tc.input))
		})
	}
}

func TestResolveDoesNotRescanValues(t *testing.T) {
	s := NewStore()
	s.Set("A", "$B")
	s.Set("B", "deep")

	assert.Equal(t, "$B", s.Resolve("$A"))
}

func TestResolveValueWithDollarIsVerbatim(t *testing.T) {
	s := NewStore()
	s.Set("PRICE", "$5.00")

	assert.Equal(t, "total $5.00", s.Resolve("total $PRICE"))
}

func TestResolveSeesCurrentBindings(t *testing.T) {
	s := NewStore()
	s.Set("BUCKET", "my-bucket")
	assert.Equal(t, "s3://my-bucket/key", s.Resolve("s3://$BUCKET/key"))

	s.Set("BUCKET", "other-bucket")
	assert.Equal(t, "s3://other-bucket/key", s.Resolve("s3://$BUCKET/key"))

	s.Remove("BUCKET")
	assert.Equal(t, "s3://$BUCKET/key", s.Resolve("s3://$BUCKET/key"))
}

func TestResolveStableOnResolvedOutput(t *testing.T) {
	s := NewStore()
	s.Set("FOO", "bar")

	out := s.Resolve("x=$FOO and $MISSING")
	assert.Equal(t, "x=bar and $MISSING", out)
	assert.Equal(t, out, s.Resolve(out))
}

func TestResolveWithLookupFunc(t *testing.T) {
	upper := func(name string) (string, bool) {
		return strings.ToUpper(name), true
	}

	assert.Equal(t, "FOO-BAR", Resolve("$foo-${bar}", upper))
}
