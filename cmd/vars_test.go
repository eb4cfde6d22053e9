package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv277/stratus/internal/session"
)

// run dispatches one command line through a fresh tree sharing the store,
// the way the interactive shell does
func run(t *testing.T, store *session.Store, args ...string) string {
	t.Helper()
	root := NewRootCmd(store)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestSetAndGet(t *testing.T) {
	store := session.NewStore()

	out := run(t, store, "set", "BUCKET", "my-data-bucket")
	assert.Equal(t, "Variable set: BUCKET = my-data-bucket\n", out)

	out = run(t, store, "get", "BUCKET")
	assert.Equal(t, "my-data-bucket\n", out)
}

func TestGetMissing(t *testing.T) {
	store := session.NewStore()
	out := run(t, store, "get", "NOPE")
	assert.Equal(t, "Variable not found: NOPE\n", out)
}

func TestSetResolvesValueOnce(t *testing.T) {
	store := session.NewStore()
	run(t, store, "set", "REGION", "eu-west-1")
	out := run(t, store, "set", "URL", "https://$REGION.example.com")
	assert.Equal(t, "Variable set: URL = https://eu-west-1.example.com\n", out)

	// stored value is fixed; later changes to REGION do not rewrite it
	run(t, store, "set", "REGION", "us-east-1")
	out = run(t, store, "get", "URL")
	assert.Equal(t, "https://eu-west-1.example.com\n", out)
}

func TestSetDoesNotRescanSubstitutedValue(t *testing.T) {
	store := session.NewStore()
	run(t, store, "set", "INNER", "$OUTER")
	run(t, store, "set", "OUTER", "resolved")

	// INNER stored the literal "$OUTER" since OUTER was unbound at set
	// time; echoing it resolves one level only
	out := run(t, store, "echo", "$INNER")
	assert.Equal(t, "$OUTER\n", out)
}

func TestExportIsAliasOfSet(t *testing.T) {
	store := session.NewStore()
	out := run(t, store, "export", "FOO", "bar")
	assert.Equal(t, "Variable set: FOO = bar\n", out)

	value, ok := store.Get("FOO")
	require.True(t, ok)
	assert.Equal(t, "bar", value)
}

func TestVarsEmpty(t *testing.T) {
	store := session.NewStore()
	out := run(t, store, "vars")
	assert.Equal(t, "No variables set\n", out)
}

func TestVarsListsSorted(t *testing.T) {
	store := session.NewStore()
	run(t, store, "set", "ZEBRA", "z")
	run(t, store, "set", "ALPHA", "a")

	out := run(t, store, "vars")
	assert.Contains(t, out, "Variable")
	assert.Contains(t, out, "Value")
	alphaAt := bytes.Index([]byte(out), []byte("ALPHA"))
	zebraAt := bytes.Index([]byte(out), []byte("ZEBRA"))
	require.GreaterOrEqual(t, alphaAt, 0)
	require.GreaterOrEqual(t, zebraAt, 0)
	assert.Less(t, alphaAt, zebraAt)
}

func TestVariablesAlias(t *testing.T) {
	store := session.NewStore()
	run(t, store, "set", "FOO", "bar")
	assert.Equal(t, run(t, store, "vars"), run(t, store, "variables"))
}

func TestUnset(t *testing.T) {
	store := session.NewStore()
	run(t, store, "set", "FOO", "bar")

	out := run(t, store, "unset", "FOO")
	assert.Equal(t, "Variable unset: FOO\n", out)

	out = run(t, store, "unset", "FOO")
	assert.Equal(t, "Variable not found: FOO\n", out)
}

func TestClearVars(t *testing.T) {
	store := session.NewStore()
	run(t, store, "set", "A", "1")
	run(t, store, "set", "B", "2")

	out := run(t, store, "clear-vars")
	assert.Equal(t, "Cleared 2 variables\n", out)
	assert.Zero(t, store.Len())

	run(t, store, "set", "A", "1")
	out = run(t, store, "clear-vars")
	assert.Equal(t, "Cleared 1 variable\n", out)

	out = run(t, store, "clear-vars")
	assert.Equal(t, "Cleared 0 variables\n", out)
}

func TestEchoResolves(t *testing.T) {
	store := session.NewStore()
	run(t, store, "set", "BUCKET", "my-data-bucket")

	out := run(t, store, "echo", "s3://$BUCKET/logs/")
	assert.Equal(t, "s3://my-data-bucket/logs/\n", out)

	out = run(t, store, "echo", "price", "is", "$5")
	assert.Equal(t, "price is $5\n", out)
}

func TestEchoUnboundPassesThrough(t *testing.T) {
	store := session.NewStore()
	out := run(t, store, "echo", "${MISSING}")
	assert.Equal(t, "${MISSING}\n", out)
}
