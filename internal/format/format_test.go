package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	rows := [][]string{
		{"Variable", "Value"},
		{"BUCKET", "my-bucket"},
		{"ID", "i-123"},
	}

	want := strings.Join([]string{
		"Variable  Value    ",
		"--------  ---------",
		"BUCKET    my-bucket",
		"ID        i-123    ",
		"",
	}, "\n")
	assert.Equal(t, want, Table(rows))
}

func TestTableSingleColumn(t *testing.T) {
	rows := [][]string{{"Name"}, {"alpha"}, {"b"}}

	want := "Name \n-----\nalpha\nb    \n"
	assert.Equal(t, want, Table(rows))
}

func TestTableHeaderOnly(t *testing.T) {
	rows := [][]string{{"ID", "State"}}

	want := "ID  State\n--  -----\n"
	assert.Equal(t, want, Table(rows))
}

func TestTableEmpty(t *testing.T) {
	assert.Equal(t, "", Table(nil))
	assert.Equal(t, "", Table([][]string{}))
}

func TestKeyValue(t *testing.T) {
	pairs := [][2]string{
		{"Account", "123456789012"},
		{"ARN", "arn:aws:iam::123456789012:user/dev"},
	}

	want := "Account : 123456789012\n" +
		"ARN     : arn:aws:iam::123456789012:user/dev\n"
	assert.Equal(t, want, KeyValue(pairs))
}

func TestKeyValueEmpty(t *testing.T) {
	assert.Equal(t, "", KeyValue(nil))
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 150)
	got := Truncate(long, 100)
	assert.Len(t, got, 100)
	assert.Equal(t, strings.Repeat("x", 97)+"...", got)

	assert.Equal(t, "short", Truncate("short", 100))

	exact := strings.Repeat("y", 100)
	assert.Equal(t, exact, Truncate(exact, 100))

	assert.Equal(t, "ab", Truncate("abcdef", 2))
}

func TestSize(t *testing.T) {
	testCases := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{5 * 1024 * 1024 * 1024, "5.0 GiB"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, Size(tc.bytes))
	}
}
