package aws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseS3Path(t *testing.T) {
	tests := []struct {
		path   string
		bucket string
		key    string
	}{
		{"s3://my-bucket", "my-bucket", ""},
		{"s3://my-bucket/", "my-bucket", ""},
		{"s3://my-bucket/file.txt", "my-bucket", "file.txt"},
		{"s3://my-bucket/deep/prefix/file.txt", "my-bucket", "deep/prefix/file.txt"},
	}

	for _, tt := range tests {
		bucket, key, err := ParseS3Path(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.bucket, bucket, tt.path)
		assert.Equal(t, tt.key, key, tt.path)
	}
}

func TestParseS3PathRejectsNonS3(t *testing.T) {
	for _, path := range []string{"", "my-bucket/file.txt", "http://my-bucket/file.txt", "s3:/bucket"} {
		_, _, err := ParseS3Path(path)
		assert.Error(t, err, path)
	}
}

func TestIsS3Path(t *testing.T) {
	assert.True(t, IsS3Path("s3://bucket/key"))
	assert.True(t, IsS3Path("s3://bucket"))
	assert.False(t, IsS3Path("/tmp/file.txt"))
	assert.False(t, IsS3Path("bucket/key"))
}
