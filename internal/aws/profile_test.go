package aws

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAWSFiles(t *testing.T, credentials, config string) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".aws")
	require.NoError(t, os.MkdirAll(dir, 0755))

	if credentials != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "credentials"), []byte(credentials), 0600))
	}
	if config != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config"), []byte(config), 0644))
	}
}

func TestListProfilesMergesRegionFromConfig(t *testing.T) {
	writeAWSFiles(t, `[default]
aws_access_key_id = AKIAEXAMPLE
aws_secret_access_key = secret

[staging]
aws_access_key_id = AKIAEXAMPLE2
aws_secret_access_key = secret2
`, `[default]
region = us-east-2

[profile staging]
region = eu-west-1

[profile sso-only]
region = ap-southeast-1
sso_start_url = https://example.awsapps.com/start
`)

	profiles, err := ListProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 3)

	// default is sorted first
	assert.Equal(t, "default", profiles[0].Name)
	assert.Equal(t, "us-east-2", profiles[0].Region)
	assert.Equal(t, "credentials", profiles[0].Source)

	assert.Equal(t, "sso-only", profiles[1].Name)
	assert.Equal(t, "config", profiles[1].Source)

	assert.Equal(t, "staging", profiles[2].Name)
	assert.Equal(t, "eu-west-1", profiles[2].Region)
}

func TestListProfilesSkipsCommentsAndBlanks(t *testing.T) {
	writeAWSFiles(t, `# main account
[default]
aws_access_key_id = AKIAEXAMPLE

; legacy comment style
[prod]
aws_access_key_id = AKIAEXAMPLE3
`, "")

	profiles, err := ListProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "default", profiles[0].Name)
	assert.Equal(t, "prod", profiles[1].Name)
}

func TestValidateProfile(t *testing.T) {
	writeAWSFiles(t, `[default]
aws_access_key_id = AKIAEXAMPLE
`, "")

	assert.True(t, ValidateProfile("default"))
	assert.False(t, ValidateProfile("nonexistent"))
}
