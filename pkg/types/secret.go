package types

import "time"

// Secret represents Secrets Manager secret metadata
type Secret struct {
	Name        string
	ARN         string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SecretValue represents a secret with its value
type SecretValue struct {
	Secret
	Value   string
	Version string
}

// Parameter represents an SSM Parameter Store parameter
type Parameter struct {
	Name     string
	Type     string // String, StringList, SecureString
	Value    string
	Version  int64
	Modified time.Time
}
