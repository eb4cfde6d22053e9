package types

import "time"

// User represents an IAM user
type User struct {
	Name             string
	ID               string
	ARN              string
	Path             string
	Created          time.Time
	PasswordLastUsed time.Time // zero when the user never signed in
}

// Group represents an IAM group
type Group struct {
	Name    string
	ID      string
	ARN     string
	Path    string
	Created time.Time
}

// Role represents an IAM role
type Role struct {
	Name               string
	ID                 string
	ARN                string
	Path               string
	Created            time.Time
	MaxSessionDuration int // seconds
	Description        string
}

// Policy represents an IAM managed policy
type Policy struct {
	Name            string
	ID              string
	ARN             string
	Path            string
	DefaultVersion  string
	AttachmentCount int
	Created         time.Time
	Updated         time.Time
	Description     string
}

// PolicyVersion represents a single version of a managed policy
type PolicyVersion struct {
	ID        string
	IsDefault bool
	Created   time.Time
	Document  string // URL-decoded JSON document
}

// AttachedPolicy represents a managed policy attached to a user, group or role
type AttachedPolicy struct {
	Name string
	ARN  string
}

// InlinePolicy represents an inline policy embedded in a principal
type InlinePolicy struct {
	Principal string // owning user, group or role name
	Name      string
	Document  string
}

// AccessKey represents a newly created access key, including the secret
type AccessKey struct {
	UserName string
	ID       string
	Secret   string
	Status   string
	Created  time.Time
}

// AccessKeyMetadata represents an access key as listed, without the secret
type AccessKeyMetadata struct {
	UserName string
	ID       string
	Status   string
	Created  time.Time
}
