package types

import "time"

// CallerIdentity represents the identity behind the current credentials
type CallerIdentity struct {
	Account string
	UserID  string
	ARN     string
}

// Credentials represents a set of temporary STS credentials
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Expiration      time.Time
}

// AssumedRole represents the result of assuming a role
type AssumedRole struct {
	Credentials
	ARN    string // assumed role user ARN
	RoleID string
}

// SAMLAssumedRole represents the result of assuming a role with a SAML assertion
type SAMLAssumedRole struct {
	AssumedRole
	Subject string
	Issuer  string
}

// WebIdentityAssumedRole represents the result of assuming a role with a
// web identity token
type WebIdentityAssumedRole struct {
	AssumedRole
	Subject  string // subject claim from the token
	Provider string
}

// FederatedToken represents credentials issued for a federated user
type FederatedToken struct {
	Credentials
	ARN    string // federated user ARN
	UserID string
}
