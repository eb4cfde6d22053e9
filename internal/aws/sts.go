package aws

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	ststypes "github.com/aws/aws-sdk-go-v2/service/sts/types"

	"github.com/vietdv277/stratus/pkg/types"
)

// GetCallerIdentity returns the identity behind the current credentials
func (c *Client) GetCallerIdentity() (*types.CallerIdentity, error) {
	output, err := c.STS.GetCallerIdentity(c.ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to get caller identity: %w", err)
	}

	return &types.CallerIdentity{
		Account: deref(output.Account),
		UserID:  deref(output.UserId),
		ARN:     deref(output.Arn),
	}, nil
}

// AssumeRoleInput contains parameters for assuming a role
type AssumeRoleInput struct {
	RoleARN         string
	SessionName     string
	DurationSeconds int
	ExternalID      string
	SerialNumber    string
	TokenCode       string
	Policy          string
}

// AssumeRole assumes an IAM role and returns the temporary credentials
func (c *Client) AssumeRole(input *AssumeRoleInput) (*types.AssumedRole, error) {
	assumeInput := &sts.AssumeRoleInput{
		RoleArn:         aws.String(input.RoleARN),
		RoleSessionName: aws.String(input.SessionName),
		DurationSeconds: aws.Int32(int32(input.DurationSeconds)),
	}

	if input.ExternalID != "" {
		assumeInput.ExternalId = aws.String(input.ExternalID)
	}
	if input.SerialNumber != "" {
		assumeInput.SerialNumber = aws.String(input.SerialNumber)
	}
	if input.TokenCode != "" {
		assumeInput.TokenCode = aws.String(input.TokenCode)
	}
	if input.Policy != "" {
		assumeInput.Policy = aws.String(input.Policy)
	}

	output, err := c.STS.AssumeRole(c.ctx, assumeInput)
	if err != nil {
		return nil, fmt.Errorf("failed to assume role: %w", err)
	}

	role := &types.AssumedRole{
		Credentials: toCredentials(output.Credentials),
	}
	if output.AssumedRoleUser != nil {
		role.ARN = deref(output.AssumedRoleUser.Arn)
		role.RoleID = deref(output.AssumedRoleUser.AssumedRoleId)
	}

	return role, nil
}

// AssumeRoleWithSAMLInput contains parameters for a SAML role assumption
type AssumeRoleWithSAMLInput struct {
	RoleARN         string
	PrincipalARN    string
	Assertion       string // base64-encoded SAML assertion
	DurationSeconds int
	Policy          string
}

// AssumeRoleWithSAML assumes a role using a SAML assertion
func (c *Client) AssumeRoleWithSAML(input *AssumeRoleWithSAMLInput) (*types.SAMLAssumedRole, error) {
	samlInput := &sts.AssumeRoleWithSAMLInput{
		RoleArn:         aws.String(input.RoleARN),
		PrincipalArn:    aws.String(input.PrincipalARN),
		SAMLAssertion:   aws.String(input.Assertion),
		DurationSeconds: aws.Int32(int32(input.DurationSeconds)),
	}
	if input.Policy != "" {
		samlInput.Policy = aws.String(input.Policy)
	}

	output, err := c.STS.AssumeRoleWithSAML(c.ctx, samlInput)
	if err != nil {
		return nil, fmt.Errorf("failed to assume role with SAML: %w", err)
	}

	role := &types.SAMLAssumedRole{
		Subject: deref(output.Subject),
		Issuer:  deref(output.Issuer),
	}
	role.Credentials = toCredentials(output.Credentials)
	if output.AssumedRoleUser != nil {
		role.ARN = deref(output.AssumedRoleUser.Arn)
		role.RoleID = deref(output.AssumedRoleUser.AssumedRoleId)
	}

	return role, nil
}

// AssumeRoleWithWebIdentityInput contains parameters for a web identity
// role assumption
type AssumeRoleWithWebIdentityInput struct {
	RoleARN         string
	SessionName     string
	Token           string // OIDC token from the identity provider
	DurationSeconds int
	ProviderID      string
	Policy          string
}

// AssumeRoleWithWebIdentity assumes a role using a web identity token
func (c *Client) AssumeRoleWithWebIdentity(input *AssumeRoleWithWebIdentityInput) (*types.WebIdentityAssumedRole, error) {
	webInput := &sts.AssumeRoleWithWebIdentityInput{
		RoleArn:          aws.String(input.RoleARN),
		RoleSessionName:  aws.String(input.SessionName),
		WebIdentityToken: aws.String(input.Token),
		DurationSeconds:  aws.Int32(int32(input.DurationSeconds)),
	}
	if input.ProviderID != "" {
		webInput.ProviderId = aws.String(input.ProviderID)
	}
	if input.Policy != "" {
		webInput.Policy = aws.String(input.Policy)
	}

	output, err := c.STS.AssumeRoleWithWebIdentity(c.ctx, webInput)
	if err != nil {
		return nil, fmt.Errorf("failed to assume role with web identity: %w", err)
	}

	role := &types.WebIdentityAssumedRole{
		Subject:  deref(output.SubjectFromWebIdentityToken),
		Provider: deref(output.Provider),
	}
	role.Credentials = toCredentials(output.Credentials)
	if output.AssumedRoleUser != nil {
		role.ARN = deref(output.AssumedRoleUser.Arn)
		role.RoleID = deref(output.AssumedRoleUser.AssumedRoleId)
	}

	return role, nil
}

// GetSessionToken returns temporary credentials for the current identity,
// optionally authenticated with an MFA device
func (c *Client) GetSessionToken(durationSeconds int, serialNumber, tokenCode string) (*types.Credentials, error) {
	input := &sts.GetSessionTokenInput{
		DurationSeconds: aws.Int32(int32(durationSeconds)),
	}
	if serialNumber != "" {
		input.SerialNumber = aws.String(serialNumber)
	}
	if tokenCode != "" {
		input.TokenCode = aws.String(tokenCode)
	}

	output, err := c.STS.GetSessionToken(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get session token: %w", err)
	}

	creds := toCredentials(output.Credentials)
	return &creds, nil
}

// GetFederationToken returns temporary credentials for a federated user
func (c *Client) GetFederationToken(name string, durationSeconds int, policy string) (*types.FederatedToken, error) {
	input := &sts.GetFederationTokenInput{
		Name:            aws.String(name),
		DurationSeconds: aws.Int32(int32(durationSeconds)),
	}
	if policy != "" {
		input.Policy = aws.String(policy)
	}

	output, err := c.STS.GetFederationToken(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get federation token: %w", err)
	}

	token := &types.FederatedToken{
		Credentials: toCredentials(output.Credentials),
	}
	if output.FederatedUser != nil {
		token.ARN = deref(output.FederatedUser.Arn)
		token.UserID = deref(output.FederatedUser.FederatedUserId)
	}

	return token, nil
}

// DecodeAuthorizationMessage decodes an encoded authorization failure message
func (c *Client) DecodeAuthorizationMessage(encoded string) (string, error) {
	output, err := c.STS.DecodeAuthorizationMessage(c.ctx, &sts.DecodeAuthorizationMessageInput{
		EncodedMessage: aws.String(encoded),
	})
	if err != nil {
		return "", fmt.Errorf("failed to decode authorization message: %w", err)
	}

	return deref(output.DecodedMessage), nil
}

// GetAccessKeyInfo returns the account ID that owns an access key
func (c *Client) GetAccessKeyInfo(accessKeyID string) (string, error) {
	output, err := c.STS.GetAccessKeyInfo(c.ctx, &sts.GetAccessKeyInfoInput{
		AccessKeyId: aws.String(accessKeyID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get access key info: %w", err)
	}

	return deref(output.Account), nil
}

// toCredentials converts STS credentials to our Credentials type
func toCredentials(creds *ststypes.Credentials) types.Credentials {
	if creds == nil {
		return types.Credentials{}
	}

	out := types.Credentials{
		AccessKeyID:     deref(creds.AccessKeyId),
		SecretAccessKey: deref(creds.SecretAccessKey),
		SessionToken:    deref(creds.SessionToken),
	}
	if creds.Expiration != nil {
		out.Expiration = *creds.Expiration
	}

	return out
}
