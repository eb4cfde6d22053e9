package aws

import (
	"fmt"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"

	"github.com/vietdv277/stratus/pkg/types"
)

// ListPolicies returns managed policies. Scope may be All, AWS or Local.
func (c *Client) ListPolicies(scope string) ([]types.Policy, error) {
	input := &iam.ListPoliciesInput{}
	if scope != "" && scope != "All" {
		input.Scope = iamtypes.PolicyScopeType(scope)
	}

	output, err := c.IAM.ListPolicies(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}

	var policies []types.Policy
	for _, p := range output.Policies {
		policies = append(policies, toPolicy(p))
	}

	return policies, nil
}

// GetPolicy returns a managed policy by ARN
func (c *Client) GetPolicy(policyARN string) (*types.Policy, error) {
	output, err := c.IAM.GetPolicy(c.ctx, &iam.GetPolicyInput{
		PolicyArn: aws.String(policyARN),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}

	policy := toPolicy(*output.Policy)
	return &policy, nil
}

// CreatePolicyInput contains parameters for creating a managed policy
type CreatePolicyInput struct {
	Name        string
	Document    string
	Description string
	Path        string
}

// CreatePolicy creates a new managed policy
func (c *Client) CreatePolicy(input *CreatePolicyInput) (*types.Policy, error) {
	createInput := &iam.CreatePolicyInput{
		PolicyName:     aws.String(input.Name),
		PolicyDocument: aws.String(input.Document),
		Path:           aws.String(input.Path),
	}
	if input.Description != "" {
		createInput.Description = aws.String(input.Description)
	}

	output, err := c.IAM.CreatePolicy(c.ctx, createInput)
	if err != nil {
		return nil, fmt.Errorf("failed to create policy: %w", err)
	}

	policy := toPolicy(*output.Policy)
	return &policy, nil
}

// DeletePolicy deletes a managed policy by ARN
func (c *Client) DeletePolicy(policyARN string) error {
	_, err := c.IAM.DeletePolicy(c.ctx, &iam.DeletePolicyInput{
		PolicyArn: aws.String(policyARN),
	})
	if err != nil {
		return fmt.Errorf("failed to delete policy: %w", err)
	}

	return nil
}

// GetPolicyVersion returns one version of a managed policy with its document
func (c *Client) GetPolicyVersion(policyARN, versionID string) (*types.PolicyVersion, error) {
	output, err := c.IAM.GetPolicyVersion(c.ctx, &iam.GetPolicyVersionInput{
		PolicyArn: aws.String(policyARN),
		VersionId: aws.String(versionID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get policy version: %w", err)
	}

	v := output.PolicyVersion
	version := &types.PolicyVersion{
		ID:        deref(v.VersionId),
		IsDefault: v.IsDefaultVersion,
		Document:  decodePolicyDocument(deref(v.Document)),
	}
	if v.CreateDate != nil {
		version.Created = *v.CreateDate
	}

	return version, nil
}

// AttachUserPolicy attaches a managed policy to a user
func (c *Client) AttachUserPolicy(userName, policyARN string) error {
	_, err := c.IAM.AttachUserPolicy(c.ctx, &iam.AttachUserPolicyInput{
		UserName:  aws.String(userName),
		PolicyArn: aws.String(policyARN),
	})
	if err != nil {
		return fmt.Errorf("failed to attach user policy: %w", err)
	}

	return nil
}

// DetachUserPolicy detaches a managed policy from a user
func (c *Client) DetachUserPolicy(userName, policyARN string) error {
	_, err := c.IAM.DetachUserPolicy(c.ctx, &iam.DetachUserPolicyInput{
		UserName:  aws.String(userName),
		PolicyArn: aws.String(policyARN),
	})
	if err != nil {
		return fmt.Errorf("failed to detach user policy: %w", err)
	}

	return nil
}

// ListAttachedUserPolicies returns the managed policies attached to a user
func (c *Client) ListAttachedUserPolicies(userName string) ([]types.AttachedPolicy, error) {
	output, err := c.IAM.ListAttachedUserPolicies(c.ctx, &iam.ListAttachedUserPoliciesInput{
		UserName: aws.String(userName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attached user policies: %w", err)
	}

	return toAttachedPolicies(output.AttachedPolicies), nil
}

// AttachRolePolicy attaches a managed policy to a role
func (c *Client) AttachRolePolicy(roleName, policyARN string) error {
	_, err := c.IAM.AttachRolePolicy(c.ctx, &iam.AttachRolePolicyInput{
		RoleName:  aws.String(roleName),
		PolicyArn: aws.String(policyARN),
	})
	if err != nil {
		return fmt.Errorf("failed to attach role policy: %w", err)
	}

	return nil
}

// DetachRolePolicy detaches a managed policy from a role
func (c *Client) DetachRolePolicy(roleName, policyARN string) error {
	_, err := c.IAM.DetachRolePolicy(c.ctx, &iam.DetachRolePolicyInput{
		RoleName:  aws.String(roleName),
		PolicyArn: aws.String(policyARN),
	})
	if err != nil {
		return fmt.Errorf("failed to detach role policy: %w", err)
	}

	return nil
}

// ListAttachedRolePolicies returns the managed policies attached to a role
func (c *Client) ListAttachedRolePolicies(roleName string) ([]types.AttachedPolicy, error) {
	output, err := c.IAM.ListAttachedRolePolicies(c.ctx, &iam.ListAttachedRolePoliciesInput{
		RoleName: aws.String(roleName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attached role policies: %w", err)
	}

	return toAttachedPolicies(output.AttachedPolicies), nil
}

// AttachGroupPolicy attaches a managed policy to a group
func (c *Client) AttachGroupPolicy(groupName, policyARN string) error {
	_, err := c.IAM.AttachGroupPolicy(c.ctx, &iam.AttachGroupPolicyInput{
		GroupName: aws.String(groupName),
		PolicyArn: aws.String(policyARN),
	})
	if err != nil {
		return fmt.Errorf("failed to attach group policy: %w", err)
	}

	return nil
}

// DetachGroupPolicy detaches a managed policy from a group
func (c *Client) DetachGroupPolicy(groupName, policyARN string) error {
	_, err := c.IAM.DetachGroupPolicy(c.ctx, &iam.DetachGroupPolicyInput{
		GroupName: aws.String(groupName),
		PolicyArn: aws.String(policyARN),
	})
	if err != nil {
		return fmt.Errorf("failed to detach group policy: %w", err)
	}

	return nil
}

// ListAttachedGroupPolicies returns the managed policies attached to a group
func (c *Client) ListAttachedGroupPolicies(groupName string) ([]types.AttachedPolicy, error) {
	output, err := c.IAM.ListAttachedGroupPolicies(c.ctx, &iam.ListAttachedGroupPoliciesInput{
		GroupName: aws.String(groupName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attached group policies: %w", err)
	}

	return toAttachedPolicies(output.AttachedPolicies), nil
}

// PutUserPolicy adds or replaces an inline policy on a user
func (c *Client) PutUserPolicy(userName, policyName, document string) error {
	_, err := c.IAM.PutUserPolicy(c.ctx, &iam.PutUserPolicyInput{
		UserName:       aws.String(userName),
		PolicyName:     aws.String(policyName),
		PolicyDocument: aws.String(document),
	})
	if err != nil {
		return fmt.Errorf("failed to put user policy: %w", err)
	}

	return nil
}

// GetUserPolicy returns an inline policy embedded in a user
func (c *Client) GetUserPolicy(userName, policyName string) (*types.InlinePolicy, error) {
	output, err := c.IAM.GetUserPolicy(c.ctx, &iam.GetUserPolicyInput{
		UserName:   aws.String(userName),
		PolicyName: aws.String(policyName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user policy: %w", err)
	}

	return &types.InlinePolicy{
		Principal: deref(output.UserName),
		Name:      deref(output.PolicyName),
		Document:  decodePolicyDocument(deref(output.PolicyDocument)),
	}, nil
}

// DeleteUserPolicy deletes an inline policy from a user
func (c *Client) DeleteUserPolicy(userName, policyName string) error {
	_, err := c.IAM.DeleteUserPolicy(c.ctx, &iam.DeleteUserPolicyInput{
		UserName:   aws.String(userName),
		PolicyName: aws.String(policyName),
	})
	if err != nil {
		return fmt.Errorf("failed to delete user policy: %w", err)
	}

	return nil
}

// ListUserPolicies returns the names of a user's inline policies
func (c *Client) ListUserPolicies(userName string) ([]string, error) {
	output, err := c.IAM.ListUserPolicies(c.ctx, &iam.ListUserPoliciesInput{
		UserName: aws.String(userName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list user policies: %w", err)
	}

	return output.PolicyNames, nil
}

// PutRolePolicy adds or replaces an inline policy on a role
func (c *Client) PutRolePolicy(roleName, policyName, document string) error {
	_, err := c.IAM.PutRolePolicy(c.ctx, &iam.PutRolePolicyInput{
		RoleName:       aws.String(roleName),
		PolicyName:     aws.String(policyName),
		PolicyDocument: aws.String(document),
	})
	if err != nil {
		return fmt.Errorf("failed to put role policy: %w", err)
	}

	return nil
}

// GetRolePolicy returns an inline policy embedded in a role
func (c *Client) GetRolePolicy(roleName, policyName string) (*types.InlinePolicy, error) {
	output, err := c.IAM.GetRolePolicy(c.ctx, &iam.GetRolePolicyInput{
		RoleName:   aws.String(roleName),
		PolicyName: aws.String(policyName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get role policy: %w", err)
	}

	return &types.InlinePolicy{
		Principal: deref(output.RoleName),
		Name:      deref(output.PolicyName),
		Document:  decodePolicyDocument(deref(output.PolicyDocument)),
	}, nil
}

// DeleteRolePolicy deletes an inline policy from a role
func (c *Client) DeleteRolePolicy(roleName, policyName string) error {
	_, err := c.IAM.DeleteRolePolicy(c.ctx, &iam.DeleteRolePolicyInput{
		RoleName:   aws.String(roleName),
		PolicyName: aws.String(policyName),
	})
	if err != nil {
		return fmt.Errorf("failed to delete role policy: %w", err)
	}

	return nil
}

// ListRolePolicies returns the names of a role's inline policies
func (c *Client) ListRolePolicies(roleName string) ([]string, error) {
	output, err := c.IAM.ListRolePolicies(c.ctx, &iam.ListRolePoliciesInput{
		RoleName: aws.String(roleName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list role policies: %w", err)
	}

	return output.PolicyNames, nil
}

// PutGroupPolicy adds or replaces an inline policy on a group
func (c *Client) PutGroupPolicy(groupName, policyName, document string) error {
	_, err := c.IAM.PutGroupPolicy(c.ctx, &iam.PutGroupPolicyInput{
		GroupName:      aws.String(groupName),
		PolicyName:     aws.String(policyName),
		PolicyDocument: aws.String(document),
	})
	if err != nil {
		return fmt.Errorf("failed to put group policy: %w", err)
	}

	return nil
}

// GetGroupPolicy returns an inline policy embedded in a group
func (c *Client) GetGroupPolicy(groupName, policyName string) (*types.InlinePolicy, error) {
	output, err := c.IAM.GetGroupPolicy(c.ctx, &iam.GetGroupPolicyInput{
		GroupName:  aws.String(groupName),
		PolicyName: aws.String(policyName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get group policy: %w", err)
	}

	return &types.InlinePolicy{
		Principal: deref(output.GroupName),
		Name:      deref(output.PolicyName),
		Document:  decodePolicyDocument(deref(output.PolicyDocument)),
	}, nil
}

// DeleteGroupPolicy deletes an inline policy from a group
func (c *Client) DeleteGroupPolicy(groupName, policyName string) error {
	_, err := c.IAM.DeleteGroupPolicy(c.ctx, &iam.DeleteGroupPolicyInput{
		GroupName:  aws.String(groupName),
		PolicyName: aws.String(policyName),
	})
	if err != nil {
		return fmt.Errorf("failed to delete group policy: %w", err)
	}

	return nil
}

// ListGroupPolicies returns the names of a group's inline policies
func (c *Client) ListGroupPolicies(groupName string) ([]string, error) {
	output, err := c.IAM.ListGroupPolicies(c.ctx, &iam.ListGroupPoliciesInput{
		GroupName: aws.String(groupName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list group policies: %w", err)
	}

	return output.PolicyNames, nil
}

// toPolicy converts an IAM Policy to our Policy type
func toPolicy(p iamtypes.Policy) types.Policy {
	policy := types.Policy{
		Name:            deref(p.PolicyName),
		ID:              deref(p.PolicyId),
		ARN:             deref(p.Arn),
		Path:            deref(p.Path),
		DefaultVersion:  deref(p.DefaultVersionId),
		AttachmentCount: int(deref32(p.AttachmentCount)),
		Description:     deref(p.Description),
	}
	if p.CreateDate != nil {
		policy.Created = *p.CreateDate
	}
	if p.UpdateDate != nil {
		policy.Updated = *p.UpdateDate
	}
	return policy
}

func toAttachedPolicies(attached []iamtypes.AttachedPolicy) []types.AttachedPolicy {
	var policies []types.AttachedPolicy
	for _, p := range attached {
		policies = append(policies, types.AttachedPolicy{
			Name: deref(p.PolicyName),
			ARN:  deref(p.PolicyArn),
		})
	}
	return policies
}

// decodePolicyDocument URL-decodes a policy document as returned by the IAM
// API. The raw document is returned when it is not URL-encoded.
func decodePolicyDocument(document string) string {
	decoded, err := url.QueryUnescape(document)
	if err != nil {
		return document
	}
	return decoded
}
