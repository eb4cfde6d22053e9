package aws

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"

	"github.com/vietdv277/stratus/pkg/types"
)

// ListUsers returns the account's IAM users
func (c *Client) ListUsers() ([]types.User, error) {
	output, err := c.IAM.ListUsers(c.ctx, &iam.ListUsersInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var users []types.User
	for _, u := range output.Users {
		users = append(users, toUser(u))
	}

	return users, nil
}

// GetUser returns a user by name, or the caller's user when name is empty
func (c *Client) GetUser(userName string) (*types.User, error) {
	input := &iam.GetUserInput{}
	if userName != "" {
		input.UserName = aws.String(userName)
	}

	output, err := c.IAM.GetUser(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user := toUser(*output.User)
	return &user, nil
}

// CreateUserInput contains parameters for creating an IAM user
type CreateUserInput struct {
	Name string
	Path string
	Tags [][2]string
}

// CreateUser creates a new IAM user
func (c *Client) CreateUser(input *CreateUserInput) (*types.User, error) {
	createInput := &iam.CreateUserInput{
		UserName: aws.String(input.Name),
		Path:     aws.String(input.Path),
	}

	for _, t := range input.Tags {
		createInput.Tags = append(createInput.Tags, iamtypes.Tag{
			Key:   aws.String(t[0]),
			Value: aws.String(t[1]),
		})
	}

	output, err := c.IAM.CreateUser(c.ctx, createInput)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user := toUser(*output.User)
	return &user, nil
}

// DeleteUser deletes an IAM user
func (c *Client) DeleteUser(userName string) error {
	_, err := c.IAM.DeleteUser(c.ctx, &iam.DeleteUserInput{
		UserName: aws.String(userName),
	})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// UpdateUser renames a user and/or moves it to a new path
func (c *Client) UpdateUser(userName, newName, newPath string) error {
	input := &iam.UpdateUserInput{
		UserName: aws.String(userName),
	}
	if newName != "" {
		input.NewUserName = aws.String(newName)
	}
	if newPath != "" {
		input.NewPath = aws.String(newPath)
	}

	_, err := c.IAM.UpdateUser(c.ctx, input)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// CreateLoginProfile gives a user a console password
func (c *Client) CreateLoginProfile(userName, password string, resetRequired bool) error {
	_, err := c.IAM.CreateLoginProfile(c.ctx, &iam.CreateLoginProfileInput{
		UserName:              aws.String(userName),
		Password:              aws.String(password),
		PasswordResetRequired: resetRequired,
	})
	if err != nil {
		return fmt.Errorf("failed to create login profile: %w", err)
	}

	return nil
}

// DeleteLoginProfile removes a user's console password
func (c *Client) DeleteLoginProfile(userName string) error {
	_, err := c.IAM.DeleteLoginProfile(c.ctx, &iam.DeleteLoginProfileInput{
		UserName: aws.String(userName),
	})
	if err != nil {
		return fmt.Errorf("failed to delete login profile: %w", err)
	}

	return nil
}

// ListRoles returns the account's IAM roles
func (c *Client) ListRoles() ([]types.Role, error) {
	output, err := c.IAM.ListRoles(c.ctx, &iam.ListRolesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	var roles []types.Role
	for _, r := range output.Roles {
		roles = append(roles, toRole(r))
	}

	return roles, nil
}

// GetRole returns a role by name
func (c *Client) GetRole(roleName string) (*types.Role, error) {
	output, err := c.IAM.GetRole(c.ctx, &iam.GetRoleInput{
		RoleName: aws.String(roleName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	role := toRole(*output.Role)
	return &role, nil
}

// CreateRoleInput contains parameters for creating an IAM role
type CreateRoleInput struct {
	Name                     string
	AssumeRolePolicyDocument string
	Description              string
	Path                     string
	MaxSessionDuration       int
}

// CreateRole creates a new IAM role
func (c *Client) CreateRole(input *CreateRoleInput) (*types.Role, error) {
	createInput := &iam.CreateRoleInput{
		RoleName:                 aws.String(input.Name),
		AssumeRolePolicyDocument: aws.String(input.AssumeRolePolicyDocument),
		Path:                     aws.String(input.Path),
		MaxSessionDuration:       aws.Int32(int32(input.MaxSessionDuration)),
	}
	if input.Description != "" {
		createInput.Description = aws.String(input.Description)
	}

	output, err := c.IAM.CreateRole(c.ctx, createInput)
	if err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	role := toRole(*output.Role)
	return &role, nil
}

// DeleteRole deletes an IAM role
func (c *Client) DeleteRole(roleName string) error {
	_, err := c.IAM.DeleteRole(c.ctx, &iam.DeleteRoleInput{
		RoleName: aws.String(roleName),
	})
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	return nil
}

// UpdateRole updates a role's description and/or max session duration. A
// zero duration leaves the current value unchanged.
func (c *Client) UpdateRole(roleName, description string, maxSessionDuration int) error {
	input := &iam.UpdateRoleInput{
		RoleName: aws.String(roleName),
	}
	if description != "" {
		input.Description = aws.String(description)
	}
	if maxSessionDuration > 0 {
		input.MaxSessionDuration = aws.Int32(int32(maxSessionDuration))
	}

	_, err := c.IAM.UpdateRole(c.ctx, input)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}

	return nil
}

// ListGroups returns the account's IAM groups
func (c *Client) ListGroups() ([]types.Group, error) {
	output, err := c.IAM.ListGroups(c.ctx, &iam.ListGroupsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	var groups []types.Group
	for _, g := range output.Groups {
		groups = append(groups, toGroup(g))
	}

	return groups, nil
}

// CreateGroup creates a new IAM group
func (c *Client) CreateGroup(groupName, path string) (*types.Group, error) {
	output, err := c.IAM.CreateGroup(c.ctx, &iam.CreateGroupInput{
		GroupName: aws.String(groupName),
		Path:      aws.String(path),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	group := toGroup(*output.Group)
	return &group, nil
}

// DeleteGroup deletes an IAM group
func (c *Client) DeleteGroup(groupName string) error {
	_, err := c.IAM.DeleteGroup(c.ctx, &iam.DeleteGroupInput{
		GroupName: aws.String(groupName),
	})
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	return nil
}

// GetGroup returns a group and its member users
func (c *Client) GetGroup(groupName string) (*types.Group, []types.User, error) {
	output, err := c.IAM.GetGroup(c.ctx, &iam.GetGroupInput{
		GroupName: aws.String(groupName),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get group: %w", err)
	}

	group := toGroup(*output.Group)

	var users []types.User
	for _, u := range output.Users {
		users = append(users, toUser(u))
	}

	return &group, users, nil
}

// AddUserToGroup adds a user to a group
func (c *Client) AddUserToGroup(userName, groupName string) error {
	_, err := c.IAM.AddUserToGroup(c.ctx, &iam.AddUserToGroupInput{
		UserName:  aws.String(userName),
		GroupName: aws.String(groupName),
	})
	if err != nil {
		return fmt.Errorf("failed to add user to group: %w", err)
	}

	return nil
}

// RemoveUserFromGroup removes a user from a group
func (c *Client) RemoveUserFromGroup(userName, groupName string) error {
	_, err := c.IAM.RemoveUserFromGroup(c.ctx, &iam.RemoveUserFromGroupInput{
		UserName:  aws.String(userName),
		GroupName: aws.String(groupName),
	})
	if err != nil {
		return fmt.Errorf("failed to remove user from group: %w", err)
	}

	return nil
}

// ListGroupsForUser returns the groups a user belongs to
func (c *Client) ListGroupsForUser(userName string) ([]types.Group, error) {
	output, err := c.IAM.ListGroupsForUser(c.ctx, &iam.ListGroupsForUserInput{
		UserName: aws.String(userName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list groups for user: %w", err)
	}

	var groups []types.Group
	for _, g := range output.Groups {
		groups = append(groups, toGroup(g))
	}

	return groups, nil
}

// CreateAccessKey creates an access key for a user, or for the caller when
// userName is empty. The secret is only available in the response.
func (c *Client) CreateAccessKey(userName string) (*types.AccessKey, error) {
	input := &iam.CreateAccessKeyInput{}
	if userName != "" {
		input.UserName = aws.String(userName)
	}

	output, err := c.IAM.CreateAccessKey(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create access key: %w", err)
	}

	key := output.AccessKey
	accessKey := &types.AccessKey{
		UserName: deref(key.UserName),
		ID:       deref(key.AccessKeyId),
		Secret:   deref(key.SecretAccessKey),
		Status:   string(key.Status),
	}
	if key.CreateDate != nil {
		accessKey.Created = *key.CreateDate
	}

	return accessKey, nil
}

// DeleteAccessKey deletes an access key
func (c *Client) DeleteAccessKey(accessKeyID, userName string) error {
	input := &iam.DeleteAccessKeyInput{
		AccessKeyId: aws.String(accessKeyID),
	}
	if userName != "" {
		input.UserName = aws.String(userName)
	}

	_, err := c.IAM.DeleteAccessKey(c.ctx, input)
	if err != nil {
		return fmt.Errorf("failed to delete access key: %w", err)
	}

	return nil
}

// ListAccessKeys returns access key metadata for a user, or for the caller
// when userName is empty
func (c *Client) ListAccessKeys(userName string) ([]types.AccessKeyMetadata, error) {
	input := &iam.ListAccessKeysInput{}
	if userName != "" {
		input.UserName = aws.String(userName)
	}

	output, err := c.IAM.ListAccessKeys(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to list access keys: %w", err)
	}

	var keys []types.AccessKeyMetadata
	for _, k := range output.AccessKeyMetadata {
		meta := types.AccessKeyMetadata{
			UserName: deref(k.UserName),
			ID:       deref(k.AccessKeyId),
			Status:   string(k.Status),
		}
		if k.CreateDate != nil {
			meta.Created = *k.CreateDate
		}
		keys = append(keys, meta)
	}

	return keys, nil
}

// UpdateAccessKey sets an access key's status to Active or Inactive
func (c *Client) UpdateAccessKey(accessKeyID, status, userName string) error {
	input := &iam.UpdateAccessKeyInput{
		AccessKeyId: aws.String(accessKeyID),
		Status:      iamtypes.StatusType(status),
	}
	if userName != "" {
		input.UserName = aws.String(userName)
	}

	_, err := c.IAM.UpdateAccessKey(c.ctx, input)
	if err != nil {
		return fmt.Errorf("failed to update access key: %w", err)
	}

	return nil
}

// toUser converts an IAM User to our User type
func toUser(u iamtypes.User) types.User {
	user := types.User{
		Name: deref(u.UserName),
		ID:   deref(u.UserId),
		ARN:  deref(u.Arn),
		Path: deref(u.Path),
	}
	if u.CreateDate != nil {
		user.Created = *u.CreateDate
	}
	if u.PasswordLastUsed != nil {
		user.PasswordLastUsed = *u.PasswordLastUsed
	}
	return user
}

// toRole converts an IAM Role to our Role type
func toRole(r iamtypes.Role) types.Role {
	role := types.Role{
		Name:               deref(r.RoleName),
		ID:                 deref(r.RoleId),
		ARN:                deref(r.Arn),
		Path:               deref(r.Path),
		MaxSessionDuration: int(deref32(r.MaxSessionDuration)),
		Description:        deref(r.Description),
	}
	if r.CreateDate != nil {
		role.Created = *r.CreateDate
	}
	return role
}

// toGroup converts an IAM Group to our Group type
func toGroup(g iamtypes.Group) types.Group {
	group := types.Group{
		Name: deref(g.GroupName),
		ID:   deref(g.GroupId),
		ARN:  deref(g.Arn),
		Path: deref(g.Path),
	}
	if g.CreateDate != nil {
		group.Created = *g.CreateDate
	}
	return group
}
