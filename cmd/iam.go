package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vietdv277/stratus/internal/aws"
	"github.com/vietdv277/stratus/internal/format"
	"github.com/vietdv277/stratus/internal/session"
	"github.com/vietdv277/stratus/pkg/types"
)

func newIAMCmd(store *session.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "iam",
		Short: "IAM users, roles, groups, and policies",
	}
	cmd.AddCommand(
		newIAMListUsersCmd(store),
		newIAMGetUserCmd(store),
		newIAMCreateUserCmd(store),
		newIAMDeleteUserCmd(store),
		newIAMUpdateUserCmd(store),
		newIAMCreateLoginProfileCmd(store),
		newIAMDeleteLoginProfileCmd(store),
		newIAMListRolesCmd(store),
		newIAMGetRoleCmd(store),
		newIAMCreateRoleCmd(store),
		newIAMDeleteRoleCmd(store),
		newIAMUpdateRoleCmd(store),
		newIAMListGroupsCmd(store),
		newIAMCreateGroupCmd(store),
		newIAMDeleteGroupCmd(store),
		newIAMGetGroupCmd(store),
		newIAMAddUserToGroupCmd(store),
		newIAMRemoveUserFromGroupCmd(store),
		newIAMListGroupsForUserCmd(store),
		newIAMCreateAccessKeyCmd(store),
		newIAMDeleteAccessKeyCmd(store),
		newIAMListAccessKeysCmd(store),
		newIAMUpdateAccessKeyCmd(store),
		newIAMListPoliciesCmd(store),
		newIAMGetPolicyCmd(store),
		newIAMCreatePolicyCmd(store),
		newIAMDeletePolicyCmd(store),
		newIAMGetPolicyVersionCmd(store),
	)

	// attach/detach/list-attached and the inline policy verbs exist for
	// users, roles and groups with identical shapes
	for _, target := range []policyTarget{userPolicyTarget, rolePolicyTarget, groupPolicyTarget} {
		cmd.AddCommand(
			newAttachPolicyCmd(store, target),
			newDetachPolicyCmd(store, target),
			newListAttachedPoliciesCmd(store, target),
			newPutInlinePolicyCmd(store, target),
			newGetInlinePolicyCmd(store, target),
			newDeleteInlinePolicyCmd(store, target),
			newListInlinePoliciesCmd(store, target),
		)
	}
	return cmd
}

// policyTarget parameterizes the policy commands over the principal kind
type policyTarget struct {
	kind         string // user, role, group
	attach       func(*aws.Client, string, string) error
	detach       func(*aws.Client, string, string) error
	listAttached func(*aws.Client, string) ([]types.AttachedPolicy, error)
	putInline    func(*aws.Client, string, string, string) error
	getInline    func(*aws.Client, string, string) (*types.InlinePolicy, error)
	deleteInline func(*aws.Client, string, string) error
	listInline   func(*aws.Client, string) ([]string, error)
}

var userPolicyTarget = policyTarget{
	kind:   "user",
	attach: func(c *aws.Client, name, arn string) error { return c.AttachUserPolicy(name, arn) },
	detach: func(c *aws.Client, name, arn string) error { return c.DetachUserPolicy(name, arn) },
	listAttached: func(c *aws.Client, name string) ([]types.AttachedPolicy, error) {
		return c.ListAttachedUserPolicies(name)
	},
	putInline: func(c *aws.Client, name, policy, doc string) error {
		return c.PutUserPolicy(name, policy, doc)
	},
	getInline: func(c *aws.Client, name, policy string) (*types.InlinePolicy, error) {
		return c.GetUserPolicy(name, policy)
	},
	deleteInline: func(c *aws.Client, name, policy string) error {
		return c.DeleteUserPolicy(name, policy)
	},
	listInline: func(c *aws.Client, name string) ([]string, error) { return c.ListUserPolicies(name) },
}

var rolePolicyTarget = policyTarget{
	kind:   "role",
	attach: func(c *aws.Client, name, arn string) error { return c.AttachRolePolicy(name, arn) },
	detach: func(c *aws.Client, name, arn string) error { return c.DetachRolePolicy(name, arn) },
	listAttached: func(c *aws.Client, name string) ([]types.AttachedPolicy, error) {
		return c.ListAttachedRolePolicies(name)
	},
	putInline: func(c *aws.Client, name, policy, doc string) error {
		return c.PutRolePolicy(name, policy, doc)
	},
	getInline: func(c *aws.Client, name, policy string) (*types.InlinePolicy, error) {
		return c.GetRolePolicy(name, policy)
	},
	deleteInline: func(c *aws.Client, name, policy string) error {
		return c.DeleteRolePolicy(name, policy)
	},
	listInline: func(c *aws.Client, name string) ([]string, error) { return c.ListRolePolicies(name) },
}

var groupPolicyTarget = policyTarget{
	kind:   "group",
	attach: func(c *aws.Client, name, arn string) error { return c.AttachGroupPolicy(name, arn) },
	detach: func(c *aws.Client, name, arn string) error { return c.DetachGroupPolicy(name, arn) },
	listAttached: func(c *aws.Client, name string) ([]types.AttachedPolicy, error) {
		return c.ListAttachedGroupPolicies(name)
	},
	putInline: func(c *aws.Client, name, policy, doc string) error {
		return c.PutGroupPolicy(name, policy, doc)
	},
	getInline: func(c *aws.Client, name, policy string) (*types.InlinePolicy, error) {
		return c.GetGroupPolicy(name, policy)
	},
	deleteInline: func(c *aws.Client, name, policy string) error {
		return c.DeleteGroupPolicy(name, policy)
	},
	listInline: func(c *aws.Client, name string) ([]string, error) { return c.ListGroupPolicies(name) },
}

func userPairs(u *types.User) [][2]string {
	pairs := [][2]string{
		{"User Name", u.Name},
		{"User ID", u.ID},
		{"ARN", u.ARN},
		{"Path", u.Path},
		{"Created", u.Created.Format(format.TimeLayout)},
	}
	if !u.PasswordLastUsed.IsZero() {
		pairs = append(pairs, [2]string{"Password Last Used", u.PasswordLastUsed.Format(format.TimeLayout)})
	}
	return pairs
}

func rolePairs(r *types.Role) [][2]string {
	return [][2]string{
		{"Role Name", r.Name},
		{"Role ID", r.ID},
		{"ARN", r.ARN},
		{"Path", r.Path},
		{"Created", r.Created.Format(format.TimeLayout)},
		{"Max Session Duration", fmt.Sprintf("%d seconds", r.MaxSessionDuration)},
		{"Description", na(r.Description)},
	}
}

func policyPairs(p *types.Policy) [][2]string {
	return [][2]string{
		{"Policy Name", p.Name},
		{"Policy ID", p.ID},
		{"ARN", p.ARN},
		{"Path", p.Path},
		{"Default Version", p.DefaultVersion},
		{"Attachment Count", strconv.Itoa(p.AttachmentCount)},
		{"Created", p.Created.Format(format.TimeLayout)},
		{"Updated", p.Updated.Format(format.TimeLayout)},
		{"Description", na(p.Description)},
	}
}

func groupPairs(g *types.Group) [][2]string {
	return [][2]string{
		{"Group Name", g.Name},
		{"Group ID", g.ID},
		{"ARN", g.ARN},
		{"Path", g.Path},
		{"Created", g.Created.Format(format.TimeLayout)},
	}
}

func userTable(users []types.User) string {
	rows := [][]string{{"User Name", "User ID", "ARN", "Created"}}
	for _, u := range users {
		rows = append(rows, []string{u.Name, u.ID, u.ARN, u.Created.Format(format.ShortTimeLayout)})
	}
	return format.Table(rows)
}

func newIAMListUsersCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "list-users",
		Short: "List IAM users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			users, err := client.ListUsers()
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users found")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), userTable(users))
			return nil
		},
	}
}

func newIAMGetUserCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "get-user [USER_NAME]",
		Short: "Show a user, or the caller when no name is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			var name string
			if len(args) == 1 {
				name = store.Resolve(args[0])
			}
			user, err := client.GetUser(name)
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue(userPairs(user)))
			return nil
		},
	}
}

func newIAMCreateUserCmd(store *session.Store) *cobra.Command {
	var path, tags string
	cmd := &cobra.Command{
		Use:   "create-user USER_NAME",
		Short: "Create an IAM user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			tagPairs, err := parseTagPairs(store.Resolve(tags))
			if err != nil {
				return reportErr(cmd, err)
			}
			user, err := client.CreateUser(&aws.CreateUserInput{
				Name: store.Resolve(args[0]),
				Path: store.Resolve(path),
				Tags: tagPairs,
			})
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "User created successfully:")
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue(userPairs(user)))
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Path for the user")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated Key=Value pairs")
	return cmd
}

func newIAMDeleteUserCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-user USER_NAME",
		Short: "Delete an IAM user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			name := store.Resolve(args[0])
			if err := client.DeleteUser(name); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User deleted successfully: %s\n", name)
			return nil
		},
	}
}

func newIAMUpdateUserCmd(store *session.Store) *cobra.Command {
	var newName, newPath string
	cmd := &cobra.Command{
		Use:   "update-user USER_NAME",
		Short: "Rename a user or change its path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			name := store.Resolve(args[0])
			if err := client.UpdateUser(name, store.Resolve(newName), store.Resolve(newPath)); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User updated successfully: %s\n", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&newName, "new-user-name", "", "New user name")
	cmd.Flags().StringVar(&newPath, "new-path", "", "New path")
	return cmd
}

func newIAMCreateLoginProfileCmd(store *session.Store) *cobra.Command {
	var password string
	var resetRequired bool
	cmd := &cobra.Command{
		Use:   "create-login-profile USER_NAME",
		Short: "Give a user console access",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			name := store.Resolve(args[0])
			if err := client.CreateLoginProfile(name, store.Resolve(password), resetRequired); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Login profile created for user: %s\n", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Initial console password")
	cmd.Flags().BoolVar(&resetRequired, "password-reset-required", false, "Require a password change at first sign-in")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newIAMDeleteLoginProfileCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-login-profile USER_NAME",
		Short: "Remove a user's console access",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			name := store.Resolve(args[0])
			if err := client.DeleteLoginProfile(name); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Login profile deleted for user: %s\n", name)
			return nil
		},
	}
}

func newIAMListRolesCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "list-roles",
		Short: "List IAM roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			roles, err := client.ListRoles()
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(roles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No roles found")
				return nil
			}
			rows := [][]string{{"Role Name", "Role ID", "ARN", "Created"}}
			for _, r := range roles {
				rows = append(rows, []string{r.Name, r.ID, r.ARN, r.Created.Format(format.ShortTimeLayout)})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
}

func newIAMGetRoleCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "get-role ROLE_NAME",
		Short: "Show a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			role, err := client.GetRole(store.Resolve(args[0]))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue(rolePairs(role)))
			return nil
		},
	}
}

func newIAMCreateRoleCmd(store *session.Store) *cobra.Command {
	var (
		assumeRolePolicy string
		description      string
		path             string
		maxSession       int
	)
	cmd := &cobra.Command{
		Use:   "create-role ROLE_NAME",
		Short: "Create an IAM role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			role, err := client.CreateRole(&aws.CreateRoleInput{
				Name:                     store.Resolve(args[0]),
				AssumeRolePolicyDocument: store.Resolve(assumeRolePolicy),
				Description:              store.Resolve(description),
				Path:                     store.Resolve(path),
				MaxSessionDuration:       maxSession,
			})
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Role created successfully:")
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue(rolePairs(role)))
			return nil
		},
	}
	cmd.Flags().StringVar(&assumeRolePolicy, "assume-role-policy-document", "", "Trust policy JSON")
	cmd.Flags().StringVar(&description, "description", "", "Role description")
	cmd.Flags().StringVar(&path, "path", "", "Path for the role")
	cmd.Flags().IntVar(&maxSession, "max-session-duration", 0, "Maximum session duration in seconds")
	cmd.MarkFlagRequired("assume-role-policy-document")
	return cmd
}

func newIAMDeleteRoleCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-role ROLE_NAME",
		Short: "Delete an IAM role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			name := store.Resolve(args[0])
			if err := client.DeleteRole(name); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Role deleted successfully: %s\n", name)
			return nil
		},
	}
}

func newIAMUpdateRoleCmd(store *session.Store) *cobra.Command {
	var description string
	var maxSession int
	cmd := &cobra.Command{
		Use:   "update-role ROLE_NAME",
		Short: "Update a role's description or session duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			name := store.Resolve(args[0])
			if err := client.UpdateRole(name, store.Resolve(description), maxSession); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Role updated successfully: %s\n", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().IntVar(&maxSession, "max-session-duration", 0, "New maximum session duration in seconds")
	return cmd
}

func newIAMListGroupsCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "list-groups",
		Short: "List IAM groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			groups, err := client.ListGroups()
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No groups found")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), groupTable(groups))
			return nil
		},
	}
}

func groupTable(groups []types.Group) string {
	rows := [][]string{{"Group Name", "Group ID", "ARN", "Created"}}
	for _, g := range groups {
		rows = append(rows, []string{g.Name, g.ID, g.ARN, g.Created.Format(format.ShortTimeLayout)})
	}
	return format.Table(rows)
}

func newIAMCreateGroupCmd(store *session.Store) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "create-group GROUP_NAME",
		Short: "Create an IAM group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			group, err := client.CreateGroup(store.Resolve(args[0]), store.Resolve(path))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Group created successfully:")
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue(groupPairs(group)))
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Path for the group")
	return cmd
}

func newIAMDeleteGroupCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-group GROUP_NAME",
		Short: "Delete an IAM group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			name := store.Resolve(args[0])
			if err := client.DeleteGroup(name); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Group deleted successfully: %s\n", name)
			return nil
		},
	}
}

func newIAMGetGroupCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "get-group GROUP_NAME",
		Short: "Show a group and its members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			group, users, err := client.GetGroup(store.Resolve(args[0]))
			if err != nil {
				return reportErr(cmd, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Group Details:")
			fmt.Fprint(out, format.KeyValue(groupPairs(group)))
			fmt.Fprintln(out)
			if len(users) == 0 {
				fmt.Fprintln(out, "No users in this group")
				return nil
			}
			fmt.Fprintln(out, "Users in group:")
			fmt.Fprint(out, userTable(users))
			return nil
		},
	}
}

func newIAMAddUserToGroupCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "add-user-to-group USER_NAME GROUP_NAME",
		Short: "Add a user to a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			user := store.Resolve(args[0])
			group := store.Resolve(args[1])
			if err := client.AddUserToGroup(user, group); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User added to group successfully: %s -> %s\n", user, group)
			return nil
		},
	}
}

func newIAMRemoveUserFromGroupCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-user-from-group USER_NAME GROUP_NAME",
		Short: "Remove a user from a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			user := store.Resolve(args[0])
			group := store.Resolve(args[1])
			if err := client.RemoveUserFromGroup(user, group); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User removed from group successfully: %s <- %s\n", user, group)
			return nil
		},
	}
}

func newIAMListGroupsForUserCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "list-groups-for-user USER_NAME",
		Short: "List the groups a user belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			groups, err := client.ListGroupsForUser(store.Resolve(args[0]))
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No groups found")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), groupTable(groups))
			return nil
		},
	}
}

func newIAMCreateAccessKeyCmd(store *session.Store) *cobra.Command {
	var userName string
	cmd := &cobra.Command{
		Use:   "create-access-key",
		Short: "Create an access key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			key, err := client.CreateAccessKey(store.Resolve(userName))
			if err != nil {
				return reportErr(cmd, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Access key created successfully:")
			fmt.Fprint(out, format.KeyValue([][2]string{
				{"User Name", key.UserName},
				{"Access Key ID", key.ID},
				{"Secret Access Key", key.Secret},
				{"Status", key.Status},
				{"Created", key.Created.Format(format.TimeLayout)},
			}))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "WARNING: Save the Secret Access Key securely. It cannot be retrieved again.")
			return nil
		},
	}
	cmd.Flags().StringVar(&userName, "user-name", "", "User to create the key for")
	return cmd
}

func newIAMDeleteAccessKeyCmd(store *session.Store) *cobra.Command {
	var userName string
	cmd := &cobra.Command{
		Use:   "delete-access-key ACCESS_KEY_ID",
		Short: "Delete an access key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			keyID := store.Resolve(args[0])
			if err := client.DeleteAccessKey(keyID, store.Resolve(userName)); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Access key deleted successfully: %s\n", keyID)
			return nil
		},
	}
	cmd.Flags().StringVar(&userName, "user-name", "", "User the key belongs to")
	return cmd
}

func newIAMListAccessKeysCmd(store *session.Store) *cobra.Command {
	var userName string
	cmd := &cobra.Command{
		Use:   "list-access-keys",
		Short: "List access keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			keys, err := client.ListAccessKeys(store.Resolve(userName))
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(keys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No access keys found")
				return nil
			}
			rows := [][]string{{"Access Key ID", "User Name", "Status", "Created"}}
			for _, k := range keys {
				rows = append(rows, []string{k.ID, k.UserName, k.Status, k.Created.Format(format.ShortTimeLayout)})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&userName, "user-name", "", "User to list keys for")
	return cmd
}

func newIAMUpdateAccessKeyCmd(store *session.Store) *cobra.Command {
	var status, userName string
	cmd := &cobra.Command{
		Use:   "update-access-key ACCESS_KEY_ID",
		Short: "Activate or deactivate an access key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			keyID := store.Resolve(args[0])
			newStatus := store.Resolve(status)
			if err := client.UpdateAccessKey(keyID, newStatus, store.Resolve(userName)); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Access key updated successfully: %s -> %s\n", keyID, newStatus)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Active or Inactive")
	cmd.Flags().StringVar(&userName, "user-name", "", "User the key belongs to")
	cmd.MarkFlagRequired("status")
	return cmd
}

func newIAMListPoliciesCmd(store *session.Store) *cobra.Command {
	var scope string
	cmd := &cobra.Command{
		Use:   "list-policies",
		Short: "List managed policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			policies, err := client.ListPolicies(store.Resolve(scope))
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(policies) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No policies found")
				return nil
			}
			rows := [][]string{{"Policy Name", "ARN", "Attachments", "Updated"}}
			for _, p := range policies {
				rows = append(rows, []string{
					p.Name, p.ARN, strconv.Itoa(p.AttachmentCount), p.Updated.Format(format.ShortTimeLayout),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&scope, "scope", "Local", "All, AWS, or Local")
	return cmd
}

func newIAMGetPolicyCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "get-policy POLICY_ARN",
		Short: "Show a managed policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			policy, err := client.GetPolicy(store.Resolve(args[0]))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue(policyPairs(policy)))
			return nil
		},
	}
}

func newIAMCreatePolicyCmd(store *session.Store) *cobra.Command {
	var document, description, path string
	cmd := &cobra.Command{
		Use:   "create-policy POLICY_NAME",
		Short: "Create a managed policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			policy, err := client.CreatePolicy(&aws.CreatePolicyInput{
				Name:        store.Resolve(args[0]),
				Document:    store.Resolve(document),
				Description: store.Resolve(description),
				Path:        store.Resolve(path),
			})
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Policy created successfully:")
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue(policyPairs(policy)))
			return nil
		},
	}
	cmd.Flags().StringVar(&document, "policy-document", "", "Policy document JSON")
	cmd.Flags().StringVar(&description, "description", "", "Policy description")
	cmd.Flags().StringVar(&path, "path", "", "Path for the policy")
	cmd.MarkFlagRequired("policy-document")
	return cmd
}

func newIAMDeletePolicyCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-policy POLICY_ARN",
		Short: "Delete a managed policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			arn := store.Resolve(args[0])
			if err := client.DeletePolicy(arn); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Policy deleted successfully: %s\n", arn)
			return nil
		},
	}
}

func newIAMGetPolicyVersionCmd(store *session.Store) *cobra.Command {
	var versionID string
	cmd := &cobra.Command{
		Use:   "get-policy-version POLICY_ARN",
		Short: "Show a policy version and its document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			version, err := client.GetPolicyVersion(store.Resolve(args[0]), store.Resolve(versionID))
			if err != nil {
				return reportErr(cmd, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, format.KeyValue([][2]string{
				{"Version ID", version.ID},
				{"Is Default", yesNo(version.IsDefault)},
				{"Created", version.Created.Format(format.TimeLayout)},
			}))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Document:")
			fmt.Fprintln(out, version.Document)
			return nil
		},
	}
	cmd.Flags().StringVar(&versionID, "version-id", "v1", "Policy version ID")
	return cmd
}

func newAttachPolicyCmd(store *session.Store, target policyTarget) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("attach-%s-policy %s_NAME POLICY_ARN", target.kind, upperKind(target.kind)),
		Short: fmt.Sprintf("Attach a managed policy to a %s", target.kind),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			name := store.Resolve(args[0])
			if err := target.attach(client, name, store.Resolve(args[1])); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Policy attached successfully to %s: %s\n", target.kind, name)
			return nil
		},
	}
}

func newDetachPolicyCmd(store *session.Store, target policyTarget) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("detach-%s-policy %s_NAME POLICY_ARN", target.kind, upperKind(target.kind)),
		Short: fmt.Sprintf("Detach a managed policy from a %s", target.kind),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			name := store.Resolve(args[0])
			if err := target.detach(client, name, store.Resolve(args[1])); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Policy detached successfully from %s: %s\n", target.kind, name)
			return nil
		},
	}
}

func newListAttachedPoliciesCmd(store *session.Store, target policyTarget) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("list-attached-%s-policies %s_NAME", target.kind, upperKind(target.kind)),
		Short: fmt.Sprintf("List managed policies attached to a %s", target.kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			policies, err := target.listAttached(client, store.Resolve(args[0]))
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(policies) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No attached policies found")
				return nil
			}
			rows := [][]string{{"Policy Name", "ARN"}}
			for _, p := range policies {
				rows = append(rows, []string{p.Name, p.ARN})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
}

func newPutInlinePolicyCmd(store *session.Store, target policyTarget) *cobra.Command {
	var document string
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("put-%s-policy %s_NAME POLICY_NAME", target.kind, upperKind(target.kind)),
		Short: fmt.Sprintf("Add or replace an inline policy on a %s", target.kind),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			name := store.Resolve(args[0])
			policyName := store.Resolve(args[1])
			if err := target.putInline(client, name, policyName, store.Resolve(document)); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Inline policy added successfully to %s: %s\n", target.kind, policyName)
			return nil
		},
	}
	cmd.Flags().StringVar(&document, "policy-document", "", "Policy document JSON")
	cmd.MarkFlagRequired("policy-document")
	return cmd
}

func newGetInlinePolicyCmd(store *session.Store, target policyTarget) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("get-%s-policy %s_NAME POLICY_NAME", target.kind, upperKind(target.kind)),
		Short: fmt.Sprintf("Show an inline policy on a %s", target.kind),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			policy, err := target.getInline(client, store.Resolve(args[0]), store.Resolve(args[1]))
			if err != nil {
				return reportErr(cmd, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, format.KeyValue([][2]string{
				{upperKind(target.kind) + " Name", policy.Principal},
				{"Policy Name", policy.Name},
			}))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Document:")
			fmt.Fprintln(out, policy.Document)
			return nil
		},
	}
}

func newDeleteInlinePolicyCmd(store *session.Store, target policyTarget) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("delete-%s-policy %s_NAME POLICY_NAME", target.kind, upperKind(target.kind)),
		Short: fmt.Sprintf("Delete an inline policy from a %s", target.kind),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			policyName := store.Resolve(args[1])
			if err := target.deleteInline(client, store.Resolve(args[0]), policyName); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Inline policy deleted successfully from %s: %s\n", target.kind, policyName)
			return nil
		},
	}
}

func newListInlinePoliciesCmd(store *session.Store, target policyTarget) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("list-%s-policies %s_NAME", target.kind, upperKind(target.kind)),
		Short: fmt.Sprintf("List inline policies on a %s", target.kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			name := store.Resolve(args[0])
			names, err := target.listInline(client, name)
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No policies found")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Inline policies for %s: %s\n", target.kind, name)
			for _, n := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", n)
			}
			return nil
		},
	}
}

func upperKind(kind string) string {
	switch kind {
	case "user":
		return "USER"
	case "role":
		return "ROLE"
	default:
		return "GROUP"
	}
}
