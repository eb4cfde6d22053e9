package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vietdv277/stratus/internal/aws"
	"github.com/vietdv277/stratus/internal/config"
	"github.com/vietdv277/stratus/internal/format"
	"github.com/vietdv277/stratus/internal/session"
	"github.com/vietdv277/stratus/pkg/types"
)

func newSTSCmd(store *session.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sts",
		Short: "STS identity and temporary credentials",
	}
	cmd.AddCommand(
		newSTSGetCallerIdentityCmd(store),
		newSTSAssumeRoleCmd(store),
		newSTSAssumeRoleWithSAMLCmd(store),
		newSTSAssumeRoleWithWebIdentityCmd(store),
		newSTSGetSessionTokenCmd(store),
		newSTSGetFederationTokenCmd(store),
		newSTSDecodeAuthorizationMessageCmd(store),
		newSTSGetAccessKeyInfoCmd(store),
	)
	return cmd
}

// credentialPairs renders temporary credentials as key/value rows
func credentialPairs(creds types.Credentials) [][2]string {
	return [][2]string{
		{"Access Key ID", creds.AccessKeyID},
		{"Secret Access Key", creds.SecretAccessKey},
		{"Session Token", format.Truncate(creds.SessionToken, 60)},
		{"Expiration", creds.Expiration.Format(format.TimeLayout)},
	}
}

// printExportHint shows the shell exports needed to adopt the credentials
func printExportHint(cmd *cobra.Command, creds types.Credentials) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "To use these credentials, export them as environment variables:")
	fmt.Fprintf(out, "export AWS_ACCESS_KEY_ID=%s\n", creds.AccessKeyID)
	fmt.Fprintf(out, "export AWS_SECRET_ACCESS_KEY=%s\n", creds.SecretAccessKey)
	fmt.Fprintf(out, "export AWS_SESSION_TOKEN=%s\n", creds.SessionToken)
}

func newSTSGetCallerIdentityCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "get-caller-identity",
		Short: "Show who the current credentials belong to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			identity, err := client.GetCallerIdentity()
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue([][2]string{
				{"Account", identity.Account},
				{"User ID", identity.UserID},
				{"ARN", identity.ARN},
			}))
			return nil
		},
	}
}

func newSTSAssumeRoleCmd(store *session.Store) *cobra.Command {
	var (
		roleARN      string
		sessionName  string
		duration     int
		externalID   string
		serialNumber string
		tokenCode    string
		policy       string
	)
	cmd := &cobra.Command{
		Use:   "assume-role",
		Short: "Assume an IAM role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			assumed, err := client.AssumeRole(&aws.AssumeRoleInput{
				RoleARN:         store.Resolve(roleARN),
				SessionName:     store.Resolve(sessionName),
				DurationSeconds: duration,
				ExternalID:      store.Resolve(externalID),
				SerialNumber:    store.Resolve(serialNumber),
				TokenCode:       store.Resolve(tokenCode),
				Policy:          store.Resolve(policy),
			})
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Role assumed successfully:")
			pairs := append([][2]string{{"Assumed Role ARN", assumed.ARN}}, credentialPairs(assumed.Credentials)...)
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue(pairs))
			printExportHint(cmd, assumed.Credentials)
			return nil
		},
	}
	cmd.Flags().StringVar(&roleARN, "role-arn", "", "ARN of the role to assume")
	cmd.Flags().StringVar(&sessionName, "role-session-name", "", "Session name")
	cmd.Flags().IntVar(&duration, "duration-seconds", 3600, "Credential lifetime in seconds")
	cmd.Flags().StringVar(&externalID, "external-id", "", "External ID expected by the role")
	cmd.Flags().StringVar(&serialNumber, "serial-number", "", "MFA device serial number")
	cmd.Flags().StringVar(&tokenCode, "token-code", "", "MFA token code")
	cmd.Flags().StringVar(&policy, "policy", "", "Inline session policy JSON")
	cmd.MarkFlagRequired("role-arn")
	cmd.MarkFlagRequired("role-session-name")
	return cmd
}

func newSTSAssumeRoleWithSAMLCmd(store *session.Store) *cobra.Command {
	var (
		roleARN      string
		principalARN string
		assertion    string
		duration     int
		policy       string
	)
	cmd := &cobra.Command{
		Use:   "assume-role-with-saml",
		Short: "Assume a role using a SAML assertion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			assumed, err := client.AssumeRoleWithSAML(&aws.AssumeRoleWithSAMLInput{
				RoleARN:         store.Resolve(roleARN),
				PrincipalARN:    store.Resolve(principalARN),
				Assertion:       store.Resolve(assertion),
				DurationSeconds: duration,
				Policy:          store.Resolve(policy),
			})
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Role assumed successfully:")
			pairs := [][2]string{
				{"Assumed Role ARN", assumed.ARN},
				{"Subject", assumed.Subject},
				{"Issuer", assumed.Issuer},
			}
			pairs = append(pairs, credentialPairs(assumed.Credentials)...)
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue(pairs))
			printExportHint(cmd, assumed.Credentials)
			return nil
		},
	}
	cmd.Flags().StringVar(&roleARN, "role-arn", "", "ARN of the role to assume")
	cmd.Flags().StringVar(&principalARN, "principal-arn", "", "ARN of the SAML provider")
	cmd.Flags().StringVar(&assertion, "saml-assertion", "", "Base64-encoded SAML assertion")
	cmd.Flags().IntVar(&duration, "duration-seconds", 3600, "Credential lifetime in seconds")
	cmd.Flags().StringVar(&policy, "policy", "", "Inline session policy JSON")
	cmd.MarkFlagRequired("role-arn")
	cmd.MarkFlagRequired("principal-arn")
	cmd.MarkFlagRequired("saml-assertion")
	return cmd
}

func newSTSAssumeRoleWithWebIdentityCmd(store *session.Store) *cobra.Command {
	var (
		roleARN     string
		sessionName string
		token       string
		duration    int
		providerID  string
		policy      string
	)
	cmd := &cobra.Command{
		Use:   "assume-role-with-web-identity",
		Short: "Assume a role using a web identity token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			assumed, err := client.AssumeRoleWithWebIdentity(&aws.AssumeRoleWithWebIdentityInput{
				RoleARN:         store.Resolve(roleARN),
				SessionName:     store.Resolve(sessionName),
				Token:           store.Resolve(token),
				DurationSeconds: duration,
				ProviderID:      store.Resolve(providerID),
				Policy:          store.Resolve(policy),
			})
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Role assumed successfully:")
			pairs := [][2]string{
				{"Assumed Role ARN", assumed.ARN},
				{"Subject", na(assumed.Subject)},
				{"Provider", na(assumed.Provider)},
			}
			pairs = append(pairs, credentialPairs(assumed.Credentials)...)
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue(pairs))
			printExportHint(cmd, assumed.Credentials)
			return nil
		},
	}
	cmd.Flags().StringVar(&roleARN, "role-arn", "", "ARN of the role to assume")
	cmd.Flags().StringVar(&sessionName, "role-session-name", "", "Session name")
	cmd.Flags().StringVar(&token, "web-identity-token", "", "OIDC token from the identity provider")
	cmd.Flags().IntVar(&duration, "duration-seconds", 3600, "Credential lifetime in seconds")
	cmd.Flags().StringVar(&providerID, "provider-id", "", "Identity provider ID")
	cmd.Flags().StringVar(&policy, "policy", "", "Inline session policy JSON")
	cmd.MarkFlagRequired("role-arn")
	cmd.MarkFlagRequired("role-session-name")
	cmd.MarkFlagRequired("web-identity-token")
	return cmd
}

func newSTSGetSessionTokenCmd(store *session.Store) *cobra.Command {
	var (
		duration     int
		serialNumber string
		tokenCode    string
	)
	cmd := &cobra.Command{
		Use:   "get-session-token",
		Short: "Get temporary credentials for the current identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			creds, err := client.GetSessionToken(duration,
				store.Resolve(serialNumber), store.Resolve(tokenCode))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session token created:")
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue(credentialPairs(*creds)))
			printExportHint(cmd, *creds)
			return nil
		},
	}
	cmd.Flags().IntVar(&duration, "duration-seconds", 43200, "Credential lifetime in seconds")
	cmd.Flags().StringVar(&serialNumber, "serial-number", "", "MFA device serial number")
	cmd.Flags().StringVar(&tokenCode, "token-code", "", "MFA token code")
	return cmd
}

func newSTSGetFederationTokenCmd(store *session.Store) *cobra.Command {
	var (
		duration int
		policy   string
	)
	cmd := &cobra.Command{
		Use:   "get-federation-token NAME",
		Short: "Get credentials for a federated user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			token, err := client.GetFederationToken(
				store.Resolve(args[0]), duration, store.Resolve(policy))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Federation token created:")
			pairs := [][2]string{
				{"Federated User ARN", token.ARN},
				{"Federated User ID", token.UserID},
			}
			pairs = append(pairs, credentialPairs(token.Credentials)...)
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue(pairs))
			printExportHint(cmd, token.Credentials)
			return nil
		},
	}
	cmd.Flags().IntVar(&duration, "duration-seconds", 43200, "Credential lifetime in seconds")
	cmd.Flags().StringVar(&policy, "policy", "", "Inline session policy JSON")
	return cmd
}

func newSTSDecodeAuthorizationMessageCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "decode-authorization-message ENCODED_MESSAGE",
		Short: "Decode an encoded authorization failure message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			decoded, err := client.DecodeAuthorizationMessage(store.Resolve(args[0]))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Decoded message:")
			fmt.Fprintln(cmd.OutOrStdout(), decoded)
			return nil
		},
	}
}

func newSTSGetAccessKeyInfoCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "get-access-key-info ACCESS_KEY_ID",
		Short: "Show which account an access key belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			keyID := store.Resolve(args[0])
			account, err := client.GetAccessKeyInfo(keyID)
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue([][2]string{
				{"Access Key ID", keyID},
				{"Account", account},
			}))
			return nil
		},
	}
}

// newConfigureCmd shows the effective AWS configuration and where each
// value comes from
func newConfigureCmd() *cobra.Command {
	configure := &cobra.Command{
		Use:   "configure",
		Short: "Inspect the effective AWS configuration",
	}
	show := &cobra.Command{
		Use:   "show",
		Short: "Show resolved profile, region, and credentials source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			profile := config.EffectiveProfile(flagProfile(cmd))
			profileLabel := profile
			if profile == "" {
				profileLabel = "(not set - using default)"
			}

			explicit := flagRegion(cmd)
			regionLabel := config.EffectiveRegion(explicit)
			if explicit == "" && os.Getenv("AWS_REGION") == "" &&
				os.Getenv("AWS_DEFAULT_REGION") == "" && config.GetSavedRegion() == "" {
				regionLabel += " (default)"
			}

			envProfile := os.Getenv("AWS_PROFILE")
			if envProfile == "" {
				envProfile = "(not set)"
			}
			envRegion := os.Getenv("AWS_REGION")
			if envRegion == "" {
				envRegion = "(not set)"
			}

			fmt.Fprint(out, format.KeyValue([][2]string{
				{"Profile", profileLabel},
				{"Region", regionLabel},
				{"AWS_PROFILE", envProfile},
				{"AWS_REGION", envRegion},
				{"Config File", config.GetConfigPath()},
			}))
			return nil
		},
	}
	configure.AddCommand(show)
	return configure
}
