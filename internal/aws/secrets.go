package aws

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/vietdv277/stratus/pkg/types"
)

// ListSecrets returns the region's Secrets Manager secrets
func (c *Client) ListSecrets() ([]types.Secret, error) {
	paginator := secretsmanager.NewListSecretsPaginator(c.Secrets, &secretsmanager.ListSecretsInput{})

	var secrets []types.Secret
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(c.ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list secrets: %w", err)
		}

		for _, s := range page.SecretList {
			secret := types.Secret{
				Name:        deref(s.Name),
				ARN:         deref(s.ARN),
				Description: deref(s.Description),
			}
			if s.CreatedDate != nil {
				secret.CreatedAt = *s.CreatedDate
			}
			if s.LastChangedDate != nil {
				secret.UpdatedAt = *s.LastChangedDate
			}
			secrets = append(secrets, secret)
		}
	}

	return secrets, nil
}

// GetSecretValue returns a secret with its current value
func (c *Client) GetSecretValue(name string) (*types.SecretValue, error) {
	output, err := c.Secrets.GetSecretValue(c.ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret: %w", err)
	}

	return &types.SecretValue{
		Secret: types.Secret{
			Name:      deref(output.Name),
			ARN:       deref(output.ARN),
			CreatedAt: safeTime(output.CreatedDate),
		},
		Value:   deref(output.SecretString),
		Version: deref(output.VersionId),
	}, nil
}

// CreateSecret creates a new secret and returns its ARN
func (c *Client) CreateSecret(name, value, description string) (string, error) {
	input := &secretsmanager.CreateSecretInput{
		Name:         &name,
		SecretString: &value,
	}
	if description != "" {
		input.Description = &description
	}

	output, err := c.Secrets.CreateSecret(c.ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to create secret: %w", err)
	}

	return deref(output.ARN), nil
}

// DeleteSecret deletes a secret, immediately when force is set and with the
// default recovery window otherwise
func (c *Client) DeleteSecret(name string, force bool) error {
	input := &secretsmanager.DeleteSecretInput{
		SecretId: &name,
	}
	if force {
		input.ForceDeleteWithoutRecovery = boolPtr(true)
	}

	_, err := c.Secrets.DeleteSecret(c.ctx, input)
	if err != nil {
		return fmt.Errorf("failed to delete secret: %w", err)
	}

	return nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func safeTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
