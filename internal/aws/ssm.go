package aws

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmTypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"github.com/vietdv277/stratus/pkg/types"
)

// ListParameters returns Parameter Store parameter metadata, optionally
// restricted to names beginning with prefix
func (c *Client) ListParameters(prefix string) ([]types.Parameter, error) {
	input := &ssm.DescribeParametersInput{}

	if prefix != "" {
		input.ParameterFilters = []ssmTypes.ParameterStringFilter{
			{
				Key:    strPtr("Name"),
				Option: strPtr("BeginsWith"),
				Values: []string{prefix},
			},
		}
	}

	paginator := ssm.NewDescribeParametersPaginator(c.SSM, input)

	var params []types.Parameter
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(c.ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe parameters: %w", err)
		}

		for _, p := range page.Parameters {
			param := types.Parameter{
				Name:    deref(p.Name),
				Type:    string(p.Type),
				Version: p.Version,
			}
			if p.LastModifiedDate != nil {
				param.Modified = *p.LastModifiedDate
			}
			params = append(params, param)
		}
	}

	return params, nil
}

// GetParameter returns a parameter with its value
func (c *Client) GetParameter(name string, withDecryption bool) (*types.Parameter, error) {
	output, err := c.SSM.GetParameter(c.ctx, &ssm.GetParameterInput{
		Name:           &name,
		WithDecryption: boolPtr(withDecryption),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get parameter: %w", err)
	}

	p := output.Parameter
	return &types.Parameter{
		Name:     deref(p.Name),
		Type:     string(p.Type),
		Value:    deref(p.Value),
		Version:  p.Version,
		Modified: safeTime(p.LastModifiedDate),
	}, nil
}

// PutParameter creates or updates a parameter and returns the new version
func (c *Client) PutParameter(name, value, paramType string, overwrite bool) (int64, error) {
	output, err := c.SSM.PutParameter(c.ctx, &ssm.PutParameterInput{
		Name:      &name,
		Value:     &value,
		Type:      ssmTypes.ParameterType(paramType),
		Overwrite: boolPtr(overwrite),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to put parameter: %w", err)
	}

	return output.Version, nil
}

// DeleteParameter deletes a parameter by name
func (c *Client) DeleteParameter(name string) error {
	_, err := c.SSM.DeleteParameter(c.ctx, &ssm.DeleteParameterInput{
		Name: &name,
	})
	if err != nil {
		return fmt.Errorf("failed to delete parameter: %w", err)
	}

	return nil
}
