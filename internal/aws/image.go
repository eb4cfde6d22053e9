package aws

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/vietdv277/stratus/pkg/types"
)

// ListImages returns AMIs filtered by owners and/or image IDs
func (c *Client) ListImages(owners, imageIDs []string) ([]types.Image, error) {
	input := &ec2.DescribeImagesInput{}
	if len(owners) > 0 {
		input.Owners = owners
	}
	if len(imageIDs) > 0 {
		input.ImageIds = imageIDs
	}

	output, err := c.EC2.DescribeImages(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to describe images: %w", err)
	}

	var images []types.Image
	for _, img := range output.Images {
		images = append(images, toImage(img))
	}

	return images, nil
}

// CreateImage creates an AMI from an instance and returns the new image ID
func (c *Client) CreateImage(instanceID, name, description string) (string, error) {
	input := &ec2.CreateImageInput{
		InstanceId: aws.String(instanceID),
		Name:       aws.String(name),
	}
	if description != "" {
		input.Description = aws.String(description)
	}

	output, err := c.EC2.CreateImage(c.ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to create image: %w", err)
	}

	return deref(output.ImageId), nil
}

// ListKeyPairs returns the account's EC2 key pairs
func (c *Client) ListKeyPairs() ([]types.KeyPair, error) {
	output, err := c.EC2.DescribeKeyPairs(c.ctx, &ec2.DescribeKeyPairsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe key pairs: %w", err)
	}

	var keyPairs []types.KeyPair
	for _, kp := range output.KeyPairs {
		keyPairs = append(keyPairs, types.KeyPair{
			Name:        deref(kp.KeyName),
			ID:          deref(kp.KeyPairId),
			Fingerprint: deref(kp.KeyFingerprint),
		})
	}

	return keyPairs, nil
}

// CreateKeyPair creates a new key pair and returns the private key material
func (c *Client) CreateKeyPair(name string) (*types.CreatedKeyPair, error) {
	output, err := c.EC2.CreateKeyPair(c.ctx, &ec2.CreateKeyPairInput{
		KeyName: aws.String(name),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create key pair: %w", err)
	}

	return &types.CreatedKeyPair{
		Name:     deref(output.KeyName),
		Material: deref(output.KeyMaterial),
	}, nil
}

// DeleteKeyPair deletes a key pair by name
func (c *Client) DeleteKeyPair(name string) error {
	_, err := c.EC2.DeleteKeyPair(c.ctx, &ec2.DeleteKeyPairInput{
		KeyName: aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("failed to delete key pair: %w", err)
	}

	return nil
}

// toImage converts an EC2 Image to our Image type
func toImage(i ec2types.Image) types.Image {
	return types.Image{
		ID:           deref(i.ImageId),
		Name:         deref(i.Name),
		State:        string(i.State),
		Architecture: string(i.Architecture),
		RootDevice:   string(i.RootDeviceType),
	}
}
