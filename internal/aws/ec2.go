package aws

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/vietdv277/stratus/pkg/types"
)

// ListInstances returns EC2 instances, optionally restricted to the given IDs
func (c *Client) ListInstances(instanceIDs []string) ([]types.Instance, error) {
	input := &ec2.DescribeInstancesInput{}
	if len(instanceIDs) > 0 {
		input.InstanceIds = instanceIDs
	}

	output, err := c.EC2.DescribeInstances(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to describe instances: %w", err)
	}

	var instances []types.Instance
	for _, reservation := range output.Reservations {
		for _, inst := range reservation.Instances {
			instances = append(instances, toInstance(inst))
		}
	}

	return instances, nil
}

// StartInstances starts the given instances and returns the state transitions
func (c *Client) StartInstances(instanceIDs []string) ([]types.InstanceStateChange, error) {
	output, err := c.EC2.StartInstances(c.ctx, &ec2.StartInstancesInput{
		InstanceIds: instanceIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start instances: %w", err)
	}

	return toStateChanges(output.StartingInstances), nil
}

// StopInstances stops the given instances and returns the state transitions
func (c *Client) StopInstances(instanceIDs []string) ([]types.InstanceStateChange, error) {
	output, err := c.EC2.StopInstances(c.ctx, &ec2.StopInstancesInput{
		InstanceIds: instanceIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to stop instances: %w", err)
	}

	return toStateChanges(output.StoppingInstances), nil
}

// TerminateInstances terminates the given instances and returns the state transitions
func (c *Client) TerminateInstances(instanceIDs []string) ([]types.InstanceStateChange, error) {
	output, err := c.EC2.TerminateInstances(c.ctx, &ec2.TerminateInstancesInput{
		InstanceIds: instanceIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to terminate instances: %w", err)
	}

	return toStateChanges(output.TerminatingInstances), nil
}

// RebootInstances requests a reboot of the given instances
func (c *Client) RebootInstances(instanceIDs []string) error {
	_, err := c.EC2.RebootInstances(c.ctx, &ec2.RebootInstancesInput{
		InstanceIds: instanceIDs,
	})
	if err != nil {
		return fmt.Errorf("failed to reboot instances: %w", err)
	}

	return nil
}

// RunInstancesInput contains parameters for launching instances
type RunInstancesInput struct {
	ImageID          string
	InstanceType     string
	Count            int
	KeyName          string
	SecurityGroupIDs []string
	SubnetID         string
}

// RunInstances launches new instances and returns them as reported at launch
func (c *Client) RunInstances(input *RunInstancesInput) ([]types.Instance, error) {
	runInput := &ec2.RunInstancesInput{
		ImageId:      aws.String(input.ImageID),
		InstanceType: ec2types.InstanceType(input.InstanceType),
		MinCount:     aws.Int32(int32(input.Count)),
		MaxCount:     aws.Int32(int32(input.Count)),
	}

	if input.KeyName != "" {
		runInput.KeyName = aws.String(input.KeyName)
	}
	if len(input.SecurityGroupIDs) > 0 {
		runInput.SecurityGroupIds = input.SecurityGroupIDs
	}
	if input.SubnetID != "" {
		runInput.SubnetId = aws.String(input.SubnetID)
	}

	output, err := c.EC2.RunInstances(c.ctx, runInput)
	if err != nil {
		return nil, fmt.Errorf("failed to run instances: %w", err)
	}

	var instances []types.Instance
	for _, inst := range output.Instances {
		instances = append(instances, toInstance(inst))
	}

	return instances, nil
}

// toInstance converts an EC2 Instance to our Instance type
func toInstance(i ec2types.Instance) types.Instance {
	inst := types.Instance{
		ID:      deref(i.InstanceId),
		Type:    string(i.InstanceType),
		ImageID: deref(i.ImageId),
	}

	if i.State != nil {
		inst.State = string(i.State.Name)
	}

	if i.PublicIpAddress != nil {
		inst.PublicIP = *i.PublicIpAddress
	}

	if i.PrivateIpAddress != nil {
		inst.PrivateIP = *i.PrivateIpAddress
	}

	if i.LaunchTime != nil {
		inst.LaunchTime = *i.LaunchTime
	}

	for _, tag := range i.Tags {
		if deref(tag.Key) == "Name" {
			inst.Name = deref(tag.Value)
		}
	}

	return inst
}

func toStateChanges(changes []ec2types.InstanceStateChange) []types.InstanceStateChange {
	var out []types.InstanceStateChange
	for _, sc := range changes {
		change := types.InstanceStateChange{
			ID: deref(sc.InstanceId),
		}
		if sc.PreviousState != nil {
			change.PreviousState = string(sc.PreviousState.Name)
		}
		if sc.CurrentState != nil {
			change.CurrentState = string(sc.CurrentState.Name)
		}
		out = append(out, change)
	}
	return out
}

// deref safely dereferences a string pointer
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
