package aws

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	asgtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"

	"github.com/vietdv277/stratus/pkg/types"
)

// ListAutoScalingGroups returns Auto Scaling Groups, optionally restricted
// to the given names
func (c *Client) ListAutoScalingGroups(names []string) ([]types.AutoScalingGroup, error) {
	var allGroups []asgtypes.AutoScalingGroup
	var nextToken *string

	for {
		describeInput := &autoscaling.DescribeAutoScalingGroupsInput{
			NextToken: nextToken,
		}

		if len(names) > 0 {
			describeInput.AutoScalingGroupNames = names
		}

		output, err := c.ASG.DescribeAutoScalingGroups(c.ctx, describeInput)
		if err != nil {
			return nil, fmt.Errorf("failed to describe auto scaling groups: %w", err)
		}

		allGroups = append(allGroups, output.AutoScalingGroups...)

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	var groups []types.AutoScalingGroup
	for _, g := range allGroups {
		groups = append(groups, toAutoScalingGroup(g))
	}

	return groups, nil
}

// SetDesiredCapacity updates an ASG's desired capacity, optionally together
// with new min and max sizes
func (c *Client) SetDesiredCapacity(name string, desired int, minSize, maxSize *int) error {
	updateInput := &autoscaling.UpdateAutoScalingGroupInput{
		AutoScalingGroupName: aws.String(name),
		DesiredCapacity:      aws.Int32(int32(desired)),
	}

	if minSize != nil {
		updateInput.MinSize = aws.Int32(int32(*minSize))
	}
	if maxSize != nil {
		updateInput.MaxSize = aws.Int32(int32(*maxSize))
	}

	_, err := c.ASG.UpdateAutoScalingGroup(c.ctx, updateInput)
	if err != nil {
		return fmt.Errorf("failed to update auto scaling group: %w", err)
	}

	return nil
}

// toAutoScalingGroup converts an AWS ASG type to our internal type
func toAutoScalingGroup(g asgtypes.AutoScalingGroup) types.AutoScalingGroup {
	asg := types.AutoScalingGroup{
		Name:            deref(g.AutoScalingGroupName),
		ARN:             deref(g.AutoScalingGroupARN),
		DesiredCapacity: int(deref32(g.DesiredCapacity)),
		MinSize:         int(deref32(g.MinSize)),
		MaxSize:         int(deref32(g.MaxSize)),
		Status:          deref(g.Status),
	}

	if g.CreatedTime != nil {
		asg.CreatedTime = *g.CreatedTime
	}

	// Get launch template name
	if g.LaunchTemplate != nil {
		asg.LaunchTemplate = deref(g.LaunchTemplate.LaunchTemplateName)
	} else if g.MixedInstancesPolicy != nil && g.MixedInstancesPolicy.LaunchTemplate != nil {
		if g.MixedInstancesPolicy.LaunchTemplate.LaunchTemplateSpecification != nil {
			asg.LaunchTemplate = deref(g.MixedInstancesPolicy.LaunchTemplate.LaunchTemplateSpecification.LaunchTemplateName)
		}
	}

	asg.AZs = g.AvailabilityZones

	// Count instances by health status
	for _, inst := range g.Instances {
		asg.InstanceCount++
		if inst.HealthStatus != nil && *inst.HealthStatus == "Healthy" {
			asg.HealthyCount++
		}
	}

	// Set status if not provided
	if asg.Status == "" {
		asg.Status = "InService"
	}

	return asg
}

// deref32 safely dereferences an int32 pointer
func deref32(i *int32) int32 {
	if i == nil {
		return 0
	}
	return *i
}
