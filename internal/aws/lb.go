package aws

import (
	"fmt"

	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbv2types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"

	"github.com/vietdv277/stratus/pkg/types"
)

// ListLoadBalancers returns all load balancers (ALB/NLB)
func (c *Client) ListLoadBalancers() ([]types.LoadBalancer, error) {
	var lbs []types.LoadBalancer
	var marker *string

	for {
		output, err := c.ELB.DescribeLoadBalancers(c.ctx, &elbv2.DescribeLoadBalancersInput{
			Marker: marker,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to describe load balancers: %w", err)
		}

		for _, lb := range output.LoadBalancers {
			lbs = append(lbs, toLoadBalancer(lb))
		}

		if output.NextMarker == nil {
			break
		}
		marker = output.NextMarker
	}

	return lbs, nil
}

// ListTargetGroups returns all target groups, optionally filtered by load
// balancer ARN
func (c *Client) ListTargetGroups(lbARN string) ([]types.TargetGroup, error) {
	var tgs []types.TargetGroup
	var marker *string

	for {
		input := &elbv2.DescribeTargetGroupsInput{
			Marker: marker,
		}
		if lbARN != "" {
			input.LoadBalancerArn = &lbARN
		}

		output, err := c.ELB.DescribeTargetGroups(c.ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to describe target groups: %w", err)
		}

		for _, tg := range output.TargetGroups {
			tgs = append(tgs, toTargetGroup(tg))
		}

		if output.NextMarker == nil {
			break
		}
		marker = output.NextMarker
	}

	return tgs, nil
}

// ListTargetHealth returns the targets of a target group with their health
func (c *Client) ListTargetHealth(tgARN string) ([]types.Target, error) {
	output, err := c.ELB.DescribeTargetHealth(c.ctx, &elbv2.DescribeTargetHealthInput{
		TargetGroupArn: &tgARN,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe target health: %w", err)
	}

	var targets []types.Target
	for _, thd := range output.TargetHealthDescriptions {
		targets = append(targets, toTarget(thd))
	}

	return targets, nil
}

// toLoadBalancer converts an ELBv2 LoadBalancer to our LoadBalancer type
func toLoadBalancer(lb elbv2types.LoadBalancer) types.LoadBalancer {
	result := types.LoadBalancer{
		Name:    deref(lb.LoadBalancerName),
		ARN:     deref(lb.LoadBalancerArn),
		DNSName: deref(lb.DNSName),
		Type:    string(lb.Type),
		Scheme:  string(lb.Scheme),
		VPCID:   deref(lb.VpcId),
	}

	if lb.State != nil {
		result.State = string(lb.State.Code)
	}

	if lb.CreatedTime != nil {
		result.CreatedAt = *lb.CreatedTime
	}

	for _, az := range lb.AvailabilityZones {
		if az.ZoneName != nil {
			result.AZs = append(result.AZs, *az.ZoneName)
		}
	}

	return result
}

// toTargetGroup converts an ELBv2 TargetGroup to our TargetGroup type
func toTargetGroup(tg elbv2types.TargetGroup) types.TargetGroup {
	return types.TargetGroup{
		Name:     deref(tg.TargetGroupName),
		ARN:      deref(tg.TargetGroupArn),
		Protocol: string(tg.Protocol),
		Port:     int(deref32(tg.Port)),
		VPCID:    deref(tg.VpcId),
		Type:     string(tg.TargetType),
	}
}

// toTarget converts an ELBv2 TargetHealthDescription to our Target type
func toTarget(thd elbv2types.TargetHealthDescription) types.Target {
	target := types.Target{}

	if thd.Target != nil {
		target.ID = deref(thd.Target.Id)
		if thd.Target.Port != nil {
			target.Port = int(*thd.Target.Port)
		}
		target.AZ = deref(thd.Target.AvailabilityZone)
	}

	if thd.TargetHealth != nil {
		target.Health = string(thd.TargetHealth.State)
		target.Reason = string(thd.TargetHealth.Reason)
	}

	return target
}
