package aws

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/vietdv277/stratus/pkg/types"
)

// ListVPCs returns all VPCs in the region
func (c *Client) ListVPCs() ([]types.VPC, error) {
	output, err := c.EC2.DescribeVpcs(c.ctx, &ec2.DescribeVpcsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe VPCs: %w", err)
	}

	var vpcs []types.VPC
	for _, v := range output.Vpcs {
		vpcs = append(vpcs, toVPC(v))
	}

	return vpcs, nil
}

// ListSubnets returns all subnets, optionally filtered by VPC ID
func (c *Client) ListSubnets(vpcID string) ([]types.Subnet, error) {
	input := &ec2.DescribeSubnetsInput{}

	if vpcID != "" {
		input.Filters = []ec2types.Filter{
			{
				Name:   aws.String("vpc-id"),
				Values: []string{vpcID},
			},
		}
	}

	output, err := c.EC2.DescribeSubnets(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to describe subnets: %w", err)
	}

	var subnets []types.Subnet
	for _, s := range output.Subnets {
		subnets = append(subnets, toSubnet(s))
	}

	return subnets, nil
}

// ListSecurityGroups returns security groups, optionally restricted to the given IDs
func (c *Client) ListSecurityGroups(groupIDs []string) ([]types.SecurityGroup, error) {
	input := &ec2.DescribeSecurityGroupsInput{}
	if len(groupIDs) > 0 {
		input.GroupIds = groupIDs
	}

	output, err := c.EC2.DescribeSecurityGroups(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to describe security groups: %w", err)
	}

	var groups []types.SecurityGroup
	for _, g := range output.SecurityGroups {
		groups = append(groups, types.SecurityGroup{
			ID:          deref(g.GroupId),
			Name:        deref(g.GroupName),
			VPCID:       deref(g.VpcId),
			Description: deref(g.Description),
		})
	}

	return groups, nil
}

// CreateSecurityGroup creates a security group and returns its ID
func (c *Client) CreateSecurityGroup(name, description, vpcID string) (string, error) {
	output, err := c.EC2.CreateSecurityGroup(c.ctx, &ec2.CreateSecurityGroupInput{
		GroupName:   aws.String(name),
		Description: aws.String(description),
		VpcId:       aws.String(vpcID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create security group: %w", err)
	}

	return deref(output.GroupId), nil
}

// DeleteSecurityGroup deletes a security group by ID
func (c *Client) DeleteSecurityGroup(groupID string) error {
	_, err := c.EC2.DeleteSecurityGroup(c.ctx, &ec2.DeleteSecurityGroupInput{
		GroupId: aws.String(groupID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete security group: %w", err)
	}

	return nil
}

// AuthorizeIngress adds an inbound rule to a security group. The rule opens a
// single port for the given protocol and CIDR range.
func (c *Client) AuthorizeIngress(groupID, protocol string, port int, cidr string) error {
	_, err := c.EC2.AuthorizeSecurityGroupIngress(c.ctx, &ec2.AuthorizeSecurityGroupIngressInput{
		GroupId: aws.String(groupID),
		IpPermissions: []ec2types.IpPermission{
			{
				IpProtocol: aws.String(protocol),
				FromPort:   aws.Int32(int32(port)),
				ToPort:     aws.Int32(int32(port)),
				IpRanges: []ec2types.IpRange{
					{CidrIp: aws.String(cidr)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to authorize ingress: %w", err)
	}

	return nil
}

// ListAddresses returns the account's Elastic IP addresses
func (c *Client) ListAddresses() ([]types.Address, error) {
	output, err := c.EC2.DescribeAddresses(c.ctx, &ec2.DescribeAddressesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe addresses: %w", err)
	}

	var addresses []types.Address
	for _, a := range output.Addresses {
		addresses = append(addresses, types.Address{
			AllocationID: deref(a.AllocationId),
			PublicIP:     deref(a.PublicIp),
			PrivateIP:    deref(a.PrivateIpAddress),
			InstanceID:   deref(a.InstanceId),
			Domain:       string(a.Domain),
		})
	}

	return addresses, nil
}

// AllocateAddress allocates a new VPC Elastic IP
func (c *Client) AllocateAddress() (*types.Address, error) {
	output, err := c.EC2.AllocateAddress(c.ctx, &ec2.AllocateAddressInput{
		Domain: ec2types.DomainTypeVpc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to allocate address: %w", err)
	}

	return &types.Address{
		AllocationID: deref(output.AllocationId),
		PublicIP:     deref(output.PublicIp),
		Domain:       string(output.Domain),
	}, nil
}

// ReleaseAddress releases an Elastic IP by allocation ID
func (c *Client) ReleaseAddress(allocationID string) error {
	_, err := c.EC2.ReleaseAddress(c.ctx, &ec2.ReleaseAddressInput{
		AllocationId: aws.String(allocationID),
	})
	if err != nil {
		return fmt.Errorf("failed to release address: %w", err)
	}

	return nil
}

// AssociateAddress associates an Elastic IP with an instance and returns the
// association ID
func (c *Client) AssociateAddress(instanceID, allocationID string) (string, error) {
	output, err := c.EC2.AssociateAddress(c.ctx, &ec2.AssociateAddressInput{
		InstanceId:   aws.String(instanceID),
		AllocationId: aws.String(allocationID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to associate address: %w", err)
	}

	return deref(output.AssociationId), nil
}

// CreateTags applies tags to the given resources
func (c *Client) CreateTags(resources []string, tags [][2]string) error {
	var ec2Tags []ec2types.Tag
	for _, t := range tags {
		ec2Tags = append(ec2Tags, ec2types.Tag{
			Key:   aws.String(t[0]),
			Value: aws.String(t[1]),
		})
	}

	_, err := c.EC2.CreateTags(c.ctx, &ec2.CreateTagsInput{
		Resources: resources,
		Tags:      ec2Tags,
	})
	if err != nil {
		return fmt.Errorf("failed to create tags: %w", err)
	}

	return nil
}

// toVPC converts an EC2 VPC to our VPC type
func toVPC(v ec2types.Vpc) types.VPC {
	vpc := types.VPC{
		ID:        deref(v.VpcId),
		CIDR:      deref(v.CidrBlock),
		State:     string(v.State),
		IsDefault: derefBool(v.IsDefault),
	}

	// Extract Name tag
	for _, tag := range v.Tags {
		if deref(tag.Key) == "Name" {
			vpc.Name = deref(tag.Value)
			break
		}
	}

	return vpc
}

// toSubnet converts an EC2 Subnet to our Subnet type
func toSubnet(s ec2types.Subnet) types.Subnet {
	subnet := types.Subnet{
		ID:           deref(s.SubnetId),
		VPCID:        deref(s.VpcId),
		CIDR:         deref(s.CidrBlock),
		AZ:           deref(s.AvailabilityZone),
		AvailableIPs: int(deref32(s.AvailableIpAddressCount)),
	}

	// Extract Name tag
	for _, tag := range s.Tags {
		if deref(tag.Key) == "Name" {
			subnet.Name = deref(tag.Value)
			break
		}
	}

	return subnet
}
