package aws

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	ekstypes "github.com/aws/aws-sdk-go-v2/service/eks/types"

	"github.com/vietdv277/stratus/pkg/types"
)

// ListEKSClusters returns the names of the region's EKS clusters
func (c *Client) ListEKSClusters() ([]string, error) {
	output, err := c.EKS.ListClusters(c.ctx, &eks.ListClustersInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list clusters: %w", err)
	}

	return output.Clusters, nil
}

// DescribeEKSCluster returns details of a single EKS cluster
func (c *Client) DescribeEKSCluster(name string) (*types.EKSCluster, error) {
	output, err := c.EKS.DescribeCluster(c.ctx, &eks.DescribeClusterInput{
		Name: aws.String(name),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe cluster: %w", err)
	}

	cluster := toEKSCluster(output.Cluster)
	return &cluster, nil
}

// ListNodegroups returns the node group names of a cluster
func (c *Client) ListNodegroups(clusterName string) ([]string, error) {
	output, err := c.EKS.ListNodegroups(c.ctx, &eks.ListNodegroupsInput{
		ClusterName: aws.String(clusterName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodegroups: %w", err)
	}

	return output.Nodegroups, nil
}

// DescribeNodegroup returns details of a single node group
func (c *Client) DescribeNodegroup(clusterName, nodegroupName string) (*types.Nodegroup, error) {
	output, err := c.EKS.DescribeNodegroup(c.ctx, &eks.DescribeNodegroupInput{
		ClusterName:   aws.String(clusterName),
		NodegroupName: aws.String(nodegroupName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe nodegroup: %w", err)
	}

	nodegroup := toNodegroup(output.Nodegroup)
	return &nodegroup, nil
}

// UpdateNodegroupConfigInput contains the scaling changes to apply to a
// node group. Nil fields are left unchanged.
type UpdateNodegroupConfigInput struct {
	Cluster     string
	Nodegroup   string
	MinSize     *int
	MaxSize     *int
	DesiredSize *int
}

// UpdateNodegroupConfig updates a node group's scaling configuration
func (c *Client) UpdateNodegroupConfig(input *UpdateNodegroupConfigInput) (*types.ClusterUpdate, error) {
	scaling := &ekstypes.NodegroupScalingConfig{}
	if input.MinSize != nil {
		scaling.MinSize = aws.Int32(int32(*input.MinSize))
	}
	if input.MaxSize != nil {
		scaling.MaxSize = aws.Int32(int32(*input.MaxSize))
	}
	if input.DesiredSize != nil {
		scaling.DesiredSize = aws.Int32(int32(*input.DesiredSize))
	}

	output, err := c.EKS.UpdateNodegroupConfig(c.ctx, &eks.UpdateNodegroupConfigInput{
		ClusterName:   aws.String(input.Cluster),
		NodegroupName: aws.String(input.Nodegroup),
		ScalingConfig: scaling,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update nodegroup config: %w", err)
	}

	update := toClusterUpdate(output.Update)
	return &update, nil
}

// UpdateNodegroupVersion upgrades a node group, to the given Kubernetes
// version or to the cluster's version when version is empty
func (c *Client) UpdateNodegroupVersion(clusterName, nodegroupName, version string) (*types.ClusterUpdate, error) {
	input := &eks.UpdateNodegroupVersionInput{
		ClusterName:   aws.String(clusterName),
		NodegroupName: aws.String(nodegroupName),
	}
	if version != "" {
		input.Version = aws.String(version)
	}

	output, err := c.EKS.UpdateNodegroupVersion(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to update nodegroup version: %w", err)
	}

	update := toClusterUpdate(output.Update)
	return &update, nil
}

// ListFargateProfiles returns the Fargate profile names of a cluster
func (c *Client) ListFargateProfiles(clusterName string) ([]string, error) {
	output, err := c.EKS.ListFargateProfiles(c.ctx, &eks.ListFargateProfilesInput{
		ClusterName: aws.String(clusterName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list fargate profiles: %w", err)
	}

	return output.FargateProfileNames, nil
}

// DescribeFargateProfile returns details of a single Fargate profile
func (c *Client) DescribeFargateProfile(clusterName, profileName string) (*types.FargateProfile, error) {
	output, err := c.EKS.DescribeFargateProfile(c.ctx, &eks.DescribeFargateProfileInput{
		ClusterName:        aws.String(clusterName),
		FargateProfileName: aws.String(profileName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe fargate profile: %w", err)
	}

	profile := toFargateProfile(output.FargateProfile)
	return &profile, nil
}

// ListAddons returns the addon names installed in a cluster
func (c *Client) ListAddons(clusterName string) ([]string, error) {
	output, err := c.EKS.ListAddons(c.ctx, &eks.ListAddonsInput{
		ClusterName: aws.String(clusterName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list addons: %w", err)
	}

	return output.Addons, nil
}

// DescribeAddon returns details of a single addon
func (c *Client) DescribeAddon(clusterName, addonName string) (*types.Addon, error) {
	output, err := c.EKS.DescribeAddon(c.ctx, &eks.DescribeAddonInput{
		ClusterName: aws.String(clusterName),
		AddonName:   aws.String(addonName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe addon: %w", err)
	}

	addon := toAddon(output.Addon)
	return &addon, nil
}

// UpdateClusterVersion upgrades a cluster's Kubernetes control plane
func (c *Client) UpdateClusterVersion(name, version string) (*types.ClusterUpdate, error) {
	output, err := c.EKS.UpdateClusterVersion(c.ctx, &eks.UpdateClusterVersionInput{
		Name:    aws.String(name),
		Version: aws.String(version),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update cluster version: %w", err)
	}

	update := toClusterUpdate(output.Update)
	return &update, nil
}

// DescribeUpdate returns the status of a cluster or node group update
func (c *Client) DescribeUpdate(clusterName, updateID, nodegroupName string) (*types.ClusterUpdate, error) {
	input := &eks.DescribeUpdateInput{
		Name:     aws.String(clusterName),
		UpdateId: aws.String(updateID),
	}
	if nodegroupName != "" {
		input.NodegroupName = aws.String(nodegroupName)
	}

	output, err := c.EKS.DescribeUpdate(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to describe update: %w", err)
	}

	update := toClusterUpdate(output.Update)
	return &update, nil
}

// toEKSCluster converts an EKS Cluster to our EKSCluster type
func toEKSCluster(cl *ekstypes.Cluster) types.EKSCluster {
	if cl == nil {
		return types.EKSCluster{}
	}

	cluster := types.EKSCluster{
		Name:            deref(cl.Name),
		ARN:             deref(cl.Arn),
		Status:          string(cl.Status),
		Version:         deref(cl.Version),
		Endpoint:        deref(cl.Endpoint),
		RoleARN:         deref(cl.RoleArn),
		PlatformVersion: deref(cl.PlatformVersion),
	}
	if cl.CreatedAt != nil {
		cluster.Created = *cl.CreatedAt
	}

	if vpc := cl.ResourcesVpcConfig; vpc != nil {
		cluster.VPC = &types.ClusterVPCConfig{
			VPCID:            deref(vpc.VpcId),
			SubnetIDs:        vpc.SubnetIds,
			SecurityGroupIDs: vpc.SecurityGroupIds,
			PublicAccess:     vpc.EndpointPublicAccess,
			PrivateAccess:    vpc.EndpointPrivateAccess,
		}
	}

	return cluster
}

// toNodegroup converts an EKS Nodegroup to our Nodegroup type
func toNodegroup(ng *ekstypes.Nodegroup) types.Nodegroup {
	if ng == nil {
		return types.Nodegroup{}
	}

	nodegroup := types.Nodegroup{
		Name:           deref(ng.NodegroupName),
		ARN:            deref(ng.NodegroupArn),
		Status:         string(ng.Status),
		CapacityType:   string(ng.CapacityType),
		NodeRole:       deref(ng.NodeRole),
		Version:        deref(ng.Version),
		ReleaseVersion: deref(ng.ReleaseVersion),
		InstanceTypes:  ng.InstanceTypes,
		Subnets:        ng.Subnets,
	}
	if ng.CreatedAt != nil {
		nodegroup.Created = *ng.CreatedAt
	}

	if sc := ng.ScalingConfig; sc != nil {
		nodegroup.Scaling = &types.NodegroupScaling{
			MinSize:     int(deref32(sc.MinSize)),
			MaxSize:     int(deref32(sc.MaxSize)),
			DesiredSize: int(deref32(sc.DesiredSize)),
		}
	}

	return nodegroup
}

// toFargateProfile converts an EKS FargateProfile to our FargateProfile type
func toFargateProfile(fp *ekstypes.FargateProfile) types.FargateProfile {
	if fp == nil {
		return types.FargateProfile{}
	}

	profile := types.FargateProfile{
		Name:                deref(fp.FargateProfileName),
		ARN:                 deref(fp.FargateProfileArn),
		Status:              string(fp.Status),
		PodExecutionRoleARN: deref(fp.PodExecutionRoleArn),
		Subnets:             fp.Subnets,
	}
	if fp.CreatedAt != nil {
		profile.Created = *fp.CreatedAt
	}

	for _, sel := range fp.Selectors {
		profile.Selectors = append(profile.Selectors, types.FargateSelector{
			Namespace: deref(sel.Namespace),
			Labels:    sel.Labels,
		})
	}

	return profile
}

// toAddon converts an EKS Addon to our Addon type
func toAddon(a *ekstypes.Addon) types.Addon {
	if a == nil {
		return types.Addon{}
	}

	addon := types.Addon{
		Name:                  deref(a.AddonName),
		ARN:                   deref(a.AddonArn),
		Status:                string(a.Status),
		Version:               deref(a.AddonVersion),
		ServiceAccountRoleARN: deref(a.ServiceAccountRoleArn),
	}
	if a.CreatedAt != nil {
		addon.Created = *a.CreatedAt
	}
	if a.ModifiedAt != nil {
		addon.Modified = *a.ModifiedAt
	}

	return addon
}

// toClusterUpdate converts an EKS Update to our ClusterUpdate type
func toClusterUpdate(u *ekstypes.Update) types.ClusterUpdate {
	if u == nil {
		return types.ClusterUpdate{}
	}

	update := types.ClusterUpdate{
		ID:     deref(u.Id),
		Status: string(u.Status),
		Type:   string(u.Type),
	}
	if u.CreatedAt != nil {
		update.Created = *u.CreatedAt
	}

	for _, e := range u.Errors {
		update.Errors = append(update.Errors, types.UpdateError{
			Code:    string(e.ErrorCode),
			Message: deref(e.ErrorMessage),
		})
	}

	return update
}
