package types

import "time"

// EKSCluster represents an EKS cluster
type EKSCluster struct {
	Name            string
	ARN             string
	Status          string
	Version         string
	Endpoint        string
	RoleARN         string
	PlatformVersion string
	Created         time.Time
	VPC             *ClusterVPCConfig // nil when not returned
}

// ClusterVPCConfig represents the VPC configuration of an EKS cluster
type ClusterVPCConfig struct {
	VPCID            string
	SubnetIDs        []string
	SecurityGroupIDs []string
	PublicAccess     bool
	PrivateAccess    bool
}

// Nodegroup represents an EKS managed node group
type Nodegroup struct {
	Name           string
	ARN            string
	Status         string
	CapacityType   string // ON_DEMAND or SPOT
	NodeRole       string
	Version        string
	ReleaseVersion string
	Created        time.Time
	Scaling        *NodegroupScaling
	InstanceTypes  []string
	Subnets        []string
}

// NodegroupScaling represents the scaling configuration of a node group
type NodegroupScaling struct {
	MinSize     int
	MaxSize     int
	DesiredSize int
}

// FargateProfile represents an EKS Fargate profile
type FargateProfile struct {
	Name                string
	ARN                 string
	Status              string
	PodExecutionRoleARN string
	Created             time.Time
	Subnets             []string
	Selectors           []FargateSelector
}

// FargateSelector represents a pod selector on a Fargate profile
type FargateSelector struct {
	Namespace string
	Labels    map[string]string
}

// Addon represents an EKS addon
type Addon struct {
	Name                  string
	ARN                   string
	Status                string
	Version               string
	ServiceAccountRoleARN string
	Created               time.Time
	Modified              time.Time
}

// ClusterUpdate represents an in-flight or finished EKS update
type ClusterUpdate struct {
	ID      string
	Status  string
	Type    string
	Created time.Time
	Errors  []UpdateError
}

// UpdateError represents an error attached to an EKS update
type UpdateError struct {
	Code    string
	Message string
}
