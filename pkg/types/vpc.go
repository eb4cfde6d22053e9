package types

// VPC represents an AWS VPC
type VPC struct {
	ID        string
	Name      string
	CIDR      string
	State     string
	IsDefault bool
}

// Subnet represents an AWS VPC Subnet
type Subnet struct {
	ID           string
	Name         string
	VPCID        string
	CIDR         string
	AZ           string
	AvailableIPs int
}

// SecurityGroup represents an EC2 security group
type SecurityGroup struct {
	ID          string
	Name        string
	VPCID       string
	Description string
}

// Address represents an Elastic IP address
type Address struct {
	AllocationID string
	PublicIP     string
	PrivateIP    string
	InstanceID   string // empty when unassociated
	Domain       string
}
