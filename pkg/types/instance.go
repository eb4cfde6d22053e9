package types

import "time"

// Instance represents an EC2 instance
type Instance struct {
	ID         string
	Name       string // from the Name tag, empty when untagged
	Type       string
	State      string
	PublicIP   string
	PrivateIP  string
	ImageID    string
	LaunchTime time.Time
}

// InstanceStateChange represents an instance state transition reported
// by start, stop and terminate calls
type InstanceStateChange struct {
	ID            string
	PreviousState string
	CurrentState  string
}
