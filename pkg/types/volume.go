package types

import "time"

// Volume represents an EBS volume
type Volume struct {
	ID        string
	Size      int // GB
	Type      string
	State     string
	AZ        string
	Encrypted bool
}

// Snapshot represents an EBS snapshot
type Snapshot struct {
	ID        string
	VolumeID  string
	Size      int // GB
	State     string
	Progress  string
	StartTime time.Time
}
