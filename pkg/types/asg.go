package types

import "time"

// AutoScalingGroup represents an AWS Auto Scaling Group
type AutoScalingGroup struct {
	Name            string
	ARN             string
	LaunchTemplate  string
	DesiredCapacity int
	MinSize         int
	MaxSize         int
	InstanceCount   int // current in-service instances
	HealthyCount    int
	Status          string
	CreatedTime     time.Time
	AZs             []string
}
