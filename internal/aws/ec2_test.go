package aws

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
)

func TestToInstance(t *testing.T) {
	launched := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	inst := toInstance(ec2types.Instance{
		InstanceId:       aws.String("i-0abc123"),
		InstanceType:     ec2types.InstanceTypeT3Micro,
		ImageId:          aws.String("ami-0def456"),
		State:            &ec2types.InstanceState{Name: ec2types.InstanceStateNameRunning},
		PublicIpAddress:  aws.String("54.1.2.3"),
		PrivateIpAddress: aws.String("10.0.0.5"),
		LaunchTime:       &launched,
		Tags: []ec2types.Tag{
			{Key: aws.String("env"), Value: aws.String("prod")},
			{Key: aws.String("Name"), Value: aws.String("web-1")},
		},
	})

	assert.Equal(t, "i-0abc123", inst.ID)
	assert.Equal(t, "web-1", inst.Name)
	assert.Equal(t, "t3.micro", inst.Type)
	assert.Equal(t, "running", inst.State)
	assert.Equal(t, "54.1.2.3", inst.PublicIP)
	assert.Equal(t, "10.0.0.5", inst.PrivateIP)
	assert.Equal(t, "ami-0def456", inst.ImageID)
	assert.Equal(t, launched, inst.LaunchTime)
}

func TestToInstanceMinimal(t *testing.T) {
	// Stopped instances have no public IP and may be untagged
	inst := toInstance(ec2types.Instance{
		InstanceId: aws.String("i-0abc123"),
		State:      &ec2types.InstanceState{Name: ec2types.InstanceStateNameStopped},
	})

	assert.Equal(t, "i-0abc123", inst.ID)
	assert.Empty(t, inst.Name)
	assert.Empty(t, inst.PublicIP)
	assert.Empty(t, inst.PrivateIP)
	assert.True(t, inst.LaunchTime.IsZero())
}

func TestToStateChanges(t *testing.T) {
	changes := toStateChanges([]ec2types.InstanceStateChange{
		{
			InstanceId:    aws.String("i-1"),
			PreviousState: &ec2types.InstanceState{Name: ec2types.InstanceStateNameStopped},
			CurrentState:  &ec2types.InstanceState{Name: ec2types.InstanceStateNamePending},
		},
		{
			InstanceId: aws.String("i-2"),
		},
	})

	assert.Len(t, changes, 2)
	assert.Equal(t, "i-1", changes[0].ID)
	assert.Equal(t, "stopped", changes[0].PreviousState)
	assert.Equal(t, "pending", changes[0].CurrentState)
	assert.Empty(t, changes[1].PreviousState)
}
