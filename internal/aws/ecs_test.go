package aws

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/stretchr/testify/assert"
)

func TestArnTail(t *testing.T) {
	tests := []struct {
		arn  string
		want string
	}{
		{"arn:aws:ecs:us-east-2:123456789012:task/prod/abc123def456", "abc123def456"},
		{"arn:aws:ecs:us-east-2:123456789012:task-definition/web:42", "web:42"},
		{"no-slashes", "no-slashes"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, arnTail(tt.arn))
	}
}

func TestToECSTask(t *testing.T) {
	task := toECSTask(ecstypes.Task{
		TaskArn:              aws.String("arn:aws:ecs:us-east-2:123456789012:task/prod/abc123"),
		LastStatus:           aws.String("RUNNING"),
		DesiredStatus:        aws.String("RUNNING"),
		TaskDefinitionArn:    aws.String("arn:aws:ecs:us-east-2:123456789012:task-definition/web:3"),
		ContainerInstanceArn: aws.String("arn:aws:ecs:us-east-2:123456789012:container-instance/prod/ci-1"),
	})

	assert.Equal(t, "abc123", task.ID)
	assert.Equal(t, "RUNNING", task.Status)
	assert.Equal(t, "web:3", task.TaskDefinition)
	assert.Equal(t, "ci-1", task.ContainerInstance)
}

func TestToECSTaskFargate(t *testing.T) {
	// Fargate tasks have no container instance
	task := toECSTask(ecstypes.Task{
		TaskArn:    aws.String("arn:aws:ecs:us-east-2:123456789012:task/prod/abc123"),
		LastStatus: aws.String("RUNNING"),
	})

	assert.Empty(t, task.ContainerInstance)
}

func TestToTaskDefinition(t *testing.T) {
	def := toTaskDefinition(&ecstypes.TaskDefinition{
		Family:                  aws.String("web"),
		Revision:                7,
		Status:                  ecstypes.TaskDefinitionStatusActive,
		NetworkMode:             ecstypes.NetworkModeAwsvpc,
		Cpu:                     aws.String("256"),
		Memory:                  aws.String("512"),
		RequiresCompatibilities: []ecstypes.Compatibility{ecstypes.CompatibilityEc2, ecstypes.CompatibilityFargate},
		ContainerDefinitions: []ecstypes.ContainerDefinition{
			{
				Name:      aws.String("app"),
				Image:     aws.String("nginx:latest"),
				Cpu:       128,
				Memory:    aws.Int32(256),
				Essential: aws.Bool(true),
			},
			{
				Name:  aws.String("sidecar"),
				Image: aws.String("envoy:v1"),
			},
		},
	})

	assert.Equal(t, "web", def.Family)
	assert.Equal(t, 7, def.Revision)
	assert.Equal(t, "ACTIVE", def.Status)
	assert.Equal(t, []string{"EC2", "FARGATE"}, def.Compatibilities)

	assert.Len(t, def.Containers, 2)
	assert.Equal(t, 128, def.Containers[0].CPU)
	assert.Equal(t, 256, def.Containers[0].Memory)
	assert.True(t, def.Containers[0].Essential)
	assert.Zero(t, def.Containers[1].Memory)
	assert.False(t, def.Containers[1].Essential)
}

func TestToTaskDefinitionNil(t *testing.T) {
	assert.Zero(t, toTaskDefinition(nil))
}
