package aws

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"

	"github.com/vietdv277/stratus/pkg/types"
)

// ListECSClusters returns the ARNs of the region's ECS clusters
func (c *Client) ListECSClusters() ([]string, error) {
	output, err := c.ECS.ListClusters(c.ctx, &ecs.ListClustersInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list clusters: %w", err)
	}

	return output.ClusterArns, nil
}

// DescribeECSClusters returns details for the given clusters, or for the
// default cluster when none are given
func (c *Client) DescribeECSClusters(clusters []string) ([]types.ECSCluster, error) {
	input := &ecs.DescribeClustersInput{}
	if len(clusters) > 0 {
		input.Clusters = clusters
	}

	output, err := c.ECS.DescribeClusters(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to describe clusters: %w", err)
	}

	var out []types.ECSCluster
	for _, cl := range output.Clusters {
		out = append(out, types.ECSCluster{
			Name:                deref(cl.ClusterName),
			Status:              deref(cl.Status),
			RunningTasks:        int(cl.RunningTasksCount),
			PendingTasks:        int(cl.PendingTasksCount),
			ActiveServices:      int(cl.ActiveServicesCount),
			RegisteredInstances: int(cl.RegisteredContainerInstancesCount),
		})
	}

	return out, nil
}

// ListECSServices returns the service ARNs of a cluster
func (c *Client) ListECSServices(cluster string) ([]string, error) {
	output, err := c.ECS.ListServices(c.ctx, &ecs.ListServicesInput{
		Cluster: aws.String(cluster),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	return output.ServiceArns, nil
}

// DescribeECSServices returns details for the given services in a cluster
func (c *Client) DescribeECSServices(cluster string, services []string) ([]types.ECSService, error) {
	output, err := c.ECS.DescribeServices(c.ctx, &ecs.DescribeServicesInput{
		Cluster:  aws.String(cluster),
		Services: services,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe services: %w", err)
	}

	var out []types.ECSService
	for _, svc := range output.Services {
		out = append(out, toECSService(svc))
	}

	return out, nil
}

// ListECSTasks returns the task ARNs of a cluster, optionally restricted to
// one service
func (c *Client) ListECSTasks(cluster, serviceName string) ([]string, error) {
	input := &ecs.ListTasksInput{
		Cluster: aws.String(cluster),
	}
	if serviceName != "" {
		input.ServiceName = aws.String(serviceName)
	}

	output, err := c.ECS.ListTasks(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return output.TaskArns, nil
}

// DescribeECSTasks returns details for the given tasks in a cluster
func (c *Client) DescribeECSTasks(cluster string, tasks []string) ([]types.ECSTask, error) {
	output, err := c.ECS.DescribeTasks(c.ctx, &ecs.DescribeTasksInput{
		Cluster: aws.String(cluster),
		Tasks:   tasks,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe tasks: %w", err)
	}

	var out []types.ECSTask
	for _, task := range output.Tasks {
		out = append(out, toECSTask(task))
	}

	return out, nil
}

// ListTaskDefinitions returns registered task definition ARNs, optionally
// filtered by family prefix
func (c *Client) ListTaskDefinitions(familyPrefix string) ([]string, error) {
	input := &ecs.ListTaskDefinitionsInput{}
	if familyPrefix != "" {
		input.FamilyPrefix = aws.String(familyPrefix)
	}

	output, err := c.ECS.ListTaskDefinitions(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to list task definitions: %w", err)
	}

	return output.TaskDefinitionArns, nil
}

// DescribeTaskDefinition returns a task definition by family, family:revision
// or ARN
func (c *Client) DescribeTaskDefinition(taskDefinition string) (*types.TaskDefinition, error) {
	output, err := c.ECS.DescribeTaskDefinition(c.ctx, &ecs.DescribeTaskDefinitionInput{
		TaskDefinition: aws.String(taskDefinition),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe task definition: %w", err)
	}

	def := toTaskDefinition(output.TaskDefinition)
	return &def, nil
}

// RunTask starts tasks from a task definition and returns them
func (c *Client) RunTask(cluster, taskDefinition string, count int) ([]types.ECSTask, error) {
	output, err := c.ECS.RunTask(c.ctx, &ecs.RunTaskInput{
		Cluster:        aws.String(cluster),
		TaskDefinition: aws.String(taskDefinition),
		Count:          aws.Int32(int32(count)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run task: %w", err)
	}

	var out []types.ECSTask
	for _, task := range output.Tasks {
		out = append(out, toECSTask(task))
	}

	return out, nil
}

// StopTask stops a running task
func (c *Client) StopTask(cluster, task, reason string) (*types.ECSTask, error) {
	input := &ecs.StopTaskInput{
		Cluster: aws.String(cluster),
		Task:    aws.String(task),
	}
	if reason != "" {
		input.Reason = aws.String(reason)
	}

	output, err := c.ECS.StopTask(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to stop task: %w", err)
	}

	stopped := toECSTask(derefTask(output.Task))
	return &stopped, nil
}

// UpdateECSServiceInput contains the changes to apply to a service. A nil
// DesiredCount and empty TaskDefinition leave the current values unchanged.
type UpdateECSServiceInput struct {
	Cluster        string
	Service        string
	DesiredCount   *int
	TaskDefinition string
}

// UpdateECSService updates a service's desired count and/or task definition
func (c *Client) UpdateECSService(input *UpdateECSServiceInput) (*types.ECSService, error) {
	updateInput := &ecs.UpdateServiceInput{
		Cluster: aws.String(input.Cluster),
		Service: aws.String(input.Service),
	}
	if input.DesiredCount != nil {
		updateInput.DesiredCount = aws.Int32(int32(*input.DesiredCount))
	}
	if input.TaskDefinition != "" {
		updateInput.TaskDefinition = aws.String(input.TaskDefinition)
	}

	output, err := c.ECS.UpdateService(c.ctx, updateInput)
	if err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	var svc types.ECSService
	if output.Service != nil {
		svc = toECSService(*output.Service)
	}

	return &svc, nil
}

// toECSService converts an ECS Service to our ECSService type
func toECSService(svc ecstypes.Service) types.ECSService {
	return types.ECSService{
		Name:           deref(svc.ServiceName),
		Status:         deref(svc.Status),
		DesiredCount:   int(svc.DesiredCount),
		RunningCount:   int(svc.RunningCount),
		PendingCount:   int(svc.PendingCount),
		TaskDefinition: arnTail(deref(svc.TaskDefinition)),
	}
}

// toECSTask converts an ECS Task to our ECSTask type
func toECSTask(task ecstypes.Task) types.ECSTask {
	t := types.ECSTask{
		ID:             arnTail(deref(task.TaskArn)),
		Status:         deref(task.LastStatus),
		DesiredStatus:  deref(task.DesiredStatus),
		TaskDefinition: arnTail(deref(task.TaskDefinitionArn)),
	}
	if task.ContainerInstanceArn != nil {
		t.ContainerInstance = arnTail(*task.ContainerInstanceArn)
	}
	return t
}

// toTaskDefinition converts an ECS TaskDefinition to our TaskDefinition type
func toTaskDefinition(td *ecstypes.TaskDefinition) types.TaskDefinition {
	if td == nil {
		return types.TaskDefinition{}
	}

	def := types.TaskDefinition{
		Family:           deref(td.Family),
		Revision:         int(td.Revision),
		Status:           string(td.Status),
		NetworkMode:      string(td.NetworkMode),
		CPU:              deref(td.Cpu),
		Memory:           deref(td.Memory),
		TaskRoleARN:      deref(td.TaskRoleArn),
		ExecutionRoleARN: deref(td.ExecutionRoleArn),
	}

	for _, compat := range td.RequiresCompatibilities {
		def.Compatibilities = append(def.Compatibilities, string(compat))
	}

	for _, container := range td.ContainerDefinitions {
		def.Containers = append(def.Containers, types.ContainerDefinition{
			Name:      deref(container.Name),
			Image:     deref(container.Image),
			CPU:       int(container.Cpu),
			Memory:    int(deref32(container.Memory)),
			Essential: derefBool(container.Essential),
		})
	}

	return def
}

func derefTask(task *ecstypes.Task) ecstypes.Task {
	if task == nil {
		return ecstypes.Task{}
	}
	return *task
}

// arnTail returns the resource portion of an ARN, the part after the last
// slash
func arnTail(arn string) string {
	if idx := strings.LastIndex(arn, "/"); idx >= 0 {
		return arn[idx+1:]
	}
	return arn
}
