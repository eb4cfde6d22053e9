package types

// ECSCluster represents an ECS cluster
type ECSCluster struct {
	Name                string
	Status              string
	RunningTasks        int
	PendingTasks        int
	ActiveServices      int
	RegisteredInstances int
}

// ECSService represents an ECS service
type ECSService struct {
	Name           string
	Status         string
	DesiredCount   int
	RunningCount   int
	PendingCount   int
	TaskDefinition string // family:revision, ARN prefix stripped
}

// ECSTask represents an ECS task
type ECSTask struct {
	ID                string // ARN tail
	Status            string
	DesiredStatus     string
	TaskDefinition    string
	ContainerInstance string // empty on Fargate
}

// TaskDefinition represents a registered ECS task definition
type TaskDefinition struct {
	Family           string
	Revision         int
	Status           string
	NetworkMode      string
	CPU              string
	Memory           string
	Compatibilities  []string
	TaskRoleARN      string
	ExecutionRoleARN string
	Containers       []ContainerDefinition
}

// ContainerDefinition represents a container within a task definition
type ContainerDefinition struct {
	Name      string
	Image     string
	CPU       int
	Memory    int // MiB, 0 when inherited from the task level
	Essential bool
}
