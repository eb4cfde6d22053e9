package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vietdv277/stratus/internal/aws"
	"github.com/vietdv277/stratus/internal/format"
	"github.com/vietdv277/stratus/internal/session"
	"github.com/vietdv277/stratus/pkg/types"
)

func newECSCmd(store *session.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ecs",
		Short: "ECS clusters, services, and tasks",
	}
	cmd.AddCommand(
		newECSListClustersCmd(store),
		newECSDescribeClustersCmd(store),
		newECSListServicesCmd(store),
		newECSDescribeServicesCmd(store),
		newECSListTasksCmd(store),
		newECSDescribeTasksCmd(store),
		newECSListTaskDefinitionsCmd(store),
		newECSDescribeTaskDefinitionCmd(store),
		newECSRunTaskCmd(store),
		newECSStopTaskCmd(store),
		newECSUpdateServiceCmd(store),
	)
	return cmd
}

func ecsTaskTable(tasks []types.ECSTask) string {
	rows := [][]string{{"Task ID", "Status", "Desired Status", "Task Definition", "Container Instance"}}
	for _, t := range tasks {
		rows = append(rows, []string{
			t.ID, t.Status, t.DesiredStatus, t.TaskDefinition, dash(t.ContainerInstance),
		})
	}
	return format.Table(rows)
}

func newECSListClustersCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "list-clusters",
		Short: "List ECS clusters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			clusters, err := client.ListECSClusters()
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(clusters) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No clusters found")
				return nil
			}
			rows := [][]string{{"Cluster ARN"}}
			for _, arn := range clusters {
				rows = append(rows, []string{arn})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
}

func newECSDescribeClustersCmd(store *session.Store) *cobra.Command {
	var clusters string
	cmd := &cobra.Command{
		Use:   "describe-clusters",
		Short: "Show ECS clusters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			described, err := client.DescribeECSClusters(splitList(store.Resolve(clusters)))
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(described) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No clusters found")
				return nil
			}
			rows := [][]string{{"Name", "Status", "Running", "Pending", "Services", "Instances"}}
			for _, c := range described {
				rows = append(rows, []string{
					c.Name, c.Status, strconv.Itoa(c.RunningTasks), strconv.Itoa(c.PendingTasks),
					strconv.Itoa(c.ActiveServices), strconv.Itoa(c.RegisteredInstances),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&clusters, "clusters", "", "Comma-separated cluster names or ARNs")
	return cmd
}

func newECSListServicesCmd(store *session.Store) *cobra.Command {
	var cluster string
	cmd := &cobra.Command{
		Use:   "list-services",
		Short: "List services in a cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			services, err := client.ListECSServices(store.Resolve(cluster))
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(services) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No services found")
				return nil
			}
			rows := [][]string{{"Service ARN"}}
			for _, arn := range services {
				rows = append(rows, []string{arn})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&cluster, "cluster", "", "Cluster name or ARN")
	return cmd
}

func newECSDescribeServicesCmd(store *session.Store) *cobra.Command {
	var cluster, services string
	cmd := &cobra.Command{
		Use:   "describe-services",
		Short: "Show services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			described, err := client.DescribeECSServices(
				store.Resolve(cluster), splitList(store.Resolve(services)))
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(described) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No services found")
				return nil
			}
			rows := [][]string{{"Name", "Status", "Desired", "Running", "Pending", "Task Definition"}}
			for _, s := range described {
				rows = append(rows, []string{
					s.Name, s.Status, strconv.Itoa(s.DesiredCount), strconv.Itoa(s.RunningCount),
					strconv.Itoa(s.PendingCount), s.TaskDefinition,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&cluster, "cluster", "", "Cluster name or ARN")
	cmd.Flags().StringVar(&services, "services", "", "Comma-separated service names")
	cmd.MarkFlagRequired("services")
	return cmd
}

func newECSListTasksCmd(store *session.Store) *cobra.Command {
	var cluster, serviceName string
	cmd := &cobra.Command{
		Use:   "list-tasks",
		Short: "List tasks in a cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			tasks, err := client.ListECSTasks(store.Resolve(cluster), store.Resolve(serviceName))
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found")
				return nil
			}
			rows := [][]string{{"Task ARN"}}
			for _, arn := range tasks {
				rows = append(rows, []string{arn})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&cluster, "cluster", "", "Cluster name or ARN")
	cmd.Flags().StringVar(&serviceName, "service-name", "", "Restrict to one service")
	return cmd
}

func newECSDescribeTasksCmd(store *session.Store) *cobra.Command {
	var cluster, tasks string
	cmd := &cobra.Command{
		Use:   "describe-tasks",
		Short: "Show tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			described, err := client.DescribeECSTasks(
				store.Resolve(cluster), splitList(store.Resolve(tasks)))
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(described) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), ecsTaskTable(described))
			return nil
		},
	}
	cmd.Flags().StringVar(&cluster, "cluster", "", "Cluster name or ARN")
	cmd.Flags().StringVar(&tasks, "tasks", "", "Comma-separated task IDs or ARNs")
	cmd.MarkFlagRequired("tasks")
	return cmd
}

func newECSListTaskDefinitionsCmd(store *session.Store) *cobra.Command {
	var familyPrefix string
	cmd := &cobra.Command{
		Use:   "list-task-definitions",
		Short: "List registered task definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			definitions, err := client.ListTaskDefinitions(store.Resolve(familyPrefix))
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(definitions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No task definitions found")
				return nil
			}
			rows := [][]string{{"Task Definition ARN"}}
			for _, arn := range definitions {
				rows = append(rows, []string{arn})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&familyPrefix, "family-prefix", "", "Restrict to one family")
	return cmd
}

func newECSDescribeTaskDefinitionCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "describe-task-definition TASK_DEFINITION",
		Short: "Show a task definition and its containers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			def, err := client.DescribeTaskDefinition(store.Resolve(args[0]))
			if err != nil {
				return reportErr(cmd, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, format.KeyValue([][2]string{
				{"Family", def.Family},
				{"Revision", strconv.Itoa(def.Revision)},
				{"Status", def.Status},
				{"Network Mode", na(def.NetworkMode)},
				{"CPU", na(def.CPU)},
				{"Memory", na(def.Memory)},
				{"Compatibilities", strings.Join(def.Compatibilities, ", ")},
				{"Task Role", na(def.TaskRoleARN)},
				{"Execution Role", na(def.ExecutionRoleARN)},
			}))
			if len(def.Containers) > 0 {
				fmt.Fprint(out, "\n\nContainers:\n")
				rows := [][]string{{"Name", "Image", "CPU", "Memory", "Essential"}}
				for _, c := range def.Containers {
					memory := "-"
					if c.Memory > 0 {
						memory = strconv.Itoa(c.Memory)
					}
					rows = append(rows, []string{
						c.Name, c.Image, strconv.Itoa(c.CPU), memory, yesNo(c.Essential),
					})
				}
				fmt.Fprint(out, format.Table(rows))
			}
			return nil
		},
	}
}

func newECSRunTaskCmd(store *session.Store) *cobra.Command {
	var cluster, taskDefinition string
	var count int
	cmd := &cobra.Command{
		Use:   "run-task",
		Short: "Run a task from a task definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			tasks, err := client.RunTask(
				store.Resolve(cluster), store.Resolve(taskDefinition), count)
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks were started")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started %d task(s):\n", len(tasks))
			fmt.Fprint(cmd.OutOrStdout(), ecsTaskTable(tasks))
			return nil
		},
	}
	cmd.Flags().StringVar(&cluster, "cluster", "", "Cluster name or ARN")
	cmd.Flags().StringVar(&taskDefinition, "task-definition", "", "Task definition family:revision or ARN")
	cmd.Flags().IntVar(&count, "count", 1, "Number of tasks")
	cmd.MarkFlagRequired("task-definition")
	return cmd
}

func newECSStopTaskCmd(store *session.Store) *cobra.Command {
	var cluster, reason string
	cmd := &cobra.Command{
		Use:   "stop-task TASK_ID",
		Short: "Stop a running task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			task, err := client.StopTask(
				store.Resolve(cluster), store.Resolve(args[0]), store.Resolve(reason))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task stopped: %s (Status: %s)\n", task.ID, task.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&cluster, "cluster", "", "Cluster name or ARN")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded on the task")
	return cmd
}

func newECSUpdateServiceCmd(store *session.Store) *cobra.Command {
	var cluster, taskDefinition string
	var desiredCount int
	cmd := &cobra.Command{
		Use:   "update-service SERVICE_NAME",
		Short: "Update a service's desired count or task definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := &aws.UpdateECSServiceInput{
				Cluster:        store.Resolve(cluster),
				Service:        store.Resolve(args[0]),
				TaskDefinition: store.Resolve(taskDefinition),
			}
			if cmd.Flags().Changed("desired-count") {
				input.DesiredCount = &desiredCount
			}
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			service, err := client.UpdateECSService(input)
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Service updated: %s (Desired: %d, Running: %d)\n",
				service.Name, service.DesiredCount, service.RunningCount)
			return nil
		},
	}
	cmd.Flags().StringVar(&cluster, "cluster", "", "Cluster name or ARN")
	cmd.Flags().IntVar(&desiredCount, "desired-count", 0, "New desired task count")
	cmd.Flags().StringVar(&taskDefinition, "task-definition", "", "New task definition")
	return cmd
}
