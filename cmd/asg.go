package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vietdv277/stratus/internal/format"
	"github.com/vietdv277/stratus/internal/session"
)

func newASGCmd(store *session.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asg",
		Short: "Auto Scaling Groups",
	}
	cmd.AddCommand(
		newASGDescribeCmd(store),
		newASGSetDesiredCapacityCmd(store),
	)
	return cmd
}

func newASGDescribeCmd(store *session.Store) *cobra.Command {
	var names string
	cmd := &cobra.Command{
		Use:   "describe-auto-scaling-groups",
		Short: "List Auto Scaling Groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			groups, err := client.ListAutoScalingGroups(splitList(store.Resolve(names)))
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No Auto Scaling Groups found")
				return nil
			}
			rows := [][]string{{"Name", "Desired", "Min", "Max", "Instances", "Healthy", "AZs", "Created"}}
			for _, g := range groups {
				rows = append(rows, []string{
					g.Name, strconv.Itoa(g.DesiredCapacity), strconv.Itoa(g.MinSize),
					strconv.Itoa(g.MaxSize), strconv.Itoa(g.InstanceCount),
					strconv.Itoa(g.HealthyCount), strings.Join(g.AZs, ", "),
					g.CreatedTime.Format(format.ShortTimeLayout),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&names, "names", "", "Comma-separated group names")
	return cmd
}

func newASGSetDesiredCapacityCmd(store *session.Store) *cobra.Command {
	var desired, minSize, maxSize int
	cmd := &cobra.Command{
		Use:   "set-desired-capacity GROUP_NAME",
		Short: "Set a group's desired capacity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			name := store.Resolve(args[0])
			var minPtr, maxPtr *int
			if cmd.Flags().Changed("min-size") {
				minPtr = &minSize
			}
			if cmd.Flags().Changed("max-size") {
				maxPtr = &maxSize
			}
			if err := client.SetDesiredCapacity(name, desired, minPtr, maxPtr); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Desired capacity set: %s -> %d\n", name, desired)
			return nil
		},
	}
	cmd.Flags().IntVar(&desired, "desired-capacity", 0, "Desired instance count")
	cmd.Flags().IntVar(&minSize, "min-size", 0, "New minimum size")
	cmd.Flags().IntVar(&maxSize, "max-size", 0, "New maximum size")
	cmd.MarkFlagRequired("desired-capacity")
	return cmd
}
