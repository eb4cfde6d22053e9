package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vietdv277/stratus/internal/format"
	"github.com/vietdv277/stratus/internal/session"
)

func newELBCmd(store *session.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "elb",
		Short: "Load balancers and target groups",
	}
	cmd.AddCommand(
		newELBDescribeLoadBalancersCmd(store),
		newELBDescribeTargetGroupsCmd(store),
		newELBDescribeTargetHealthCmd(store),
	)
	return cmd
}

func newELBDescribeLoadBalancersCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "describe-load-balancers",
		Short: "List load balancers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			balancers, err := client.ListLoadBalancers()
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(balancers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No load balancers found")
				return nil
			}
			rows := [][]string{{"Name", "DNS Name", "Type", "Scheme", "State", "VPC ID"}}
			for _, lb := range balancers {
				rows = append(rows, []string{
					lb.Name, lb.DNSName, lb.Type, lb.Scheme, lb.State, dash(lb.VPCID),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
}

func newELBDescribeTargetGroupsCmd(store *session.Store) *cobra.Command {
	var lbARN string
	cmd := &cobra.Command{
		Use:   "describe-target-groups",
		Short: "List target groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			groups, err := client.ListTargetGroups(store.Resolve(lbARN))
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No target groups found")
				return nil
			}
			rows := [][]string{{"Name", "Protocol", "Port", "Target Type", "VPC ID"}}
			for _, tg := range groups {
				rows = append(rows, []string{
					tg.Name, tg.Protocol, strconv.Itoa(tg.Port), tg.Type, dash(tg.VPCID),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&lbARN, "load-balancer-arn", "", "Restrict to one load balancer")
	return cmd
}

func newELBDescribeTargetHealthCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "describe-target-health TARGET_GROUP_ARN",
		Short: "Show the health of a target group's targets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			targets, err := client.ListTargetHealth(store.Resolve(args[0]))
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(targets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No targets found")
				return nil
			}
			rows := [][]string{{"Target ID", "Port", "AZ", "Health", "Reason"}}
			for _, t := range targets {
				rows = append(rows, []string{
					t.ID, strconv.Itoa(t.Port), dash(t.AZ), t.Health, dash(t.Reason),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
}
