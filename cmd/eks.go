package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vietdv277/stratus/internal/aws"
	"github.com/vietdv277/stratus/internal/format"
	"github.com/vietdv277/stratus/internal/session"
	"github.com/vietdv277/stratus/pkg/types"
)

func newEKSCmd(store *session.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eks",
		Short: "EKS clusters, node groups, and addons",
	}
	cmd.AddCommand(
		newEKSListClustersCmd(store),
		newEKSDescribeClusterCmd(store),
		newEKSListNodegroupsCmd(store),
		newEKSDescribeNodegroupCmd(store),
		newEKSUpdateNodegroupConfigCmd(store),
		newEKSUpdateNodegroupVersionCmd(store),
		newEKSListFargateProfilesCmd(store),
		newEKSDescribeFargateProfileCmd(store),
		newEKSListAddonsCmd(store),
		newEKSDescribeAddonCmd(store),
		newEKSUpdateClusterVersionCmd(store),
		newEKSDescribeUpdateCmd(store),
	)
	return cmd
}

func clusterUpdatePairs(update *types.ClusterUpdate) [][2]string {
	pairs := [][2]string{
		{"Update ID", update.ID},
		{"Status", update.Status},
		{"Type", update.Type},
		{"Created", update.Created.Format(format.TimeLayout)},
	}
	for _, e := range update.Errors {
		pairs = append(pairs, [2]string{"Error", fmt.Sprintf("%s: %s", e.Code, e.Message)})
	}
	return pairs
}

func newEKSListClustersCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "list-clusters",
		Short: "List EKS clusters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			clusters, err := client.ListEKSClusters()
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(clusters) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No clusters found")
				return nil
			}
			for _, name := range clusters {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newEKSDescribeClusterCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "describe-cluster CLUSTER_NAME",
		Short: "Show an EKS cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			cluster, err := client.DescribeEKSCluster(store.Resolve(args[0]))
			if err != nil {
				return reportErr(cmd, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, format.KeyValue([][2]string{
				{"Name", cluster.Name},
				{"ARN", cluster.ARN},
				{"Status", cluster.Status},
				{"Version", na(cluster.Version)},
				{"Platform Version", na(cluster.PlatformVersion)},
				{"Endpoint", na(cluster.Endpoint)},
				{"Role ARN", na(cluster.RoleARN)},
				{"Created", cluster.Created.Format(format.TimeLayout)},
			}))
			if cluster.VPC != nil {
				fmt.Fprint(out, "\n\nVPC Configuration:\n")
				fmt.Fprint(out, format.KeyValue([][2]string{
					{"VPC ID", na(cluster.VPC.VPCID)},
					{"Subnets", strings.Join(cluster.VPC.SubnetIDs, ", ")},
					{"Security Groups", strings.Join(cluster.VPC.SecurityGroupIDs, ", ")},
					{"Public Access", yesNo(cluster.VPC.PublicAccess)},
					{"Private Access", yesNo(cluster.VPC.PrivateAccess)},
				}))
			}
			return nil
		},
	}
}

func newEKSListNodegroupsCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "list-nodegroups CLUSTER_NAME",
		Short: "List node groups in a cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			cluster := store.Resolve(args[0])
			nodegroups, err := client.ListNodegroups(cluster)
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(nodegroups) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No node groups found in cluster: %s\n", cluster)
				return nil
			}
			for _, name := range nodegroups {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newEKSDescribeNodegroupCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "describe-nodegroup CLUSTER_NAME NODEGROUP_NAME",
		Short: "Show a node group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			nodegroup, err := client.DescribeNodegroup(store.Resolve(args[0]), store.Resolve(args[1]))
			if err != nil {
				return reportErr(cmd, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, format.KeyValue([][2]string{
				{"Name", nodegroup.Name},
				{"ARN", nodegroup.ARN},
				{"Status", nodegroup.Status},
				{"Capacity Type", na(nodegroup.CapacityType)},
				{"Node Role", na(nodegroup.NodeRole)},
				{"Version", na(nodegroup.Version)},
				{"Release Version", na(nodegroup.ReleaseVersion)},
				{"Created", nodegroup.Created.Format(format.TimeLayout)},
			}))
			if nodegroup.Scaling != nil {
				fmt.Fprint(out, "\n\nScaling Configuration:\n")
				fmt.Fprint(out, format.KeyValue([][2]string{
					{"Min Size", strconv.Itoa(nodegroup.Scaling.MinSize)},
					{"Max Size", strconv.Itoa(nodegroup.Scaling.MaxSize)},
					{"Desired Size", strconv.Itoa(nodegroup.Scaling.DesiredSize)},
				}))
			}
			if len(nodegroup.InstanceTypes) > 0 {
				fmt.Fprintf(out, "\n\nInstance Types: %s\n", strings.Join(nodegroup.InstanceTypes, ", "))
			}
			if len(nodegroup.Subnets) > 0 {
				fmt.Fprintf(out, "\n\nSubnets: %s\n", strings.Join(nodegroup.Subnets, ", "))
			}
			return nil
		},
	}
}

func newEKSUpdateNodegroupConfigCmd(store *session.Store) *cobra.Command {
	var minSize, maxSize, desiredSize int
	cmd := &cobra.Command{
		Use:   "update-nodegroup-config CLUSTER_NAME NODEGROUP_NAME",
		Short: "Update a node group's scaling configuration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := &aws.UpdateNodegroupConfigInput{
				Cluster:   store.Resolve(args[0]),
				Nodegroup: store.Resolve(args[1]),
			}
			if cmd.Flags().Changed("min-size") {
				input.MinSize = &minSize
			}
			if cmd.Flags().Changed("max-size") {
				input.MaxSize = &maxSize
			}
			if cmd.Flags().Changed("desired-size") {
				input.DesiredSize = &desiredSize
			}
			if input.MinSize == nil && input.MaxSize == nil && input.DesiredSize == nil {
				fmt.Fprintln(cmd.OutOrStdout(),
					"Error: At least one scaling parameter (min-size, max-size, or desired-size) must be specified")
				return nil
			}
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			update, err := client.UpdateNodegroupConfig(input)
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Node group configuration update initiated:")
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue(clusterUpdatePairs(update)))
			return nil
		},
	}
	cmd.Flags().IntVar(&minSize, "min-size", 0, "Minimum node count")
	cmd.Flags().IntVar(&maxSize, "max-size", 0, "Maximum node count")
	cmd.Flags().IntVar(&desiredSize, "desired-size", 0, "Desired node count")
	return cmd
}

func newEKSUpdateNodegroupVersionCmd(store *session.Store) *cobra.Command {
	var version string
	cmd := &cobra.Command{
		Use:   "update-nodegroup-version CLUSTER_NAME NODEGROUP_NAME",
		Short: "Upgrade a node group's Kubernetes version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			update, err := client.UpdateNodegroupVersion(
				store.Resolve(args[0]), store.Resolve(args[1]), store.Resolve(version))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Node group version update initiated:")
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue(clusterUpdatePairs(update)))
			return nil
		},
	}
	cmd.Flags().StringVar(&version, "kubernetes-version", "", "Target Kubernetes version")
	return cmd
}

func newEKSListFargateProfilesCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "list-fargate-profiles CLUSTER_NAME",
		Short: "List Fargate profiles in a cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			cluster := store.Resolve(args[0])
			profiles, err := client.ListFargateProfiles(cluster)
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(profiles) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No Fargate profiles found in cluster: %s\n", cluster)
				return nil
			}
			for _, name := range profiles {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newEKSDescribeFargateProfileCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "describe-fargate-profile CLUSTER_NAME PROFILE_NAME",
		Short: "Show a Fargate profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			profile, err := client.DescribeFargateProfile(store.Resolve(args[0]), store.Resolve(args[1]))
			if err != nil {
				return reportErr(cmd, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, format.KeyValue([][2]string{
				{"Name", profile.Name},
				{"ARN", profile.ARN},
				{"Status", profile.Status},
				{"Pod Execution Role", na(profile.PodExecutionRoleARN)},
				{"Created", profile.Created.Format(format.TimeLayout)},
			}))
			if len(profile.Subnets) > 0 {
				fmt.Fprintf(out, "\n\nSubnets: %s\n", strings.Join(profile.Subnets, ", "))
			}
			if len(profile.Selectors) > 0 {
				fmt.Fprint(out, "\n\nSelectors:\n")
				rows := [][]string{{"Namespace", "Labels"}}
				for _, sel := range profile.Selectors {
					rows = append(rows, []string{sel.Namespace, dash(labelString(sel.Labels))})
				}
				fmt.Fprint(out, format.Table(rows))
			}
			return nil
		},
	}
}

// labelString renders a label map as sorted k=v pairs
func labelString(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+labels[k])
	}
	return strings.Join(pairs, ", ")
}

func newEKSListAddonsCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "list-addons CLUSTER_NAME",
		Short: "List addons installed on a cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			cluster := store.Resolve(args[0])
			addons, err := client.ListAddons(cluster)
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(addons) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No addons found in cluster: %s\n", cluster)
				return nil
			}
			for _, name := range addons {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newEKSDescribeAddonCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "describe-addon CLUSTER_NAME ADDON_NAME",
		Short: "Show an addon",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			addon, err := client.DescribeAddon(store.Resolve(args[0]), store.Resolve(args[1]))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue([][2]string{
				{"Name", addon.Name},
				{"ARN", addon.ARN},
				{"Status", addon.Status},
				{"Version", na(addon.Version)},
				{"Service Account Role", na(addon.ServiceAccountRoleARN)},
				{"Created", addon.Created.Format(format.TimeLayout)},
				{"Modified", addon.Modified.Format(format.TimeLayout)},
			}))
			return nil
		},
	}
}

func newEKSUpdateClusterVersionCmd(store *session.Store) *cobra.Command {
	var version string
	cmd := &cobra.Command{
		Use:   "update-cluster-version CLUSTER_NAME",
		Short: "Upgrade a cluster's Kubernetes version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			update, err := client.UpdateClusterVersion(store.Resolve(args[0]), store.Resolve(version))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cluster version update initiated:")
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue(clusterUpdatePairs(update)))
			return nil
		},
	}
	cmd.Flags().StringVar(&version, "kubernetes-version", "", "Target Kubernetes version")
	cmd.MarkFlagRequired("kubernetes-version")
	return cmd
}

func newEKSDescribeUpdateCmd(store *session.Store) *cobra.Command {
	var nodegroup string
	cmd := &cobra.Command{
		Use:   "describe-update CLUSTER_NAME UPDATE_ID",
		Short: "Show the status of a cluster or node group update",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			update, err := client.DescribeUpdate(
				store.Resolve(args[0]), store.Resolve(args[1]), store.Resolve(nodegroup))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue(clusterUpdatePairs(update)))
			return nil
		},
	}
	cmd.Flags().StringVar(&nodegroup, "nodegroup-name", "", "Node group the update applies to")
	return cmd
}
