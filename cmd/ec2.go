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

func newEC2Cmd(store *session.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ec2",
		Short: "EC2 instances, volumes, images, and networking",
	}
	cmd.AddCommand(
		newEC2DescribeInstancesCmd(store),
		newEC2StartInstancesCmd(store),
		newEC2StopInstancesCmd(store),
		newEC2TerminateInstancesCmd(store),
		newEC2RebootInstancesCmd(store),
		newEC2RunInstancesCmd(store),
		newEC2DescribeVPCsCmd(store),
		newEC2DescribeSubnetsCmd(store),
		newEC2DescribeSecurityGroupsCmd(store),
		newEC2CreateSecurityGroupCmd(store),
		newEC2DeleteSecurityGroupCmd(store),
		newEC2AuthorizeIngressCmd(store),
		newEC2DescribeVolumesCmd(store),
		newEC2CreateVolumeCmd(store),
		newEC2DeleteVolumeCmd(store),
		newEC2AttachVolumeCmd(store),
		newEC2DetachVolumeCmd(store),
		newEC2DescribeSnapshotsCmd(store),
		newEC2CreateSnapshotCmd(store),
		newEC2DeleteSnapshotCmd(store),
		newEC2DescribeImagesCmd(store),
		newEC2CreateImageCmd(store),
		newEC2DescribeKeyPairsCmd(store),
		newEC2CreateKeyPairCmd(store),
		newEC2DeleteKeyPairCmd(store),
		newEC2DescribeAddressesCmd(store),
		newEC2AllocateAddressCmd(store),
		newEC2ReleaseAddressCmd(store),
		newEC2AssociateAddressCmd(store),
		newEC2CreateTagsCmd(store),
	)
	return cmd
}

func instanceTable(instances []types.Instance) string {
	rows := [][]string{{"Instance ID", "Name", "Type", "State", "Public IP", "Private IP", "Launch Time"}}
	for _, inst := range instances {
		launched := "-"
		if !inst.LaunchTime.IsZero() {
			launched = inst.LaunchTime.Format(format.TimeLayout)
		}
		rows = append(rows, []string{
			inst.ID, dash(inst.Name), inst.Type, inst.State,
			dash(inst.PublicIP), dash(inst.PrivateIP), launched,
		})
	}
	return format.Table(rows)
}

func stateChangeTable(changes []types.InstanceStateChange) string {
	rows := [][]string{{"Instance ID", "Previous State", "Current State"}}
	for _, ch := range changes {
		rows = append(rows, []string{ch.ID, ch.PreviousState, ch.CurrentState})
	}
	return format.Table(rows)
}

// resolveArgs resolves variable references in every positional argument
func resolveArgs(store *session.Store, args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = store.Resolve(a)
	}
	return out
}

func newEC2DescribeInstancesCmd(store *session.Store) *cobra.Command {
	var instanceIDs string
	cmd := &cobra.Command{
		Use:   "describe-instances",
		Short: "List EC2 instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			instances, err := client.ListInstances(splitList(store.Resolve(instanceIDs)))
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(instances) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No instances found")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), instanceTable(instances))
			return nil
		},
	}
	cmd.Flags().StringVar(&instanceIDs, "instance-ids", "", "Comma-separated instance IDs")
	return cmd
}

func newEC2StartInstancesCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "start-instances INSTANCE_ID...",
		Short: "Start stopped instances",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			changes, err := client.StartInstances(resolveArgs(store, args))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), stateChangeTable(changes))
			return nil
		},
	}
}

func newEC2StopInstancesCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "stop-instances INSTANCE_ID...",
		Short: "Stop running instances",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			changes, err := client.StopInstances(resolveArgs(store, args))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), stateChangeTable(changes))
			return nil
		},
	}
}

func newEC2TerminateInstancesCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "terminate-instances INSTANCE_ID...",
		Short: "Terminate instances",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			changes, err := client.TerminateInstances(resolveArgs(store, args))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), stateChangeTable(changes))
			return nil
		},
	}
}

func newEC2RebootInstancesCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "reboot-instances INSTANCE_ID...",
		Short: "Reboot instances",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			ids := resolveArgs(store, args)
			if err := client.RebootInstances(ids); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rebooting instances: %s\n", strings.Join(ids, ", "))
			return nil
		},
	}
}

func newEC2RunInstancesCmd(store *session.Store) *cobra.Command {
	var (
		imageID      string
		instanceType string
		count        int
		keyName      string
		sgIDs        string
		subnetID     string
	)
	cmd := &cobra.Command{
		Use:   "run-instances",
		Short: "Launch new instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			instances, err := client.RunInstances(&aws.RunInstancesInput{
				ImageID:          store.Resolve(imageID),
				InstanceType:     store.Resolve(instanceType),
				Count:            count,
				KeyName:          store.Resolve(keyName),
				SecurityGroupIDs: splitList(store.Resolve(sgIDs)),
				SubnetID:         store.Resolve(subnetID),
			})
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Launched %d instance(s):\n", len(instances))
			fmt.Fprint(cmd.OutOrStdout(), instanceTable(instances))
			return nil
		},
	}
	cmd.Flags().StringVar(&imageID, "image-id", "", "AMI ID to launch from")
	cmd.Flags().StringVar(&instanceType, "instance-type", "t3.micro", "Instance type")
	cmd.Flags().IntVar(&count, "count", 1, "Number of instances")
	cmd.Flags().StringVar(&keyName, "key-name", "", "Key pair name")
	cmd.Flags().StringVar(&sgIDs, "security-group-ids", "", "Comma-separated security group IDs")
	cmd.Flags().StringVar(&subnetID, "subnet-id", "", "Subnet ID")
	cmd.MarkFlagRequired("image-id")
	return cmd
}

func newEC2DescribeVPCsCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "describe-vpcs",
		Short: "List VPCs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			vpcs, err := client.ListVPCs()
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(vpcs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No VPCs found")
				return nil
			}
			rows := [][]string{{"VPC ID", "Name", "CIDR", "State", "Default"}}
			for _, v := range vpcs {
				rows = append(rows, []string{v.ID, dash(v.Name), v.CIDR, v.State, yesNo(v.IsDefault)})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
}

func newEC2DescribeSubnetsCmd(store *session.Store) *cobra.Command {
	var vpcID string
	cmd := &cobra.Command{
		Use:   "describe-subnets",
		Short: "List subnets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			subnets, err := client.ListSubnets(store.Resolve(vpcID))
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(subnets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No subnets found")
				return nil
			}
			rows := [][]string{{"Subnet ID", "Name", "VPC ID", "CIDR", "AZ", "Available IPs"}}
			for _, s := range subnets {
				rows = append(rows, []string{
					s.ID, dash(s.Name), s.VPCID, s.CIDR, s.AZ, strconv.Itoa(s.AvailableIPs),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&vpcID, "vpc-id", "", "Restrict to one VPC")
	return cmd
}

func newEC2DescribeSecurityGroupsCmd(store *session.Store) *cobra.Command {
	var groupIDs string
	cmd := &cobra.Command{
		Use:   "describe-security-groups",
		Short: "List security groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			groups, err := client.ListSecurityGroups(splitList(store.Resolve(groupIDs)))
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No security groups found")
				return nil
			}
			rows := [][]string{{"Group ID", "Name", "VPC ID", "Description"}}
			for _, g := range groups {
				rows = append(rows, []string{g.ID, g.Name, dash(g.VPCID), dash(g.Description)})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&groupIDs, "group-ids", "", "Comma-separated security group IDs")
	return cmd
}

func newEC2CreateSecurityGroupCmd(store *session.Store) *cobra.Command {
	var description, vpcID string
	cmd := &cobra.Command{
		Use:   "create-security-group NAME",
		Short: "Create a security group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			id, err := client.CreateSecurityGroup(
				store.Resolve(args[0]), store.Resolve(description), store.Resolve(vpcID))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Security group created: %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Group description")
	cmd.Flags().StringVar(&vpcID, "vpc-id", "", "VPC to create the group in")
	cmd.MarkFlagRequired("description")
	return cmd
}

func newEC2DeleteSecurityGroupCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-security-group GROUP_ID",
		Short: "Delete a security group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			id := store.Resolve(args[0])
			if err := client.DeleteSecurityGroup(id); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Security group deleted: %s\n", id)
			return nil
		},
	}
}

func newEC2AuthorizeIngressCmd(store *session.Store) *cobra.Command {
	var (
		protocol string
		port     int
		cidr     string
	)
	cmd := &cobra.Command{
		Use:   "authorize-security-group-ingress GROUP_ID",
		Short: "Add an ingress rule to a security group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			groupID := store.Resolve(args[0])
			proto := store.Resolve(protocol)
			rule := store.Resolve(cidr)
			if err := client.AuthorizeIngress(groupID, proto, port, rule); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ingress rule added to %s: %s port %d from %s\n",
				groupID, proto, port, rule)
			return nil
		},
	}
	cmd.Flags().StringVar(&protocol, "protocol", "tcp", "IP protocol")
	cmd.Flags().IntVar(&port, "port", 0, "Port to open")
	cmd.Flags().StringVar(&cidr, "cidr", "0.0.0.0/0", "Source CIDR")
	cmd.MarkFlagRequired("port")
	return cmd
}

func newEC2DescribeVolumesCmd(store *session.Store) *cobra.Command {
	var volumeIDs string
	cmd := &cobra.Command{
		Use:   "describe-volumes",
		Short: "List EBS volumes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			volumes, err := client.ListVolumes(splitList(store.Resolve(volumeIDs)))
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(volumes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No volumes found")
				return nil
			}
			rows := [][]string{{"Volume ID", "Size", "Type", "State", "AZ", "Encrypted"}}
			for _, v := range volumes {
				rows = append(rows, []string{
					v.ID, fmt.Sprintf("%d GB", v.Size), v.Type, v.State, v.AZ, yesNo(v.Encrypted),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&volumeIDs, "volume-ids", "", "Comma-separated volume IDs")
	return cmd
}

func newEC2CreateVolumeCmd(store *session.Store) *cobra.Command {
	var (
		az         string
		size       int
		volumeType string
	)
	cmd := &cobra.Command{
		Use:   "create-volume",
		Short: "Create an EBS volume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			volume, err := client.CreateVolume(store.Resolve(az), size, store.Resolve(volumeType))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Volume created: %s (Size: %d GB, Type: %s, State: %s)\n",
				volume.ID, volume.Size, volume.Type, volume.State)
			return nil
		},
	}
	cmd.Flags().StringVar(&az, "availability-zone", "", "Availability zone")
	cmd.Flags().IntVar(&size, "size", 0, "Size in GB")
	cmd.Flags().StringVar(&volumeType, "volume-type", "gp3", "Volume type")
	cmd.MarkFlagRequired("availability-zone")
	cmd.MarkFlagRequired("size")
	return cmd
}

func newEC2DeleteVolumeCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-volume VOLUME_ID",
		Short: "Delete an EBS volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			id := store.Resolve(args[0])
			if err := client.DeleteVolume(id); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Volume deleted: %s\n", id)
			return nil
		},
	}
}

func newEC2AttachVolumeCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "attach-volume VOLUME_ID INSTANCE_ID DEVICE",
		Short: "Attach a volume to an instance",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			volumeID := store.Resolve(args[0])
			instanceID := store.Resolve(args[1])
			device := store.Resolve(args[2])
			state, err := client.AttachVolume(volumeID, instanceID, device)
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Attaching volume %s to instance %s as %s (State: %s)\n",
				volumeID, instanceID, device, state)
			return nil
		},
	}
}

func newEC2DetachVolumeCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "detach-volume VOLUME_ID",
		Short: "Detach a volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			volumeID := store.Resolve(args[0])
			state, err := client.DetachVolume(volumeID)
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Detaching volume %s (State: %s)\n", volumeID, state)
			return nil
		},
	}
}

func newEC2DescribeSnapshotsCmd(store *session.Store) *cobra.Command {
	var ownerIDs, snapshotIDs string
	cmd := &cobra.Command{
		Use:   "describe-snapshots",
		Short: "List EBS snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			snapshots, err := client.ListSnapshots(
				splitList(store.Resolve(ownerIDs)), splitList(store.Resolve(snapshotIDs)))
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(snapshots) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No snapshots found")
				return nil
			}
			rows := [][]string{{"Snapshot ID", "Volume ID", "Size", "State", "Progress", "Start Time"}}
			for _, s := range snapshots {
				started := "-"
				if !s.StartTime.IsZero() {
					started = s.StartTime.Format(format.ShortTimeLayout)
				}
				rows = append(rows, []string{
					s.ID, s.VolumeID, fmt.Sprintf("%d GB", s.Size), s.State, dash(s.Progress), started,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&ownerIDs, "owner-ids", "self", "Comma-separated snapshot owners")
	cmd.Flags().StringVar(&snapshotIDs, "snapshot-ids", "", "Comma-separated snapshot IDs")
	return cmd
}

func newEC2CreateSnapshotCmd(store *session.Store) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create-snapshot VOLUME_ID",
		Short: "Create a snapshot of a volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			snapshot, err := client.CreateSnapshot(store.Resolve(args[0]), store.Resolve(description))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Snapshot created: %s (State: %s)\n", snapshot.ID, snapshot.State)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Snapshot description")
	return cmd
}

func newEC2DeleteSnapshotCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-snapshot SNAPSHOT_ID",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			id := store.Resolve(args[0])
			if err := client.DeleteSnapshot(id); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Snapshot deleted: %s\n", id)
			return nil
		},
	}
}

func newEC2DescribeImagesCmd(store *session.Store) *cobra.Command {
	var owners, imageIDs string
	cmd := &cobra.Command{
		Use:   "describe-images",
		Short: "List AMIs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			images, err := client.ListImages(
				splitList(store.Resolve(owners)), splitList(store.Resolve(imageIDs)))
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(images) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No images found")
				return nil
			}
			rows := [][]string{{"Image ID", "Name", "State", "Architecture", "Root Device"}}
			for _, img := range images {
				rows = append(rows, []string{
					img.ID, dash(img.Name), img.State, img.Architecture, dash(img.RootDevice),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&owners, "owners", "self", "Comma-separated image owners")
	cmd.Flags().StringVar(&imageIDs, "image-ids", "", "Comma-separated image IDs")
	return cmd
}

func newEC2CreateImageCmd(store *session.Store) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create-image INSTANCE_ID NAME",
		Short: "Create an AMI from an instance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			id, err := client.CreateImage(
				store.Resolve(args[0]), store.Resolve(args[1]), store.Resolve(description))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "AMI created: %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Image description")
	return cmd
}

func newEC2DescribeKeyPairsCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "describe-key-pairs",
		Short: "List key pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			keyPairs, err := client.ListKeyPairs()
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(keyPairs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No key pairs found")
				return nil
			}
			rows := [][]string{{"Name", "Key Pair ID", "Fingerprint"}}
			for _, kp := range keyPairs {
				rows = append(rows, []string{kp.Name, kp.ID, dash(kp.Fingerprint)})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
}

func newEC2CreateKeyPairCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "create-key-pair NAME",
		Short: "Create a key pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			created, err := client.CreateKeyPair(store.Resolve(args[0]))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Key pair created: %s\n\n", created.Name)
			fmt.Fprintln(cmd.OutOrStdout(), "IMPORTANT: Save this private key material (only shown once):")
			fmt.Fprintln(cmd.OutOrStdout(), created.Material)
			return nil
		},
	}
}

func newEC2DeleteKeyPairCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-key-pair NAME",
		Short: "Delete a key pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			name := store.Resolve(args[0])
			if err := client.DeleteKeyPair(name); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Key pair deleted: %s\n", name)
			return nil
		},
	}
}

func newEC2DescribeAddressesCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "describe-addresses",
		Short: "List Elastic IP addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			addresses, err := client.ListAddresses()
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(addresses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No Elastic IPs found")
				return nil
			}
			rows := [][]string{{"Allocation ID", "Public IP", "Private IP", "Instance ID", "Domain"}}
			for _, a := range addresses {
				rows = append(rows, []string{
					a.AllocationID, a.PublicIP, dash(a.PrivateIP), dash(a.InstanceID), a.Domain,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
}

func newEC2AllocateAddressCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "allocate-address",
		Short: "Allocate an Elastic IP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			address, err := client.AllocateAddress()
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Elastic IP allocated: %s (Allocation ID: %s)\n",
				address.PublicIP, address.AllocationID)
			return nil
		},
	}
}

func newEC2ReleaseAddressCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "release-address ALLOCATION_ID",
		Short: "Release an Elastic IP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			id := store.Resolve(args[0])
			if err := client.ReleaseAddress(id); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Elastic IP released: %s\n", id)
			return nil
		},
	}
}

func newEC2AssociateAddressCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "associate-address INSTANCE_ID ALLOCATION_ID",
		Short: "Associate an Elastic IP with an instance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			associationID, err := client.AssociateAddress(
				store.Resolve(args[0]), store.Resolve(args[1]))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Elastic IP associated. Association ID: %s\n", associationID)
			return nil
		},
	}
}

func newEC2CreateTagsCmd(store *session.Store) *cobra.Command {
	var resources, tags string
	cmd := &cobra.Command{
		Use:   "create-tags",
		Short: "Tag EC2 resources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			resourceIDs := splitList(store.Resolve(resources))
			pairs, err := parseTagPairs(store.Resolve(tags))
			if err != nil {
				return reportErr(cmd, err)
			}
			if err := client.CreateTags(resourceIDs, pairs); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tags created for: %s\n", strings.Join(resourceIDs, ", "))
			return nil
		},
	}
	cmd.Flags().StringVar(&resources, "resources", "", "Comma-separated resource IDs")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated Key=Value pairs")
	cmd.MarkFlagRequired("resources")
	cmd.MarkFlagRequired("tags")
	return cmd
}

// parseTagPairs parses "Key=Value,Key2=Value2" into key/value pairs
func parseTagPairs(s string) ([][2]string, error) {
	var pairs [][2]string
	for _, entry := range splitList(s) {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid tag %q: expected Key=Value", entry)
		}
		pairs = append(pairs, [2]string{key, value})
	}
	return pairs, nil
}
