package aws

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/vietdv277/stratus/pkg/types"
)

// ListVolumes returns EBS volumes, optionally restricted to the given IDs
func (c *Client) ListVolumes(volumeIDs []string) ([]types.Volume, error) {
	input := &ec2.DescribeVolumesInput{}
	if len(volumeIDs) > 0 {
		input.VolumeIds = volumeIDs
	}

	output, err := c.EC2.DescribeVolumes(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to describe volumes: %w", err)
	}

	var volumes []types.Volume
	for _, v := range output.Volumes {
		volumes = append(volumes, toVolume(v))
	}

	return volumes, nil
}

// CreateVolume creates a new EBS volume in the given availability zone
func (c *Client) CreateVolume(az string, size int, volumeType string) (*types.Volume, error) {
	output, err := c.EC2.CreateVolume(c.ctx, &ec2.CreateVolumeInput{
		AvailabilityZone: aws.String(az),
		Size:             aws.Int32(int32(size)),
		VolumeType:       ec2types.VolumeType(volumeType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create volume: %w", err)
	}

	return &types.Volume{
		ID:    deref(output.VolumeId),
		Size:  int(deref32(output.Size)),
		Type:  string(output.VolumeType),
		State: string(output.State),
		AZ:    deref(output.AvailabilityZone),
	}, nil
}

// DeleteVolume deletes an EBS volume
func (c *Client) DeleteVolume(volumeID string) error {
	_, err := c.EC2.DeleteVolume(c.ctx, &ec2.DeleteVolumeInput{
		VolumeId: aws.String(volumeID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete volume: %w", err)
	}

	return nil
}

// AttachVolume attaches a volume to an instance and returns the attachment state
func (c *Client) AttachVolume(volumeID, instanceID, device string) (string, error) {
	output, err := c.EC2.AttachVolume(c.ctx, &ec2.AttachVolumeInput{
		VolumeId:   aws.String(volumeID),
		InstanceId: aws.String(instanceID),
		Device:     aws.String(device),
	})
	if err != nil {
		return "", fmt.Errorf("failed to attach volume: %w", err)
	}

	return string(output.State), nil
}

// DetachVolume detaches a volume and returns the attachment state
func (c *Client) DetachVolume(volumeID string) (string, error) {
	output, err := c.EC2.DetachVolume(c.ctx, &ec2.DetachVolumeInput{
		VolumeId: aws.String(volumeID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to detach volume: %w", err)
	}

	return string(output.State), nil
}

// ListSnapshots returns EBS snapshots filtered by owners and/or snapshot IDs
func (c *Client) ListSnapshots(ownerIDs, snapshotIDs []string) ([]types.Snapshot, error) {
	input := &ec2.DescribeSnapshotsInput{}
	if len(ownerIDs) > 0 {
		input.OwnerIds = ownerIDs
	}
	if len(snapshotIDs) > 0 {
		input.SnapshotIds = snapshotIDs
	}

	output, err := c.EC2.DescribeSnapshots(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to describe snapshots: %w", err)
	}

	var snapshots []types.Snapshot
	for _, s := range output.Snapshots {
		snapshots = append(snapshots, toSnapshot(s))
	}

	return snapshots, nil
}

// CreateSnapshot creates a snapshot of the given volume
func (c *Client) CreateSnapshot(volumeID, description string) (*types.Snapshot, error) {
	input := &ec2.CreateSnapshotInput{
		VolumeId: aws.String(volumeID),
	}
	if description != "" {
		input.Description = aws.String(description)
	}

	output, err := c.EC2.CreateSnapshot(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot: %w", err)
	}

	snapshot := types.Snapshot{
		ID:       deref(output.SnapshotId),
		VolumeID: deref(output.VolumeId),
		Size:     int(deref32(output.VolumeSize)),
		State:    string(output.State),
		Progress: deref(output.Progress),
	}
	if output.StartTime != nil {
		snapshot.StartTime = *output.StartTime
	}

	return &snapshot, nil
}

// DeleteSnapshot deletes an EBS snapshot
func (c *Client) DeleteSnapshot(snapshotID string) error {
	_, err := c.EC2.DeleteSnapshot(c.ctx, &ec2.DeleteSnapshotInput{
		SnapshotId: aws.String(snapshotID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	return nil
}

// toVolume converts an EC2 Volume to our Volume type
func toVolume(v ec2types.Volume) types.Volume {
	return types.Volume{
		ID:        deref(v.VolumeId),
		Size:      int(deref32(v.Size)),
		Type:      string(v.VolumeType),
		State:     string(v.State),
		AZ:        deref(v.AvailabilityZone),
		Encrypted: derefBool(v.Encrypted),
	}
}

// toSnapshot converts an EC2 Snapshot to our Snapshot type
func toSnapshot(s ec2types.Snapshot) types.Snapshot {
	snapshot := types.Snapshot{
		ID:       deref(s.SnapshotId),
		VolumeID: deref(s.VolumeId),
		Size:     int(deref32(s.VolumeSize)),
		State:    string(s.State),
		Progress: deref(s.Progress),
	}
	if s.StartTime != nil {
		snapshot.StartTime = *s.StartTime
	}
	return snapshot
}

// derefBool safely dereferences a bool pointer
func derefBool(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}
