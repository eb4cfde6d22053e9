package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vietdv277/stratus/internal/aws"
	"github.com/vietdv277/stratus/internal/format"
	"github.com/vietdv277/stratus/internal/session"
)

func newS3Cmd(store *session.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "s3",
		Short: "S3 buckets and objects",
	}
	cmd.AddCommand(
		newS3LsCmd(store),
		newS3MbCmd(store),
		newS3RbCmd(store),
		newS3CpCmd(store),
		newS3MvCmd(store),
		newS3RmCmd(store),
		newS3SyncCmd(store),
		newS3HeadBucketCmd(store),
		newS3HeadObjectCmd(store),
		newS3GetBucketLocationCmd(store),
		newS3GetBucketVersioningCmd(store),
		newS3PutBucketVersioningCmd(store),
		newS3GetObjectTaggingCmd(store),
		newS3PutObjectTaggingCmd(store),
		newS3DeleteObjectTaggingCmd(store),
		newS3DeleteObjectsCmd(store),
		newS3GetObjectURLCmd(store),
	)
	return cmd
}

func newS3LsCmd(store *session.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls [S3_URI]",
		Short: "List buckets, or objects under a prefix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				buckets, err := client.ListBuckets()
				if err != nil {
					return reportErr(cmd, err)
				}
				if len(buckets) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No buckets found")
					return nil
				}
				rows := [][]string{{"Name", "Creation Date"}}
				for _, b := range buckets {
					rows = append(rows, []string{b.Name, b.CreatedAt.Format(format.TimeLayout)})
				}
				fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
				return nil
			}
			bucket, prefix, err := aws.ParseS3Path(store.Resolve(args[0]))
			if err != nil {
				return reportErr(cmd, err)
			}
			objects, err := client.ListObjects(bucket, prefix)
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(objects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No objects found")
				return nil
			}
			rows := [][]string{{"Key", "Size", "Last Modified"}}
			for _, o := range objects {
				rows = append(rows, []string{
					o.Key, format.Size(o.Size), o.LastModified.Format(format.TimeLayout),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
	return cmd
}

func newS3MbCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "mb BUCKET",
		Short: "Create a bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			bucket := store.Resolve(args[0])
			if err := client.CreateBucket(bucket); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Error creating bucket: %v\n", err)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bucket created: %s\n", bucket)
			return nil
		},
	}
}

func newS3RbCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "rb BUCKET",
		Short: "Delete an empty bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			bucket := store.Resolve(args[0])
			if err := client.DeleteBucket(bucket); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Error deleting bucket: %v\n", err)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bucket deleted: %s\n", bucket)
			return nil
		},
	}
}

// copyBetween moves bytes between a local path and S3, or between two S3
// locations. At least one side must be an S3 URI.
func copyBetween(client *aws.Client, src, dst string) (string, error) {
	srcS3, dstS3 := aws.IsS3Path(src), aws.IsS3Path(dst)
	switch {
	case srcS3 && dstS3:
		srcBucket, srcKey, err := aws.ParseS3Path(src)
		if err != nil {
			return "", err
		}
		dstBucket, dstKey, err := aws.ParseS3Path(dst)
		if err != nil {
			return "", err
		}
		return "Copied", client.CopyObject(srcBucket, srcKey, dstBucket, dstKey)
	case dstS3:
		bucket, key, err := aws.ParseS3Path(dst)
		if err != nil {
			return "", err
		}
		return "Uploaded", client.UploadObject(src, bucket, key)
	case srcS3:
		bucket, key, err := aws.ParseS3Path(src)
		if err != nil {
			return "", err
		}
		return "Downloaded", client.DownloadObject(bucket, key, dst)
	default:
		return "", nil
	}
}

func newS3CpCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "cp SRC DST",
		Short: "Copy between local paths and S3",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			src, dst := store.Resolve(args[0]), store.Resolve(args[1])
			if !aws.IsS3Path(src) && !aws.IsS3Path(dst) {
				fmt.Fprintln(cmd.OutOrStdout(), "Error: At least one path must be an S3 URI (s3://...)")
				return nil
			}
			verb, err := copyBetween(client, src, dst)
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n", verb, src, dst)
			return nil
		},
	}
}

func newS3MvCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "mv SRC DST",
		Short: "Move an object (copy then delete the source)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			src, dst := store.Resolve(args[0]), store.Resolve(args[1])
			if !aws.IsS3Path(src) && !aws.IsS3Path(dst) {
				fmt.Fprintln(cmd.OutOrStdout(), "Error: At least one path must be an S3 URI (s3://...)")
				return nil
			}
			if _, err := copyBetween(client, src, dst); err != nil {
				return reportErr(cmd, err)
			}
			if aws.IsS3Path(src) {
				bucket, key, err := aws.ParseS3Path(src)
				if err != nil {
					return reportErr(cmd, err)
				}
				if err := client.DeleteObject(bucket, key); err != nil {
					return reportErr(cmd, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved: %s -> %s\n", src, dst)
			return nil
		},
	}
}

func newS3RmCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "rm S3_URI",
		Short: "Delete an object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			path := store.Resolve(args[0])
			bucket, key, err := aws.ParseS3Path(path)
			if err != nil {
				return reportErr(cmd, err)
			}
			if err := client.DeleteObject(bucket, key); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Error deleting object: %v\n", err)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Object deleted: %s\n", path)
			return nil
		},
	}
}

func newS3SyncCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "sync SRC DST",
		Short: "Sync a local directory with an S3 prefix",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			src, dst := store.Resolve(args[0]), store.Resolve(args[1])
			srcS3, dstS3 := aws.IsS3Path(src), aws.IsS3Path(dst)
			if srcS3 == dstS3 {
				fmt.Fprintln(cmd.OutOrStdout(), "Error: One path must be local and one must be S3")
				return nil
			}
			if dstS3 {
				bucket, prefix, err := aws.ParseS3Path(dst)
				if err != nil {
					return reportErr(cmd, err)
				}
				if err := client.SyncUp(src, bucket, prefix); err != nil {
					return reportErr(cmd, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Synced directory to S3: %s\n", dst)
				return nil
			}
			bucket, prefix, err := aws.ParseS3Path(src)
			if err != nil {
				return reportErr(cmd, err)
			}
			if err := client.SyncDown(bucket, prefix, dst); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Synced from S3 to local: %s\n", dst)
			return nil
		},
	}
}

func newS3HeadBucketCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "head-bucket BUCKET",
		Short: "Check whether a bucket exists and is accessible",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			bucket := store.Resolve(args[0])
			if err := client.HeadBucket(bucket); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Bucket does not exist or is not accessible: %s\n", bucket)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bucket exists: %s\n", bucket)
			return nil
		},
	}
}

func newS3HeadObjectCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "head-object S3_URI",
		Short: "Show object metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			bucket, key, err := aws.ParseS3Path(store.Resolve(args[0]))
			if err != nil {
				return reportErr(cmd, err)
			}
			info, err := client.HeadObject(bucket, key)
			if err != nil {
				return reportErr(cmd, err)
			}
			storageClass := info.StorageClass
			if storageClass == "" {
				storageClass = "STANDARD"
			}
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue([][2]string{
				{"Bucket", info.Bucket},
				{"Key", info.Key},
				{"Size", format.Size(info.Size)},
				{"Content Type", na(info.ContentType)},
				{"Last Modified", info.LastModified.Format(format.TimeLayout)},
				{"ETag", info.ETag},
				{"Storage Class", storageClass},
			}))
			return nil
		},
	}
}

func newS3GetBucketLocationCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "get-bucket-location BUCKET",
		Short: "Show the region a bucket lives in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			bucket := store.Resolve(args[0])
			location, err := client.BucketLocation(bucket)
			if err != nil {
				return reportErr(cmd, err)
			}
			if location == "" {
				location = "us-east-1"
			}
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue([][2]string{
				{"Bucket", bucket},
				{"Region", location},
			}))
			return nil
		},
	}
}

func newS3GetBucketVersioningCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "get-bucket-versioning BUCKET",
		Short: "Show a bucket's versioning state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			versioning, err := client.BucketVersioning(store.Resolve(args[0]))
			if err != nil {
				return reportErr(cmd, err)
			}
			status := versioning.Status
			if status == "" {
				status = "Disabled"
			}
			mfaDelete := versioning.MFADelete
			if mfaDelete == "" {
				mfaDelete = "Disabled"
			}
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue([][2]string{
				{"Bucket", versioning.Bucket},
				{"Status", status},
				{"MFA Delete", mfaDelete},
			}))
			return nil
		},
	}
}

func newS3PutBucketVersioningCmd(store *session.Store) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "put-bucket-versioning BUCKET",
		Short: "Set a bucket's versioning state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			bucket := store.Resolve(args[0])
			state := store.Resolve(status)
			if err := client.SetBucketVersioning(bucket, state); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Versioning %s for bucket: %s\n", state, bucket)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Enabled or Suspended")
	cmd.MarkFlagRequired("status")
	return cmd
}

func newS3GetObjectTaggingCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "get-object-tagging S3_URI",
		Short: "Show an object's tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			path := store.Resolve(args[0])
			bucket, key, err := aws.ParseS3Path(path)
			if err != nil {
				return reportErr(cmd, err)
			}
			tags, err := client.ObjectTags(bucket, key)
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(tags) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No tags found for: %s\n", path)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue(tags))
			return nil
		},
	}
}

func newS3PutObjectTaggingCmd(store *session.Store) *cobra.Command {
	var tags string
	cmd := &cobra.Command{
		Use:   "put-object-tagging S3_URI",
		Short: "Replace an object's tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			path := store.Resolve(args[0])
			bucket, key, err := aws.ParseS3Path(path)
			if err != nil {
				return reportErr(cmd, err)
			}
			pairs, err := parseTagPairs(store.Resolve(tags))
			if err != nil {
				return reportErr(cmd, err)
			}
			if err := client.SetObjectTags(bucket, key, pairs); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tags set for: %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated Key=Value pairs")
	cmd.MarkFlagRequired("tags")
	return cmd
}

func newS3DeleteObjectTaggingCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-object-tagging S3_URI",
		Short: "Remove all tags from an object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			path := store.Resolve(args[0])
			bucket, key, err := aws.ParseS3Path(path)
			if err != nil {
				return reportErr(cmd, err)
			}
			if err := client.DeleteObjectTags(bucket, key); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tags deleted for: %s\n", path)
			return nil
		},
	}
}

func newS3DeleteObjectsCmd(store *session.Store) *cobra.Command {
	var keys string
	cmd := &cobra.Command{
		Use:   "delete-objects BUCKET",
		Short: "Delete multiple objects in one call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			bucket := store.Resolve(args[0])
			deleted, err := client.DeleteObjects(bucket, splitList(store.Resolve(keys)))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s objects from %s\n", strconv.Itoa(deleted), bucket)
			return nil
		},
	}
	cmd.Flags().StringVar(&keys, "keys", "", "Comma-separated object keys")
	cmd.MarkFlagRequired("keys")
	return cmd
}

func newS3GetObjectURLCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "get-object-url S3_URI",
		Short: "Print the HTTPS URL for an object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			bucket, key, err := aws.ParseS3Path(store.Resolve(args[0]))
			if err != nil {
				return reportErr(cmd, err)
			}
			location, err := client.BucketLocation(bucket)
			if err != nil {
				return reportErr(cmd, err)
			}
			if location == "" {
				location = "us-east-1"
			}
			url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, location, key)
			fmt.Fprintf(cmd.OutOrStdout(), "Object URL:\n%s\n\n", url)
			fmt.Fprintln(cmd.OutOrStdout(), "Note: This URL only works for public objects or with valid authentication")
			return nil
		},
	}
}
