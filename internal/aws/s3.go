package aws

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/vietdv277/stratus/pkg/types"
)

// ErrLocalFileNotFound is returned when an upload source does not exist.
var ErrLocalFileNotFound = errors.New("local file not found")

// ErrNotADirectory is returned when a sync source is not a directory.
var ErrNotADirectory = errors.New("local path is not a directory")

// ParseS3Path splits an s3://bucket/key URI into bucket and key. The key may
// be empty when the URI names only a bucket.
func ParseS3Path(path string) (bucket, key string, err error) {
	if !strings.HasPrefix(path, "s3://") {
		return "", "", fmt.Errorf("S3 path must start with s3://")
	}

	rest := strings.TrimPrefix(path, "s3://")
	if idx := strings.Index(rest, "/"); idx >= 0 {
		return rest[:idx], rest[idx+1:], nil
	}
	return rest, "", nil
}

// IsS3Path reports whether the given path is an s3:// URI
func IsS3Path(path string) bool {
	return strings.HasPrefix(path, "s3://")
}

// ListBuckets returns the account's buckets
func (c *Client) ListBuckets() ([]types.Bucket, error) {
	output, err := c.S3.ListBuckets(c.ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}

	var buckets []types.Bucket
	for _, b := range output.Buckets {
		bucket := types.Bucket{
			Name: deref(b.Name),
		}
		if b.CreationDate != nil {
			bucket.CreatedAt = *b.CreationDate
		}
		buckets = append(buckets, bucket)
	}

	return buckets, nil
}

// ListObjects returns the objects in a bucket under the given prefix
func (c *Client) ListObjects(bucket, prefix string) ([]types.Object, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	paginator := s3.NewListObjectsV2Paginator(c.S3, input)

	var objects []types.Object
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(c.ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}

		for _, obj := range page.Contents {
			o := types.Object{
				Key:  deref(obj.Key),
				Size: deref64(obj.Size),
			}
			if obj.LastModified != nil {
				o.LastModified = *obj.LastModified
			}
			objects = append(objects, o)
		}
	}

	return objects, nil
}

// CreateBucket creates a bucket in the client's region
func (c *Client) CreateBucket(bucket string) error {
	_, err := c.S3.CreateBucket(c.ctx, &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	})
	return err
}

// DeleteBucket deletes an empty bucket
func (c *Client) DeleteBucket(bucket string) error {
	_, err := c.S3.DeleteBucket(c.ctx, &s3.DeleteBucketInput{
		Bucket: aws.String(bucket),
	})
	return err
}

// HeadBucket checks whether a bucket exists and is accessible
func (c *Client) HeadBucket(bucket string) error {
	_, err := c.S3.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	return err
}

// BucketLocation returns the bucket's region constraint. An empty string
// means us-east-1.
func (c *Client) BucketLocation(bucket string) (string, error) {
	output, err := c.S3.GetBucketLocation(c.ctx, &s3.GetBucketLocationInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get bucket location: %w", err)
	}

	return string(output.LocationConstraint), nil
}

// HeadObject returns the metadata of a single object
func (c *Client) HeadObject(bucket, key string) (*types.ObjectInfo, error) {
	output, err := c.S3.HeadObject(c.ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to head object: %w", err)
	}

	info := &types.ObjectInfo{
		Bucket:       bucket,
		Key:          key,
		Size:         deref64(output.ContentLength),
		ContentType:  deref(output.ContentType),
		ETag:         deref(output.ETag),
		StorageClass: string(output.StorageClass),
	}
	if output.LastModified != nil {
		info.LastModified = *output.LastModified
	}

	return info, nil
}

// BucketVersioning returns the versioning state of a bucket
func (c *Client) BucketVersioning(bucket string) (*types.BucketVersioning, error) {
	output, err := c.S3.GetBucketVersioning(c.ctx, &s3.GetBucketVersioningInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket versioning: %w", err)
	}

	return &types.BucketVersioning{
		Bucket:    bucket,
		Status:    string(output.Status),
		MFADelete: string(output.MFADelete),
	}, nil
}

// SetBucketVersioning sets the versioning status (Enabled or Suspended)
func (c *Client) SetBucketVersioning(bucket, status string) error {
	_, err := c.S3.PutBucketVersioning(c.ctx, &s3.PutBucketVersioningInput{
		Bucket: aws.String(bucket),
		VersioningConfiguration: &s3types.VersioningConfiguration{
			Status: s3types.BucketVersioningStatus(status),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to set bucket versioning: %w", err)
	}

	return nil
}

// ObjectTags returns the tag set of an object as key/value pairs
func (c *Client) ObjectTags(bucket, key string) ([][2]string, error) {
	output, err := c.S3.GetObjectTagging(c.ctx, &s3.GetObjectTaggingInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object tagging: %w", err)
	}

	var tags [][2]string
	for _, t := range output.TagSet {
		tags = append(tags, [2]string{deref(t.Key), deref(t.Value)})
	}

	return tags, nil
}

// SetObjectTags replaces the tag set of an object
func (c *Client) SetObjectTags(bucket, key string, tags [][2]string) error {
	var tagSet []s3types.Tag
	for _, t := range tags {
		tagSet = append(tagSet, s3types.Tag{
			Key:   aws.String(t[0]),
			Value: aws.String(t[1]),
		})
	}

	_, err := c.S3.PutObjectTagging(c.ctx, &s3.PutObjectTaggingInput{
		Bucket:  aws.String(bucket),
		Key:     aws.String(key),
		Tagging: &s3types.Tagging{TagSet: tagSet},
	})
	if err != nil {
		return fmt.Errorf("failed to put object tagging: %w", err)
	}

	return nil
}

// DeleteObjectTags removes all tags from an object
func (c *Client) DeleteObjectTags(bucket, key string) error {
	_, err := c.S3.DeleteObjectTagging(c.ctx, &s3.DeleteObjectTaggingInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object tagging: %w", err)
	}

	return nil
}

// DeleteObject deletes a single object
func (c *Client) DeleteObject(bucket, key string) error {
	_, err := c.S3.DeleteObject(c.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	return err
}

// DeleteObjects deletes several objects in one call and returns how many
// were deleted
func (c *Client) DeleteObjects(bucket string, keys []string) (int, error) {
	var ids []s3types.ObjectIdentifier
	for _, k := range keys {
		ids = append(ids, s3types.ObjectIdentifier{Key: aws.String(k)})
	}

	output, err := c.S3.DeleteObjects(c.ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(bucket),
		Delete: &s3types.Delete{Objects: ids},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete objects: %w", err)
	}

	return len(output.Deleted), nil
}

// UploadObject uploads a local file to a bucket
func (c *Client) UploadObject(localPath, bucket, key string) error {
	f, err := os.Open(localPath)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrLocalFileNotFound
		}
		return fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	_, err = c.S3.PutObject(c.ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}

	return nil
}

// DownloadObject downloads an object to a local file
func (c *Client) DownloadObject(bucket, key, localPath string) error {
	output, err := c.S3.GetObject(c.ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to download object: %w", err)
	}
	defer output.Body.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", localPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, output.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", localPath, err)
	}

	return nil
}

// CopyObject copies an object within or across buckets
func (c *Client) CopyObject(srcBucket, srcKey, dstBucket, dstKey string) error {
	_, err := c.S3.CopyObject(c.ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(dstBucket),
		Key:        aws.String(dstKey),
		CopySource: aws.String(srcBucket + "/" + srcKey),
	})
	if err != nil {
		return fmt.Errorf("failed to copy object: %w", err)
	}

	return nil
}

// SyncUp uploads every regular file under localDir to the bucket, keyed by
// the file's path relative to localDir under the given prefix. Per-file
// upload failures are skipped.
func (c *Client) SyncUp(localDir, bucket, prefix string) error {
	info, err := os.Stat(localDir)
	if err != nil || !info.IsDir() {
		return ErrNotADirectory
	}

	return filepath.WalkDir(localDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, relErr := filepath.Rel(localDir, path)
		if relErr != nil {
			return relErr
		}

		key := filepath.ToSlash(rel)
		if prefix != "" {
			key = prefix + "/" + key
		}

		f, openErr := os.Open(path)
		if openErr != nil {
			return nil
		}
		_, _ = c.S3.PutObject(c.ctx, &s3.PutObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
			Body:   f,
		})
		f.Close()
		return nil
	})
}

// SyncDown downloads every object under the prefix into localDir, recreating
// the key hierarchy. Per-object download failures are skipped.
func (c *Client) SyncDown(bucket, prefix, localDir string) error {
	objects, err := c.ListObjects(bucket, prefix)
	if err != nil {
		return err
	}

	for _, obj := range objects {
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}

		rel := strings.TrimPrefix(obj.Key, prefix)
		rel = strings.TrimPrefix(rel, "/")
		if rel == "" {
			continue
		}

		target := filepath.Join(localDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
		}
		_ = c.DownloadObject(bucket, obj.Key, target)
	}

	return nil
}

// deref64 safely dereferences an int64 pointer
func deref64(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}
