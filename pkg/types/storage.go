package types

import "time"

// Bucket represents an S3 bucket
type Bucket struct {
	Name      string
	CreatedAt time.Time
}

// Object represents an object in a bucket
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectInfo holds the metadata returned by a HEAD on an object
type ObjectInfo struct {
	Bucket       string
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	ETag         string
	StorageClass string // empty means STANDARD
}

// BucketVersioning represents the versioning state of a bucket
type BucketVersioning struct {
	Bucket    string
	Status    string // Enabled, Suspended, or empty when never configured
	MFADelete string
}
