package types

// Image represents an AMI
type Image struct {
	ID           string
	Name         string
	State        string
	Architecture string
	RootDevice   string
}

// KeyPair represents an EC2 key pair
type KeyPair struct {
	Name        string
	ID          string
	Fingerprint string
}

// CreatedKeyPair holds the name and private key material returned when a
// key pair is created. The material is only available at creation time.
type CreatedKeyPair struct {
	Name     string
	Material string
}
