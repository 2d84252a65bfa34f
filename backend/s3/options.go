package s3

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// Options holds options necessary for the s3 blobfs implementation
type Options struct {
	// AccessKeyID holds the AWS access key id for authentication.  When empty the default AWS credential
	// chain is used.
	AccessKeyID string

	// SecretAccessKey holds the AWS secret access key for authentication
	SecretAccessKey string

	// SessionToken holds the AWS session token for authentication
	SessionToken string

	// Region holds the AWS region
	Region string

	// Endpoint overrides the S3 endpoint.  Set this to target MinIO or localstack.
	Endpoint string

	// ForcePathStyle addresses buckets as path elements instead of subdomains, required by most
	// S3-compatible servers.
	ForcePathStyle bool

	// FileBufferSize sets the buffer size used when copying between backends.
	FileBufferSize int
}

// NewOptions creates a new Options struct, pulling defaults from the environment.
func NewOptions() *Options {
	return &Options{
		AccessKeyID:     os.Getenv("BLOBFS_S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("BLOBFS_S3_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("BLOBFS_S3_SESSION_TOKEN"),
		Region:          os.Getenv("BLOBFS_S3_REGION"),
		Endpoint:        os.Getenv("BLOBFS_S3_ENDPOINT"),
	}
}

// s3Client builds an *s3.Client from the options, falling back to the default AWS credential chain for
// anything not set explicitly.
func (o *Options) s3Client() (*awss3.Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if o.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.Region))
	}
	if o.AccessKeyID != "" && o.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKeyID, o.SecretAccessKey, o.SessionToken)))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, err
	}

	return awss3.NewFromConfig(cfg, func(so *awss3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
		}
		so.UsePathStyle = o.ForcePathStyle
	}), nil
}
