package s3

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/blobfs/blobfs"
	"github.com/blobfs/blobfs/utils"
)

// ObjectProperties holds a subset of information returned by HeadObject.
type ObjectProperties struct {
	// Size holds the size of the object.
	Size *int64

	// LastModified holds the last modified time.Time
	LastModified *time.Time
}

// The Client interface contains methods that perform specific operations against S3.  This interface is here
// so we can write mocks over the actual functionality.
type Client interface {
	Properties(bucket, key string) (*ObjectProperties, error)
	Upload(file blobfs.File, content io.Reader, contentType string) error
	Download(file blobfs.File) (io.ReadCloser, error)
	Copy(srcFile, tgtFile blobfs.File) error
	List(l blobfs.Location, prefix string) ([]string, error)
	ListAll(l blobfs.Location) ([]string, error)
	Delete(file blobfs.File) error
	SignedURL(file blobfs.File, validFor time.Duration) (string, error)
}

// DefaultClient is the main implementation that actually makes the calls to S3.
type DefaultClient struct {
	s3Client      *awss3.Client
	uploader      *manager.Uploader
	presignClient *awss3.PresignClient
}

// NewClient initializes a new DefaultClient using the credentials found in the given Options.
func NewClient(options *Options) (*DefaultClient, error) {
	s3Client, err := options.s3Client()
	if err != nil {
		return nil, err
	}
	return &DefaultClient{
		s3Client:      s3Client,
		uploader:      manager.NewUploader(s3Client),
		presignClient: awss3.NewPresignClient(s3Client),
	}, nil
}

// IsNotFound returns true if the given error indicates a missing object or bucket.
func IsNotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	var noSuchBucket *types.NoSuchBucket
	return errors.As(err, &notFound) || errors.As(err, &noSuchKey) || errors.As(err, &noSuchBucket)
}

// Properties fetches the properties for the object specified by bucket and key.  When key is empty only the
// existence of the bucket is checked.
func (c *DefaultClient) Properties(bucket, key string) (*ObjectProperties, error) {
	ctx := context.Background()
	if key == "" {
		_, err := c.s3Client.HeadBucket(ctx, &awss3.HeadBucketInput{Bucket: aws.String(bucket)})
		if err != nil {
			return nil, err
		}
		return nil, nil
	}

	resp, err := c.s3Client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(utils.RemoveLeadingSlash(key)),
	})
	if err != nil {
		return nil, err
	}
	return &ObjectProperties{
		Size:         resp.ContentLength,
		LastModified: resp.LastModified,
	}, nil
}

// Upload streams content to the file's key.  Multipart uploads are handled by the manager for large content.
func (c *DefaultClient) Upload(file blobfs.File, content io.Reader, contentType string) error {
	input := &awss3.PutObjectInput{
		Bucket: aws.String(file.Location().Volume()),
		Key:    aws.String(utils.RemoveLeadingSlash(file.Path())),
		Body:   content,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	_, err := c.uploader.Upload(context.Background(), input)
	return err
}

// Download returns an io.ReadCloser for the given blobfs.File
func (c *DefaultClient) Download(file blobfs.File) (io.ReadCloser, error) {
	resp, err := c.s3Client.GetObject(context.Background(), &awss3.GetObjectInput{
		Bucket: aws.String(file.Location().Volume()),
		Key:    aws.String(utils.RemoveLeadingSlash(file.Path())),
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Copy copies srcFile to the destination tgtFile within S3.
func (c *DefaultClient) Copy(srcFile, tgtFile blobfs.File) error {
	srcKey := utils.RemoveLeadingSlash(srcFile.Path())
	copySource := srcFile.Location().Volume() + "/" + url.QueryEscape(srcKey)
	_, err := c.s3Client.CopyObject(context.Background(), &awss3.CopyObjectInput{
		Bucket:     aws.String(tgtFile.Location().Volume()),
		Key:        aws.String(utils.RemoveLeadingSlash(tgtFile.Path())),
		CopySource: aws.String(copySource),
	})
	return err
}

// List returns the object names directly under the given location, relative to the location's path.  The given
// prefix narrows the listing to names beginning with it.
func (c *DefaultClient) List(l blobfs.Location, prefix string) ([]string, error) {
	fullPrefix := utils.RemoveLeadingSlash(l.Path()) + prefix
	paginator := awss3.NewListObjectsV2Paginator(c.s3Client, &awss3.ListObjectsV2Input{
		Bucket:    aws.String(l.Volume()),
		Prefix:    aws.String(fullPrefix),
		Delimiter: aws.String("/"),
	})

	var list []string
	ctx := context.Background()
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			list = append(list, strings.TrimPrefix(*obj.Key, utils.RemoveLeadingSlash(l.Path())))
		}
	}
	return list, nil
}

// ListAll returns every object name under the given location, relative to the location's path, including objects
// in virtual subdirectories.
func (c *DefaultClient) ListAll(l blobfs.Location) ([]string, error) {
	fullPrefix := utils.RemoveLeadingSlash(l.Path())
	paginator := awss3.NewListObjectsV2Paginator(c.s3Client, &awss3.ListObjectsV2Input{
		Bucket: aws.String(l.Volume()),
		Prefix: aws.String(fullPrefix),
	})

	var list []string
	ctx := context.Background()
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			list = append(list, strings.TrimPrefix(*obj.Key, fullPrefix))
		}
	}
	return list, nil
}

// Delete deletes the given file from S3.
func (c *DefaultClient) Delete(file blobfs.File) error {
	_, err := c.s3Client.DeleteObject(context.Background(), &awss3.DeleteObjectInput{
		Bucket: aws.String(file.Location().Volume()),
		Key:    aws.String(utils.RemoveLeadingSlash(file.Path())),
	})
	return err
}

// SignedURL returns a presigned GET URL for the given file that expires after validFor.
func (c *DefaultClient) SignedURL(file blobfs.File, validFor time.Duration) (string, error) {
	req, err := c.presignClient.PresignGetObject(context.Background(), &awss3.GetObjectInput{
		Bucket: aws.String(file.Location().Volume()),
		Key:    aws.String(utils.RemoveLeadingSlash(file.Path())),
	}, awss3.WithPresignExpires(validFor))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
