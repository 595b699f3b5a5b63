package export

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

const (
	DefaultRegion = "us-east-1" // Default region if not specified in AWS profile
	xlsxMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ObjectPutter is the subset of the S3 client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Publisher struct {
	client ObjectPutter
	bucket string
	prefix string
}

func NewS3Publisher(client ObjectPutter, bucket, prefix string) *S3Publisher {
	return &S3Publisher{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// LoadS3Publisher builds a publisher from the shared AWS config of the given profile.
func LoadS3Publisher(ctx context.Context, profile, bucket, prefix string) (*S3Publisher, error) {
	opts := []func(*config.LoadOptions) error{config.WithDefaultRegion(DefaultRegion)}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return NewS3Publisher(s3.NewFromConfig(awsCfg), bucket, prefix), nil
}

// Publish uploads the file at filePath and returns its s3:// location.
func (p *S3Publisher) Publish(ctx context.Context, filePath string) (string, error) {
	if p.bucket == "" {
		return "", fmt.Errorf("s3 bucket is not configured")
	}

	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", filePath, err)
	}
	defer f.Close()

	key := path.Join(p.prefix, filepath.Base(filePath))
	input := &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if strings.EqualFold(filepath.Ext(filePath), ".xlsx") {
		input.ContentType = aws.String(xlsxMediaType)
	}

	if _, err := p.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("upload %s to bucket %s: %w", key, p.bucket, err)
	}

	location := fmt.Sprintf("s3://%s/%s", p.bucket, key)
	zerolog.Ctx(ctx).Info().Str("location", location).Msg("report published")
	return location, nil
}
