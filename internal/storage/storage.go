// Package storage keeps resume files in Cloudflare R2 through the S3 API.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/muhammadolammi/atcampus/internal/config"
)

const (
	MimeText = "text/plain"
	MimePDF  = "application/pdf"
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	MaxResumeBytes = 5 << 20
)

// SupportedMime reports whether resumes of this type can be screened.
func SupportedMime(mime string) bool {
	switch mime {
	case MimeText, MimePDF, MimeDocx:
		return true
	}
	return false
}

// ResumeKey is the object key for a student's resume on one job. A student
// applies to a job at most once, so the key is stable.
func ResumeKey(jobID, studentID uuid.UUID, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "resume"
	}
	return fmt.Sprintf("resumes/%s/%s/%s", jobID, studentID, name)
}

type Bucket interface {
	Upload(ctx context.Context, key, mime string, body []byte) error
	Download(ctx context.Context, key string) ([]byte, error)
}

type R2Bucket struct {
	client *s3.Client
	bucket string
}

func NewR2Bucket(ctx context.Context, r2 config.R2Config) (*R2Bucket, error) {
	awsConfig, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r2.AccessKey, r2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating aws config: %w", err)
	}
	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(r2.Endpoint())
	})
	return &R2Bucket{client: client, bucket: r2.Bucket}, nil
}

func (b *R2Bucket) Upload(ctx context.Context, key, mime string, body []byte) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(mime),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}

func (b *R2Bucket) Download(ctx context.Context, key string) ([]byte, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	_, err = io.Copy(buf, out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}
