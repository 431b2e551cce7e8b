package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"proforma-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PdfArchiver uploads generated quotation PDFs to an S3-compatible bucket.
// When no credentials are configured it stays disabled and uploads are no-ops,
// so local-disk PDFs keep working without a bucket.
type PdfArchiver struct {
	client *s3.Client
	bucket string
}

// NewPdfArchiver builds an archiver from config. Returns a disabled archiver
// when the access key is empty.
func NewPdfArchiver(cfg *config.Config) *PdfArchiver {
	if cfg.Storage.AccessKey == "" {
		return &PdfArchiver{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Storage.Region),
	)
	if err != nil {
		log.Printf("[Storage] Failed to configure archive client: %v", err)
		return &PdfArchiver{}
	}

	endpoint := cfg.Storage.Endpoint
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &PdfArchiver{client: client, bucket: cfg.Storage.Bucket}
}

// Enabled reports whether uploads will actually happen
func (a *PdfArchiver) Enabled() bool {
	return a.client != nil
}

// Archive uploads a local PDF file under pdfs/<basename> in the bucket
func (a *PdfArchiver) Archive(ctx context.Context, filePath string) error {
	if a.client == nil {
		return nil
	}

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open pdf for archive: %w", err)
	}
	defer f.Close()

	key := "pdfs/" + filepath.Base(filePath)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("failed to archive pdf: %w", err)
	}

	return nil
}
