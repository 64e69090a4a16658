package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmorgan81/wastebot/internal/log"
	"github.com/samber/do"
)

const s3Scheme = "s3://"

type S3Downloader struct {
	Client *s3.Client
}

func NewDownloader(i *do.Injector) (Downloader, error) {
	return &Router{
		S3:   &S3Downloader{Client: do.MustInvoke[*s3.Client](i)},
		File: &FileDownloader{},
	}, nil
}

func (d *S3Downloader) Download(ctx context.Context, location string) ([]byte, error) {
	bucket, key, err := ParseS3URI(location)
	if err != nil {
		return nil, err
	}

	log := log.FromContextOrDiscard(ctx).WithGroup("s3").With("bucket", bucket, "key", key)
	log.Info("downloading from s3")

	out, err := d.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

// ParseS3URI splits s3://bucket/key into its bucket and key.
func ParseS3URI(location string) (string, string, error) {
	rest, ok := strings.CutPrefix(location, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an s3 uri: %q", location)
	}
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 uri needs a bucket and a key: %q", location)
	}
	return bucket, key, nil
}
