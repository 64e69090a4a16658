package store

import (
	"context"
	"os"
	"strings"

	"github.com/dmorgan81/wastebot/internal/log"
)

type Downloader interface {
	Download(context.Context, string) ([]byte, error)
}

type FileDownloader struct{}

func (*FileDownloader) Download(ctx context.Context, location string) ([]byte, error) {
	log.FromContextOrDiscard(ctx).WithGroup("file").Info("reading", "file", location)
	return os.ReadFile(location)
}

// Router sends s3:// locations to S3 and everything else to File.
type Router struct {
	S3   Downloader
	File Downloader
}

func (r *Router) Download(ctx context.Context, location string) ([]byte, error) {
	if strings.HasPrefix(location, s3Scheme) {
		return r.S3.Download(ctx, location)
	}
	return r.File.Download(ctx, location)
}
