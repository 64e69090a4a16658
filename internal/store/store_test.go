package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDownloader struct {
	locations []string
}

func (d *recordingDownloader) Download(_ context.Context, location string) ([]byte, error) {
	d.locations = append(d.locations, location)
	return []byte(location), nil
}

func TestParseS3URI(t *testing.T) {
	bucket, key, err := ParseS3URI("s3://profiles/wastebot/detailed.yaml")
	require.NoError(t, err)
	assert.Equal(t, "profiles", bucket)
	assert.Equal(t, "wastebot/detailed.yaml", key)

	for _, bad := range []string{"profiles/detailed.yaml", "s3://", "s3://profiles", "s3://profiles/", "s3:///key"} {
		_, _, err := ParseS3URI(bad)
		assert.Error(t, err, bad)
	}
}

func TestRouter(t *testing.T) {
	s3, file := &recordingDownloader{}, &recordingDownloader{}
	router := &Router{S3: s3, File: file}

	_, err := router.Download(context.Background(), "s3://bucket/key.yaml")
	require.NoError(t, err)
	_, err = router.Download(context.Background(), "/etc/wastebot/profile.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"s3://bucket/key.yaml"}, s3.locations)
	assert.Equal(t, []string{"/etc/wastebot/profile.yaml"}, file.locations)
}

func TestFileDownloader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("instructionTemplate: hi\n"), 0600))

	data, err := (&FileDownloader{}).Download(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "instructionTemplate: hi\n", string(data))

	_, err = (&FileDownloader{}).Download(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
