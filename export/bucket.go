package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Bucket uploads spreadsheets to a Google Cloud Storage bucket.
type Bucket struct {
	bucket *storage.BucketHandle
	name   string
	prefix string
	logger *slog.Logger
}

// NewBucket creates an exporter for bucket name. Objects are stored under
// prefix, which may be empty.
func NewBucket(client *storage.Client, name, prefix string, logger *slog.Logger) *Bucket {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bucket{bucket: client.Bucket(name), name: name, prefix: prefix, logger: logger}
}

// Export implements Exporter. It returns the gs:// URI of the object.
func (b *Bucket) Export(ctx context.Context, key, src string, at time.Time) (string, error) {
	object := path.Join(b.prefix, FileName(key, at))
	err := b.upload(ctx, object, src)
	if isPreconditionFailed(err) {
		renamed := path.Join(b.prefix, CollisionName(key, at))
		b.logger.Warn("Export object already exists; renaming.", "object", object, "renamed", renamed)
		object = renamed
		err = b.upload(ctx, object, src)
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("gs://%s/%s", b.name, object), nil
}

func (b *Bucket) upload(ctx context.Context, object, src string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer f.Close()

	writer := b.bucket.Object(object).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	writer.ContentType = xlsxContentType

	if _, err := io.Copy(writer, f); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize GCS write: %w", err)
	}
	return nil
}

func isPreconditionFailed(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed
}
