package report

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"commission-comparer/core/reconcile"
	"commission-comparer/core/storage"

	"github.com/minio/minio-go/v7"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Publisher uploads report workbooks to object storage.
type Publisher struct {
	client storage.Client
	bucket string
	prefix string
}

// NewPublisher creates a publisher writing under reports/ in bucket.
func NewPublisher(client storage.Client, bucket string) *Publisher {
	return &Publisher{client: client, bucket: bucket, prefix: "reports"}
}

// ObjectName returns the object a run's workbook is stored at.
func (p *Publisher) ObjectName(kind, runID string) string {
	return path.Join(p.prefix, kind, runID+".xlsx")
}

// Publish renders the workbook and uploads it, returning the object name.
func (p *Publisher) Publish(ctx context.Context, runID string, rep *reconcile.Report) (string, error) {
	if err := storage.EnsureBucket(ctx, p.client, p.bucket, ""); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, runID, rep); err != nil {
		return "", err
	}

	object := p.ObjectName(rep.Kind, runID)
	size := int64(buf.Len())
	_, err := p.client.PutObject(ctx, p.bucket, object, &buf, size, minio.PutObjectOptions{ContentType: contentTypeXLSX})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", object, err)
	}
	return object, nil
}
