package commission

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"commission-comparer/core/reconcile"
	"commission-comparer/core/storage"

	"facette.io/natsort"
	"github.com/minio/minio-go/v7"
)

var (
	_ reconcile.Source = (*DirSource)(nil)
	_ reconcile.Source = (*BucketSource)(nil)
)

// DirSource reads statement documents from a local directory. Sub-directories
// and hidden files are ignored.
type DirSource struct {
	dir string
}

// NewDirSource creates a source over dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

func (s *DirSource) Name() string { return s.dir }

func (s *DirSource) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	natsort.Sort(names)
	return names, nil
}

func (s *DirSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.dir, filepath.Base(name)))
}

// BucketSource reads statement documents stored under a prefix of an object
// storage bucket.
type BucketSource struct {
	client storage.Client
	bucket string
	prefix string
}

// NewBucketSource creates a source over bucket/prefix.
func NewBucketSource(client storage.Client, bucket, prefix string) *BucketSource {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &BucketSource{client: client, bucket: bucket, prefix: prefix}
}

func (s *BucketSource) Name() string { return s.bucket + "/" + s.prefix }

// List returns object names relative to the prefix. Objects in nested
// folders are included with their relative path.
func (s *BucketSource) List(ctx context.Context) ([]string, error) {
	opts := minio.ListObjectsOptions{Prefix: s.prefix, Recursive: true}

	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", s.Name(), obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, s.prefix)
		if name == "" || strings.HasSuffix(name, "/") {
			continue
		}
		names = append(names, name)
	}
	natsort.Sort(names)
	return names, nil
}

func (s *BucketSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.client.GetObject(ctx, s.bucket, s.prefix+name, minio.GetObjectOptions{})
}
