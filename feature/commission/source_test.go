package commission

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"commission-comparer/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"doc10.html", "doc2.html", ".DS_Store"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o700))

	src := NewDirSource(dir)
	names, err := src.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"doc2.html", "doc10.html"}, names)

	rc, err := src.Open(context.Background(), "doc2.html")
	require.NoError(t, err)
	defer rc.Close()
	content, _ := io.ReadAll(rc)
	assert.Equal(t, "doc2.html", string(content))

	_, err = NewDirSource(filepath.Join(dir, "missing")).List(context.Background())
	assert.Error(t, err)
}

func objects(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func TestBucketSource(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "commissions", minio.ListObjectsOptions{Prefix: "loankit/", Recursive: true}).
		Return(objects(
			minio.ObjectInfo{Key: "loankit/b_10.html"},
			minio.ObjectInfo{Key: "loankit/"},
			minio.ObjectInfo{Key: "loankit/b_9.html"},
		))
	client.On("GetObject", mock.Anything, "commissions", "loankit/b_9.html", mock.Anything).
		Return(io.NopCloser(strings.NewReader("content")), nil)

	src := NewBucketSource(client, "commissions", "loankit")
	assert.Equal(t, "commissions/loankit/", src.Name())

	names, err := src.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b_9.html", "b_10.html"}, names)

	rc, err := src.Open(ctx, "b_9.html")
	require.NoError(t, err)
	content, _ := io.ReadAll(rc)
	assert.Equal(t, "content", string(content))
}

func TestBucketSource_ListError(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "commissions", mock.Anything).
		Return(objects(minio.ObjectInfo{Err: errors.New("access denied")}))

	_, err := NewBucketSource(client, "commissions", "infynity/").List(context.Background())
	assert.ErrorContains(t, err, "access denied")
}
