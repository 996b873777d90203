package reconcile

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingExtractor struct {
	lineExtractor
	calls atomic.Int32
	err   error
}

func (c *countingExtractor) Extract(name string, content []byte) (*Document, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return c.lineExtractor.Extract(name, content)
}

func TestDocumentCache_ReusesExtraction(t *testing.T) {
	cache := NewDocumentCache(time.Minute)
	ex := &countingExtractor{}

	first, err := cache.GetOrExtract(ex, "a_1.txt", []byte("to=ACME\n1,$5"))
	require.NoError(t, err)
	second, err := cache.GetOrExtract(ex, "a_1.txt", []byte("to=ACME\n1,$5"))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), ex.calls.Load())
	assert.Equal(t, 1, cache.Len())

	_, err = cache.GetOrExtract(ex, "a_1.txt", []byte("to=ACME\n1,$6"))
	require.NoError(t, err)
	assert.Equal(t, int32(2), ex.calls.Load())
}

func TestDocumentCache_KeysByNameAndContent(t *testing.T) {
	cache := NewDocumentCache(time.Minute)
	ex := &countingExtractor{}

	_, err := cache.GetOrExtract(ex, "a_1.txt", []byte("to=ACME"))
	require.NoError(t, err)
	_, err = cache.GetOrExtract(ex, "a_1.tx", []byte("tto=ACME"))
	require.NoError(t, err)

	assert.Equal(t, int32(2), ex.calls.Load())
	assert.Equal(t, 2, cache.Len())
}

func TestDocumentCache_ZeroTTLDisablesCaching(t *testing.T) {
	cache := NewDocumentCache(0)
	ex := &countingExtractor{}

	for i := 0; i < 3; i++ {
		_, err := cache.GetOrExtract(ex, "a_1.txt", []byte("to=ACME"))
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), ex.calls.Load())

	cache.Purge()
	assert.Equal(t, 0, cache.Len())
}

func TestDocumentCache_ErrorsNotCached(t *testing.T) {
	cache := NewDocumentCache(time.Minute)
	ex := &countingExtractor{err: errors.New("boom")}

	_, err := cache.GetOrExtract(ex, "a_1.txt", []byte("x"))
	assert.Error(t, err)
	_, err = cache.GetOrExtract(ex, "a_1.txt", []byte("x"))
	assert.Error(t, err)

	assert.Equal(t, int32(2), ex.calls.Load())
	assert.Equal(t, 0, cache.Len())
}

func TestDocumentCache_ConcurrentLookups(t *testing.T) {
	cache := NewDocumentCache(time.Minute)
	ex := &countingExtractor{}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.GetOrExtract(ex, "a_1.txt", []byte("to=ACME\n1,$5"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ex.calls.Load())
}
