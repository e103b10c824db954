package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	return s
}

func TestLocalStorageUploadDownload(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	path, err := s.Upload(ctx, strings.NewReader("hello"), "documents/test.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "documents/test.pdf", path)

	exists, err := s.Exists(ctx, "documents/test.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Download(ctx, "documents/test.pdf")
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestLocalStorageDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	_, err := s.Upload(ctx, strings.NewReader("data"), "personal/u1/doc.pdf", "application/pdf")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "personal/u1/doc.pdf"))

	exists, err := s.Exists(ctx, "personal/u1/doc.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	_, err := s.Upload(ctx, strings.NewReader("x"), "../outside.txt", "text/plain")
	assert.Error(t, err)
}

func TestLocalStorageGetURL(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	url, err := s.GetURL(ctx, "documents/test.pdf", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/documents/test.pdf", url)
}
