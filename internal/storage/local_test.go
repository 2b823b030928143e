package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStorePut(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStore(dir, "http://localhost:5001/")
	require.NoError(t, err)

	loc, err := s.Put(context.Background(), "signed_123.pdf", []byte("pdf bytes"), "application/pdf")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:5001/uploads/signed_123.pdf", loc)

	data, err := os.ReadFile(filepath.Join(dir, "signed_123.pdf"))
	require.NoError(t, err)
	require.Equal(t, "pdf bytes", string(data))
}

func TestLocalStorePutStripsPath(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "http://localhost:5001")
	require.NoError(t, err)

	loc, err := s.Put(context.Background(), "../escape.pdf", []byte("x"), "application/pdf")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:5001/uploads/escape.pdf", loc)

	_, err = os.Stat(filepath.Join(dir, "escape.pdf"))
	require.NoError(t, err)
}
