package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bolosign/bolosign/backend/go-services/internal/audit"
	"github.com/bolosign/bolosign/backend/go-services/internal/field"
)

func TestMemoryRepoCreateGet(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	rec := &audit.Record{
		DocumentRef:    "sample.pdf",
		OriginalDigest: "aaa",
		SignedDigest:   "bbb",
		OutputLocation: "http://localhost:5001/uploads/signed_1.pdf",
		Fields: []field.Field{
			{ID: "f1", Type: field.TypeText, X: 1, Y: 2, Width: 3, Height: 4, Page: 1, Value: "Alice"},
		},
	}
	id, err := r.Create(ctx, rec)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "aaa", got.OriginalDigest)
	require.Equal(t, "bbb", got.SignedDigest)
	require.Len(t, got.Fields, 1)
	require.False(t, got.CreatedAt.IsZero())
}

func TestMemoryRepoSnapshotsFields(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	fields := []field.Field{{ID: "f1", Type: field.TypeText, Width: 1, Height: 1, Page: 1, Value: "v"}}
	id, err := r.Create(ctx, &audit.Record{DocumentRef: "d", Fields: fields})
	require.NoError(t, err)

	// mutating the caller's slice must not reach the stored record
	fields[0].Value = "tampered"
	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, field.Value("v"), got.Fields[0].Value)
}

func TestMemoryRepoNotFound(t *testing.T) {
	r := NewMemoryRepo()
	_, err := r.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
