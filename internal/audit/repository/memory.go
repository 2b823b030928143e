package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bolosign/bolosign/backend/go-services/internal/audit"
	"github.com/bolosign/bolosign/backend/go-services/internal/field"
)

var (
	ErrNotFound = errors.New("audit record not found")
)

// MemoryRepo is an in-memory record store used when no MongoDB is
// configured and in unit tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*audit.Record
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*audit.Record)}
}

func (m *MemoryRepo) Create(_ context.Context, rec *audit.Record) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.CreatedAt = time.Now()

	// store a snapshot so later mutation of the caller's slice cannot
	// change the record
	cp := *rec
	cp.Fields = append([]field.Field(nil), rec.Fields...)
	m.store[cp.ID] = &cp
	return cp.ID, nil
}

func (m *MemoryRepo) Get(_ context.Context, id string) (*audit.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.store[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, ErrNotFound
}
