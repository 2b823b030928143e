package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bolosign/bolosign/backend/go-services/internal/audit"
	"github.com/bolosign/bolosign/backend/go-services/internal/audit/repository"
)

var (
	ErrNotFound = errors.New("not found")
)

// Service defines the audit-trail operations used by the handler layer.
// Records are created once after a successful pass and never modified.
type Service interface {
	Record(ctx context.Context, rec *audit.Record) (string, error)
	Lookup(ctx context.Context, id string) (*audit.Record, error)
}

type repo interface {
	Create(ctx context.Context, rec *audit.Record) (string, error)
	Get(ctx context.Context, id string) (*audit.Record, error)
}

type service struct {
	repo repo
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return &service{repo: repository.NewMemoryRepo()}
}

// NewMongoService returns a Service backed by a MongoDB collection. The
// caller owns the client lifecycle.
func NewMongoService(col *mongo.Collection) Service {
	return &service{repo: repository.NewMongoRepo(col)}
}

func (s *service) Record(ctx context.Context, rec *audit.Record) (string, error) {
	return s.repo.Create(ctx, rec)
}

func (s *service) Lookup(ctx context.Context, id string) (*audit.Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}
