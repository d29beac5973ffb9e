package store

import (
	"context"

	"blocgdp/internal/model"
)

type Store interface {
	UpsertDecadeRows(ctx context.Context, rows []model.DecadeRow) error
	ListDecadeRows(ctx context.Context) ([]model.DecadeRow, error)
	Close() error
}

// NopStore is used when persistence is disabled.
type NopStore struct{}

func (s *NopStore) UpsertDecadeRows(ctx context.Context, rows []model.DecadeRow) error {
	_ = ctx
	_ = rows
	return nil
}

func (s *NopStore) ListDecadeRows(ctx context.Context) ([]model.DecadeRow, error) {
	_ = ctx
	return nil, nil
}

func (s *NopStore) Close() error {
	return nil
}
