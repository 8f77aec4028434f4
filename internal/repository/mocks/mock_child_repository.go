package mocks

import (
	"context"

	"docgate/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockChildRepository struct {
	mock.Mock
}

func (m *MockChildRepository) ListByGuardian(ctx context.Context, uid string, limit int) ([]model.Child, error) {
	args := m.Called(ctx, uid, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Child), args.Error(1)
}

func (m *MockChildRepository) ListByScopes(ctx context.Context, scopes []model.Scope, limit int) ([]model.Child, error) {
	args := m.Called(ctx, scopes, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Child), args.Error(1)
}
