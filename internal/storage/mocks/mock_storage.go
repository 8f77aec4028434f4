package mocks

import (
	"context"

	"docgate/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Stat(ctx context.Context, bucket, key string) (storage.ObjectAttrs, error) {
	args := m.Called(ctx, bucket, key)
	return args.Get(0).(storage.ObjectAttrs), args.Error(1)
}

func (m *MockObjectStore) SignedGet(ctx context.Context, bucket, key string, opt storage.SignOptions) (string, error) {
	args := m.Called(ctx, bucket, key, opt)
	return args.String(0), args.Error(1)
}
