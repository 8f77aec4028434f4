package mocks

import (
	"context"

	"docgate/internal/auth"
	"docgate/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockDocumentAccessService struct {
	mock.Mock
}

func (m *MockDocumentAccessService) Access(ctx context.Context, ident auth.Identity, req service.AccessRequest) (*service.AccessGrant, error) {
	args := m.Called(ctx, ident, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AccessGrant), args.Error(1)
}
