package testutil

import (
	"context"

	"github.com/shauryashaurya/lkci/internal/store"
	"github.com/stretchr/testify/mock"
)

type MockProjectStore struct {
	mock.Mock
}

func (m *MockProjectStore) ReadProject(ctx context.Context) (*store.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Project), args.Error(1)
}

func (m *MockProjectStore) WriteProject(ctx context.Context, p *store.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
