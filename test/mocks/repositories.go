package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"labelguard/domain/grounding"
	"labelguard/domain/labels"
)

// MockLabelRepository implements LabelRepository for testing
type MockLabelRepository struct {
	mock.Mock
}

func (m *MockLabelRepository) GetByID(ctx context.Context, id string) (*labels.Label, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*labels.Label), args.Error(1)
}

func (m *MockLabelRepository) GetByName(ctx context.Context, name string) (*labels.Label, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*labels.Label), args.Error(1)
}

func (m *MockLabelRepository) GetByPriority(ctx context.Context, tier labels.PriorityTier) ([]*labels.Label, error) {
	args := m.Called(ctx, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*labels.Label), args.Error(1)
}

func (m *MockLabelRepository) GetAll(ctx context.Context) ([]*labels.Label, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*labels.Label), args.Error(1)
}

func (m *MockLabelRepository) Create(ctx context.Context, label *labels.Label) (*labels.Label, error) {
	args := m.Called(ctx, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*labels.Label), args.Error(1)
}

func (m *MockLabelRepository) Update(ctx context.Context, label *labels.Label) (*labels.Label, error) {
	args := m.Called(ctx, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*labels.Label), args.Error(1)
}

func (m *MockLabelRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockGroundingRepository implements GroundingRepository for testing
type MockGroundingRepository struct {
	mock.Mock
}

func (m *MockGroundingRepository) GetByID(ctx context.Context, id string) (*grounding.GroundingData, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grounding.GroundingData), args.Error(1)
}

func (m *MockGroundingRepository) ListAll(ctx context.Context) ([]*grounding.GroundingData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*grounding.GroundingData), args.Error(1)
}

func (m *MockGroundingRepository) Save(ctx context.Context, data *grounding.GroundingData) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *MockGroundingRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockEncryptor implements Encryptor for testing
type MockEncryptor struct {
	mock.Mock
}

func (m *MockEncryptor) ShouldEncrypt(label *labels.Label) bool {
	args := m.Called(label)
	return args.Bool(0)
}

func (m *MockEncryptor) Encrypt(content string, label *labels.Label) (string, error) {
	args := m.Called(content, label)
	return args.String(0), args.Error(1)
}

func (m *MockEncryptor) Decrypt(ciphertext string, label *labels.Label) (string, error) {
	args := m.Called(ciphertext, label)
	return args.String(0), args.Error(1)
}

func (m *MockEncryptor) CanDecrypt(ciphertext string, label *labels.Label) bool {
	args := m.Called(ciphertext, label)
	return args.Bool(0)
}
