package commands_test

import (
	"context"
	"time"

	"returns/internal/core/application/usecases/commands"
	"returns/internal/core/domain/model/kernel"
	"returns/internal/core/domain/model/rescase"
	"returns/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockCaseRepository struct{ mock.Mock }

func (m *MockCaseRepository) Add(ctx context.Context, c *rescase.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCaseRepository) Update(ctx context.Context, c *rescase.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCaseRepository) Get(ctx context.Context, parcelID, caseID kernel.UUID) (*rescase.Case, error) {
	args := m.Called(ctx, parcelID, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rescase.Case), args.Error(1)
}

func (m *MockCaseRepository) GetOpenByParcel(ctx context.Context, parcelID kernel.UUID) (*rescase.Case, error) {
	args := m.Called(ctx, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rescase.Case), args.Error(1)
}

func (m *MockCaseRepository) GetAllByParcel(ctx context.Context, parcelID kernel.UUID) ([]*rescase.Case, error) {
	args := m.Called(ctx, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rescase.Case), args.Error(1)
}

type MockIdempotencyRepository struct{ mock.Mock }

func (m *MockIdempotencyRepository) Get(ctx context.Context, key string) (ports.IdempotencyRecord, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(ports.IdempotencyRecord), args.Error(1)
}

func (m *MockIdempotencyRepository) Add(ctx context.Context, record ports.IdempotencyRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockIdempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockCaseUoW struct{ mock.Mock }

func (m *MockCaseUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCaseUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCaseUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCaseUoW) CaseRepository() ports.CaseRepository {
	args := m.Called()
	return args.Get(0).(ports.CaseRepository)
}

type MockUoW struct{ MockCaseUoW }

func (m *MockUoW) IdempotencyRepository() ports.IdempotencyRepository {
	args := m.Called()
	return args.Get(0).(ports.IdempotencyRepository)
}

type MockCaseUoWFactory struct{ mock.Mock }

func (m *MockCaseUoWFactory) Create() commands.CaseUoW {
	args := m.Called()
	return args.Get(0).(commands.CaseUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockParcelEligibility struct{ mock.Mock }

func (m *MockParcelEligibility) CanRegisterReturn(ctx context.Context, parcelID kernel.UUID) (bool, error) {
	args := m.Called(ctx, parcelID)
	return args.Bool(0), args.Error(1)
}

type MockExchangeParcelFactory struct{ mock.Mock }

func (m *MockExchangeParcelFactory) Create(ctx context.Context, parcelID kernel.UUID) (ports.ExchangeParcelSummary, error) {
	args := m.Called(ctx, parcelID)
	return args.Get(0).(ports.ExchangeParcelSummary), args.Error(1)
}

type MockExchangeParcelTracker struct{ mock.Mock }

func (m *MockExchangeParcelTracker) IsDispatched(ctx context.Context, exchangeParcelID kernel.UUID) (bool, error) {
	args := m.Called(ctx, exchangeParcelID)
	return args.Bool(0), args.Error(1)
}

type MockCaseEventPublisher struct{ mock.Mock }

func (m *MockCaseEventPublisher) PublishCaseChanged(ctx context.Context, event ports.CaseChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
