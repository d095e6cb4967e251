package engine

import (
	"context"

	"github.com/stretchr/testify/mock"

	"price-tracker-bot/internal/fetch"
	"price-tracker-bot/internal/notify"
	"price-tracker-bot/internal/store"
	domain "price-tracker-bot/pkg/types"
)

// MockStore is a testify mock of store.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateItem(ctx context.Context, item *domain.TrackingItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStore) GetItem(ctx context.Context, chatID, itemID int64) (*domain.TrackingItem, error) {
	args := m.Called(ctx, chatID, itemID)
	if item, ok := args.Get(0).(*domain.TrackingItem); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) ListByChat(ctx context.Context, chatID int64) ([]domain.TrackingItem, error) {
	args := m.Called(ctx, chatID)
	if items, ok := args.Get(0).([]domain.TrackingItem); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) ListActive(ctx context.Context) ([]domain.TrackingItem, error) {
	args := m.Called(ctx)
	if items, ok := args.Get(0).([]domain.TrackingItem); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) DeleteItem(ctx context.Context, chatID, itemID int64) (bool, error) {
	args := m.Called(ctx, chatID, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) SetActive(ctx context.Context, chatID, itemID int64, active bool) (bool, error) {
	args := m.Called(ctx, chatID, itemID, active)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) SetThreshold(ctx context.Context, chatID, itemID int64, pct float64) (bool, error) {
	args := m.Called(ctx, chatID, itemID, pct)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) SetCachedImage(ctx context.Context, chatID, itemID int64, fileID string) (bool, error) {
	args := m.Called(ctx, chatID, itemID, fileID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) UpdateLastPrice(ctx context.Context, itemID int64, price float64) (bool, error) {
	args := m.Called(ctx, itemID, price)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) Begin(ctx context.Context) (store.UnitOfWork, error) {
	args := m.Called(ctx)
	if uow, ok := args.Get(0).(store.UnitOfWork); ok {
		return uow, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) InsertSweepRun(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) CompleteSweepRun(
	ctx context.Context,
	id string,
	status domain.SweepStatus,
	errText string,
	checked, updated, notified int,
) error {
	args := m.Called(ctx, id, status, errText, checked, updated, notified)
	return args.Error(0)
}

func (m *MockStore) ListSweepRuns(ctx context.Context, limit int) ([]domain.SweepRun, error) {
	args := m.Called(ctx, limit)
	if runs, ok := args.Get(0).([]domain.SweepRun); ok {
		return runs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) Migrate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockUnitOfWork is a testify mock of store.UnitOfWork.
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) UpdateLastPrice(ctx context.Context, itemID int64, price float64) (bool, error) {
	args := m.Called(ctx, itemID, price)
	return args.Bool(0), args.Error(1)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockFetcher is a testify mock of fetch.Fetcher.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (*fetch.ProductInfo, error) {
	args := m.Called(ctx, url)
	if info, ok := args.Get(0).(*fetch.ProductInfo); ok {
		return info, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockNotifier is a testify mock of notify.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendPriceDrop(ctx context.Context, drop *notify.PriceDrop) error {
	args := m.Called(ctx, drop)
	return args.Error(0)
}
