//	mockgen -source=internal/usecase/interfaces.go -destination=internal/usecase/mocks/mock_interfaces.go -package=mocks
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	domain "github.com/iho/ledgerclient/internal/domain"
	usecase "github.com/iho/ledgerclient/internal/usecase"
	gomock "go.uber.org/mock/gomock"
)

// MockEntryGateway is a mock of EntryGateway interface.
type MockEntryGateway struct {
	ctrl     *gomock.Controller
	recorder *MockEntryGatewayMockRecorder
	isgomock struct{}
}

// MockEntryGatewayMockRecorder is the mock recorder for MockEntryGateway.
type MockEntryGatewayMockRecorder struct {
	mock *MockEntryGateway
}

// NewMockEntryGateway creates a new mock instance.
func NewMockEntryGateway(ctrl *gomock.Controller) *MockEntryGateway {
	mock := &MockEntryGateway{ctrl: ctrl}
	mock.recorder = &MockEntryGatewayMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockEntryGateway) EXPECT() *MockEntryGatewayMockRecorder {
	return m.recorder
}

// InsertEntry mocks base method.
func (m *MockEntryGateway) InsertEntry(ctx context.Context, entry *domain.Entry) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertEntry", ctx, entry)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// InsertEntry indicates an expected call of InsertEntry.
func (mr *MockEntryGatewayMockRecorder) InsertEntry(ctx, entry any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertEntry", reflect.TypeOf((*MockEntryGateway)(nil).InsertEntry), ctx, entry)
}

// UpdateEntry mocks base method.
func (m *MockEntryGateway) UpdateEntry(ctx context.Context, id int64, entry *domain.Entry) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateEntry", ctx, id, entry)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateEntry indicates an expected call of UpdateEntry.
func (mr *MockEntryGatewayMockRecorder) UpdateEntry(ctx, id, entry any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateEntry", reflect.TypeOf((*MockEntryGateway)(nil).UpdateEntry), ctx, id, entry)
}

// GetEntry mocks base method.
func (m *MockEntryGateway) GetEntry(ctx context.Context, id int64) (*domain.Entry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetEntry", ctx, id)
	ret0, _ := ret[0].(*domain.Entry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetEntry indicates an expected call of GetEntry.
func (mr *MockEntryGatewayMockRecorder) GetEntry(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetEntry", reflect.TypeOf((*MockEntryGateway)(nil).GetEntry), ctx, id)
}

// DeleteEntry mocks base method.
func (m *MockEntryGateway) DeleteEntry(ctx context.Context, id int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteEntry", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteEntry indicates an expected call of DeleteEntry.
func (mr *MockEntryGatewayMockRecorder) DeleteEntry(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteEntry", reflect.TypeOf((*MockEntryGateway)(nil).DeleteEntry), ctx, id)
}

// MockLockGateway is a mock of LockGateway interface.
type MockLockGateway struct {
	ctrl     *gomock.Controller
	recorder *MockLockGatewayMockRecorder
	isgomock struct{}
}

// MockLockGatewayMockRecorder is the mock recorder for MockLockGateway.
type MockLockGatewayMockRecorder struct {
	mock *MockLockGateway
}

// NewMockLockGateway creates a new mock instance.
func NewMockLockGateway(ctrl *gomock.Controller) *MockLockGateway {
	mock := &MockLockGateway{ctrl: ctrl}
	mock.recorder = &MockLockGatewayMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockLockGateway) EXPECT() *MockLockGatewayMockRecorder {
	return m.recorder
}

// LockEntry mocks base method.
func (m *MockLockGateway) LockEntry(ctx context.Context, entryID int64) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LockEntry", ctx, entryID)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LockEntry indicates an expected call of LockEntry.
func (mr *MockLockGatewayMockRecorder) LockEntry(ctx, entryID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LockEntry", reflect.TypeOf((*MockLockGateway)(nil).LockEntry), ctx, entryID)
}

// ListLocks mocks base method.
func (m *MockLockGateway) ListLocks(ctx context.Context) ([]domain.Lock, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListLocks", ctx)
	ret0, _ := ret[0].([]domain.Lock)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListLocks indicates an expected call of ListLocks.
func (mr *MockLockGatewayMockRecorder) ListLocks(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListLocks", reflect.TypeOf((*MockLockGateway)(nil).ListLocks), ctx)
}

// DeleteLock mocks base method.
func (m *MockLockGateway) DeleteLock(ctx context.Context, uuid string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteLock", ctx, uuid)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteLock indicates an expected call of DeleteLock.
func (mr *MockLockGatewayMockRecorder) DeleteLock(ctx, uuid any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteLock", reflect.TypeOf((*MockLockGateway)(nil).DeleteLock), ctx, uuid)
}

// MockBalanceGateway is a mock of BalanceGateway interface.
type MockBalanceGateway struct {
	ctrl     *gomock.Controller
	recorder *MockBalanceGatewayMockRecorder
	isgomock struct{}
}

// MockBalanceGatewayMockRecorder is the mock recorder for MockBalanceGateway.
type MockBalanceGatewayMockRecorder struct {
	mock *MockBalanceGateway
}

// NewMockBalanceGateway creates a new mock instance.
func NewMockBalanceGateway(ctrl *gomock.Controller) *MockBalanceGateway {
	mock := &MockBalanceGateway{ctrl: ctrl}
	mock.recorder = &MockBalanceGatewayMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockBalanceGateway) EXPECT() *MockBalanceGatewayMockRecorder {
	return m.recorder
}

// Balances mocks base method.
func (m *MockBalanceGateway) Balances(ctx context.Context, query usecase.BalanceQuery) ([]domain.BalanceSnapshot, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Balances", ctx, query)
	ret0, _ := ret[0].([]domain.BalanceSnapshot)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Balances indicates an expected call of Balances.
func (mr *MockBalanceGatewayMockRecorder) Balances(ctx, query any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Balances", reflect.TypeOf((*MockBalanceGateway)(nil).Balances), ctx, query)
}

// BalancesMulti mocks base method.
func (m *MockBalanceGateway) BalancesMulti(ctx context.Context, query usecase.BalanceMultiQuery) ([][]domain.BalanceSnapshot, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BalancesMulti", ctx, query)
	ret0, _ := ret[0].([][]domain.BalanceSnapshot)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// BalancesMulti indicates an expected call of BalancesMulti.
func (mr *MockBalanceGatewayMockRecorder) BalancesMulti(ctx, query any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BalancesMulti", reflect.TypeOf((*MockBalanceGateway)(nil).BalancesMulti), ctx, query)
}

// CheckBalance mocks base method.
func (m *MockBalanceGateway) CheckBalance(ctx context.Context) (*usecase.BalanceCheck, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CheckBalance", ctx)
	ret0, _ := ret[0].(*usecase.BalanceCheck)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CheckBalance indicates an expected call of CheckBalance.
func (mr *MockBalanceGatewayMockRecorder) CheckBalance(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CheckBalance", reflect.TypeOf((*MockBalanceGateway)(nil).CheckBalance), ctx)
}
