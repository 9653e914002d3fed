package contract

import (
	"context"

	"github.com/kaihendry/setupdeps/schema"
	"github.com/stretchr/testify/mock"
)

// MockCommandRunner is a mock implementation of CommandRunner for testing.
type MockCommandRunner struct {
	mock.Mock
}

var _ CommandRunner = &MockCommandRunner{} // Compile-time check

// Run implements the CommandRunner interface.
func (m *MockCommandRunner) Run(ctx context.Context, check bool, name string, args ...string) (CommandResult, error) {
	mockArgs := []any{ctx, check, name}
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	result, _ := ret.Get(0).(CommandResult)
	return result, ret.Error(1)
}

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// CurrentBranch implements the GitClient interface.
func (m *MockGitClient) CurrentBranch(ctx context.Context) (string, error) {
	ret := m.Called(ctx)
	return ret.String(0), ret.Error(1)
}

// RemoteBranchExists implements the GitClient interface.
func (m *MockGitClient) RemoteBranchExists(ctx context.Context, repoURL string, branch string) (bool, error) {
	ret := m.Called(ctx, repoURL, branch)
	return ret.Bool(0), ret.Error(1)
}

// Clone implements the GitClient interface.
func (m *MockGitClient) Clone(ctx context.Context, repoURL string, dest string, ref string) error {
	ret := m.Called(ctx, repoURL, dest, ref)
	return ret.Error(0)
}

// MockPackageManager is a mock implementation of PackageManager for testing.
type MockPackageManager struct {
	mock.Mock
}

var _ PackageManager = &MockPackageManager{} // Compile-time check

// AddEditable implements the PackageManager interface.
func (m *MockPackageManager) AddEditable(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

// Sync implements the PackageManager interface.
func (m *MockPackageManager) Sync(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockConfigReader is a mock implementation of ConfigReader for testing.
type MockConfigReader struct {
	mock.Mock
}

var _ ConfigReader = &MockConfigReader{} // Compile-time check

// Lookup implements the ConfigReader interface.
func (m *MockConfigReader) Lookup(key string) (string, bool, error) {
	ret := m.Called(key)
	return ret.String(0), ret.Bool(1), ret.Error(2)
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ HistoryStore = &MockHistoryStore{} // Compile-time check

// RecordRun implements the HistoryStore interface.
func (m *MockHistoryStore) RecordRun(record schema.RunRecord) (int64, error) {
	ret := m.Called(record)
	id, _ := ret.Get(0).(int64)
	return id, ret.Error(1)
}

// ListRuns implements the HistoryStore interface.
func (m *MockHistoryStore) ListRuns(limit int) ([]schema.RunRecord, error) {
	ret := m.Called(limit)
	runs, _ := ret.Get(0).([]schema.RunRecord)
	return runs, ret.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	ret := m.Called()
	status, _ := ret.Get(0).(schema.HistoryStatus)
	return status, ret.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	return m.Called().Error(0)
}
