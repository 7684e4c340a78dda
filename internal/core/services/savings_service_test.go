package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/savr_backend/internal/apperrors"
	"github.com/SscSPs/savr_backend/internal/core/domain"
	portssvc "github.com/SscSPs/savr_backend/internal/core/ports/services"
	"github.com/SscSPs/savr_backend/internal/core/services"
)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit, offset int, search string) ([]domain.User, int64, error) {
	args := m.Called(ctx, limit, offset, search)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkDeviceVerified(ctx context.Context, userID string, now time.Time) (bool, error) {
	args := m.Called(ctx, userID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdatePushToken(ctx context.Context, userID string, pushToken string, now time.Time) error {
	args := m.Called(ctx, userID, pushToken, now)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiry time.Time, now time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiry, now)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string, now time.Time) error {
	args := m.Called(ctx, userID, now)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string) (*domain.User, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUserBalanceInTx(ctx context.Context, tx pgx.Tx, userID string, newBalance decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, tx, userID, newBalance, now)
	return args.Error(0)
}

// MockLedgerRepository is a mock type for the LedgerRepositoryFacade interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindTransactionsByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerRepository) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.TransactionWithUser, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.TransactionWithUser), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Test Suite Setup ---

type SavingsServiceTestSuite struct {
	suite.Suite
	mockUserRepo   *MockUserRepository
	mockLedgerRepo *MockLedgerRepository
	service        portssvc.SavingsSvcFacade
}

func (suite *SavingsServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewSavingsService(suite.mockUserRepo, suite.mockLedgerRepo)
}

func verifiedUser(userID string, balance decimal.Decimal) *domain.User {
	return &domain.User{
		UserID:         userID,
		FullName:       "Test User",
		Email:          "test@example.com",
		DeviceID:       "device-1",
		DeviceVerified: true,
		Balance:        balance,
	}
}

// --- Test Cases ---

func (suite *SavingsServiceTestSuite) TestDeposit_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	amount := decimal.NewFromInt(50)
	user := verifiedUser(userID, decimal.NewFromInt(100))

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) {
			txn := args.Get(1).(domain.Transaction)
			suite.Equal(domain.Deposit, txn.Type)
			suite.True(txn.Amount.Equal(amount))
			suite.Equal("Deposit of $50.00", txn.Description)
		}).
		Return(&domain.Transaction{
			TransactionID: uuid.NewString(),
			UserID:        userID,
			Type:          domain.Deposit,
			Amount:        amount,
			BalanceAfter:  decimal.NewFromInt(150),
		}, nil).Once()

	txn, err := suite.service.Deposit(ctx, userID, amount)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.True(txn.BalanceAfter.Equal(decimal.NewFromInt(150)))
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *SavingsServiceTestSuite) TestDeposit_NonPositiveAmount() {
	ctx := context.Background()
	userID := uuid.NewString()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		txn, err := suite.service.Deposit(ctx, userID, amount)
		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.Nil(txn)
	}

	// Validation fails before any repository access
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID")
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *SavingsServiceTestSuite) TestDeposit_UserNotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.Deposit(ctx, userID, decimal.NewFromInt(10))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(txn)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *SavingsServiceTestSuite) TestDeposit_DeviceNotVerified() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := verifiedUser(userID, decimal.NewFromInt(100))
	user.DeviceVerified = false

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()

	txn, err := suite.service.Deposit(ctx, userID, decimal.NewFromInt(10))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDeviceNotVerified)
	suite.Nil(txn)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *SavingsServiceTestSuite) TestWithdraw_InsufficientBalance() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := verifiedUser(userID, decimal.NewFromInt(30))

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()

	txn, err := suite.service.Withdraw(ctx, userID, decimal.NewFromInt(50))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.Nil(txn)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *SavingsServiceTestSuite) TestWithdraw_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	amount := decimal.NewFromInt(30)
	user := verifiedUser(userID, decimal.NewFromInt(100))

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) {
			txn := args.Get(1).(domain.Transaction)
			suite.Equal(domain.Withdraw, txn.Type)
			suite.Equal("Withdrawal of $30.00", txn.Description)
		}).
		Return(&domain.Transaction{
			TransactionID: uuid.NewString(),
			UserID:        userID,
			Type:          domain.Withdraw,
			Amount:        amount,
			BalanceAfter:  decimal.NewFromInt(70),
		}, nil).Once()

	txn, err := suite.service.Withdraw(ctx, userID, amount)

	suite.Require().NoError(err)
	suite.True(txn.BalanceAfter.Equal(decimal.NewFromInt(70)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *SavingsServiceTestSuite) TestDeposit_RetriesOnConflict() {
	ctx := context.Background()
	userID := uuid.NewString()
	amount := decimal.NewFromInt(10)
	user := verifiedUser(userID, decimal.NewFromInt(0))

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return(nil, apperrors.ErrConflict).Twice()
	suite.mockLedgerRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return(&domain.Transaction{
			TransactionID: uuid.NewString(),
			UserID:        userID,
			Type:          domain.Deposit,
			Amount:        amount,
			BalanceAfter:  amount,
		}, nil).Once()

	txn, err := suite.service.Deposit(ctx, userID, amount)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.mockLedgerRepo.AssertNumberOfCalls(suite.T(), "SaveTransaction", 3)
}

func (suite *SavingsServiceTestSuite) TestDeposit_ConflictExhaustsRetries() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := verifiedUser(userID, decimal.NewFromInt(0))

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return(nil, apperrors.ErrConflict).Times(3)

	txn, err := suite.service.Deposit(ctx, userID, decimal.NewFromInt(10))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(txn)
	suite.mockLedgerRepo.AssertNumberOfCalls(suite.T(), "SaveTransaction", 3)
}

func (suite *SavingsServiceTestSuite) TestDeposit_StorageUnavailableNotRetried() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := verifiedUser(userID, decimal.NewFromInt(0))

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return(nil, apperrors.ErrStorageUnavailable).Once()

	txn, err := suite.service.Deposit(ctx, userID, decimal.NewFromInt(10))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStorageUnavailable)
	suite.Nil(txn)
	suite.mockLedgerRepo.AssertNumberOfCalls(suite.T(), "SaveTransaction", 1)
}

func (suite *SavingsServiceTestSuite) TestGetBalance_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := verifiedUser(userID, decimal.NewFromFloat(123.45))

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()

	balance, err := suite.service.GetBalance(ctx, userID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromFloat(123.45)))
}

func (suite *SavingsServiceTestSuite) TestVerifyDevice_Idempotent() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := verifiedUser(userID, decimal.Zero)

	// First call flips the flag, second call is a no-op; both succeed and
	// report the same final state.
	suite.mockUserRepo.On("MarkDeviceVerified", ctx, userID, mock.AnythingOfType("time.Time")).
		Return(true, nil).Once()
	suite.mockUserRepo.On("MarkDeviceVerified", ctx, userID, mock.AnythingOfType("time.Time")).
		Return(false, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Twice()

	first, err := suite.service.VerifyDevice(ctx, userID)
	suite.Require().NoError(err)
	suite.True(first.DeviceVerified)

	second, err := suite.service.VerifyDevice(ctx, userID)
	suite.Require().NoError(err)
	suite.True(second.DeviceVerified)

	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *SavingsServiceTestSuite) TestVerifyDevice_UserNotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("MarkDeviceVerified", ctx, userID, mock.AnythingOfType("time.Time")).
		Return(false, apperrors.ErrNotFound).Once()

	user, err := suite.service.VerifyDevice(ctx, userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(user)
}

func TestSavingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SavingsServiceTestSuite))
}

// --- In-memory fakes ---
//
// The mutation path is exercised end to end against a stateful fake that
// honors the same contract as the SQL implementation: one mutex-guarded
// critical section per account that re-validates preconditions, updates the
// balance and appends the ledger entry together.

type fakeStore struct {
	mu    sync.Mutex
	users map[string]*domain.User
	txns  map[string][]domain.Transaction
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: make(map[string]*domain.User),
		txns:  make(map[string][]domain.Transaction),
	}
}

func (f *fakeStore) addUser(user domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := user
	f.users[user.UserID] = &u
}

func (f *fakeStore) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	u := *user
	return &u, nil
}

func (f *fakeStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, apperrors.ErrNotFound
}

func (f *fakeStore) ListUsers(ctx context.Context, limit, offset int, search string) ([]domain.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeStore) SaveUser(ctx context.Context, user domain.User) error {
	f.addUser(user)
	return nil
}

func (f *fakeStore) MarkDeviceVerified(ctx context.Context, userID string, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return false, apperrors.ErrNotFound
	}
	if user.DeviceVerified {
		return false, nil
	}
	user.DeviceVerified = true
	return true, nil
}

func (f *fakeStore) UpdatePushToken(ctx context.Context, userID string, pushToken string, now time.Time) error {
	return nil
}

func (f *fakeStore) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiry time.Time, now time.Time) error {
	return nil
}

func (f *fakeStore) ClearRefreshToken(ctx context.Context, userID string, now time.Time) error {
	return nil
}

func (f *fakeStore) FindUserByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string) (*domain.User, error) {
	return f.FindUserByID(ctx, userID)
}

func (f *fakeStore) UpdateUserBalanceInTx(ctx context.Context, tx pgx.Tx, userID string, newBalance decimal.Decimal, now time.Time) error {
	return nil
}

func (f *fakeStore) FindTransactionsByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.txns[userID]
	total := int64(len(all))

	// Newest first, like the SQL implementation
	ordered := make([]domain.Transaction, len(all))
	for i := range all {
		ordered[i] = all[len(all)-1-i]
	}

	if offset >= len(ordered) {
		return []domain.Transaction{}, total, nil
	}
	end := offset + limit
	if end > len(ordered) {
		end = len(ordered)
	}
	return ordered[offset:end], total, nil
}

func (f *fakeStore) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.TransactionWithUser, int64, error) {
	return nil, 0, nil
}

func (f *fakeStore) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[txn.UserID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if !user.DeviceVerified {
		return nil, apperrors.ErrDeviceNotVerified
	}

	var newBalance decimal.Decimal
	switch txn.Type {
	case domain.Deposit:
		newBalance = user.Balance.Add(txn.Amount)
	case domain.Withdraw:
		if user.Balance.LessThan(txn.Amount) {
			return nil, apperrors.ErrInsufficientBalance
		}
		newBalance = user.Balance.Sub(txn.Amount)
	}

	user.Balance = newBalance
	txn.BalanceAfter = newBalance
	f.txns[txn.UserID] = append(f.txns[txn.UserID], txn)
	return &txn, nil
}

// --- Property-style tests against the fake ---

func TestConcurrentDeposits(t *testing.T) {
	const (
		workers = 25
		amount  = 10
	)

	store := newFakeStore()
	userID := uuid.NewString()
	store.addUser(*verifiedUser(userID, decimal.Zero))

	service := services.NewSavingsService(store, store)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Deposit(ctx, userID, decimal.NewFromInt(amount))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent deposit failed: %v", err)
		}
	}

	balance, err := service.GetBalance(ctx, userID)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	want := decimal.NewFromInt(workers * amount)
	if !balance.Equal(want) {
		t.Fatalf("lost update: balance = %s, want %s", balance, want)
	}

	page, err := service.GetHistory(ctx, userID, 1, 100)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if page.Total != workers {
		t.Fatalf("ledger entries = %d, want %d", page.Total, workers)
	}

	// Every interleaving is serialized, so each BalanceAfter snapshot is a
	// distinct multiple of the deposit amount.
	seen := make(map[string]bool, workers)
	for _, txn := range page.Transactions {
		key := txn.BalanceAfter.String()
		if seen[key] {
			t.Fatalf("duplicate BalanceAfter snapshot %s", key)
		}
		seen[key] = true
	}
}

func TestDepositWithdrawScenario(t *testing.T) {
	store := newFakeStore()
	userID := uuid.NewString()
	store.addUser(*verifiedUser(userID, decimal.NewFromInt(100)))

	service := services.NewSavingsService(store, store)
	ctx := context.Background()

	txn, err := service.Withdraw(ctx, userID, decimal.NewFromInt(30))
	if err != nil {
		t.Fatalf("withdraw 30 failed: %v", err)
	}
	if !txn.BalanceAfter.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("balance after withdrawal = %s, want 70", txn.BalanceAfter)
	}

	txn, err = service.Deposit(ctx, userID, decimal.NewFromInt(50))
	if err != nil {
		t.Fatalf("deposit 50 failed: %v", err)
	}
	if !txn.BalanceAfter.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("balance after deposit = %s, want 120", txn.BalanceAfter)
	}

	if _, err = service.Withdraw(ctx, userID, decimal.NewFromInt(200)); err == nil {
		t.Fatal("overdraft withdrawal succeeded")
	}

	// The failed withdrawal left no trace: balance and ledger are unchanged.
	balance, err := service.GetBalance(ctx, userID)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("balance = %s, want 120", balance)
	}

	page, err := service.GetHistory(ctx, userID, 1, 20)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("ledger entries = %d, want 2", page.Total)
	}
}

func TestBalanceMatchesLedger(t *testing.T) {
	store := newFakeStore()
	userID := uuid.NewString()
	store.addUser(*verifiedUser(userID, decimal.Zero))

	service := services.NewSavingsService(store, store)
	ctx := context.Background()

	mutations := []struct {
		kind   domain.TransactionType
		amount int64
	}{
		{domain.Deposit, 100},
		{domain.Withdraw, 25},
		{domain.Deposit, 7},
		{domain.Withdraw, 50},
		{domain.Deposit, 3},
	}

	for _, m := range mutations {
		var err error
		if m.kind == domain.Deposit {
			_, err = service.Deposit(ctx, userID, decimal.NewFromInt(m.amount))
		} else {
			_, err = service.Withdraw(ctx, userID, decimal.NewFromInt(m.amount))
		}
		if err != nil {
			t.Fatalf("%s %d failed: %v", m.kind, m.amount, err)
		}
	}

	page, err := service.GetHistory(ctx, userID, 1, 100)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}

	sum := decimal.Zero
	for _, txn := range page.Transactions {
		switch txn.Type {
		case domain.Deposit:
			sum = sum.Add(txn.Amount)
		case domain.Withdraw:
			sum = sum.Sub(txn.Amount)
		}
	}

	balance, err := service.GetBalance(ctx, userID)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if !balance.Equal(sum) {
		t.Fatalf("balance %s diverged from ledger sum %s", balance, sum)
	}
}

func TestGetHistoryPagination(t *testing.T) {
	store := newFakeStore()
	userID := uuid.NewString()
	store.addUser(*verifiedUser(userID, decimal.Zero))

	service := services.NewSavingsService(store, store)
	ctx := context.Background()

	const total = 45
	for i := 0; i < total; i++ {
		if _, err := service.Deposit(ctx, userID, decimal.NewFromInt(1)); err != nil {
			t.Fatalf("seed deposit %d failed: %v", i, err)
		}
	}

	wantSizes := []int{20, 20, 5}
	for i, want := range wantSizes {
		page, err := service.GetHistory(ctx, userID, i+1, 20)
		if err != nil {
			t.Fatalf("GetHistory page %d failed: %v", i+1, err)
		}
		if len(page.Transactions) != want {
			t.Fatalf("page %d size = %d, want %d", i+1, len(page.Transactions), want)
		}
		if page.Total != total {
			t.Fatalf("page %d total = %d, want %d", i+1, page.Total, total)
		}
		if page.TotalPages != 3 {
			t.Fatalf("page %d totalPages = %d, want 3", i+1, page.TotalPages)
		}
		if page.CurrentPage != i+1 {
			t.Fatalf("currentPage = %d, want %d", page.CurrentPage, i+1)
		}
	}

	// A page past the end is empty, not an error
	past, err := service.GetHistory(ctx, userID, 4, 20)
	if err != nil {
		t.Fatalf("GetHistory past end failed: %v", err)
	}
	if len(past.Transactions) != 0 {
		t.Fatalf("page past end size = %d, want 0", len(past.Transactions))
	}
}

func TestVerifyDeviceUnlocksMutations(t *testing.T) {
	store := newFakeStore()
	userID := uuid.NewString()
	user := verifiedUser(userID, decimal.Zero)
	user.DeviceVerified = false
	store.addUser(*user)

	service := services.NewSavingsService(store, store)
	ctx := context.Background()

	if _, err := service.Deposit(ctx, userID, decimal.NewFromInt(10)); err == nil {
		t.Fatal("deposit succeeded before device verification")
	}

	if _, err := service.VerifyDevice(ctx, userID); err != nil {
		t.Fatalf("VerifyDevice failed: %v", err)
	}

	if _, err := service.Deposit(ctx, userID, decimal.NewFromInt(10)); err != nil {
		t.Fatalf("deposit after verification failed: %v", err)
	}
}
