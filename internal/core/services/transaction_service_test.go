package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pachecofc/verde-financas-sub001/internal/apperrors"
	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
	portsrepo "github.com/pachecofc/verde-financas-sub001/internal/core/ports/repositories"
	portssvc "github.com/pachecofc/verde-financas-sub001/internal/core/ports/services"
	"github.com/pachecofc/verde-financas-sub001/internal/core/services"
	"github.com/pachecofc/verde-financas-sub001/internal/dto"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, changes []domain.BalanceChange, holdings []domain.HoldingChange) error {
	args := m.Called(ctx, txn, changes, holdings)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, basis domain.Transaction, changes []domain.BalanceChange, holdings []domain.HoldingChange) error {
	args := m.Called(ctx, txn, basis, changes, holdings)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, ownerID, transactionID string, basis domain.Transaction, changes []domain.BalanceChange, holdings []domain.HoldingChange) error {
	args := m.Called(ctx, ownerID, transactionID, basis, changes, holdings)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByExternalID(ctx context.Context, ownerID, externalID string) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, ownerID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, ownerID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

// --- Mock AccountReader ---
type MockAccountReader struct {
	mock.Mock
}

var _ portsrepo.AccountReader = (*MockAccountReader)(nil)

func (m *MockAccountReader) FindAccountByID(ctx context.Context, ownerID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, ownerID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountsByIDs(ctx context.Context, ownerID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, ownerID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccounts(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock CategoryReader ---
type MockCategoryReader struct {
	mock.Mock
}

var _ portsrepo.CategoryReader = (*MockCategoryReader)(nil)

func (m *MockCategoryReader) FindCategoryByID(ctx context.Context, ownerID, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, ownerID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryReader) ListCategories(ctx context.Context, ownerID string, kind *domain.TransactionKind) ([]domain.Category, error) {
	args := m.Called(ctx, ownerID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

// --- Mock AssetReader ---
type MockAssetReader struct {
	mock.Mock
}

var _ portsrepo.AssetReader = (*MockAssetReader)(nil)

func (m *MockAssetReader) FindAssetByID(ctx context.Context, ownerID, assetID string) (*domain.Asset, error) {
	args := m.Called(ctx, ownerID, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetReader) ListAssets(ctx context.Context, ownerID string) ([]domain.Asset, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

// --- Mock DedupRepository ---
type MockDedupRepository struct {
	mock.Mock
}

var _ portsrepo.DedupRepository = (*MockDedupRepository)(nil)

func (m *MockDedupRepository) ReserveExternalID(ctx context.Context, ownerID, externalID string) (bool, error) {
	args := m.Called(ctx, ownerID, externalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDedupRepository) ReleaseExternalID(ctx context.Context, ownerID, externalID string) error {
	args := m.Called(ctx, ownerID, externalID)
	return args.Error(0)
}

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockAccountRepo  *MockAccountReader
	mockCategoryRepo *MockCategoryReader
	mockAssetRepo    *MockAssetReader
	mockDedupRepo    *MockDedupRepository
	service          portssvc.TransactionSvcFacade

	ownerID           string
	checkingAccount   domain.Account
	savingsAccount    domain.Account
	brokerageAccount  domain.Account
	salaryCategory    domain.Category
	groceriesCategory domain.Category
	indexFund         domain.Asset
	occurredOn        time.Time
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountReader)
	suite.mockCategoryRepo = new(MockCategoryReader)
	suite.mockAssetRepo = new(MockAssetReader)
	suite.mockDedupRepo = new(MockDedupRepository)
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		suite.mockAccountRepo,
		suite.mockCategoryRepo,
		suite.mockAssetRepo,
		suite.mockDedupRepo,
	)

	suite.ownerID = uuid.NewString()
	suite.occurredOn = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	suite.checkingAccount = domain.Account{
		AccountID:    uuid.NewString(),
		OwnerID:      suite.ownerID,
		Name:         "Checking",
		Kind:         domain.Ordinary,
		CurrencyCode: "BRL",
		Balance:      decimal.NewFromInt(1000),
	}
	suite.savingsAccount = domain.Account{
		AccountID:    uuid.NewString(),
		OwnerID:      suite.ownerID,
		Name:         "Savings",
		Kind:         domain.Ordinary,
		CurrencyCode: "BRL",
		Balance:      decimal.NewFromInt(5000),
	}
	suite.brokerageAccount = domain.Account{
		AccountID:    uuid.NewString(),
		OwnerID:      suite.ownerID,
		Name:         "Brokerage",
		Kind:         domain.Investment,
		CurrencyCode: "BRL",
		Balance:      decimal.NewFromInt(0),
	}
	suite.salaryCategory = domain.Category{
		CategoryID: uuid.NewString(),
		OwnerID:    suite.ownerID,
		Name:       "Salary",
		Kind:       domain.Income,
	}
	suite.groceriesCategory = domain.Category{
		CategoryID: uuid.NewString(),
		OwnerID:    suite.ownerID,
		Name:       "Groceries",
		Kind:       domain.Expense,
	}
	suite.indexFund = domain.Asset{
		AssetID: uuid.NewString(),
		OwnerID: suite.ownerID,
		Name:    "Index Fund",
		Ticker:  "IVVB11",
	}
}

func (suite *TransactionServiceTestSuite) expectAccount(acc domain.Account) {
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.ownerID, acc.AccountID).Return(&acc, nil)
}

func (suite *TransactionServiceTestSuite) TestCreateIncome_Success() {
	suite.expectAccount(suite.checkingAccount)
	suite.mockCategoryRepo.On("FindCategoryByID", mock.Anything, suite.ownerID, suite.salaryCategory.CategoryID).Return(&suite.salaryCategory, nil)

	amount := decimal.NewFromInt(300)
	expectedChanges := []domain.BalanceChange{{AccountID: suite.checkingAccount.AccountID, Delta: amount}}
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"), expectedChanges, []domain.HoldingChange(nil)).Return(nil)

	txn, err := suite.service.CreateTransaction(context.Background(), suite.ownerID, dto.CreateTransactionRequest{
		Description: "March salary",
		Amount:      amount,
		Kind:        domain.Income,
		OccurredOn:  suite.occurredOn,
		AccountID:   suite.checkingAccount.AccountID,
		CategoryID:  &suite.salaryCategory.CategoryID,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.Income, txn.Kind)
	suite.Nil(txn.DestinationAccountID, "income must not retain a destination")
	suite.Nil(txn.AssetID, "income must not retain an asset")
	suite.Equal(suite.salaryCategory.CategoryID, *txn.CategoryID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateExpense_NegatesAmount() {
	suite.expectAccount(suite.checkingAccount)
	suite.mockCategoryRepo.On("FindCategoryByID", mock.Anything, suite.ownerID, suite.groceriesCategory.CategoryID).Return(&suite.groceriesCategory, nil)

	amount := decimal.NewFromInt(75)
	expectedChanges := []domain.BalanceChange{{AccountID: suite.checkingAccount.AccountID, Delta: amount.Neg()}}
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"), expectedChanges, []domain.HoldingChange(nil)).Return(nil)

	_, err := suite.service.CreateTransaction(context.Background(), suite.ownerID, dto.CreateTransactionRequest{
		Description: "Groceries",
		Amount:      amount,
		Kind:        domain.Expense,
		OccurredOn:  suite.occurredOn,
		AccountID:   suite.checkingAccount.AccountID,
		CategoryID:  &suite.groceriesCategory.CategoryID,
	})

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateExpense_CategoryKindMismatch() {
	suite.mockCategoryRepo.On("FindCategoryByID", mock.Anything, suite.ownerID, suite.salaryCategory.CategoryID).Return(&suite.salaryCategory, nil)

	_, err := suite.service.CreateTransaction(context.Background(), suite.ownerID, dto.CreateTransactionRequest{
		Description: "Groceries",
		Amount:      decimal.NewFromInt(50),
		Kind:        domain.Expense,
		OccurredOn:  suite.occurredOn,
		AccountID:   suite.checkingAccount.AccountID,
		CategoryID:  &suite.salaryCategory.CategoryID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, services.ErrCategoryKindMismatch.Error())
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateIncome_MissingCategory() {
	_, err := suite.service.CreateTransaction(context.Background(), suite.ownerID, dto.CreateTransactionRequest{
		Description: "March salary",
		Amount:      decimal.NewFromInt(300),
		Kind:        domain.Income,
		OccurredOn:  suite.occurredOn,
		AccountID:   suite.checkingAccount.AccountID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, services.ErrCategoryRequired.Error())
}

func (suite *TransactionServiceTestSuite) TestCreate_NonPositiveAmount() {
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		_, err := suite.service.CreateTransaction(context.Background(), suite.ownerID, dto.CreateTransactionRequest{
			Description: "Bad amount",
			Amount:      amount,
			Kind:        domain.Expense,
			OccurredOn:  suite.occurredOn,
			AccountID:   suite.checkingAccount.AccountID,
			CategoryID:  &suite.groceriesCategory.CategoryID,
		})
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
}

func (suite *TransactionServiceTestSuite) TestCreate_UnknownKind() {
	_, err := suite.service.CreateTransaction(context.Background(), suite.ownerID, dto.CreateTransactionRequest{
		Description: "Mystery",
		Amount:      decimal.NewFromInt(10),
		Kind:        domain.TransactionKind("LOAN"),
		OccurredOn:  suite.occurredOn,
		AccountID:   suite.checkingAccount.AccountID,
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreate_SourceAccountNotOwned() {
	suite.mockCategoryRepo.On("FindCategoryByID", mock.Anything, suite.ownerID, suite.groceriesCategory.CategoryID).Return(&suite.groceriesCategory, nil)
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.ownerID, suite.checkingAccount.AccountID).Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.CreateTransaction(context.Background(), suite.ownerID, dto.CreateTransactionRequest{
		Description: "Groceries",
		Amount:      decimal.NewFromInt(50),
		Kind:        domain.Expense,
		OccurredOn:  suite.occurredOn,
		AccountID:   suite.checkingAccount.AccountID,
		CategoryID:  &suite.groceriesCategory.CategoryID,
	})

	// Cross-owner rows are indistinguishable from missing rows.
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestCreateTransfer_MovesBothBalances() {
	suite.expectAccount(suite.checkingAccount)
	suite.expectAccount(suite.savingsAccount)

	amount := decimal.NewFromInt(200)
	expectedChanges := []domain.BalanceChange{
		{AccountID: suite.checkingAccount.AccountID, Delta: amount.Neg()},
		{AccountID: suite.savingsAccount.AccountID, Delta: amount},
	}
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"), expectedChanges, []domain.HoldingChange(nil)).Return(nil)

	txn, err := suite.service.CreateTransaction(context.Background(), suite.ownerID, dto.CreateTransactionRequest{
		Description:          "To savings",
		Amount:               amount,
		Kind:                 domain.Transfer,
		OccurredOn:           suite.occurredOn,
		AccountID:            suite.checkingAccount.AccountID,
		DestinationAccountID: &suite.savingsAccount.AccountID,
		AssetID:              &suite.indexFund.AssetID, // ignored: destination is not an investment account
	})

	suite.Require().NoError(err)
	suite.Nil(txn.AssetID, "asset only survives on transfers into investment accounts")
	suite.Nil(txn.CategoryID, "transfers are never categorized")
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransfer_ToInvestmentIncrementsHolding() {
	suite.expectAccount(suite.checkingAccount)
	suite.expectAccount(suite.brokerageAccount)
	suite.mockAssetRepo.On("FindAssetByID", mock.Anything, suite.ownerID, suite.indexFund.AssetID).Return(&suite.indexFund, nil)

	amount := decimal.NewFromInt(500)
	expectedChanges := []domain.BalanceChange{
		{AccountID: suite.checkingAccount.AccountID, Delta: amount.Neg()},
		{AccountID: suite.brokerageAccount.AccountID, Delta: amount},
	}
	expectedHoldings := []domain.HoldingChange{{AssetID: suite.indexFund.AssetID, Amount: amount}}
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"), expectedChanges, expectedHoldings).Return(nil)

	txn, err := suite.service.CreateTransaction(context.Background(), suite.ownerID, dto.CreateTransactionRequest{
		Description:          "Buy index fund",
		Amount:               amount,
		Kind:                 domain.Transfer,
		OccurredOn:           suite.occurredOn,
		AccountID:            suite.checkingAccount.AccountID,
		DestinationAccountID: &suite.brokerageAccount.AccountID,
		AssetID:              &suite.indexFund.AssetID,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(txn.AssetID)
	suite.Equal(suite.indexFund.AssetID, *txn.AssetID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransfer_BlankAssetTreatedAsAbsent() {
	suite.expectAccount(suite.checkingAccount)
	suite.expectAccount(suite.brokerageAccount)

	amount := decimal.NewFromInt(500)
	expectedChanges := []domain.BalanceChange{
		{AccountID: suite.checkingAccount.AccountID, Delta: amount.Neg()},
		{AccountID: suite.brokerageAccount.AccountID, Delta: amount},
	}
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"), expectedChanges, []domain.HoldingChange(nil)).Return(nil)

	blank := "  "
	txn, err := suite.service.CreateTransaction(context.Background(), suite.ownerID, dto.CreateTransactionRequest{
		Description:          "Cash parked at broker",
		Amount:               amount,
		Kind:                 domain.Transfer,
		OccurredOn:           suite.occurredOn,
		AccountID:            suite.checkingAccount.AccountID,
		DestinationAccountID: &suite.brokerageAccount.AccountID,
		AssetID:              &blank,
	})

	suite.Require().NoError(err)
	suite.Nil(txn.AssetID, "blank asset reference must not persist")
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "FindAssetByID", mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransfer_SameAccountRejected() {
	_, err := suite.service.CreateTransaction(context.Background(), suite.ownerID, dto.CreateTransactionRequest{
		Description:          "Loop",
		Amount:               decimal.NewFromInt(10),
		Kind:                 domain.Transfer,
		OccurredOn:           suite.occurredOn,
		AccountID:            suite.checkingAccount.AccountID,
		DestinationAccountID: &suite.checkingAccount.AccountID,
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, services.ErrSameAccountTransfer.Error())
}

func (suite *TransactionServiceTestSuite) TestCreateTransfer_MissingDestination() {
	_, err := suite.service.CreateTransaction(context.Background(), suite.ownerID, dto.CreateTransactionRequest{
		Description: "Nowhere",
		Amount:      decimal.NewFromInt(10),
		Kind:        domain.Transfer,
		OccurredOn:  suite.occurredOn,
		AccountID:   suite.checkingAccount.AccountID,
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, services.ErrDestinationRequired.Error())
}

func (suite *TransactionServiceTestSuite) TestCreateAdjustment_AbsoluteOverwrite() {
	suite.expectAccount(suite.checkingAccount)

	target := decimal.NewFromInt(1234)
	expectedChanges := []domain.BalanceChange{{AccountID: suite.checkingAccount.AccountID, Absolute: true, Value: target}}
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"), expectedChanges, []domain.HoldingChange(nil)).Return(nil)

	txn, err := suite.service.CreateTransaction(context.Background(), suite.ownerID, dto.CreateTransactionRequest{
		Description:          "Reconcile with bank statement",
		Amount:               target,
		Kind:                 domain.Adjustment,
		OccurredOn:           suite.occurredOn,
		AccountID:            suite.checkingAccount.AccountID,
		CategoryID:           &suite.salaryCategory.CategoryID,
		DestinationAccountID: &suite.savingsAccount.AccountID,
		AssetID:              &suite.indexFund.AssetID,
	})

	suite.Require().NoError(err)
	// Adjustments force every reference null regardless of the payload.
	suite.Nil(txn.CategoryID)
	suite.Nil(txn.DestinationAccountID)
	suite.Nil(txn.AssetID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreate_DuplicateExternalID() {
	suite.expectAccount(suite.checkingAccount)
	suite.mockCategoryRepo.On("FindCategoryByID", mock.Anything, suite.ownerID, suite.salaryCategory.CategoryID).Return(&suite.salaryCategory, nil)

	existing := domain.Transaction{TransactionID: uuid.NewString()}
	suite.mockTxnRepo.On("FindTransactionByExternalID", mock.Anything, suite.ownerID, "bank-42").Return(&existing, nil)

	externalID := "bank-42"
	_, err := suite.service.CreateTransaction(context.Background(), suite.ownerID, dto.CreateTransactionRequest{
		Description: "Imported salary",
		Amount:      decimal.NewFromInt(300),
		Kind:        domain.Income,
		OccurredOn:  suite.occurredOn,
		AccountID:   suite.checkingAccount.AccountID,
		CategoryID:  &suite.salaryCategory.CategoryID,
		ExternalID:  &externalID,
	})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreate_ExternalIDReservationHeld() {
	suite.expectAccount(suite.checkingAccount)
	suite.mockCategoryRepo.On("FindCategoryByID", mock.Anything, suite.ownerID, suite.salaryCategory.CategoryID).Return(&suite.salaryCategory, nil)
	suite.mockTxnRepo.On("FindTransactionByExternalID", mock.Anything, suite.ownerID, "bank-43").Return(nil, apperrors.ErrNotFound)
	suite.mockDedupRepo.On("ReserveExternalID", mock.Anything, suite.ownerID, "bank-43").Return(false, nil)

	externalID := "bank-43"
	_, err := suite.service.CreateTransaction(context.Background(), suite.ownerID, dto.CreateTransactionRequest{
		Description: "Imported salary",
		Amount:      decimal.NewFromInt(300),
		Kind:        domain.Income,
		OccurredOn:  suite.occurredOn,
		AccountID:   suite.checkingAccount.AccountID,
		CategoryID:  &suite.salaryCategory.CategoryID,
		ExternalID:  &externalID,
	})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *TransactionServiceTestSuite) TestCreate_ReservationStoreDownStillSaves() {
	suite.expectAccount(suite.checkingAccount)
	suite.mockCategoryRepo.On("FindCategoryByID", mock.Anything, suite.ownerID, suite.salaryCategory.CategoryID).Return(&suite.salaryCategory, nil)
	suite.mockTxnRepo.On("FindTransactionByExternalID", mock.Anything, suite.ownerID, "bank-44").Return(nil, apperrors.ErrNotFound)
	suite.mockDedupRepo.On("ReserveExternalID", mock.Anything, suite.ownerID, "bank-44").Return(false, context.DeadlineExceeded)
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"), mock.Anything, mock.Anything).Return(nil)

	externalID := "bank-44"
	_, err := suite.service.CreateTransaction(context.Background(), suite.ownerID, dto.CreateTransactionRequest{
		Description: "Imported salary",
		Amount:      decimal.NewFromInt(300),
		Kind:        domain.Income,
		OccurredOn:  suite.occurredOn,
		AccountID:   suite.checkingAccount.AccountID,
		CategoryID:  &suite.salaryCategory.CategoryID,
		ExternalID:  &externalID,
	})

	// A failed reservation store never blocks the write; the unique index is
	// the real guard.
	suite.NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdate_IncomeToExpense() {
	amount := decimal.NewFromInt(100)
	existing := domain.Transaction{
		TransactionID: uuid.NewString(),
		OwnerID:       suite.ownerID,
		Kind:          domain.Income,
		Amount:        amount,
		OccurredOn:    suite.occurredOn,
		Description:   "Misfiled",
		AccountID:     suite.checkingAccount.AccountID,
		CategoryID:    &suite.salaryCategory.CategoryID,
	}
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, suite.ownerID, existing.TransactionID).Return(&existing, nil)
	suite.expectAccount(suite.checkingAccount)
	suite.mockCategoryRepo.On("FindCategoryByID", mock.Anything, suite.ownerID, suite.groceriesCategory.CategoryID).Return(&suite.groceriesCategory, nil)

	// Reversal of the stored income first, then the new expense effect.
	expectedChanges := []domain.BalanceChange{
		{AccountID: suite.checkingAccount.AccountID, Delta: amount.Neg()},
		{AccountID: suite.checkingAccount.AccountID, Delta: amount.Neg()},
	}
	suite.mockTxnRepo.On("UpdateTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"), existing, expectedChanges, []domain.HoldingChange(nil)).Return(nil)

	newKind := domain.Expense
	txn, err := suite.service.UpdateTransaction(context.Background(), suite.ownerID, existing.TransactionID, dto.UpdateTransactionRequest{
		Kind:       &newKind,
		CategoryID: &suite.groceriesCategory.CategoryID,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.Expense, txn.Kind)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdate_TransferReleasesOldHolding() {
	amount := decimal.NewFromInt(500)
	existing := domain.Transaction{
		TransactionID:        uuid.NewString(),
		OwnerID:              suite.ownerID,
		Kind:                 domain.Transfer,
		Amount:               amount,
		OccurredOn:           suite.occurredOn,
		Description:          "Buy index fund",
		AccountID:            suite.checkingAccount.AccountID,
		DestinationAccountID: &suite.brokerageAccount.AccountID,
		AssetID:              &suite.indexFund.AssetID,
	}
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, suite.ownerID, existing.TransactionID).Return(&existing, nil)
	suite.expectAccount(suite.checkingAccount)
	suite.expectAccount(suite.brokerageAccount)
	suite.mockAssetRepo.On("FindAssetByID", mock.Anything, suite.ownerID, suite.indexFund.AssetID).Return(&suite.indexFund, nil)

	newAmount := decimal.NewFromInt(300)
	expectedChanges := []domain.BalanceChange{
		{AccountID: suite.checkingAccount.AccountID, Delta: amount},
		{AccountID: suite.brokerageAccount.AccountID, Delta: amount.Neg()},
		{AccountID: suite.checkingAccount.AccountID, Delta: newAmount.Neg()},
		{AccountID: suite.brokerageAccount.AccountID, Delta: newAmount},
	}
	expectedHoldings := []domain.HoldingChange{
		{AssetID: suite.indexFund.AssetID, Amount: amount.Neg()},
		{AssetID: suite.indexFund.AssetID, Amount: newAmount},
	}
	suite.mockTxnRepo.On("UpdateTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"), existing, expectedChanges, expectedHoldings).Return(nil)

	_, err := suite.service.UpdateTransaction(context.Background(), suite.ownerID, existing.TransactionID, dto.UpdateTransactionRequest{
		Amount: &newAmount,
	})

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdate_AdjustmentNotReversed() {
	existing := domain.Transaction{
		TransactionID: uuid.NewString(),
		OwnerID:       suite.ownerID,
		Kind:          domain.Adjustment,
		Amount:        decimal.NewFromInt(1000),
		OccurredOn:    suite.occurredOn,
		Description:   "Reconcile",
		AccountID:     suite.checkingAccount.AccountID,
	}
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, suite.ownerID, existing.TransactionID).Return(&existing, nil)
	suite.expectAccount(suite.checkingAccount)

	newTarget := decimal.NewFromInt(1100)
	// The stored adjustment yields no reversal; only the new absolute set applies.
	expectedChanges := []domain.BalanceChange{
		{AccountID: suite.checkingAccount.AccountID, Absolute: true, Value: newTarget},
	}
	suite.mockTxnRepo.On("UpdateTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"), existing, expectedChanges, []domain.HoldingChange(nil)).Return(nil)

	_, err := suite.service.UpdateTransaction(context.Background(), suite.ownerID, existing.TransactionID, dto.UpdateTransactionRequest{
		Amount: &newTarget,
	})

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdate_SameValuesYieldsNetZeroPlan() {
	amount := decimal.NewFromInt(100)
	existing := domain.Transaction{
		TransactionID: uuid.NewString(),
		OwnerID:       suite.ownerID,
		Kind:          domain.Income,
		Amount:        amount,
		OccurredOn:    suite.occurredOn,
		Description:   "March salary",
		AccountID:     suite.checkingAccount.AccountID,
		CategoryID:    &suite.salaryCategory.CategoryID,
	}
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, suite.ownerID, existing.TransactionID).Return(&existing, nil)
	suite.expectAccount(suite.checkingAccount)
	suite.mockCategoryRepo.On("FindCategoryByID", mock.Anything, suite.ownerID, suite.salaryCategory.CategoryID).Return(&suite.salaryCategory, nil)

	// Re-submitting the same effect must plan an exact net-zero pair.
	expectedChanges := []domain.BalanceChange{
		{AccountID: suite.checkingAccount.AccountID, Delta: amount.Neg()},
		{AccountID: suite.checkingAccount.AccountID, Delta: amount},
	}
	suite.mockTxnRepo.On("UpdateTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"), existing, expectedChanges, []domain.HoldingChange(nil)).Return(nil)

	newDescription := "March salary (confirmed)"
	_, err := suite.service.UpdateTransaction(context.Background(), suite.ownerID, existing.TransactionID, dto.UpdateTransactionRequest{
		Description: &newDescription,
		Amount:      &amount,
	})

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdate_ConcurrentlyModifiedRow() {
	amount := decimal.NewFromInt(100)
	existing := domain.Transaction{
		TransactionID: uuid.NewString(),
		OwnerID:       suite.ownerID,
		Kind:          domain.Income,
		Amount:        amount,
		OccurredOn:    suite.occurredOn,
		Description:   "March salary",
		AccountID:     suite.checkingAccount.AccountID,
		CategoryID:    &suite.salaryCategory.CategoryID,
	}
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, suite.ownerID, existing.TransactionID).Return(&existing, nil)
	suite.expectAccount(suite.checkingAccount)
	suite.mockCategoryRepo.On("FindCategoryByID", mock.Anything, suite.ownerID, suite.salaryCategory.CategoryID).Return(&suite.salaryCategory, nil)

	// The repository rejects the plan when the locked row no longer matches
	// the state the reversal was computed from.
	suite.mockTxnRepo.On("UpdateTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"), existing, mock.Anything, mock.Anything).Return(apperrors.ErrConflict)

	newAmount := decimal.NewFromInt(200)
	txn, err := suite.service.UpdateTransaction(context.Background(), suite.ownerID, existing.TransactionID, dto.UpdateTransactionRequest{
		Amount: &newAmount,
	})

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *TransactionServiceTestSuite) TestDelete_ReversesIncome() {
	amount := decimal.NewFromInt(300)
	existing := domain.Transaction{
		TransactionID: uuid.NewString(),
		OwnerID:       suite.ownerID,
		Kind:          domain.Income,
		Amount:        amount,
		AccountID:     suite.checkingAccount.AccountID,
		CategoryID:    &suite.salaryCategory.CategoryID,
	}
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, suite.ownerID, existing.TransactionID).Return(&existing, nil)

	expectedChanges := []domain.BalanceChange{{AccountID: suite.checkingAccount.AccountID, Delta: amount.Neg()}}
	suite.mockTxnRepo.On("DeleteTransaction", mock.Anything, suite.ownerID, existing.TransactionID, existing, expectedChanges, []domain.HoldingChange(nil)).Return(nil)

	err := suite.service.DeleteTransaction(context.Background(), suite.ownerID, existing.TransactionID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDelete_TransferReleasesHolding() {
	amount := decimal.NewFromInt(500)
	existing := domain.Transaction{
		TransactionID:        uuid.NewString(),
		OwnerID:              suite.ownerID,
		Kind:                 domain.Transfer,
		Amount:               amount,
		AccountID:            suite.checkingAccount.AccountID,
		DestinationAccountID: &suite.brokerageAccount.AccountID,
		AssetID:              &suite.indexFund.AssetID,
	}
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, suite.ownerID, existing.TransactionID).Return(&existing, nil)

	expectedChanges := []domain.BalanceChange{
		{AccountID: suite.checkingAccount.AccountID, Delta: amount},
		{AccountID: suite.brokerageAccount.AccountID, Delta: amount.Neg()},
	}
	expectedHoldings := []domain.HoldingChange{{AssetID: suite.indexFund.AssetID, Amount: amount.Neg()}}
	suite.mockTxnRepo.On("DeleteTransaction", mock.Anything, suite.ownerID, existing.TransactionID, existing, expectedChanges, expectedHoldings).Return(nil)

	err := suite.service.DeleteTransaction(context.Background(), suite.ownerID, existing.TransactionID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDelete_NotFound() {
	transactionID := uuid.NewString()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, suite.ownerID, transactionID).Return(nil, apperrors.ErrNotFound)

	err := suite.service.DeleteTransaction(context.Background(), suite.ownerID, transactionID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_DefaultsLimit() {
	suite.mockTxnRepo.On("ListTransactions", mock.Anything, suite.ownerID, domain.TransactionFilter{}, 20, (*string)(nil)).Return([]domain.Transaction{}, nil, nil)

	page, err := suite.service.ListTransactions(context.Background(), suite.ownerID, dto.ListTransactionsParams{})

	suite.Require().NoError(err)
	suite.Empty(page.Transactions)
	suite.Nil(page.NextToken)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransactionServiceSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
