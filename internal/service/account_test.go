package service_test

import (
	"context"
	"errors"
	"testing"

	"entity-tracker-backend/internal/credentials"
	"entity-tracker-backend/internal/database/models"
	apperrors "entity-tracker-backend/internal/errors"
	"entity-tracker-backend/internal/mocks"
	"entity-tracker-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type AccountServiceTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockRepo       *mocks.MockAccountRepositoryInterface
	sealer         *credentials.Sealer
	accountService *service.AccountService
	ctx            context.Context
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockRepo = mocks.NewMockAccountRepositoryInterface(suite.ctrl)
	sealer, err := credentials.NewSealer("account-service-test")
	require.NoError(suite.T(), err)
	suite.sealer = sealer
	suite.accountService = service.NewAccountService(suite.mockRepo, sealer, service.NewValidator())
	suite.ctx = context.Background()
}

func (suite *AccountServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AccountServiceTestSuite) TestCreate_SealsPassword() {
	balance := 1250.5
	req := &service.CreateAccountRequest{
		AccountName: "Operating",
		Balance:     &balance,
		Username:    strPtr("acme-admin"),
		Password:    strPtr("hunter2"),
	}

	var stored string
	suite.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, a *models.Account) error {
			require.NotNil(suite.T(), a.Password)
			assert.NotEqual(suite.T(), "hunter2", *a.Password)
			assert.True(suite.T(), credentials.IsSealed(*a.Password))
			assert.Equal(suite.T(), uint(3), a.EntityID)
			assert.Equal(suite.T(), 1250.5, a.Balance)
			stored = *a.Password
			a.ID = 10
			return nil
		})

	resp, err := suite.accountService.Create(suite.ctx, 3, req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), uint(10), resp.ID)
	assert.True(suite.T(), resp.HasPassword)

	plain, err := suite.sealer.Open(stored)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "hunter2", plain)
}

func (suite *AccountServiceTestSuite) TestCreate_DefaultBalance() {
	suite.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, a *models.Account) error {
			assert.Equal(suite.T(), 0.0, a.Balance)
			assert.Nil(suite.T(), a.Password)
			return nil
		})

	resp, err := suite.accountService.Create(suite.ctx, 3, &service.CreateAccountRequest{AccountName: "Savings"})

	require.NoError(suite.T(), err)
	assert.False(suite.T(), resp.HasPassword)
}

func (suite *AccountServiceTestSuite) TestCreate_MissingName() {
	_, err := suite.accountService.Create(suite.ctx, 3, &service.CreateAccountRequest{})

	var verr *apperrors.ValidationError
	require.True(suite.T(), errors.As(err, &verr))
	assert.Equal(suite.T(), "account_name", verr.Field)
}

func (suite *AccountServiceTestSuite) TestCreate_BlankName() {
	_, err := suite.accountService.Create(suite.ctx, 3, &service.CreateAccountRequest{AccountName: "   "})

	var verr *apperrors.ValidationError
	require.True(suite.T(), errors.As(err, &verr))
	assert.Equal(suite.T(), "account_name", verr.Field)
	assert.Equal(suite.T(), "is required", verr.Message)
}

func (suite *AccountServiceTestSuite) TestCreate_UnknownEntity() {
	suite.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(apperrors.ErrEntityNotFound)

	_, err := suite.accountService.Create(suite.ctx, 404, &service.CreateAccountRequest{AccountName: "Operating"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrEntityNotFound)
}

func (suite *AccountServiceTestSuite) TestGetByEntityID_UnknownEntity() {
	suite.mockRepo.EXPECT().GetByEntityID(gomock.Any(), uint(404)).Return(nil, apperrors.ErrEntityNotFound)

	_, err := suite.accountService.GetByEntityID(suite.ctx, 404)

	assert.ErrorIs(suite.T(), err, apperrors.ErrEntityNotFound)
}

func (suite *AccountServiceTestSuite) TestGetByEntityID_Empty() {
	suite.mockRepo.EXPECT().GetByEntityID(gomock.Any(), uint(3)).Return([]models.Account{}, nil)

	resp, err := suite.accountService.GetByEntityID(suite.ctx, 3)

	require.NoError(suite.T(), err)
	assert.NotNil(suite.T(), resp)
	assert.Len(suite.T(), resp, 0)
}

func (suite *AccountServiceTestSuite) TestGetByID_NotFound() {
	suite.mockRepo.EXPECT().GetByID(gomock.Any(), uint(8)).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.accountService.GetByID(suite.ctx, 8)

	assert.ErrorIs(suite.T(), err, apperrors.ErrAccountNotFound)
}

func (suite *AccountServiceTestSuite) TestUpdate_BalanceAndNullNotes() {
	suite.mockRepo.EXPECT().Update(gomock.Any(), uint(2), map[string]interface{}{
		"balance": 99.0,
		"notes":   nil,
	}).Return(&models.Account{ID: 2, AccountName: "Operating", Balance: 99}, nil)

	resp, err := suite.accountService.Update(suite.ctx, 2, &service.UpdateAccountRequest{
		Balance: service.Some(99.0),
		Notes:   service.Null[string](),
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 99.0, resp.Balance)
}

func (suite *AccountServiceTestSuite) TestUpdate_NullBalanceRejected() {
	_, err := suite.accountService.Update(suite.ctx, 2, &service.UpdateAccountRequest{Balance: service.Null[float64]()})

	var verr *apperrors.ValidationError
	require.True(suite.T(), errors.As(err, &verr))
	assert.Equal(suite.T(), "balance", verr.Field)
}

func (suite *AccountServiceTestSuite) TestUpdate_PasswordIsSealed() {
	suite.mockRepo.EXPECT().Update(gomock.Any(), uint(2), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uint, updates map[string]interface{}) (*models.Account, error) {
			sealed, ok := updates["password"].(string)
			require.True(suite.T(), ok)
			assert.True(suite.T(), credentials.IsSealed(sealed))
			plain, err := suite.sealer.Open(sealed)
			require.NoError(suite.T(), err)
			assert.Equal(suite.T(), "new-secret", plain)
			return &models.Account{ID: 2, AccountName: "Operating", Password: &sealed}, nil
		})

	resp, err := suite.accountService.Update(suite.ctx, 2, &service.UpdateAccountRequest{Password: service.Some("new-secret")})

	require.NoError(suite.T(), err)
	assert.True(suite.T(), resp.HasPassword)
}

func (suite *AccountServiceTestSuite) TestUpdate_NullPasswordClears() {
	suite.mockRepo.EXPECT().Update(gomock.Any(), uint(2), map[string]interface{}{"password": nil}).
		Return(&models.Account{ID: 2, AccountName: "Operating"}, nil)

	resp, err := suite.accountService.Update(suite.ctx, 2, &service.UpdateAccountRequest{Password: service.Null[string]()})

	require.NoError(suite.T(), err)
	assert.False(suite.T(), resp.HasPassword)
}

func (suite *AccountServiceTestSuite) TestUpdate_NotFound() {
	suite.mockRepo.EXPECT().Update(gomock.Any(), uint(2), gomock.Any()).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.accountService.Update(suite.ctx, 2, &service.UpdateAccountRequest{AccountName: service.Some("X")})

	assert.ErrorIs(suite.T(), err, apperrors.ErrAccountNotFound)
}

func (suite *AccountServiceTestSuite) TestDelete() {
	suite.mockRepo.EXPECT().Delete(gomock.Any(), uint(2)).Return(nil)
	assert.NoError(suite.T(), suite.accountService.Delete(suite.ctx, 2))

	suite.mockRepo.EXPECT().Delete(gomock.Any(), uint(3)).Return(gorm.ErrRecordNotFound)
	assert.ErrorIs(suite.T(), suite.accountService.Delete(suite.ctx, 3), apperrors.ErrAccountNotFound)
}

func (suite *AccountServiceTestSuite) TestRevealCredentials() {
	sealed, err := suite.sealer.Seal("hunter2")
	require.NoError(suite.T(), err)
	suite.mockRepo.EXPECT().GetByID(gomock.Any(), uint(2)).
		Return(&models.Account{ID: 2, EntityID: 1, Username: strPtr("admin"), Password: &sealed}, nil)

	resp, err := suite.accountService.RevealCredentials(suite.ctx, 2)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), uint(2), resp.AccountID)
	assert.Equal(suite.T(), "admin", *resp.Username)
	require.NotNil(suite.T(), resp.Password)
	assert.Equal(suite.T(), "hunter2", *resp.Password)
}

func (suite *AccountServiceTestSuite) TestRevealCredentials_LegacyPlaintext() {
	suite.mockRepo.EXPECT().GetByID(gomock.Any(), uint(2)).
		Return(&models.Account{ID: 2, Password: strPtr("stored-before-sealing")}, nil)

	resp, err := suite.accountService.RevealCredentials(suite.ctx, 2)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "stored-before-sealing", *resp.Password)
}

func (suite *AccountServiceTestSuite) TestRevealCredentials_NoPassword() {
	suite.mockRepo.EXPECT().GetByID(gomock.Any(), uint(2)).Return(&models.Account{ID: 2}, nil)

	resp, err := suite.accountService.RevealCredentials(suite.ctx, 2)

	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), resp.Password)
	assert.Nil(suite.T(), resp.Username)
}

func (suite *AccountServiceTestSuite) TestRevealCredentials_WrongKey() {
	other, err := credentials.NewSealer("some-other-secret")
	require.NoError(suite.T(), err)
	sealed, err := other.Seal("hunter2")
	require.NoError(suite.T(), err)
	suite.mockRepo.EXPECT().GetByID(gomock.Any(), uint(2)).Return(&models.Account{ID: 2, Password: &sealed}, nil)

	_, err = suite.accountService.RevealCredentials(suite.ctx, 2)

	assert.ErrorIs(suite.T(), err, apperrors.ErrSealedValueInvalid)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
