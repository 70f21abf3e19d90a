package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"entity-tracker-backend/internal/api/handlers"
	apperrors "entity-tracker-backend/internal/errors"
	"entity-tracker-backend/internal/mocks"
	"entity-tracker-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// AccountHandlerTestSuite defines the test suite for AccountHandler
type AccountHandlerTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockAccountSvc *mocks.MockAccountServiceInterface
	router         *gin.Engine
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockAccountSvc = mocks.NewMockAccountServiceInterface(suite.ctrl)
	handler := handlers.NewAccountHandler(suite.mockAccountSvc)

	suite.router = gin.New()
	suite.router.GET("/entities/:id/accounts", handler.ListEntityAccounts)
	suite.router.POST("/entities/:id/accounts", handler.CreateAccount)
	suite.router.GET("/accounts/:id", handler.GetAccount)
	suite.router.PATCH("/accounts/:id", handler.UpdateAccount)
	suite.router.DELETE("/accounts/:id", handler.DeleteAccount)
	suite.router.GET("/accounts/:id/credentials", handler.GetCredentials)
}

func (suite *AccountHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AccountHandlerTestSuite) serve(method, url, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AccountHandlerTestSuite) TestListEntityAccounts_UnknownEntity() {
	suite.mockAccountSvc.EXPECT().GetByEntityID(gomock.Any(), uint(404)).Return(nil, apperrors.ErrEntityNotFound)

	w := suite.serve(http.MethodGet, "/entities/404/accounts", "")

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	suite.mockAccountSvc.EXPECT().Create(gomock.Any(), uint(1), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uint, req *service.CreateAccountRequest) (*service.AccountResponse, error) {
			assert.Equal(suite.T(), "Operating", req.AccountName)
			assert.Equal(suite.T(), "hunter2", *req.Password)
			return &service.AccountResponse{ID: 4, EntityID: 1, AccountName: "Operating", HasPassword: true}, nil
		})

	w := suite.serve(http.MethodPost, "/entities/1/accounts", `{"account_name":"Operating","password":"hunter2"}`)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `"has_password":true`)
	assert.NotContains(suite.T(), w.Body.String(), "hunter2")
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidEntityID() {
	w := suite.serve(http.MethodPost, "/entities/x/accounts", `{"account_name":"Operating"}`)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Invalid entity ID")
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockAccountSvc.EXPECT().GetByID(gomock.Any(), uint(7)).Return(nil, apperrors.ErrAccountNotFound)

	w := suite.serve(http.MethodGet, "/accounts/7", "")

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "account not found")
}

func (suite *AccountHandlerTestSuite) TestUpdateAccount_NullBalanceRejected() {
	suite.mockAccountSvc.EXPECT().Update(gomock.Any(), uint(7), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uint, req *service.UpdateAccountRequest) (*service.AccountResponse, error) {
			assert.True(suite.T(), req.Balance.Null)
			return nil, apperrors.NewValidationError("balance", "cannot be null")
		})

	w := suite.serve(http.MethodPatch, "/accounts/7", `{"balance":null}`)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount() {
	suite.mockAccountSvc.EXPECT().Delete(gomock.Any(), uint(7)).Return(nil)

	w := suite.serve(http.MethodDelete, "/accounts/7", "")

	assert.Equal(suite.T(), http.StatusNoContent, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetCredentials() {
	password := "hunter2"
	username := "admin"
	suite.mockAccountSvc.EXPECT().RevealCredentials(gomock.Any(), uint(7)).
		Return(&service.CredentialsResponse{AccountID: 7, Username: &username, Password: &password}, nil)

	w := suite.serve(http.MethodGet, "/accounts/7/credentials", "")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "no-store", w.Header().Get("Cache-Control"))
	assert.JSONEq(suite.T(), `{"account_id":7,"username":"admin","password":"hunter2"}`, w.Body.String())
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
