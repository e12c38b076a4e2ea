package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/veloxrp/econ_backend/internal/apperrors"
	"github.com/veloxrp/econ_backend/internal/core/domain"
	portssvc "github.com/veloxrp/econ_backend/internal/core/ports/services"
	"github.com/veloxrp/econ_backend/internal/core/services"
	"github.com/veloxrp/econ_backend/internal/handlers"
	"github.com/veloxrp/econ_backend/internal/middleware"
)

// --- Mock CharacterResolver ---

type MockCharacterResolver struct {
	mock.Mock
}

func (m *MockCharacterResolver) ResolveCharacter(ctx context.Context, sessionID string) (*domain.Character, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

var _ portssvc.CharacterResolver = (*MockCharacterResolver)(nil)

// --- Test Suite Setup ---

type AccountHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockAccount  *MockAccountService
	mockResolver *MockCharacterResolver
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.mockAccount = new(MockAccountService)
	suite.mockResolver = new(MockCharacterResolver)

	suite.router = gin.New()
	suite.router.Use(middleware.SessionMiddleware())
	handlers.RegisterHandlers(suite.router, services.ServiceProvider{
		AccountSvc: suite.mockAccount,
		EconomySvc: new(MockEconomyService),
		Resolver:   suite.mockResolver,
	})
}

func (suite *AccountHandlerTestSuite) get(path, sessionID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sessionID != "" {
		req.Header.Set(middleware.SessionHeader, sessionID)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestListMine_Success() {
	character := &domain.Character{CharacterID: 42, Name: "Ada Jenkins"}
	accounts := []domain.AccountWithRole{
		{
			Account: domain.Account{AccountID: 452411284, Label: "Savings", OwnerID: &character.CharacterID, Type: domain.AccountPersonal, Balance: 5000},
			Role:    domain.RoleOwner,
		},
	}

	suite.mockResolver.On("ResolveCharacter", mock.Anything, "session-7").Return(character, nil).Once()
	suite.mockAccount.On("ListAccountsForCharacter", mock.Anything, character.CharacterID).Return(accounts, nil).Once()

	w := suite.get("/api/v1/accounts/mine", "session-7")

	suite.Equal(http.StatusOK, w.Code)

	var body struct {
		Accounts []struct {
			AccountID int64  `json:"accountID"`
			Role      string `json:"role"`
		} `json:"accounts"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body.Accounts, 1)
	suite.Equal(int64(452411284), body.Accounts[0].AccountID)
	suite.Equal("owner", body.Accounts[0].Role)
	suite.mockResolver.AssertExpectations(suite.T())
	suite.mockAccount.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListMine_MissingSessionHeader() {
	w := suite.get("/api/v1/accounts/mine", "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockResolver.AssertNotCalled(suite.T(), "ResolveCharacter", mock.Anything, mock.Anything)
	suite.mockAccount.AssertNotCalled(suite.T(), "ListAccountsForCharacter", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestListMine_IgnoresClientSuppliedCharacterID() {
	character := &domain.Character{CharacterID: 42, Name: "Ada Jenkins"}

	suite.mockResolver.On("ResolveCharacter", mock.Anything, "session-7").Return(character, nil).Once()
	// The listing must be for the session's character, never the query param.
	suite.mockAccount.On("ListAccountsForCharacter", mock.Anything, character.CharacterID).Return([]domain.AccountWithRole{}, nil).Once()

	w := suite.get("/api/v1/accounts/mine?characterID=777", "session-7")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockAccount.AssertNotCalled(suite.T(), "ListAccountsForCharacter", mock.Anything, int64(777))
	suite.mockAccount.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListMine_UnknownSession() {
	suite.mockResolver.On("ResolveCharacter", mock.Anything, "stale-session").Return(nil, apperrors.ErrCharacterNotFound).Once()

	w := suite.get("/api/v1/accounts/mine", "stale-session")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccount.AssertNotCalled(suite.T(), "ListAccountsForCharacter", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockAccount.On("GetAccountByID", mock.Anything, int64(999)).Return(nil, apperrors.ErrAccountNotFound).Once()

	w := suite.get("/api/v1/accounts/999", "session-7")

	suite.Equal(http.StatusNotFound, w.Code)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
