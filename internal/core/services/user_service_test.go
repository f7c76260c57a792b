package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/loopyard/loyalty_backend/internal/apperrors"
	"github.com/loopyard/loyalty_backend/internal/core/domain"
	portssvc "github.com/loopyard/loyalty_backend/internal/core/ports/services"
	"github.com/loopyard/loyalty_backend/internal/core/services"
	"github.com/loopyard/loyalty_backend/internal/dto"
	"github.com/loopyard/loyalty_backend/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

func (suite *UserServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Email:     "alice@example.com",
		Password:  "password123",
		FirstName: "Alice",
		LastName:  "Nguyen",
		Role:      "EARNER",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == req.Email && user.Role == domain.RoleEarner &&
			user.PointsBalance == 0 && user.IsActive &&
			user.PasswordHash != req.Password
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal(int64(0), user.PointsBalance, "New accounts start at zero balance")
	suite.True(utils.CheckPasswordHash(req.Password, user.PasswordHash))

	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Email:     "alice@example.com",
		Password:  "password123",
		FirstName: "Alice",
		LastName:  "Nguyen",
		Role:      "ISSUER",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestRegister_UnknownRole() {
	ctx := context.Background()

	_, err := suite.service.Register(ctx, dto.RegisterRequest{
		Email:    "bob@example.com",
		Password: "password123",
		Role:     "ADMIN",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)

	stored := &domain.User{UserID: "user-1", Email: "alice@example.com", PasswordHash: hash, IsActive: true}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "alice@example.com").Return(stored, nil).Once()

	user, err := suite.service.Authenticate(ctx, "alice@example.com", "password123")

	suite.Require().NoError(err)
	suite.Equal("user-1", user.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)

	stored := &domain.User{UserID: "user-1", Email: "alice@example.com", PasswordHash: hash, IsActive: true}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "alice@example.com").Return(stored, nil).Once()

	_, err = suite.service.Authenticate(ctx, "alice@example.com", "wrong-password")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownEmailSameError() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Authenticate(ctx, "nobody@example.com", "password123")

	suite.Require().Error(err)
	// Unknown accounts and bad passwords are indistinguishable to callers.
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticate_InactiveAccount() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)

	stored := &domain.User{UserID: "user-1", Email: "alice@example.com", PasswordHash: hash, IsActive: false}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "alice@example.com").Return(stored, nil).Once()

	_, err = suite.service.Authenticate(ctx, "alice@example.com", "password123")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
