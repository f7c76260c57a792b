package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/loopyard/loyalty_backend/internal/apperrors"
	"github.com/loopyard/loyalty_backend/internal/core/domain"
	portssvc "github.com/loopyard/loyalty_backend/internal/core/ports/services"
	"github.com/loopyard/loyalty_backend/internal/core/services"
	"github.com/loopyard/loyalty_backend/internal/dto"
	"github.com/loopyard/loyalty_backend/internal/metrics"
)

type CodeServiceTestSuite struct {
	suite.Suite
	mockCodeRepo   *MockCodeRepository
	mockUserRepo   *MockUserRepository
	mockLedgerRepo *MockLedgerRepository
	mockVenueRepo  *MockVenueRepository
	mockRenderer   *MockCodeRenderer
	verifier       *stubVenueVerifier
	notifier       *RecordingNotifier
	service        portssvc.CodeSvcFacade
}

func (suite *CodeServiceTestSuite) SetupTest() {
	suite.mockCodeRepo = new(MockCodeRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockVenueRepo = new(MockVenueRepository)
	suite.mockRenderer = new(MockCodeRenderer)
	suite.verifier = &stubVenueVerifier{}
	suite.notifier = &RecordingNotifier{}
	suite.service = services.NewCodeService(
		suite.mockCodeRepo,
		suite.mockUserRepo,
		suite.mockLedgerRepo,
		suite.mockVenueRepo,
		suite.verifier,
		suite.mockRenderer,
		suite.notifier,
		metrics.NewLoyaltyMetricsWithRegisterer(prometheus.NewRegistry()),
		24*time.Hour,
	)
}

func (suite *CodeServiceTestSuite) earner() *domain.User {
	return &domain.User{UserID: "earner-1", Role: domain.RoleEarner, PointsBalance: 100, IsActive: true}
}

func (suite *CodeServiceTestSuite) operator() *domain.User {
	return &domain.User{UserID: "operator-1", Role: domain.RoleIssuer, IsActive: true}
}

func (suite *CodeServiceTestSuite) activeVenue() *domain.Venue {
	return &domain.Venue{VenueID: "venue-1", OwnerUserID: "operator-1", IsActive: true}
}

// --- GenerateCode ---

func (suite *CodeServiceTestSuite) TestGenerateCode_Success() {
	ctx := context.Background()
	req := dto.GenerateCodeRequest{VenueID: "venue-1", Amount: decimal.RequireFromString("12.75")}

	suite.mockUserRepo.On("FindUserByID", ctx, "earner-1").Return(suite.earner(), nil).Once()
	suite.mockVenueRepo.On("FindVenueByID", ctx, "venue-1").Return(suite.activeVenue(), nil).Once()
	suite.mockCodeRepo.On("CodeExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
	suite.mockCodeRepo.On("SaveCode", ctx, mock.MatchedBy(func(code domain.Code) bool {
		return code.VenueID == "venue-1" && code.IssuerUserID == "earner-1" && !code.Used &&
			code.ExpiresAt.Sub(code.CreatedAt) == domain.CodeTTL
	})).Return(nil).Once()
	suite.mockRenderer.On("Generate", ctx, mock.AnythingOfType("string"), "venue-1", req.Amount).
		Return(&portssvc.RenderResult{Success: true, ImageData: "img-data"}, nil).Once()

	resp, err := suite.service.GenerateCode(ctx, "earner-1", req)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal("venue-1", resp.VenueID)
	suite.Equal(int64(12), resp.PointsPreview) // fractional part is dropped
	suite.Equal("img-data", resp.ImageData)
	suite.Regexp(`^QR-[0-9A-F]{8}$`, resp.Code)

	suite.mockCodeRepo.AssertExpectations(suite.T())
	suite.mockRenderer.AssertExpectations(suite.T())
}

func (suite *CodeServiceTestSuite) TestGenerateCode_RetriesOnCollision() {
	ctx := context.Background()
	req := dto.GenerateCodeRequest{VenueID: "venue-1", Amount: decimal.NewFromInt(5)}

	suite.mockUserRepo.On("FindUserByID", ctx, "earner-1").Return(suite.earner(), nil).Once()
	suite.mockVenueRepo.On("FindVenueByID", ctx, "venue-1").Return(suite.activeVenue(), nil).Once()
	suite.mockCodeRepo.On("CodeExists", ctx, mock.AnythingOfType("string")).Return(true, nil).Once()
	suite.mockCodeRepo.On("CodeExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
	suite.mockCodeRepo.On("SaveCode", ctx, mock.AnythingOfType("domain.Code")).Return(nil).Once()
	suite.mockRenderer.On("Generate", ctx, mock.AnythingOfType("string"), "venue-1", req.Amount).
		Return(&portssvc.RenderResult{Success: true, ImageData: "img"}, nil).Once()

	_, err := suite.service.GenerateCode(ctx, "earner-1", req)

	suite.Require().NoError(err)
	suite.mockCodeRepo.AssertNumberOfCalls(suite.T(), "CodeExists", 2)
}

// A code string can be taken between the uniqueness check and the insert;
// the duplicate-key failure from the insert re-mints instead of surfacing.
func (suite *CodeServiceTestSuite) TestGenerateCode_RetriesWhenInsertLosesRace() {
	ctx := context.Background()
	req := dto.GenerateCodeRequest{VenueID: "venue-1", Amount: decimal.NewFromInt(5)}

	suite.mockUserRepo.On("FindUserByID", ctx, "earner-1").Return(suite.earner(), nil).Once()
	suite.mockVenueRepo.On("FindVenueByID", ctx, "venue-1").Return(suite.activeVenue(), nil).Once()
	suite.mockCodeRepo.On("CodeExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Twice()
	suite.mockCodeRepo.On("SaveCode", ctx, mock.AnythingOfType("domain.Code")).
		Return(fmt.Errorf("%w: code string already exists", apperrors.ErrDuplicate)).Once()
	suite.mockCodeRepo.On("SaveCode", ctx, mock.AnythingOfType("domain.Code")).Return(nil).Once()
	suite.mockRenderer.On("Generate", ctx, mock.AnythingOfType("string"), "venue-1", req.Amount).
		Return(&portssvc.RenderResult{Success: true, ImageData: "img"}, nil).Once()

	resp, err := suite.service.GenerateCode(ctx, "earner-1", req)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.mockCodeRepo.AssertNumberOfCalls(suite.T(), "SaveCode", 2)
}

func (suite *CodeServiceTestSuite) TestGenerateCode_RejectsNonEarner() {
	ctx := context.Background()
	req := dto.GenerateCodeRequest{VenueID: "venue-1", Amount: decimal.NewFromInt(5)}

	suite.mockUserRepo.On("FindUserByID", ctx, "operator-1").Return(suite.operator(), nil).Once()

	_, err := suite.service.GenerateCode(ctx, "operator-1", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockCodeRepo.AssertNotCalled(suite.T(), "SaveCode", mock.Anything, mock.Anything)
}

func (suite *CodeServiceTestSuite) TestGenerateCode_RejectsNonPositiveAmount() {
	ctx := context.Background()
	req := dto.GenerateCodeRequest{VenueID: "venue-1", Amount: decimal.Zero}

	_, err := suite.service.GenerateCode(ctx, "earner-1", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CodeServiceTestSuite) TestGenerateCode_RendererFailureLeavesRow() {
	ctx := context.Background()
	req := dto.GenerateCodeRequest{VenueID: "venue-1", Amount: decimal.NewFromInt(10)}

	suite.mockUserRepo.On("FindUserByID", ctx, "earner-1").Return(suite.earner(), nil).Once()
	suite.mockVenueRepo.On("FindVenueByID", ctx, "venue-1").Return(suite.activeVenue(), nil).Once()
	suite.mockCodeRepo.On("CodeExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
	suite.mockCodeRepo.On("SaveCode", ctx, mock.AnythingOfType("domain.Code")).Return(nil).Once()
	suite.mockRenderer.On("Generate", ctx, mock.AnythingOfType("string"), "venue-1", req.Amount).
		Return(nil, errors.New("connection refused")).Once()

	_, err := suite.service.GenerateCode(ctx, "earner-1", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrServiceUnavailable)
	// The row was persisted before the renderer call; it is left to expire.
	suite.mockCodeRepo.AssertCalled(suite.T(), "SaveCode", ctx, mock.AnythingOfType("domain.Code"))
}

// --- ValidateCode ---

func (suite *CodeServiceTestSuite) validCode() *domain.Code {
	now := time.Now()
	return &domain.Code{
		CodeID:       "code-1",
		Code:         "QR-0A1B2C3D",
		VenueID:      "venue-1",
		IssuerUserID: "earner-1",
		Amount:       decimal.RequireFromString("9.99"),
		ExpiresAt:    now.Add(10 * time.Minute),
		CreatedAt:    now.Add(-5 * time.Minute),
	}
}

func (suite *CodeServiceTestSuite) TestValidateCode_Success() {
	ctx := context.Background()
	code := suite.validCode()
	req := dto.ValidateCodeRequest{Code: code.Code}

	suite.mockUserRepo.On("FindUserByID", ctx, "operator-1").Return(suite.operator(), nil).Once()
	suite.mockCodeRepo.On("FindCodeByString", ctx, code.Code).Return(code, nil).Once()
	suite.mockRenderer.On("Verify", ctx, code.Code).Return(&portssvc.VerifyResult{Valid: true}, nil).Once()
	suite.mockLedgerRepo.On("PostEarnEntry", ctx, *code, "operator-1", mock.MatchedBy(func(entry domain.LedgerEntry) bool {
		return entry.UserID == "earner-1" && entry.VenueID == "venue-1" &&
			entry.PointsDelta == 9 && entry.Kind == domain.EntryEarn
	})).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, "earner-1").
		Return(&domain.User{UserID: "earner-1", Role: domain.RoleEarner, PointsBalance: 109}, nil).Once()

	entry, err := suite.service.ValidateCode(ctx, "operator-1", req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(int64(9), entry.PointsDelta)

	suite.Require().Len(suite.notifier.events, 1)
	suite.Equal("earner-1", suite.notifier.events[0].userID)
	suite.Equal("EARN", suite.notifier.events[0].eventKind)
	suite.Equal(int64(9), suite.notifier.events[0].points)
	suite.Equal(int64(109), suite.notifier.events[0].newBalance)

	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *CodeServiceTestSuite) TestValidateCode_AlreadyUsed() {
	ctx := context.Background()
	code := suite.validCode()
	code.Used = true

	suite.mockUserRepo.On("FindUserByID", ctx, "operator-1").Return(suite.operator(), nil).Once()
	suite.mockCodeRepo.On("FindCodeByString", ctx, code.Code).Return(code, nil).Once()

	_, err := suite.service.ValidateCode(ctx, "operator-1", dto.ValidateCodeRequest{Code: code.Code})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "PostEarnEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.Empty(suite.notifier.events)
}

func (suite *CodeServiceTestSuite) TestValidateCode_Expired() {
	ctx := context.Background()
	code := suite.validCode()
	code.ExpiresAt = time.Now().Add(-time.Minute)

	suite.mockUserRepo.On("FindUserByID", ctx, "operator-1").Return(suite.operator(), nil).Once()
	suite.mockCodeRepo.On("FindCodeByString", ctx, code.Code).Return(code, nil).Once()

	_, err := suite.service.ValidateCode(ctx, "operator-1", dto.ValidateCodeRequest{Code: code.Code})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "PostEarnEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CodeServiceTestSuite) TestValidateCode_NotFound() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, "operator-1").Return(suite.operator(), nil).Once()
	suite.mockCodeRepo.On("FindCodeByString", ctx, "QR-FFFFFFFF").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ValidateCode(ctx, "operator-1", dto.ValidateCodeRequest{Code: "QR-FFFFFFFF"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CodeServiceTestSuite) TestValidateCode_RejectsNonIssuer() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, "earner-1").Return(suite.earner(), nil).Once()

	_, err := suite.service.ValidateCode(ctx, "earner-1", dto.ValidateCodeRequest{Code: "QR-0A1B2C3D"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CodeServiceTestSuite) TestValidateCode_WrongVenueOperator() {
	ctx := context.Background()
	code := suite.validCode()
	suite.verifier.err = apperrors.ErrForbidden

	suite.mockUserRepo.On("FindUserByID", ctx, "operator-1").Return(suite.operator(), nil).Once()
	suite.mockCodeRepo.On("FindCodeByString", ctx, code.Code).Return(code, nil).Once()

	_, err := suite.service.ValidateCode(ctx, "operator-1", dto.ValidateCodeRequest{Code: code.Code})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CodeServiceTestSuite) TestValidateCode_LostRaceSurfacesConflict() {
	ctx := context.Background()
	code := suite.validCode()

	suite.mockUserRepo.On("FindUserByID", ctx, "operator-1").Return(suite.operator(), nil).Once()
	suite.mockCodeRepo.On("FindCodeByString", ctx, code.Code).Return(code, nil).Once()
	suite.mockRenderer.On("Verify", ctx, code.Code).Return(&portssvc.VerifyResult{Valid: true}, nil).Once()
	suite.mockLedgerRepo.On("PostEarnEntry", ctx, *code, "operator-1", mock.AnythingOfType("domain.LedgerEntry")).
		Return(apperrors.ErrConflict).Once()

	_, err := suite.service.ValidateCode(ctx, "operator-1", dto.ValidateCodeRequest{Code: code.Code})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Empty(suite.notifier.events, "Loser of the race must not notify")
}

func (suite *CodeServiceTestSuite) TestValidateCode_UnboundCodeIsServiceError() {
	ctx := context.Background()
	code := suite.validCode()
	code.IssuerUserID = ""

	suite.mockUserRepo.On("FindUserByID", ctx, "operator-1").Return(suite.operator(), nil).Once()
	suite.mockCodeRepo.On("FindCodeByString", ctx, code.Code).Return(code, nil).Once()

	_, err := suite.service.ValidateCode(ctx, "operator-1", dto.ValidateCodeRequest{Code: code.Code})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrServiceUnavailable)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "PostEarnEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CodeServiceTestSuite) TestValidateCode_VerifierRejectsCode() {
	ctx := context.Background()
	code := suite.validCode()

	suite.mockUserRepo.On("FindUserByID", ctx, "operator-1").Return(suite.operator(), nil).Once()
	suite.mockCodeRepo.On("FindCodeByString", ctx, code.Code).Return(code, nil).Once()
	suite.mockRenderer.On("Verify", ctx, code.Code).
		Return(&portssvc.VerifyResult{Valid: false, Reason: "signature mismatch"}, nil).Once()

	_, err := suite.service.ValidateCode(ctx, "operator-1", dto.ValidateCodeRequest{Code: code.Code})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), "signature mismatch")
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "PostEarnEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CodeServiceTestSuite) TestValidateCode_VerifierUnavailable() {
	ctx := context.Background()
	code := suite.validCode()

	suite.mockUserRepo.On("FindUserByID", ctx, "operator-1").Return(suite.operator(), nil).Once()
	suite.mockCodeRepo.On("FindCodeByString", ctx, code.Code).Return(code, nil).Once()
	suite.mockRenderer.On("Verify", ctx, code.Code).Return(nil, errors.New("timeout")).Once()

	_, err := suite.service.ValidateCode(ctx, "operator-1", dto.ValidateCodeRequest{Code: code.Code})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrServiceUnavailable)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "PostEarnEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- CleanupExpiredCodes ---

func (suite *CodeServiceTestSuite) TestCleanupExpiredCodes() {
	ctx := context.Background()

	suite.mockCodeRepo.On("DeleteUsedCodesBefore", ctx, mock.AnythingOfType("time.Time")).Return(int64(3), nil).Once()

	deleted, err := suite.service.CleanupExpiredCodes(ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(3), deleted)
}

func TestCodeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CodeServiceTestSuite))
}
