package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/loopyard/loyalty_backend/internal/apperrors"
	"github.com/loopyard/loyalty_backend/internal/core/domain"
	portsrepo "github.com/loopyard/loyalty_backend/internal/core/ports/repositories"
	portssvc "github.com/loopyard/loyalty_backend/internal/core/ports/services"
	"github.com/loopyard/loyalty_backend/internal/dto"
	"github.com/loopyard/loyalty_backend/internal/metrics"
	"github.com/loopyard/loyalty_backend/internal/utils"
)

// maxCodeGenerationAttempts bounds the retry loop on code string collisions.
const maxCodeGenerationAttempts = 5

type codeService struct {
	BaseService
	codeRepo   portsrepo.CodeRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
	ledgerRepo portsrepo.LedgerRepositoryFacade
	venueRepo  portsrepo.VenueRepositoryFacade
	venues     portssvc.VenueOwnershipVerifier
	renderer   portssvc.CodeRenderer
	notifier   portssvc.Notifier
	metrics    *metrics.LoyaltyMetrics
	retention  time.Duration
}

// NewCodeService creates the code lifecycle service.
func NewCodeService(
	codeRepo portsrepo.CodeRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	venueRepo portsrepo.VenueRepositoryFacade,
	venues portssvc.VenueOwnershipVerifier,
	renderer portssvc.CodeRenderer,
	notifier portssvc.Notifier,
	loyaltyMetrics *metrics.LoyaltyMetrics,
	retention time.Duration,
) portssvc.CodeSvcFacade {
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	return &codeService{
		codeRepo:   codeRepo,
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		venueRepo:  venueRepo,
		venues:     venues,
		renderer:   renderer,
		notifier:   notifier,
		metrics:    loyaltyMetrics,
		retention:  retention,
	}
}

var _ portssvc.CodeSvcFacade = (*codeService)(nil)

// GenerateCode mints a single-use code for the earner's purchase. The code
// row is persisted before the renderer is called; a renderer failure leaves
// the unconsumed row to expire on its own.
func (s *codeService) GenerateCode(ctx context.Context, earnerUserID string, req dto.GenerateCodeRequest) (*dto.CodeResponse, error) {
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	earner, err := s.userRepo.FindUserByID(ctx, earnerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up earner: %w", err)
	}
	if !earner.IsEarner() {
		return nil, fmt.Errorf("%w: only earners can generate codes", apperrors.ErrForbidden)
	}

	venue, err := s.venueRepo.FindVenueByID(ctx, req.VenueID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up venue: %w", err)
	}
	if !venue.IsActive {
		return nil, apperrors.ErrNotFound
	}

	code, err := s.mintCode(ctx, earnerUserID, req)
	if err != nil {
		return nil, err
	}

	// The renderer is called strictly after the row is committed and never
	// inside a transaction.
	render, err := s.renderer.Generate(ctx, code.Code, code.VenueID, code.Amount)
	if err != nil {
		s.LogError(ctx, err, "Code renderer unavailable", "code_id", code.CodeID)
		return nil, fmt.Errorf("%w: code rendering failed", apperrors.ErrServiceUnavailable)
	}
	if !render.Success {
		s.LogError(ctx, errors.New(render.Message), "Code renderer rejected code", "code_id", code.CodeID)
		return nil, fmt.Errorf("%w: code rendering failed", apperrors.ErrServiceUnavailable)
	}

	s.metrics.RecordCodeGenerated()
	s.LogInfo(ctx, "Code issued", "code_id", code.CodeID, "venue_id", code.VenueID)

	return &dto.CodeResponse{
		Code:          code.Code,
		VenueID:       code.VenueID,
		Amount:        code.Amount,
		PointsPreview: code.Points(),
		ExpiresAt:     code.ExpiresAt,
		ImageData:     render.ImageData,
	}, nil
}

// mintCode generates an unused code string and persists the row, retrying a
// bounded number of times on collision. The uniqueness pre-check is only an
// optimization; the unique constraint on the insert is authoritative, so a
// string taken between the check and the insert re-enters the loop.
func (s *codeService) mintCode(ctx context.Context, earnerUserID string, req dto.GenerateCodeRequest) (*domain.Code, error) {
	for attempt := 0; attempt < maxCodeGenerationAttempts; attempt++ {
		codeStr, err := utils.GenerateCodeString()
		if err != nil {
			return nil, fmt.Errorf("failed to generate code string: %w", err)
		}
		exists, err := s.codeRepo.CodeExists(ctx, codeStr)
		if err != nil {
			return nil, fmt.Errorf("failed to check code uniqueness: %w", err)
		}
		if exists {
			continue
		}

		now := time.Now()
		code := domain.Code{
			CodeID:       uuid.NewString(),
			Code:         codeStr,
			VenueID:      req.VenueID,
			IssuerUserID: earnerUserID,
			Amount:       req.Amount,
			ExpiresAt:    now.Add(domain.CodeTTL),
			Used:         false,
			CreatedAt:    now,
		}
		if err := s.codeRepo.SaveCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			return nil, fmt.Errorf("failed to persist code: %w", err)
		}
		return &code, nil
	}
	return nil, fmt.Errorf("failed to generate a unique code after %d attempts", maxCodeGenerationAttempts)
}

// ValidateCode consumes a code on behalf of a venue operator and credits the
// earner. The consume and the EARN entry commit together; every failure
// before the commit leaves the code untouched.
func (s *codeService) ValidateCode(ctx context.Context, operatorUserID string, req dto.ValidateCodeRequest) (*domain.LedgerEntry, error) {
	operator, err := s.userRepo.FindUserByID(ctx, operatorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up operator: %w", err)
	}
	if !operator.IsIssuer() {
		s.metrics.RecordCodeValidated(metrics.OutcomeForbidden)
		return nil, fmt.Errorf("%w: only venue operators can validate codes", apperrors.ErrForbidden)
	}

	code, err := s.codeRepo.FindCodeByString(ctx, req.Code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.metrics.RecordCodeValidated(metrics.OutcomeNotFound)
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up code: %w", err)
	}

	// Operators can only consume codes issued for their own venue.
	if err := s.venues.VerifyVenueOwnership(ctx, code.VenueID, operatorUserID); err != nil {
		s.metrics.RecordCodeValidated(metrics.OutcomeForbidden)
		return nil, err
	}

	now := time.Now()
	if code.Used {
		s.metrics.RecordCodeValidated(metrics.OutcomeAlreadyUsed)
		return nil, fmt.Errorf("%w: code has already been used", apperrors.ErrConflict)
	}
	if code.IsExpired(now) {
		s.metrics.RecordCodeValidated(metrics.OutcomeExpired)
		return nil, fmt.Errorf("%w: code has expired", apperrors.ErrConflict)
	}

	// Issuance enforces the binding, so an unbound code can only mean a
	// corrupted row.
	if code.IssuerUserID == "" {
		s.metrics.RecordCodeValidated(metrics.OutcomeError)
		return nil, fmt.Errorf("%w: code has no issuing account", apperrors.ErrServiceUnavailable)
	}

	// External authenticity check, outside the atomic unit.
	verify, err := s.renderer.Verify(ctx, code.Code)
	if err != nil {
		s.LogError(ctx, err, "Code verifier unavailable", "code_id", code.CodeID)
		s.metrics.RecordCodeValidated(metrics.OutcomeError)
		return nil, fmt.Errorf("%w: code verification failed", apperrors.ErrServiceUnavailable)
	}
	if !verify.Valid {
		s.metrics.RecordCodeValidated(metrics.OutcomeError)
		return nil, fmt.Errorf("%w: code rejected: %s", apperrors.ErrConflict, verify.Reason)
	}

	points := code.Points()
	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		UserID:      code.IssuerUserID,
		VenueID:     code.VenueID,
		Amount:      code.Amount,
		PointsDelta: points,
		Kind:        domain.EntryEarn,
		Description: fmt.Sprintf("Earned from purchase of %s", code.Amount.StringFixed(2)),
		CreatedAt:   now,
	}

	if err := s.ledgerRepo.PostEarnEntry(ctx, *code, operatorUserID, entry); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// Lost the race: another validation consumed the code first.
			s.metrics.RecordCodeValidated(metrics.OutcomeAlreadyUsed)
			return nil, fmt.Errorf("%w: code has already been used", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to post earn entry: %w", err)
	}

	s.metrics.RecordCodeValidated(metrics.OutcomeSuccess)
	s.metrics.RecordPointsAwarded(points)
	s.LogInfo(ctx, "Code validated", "code_id", code.CodeID, "points", points)

	// Notify after commit; a failed or dropped push never affects the result.
	if earner, err := s.userRepo.FindUserByID(ctx, code.IssuerUserID); err == nil {
		s.notifier.NotifyPointsUpdate(earner.UserID, string(domain.EntryEarn), points, earner.PointsBalance)
	}

	return &entry, nil
}

// CleanupExpiredCodes prunes consumed codes older than the retention window.
// Ledger entries are never touched.
func (s *codeService) CleanupExpiredCodes(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.retention)
	deleted, err := s.codeRepo.DeleteUsedCodesBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up codes: %w", err)
	}
	if deleted > 0 {
		s.LogInfo(ctx, "Pruned consumed codes", "deleted", deleted)
	}
	return deleted, nil
}
