package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/loopyard/loyalty_backend/internal/core/domain"
	portssvc "github.com/loopyard/loyalty_backend/internal/core/ports/services"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeactivateUser(ctx context.Context, userID string, deactivatedAt time.Time) error {
	args := m.Called(ctx, userID, deactivatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserForUpdate(ctx context.Context, tx pgx.Tx, userID string) (*domain.User, error) {
	args := m.Called(ctx, tx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, userID string, delta int64, now time.Time) error {
	args := m.Called(ctx, tx, userID, delta, now)
	return args.Error(0)
}

// --- Mock VenueRepository ---

type MockVenueRepository struct {
	mock.Mock
}

func (m *MockVenueRepository) FindVenueByID(ctx context.Context, venueID string) (*domain.Venue, error) {
	args := m.Called(ctx, venueID)
	var venue *domain.Venue
	if args.Get(0) != nil {
		venue = args.Get(0).(*domain.Venue)
	}
	return venue, args.Error(1)
}

func (m *MockVenueRepository) FindVenueByOwner(ctx context.Context, ownerUserID string) (*domain.Venue, error) {
	args := m.Called(ctx, ownerUserID)
	var venue *domain.Venue
	if args.Get(0) != nil {
		venue = args.Get(0).(*domain.Venue)
	}
	return venue, args.Error(1)
}

func (m *MockVenueRepository) ListActiveVenues(ctx context.Context, limit int, offset int) ([]domain.Venue, error) {
	args := m.Called(ctx, limit, offset)
	var venues []domain.Venue
	if args.Get(0) != nil {
		venues = args.Get(0).([]domain.Venue)
	}
	return venues, args.Error(1)
}

func (m *MockVenueRepository) SearchVenues(ctx context.Context, term string, limit int) ([]domain.Venue, error) {
	args := m.Called(ctx, term, limit)
	var venues []domain.Venue
	if args.Get(0) != nil {
		venues = args.Get(0).([]domain.Venue)
	}
	return venues, args.Error(1)
}

func (m *MockVenueRepository) SaveVenue(ctx context.Context, venue domain.Venue) error {
	args := m.Called(ctx, venue)
	return args.Error(0)
}

func (m *MockVenueRepository) UpdateVenue(ctx context.Context, venue domain.Venue) error {
	args := m.Called(ctx, venue)
	return args.Error(0)
}

// --- Mock CodeRepository ---

type MockCodeRepository struct {
	mock.Mock
}

func (m *MockCodeRepository) FindCodeByString(ctx context.Context, code string) (*domain.Code, error) {
	args := m.Called(ctx, code)
	var c *domain.Code
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Code)
	}
	return c, args.Error(1)
}

func (m *MockCodeRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockCodeRepository) SaveCode(ctx context.Context, code domain.Code) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockCodeRepository) DeleteUsedCodesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCodeRepository) ConsumeCodeInTx(ctx context.Context, tx pgx.Tx, codeID string, operatorUserID string, now time.Time) error {
	args := m.Called(ctx, tx, codeID, operatorUserID, now)
	return args.Error(0)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	var entry *domain.LedgerEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.LedgerEntry)
	}
	return entry, args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockLedgerRepository) ListEntriesByVenue(ctx context.Context, venueID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, venueID, limit, nextToken)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockLedgerRepository) SumPointsDeltaByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) PostEarnEntry(ctx context.Context, code domain.Code, operatorUserID string, entry domain.LedgerEntry) error {
	args := m.Called(ctx, code, operatorUserID, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) PostRedeemEntry(ctx context.Context, entry domain.LedgerEntry, redemption domain.Redemption) error {
	args := m.Called(ctx, entry, redemption)
	return args.Error(0)
}

// --- Mock RewardRepository ---

type MockRewardRepository struct {
	mock.Mock
}

func (m *MockRewardRepository) FindRewardByID(ctx context.Context, rewardID string) (*domain.Reward, error) {
	args := m.Called(ctx, rewardID)
	var reward *domain.Reward
	if args.Get(0) != nil {
		reward = args.Get(0).(*domain.Reward)
	}
	return reward, args.Error(1)
}

func (m *MockRewardRepository) ListActiveRewards(ctx context.Context, limit int, offset int) ([]domain.Reward, error) {
	args := m.Called(ctx, limit, offset)
	var rewards []domain.Reward
	if args.Get(0) != nil {
		rewards = args.Get(0).([]domain.Reward)
	}
	return rewards, args.Error(1)
}

func (m *MockRewardRepository) ListRewardsByVenue(ctx context.Context, venueID string) ([]domain.Reward, error) {
	args := m.Called(ctx, venueID)
	var rewards []domain.Reward
	if args.Get(0) != nil {
		rewards = args.Get(0).([]domain.Reward)
	}
	return rewards, args.Error(1)
}

func (m *MockRewardRepository) ListAffordableRewards(ctx context.Context, balance int64) ([]domain.Reward, error) {
	args := m.Called(ctx, balance)
	var rewards []domain.Reward
	if args.Get(0) != nil {
		rewards = args.Get(0).([]domain.Reward)
	}
	return rewards, args.Error(1)
}

func (m *MockRewardRepository) SaveReward(ctx context.Context, reward domain.Reward) error {
	args := m.Called(ctx, reward)
	return args.Error(0)
}

func (m *MockRewardRepository) UpdateReward(ctx context.Context, reward domain.Reward) error {
	args := m.Called(ctx, reward)
	return args.Error(0)
}

func (m *MockRewardRepository) SaveRedemptionInTx(ctx context.Context, tx pgx.Tx, redemption domain.Redemption) error {
	args := m.Called(ctx, tx, redemption)
	return args.Error(0)
}

// --- Mock CodeRenderer ---

type MockCodeRenderer struct {
	mock.Mock
}

func (m *MockCodeRenderer) Generate(ctx context.Context, code string, venueID string, amount decimal.Decimal) (*portssvc.RenderResult, error) {
	args := m.Called(ctx, code, venueID, amount)
	var result *portssvc.RenderResult
	if args.Get(0) != nil {
		result = args.Get(0).(*portssvc.RenderResult)
	}
	return result, args.Error(1)
}

func (m *MockCodeRenderer) Verify(ctx context.Context, code string) (*portssvc.VerifyResult, error) {
	args := m.Called(ctx, code)
	var result *portssvc.VerifyResult
	if args.Get(0) != nil {
		result = args.Get(0).(*portssvc.VerifyResult)
	}
	return result, args.Error(1)
}

// --- Recording Notifier ---

type notifiedEvent struct {
	userID     string
	eventKind  string
	points     int64
	newBalance int64
}

// RecordingNotifier captures pushed events for assertions.
type RecordingNotifier struct {
	events []notifiedEvent
}

func (n *RecordingNotifier) NotifyPointsUpdate(userID string, eventKind string, points int64, newBalance int64) {
	n.events = append(n.events, notifiedEvent{userID: userID, eventKind: eventKind, points: points, newBalance: newBalance})
}

// --- Stub VenueOwnershipVerifier ---

type stubVenueVerifier struct {
	err error
}

func (v *stubVenueVerifier) VerifyVenueOwnership(ctx context.Context, venueID string, userID string) error {
	return v.err
}
