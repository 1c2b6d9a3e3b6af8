package services

import (
	"context"
	"testing"
	"time"

	"dinemart/internal/common"
	"dinemart/internal/models"
	"dinemart/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReservationServiceTestSuite struct {
	suite.Suite
	reservationRepo *MockReservationRepository
	tableRepo       *MockTableRepository
	restaurantRepo  *MockRestaurantRepository
	notifier        *recordingNotifier
	svc             *reservationService
	now             time.Time
	restaurantID    uuid.UUID
	userID          uuid.UUID
	ctx             context.Context
}

func (suite *ReservationServiceTestSuite) SetupTest() {
	suite.reservationRepo = new(MockReservationRepository)
	suite.tableRepo = new(MockTableRepository)
	suite.restaurantRepo = new(MockRestaurantRepository)
	suite.notifier = &recordingNotifier{}
	suite.now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	suite.svc = &reservationService{
		reservationRepo: suite.reservationRepo,
		tableRepo:       suite.tableRepo,
		restaurantRepo:  suite.restaurantRepo,
		notifier:        suite.notifier,
		now:             func() time.Time { return suite.now },
	}
	suite.restaurantID = uuid.New()
	suite.userID = uuid.New()
	suite.ctx = context.Background()
}

func TestReservationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReservationServiceTestSuite))
}

func (suite *ReservationServiceTestSuite) restaurant() *models.Restaurant {
	return &models.Restaurant{ID: suite.restaurantID, OwnerID: uuid.New(), Name: "Testaurant", IsActive: true}
}

func (suite *ReservationServiceTestSuite) table(capacity int) *models.Table {
	return &models.Table{
		ID:           uuid.New(),
		RestaurantID: suite.restaurantID,
		TableNumber:  "T1",
		Capacity:     capacity,
		IsAvailable:  true,
	}
}

func (suite *ReservationServiceTestSuite) reservation(status models.ReservationStatus) *models.Reservation {
	return &models.Reservation{
		ID:                uuid.New(),
		UserID:            suite.userID,
		RestaurantID:      suite.restaurantID,
		ReservationNumber: "RES-20250615-XYZ789",
		GuestCount:        4,
		StartsAt:          suite.now.Add(6 * time.Hour),
		Status:            status,
	}
}

func (suite *ReservationServiceTestSuite) TestCreate_WithoutTable() {
	suite.restaurantRepo.On("GetByID", suite.ctx, suite.restaurantID).Return(suite.restaurant(), nil)
	suite.reservationRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Reservation")).Return(nil)

	res, err := suite.svc.CreateReservation(suite.ctx, &CreateReservationInput{
		UserID:       suite.userID,
		RestaurantID: suite.restaurantID,
		StartsAt:     suite.now.Add(6 * time.Hour),
		GuestCount:   2,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ReservationPending, res.Status)
	assert.Contains(suite.T(), res.ReservationNumber, "RES-20250615-")
	suite.reservationRepo.AssertNotCalled(suite.T(), "CreateBooked")
}

func (suite *ReservationServiceTestSuite) TestCreate_WithTableUsesConflictWindow() {
	table := suite.table(4)
	startsAt := suite.now.Add(6 * time.Hour)
	suite.restaurantRepo.On("GetByID", suite.ctx, suite.restaurantID).Return(suite.restaurant(), nil)
	suite.tableRepo.On("GetByID", suite.ctx, table.ID).Return(table, nil)
	suite.reservationRepo.On("CreateBooked", suite.ctx, mock.Anything,
		startsAt.Add(-time.Hour), startsAt.Add(time.Hour)).Return(nil)

	res, err := suite.svc.CreateReservation(suite.ctx, &CreateReservationInput{
		UserID:       suite.userID,
		RestaurantID: suite.restaurantID,
		TableID:      &table.ID,
		StartsAt:     startsAt,
		GuestCount:   4,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), &table.ID, res.TableID)
	suite.reservationRepo.AssertCalled(suite.T(), "CreateBooked", suite.ctx, mock.Anything,
		startsAt.Add(-time.Hour), startsAt.Add(time.Hour))
}

func (suite *ReservationServiceTestSuite) TestCreate_LosingBookingRaceConflicts() {
	table := suite.table(4)
	suite.restaurantRepo.On("GetByID", suite.ctx, suite.restaurantID).Return(suite.restaurant(), nil)
	suite.tableRepo.On("GetByID", suite.ctx, table.ID).Return(table, nil)
	suite.reservationRepo.On("CreateBooked", suite.ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(repositories.ErrTableConflict)

	_, err := suite.svc.CreateReservation(suite.ctx, &CreateReservationInput{
		UserID:       suite.userID,
		RestaurantID: suite.restaurantID,
		TableID:      &table.ID,
		StartsAt:     suite.now.Add(6 * time.Hour),
		GuestCount:   4,
	})

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindConflict, common.KindOf(err))
}

func (suite *ReservationServiceTestSuite) TestCreate_GuestCountOverCapacity() {
	table := suite.table(4)
	suite.restaurantRepo.On("GetByID", suite.ctx, suite.restaurantID).Return(suite.restaurant(), nil)
	suite.tableRepo.On("GetByID", suite.ctx, table.ID).Return(table, nil)

	_, err := suite.svc.CreateReservation(suite.ctx, &CreateReservationInput{
		UserID:       suite.userID,
		RestaurantID: suite.restaurantID,
		TableID:      &table.ID,
		StartsAt:     suite.now.Add(6 * time.Hour),
		GuestCount:   6,
	})

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
	suite.reservationRepo.AssertNotCalled(suite.T(), "CreateBooked")
}

func (suite *ReservationServiceTestSuite) TestCreate_ClosedTableRejected() {
	table := suite.table(4)
	table.IsAvailable = false
	suite.restaurantRepo.On("GetByID", suite.ctx, suite.restaurantID).Return(suite.restaurant(), nil)
	suite.tableRepo.On("GetByID", suite.ctx, table.ID).Return(table, nil)

	_, err := suite.svc.CreateReservation(suite.ctx, &CreateReservationInput{
		UserID:       suite.userID,
		RestaurantID: suite.restaurantID,
		TableID:      &table.ID,
		StartsAt:     suite.now.Add(6 * time.Hour),
		GuestCount:   2,
	})

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindConflict, common.KindOf(err))
}

func (suite *ReservationServiceTestSuite) TestCreate_ForeignTableRejected() {
	table := suite.table(4)
	table.RestaurantID = uuid.New()
	suite.restaurantRepo.On("GetByID", suite.ctx, suite.restaurantID).Return(suite.restaurant(), nil)
	suite.tableRepo.On("GetByID", suite.ctx, table.ID).Return(table, nil)

	_, err := suite.svc.CreateReservation(suite.ctx, &CreateReservationInput{
		UserID:       suite.userID,
		RestaurantID: suite.restaurantID,
		TableID:      &table.ID,
		StartsAt:     suite.now.Add(6 * time.Hour),
		GuestCount:   2,
	})

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}

func (suite *ReservationServiceTestSuite) TestConfirm_FromPendingOnly() {
	res := suite.reservation(models.ReservationPending)
	suite.reservationRepo.On("GetByID", suite.ctx, res.ID).Return(res, nil)
	suite.reservationRepo.On("UpdateStatus", suite.ctx, res.ID, models.ReservationConfirmed).Return(nil)

	confirmed, err := suite.svc.Confirm(suite.ctx, res.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ReservationConfirmed, confirmed.Status)
	assert.Equal(suite.T(), 1, suite.notifier.emailCount())
}

func (suite *ReservationServiceTestSuite) TestConfirm_RejectsNonPending() {
	for _, status := range []models.ReservationStatus{
		models.ReservationConfirmed, models.ReservationSeated, models.ReservationCompleted,
		models.ReservationCancelled, models.ReservationNoShow,
	} {
		res := suite.reservation(status)
		repo := new(MockReservationRepository)
		repo.On("GetByID", suite.ctx, res.ID).Return(res, nil)
		suite.svc.reservationRepo = repo

		_, err := suite.svc.Confirm(suite.ctx, res.ID)

		assert.Error(suite.T(), err, "confirm from %s must fail", status)
		assert.Equal(suite.T(), common.KindWrongState, common.KindOf(err))
		repo.AssertNotCalled(suite.T(), "UpdateStatus")
	}
}

func (suite *ReservationServiceTestSuite) TestCancel_RejectsTerminalStates() {
	for _, status := range []models.ReservationStatus{
		models.ReservationCompleted, models.ReservationNoShow, models.ReservationCancelled,
	} {
		res := suite.reservation(status)
		repo := new(MockReservationRepository)
		repo.On("GetByID", suite.ctx, res.ID).Return(res, nil)
		suite.svc.reservationRepo = repo

		_, err := suite.svc.Cancel(suite.ctx, res.ID)

		assert.Error(suite.T(), err, "cancel from %s must fail", status)
		assert.Equal(suite.T(), common.KindWrongState, common.KindOf(err))
	}
}

func (suite *ReservationServiceTestSuite) TestCancel_FromConfirmed() {
	res := suite.reservation(models.ReservationConfirmed)
	suite.reservationRepo.On("GetByID", suite.ctx, res.ID).Return(res, nil)
	suite.reservationRepo.On("UpdateStatus", suite.ctx, res.ID, models.ReservationCancelled).Return(nil)

	cancelled, err := suite.svc.Cancel(suite.ctx, res.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ReservationCancelled, cancelled.Status)
}

func (suite *ReservationServiceTestSuite) TestSeat_OnlyFromConfirmed() {
	res := suite.reservation(models.ReservationPending)
	suite.reservationRepo.On("GetByID", suite.ctx, res.ID).Return(res, nil)

	_, err := suite.svc.Seat(suite.ctx, res.ID)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindInvalidTransition, common.KindOf(err))
}

func (suite *ReservationServiceTestSuite) TestNoShow_FromConfirmedOrSeated() {
	for _, status := range []models.ReservationStatus{models.ReservationConfirmed, models.ReservationSeated} {
		res := suite.reservation(status)
		repo := new(MockReservationRepository)
		repo.On("GetByID", suite.ctx, res.ID).Return(res, nil)
		repo.On("UpdateStatus", suite.ctx, res.ID, models.ReservationNoShow).Return(nil)
		suite.svc.reservationRepo = repo

		marked, err := suite.svc.MarkNoShow(suite.ctx, res.ID)

		assert.NoError(suite.T(), err)
		assert.Equal(suite.T(), models.ReservationNoShow, marked.Status)
	}
}

func (suite *ReservationServiceTestSuite) TestSendReminders_WindowAndClaim() {
	res := suite.reservation(models.ReservationConfirmed)
	res.StartsAt = suite.now.Add(75 * time.Minute)
	suite.reservationRepo.On("ListConfirmedBetween", suite.ctx,
		suite.now.Add(time.Hour), suite.now.Add(90*time.Minute)).
		Return([]*models.Reservation{res}, nil)
	suite.reservationRepo.On("MarkReminderSent", suite.ctx, res.ID).Return(true, nil)

	sent, err := suite.svc.SendReminders(suite.ctx)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, sent)
	assert.Equal(suite.T(), 1, suite.notifier.emailCount())
}

func (suite *ReservationServiceTestSuite) TestSendReminders_SecondSweepSendsNothing() {
	// The conditional update claims the flag exactly once, so an
	// overlapping sweep that loses the claim stays silent.
	res := suite.reservation(models.ReservationConfirmed)
	suite.reservationRepo.On("ListConfirmedBetween", suite.ctx, mock.Anything, mock.Anything).
		Return([]*models.Reservation{res}, nil)
	suite.reservationRepo.On("MarkReminderSent", suite.ctx, res.ID).Return(false, nil)

	sent, err := suite.svc.SendReminders(suite.ctx)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, sent)
	assert.Equal(suite.T(), 0, suite.notifier.emailCount())
}

func (suite *ReservationServiceTestSuite) TestCancelExpired_SweepsDayOldPending() {
	stale := suite.reservation(models.ReservationPending)
	suite.reservationRepo.On("ListPendingCreatedBefore", suite.ctx, suite.now.Add(-24*time.Hour)).
		Return([]*models.Reservation{stale}, nil)
	suite.reservationRepo.On("UpdateStatus", suite.ctx, stale.ID, models.ReservationCancelled).Return(nil)

	cancelled, err := suite.svc.CancelExpired(suite.ctx)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, cancelled)
	suite.reservationRepo.AssertCalled(suite.T(), "ListPendingCreatedBefore", suite.ctx, suite.now.Add(-24*time.Hour))
}

func (suite *ReservationServiceTestSuite) TestCreate_GuestCountAtLeastOne() {
	_, err := suite.svc.CreateReservation(suite.ctx, &CreateReservationInput{
		UserID:       suite.userID,
		RestaurantID: suite.restaurantID,
		StartsAt:     suite.now.Add(6 * time.Hour),
		GuestCount:   0,
	})

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}
