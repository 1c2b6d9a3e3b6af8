package repositories

import (
	"context"
	"testing"
	"time"

	"dinemart/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type PromotionRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    PromotionRepository
	promoID uuid.UUID
	context context.Context
}

func (suite *PromotionRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewPromotionRepo(mock)
	suite.promoID = uuid.New()
	suite.context = context.Background()
}

func (suite *PromotionRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestPromotionRepoTestSuite(t *testing.T) {
	suite.Run(t, new(PromotionRepoTestSuite))
}

func (suite *PromotionRepoTestSuite) TestIncrementUsage_Succeeds() {
	suite.mock.ExpectExec(`UPDATE promotions`).
		WithArgs(suite.promoID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	incremented, err := suite.repo.IncrementUsage(suite.context, suite.promoID)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), incremented)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PromotionRepoTestSuite) TestIncrementUsage_CapReachedReportsFalse() {
	// The WHERE clause guards the cap, so a capped promotion updates
	// zero rows.
	suite.mock.ExpectExec(`UPDATE promotions`).
		WithArgs(suite.promoID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	incremented, err := suite.repo.IncrementUsage(suite.context, suite.promoID)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), incremented)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PromotionRepoTestSuite) TestGetByCode_NormalizesCase() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{
		"id", "restaurant_id", "code", "name", "description", "discount_type", "discount_value",
		"max_discount", "minimum_order_amount", "start_date", "end_date", "max_uses", "current_uses",
		"is_active", "created_at", "updated_at",
	}).AddRow(
		suite.promoID, nil, "WELCOME20", "Welcome discount", nil, models.DiscountPercentage,
		decimal.NewFromInt(20), nil, decimal.NewFromInt(10), now.Add(-time.Hour), now.Add(time.Hour),
		nil, 0, true, now, now,
	)
	suite.mock.ExpectQuery(`SELECT .+ FROM promotions WHERE code = \$1`).
		WithArgs("WELCOME20").
		WillReturnRows(rows)

	promo, err := suite.repo.GetByCode(suite.context, "  welcome20 ")

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), promo)
	assert.Equal(suite.T(), "WELCOME20", promo.Code)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PromotionRepoTestSuite) TestGetByCode_UnknownCodeReturnsNil() {
	suite.mock.ExpectQuery(`SELECT .+ FROM promotions WHERE code = \$1`).
		WithArgs("NOPE").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	promo, err := suite.repo.GetByCode(suite.context, "nope")

	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), promo)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}
