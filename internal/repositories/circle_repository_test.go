package repositories

import (
	"testing"

	"empylo_backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Circle{},
		&models.CircleMember{},
	))
	return db
}

func seedCircle(t *testing.T, db *gorm.DB) (*models.User, *models.Circle) {
	t.Helper()

	user := &models.User{Email: "repo@example.com", Password: "x", AccountType: models.AccountTypePersonal}
	require.NoError(t, db.Create(user).Error)

	circle := &models.Circle{
		CircleName:      "repo circle",
		CircleStatus:    models.CircleStatusActive,
		CircleShareLink: "https://empylo.test/circle/abcdef123456",
		CircleOwnerID:   user.ID,
	}
	require.NoError(t, db.Create(circle).Error)
	return user, circle
}

// The composite unique index turns a racing duplicate insert into
// ErrAlreadyMember instead of a raw driver error.
func TestAddMemberMapsDuplicateKey(t *testing.T) {
	db := openTestDB(t)
	repo := NewCircleRepository()
	user, circle := seedCircle(t, db)

	require.NoError(t, repo.AddMember(db, &models.CircleMember{UserID: user.ID, CircleID: circle.ID}))

	err := repo.AddMember(db, &models.CircleMember{UserID: user.ID, CircleID: circle.ID})
	assert.ErrorIs(t, err, ErrAlreadyMember)
}

// AddMembers ignores rows that already exist.
func TestAddMembersIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewCircleRepository()
	user, circle := seedCircle(t, db)

	other := &models.User{Email: "second@example.com", Password: "x", AccountType: models.AccountTypePersonal}
	require.NoError(t, db.Create(other).Error)

	require.NoError(t, repo.AddMember(db, &models.CircleMember{UserID: user.ID, CircleID: circle.ID}))

	require.NoError(t, repo.AddMembers(db, []*models.CircleMember{
		{UserID: user.ID, CircleID: circle.ID},
		{UserID: other.ID, CircleID: circle.ID},
	}))

	count, err := repo.CountMembers(db, circle.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
