package services

import (
	"os"
	"testing"

	"empylo_backend/internal/auth"
	"empylo_backend/internal/config"
	"empylo_backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	if err := auth.Init("test-secret"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.TokenManager{},
		&models.Circle{},
		&models.CircleMember{},
		&models.Assessment{},
		&models.Topic{},
		&models.Question{},
		&models.Answer{},
		&models.Module{},
		&models.Permission{},
		&models.Role{},
	))

	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.BaseShareURL = "https://empylo.test"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 168
	cfg.Token.OTPTTLMinutes = 10
	cfg.Token.ResetTTLMinutes = 10
	cfg.Token.SweepMinutes = 5
	return cfg
}

func seedUser(t *testing.T, db *gorm.DB, email string, mutate func(*models.User)) *models.User {
	t.Helper()

	hashed, err := auth.HashPassword("correct horse")
	require.NoError(t, err)

	user := &models.User{
		Email:           email,
		Password:        hashed,
		AccountType:     models.AccountTypePersonal,
		IsEmailVerified: true,
		IsActivated:     true,
		Status:          models.UserStatusActive,
	}
	if mutate != nil {
		mutate(user)
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
