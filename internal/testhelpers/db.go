// Package testhelpers builds throwaway dependencies for package tests:
// an in-memory SQLite database with the full schema and a quiet logger.
package testhelpers

import (
	"fmt"
	"testing"

	"github.com/deppfellow/booking-api/internal/database"
	"github.com/deppfellow/booking-api/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

// NewLogger returns a logger that discards everything.
func NewLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

// NewTestDB opens a private in-memory SQLite database, migrates every model
// into it and closes it when the test ends.
//
// The pool is pinned to one connection: every SQLite connection to
// ":memory:" would otherwise see its own empty database, and
// PRAGMA foreign_keys is per connection.
func NewTestDB(t *testing.T) *database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=private", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn), NewLogger(), 0)
	require.NoError(t, err)

	db.SQL.SetMaxOpenConns(1)
	require.NoError(t, db.DB.Exec("PRAGMA foreign_keys = ON").Error)

	require.NoError(t, db.DB.AutoMigrate(
		&model.Host{},
		&model.Property{},
		&model.Booking{},
		&model.Review{},
	))

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// CreateHost inserts a host with sensible defaults. Username must be unique per test.
func CreateHost(t *testing.T, db *database.Database, username string) *model.Host {
	t.Helper()

	host := &model.Host{
		Username: username,
		Password: "not-a-real-hash",
		Name:     "Host " + username,
		Email:    username + "@example.com",
	}
	require.NoError(t, db.DB.Create(host).Error)
	return host
}

// CreateProperty inserts a property owned by hostID.
func CreateProperty(t *testing.T, db *database.Database, hostID uuid.UUID, location string, price int64) *model.Property {
	t.Helper()

	property := &model.Property{
		HostID:        hostID,
		Title:         "Stay in " + location,
		Location:      location,
		PricePerNight: decimal.NewFromInt(price),
		BedroomCount:  1,
		BathRoomCount: 1,
		MaxGuestCount: 2,
	}
	require.NoError(t, db.DB.Create(property).Error)
	return property
}
