package sweeper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"appointment-booking-backend/config"
	"appointment-booking-backend/internal/model"
	"appointment-booking-backend/internal/store"
)

func TestSweepOnce(t *testing.T) {
	testDB, err := gorm.Open(sqlite.Open("file:sweeptest?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()
	require.NoError(t, testDB.AutoMigrate(&model.Booking{}))

	appStore := store.NewGormStore(testDB)

	now := time.Date(2025, 1, 6, 12, 0, 0, 0, time.Local)
	elapsed := model.Booking{
		RequesterName:    "Ana",
		RequesterContact: "a@x.com",
		ScheduledAt:      now.Add(-2 * time.Hour),
		Status:           model.StatusActive,
	}
	upcoming := model.Booking{
		RequesterName:    "Bob",
		RequesterContact: "b@x.com",
		ScheduledAt:      now.Add(2 * time.Hour),
		Status:           model.StatusActive,
	}
	cancelled := model.Booking{
		RequesterName:    "Cem",
		RequesterContact: "c@x.com",
		ScheduledAt:      now.Add(-4 * time.Hour),
		Status:           model.StatusCancelled,
	}
	require.NoError(t, testDB.Create(&elapsed).Error)
	require.NoError(t, testDB.Create(&upcoming).Error)
	require.NoError(t, testDB.Create(&cancelled).Error)

	svc := NewService(config.SweeperConfig{Enabled: true}, appStore)
	svc.now = func() time.Time { return now }

	svc.SweepOnce(context.Background())

	var got model.Booking
	require.NoError(t, testDB.First(&got, elapsed.ID).Error)
	assert.Equal(t, model.StatusDone, got.Status, "elapsed active booking becomes done")

	got = model.Booking{}
	require.NoError(t, testDB.First(&got, upcoming.ID).Error)
	assert.Equal(t, model.StatusActive, got.Status, "future booking stays active")

	got = model.Booking{}
	require.NoError(t, testDB.First(&got, cancelled.ID).Error)
	assert.Equal(t, model.StatusCancelled, got.Status, "cancelled is terminal")
}

func TestRun_Disabled(t *testing.T) {
	svc := NewService(config.SweeperConfig{Enabled: false}, nil)

	done := make(chan struct{})
	go func() {
		svc.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("disabled sweeper should return immediately")
	}
}
