package impl

import (
	"context"
	"testing"
	"time"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	mockRepo "courierhub/internal/mocks/repository"
	"courierhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"
)

type settingsFixture struct {
	srv      usecase.SettingsUsecase
	userRepo *mockRepo.MockUserRepository
	store    *memStore
	audit    *recordingAudit
	clock    clockz.Clock
}

func createTestSettingsService(t *testing.T) *settingsFixture {
	t.Helper()

	f := &settingsFixture{
		userRepo: mockRepo.NewMockUserRepository(t),
		store:    newMemStore(),
		audit:    &recordingAudit{},
		clock:    clockz.NewFakeClock(),
	}
	f.srv = NewSettingsService(SettingsServiceParams{
		UserRepo:     f.userRepo,
		ShipmentRepo: f.store.NewShipmentRepository(),
		Audit:        f.audit,
		Clock:        f.clock,
		Logger:       newDiscardLogger(),
	})

	return f
}

func TestSettingsService_GetSettings(t *testing.T) {
	actor := businessActor()
	stored := entity.DefaultSettings()
	stored.DarkMode = false
	stored.Currency = ""
	cached := entity.DefaultSettings()
	cached.CompactView = true

	testCases := []struct {
		name   string
		server *entity.Settings
		cached *entity.Settings
		check  func(t *testing.T, got entity.Settings)
	}{
		{
			name:   "server wins over cached",
			server: &stored,
			cached: &cached,
			check: func(t *testing.T, got entity.Settings) {
				assert.False(t, got.DarkMode)
				assert.False(t, got.CompactView)
				assert.Equal(t, "INR", got.Currency)
			},
		},
		{
			name:   "cached when server has none",
			cached: &cached,
			check: func(t *testing.T, got entity.Settings) {
				assert.True(t, got.CompactView)
			},
		},
		{
			name: "defaults",
			check: func(t *testing.T, got entity.Settings) {
				assert.Equal(t, entity.DefaultSettings(), got)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := createTestSettingsService(t)
			ctx := context.Background()

			f.userRepo.EXPECT().FindByID(ctx, actor.UserID).Return(&entity.User{ID: actor.UserID, Settings: tc.server}, nil)

			got, err := f.srv.GetSettings(ctx, actor, tc.cached)

			require.NoError(t, err)
			tc.check(t, got)
		})
	}
}

func TestSettingsService_UpdateSettings(t *testing.T) {
	f := createTestSettingsService(t)
	ctx := context.Background()
	actor := businessActor()
	off := false
	express := entity.ServiceExpress
	bogus := entity.ServiceType("teleport")
	empty := ""

	f.userRepo.EXPECT().FindByID(ctx, actor.UserID).Return(&entity.User{ID: actor.UserID}, nil)
	f.userRepo.EXPECT().UpdateSettings(ctx, actor.UserID, mock.AnythingOfType("entity.Settings")).Return(nil)

	got, err := f.srv.UpdateSettings(ctx, actor, entity.SettingsPatch{
		DarkMode:           &off,
		DefaultServiceType: &express,
		Currency:           &empty,
	})

	require.NoError(t, err)
	assert.False(t, got.DarkMode)
	assert.Equal(t, entity.ServiceExpress, got.DefaultServiceType)
	assert.Equal(t, "INR", got.Currency)
	assert.True(t, got.ShipmentUpdates)

	entry := f.audit.last()
	require.NotNil(t, entry)
	assert.Equal(t, entity.ModuleSettings, entry.Module)
	assert.Equal(t, "User updated their settings", entry.Description)

	again := entity.SettingsPatch{DefaultServiceType: &bogus}.Apply(got)
	assert.Equal(t, entity.ServiceExpress, again.DefaultServiceType)
}

func TestSettingsService_ResetSettings(t *testing.T) {
	f := createTestSettingsService(t)
	ctx := context.Background()
	actor := staffActor()

	f.userRepo.EXPECT().UpdateSettings(ctx, actor.UserID, entity.DefaultSettings()).Return(nil)

	got, err := f.srv.ResetSettings(ctx, actor)

	require.NoError(t, err)
	assert.Equal(t, entity.DefaultSettings(), got)
}

func TestSettingsService_ExportData(t *testing.T) {
	f := createTestSettingsService(t)
	ctx := context.Background()
	actor := adminActor()
	now := f.clock.Now()
	deliveredAt := now.Add(-time.Hour)

	seed := func(userID uuid.UUID, status entity.ShipmentStatus, cost float64) *entity.Shipment {
		return f.store.put(&entity.Shipment{
			TrackingID:  uuid.NewString(),
			UserID:      userID,
			CourierName: "BlueDart",
			Sender:      testParty("Bengaluru"),
			Receiver:    testParty("Mysuru"),
			Package:     entity.Package{WeightKg: 1.5},
			Status:      status,
			TotalCost:   cost,
			CreatedAt:   now.Add(-48 * time.Hour),
		})
	}
	delivered := seed(actor.UserID, entity.StatusDelivered, 120)
	delivered.ActualDeliveryDate = &deliveredAt
	f.store.put(delivered)
	seed(actor.UserID, entity.StatusPending, 80.5)
	seed(actor.UserID, entity.StatusInTransit, 60)
	seed(uuid.New(), entity.StatusPending, 999)

	f.userRepo.EXPECT().FindByID(ctx, actor.UserID).
		Return(&entity.User{ID: actor.UserID, Name: "Root", Email: actor.Email, Company: "HQ"}, nil)

	export, err := f.srv.ExportData(ctx, actor)

	require.NoError(t, err)
	assert.Equal(t, "Root", export.Name)
	assert.Equal(t, now, export.ExportedAt)
	assert.Equal(t, usecase.ExportStatistics{TotalShipments: 3, Delivered: 1, Pending: 1, TotalSpent: 260.5}, export.Statistics)
	require.Len(t, export.Shipments, 3)
	for _, row := range export.Shipments {
		assert.Equal(t, "Bengaluru, KA", row.Sender)
		assert.Equal(t, "Mysuru, KA", row.Receiver)
		if row.Status == entity.StatusDelivered {
			require.NotNil(t, row.DeliveredAt)
			assert.Equal(t, deliveredAt, *row.DeliveredAt)
		}
	}

	entry := f.audit.last()
	require.NotNil(t, entry)
	assert.Equal(t, entity.ActionExport, entry.Action)
	assert.Equal(t, 3, entry.Details["shipments"])
}

func TestSettingsService_UserNotFound(t *testing.T) {
	f := createTestSettingsService(t)
	ctx := context.Background()
	actor := businessActor()

	f.userRepo.EXPECT().FindByID(ctx, actor.UserID).Return(nil, domainerrors.ErrUserNotFound)

	_, err := f.srv.ExportData(ctx, actor)

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
