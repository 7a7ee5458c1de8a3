package impl

import (
	"context"
	"testing"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	mockRepo "courierhub/internal/mocks/repository"
	mockSvc "courierhub/internal/mocks/service"
	"courierhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"
)

func createTestNotificationService(t *testing.T) (
	usecase.NotificationUsecase,
	*mockRepo.MockNotificationRepository,
	*mockRepo.MockUserRepository,
	*mockSvc.MockPushService,
) {
	notificationRepo := mockRepo.NewMockNotificationRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	pushService := mockSvc.NewMockPushService(t)

	srv := NewNotificationService(NotificationServiceParams{
		NotificationRepo: notificationRepo,
		UserRepo:         userRepo,
		PushService:      pushService,
		Clock:            clockz.NewFakeClock(),
		Logger:           newDiscardLogger(),
	})

	return srv, notificationRepo, userRepo, pushService
}

func shipmentNotificationData() entity.NotificationData {
	id := uuid.New()

	return entity.NotificationData{ShipmentID: &id, TrackingID: "BLUABC123"}
}

func TestNotificationService_Emit_PushesToDevice(t *testing.T) {
	srv, notificationRepo, userRepo, pushService := createTestNotificationService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), PushToken: "fcm-token"}
	data := shipmentNotificationData()

	notificationRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Notification")).
		RunAndReturn(func(_ context.Context, n *entity.Notification) error {
			n.ID = uuid.New()

			return nil
		})
	userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	pushService.EXPECT().
		SendSingleNotification(ctx, "fcm-token", "Shipment Created", "created", mock.MatchedBy(func(d map[string]string) bool {
			return d["tracking_id"] == "BLUABC123" &&
				d["shipment_id"] == data.ShipmentID.String() &&
				d["type"] == string(entity.NotificationShipmentCreated) &&
				d["notification_id"] != ""
		})).
		Return(nil)

	err := srv.Emit(ctx, user.ID, entity.NotificationShipmentCreated, "Shipment Created", "created", data)

	require.NoError(t, err)
}

func TestNotificationService_Emit_RespectsShipmentUpdatesPreference(t *testing.T) {
	srv, notificationRepo, userRepo, _ := createTestNotificationService(t)
	ctx := context.Background()
	settings := entity.DefaultSettings()
	settings.ShipmentUpdates = false
	user := &entity.User{ID: uuid.New(), PushToken: "fcm-token", Settings: &settings}

	notificationRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)

	err := srv.Emit(ctx, user.ID, entity.NotificationShipmentDelivered, "Delivered", "done", shipmentNotificationData())

	require.NoError(t, err)
}

func TestNotificationService_Emit_SystemIgnoresShipmentPreference(t *testing.T) {
	srv, notificationRepo, userRepo, pushService := createTestNotificationService(t)
	ctx := context.Background()
	settings := entity.DefaultSettings()
	settings.ShipmentUpdates = false
	user := &entity.User{ID: uuid.New(), PushToken: "fcm-token", Settings: &settings}

	notificationRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	pushService.EXPECT().SendSingleNotification(ctx, "fcm-token", "Maintenance", "tonight", mock.Anything).Return(nil)

	err := srv.Emit(ctx, user.ID, entity.NotificationSystem, "Maintenance", "tonight", entity.NotificationData{})

	require.NoError(t, err)
}

func TestNotificationService_Emit_NoTokenNoPush(t *testing.T) {
	srv, notificationRepo, userRepo, _ := createTestNotificationService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New()}

	notificationRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)

	require.NoError(t, srv.Emit(ctx, user.ID, entity.NotificationAlert, "Alert", "check", entity.NotificationData{}))
}

func TestNotificationService_Emit_PushFailureIsSwallowed(t *testing.T) {
	srv, notificationRepo, userRepo, pushService := createTestNotificationService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), PushToken: "stale"}

	notificationRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	pushService.EXPECT().SendSingleNotification(ctx, "stale", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("registration-token-not-registered"))

	assert.NoError(t, srv.Emit(ctx, user.ID, entity.NotificationReminder, "Reminder", "pickup", entity.NotificationData{}))
}

func TestNotificationService_Emit_StoreFailure(t *testing.T) {
	srv, notificationRepo, _, _ := createTestNotificationService(t)
	ctx := context.Background()

	notificationRepo.EXPECT().Create(ctx, mock.Anything).Return(errors.New("disk full"))

	err := srv.Emit(ctx, uuid.New(), entity.NotificationAlert, "Alert", "check", entity.NotificationData{})

	assert.ErrorContains(t, err, "disk full")
}

func TestNotificationService_List(t *testing.T) {
	srv, notificationRepo, _, _ := createTestNotificationService(t)
	ctx := context.Background()
	actor := businessActor()
	page := []*entity.Notification{{ID: uuid.New()}, {ID: uuid.New()}}

	notificationRepo.EXPECT().ListByUser(ctx, actor.UserID, true, 20, 20).Return(page, int64(22), nil)
	notificationRepo.EXPECT().CountUnread(ctx, actor.UserID).Return(int64(22), nil)

	list, err := srv.List(ctx, actor, usecase.ListNotificationsInput{
		PageRequest: usecase.PageRequest{Page: 2},
		UnreadOnly:  true,
	})

	require.NoError(t, err)
	assert.Len(t, list.Notifications, 2)
	assert.Equal(t, int64(22), list.UnreadCount)
	assert.Equal(t, 2, list.Pages)
	assert.Equal(t, 2, list.Page)
}

func TestNotificationService_ReadAndDelete(t *testing.T) {
	srv, notificationRepo, _, _ := createTestNotificationService(t)
	ctx := context.Background()
	actor := businessActor()
	id := uuid.New()

	notificationRepo.EXPECT().MarkRead(ctx, actor.UserID, id).Return(nil)
	notificationRepo.EXPECT().MarkAllRead(ctx, actor.UserID).Return(int64(4), nil)
	notificationRepo.EXPECT().Delete(ctx, actor.UserID, id).Return(domainerrors.ErrNotificationNotFound)
	notificationRepo.EXPECT().CountUnread(ctx, actor.UserID).Return(int64(0), nil)

	require.NoError(t, srv.MarkRead(ctx, actor, id))

	updated, err := srv.MarkAllRead(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated)

	unread, err := srv.CountUnread(ctx, actor)
	require.NoError(t, err)
	assert.Zero(t, unread)

	err = srv.Delete(ctx, actor, id)
	assert.ErrorIs(t, err, domainerrors.ErrNotificationNotFound)
}
