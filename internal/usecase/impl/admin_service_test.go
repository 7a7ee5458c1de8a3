package impl

import (
	"context"
	"testing"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	mockRepo "courierhub/internal/mocks/repository"
	"courierhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"
)

type adminFixture struct {
	srv         usecase.AdminUsecase
	userRepo    *mockRepo.MockUserRepository
	courierRepo *mockRepo.MockCourierRepository
	logRepo     *mockRepo.MockSystemLogRepository
	store       *memStore
	audit       *recordingAudit
}

func createTestAdminService(t *testing.T) *adminFixture {
	t.Helper()

	f := &adminFixture{
		userRepo:    mockRepo.NewMockUserRepository(t),
		courierRepo: mockRepo.NewMockCourierRepository(t),
		logRepo:     mockRepo.NewMockSystemLogRepository(t),
		store:       newMemStore(),
		audit:       &recordingAudit{},
	}
	f.srv = NewAdminService(AdminServiceParams{
		UserRepo:     f.userRepo,
		ShipmentRepo: f.store.NewShipmentRepository(),
		CourierRepo:  f.courierRepo,
		LogRepo:      f.logRepo,
		Audit:        f.audit,
		Clock:        clockz.NewFakeClock(),
		Logger:       newDiscardLogger(),
	})

	return f
}

func TestAdminService_RequiresAdmin(t *testing.T) {
	f := createTestAdminService(t)
	ctx := context.Background()

	for _, actor := range []entity.Actor{businessActor(), staffActor()} {
		_, err := f.srv.Stats(ctx, actor)
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)

		_, err = f.srv.ListUsers(ctx, actor, usecase.PageRequest{})
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)

		_, err = f.srv.GetUser(ctx, actor, uuid.New())
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)

		_, err = f.srv.UpdateUser(ctx, actor, uuid.New(), usecase.UpdateUserInput{})
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)

		_, err = f.srv.ListLogs(ctx, actor, usecase.ListLogsInput{})
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	}
}

func TestAdminService_Stats(t *testing.T) {
	f := createTestAdminService(t)
	ctx := context.Background()
	f.store.put(&entity.Shipment{TrackingID: "A", UserID: uuid.New(), TotalCost: 100.25})
	f.store.put(&entity.Shipment{TrackingID: "B", UserID: uuid.New(), TotalCost: 200.5})
	f.store.put(&entity.Shipment{TrackingID: "C", UserID: uuid.New(), TotalCost: 0.1})

	f.userRepo.EXPECT().List(ctx, 1, 0).Return([]*entity.User{{}}, int64(12), nil)
	f.courierRepo.EXPECT().ListActive(ctx).Return([]*entity.Courier{testCourier(), testCourier()}, nil)

	stats, err := f.srv.Stats(ctx, adminActor())

	require.NoError(t, err)
	assert.Equal(t, usecase.AdminStats{TotalUsers: 12, TotalShipments: 3, TotalCouriers: 2, TotalRevenue: 301}, *stats)
}

func TestAdminService_ListUsers(t *testing.T) {
	f := createTestAdminService(t)
	ctx := context.Background()
	users := []*entity.User{{ID: uuid.New()}, {ID: uuid.New()}}

	f.userRepo.EXPECT().List(ctx, 200, 200).Return(users, int64(402), nil)

	list, err := f.srv.ListUsers(ctx, adminActor(), usecase.PageRequest{Page: 2, Limit: 1000})

	require.NoError(t, err)
	assert.Len(t, list.Users, 2)
	assert.Equal(t, 3, list.Pages)
	assert.Equal(t, int64(402), list.Total)
}

func TestAdminService_GetUser(t *testing.T) {
	f := createTestAdminService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "shop@example.com"}
	for _, id := range []string{"A", "B"} {
		f.store.put(&entity.Shipment{TrackingID: id, UserID: user.ID})
	}
	f.store.put(&entity.Shipment{TrackingID: "C", UserID: uuid.New()})

	f.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)

	detail, err := f.srv.GetUser(ctx, adminActor(), user.ID)

	require.NoError(t, err)
	assert.Same(t, user, detail.User)
	assert.Equal(t, 2, detail.ShipmentCount)
}

func TestAdminService_UpdateUser(t *testing.T) {
	ptr := func(s string) *string { return &s }

	t.Run("promotes and audits", func(t *testing.T) {
		f := createTestAdminService(t)
		ctx := context.Background()
		user := &entity.User{ID: uuid.New(), Name: "Asha", Email: "asha@shop.example", Role: entity.RoleBusiness, IsActive: true}
		staff := entity.RoleStaff
		inactive := false

		f.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
		f.userRepo.EXPECT().Update(ctx, user).Return(nil)

		updated, err := f.srv.UpdateUser(ctx, adminActor(), user.ID, usecase.UpdateUserInput{
			Email:    ptr(" Asha@Courier.Example"),
			Role:     &staff,
			IsActive: &inactive,
		})

		require.NoError(t, err)
		assert.Equal(t, entity.RoleStaff, updated.Role)
		assert.Equal(t, "asha@courier.example", updated.Email)
		assert.False(t, updated.IsActive)
		entry := f.audit.last()
		require.NotNil(t, entry)
		assert.Equal(t, entity.ModuleUser, entry.Module)
		assert.Equal(t, "Updated user: asha@courier.example", entry.Description)
	})

	invalid := map[string]usecase.UpdateUserInput{
		"blank name":   {Name: ptr("  ")},
		"bad email":    {Email: ptr("nope")},
		"unknown role": {Role: func() *entity.Role { r := entity.Role("root"); return &r }()},
	}
	for name, input := range invalid {
		t.Run(name, func(t *testing.T) {
			f := createTestAdminService(t)
			ctx := context.Background()
			id := uuid.New()

			f.userRepo.EXPECT().FindByID(ctx, id).Return(&entity.User{ID: id, Name: "Asha"}, nil)

			_, err := f.srv.UpdateUser(ctx, adminActor(), id, input)

			assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
			assert.Nil(t, f.audit.last())
		})
	}

	t.Run("admin cannot deactivate self", func(t *testing.T) {
		f := createTestAdminService(t)
		ctx := context.Background()
		actor := adminActor()
		inactive := false

		f.userRepo.EXPECT().FindByID(ctx, actor.UserID).
			Return(&entity.User{ID: actor.UserID, Role: entity.RoleAdmin, IsActive: true}, nil)

		_, err := f.srv.UpdateUser(ctx, actor, actor.UserID, usecase.UpdateUserInput{IsActive: &inactive})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	})
}

func TestAdminService_ListLogs(t *testing.T) {
	f := createTestAdminService(t)
	ctx := context.Background()
	action := entity.ActionLogin
	logs := []*entity.SystemLog{{Action: entity.ActionLogin}}

	f.logRepo.EXPECT().List(ctx, entity.SystemLogFilter{Action: &action, Limit: 50, Offset: 0}).
		Return(logs, int64(1), nil)

	list, err := f.srv.ListLogs(ctx, adminActor(), usecase.ListLogsInput{Action: &action})

	require.NoError(t, err)
	assert.Equal(t, logs, list.Logs)
	assert.Equal(t, 1, list.Pages)
}
