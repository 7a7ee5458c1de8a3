package impl

import (
	"context"
	"testing"

	deliverycontext "courierhub/internal/delivery/context"
	"courierhub/internal/domain/entity"
	mockRepo "courierhub/internal/mocks/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zoobzio/clockz"
)

func TestAuditRecorder_Record(t *testing.T) {
	t.Run("fills request details", func(t *testing.T) {
		logRepo := mockRepo.NewMockSystemLogRepository(t)
		clock := clockz.NewFakeClock()
		recorder := NewAuditRecorder(AuditRecorderParams{LogRepo: logRepo, Clock: clock, Logger: newDiscardLogger()})
		ctx := deliverycontext.WithClientInfo(context.Background(), deliverycontext.ClientInfo{
			IPAddress: "10.0.0.7",
			UserAgent: "curl/8.5",
		})
		entry := &entity.SystemLog{Action: entity.ActionSystem, Module: entity.ModuleSystem}

		logRepo.EXPECT().Create(mock.Anything, entry).Return(nil)

		recorder.Record(ctx, entry)

		assert.Equal(t, "10.0.0.7", entry.IPAddress)
		assert.Equal(t, "curl/8.5", entry.UserAgent)
		assert.Equal(t, entity.LogSuccess, entry.Status)
		assert.Equal(t, clock.Now(), entry.CreatedAt)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		logRepo := mockRepo.NewMockSystemLogRepository(t)
		recorder := NewAuditRecorder(AuditRecorderParams{LogRepo: logRepo, Clock: clockz.NewFakeClock(), Logger: newDiscardLogger()})
		ctx := deliverycontext.WithClientInfo(context.Background(), deliverycontext.ClientInfo{IPAddress: "10.0.0.7"})
		entry := &entity.SystemLog{Status: entity.LogPartial, IPAddress: "192.168.1.1"}

		logRepo.EXPECT().Create(mock.Anything, entry).Return(nil)

		recorder.Record(ctx, entry)

		assert.Equal(t, entity.LogPartial, entry.Status)
		assert.Equal(t, "192.168.1.1", entry.IPAddress)
	})

	t.Run("store failure is swallowed", func(t *testing.T) {
		logRepo := mockRepo.NewMockSystemLogRepository(t)
		recorder := NewAuditRecorder(AuditRecorderParams{LogRepo: logRepo, Clock: clockz.NewFakeClock(), Logger: newDiscardLogger()})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		logRepo.EXPECT().Create(mock.Anything, mock.Anything).
			RunAndReturn(func(ctx context.Context, _ *entity.SystemLog) error {
				assert.NoError(t, ctx.Err())

				return errors.New("mongo: no reachable servers")
			})

		assert.NotPanics(t, func() {
			recorder.Record(ctx, &entity.SystemLog{Action: entity.ActionError})
		})
	})
}
