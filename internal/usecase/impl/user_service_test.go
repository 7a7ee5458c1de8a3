package impl

import (
	"context"
	"testing"
	"time"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/domain/repository"
	"courierhub/internal/domain/service"
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

type userFixture struct {
	srv          usecase.UserUsecase
	txManager    *mockRepo.MockTransactionManager
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	audit        *recordingAudit
	clock        clockz.Clock
}

func createTestUserService(t *testing.T) *userFixture {
	t.Helper()

	f := &userFixture{
		txManager:    mockRepo.NewMockTransactionManager(t),
		userRepo:     mockRepo.NewMockUserRepository(t),
		hasher:       mockSvc.NewMockPasswordHasher(t),
		tokenService: mockSvc.NewMockTokenService(t),
		audit:        &recordingAudit{},
		clock:        clockz.NewFakeClock(),
	}
	f.srv = NewUserService(UserServiceParams{
		TxManager:    f.txManager,
		UserRepo:     f.userRepo,
		Hasher:       f.hasher,
		TokenService: f.tokenService,
		Audit:        f.audit,
		Clock:        f.clock,
		Logger:       newDiscardLogger(),
	})

	return f
}

func (f *userFixture) expectTokens(userID any, roles []string) {
	f.tokenService.EXPECT().GenerateTokens(userID, roles).Return("access-token", "refresh-token", nil)
	f.tokenService.EXPECT().GetAccessTokenDuration().Return(24 * time.Hour)
}

// runTx makes Execute call fn with a factory that hands out txUserRepo.
func (f *userFixture) runTx(t *testing.T, txUserRepo repository.UserRepository) {
	f.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockFactory.EXPECT().NewUserRepository().Return(txUserRepo)

			return fn(mockFactory)
		})
}

func TestUserService_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := createTestUserService(t)
		ctx := context.Background()
		txUserRepo := mockRepo.NewMockUserRepository(t)
		var created *entity.User

		f.hasher.EXPECT().Hash("secret1").Return("hashed", nil)
		f.runTx(t, txUserRepo)
		txUserRepo.EXPECT().FindByEmail(ctx, "asha@shop.example").Return(nil, domainerrors.ErrUserNotFound)
		txUserRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).
			RunAndReturn(func(_ context.Context, u *entity.User) error {
				u.ID = uuid.New()
				created = u

				return nil
			})
		f.expectTokens(mock.AnythingOfType("uuid.UUID"), []string{"business"})

		out, err := f.srv.Register(ctx, usecase.RegisterInput{
			Name:     "  Asha ",
			Email:    " Asha@Shop.Example ",
			Password: "secret1",
			Company:  "Asha Crafts",
		})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "Asha", created.Name)
		assert.Equal(t, "asha@shop.example", created.Email)
		assert.Equal(t, "hashed", created.PasswordHash)
		assert.Equal(t, entity.RoleBusiness, created.Role)
		assert.True(t, created.IsActive)
		assert.Equal(t, "access-token", out.AccessToken)
		assert.Equal(t, "refresh-token", out.RefreshToken)
		assert.Equal(t, int64(86400), out.ExpiresIn)
		assert.Same(t, created, out.User)

		entry := f.audit.last()
		require.NotNil(t, entry)
		assert.Equal(t, entity.ActionCreate, entry.Action)
		assert.Equal(t, entity.ModuleAuth, entry.Module)
		assert.Equal(t, "New user registered: asha@shop.example", entry.Description)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := createTestUserService(t)
		ctx := context.Background()
		txUserRepo := mockRepo.NewMockUserRepository(t)

		f.hasher.EXPECT().Hash("secret1").Return("hashed", nil)
		f.runTx(t, txUserRepo)
		txUserRepo.EXPECT().FindByEmail(ctx, "asha@shop.example").Return(&entity.User{ID: uuid.New()}, nil)

		out, err := f.srv.Register(ctx, usecase.RegisterInput{Name: "Asha", Email: "asha@shop.example", Password: "secret1"})

		assert.Nil(t, out)
		assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
		assert.Nil(t, f.audit.last())
	})

	t.Run("weak password is rejected by the hasher", func(t *testing.T) {
		f := createTestUserService(t)

		f.hasher.EXPECT().Hash("abc").Return("", domainerrors.ErrWeakPassword.WithDetails("password is too short"))

		_, err := f.srv.Register(context.Background(), usecase.RegisterInput{Name: "Asha", Email: "asha@shop.example", Password: "abc"})

		assert.ErrorIs(t, err, domainerrors.ErrWeakPassword)
	})

	for name, input := range map[string]usecase.RegisterInput{
		"missing name":  {Email: "asha@shop.example", Password: "secret1"},
		"invalid email": {Name: "Asha", Email: "not-an-email", Password: "secret1"},
	} {
		t.Run(name, func(t *testing.T) {
			f := createTestUserService(t)

			_, err := f.srv.Register(context.Background(), input)

			assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	activeUser := func() *entity.User {
		return &entity.User{
			ID:           uuid.New(),
			Email:        "ops@courier.example",
			PasswordHash: "hashed",
			Role:         entity.RoleStaff,
			IsActive:     true,
		}
	}

	t.Run("success stamps last login", func(t *testing.T) {
		f := createTestUserService(t)
		ctx := context.Background()
		user := activeUser()

		f.userRepo.EXPECT().FindByEmail(ctx, "ops@courier.example").Return(user, nil)
		f.hasher.EXPECT().Check("secret1", "hashed").Return(true)
		f.userRepo.EXPECT().Update(ctx, user).Return(nil)
		f.expectTokens(user.ID, []string{"staff"})

		out, err := f.srv.Login(ctx, usecase.LoginInput{Email: "OPS@courier.example", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, "access-token", out.AccessToken)
		require.NotNil(t, user.LastLogin)
		assert.Equal(t, f.clock.Now(), *user.LastLogin)
		assert.Equal(t, entity.ActionLogin, f.audit.last().Action)
		assert.Equal(t, entity.LogSuccess, f.audit.last().Status)
	})

	t.Run("wrong password is audited as failed", func(t *testing.T) {
		f := createTestUserService(t)
		ctx := context.Background()
		user := activeUser()

		f.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
		f.hasher.EXPECT().Check("nope", "hashed").Return(false)

		out, err := f.srv.Login(ctx, usecase.LoginInput{Email: user.Email, Password: "nope"})

		assert.Nil(t, out)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
		entry := f.audit.last()
		require.NotNil(t, entry)
		assert.Equal(t, entity.LogFailed, entry.Status)
		assert.Nil(t, entry.UserID)
		assert.Equal(t, "Failed login attempt for: ops@courier.example", entry.Description)
	})

	t.Run("inactive account", func(t *testing.T) {
		f := createTestUserService(t)
		ctx := context.Background()
		user := activeUser()
		user.IsActive = false

		f.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)

		_, err := f.srv.Login(ctx, usecase.LoginInput{Email: user.Email, Password: "secret1"})

		assert.ErrorIs(t, err, domainerrors.ErrAccountInactive)
	})

	t.Run("unknown email looks like bad credentials", func(t *testing.T) {
		f := createTestUserService(t)
		ctx := context.Background()

		f.userRepo.EXPECT().FindByEmail(ctx, "ghost@courier.example").Return(nil, domainerrors.ErrUserNotFound)

		_, err := f.srv.Login(ctx, usecase.LoginInput{Email: "ghost@courier.example", Password: "secret1"})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		f := createTestUserService(t)

		_, err := f.srv.Login(context.Background(), usecase.LoginInput{Email: "ops@courier.example"})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	})

	t.Run("last login failure does not block login", func(t *testing.T) {
		f := createTestUserService(t)
		ctx := context.Background()
		user := activeUser()

		f.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
		f.hasher.EXPECT().Check("secret1", "hashed").Return(true)
		f.userRepo.EXPECT().Update(ctx, user).Return(errors.New("connection reset"))
		f.expectTokens(user.ID, []string{"staff"})

		_, err := f.srv.Login(ctx, usecase.LoginInput{Email: user.Email, Password: "secret1"})

		require.NoError(t, err)
	})
}

func TestUserService_Refresh(t *testing.T) {
	userID := uuid.New()

	t.Run("rotates tokens", func(t *testing.T) {
		f := createTestUserService(t)
		ctx := context.Background()
		user := &entity.User{ID: userID, Role: entity.RoleAdmin, IsActive: true}

		f.tokenService.EXPECT().ValidateToken("refresh").
			Return(&service.Claims{UserID: userID, Type: service.TokenTypeRefresh}, nil)
		f.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
		f.expectTokens(userID, []string{"admin"})

		out, err := f.srv.Refresh(ctx, "refresh")

		require.NoError(t, err)
		assert.Equal(t, "refresh-token", out.RefreshToken)
	})

	t.Run("access token cannot refresh", func(t *testing.T) {
		f := createTestUserService(t)

		f.tokenService.EXPECT().ValidateToken("access").
			Return(&service.Claims{UserID: userID, Type: service.TokenTypeAccess}, nil)

		_, err := f.srv.Refresh(context.Background(), "access")

		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("invalid token", func(t *testing.T) {
		f := createTestUserService(t)

		f.tokenService.EXPECT().ValidateToken("garbage").Return(nil, errors.New("token is malformed"))

		_, err := f.srv.Refresh(context.Background(), "garbage")

		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("deactivated user", func(t *testing.T) {
		f := createTestUserService(t)
		ctx := context.Background()

		f.tokenService.EXPECT().ValidateToken("refresh").
			Return(&service.Claims{UserID: userID, Type: service.TokenTypeRefresh}, nil)
		f.userRepo.EXPECT().FindByID(ctx, userID).Return(&entity.User{ID: userID}, nil)

		_, err := f.srv.Refresh(ctx, "refresh")

		assert.ErrorIs(t, err, domainerrors.ErrAccountInactive)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	f := createTestUserService(t)
	ctx := context.Background()
	actor := businessActor()
	user := &entity.User{ID: actor.UserID, Name: "Asha", Company: "Old Co", Phone: "111"}
	name, company := " Asha R ", "New Co"

	f.userRepo.EXPECT().FindByID(ctx, actor.UserID).Return(user, nil)
	f.userRepo.EXPECT().Update(ctx, user).Return(nil)

	updated, err := f.srv.UpdateProfile(ctx, actor, usecase.UpdateProfileInput{Name: &name, Company: &company})

	require.NoError(t, err)
	assert.Equal(t, "Asha R", updated.Name)
	assert.Equal(t, "New Co", updated.Company)
	assert.Equal(t, "111", updated.Phone)
	assert.Equal(t, f.clock.Now(), updated.UpdatedAt)
}

func TestUserService_UpdateProfile_EmptyName(t *testing.T) {
	f := createTestUserService(t)
	ctx := context.Background()
	actor := businessActor()
	blank := "   "

	f.userRepo.EXPECT().FindByID(ctx, actor.UserID).Return(&entity.User{ID: actor.UserID, Name: "Asha"}, nil)

	_, err := f.srv.UpdateProfile(ctx, actor, usecase.UpdateProfileInput{Name: &blank})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestUserService_ChangePassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := createTestUserService(t)
		ctx := context.Background()
		actor := businessActor()
		user := &entity.User{ID: actor.UserID, Email: actor.Email, PasswordHash: "old-hash", Role: entity.RoleBusiness}

		f.userRepo.EXPECT().FindByID(ctx, actor.UserID).Return(user, nil)
		f.hasher.EXPECT().Check("old-secret", "old-hash").Return(true)
		f.hasher.EXPECT().Hash("new-secret").Return("new-hash", nil)
		f.userRepo.EXPECT().Update(ctx, user).Return(nil)
		f.expectTokens(actor.UserID, []string{"business"})

		out, err := f.srv.ChangePassword(ctx, actor, usecase.ChangePasswordInput{CurrentPassword: "old-secret", NewPassword: "new-secret"})

		require.NoError(t, err)
		assert.NotEmpty(t, out.AccessToken)
		assert.Equal(t, "new-hash", user.PasswordHash)
		assert.Equal(t, "Password changed: shop@example.com", f.audit.last().Description)
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := createTestUserService(t)
		ctx := context.Background()
		actor := businessActor()

		f.userRepo.EXPECT().FindByID(ctx, actor.UserID).Return(&entity.User{ID: actor.UserID, PasswordHash: "old-hash"}, nil)
		f.hasher.EXPECT().Check("guess", "old-hash").Return(false)

		_, err := f.srv.ChangePassword(ctx, actor, usecase.ChangePasswordInput{CurrentPassword: "guess", NewPassword: "new-secret"})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})
}

func TestUserService_RegisterPushToken(t *testing.T) {
	f := createTestUserService(t)
	ctx := context.Background()
	actor := staffActor()
	user := &entity.User{ID: actor.UserID}

	f.userRepo.EXPECT().FindByID(ctx, actor.UserID).Return(user, nil)
	f.userRepo.EXPECT().Update(ctx, user).Return(nil)

	require.NoError(t, f.srv.RegisterPushToken(ctx, actor, " fcm-token \n"))
	assert.Equal(t, "fcm-token", user.PushToken)
}

func TestUserService_Me_NotFound(t *testing.T) {
	f := createTestUserService(t)
	ctx := context.Background()
	actor := businessActor()

	f.userRepo.EXPECT().FindByID(ctx, actor.UserID).Return(nil, domainerrors.ErrUserNotFound)

	_, err := f.srv.Me(ctx, actor)

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
