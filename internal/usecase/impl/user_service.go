package impl

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"

	deliverycontext "courierhub/internal/delivery/context"
	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/domain/repository"
	"courierhub/internal/domain/service"
	"courierhub/internal/usecase"

	"github.com/pkg/errors"
	"github.com/zoobzio/clockz"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	audit        usecase.AuditRecorder
	clock        clockz.Clock
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Audit        usecase.AuditRecorder
	Clock        clockz.Clock
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		audit:        params.Audit,
		clock:        params.Clock,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register opens a business account. Staff and admin roles are granted by an admin afterwards.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.ErrInvalidInput.WithDetails("name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domainerrors.ErrInvalidInput.WithDetails("a valid email is required")
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	now := srv.clock.Now()
	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleBusiness,
		Company:      strings.TrimSpace(input.Company),
		Phone:        strings.TrimSpace(input.Phone),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		_, err := userRepo.FindByEmail(ctx, email)
		if err == nil {
			return domainerrors.ErrUserAlreadyExists
		}
		if !errors.Is(err, domainerrors.ErrUserNotFound) {
			return errors.Wrap(err, "failed to look up email")
		}

		return userRepo.Create(ctx, user)
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.audit.Record(ctx, actorLog(user.Actor(), entity.ActionCreate, entity.ModuleAuth, "New user registered: "+email))

	return srv.issueTokens(user)
}

// Login verifies credentials and records the attempt either way.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domainerrors.ErrInvalidInput.WithDetails("email and password are required")
	}

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}
	if !user.IsActive {
		return nil, domainerrors.ErrAccountInactive
	}
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.audit.Record(ctx, &entity.SystemLog{
			Action:      entity.ActionLogin,
			Module:      entity.ModuleAuth,
			UserEmail:   email,
			Description: "Failed login attempt for: " + email,
			Status:      entity.LogFailed,
		})

		return nil, domainerrors.ErrInvalidCredentials
	}

	now := srv.clock.Now()
	user.LastLogin = &now
	if err := srv.userRepo.Update(ctx, user); err != nil {
		srv.log(ctx).Warn("Failed to record last login", slog.String("userID", user.ID.String()), slog.Any("error", err))
	}

	srv.audit.Record(ctx, actorLog(user.Actor(), entity.ActionLogin, entity.ModuleAuth, "User logged in: "+email))
	srv.log(ctx).Debug("User logged in", slog.String("userID", user.ID.String()))

	return srv.issueTokens(user)
}

// Refresh rotates the token pair. Deactivated accounts cannot refresh.
func (srv *userService) Refresh(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	claims, err := srv.tokenService.ValidateToken(refreshToken)
	if err != nil || claims.Type != service.TokenTypeRefresh {
		return nil, domainerrors.ErrInvalidCredentials.WithDetails("invalid refresh token")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, domainerrors.ErrInvalidCredentials.WithDetails("invalid refresh token")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}
	if !user.IsActive {
		return nil, domainerrors.ErrAccountInactive
	}

	return srv.issueTokens(user)
}

func (srv *userService) Me(ctx context.Context, actor entity.Actor) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

func (srv *userService) UpdateProfile(ctx context.Context, actor entity.Actor, input usecase.UpdateProfileInput) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerrors.ErrInvalidInput.WithDetails("name cannot be empty")
		}
		user.Name = name
	}
	if input.Company != nil {
		user.Company = strings.TrimSpace(*input.Company)
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	user.UpdatedAt = srv.clock.Now()

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	return user, nil
}

// ChangePassword re-issues tokens so the client can replace its session.
func (srv *userService) ChangePassword(ctx context.Context, actor entity.Actor, input usecase.ChangePasswordInput) (*usecase.AuthOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}
	if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials.WithDetails("current password is incorrect")
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}
	user.PasswordHash = hash
	user.UpdatedAt = srv.clock.Now()

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update password")
	}

	srv.audit.Record(ctx, actorLog(actor, entity.ActionUpdate, entity.ModuleAuth, "Password changed: "+user.Email))

	return srv.issueTokens(user)
}

func (srv *userService) RegisterPushToken(ctx context.Context, actor entity.Actor, token string) error {
	user, err := srv.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		return errors.Wrap(err, "failed to find user")
	}

	user.PushToken = strings.TrimSpace(token)
	user.UpdatedAt = srv.clock.Now()
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to store push token")
	}

	return nil
}

func (srv *userService) issueTokens(user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, entity.Roles{user.Role}.ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(srv.tokenService.GetAccessTokenDuration().Seconds()),
		User:         user,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
