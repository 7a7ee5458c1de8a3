package middleware

import (
	"log/slog"
	"slices"
	"strings"

	deliverycontext "courierhub/internal/delivery/context"
	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/domain/service"
	"courierhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// keyActor is where Authenticate stores the caller on the echo context.
const keyActor = "actor"

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	UserUC       usecase.UserUsecase
	Logger       *slog.Logger
}

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userUC   usecase.UserUsecase
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc: params.TokenService,
		userUC:   params.UserUC,
		logger:   params.Logger,
	}
}

// Authenticate validates the bearer access token and resolves the caller.
// The account is looked up on every request so deactivation takes effect immediately.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrUnauthorized.WithDetails("authorization header is missing")
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			return domainerrors.ErrUnauthorized.WithDetails("invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil || claims.Type != service.TokenTypeAccess {
			return domainerrors.ErrUnauthorized.WithDetails("invalid or expired token")
		}

		ctx := c.Request().Context()
		user, err := m.userUC.Me(ctx, entity.Actor{UserID: claims.UserID})
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return domainerrors.ErrUnauthorized.WithDetails("unknown user")
		}
		if err != nil {
			return errors.WithStack(err)
		}
		if !user.IsActive {
			return domainerrors.ErrAccountInactive
		}

		actor := user.Actor()
		c.Set(keyActor, actor)

		// Tag the request logger with the caller
		logger := deliverycontext.GetLoggerOrDefault(ctx, m.logger).With(slog.String("user_id", actor.UserID.String()))
		c.SetRequest(c.Request().WithContext(deliverycontext.WithLogger(ctx, logger)))

		return next(c)
	}
}

// RequireRole is a middleware factory that admits only the given roles.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := GetActor(c)
			if !ok {
				return domainerrors.ErrUnauthorized
			}

			if !slices.Contains(roles, actor.Role) {
				return domainerrors.ErrForbidden.WithDetails("role " + actor.Role.String() + " is not allowed")
			}

			return next(c)
		}
	}
}

// GetActor returns the caller resolved by Authenticate.
func GetActor(c echo.Context) (entity.Actor, bool) {
	actor, ok := c.Get(keyActor).(entity.Actor)

	return actor, ok
}

// MustActor returns the caller or an unauthorized error for routes mounted without Authenticate.
func MustActor(c echo.Context) (entity.Actor, error) {
	actor, ok := GetActor(c)
	if !ok {
		return entity.Actor{}, domainerrors.ErrUnauthorized
	}

	return actor, nil
}
