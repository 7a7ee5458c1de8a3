package handler

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"courierhub/internal/delivery/api/middleware"
	"courierhub/internal/delivery/api/response"
	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// HeaderCachedSettings carries the client's cached settings as base64-encoded JSON.
const HeaderCachedSettings = "X-Cached-Settings"

// SettingsHandlerParams holds dependencies for SettingsHandler, injected by Fx.
type SettingsHandlerParams struct {
	fx.In

	SettingsUC usecase.SettingsUsecase
	Logger     *slog.Logger
}

// SettingsHandler serves the caller's preferences and data export.
type SettingsHandler struct {
	uc     usecase.SettingsUsecase
	logger *slog.Logger
}

// NewSettingsHandler is the constructor for SettingsHandler.
func NewSettingsHandler(params SettingsHandlerParams) *SettingsHandler {
	return &SettingsHandler{
		uc:     params.SettingsUC,
		logger: params.Logger,
	}
}

// cachedSettings decodes the client's cached copy. A malformed header is ignored.
func (h *SettingsHandler) cachedSettings(c echo.Context) *entity.Settings {
	raw := c.Request().Header.Get(HeaderCachedSettings)
	if raw == "" {
		return nil
	}

	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}

	var cached entity.Settings
	if err := json.Unmarshal(decoded, &cached); err != nil {
		h.logger.Debug("Ignoring malformed cached settings", slog.Any("error", err))

		return nil
	}

	return &cached
}

// GetSettings returns the caller's effective settings.
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	settings, err := h.uc.GetSettings(c.Request().Context(), actor, h.cachedSettings(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings)
}

// UpdateSettings applies a partial edit.
func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	// Unknown enum values in the patch are ignored when it is applied.
	var patch entity.SettingsPatch
	if err := c.Bind(&patch); err != nil {
		return domainerrors.ErrInvalidInput.WithDetails("malformed request body")
	}

	settings, err := h.uc.UpdateSettings(c.Request().Context(), actor, patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, settings, "Settings updated successfully")
}

// ResetSettings restores the defaults.
func (h *SettingsHandler) ResetSettings(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	settings, err := h.uc.ResetSettings(c.Request().Context(), actor)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, settings, "Settings reset to defaults")
}

// ExportData returns a portable copy of the caller's data as a download.
func (h *SettingsHandler) ExportData(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	export, err := h.uc.ExportData(c.Request().Context(), actor)
	if err != nil {
		return errors.WithStack(err)
	}

	filename := "courierhub-export-" + export.ExportedAt.UTC().Format("2006-01-02") + ".json"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)

	return c.JSON(http.StatusOK, export)
}
