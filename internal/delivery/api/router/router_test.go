package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apimiddleware "courierhub/internal/delivery/api/middleware"
	"courierhub/internal/delivery/api/router/handler"
	"courierhub/internal/delivery/api/validator"
	"courierhub/internal/delivery/middleware"
	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/domain/rate"
	"courierhub/internal/domain/service"
	"courierhub/internal/domain/tracking"
	"courierhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeTokens struct {
	service.TokenService
	claims map[string]*service.Claims
}

func (f *fakeTokens) ValidateToken(token string) (*service.Claims, error) {
	if c, ok := f.claims[token]; ok {
		return c, nil
	}

	return nil, domainerrors.ErrUnauthorized
}

type fakeUsers struct {
	usecase.UserUsecase
	users map[uuid.UUID]*entity.User
}

func (f *fakeUsers) Me(_ context.Context, actor entity.Actor) (*entity.User, error) {
	if u, ok := f.users[actor.UserID]; ok {
		return u, nil
	}

	return nil, domainerrors.ErrUserNotFound
}

func (f *fakeUsers) Register(_ context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	return &usecase.AuthOutput{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresIn:    86400,
		User: &entity.User{
			ID:           uuid.New(),
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: "$2a$10$secret",
			Role:         entity.RoleBusiness,
			IsActive:     true,
		},
	}, nil
}

type fakeCouriers struct {
	usecase.CourierUsecase
	activeOnly *bool
	created    *entity.CourierDraft
	priority   rate.Priority
}

func (f *fakeCouriers) ListCouriers(_ context.Context, activeOnly bool) ([]*entity.Courier, error) {
	f.activeOnly = &activeOnly

	return []*entity.Courier{{Name: "BlueDart"}}, nil
}

func (f *fakeCouriers) CreateCourier(_ context.Context, _ entity.Actor, draft entity.CourierDraft) (*entity.Courier, error) {
	f.created = &draft
	courier := draft.Resolve(nil)
	courier.ID = uuid.New()

	return courier, nil
}

func (f *fakeCouriers) Recommend(_ context.Context, _ rate.Request, priority rate.Priority) ([]rate.ScoredQuote, error) {
	f.priority = priority

	return []rate.ScoredQuote{}, nil
}

type fakeShipments struct {
	usecase.ShipmentUsecase
	listInput *usecase.ListShipmentsInput
	operator  *tracking.Operator
}

func (f *fakeShipments) ListShipments(_ context.Context, _ entity.Actor, input usecase.ListShipmentsInput) (*usecase.ShipmentList, error) {
	f.listInput = &input
	shipments := []*entity.Shipment{{TrackingID: "BLU1"}}

	return &usecase.ShipmentList{
		PageInfo:  usecase.NewPageInfo(len(shipments), 21, usecase.PageRequest{Page: 2, Limit: 10}),
		Shipments: shipments,
	}, nil
}

func (f *fakeShipments) GetShipment(_ context.Context, _ entity.Actor, _ uuid.UUID) (*usecase.ShipmentDetail, error) {
	return nil, domainerrors.ErrShipmentNotFound
}

func (f *fakeShipments) UpdateStatus(_ context.Context, op tracking.Operator, id uuid.UUID, input usecase.UpdateStatusInput) (*entity.Shipment, error) {
	f.operator = &op

	return &entity.Shipment{ID: id, Status: input.Status}, nil
}

type fakeTracking struct {
	usecase.TrackingUsecase
	simulated []string
}

func (f *fakeTracking) Simulate(_ context.Context, trackingID string) (*usecase.SimulateResult, error) {
	f.simulated = append(f.simulated, trackingID)

	return &usecase.SimulateResult{TrackingID: trackingID, PreviousStatus: entity.StatusOutForDelivery, NewStatus: entity.StatusDelivered}, nil
}

func (f *fakeTracking) Track(_ context.Context, trackingID string) (*usecase.TrackResult, error) {
	if trackingID != "BLU1" {
		return nil, domainerrors.ErrTrackingNotFound
	}

	return &usecase.TrackResult{TrackingID: trackingID, Status: entity.StatusInTransit}, nil
}

type fakeAdmin struct {
	usecase.AdminUsecase
}

func (f *fakeAdmin) ListUsers(_ context.Context, _ entity.Actor, page usecase.PageRequest) (*usecase.UserList, error) {
	users := []*entity.User{{ID: uuid.New(), Email: "a@b.example", PasswordHash: "$2a$10$secret"}}

	return &usecase.UserList{PageInfo: usecase.NewPageInfo(1, 1, page), Users: users}, nil
}

// --- harness ---

type testAPI struct {
	e         *echo.Echo
	couriers  *fakeCouriers
	shipments *fakeShipments
	tracking  *fakeTracking
	tokens    map[entity.Role]string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := &testAPI{
		couriers:  &fakeCouriers{},
		shipments: &fakeShipments{},
		tracking:  &fakeTracking{},
		tokens:    map[entity.Role]string{},
	}

	users := &fakeUsers{users: map[uuid.UUID]*entity.User{}}
	tokens := &fakeTokens{claims: map[string]*service.Claims{}}
	for _, role := range []entity.Role{entity.RoleBusiness, entity.RoleStaff, entity.RoleAdmin} {
		u := &entity.User{ID: uuid.New(), Email: string(role) + "@courierhub.example", Role: role, IsActive: true}
		users.users[u.ID] = u
		token := "token-" + string(role)
		tokens.claims[token] = &service.Claims{UserID: u.ID, Type: service.TokenTypeAccess}
		api.tokens[role] = token
	}
	inactive := &entity.User{ID: uuid.New(), Role: entity.RoleBusiness}
	users.users[inactive.ID] = inactive
	tokens.claims["token-inactive"] = &service.Claims{UserID: inactive.ID, Type: service.TokenTypeAccess}
	tokens.claims["token-refresh"] = &service.Claims{UserID: inactive.ID, Type: service.TokenTypeRefresh}

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = apimiddleware.NewErrorMiddleware(logger).HandleHTTPError
	e.Use(middleware.NewRequestIDMiddleware(logger).Process)

	r := NewRouter(RouterParams{
		AuthHandler:         handler.NewAuthHandler(handler.AuthHandlerParams{UserUC: users, Logger: logger}),
		CourierHandler:      handler.NewCourierHandler(handler.CourierHandlerParams{CourierUC: api.couriers, Logger: logger}),
		ShipmentHandler:     handler.NewShipmentHandler(handler.ShipmentHandlerParams{ShipmentUC: api.shipments, Logger: logger}),
		TrackingHandler:     handler.NewTrackingHandler(handler.TrackingHandlerParams{TrackingUC: api.tracking, Logger: logger}),
		AnalyticsHandler:    handler.NewAnalyticsHandler(handler.AnalyticsHandlerParams{Logger: logger}),
		NotificationHandler: handler.NewNotificationHandler(handler.NotificationHandlerParams{Logger: logger}),
		SettingsHandler:     handler.NewSettingsHandler(handler.SettingsHandlerParams{Logger: logger}),
		AdminHandler:        handler.NewAdminHandler(handler.AdminHandlerParams{AdminUC: &fakeAdmin{}, Logger: logger}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(apimiddleware.AuthMiddlewareParams{
			TokenService: tokens,
			UserUC:       users,
			Logger:       logger,
		}),
	})
	r.RegisterRoutes(e)
	api.e = e

	return api
}

func (a *testAPI) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	return rec
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Code    string          `json:"code"`
		Kind    string          `json:"kind"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID  string            `json:"request_id"`
		Pagination *usecase.PageInfo `json:"pagination"`
	} `json:"meta"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return env
}

// --- tests ---

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.NotEmpty(t, env.Meta.RequestID)
}

func TestAuthentication(t *testing.T) {
	api := newTestAPI(t)

	testCases := []struct {
		name  string
		token string
		code  int
		error string
	}{
		{name: "missing token", code: http.StatusUnauthorized, error: "UNAUTHORIZED"},
		{name: "unknown token", token: "forged", code: http.StatusUnauthorized, error: "UNAUTHORIZED"},
		{name: "refresh token", token: "token-refresh", code: http.StatusUnauthorized, error: "UNAUTHORIZED"},
		{name: "deactivated account", token: "token-inactive", code: http.StatusUnauthorized, error: "ACCOUNT_INACTIVE"},
		{name: "valid", token: api.tokens[entity.RoleBusiness], code: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := api.do(http.MethodGet, "/api/v1/couriers", tc.token, "")

			assert.Equal(t, tc.code, rec.Code)
			if tc.error != "" {
				env := decode(t, rec)
				require.NotNil(t, env.Error)
				assert.Equal(t, tc.error, env.Error.Code)
				assert.Equal(t, string(domainerrors.KindUnauthorized), env.Error.Kind)
			}
		})
	}
}

func TestRegister_HidesPasswordHash(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/auth/register", "", `{"name":"Asha","email":"asha@shop.example","password":"secret1"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "$2a$10$secret")
	env := decode(t, rec)
	var body handler.AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, "Bearer", body.TokenType)
	assert.Equal(t, int64(86400), body.ExpiresIn)
	assert.Equal(t, entity.RoleBusiness, body.User.Role)
}

func TestRegister_ValidationListsFields(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/auth/register", "", `{"name":"","email":"nope","password":"123"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	var fields []validator.FieldError
	require.NoError(t, json.Unmarshal(env.Error.Details, &fields))
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	assert.ElementsMatch(t, []string{"name", "email", "password"}, names)
}

func TestCouriers_InactiveListingIsAdminOnly(t *testing.T) {
	api := newTestAPI(t)

	api.do(http.MethodGet, "/api/v1/couriers?include_inactive=true", api.tokens[entity.RoleBusiness], "")
	require.NotNil(t, api.couriers.activeOnly)
	assert.True(t, *api.couriers.activeOnly)

	api.do(http.MethodGet, "/api/v1/couriers?include_inactive=true", api.tokens[entity.RoleAdmin], "")
	assert.False(t, *api.couriers.activeOnly)
}

func TestCouriers_ManagementRequiresAdmin(t *testing.T) {
	api := newTestAPI(t)
	body := `{"name":"Delhivery","code":"DLV","pricing":{"base_rate":40,"weight_rate":20}}`

	rec := api.do(http.MethodPost, "/api/v1/couriers", api.tokens[entity.RoleStaff], body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, api.couriers.created)

	rec = api.do(http.MethodPost, "/api/v1/couriers", api.tokens[entity.RoleAdmin], body)
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, api.couriers.created)
	assert.Nil(t, api.couriers.created.IsActive)
	assert.InDelta(t, 40, api.couriers.created.Pricing.BaseRate, 1e-9)
}

func TestCouriers_CreateDistinguishesOmittedFromZero(t *testing.T) {
	api := newTestAPI(t)
	body := `{"name":"Free COD","code":"FCD","pricing":{"base_rate":40,"weight_rate":25,"cod_charges":0}}`

	rec := api.do(http.MethodPost, "/api/v1/couriers", api.tokens[entity.RoleAdmin], body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, api.couriers.created)
	require.NotNil(t, api.couriers.created.Pricing.CODCharges)
	assert.Zero(t, *api.couriers.created.Pricing.CODCharges)
	assert.Nil(t, api.couriers.created.Pricing.ExpressMultiplier)
	assert.Contains(t, rec.Body.String(), `"cod_charges":0`)
	assert.Contains(t, rec.Body.String(), `"express_multiplier":1.5`)
}

func TestCouriers_QuoteRejectsAbsurdWeight(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/v1/couriers/recommend", api.tokens[entity.RoleBusiness], `{"weight":1e300}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, api.couriers.priority)
}

func TestCouriers_RecommendParsesPriority(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/v1/couriers/recommend", api.tokens[entity.RoleBusiness], `{"weight":2,"priority":"warp"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, rate.PriorityBalanced, api.couriers.priority)
}

func TestShipments_ListReadsFilters(t *testing.T) {
	api := newTestAPI(t)
	courierID := uuid.New()

	rec := api.do(http.MethodGet,
		"/api/v1/shipments?page=2&limit=10&status=in_transit&search=pune&courier_id="+courierID.String()+"&from=2026-01-01&to=2026-01-31",
		api.tokens[entity.RoleBusiness], "")

	assert.Equal(t, http.StatusOK, rec.Code)
	in := api.shipments.listInput
	require.NotNil(t, in)
	assert.Equal(t, usecase.PageRequest{Page: 2, Limit: 10}, in.PageRequest)
	assert.Equal(t, "in_transit", in.Status)
	assert.Equal(t, "pune", in.Search)
	assert.Equal(t, courierID, *in.CourierID)
	assert.Equal(t, 2026, in.From.Year())
	assert.Equal(t, 31, in.To.Day())
	assert.Equal(t, 23, in.To.Hour())

	env := decode(t, rec)
	require.NotNil(t, env.Meta.Pagination)
	assert.Equal(t, 3, env.Meta.Pagination.Pages)
}

func TestShipments_BadQueryIsRejected(t *testing.T) {
	api := newTestAPI(t)

	for _, query := range []string{"page=two", "courier_id=nope", "from=yesterday"} {
		rec := api.do(http.MethodGet, "/api/v1/shipments?"+query, api.tokens[entity.RoleBusiness], "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestShipments_StatusChangeIsOperatorOnly(t *testing.T) {
	api := newTestAPI(t)
	path := "/api/v1/shipments/" + uuid.NewString() + "/status"
	body := `{"status":"picked_up","location":{"city":"Pune"}}`

	rec := api.do(http.MethodPut, path, api.tokens[entity.RoleBusiness], body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, api.shipments.operator)

	rec = api.do(http.MethodPut, path, api.tokens[entity.RoleStaff], `{"status":"teleported"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPut, path, api.tokens[entity.RoleStaff], body)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, api.shipments.operator)
	assert.True(t, api.shipments.operator.Valid())
	assert.Equal(t, entity.RoleStaff, api.shipments.operator.Actor().Role)
}

func TestShipments_DomainErrorsKeepTheirKind(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/v1/shipments/"+uuid.NewString(), api.tokens[entity.RoleBusiness], "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SHIPMENT_NOT_FOUND", env.Error.Code)
	assert.Equal(t, string(domainerrors.KindNotFound), env.Error.Kind)

	rec = api.do(http.MethodGet, "/api/v1/shipments/not-a-uuid", api.tokens[entity.RoleBusiness], "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTracking_IsPublic(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/v1/tracking/BLU1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/tracking/NOPE", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTracking_SimulateIsOperatorOnly(t *testing.T) {
	api := newTestAPI(t)
	path := "/api/v1/tracking/BLU1/simulate"

	rec := api.do(http.MethodPost, path, "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, path, api.tokens[entity.RoleBusiness], "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, api.tracking.simulated)

	for _, role := range []entity.Role{entity.RoleStaff, entity.RoleAdmin} {
		rec = api.do(http.MethodPost, path, api.tokens[role], "")
		assert.Equal(t, http.StatusOK, rec.Code, role)
	}
	assert.Equal(t, []string{"BLU1", "BLU1"}, api.tracking.simulated)
}

func TestAdmin_RequiresAdminAndHidesHashes(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/v1/admin/users", api.tokens[entity.RoleStaff], "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/admin/users", api.tokens[entity.RoleAdmin], "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")

	rec = api.do(http.MethodGet, "/api/v1/admin/logs?action=hacking", api.tokens[entity.RoleAdmin], "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
