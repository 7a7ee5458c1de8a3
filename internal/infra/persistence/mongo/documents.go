package mongo

import (
	"time"

	"courierhub/internal/domain/entity"

	"github.com/google/uuid"
)

type userDocument struct {
	ID           string           `bson:"_id"`
	Email        string           `bson:"email"`
	Name         string           `bson:"name"`
	PasswordHash string           `bson:"password_hash"`
	Role         string           `bson:"role"`
	Company      string           `bson:"company,omitempty"`
	Phone        string           `bson:"phone,omitempty"`
	IsActive     bool             `bson:"is_active"`
	Settings     *entity.Settings `bson:"settings,omitempty"`
	PushToken    string           `bson:"push_token,omitempty"`
	LastLogin    *time.Time       `bson:"last_login,omitempty"`
	CreatedAt    time.Time        `bson:"created_at"`
	UpdatedAt    time.Time        `bson:"updated_at"`
}

type courierDocument struct {
	ID          string                    `bson:"_id"`
	Name        string                    `bson:"name"`
	Code        string                    `bson:"code"`
	Logo        string                    `bson:"logo,omitempty"`
	Description string                    `bson:"description,omitempty"`
	IsActive    bool                      `bson:"is_active"`
	Pricing     entity.CourierPricing     `bson:"pricing"`
	Coverage    entity.CourierCoverage    `bson:"coverage"`
	Performance entity.CourierPerformance `bson:"performance"`
	Contact     entity.CourierContact     `bson:"contact"`
	CreatedAt   time.Time                 `bson:"created_at"`
	UpdatedAt   time.Time                 `bson:"updated_at"`
}

type shipmentDocument struct {
	ID                   string         `bson:"_id"`
	TrackingID           string         `bson:"tracking_id"`
	UserID               string         `bson:"user_id"`
	CourierID            string         `bson:"courier_id"`
	CourierName          string         `bson:"courier_name"`
	Sender               entity.Party   `bson:"sender"`
	Receiver             entity.Party   `bson:"receiver"`
	Package              entity.Package `bson:"package"`
	ServiceType          string         `bson:"service_type"`
	PaymentMode          string         `bson:"payment_mode"`
	CODAmount            float64        `bson:"cod_amount"`
	ShippingCost         float64        `bson:"shipping_cost"`
	InsuranceCost        float64        `bson:"insurance_cost"`
	TotalCost            float64        `bson:"total_cost"`
	Status               string         `bson:"status"`
	PickupDate           *time.Time     `bson:"pickup_date,omitempty"`
	ExpectedDeliveryDate *time.Time     `bson:"expected_delivery_date,omitempty"`
	ActualDeliveryDate   *time.Time     `bson:"actual_delivery_date,omitempty"`
	SpecialInstructions  string         `bson:"special_instructions,omitempty"`
	LabelGenerated       bool           `bson:"label_generated"`
	LabelURL             string         `bson:"label_url,omitempty"`
	FailureReason        string         `bson:"failure_reason,omitempty"`
	AttemptCount         int            `bson:"attempt_count"`
	CreatedAt            time.Time      `bson:"created_at"`
	UpdatedAt            time.Time      `bson:"updated_at"`
}

type trackingLogDocument struct {
	ID          string          `bson:"_id"`
	ShipmentID  string          `bson:"shipment_id"`
	TrackingID  string          `bson:"tracking_id"`
	Status      string          `bson:"status"`
	Description string          `bson:"description"`
	Location    entity.Location `bson:"location"`
	Remarks     string          `bson:"remarks,omitempty"`
	UpdatedBy   string          `bson:"updated_by"`
	Timestamp   time.Time       `bson:"timestamp"`
}

type notificationDocument struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"user_id"`
	Type        string    `bson:"type"`
	Title       string    `bson:"title"`
	Message     string    `bson:"message"`
	ShipmentID  string    `bson:"shipment_id,omitempty"`
	TrackingID  string    `bson:"tracking_id,omitempty"`
	IsRead      bool      `bson:"is_read"`
	IsEmailSent bool      `bson:"is_email_sent"`
	CreatedAt   time.Time `bson:"created_at"`
}

type systemLogDocument struct {
	ID           string         `bson:"_id"`
	Action       string         `bson:"action"`
	Module       string         `bson:"module"`
	UserID       string         `bson:"user_id,omitempty"`
	UserEmail    string         `bson:"user_email,omitempty"`
	Description  string         `bson:"description"`
	Details      map[string]any `bson:"details,omitempty"`
	IPAddress    string         `bson:"ip_address,omitempty"`
	UserAgent    string         `bson:"user_agent,omitempty"`
	Status       string         `bson:"status"`
	ErrorMessage string         `bson:"error_message,omitempty"`
	CreatedAt    time.Time      `bson:"created_at"`
}

// newID returns a time-ordered key, so _id order follows insertion order.
func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return id
}

func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}

	return id
}

func optionalID(id *uuid.UUID) string {
	if id == nil {
		return ""
	}

	return id.String()
}

func parseOptionalID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id := parseID(s)

	return &id
}

// --- Mapper Functions ---

func toUserDomain(d *userDocument) *entity.User {
	return &entity.User{
		ID:           parseID(d.ID),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         entity.Role(d.Role),
		Company:      d.Company,
		Phone:        d.Phone,
		IsActive:     d.IsActive,
		Settings:     d.Settings,
		PushToken:    d.PushToken,
		LastLogin:    d.LastLogin,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func fromUserDomain(u *entity.User) *userDocument {
	return &userDocument{
		ID:           u.ID.String(),
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Company:      u.Company,
		Phone:        u.Phone,
		IsActive:     u.IsActive,
		Settings:     u.Settings,
		PushToken:    u.PushToken,
		LastLogin:    u.LastLogin,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func toCourierDomain(d *courierDocument) *entity.Courier {
	return &entity.Courier{
		ID:          parseID(d.ID),
		Name:        d.Name,
		Code:        d.Code,
		Logo:        d.Logo,
		Description: d.Description,
		IsActive:    d.IsActive,
		Pricing:     d.Pricing,
		Coverage:    d.Coverage,
		Performance: d.Performance,
		Contact:     d.Contact,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func fromCourierDomain(c *entity.Courier) *courierDocument {
	return &courierDocument{
		ID:          c.ID.String(),
		Name:        c.Name,
		Code:        c.Code,
		Logo:        c.Logo,
		Description: c.Description,
		IsActive:    c.IsActive,
		Pricing:     c.Pricing,
		Coverage:    c.Coverage,
		Performance: c.Performance,
		Contact:     c.Contact,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toShipmentDomain(d *shipmentDocument) *entity.Shipment {
	return &entity.Shipment{
		ID:                   parseID(d.ID),
		TrackingID:           d.TrackingID,
		UserID:               parseID(d.UserID),
		CourierID:            parseID(d.CourierID),
		CourierName:          d.CourierName,
		Sender:               d.Sender,
		Receiver:             d.Receiver,
		Package:              d.Package,
		ServiceType:          entity.ServiceType(d.ServiceType),
		PaymentMode:          entity.PaymentMode(d.PaymentMode),
		CODAmount:            d.CODAmount,
		ShippingCost:         d.ShippingCost,
		InsuranceCost:        d.InsuranceCost,
		TotalCost:            d.TotalCost,
		Status:               entity.ShipmentStatus(d.Status),
		PickupDate:           d.PickupDate,
		ExpectedDeliveryDate: d.ExpectedDeliveryDate,
		ActualDeliveryDate:   d.ActualDeliveryDate,
		SpecialInstructions:  d.SpecialInstructions,
		LabelGenerated:       d.LabelGenerated,
		LabelURL:             d.LabelURL,
		FailureReason:        d.FailureReason,
		AttemptCount:         d.AttemptCount,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

func fromShipmentDomain(s *entity.Shipment) *shipmentDocument {
	return &shipmentDocument{
		ID:                   s.ID.String(),
		TrackingID:           s.TrackingID,
		UserID:               s.UserID.String(),
		CourierID:            s.CourierID.String(),
		CourierName:          s.CourierName,
		Sender:               s.Sender,
		Receiver:             s.Receiver,
		Package:              s.Package,
		ServiceType:          string(s.ServiceType),
		PaymentMode:          string(s.PaymentMode),
		CODAmount:            s.CODAmount,
		ShippingCost:         s.ShippingCost,
		InsuranceCost:        s.InsuranceCost,
		TotalCost:            s.TotalCost,
		Status:               string(s.Status),
		PickupDate:           s.PickupDate,
		ExpectedDeliveryDate: s.ExpectedDeliveryDate,
		ActualDeliveryDate:   s.ActualDeliveryDate,
		SpecialInstructions:  s.SpecialInstructions,
		LabelGenerated:       s.LabelGenerated,
		LabelURL:             s.LabelURL,
		FailureReason:        s.FailureReason,
		AttemptCount:         s.AttemptCount,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

func toTrackingLogDomain(d *trackingLogDocument) *entity.TrackingLogEntry {
	return &entity.TrackingLogEntry{
		ID:          parseID(d.ID),
		ShipmentID:  parseID(d.ShipmentID),
		TrackingID:  d.TrackingID,
		Status:      entity.TrackingEvent(d.Status),
		Description: d.Description,
		Location:    d.Location,
		Remarks:     d.Remarks,
		UpdatedBy:   d.UpdatedBy,
		Timestamp:   d.Timestamp,
	}
}

func fromTrackingLogDomain(e *entity.TrackingLogEntry) *trackingLogDocument {
	updatedBy := e.UpdatedBy
	if updatedBy == "" {
		updatedBy = entity.DefaultUpdatedBy
	}

	return &trackingLogDocument{
		ID:          e.ID.String(),
		ShipmentID:  e.ShipmentID.String(),
		TrackingID:  e.TrackingID,
		Status:      string(e.Status),
		Description: e.Description,
		Location:    e.Location,
		Remarks:     e.Remarks,
		UpdatedBy:   updatedBy,
		Timestamp:   e.Timestamp,
	}
}

func toNotificationDomain(d *notificationDocument) *entity.Notification {
	return &entity.Notification{
		ID:      parseID(d.ID),
		UserID:  parseID(d.UserID),
		Type:    entity.NotificationType(d.Type),
		Title:   d.Title,
		Message: d.Message,
		Data: entity.NotificationData{
			ShipmentID: parseOptionalID(d.ShipmentID),
			TrackingID: d.TrackingID,
		},
		IsRead:      d.IsRead,
		IsEmailSent: d.IsEmailSent,
		CreatedAt:   d.CreatedAt,
	}
}

func fromNotificationDomain(n *entity.Notification) *notificationDocument {
	return &notificationDocument{
		ID:          n.ID.String(),
		UserID:      n.UserID.String(),
		Type:        string(n.Type),
		Title:       n.Title,
		Message:     n.Message,
		ShipmentID:  optionalID(n.Data.ShipmentID),
		TrackingID:  n.Data.TrackingID,
		IsRead:      n.IsRead,
		IsEmailSent: n.IsEmailSent,
		CreatedAt:   n.CreatedAt,
	}
}

func toSystemLogDomain(d *systemLogDocument) *entity.SystemLog {
	return &entity.SystemLog{
		ID:           parseID(d.ID),
		Action:       entity.LogAction(d.Action),
		Module:       entity.LogModule(d.Module),
		UserID:       parseOptionalID(d.UserID),
		UserEmail:    d.UserEmail,
		Description:  d.Description,
		Details:      d.Details,
		IPAddress:    d.IPAddress,
		UserAgent:    d.UserAgent,
		Status:       entity.LogStatus(d.Status),
		ErrorMessage: d.ErrorMessage,
		CreatedAt:    d.CreatedAt,
	}
}

func fromSystemLogDomain(l *entity.SystemLog) *systemLogDocument {
	return &systemLogDocument{
		ID:           l.ID.String(),
		Action:       string(l.Action),
		Module:       string(l.Module),
		UserID:       optionalID(l.UserID),
		UserEmail:    l.UserEmail,
		Description:  l.Description,
		Details:      l.Details,
		IPAddress:    l.IPAddress,
		UserAgent:    l.UserAgent,
		Status:       string(l.Status),
		ErrorMessage: l.ErrorMessage,
		CreatedAt:    l.CreatedAt,
	}
}
