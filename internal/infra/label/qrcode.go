// Package label renders shipping labels as QR codes and keeps them in a blob bucket.
package label

import (
	"encoding/json"
	"fmt"
	"strings"

	"courierhub/internal/domain/entity"

	"github.com/skip2/go-qrcode"
)

const labelType = "shipping_label"

// LabelData is the payload encoded in a label's QR code.
type LabelData struct {
	Type         string  `json:"type"`
	TrackingID   string  `json:"tracking_id"`
	Courier      string  `json:"courier"`
	ServiceType  string  `json:"service_type"`
	PaymentMode  string  `json:"payment_mode"`
	CODAmount    float64 `json:"cod_amount,omitempty"`
	WeightKg     float64 `json:"weight"`
	FromCity     string  `json:"from_city"`
	FromPincode  string  `json:"from_pincode"`
	ToName       string  `json:"to_name"`
	ToCity       string  `json:"to_city"`
	ToPincode    string  `json:"to_pincode"`
	Instructions string  `json:"instructions,omitempty"`
}

func newLabelData(s *entity.Shipment) LabelData {
	return LabelData{
		Type:         labelType,
		TrackingID:   s.TrackingID,
		Courier:      s.CourierName,
		ServiceType:  string(s.ServiceType),
		PaymentMode:  string(s.PaymentMode),
		CODAmount:    s.CODAmount,
		WeightKg:     s.Package.WeightKg,
		FromCity:     s.Sender.City,
		FromPincode:  s.Sender.Pincode,
		ToName:       s.Receiver.Name,
		ToCity:       s.Receiver.City,
		ToPincode:    s.Receiver.Pincode,
		Instructions: s.SpecialInstructions,
	}
}

// parseRecoveryLevel accepts L/M/Q/H or low/medium/high/highest. Anything else is medium.
func parseRecoveryLevel(level string) qrcode.RecoveryLevel {
	switch strings.ToLower(level) {
	case "l", "low":
		return qrcode.Low
	case "q", "high":
		return qrcode.High
	case "h", "highest":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// renderQR encodes the label data as a PNG QR code.
func renderQR(data LabelData, size int, level qrcode.RecoveryLevel) ([]byte, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal label data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), level)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseLabelQR decodes the text scanned from a label's QR code.
func ParseLabelQR(qrData string) (*LabelData, error) {
	var data LabelData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal label data: %w", err)
	}

	if data.Type != labelType {
		return nil, fmt.Errorf("invalid QR code type: %s", data.Type)
	}
	if data.TrackingID == "" {
		return nil, fmt.Errorf("label has no tracking ID")
	}

	return &data, nil
}
