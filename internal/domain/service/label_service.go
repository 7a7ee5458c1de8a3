package service

import (
	"context"

	"courierhub/internal/domain/entity"
)

// Label is a rendered shipping label.
type Label struct {
	Key         string
	URL         string
	ContentType string
	Data        []byte
}

// LabelService renders shipping labels and keeps them in durable storage.
type LabelService interface {
	// Generate renders the label for the shipment, stores it and returns its location.
	Generate(ctx context.Context, shipment *entity.Shipment) (*Label, error)

	// Open reads a previously stored label by tracking ID.
	Open(ctx context.Context, trackingID string) (*Label, error)
}
