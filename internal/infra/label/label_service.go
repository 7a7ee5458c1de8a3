package label

import (
	"context"
	"log/slog"
	"strings"

	"courierhub/config"
	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/domain/service"
	"courierhub/internal/errors"

	"github.com/skip2/go-qrcode"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	"gocloud.dev/gcerrors"
)

const (
	contentTypePNG = "image/png"
	labelExt       = ".png"
)

type labelService struct {
	bucket  *blob.Bucket
	baseURL string
	size    int
	level   qrcode.RecoveryLevel
	logger  *slog.Logger
}

// Params defines the dependencies of the label service
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket and returns the label service.
func New(params Params) (service.LabelService, error) {
	cfg := params.Config.Labels

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open label bucket %s", cfg.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return NewLabelService(bucket, cfg, params.Logger), nil
}

// NewLabelService wraps an open bucket.
func NewLabelService(bucket *blob.Bucket, cfg *config.LabelsConfig, logger *slog.Logger) service.LabelService {
	return &labelService{
		bucket:  bucket,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		size:    cfg.Size,
		level:   parseRecoveryLevel(cfg.ErrorCorrectionLevel),
		logger:  logger,
	}
}

// Generate renders the shipment's QR label and writes it to the bucket, replacing any earlier label.
func (s *labelService) Generate(ctx context.Context, shipment *entity.Shipment) (*service.Label, error) {
	png, err := renderQR(newLabelData(shipment), s.size, s.level)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	key := labelKey(shipment.TrackingID)
	if err := s.bucket.WriteAll(ctx, key, png, &blob.WriterOptions{
		ContentType: contentTypePNG,
		Metadata: map[string]string{
			"tracking_id": shipment.TrackingID,
			"courier":     shipment.CourierName,
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "failed to store label %s", key)
	}

	s.logger.InfoContext(ctx, "Label generated",
		slog.String("trackingID", shipment.TrackingID),
		slog.Int("bytes", len(png)),
	)

	return &service.Label{
		Key:         key,
		URL:         s.url(key),
		ContentType: contentTypePNG,
		Data:        png,
	}, nil
}

// Open reads a stored label.
func (s *labelService) Open(ctx context.Context, trackingID string) (*service.Label, error) {
	key := labelKey(trackingID)

	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, domainerrors.ErrLabelNotGenerated.WithDetails(trackingID)
		}

		return nil, errors.Wrapf(err, "failed to read label %s", key)
	}

	return &service.Label{
		Key:         key,
		URL:         s.url(key),
		ContentType: contentTypePNG,
		Data:        data,
	}, nil
}

func (s *labelService) url(key string) string {
	return s.baseURL + "/" + key
}

func labelKey(trackingID string) string {
	return trackingID + labelExt
}
