package impl

import (
	"cmp"
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/domain/repository"
	"courierhub/internal/usecase"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore keeps shipments and tracking logs in memory. Transactions run one at a
// time and every write made inside a failed transaction is rolled back.
type memStore struct {
	tx        sync.Mutex
	mu        sync.Mutex
	shipments map[uuid.UUID]*entity.Shipment
	logs      []*entity.TrackingLogEntry
	users     repository.UserRepository

	// conflicts is the number of upcoming shipment inserts rejected as tracking ID collisions.
	conflicts int
	// appendErr, when set, fails every tracking log append.
	appendErr error
	txCount   int
}

func newMemStore() *memStore {
	return &memStore{shipments: make(map[uuid.UUID]*entity.Shipment)}
}

func (s *memStore) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	s.tx.Lock()
	defer s.tx.Unlock()

	s.mu.Lock()
	s.txCount++
	shipments := make(map[uuid.UUID]*entity.Shipment, len(s.shipments))
	for id, shipment := range s.shipments {
		cp := *shipment
		shipments[id] = &cp
	}
	logs := slices.Clone(s.logs)
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.shipments = shipments
		s.logs = logs
		s.mu.Unlock()

		return err
	}

	return nil
}

func (s *memStore) shipmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.shipments)
}

func (s *memStore) NewShipmentRepository() repository.ShipmentRepository {
	return memShipments{s}
}

func (s *memStore) NewTrackingLogRepository() repository.TrackingLogRepository {
	return memLogs{s}
}

func (s *memStore) NewUserRepository() repository.UserRepository {
	return s.users
}

func (s *memStore) put(shipment *entity.Shipment) *entity.Shipment {
	s.mu.Lock()
	defer s.mu.Unlock()

	if shipment.ID == uuid.Nil {
		shipment.ID = uuid.New()
	}
	stored := *shipment
	s.shipments[stored.ID] = &stored

	return shipment
}

func (s *memStore) get(id uuid.UUID) *entity.Shipment {
	s.mu.Lock()
	defer s.mu.Unlock()

	found, ok := s.shipments[id]
	if !ok {
		return nil
	}
	out := *found

	return &out
}

func (s *memStore) entries(trackingID string) []*entity.TrackingLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*entity.TrackingLogEntry
	for _, e := range s.logs {
		if e.TrackingID == trackingID {
			out = append(out, e)
		}
	}

	return out
}

type memShipments struct{ s *memStore }

func (r memShipments) Create(ctx context.Context, shipment *entity.Shipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.conflicts > 0 {
		r.s.conflicts--

		return domainerrors.ErrTrackingIDConflict
	}
	for _, existing := range r.s.shipments {
		if existing.TrackingID == shipment.TrackingID {
			return domainerrors.ErrTrackingIDConflict
		}
	}
	if shipment.ID == uuid.Nil {
		shipment.ID = uuid.New()
	}
	shipment.RecomputeTotal()
	stored := *shipment
	r.s.shipments[shipment.ID] = &stored

	return nil
}

func (r memShipments) FindByID(ctx context.Context, id uuid.UUID) (*entity.Shipment, error) {
	if found := r.s.get(id); found != nil {
		return found, nil
	}

	return nil, domainerrors.ErrShipmentNotFound
}

func (r memShipments) FindByTrackingID(ctx context.Context, trackingID string) (*entity.Shipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, s := range r.s.shipments {
		if s.TrackingID == trackingID {
			out := *s

			return &out, nil
		}
	}

	return nil, domainerrors.ErrShipmentNotFound
}

func (r memShipments) matching(filter entity.ShipmentFilter) []*entity.Shipment {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.Shipment
	for _, s := range r.s.shipments {
		switch {
		case filter.UserID != nil && s.UserID != *filter.UserID:
			continue
		case filter.Status != nil && s.Status != *filter.Status:
			continue
		case filter.CourierID != nil && s.CourierID != *filter.CourierID:
			continue
		case filter.From != nil && s.CreatedAt.Before(*filter.From):
			continue
		case filter.To != nil && s.CreatedAt.After(*filter.To):
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *entity.Shipment) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}

		return cmp.Compare(a.TrackingID, b.TrackingID)
	})

	return out
}

func (r memShipments) List(ctx context.Context, filter entity.ShipmentFilter) ([]*entity.Shipment, int64, error) {
	all := r.matching(filter)
	total := int64(len(all))

	start := min(filter.Offset, len(all))
	end := len(all)
	if filter.Limit > 0 {
		end = min(start+filter.Limit, len(all))
	}

	return all[start:end], total, nil
}

func (r memShipments) ListRecent(ctx context.Context, limit int) ([]*entity.Shipment, error) {
	all := r.matching(entity.ShipmentFilter{})
	if len(all) > limit {
		all = all[:limit]
	}

	return all, nil
}

func (r memShipments) ListForAnalytics(ctx context.Context, filter entity.ShipmentFilter) ([]*entity.Shipment, error) {
	return r.matching(filter), nil
}

func (r memShipments) Update(ctx context.Context, shipment *entity.Shipment) error {
	if r.s.get(shipment.ID) == nil {
		return domainerrors.ErrShipmentNotFound
	}
	shipment.RecomputeTotal()
	r.s.put(shipment)

	return nil
}

func (r memShipments) UpdateStatus(ctx context.Context, shipment *entity.Shipment) error {
	stored := r.s.get(shipment.ID)
	if stored == nil {
		return domainerrors.ErrShipmentNotFound
	}
	stored.Status = shipment.Status
	stored.PickupDate = shipment.PickupDate
	stored.ActualDeliveryDate = shipment.ActualDeliveryDate
	stored.FailureReason = shipment.FailureReason
	stored.AttemptCount = shipment.AttemptCount
	stored.UpdatedAt = shipment.UpdatedAt
	r.s.put(stored)

	return nil
}

func (r memShipments) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.shipments[id]; !ok {
		return domainerrors.ErrShipmentNotFound
	}
	delete(r.s.shipments, id)

	return nil
}

type memLogs struct{ s *memStore }

func (r memLogs) Append(ctx context.Context, entry *entity.TrackingLogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.appendErr != nil {
		return r.s.appendErr
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	r.s.logs = append(r.s.logs, entry)

	return nil
}

func (r memLogs) ListByTrackingID(ctx context.Context, trackingID string) ([]*entity.TrackingLogEntry, error) {
	entries := r.s.entries(trackingID)
	slices.SortStableFunc(entries, func(a, b *entity.TrackingLogEntry) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	return entries, nil
}

func (r memLogs) FindLatestByTrackingID(ctx context.Context, trackingID string) (*entity.TrackingLogEntry, error) {
	entries, _ := r.ListByTrackingID(ctx, trackingID)
	if len(entries) == 0 {
		return nil, nil
	}

	return entries[len(entries)-1], nil
}

func (r memLogs) DeleteByShipmentID(ctx context.Context, shipmentID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.logs = slices.DeleteFunc(r.s.logs, func(e *entity.TrackingLogEntry) bool {
		return e.ShipmentID == shipmentID
	})

	return nil
}

// recordingAudit keeps every audit entry in memory.
type recordingAudit struct {
	mu      sync.Mutex
	entries []*entity.SystemLog
}

func (a *recordingAudit) Record(ctx context.Context, entry *entity.SystemLog) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries = append(a.entries, entry)
}

func (a *recordingAudit) last() *entity.SystemLog {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.entries) == 0 {
		return nil
	}

	return a.entries[len(a.entries)-1]
}

// emitted is a notification handed to recordingNotifier.
type emitted struct {
	UserID uuid.UUID
	Type   entity.NotificationType
	Title  string
	Data   entity.NotificationData
}

// recordingNotifier captures Emit calls. The listing operations are not used by lifecycle code.
type recordingNotifier struct {
	usecase.NotificationUsecase

	mu   sync.Mutex
	sent []emitted
	err  error
}

func (n *recordingNotifier) Emit(ctx context.Context, userID uuid.UUID, typ entity.NotificationType, title, message string, data entity.NotificationData) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.sent = append(n.sent, emitted{UserID: userID, Type: typ, Title: title, Data: data})

	return n.err
}

func (n *recordingNotifier) types() []entity.NotificationType {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]entity.NotificationType, 0, len(n.sent))
	for _, e := range n.sent {
		out = append(out, e.Type)
	}

	return out
}

func businessActor() entity.Actor {
	return entity.Actor{UserID: uuid.New(), Email: "shop@example.com", Role: entity.RoleBusiness}
}

func staffActor() entity.Actor {
	return entity.Actor{UserID: uuid.New(), Email: "ops@example.com", Role: entity.RoleStaff}
}

func adminActor() entity.Actor {
	return entity.Actor{UserID: uuid.New(), Email: "admin@example.com", Role: entity.RoleAdmin}
}

func testCourier() *entity.Courier {
	return &entity.Courier{
		ID:       uuid.New(),
		Name:     "BlueDart",
		Code:     "BD",
		IsActive: true,
		Pricing: entity.CourierPricing{
			BaseRate:            50,
			WeightRate:          20,
			ExpressMultiplier:   1.5,
			OvernightMultiplier: 2,
			CODCharges:          40,
		},
		Performance: entity.CourierPerformance{AvgDeliveryDays: 3, DeliverySuccessRate: 97, AvgRating: 4.5},
		Contact:     entity.CourierContact{SupportEmail: "help@bluedart.example"},
	}
}

func testParty(city string) entity.Party {
	return entity.Party{
		Name:    "Asha " + city,
		Phone:   "9876543210",
		Address: "12 MG Road",
		City:    city,
		State:   "KA",
		Pincode: "560001",
	}
}

func testCreateInput(courierID uuid.UUID) usecase.CreateShipmentInput {
	return usecase.CreateShipmentInput{
		CourierID: courierID,
		Sender:    testParty("Bengaluru"),
		Receiver:  testParty("Mysuru"),
		Package:   entity.Package{WeightKg: 2},
	}
}
