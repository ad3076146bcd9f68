// Package shipping generates and tracks shipping labels (AWBs) for orders.
package shipping

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/application/audit"
	"github.com/shopops/backend/internal/application/tenancy"
	tradeapp "github.com/shopops/backend/internal/application/trade"
	"github.com/shopops/backend/internal/domain/integration"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/domain/shipping"
	"github.com/shopops/backend/internal/domain/trade"
	"github.com/shopops/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// maxNumberAttempts bounds the search for a free AWB number
const maxNumberAttempts = 5

// maxTrackingAttempts bounds reload-and-append retries after a stale save
const maxTrackingAttempts = 3

const (
	msgAWBExists   = "AWB deja generat pentru această comandă"
	msgAWBModified = "AWB modificat simultan, încercați din nou"
)

// GenerationRecorder counts generated labels
type GenerationRecorder interface {
	RecordAWBGenerated(courier string)
}

// ShipmentResponse is an AWB together with the order it ships
type ShipmentResponse struct {
	tradeapp.AWBResponse
	Order *tradeapp.OrderResponse `json:"order"`
}

// AWBService generates and tracks shipping labels
type AWBService struct {
	awbs     shipping.AWBRepository
	orders   trade.OrderRepository
	resolver *tenancy.Resolver
	trail    *audit.Trail
	recorder GenerationRecorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewAWBService creates a new AWB service. recorder may be nil.
func NewAWBService(
	awbs shipping.AWBRepository,
	orders trade.OrderRepository,
	resolver *tenancy.Resolver,
	trail *audit.Trail,
	recorder GenerationRecorder,
	logger *zap.Logger,
) *AWBService {
	return &AWBService{
		awbs:     awbs,
		orders:   orders,
		resolver: resolver,
		trail:    trail,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Generate issues the single AWB of an order.
// A second call for the same order fails with a conflict and writes nothing.
func (s *AWBService) Generate(ctx context.Context, userID, orderID uuid.UUID, courier string) (*tradeapp.AWBResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "awb", "generate",
		telemetry.SpanAttrUserID, userID,
		telemetry.SpanAttrOrderID, orderID,
		telemetry.SpanAttrCourier, courier)
	defer span.End()

	order, store, err := s.resolver.Order(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	c := shipping.Courier(strings.ToLower(strings.TrimSpace(courier)))
	if !c.IsValid() {
		return nil, shipping.InvalidCourierError()
	}

	exists, err := s.awbs.ExistsForOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError(msgAWBExists)
	}

	awb, err := s.create(ctx, order.ID, c)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrAWBNumber, awb.Number)

	_ = s.trail.Success(ctx, store.ID, integration.LogEntityAWB, integration.LogActionGenerate,
		fmt.Sprintf("AWB %s generat pentru comanda %s", awb.Number, order.OrderNumber))
	if s.recorder != nil {
		s.recorder.RecordAWBGenerated(string(c))
	}

	s.logger.Info("AWB generated",
		zap.String("order_id", order.ID.String()),
		zap.String("awb_number", awb.Number),
		zap.String("courier", string(c)))

	resp := tradeapp.ToAWBResponse(awb)
	return &resp, nil
}

// create picks a free number, advancing one millisecond per collision
func (s *AWBService) create(ctx context.Context, orderID uuid.UUID, courier shipping.Courier) (*shipping.AWB, error) {
	now := s.now()
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number := shipping.FormatNumber(courier, now.UnixMilli()+int64(attempt))

		taken, err := s.awbs.ExistsByNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		if taken {
			continue
		}

		awb, err := shipping.NewAWB(orderID, courier, number, now)
		if err != nil {
			return nil, err
		}
		err = s.awbs.Create(ctx, awb)
		if err == nil {
			return awb, nil
		}
		if !errors.Is(err, shipping.ErrDuplicateAWB) {
			return nil, err
		}

		// lost a race: either on the order or on the number
		exists, checkErr := s.awbs.ExistsForOrder(ctx, orderID)
		if checkErr != nil {
			return nil, checkErr
		}
		if exists {
			return nil, shared.NewConflictError(msgAWBExists)
		}
	}
	return nil, shared.NewDomainError(shared.CodeServiceUnavailable, "Nu s-a putut genera un număr AWB unic, încercați din nou")
}

// UpdateStatus appends a tracking event and makes its status current
func (s *AWBService) UpdateStatus(ctx context.Context, userID, awbID uuid.UUID, status, message string) (*tradeapp.AWBResponse, error) {
	awb, order, err := s.resolver.AWB(ctx, userID, awbID)
	if err != nil {
		return nil, err
	}

	st := shipping.AWBStatus(strings.ToLower(strings.TrimSpace(status)))
	if strings.TrimSpace(message) == "" {
		message = "Status actualizat: " + string(st)
	}
	for attempt := 1; ; attempt++ {
		if err := awb.AppendEvent(st, message, s.now()); err != nil {
			return nil, err
		}
		err = s.awbs.SaveTracking(ctx, awb)
		if err == nil {
			break
		}
		if !errors.Is(err, shipping.ErrStaleAWB) {
			s.logger.Error("Failed to save AWB tracking", zap.String("awb_id", awb.ID.String()), zap.Error(err))
			return nil, err
		}
		if attempt == maxTrackingAttempts {
			s.logger.Warn("AWB tracking kept losing the version race",
				zap.String("awb_id", awb.ID.String()), zap.Int("attempts", attempt))
			return nil, shared.NewConflictError(msgAWBModified)
		}
		// someone else appended first; rebuild on top of their history
		if awb, err = s.awbs.FindByID(ctx, awb.ID); err != nil {
			return nil, err
		}
	}

	_ = s.trail.Success(ctx, order.StoreID, integration.LogEntityAWB, integration.LogActionUpdate,
		fmt.Sprintf("AWB %s actualizat: %s", awb.Number, st))

	resp := tradeapp.ToAWBResponse(awb)
	return &resp, nil
}

// Track looks an AWB up by its number
func (s *AWBService) Track(ctx context.Context, userID uuid.UUID, number string) (*ShipmentResponse, error) {
	awb, order, err := s.resolver.AWBByNumber(ctx, userID, strings.TrimSpace(number))
	if err != nil {
		return nil, err
	}
	orderResp := tradeapp.ToOrderResponse(order)
	return &ShipmentResponse{AWBResponse: tradeapp.ToAWBResponse(awb), Order: &orderResp}, nil
}

// ListShipments returns every AWB of the user's stores, newest first, with its order
func (s *AWBService) ListShipments(ctx context.Context, userID uuid.UUID) ([]ShipmentResponse, error) {
	storeIDs, err := s.resolver.OwnedStoreIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	awbs, err := s.awbs.ListByStores(ctx, storeIDs)
	if err != nil {
		return nil, err
	}

	orderIDs := make([]uuid.UUID, len(awbs))
	for i, a := range awbs {
		orderIDs[i] = a.OrderID
	}
	orders, err := s.orders.FindByIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	out := make([]ShipmentResponse, len(awbs))
	for i, a := range awbs {
		out[i] = ShipmentResponse{AWBResponse: tradeapp.ToAWBResponse(a)}
		if o, ok := orders[a.OrderID]; ok {
			resp := tradeapp.ToOrderResponse(o)
			out[i].Order = &resp
		}
	}
	return out, nil
}
