// Package billing issues fiscal invoices for synchronized orders.
package billing

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
	"github.com/shopops/backend/internal/domain/billing"
	"github.com/shopops/backend/internal/domain/integration"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/domain/trade"
	"github.com/shopops/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const msgInvoiceExists = "Factură deja generată pentru această comandă"

// IssueRecorder counts issued invoices
type IssueRecorder interface {
	RecordInvoiceIssued(provider string)
}

// InvoiceListItem is an invoice together with the order it bills
type InvoiceListItem struct {
	tradeapp.InvoiceResponse
	Order *tradeapp.OrderResponse `json:"order"`
}

// InvoiceService issues and lists invoices
type InvoiceService struct {
	invoices  billing.InvoiceRepository
	sequencer billing.InvoiceSequencer
	orders    trade.OrderRepository
	resolver  *tenancy.Resolver
	trail     *audit.Trail
	recorder  IssueRecorder
	logger    *zap.Logger
	now       func() time.Time
}

// NewInvoiceService creates a new invoice service. recorder may be nil.
func NewInvoiceService(
	invoices billing.InvoiceRepository,
	sequencer billing.InvoiceSequencer,
	orders trade.OrderRepository,
	resolver *tenancy.Resolver,
	trail *audit.Trail,
	recorder IssueRecorder,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoices:  invoices,
		sequencer: sequencer,
		orders:    orders,
		resolver:  resolver,
		trail:     trail,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate issues the single invoice of an order, numbered from the
// issuer's sequence for the provider and the current year.
func (s *InvoiceService) Generate(ctx context.Context, userID, orderID uuid.UUID, provider string) (*tradeapp.InvoiceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "generate",
		telemetry.SpanAttrUserID, userID,
		telemetry.SpanAttrOrderID, orderID,
		telemetry.SpanAttrProvider, provider)
	defer span.End()

	order, store, err := s.resolver.Order(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	p := billing.Provider(strings.ToLower(strings.TrimSpace(provider)))
	if !p.IsValid() {
		return nil, billing.InvalidProviderError()
	}

	if err := s.ensureNotIssued(ctx, order.ID); err != nil {
		return nil, err
	}

	now := s.now()
	seq, err := s.sequencer.Next(ctx, userID, p, now.Year())
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to allocate invoice number", zap.String("provider", string(p)), zap.Error(err))
		return nil, err
	}

	invoice, err := billing.NewIssuedInvoice(order.ID, userID, p, now.Year(), seq, now)
	if err != nil {
		return nil, err
	}
	if err := s.invoices.Create(ctx, invoice); err != nil {
		if errors.Is(err, billing.ErrDuplicateInvoice) {
			// the sequence value is burned; numbers are never reused
			if checkErr := s.ensureNotIssued(ctx, order.ID); checkErr != nil {
				return nil, checkErr
			}
		}
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrInvoiceNum, invoice.Number)

	_ = s.trail.Success(ctx, store.ID, integration.LogEntityInvoice, integration.LogActionGenerate,
		fmt.Sprintf("Factură %s emisă pentru comanda %s", invoice.Number, order.OrderNumber))
	if s.recorder != nil {
		s.recorder.RecordInvoiceIssued(string(p))
	}

	s.logger.Info("Invoice issued",
		zap.String("order_id", order.ID.String()),
		zap.String("invoice_number", invoice.Number))

	resp := tradeapp.ToInvoiceResponse(invoice)
	return &resp, nil
}

func (s *InvoiceService) ensureNotIssued(ctx context.Context, orderID uuid.UUID) error {
	exists, err := s.invoices.ExistsForOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewConflictError(msgInvoiceExists)
	}
	return nil
}

// List returns every invoice of the user's stores, newest first, with its order
func (s *InvoiceService) List(ctx context.Context, userID uuid.UUID) ([]InvoiceListItem, error) {
	storeIDs, err := s.resolver.OwnedStoreIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoices.ListByStores(ctx, storeIDs)
	if err != nil {
		return nil, err
	}

	orderIDs := make([]uuid.UUID, len(invoices))
	for i, inv := range invoices {
		orderIDs[i] = inv.OrderID
	}
	orders, err := s.orders.FindByIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	out := make([]InvoiceListItem, len(invoices))
	for i, inv := range invoices {
		out[i] = InvoiceListItem{InvoiceResponse: tradeapp.ToInvoiceResponse(inv)}
		if o, ok := orders[inv.OrderID]; ok {
			resp := tradeapp.ToOrderResponse(o)
			out[i].Order = &resp
		}
	}
	return out, nil
}
