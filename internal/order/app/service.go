package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/storelane/shopcore/internal/order/domain"
)

type Service struct {
	store  Store
	cart   CartReader
	events EventPublisher   // optional
	idem   IdempotencyGuard // optional
	log    *slog.Logger

	maxConcurrent int
}

func NewService(store Store, cart CartReader, log *slog.Logger) *Service {
	return &Service{
		store:         store,
		cart:          cart,
		log:           log,
		maxConcurrent: 10,
	}
}

// WithEvents attaches a post-commit event publisher.
func (s *Service) WithEvents(pub EventPublisher) *Service {
	s.events = pub
	return s
}

// WithIdempotencyGuard attaches a creation-key guard.
func (s *Service) WithIdempotencyGuard(g IdempotencyGuard) *Service {
	s.idem = g
	return s
}

// CreateOrder turns the submitted cart lines into a persisted order.
// Header, items, stock decrements, total and the cart clear commit as
// one transaction; any failure leaves nothing behind.
func (s *Service) CreateOrder(ctx context.Context, customerID int64, req domain.CreateOrderRequest) (domain.OrderResult, error) {
	if len(req.CartItems) == 0 {
		return domain.OrderResult{}, ErrEmptyCart
	}
	if strings.TrimSpace(req.Address) == "" {
		return domain.OrderResult{}, ErrAddressRequired
	}
	if strings.TrimSpace(req.Phone) == "" {
		return domain.OrderResult{}, ErrPhoneRequired
	}
	for _, line := range req.CartItems {
		if line.Quantity < 0 {
			return domain.OrderResult{}, ErrBadQuantity
		}
	}

	if s.idem != nil && req.IdempotentKey != "" {
		ok, err := s.idem.Claim(ctx, req.IdempotentKey)
		if err != nil {
			return domain.OrderResult{}, err
		}
		if !ok {
			return domain.OrderResult{}, ErrDuplicateKey
		}
	}

	var created domain.Order
	err := s.store.InTx(ctx, func(tx Store) error {
		total := decimal.Zero
		items := make([]domain.OrderItem, 0, len(req.CartItems))

		for _, line := range req.CartItems {
			qty := line.Quantity
			if qty == 0 {
				qty = 1
			}

			p, err := tx.GetProduct(ctx, line.ProductID)
			if errors.Is(err, ErrNotFound) {
				return &ProductNotFoundError{ProductID: line.ProductID}
			}
			if err != nil {
				return err
			}

			if p.AvailableStock() < qty {
				return &InsufficientStockError{ProductID: p.ID, Name: p.Name}
			}
			// Conditional decrement revalidates under concurrency: a
			// racing order that drained the stock first turns this
			// into ErrStockConflict and rolls the whole order back.
			if err := tx.AdjustStock(ctx, p.ID, -qty, qty); err != nil {
				if errors.Is(err, ErrStockConflict) {
					return &InsufficientStockError{ProductID: p.ID, Name: p.Name}
				}
				return err
			}

			productID := p.ID
			linePrice := p.Price.Mul(decimal.NewFromInt(qty))
			items = append(items, domain.OrderItem{
				ProductID: &productID,
				Quantity:  qty,
				Price:     linePrice,
			})
			total = total.Add(linePrice)
		}

		order := domain.Order{
			CustomerID: &customerID,
			Address:    req.Address,
			Phone:      req.Phone,
			Note:       req.Note,
			Status:     domain.StatusProcessing,
			Total:      total,
			Items:      items,
		}
		if err := tx.CreateOrder(ctx, &order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		// The whole cart is cleared, not just the ordered lines.
		if err := tx.ClearCart(ctx, customerID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		created = order
		return nil
	})
	if err != nil {
		return domain.OrderResult{}, err
	}

	s.publish(ctx, domain.Event{
		Type:       domain.EventOrderCreated,
		OrderID:    created.ID,
		CustomerID: customerID,
		Status:     created.Status,
		Total:      created.Total.InexactFloat64(),
		At:         time.Now(),
	})

	return domain.OrderResult{
		OrderID:    created.ID,
		Status:     created.Status,
		Address:    created.Address,
		Phone:      created.Phone,
		Note:       created.Note,
		Total:      created.Total.InexactFloat64(),
		TimeCreate: created.TimeCreate,
	}, nil
}

// CancelOrder transitions an order to canceled and returns every
// surviving line's quantity to its product's stock, atomically with the
// status write. Cancelling an already-canceled order succeeds without
// touching stock again.
func (s *Service) CancelOrder(ctx context.Context, orderID, requesterID int64) (domain.CancelResult, error) {
	var (
		result     domain.CancelResult
		transition bool
		customerID int64
		total      decimal.Decimal
	)

	err := s.store.InTx(ctx, func(tx Store) error {
		order, err := tx.GetOrder(ctx, orderID)
		if errors.Is(err, ErrNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}

		if order.CustomerID == nil || *order.CustomerID != requesterID {
			return ErrNotOwner
		}

		if order.Status == domain.StatusCanceled {
			result = domain.CancelResult{
				Detail: fmt.Sprintf("Order %d is already canceled.", order.ID),
				Status: order.Status,
			}
			return nil
		}
		if !domain.Cancelable(order.Status) {
			return &ConflictError{Status: order.Status}
		}

		// The status read above is unlocked, so the transition itself is
		// conditional. Restitution only runs for the caller whose UPDATE
		// matched; the loser re-reads to see what the order became.
		won, err := tx.TransitionOrder(ctx, order.ID, domain.CancelableStatuses, domain.StatusCanceled)
		if err != nil {
			return err
		}
		if !won {
			current, err := tx.GetOrder(ctx, orderID)
			if err != nil {
				return err
			}
			if current.Status == domain.StatusCanceled {
				result = domain.CancelResult{
					Detail: fmt.Sprintf("Order %d is already canceled.", current.ID),
					Status: current.Status,
				}
				return nil
			}
			return &ConflictError{Status: current.Status}
		}

		for _, item := range order.Items {
			if item.ProductID == nil {
				// Product removed since ordering; nothing to restore.
				continue
			}
			if err := tx.AdjustStock(ctx, *item.ProductID, item.Quantity, 0); err != nil {
				return err
			}
		}

		transition = true
		customerID = *order.CustomerID
		total = order.Total
		result = domain.CancelResult{
			Detail: fmt.Sprintf("Order %d has been canceled.", order.ID),
			Status: domain.StatusCanceled,
		}
		return nil
	})
	if err != nil {
		return domain.CancelResult{}, err
	}

	if transition {
		s.publish(ctx, domain.Event{
			Type:       domain.EventOrderCanceled,
			OrderID:    orderID,
			CustomerID: customerID,
			Status:     domain.StatusCanceled,
			Total:      total.InexactFloat64(),
			At:         time.Now(),
		})
	}

	return result, nil
}

// ListOrders returns the customer's orders newest first. Nested items
// carry the live product snapshot; their price stays the frozen line
// price.
func (s *Service) ListOrders(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return s.store.ListOrders(ctx, customerID)
}

// Quote prices the customer's persisted cart against the live catalog
// without reserving stock. Product lookups run concurrently, bounded.
func (s *Service) Quote(ctx context.Context, customerID int64) (domain.Quote, error) {
	lines, err := s.cart.ListItems(ctx, customerID)
	if err != nil {
		return domain.Quote{}, err
	}
	if len(lines) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	out := make([]domain.QuoteLine, len(lines))
	// Line totals stay decimal until the whole quote is summed; the
	// float fields on QuoteLine are presentation only.
	lineTotals := make([]decimal.Decimal, len(lines))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range lines {
		idx := idx
		g.Go(func() error {
			line := lines[idx]
			p, err := s.store.GetProduct(ctx, line.ProductID)
			if errors.Is(err, ErrNotFound) {
				return &ProductNotFoundError{ProductID: line.ProductID}
			}
			if err != nil {
				return err
			}

			lineTotal := p.Price.Mul(decimal.NewFromInt(line.Quantity))
			lineTotals[idx] = lineTotal
			out[idx] = domain.QuoteLine{
				ProductID: p.ID,
				Name:      p.Name,
				Quantity:  line.Quantity,
				UnitPrice: p.Price.InexactFloat64(),
				LineTotal: lineTotal.InexactFloat64(),
				Available: p.AvailableStock() >= line.Quantity,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	total := decimal.Zero
	for _, lt := range lineTotals {
		total = total.Add(lt)
	}

	return domain.Quote{Lines: out, Total: total.InexactFloat64()}, nil
}

func (s *Service) publish(ctx context.Context, evt domain.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, evt); err != nil {
		s.log.Warn("order event publish failed",
			slog.String("type", evt.Type),
			slog.Int64("order_id", evt.OrderID),
			slog.Any("err", err))
	}
}
