// Package order implements the order subsystem: server-side cart pricing,
// atomic order persistence, aggregated read-back and the cancellation guard.
package order

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/akingscoffee/coffee_shop/internal/models"
)

var (
	ErrValidation      = errors.New("validation")        // 400
	ErrProductNotFound = errors.New("product not found") // 400, aborts creation
	ErrOrderNotFound   = errors.New("order not found")   // 404
	ErrNotCancellable  = errors.New("only pending orders can be cancelled")
	ErrInvalidStatus   = errors.New("invalid status transition")
)

type CartLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type CreateRequest struct {
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	Items         []CartLine `json:"items"`
}

// ItemView is one order line as exposed to clients: product_name is resolved
// live from the catalog, quantity and price are the snapshots taken at order
// time.
type ItemView struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type View struct {
	ID                 uuid.UUID       `json:"id"`
	CustomerName       string          `json:"customer_name"`
	CustomerEmail      string          `json:"customer_email"`
	Total              decimal.Decimal `json:"total"`
	Status             string          `json:"status"`
	PreparationMinutes int             `json:"preparation_minutes"`
	ReadyAt            *time.Time      `json:"ready_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	Items              []ItemView      `json:"items"`
}

type Service struct {
	DB *gorm.DB
}

func (req *CreateRequest) validate() error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customer_name is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
		return fmt.Errorf("%w: valid customer_email is required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrValidation)
	}
	for i := range req.Items {
		if req.Items[i].ProductID == uuid.Nil {
			return fmt.Errorf("%w: valid product_id is required", ErrValidation)
		}
		if req.Items[i].Quantity < 1 {
			return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
		}
	}
	return nil
}

// Create prices the cart against the catalog and persists the order header
// plus all line items in one transaction. Prices supplied by the caller are
// never trusted; the catalog is the single source of truth. The price lookup
// runs inside the same transaction as the inserts, so a concurrent catalog
// update cannot split an order between two price generations.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*View, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var (
		order models.Order
		views []ItemView
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(req.Items))
		views = make([]ItemView, 0, len(req.Items))

		for _, line := range req.Items {
			var p models.Product
			if err := tx.First(&p, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
				}
				return err
			}

			price := p.Price.Round(2)
			lineTotal := price.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
			total = total.Add(lineTotal)

			items = append(items, models.OrderItem{
				ProductID: p.ID,
				Quantity:  line.Quantity,
				Price:     price,
			})
			views = append(views, ItemView{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    line.Quantity,
				Price:       price,
			})
		}

		order = models.Order{
			CustomerName:  strings.TrimSpace(req.CustomerName),
			CustomerEmail: req.CustomerEmail,
			Total:         total.Round(2),
			Status:        models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	v := s.view(&order, views)
	return &v, nil
}

// List returns orders newest first with their items joined in.
func (s *Service) List(ctx context.Context, limit, offset int) ([]View, error) {
	var orders []models.Order
	if err := s.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	itemsByOrder, err := s.loadItems(ctx, orderIDs(orders))
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(orders))
	for i := range orders {
		views = append(views, s.view(&orders[i], itemsByOrder[orders[i].ID]))
	}
	return views, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	var order models.Order
	if err := s.DB.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	itemsByOrder, err := s.loadItems(ctx, []uuid.UUID{order.ID})
	if err != nil {
		return nil, err
	}

	v := s.view(&order, itemsByOrder[order.ID])
	return &v, nil
}

// Cancel hard-deletes a pending order; the cascade rule removes its items.
// The status check and the delete are a single guarded statement, so of two
// concurrent cancels at most one succeeds and the other reports what it
// actually observed.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND status = ?", id, models.OrderStatusPending).
		Delete(&models.Order{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var order models.Order
	if err := s.DB.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	return ErrNotCancellable
}

var statusFlow = map[string]string{
	models.OrderStatusPending: models.OrderStatusReady,
	models.OrderStatusReady:   models.OrderStatusCompleted,
}

// UpdateStatus advances an order one step along pending → ready → completed.
// The update is guarded by the previous status so a stale caller loses.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string, preparationMinutes int) (*View, error) {
	var order models.Order
	if err := s.DB.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if statusFlow[order.Status] != status {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatus, order.Status, status)
	}

	updates := map[string]interface{}{"status": status}
	if status == models.OrderStatusReady {
		if preparationMinutes < 0 {
			preparationMinutes = 0
		}
		readyAt := time.Now().Add(time.Duration(preparationMinutes) * time.Minute)
		updates["preparation_minutes"] = preparationMinutes
		updates["ready_at"] = readyAt
	}

	res := s.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, order.Status).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: order changed concurrently", ErrInvalidStatus)
	}

	return s.Get(ctx, id)
}

type itemRow struct {
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// loadItems batch-fetches line items for a set of orders, joining the live
// product name in. The stored price is the historical snapshot and is never
// replaced by the current catalog price.
func (s *Service) loadItems(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]ItemView, error) {
	out := make(map[uuid.UUID][]ItemView, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []itemRow
	if err := s.DB.WithContext(ctx).
		Table("order_items").
		Select("order_items.order_id, order_items.product_id, products.name AS product_name, order_items.quantity, order_items.price").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, r := range rows {
		out[r.OrderID] = append(out[r.OrderID], ItemView{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			Quantity:    r.Quantity,
			Price:       r.Price.Round(2),
		})
	}
	return out, nil
}

func (s *Service) view(o *models.Order, items []ItemView) View {
	if items == nil {
		items = []ItemView{}
	}
	return View{
		ID:                 o.ID,
		CustomerName:       o.CustomerName,
		CustomerEmail:      o.CustomerEmail,
		Total:              o.Total.Round(2),
		Status:             o.Status,
		PreparationMinutes: o.PreparationMinutes,
		ReadyAt:            o.ReadyAt,
		CreatedAt:          o.CreatedAt,
		Items:              items,
	}
}

func orderIDs(orders []models.Order) []uuid.UUID {
	ids := make([]uuid.UUID, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}
	return ids
}
