package order

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/akingscoffee/coffee_shop/internal/config"
	"github.com/akingscoffee/coffee_shop/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{})
	require.NoError(t, err)

	// one connection, or every pooled conn gets its own empty :memory: db
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) models.Product {
	t.Helper()

	p := models.Product{
		Name:        name,
		Description: name,
		Price:       decimal.RequireFromString(price),
		Category:    "espresso",
		Available:   true,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestCreateOrderPricesFromCatalog(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}

	espresso := seedProduct(t, db, "Classic Espresso", "2.95")
	latte := seedProduct(t, db, "Latte", "4.75")

	view, err := svc.Create(context.Background(), CreateRequest{
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Items: []CartLine{
			{ProductID: espresso.ID, Quantity: 2},
			{ProductID: latte.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.Equal(t, models.OrderStatusPending, view.Status)
	require.True(t, decimal.RequireFromString("10.65").Equal(view.Total), "total = %s", view.Total)
	require.Len(t, view.Items, 2)
	require.True(t, decimal.RequireFromString("2.95").Equal(view.Items[0].Price))
	require.True(t, decimal.RequireFromString("4.75").Equal(view.Items[1].Price))
	require.Equal(t, "Classic Espresso", view.Items[0].ProductName)

	require.EqualValues(t, 1, countRows(t, db, &models.Order{}))
	require.EqualValues(t, 2, countRows(t, db, &models.OrderItem{}))
}

func TestCreateOrderUnknownProductIsAtomic(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}

	espresso := seedProduct(t, db, "Classic Espresso", "2.95")

	_, err := svc.Create(context.Background(), CreateRequest{
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Items: []CartLine{
			{ProductID: espresso.ID, Quantity: 1},
			{ProductID: uuid.New(), Quantity: 1},
		},
	})
	require.ErrorIs(t, err, ErrProductNotFound)

	require.EqualValues(t, 0, countRows(t, db, &models.Order{}))
	require.EqualValues(t, 0, countRows(t, db, &models.OrderItem{}))
}

func TestCreateOrderValidation(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}
	espresso := seedProduct(t, db, "Classic Espresso", "2.95")

	cases := []struct {
		name string
		req  CreateRequest
	}{
		{"missing name", CreateRequest{CustomerEmail: "a@b.com", Items: []CartLine{{ProductID: espresso.ID, Quantity: 1}}}},
		{"bad email", CreateRequest{CustomerName: "Ada", CustomerEmail: "not-an-email", Items: []CartLine{{ProductID: espresso.ID, Quantity: 1}}}},
		{"empty cart", CreateRequest{CustomerName: "Ada", CustomerEmail: "a@b.com"}},
		{"zero quantity", CreateRequest{CustomerName: "Ada", CustomerEmail: "a@b.com", Items: []CartLine{{ProductID: espresso.ID, Quantity: 0}}}},
		{"nil product id", CreateRequest{CustomerName: "Ada", CustomerEmail: "a@b.com", Items: []CartLine{{Quantity: 1}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			require.ErrorIs(t, err, ErrValidation)
		})
	}

	require.EqualValues(t, 0, countRows(t, db, &models.Order{}))
}

func TestGetOrderIdempotentRead(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}
	espresso := seedProduct(t, db, "Classic Espresso", "2.95")

	created, err := svc.Create(context.Background(), CreateRequest{
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Items:         []CartLine{{ProductID: espresso.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	first, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	second, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestGetOrderNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}

	_, err := svc.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}
	espresso := seedProduct(t, db, "Classic Espresso", "2.95")

	base := time.Now().Add(-time.Hour)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		view, err := svc.Create(context.Background(), CreateRequest{
			CustomerName:  "Ada Lovelace",
			CustomerEmail: "ada@example.com",
			Items:         []CartLine{{ProductID: espresso.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		require.NoError(t, db.Model(&models.Order{}).
			Where("id = ?", view.ID).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
		ids = append(ids, view.ID)
	}

	views, err := svc.List(context.Background(), 50, 0)
	require.NoError(t, err)
	require.Len(t, views, 3)
	require.Equal(t, ids[2], views[0].ID)
	require.Equal(t, ids[0], views[2].ID)
	require.Len(t, views[0].Items, 1)

	paged, err := svc.List(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, paged, 1)
	require.Equal(t, ids[0], paged[0].ID)
}

func TestCancelPendingOrderOnce(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}
	espresso := seedProduct(t, db, "Classic Espresso", "2.95")

	view, err := svc.Create(context.Background(), CreateRequest{
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Items:         []CartLine{{ProductID: espresso.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), view.ID))
	require.EqualValues(t, 0, countRows(t, db, &models.Order{}))
	require.EqualValues(t, 0, countRows(t, db, &models.OrderItem{}), "cascade must remove items")

	err = svc.Cancel(context.Background(), view.ID)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCancelNonPendingOrderRejected(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}
	espresso := seedProduct(t, db, "Classic Espresso", "2.95")

	view, err := svc.Create(context.Background(), CreateRequest{
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Items:         []CartLine{{ProductID: espresso.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", view.ID).
		Update("status", models.OrderStatusReady).Error)

	err = svc.Cancel(context.Background(), view.ID)
	require.ErrorIs(t, err, ErrNotCancellable)

	got, err := svc.Get(context.Background(), view.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusReady, got.Status)
	require.True(t, view.Total.Equal(got.Total))
}

func TestHistoricalPricesAreFrozen(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}
	espresso := seedProduct(t, db, "Classic Espresso", "2.95")

	view, err := svc.Create(context.Background(), CreateRequest{
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Items:         []CartLine{{ProductID: espresso.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", espresso.ID).
		Updates(map[string]interface{}{
			"price": decimal.RequireFromString("9.99"),
			"name":  "Signature Espresso",
		}).Error)

	got, err := svc.Get(context.Background(), view.ID)
	require.NoError(t, err)

	require.True(t, decimal.RequireFromString("2.95").Equal(got.Items[0].Price), "price stays a snapshot")
	require.True(t, decimal.RequireFromString("5.90").Equal(got.Total), "total stays a snapshot")
	require.Equal(t, "Signature Espresso", got.Items[0].ProductName, "name is joined live")
}

func TestUpdateStatusFlow(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}
	espresso := seedProduct(t, db, "Classic Espresso", "2.95")

	view, err := svc.Create(context.Background(), CreateRequest{
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Items:         []CartLine{{ProductID: espresso.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// pending cannot skip straight to completed
	_, err = svc.UpdateStatus(context.Background(), view.ID, models.OrderStatusCompleted, 0)
	require.ErrorIs(t, err, ErrInvalidStatus)

	ready, err := svc.UpdateStatus(context.Background(), view.ID, models.OrderStatusReady, 5)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusReady, ready.Status)
	require.Equal(t, 5, ready.PreparationMinutes)
	require.NotNil(t, ready.ReadyAt)

	completed, err := svc.UpdateStatus(context.Background(), view.ID, models.OrderStatusCompleted, 0)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusCompleted, completed.Status)

	_, err = svc.UpdateStatus(context.Background(), view.ID, models.OrderStatusReady, 0)
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), models.OrderStatusReady, 0)
	require.ErrorIs(t, err, ErrOrderNotFound)
}
