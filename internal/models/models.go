package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
)

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"       json:"id"`
	Name        string          `gorm:"size:255;not null"          json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string          `gorm:"size:50;not null;index"     json:"category"`
	ImageURL    string          `json:"image_url"`
	Available   bool            `gorm:"default:true;index"         json:"available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Order struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"        json:"id"`
	CustomerName       string          `gorm:"size:255;not null"           json:"customer_name"`
	CustomerEmail      string          `gorm:"size:255;not null;index"     json:"customer_email"`
	Total              decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Status             string          `gorm:"size:50;not null;default:pending;index" json:"status"`
	PreparationMinutes int             `gorm:"default:0"                   json:"preparation_minutes"`
	ReadyAt            *time.Time      `json:"ready_at,omitempty"`
	CreatedAt          time.Time       `gorm:"index"                       json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Items              []OrderItem     `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"         json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"     json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"     json:"product_id"`
	Product   *Product        `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Quantity  int             `gorm:"not null;check:quantity > 0"  json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"  json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type Reservation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	Name      string    `gorm:"size:255;not null"        json:"name"`
	Email     string    `gorm:"size:255;not null;index"  json:"email"`
	Phone     string    `gorm:"size:20"                  json:"phone,omitempty"`
	Date      string    `gorm:"size:10;not null;index"   json:"date"`
	Time      string    `gorm:"size:20;not null"         json:"time"`
	Guests    int       `gorm:"not null;check:guests > 0 AND guests <= 20" json:"guests"`
	Notes     string    `json:"notes,omitempty"`
	Status    string    `gorm:"size:50;not null;default:confirmed" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type ContactMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"    json:"id"`
	Name      string    `gorm:"size:255;not null"       json:"name"`
	Email     string    `gorm:"size:255;not null"       json:"email"`
	Subject   string    `gorm:"size:500;not null"       json:"subject"`
	Message   string    `gorm:"not null"                json:"message"`
	Status    string    `gorm:"size:50;not null;default:new;index" json:"status"`
	CreatedAt time.Time `gorm:"index"                   json:"created_at"`
}

func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"          json:"id"`
	Token     string    `gorm:"unique;not null"     json:"token"`
	UserID    uint      `gorm:"index;not null"      json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"            json:"expires_at"`
	Revoked   bool      `gorm:"default:false"       json:"revoked"`
}
