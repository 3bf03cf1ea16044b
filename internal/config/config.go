package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/akingscoffee/coffee_shop/internal/models"
	"github.com/akingscoffee/coffee_shop/pkg/db"
)

type Config struct {
	DB_HOST        string
	DB_PORT        string
	DB_USER        string
	DB_PASSWORD    string
	DB_NAME        string
	ES_URL         string
	ES_USER        string
	ES_PASSWORD    string
	JWT_SECRET     string
	REFRESH_SECRET string
	KAFKA_ADDRESS  string
	FRONTEND_URL   string
	LOG_LEVEL      string
	SEED_MENU      bool
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		DB_HOST:        os.Getenv("DB_HOST"),
		DB_PORT:        os.Getenv("DB_PORT"),
		DB_USER:        os.Getenv("DB_USER"),
		DB_PASSWORD:    os.Getenv("DB_PASSWORD"),
		DB_NAME:        os.Getenv("DB_NAME"),
		ES_URL:         os.Getenv("ES_URL"),
		ES_USER:        os.Getenv("ES_USER"),
		ES_PASSWORD:    os.Getenv("ES_PASSWORD"),
		JWT_SECRET:     os.Getenv("JWT_SECRET"),
		REFRESH_SECRET: os.Getenv("REFRESH_SECRET"),
		KAFKA_ADDRESS:  os.Getenv("KAFKA_ADDRESS"),
		FRONTEND_URL:   os.Getenv("FRONTEND_URL"),
		LOG_LEVEL:      os.Getenv("LOG_LEVEL"),
		SEED_MENU:      strings.EqualFold(os.Getenv("SEED_MENU"), "true"),
	}

	return config, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DB_USER, c.DB_PASSWORD, c.DB_HOST, c.DB_PORT, c.DB_NAME,
	)
}

func (c *Config) CORSOrigins() []string {
	origins := []string{"http://localhost:5173"}
	if c.FRONTEND_URL != "" {
		origins = append(origins, c.FRONTEND_URL)
	}
	return origins
}

func InitDB(ctx context.Context, cfg *Config) (*gorm.DB, error) {
	conn, err := db.Open(ctx, cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := Migrate(conn); err != nil {
		return nil, err
	}
	if cfg.SEED_MENU {
		if err := SeedMenu(conn); err != nil {
			return nil, fmt.Errorf("menu seed failed: %w", err)
		}
	}
	return conn, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Reservation{},
		&models.ContactMessage{},
		&models.User{},
		&models.RefreshToken{},
	); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
