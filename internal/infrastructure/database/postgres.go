package database

import (
	"fmt"
	"log"

	"github.com/smartinr/ventapos-api/internal/config"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/internal/domain/enum"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// User entities
		&entity.User{},

		// Catalog entities
		&entity.Category{},
		&entity.Product{},
		&entity.ModifierGroup{},
		&entity.ModifierOption{},
		&entity.TaxRule{},
		&entity.PaymentMethod{},
		&entity.Customer{},

		// POS entities
		&entity.SuspendedTicket{},
		&entity.CashSession{},
		&entity.SessionMethodSales{},
		&entity.Sale{},
		&entity.SaleTax{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds an owner user from environment variables plus
// the baseline POS setup: a cash payment method, a card method and a
// default included tax. Existing data wins.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")
	if adminEmail == "" || adminPassword == "" {
		return nil
	}

	var owner entity.User
	if err := db.Where("email = ?", adminEmail).First(&owner).Error; err != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		if adminName == "" {
			adminName = "Propietario"
		}
		owner = entity.User{
			Name:     adminName,
			Email:    adminEmail,
			Password: string(hashedPassword),
			Role:     entity.RoleOwner,
			Provider: "local",
		}
		if err := db.Create(&owner).Error; err != nil {
			return fmt.Errorf("failed to create owner user: %w", err)
		}
		log.Printf("Owner user created: %s", adminEmail)
	}

	var count int64
	if err := db.Model(&entity.PaymentMethod{}).Where("user_id = ?", owner.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		methods := []entity.PaymentMethod{
			{UserID: owner.ID, Name: "Efectivo", IsCash: true, Active: true},
			{UserID: owner.ID, Name: "Tarjeta", IsCash: false, Active: true},
		}
		for i := range methods {
			if err := db.Create(&methods[i]).Error; err != nil {
				log.Printf("Warning: failed to seed payment method %s: %v", methods[i].Name, err)
			}
		}
	}

	if err := db.Model(&entity.TaxRule{}).Where("user_id = ?", owner.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		tax := entity.TaxRule{
			UserID: owner.ID,
			Name:   "IVA",
			Rate:   10,
			Type:   enum.TaxTypeIncluded,
			Active: true,
		}
		if err := db.Create(&tax).Error; err != nil {
			log.Printf("Warning: failed to seed default tax: %v", err)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
