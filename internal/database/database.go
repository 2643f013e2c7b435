package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shareloop/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the database connection
var DB *gorm.DB

// Initialize creates and configures the database connection
func Initialize() error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		// Fallback to individual components
		host := getEnvOrDefault("DB_HOST", "localhost")
		port := getEnvOrDefault("DB_PORT", "5432")
		user := getEnvOrDefault("DB_USER", "postgres")
		password := getEnvOrDefault("DB_PASSWORD", "")
		dbname := getEnvOrDefault("DB_NAME", "shareloop")
		sslmode := getEnvOrDefault("DB_SSLMODE", "disable")

		databaseURL = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	// Configure GORM logger
	gormLogger := logger.Default
	if os.Getenv("ENVIRONMENT") == "development" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	DB = db
	log.Println("✅ Database connected successfully")

	return nil
}

// Migrate runs auto-migration for all models
func Migrate() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	err := DB.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.ItemView{},
		&models.Favorite{},
		&models.Message{},
		&models.Report{},
		&models.AdminLog{},
		&models.AdminSetting{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("✅ Database migrations completed")
	return nil
}

// createIndexes creates performance indexes
func createIndexes() error {
	// User indexes
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email))")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_username_lower ON users (LOWER(username))")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_created ON users (created_at)")

	// Item indexes for moderation and distribution queries
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_items_owner_created ON items (owner_id, created_at DESC)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_items_category_available ON items (category) WHERE is_available = true")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_items_created ON items (created_at)")

	// View/favorite indexes feeding the dashboard counters
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_item_views_user_created ON item_views (user_id, created_at DESC)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_item_views_item ON item_views (item_id)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_favorites_item ON favorites (item_id)")
	DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_favorites_unique ON favorites (user_id, item_id)")

	// Message indexes
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_messages_recipient_created ON messages (recipient_id, created_at DESC)")

	// Report indexes
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_reports_target ON reports (target_type, target_id)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_reports_status_created ON reports (status, created_at DESC)")

	// Admin log indexes (append-only, read by the audit trail screen)
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_admin_logs_admin_created ON admin_logs (admin_id, created_at DESC)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_admin_logs_action ON admin_logs (action)")

	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// Health checks database connectivity
func Health() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}

// getEnvOrDefault returns environment variable or default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
