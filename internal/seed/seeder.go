// Package seed fills a development database with realistic demo data so the
// admin dashboard has something to aggregate.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shareloop/backend/internal/logger"
	"github.com/shareloop/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var categories = []string{
	"Books", "Tools", "Kitchen", "Toys", "Electronics",
	"Garden", "Sports", "Clothing", "Furniture",
}

var conditions = []string{"new", "good", "worn"}

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	_ = gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

// SeedDev seeds the development database with realistic data
func (s *Seeder) SeedDev() error {
	logger.Log.Info("Creating users...")
	users, err := s.seedUsers(100)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	logger.Log.Info("Creating items...")
	items, err := s.seedItems(users, 400)
	if err != nil {
		return fmt.Errorf("failed to seed items: %w", err)
	}

	logger.Log.Info("Creating views and favorites...")
	if err := s.seedEngagement(users, items, 3000, 600); err != nil {
		return fmt.Errorf("failed to seed engagement: %w", err)
	}

	logger.Log.Info("Creating messages...")
	if err := s.seedMessages(users, items, 800); err != nil {
		return fmt.Errorf("failed to seed messages: %w", err)
	}

	logger.Log.Info("Creating reports...")
	if err := s.seedReports(users, items, 40); err != nil {
		return fmt.Errorf("failed to seed reports: %w", err)
	}

	logger.Log.Info("Seeding complete",
		zap.Int("users", len(users)),
		zap.Int("items", len(items)),
	)
	return nil
}

// seedUsers creates users with signup dates spread over the past 60 days so
// the growth series has a visible shape
func (s *Seeder) seedUsers(count int) ([]models.User, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hash := string(passwordHash)

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		createdAt := gofakeit.DateRange(time.Now().AddDate(0, 0, -60), time.Now())

		user := models.User{
			Email:        fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Username:     fmt.Sprintf("%s%d", gofakeit.Username(), i),
			DisplayName:  gofakeit.Name(),
			Bio:          gofakeit.HipsterSentence(),
			Location:     fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
			PasswordHash: &hash,
			CreatedAt:    createdAt,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// seedItems lists items across all categories, mostly available
func (s *Seeder) seedItems(users []models.User, count int) ([]models.Item, error) {
	items := make([]models.Item, 0, count)
	for i := 0; i < count; i++ {
		owner := users[rand.Intn(len(users))]

		item := models.Item{
			OwnerID:     owner.ID,
			Title:       gofakeit.ProductName(),
			Description: gofakeit.ProductDescription(),
			Category:    categories[rand.Intn(len(categories))],
			Condition:   conditions[rand.Intn(len(conditions))],
			IsAvailable: rand.Float64() < 0.8,
			CreatedAt:   gofakeit.DateRange(owner.CreatedAt, time.Now()),
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// seedEngagement creates item views and favorites. A slice of views lands
// today so active_users_today is non-zero.
func (s *Seeder) seedEngagement(users []models.User, items []models.Item, viewCount, favoriteCount int) error {
	startOfToday := time.Now().UTC().Truncate(24 * time.Hour)

	for i := 0; i < viewCount; i++ {
		item := items[rand.Intn(len(items))]
		viewedAt := gofakeit.DateRange(item.CreatedAt, time.Now())
		if i%10 == 0 {
			viewedAt = gofakeit.DateRange(startOfToday, time.Now())
		}

		view := models.ItemView{
			UserID:    users[rand.Intn(len(users))].ID,
			ItemID:    item.ID,
			CreatedAt: viewedAt,
		}
		if err := s.db.Create(&view).Error; err != nil {
			return err
		}
	}

	seen := make(map[string]bool, favoriteCount)
	for i := 0; i < favoriteCount; i++ {
		user := users[rand.Intn(len(users))]
		item := items[rand.Intn(len(items))]
		pair := user.ID + ":" + item.ID
		if seen[pair] {
			continue
		}
		seen[pair] = true

		favorite := models.Favorite{
			UserID: user.ID,
			ItemID: item.ID,
		}
		if err := s.db.Create(&favorite).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedMessages creates borrower/owner conversations about items
func (s *Seeder) seedMessages(users []models.User, items []models.Item, count int) error {
	for i := 0; i < count; i++ {
		item := items[rand.Intn(len(items))]
		sender := users[rand.Intn(len(users))]
		if sender.ID == item.OwnerID {
			continue
		}

		message := models.Message{
			SenderID:    sender.ID,
			RecipientID: item.OwnerID,
			ItemID:      &item.ID,
			Body:        gofakeit.Question(),
			IsRead:      rand.Float64() < 0.7,
		}
		if err := s.db.Create(&message).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedReports files reports in every workflow state, weighted toward pending
func (s *Seeder) seedReports(users []models.User, items []models.Item, count int) error {
	reasons := []models.ReportReason{
		models.ReportReasonSpam,
		models.ReportReasonScam,
		models.ReportReasonInappropriate,
		models.ReportReasonCounterfeit,
		models.ReportReasonOther,
	}
	statuses := []models.ReportStatus{
		models.ReportStatusPending,
		models.ReportStatusPending,
		models.ReportStatusReviewed,
		models.ReportStatusResolved,
		models.ReportStatusDismissed,
	}

	for i := 0; i < count; i++ {
		item := items[rand.Intn(len(items))]

		report := models.Report{
			ReporterID:  users[rand.Intn(len(users))].ID,
			TargetType:  models.ReportTargetItem,
			TargetID:    item.ID,
			Reason:      reasons[rand.Intn(len(reasons))],
			Description: gofakeit.HipsterSentence(),
			Status:      statuses[rand.Intn(len(statuses))],
		}
		if err := s.db.Create(&report).Error; err != nil {
			return err
		}
	}
	return nil
}
