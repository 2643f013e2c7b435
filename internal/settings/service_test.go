package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/shareloop/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AdminSetting{}))
	return db
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx))

	var count int64
	require.NoError(t, db.Model(&models.AdminSetting{}).Count(&count).Error)
	assert.Equal(t, int64(len(definitions)), count)

	// Seeding again neither duplicates rows nor clobbers written values
	require.NoError(t, svc.Set(ctx, "maintenance_mode", json.RawMessage(`true`)))
	require.NoError(t, svc.Seed(ctx))

	require.NoError(t, db.Model(&models.AdminSetting{}).Count(&count).Error)
	assert.Equal(t, int64(len(definitions)), count)

	value, err := svc.Get(ctx, "maintenance_mode")
	require.NoError(t, err)
	assert.JSONEq(t, `true`, string(value))
}

func TestGetFallsBackToDefault(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	value, err := svc.Get(context.Background(), "site_name")
	require.NoError(t, err)
	assert.JSONEq(t, `"Shareloop"`, string(value))
}

func TestGetRejectsUnknownKey(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.Get(context.Background(), "favorite_color")
	assert.Error(t, err)
}

func TestSetGetRoundtrip(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "site_name", json.RawMessage(`"Loopshare"`)))
	require.NoError(t, svc.Set(ctx, "max_items_per_user", json.RawMessage(`25`)))

	value, err := svc.Get(ctx, "site_name")
	require.NoError(t, err)
	assert.JSONEq(t, `"Loopshare"`, string(value))

	value, err = svc.Get(ctx, "max_items_per_user")
	require.NoError(t, err)
	assert.JSONEq(t, `25`, string(value))

	// Overwriting replaces, not appends
	require.NoError(t, svc.Set(ctx, "site_name", json.RawMessage(`"Shareloop"`)))
	var count int64
	require.NoError(t, db.Model(&models.AdminSetting{}).Where("key = ?", "site_name").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSetValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "favorite_color", `"blue"`},
		{"boolean gets string", "maintenance_mode", `"yes"`},
		{"string gets number", "site_name", `42`},
		{"empty site name", "site_name", `""`},
		{"zero item limit", "max_items_per_user", `0`},
		{"negative image size", "max_image_size_mb", `-1`},
		{"float for int", "max_items_per_user", `2.5`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Set(ctx, tc.key, json.RawMessage(tc.value))
			assert.Error(t, err)
		})
	}
}

func TestGetAllOverlaysWrittenValues(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "registration_enabled", json.RawMessage(`false`)))

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)

	require.Len(t, all, len(definitions))
	assert.JSONEq(t, `false`, string(all["registration_enabled"]))
	assert.JSONEq(t, `true`, string(all["moderation_enabled"]))
	assert.JSONEq(t, `50`, string(all["max_items_per_user"]))
}
