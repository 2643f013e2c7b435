package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shareloop/backend/internal/analytics"
	"github.com/shareloop/backend/internal/auditlog"
	"github.com/shareloop/backend/internal/database"
	"github.com/shareloop/backend/internal/logger"
	"github.com/shareloop/backend/internal/models"
	"github.com/shareloop/backend/internal/settings"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// AdminHandlersTestSuite exercises the admin console endpoints end to end
// against an in-memory database.
type AdminHandlersTestSuite struct {
	suite.Suite
	db       *gorm.DB
	router   *gin.Engine
	handlers *Handlers
	admin    *models.User
}

// SetupSuite initializes test database, services, and router
func (suite *AdminHandlersTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open("file:handlers_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(suite.T(), err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.ItemView{},
		&models.Favorite{},
		&models.Message{},
		&models.Report{},
		&models.AdminLog{},
		&models.AdminSetting{},
	)
	require.NoError(suite.T(), err)

	database.DB = db
	suite.db = db

	suite.handlers = NewHandlers(
		analytics.NewService(db, 5*time.Second),
		settings.NewService(db),
		auditlog.NewRecorder(db),
	)

	suite.router = gin.New()
	suite.setupRoutes()
}

// setupRoutes configures the test router with a header-based stand-in for the
// real auth middleware
func (suite *AdminHandlersTestSuite) setupRoutes() {
	authMiddleware := func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			c.Abort()
			return
		}
		c.Set("user_id", userID)
		c.Set("user", &user)
		c.Next()
	}

	api := suite.router.Group("/api")
	api.Use(authMiddleware)
	api.GET("/profile", suite.handlers.GetMyProfile)
	api.PUT("/profile", suite.handlers.UpdateMyProfile)

	admin := suite.router.Group("/api/admin")
	admin.Use(authMiddleware)
	admin.GET("/dashboard", suite.handlers.GetDashboard)
	admin.GET("/analytics/growth", suite.handlers.GetUserGrowth)
	admin.GET("/analytics/categories", suite.handlers.GetCategoryDistribution)
	admin.GET("/users", suite.handlers.ListUsers)
	admin.POST("/users/:id/ban", suite.handlers.BanUser)
	admin.POST("/users/:id/unban", suite.handlers.UnbanUser)
	admin.POST("/users/:id/promote", suite.handlers.PromoteUser)
	admin.POST("/users/:id/demote", suite.handlers.DemoteUser)
	admin.GET("/items", suite.handlers.ListItems)
	admin.PUT("/items/:id/availability", suite.handlers.SetItemAvailability)
	admin.DELETE("/items/:id", suite.handlers.DeleteItem)
	admin.GET("/reports", suite.handlers.ListReports)
	admin.PUT("/reports/:id/status", suite.handlers.UpdateReportStatus)
	admin.GET("/settings", suite.handlers.GetSettings)
	admin.PUT("/settings/:key", suite.handlers.UpdateSetting)
	admin.GET("/audit-logs", suite.handlers.ListAuditLogs)
}

// SetupTest wipes all tables and recreates the acting admin
func (suite *AdminHandlersTestSuite) SetupTest() {
	for _, table := range []string{
		"admin_logs", "admin_settings", "reports", "messages",
		"favorites", "item_views", "items", "users",
	} {
		require.NoError(suite.T(), suite.db.Exec("DELETE FROM "+table).Error)
	}

	admin := &models.User{
		Email:       "admin@shareloop.io",
		Username:    "admin",
		DisplayName: "Admin",
		IsAdmin:     true,
	}
	require.NoError(suite.T(), suite.db.Create(admin).Error)
	suite.admin = admin
}

func (suite *AdminHandlersTestSuite) createUser(email, username string) *models.User {
	user := &models.User{
		Email:       email,
		Username:    username,
		DisplayName: username,
	}
	require.NoError(suite.T(), suite.db.Create(user).Error)
	return user
}

func (suite *AdminHandlersTestSuite) createItem(ownerID, category string, available bool) *models.Item {
	item := &models.Item{
		OwnerID:     ownerID,
		Title:       "Ladder",
		Category:    category,
		IsAvailable: available,
	}
	require.NoError(suite.T(), suite.db.Create(item).Error)
	return item
}

// request performs an authenticated request as the suite's admin
func (suite *AdminHandlersTestSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(suite.T(), err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", suite.admin.ID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// rawRequest sends a request whose body isn't JSON-encoded first
func (suite *AdminHandlersTestSuite) rawRequest(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("X-User-ID", suite.admin.ID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AdminHandlersTestSuite) parseBody(w *httptest.ResponseRecorder) map[string]any {
	var result map[string]any
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func (suite *AdminHandlersTestSuite) auditActions() []string {
	var logs []models.AdminLog
	require.NoError(suite.T(), suite.db.Order("created_at ASC").Find(&logs).Error)
	actions := make([]string, 0, len(logs))
	for _, l := range logs {
		actions = append(actions, l.Action)
	}
	return actions
}

func (suite *AdminHandlersTestSuite) TestDashboard() {
	suite.createUser("a@example.com", "a")
	owner := suite.createUser("b@example.com", "b")
	suite.createItem(owner.ID, "Tools", true)

	w := suite.request("GET", "/api/admin/dashboard", nil)
	suite.Equal(http.StatusOK, w.Code)

	body := suite.parseBody(w)
	suite.Equal(float64(3), body["total_users"]) // includes the acting admin
	suite.Equal(float64(1), body["total_items"])
	suite.NotContains(body, "unavailable")
}

func (suite *AdminHandlersTestSuite) TestUserGrowthEndpoint() {
	w := suite.request("GET", "/api/admin/analytics/growth?days=7", nil)
	suite.Equal(http.StatusOK, w.Code)

	body := suite.parseBody(w)
	series := body["series"].([]any)
	suite.Len(series, 8)
}

func (suite *AdminHandlersTestSuite) TestCategoryDistributionEndpoint() {
	owner := suite.createUser("owner@example.com", "owner")
	suite.createItem(owner.ID, "Books", true)
	suite.createItem(owner.ID, "Books", true)
	suite.createItem(owner.ID, "Toys", true)

	w := suite.request("GET", "/api/admin/analytics/categories", nil)
	suite.Equal(http.StatusOK, w.Code)

	body := suite.parseBody(w)
	categories := body["categories"].([]any)
	suite.Len(categories, 2)

	first := categories[0].(map[string]any)
	suite.Equal("Books", first["category"])
	suite.Equal(66.67, first["percentage"])
}

func (suite *AdminHandlersTestSuite) TestListUsersSearch() {
	suite.createUser("maria@example.com", "maria")
	suite.createUser("marcus@example.com", "marcus")
	suite.createUser("zoe@example.com", "zoe")

	w := suite.request("GET", "/api/admin/users?q=mar", nil)
	suite.Equal(http.StatusOK, w.Code)

	body := suite.parseBody(w)
	suite.Equal(float64(2), body["total"])
}

func (suite *AdminHandlersTestSuite) TestBanAndUnbanUser() {
	target := suite.createUser("target@example.com", "target")

	w := suite.request("POST", "/api/admin/users/"+target.ID+"/ban", nil)
	suite.Equal(http.StatusOK, w.Code)

	var banned models.User
	suite.NoError(suite.db.First(&banned, "id = ?", target.ID).Error)
	suite.True(banned.IsBanned)

	w = suite.request("POST", "/api/admin/users/"+target.ID+"/unban", nil)
	suite.Equal(http.StatusOK, w.Code)

	suite.NoError(suite.db.First(&banned, "id = ?", target.ID).Error)
	suite.False(banned.IsBanned)

	suite.Equal([]string{"user.ban", "user.unban"}, suite.auditActions())
}

func (suite *AdminHandlersTestSuite) TestBanAdminRejected() {
	other := suite.createUser("other-admin@example.com", "otheradmin")
	suite.NoError(suite.db.Model(other).Update("is_admin", true).Error)

	w := suite.request("POST", "/api/admin/users/"+other.ID+"/ban", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	var unchanged models.User
	suite.NoError(suite.db.First(&unchanged, "id = ?", other.ID).Error)
	suite.False(unchanged.IsBanned)
	suite.Empty(suite.auditActions())
}

func (suite *AdminHandlersTestSuite) TestBanUnknownUser() {
	w := suite.request("POST", "/api/admin/users/00000000-0000-0000-0000-000000000000/ban", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AdminHandlersTestSuite) TestPromoteAndDemoteUser() {
	target := suite.createUser("mod@example.com", "mod")

	w := suite.request("POST", "/api/admin/users/"+target.ID+"/promote", nil)
	suite.Equal(http.StatusOK, w.Code)

	var promoted models.User
	suite.NoError(suite.db.First(&promoted, "id = ?", target.ID).Error)
	suite.True(promoted.IsAdmin)

	w = suite.request("POST", "/api/admin/users/"+target.ID+"/demote", nil)
	suite.Equal(http.StatusOK, w.Code)

	suite.NoError(suite.db.First(&promoted, "id = ?", target.ID).Error)
	suite.False(promoted.IsAdmin)

	suite.Equal([]string{"user.promote", "user.demote"}, suite.auditActions())
}

func (suite *AdminHandlersTestSuite) TestListItemsAvailabilityFilter() {
	owner := suite.createUser("owner@example.com", "owner")
	suite.createItem(owner.ID, "Tools", true)
	suite.createItem(owner.ID, "Tools", false)

	// ParseBool syntax: "true" and "1" mean the same thing
	for _, value := range []string{"true", "1"} {
		w := suite.request("GET", "/api/admin/items?available="+value, nil)
		suite.Equal(http.StatusOK, w.Code, value)
		suite.Equal(float64(1), suite.parseBody(w)["total"], value)
	}

	w := suite.request("GET", "/api/admin/items?available=0", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(float64(1), suite.parseBody(w)["total"])

	w = suite.request("GET", "/api/admin/items?available=maybe", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AdminHandlersTestSuite) TestSetItemAvailability() {
	owner := suite.createUser("owner@example.com", "owner")
	item := suite.createItem(owner.ID, "Tools", true)

	w := suite.request("PUT", "/api/admin/items/"+item.ID+"/availability", gin.H{"is_available": false})
	suite.Equal(http.StatusOK, w.Code)

	var updated models.Item
	suite.NoError(suite.db.First(&updated, "id = ?", item.ID).Error)
	suite.False(updated.IsAvailable)
	suite.Equal([]string{"item.delist"}, suite.auditActions())
}

func (suite *AdminHandlersTestSuite) TestSetItemAvailabilityRequiresBody() {
	owner := suite.createUser("owner@example.com", "owner")
	item := suite.createItem(owner.ID, "Tools", true)

	w := suite.request("PUT", "/api/admin/items/"+item.ID+"/availability", gin.H{})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AdminHandlersTestSuite) TestDeleteItemSoftDeletes() {
	owner := suite.createUser("owner@example.com", "owner")
	item := suite.createItem(owner.ID, "Tools", true)

	w := suite.request("DELETE", "/api/admin/items/"+item.ID, nil)
	suite.Equal(http.StatusOK, w.Code)

	// Gone from normal queries, still present for the audit trail
	var found models.Item
	err := suite.db.First(&found, "id = ?", item.ID).Error
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
	suite.NoError(suite.db.Unscoped().First(&found, "id = ?", item.ID).Error)

	suite.Equal([]string{"item.delete"}, suite.auditActions())
}

func (suite *AdminHandlersTestSuite) TestReportWorkflow() {
	reporter := suite.createUser("reporter@example.com", "reporter")
	owner := suite.createUser("owner@example.com", "owner")
	item := suite.createItem(owner.ID, "Tools", true)

	report := &models.Report{
		ReporterID: reporter.ID,
		TargetType: models.ReportTargetItem,
		TargetID:   item.ID,
		Reason:     models.ReportReasonScam,
		Status:     models.ReportStatusPending,
	}
	suite.NoError(suite.db.Create(report).Error)

	w := suite.request("PUT", "/api/admin/reports/"+report.ID+"/status", gin.H{
		"status":       "resolved",
		"action_taken": "item delisted",
	})
	suite.Equal(http.StatusOK, w.Code)

	var updated models.Report
	suite.NoError(suite.db.First(&updated, "id = ?", report.ID).Error)
	suite.Equal(models.ReportStatusResolved, updated.Status)
	suite.Require().NotNil(updated.ModeratorID)
	suite.Equal(suite.admin.ID, *updated.ModeratorID)
	suite.Equal("item delisted", updated.ActionTaken)

	suite.Equal([]string{"report.resolved"}, suite.auditActions())
}

func (suite *AdminHandlersTestSuite) TestReportStatusValidation() {
	reporter := suite.createUser("reporter@example.com", "reporter")
	report := &models.Report{
		ReporterID: reporter.ID,
		TargetType: models.ReportTargetUser,
		TargetID:   reporter.ID,
		Reason:     models.ReportReasonSpam,
		Status:     models.ReportStatusPending,
	}
	suite.NoError(suite.db.Create(report).Error)

	w := suite.request("PUT", "/api/admin/reports/"+report.ID+"/status", gin.H{"status": "escalated"})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	w = suite.request("GET", "/api/admin/reports?status=bogus", nil)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *AdminHandlersTestSuite) TestListReportsFilterByStatus() {
	reporter := suite.createUser("reporter@example.com", "reporter")
	for _, status := range []models.ReportStatus{
		models.ReportStatusPending,
		models.ReportStatusPending,
		models.ReportStatusResolved,
	} {
		report := &models.Report{
			ReporterID: reporter.ID,
			TargetType: models.ReportTargetUser,
			TargetID:   reporter.ID,
			Reason:     models.ReportReasonOther,
			Status:     status,
		}
		suite.NoError(suite.db.Create(report).Error)
	}

	w := suite.request("GET", "/api/admin/reports?status=pending", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(float64(2), suite.parseBody(w)["total"])
}

func (suite *AdminHandlersTestSuite) TestSettingsRoundtrip() {
	w := suite.request("GET", "/api/admin/settings", nil)
	suite.Equal(http.StatusOK, w.Code)
	all := suite.parseBody(w)["settings"].(map[string]any)
	suite.Equal("Shareloop", all["site_name"])

	// The update body is the raw JSON value, not an envelope
	w = suite.rawRequest("PUT", "/api/admin/settings/maintenance_mode", `true`)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request("GET", "/api/admin/settings", nil)
	all = suite.parseBody(w)["settings"].(map[string]any)
	suite.Equal(true, all["maintenance_mode"])

	suite.Equal([]string{"setting.update"}, suite.auditActions())
}

func (suite *AdminHandlersTestSuite) TestUpdateSettingRejectsBadValues() {
	w := suite.rawRequest("PUT", "/api/admin/settings/site_name", `not json`)
	suite.Equal(http.StatusBadRequest, w.Code)

	for key, body := range map[string]string{
		"maintenance_mode":   `"yes"`,
		"max_items_per_user": `0`,
		"unknown_key":        `true`,
	} {
		w := suite.rawRequest("PUT", "/api/admin/settings/"+key, body)
		suite.Equal(http.StatusUnprocessableEntity, w.Code, key)
	}

	suite.Empty(suite.auditActions())
}

func (suite *AdminHandlersTestSuite) TestListAuditLogs() {
	target := suite.createUser("target@example.com", "target")
	suite.request("POST", "/api/admin/users/"+target.ID+"/ban", nil)
	suite.request("POST", "/api/admin/users/"+target.ID+"/unban", nil)

	w := suite.request("GET", "/api/admin/audit-logs", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(float64(2), suite.parseBody(w)["total"])

	w = suite.request("GET", "/api/admin/audit-logs?action=user.ban", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(float64(1), suite.parseBody(w)["total"])

	w = suite.request("GET", "/api/admin/audit-logs?admin_id="+suite.admin.ID, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(float64(2), suite.parseBody(w)["total"])
}

func (suite *AdminHandlersTestSuite) TestProfileGetAndUpdate() {
	w := suite.request("GET", "/api/profile", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("admin@shareloop.io", suite.parseBody(w)["email"])

	w = suite.request("PUT", "/api/profile", gin.H{
		"display_name": "Site Admin",
		"bio":          "Keeping the loop tidy",
	})
	suite.Equal(http.StatusOK, w.Code)

	var updated models.User
	suite.NoError(suite.db.First(&updated, "id = ?", suite.admin.ID).Error)
	suite.Equal("Site Admin", updated.DisplayName)
	suite.Equal("Keeping the loop tidy", updated.Bio)

	w = suite.request("PUT", "/api/profile", gin.H{"display_name": "   "})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *AdminHandlersTestSuite) TestProfileCountFailureReturns500() {
	suite.Require().NoError(suite.db.Migrator().DropTable(&models.Item{}))
	defer func() {
		suite.Require().NoError(suite.db.AutoMigrate(&models.Item{}))
	}()

	w := suite.request("GET", "/api/profile", nil)
	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *AdminHandlersTestSuite) TestUnauthenticatedRequestRejected() {
	req := httptest.NewRequest("GET", "/api/admin/dashboard", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestAdminHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlersTestSuite))
}
