package controllers_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"civicconnect-be/controllers"
	"civicconnect-be/jobs"
	"civicconnect-be/models"
	"civicconnect-be/services"
	"civicconnect-be/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type listResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Issues     []models.Issue      `json:"issues"`
		Pagination services.Pagination `json:"pagination"`
	} `json:"data"`
}

// newListRouter registers GET /api/issues backed by the in-memory store,
// with the given user pre-authenticated (nil for anonymous).
func newListRouter(user *models.User, issues ...models.Issue) *gin.Engine {
	queries := services.NewIssueQueryService(store.NewMemoryIssueStore(issues...))
	ic := controllers.NewIssueController(nil, nil, nil, queries, nil, 0)

	r := gin.New()
	r.GET("/api/issues", func(c *gin.Context) {
		if user != nil {
			c.Set("user_id", user.ID.Hex())
			c.Set("user", user)
		}
		ic.GetIssues(c)
	})
	return r
}

func doGet(t *testing.T, r *gin.Engine, url string) (*httptest.ResponseRecorder, listResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)

	var body listResponse
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
	}
	return w, body
}

func publicIssue(category models.IssueCategory, assignedTo *primitive.ObjectID) models.Issue {
	return models.Issue{
		ID:         primitive.NewObjectID(),
		Title:      "Streetlight out near the bus stand",
		Category:   category,
		Status:     models.StatusReported,
		Priority:   models.PriorityMedium,
		ReportedBy: primitive.NewObjectID(),
		AssignedTo: assignedTo,
		IsPublic:   true,
		CreatedAt:  time.Now(),
	}
}

func TestGetIssuesDepartmentIsolation(t *testing.T) {
	staffID := primitive.NewObjectID()
	staff := &models.User{ID: staffID, Role: models.RoleFieldStaff, Departments: []string{"Road & Traffic"}}

	inScope := publicIssue(models.RoadTraffic, &staffID)
	outOfScope := publicIssue(models.GarbageSanitation, &staffID)

	r := newListRouter(staff, inScope, outOfScope)
	w, body := doGet(t, r, "/api/issues")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(body.Data.Issues) != 1 || body.Data.Issues[0].ID != inScope.ID {
		t.Errorf("expected only the in-department issue, got %d issues", len(body.Data.Issues))
	}
}

func TestGetIssuesAnonymousSeesOnlyPublic(t *testing.T) {
	private := publicIssue(models.RoadTraffic, nil)
	private.IsPublic = false
	public := publicIssue(models.RoadTraffic, nil)

	r := newListRouter(nil, private, public)
	w, body := doGet(t, r, "/api/issues")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(body.Data.Issues) != 1 || body.Data.Issues[0].ID != public.ID {
		t.Errorf("anonymous listing leaked a non-public issue")
	}
	if body.Data.Pagination.TotalItems != 1 {
		t.Errorf("totalItems = %d, want 1", body.Data.Pagination.TotalItems)
	}
}

func TestGetIssuesRejectsMalformedParams(t *testing.T) {
	r := newListRouter(nil)

	for _, url := range []string{
		"/api/issues?page=abc",
		"/api/issues?limit=ten",
		"/api/issues?latitude=north",
		"/api/issues?radius=-5",
		"/api/issues?assignedTo=not-an-id",
		"/api/issues?sortOrder=sideways",
	} {
		w, _ := doGet(t, r, url)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", url, w.Code)
		}
	}
}

func TestGetIssuesAppliesStatusFilter(t *testing.T) {
	resolved := publicIssue(models.RoadTraffic, nil)
	resolved.Status = models.StatusResolved
	reported := publicIssue(models.RoadTraffic, nil)

	r := newListRouter(nil, resolved, reported)

	w, body := doGet(t, r, "/api/issues?status=resolved")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(body.Data.Issues) != 1 || body.Data.Issues[0].ID != resolved.ID {
		t.Error("status filter not applied")
	}

	// The literal "all" disables the status filter.
	_, body = doGet(t, r, "/api/issues?status=all")
	if len(body.Data.Issues) != 2 {
		t.Errorf(`status=all returned %d issues, want 2`, len(body.Data.Issues))
	}
}

func newAdminRouter(user *models.User, issues ...models.Issue) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mem := store.NewMemoryIssueStore(issues...)
	cleanup := services.NewCleanupService(mem, services.NewRetentionPolicy(0), logger)
	job := jobs.NewCleanupJob(cleanup, "0 2 * * *", time.UTC, logger)
	ac := controllers.NewAdminController(job, cleanup)

	r := gin.New()
	auth := func(c *gin.Context) {
		if user != nil {
			c.Set("user_id", user.ID.Hex())
			c.Set("user", user)
		}
	}
	r.POST("/api/admin/cleanup/run", auth, ac.RunCleanup)
	r.GET("/api/admin/cleanup/stats", auth, ac.CleanupStats)
	return r
}

func TestRunCleanupRequiresAdmin(t *testing.T) {
	citizen := &models.User{ID: primitive.NewObjectID(), Role: models.RoleCitizen}
	r := newAdminRouter(citizen)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/cleanup/run", nil))
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRunCleanupDeletesEligibleIssues(t *testing.T) {
	admin := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}

	old := time.Now().Add(-10 * 24 * time.Hour)
	stale := publicIssue(models.RoadTraffic, nil)
	stale.Status = models.StatusResolved
	stale.ResolvedAt = &old

	r := newAdminRouter(admin, stale)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/cleanup/run", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body struct {
		Data struct {
			Deleted int64 `json:"deleted"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.Deleted != 1 {
		t.Errorf("deleted = %d, want 1", body.Data.Deleted)
	}
}

func TestCleanupStatsCountsWithoutDeleting(t *testing.T) {
	admin := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}

	old := time.Now().Add(-10 * 24 * time.Hour)
	stale := publicIssue(models.RoadTraffic, nil)
	stale.Status = models.StatusResolved
	stale.ResolvedAt = &old

	r := newAdminRouter(admin, stale)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/cleanup/stats", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body struct {
		Data struct {
			EligibleForDeletion int64 `json:"eligibleForDeletion"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.EligibleForDeletion != 1 {
		t.Errorf("eligibleForDeletion = %d, want 1", body.Data.EligibleForDeletion)
	}
}
