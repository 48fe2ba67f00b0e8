package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"civicconnect-be/jobs"
	"civicconnect-be/middlewares"
	"civicconnect-be/models"
	"civicconnect-be/services"

	"github.com/gin-gonic/gin"
)

// AdminController exposes the operational cleanup surface.
type AdminController struct {
	job     *jobs.CleanupJob
	cleanup *services.CleanupService
}

func NewAdminController(job *jobs.CleanupJob, cleanup *services.CleanupService) *AdminController {
	return &AdminController{job: job, cleanup: cleanup}
}

func requireAdmin(c *gin.Context) bool {
	user := middlewares.CurrentUser(c)
	if user == nil || user.Role.Normalize() != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Admin role required"})
		return false
	}
	return true
}

// RunCleanup triggers a retention sweep immediately. A sweep already in
// flight yields 409, distinct from the scheduler's silent skip.
func (ac *AdminController) RunCleanup(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result, err := ac.job.RunNow(ctx)
	if err != nil {
		if errors.Is(err, jobs.ErrCleanupBusy) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Cleanup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"deleted": result.Deleted,
			"message": result.Message,
		},
	})
}

// CleanupStats reports how many issues are currently eligible for
// deletion and the cutoff in force.
func (ac *AdminController) CleanupStats(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	eligible, cutoff, err := ac.cleanup.Stats(ctx, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get cleanup stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"eligibleForDeletion": eligible,
			"cutoffDate":          cutoff,
		},
	})
}
