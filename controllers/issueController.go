package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"civicconnect-be/middlewares"
	"civicconnect-be/models"
	"civicconnect-be/services"
	"civicconnect-be/visibility"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// IssueController carries the collaborators the issue endpoints need.
// Collections are injected so the listing handlers can be exercised
// against the in-memory store.
type IssueController struct {
	issues        *mongo.Collection
	comments      *mongo.Collection
	users         *mongo.Collection
	queries       *services.IssueQueryService
	ml            *services.MLValidator
	defaultRadius float64
}

func NewIssueController(issues, comments, users *mongo.Collection, queries *services.IssueQueryService, ml *services.MLValidator, defaultRadius float64) *IssueController {
	if defaultRadius <= 0 {
		defaultRadius = visibility.DefaultRadiusMeters
	}
	return &IssueController{
		issues:        issues,
		comments:      comments,
		users:         users,
		queries:       queries,
		ml:            ml,
		defaultRadius: defaultRadius,
	}
}

// parseListParams turns the raw query string into resolver parameters.
// Non-numeric geo or pagination values are rejected here, before the
// resolver ever sees them.
func (ic *IssueController) parseListParams(c *gin.Context) (visibility.ListParams, error) {
	p := visibility.ListParams{
		Status:       c.Query("status"),
		Category:     c.Query("category"),
		Priority:     c.Query("priority"),
		Search:       c.Query("search"),
		SortBy:       c.DefaultQuery("sortBy", "createdAt"),
		SortOrder:    c.DefaultQuery("sortOrder", "desc"),
		RadiusMeters: ic.defaultRadius,
	}

	var err error
	if p.Page, err = intQuery(c, "page", 1); err != nil {
		return p, err
	}
	if p.Limit, err = intQuery(c, "limit", services.DefaultLimit); err != nil {
		return p, err
	}

	if raw := c.Query("assignedTo"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return p, services.NewValidationError("invalid assignedTo id %q", raw)
		}
		p.AssignedTo = &id
	}
	if raw := c.Query("reportedBy"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return p, services.NewValidationError("invalid reportedBy id %q", raw)
		}
		p.ReportedBy = &id
	}

	if raw := c.Query("latitude"); raw != "" {
		lat, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return p, services.NewValidationError("invalid latitude %q", raw)
		}
		p.Latitude = &lat
	}
	if raw := c.Query("longitude"); raw != "" {
		lng, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return p, services.NewValidationError("invalid longitude %q", raw)
		}
		p.Longitude = &lng
	}
	if raw := c.Query("radius"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			return p, services.NewValidationError("invalid radius %q", raw)
		}
		p.RadiusMeters = radius
	}

	return p, nil
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, services.NewValidationError("invalid %s %q", name, raw)
	}
	return value, nil
}

func respondListError(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, visibility.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve issues"})
	}
}

// GetIssues is the general listing endpoint: visibility scoping by role,
// explicit filters, search, geo radius, pagination.
func (ic *IssueController) GetIssues(c *gin.Context) {
	params, err := ic.parseListParams(c)
	if err != nil {
		respondListError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	page, err := ic.queries.List(ctx, middlewares.CurrentUser(c), params)
	if err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"issues":     page.Items,
			"pagination": page.Pagination,
		},
	})
}

// GetUserIssues lists issues reported by a specific user. Admins may read
// anyone's list; everyone else only their own.
func (ic *IssueController) GetUserIssues(c *gin.Context) {
	target, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	pageNum, err := intQuery(c, "page", 1)
	if err != nil {
		respondListError(c, err)
		return
	}
	limit, err := intQuery(c, "limit", services.DefaultLimit)
	if err != nil {
		respondListError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	page, err := ic.queries.ListUserIssues(ctx, middlewares.CurrentUser(c), target, c.Query("status"), pageNum, limit)
	if err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"issues":     page.Items,
			"pagination": page.Pagination,
		},
	})
}

// GetNearbyIssues returns public issues around a point, default radius.
func (ic *IssueController) GetNearbyIssues(c *gin.Context) {
	params, err := ic.parseListParams(c)
	if err != nil {
		respondListError(c, err)
		return
	}
	if params.Latitude == nil || params.Longitude == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "latitude and longitude are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	// Always the anonymous view: nearby is a public map surface.
	page, err := ic.queries.List(ctx, nil, params)
	if err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"issues":     page.Items,
			"pagination": page.Pagination,
		},
	})
}

// GetIssue retrieves a single issue by id.
func (ic *IssueController) GetIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err = ic.issues.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve issue"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"issue": issue}})
}

// CreateIssue handles a citizen submission, including the best-effort ML
// validation step.
func (ic *IssueController) CreateIssue(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return
	}

	var input struct {
		Title       string   `json:"title" binding:"required,min=5,max=200"`
		Description string   `json:"description" binding:"required,min=10,max=2000"`
		Category    string   `json:"category" binding:"required"`
		Location    struct {
			Name      string  `json:"name" binding:"required,max=200"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"location" binding:"required"`
		Tags        []string `json:"tags,omitempty"`
		IsAnonymous bool     `json:"isAnonymous,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if !models.IsValidCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	mlResult := ic.ml.Validate(ctx, services.MLRequest{
		ReportID:    uuid.NewString(),
		Description: input.Description,
		Category:    input.Category,
		UserID:      user.ID.Hex(),
		Latitude:    &input.Location.Latitude,
		Longitude:   &input.Location.Longitude,
	})
	if !mlResult.Accepted() {
		reason := mlResult.Reason
		if reason == "" {
			reason = "Report rejected by validator"
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": reason, "reason": reason})
		return
	}

	priority := models.IssuePriority(mlResult.Priority)
	if !models.IsValidPriority(string(priority)) {
		priority = models.PriorityMedium
	}

	now := time.Now()
	issue := models.Issue{
		ID:          primitive.NewObjectID(),
		Title:       input.Title,
		Description: input.Description,
		Category:    models.IssueCategory(input.Category),
		Status:      models.StatusReported,
		Priority:    priority,
		Location: models.Location{
			Name:        input.Location.Name,
			Coordinates: models.NewGeoPoint(input.Location.Latitude, input.Location.Longitude),
		},
		Tags:        input.Tags,
		ReportedBy:  user.ID,
		IsPublic:    true,
		IsAnonymous: input.IsAnonymous,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := ic.issues.InsertOne(ctx, issue); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create issue"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Issue created successfully",
		"data":    gin.H{"issue": issue, "ml": mlResult},
	})
}

// UpdateIssue lets the reporter or an admin edit issue details.
func (ic *IssueController) UpdateIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid issue ID"})
		return
	}

	user := middlewares.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return
	}

	var input struct {
		Title       *string  `json:"title,omitempty"`
		Description *string  `json:"description,omitempty"`
		Category    *string  `json:"category,omitempty"`
		Tags        []string `json:"tags,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err = ic.issues.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve issue"})
		}
		return
	}

	if user.Role.Normalize() != models.RoleAdmin && issue.ReportedBy != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "You are not authorized to update this issue"})
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Title != nil {
		if len(*input.Title) < 5 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Title too short"})
			return
		}
		update["title"] = *input.Title
	}
	if input.Description != nil {
		if len(*input.Description) < 10 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Description too short"})
			return
		}
		update["description"] = *input.Description
	}
	if input.Category != nil {
		if !models.IsValidCategory(*input.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category"})
			return
		}
		update["category"] = *input.Category
	}
	if input.Tags != nil {
		update["tags"] = input.Tags
	}

	if _, err := ic.issues.UpdateOne(ctx, bson.M{"_id": issueID}, bson.M{"$set": update}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update issue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Issue updated successfully"})
}

// UpdateIssueStatus moves an issue through its lifecycle. Staff only.
// resolvedAt is written exactly once, on the transition into resolved.
func (ic *IssueController) UpdateIssueStatus(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid issue ID"})
		return
	}

	user := middlewares.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return
	}
	if !user.Role.IsStaff() && user.Role.Normalize() != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Staff role required"})
		return
	}

	var input struct {
		Status     string  `json:"status" binding:"required"`
		AssignedTo *string `json:"assignedTo,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if !models.IsValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err = ic.issues.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve issue"})
		}
		return
	}

	update := bson.M{
		"status":    input.Status,
		"updatedAt": time.Now(),
	}

	if models.IssueStatus(input.Status) == models.StatusResolved && issue.ResolvedAt == nil {
		update["resolvedAt"] = time.Now()
	}

	if input.AssignedTo != nil {
		assigneeID, err := primitive.ObjectIDFromHex(*input.AssignedTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid assignee ID"})
			return
		}

		var assignee models.User
		if err := ic.users.FindOne(ctx, bson.M{"_id": assigneeID}).Decode(&assignee); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Assignee not found"})
			return
		}
		update["assignedTo"] = assigneeID
		update["assignedRole"] = assignee.Role.Normalize()
	}

	if _, err := ic.issues.UpdateOne(ctx, bson.M{"_id": issueID}, bson.M{"$set": update}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Status updated successfully"})
}

// DeleteIssue removes an issue and its comments. Reporter or admin only.
func (ic *IssueController) DeleteIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid issue ID"})
		return
	}

	user := middlewares.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err = ic.issues.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve issue"})
		}
		return
	}

	if user.Role.Normalize() != models.RoleAdmin && issue.ReportedBy != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "You are not authorized to delete this issue"})
		return
	}

	if _, err := ic.issues.DeleteOne(ctx, bson.M{"_id": issueID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete issue"})
		return
	}

	ic.deleteComments(ctx, issueID)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Issue deleted successfully"})
}

// deleteComments is the best-effort cascade after an issue delete. A
// failure leaves orphaned comments behind, which must be visible in the
// logs rather than silently swallowed.
func (ic *IssueController) deleteComments(ctx context.Context, issueID primitive.ObjectID) {
	if _, err := ic.comments.DeleteMany(ctx, bson.M{"issue": issueID}); err != nil {
		log.Printf("Failed to delete comments for issue %s: %v", issueID.Hex(), err)
	}
}

// UpvoteIssue records the citizen's upvote. $addToSet keeps the
// upvotedBy set free of duplicates without a read-modify-write.
func (ic *IssueController) UpvoteIssue(c *gin.Context) {
	ic.changeUpvote(c, "$addToSet", "Vote recorded")
}

// RemoveUpvote withdraws the citizen's upvote.
func (ic *IssueController) RemoveUpvote(c *gin.Context) {
	ic.changeUpvote(c, "$pull", "Vote removed")
}

func (ic *IssueController) changeUpvote(c *gin.Context, op, message string) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid issue ID"})
		return
	}

	user := middlewares.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	result, err := ic.issues.UpdateOne(ctx,
		bson.M{"_id": issueID},
		bson.M{op: bson.M{"upvotedBy": user.ID}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update vote"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Issue not found"})
		return
	}

	var issue models.Issue
	upvotes := 0
	if err := ic.issues.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue); err == nil {
		upvotes = len(issue.UpvotedBy)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "upvotes": upvotes})
}

// GetIssueComments lists comments on an issue, oldest first.
func (ic *IssueController) GetIssueComments(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cursor, err := ic.comments.Find(ctx, bson.M{"issue": issueID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve comments"})
		return
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": comments})
}

// AddComment attaches a comment to an issue.
func (ic *IssueController) AddComment(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid issue ID"})
		return
	}

	user := middlewares.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return
	}

	var input struct {
		Content string `json:"content" binding:"required,min=1,max=1000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		Issue:     issueID,
		Author:    user.ID,
		Content:   input.Content,
		CreatedAt: time.Now(),
	}

	if _, err := ic.comments.InsertOne(ctx, comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": comment})
}

// GetIssueStats returns counts by category, open issues, and a last-7-days
// submission series.
func (ic *IssueController) GetIssueStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	categoryPipeline := []bson.M{
		{
			"$group": bson.M{
				"_id":   "$category",
				"count": bson.M{"$sum": 1},
			},
		},
		{
			"$project": bson.M{
				"name":  "$_id",
				"value": "$count",
				"_id":   0,
			},
		},
	}

	categoryCursor, err := ic.issues.Aggregate(ctx, categoryPipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get category stats"})
		return
	}
	defer categoryCursor.Close(ctx)

	var issuesByCategory []bson.M
	if err := categoryCursor.All(ctx, &issuesByCategory); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode category stats"})
		return
	}

	var last7Days []gin.H
	for i := 6; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i)
		date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		nextDate := date.AddDate(0, 0, 1)

		count, err := ic.issues.CountDocuments(ctx, bson.M{
			"createdAt": bson.M{"$gte": date, "$lt": nextDate},
		})
		if err != nil {
			count = 0
		}

		last7Days = append(last7Days, gin.H{
			"date":  date.Format("2006-01-02"),
			"count": count,
		})
	}

	totalIssues, err := ic.issues.CountDocuments(ctx, bson.M{})
	if err != nil {
		totalIssues = 0
	}

	openIssues, err := ic.issues.CountDocuments(ctx, bson.M{
		"status": bson.M{"$in": []string{
			string(models.StatusReported),
			string(models.StatusInProgress),
			string(models.StatusEscalated),
		}},
	})
	if err != nil {
		openIssues = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"issuesByCategory": issuesByCategory,
			"last7Days":        last7Days,
			"totalIssues":      totalIssues,
			"openIssues":       openIssues,
		},
	})
}
