package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"growthplan/internal/model"
	"growthplan/internal/repository"
	"growthplan/internal/service/plangen"
)

type ProfileHandler struct {
	profiles   *repository.ProfileRepository
	feedback   *repository.FeedbackRepository
	engagement *repository.EngagementRepository
	logger     *zap.Logger
}

func NewProfileHandler(
	profiles *repository.ProfileRepository,
	feedback *repository.FeedbackRepository,
	engagement *repository.EngagementRepository,
	logger *zap.Logger,
) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, feedback: feedback, engagement: engagement, logger: logger}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	profile, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

func (h *ProfileHandler) PutProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var profile model.BusinessProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid profile"})
		return
	}
	profile.UserID = userID

	if err := h.profiles.Upsert(c.Request.Context(), &profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AvoidPlatform adds a platform to the accumulated avoid list; future
// generation and fallback synthesis never use it again.
func (h *ProfileHandler) AvoidPlatform(c *gin.Context) {
	userID := c.GetInt("user_id")
	platform := plangen.CanonicalPlatform(c.Param("platform"))
	if platform == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "platform required"})
		return
	}

	if err := h.profiles.AddAvoidPlatform(c.Request.Context(), userID, platform); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to update profile"})
		return
	}

	h.logger.Info("Platform added to avoid list",
		zap.Int("user_id", userID),
		zap.String("platform", platform),
	)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PostEngagement records content performance numbers that feed future
// generation context.
func (h *ProfileHandler) PostEngagement(c *gin.Context) {
	userID := c.GetInt("user_id")

	var rec model.EngagementRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid engagement record"})
		return
	}
	rec.UserID = userID
	rec.Platform = plangen.CanonicalPlatform(rec.Platform)

	id, err := h.engagement.Insert(c.Request.Context(), &rec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save engagement"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// PostFeedback stores the weekly review that feeds the next generation cycle.
func (h *ProfileHandler) PostFeedback(c *gin.Context) {
	userID := c.GetInt("user_id")

	var fb model.WeeklyFeedback
	if err := c.ShouldBindJSON(&fb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid feedback"})
		return
	}
	fb.UserID = userID

	if _, err := h.feedback.Insert(c.Request.Context(), &fb); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save feedback"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
