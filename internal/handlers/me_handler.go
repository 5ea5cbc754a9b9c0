package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/petgroom-scheduler/internal/middleware"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	userID, ok := userIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	var user models.User
	if err := h.db.Preload("Petshop").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	// Plano atual do petshop; ausência conta como free
	sub := gin.H{"plan": "free", "status": "active"}
	var s models.Subscription
	if err := h.db.Where("petshop_id = ?", user.PetshopID).First(&s).Error; err == nil {
		sub = gin.H{"plan": s.Plan, "status": s.Status}
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"phone":      user.Phone,
			"role":       user.Role,
			"petshop_id": user.PetshopID,
		},
		"petshop": gin.H{
			"id":             user.Petshop.ID,
			"name":           user.Petshop.Name,
			"slug":           user.Petshop.Slug,
			"phone":          user.Petshop.Phone,
			"address":        user.Petshop.Address,
			"city":           user.Petshop.City,
			"timezone":       user.Petshop.Timezone,
			"min_lead_hours": user.Petshop.MinLeadHours,
			"open_time":      user.Petshop.OpenTime,
			"close_time":     user.Petshop.CloseTime,
		},
		"subscription": sub,
	})
}
