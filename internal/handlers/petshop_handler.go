package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/petgroom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/middleware"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/models"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/timezone"
)

type PetshopHandler struct {
	db *gorm.DB
}

func NewPetshopHandler(db *gorm.DB) *PetshopHandler {
	return &PetshopHandler{db: db}
}

type UpdatePetshopConfigRequest struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	City         *string `json:"city,omitempty"`
	Timezone     *string `json:"timezone,omitempty"`
	MinLeadHours *int    `json:"min_lead_hours,omitempty"`
	OpenTime     *string `json:"open_time,omitempty"` // HH:mm
	CloseTime    *string `json:"close_time,omitempty"`
}

func (h *PetshopHandler) GetMePetshop(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	var shop models.Petshop
	if err := h.db.First(&shop, petshopID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "petshop_not_found", "Petshop não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_petshop", "Erro ao buscar dados do petshop.")
		return
	}

	c.JSON(http.StatusOK, shop)
}

func (h *PetshopHandler) UpdateMePetshop(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	var shop models.Petshop
	if err := h.db.First(&shop, petshopID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "petshop_not_found", "Petshop não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_petshop", "Erro ao buscar dados do petshop.")
		return
	}

	var req UpdatePetshopConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.City != nil {
		shop.City = *req.City
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		shop.Timezone = *req.Timezone
	}

	if req.MinLeadHours != nil {
		if *req.MinLeadHours < 0 {
			httperr.BadRequest(c, "invalid_min_lead", "Antecedência mínima deve ser zero ou positiva (em horas).")
			return
		}
		shop.MinLeadHours = *req.MinLeadHours
	}

	if req.OpenTime != nil {
		if !isValidHM(*req.OpenTime) {
			httperr.BadRequest(c, "invalid_open_time", "Horário de abertura inválido.")
			return
		}
		shop.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		if !isValidHM(*req.CloseTime) {
			httperr.BadRequest(c, "invalid_close_time", "Horário de fechamento inválido.")
			return
		}
		shop.CloseTime = *req.CloseTime
	}

	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_petshop", "Erro ao salvar as configurações do petshop.")
		return
	}

	c.JSON(http.StatusOK, shop)
}

func isValidHM(hm string) bool {
	_, err := time.Parse("15:04", hm)
	return err == nil
}
