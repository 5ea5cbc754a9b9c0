package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/petgroom-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/middleware"
	ucbooking "github.com/BruksfildServices01/petgroom-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create     *ucbooking.CreateAdminBooking
	transition *ucbooking.TransitionBooking
	listDate   *ucbooking.ListBookingsByDate
	listMonth  *ucbooking.ListBookingsByMonth
	stats      *ucbooking.GetDashboardStats
}

func NewBookingHandler(
	create *ucbooking.CreateAdminBooking,
	transition *ucbooking.TransitionBooking,
	listDate *ucbooking.ListBookingsByDate,
	listMonth *ucbooking.ListBookingsByMonth,
	stats *ucbooking.GetDashboardStats,
) *BookingHandler {
	return &BookingHandler{
		create:     create,
		transition: transition,
		listDate:   listDate,
		listMonth:  listMonth,
		stats:      stats,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	PetName     string `json:"pet_name" binding:"required"`
	PetType     string `json:"pet_type"`
	PetBreed    string `json:"pet_breed"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
	Price       string `json:"price"` // vazio usa o preço do catálogo
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var price *decimal.Decimal
	if req.Price != "" {
		p, err := decimal.NewFromString(req.Price)
		if err != nil {
			httperr.BadRequest(c, "invalid_price", "Preço inválido.")
			return
		}
		price = &p
	}

	b, err := h.create.Execute(
		c.Request.Context(),
		ucbooking.CreateAdminBookingInput{
			PetshopID:   petshopID,
			UserID:      userID,
			ClientName:  req.ClientName,
			ClientEmail: req.ClientEmail,
			ClientPhone: req.ClientPhone,
			PetName:     req.PetName,
			PetType:     req.PetType,
			PetBreed:    req.PetBreed,
			ServiceID:   req.ServiceID,
			Date:        req.Date,
			Time:        req.Time,
			Notes:       req.Notes,
			Price:       price,
		},
	)
	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// ======================================================
// LISTAGENS
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.listDate.Execute(c.Request.Context(), petshopID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, out)
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	out, err := h.listMonth.Execute(c.Request.Context(), petshopID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// TRANSIÇÕES DE STATUS
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.applyTransition(c, domain.StatusConfirmed)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.applyTransition(c, domain.StatusCompleted)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.applyTransition(c, domain.StatusCancelled)
}

func (h *BookingHandler) applyTransition(c *gin.Context, target domain.Status) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	b, err := h.transition.Execute(
		c.Request.Context(),
		ucbooking.TransitionBookingInput{
			PetshopID: petshopID,
			UserID:    userID,
			BookingID: c.Param("id"),
			Target:    target,
		},
	)
	if err != nil {
		mapTransitionErrors(c, err)
		return
	}

	httpresp.OK(c, b)
}

// mapTransitionErrors traduz os erros das transições de status para HTTP
func mapTransitionErrors(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "booking_not_found", "Agendamento não encontrado.")
		return
	}
	if httperr.IsBusiness(err, "invalid_state") {
		httperr.BadRequest(c, "invalid_state", "Agendamento já está em estado final.")
		return
	}
	if httperr.IsBusiness(err, "invalid_status") {
		httperr.BadRequest(c, "invalid_status", "Status inválido.")
		return
	}
	if httperr.IsBusiness(err, "forbidden_actor") {
		httperr.Forbidden(c, "forbidden_actor", "Esse perfil não pode alterar o status do agendamento.")
		return
	}

	httperr.Internal(c, "failed_to_update_booking", "Erro ao atualizar agendamento.")
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *BookingHandler) Stats(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	stats, err := h.stats.Execute(c.Request.Context(), petshopID)
	if err != nil {
		httperr.Internal(c, "failed_to_load_stats", "Erro ao carregar indicadores.")
		return
	}

	httpresp.OK(c, stats)
}

// ======================================================
// ERROS DE CRIAÇÃO
// ======================================================

// mapCreateErrors traduz os erros de negócio da criação de agendamento
// para as respostas HTTP, compartilhado entre o fluxo público e o interno
func mapCreateErrors(c *gin.Context, err error) {
	var quota domain.QuotaError
	if errors.As(err, &quota) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error_code": "monthly_quota_exceeded",
			"message":    "Limite mensal de agendamentos do plano gratuito atingido.",
			"used":       quota.Used,
			"limit":      quota.Limit,
		})
		return
	}

	switch {
	case httperr.IsBusiness(err, "petshop_not_found"):
		httperr.NotFound(c, "petshop_not_found", "Petshop não encontrado.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Serviço não encontrado.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
	case httperr.IsBusiness(err, "invalid_email"):
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
	case httperr.IsBusiness(err, "date_in_past"):
		httperr.BadRequest(c, "date_in_past", "A data precisa estar no futuro.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "Agendamento exige antecedência mínima.")
	case httperr.IsBusiness(err, "time_conflict"):
		httperr.Conflict(c, "time_conflict", "Horário já ocupado.")
	default:
		httperr.Internal(c, "failed_to_create_booking", "Erro ao criar agendamento.")
	}
}
