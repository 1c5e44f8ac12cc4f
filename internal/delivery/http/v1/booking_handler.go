package v1

import (
	"net/http"
	"strconv"
	"time"

	"dayhub-backend/internal/delivery/http/response"
	"dayhub-backend/internal/domain"
	"dayhub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingUC domain.BookingUsecase
}

func NewBookingHandler(public *gin.RouterGroup, bookingUC domain.BookingUsecase) {
	handler := &BookingHandler{bookingUC: bookingUC}

	public.POST("/interpreters/:id/bookings", handler.Request)
	public.GET("/bookings", handler.ListByRequester)
}

type bookingRequest struct {
	RequesterName   string    `json:"requesterName" binding:"required,max=256"`
	RequesterEmail  string    `json:"requesterEmail" binding:"required,email"`
	ScheduledDate   time.Time `json:"scheduledDate" binding:"required"`
	DurationMinutes int       `json:"durationMinutes"`
	Notes           string    `json:"notes" binding:"max=2000"`
}

// Request godoc
// @Summary      Request a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "Interpreter ID"
// @Param        body  body      bookingRequest  true  "Booking request"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interpreters/{id}/bookings [post]
func (h *BookingHandler) Request(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid interpreter ID"))
		return
	}

	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	booking := &domain.Booking{
		InterpreterID:   id,
		RequesterName:   req.RequesterName,
		RequesterEmail:  req.RequesterEmail,
		ScheduledDate:   req.ScheduledDate,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	}

	if err := h.bookingUC.Request(c.Request.Context(), booking); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Booking requested", booking)
}

// ListByRequester returns bookings for the given requester email,
// joined with interpreter contact details.
func (h *BookingHandler) ListByRequester(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.Error(apperror.BadRequest("Email query parameter is required"))
		return
	}

	bookings, err := h.bookingUC.ListByRequester(c.Request.Context(), email)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Bookings", bookings)
}
