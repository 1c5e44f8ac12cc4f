package v1

import (
	"io"
	"net/http"
	"strconv"

	"dayhub-backend/internal/delivery/http/response"
	"dayhub-backend/internal/domain"
	"dayhub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ProfileHandler covers the interpreter self-service surface: the
// logged-in interpreter's own profile, availability, bookings and
// file uploads.
type ProfileHandler struct {
	interpreterUC  domain.InterpreterUsecase
	availabilityUC domain.AvailabilityUsecase
	bookingUC      domain.BookingUsecase
	uploadUC       domain.UploadUsecase
}

func NewProfileHandler(public *gin.RouterGroup, me *gin.RouterGroup, interpreterUC domain.InterpreterUsecase, availabilityUC domain.AvailabilityUsecase, bookingUC domain.BookingUsecase, uploadUC domain.UploadUsecase, uploadLimiter gin.HandlerFunc) {
	handler := &ProfileHandler{
		interpreterUC:  interpreterUC,
		availabilityUC: availabilityUC,
		bookingUC:      bookingUC,
		uploadUC:       uploadUC,
	}

	// Availability is publicly readable on the profile page
	public.GET("/interpreters/:id/availability", handler.GetAvailability)

	me.GET("/profile", handler.GetProfile)
	me.PUT("/profile", handler.UpdateProfile)
	me.GET("/availability", handler.GetOwnAvailability)
	me.PUT("/availability", handler.ReplaceAvailability)
	me.GET("/bookings", handler.ListBookings)
	me.POST("/uploads/:kind", uploadLimiter, handler.Upload)
}

// GetProfile godoc
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /me/profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	interp, err := h.interpreterUC.GetOwnProfile(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile", interp)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Description  Email, vetting, approval status and rating are not self-editable
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      domain.Interpreter  true  "Profile fields"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /me/profile [put]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var interp domain.Interpreter
	if err := c.ShouldBindJSON(&interp); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	updated, err := h.interpreterUC.UpdateOwnProfile(c.Request.Context(), &interp)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", updated)
}

func (h *ProfileHandler) GetAvailability(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid interpreter ID"))
		return
	}

	slots, err := h.availabilityUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Availability", slots)
}

func (h *ProfileHandler) GetOwnAvailability(c *gin.Context) {
	id, ok := c.Request.Context().Value(domain.KeyInterpreterID).(int64)
	if !ok {
		c.Error(apperror.Unauthorized("Login required"))
		return
	}

	slots, err := h.availabilityUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Availability", slots)
}

// ReplaceAvailability swaps the whole weekly schedule in one call.
func (h *ProfileHandler) ReplaceAvailability(c *gin.Context) {
	var slots []domain.AvailabilitySlot
	if err := c.ShouldBindJSON(&slots); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	updated, err := h.availabilityUC.ReplaceOwn(c.Request.Context(), slots)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Availability updated", updated)
}

func (h *ProfileHandler) ListBookings(c *gin.Context) {
	bookings, err := h.bookingUC.ListOwn(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Bookings", bookings)
}

// Upload godoc
// @Summary      Upload a profile asset
// @Description  Accepts photo, resume, voice or certification files as multipart form data
// @Tags         profile
// @Accept       mpfd
// @Produce      json
// @Param        kind  path      string  true  "photo, resume, voice or certification"
// @Param        file  formData  file    true  "File to upload"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /me/uploads/{kind} [post]
// @Security     BearerAuth
func (h *ProfileHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("A file field is required"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.BadRequest("Could not read uploaded file"))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.Error(apperror.BadRequest("Could not read uploaded file"))
		return
	}

	// Sniff the real content type; the client-declared header is not
	// trusted for validation.
	contentType := http.DetectContentType(data)

	duration, _ := strconv.Atoi(c.PostForm("durationSeconds"))

	req := &domain.UploadRequest{
		Filename:        fileHeader.Filename,
		ContentType:     contentType,
		Data:            data,
		DurationSeconds: duration,
	}

	result, err := h.uploadUC.UploadOwn(c.Request.Context(), c.Param("kind"), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "File uploaded", result)
}
