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

type AdminHandler struct {
	interpreterUC domain.InterpreterUsecase
	csvUC         domain.CSVUsecase
	reviewUC      domain.ReviewUsecase
	bookingUC     domain.BookingUsecase
}

func NewAdminHandler(admin *gin.RouterGroup, interpreterUC domain.InterpreterUsecase, csvUC domain.CSVUsecase, reviewUC domain.ReviewUsecase, bookingUC domain.BookingUsecase) {
	handler := &AdminHandler{
		interpreterUC: interpreterUC,
		csvUC:         csvUC,
		reviewUC:      reviewUC,
		bookingUC:     bookingUC,
	}

	interpreters := admin.Group("/interpreters")
	{
		interpreters.GET("/search", handler.Search)
		interpreters.GET("/:id", handler.Get)
		interpreters.POST("", handler.Create)
		interpreters.PUT("/:id", handler.Update)
		interpreters.DELETE("/:id", handler.Delete)
		interpreters.PATCH("/:id/approval", handler.SetApproval)
	}

	csv := admin.Group("/csv")
	{
		csv.POST("/import", handler.ImportCSV)
		csv.POST("/validate", handler.ValidateCSV)
		csv.GET("/export", handler.ExportCSV)
	}

	reviews := admin.Group("/reviews")
	{
		reviews.GET("", handler.ListReviews)
		reviews.PATCH("/:id/status", handler.ModerateReview)
	}

	bookings := admin.Group("/bookings")
	{
		bookings.PATCH("/:id/status", handler.UpdateBookingStatus)
		bookings.DELETE("/:id", handler.CancelBooking)
	}
}

// CreateInterpreterRequest mirrors domain.Interpreter but lets the
// availability flag default to true when omitted.
type CreateInterpreterRequest struct {
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	Metro            string   `json:"metro"`
	Country          string   `json:"country"`
	ZipCode          string   `json:"zipCode"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	SourceLanguage   string   `json:"sourceLanguage"`
	TargetLanguage   string   `json:"targetLanguage"`
	Specialties      []string `json:"specialties"`
	Certifications   string   `json:"certifications"`
	YearsExperience  int      `json:"yearsExperience"`
	HourlyRate       float64  `json:"hourlyRate"`
	ProficiencyLevel string   `json:"proficiencyLevel"`
	IsAvailable      *bool    `json:"isAvailable"`
	IsVetted         bool     `json:"isVetted"`
	ApprovalStatus   string   `json:"approvalStatus"`
}

func (r *CreateInterpreterRequest) toDomain() *domain.Interpreter {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return &domain.Interpreter{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Email:            r.Email,
		Phone:            r.Phone,
		City:             r.City,
		State:            r.State,
		Metro:            r.Metro,
		Country:          r.Country,
		ZipCode:          r.ZipCode,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		SourceLanguage:   r.SourceLanguage,
		TargetLanguage:   r.TargetLanguage,
		Specialties:      r.Specialties,
		Certifications:   r.Certifications,
		YearsExperience:  r.YearsExperience,
		HourlyRate:       r.HourlyRate,
		ProficiencyLevel: r.ProficiencyLevel,
		IsAvailable:      available,
		IsVetted:         r.IsVetted,
		ApprovalStatus:   r.ApprovalStatus,
	}
}

// Search is the admin variant: all approval statuses are visible and
// filterable.
func (h *AdminHandler) Search(c *gin.Context) {
	var filter domain.SearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.interpreterUC.Search(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Search results", result)
}

func (h *AdminHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid interpreter ID"))
		return
	}

	interp, err := h.interpreterUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interpreter", interp)
}

// Create godoc
// @Summary      Create an interpreter record
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        interpreter  body      CreateInterpreterRequest  true  "Interpreter JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /admin/interpreters [post]
// @Security     BearerAuth
func (h *AdminHandler) Create(c *gin.Context) {
	var req CreateInterpreterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	interp := req.toDomain()
	if err := h.interpreterUC.Create(c.Request.Context(), interp); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Interpreter created", interp)
}

func (h *AdminHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid interpreter ID"))
		return
	}

	var interp domain.Interpreter
	if err := c.ShouldBindJSON(&interp); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	interp.ID = id

	if err := h.interpreterUC.Update(c.Request.Context(), &interp); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interpreter updated", interp)
}

func (h *AdminHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid interpreter ID"))
		return
	}

	if err := h.interpreterUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interpreter deleted", nil)
}

type approvalRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}

func (h *AdminHandler) SetApproval(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid interpreter ID"))
		return
	}

	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Status must be pending, approved or rejected"))
		return
	}

	if err := h.interpreterUC.SetApprovalStatus(c.Request.Context(), id, req.Status); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Approval status updated", gin.H{"id": id, "status": req.Status})
}

// readCSVBody accepts either a raw text/csv body or a multipart form
// with a "file" field.
func readCSVBody(c *gin.Context) (string, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ImportCSV godoc
// @Summary      Import interpreters from CSV
// @Description  Row-at-a-time import with partial success; failed rows are reported per row
// @Tags         admin
// @Accept       mpfd
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /admin/csv/import [post]
// @Security     BearerAuth
func (h *AdminHandler) ImportCSV(c *gin.Context) {
	csvData, err := readCSVBody(c)
	if err != nil {
		c.Error(apperror.BadRequest("Could not read CSV upload"))
		return
	}

	result, err := h.csvUC.Import(c.Request.Context(), csvData)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Import finished", result)
}

func (h *AdminHandler) ValidateCSV(c *gin.Context) {
	csvData, err := readCSVBody(c)
	if err != nil {
		c.Error(apperror.BadRequest("Could not read CSV upload"))
		return
	}

	result, err := h.csvUC.Validate(c.Request.Context(), csvData)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Validation finished", result)
}

// ExportCSV streams the current directory as a CSV download. The same
// search filters as the admin search apply.
func (h *AdminHandler) ExportCSV(c *gin.Context) {
	var filter domain.SearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.csvUC.Export(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="interpreters.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(result.CSV))
}

func (h *AdminHandler) ListReviews(c *gin.Context) {
	status := c.DefaultQuery("status", domain.ReviewPending)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	reviews, total, err := h.reviewUC.ListForModeration(c.Request.Context(), status, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Reviews", gin.H{
		"reviews": reviews,
		"total":   total,
	})
}

type moderateRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

func (h *AdminHandler) ModerateReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid review ID"))
		return
	}

	var req moderateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Status must be approved or rejected"))
		return
	}

	review, err := h.reviewUC.Moderate(c.Request.Context(), id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Review moderated", review)
}

type bookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminHandler) UpdateBookingStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid booking ID"))
		return
	}

	var req bookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Status is required"))
		return
	}

	booking, err := h.bookingUC.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Booking updated", booking)
}

func (h *AdminHandler) CancelBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid booking ID"))
		return
	}

	if err := h.bookingUC.Cancel(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Booking cancelled", nil)
}
