package v1

import (
	"net/http"
	"strconv"

	"dayhub-backend/internal/delivery/http/response"
	"dayhub-backend/internal/domain"
	"dayhub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewUC domain.ReviewUsecase
}

func NewReviewHandler(public *gin.RouterGroup, reviewUC domain.ReviewUsecase) {
	handler := &ReviewHandler{reviewUC: reviewUC}

	public.GET("/interpreters/:id/reviews", handler.ListApproved)
	public.POST("/interpreters/:id/reviews", handler.Submit)
}

type submitReviewRequest struct {
	ReviewerName string `json:"reviewerName" binding:"required,max=256"`
	Rating       int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment      string `json:"comment" binding:"max=2000"`
}

// Submit godoc
// @Summary      Submit a review
// @Description  Reviews start as pending and appear publicly only after moderation
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Interpreter ID"
// @Param        body  body      submitReviewRequest  true  "Review"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interpreters/{id}/reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid interpreter ID"))
		return
	}

	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	review := &domain.Review{
		InterpreterID: id,
		ReviewerName:  req.ReviewerName,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}

	if err := h.reviewUC.Submit(c.Request.Context(), review); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Review submitted for moderation", review)
}

func (h *ReviewHandler) ListApproved(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid interpreter ID"))
		return
	}

	reviews, err := h.reviewUC.ListApproved(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Reviews", reviews)
}
