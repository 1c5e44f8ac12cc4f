package v1

import (
	"net/http"
	"strconv"

	"dayhub-backend/internal/delivery/http/response"
	"dayhub-backend/internal/domain"
	"dayhub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SavedSearchHandler struct {
	savedSearchUC domain.SavedSearchUsecase
}

func NewSavedSearchHandler(public *gin.RouterGroup, savedSearchUC domain.SavedSearchUsecase) {
	handler := &SavedSearchHandler{savedSearchUC: savedSearchUC}

	searches := public.Group("/saved-searches")
	{
		searches.POST("", handler.Create)
		searches.GET("", handler.List)
		searches.DELETE("/:id", handler.Delete)
	}

	favorites := public.Group("/favorites")
	{
		favorites.POST("", handler.AddFavorite)
		favorites.GET("", handler.ListFavorites)
		favorites.DELETE("/:interpreterId", handler.RemoveFavorite)
	}
}

func (h *SavedSearchHandler) Create(c *gin.Context) {
	var search domain.SavedSearch
	if err := c.ShouldBindJSON(&search); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.savedSearchUC.Create(c.Request.Context(), &search); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Search saved", search)
}

func (h *SavedSearchHandler) List(c *gin.Context) {
	searches, err := h.savedSearchUC.List(c.Request.Context(), c.Query("email"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Saved searches", searches)
}

func (h *SavedSearchHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid saved search ID"))
		return
	}

	email := c.Query("email")
	if email == "" {
		c.Error(apperror.BadRequest("Email query parameter is required"))
		return
	}

	if err := h.savedSearchUC.Delete(c.Request.Context(), id, email); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Saved search deleted", nil)
}

func (h *SavedSearchHandler) AddFavorite(c *gin.Context) {
	var fav domain.Favorite
	if err := c.ShouldBindJSON(&fav); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.savedSearchUC.AddFavorite(c.Request.Context(), &fav); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Favorite added", fav)
}

func (h *SavedSearchHandler) ListFavorites(c *gin.Context) {
	interpreters, err := h.savedSearchUC.ListFavorites(c.Request.Context(), c.Query("email"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Favorites", interpreters)
}

func (h *SavedSearchHandler) RemoveFavorite(c *gin.Context) {
	interpreterID, err := strconv.ParseInt(c.Param("interpreterId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid interpreter ID"))
		return
	}

	email := c.Query("email")
	if email == "" {
		c.Error(apperror.BadRequest("Email query parameter is required"))
		return
	}

	if err := h.savedSearchUC.RemoveFavorite(c.Request.Context(), email, interpreterID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Favorite removed", nil)
}
