package v1

import (
	"net/http"
	"strconv"

	"dayhub-backend/config"
	"dayhub-backend/internal/delivery/http/response"
	"dayhub-backend/internal/domain"
	"dayhub-backend/pkg/apperror"
	"dayhub-backend/pkg/geo"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

type InterpreterHandler struct {
	interpreterUC domain.InterpreterUsecase
	geocoder      geo.Geocoder
	frontendURL   string
}

func NewInterpreterHandler(public *gin.RouterGroup, interpreterUC domain.InterpreterUsecase, geocoder geo.Geocoder, cfg *config.Config) {
	handler := &InterpreterHandler{
		interpreterUC: interpreterUC,
		geocoder:      geocoder,
		frontendURL:   cfg.FrontendURL,
	}

	interpreters := public.Group("/interpreters")
	{
		interpreters.GET("/search", handler.Search)
		interpreters.GET("/:id", handler.Get)
		interpreters.GET("/:id/qr", handler.QRCode)
	}

	public.GET("/languages", handler.Languages)
	public.GET("/metros", handler.Metros)
	public.GET("/states", handler.States)
	public.GET("/stats", handler.Stats)
	public.GET("/geocode", handler.Geocode)
}

// Search godoc
// @Summary      Search interpreters
// @Description  Filtered, paginated search over approved interpreters
// @Tags         interpreters
// @Produce      json
// @Param        query           query  string  false  "Free-text match over name, email and phone"
// @Param        targetLanguage  query  string  false  "Exact target language"
// @Param        zipCode         query  string  false  "Origin ZIP for radius filter and distance sort"
// @Param        radius          query  number  false  "Radius in miles around the origin ZIP"
// @Param        sortBy          query  string  false  "name, rating or distance"
// @Param        limit           query  int     false  "Page size (max 100)"
// @Param        offset          query  int     false  "Page offset"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /interpreters/search [get]
func (h *InterpreterHandler) Search(c *gin.Context) {
	var filter domain.SearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	// The public surface only ever sees approved records
	filter.ApprovedOnly = true
	filter.ApprovalStatus = ""

	result, err := h.interpreterUC.Search(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Search results", result)
}

// Get godoc
// @Summary      Get an interpreter profile
// @Tags         interpreters
// @Produce      json
// @Param        id   path      int  true  "Interpreter ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interpreters/{id} [get]
func (h *InterpreterHandler) Get(c *gin.Context) {
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
	if interp.ApprovalStatus != domain.ApprovalApproved {
		c.Error(apperror.NotFound("Interpreter not found"))
		return
	}

	response.Success(c, http.StatusOK, "Interpreter profile", interp)
}

// QRCode godoc
// @Summary      Profile QR code
// @Description  PNG QR code linking to the public profile page
// @Tags         interpreters
// @Produce      png
// @Param        id   path  int  true  "Interpreter ID"
// @Success      200  {file}    file
// @Failure      404  {object}  response.Response
// @Router       /interpreters/{id}/qr [get]
func (h *InterpreterHandler) QRCode(c *gin.Context) {
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
	if interp.ApprovalStatus != domain.ApprovalApproved {
		c.Error(apperror.NotFound("Interpreter not found"))
		return
	}

	profileURL := h.frontendURL + "/profile/" + strconv.FormatInt(id, 10)
	png, err := qrcode.Encode(profileURL, qrcode.Medium, 256)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", png)
}

func (h *InterpreterHandler) Languages(c *gin.Context) {
	languages, err := h.interpreterUC.Languages(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Languages", languages)
}

func (h *InterpreterHandler) Metros(c *gin.Context) {
	metros, err := h.interpreterUC.Metros(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Metro areas", metros)
}

func (h *InterpreterHandler) States(c *gin.Context) {
	states, err := h.interpreterUC.States(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "States", states)
}

// Stats godoc
// @Summary      Directory statistics
// @Tags         interpreters
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /stats [get]
func (h *InterpreterHandler) Stats(c *gin.Context) {
	stats, err := h.interpreterUC.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Directory stats", stats)
}

// Geocode godoc
// @Summary      Resolve a ZIP code to coordinates
// @Tags         interpreters
// @Produce      json
// @Param        zip  query     string  true  "5-digit US ZIP code"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /geocode [get]
func (h *InterpreterHandler) Geocode(c *gin.Context) {
	zip := c.Query("zip")
	if !geo.ValidZip(zip) {
		c.Error(apperror.BadRequest("ZIP code must be 5 digits"))
		return
	}

	coords, err := h.geocoder.Geocode(c.Request.Context(), zip)
	if err != nil {
		c.Error(apperror.NotFound("ZIP code could not be resolved"))
		return
	}

	response.Success(c, http.StatusOK, "Coordinates", coords)
}
