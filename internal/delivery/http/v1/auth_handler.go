package v1

import (
	"net/http"

	"dayhub-backend/internal/delivery/http/response"
	"dayhub-backend/internal/domain"
	"dayhub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase, loginLimiter gin.HandlerFunc) {
	handler := &AuthHandler{authUC: authUC}

	authGroup := public.Group("/auth")
	{
		authGroup.POST("/interpreter/request-login", loginLimiter, handler.RequestLogin)
		authGroup.POST("/interpreter/verify", loginLimiter, handler.VerifyLogin)
		authGroup.POST("/admin/login", loginLimiter, handler.AdminLogin)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
		protectedAuth.POST("/logout", handler.Logout)
	}
}

type requestLoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RequestLogin godoc
// @Summary      Request a magic login link
// @Description  Emails a single-use login link. Always returns 200 so callers cannot probe which emails exist.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      requestLoginRequest  true  "Email"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /auth/interpreter/request-login [post]
func (h *AuthHandler) RequestLogin(c *gin.Context) {
	var req requestLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("A valid email address is required"))
		return
	}

	if err := h.authUC.RequestInterpreterLogin(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "If that email is registered, a login link has been sent", nil)
}

type verifyLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

// VerifyLogin godoc
// @Summary      Redeem a magic login link
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyLoginRequest  true  "Token from the emailed link"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/interpreter/verify [post]
func (h *AuthHandler) VerifyLogin(c *gin.Context) {
	var req verifyLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Token is required"))
		return
	}

	result, err := h.authUC.VerifyInterpreterLogin(c.Request.Context(), req.Token)
	if err != nil {
		c.Error(err)
		return
	}

	setSessionCookie(c, result.Token)
	response.Success(c, http.StatusOK, "Logged in", result)
}

type adminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Password is required"))
		return
	}

	token, err := h.authUC.AdminLogin(c.Request.Context(), req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	setSessionCookie(c, token)
	response.Success(c, http.StatusOK, "Logged in", gin.H{"token": token})
}

// Me returns the principal attached to the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	user := domain.SessionUser{
		Role:  c.GetString(string(domain.KeySessionRole)),
		Email: c.GetString(string(domain.KeySessionEmail)),
	}
	if id, ok := c.Request.Context().Value(domain.KeyInterpreterID).(int64); ok {
		user.InterpreterID = id
	}

	response.Success(c, http.StatusOK, "Current session", user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("auth_token", "", -1, "/", "", true, true)
	response.Success(c, http.StatusOK, "Logged out", nil)
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("auth_token", token, 24*60*60, "/", "", true, true)
}
