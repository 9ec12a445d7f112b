package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookhaven/bookstore-api/internal/api/metrics"
	"github.com/bookhaven/bookstore-api/internal/core/ports"
)

// AuthHandler handles account and session endpoints.
type AuthHandler struct {
	authService  ports.AuthService
	secureCookie bool
}

func NewAuthHandler(authService ports.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// Signup creates a new user account.
//
// @Summary      Create an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Password:  req.Password,
	}); err != nil {
		return err
	}

	metrics.SignupsTotal.Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "new user successfully created"})
}

// Signin authenticates a user and sets the token cookie.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  signinResponse
// @Failure      401   {object}  errorResponse
// @Router       /signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, _, err := h.authService.Signin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.SigninsTotal.WithLabelValues("failed").Inc()
		return err
	}

	c.SetCookie(h.tokenCookie(token, time.Now().Add(h.authService.TokenTTL())))
	metrics.SigninsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, signinResponse{Message: "sign in successfully", Token: token})
}

// Logout revokes the presented token and clears the cookie. A no-op for
// anonymous callers.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if callerID(c) == "" {
		return c.JSON(http.StatusOK, messageResponse{Message: "no user signed in"})
	}

	jti, exp := tokenClaims(c)
	if err := h.authService.Signout(c.Request().Context(), jti, exp); err != nil {
		return err
	}

	c.SetCookie(h.tokenCookie("", time.Unix(0, 0)))
	return c.JSON(http.StatusOK, messageResponse{Message: "signed out successfully"})
}

// CurrentUser returns the caller's identity, or an anonymous marker.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.User
// @Router       /user [get]
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	userID := callerID(c)
	if userID == "" {
		return c.JSON(http.StatusOK, anonymousResponse{Anonymous: true})
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// tokenCookie builds the signed-token cookie: HTTP-only, secure, and
// cross-site so the separately hosted UI can send it.
func (h *AuthHandler) tokenCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteNoneMode,
	}
}
