package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookhaven/bookstore-api/internal/api/metrics"
	"github.com/bookhaven/bookstore-api/internal/core/ports"
)

// CartHandler handles the per-user cart endpoints. All routes are mounted
// behind RequireSignIn.
type CartHandler struct {
	cart ports.CartService
}

func NewCartHandler(cart ports.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

// List returns the caller's cart.
//
// @Summary      View cart
// @Tags         cart
// @Produce      json
// @Success      200  {array}   domain.Book
// @Failure      401  {object}  errorResponse
// @Router       /cart/json [get]
func (h *CartHandler) List(c echo.Context) error {
	books, err := h.cart.List(c.Request().Context(), callerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

// Add appends a book snapshot to the caller's cart.
//
// @Summary      Add to cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      bookIDRequest  true  "Book id"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Router       /cart/add [post]
func (h *CartHandler) Add(c echo.Context) error {
	var req bookIDRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.cart.Add(c.Request().Context(), callerID(c), req.ID); err != nil {
		return err
	}

	metrics.CartOpsTotal.WithLabelValues("add").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "book added to cart"})
}

// Remove deletes the first matching entry from the caller's cart.
//
// @Summary      Remove from cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      bookIDRequest  true  "Book id"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Router       /cart/remove [post]
func (h *CartHandler) Remove(c echo.Context) error {
	var req bookIDRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.cart.Remove(c.Request().Context(), callerID(c), req.ID); err != nil {
		return err
	}

	metrics.CartOpsTotal.WithLabelValues("remove").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "successfully removed"})
}

// Clear empties the caller's cart.
//
// @Summary      Clear cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /cart/clear [post]
func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.cart.Clear(c.Request().Context(), callerID(c)); err != nil {
		return err
	}

	metrics.CartOpsTotal.WithLabelValues("clear").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "cart cleared"})
}
