package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookhaven/bookstore-api/internal/api/metrics"
	"github.com/bookhaven/bookstore-api/internal/core/ports"
)

// PurchaseHandler handles the purchase and download endpoints. All routes
// are mounted behind RequireSignIn.
type PurchaseHandler struct {
	purchases ports.PurchaseService
}

func NewPurchaseHandler(purchases ports.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

// Purchase merges the caller's cart into their purchased set and clears
// the cart.
//
// @Summary      Purchase cart contents
// @Tags         purchase
// @Produce      json
// @Success      200  {object}  purchaseResponse
// @Failure      401  {object}  errorResponse
// @Router       /purchase [post]
func (h *PurchaseHandler) Purchase(c echo.Context) error {
	added, err := h.purchases.Purchase(c.Request().Context(), callerID(c))
	if err != nil {
		return err
	}

	metrics.PurchasesTotal.Inc()
	metrics.PurchasedBooksTotal.Add(float64(added))
	return c.JSON(http.StatusOK, purchaseResponse{Message: "books successfully purchased", Added: added})
}

// Download streams the content of a purchased book.
//
// @Summary      Download a purchased book
// @Tags         purchase
// @Accept       json
// @Produce      octet-stream
// @Param        body  body  bookIDRequest  true  "Book id"
// @Success      200
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /book/view [post]
func (h *PurchaseHandler) Download(c echo.Context) error {
	var req bookIDRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	path, err := h.purchases.ContentPath(c.Request().Context(), callerID(c), req.ID)
	if err != nil {
		metrics.DownloadsTotal.WithLabelValues("denied").Inc()
		return err
	}

	metrics.DownloadsTotal.WithLabelValues("ok").Inc()
	return c.Attachment(path, req.ID+".pdf")
}
