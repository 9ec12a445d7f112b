package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bookhaven/bookstore-api/internal/api/metrics"
	"github.com/bookhaven/bookstore-api/internal/core/ports"
)

// BookHandler handles catalog endpoints.
type BookHandler struct {
	catalog ports.CatalogService
}

func NewBookHandler(catalog ports.CatalogService) *BookHandler {
	return &BookHandler{catalog: catalog}
}

// List returns the full catalog.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Success      200  {array}  domain.Book
// @Router       /books/json [get]
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.catalog.ListBooks(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

// Create adds a book with its cover image (admin only). The multipart form
// carries title, rating, price and the cover under the "file" field.
//
// @Summary      Create a book
// @Tags         books
// @Accept       mpfd
// @Produce      json
// @Param        title   formData  string  true  "Title"
// @Param        rating  formData  number  true  "Rating"
// @Param        price   formData  number  true  "Price"
// @Param        file    formData  file    true  "Cover image"
// @Success      201  {object}  domain.Book
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /books/create [post]
func (h *BookHandler) Create(c echo.Context) error {
	title := c.FormValue("title")
	rating, err := strconv.ParseFloat(c.FormValue("rating"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "rating must be a number")
	}
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "price must be a number")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cover image is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cover image is unreadable")
	}
	defer file.Close()

	book, err := h.catalog.CreateBook(c.Request().Context(), ports.CreateBookInput{
		Title:    title,
		Rating:   rating,
		Price:    price,
		Cover:    file,
		CoverExt: coverExt(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return err
	}

	metrics.BooksCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, book)
}

// Delete removes a book and its stored cover file (admin only).
//
// @Summary      Delete a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        body  body      bookIDRequest  true  "Book id"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Router       /delete_book [post]
func (h *BookHandler) Delete(c echo.Context) error {
	var req bookIDRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.catalog.DeleteBook(c.Request().Context(), req.ID); err != nil {
		return err
	}

	metrics.BooksDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "book deleted successfully"})
}

// coverExt derives a file extension from the upload's media type,
// e.g. "image/png" -> "png".
func coverExt(contentType string) string {
	if i := strings.Index(contentType, "/"); i >= 0 {
		return contentType[i+1:]
	}
	return contentType
}
