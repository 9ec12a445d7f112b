package domain

import "time"

// Book is a catalog entry. Cover is a path relative to the public
// directory (e.g. "img/bookcovers/1700000000.png").
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Rating    float64   `json:"rating"`
	Price     float64   `json:"price"`
	Cover     string    `json:"bookCover"`
	CreatedAt time.Time `json:"created_at"`
}
