package main

import "context"

// Book represents a persisted book entity. The ID is assigned once by
// the storage backend at creation time and never mutated afterwards.
// A nil Description marks a book without description and serializes
// to a json null value.
type Book struct {
	ID            int64   `json:"id" db:"id"`
	Title         string  `json:"title" db:"title"`
	Author        string  `json:"author" db:"author"`
	PublishedYear int     `json:"published_year" db:"published_year"`
	Genre         string  `json:"genre" db:"genre"`
	Description   *string `json:"description" db:"description"`
}

// BookInput carries the client supplied fields of a book. The published
// year is a pointer so a missing field can be told apart from year zero.
type BookInput struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	PublishedYear *int    `json:"published_year"`
	Genre         string  `json:"genre"`
	Description   *string `json:"description"`
}

// BookStorage defines possible operations on the books table.
type BookStorage interface {
	Create(ctx context.Context, input BookInput) (Book, error)
	GetOne(ctx context.Context, id int64) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
	Update(ctx context.Context, id int64, input BookInput) (Book, error)
	Delete(ctx context.Context, id int64) error
}
