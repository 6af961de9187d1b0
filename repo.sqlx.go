package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver import
	"go.uber.org/zap"
)

const (
	sqlInsertBook = `INSERT INTO books (title, author, published_year, genre, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, author, published_year, genre, description`

	sqlSelectOneBook = `SELECT id, title, author, published_year, genre, description
		FROM books WHERE id = $1`

	sqlSelectAllBooks = `SELECT id, title, author, published_year, genre, description
		FROM books ORDER BY id`

	sqlUpdateBook = `UPDATE books SET title = $1, author = $2, published_year = $3, genre = $4, description = $5
		WHERE id = $6
		RETURNING id, title, author, published_year, genre, description`

	sqlDeleteBook = `DELETE FROM books WHERE id = $1`
)

type sqlxBookStorage struct {
	logger *zap.Logger
	db     *sqlx.DB
}

// NewSQLXBookStorage provides an instance of sqlx-based book storage.
func NewSQLXBookStorage(logger *zap.Logger, db *sqlx.DB) BookStorage {
	return &sqlxBookStorage{
		logger: logger,
		db:     db,
	}
}

// GetSQLXClient provides a ready to use sqlx database handle. Connect
// pings the server, then the books table is created if missing.
func GetSQLXClient(config *PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", config.DSN())
	if err != nil {
		return nil, fmt.Errorf("test connection failed: %v", err)
	}
	if config.MaxConns > 0 {
		db.SetMaxOpenConns(int(config.MaxConns))
	}
	if _, err = db.Exec(createBooksTableSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set up books table: %v", err)
	}
	return db, nil
}

// Create inserts a new book record and returns it with its assigned id.
func (ss *sqlxBookStorage) Create(ctx context.Context, input BookInput) (Book, error) {
	conn, err := ss.db.Connx(ctx)
	if err != nil {
		return Book{}, err
	}
	defer conn.Close()

	var book Book
	err = conn.QueryRowxContext(ctx, sqlInsertBook,
		input.Title, input.Author, input.PublishedYear, input.Genre, input.Description).StructScan(&book)
	return book, err
}

// GetOne retrieves a book record based on its ID.
func (ss *sqlxBookStorage) GetOne(ctx context.Context, id int64) (Book, error) {
	conn, err := ss.db.Connx(ctx)
	if err != nil {
		return Book{}, err
	}
	defer conn.Close()

	var book Book
	err = conn.GetContext(ctx, &book, sqlSelectOneBook, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, ErrBookNotFound
	}
	return book, err
}

// GetAll retrieves all books ordered by their ids.
func (ss *sqlxBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	conn, err := ss.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	books := []Book{}
	err = conn.SelectContext(ctx, &books, sqlSelectAllBooks)
	return books, err
}

// Update overwrites all mutable fields of an existing book record.
func (ss *sqlxBookStorage) Update(ctx context.Context, id int64, input BookInput) (Book, error) {
	conn, err := ss.db.Connx(ctx)
	if err != nil {
		return Book{}, err
	}
	defer conn.Close()

	var book Book
	err = conn.QueryRowxContext(ctx, sqlUpdateBook,
		input.Title, input.Author, input.PublishedYear, input.Genre, input.Description, id).StructScan(&book)
	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, ErrBookNotFound
	}
	return book, err
}

// Delete removes a book record based on its ID.
func (ss *sqlxBookStorage) Delete(ctx context.Context, id int64) error {
	conn, err := ss.db.Connx(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, sqlDeleteBook, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBookNotFound
	}
	return nil
}
