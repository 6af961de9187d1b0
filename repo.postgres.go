package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const BooksTable string = "books"

// Schema creation is idempotent and runs once at startup.
const createBooksTableSQL = `
CREATE TABLE IF NOT EXISTS books (
	id BIGSERIAL PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	author VARCHAR(255) NOT NULL,
	published_year INTEGER NOT NULL,
	genre VARCHAR(100) NOT NULL,
	description VARCHAR(500)
)`

var booksDialect = goqu.Dialect("postgres")

type postgresBookStorage struct {
	logger *zap.Logger
	pool   *pgxpool.Pool
}

// NewPostgresBookStorage provides an instance of pgx-based book storage.
func NewPostgresBookStorage(logger *zap.Logger, pool *pgxpool.Pool) BookStorage {
	return &postgresBookStorage{
		logger: logger,
		pool:   pool,
	}
}

// GetPostgresPool provides a ready to use pgx connection pool. It pings
// the server and creates the books table if it does not exist yet.
func GetPostgresPool(ctx context.Context, config *PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(config.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database settings: %v", err)
	}
	if config.MaxConns > 0 {
		poolConfig.MaxConns = config.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create the connection pool: %v", err)
	}

	// test connection.
	pingCtx, cancel := context.WithTimeout(ctx, config.ConnectTimeout)
	defer cancel()
	if err = pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("test connection failed: %v", err)
	}

	if _, err = pool.Exec(ctx, createBooksTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to set up books table: %v", err)
	}
	return pool, nil
}

// bookColumns lists the books table columns in scan order.
func bookColumns() []interface{} {
	return []interface{}{"id", "title", "author", "published_year", "genre", "description"}
}

// bookRecord maps client supplied book fields to their write statement parameters.
func bookRecord(input BookInput) goqu.Record {
	return goqu.Record{
		"title":          input.Title,
		"author":         input.Author,
		"published_year": input.PublishedYear,
		"genre":          input.Genre,
		"description":    input.Description,
	}
}

// scanBook maps one row of the books table back to its entity.
func scanBook(row pgx.Row) (Book, error) {
	var book Book
	err := row.Scan(&book.ID, &book.Title, &book.Author, &book.PublishedYear, &book.Genre, &book.Description)
	return book, err
}

// Create inserts a new book record and returns it with its assigned id.
func (ps *postgresBookStorage) Create(ctx context.Context, input BookInput) (Book, error) {
	query, args, err := booksDialect.Insert(BooksTable).Prepared(true).
		Rows(bookRecord(input)).
		Returning(bookColumns()...).ToSQL()
	if err != nil {
		return Book{}, err
	}

	conn, err := ps.pool.Acquire(ctx)
	if err != nil {
		return Book{}, err
	}
	defer conn.Release()

	return scanBook(conn.QueryRow(ctx, query, args...))
}

// GetOne retrieves a book record based on its ID.
func (ps *postgresBookStorage) GetOne(ctx context.Context, id int64) (Book, error) {
	query, args, err := booksDialect.From(BooksTable).Prepared(true).
		Select(bookColumns()...).
		Where(goqu.C("id").Eq(id)).ToSQL()
	if err != nil {
		return Book{}, err
	}

	conn, err := ps.pool.Acquire(ctx)
	if err != nil {
		return Book{}, err
	}
	defer conn.Release()

	book, err := scanBook(conn.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Book{}, ErrBookNotFound
	}
	return book, err
}

// GetAll retrieves all books ordered by their ids.
func (ps *postgresBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	query, args, err := booksDialect.From(BooksTable).Prepared(true).
		Select(bookColumns()...).
		Order(goqu.C("id").Asc()).ToSQL()
	if err != nil {
		return nil, err
	}

	conn, err := ps.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		book, serr := scanBook(rows)
		if serr != nil {
			return nil, serr
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

// Update overwrites all mutable fields of an existing book record.
func (ps *postgresBookStorage) Update(ctx context.Context, id int64, input BookInput) (Book, error) {
	query, args, err := booksDialect.Update(BooksTable).Prepared(true).
		Set(bookRecord(input)).
		Where(goqu.C("id").Eq(id)).
		Returning(bookColumns()...).ToSQL()
	if err != nil {
		return Book{}, err
	}

	conn, err := ps.pool.Acquire(ctx)
	if err != nil {
		return Book{}, err
	}
	defer conn.Release()

	book, err := scanBook(conn.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Book{}, ErrBookNotFound
	}
	return book, err
}

// Delete removes a book record based on its ID.
func (ps *postgresBookStorage) Delete(ctx context.Context, id int64) error {
	query, args, err := booksDialect.Delete(BooksTable).Prepared(true).
		Where(goqu.C("id").Eq(id)).ToSQL()
	if err != nil {
		return err
	}

	conn, err := ps.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBookNotFound
	}
	return nil
}
