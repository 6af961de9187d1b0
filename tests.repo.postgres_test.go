package main

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startPostgresDockerContainer(t *testing.T) (*PostgresConfig, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("Failed to start Dockertest: %+v", err)
	}

	err = pool.Client.Ping()
	if err != nil {
		t.Fatalf("Could not connect to Docker: %+v", err)
	}

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_USER=postgres",
		"POSTGRES_PASSWORD=postgres",
		"POSTGRES_DB=book_management",
	})
	if err != nil {
		t.Fatalf("Failed to start postgres: %+v", err)
	}

	config := &PostgresConfig{
		Driver:         DriverPgx,
		Host:           "localhost",
		Port:           resource.GetPort("5432/tcp"),
		User:           "postgres",
		Password:       "postgres",
		Name:           "book_management",
		SSLMode:        "disable",
		MaxConns:       5,
		ConnectTimeout: 5 * time.Second,
	}

	// ensure to wait for the container to be ready
	err = pool.Retry(func() error {
		p, e := pgxpool.New(context.Background(), config.DSN())
		if e != nil {
			return e
		}
		defer p.Close()
		return p.Ping(context.Background())
	})

	if err != nil {
		t.Fatalf("Failed to ping Postgres: %+v", err)
	}

	destroyFunc := func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Failed to purge resource: %+v", err)
		}
	}

	return config, destroyFunc
}

func yearPtr(y int) *int {
	return &y
}

func strPtr(s string) *string {
	return &s
}

// exerciseBookStorage runs the crud scenario against any storage implementation.
//
//nolint:funlen
func exerciseBookStorage(t *testing.T, bs BookStorage) {
	t.Helper()

	input := BookInput{
		Title:         "Dune",
		Author:        "Frank Herbert",
		PublishedYear: yearPtr(1965),
		Genre:         "Science Fiction",
	}
	var created Book

	t.Run("Create Book", func(t *testing.T) {
		// ensures we can insert a new book record and get back its id.
		var err error
		created, err = bs.Create(context.Background(), input)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Dune", created.Title)
		assert.Equal(t, "Frank Herbert", created.Author)
		assert.Equal(t, 1965, created.PublishedYear)
		assert.Equal(t, "Science Fiction", created.Genre)
		assert.Nil(t, created.Description)
	})

	t.Run("Get Existent Book", func(t *testing.T) {
		book, err := bs.GetOne(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, book)
	})

	t.Run("Get NonExistent Book", func(t *testing.T) {
		book, err := bs.GetOne(context.Background(), 999999)
		assert.Equal(t, ErrBookNotFound, err)
		assert.Equal(t, Book{}, book)
	})

	t.Run("Update Existent Book", func(t *testing.T) {
		// ensures update overwrites every column including the description.
		updated, err := bs.Update(context.Background(), created.ID, BookInput{
			Title:         "Dune Messiah",
			Author:        "Frank Herbert",
			PublishedYear: yearPtr(1969),
			Genre:         "Science Fiction",
			Description:   strPtr("Sequel to Dune"),
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Dune Messiah", updated.Title)
		assert.Equal(t, 1969, updated.PublishedYear)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "Sequel to Dune", *updated.Description)

		book, err := bs.GetOne(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, book)
	})

	t.Run("Update Clears Description", func(t *testing.T) {
		updated, err := bs.Update(context.Background(), created.ID, input)
		require.NoError(t, err)
		assert.Nil(t, updated.Description)
	})

	t.Run("Update NonExistent Book", func(t *testing.T) {
		book, err := bs.Update(context.Background(), 999999, input)
		assert.Equal(t, ErrBookNotFound, err)
		assert.Equal(t, Book{}, book)
	})

	t.Run("Get All Books", func(t *testing.T) {
		// ensures listing returns records sorted by ascending id.
		second, err := bs.Create(context.Background(), BookInput{
			Title:         "Hyperion",
			Author:        "Dan Simmons",
			PublishedYear: yearPtr(1989),
			Genre:         "Science Fiction",
		})
		require.NoError(t, err)
		books, err := bs.GetAll(context.Background())
		require.NoError(t, err)
		require.Equal(t, 2, len(books))
		assert.Equal(t, created.ID, books[0].ID)
		assert.Equal(t, second.ID, books[1].ID)
	})

	t.Run("Delete Existent Book", func(t *testing.T) {
		err := bs.Delete(context.Background(), created.ID)
		require.NoError(t, err)
		book, err := bs.GetOne(context.Background(), created.ID)
		assert.Equal(t, ErrBookNotFound, err)
		assert.Equal(t, Book{}, book)
	})

	t.Run("Delete NonExistent Book", func(t *testing.T) {
		err := bs.Delete(context.Background(), created.ID)
		assert.Equal(t, ErrBookNotFound, err)
	})
}

func TestPostgresStore(t *testing.T) {
	config, destroyFunc := startPostgresDockerContainer(t)
	defer destroyFunc()

	pool, err := GetPostgresPool(context.Background(), config)
	require.NoError(t, err)
	defer pool.Close()

	exerciseBookStorage(t, NewPostgresBookStorage(zap.NewNop(), pool))
}

func TestSQLXStore(t *testing.T) {
	config, destroyFunc := startPostgresDockerContainer(t)
	defer destroyFunc()
	config.Driver = DriverSQLX

	db, err := GetSQLXClient(config)
	require.NoError(t, err)
	defer db.Close()

	exerciseBookStorage(t, NewSQLXBookStorage(zap.NewNop(), db))
}

func TestSetupBookStorage_UnknownDriver(t *testing.T) {
	config := &Config{}
	config.Database.Driver = "mongo"
	_, _, err := SetupBookStorage(context.Background(), zap.NewNop(), config)
	require.Error(t, err)
	assert.Equal(t, fmt.Sprintf("unknown database driver: %s", config.Database.Driver), err.Error())
}
