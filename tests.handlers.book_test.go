package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// TestStatusHandler ensures api handler can provides its status.
func TestStatusHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	clock := NewMockClocker()
	api := NewAPIHandler(zap.NewNop(), nil, &Statistics{started: clock.Now()}, clock, NewMockUIDHandler("xx"), nil)
	api.Status(w, req, httprouter.Params{})
	res := w.Result()
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))
	m := make(map[string]interface{})
	err = json.Unmarshal(data, &m)
	assert.NoError(t, err)

	_, ok := m["requestid"]
	assert.True(t, ok)

	v, ok := m["status"]
	assert.True(t, ok)
	assert.Equal(t, "up & running since 0 mins", v)

	v, ok = m["message"]
	assert.True(t, ok)
	assert.Equal(t, v, "Hello. Books management api is available. Enjoy :)")
}

func newTestAPIHandler(t *testing.T, repo *MockBookStorage) *APIHandler {
	t.Helper()
	bs := NewBookService(zap.NewNop(), nil, repo)
	return NewAPIHandler(zap.NewNop(), nil, &Statistics{started: time.Now()}, NewMockClocker(), NewMockUIDHandler("xx"), bs)
}

// TestCreateBookHandler ensures api handler can create a book.
//
//nolint:funlen
func TestCreateBookHandler(t *testing.T) {
	mockRepo := &MockBookStorage{
		CreateFunc: func(ctx context.Context, input BookInput) (Book, error) {
			return Book{
				ID:            1,
				Title:         input.Title,
				Author:        input.Author,
				PublishedYear: *input.PublishedYear,
				Genre:         input.Genre,
				Description:   input.Description,
			}, nil
		},
	}
	api := newTestAPIHandler(t, mockRepo)

	t.Run("should pass: valid payload without description", func(t *testing.T) {
		payload := `{"title":"Dune", "author":"Frank Herbert", "published_year":1965, "genre":"Science Fiction"}`
		req := httptest.NewRequest(http.MethodPost, "/books", bytes.NewBufferString(payload))
		w := httptest.NewRecorder()
		api.CreateBook(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))
		expected := `{"id":1, "title":"Dune", "author":"Frank Herbert", "published_year":1965, "genre":"Science Fiction", "description":null}`
		assert.JSONEq(t, expected, string(data))
	})

	t.Run("should pass: valid payload with description", func(t *testing.T) {
		payload := `{"title":"Dune", "author":"Frank Herbert", "published_year":1965, "genre":"Science Fiction", "description":"Desert planet epic"}`
		req := httptest.NewRequest(http.MethodPost, "/books", bytes.NewBufferString(payload))
		w := httptest.NewRecorder()
		api.CreateBook(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		expected := `{"id":1, "title":"Dune", "author":"Frank Herbert", "published_year":1965, "genre":"Science Fiction", "description":"Desert planet epic"}`
		assert.JSONEq(t, expected, string(data))
	})

	t.Run("should fail: storage insertion failure", func(t *testing.T) {
		failRepo := &MockBookStorage{
			CreateFunc: func(ctx context.Context, input BookInput) (Book, error) {
				return Book{}, errors.New("storage failure")
			},
		}
		api := newTestAPIHandler(t, failRepo)
		payload := `{"title":"Dune", "author":"Frank Herbert", "published_year":1965, "genre":"Science Fiction"}`
		req := httptest.NewRequest(http.MethodPost, "/books", bytes.NewBufferString(payload))
		w := httptest.NewRecorder()
		api.CreateBook(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.JSONEq(t, `{"detail":"failed to create the book"}`, string(data))
	})

	t.Run("should fail: malformed payload", func(t *testing.T) {
		payload := `{"title":"Dune", "author":"Frank Herbert", "published_year":"not-a-year", "genre":"Science Fiction"}`
		req := httptest.NewRequest(http.MethodPost, "/books", bytes.NewBufferString(payload))
		w := httptest.NewRecorder()
		api.CreateBook(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
		assert.JSONEq(t, `{"detail":"invalid book payload"}`, string(data))
	})

	t.Run("should fail: required field in payload", func(t *testing.T) {
		testCases := []struct {
			name     string
			payload  string
			expected string
		}{
			{
				name:     "empty title",
				payload:  `{"title":"", "author":"Frank Herbert", "published_year":1965, "genre":"Science Fiction"}`,
				expected: `{"detail":"title is required"}`,
			},
			{
				name:     "missing title",
				payload:  `{"author":"Frank Herbert", "published_year":1965, "genre":"Science Fiction"}`,
				expected: `{"detail":"title is required"}`,
			},
			{
				name:     "missing author",
				payload:  `{"title":"Dune", "published_year":1965, "genre":"Science Fiction"}`,
				expected: `{"detail":"author is required"}`,
			},
			{
				name:     "missing published year",
				payload:  `{"title":"Dune", "author":"Frank Herbert", "genre":"Science Fiction"}`,
				expected: `{"detail":"published_year is required"}`,
			},
			{
				name:     "missing genre",
				payload:  `{"title":"Dune", "author":"Frank Herbert", "published_year":1965}`,
				expected: `{"detail":"genre is required"}`,
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				req := httptest.NewRequest(http.MethodPost, "/books", bytes.NewBufferString(tc.payload))
				w := httptest.NewRecorder()
				api.CreateBook(w, req, httprouter.Params{})
				res := w.Result()
				defer res.Body.Close()
				assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
				assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))
				data, err := io.ReadAll(res.Body)
				assert.NoError(t, err)
				assert.JSONEq(t, tc.expected, string(data))
			})
		}
	})
}

// TestGetAllBooksHandler ensures api handler can list the catalog.
func TestGetAllBooksHandler(t *testing.T) {
	t.Run("should pass: empty catalog", func(t *testing.T) {
		mockRepo := &MockBookStorage{
			GetAllFunc: func(ctx context.Context) ([]Book, error) {
				return []Book{}, nil
			},
		}
		api := newTestAPIHandler(t, mockRepo)
		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		w := httptest.NewRecorder()
		api.GetAllBooks(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.JSONEq(t, `[]`, string(data))
	})

	t.Run("should pass: catalog ordered by id", func(t *testing.T) {
		desc := "Desert planet epic"
		mockRepo := &MockBookStorage{
			GetAllFunc: func(ctx context.Context) ([]Book, error) {
				return []Book{
					{ID: 1, Title: "Dune", Author: "Frank Herbert", PublishedYear: 1965, Genre: "Science Fiction", Description: &desc},
					{ID: 2, Title: "Hyperion", Author: "Dan Simmons", PublishedYear: 1989, Genre: "Science Fiction"},
				}, nil
			},
		}
		api := newTestAPIHandler(t, mockRepo)
		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		w := httptest.NewRecorder()
		api.GetAllBooks(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		expected := `[
			{"id":1, "title":"Dune", "author":"Frank Herbert", "published_year":1965, "genre":"Science Fiction", "description":"Desert planet epic"},
			{"id":2, "title":"Hyperion", "author":"Dan Simmons", "published_year":1989, "genre":"Science Fiction", "description":null}
		]`
		assert.JSONEq(t, expected, string(data))
	})

	t.Run("should fail: storage failure", func(t *testing.T) {
		mockRepo := &MockBookStorage{
			GetAllFunc: func(ctx context.Context) ([]Book, error) {
				return nil, errors.New("storage failure")
			},
		}
		api := newTestAPIHandler(t, mockRepo)
		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		w := httptest.NewRecorder()
		api.GetAllBooks(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.JSONEq(t, `{"detail":"failed to get all books"}`, string(data))
	})
}

// TestGetOneBookHandler ensures api handler can fetch a single book.
func TestGetOneBookHandler(t *testing.T) {
	t.Run("should pass: existing book", func(t *testing.T) {
		mockRepo := &MockBookStorage{
			GetOneFunc: func(ctx context.Context, id int64) (Book, error) {
				return Book{ID: id, Title: "Dune", Author: "Frank Herbert", PublishedYear: 1965, Genre: "Science Fiction"}, nil
			},
		}
		api := newTestAPIHandler(t, mockRepo)
		req := httptest.NewRequest(http.MethodGet, "/books/1", nil)
		w := httptest.NewRecorder()
		api.GetOneBook(w, req, httprouter.Params{{Key: "id", Value: "1"}})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		expected := `{"id":1, "title":"Dune", "author":"Frank Herbert", "published_year":1965, "genre":"Science Fiction", "description":null}`
		assert.JSONEq(t, expected, string(data))
	})

	t.Run("should fail: missing book", func(t *testing.T) {
		mockRepo := &MockBookStorage{
			GetOneFunc: func(ctx context.Context, id int64) (Book, error) {
				return Book{}, ErrBookNotFound
			},
		}
		api := newTestAPIHandler(t, mockRepo)
		req := httptest.NewRequest(http.MethodGet, "/books/999", nil)
		w := httptest.NewRecorder()
		api.GetOneBook(w, req, httprouter.Params{{Key: "id", Value: "999"}})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.JSONEq(t, `{"detail":"Book not found"}`, string(data))
	})

	t.Run("should fail: malformed book id", func(t *testing.T) {
		api := newTestAPIHandler(t, &MockBookStorage{})
		req := httptest.NewRequest(http.MethodGet, "/books/abc", nil)
		w := httptest.NewRecorder()
		api.GetOneBook(w, req, httprouter.Params{{Key: "id", Value: "abc"}})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
		assert.JSONEq(t, `{"detail":"book id must be an integer"}`, string(data))
	})
}

// TestUpdateBookHandler ensures api handler overwrites all fields of a book.
func TestUpdateBookHandler(t *testing.T) {
	t.Run("should pass: full overwrite", func(t *testing.T) {
		mockRepo := &MockBookStorage{
			UpdateFunc: func(ctx context.Context, id int64, input BookInput) (Book, error) {
				return Book{
					ID:            id,
					Title:         input.Title,
					Author:        input.Author,
					PublishedYear: *input.PublishedYear,
					Genre:         input.Genre,
					Description:   input.Description,
				}, nil
			},
		}
		api := newTestAPIHandler(t, mockRepo)
		payload := `{"title":"Dune Messiah", "author":"Frank Herbert", "published_year":1969, "genre":"Science Fiction"}`
		req := httptest.NewRequest(http.MethodPut, "/books/1", bytes.NewBufferString(payload))
		w := httptest.NewRecorder()
		api.UpdateBook(w, req, httprouter.Params{{Key: "id", Value: "1"}})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		expected := `{"id":1, "title":"Dune Messiah", "author":"Frank Herbert", "published_year":1969, "genre":"Science Fiction", "description":null}`
		assert.JSONEq(t, expected, string(data))
	})

	t.Run("should fail: missing book", func(t *testing.T) {
		mockRepo := &MockBookStorage{
			UpdateFunc: func(ctx context.Context, id int64, input BookInput) (Book, error) {
				return Book{}, ErrBookNotFound
			},
		}
		api := newTestAPIHandler(t, mockRepo)
		payload := `{"title":"Dune Messiah", "author":"Frank Herbert", "published_year":1969, "genre":"Science Fiction"}`
		req := httptest.NewRequest(http.MethodPut, "/books/999", bytes.NewBufferString(payload))
		w := httptest.NewRecorder()
		api.UpdateBook(w, req, httprouter.Params{{Key: "id", Value: "999"}})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.JSONEq(t, `{"detail":"Book not found"}`, string(data))
	})

	t.Run("should fail: required field in payload", func(t *testing.T) {
		api := newTestAPIHandler(t, &MockBookStorage{})
		payload := `{"title":"Dune Messiah", "published_year":1969, "genre":"Science Fiction"}`
		req := httptest.NewRequest(http.MethodPut, "/books/1", bytes.NewBufferString(payload))
		w := httptest.NewRecorder()
		api.UpdateBook(w, req, httprouter.Params{{Key: "id", Value: "1"}})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
		assert.JSONEq(t, `{"detail":"author is required"}`, string(data))
	})

	t.Run("should fail: malformed book id", func(t *testing.T) {
		api := newTestAPIHandler(t, &MockBookStorage{})
		payload := `{"title":"Dune Messiah", "author":"Frank Herbert", "published_year":1969, "genre":"Science Fiction"}`
		req := httptest.NewRequest(http.MethodPut, "/books/abc", bytes.NewBufferString(payload))
		w := httptest.NewRecorder()
		api.UpdateBook(w, req, httprouter.Params{{Key: "id", Value: "abc"}})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
		assert.JSONEq(t, `{"detail":"book id must be an integer"}`, string(data))
	})
}

// TestDeleteOneBookHandler ensures api handler can delete a book.
func TestDeleteOneBookHandler(t *testing.T) {
	t.Run("should pass: existing book", func(t *testing.T) {
		mockRepo := &MockBookStorage{
			DeleteFunc: func(ctx context.Context, id int64) error {
				return nil
			},
		}
		api := newTestAPIHandler(t, mockRepo)
		req := httptest.NewRequest(http.MethodDelete, "/books/7", nil)
		w := httptest.NewRecorder()
		api.DeleteOneBook(w, req, httprouter.Params{{Key: "id", Value: "7"}})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.JSONEq(t, `{"message":"Book with ID 7 deleted"}`, string(data))
	})

	t.Run("should fail: missing book", func(t *testing.T) {
		mockRepo := &MockBookStorage{
			DeleteFunc: func(ctx context.Context, id int64) error {
				return ErrBookNotFound
			},
		}
		api := newTestAPIHandler(t, mockRepo)
		req := httptest.NewRequest(http.MethodDelete, "/books/999", nil)
		w := httptest.NewRecorder()
		api.DeleteOneBook(w, req, httprouter.Params{{Key: "id", Value: "999"}})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.JSONEq(t, `{"detail":"Book not found"}`, string(data))
	})
}
