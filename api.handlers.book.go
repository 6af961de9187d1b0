package main

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// CreateBook godoc
// @Summary Create a new book
// @Accept json
// @Produce json
// @Param book body BookInput true "book fields"
// @Success 200 {object} Book
// @Failure 422 {object} DetailResponse
// @Router /books [post]
func (api *APIHandler) CreateBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input BookInput
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	err := DecodeBookRequestBody(r, &input)
	if err != nil {
		api.logger.Error("failed to create book", zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(w, http.StatusUnprocessableEntity, "invalid book payload"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = ValidateBookInput(&input)
	if err != nil {
		api.logger.Error("failed to create book", zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(w, http.StatusUnprocessableEntity, err.Error()); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	book, err := api.bookService.Create(r.Context(), input)
	if err != nil {
		api.logger.Error("failed to create book", zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(w, http.StatusInternalServerError, "failed to create the book"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to create book", zap.Int64("book.id", book.ID), zap.String("request.id", requestID))
	if err = WriteJSONResponse(w, http.StatusOK, book); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetAllBooks godoc
// @Summary Fetch all books
// @Produce json
// @Success 200 {array} Book
// @Router /books [get]
func (api *APIHandler) GetAllBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	books, err := api.bookService.GetAll(r.Context())
	if err != nil {
		api.logger.Error("failed to get all books", zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(w, http.StatusInternalServerError, "failed to get all books"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get all books", zap.Int("books.total", len(books)), zap.String("request.id", requestID))
	if err = WriteJSONResponse(w, http.StatusOK, books); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetOneBook godoc
// @Summary Fetch a single book by its id
// @Produce json
// @Param id path int true "book id"
// @Success 200 {object} Book
// @Failure 404 {object} DetailResponse
// @Router /books/{id} [get]
func (api *APIHandler) GetOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id, err := ParseBookID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("id")), zap.String("request.id", requestID))
		if err = WriteErrorResponse(w, http.StatusUnprocessableEntity, err.Error()); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	book, err := api.bookService.GetOne(r.Context(), id)
	if err == ErrBookNotFound {
		api.logger.Error("book does not exist", zap.Int64("book.id", id), zap.String("request.id", requestID))
		if err = WriteErrorResponse(w, http.StatusNotFound, "Book not found"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to get book", zap.Int64("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(w, http.StatusInternalServerError, "failed to get the book"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get book", zap.Int64("book.id", id), zap.String("request.id", requestID))
	if err = WriteJSONResponse(w, http.StatusOK, book); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// UpdateBook godoc
// @Summary Overwrite all fields of an existing book
// @Accept json
// @Produce json
// @Param id path int true "book id"
// @Param book body BookInput true "book fields"
// @Success 200 {object} Book
// @Failure 404 {object} DetailResponse
// @Failure 422 {object} DetailResponse
// @Router /books/{id} [put]
func (api *APIHandler) UpdateBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input BookInput
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id, err := ParseBookID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("id")), zap.String("request.id", requestID))
		if err = WriteErrorResponse(w, http.StatusUnprocessableEntity, err.Error()); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = DecodeBookRequestBody(r, &input)
	if err != nil {
		api.logger.Error("failed to update book", zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(w, http.StatusUnprocessableEntity, "invalid book payload"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = ValidateBookInput(&input)
	if err != nil {
		api.logger.Error("failed to update book", zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(w, http.StatusUnprocessableEntity, err.Error()); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	book, err := api.bookService.Update(r.Context(), id, input)
	if err == ErrBookNotFound {
		api.logger.Error("book does not exist", zap.Int64("book.id", id), zap.String("request.id", requestID))
		if err = WriteErrorResponse(w, http.StatusNotFound, "Book not found"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to update book", zap.Int64("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(w, http.StatusInternalServerError, "failed to update the book"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to update book", zap.Int64("book.id", id), zap.String("request.id", requestID))
	if err = WriteJSONResponse(w, http.StatusOK, book); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// DeleteOneBook godoc
// @Summary Delete a single book by its id
// @Produce json
// @Param id path int true "book id"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} DetailResponse
// @Router /books/{id} [delete]
func (api *APIHandler) DeleteOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id, err := ParseBookID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("id")), zap.String("request.id", requestID))
		if err = WriteErrorResponse(w, http.StatusUnprocessableEntity, err.Error()); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = api.bookService.Delete(r.Context(), id)
	if err == ErrBookNotFound {
		api.logger.Error("book does not exist", zap.Int64("book.id", id), zap.String("request.id", requestID))
		if err = WriteErrorResponse(w, http.StatusNotFound, "Book not found"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to delete book", zap.Int64("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(w, http.StatusInternalServerError, "failed to delete the book"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to delete book", zap.Int64("book.id", id), zap.String("request.id", requestID))
	if err = WriteJSONResponse(w, http.StatusOK, MessageResponse{Message: fmt.Sprintf("Book with ID %d deleted", id)}); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
