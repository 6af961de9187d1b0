package main

import (
	"context"

	"go.uber.org/zap"
)

type BookServiceProvider interface {
	Create(ctx context.Context, input BookInput) (Book, error)
	GetOne(ctx context.Context, id int64) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
	Update(ctx context.Context, id int64, input BookInput) (Book, error)
	Delete(ctx context.Context, id int64) error
}

type BookService struct {
	logger  *zap.Logger
	config  *Config
	storage BookStorage
}

func NewBookService(logger *zap.Logger, config *Config, storage BookStorage) BookServiceProvider {
	return &BookService{
		logger:  logger,
		config:  config,
		storage: storage,
	}
}

func (bs *BookService) Create(ctx context.Context, input BookInput) (Book, error) {
	book, err := bs.storage.Create(ctx, input)
	if err != nil {
		bs.logger.Error("service: failed to create book", zap.Error(err))
	}
	return book, err
}

func (bs *BookService) GetOne(ctx context.Context, id int64) (Book, error) {
	book, err := bs.storage.GetOne(ctx, id)
	return book, err
}

func (bs *BookService) GetAll(ctx context.Context) ([]Book, error) {
	books, err := bs.storage.GetAll(ctx)
	return books, err
}

func (bs *BookService) Update(ctx context.Context, id int64, input BookInput) (Book, error) {
	book, err := bs.storage.Update(ctx, id, input)
	if err != nil && err != ErrBookNotFound {
		bs.logger.Error("service: failed to update book", zap.Int64("book.id", id), zap.Error(err))
	}
	return book, err
}

func (bs *BookService) Delete(ctx context.Context, id int64) error {
	err := bs.storage.Delete(ctx, id)
	if err != nil && err != ErrBookNotFound {
		bs.logger.Error("service: failed to delete book", zap.Int64("book.id", id), zap.Error(err))
	}
	return err
}
