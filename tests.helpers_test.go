package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestValidateBookInput ensures each required field is enforced.
func TestValidateBookInput(t *testing.T) {
	year := 1965
	valid := BookInput{Title: "Dune", Author: "Frank Herbert", PublishedYear: &year, Genre: "Science Fiction"}

	t.Run("valid input", func(t *testing.T) {
		input := valid
		assert.NoError(t, ValidateBookInput(&input))
	})

	t.Run("missing title", func(t *testing.T) {
		input := valid
		input.Title = ""
		assert.EqualError(t, ValidateBookInput(&input), "title is required")
	})

	t.Run("missing author", func(t *testing.T) {
		input := valid
		input.Author = ""
		assert.EqualError(t, ValidateBookInput(&input), "author is required")
	})

	t.Run("missing published year", func(t *testing.T) {
		input := valid
		input.PublishedYear = nil
		assert.EqualError(t, ValidateBookInput(&input), "published_year is required")
	})

	t.Run("missing genre", func(t *testing.T) {
		input := valid
		input.Genre = ""
		assert.EqualError(t, ValidateBookInput(&input), "genre is required")
	})
}

// TestParseBookID ensures only integer ids are accepted.
func TestParseBookID(t *testing.T) {
	id, err := ParseBookID("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParseBookID("abc")
	assert.Equal(t, ErrInvalidBookID, err)

	_, err = ParseBookID("1.5")
	assert.Equal(t, ErrInvalidBookID, err)
}
