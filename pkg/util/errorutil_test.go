package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewForbidden("nope")
	mapped := ToDomainError(original)
	assert.Same(t, original, mapped)
}

func TestToDomainErrorMongoNoDocuments(t *testing.T) {
	mapped := ToDomainError(mongo.ErrNoDocuments)
	require.NotNil(t, mapped)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorDuplicateKey(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	mapped := ToDomainError(dup)
	require.NotNil(t, mapped)
	assert.Equal(t, "CONFLICT", mapped.Code)
	assert.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
}

func TestToDomainErrorUnknown(t *testing.T) {
	mapped := ToDomainError(errors.New("boom"))
	require.NotNil(t, mapped)
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	// the original error is retained for logging, not for the client
	assert.Equal(t, "internal server error", mapped.Message)
	assert.Error(t, mapped.Unwrap())
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}
