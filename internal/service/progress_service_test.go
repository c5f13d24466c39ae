package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/lms-service/internal/domain"
)

func TestProgressBounds(t *testing.T) {
	svc := NewProgressService(&memProgressRepo{}, nil)
	student := testUser(domain.RoleStudent, "s@x.com")
	courseID := primitive.NewObjectID().Hex()

	for _, percentage := range []int{-1, 101} {
		_, err := svc.Upsert(context.Background(), student, courseID, percentage)
		domainErr := requireDomainErr(t, err, http.StatusBadRequest)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	}
}

func TestProgressCompletionFlag(t *testing.T) {
	svc := NewProgressService(&memProgressRepo{}, nil)
	student := testUser(domain.RoleStudent, "s@x.com")
	courseID := primitive.NewObjectID().Hex()

	progress, err := svc.Upsert(context.Background(), student, courseID, 100)
	require.NoError(t, err)
	assert.True(t, progress.IsCompleted)
	assert.Equal(t, 100, progress.Percentage)
	created := progress.CreatedAt

	// dropping back below 100 clears the flag and keeps the original record
	progress, err = svc.Upsert(context.Background(), student, courseID, 50)
	require.NoError(t, err)
	assert.False(t, progress.IsCompleted)
	assert.Equal(t, 50, progress.Percentage)
	assert.Equal(t, created, progress.CreatedAt)

	// one record per pair
	entries, err := svc.ListByUser(context.Background(), student.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestProgressZeroIsValid(t *testing.T) {
	svc := NewProgressService(&memProgressRepo{}, nil)
	student := testUser(domain.RoleStudent, "s@x.com")
	courseID := primitive.NewObjectID().Hex()

	progress, err := svc.Upsert(context.Background(), student, courseID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Percentage)
	assert.False(t, progress.IsCompleted)
}

func TestProgressGet(t *testing.T) {
	svc := NewProgressService(&memProgressRepo{}, nil)
	student := testUser(domain.RoleStudent, "s@x.com")
	courseID := primitive.NewObjectID().Hex()

	_, err := svc.Get(context.Background(), student.ID.Hex(), courseID)
	requireDomainErr(t, err, http.StatusNotFound)

	_, err = svc.Upsert(context.Background(), student, courseID, 30)
	require.NoError(t, err)

	progress, err := svc.Get(context.Background(), student.ID.Hex(), courseID)
	require.NoError(t, err)
	assert.Equal(t, 30, progress.Percentage)
}
