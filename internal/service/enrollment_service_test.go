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

func TestEnroll(t *testing.T) {
	courses := &memCourseRepo{}
	enrollments := &memEnrollmentRepo{}
	svc := NewEnrollmentService(enrollments, courses, nil)

	course := seedCourse(t, courses, "Go Basics", "i@x.com")
	student := testUser(domain.RoleStudent, "s@x.com")

	enrollment, err := svc.Enroll(context.Background(), student, course.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, student.ID, enrollment.UserID)
	assert.Equal(t, course.ID, enrollment.CourseID)
	assert.False(t, enrollment.EnrolledAt.IsZero())
}

func TestEnrollTwice(t *testing.T) {
	courses := &memCourseRepo{}
	enrollments := &memEnrollmentRepo{}
	svc := NewEnrollmentService(enrollments, courses, nil)

	course := seedCourse(t, courses, "Go Basics", "i@x.com")
	student := testUser(domain.RoleStudent, "s@x.com")

	_, err := svc.Enroll(context.Background(), student, course.ID.Hex())
	require.NoError(t, err)

	_, err = svc.Enroll(context.Background(), student, course.ID.Hex())
	require.ErrorIs(t, err, ErrAlreadyEnrolled)

	// the first record is the only one
	listed, err := svc.ListByUser(context.Background(), student.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestEnrollUnknownCourse(t *testing.T) {
	svc := NewEnrollmentService(&memEnrollmentRepo{}, &memCourseRepo{}, nil)
	student := testUser(domain.RoleStudent, "s@x.com")

	_, err := svc.Enroll(context.Background(), student, primitive.NewObjectID().Hex())
	requireDomainErr(t, err, http.StatusNotFound)
}

func TestGetPair(t *testing.T) {
	courses := &memCourseRepo{}
	enrollments := &memEnrollmentRepo{}
	svc := NewEnrollmentService(enrollments, courses, nil)

	course := seedCourse(t, courses, "Go Basics", "i@x.com")
	student := testUser(domain.RoleStudent, "s@x.com")

	_, err := svc.GetPair(context.Background(), student.ID.Hex(), course.ID.Hex())
	requireDomainErr(t, err, http.StatusNotFound)

	_, err = svc.Enroll(context.Background(), student, course.ID.Hex())
	require.NoError(t, err)

	pair, err := svc.GetPair(context.Background(), student.ID.Hex(), course.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, student.ID, pair.UserID)
}
