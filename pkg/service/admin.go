package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
)

// ListInstructors returns the instructors of a course.
func (s *Service) ListInstructors(ctx context.Context, course models.ID) ([]models.Instructor, error) {
	if course.IsZero() {
		return nil, ErrNoCourse
	}
	return s.api.ListInstructors(ctx, course)
}

// DeassignKey is the gate key of a deassign, for rendering busy rows.
func DeassignKey(course, instructor models.ID) string {
	return Key("deassign", course.String(), instructor.String())
}

// DeassignInstructor removes an instructor from a course. Repeating the
// call for the same instructor while the first is in flight returns
// ErrBusy without a request.
func (s *Service) DeassignInstructor(ctx context.Context, course, instructor models.ID) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if course.IsZero() {
		return ErrNoCourse
	}
	release, err := s.gate.Acquire(DeassignKey(course, instructor))
	if err != nil {
		return err
	}
	defer release()

	if err := s.api.DeassignInstructor(ctx, course, instructor); err != nil {
		s.log.WithFields(logrus.Fields{
			"op":            "deassign",
			"course_id":     course.String(),
			"instructor_id": instructor.String(),
		}).WithError(err).Warn("deassign failed")
		return err
	}
	return nil
}
