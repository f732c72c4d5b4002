package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
)

// ListInstructors returns the instructors assigned to a course.
func (c *Client) ListInstructors(ctx context.Context, course models.ID) ([]models.Instructor, error) {
	var out []models.Instructor
	if err := c.get(ctx, instructorsPath(course), true, &out); err != nil {
		if errors.Is(err, errEmptyBody) {
			return []models.Instructor{}, nil
		}
		return nil, err
	}
	return out, nil
}

// DeassignInstructor removes an instructor from a course.
func (c *Client) DeassignInstructor(ctx context.Context, course, instructor models.ID) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   instructorPath(course, instructor),
		auth:   true,
	}, nil)
}
