package api

import (
	"context"
	"net/http"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
)

// SubmissionRequest is the body of an assignment submission.
type SubmissionRequest struct {
	SubmissionURL string `json:"submission_url"`
	AssignmentID  string `json:"assignment_id"`
}

// SubmitAssignment records a submission link for an assignment. The tree
// is not affected.
func (c *Client) SubmitAssignment(ctx context.Context, course models.ID, body SubmissionRequest) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   submitPath(course),
		body:   body,
		auth:   true,
	}, nil)
}

// FetchEvaluation returns the caller's marks and grade in a course.
func (c *Client) FetchEvaluation(ctx context.Context, course models.ID) (*models.Evaluation, error) {
	var eval models.Evaluation
	if err := c.get(ctx, evaluationPath(course), true, &eval); err != nil {
		return nil, err
	}
	return &eval, nil
}
