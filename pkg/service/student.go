package service

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Siddaarth-Babu/mooc/pkg/api"
	"github.com/Siddaarth-Babu/mooc/pkg/models"
)

// SubmissionInput is an assignment submission.
type SubmissionInput struct {
	AssignmentID  string `json:"assignment_id" validate:"notblank"`
	SubmissionURL string `json:"submission_url" validate:"notblank,url"`
}

// SubfolderContents fetches the item stubs of a subfolder and resolves
// every item's detail in parallel. Order follows the server. An item whose
// detail cannot be fetched is returned with its stub only.
func (s *Service) SubfolderContents(ctx context.Context, course, folder, sub models.ID) ([]models.ResolvedItem, error) {
	log := s.log.WithFields(logrus.Fields{"op": "open_subfolder", "course_id": course.String(), "subfolder_id": sub.String()})

	if course.IsZero() {
		return nil, ErrNoCourse
	}
	folder, err := s.resolveFolder(ItemTarget{CourseID: course, FolderID: folder, SubfolderID: sub})
	if err != nil {
		return nil, err
	}

	stubs, err := s.api.FetchSubfolder(ctx, course, folder, sub)
	if err != nil {
		log.WithError(err).Warn("fetch subfolder failed")
		return nil, err
	}

	resolved := make([]models.ResolvedItem, len(stubs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Config.DetailConcurrency)
	for i, stub := range stubs {
		i, stub := i, stub
		g.Go(func() error {
			item, err := s.api.FetchDetail(gctx, stub)
			if err != nil {
				log.WithFields(logrus.Fields{"item_id": stub.ID.String(), "item_type": stub.Type}).
					WithError(err).Warn("item detail unavailable")
				resolved[i] = models.ResolvedItem{Item: stub}
				return nil
			}
			resolved[i] = item
			return nil
		})
	}
	_ = g.Wait()
	return resolved, nil
}

// ItemDetail resolves a single item.
func (s *Service) ItemDetail(ctx context.Context, item models.Item) (models.ResolvedItem, error) {
	return s.api.FetchDetail(ctx, item)
}

// SubmitAssignment records a submission link. The tree is not touched.
func (s *Service) SubmitAssignment(ctx context.Context, course models.ID, assignmentID, submissionURL string) error {
	const op = "submit"
	if err := s.requireSession(); err != nil {
		return err
	}
	if course.IsZero() {
		return ErrNoCourse
	}
	in := SubmissionInput{AssignmentID: assignmentID, SubmissionURL: submissionURL}
	if err := validateInput(in); err != nil {
		return err
	}
	release, err := s.gate.Acquire(Key(op, course.String(), assignmentID))
	if err != nil {
		return err
	}
	defer release()

	err = s.api.SubmitAssignment(ctx, course, api.SubmissionRequest{
		SubmissionURL: in.SubmissionURL,
		AssignmentID:  in.AssignmentID,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{"op": op, "course_id": course.String()}).WithError(err).Warn("submission failed")
	}
	return err
}

// Evaluation fetches the student's marks and grade.
func (s *Service) Evaluation(ctx context.Context, course models.ID) (*models.Evaluation, error) {
	if course.IsZero() {
		return nil, ErrNoCourse
	}
	return s.api.FetchEvaluation(ctx, course)
}
