package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
)

// TitleInput is the body of folder and subfolder creation.
type TitleInput struct {
	Title string `json:"title" validate:"notblank"`
}

// ItemInput is a creatable item payload.
type ItemInput interface {
	ItemType() models.ItemType
}

// VideoInput creates a video item.
type VideoInput struct {
	Title    string `json:"title" validate:"notblank"`
	URLLink  string `json:"url_link" validate:"notblank"`
	Duration int    `json:"duration" validate:"gte=0"`
}

// NotesInput creates a notes item.
type NotesInput struct {
	Title        string `json:"title" validate:"notblank"`
	URLLink      string `json:"url_link" validate:"notblank"`
	DocumentType string `json:"document_type,omitempty"`
}

// BookInput creates a book item. Books carry no link.
type BookInput struct {
	Title     string `json:"title" validate:"notblank"`
	Author    string `json:"author,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	Edition   string `json:"edition,omitempty"`
}

func (VideoInput) ItemType() models.ItemType { return models.ItemVideo }
func (NotesInput) ItemType() models.ItemType { return models.ItemNotes }
func (BookInput) ItemType() models.ItemType  { return models.ItemBook }

// ItemTarget locates the subfolder an item is created in. FolderID may be
// left zero; it is then looked up in the cached tree.
type ItemTarget struct {
	CourseID    models.ID
	FolderID    models.ID
	SubfolderID models.ID
}

// CreateFolder adds a top-level folder and re-fetches the tree.
func (s *Service) CreateFolder(ctx context.Context, course models.ID, title string) (*models.Folder, error) {
	const op = "create_folder"
	log := s.log.WithFields(logrus.Fields{"op": op, "course_id": course.String()})

	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if course.IsZero() {
		return nil, ErrNoCourse
	}
	if err := validateInput(TitleInput{Title: title}); err != nil {
		return nil, err
	}
	release, err := s.gate.Acquire(Key(op, course.String()))
	if err != nil {
		return nil, err
	}
	defer release()

	created, err := s.api.CreateFolder(ctx, course, title)
	if err != nil {
		log.WithError(err).Warn("create folder failed")
		return nil, err
	}
	s.refreshAfter(ctx, course, op)
	return created, nil
}

// CreateSubfolder adds a subfolder below folder and re-fetches the tree.
func (s *Service) CreateSubfolder(ctx context.Context, course, folder models.ID, title string) (*models.Folder, error) {
	const op = "create_subfolder"
	log := s.log.WithFields(logrus.Fields{"op": op, "course_id": course.String(), "folder_id": folder.String()})

	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if course.IsZero() {
		return nil, ErrNoCourse
	}
	if err := validateInput(TitleInput{Title: title}); err != nil {
		return nil, err
	}
	if folder.IsZero() {
		return nil, ErrUnresolvedFolder
	}
	release, err := s.gate.Acquire(Key(op, course.String(), folder.String()))
	if err != nil {
		return nil, err
	}
	defer release()

	created, err := s.api.CreateSubfolder(ctx, course, folder, title)
	if err != nil {
		log.WithError(err).Warn("create subfolder failed")
		return nil, err
	}
	s.refreshAfter(ctx, course, op)
	return created, nil
}

// CreateItem adds a video, notes or book item to a subfolder and
// re-fetches the tree.
func (s *Service) CreateItem(ctx context.Context, target ItemTarget, in ItemInput) (*models.Item, error) {
	variant := in.ItemType()
	op := "create_" + string(variant)
	log := s.log.WithFields(logrus.Fields{
		"op":           op,
		"course_id":    target.CourseID.String(),
		"subfolder_id": target.SubfolderID.String(),
	})

	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if target.CourseID.IsZero() {
		return nil, ErrNoCourse
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	folder, err := s.resolveFolder(target)
	if err != nil {
		log.WithError(err).Warn("item target not in cached tree")
		return nil, err
	}
	release, err := s.gate.Acquire(Key(op, target.CourseID.String(), target.SubfolderID.String()))
	if err != nil {
		return nil, err
	}
	defer release()

	created, err := s.api.CreateItem(ctx, target.CourseID, folder, target.SubfolderID, variant, in)
	if err != nil {
		log.WithError(err).Warn("create item failed")
		return nil, err
	}
	s.refreshAfter(ctx, target.CourseID, op)
	return created, nil
}

// resolveFolder returns the folder owning target's subfolder.
func (s *Service) resolveFolder(target ItemTarget) (models.ID, error) {
	if !target.FolderID.IsZero() {
		return target.FolderID, nil
	}
	if target.SubfolderID.IsZero() {
		return models.ID{}, ErrUnresolvedFolder
	}
	folder, ok := s.Cache(target.CourseID).Snapshot().FolderOf(target.SubfolderID)
	if !ok {
		return models.ID{}, ErrUnresolvedFolder
	}
	return folder, nil
}
