package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
)

// FetchTree loads the full folder/subfolder/item tree of a course.
func (c *Client) FetchTree(ctx context.Context, course models.ID) ([]*models.Folder, error) {
	var folders []*models.Folder
	if err := c.get(ctx, courseTreePath(course), false, &folders); err != nil {
		if errors.Is(err, errEmptyBody) {
			return []*models.Folder{}, nil
		}
		return nil, err
	}
	if folders == nil {
		folders = []*models.Folder{}
	}
	return folders, nil
}

type titleBody struct {
	Title string `json:"title"`
}

// CreateFolder adds a top-level folder. The created folder is returned when
// the backend echoes it, nil otherwise.
func (c *Client) CreateFolder(ctx context.Context, course models.ID, title string) (*models.Folder, error) {
	var created models.Folder
	ok, err := c.mutate(ctx, request{
		method: http.MethodPost,
		path:   addFolderPath(course),
		body:   titleBody{Title: title},
		auth:   true,
	}, &created)
	if err != nil || !ok || created.ID.IsZero() {
		return nil, err
	}
	return &created, nil
}

// CreateSubfolder adds a subfolder below folder.
func (c *Client) CreateSubfolder(ctx context.Context, course, folder models.ID, title string) (*models.Folder, error) {
	var created models.Folder
	ok, err := c.mutate(ctx, request{
		method: http.MethodPost,
		path:   addSubfolderPath(course, folder),
		body:   titleBody{Title: title},
		auth:   true,
	}, &created)
	if err != nil || !ok || created.ID.IsZero() {
		return nil, err
	}
	if created.ParentID == nil {
		parent := folder
		created.ParentID = &parent
	}
	return &created, nil
}

// CreateItem adds a content item of the given variant. body is the
// variant-specific payload.
func (c *Client) CreateItem(ctx context.Context, course, folder, sub models.ID, variant models.ItemType, body interface{}) (*models.Item, error) {
	if !variant.Creatable() {
		return nil, fmt.Errorf("item type %q cannot be created", variant)
	}
	var created models.Item
	ok, err := c.mutate(ctx, request{
		method: http.MethodPost,
		path:   addItemPath(course, folder, sub, variant),
		body:   body,
		auth:   true,
	}, &created)
	if err != nil || !ok || created.ID.IsZero() {
		return nil, err
	}
	if created.Type == "" {
		created.Type = variant
	}
	return &created, nil
}

// FetchSubfolder lists the item stubs of one subfolder.
func (c *Client) FetchSubfolder(ctx context.Context, course, folder, sub models.ID) ([]models.Item, error) {
	var raw json.RawMessage
	if err := c.get(ctx, subfolderPath(course, folder, sub), false, &raw); err != nil {
		if errors.Is(err, errEmptyBody) {
			return []models.Item{}, nil
		}
		return nil, err
	}

	// Usually {"items": [...]}, a bare array is accepted too.
	var items []models.Item
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode subfolder items: %w", err)
		}
	} else {
		var wrapped struct {
			Items []models.Item `json:"items"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("decode subfolder items: %w", err)
		}
		items = wrapped.Items
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

// FetchDetail resolves the type-specific detail of an item.
func (c *Client) FetchDetail(ctx context.Context, item models.Item) (models.ResolvedItem, error) {
	resolved := models.ResolvedItem{Item: item}

	var fields map[string]interface{}
	if err := c.get(ctx, contentPath(item.Type, item.ID), false, &fields); err != nil {
		return resolved, err
	}

	var target interface{}
	switch item.Type {
	case models.ItemVideo:
		resolved.Video = &models.VideoDetail{}
		target = resolved.Video
	case models.ItemNotes:
		resolved.Notes = &models.NotesDetail{}
		target = resolved.Notes
	case models.ItemBook:
		resolved.Book = &models.BookDetail{}
		target = resolved.Book
	case models.ItemAssignment:
		resolved.Assignment = &models.AssignmentDetail{}
		target = resolved.Assignment
	default:
		return resolved, fmt.Errorf("unknown item type %q", item.Type)
	}

	if err := decodeFields(fields, target); err != nil {
		return models.ResolvedItem{Item: item}, fmt.Errorf("decode %s detail %s: %w", item.Type, item.ID, err)
	}
	return resolved, nil
}

// decodeFields maps a loosely typed JSON object onto a detail struct.
// Numbers and strings are converted where the backend is inconsistent
// (edition as 3 or "3rd", duration as "120").
func decodeFields(fields map[string]interface{}, target interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(fields)
}

// mutate sends a write. It reports whether a created entity was decoded;
// an empty or unexpected body is not an error since the backend is not
// consistent about echoing what it created.
func (c *Client) mutate(ctx context.Context, r request, out interface{}) (bool, error) {
	err := c.do(ctx, r, out)
	if err == nil {
		return true, nil
	}

	var de *decodeError
	if !errors.Is(err, errEmptyBody) && !errors.As(err, &de) {
		return false, err
	}
	c.log.WithFields(logrus.Fields{"path": r.path}).WithError(err).Debug("mutation response not decoded")
	return false, nil
}
