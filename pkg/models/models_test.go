package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDDecodesStringsAndNumbers(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		encoded string
	}{
		{"number", `7`, "7", `7`},
		{"string", `"C1"`, "C1", `"C1"`},
		{"numeric string stays string", `"42"`, "42", `"42"`},
		{"null", `null`, "", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
			assert.Equal(t, tt.want, id.String())

			out, err := json.Marshal(id)
			require.NoError(t, err)
			assert.JSONEq(t, tt.encoded, string(out))
		})
	}
}

func TestFolderPayloadDecoding(t *testing.T) {
	payload := `[{"folder_id":1,"title":"Intro","subfolders":[{"folder_id":2,"title":"Lecture 1","items":[{"item_id":9,"item_type":"video"}]}]}]`

	var folders []*Folder
	require.NoError(t, json.Unmarshal([]byte(payload), &folders))
	require.Len(t, folders, 1)
	assert.Equal(t, "Intro", folders[0].Title)
	require.Len(t, folders[0].Subfolders, 1)

	sub := folders[0].Subfolders[0]
	assert.Equal(t, IntID(2), sub.ID)
	require.Len(t, sub.Items, 1)
	assert.Equal(t, ItemVideo, sub.Items[0].Type)
}

func TestFolderCloneIsDeep(t *testing.T) {
	parent := IntID(1)
	orig := &Folder{
		ID:    IntID(1),
		Title: "Week 1",
		Subfolders: []*Folder{
			{ID: IntID(2), Title: "Lecture", ParentID: &parent, Items: []Item{{ID: IntID(3), Type: ItemBook}}},
		},
	}

	clone := orig.Clone()
	clone.Subfolders[0].Title = "changed"
	clone.Subfolders[0].Items[0].Type = ItemNotes

	assert.Equal(t, "Lecture", orig.Subfolders[0].Title)
	assert.Equal(t, ItemBook, orig.Subfolders[0].Items[0].Type)
	assert.True(t, clone.Subfolders[0].IsSubfolder())
	assert.False(t, clone.IsSubfolder())
}

func TestParseItemType(t *testing.T) {
	tests := []struct {
		in   string
		want ItemType
		ok   bool
	}{
		{"video", ItemVideo, true},
		{"Textbook", ItemBook, true},
		{"book", ItemBook, true},
		{" notes ", ItemNotes, true},
		{"assignment", ItemAssignment, true},
		{"quiz", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseItemType(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	assert.False(t, ItemAssignment.Creatable())
	assert.True(t, ItemBook.Creatable())
	assert.False(t, ItemBook.HasURL())
}

func TestItemTypeDecodingNormalizesAliases(t *testing.T) {
	tests := []struct {
		input string
		want  ItemType
	}{
		{`{"item_id": 1, "item_type": "textbook"}`, ItemBook},
		{`{"item_id": 2, "item_type": "Video"}`, ItemVideo},
		{`{"item_id": 3, "item_type": "quiz"}`, ItemType("quiz")},
	}
	for _, tt := range tests {
		var item Item
		require.NoError(t, json.Unmarshal([]byte(tt.input), &item))
		assert.Equal(t, tt.want, item.Type, tt.input)
	}

	var item Item
	assert.Error(t, json.Unmarshal([]byte(`{"item_id": 4, "item_type": 5}`), &item))
}

func TestResolvedItemAccessors(t *testing.T) {
	stub := ResolvedItem{Item: Item{ID: IntID(5), Type: ItemAssignment}}
	assert.False(t, stub.Resolved())
	assert.Equal(t, "assignment #5", stub.Title())
	assert.Equal(t, "5", stub.AssignmentID())

	video := ResolvedItem{Item: Item{ID: IntID(6), Type: ItemVideo}, Video: &VideoDetail{Title: "Intro video", URLLink: "https://x"}}
	assert.True(t, video.Resolved())
	assert.Equal(t, "Intro video", video.Title())
	assert.Equal(t, "https://x", video.URL())
}

func TestIDEqualIgnoresEncoding(t *testing.T) {
	var fromString ID
	require.NoError(t, json.Unmarshal([]byte(`"2"`), &fromString))
	assert.True(t, fromString.Equal(IntID(2)))
	assert.True(t, NewID("2").Equal(IntID(2)))
	assert.False(t, NewID("3").Equal(IntID(2)))
	assert.True(t, NewID("").IsZero())
}
