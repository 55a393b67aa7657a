package store_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/tests/testutil"
)

func TestNoteTagsRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	groupID, err := s.CreateFamilyGroup(ctx, model.FamilyGroup{Name: "Smiths"})
	if err != nil {
		t.Fatalf("creating group: %v", err)
	}

	err = s.CreateNote(ctx, model.Note{
		ID:            "n1",
		Title:         "Packing list",
		Body:          "Sunscreen, towels",
		FamilyGroupID: groupID,
		Tags:          []string{"vacation", "beach", "  ", "beach"},
	})
	if err != nil {
		t.Fatalf("creating note: %v", err)
	}

	notes, err := s.GetNotes(ctx, groupID)
	if err != nil {
		t.Fatalf("getting notes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("got %d notes, want 1", len(notes))
	}

	// Blank and duplicate tags are dropped; tags come back sorted.
	want := []string{"beach", "vacation"}
	if !reflect.DeepEqual(notes[0].Tags, want) {
		t.Errorf("Tags = %v, want %v", notes[0].Tags, want)
	}
}

func TestDeleteNoteRemovesTags(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	groupID, err := s.CreateFamilyGroup(ctx, model.FamilyGroup{Name: "Smiths"})
	if err != nil {
		t.Fatalf("creating group: %v", err)
	}

	err = s.CreateNote(ctx, model.Note{
		ID:            "n1",
		Title:         "Wifi password",
		FamilyGroupID: groupID,
		Tags:          []string{"home"},
	})
	if err != nil {
		t.Fatalf("creating note: %v", err)
	}

	if err := s.DeleteNote(ctx, "n1"); err != nil {
		t.Fatalf("deleting note: %v", err)
	}

	notes, err := s.GetNotes(ctx, groupID)
	if err != nil {
		t.Fatalf("getting notes: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("got %d notes, want 0", len(notes))
	}

	if err := s.DeleteNote(ctx, "n1"); err == nil {
		t.Fatal("expected error deleting a missing note")
	}
}
