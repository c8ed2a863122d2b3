// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

package journaldb

import (
	"errors"
	"testing"
	"time"
)

func TestValidateMessage(t *testing.T) {
	if err := validateMessage("I feel anxious", RoleUser); err != nil {
		t.Errorf("valid user message rejected: %v", err)
	}
	if err := validateMessage("Let's explore that part.", RoleAssistant); err != nil {
		t.Errorf("valid assistant message rejected: %v", err)
	}
	if err := validateMessage("", RoleUser); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("empty content: got %v, want ErrEmptyContent", err)
	}
	if err := validateMessage("   \n\t", RoleUser); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("whitespace content: got %v, want ErrEmptyContent", err)
	}
	if err := validateMessage("hello", Role("system")); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("system role: got %v, want ErrInvalidRole", err)
	}
	if err := validateMessage("hello", Role("")); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("empty role: got %v, want ErrInvalidRole", err)
	}
}

func TestContainsFold(t *testing.T) {
	if !containsFold("Dropping the Anchor", "anchor") {
		t.Error("case-insensitive title match failed")
	}
	if !containsFold("an ANCHOR in the storm", "Anchor") {
		t.Error("case-insensitive content match failed")
	}
	if containsFold("nothing here", "anchor") {
		t.Error("unrelated text matched")
	}
	if !containsFold("anything", "") {
		t.Error("empty term should match any text")
	}
}

func TestFilterByContent(t *testing.T) {
	msgs := []Message{
		{ID: "1", Content: "I feel anxious about the anchor"},
		{ID: "2", Content: "Let's explore that part."},
		{ID: "3", Content: "The Anchor keeps me stuck"},
	}

	matched := filterByContent(msgs, "anchor")
	if len(matched) != 2 {
		t.Fatalf("got %d matches, want 2", len(matched))
	}
	if matched[0].ID != "1" || matched[1].ID != "3" {
		t.Errorf("got messages %s, %s, want 1, 3", matched[0].ID, matched[1].ID)
	}

	if matched := filterByContent(msgs, "does-not-appear"); len(matched) != 0 {
		t.Errorf("got %d matches for absent term, want 0", len(matched))
	}
}

func TestSortMessagesAsc(t *testing.T) {
	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	msgs := []Message{
		{ID: "c", CreatedAt: base.Add(2 * time.Second), Seq: 2},
		{ID: "a", CreatedAt: base, Seq: 0},
		{ID: "b", CreatedAt: base.Add(time.Second), Seq: 1},
	}

	sorted := sortMessagesAsc(msgs)
	for i, want := range []string{"a", "b", "c"} {
		if sorted[i].ID != want {
			t.Errorf("position %d: got %s, want %s", i, sorted[i].ID, want)
		}
	}
}

func TestSortMessagesAscTieBreak(t *testing.T) {
	// Equal timestamps must fall back to insertion order via seq.
	at := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	msgs := []Message{
		{ID: "second", CreatedAt: at, Seq: 1},
		{ID: "first", CreatedAt: at, Seq: 0},
		{ID: "third", CreatedAt: at, Seq: 2},
	}

	sorted := sortMessagesAsc(msgs)
	for i, want := range []string{"first", "second", "third"} {
		if sorted[i].ID != want {
			t.Errorf("position %d: got %s, want %s", i, sorted[i].ID, want)
		}
	}
}
