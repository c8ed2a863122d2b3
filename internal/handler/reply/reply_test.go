// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

package reply

import (
	"testing"

	"google.golang.org/genai"

	"github.com/innervoice/server/internal/journaldb"
)

func TestContents(t *testing.T) {
	msgs := []journaldb.Message{
		{Role: journaldb.RoleUser, Content: "I feel anxious", Sentiment: "negative", Emotions: []string{"anxious"}},
		{Role: journaldb.RoleAssistant, Content: "Let's explore that part."},
		{Role: journaldb.RoleUser, Content: "Okay."},
	}

	content := contents(msgs)
	if len(content) != 3 {
		t.Fatalf("got %d contents, want 3", len(content))
	}

	wantRoles := []genai.Role{genai.RoleUser, genai.RoleModel, genai.RoleUser}
	for i, c := range content {
		if genai.Role(c.Role) != wantRoles[i] {
			t.Errorf("content %d: got role %q, want %q", i, c.Role, wantRoles[i])
		}
		if len(c.Parts) != 1 || c.Parts[0].Text != msgs[i].Content {
			t.Errorf("content %d: text does not match message content", i)
		}
	}
}
