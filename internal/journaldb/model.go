// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

package journaldb

import "time"

type Role string

const (
	// RoleUser represents a message spoken by the journaling user.
	RoleUser Role = "user"
	// RoleAssistant represents a message generated by the coach.
	RoleAssistant Role = "assistant"
)

// User represents an authenticated journaling user, keyed by the
// subject identifier of the identity provider.
type User struct {
	// ID is the verified auth subject identifier.
	ID string `firestore:"id" json:"id"`

	// Email is the user's email, when the identity provider supplies one.
	Email string `firestore:"email,omitempty" json:"email,omitempty"`

	// Name is the user's display name.
	Name string `firestore:"name,omitempty" json:"name,omitempty"`

	// CreatedAt is the timestamp when the user was first seen.
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// Conversation is one journaling session owned by a single user.
type Conversation struct {
	// ID is the unique identifier for the conversation.
	ID string `firestore:"id" json:"id"`

	// UserID is the ID of the owning user.
	UserID string `firestore:"userId" json:"userId"`

	// Title is an optional display title.
	Title string `firestore:"title,omitempty" json:"title,omitempty"`

	// CreatedAt is the timestamp when the conversation was created.
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`

	// UpdatedAt is bumped whenever a message is appended.
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`

	// MessageCount is the number of appended messages. It doubles as the
	// sequence counter that breaks ordering ties between messages created
	// at the same timestamp.
	MessageCount int `firestore:"messageCount" json:"messageCount"`

	// Messages holds messages loaded for this conversation. Depending on
	// the operation it is the full ascending sequence, a one-message
	// preview, or only the messages matching a filter.
	Messages []Message `firestore:"-" json:"messages,omitempty"`
}

// Message is one immutable turn in a conversation.
type Message struct {
	// ID is the unique identifier for the message.
	ID string `firestore:"id" json:"id"`

	// ConversationID is the ID of the parent conversation.
	ConversationID string `firestore:"conversationId" json:"conversationId"`

	// UserID is the ID of the user owning the parent conversation.
	UserID string `firestore:"userId" json:"userId"`

	// Role is the role of the message author.
	Role Role `firestore:"role" json:"role"`

	// Content is the text content of the message.
	Content string `firestore:"content" json:"content"`

	// Sentiment is an optional sentiment label.
	Sentiment string `firestore:"sentiment,omitempty" json:"sentiment,omitempty"`

	// Emotions are optional emotion tags.
	Emotions []string `firestore:"emotions,omitempty" json:"emotions,omitempty"`

	// CreatedAt is the timestamp when the message was created.
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`

	// Seq is the position of the message within its conversation,
	// assigned inside the append transaction.
	Seq int `firestore:"seq" json:"seq"`
}

// UsageMetrics counts a user's messages for one calendar month.
type UsageMetrics struct {
	// UserID is the ID of the owning user.
	UserID string `firestore:"userId" json:"userId"`

	// Month is the first instant of the month, normalized to UTC.
	Month time.Time `firestore:"month" json:"month"`

	// MessageCount is the number of messages tracked in the month.
	MessageCount int `firestore:"messageCount" json:"messageCount"`
}
