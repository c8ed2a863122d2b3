// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

// Package journaldb owns the durable record of journaling conversations:
// users, conversations, their append-only messages, and monthly usage
// counters, stored in a per-user Firestore document tree.
package journaldb

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrConversationNotFound is returned when a conversation does not
	// exist or is not owned by the requesting user.
	ErrConversationNotFound = errors.New("journaldb: conversation not found")
	// ErrEmptyContent is returned when a message has no content.
	ErrEmptyContent = errors.New("journaldb: message content is empty")
	// ErrInvalidRole is returned for a role outside user/assistant.
	ErrInvalidRole = errors.New("journaldb: invalid message role")
)

const (
	defaultConversationLimit = 10
	defaultMessageWindow     = 10
)

// NewStore returns a Store backed by the given Firestore client.
func NewStore(client *firestore.Client) *Store {
	return &Store{client: client}
}

// Store is the conversation store. All operations are scoped to the
// owning user's document tree, so ownership checks are structural.
type Store struct {
	client *firestore.Client
}

func (s *Store) userDoc(userID string) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(userID)
}

func (s *Store) conversations(userID string) *firestore.CollectionRef {
	return s.userDoc(userID).Collection("conversations")
}

// EnsureUser lazily creates the user document on first authenticated
// request. Existing users are left untouched.
func (s *Store) EnsureUser(ctx context.Context, userID string, email string, name string) error {
	doc := s.userDoc(userID)
	if _, err := doc.Get(ctx); err != nil {
		if status.Code(err) != codes.NotFound {
			return fmt.Errorf("journaldb: getting user: %w", err)
		}
		user := User{
			ID:        userID,
			Email:     email,
			Name:      name,
			CreatedAt: time.Now(),
		}
		if _, err := doc.Create(ctx, user); err != nil && status.Code(err) != codes.AlreadyExists {
			return fmt.Errorf("journaldb: creating user: %w", err)
		}
	}
	return nil
}

// CreateConversation creates a conversation for the user, optionally
// seeded with one user-role message. Conversation and seed message are
// written in a single transaction.
func (s *Store) CreateConversation(ctx context.Context, userID string, initialContent string) (*Conversation, error) {
	doc := s.conversations(userID).NewDoc()
	now := time.Now()
	conv := Conversation{
		ID:        doc.ID,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if strings.TrimSpace(initialContent) == "" {
		if _, err := doc.Create(ctx, conv); err != nil {
			return nil, fmt.Errorf("journaldb: creating conversation: %w", err)
		}
		return &conv, nil
	}

	msgDoc := doc.Collection("messages").NewDoc()
	seed := Message{
		ID:             msgDoc.ID,
		ConversationID: doc.ID,
		UserID:         userID,
		Role:           RoleUser,
		Content:        initialContent,
		CreatedAt:      now,
		Seq:            0,
	}
	conv.MessageCount = 1
	if err := s.client.RunTransaction(ctx, func(_ context.Context, t *firestore.Transaction) error {
		if err := t.Create(doc, conv); err != nil {
			return fmt.Errorf("journaldb: creating conversation document: %w", err)
		}
		if err := t.Create(msgDoc, seed); err != nil {
			return fmt.Errorf("journaldb: creating seed message: %w", err)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("journaldb: creating seeded conversation: %w", err)
	}
	conv.Messages = []Message{seed}
	return &conv, nil
}

// GetConversation returns the user's conversation with its full message
// sequence in ascending order. Generation needs the complete history, so
// no window is applied.
func (s *Store) GetConversation(ctx context.Context, userID string, conversationID string) (*Conversation, error) {
	doc := s.conversations(userID).Doc(conversationID)
	snap, err := doc.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("journaldb: getting conversation: %w", err)
	}
	var conv Conversation
	if err := snap.DataTo(&conv); err != nil {
		return nil, fmt.Errorf("journaldb: decoding conversation: %w", err)
	}
	msgs, err := s.conversationMessages(ctx, doc)
	if err != nil {
		return nil, err
	}
	conv.Messages = msgs
	return &conv, nil
}

func (s *Store) conversationMessages(ctx context.Context, conv *firestore.DocumentRef) ([]Message, error) {
	iter := conv.Collection("messages").
		OrderBy("createdAt", firestore.Asc).
		OrderBy("seq", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var msgs []Message
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("journaldb: fetching message: %w", err)
		}
		var msg Message
		if err := snap.DataTo(&msg); err != nil {
			return nil, fmt.Errorf("journaldb: decoding message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// UserConversations returns the user's most recently updated
// conversations, each with a one-message preview of its latest message.
func (s *Store) UserConversations(ctx context.Context, userID string, limit int) ([]Conversation, error) {
	if limit <= 0 {
		limit = defaultConversationLimit
	}
	iter := s.conversations(userID).
		OrderBy("updatedAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var convs []Conversation
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("journaldb: fetching conversation: %w", err)
		}
		var conv Conversation
		if err := snap.DataTo(&conv); err != nil {
			return nil, fmt.Errorf("journaldb: decoding conversation: %w", err)
		}

		latest, err := snap.Ref.Collection("messages").
			OrderBy("createdAt", firestore.Desc).
			OrderBy("seq", firestore.Desc).
			Limit(1).
			Documents(ctx).Next()
		if err != nil && !errors.Is(err, iterator.Done) {
			return nil, fmt.Errorf("journaldb: fetching latest message: %w", err)
		}
		if latest != nil {
			var msg Message
			if err := latest.DataTo(&msg); err != nil {
				return nil, fmt.Errorf("journaldb: decoding latest message: %w", err)
			}
			conv.Messages = []Message{msg}
		}
		convs = append(convs, conv)
	}
	return convs, nil
}

// AddMessage appends one message to the conversation and bumps the
// conversation's updatedAt in the same transaction. Partial application
// would corrupt the recency ordering of UserConversations, so the append
// is all-or-nothing.
func (s *Store) AddMessage(ctx context.Context, userID string, conversationID string, content string, role Role, sentiment string, emotions []string) (*Message, error) {
	if err := validateMessage(content, role); err != nil {
		return nil, err
	}

	convDoc := s.conversations(userID).Doc(conversationID)
	msgDoc := convDoc.Collection("messages").NewDoc()
	msg := Message{
		ID:             msgDoc.ID,
		ConversationID: conversationID,
		UserID:         userID,
		Role:           role,
		Content:        content,
		Sentiment:      sentiment,
		Emotions:       emotions,
		CreatedAt:      time.Now(),
	}

	if err := s.client.RunTransaction(ctx, func(_ context.Context, t *firestore.Transaction) error {
		snap, err := t.Get(convDoc)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrConversationNotFound
			}
			return fmt.Errorf("journaldb: getting conversation: %w", err)
		}
		var conv Conversation
		if err := snap.DataTo(&conv); err != nil {
			return fmt.Errorf("journaldb: decoding conversation: %w", err)
		}
		msg.Seq = conv.MessageCount
		if err := t.Create(msgDoc, msg); err != nil {
			return fmt.Errorf("journaldb: creating message: %w", err)
		}
		return t.Update(convDoc, []firestore.Update{
			{Path: "updatedAt", Value: msg.CreatedAt},
			{Path: "messageCount", Value: conv.MessageCount + 1},
		})
	}); err != nil {
		if errors.Is(err, ErrConversationNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("journaldb: adding message: %w", err)
	}
	return &msg, nil
}

// LatestMessages returns the conversation's most recent n messages in
// descending order.
func (s *Store) LatestMessages(ctx context.Context, userID string, conversationID string, n int) ([]Message, error) {
	if n <= 0 {
		n = defaultMessageWindow
	}
	convDoc := s.conversations(userID).Doc(conversationID)
	if _, err := convDoc.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("journaldb: getting conversation: %w", err)
	}
	iter := convDoc.Collection("messages").
		OrderBy("createdAt", firestore.Desc).
		OrderBy("seq", firestore.Desc).
		Limit(n).
		Documents(ctx)
	defer iter.Stop()

	var msgs []Message
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("journaldb: fetching message: %w", err)
		}
		var msg Message
		if err := snap.DataTo(&msg); err != nil {
			return nil, fmt.Errorf("journaldb: decoding message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// SearchConversations returns the user's conversations whose title or
// message content contains the term case-insensitively, each with only
// its matching messages attached. An empty or whitespace term returns
// all conversations in recency order with no messages attached, which
// is what a cleared search box shows.
func (s *Store) SearchConversations(ctx context.Context, userID string, term string) ([]Conversation, error) {
	term = strings.TrimSpace(term)

	iter := s.conversations(userID).
		OrderBy("updatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var results []Conversation
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("journaldb: fetching conversation: %w", err)
		}
		var conv Conversation
		if err := snap.DataTo(&conv); err != nil {
			return nil, fmt.Errorf("journaldb: decoding conversation: %w", err)
		}
		if term == "" {
			results = append(results, conv)
			continue
		}

		// Firestore has no case-insensitive substring operator, so message
		// content is matched here after fetching.
		msgs, err := s.conversationMessages(ctx, snap.Ref)
		if err != nil {
			return nil, err
		}
		matched := filterByContent(msgs, term)
		if containsFold(conv.Title, term) || len(matched) > 0 {
			conv.Messages = matched
			results = append(results, conv)
		}
	}
	return results, nil
}

// ConversationsByEmotion returns the user's conversations having at
// least one message tagged with the emotion, each with only the tagged
// messages attached.
func (s *Store) ConversationsByEmotion(ctx context.Context, userID string, emotion string) ([]Conversation, error) {
	iter := s.client.CollectionGroup("messages").
		Where("userId", "==", userID).
		Where("emotions", "array-contains", emotion).
		Documents(ctx)
	defer iter.Stop()

	byConversation := map[string][]Message{}
	var order []string
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("journaldb: querying tagged messages: %w", err)
		}
		var msg Message
		if err := snap.DataTo(&msg); err != nil {
			return nil, fmt.Errorf("journaldb: decoding tagged message: %w", err)
		}
		if _, ok := byConversation[msg.ConversationID]; !ok {
			order = append(order, msg.ConversationID)
		}
		byConversation[msg.ConversationID] = append(byConversation[msg.ConversationID], msg)
	}

	convs := make([]Conversation, 0, len(order))
	for _, id := range order {
		snap, err := s.conversations(userID).Doc(id).Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("journaldb: getting tagged conversation: %w", err)
		}
		var conv Conversation
		if err := snap.DataTo(&conv); err != nil {
			return nil, fmt.Errorf("journaldb: decoding tagged conversation: %w", err)
		}
		conv.Messages = sortMessagesAsc(byConversation[id])
		convs = append(convs, conv)
	}
	return convs, nil
}

func validateMessage(content string, role Role) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	if role != RoleUser && role != RoleAssistant {
		return ErrInvalidRole
	}
	return nil
}

func containsFold(s string, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

func filterByContent(msgs []Message, term string) []Message {
	var matched []Message
	for _, msg := range msgs {
		if containsFold(msg.Content, term) {
			matched = append(matched, msg)
		}
	}
	return matched
}

// sortMessagesAsc orders messages by creation time, ties broken by the
// per-conversation sequence number.
func sortMessagesAsc(msgs []Message) []Message {
	slices.SortStableFunc(msgs, func(a, b Message) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return a.Seq - b.Seq
	})
	return msgs
}
