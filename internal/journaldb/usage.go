// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

package journaldb

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// usageDocFormat keys usage documents by calendar month, e.g. 2026-08.
const usageDocFormat = "2006-01"

// monthStart normalizes a time to the first instant of its calendar
// month in UTC, the identity key for UsageMetrics.
func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (s *Store) usageDoc(userID string, month time.Time) *firestore.DocumentRef {
	return s.userDoc(userID).Collection("usage").Doc(month.Format(usageDocFormat))
}

// TrackMessage increments the user's counter for the current month,
// creating it on the first message of the month. The upsert runs in a
// transaction so two concurrent tracks never produce two documents.
func (s *Store) TrackMessage(ctx context.Context, userID string) (*UsageMetrics, error) {
	month := monthStart(time.Now())
	doc := s.usageDoc(userID, month)

	var usage UsageMetrics
	if err := s.client.RunTransaction(ctx, func(_ context.Context, t *firestore.Transaction) error {
		snap, err := t.Get(doc)
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return fmt.Errorf("journaldb: getting usage: %w", err)
			}
			usage = UsageMetrics{UserID: userID, Month: month, MessageCount: 1}
			return t.Create(doc, usage)
		}
		if err := snap.DataTo(&usage); err != nil {
			return fmt.Errorf("journaldb: decoding usage: %w", err)
		}
		usage.MessageCount++
		return t.Update(doc, []firestore.Update{
			{Path: "messageCount", Value: firestore.Increment(1)},
		})
	}); err != nil {
		return nil, fmt.Errorf("journaldb: tracking message: %w", err)
	}
	return &usage, nil
}

// CurrentMonthUsage returns the user's counter for the current month.
// A month with no tracked messages yields a zero-count record rather
// than an error.
func (s *Store) CurrentMonthUsage(ctx context.Context, userID string) (*UsageMetrics, error) {
	month := monthStart(time.Now())
	snap, err := s.usageDoc(userID, month).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &UsageMetrics{UserID: userID, Month: month}, nil
		}
		return nil, fmt.Errorf("journaldb: getting usage: %w", err)
	}
	var usage UsageMetrics
	if err := snap.DataTo(&usage); err != nil {
		return nil, fmt.Errorf("journaldb: decoding usage: %w", err)
	}
	return &usage, nil
}
