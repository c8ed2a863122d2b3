// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

// Package audioarchive retains users' raw voice recordings in Cloud
// Storage, keyed by the message their transcript became.
package audioarchive

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// New returns an Archive writing clips to the given bucket.
func New(storage *storage.Client, bucket string) *Archive {
	return &Archive{
		storage: storage,
		bucket:  bucket,
	}
}

type Archive struct {
	storage *storage.Client
	bucket  string
}

// SaveClip stores one recorded clip and returns its public URL.
func (a *Archive) SaveClip(ctx context.Context, userID string, conversationID string, messageID string, contentType string, data []byte) (string, error) {
	path := fmt.Sprintf("audio/%s/%s/%s%s", userID, conversationID, messageID, ExtensionFor(contentType))
	wc := a.storage.Bucket(a.bucket).Object(path).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("audioarchive: writing clip: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("audioarchive: closing clip writer: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", a.bucket, path), nil
}

// ExtensionFor maps a recording content type to a file extension.
// Browsers record webm by default so unknown types fall back to it.
func ExtensionFor(contentType string) string {
	switch contentType {
	case "audio/ogg":
		return ".ogg"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "audio/mp4":
		return ".m4a"
	default:
		return ".webm"
	}
}
