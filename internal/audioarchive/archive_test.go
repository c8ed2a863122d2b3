// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

package audioarchive

import "testing"

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"audio/webm", ".webm"},
		{"audio/ogg", ".ogg"},
		{"audio/mpeg", ".mp3"},
		{"audio/mp3", ".mp3"},
		{"audio/wav", ".wav"},
		{"audio/mp4", ".m4a"},
		{"application/octet-stream", ".webm"},
		{"", ".webm"},
	}

	for _, tc := range tests {
		if got := ExtensionFor(tc.contentType); got != tc.want {
			t.Errorf("ExtensionFor(%q) = %q, want %q", tc.contentType, got, tc.want)
		}
	}
}
