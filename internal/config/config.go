// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"github.com/curioswitch/go-curiostack/config"
)

type Chat struct {
	// Model is the model used to generate coach replies.
	Model string `koanf:"model"`

	// TranscribeModel is the speech-to-text model.
	TranscribeModel string `koanf:"transcribemodel"`

	// SpeechModel is the text-to-speech model.
	SpeechModel string `koanf:"speechmodel"`

	// Voice is the voice used for synthesized replies.
	Voice string `koanf:"voice"`
}

type Config struct {
	config.Common

	// Chat is the configuration for chat models and voices.
	Chat Chat `koanf:"chat"`
}
