// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package process

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/walteh/chatfilters/pkg/match"
	"github.com/walteh/chatfilters/pkg/replace"
	"github.com/walteh/chatfilters/pkg/text"
)

const (
	NarratorKey = "narrator"

	// DefaultNarratorMessage reads out the first captured group
	DefaultNarratorMessage replace.Template = "$1"
)

// 🗣️ Speaker is a text-to-speech service
type Speaker interface {
	Say(text string, interrupt bool)
}

// 📢 Narrator reads a templated message aloud when its filter matches
type Narrator struct {
	speaker Speaker
	message replace.Template
}

// NewNarrator creates a Narrator with the default message
func NewNarrator(speaker Speaker) *Narrator {
	return &Narrator{speaker: speaker, message: DefaultNarratorMessage}
}

// Message returns the message template
func (n *Narrator) Message() replace.Template {
	return n.message
}

// SetMessage changes the message template
func (n *Narrator) SetMessage(t replace.Template) {
	n.message = t
}

// Key implements Processor
func (n *Narrator) Key() string {
	return NarratorKey
}

// Process implements Processor. The message is resolved against the first
// match of the search.
func (n *Narrator) Process(ctx context.Context, _ text.StyledText, _ *text.StyledText, res match.Result) Result {
	if n.speaker == nil || res.Empty() {
		return Fail
	}

	content := n.message.ResolveFirst(res)
	zerolog.Ctx(ctx).Debug().Str("content", content).Msg("narrating")
	n.speaker.Say(content, false)
	return FromBool(true)
}

// Save implements Persistent
func (n *Narrator) Save() map[string]any {
	return map[string]any{"message": string(n.message)}
}

// Load implements Persistent
func (n *Narrator) Load(raw json.RawMessage) {
	obj := decodeObject(raw)
	if obj == nil {
		return
	}
	if msg, ok := decodeField[string](obj, "message"); ok {
		n.message = replace.Template(msg)
	}
}
