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

// Package process holds the side-effect processors a filter can trigger when
// it matches: narration and sounds. Processors never change the message.
package process

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/walteh/chatfilters/pkg/match"
	"github.com/walteh/chatfilters/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📊 Result reports what a processor did
type Result int

const (
	Fail      Result = iota // Nothing happened
	Processed               // The side effect fired
	Force                   // The side effect fired and later filters should be skipped
)

// FromBool maps success to Processed and failure to Fail
func FromBool(ok bool) Result {
	if ok {
		return Processed
	}
	return Fail
}

// String returns a string representation of Result
func (r Result) String() string {
	switch r {
	case Processed:
		return "processed"
	case Force:
		return "force"
	default:
		return "fail"
	}
}

// 🔌 Processor runs a side effect for a matched message.
//
// t is the message as filtered so far, unfiltered the message as it arrived
// (nil when unknown) and res the filter's search.
type Processor interface {
	Key() string
	Process(ctx context.Context, t text.StyledText, unfiltered *text.StyledText, res match.Result) Result
}

// 💾 Persistent is implemented by processors with saved settings.
//
// Load never fails: missing or malformed input leaves the defaults in place.
type Persistent interface {
	Save() map[string]any
	Load(raw json.RawMessage)
}

// Services are the external side-effect sinks handed to processors
type Services struct {
	Speaker Speaker
	Player  Player
}

// Factory builds a processor bound to the given services
type Factory func(svc Services) Processor

var (
	// 🗺️ factories maps processor keys to constructors
	factories = map[string]Factory{}
)

// Register adds a processor type
func Register(key string, f Factory) {
	factories[key] = f
}

func init() {
	Register(NarratorKey, func(svc Services) Processor { return NewNarrator(svc.Speaker) })
	Register(SoundKey, func(svc Services) Processor { return NewSound(svc.Player) })
}

// New builds the processor registered under key and loads its settings
func New(key string, svc Services, raw json.RawMessage) (Processor, error) {
	f, ok := factories[key]
	if !ok {
		return nil, errors.Errorf("unknown processor type %q", key)
	}
	p := f(svc)
	if ps, ok := p.(Persistent); ok {
		ps.Load(raw)
	}
	return p, nil
}

// Keys lists the registered processor types in name order
func Keys() []string {
	keys := make([]string, 0, len(factories))
	for k := range factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// decodeObject unmarshals raw into a field map, returning nil for anything
// that is not a JSON object.
func decodeObject(raw json.RawMessage) map[string]json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return obj
}

// decodeField unmarshals obj[key] into a fresh T. Missing keys, JSON null and
// values of the wrong type all report false so callers keep their current value.
func decodeField[T any](obj map[string]json.RawMessage, key string) (T, bool) {
	var v *T
	if err := json.Unmarshal(obj[key], &v); err != nil || v == nil {
		var zero T
		return zero, false
	}
	return *v, true
}
