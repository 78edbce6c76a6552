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
	"strings"

	"github.com/rs/zerolog"

	"github.com/walteh/chatfilters/pkg/match"
	"github.com/walteh/chatfilters/pkg/text"
)

const (
	SoundKey = "sound"

	DefaultSound  = "block.note_block.pling"
	DefaultVolume = 1.0
	DefaultPitch  = 1.0

	minPitch = 0.5
	maxPitch = 2.0
)

// 🎵 Player plays a sound by identifier
type Player interface {
	Play(id string, volume, pitch float64)
}

// 🔔 Sound plays a sound when its filter matches
type Sound struct {
	player Player
	id     string
	volume float64
	pitch  float64
}

// NewSound creates a Sound with default settings
func NewSound(player Player) *Sound {
	return &Sound{player: player, id: DefaultSound, volume: DefaultVolume, pitch: DefaultPitch}
}

// ID returns the sound identifier
func (s *Sound) ID() string { return s.id }

// Volume returns the playback volume in [0, 1]
func (s *Sound) Volume() float64 { return s.volume }

// Pitch returns the playback pitch in [0.5, 2]
func (s *Sound) Pitch() float64 { return s.pitch }

// Set changes the sound settings, clamping volume and pitch into range.
// An empty id keeps the current one.
func (s *Sound) Set(id string, volume, pitch float64) {
	if id = strings.TrimSpace(id); id != "" {
		s.id = id
	}
	s.volume = clampFloat(volume, 0, 1)
	s.pitch = clampFloat(pitch, minPitch, maxPitch)
}

// Key implements Processor
func (s *Sound) Key() string {
	return SoundKey
}

// Process implements Processor
func (s *Sound) Process(ctx context.Context, _ text.StyledText, _ *text.StyledText, res match.Result) Result {
	if s.player == nil || res.Empty() || s.volume == 0 {
		return Fail
	}

	zerolog.Ctx(ctx).Debug().
		Str("sound", s.id).
		Float64("volume", s.volume).
		Float64("pitch", s.pitch).
		Msg("playing sound")
	s.player.Play(s.id, s.volume, s.pitch)
	return FromBool(true)
}

// Save implements Persistent
func (s *Sound) Save() map[string]any {
	return map[string]any{
		"sound":  s.id,
		"volume": s.volume,
		"pitch":  s.pitch,
	}
}

// Load implements Persistent
func (s *Sound) Load(raw json.RawMessage) {
	obj := decodeObject(raw)
	if obj == nil {
		return
	}

	id, volume, pitch := s.id, s.volume, s.pitch
	if v, ok := decodeField[string](obj, "sound"); ok {
		id = v
	}
	if v, ok := decodeField[float64](obj, "volume"); ok {
		volume = v
	}
	if v, ok := decodeField[float64](obj, "pitch"); ok {
		pitch = v
	}
	s.Set(id, volume, pitch)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
