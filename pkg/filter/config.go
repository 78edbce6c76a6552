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

package filter

import (
	"encoding/json"
	"strings"

	"github.com/walteh/chatfilters/pkg/match"
	"github.com/walteh/chatfilters/pkg/process"
	"github.com/walteh/chatfilters/pkg/replace"
	"github.com/walteh/chatfilters/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔧 ProcessorConfig selects a processor and carries its saved settings
type ProcessorConfig struct {
	Type     string          `json:"type"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

// 📚 Config is everything a filter needs. It is read once when the filter is
// built; edits take effect by building a new filter.
type Config struct {
	Name        string            `json:"name"`
	Active      bool              `json:"active"`
	FindType    match.FindType    `json:"find_type"`
	FindString  string            `json:"find_string"`
	ReplaceType replace.Kind      `json:"replace_type"`
	ReplaceTo   replace.Template  `json:"replace_to,omitempty"`
	Color       *text.Color       `json:"color,omitempty"`
	Processors  []ProcessorConfig `json:"processors,omitempty"`
}

// 🔍 Validate checks the config and fills in defaults
func (cfg *Config) Validate() error {
	cfg.Name = strings.TrimSpace(cfg.Name)
	if cfg.Name == "" {
		return errors.Errorf("name is required")
	}
	if cfg.FindString == "" {
		return errors.Errorf("filter %q: find_string is required", cfg.Name)
	}

	if cfg.FindType == "" {
		cfg.FindType = match.FindLiteral
	}
	if !cfg.FindType.Valid() {
		return errors.Errorf("filter %q: unknown find_type %q", cfg.Name, cfg.FindType)
	}

	if cfg.ReplaceType == "" {
		cfg.ReplaceType = replace.KindOnlyMatch
	}
	if _, err := replace.Lookup(cfg.ReplaceType, replace.Options{}); err != nil {
		return errors.Errorf("filter %q: %w", cfg.Name, err)
	}

	known := process.Keys()
	for i, p := range cfg.Processors {
		if !contains(known, p.Type) {
			return errors.Errorf("filter %q: processor %d: unknown type %q", cfg.Name, i, p.Type)
		}
	}

	return nil
}

// String returns a short description of the filter
func (cfg Config) String() string {
	return cfg.Name + " [" + string(cfg.FindType) + " " + cfg.FindString + " -> " + string(cfg.ReplaceType) + "]"
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
