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

package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/chatfilters/pkg/filter"
	"github.com/walteh/chatfilters/pkg/match"
	"github.com/walteh/chatfilters/pkg/replace"
	"github.com/walteh/chatfilters/pkg/text"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*File, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔔 ProcessorEntry is a processor as written in a config file
type ProcessorEntry struct {
	Type     string         `json:"type" yaml:"type"`
	Settings map[string]any `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// 🧹 FilterEntry is a filter as written in a config file
type FilterEntry struct {
	Name        string           `json:"name" yaml:"name"`
	Active      *bool            `json:"active,omitempty" yaml:"active,omitempty"`
	FindType    string           `json:"find_type,omitempty" yaml:"find_type,omitempty"`
	Find        string           `json:"find" yaml:"find"`
	ReplaceType string           `json:"replace_type,omitempty" yaml:"replace_type,omitempty"`
	ReplaceTo   string           `json:"replace_to,omitempty" yaml:"replace_to,omitempty"`
	Color       string           `json:"color,omitempty" yaml:"color,omitempty"`
	Processors  []ProcessorEntry `json:"processors,omitempty" yaml:"processors,omitempty"`
}

// 📚 File is the complete contents of one config file
type File struct {
	Filters []FilterEntry `json:"filters" yaml:"filters"`
}

// 🎯 Load loads and validates the filters in a config file
func Load(ctx context.Context, path string) ([]filter.Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	file, err := parse(ctx, path, data)
	if err != nil {
		return nil, err
	}

	cfgs, err := file.Configs()
	if err != nil {
		return nil, errors.Errorf("validating %s: %w", path, err)
	}

	logger.Debug().Str("path", path).Int("filters", len(cfgs)).Msg("configuration loaded")
	return cfgs, nil
}

// parse picks a parser by file name. Files named .chatfilters may be YAML
// or HCL, so both are tried.
func parse(ctx context.Context, path string, data []byte) (*File, error) {
	if filepath.Base(path) == ".chatfilters" || strings.HasSuffix(path, ".chatfilters") {
		file, yerr := (&YAMLParser{}).Parse(ctx, data)
		if yerr == nil {
			return file, nil
		}
		file, herr := (&HCLParser{}).Parse(ctx, data)
		if herr == nil {
			return file, nil
		}
		return nil, errors.Errorf("failed to parse %s as YAML (%v) or HCL: %w", path, yerr, herr)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	file, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	return file, nil
}

// Configs converts and validates every entry, in file order
func (f *File) Configs() ([]filter.Config, error) {
	cfgs := make([]filter.Config, 0, len(f.Filters))
	seen := map[string]bool{}
	for i, e := range f.Filters {
		cfg, err := e.Config()
		if err != nil {
			return nil, errors.Errorf("filter %d: %w", i, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, errors.Errorf("filter %d: %w", i, err)
		}
		if seen[cfg.Name] {
			return nil, errors.Errorf("filter %d: duplicate name %q", i, cfg.Name)
		}
		seen[cfg.Name] = true
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}

// Config converts the entry to a filter config. Filters are active unless
// the file says otherwise.
func (e FilterEntry) Config() (filter.Config, error) {
	cfg := filter.Config{
		Name:        e.Name,
		Active:      e.Active == nil || *e.Active,
		FindType:    match.FindType(strings.ToLower(e.FindType)),
		FindString:  e.Find,
		ReplaceType: replace.Kind(strings.ToLower(e.ReplaceType)),
		ReplaceTo:   replace.Template(e.ReplaceTo),
	}

	if e.Color != "" {
		c, err := text.ParseColor(e.Color)
		if err != nil {
			return filter.Config{}, errors.Errorf("filter %q: %w", e.Name, err)
		}
		cfg.Color = &c
	}

	for _, p := range e.Processors {
		pc := filter.ProcessorConfig{Type: strings.ToLower(p.Type)}
		if len(p.Settings) > 0 {
			b, err := json.Marshal(p.Settings)
			if err != nil {
				return filter.Config{}, errors.Errorf("filter %q: encoding %s settings: %w", e.Name, p.Type, err)
			}
			pc.Settings = b
		}
		cfg.Processors = append(cfg.Processors, pc)
	}

	return cfg, nil
}

// EntryFromConfig is the inverse of FilterEntry.Config
func EntryFromConfig(cfg filter.Config) FilterEntry {
	active := cfg.Active
	e := FilterEntry{
		Name:        cfg.Name,
		Active:      &active,
		FindType:    string(cfg.FindType),
		Find:        cfg.FindString,
		ReplaceType: string(cfg.ReplaceType),
		ReplaceTo:   string(cfg.ReplaceTo),
	}
	if cfg.Color != nil {
		e.Color = cfg.Color.String()
	}
	for _, p := range cfg.Processors {
		pe := ProcessorEntry{Type: p.Type}
		// unreadable settings are dropped so the processor falls back to defaults
		var settings map[string]any
		if len(p.Settings) > 0 && json.Unmarshal(p.Settings, &settings) == nil {
			pe.Settings = settings
		}
		e.Processors = append(e.Processors, pe)
	}
	return e
}
