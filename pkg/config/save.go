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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/chatfilters/pkg/filter"
)

// 💾 Marshal encodes filters for the given file name: YAML for .yaml/.yml,
// JSON otherwise.
func Marshal(filename string, cfgs []filter.Config) ([]byte, error) {
	file := File{Filters: make([]FilterEntry, 0, len(cfgs))}
	for _, cfg := range cfgs {
		file.Filters = append(file.Filters, EntryFromConfig(cfg))
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(&file); err != nil {
			return nil, errors.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Errorf("encoding YAML: %w", err)
		}
		return buf.Bytes(), nil
	case ".hcl":
		return nil, errors.Errorf("saving HCL is not supported")
	default:
		b, err := json.MarshalIndent(&file, "", "  ")
		if err != nil {
			return nil, errors.Errorf("encoding JSON: %w", err)
		}
		return append(b, '\n'), nil
	}
}

// Save writes filters to path
func Save(path string, cfgs []filter.Config) error {
	b, err := Marshal(path, cfgs)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return errors.Errorf("writing config file: %w", err)
	}
	return nil
}
