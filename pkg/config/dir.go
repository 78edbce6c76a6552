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
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/chatfilters/pkg/filter"
)

// DefaultPattern matches every config file format we can parse
const DefaultPattern = "**/*.{json,yaml,yml,hcl}"

// 📂 LoadDir loads every config file under root matching pattern, in path
// order, and concatenates their filters. Filter names must be unique across
// all files.
func LoadDir(ctx context.Context, root, pattern string) ([]filter.Config, error) {
	logger := zerolog.Ctx(ctx)
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Errorf("invalid pattern %q", pattern)
	}

	paths, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("globbing %s in %s: %w", pattern, root, err)
	}
	sort.Strings(paths)

	var all []filter.Config
	owner := map[string]string{}
	for _, rel := range paths {
		path := filepath.Join(root, filepath.FromSlash(rel))
		cfgs, err := Load(ctx, path)
		if err != nil {
			return nil, err
		}
		for _, cfg := range cfgs {
			if prev, ok := owner[cfg.Name]; ok {
				return nil, errors.Errorf("filter %q in %s is already defined in %s", cfg.Name, path, prev)
			}
			owner[cfg.Name] = path
		}
		all = append(all, cfgs...)
	}

	logger.Debug().Str("root", root).Int("files", len(paths)).Int("filters", len(all)).Msg("loaded config directory")
	return all, nil
}
