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

package opts

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/chatfilters/pkg/config"
	"github.com/walteh/chatfilters/pkg/filter"
)

// 🎛️ RootOpts holds the flags shared by every command
type RootOpts struct {
	ConfigFile string // a single filter file
	ConfigDir  string // a directory of filter files, used instead of ConfigFile
	Pattern    string // glob for ConfigDir
	Debug      bool
}

// Level returns the zerolog level the flags ask for. Without --debug only
// warnings reach stderr, so console output is not repeated there.
func (o *RootOpts) Level() zerolog.Level {
	if o.Debug {
		return zerolog.DebugLevel
	}
	return zerolog.WarnLevel
}

// Source names where Filters reads from
func (o *RootOpts) Source() string {
	if o.ConfigDir != "" {
		return o.ConfigDir
	}
	return o.ConfigFile
}

// 📚 Filters loads the configured filter set
func (o *RootOpts) Filters(ctx context.Context) ([]filter.Config, error) {
	if o.ConfigDir != "" {
		cfgs, err := config.LoadDir(ctx, o.ConfigDir, o.Pattern)
		if err != nil {
			return nil, errors.Errorf("loading config dir: %w", err)
		}
		return cfgs, nil
	}

	if o.ConfigFile == "" {
		return nil, errors.Errorf("no config: set --config or --dir")
	}
	cfgs, err := config.Load(ctx, o.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfgs, nil
}
