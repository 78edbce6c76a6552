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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
//
//	filter "mentions" {
//	  find_type = "regex"
//	  find      = "@(\\w+)"
//	  color     = "gold"
//
//	  processor "narrator" {
//	    settings = { message = "$1 was mentioned" }
//	  }
//	}
//
// HCL reads "${" as interpolation, so named group references are written $${name}.
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// Define HCL schema
type hclFile struct {
	Filters []hclFilter `hcl:"filter,block"`
}

type hclFilter struct {
	Name        string         `hcl:"name,label"`
	Active      *bool          `hcl:"active,optional"`
	FindType    string         `hcl:"find_type,optional"`
	Find        string         `hcl:"find"`
	ReplaceType string         `hcl:"replace_type,optional"`
	ReplaceTo   string         `hcl:"replace_to,optional"`
	Color       string         `hcl:"color,optional"`
	Processors  []hclProcessor `hcl:"processor,block"`
}

type hclProcessor struct {
	Type     string    `hcl:"type,label"`
	Settings cty.Value `hcl:"settings,optional"`
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*File, error) {
	parser := hclparse.NewParser()
	hclF, diags := parser.ParseHCL(data, "filters.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Decode HCL
	var raw hclFile
	diags = gohcl.DecodeBody(hclF.Body, evalCtx, &raw)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	file := &File{}
	for _, f := range raw.Filters {
		entry := FilterEntry{
			Name:        f.Name,
			Active:      f.Active,
			FindType:    f.FindType,
			Find:        f.Find,
			ReplaceType: f.ReplaceType,
			ReplaceTo:   f.ReplaceTo,
			Color:       f.Color,
		}
		for _, pr := range f.Processors {
			settings, err := ctyToMap(pr.Settings)
			if err != nil {
				return nil, errors.Errorf("filter %q: processor %q settings: %w", f.Name, pr.Type, err)
			}
			entry.Processors = append(entry.Processors, ProcessorEntry{Type: pr.Type, Settings: settings})
		}
		file.Filters = append(file.Filters, entry)
	}

	return file, nil
}

// ctyToMap converts an HCL object value to a plain map through JSON
func ctyToMap(v cty.Value) (map[string]any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.Type().IsObjectType() && !v.Type().IsMapType() {
		return nil, errors.Errorf("settings must be an object, got %s", v.Type().FriendlyName())
	}

	b, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return nil, errors.Errorf("encoding settings: %w", err)
	}

	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, errors.Errorf("decoding settings: %w", err)
	}
	return out, nil
}
