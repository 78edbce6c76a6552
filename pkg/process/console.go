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
	"io"

	"github.com/pterm/pterm"
)

// 🖥️ ConsoleSpeaker prints what would be spoken instead of speaking it
type ConsoleSpeaker struct {
	printer *pterm.PrefixPrinter
}

// NewConsoleSpeaker creates a ConsoleSpeaker writing to w
func NewConsoleSpeaker(w io.Writer) *ConsoleSpeaker {
	return &ConsoleSpeaker{
		printer: pterm.Info.WithPrefix(pterm.Prefix{Text: "🗣️ SAY", Style: pterm.Info.Prefix.Style}).WithWriter(w),
	}
}

// Say implements Speaker
func (c *ConsoleSpeaker) Say(text string, interrupt bool) {
	if interrupt {
		c.printer.Printfln("%s (interrupt)", text)
		return
	}
	c.printer.Println(text)
}

// 🖥️ ConsolePlayer prints which sound would be played
type ConsolePlayer struct {
	printer *pterm.PrefixPrinter
}

// NewConsolePlayer creates a ConsolePlayer writing to w
func NewConsolePlayer(w io.Writer) *ConsolePlayer {
	return &ConsolePlayer{
		printer: pterm.Info.WithPrefix(pterm.Prefix{Text: "🔔 SOUND", Style: pterm.Info.Prefix.Style}).WithWriter(w),
	}
}

// Play implements Player
func (c *ConsolePlayer) Play(id string, volume, pitch float64) {
	c.printer.Printfln("%s (volume %.2f, pitch %.2f)", id, volume, pitch)
}
