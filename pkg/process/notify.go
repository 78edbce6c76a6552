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
	"os"
	"runtime"

	"github.com/gen2brain/beeep"
)

// 🔔 NotifySpeaker shows narration as desktop notifications. It is best
// effort: failures are dropped and nothing is shown on headless Linux.
type NotifySpeaker struct {
	title  string
	notify func(title, body string) error
}

// NewNotifySpeaker creates a NotifySpeaker using title for every notification
func NewNotifySpeaker(title string) *NotifySpeaker {
	return &NotifySpeaker{
		title: title,
		notify: func(title, body string) error {
			return beeep.Notify(title, body, "")
		},
	}
}

// Say implements Speaker. Notifications cannot be interrupted, so interrupt
// is ignored.
func (n *NotifySpeaker) Say(text string, _ bool) {
	if text == "" || headless() {
		return
	}
	_ = n.notify(n.title, text)
}

func headless() bool {
	return runtime.GOOS == "linux" && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == ""
}
