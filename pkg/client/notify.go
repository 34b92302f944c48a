/*
 * Copyright 2025 Skye Pulse.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package client

import "github.com/skyepulse/buildmonitor/pkg/logger"

// Notifier receives user-visible failure notifications from retry
// wrappers. The TUI routes these to its status bar; headless commands
// fall back to the log.
type Notifier interface {
	Notify(title, message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(title, message string)

func (f NotifierFunc) Notify(title, message string) { f(title, message) }

// NewLogNotifier returns a Notifier that writes to the structured log.
func NewLogNotifier(log logger.Logger) Notifier {
	scoped := log.WithComponent("notify")

	return NotifierFunc(func(title, message string) {
		scoped.Error().Str("title", title).Msg(message)
	})
}
