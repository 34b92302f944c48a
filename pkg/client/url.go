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

import "strings"

// JoinURL joins a base URL and a path with exactly one separator,
// whatever mix of leading and trailing slashes the inputs carry.
func JoinURL(base, path string) string {
	base = strings.TrimRight(base, "/")

	if path == "" {
		return base
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return base + path
}
