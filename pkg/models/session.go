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

package models

import "time"

// Role is the authenticated identity class.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCitizen Role = "citizen"
)

// User is the identity block returned by /auth/login.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Session is the authenticated context held for the life of a client
// process. Created on login, destroyed on logout or on the first
// unauthorized response from any call.
type Session struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
	User  User   `json:"user"`
	// ExpiresAt is decoded locally from the token's exp claim when
	// present. Zero means unknown; the backend remains authoritative.
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the locally known expiry has passed. Unknown
// expiries never report expired.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// LoginRequest is the /auth/login body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"omitempty,oneof=admin citizen"`
}

// LoginResponse is the /auth/login reply.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
