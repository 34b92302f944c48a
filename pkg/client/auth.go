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

import (
	"context"
	"net/http"

	"github.com/skyepulse/buildmonitor/pkg/models"
)

// AuthService handles login, logout and session liveness.
type AuthService struct {
	client *Client
}

// Auth returns the authentication façade.
func (c *Client) Auth() *AuthService { return &AuthService{client: c} }

// Login authenticates and installs the resulting session in the store.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	if err := s.client.validate.Struct(req); err != nil {
		return nil, newError(KindValidation, "email and password are required", err)
	}

	var resp models.LoginResponse

	err := s.client.request(ctx, http.MethodPost, "/auth/login", req, &resp, &requestOptions{noAuth: true})
	if err != nil {
		return nil, err
	}

	sess := SessionFromLogin(&resp)
	if err := s.client.sessions.Set(sess); err != nil {
		return nil, err
	}

	return sess, nil
}

// Logout tells the backend goodbye and clears the session either way:
// a failed logout call must not leave a live token on disk.
func (s *AuthService) Logout(ctx context.Context) error {
	reqErr := s.client.request(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)

	if err := s.client.sessions.Clear(); err != nil {
		return err
	}

	return reqErr
}

// VerifySession checks token liveness. It never fails: any error at all
// collapses to false.
func (s *AuthService) VerifySession(ctx context.Context) bool {
	err := s.client.request(ctx, http.MethodGet, "/auth/verify", nil, nil, nil)
	return err == nil
}
