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

// Package client is the typed HTTP access layer for the BuildMonitor
// backend: one request path, bearer auth from the session store, JSON
// and multipart bodies, and normalized errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/skyepulse/buildmonitor/pkg/logger"
)

const (
	// DefaultBaseURL matches the backend's development address.
	DefaultBaseURL = "http://localhost:8080/api"

	defaultHTTPTimeout = 15 * time.Second

	contentTypeJSON = "application/json"
)

var (
	errBaseURLRequired = errors.New("base url is required")
	errSessionRequired = errors.New("session store is required")
)

// Client issues requests against the configured base URL. All resource
// façades are stateless views over it; callers own caching and state.
type Client struct {
	baseURL        string
	http           *http.Client
	sessions       *SessionStore
	logger         zerolog.Logger
	validate       *validator.Validate
	onUnauthorized func()
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient substitutes the transport, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithOnUnauthorized registers the hook run after an auth failure has
// torn the session down. The CLI uses it to route back to login.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New creates a Client.
func New(baseURL string, sessions *SessionStore, log logger.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errBaseURLRequired
	}

	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	if sessions == nil {
		return nil, errSessionRequired
	}

	if log == nil {
		log = logger.NewNop()
	}

	c := &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: defaultHTTPTimeout},
		sessions: sessions,
		logger:   log.WithComponent("client"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Sessions exposes the session holder backing this client.
func (c *Client) Sessions() *SessionStore { return c.sessions }

// requestOptions tune a single request.
type requestOptions struct {
	noAuth bool
	query  url.Values
	files  []filePart
	fields map[string]string
}

// filePart is one file attached to a multipart submission.
type filePart struct {
	field string
	path  string
}

// request performs one HTTP call. body is JSON-marshaled unless the
// options carry multipart fields; out receives the decoded response and
// may be nil for calls whose body is ignored.
func (c *Client) request(ctx context.Context, method, path string, body, out interface{}, opts *requestOptions) error {
	if opts == nil {
		opts = &requestOptions{}
	}

	endpoint := JoinURL(c.baseURL, path)
	if len(opts.query) > 0 {
		endpoint += "?" + opts.query.Encode()
	}

	var (
		reqBody     io.Reader
		contentType string
	)

	switch {
	case opts.fields != nil || len(opts.files) > 0:
		buf, boundary, err := encodeMultipart(opts.fields, opts.files)
		if err != nil {
			return err
		}

		reqBody = buf
		contentType = boundary
	case body != nil:
		payload, err := json.Marshal(body)
		if err != nil {
			return newError(KindValidation, "failed to encode request body", err)
		}

		reqBody = bytes.NewReader(payload)
		contentType = contentTypeJSON
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return newError(KindTransport, "failed to create request", err)
	}

	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("X-Request-ID", uuid.NewString())

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if !opts.noAuth {
		if token := c.sessions.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("url", endpoint).Msg("Transport failure")
		return newError(KindTransport, "network request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return newError(KindTransport, "failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp, text)
	}

	return c.decode(resp, text, out)
}

// statusError normalizes a non-2xx response. Message priority: a
// structured message/error field, then the raw body, then the status
// phrase. Auth failures additionally tear the session down.
func (c *Client) statusError(resp *http.Response, body []byte) error {
	message := extractMessage(resp.Header.Get("Content-Type"), body)
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	if message == "" {
		message = fmt.Sprintf("request failed: %d", resp.StatusCode)
	}

	kind := KindStatus
	if resp.StatusCode == http.StatusUnauthorized {
		kind = KindUnauthorized

		if err := c.sessions.Clear(); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to clear session after unauthorized response")
		}

		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Str("message", message).
		Msg("Request failed")

	return &Error{Kind: kind, StatusCode: resp.StatusCode, Message: message}
}

func extractMessage(contentType string, body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}

	if strings.Contains(contentType, contentTypeJSON) {
		var parsed map[string]interface{}
		if err := json.Unmarshal(body, &parsed); err == nil {
			if msg, ok := parsed["message"].(string); ok && msg != "" {
				return msg
			}

			if msg, ok := parsed["error"].(string); ok && msg != "" {
				return msg
			}
		}
	}

	return text
}

// decode maps a success response onto out. Empty bodies decode to
// nothing; non-JSON bodies only satisfy string/raw destinations; typed
// destinations are schema-validated after unmarshaling.
func (c *Client) decode(resp *http.Response, body []byte, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	// Opaque destinations take the body as-is regardless of content type.
	switch dst := out.(type) {
	case *string:
		*dst = string(body)
		return nil
	case *json.RawMessage:
		*dst = append((*dst)[:0], body...)
		return nil
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, contentTypeJSON) {
		return newError(KindSchema,
			fmt.Sprintf("expected JSON response, got %q", contentType), nil)
	}

	if err := json.Unmarshal(body, out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return newError(KindSchema, "response does not match expected type", err)
		}

		return newError(KindParse, "response claimed JSON but failed to parse", err)
	}

	if err := c.validateDecoded(out); err != nil {
		return newError(KindSchema, "response failed schema validation", err)
	}

	return nil
}

// validateDecoded runs validator tags over decoded payloads: structs
// directly, slices element-wise.
func (c *Client) validateDecoded(out interface{}) error {
	v := reflect.ValueOf(out)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		return c.validate.Struct(v.Interface())
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i)
			if elem.Kind() == reflect.Struct {
				if err := c.validate.Struct(elem.Interface()); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// encodeMultipart builds a multipart/form-data body. The returned
// content type carries the boundary; it is never application/json.
func encodeMultipart(fields map[string]string, files []filePart) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", newError(KindValidation, "failed to encode form field", err)
		}
	}

	for _, file := range files {
		f, err := os.Open(file.path)
		if err != nil {
			return nil, "", newError(KindValidation,
				fmt.Sprintf("cannot open attachment %s", file.path), err)
		}

		part, err := writer.CreateFormFile(file.field, filepath.Base(file.path))
		if err == nil {
			_, err = io.Copy(part, f)
		}

		_ = f.Close()

		if err != nil {
			return nil, "", newError(KindValidation,
				fmt.Sprintf("failed to attach %s", file.path), err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", newError(KindValidation, "failed to finalize multipart body", err)
	}

	return buf, writer.FormDataContentType(), nil
}
