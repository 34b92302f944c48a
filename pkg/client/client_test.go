package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyepulse/buildmonitor/pkg/models"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *SessionStore) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := NewSessionStore(filepath.Join(t.TempDir(), "session.json"), nil)

	c, err := New(server.URL+"/api", store, nil, opts...)
	require.NoError(t, err)

	return c, store
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v interface{}) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewRequiresBaseURLAndStore(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "s.json"), nil)

	_, err := New("", store, nil)
	require.ErrorIs(t, err, errBaseURLRequired)

	_, err = New("http://localhost:8080/api", nil, nil)
	require.ErrorIs(t, err, errSessionRequired)
}

func TestRequestAttachesBearerToken(t *testing.T) {
	var gotAuth, gotAccept, gotRequestID string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotRequestID = r.Header.Get("X-Request-ID")
		writeJSON(t, w, http.StatusOK, []models.Alert{})
	})

	c, store := newTestClient(t, handler)
	require.NoError(t, store.Set(&models.Session{Token: "tok-abc", Role: models.RoleAdmin}))

	_, err := c.Alerts().List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-abc", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.NotEmpty(t, gotRequestID)
}

func TestRequestOmitsAuthWhenLoggedOut(t *testing.T) {
	var gotAuth string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, []models.Alert{})
	})

	c, _ := newTestClient(t, handler)

	_, err := c.Alerts().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestStatusErrorMessagePriority(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        string
	}{
		{"message field", "application/json", `{"message":"no such report"}`, "no such report"},
		{"error field", "application/json", `{"error":"backend exploded"}`, "backend exploded"},
		{"message beats error", "application/json", `{"message":"first","error":"second"}`, "first"},
		{"raw json body", "application/json", `{"detail":"other"}`, `{"detail":"other"}`},
		{"plain text body", "text/plain", "upstream timeout", "upstream timeout"},
		{"empty body", "application/json", "", "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(tt.body))
			})

			c, _ := newTestClient(t, handler)

			_, err := c.Reports().List(context.Background())
			require.Error(t, err)

			var ce *Error
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, KindStatus, ce.Kind)
			assert.Equal(t, http.StatusInternalServerError, ce.StatusCode)
			assert.Equal(t, tt.want, ce.Message)
		})
	}
}

func TestUnauthorizedClearsSessionAndFiresCallback(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "token expired"})
	})

	redirected := false

	c, store := newTestClient(t, handler, WithOnUnauthorized(func() { redirected = true }))
	require.NoError(t, store.Set(&models.Session{Token: "stale"}))

	_, err := c.Reports().List(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	assert.Nil(t, store.Current())
	assert.True(t, redirected)

	// The persisted copy is gone too.
	_, statErr := os.Stat(store.path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEmptyBodyDecodesToNothing(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	c, _ := newTestClient(t, handler)

	err := c.Reports().Delete(context.Background(), 7)
	require.NoError(t, err)
}

func TestSchemaMismatchIsDistinctFromParse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// An object where a list belongs.
		_, _ = w.Write([]byte(`{"oops": true}`))
	})

	c, _ := newTestClient(t, handler)

	_, err := c.Reports().List(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindSchema, KindOf(err))
}

func TestMalformedJSONIsParseError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"truncated":`))
	})

	c, _ := newTestClient(t, handler)

	_, err := c.Reports().List(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindParse, KindOf(err))
}

func TestOpaqueDestinationTakesBodyAsText(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"truncated":`))
	})

	c, _ := newTestClient(t, handler)

	var raw string

	err := c.request(context.Background(), http.MethodGet, "/reports", nil, &raw, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"truncated":`, raw)
}

func TestTransportErrorKind(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "s.json"), nil)

	// Nothing listens on this port.
	c, err := New("http://127.0.0.1:1/api", store, nil, WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = c.Reports().List(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
	assert.True(t, Retryable(err))
}

func TestLoginInstallsSession(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "admin@example.com", req.Email)

		writeJSON(t, w, http.StatusOK, models.LoginResponse{
			Token: "tok-xyz",
			User:  models.User{ID: "u1", Email: req.Email, Role: models.RoleAdmin},
		})
	})

	c, store := newTestClient(t, handler)

	sess, err := c.Auth().Login(context.Background(), models.LoginRequest{
		Email:    "admin@example.com",
		Password: "hunter2",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-xyz", sess.Token)

	assert.Equal(t, "tok-xyz", store.Token())
}

func TestLoginValidatesCredentialsFirst(t *testing.T) {
	called := false

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	c, _ := newTestClient(t, handler)

	_, err := c.Auth().Login(context.Background(), models.LoginRequest{Email: "not-an-email"})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.False(t, called, "validation failures must not reach the network")
}

func TestVerifySessionCollapsesFailuresToFalse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	c, _ := newTestClient(t, handler)
	assert.False(t, c.Auth().VerifySession(context.Background()))

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]bool{"valid": true})
	})

	c2, _ := newTestClient(t, okHandler)
	assert.True(t, c2.Auth().VerifySession(context.Background()))
}

func TestLogoutClearsSessionEvenWhenRequestFails(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	c, store := newTestClient(t, handler)
	require.NoError(t, store.Set(&models.Session{Token: "tok"}))

	err := c.Auth().Logout(context.Background())
	require.Error(t, err)
	assert.Nil(t, store.Current())
}

func TestCreateReportSendsMultipart(t *testing.T) {
	var (
		gotContentType string
		gotLocation    string
		gotCoords      string
		gotFiles       int
	)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")

		require.NoError(t, r.ParseMultipartForm(32<<20))
		gotLocation = r.FormValue("location")
		gotCoords = r.FormValue("coordinates")

		if r.MultipartForm != nil {
			gotFiles = len(r.MultipartForm.File["images"])
		}

		writeJSON(t, w, http.StatusCreated, models.Report{
			ID:          1,
			Location:    r.FormValue("location"),
			Description: r.FormValue("description"),
			Status:      models.ReportStatusPending,
		})
	})

	c, _ := newTestClient(t, handler)

	imgPath := filepath.Join(t.TempDir(), "site.jpg")
	require.NoError(t, os.WriteFile(imgPath, []byte{0xFF, 0xD8, 0xFF, 0xE0}, 0o600))

	report, err := c.Reports().Create(context.Background(), models.ReportDraft{
		Location:    "Plot 12, Riverside",
		Description: "Unauthorized wall going up",
		Priority:    models.PriorityHigh,
		Coordinates: &models.Coordinates{Lat: 28.61, Lng: 77.2},
		ImagePaths:  []string{imgPath},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, report.Status)

	assert.True(t, strings.HasPrefix(gotContentType, "multipart/form-data"))
	assert.NotEqual(t, "application/json", gotContentType)
	assert.Equal(t, "Plot 12, Riverside", gotLocation)
	assert.JSONEq(t, `{"lat":28.61,"lng":77.2}`, gotCoords)
	assert.Equal(t, 1, gotFiles)
}

func TestCreateReportFailsFastOnMissingFields(t *testing.T) {
	called := false

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	c, _ := newTestClient(t, handler)

	_, err := c.Reports().Create(context.Background(), models.ReportDraft{Location: "somewhere"})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.False(t, Retryable(err))
	assert.False(t, called)
}

func TestUpdateReportStatusRejectsInvalidTransitions(t *testing.T) {
	c, _ := newTestClient(t, http.NotFoundHandler())

	_, err := c.Reports().UpdateStatus(context.Background(), 1, models.ReportStatusPending)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestUpdateReportStatusSendsPatch(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/reports/42/status", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "approved", body["status"])

		writeJSON(t, w, http.StatusOK, models.Report{
			ID: 42, Location: "loc", Description: "desc", Status: models.ReportStatusApproved,
		})
	})

	c, _ := newTestClient(t, handler)

	report, err := c.Reports().UpdateStatus(context.Background(), 42, models.ReportStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusApproved, report.Status)
}

func TestListByAreaSerializesBounds(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/encroachments/area", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "28.7", q.Get("north"))
		assert.Equal(t, "28.5", q.Get("south"))
		assert.Equal(t, "77.3", q.Get("east"))
		assert.Equal(t, "77.1", q.Get("west"))

		writeJSON(t, w, http.StatusOK, []models.Encroachment{})
	})

	c, _ := newTestClient(t, handler)

	_, err := c.Encroachments().ListByArea(context.Background(), models.AreaBounds{
		North: 28.7, South: 28.5, East: 77.3, West: 77.1,
	})
	require.NoError(t, err)
}

func TestUnreadCountDefaultsToZeroOnEmptyObject(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	c, _ := newTestClient(t, handler)

	count, err := c.Alerts().UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFetchOverviewJoinsConcurrentFetches(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/reports":
			writeJSON(t, w, http.StatusOK, []models.Report{
				{ID: 1, Location: "loc", Description: "d", Status: models.ReportStatusPending},
			})
		case "/api/encroachments":
			writeJSON(t, w, http.StatusOK, []models.Encroachment{
				{
					ID:          "e1",
					Coordinates: models.Coordinates{Lat: 28.6, Lng: 77.2},
					Status:      models.EncroachmentStatusNew,
					Confidence:  90,
				},
			})
		case "/api/alerts":
			writeJSON(t, w, http.StatusOK, []models.Alert{{ID: 1, IsRead: false}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	c, _ := newTestClient(t, handler)

	overview, err := c.FetchOverview(context.Background())
	require.NoError(t, err)
	assert.Len(t, overview.Reports, 1)
	assert.Len(t, overview.Encroachments, 1)
	assert.Len(t, overview.Alerts, 1)
}

func TestFetchOverviewKeepsPartialResultsOnFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/alerts" {
			writeJSON(t, w, http.StatusInternalServerError, map[string]string{"error": "alerts down"})
			return
		}

		switch r.URL.Path {
		case "/api/reports":
			writeJSON(t, w, http.StatusOK, []models.Report{
				{ID: 1, Location: "loc", Description: "d", Status: models.ReportStatusPending},
			})
		case "/api/encroachments":
			writeJSON(t, w, http.StatusOK, []models.Encroachment{})
		}
	})

	c, _ := newTestClient(t, handler)

	overview, err := c.FetchOverview(context.Background())
	require.Error(t, err)
	require.NotNil(t, overview)
	assert.Len(t, overview.Reports, 1)
}
