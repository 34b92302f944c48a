package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinURLSingleSeparator(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{"no slashes", "http://localhost:8080/api", "reports", "http://localhost:8080/api/reports"},
		{"path slash", "http://localhost:8080/api", "/reports", "http://localhost:8080/api/reports"},
		{"base slash", "http://localhost:8080/api/", "reports", "http://localhost:8080/api/reports"},
		{"both slashes", "http://localhost:8080/api/", "/reports", "http://localhost:8080/api/reports"},
		{"trailing pile", "http://localhost:8080/api///", "/reports", "http://localhost:8080/api/reports"},
		{"empty path", "http://localhost:8080/api/", "", "http://localhost:8080/api"},
		{"nested path", "https://api.example.com", "alerts/read-all", "https://api.example.com/alerts/read-all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinURL(tt.base, tt.path))
		})
	}
}
