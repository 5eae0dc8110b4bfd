package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIdentity(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedUser   int64
	}{
		{
			name:           "Valid User ID",
			header:         "42",
			expectedStatus: http.StatusOK,
			expectedUser:   42,
		},
		{
			name:           "Missing Header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Non-Numeric Header",
			header:         "alice",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Zero User ID",
			header:         "0",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Negative User ID",
			header:         "-3",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				userID, ok := UserIDFromContext(r.Context())
				if !ok {
					t.Error("expected user ID in context, got none")
				}
				if userID != tt.expectedUser {
					t.Errorf("user ID = %d, want %d", userID, tt.expectedUser)
				}
				w.WriteHeader(http.StatusOK)
			})

			handler := Identity(next)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("X-User-ID", tt.header)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}
