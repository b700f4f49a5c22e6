package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dealdesk/internal/auth"
)

func TestAuthenticate(t *testing.T) {
	v := auth.NewVerifier("secret", "dealdesk")
	want := auth.Principal{OrgID: uuid.New(), ActorID: uuid.New()}

	token, err := v.Issue(want, time.Hour)
	require.NoError(t, err)

	var got auth.Principal

	h := Authenticate(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "Valid", header: "Bearer " + token, status: http.StatusNoContent},
		{name: "Missing", header: "", status: http.StatusUnauthorized},
		{name: "WrongScheme", header: "Basic " + token, status: http.StatusUnauthorized},
		{name: "Garbage", header: "Bearer not-a-token", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}

	assert.Equal(t, want, got)
}
