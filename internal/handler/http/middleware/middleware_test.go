package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokenAuth = jwtauth.New("HS256", []byte("test-secret"), nil)

func issue(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	_, token, err := tokenAuth.Encode(claims)
	require.NoError(t, err)
	return token
}

func protected(h http.Handler) http.Handler {
	return jwtauth.Verifier(tokenAuth)(AuthRequired(h))
}

func TestAuthRequired(t *testing.T) {
	var seen *user.Actor
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name     string
		token    string
		wantCode int
	}{
		{name: "no token", wantCode: http.StatusUnauthorized},
		{name: "garbage token", token: "not-a-jwt", wantCode: http.StatusUnauthorized},
		{
			name:     "refresh token",
			token:    issue(t, map[string]interface{}{"type": "refresh", "employee_id": "emp-1", "role": "employee"}),
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "no employee",
			token:    issue(t, map[string]interface{}{"type": "access", "role": "owner"}),
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "valid access token",
			token:    issue(t, map[string]interface{}{"type": "access", "employee_id": "emp-1", "role": "hr_admin"}),
			wantCode: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			protected(ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusNoContent {
				require.NotNil(t, seen)
				assert.Equal(t, "emp-1", seen.EmployeeID)
				assert.Equal(t, user.RoleHRAdmin, seen.Role)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := RequirePermission(user.PermissionAttendanceManage)(ok)

	tests := []struct {
		name     string
		actor    *user.Actor
		wantCode int
	}{
		{"no actor", nil, http.StatusUnauthorized},
		{"employee", &user.Actor{EmployeeID: "e", Role: user.RoleEmployee}, http.StatusForbidden},
		{"manager", &user.Actor{EmployeeID: "m", Role: user.RoleManager}, http.StatusForbidden},
		{"hr admin", &user.Actor{EmployeeID: "h", Role: user.RoleHRAdmin}, http.StatusNoContent},
		{"owner", &user.Actor{EmployeeID: "o", Role: user.RoleOwner}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.actor != nil {
				req = req.WithContext(WithActor(req.Context(), tt.actor))
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
