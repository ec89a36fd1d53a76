package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yodaslang/yodas-api/internal/api/shared"
)

func TestLogin(t *testing.T) {
	a := newTestAPI(t, true)

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantError  string
	}{
		{
			name:       "wrong password",
			body:       LoginRequest{Username: testUsername, Password: "nope nope nope"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid credentials",
		},
		{
			name:       "unknown user",
			body:       LoginRequest{Username: "ghost", Password: testPassword},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid credentials",
		},
		{
			name:       "missing password",
			body:       map[string]string{"username": testUsername},
			wantStatus: http.StatusBadRequest,
			wantError:  "Username and password required",
		},
		{
			name:       "malformed body",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Username and password required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out shared.ErrorResponse
			resp := a.do(http.MethodPost, "/login", tt.body, &out)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantError, out.Error)
			assert.NotEmpty(t, out.TraceID)
		})
	}
}

func TestLoginLogoutCycle(t *testing.T) {
	a := newTestAPI(t, true)

	resp := a.do(http.MethodGet, "/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var ok LoginResponse
	resp = a.do(http.MethodPost, "/login", LoginRequest{Username: testUsername, Password: testPassword}, &ok)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, ok.Success)

	var me map[string]int64
	resp = a.do(http.MethodGet, "/me", nil, &me)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Positive(t, me["userId"])

	resp = a.do(http.MethodPost, "/logout", nil, &ok)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = a.do(http.MethodGet, "/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMutatingRoutesRequireLogin(t *testing.T) {
	a := newTestAPI(t, true)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/sets"},
		{http.MethodDelete, "/sets?setName=A&setLang=spanish"},
		{http.MethodDelete, "/sets/1"},
		{http.MethodPut, "/sets/updateSetFolder"},
		{http.MethodPost, "/sets/1/terms"},
		{http.MethodDelete, "/sets/1/terms"},
		{http.MethodPost, "/ops/addData/spanish"},
		{http.MethodDelete, "/ops/removeData/spanish?word=hola"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			resp := a.do(rt.method, rt.path, `{}`, nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}

	resp := a.do(http.MethodGet, "/sets/folders", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
