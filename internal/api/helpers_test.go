package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yodaslang/yodas-api/internal/api/middleware"
	"github.com/yodaslang/yodas-api/internal/config"
	"github.com/yodaslang/yodas-api/internal/domain"
	"github.com/yodaslang/yodas-api/internal/platform/sqlstore"
	"github.com/yodaslang/yodas-api/internal/service"
	"github.com/yodaslang/yodas-api/internal/testdb"
	"golang.org/x/crypto/bcrypt"
)

const (
	testUsername = "sensei"
	testPassword = "correct horse battery"
)

// testAPI is a running server backed by a fresh database.
type testAPI struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
	terms  *sqlstore.TermStore
	sets   *sqlstore.SetStore
}

func newTestAPI(t *testing.T, authEnabled bool) *testAPI {
	t.Helper()

	db := testdb.New(t)
	terms := sqlstore.NewTermStore(db, testdb.Dialect, nil)
	sets := sqlstore.NewSetStore(db, testdb.Dialect, nil)
	links := sqlstore.NewLinkageStore(db, testdb.Dialect, nil)
	users := sqlstore.NewUserStore(db, testdb.Dialect, nil)

	termSvc, err := service.NewTermService(terms, nil)
	require.NoError(t, err)
	assocSvc, err := service.NewAssociationService(db, sets, terms, links, nil)
	require.NoError(t, err)
	setSvc, err := service.NewSetService(db, sets, links, assocSvc, nil)
	require.NoError(t, err)
	hierarchySvc, err := service.NewHierarchyService(sets, nil)
	require.NoError(t, err)
	authSvc, err := service.NewAuthService(users, bcrypt.MinCost, nil)
	require.NoError(t, err)

	_, err = authSvc.CreateUser(context.Background(), testUsername, testPassword)
	require.NoError(t, err)

	sessions := middleware.NewSessionManager(db, testdb.Dialect, config.AuthConfig{SessionLifetime: time.Hour})
	t.Cleanup(sessions.Close)

	handler := NewRouter(RouterConfig{
		Terms:        termSvc,
		Sets:         setSvc,
		Associations: assocSvc,
		Hierarchy:    hierarchySvc,
		Auth:         authSvc,
		Sessions:     sessions,
		AuthEnabled:  authEnabled,
		QueryTimeout: 5 * time.Second,
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := srv.Client()
	client.Jar = jar

	return &testAPI{t: t, srv: srv, client: client, terms: terms, sets: sets}
}

// do sends body as JSON and decodes the response into out when out is not nil.
func (a *testAPI) do(method, path string, body any, out any) *http.Response {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(a.t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req, err := http.NewRequestWithContext(context.Background(), method, a.srv.URL+path, reader)
	require.NoError(a.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	require.NoError(a.t, err)
	defer func() { _ = resp.Body.Close() }()

	if out != nil {
		require.NoError(a.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func (a *testAPI) login() {
	a.t.Helper()
	resp := a.do(http.MethodPost, "/login", LoginRequest{Username: testUsername, Password: testPassword}, nil)
	require.Equal(a.t, http.StatusOK, resp.StatusCode)
}

func (a *testAPI) seedTerms(lang domain.Language, words ...string) []int64 {
	a.t.Helper()
	ids := make([]int64, 0, len(words))
	for _, w := range words {
		id, err := a.terms.Create(context.Background(), lang, domain.TermEntry{Word: w, Definition: w + "!"})
		require.NoError(a.t, err)
		ids = append(ids, id)
	}
	return ids
}

func (a *testAPI) createSet(lang domain.Language, name, folder string, termIDs ...int64) CreateSetResponse {
	a.t.Helper()
	var out CreateSetResponse
	resp := a.do(http.MethodPost, "/sets", CreateSetRequest{
		Language: string(lang),
		Name:     name,
		Folder:   folder,
		TermIDs:  termIDs,
	}, &out)
	require.Equal(a.t, http.StatusCreated, resp.StatusCode)
	return out
}
