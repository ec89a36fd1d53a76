package middleware

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/yodaslang/yodas-api/internal/config"
	"github.com/yodaslang/yodas-api/internal/platform/sqlstore"
)

// Session keys.
const (
	SessionKeyUserID   = "user_id"
	SessionKeyUsername = "username"
	SessionKeyLoginAt  = "login_at"
)

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "yodas_session"

// SessionManager wraps scs.SessionManager with the login state helpers the
// API needs.
type SessionManager struct {
	*scs.SessionManager
	stopCleanup func()
}

// NewSessionManager builds a cookie session manager. Sessions are kept in
// the sessions table when the database is sqlite and in memory otherwise.
func NewSessionManager(db *sql.DB, dialect sqlstore.Dialect, cfg config.AuthConfig) *SessionManager {
	sm := scs.New()
	stop := func() {}

	if dialect == sqlstore.DialectSQLite && db != nil {
		st := sqlite3store.New(db)
		sm.Store = st
		stop = st.StopCleanup
	} else {
		st := memstore.New()
		sm.Store = st
		stop = st.StopCleanup
	}

	sm.Lifetime = cfg.SessionLifetime
	sm.IdleTimeout = cfg.SessionLifetime / 2
	sm.Cookie.Name = SessionCookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm, stopCleanup: stop}
}

// Login renews the session token and records the user.
func (sm *SessionManager) Login(r *http.Request, userID int64, username string) error {
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}
	sm.Put(r.Context(), SessionKeyUserID, userID)
	sm.Put(r.Context(), SessionKeyUsername, username)
	sm.Put(r.Context(), SessionKeyLoginAt, time.Now().UTC().Unix())
	return nil
}

// Logout destroys the session.
func (sm *SessionManager) Logout(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// UserID returns the logged in user's id or 0.
func (sm *SessionManager) UserID(r *http.Request) int64 {
	return sm.GetInt64(r.Context(), SessionKeyUserID)
}

// Close stops the background expiry sweep of the session store.
func (sm *SessionManager) Close() {
	sm.stopCleanup()
}
