package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/summitworks/eventreg/internal/session"
	"github.com/summitworks/eventreg/pkg/helpers"
)

// sessionKey is the gin context key holding the *session.Context.
const sessionKey = "session"

// FromContext returns the request's session context. The session middleware
// installs one on every request, so handlers behind it can assume non-nil.
func FromContext(c *gin.Context) *session.Context {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*session.Context); ok {
			return s
		}
	}
	return session.New("", nil)
}

// Session resolves the cookie token into a session context before the
// handler runs and persists the outcome afterwards. Persistence has to
// happen before the first response byte so Set-Cookie can still go out, so
// the response writer is wrapped and the flush hooks onto the first write.
//
// Persist rules: a mutated session is saved whole-record (minting a token
// and setting the cookie when it had none), a destroyed session is deleted
// and the cookie cleared, and an untouched existing session only has its
// inactivity window slid. A store failure at load or persist time turns
// the response into a 500.
func Session(store session.Store, cookies *helpers.CookieManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookies.Name)

		var sess *session.Context
		if token != "" {
			rec, err := store.Get(c.Request.Context(), token)
			switch {
			case err == nil:
				sess = session.New(token, rec.Values)
			case errors.Is(err, session.ErrNotFound):
				// Stale cookie; proceed anonymous and mint fresh on write.
				sess = session.New("", nil)
			default:
				// Not a stale token but a store outage; the client holds a
				// token we cannot resolve, so failing closed is the only
				// honest answer.
				logger.WithError(err).Error("session load failed")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Session error"})
				return
			}
		} else {
			sess = session.New("", nil)
		}
		c.Set(sessionKey, sess)

		sw := &sessionWriter{
			ResponseWriter: c.Writer,
			persist: func() error {
				return persistSession(c, sess, store, cookies)
			},
		}
		c.Writer = sw
		c.Next()

		// Handlers that never wrote a byte still need their session flushed.
		if err := sw.flush(); err != nil {
			logger.WithError(err).Error("session persist failed")
			c.Writer = sw.ResponseWriter
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Session error"})
			return
		}
		if sw.persistErr != nil {
			logger.WithError(sw.persistErr).Error("session persist failed")
		}
	}
}

func persistSession(c *gin.Context, sess *session.Context, store session.Store, cookies *helpers.CookieManager) error {
	ctx := c.Request.Context()

	if sess.Destroyed() {
		if sess.Token() != "" {
			if err := store.Delete(ctx, sess.Token()); err != nil {
				return err
			}
		}
		cookies.Clear(c)
		return nil
	}

	if sess.Dirty() {
		token := sess.Token()
		if token == "" {
			var err error
			if token, err = session.NewToken(); err != nil {
				return err
			}
		}
		if err := store.Save(ctx, token, sess.Values(), 0); err != nil {
			return err
		}
		// Cookie lifetime tracks the inactivity window; re-setting it on
		// every persist is what makes the client side slide too.
		cookies.Set(c, token, store.TTL())
		return nil
	}

	// Untouched but resolved: activity alone slides the window.
	if sess.Token() != "" {
		return store.Touch(ctx, sess.Token(), 0)
	}
	return nil
}

// sessionWriter delays session persistence until the moment the response
// starts, the last point where headers can still change.
type sessionWriter struct {
	gin.ResponseWriter
	persist    func() error
	persisted  bool
	persistErr error
	failed     bool
}

func (w *sessionWriter) runPersist() {
	if w.persisted {
		return
	}
	w.persisted = true
	w.persistErr = w.persist()
}

func (w *sessionWriter) WriteHeader(code int) {
	w.runPersist()
	if w.persistErr != nil {
		w.failOut()
		return
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.runPersist()
	if w.persistErr != nil {
		w.failOut()
		// Report the bytes as written so the handler does not error out on
		// its own; the client already got the failure body.
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// WriteHeaderNow covers abort paths that flush headers directly.
func (w *sessionWriter) WriteHeaderNow() {
	w.runPersist()
	if w.persistErr != nil {
		w.failOut()
		return
	}
	w.ResponseWriter.WriteHeaderNow()
}

// failOut replaces whatever the handler wanted to send with the session
// failure response. Runs at most once.
func (w *sessionWriter) failOut() {
	if w.failed {
		return
	}
	w.failed = true
	w.ResponseWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.ResponseWriter.WriteHeader(http.StatusInternalServerError)
	_, _ = w.ResponseWriter.Write([]byte(`{"error":"Session error"}`))
}

// flush persists for handlers that finished without writing. Returns the
// persist error only when no failure body has been sent yet.
func (w *sessionWriter) flush() error {
	if w.persisted {
		return nil
	}
	w.persisted = true
	if err := w.persist(); err != nil {
		return err
	}
	return nil
}
