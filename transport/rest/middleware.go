package rest

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type ctxSessionKey struct{}

func sessionID(ctx context.Context) string {
	id, _ := ctx.Value(ctxSessionKey{}).(string)
	return id
}

// withSession - resolves the session id from the signed cookie, a missing or invalid cookie starts a new session.
func (that *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := that.logger.With("method", "withSession")

		var id string
		if cookie, err := r.Cookie(that.cookie.Name); err == nil {
			if id, err = that.tokens.Parse(cookie.Value); err != nil {
				log.Debug("session cookie rejected", "error", err)
			}
		}

		if id == "" {
			id = uuid.NewString()

			token, err := that.tokens.Issue(id)
			if err != nil {
				log.Error("failed to issue session token", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     that.cookie.Name,
				Value:    token,
				Path:     "/",
				Expires:  time.Now().Add(that.cookie.TTL),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxSessionKey{}, id)))
	})
}

func (that *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			that.logger.Debug("request served",
				"request_id", chimw.GetReqID(r.Context()),
				"http_method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
