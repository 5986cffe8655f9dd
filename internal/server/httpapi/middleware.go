package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/secure"

	"github.com/Sonchiik/Workout-Traker/internal/common"
	"github.com/Sonchiik/Workout-Traker/internal/httpx"
	"github.com/Sonchiik/Workout-Traker/internal/observability"
	"github.com/Sonchiik/Workout-Traker/internal/server/auth"
)

// MiddlewareConfig tunes the global middleware stack.
type MiddlewareConfig struct {
	Production     bool
	RequestTimeout time.Duration
}

func (h *Handler) middlewareStack(cfg MiddlewareConfig) []func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'",
		SSLRedirect:           cfg.Production,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         !cfg.Production,
	})

	timeout := 30 * time.Second
	if cfg.RequestTimeout > 0 {
		timeout = cfg.RequestTimeout
	}

	return []func(http.Handler) http.Handler{
		middleware.RealIP,
		middleware.RequestID,
		h.accessLog,
		middleware.Recoverer,
		middleware.Timeout(timeout),
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := secureMiddleware.Process(w, r); err != nil {
					h.logger.Warn(r.Context(), "secure headers blocked request", "error", err)
					return
				}
				next.ServeHTTP(w, r)
			})
		},
		h.metrics.Middleware,
	}
}

// accessLog logs one line per request. Headers and bodies are never logged.
func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		h.logger.Info(r.Context(), "http request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// authenticate requires a valid bearer token and stores the caller identity
// in the request context.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			h.metrics.RecordAuth(observability.AuthTokenMissing)
			httpx.Unauthorized(w)
			return
		}

		id, err := h.tokens.Verify(token)
		if err != nil {
			outcome := observability.AuthTokenInvalid
			if errors.Is(err, common.ErrTokenExpired) {
				outcome = observability.AuthTokenExpired
			}
			h.metrics.RecordAuth(outcome)
			h.logger.Debug(r.Context(), "token rejected", "reason", err.Error(),
				"request_id", middleware.GetReqID(r.Context()))
			httpx.Unauthorized(w)
			return
		}

		h.metrics.RecordAuth(observability.AuthTokenAccepted)
		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(common.AuthorizationHeaderName)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
