package middleware

import (
	"net/http"

	"github.com/dormdash/campus-eats/internal/metrics"
	"github.com/dormdash/campus-eats/internal/models"
	"github.com/dormdash/campus-eats/internal/service"
	"github.com/dormdash/campus-eats/internal/session"
)

// Session loads the visitor's cookie session into the request context
func Session(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := store.Load(r)
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// RequireAccess applies the page's access rule before rendering it.
// Denied requests are redirected without any error message.
func RequireAccess(nav *service.Navigator, page models.PageName, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision, err := nav.AuthorizePage(GetSession(r.Context()), page)
			if err != nil {
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			if m != nil {
				m.Access(string(page), decision.String())
			}

			if !decision.Allow {
				http.Redirect(w, r, nav.Route(decision.Target), http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
