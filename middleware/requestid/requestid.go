// Package requestid garante um X-Request-Id por request, reaproveitando o
// valor enviado pelo cliente quando houver.
package requestid

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const Header = "X-Request-Id"

func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(Header))
			if id == "" {
				id = uuid.NewString()
				r.Header.Set(Header, id)
			}
			w.Header().Set(Header, id)

			next.ServeHTTP(w, r)
		})
	}
}
