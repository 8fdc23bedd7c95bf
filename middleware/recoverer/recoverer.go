// Package recoverer converte panic de handler em 500, em vez de derrubar a
// conexão do cliente.
package recoverer

import (
	"log"
	"net/http"
)

func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						// sinal interno do net/http para abortar a resposta
						panic(rec)
					}
					log.Printf("panic em %s %s: %v", r.Method, r.URL.Path, rec)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
