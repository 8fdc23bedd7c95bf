// Package secure aplica um conjunto fixo de headers de segurança na resposta.
//
// É função pura da configuração: nada varia por request.
package secure

import (
	"net/http"
	"strconv"
)

type Options struct {
	ContentSecurityPolicy string
	FrameOptions          string
	ReferrerPolicy        string
	// EnableHSTS deve ficar ligado apenas quando o serviço atende atrás de TLS
	// (ambiente production).
	EnableHSTS        bool
	HSTSMaxAgeSeconds int
}

func Middleware(opts Options) func(next http.Handler) http.Handler {
	if opts.ContentSecurityPolicy == "" {
		opts.ContentSecurityPolicy = "default-src 'self'"
	}
	if opts.FrameOptions == "" {
		opts.FrameOptions = "SAMEORIGIN"
	}
	if opts.ReferrerPolicy == "" {
		opts.ReferrerPolicy = "no-referrer"
	}
	if opts.HSTSMaxAgeSeconds <= 0 {
		opts.HSTSMaxAgeSeconds = 15552000 // 180 dias
	}
	hsts := "max-age=" + strconv.Itoa(opts.HSTSMaxAgeSeconds) + "; includeSubDomains"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Content-Security-Policy", opts.ContentSecurityPolicy)
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", opts.FrameOptions)
			h.Set("Referrer-Policy", opts.ReferrerPolicy)
			h.Set("X-XSS-Protection", "0")
			if opts.EnableHSTS {
				h.Set("Strict-Transport-Security", hsts)
			}

			next.ServeHTTP(w, r)
		})
	}
}
