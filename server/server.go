package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"greeting-service/middleware/ratelimit"
	"greeting-service/middleware/ratelimit/domain"
	"greeting-service/middleware/ratelimit/infra"
	"greeting-service/middleware/recoverer"
	"greeting-service/middleware/requestid"
	"greeting-service/middleware/secure"

	"github.com/rs/cors"
)

// limiterStore é o que os dois stores de rate limit sabem fazer além de Get.
type limiterStore interface {
	domain.LimiterStore
	StartJanitor(infra.DoneContext)
}

// Server é a aplicação montada, ainda sem socket. New constrói; Run escuta.
// A separação existe para os testes exercitarem o handler direto.
type Server struct {
	cfg     Config
	stats   *infra.MemoryStatsStore
	store   limiterStore
	handler http.Handler
}

type Option func(*options)

type options struct {
	extraStats domain.StatsStore
}

// WithExtraStats adiciona um segundo destino de estatísticas (ex: Redis)
// além do store em memória que alimenta GET /stats.
func WithExtraStats(s domain.StatsStore) Option {
	return func(o *options) { o.extraStats = s }
}

func New(cfg Config, opts ...Option) *Server {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	s := &Server{
		cfg:   cfg,
		stats: infra.NewMemoryStatsStore(infra.WithTrackKeys(cfg.StatsTrackKeys)),
	}

	switch cfg.RateLimitStrategy {
	case "bucket":
		s.store = infra.NewBucketStore(cfg.RateLimitMax, cfg.RateLimitWindow)
	default:
		s.store = infra.NewWindowStore(cfg.RateLimitMax, cfg.RateLimitWindow)
	}

	stats := infra.MultiStats{s.stats}
	if o.extraStats != nil {
		stats = append(stats, o.extraStats)
	}

	// cadeia, de dentro pra fora: router <- ratelimit <- concorrência <-
	// normalização <- cors <- headers de segurança <- request id <- recover
	h := http.Handler(s.newRouter())
	if cfg.RateLimitEnabled {
		h = ratelimit.Middleware(ratelimit.Options{
			Store:               s.store,
			Stats:               stats,
			KeyHeader:           cfg.RateKeyHeader,
			TrustXForwardedFor:  cfg.TrustXFF,
			RejectStatus:        http.StatusTooManyRequests,
			RetryAfter:          cfg.RetryAfter,
			AddRateLimitHeaders: cfg.AddRateHeaders,
		})(h)
	}
	h = ratelimit.ConcurrencyMiddleware(ratelimit.ConcurrencyOptions{
		Max:            cfg.ConcurrencyMax,
		RejectStatus:   http.StatusServiceUnavailable,
		AcquireTimeout: cfg.ConcurrencyTimeout,
	})(h)
	h = normalizePath(h)
	if len(cfg.AllowedOrigins) > 0 {
		h = cors.New(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet},
		}).Handler(h)
	}
	h = secure.Middleware(secure.Options{
		EnableHSTS: cfg.Env == "production",
	})(h)
	h = requestid.Middleware()(h)
	h = recoverer.Middleware()(h)

	s.handler = h
	return s
}

func (s *Server) Handler() http.Handler { return s.handler }

// Run abre o socket e serve até o contexto cancelar; aí para de aceitar
// conexões e espera as em voo terminarem (drain com timeout).
func (s *Server) Run(ctx context.Context) error {
	s.store.StartJanitor(ctx)

	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("server running at http://%s/", srv.Addr)
	log.Printf("env=%s origins=%v", s.cfg.Env, s.cfg.AllowedOrigins)
	log.Printf("rate: enabled=%v strategy=%s max=%d window=%s", s.cfg.RateLimitEnabled, s.cfg.RateLimitStrategy, s.cfg.RateLimitMax, s.cfg.RateLimitWindow)
	log.Printf("concurrency: max=%d acquireTimeout=%s", s.cfg.ConcurrencyMax, s.cfg.ConcurrencyTimeout)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
