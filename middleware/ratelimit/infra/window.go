package infra

import (
	"sync"
	"time"

	"greeting-service/middleware/ratelimit/domain"
)

// WindowStore é um contador por chave dentro de uma janela de tempo.
//
// Cada chave guarda (contagem, início da janela). A janela começa no primeiro
// request da chave e, quando expira, contagem e início reiniciam. É o único
// estado mutável compartilhado do serviço; o mutex cobre todas as mutações,
// já que handlers rodam em goroutines concorrentes.
type WindowStore struct {
	mu      sync.Mutex
	entries map[string]*windowEntry

	max    int
	window time.Duration

	idleTTL      time.Duration
	cleanupEvery time.Duration

	now func() time.Time // injetável nos testes
}

type windowEntry struct {
	count    int
	start    time.Time
	lastSeen time.Time
}

type WindowOption func(*WindowStore)

func WithWindowIdleTTL(d time.Duration) WindowOption {
	return func(s *WindowStore) { s.idleTTL = d }
}

func WithWindowCleanupEvery(d time.Duration) WindowOption {
	return func(s *WindowStore) { s.cleanupEvery = d }
}

func WithWindowClock(now func() time.Time) WindowOption {
	return func(s *WindowStore) { s.now = now }
}

// NewWindowStore cria o store permitindo até max requests por chave dentro
// de window.
func NewWindowStore(max int, window time.Duration, opts ...WindowOption) *WindowStore {
	s := &WindowStore{
		entries:      make(map[string]*windowEntry),
		max:          max,
		window:       window,
		idleTTL:      2 * window,
		cleanupEvery: 2 * time.Minute,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *WindowStore) Limit() int            { return s.max }
func (s *WindowStore) Window() time.Duration { return s.window }

// Get implementa domain.LimiterStore. O limiter devolvido é um handle para a
// chave; o estado vive no store.
func (s *WindowStore) Get(key domain.Key) domain.Limiter {
	return &windowLimiter{store: s, key: string(key), remaining: -1}
}

// take consome uma vaga da chave, reiniciando a janela se já expirou.
func (s *WindowStore) take(key string) (allowed bool, remaining int, reset time.Duration) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok {
		ent = &windowEntry{start: now}
		s.entries[key] = ent
	}
	ent.lastSeen = now

	if now.Sub(ent.start) >= s.window {
		ent.count = 0
		ent.start = now
	}

	reset = s.window - now.Sub(ent.start)
	if ent.count >= s.max {
		return false, 0, reset
	}
	ent.count++
	return true, s.max - ent.count, reset
}

func (s *WindowStore) Cleanup() {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ent := range s.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

// StartJanitor inicia uma goroutine que limpa chaves inativas periodicamente.
// Pare cancelando o contexto.
func (s *WindowStore) StartJanitor(ctx DoneContext) {
	if s.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}

// windowLimiter é o handle de uma chave. Remaining/ResetAfter refletem o
// último Allow; o middleware obtém um handle novo a cada request.
type windowLimiter struct {
	store *WindowStore
	key   string

	remaining int
	reset     time.Duration
}

func (l *windowLimiter) Allow() bool {
	allowed, remaining, reset := l.store.take(l.key)
	l.remaining = remaining
	l.reset = reset
	return allowed
}

func (l *windowLimiter) Remaining() int            { return l.remaining }
func (l *windowLimiter) ResetAfter() time.Duration { return l.reset }

// DoneContext é o mínimo necessário para aceitar context.Context sem importar context aqui.
// (Permite reuso em libs sem acoplar.)
type DoneContext interface {
	Done() <-chan struct{}
}
