package application

import (
	"time"

	"greeting-service/middleware/ratelimit/domain"
)

// Service concentra a regra de aplicação do rate limit.
//
// Ele não sabe nada sobre HTTP (headers/status), apenas retorna uma decisão.
type Service struct {
	Store      domain.LimiterStore
	RetryAfter time.Duration
}

func (s Service) Decide(key domain.Key) domain.Decision {
	if s.Store == nil {
		return domain.Decision{Allowed: true, Remaining: -1}
	}
	if s.RetryAfter <= 0 {
		s.RetryAfter = 1 * time.Second
	}

	lim := s.Store.Get(key)
	if lim == nil {
		return domain.Decision{Allowed: true, Remaining: -1}
	}

	allowed := lim.Allow()

	remaining := -1
	if r, ok := lim.(domain.Remainer); ok {
		remaining = r.Remaining()
	}

	if allowed {
		return domain.Decision{Allowed: true, Remaining: remaining}
	}

	retry := s.RetryAfter
	// quando o limiter sabe quanto falta para a janela reabrir, esse valor
	// é melhor que o fixo configurado
	if w, ok := lim.(domain.Waiter); ok {
		if d := w.ResetAfter(); d > 0 {
			retry = d
		}
	}
	return domain.Decision{Allowed: false, Remaining: remaining, RetryAfter: retry}
}
