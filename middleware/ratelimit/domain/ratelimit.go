package domain

// Camada de domínio do rate limit.
//
// Regras e contratos (interfaces/tipos) sem dependência de net/http.

import "time"

type Key string

// Limiter representa algo que pode decidir se uma ação é permitida agora.
//
// Observação: a implementação pode ser um contador por janela deslizante,
// token-bucket, etc. A camada de infra escolhe a estratégia.
type Limiter interface {
	Allow() bool
}

// Remainer expõe a cota restante da chave após o último Allow.
// Interface opcional: o middleware a usa para preencher X-RateLimit-Remaining.
type Remainer interface {
	Remaining() int
}

// Waiter expõe quanto falta para a janela da chave reabrir.
// Interface opcional: a camada application a usa para calcular um
// Retry-After real em vez do valor fixo configurado.
type Waiter interface {
	ResetAfter() time.Duration
}

// LimiterStore obtém um limiter por chave (ex: IP, API key, usuário).
// A implementação pode manter cache, TTL, etc.
type LimiterStore interface {
	Get(Key) Limiter
}

type Decision struct {
	Allowed bool
	// Remaining é a cota restante após esta decisão. -1 quando desconhecida.
	Remaining int
	// RetryAfter é o valor a ser retornado em Retry-After quando bloquear.
	// Se 0, não há recomendação.
	RetryAfter time.Duration
}
