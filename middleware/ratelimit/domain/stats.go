package domain

import (
	"context"
	"time"
)

// StatsEvent representa um evento de decisão do rate limit.
//
// Method/Path são strings genéricas; aqui alimentam o snapshot servido em
// GET /stats, mas o contrato não conhece HTTP.
//
// Observação: cuidado com cardinalidade — gravar Key/Path sem controle pode
// explodir o número de chaves em uma base como Redis.
type StatsEvent struct {
	Key     Key
	Allowed bool

	Method string
	Path   string

	At time.Time
}

// StatsStore é a estratégia de persistência para estatísticas do rate limit.
//
// Implementações podem armazenar em memória, Redis, etc.
// O middleware trata erro como best-effort (não derruba request).
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
