package infra

import (
	"context"

	"greeting-service/middleware/ratelimit/domain"
)

// MultiStats repassa cada evento para todos os stores (ex: memória sempre,
// Redis quando configurado). Retorna o primeiro erro, mas continua gravando
// nos demais — stats é best-effort de ponta a ponta.
type MultiStats []domain.StatsStore

func (m MultiStats) Record(ctx context.Context, ev domain.StatsEvent) error {
	var first error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Record(ctx, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}
