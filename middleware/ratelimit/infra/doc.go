// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain.
//
// Exemplos:
//   - WindowStore: contador por chave dentro de uma janela de tempo
//   - BucketStore: token bucket por chave usando golang.org/x/time/rate
//   - MemoryStatsStore / RedisStatsStore / MultiStats: persistência de contadores
//   - ChanPool: semáforo simples para limite de concorrência
package infra
