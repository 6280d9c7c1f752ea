package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterLedgerPoolMetrics exposes the deployment ledger's connection pool
// statistics as gauges on reg.
func RegisterLedgerPoolMetrics(reg prometheus.Registerer, pool *pgxpool.Pool) error {
	gauges := []struct {
		name, help string
		value      func(*pgxpool.Stat) float64
	}{
		{"acquired_conns", "Connections currently acquired from the ledger pool", func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) }},
		{"idle_conns", "Idle connections in the ledger pool", func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) }},
		{"total_conns", "Total connections in the ledger pool", func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) }},
		{"max_conns", "Maximum connections of the ledger pool", func(s *pgxpool.Stat) float64 { return float64(s.MaxConns()) }},
	}

	for _, g := range gauges {
		value := g.value
		collector := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "ledger",
			Subsystem: "pgxpool",
			Name:      g.name,
			Help:      g.help,
		}, func() float64 {
			return value(pool.Stat())
		})
		if err := reg.Register(collector); err != nil {
			return err
		}
	}
	return nil
}
