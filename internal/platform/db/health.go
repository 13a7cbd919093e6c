package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// PoolStats represents database connection pool statistics.
type PoolStats struct {
	TotalConns      int32  `json:"total_conns"`
	IdleConns       int32  `json:"idle_conns"`
	AcquiredConns   int32  `json:"acquired_conns"`
	MaxConns        int32  `json:"max_conns"`
	AcquireDuration string `json:"acquire_duration"`
}

// ReferenceCounts is the number of rows in each reference table the engine
// reads from. An advisor without reference data answers every query with
// "no dosing data" or "protocol not found".
type ReferenceCounts struct {
	Medications int `json:"medications"`
	Protocols   int `json:"protocols"`
}

// Ready reports whether both reference tables hold data.
func (r ReferenceCounts) Ready() bool {
	return r.Medications > 0 && r.Protocols > 0
}

func GetPoolStats(pool *pgxpool.Pool) *PoolStats {
	stat := pool.Stat()
	return &PoolStats{
		TotalConns:      stat.TotalConns(),
		IdleConns:       stat.IdleConns(),
		AcquiredConns:   stat.AcquiredConns(),
		MaxConns:        stat.MaxConns(),
		AcquireDuration: stat.AcquireDuration().String(),
	}
}

func countReference(ctx context.Context, pool *pgxpool.Pool) (ReferenceCounts, error) {
	var rc ReferenceCounts
	err := pool.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM medication), (SELECT COUNT(*) FROM treatment_protocol)`,
	).Scan(&rc.Medications, &rc.Protocols)
	return rc, err
}

// HealthHandler returns the handler for GET /health/db. It answers 503 when
// the database is unreachable or the reference tables are empty.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		stats := GetPoolStats(pool)
		if err := pool.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
				"pool":   stats,
			})
		}

		counts, err := countReference(ctx, pool)
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
				"pool":   stats,
			})
		}

		status, code := "healthy", http.StatusOK
		if !counts.Ready() {
			status, code = "no reference data", http.StatusServiceUnavailable
		}
		return c.JSON(code, map[string]interface{}{
			"status":    status,
			"pool":      stats,
			"reference": counts,
		})
	}
}
