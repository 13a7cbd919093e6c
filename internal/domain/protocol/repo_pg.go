package protocol

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr/advisor/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type protocolRepoPG struct{ pool *pgxpool.Pool }

func NewProtocolRepoPG(pool *pgxpool.Pool) ProtocolRepository {
	return &protocolRepoPG{pool: pool}
}

func (r *protocolRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const protoCols = `id, name, category, description, icd_codes, severity, steps, first_line, second_line,
	contraindications, warning_symptoms, referral_criteria, follow_up, reference_list, target_population, created_at`

func (r *protocolRepoPG) scanProtocol(row pgx.Row) (*TreatmentProtocol, error) {
	var p TreatmentProtocol
	var steps, firstLine, secondLine []byte
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.ICDCodes, &p.Severity,
		&steps, &firstLine, &secondLine, &p.Contraindications, &p.WarningSymptoms, &p.ReferralCriteria,
		&p.FollowUp, &p.References, &p.TargetPopulation, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(steps, &p.Steps); err != nil {
		return nil, fmt.Errorf("decode steps of protocol %s: %w", p.ID, err)
	}
	if err := json.Unmarshal(firstLine, &p.FirstLine); err != nil {
		return nil, fmt.Errorf("decode first-line medications of protocol %s: %w", p.ID, err)
	}
	if err := json.Unmarshal(secondLine, &p.SecondLine); err != nil {
		return nil, fmt.Errorf("decode second-line medications of protocol %s: %w", p.ID, err)
	}
	return &p, nil
}

func (r *protocolRepoPG) Create(ctx context.Context, p *TreatmentProtocol) error {
	steps, err := json.Marshal(nonNilSlice(p.Steps))
	if err != nil {
		return fmt.Errorf("encode steps: %w", err)
	}
	firstLine, err := json.Marshal(nonNilSlice(p.FirstLine))
	if err != nil {
		return fmt.Errorf("encode first-line medications: %w", err)
	}
	secondLine, err := json.Marshal(nonNilSlice(p.SecondLine))
	if err != nil {
		return fmt.Errorf("encode second-line medications: %w", err)
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO treatment_protocol (id, name, category, description, icd_codes, severity, steps,
			first_line, second_line, contraindications, warning_symptoms, referral_criteria, follow_up,
			reference_list, target_population)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING created_at`,
		p.ID, p.Name, p.Category, p.Description, nonNilSlice(p.ICDCodes), string(p.Severity), steps,
		firstLine, secondLine, nonNilSlice(p.Contraindications), nonNilSlice(p.WarningSymptoms),
		nonNilSlice(p.ReferralCriteria), p.FollowUp, nonNilSlice(p.References), p.TargetPopulation,
	).Scan(&p.CreatedAt)
}

func (r *protocolRepoPG) GetByID(ctx context.Context, id string) (*TreatmentProtocol, error) {
	return r.scanProtocol(r.conn(ctx).QueryRow(ctx, `SELECT `+protoCols+` FROM treatment_protocol WHERE id = $1`, id))
}

func (r *protocolRepoPG) ListAll(ctx context.Context) ([]TreatmentProtocol, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+protoCols+` FROM treatment_protocol ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *protocolRepoPG) List(ctx context.Context, category string, limit, offset int) ([]TreatmentProtocol, int, error) {
	where := ""
	args := []interface{}{}
	if category != "" {
		where = " WHERE LOWER(category) = LOWER($1)"
		args = append(args, category)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, "SELECT COUNT(*) FROM treatment_protocol"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM treatment_protocol%s ORDER BY position LIMIT $%d OFFSET $%d",
		protoCols, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := r.collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *protocolRepoPG) collect(rows pgx.Rows) ([]TreatmentProtocol, error) {
	var items []TreatmentProtocol
	for rows.Next() {
		p, err := r.scanProtocol(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
