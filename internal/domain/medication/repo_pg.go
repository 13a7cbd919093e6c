package medication

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
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

type medicationRepoPG struct{ pool *pgxpool.Pool }

func NewMedicationRepoPG(pool *pgxpool.Pool) MedicationRepository {
	return &medicationRepoPG{pool: pool}
}

func (r *medicationRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const medCols = `id, name, generic_name, brand_names, category, strength, route, frequency,
	max_daily_dose, adult_standard_dose, pediatric_standard_dose, weight_based, weight_based_formula,
	renal_adjustment, hepatic_adjustment, contraindications, monitoring_parameters, labs_required,
	black_box_warning, pregnancy_category, controlled_substance, schedule, drug_interactions,
	created_at, updated_at`

func (r *medicationRepoPG) scanMed(row pgx.Row) (*Medication, error) {
	var m Medication
	err := row.Scan(&m.ID, &m.Name, &m.GenericName, &m.BrandNames, &m.Category, &m.Strength, &m.Route, &m.Frequency,
		&m.MaxDailyDose, &m.AdultStandardDose, &m.PediatricStandardDose, &m.WeightBased, &m.WeightBasedFormula,
		&m.RenalAdjustment, &m.HepaticAdjustment, &m.Contraindications, &m.MonitoringParameters, &m.LabsRequired,
		&m.BlackBoxWarning, &m.PregnancyCategory, &m.ControlledSubstance, &m.Schedule, &m.DrugInteractions,
		&m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *medicationRepoPG) Create(ctx context.Context, m *Medication) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO medication (id, name, generic_name, brand_names, category, strength, route, frequency,
			max_daily_dose, adult_standard_dose, pediatric_standard_dose, weight_based, weight_based_formula,
			renal_adjustment, hepatic_adjustment, contraindications, monitoring_parameters, labs_required,
			black_box_warning, pregnancy_category, controlled_substance, schedule, drug_interactions)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
		RETURNING created_at, updated_at`,
		m.ID, m.Name, m.GenericName, nonNil(m.BrandNames), m.Category, m.Strength, m.Route, m.Frequency,
		m.MaxDailyDose, m.AdultStandardDose, m.PediatricStandardDose, m.WeightBased, m.WeightBasedFormula,
		m.RenalAdjustment, m.HepaticAdjustment, nonNil(m.Contraindications), nonNil(m.MonitoringParameters),
		nonNil(m.LabsRequired), m.BlackBoxWarning, string(m.PregnancyCategory.Normalize()), m.ControlledSubstance,
		m.Schedule, nonNil(m.DrugInteractions),
	).Scan(&m.CreatedAt, &m.UpdatedAt)
}

func (r *medicationRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return r.scanMed(r.conn(ctx).QueryRow(ctx, `SELECT `+medCols+` FROM medication WHERE id = $1`, id))
}

func (r *medicationRepoPG) GetByName(ctx context.Context, name string) (*Medication, error) {
	return r.scanMed(r.conn(ctx).QueryRow(ctx, `
		SELECT `+medCols+` FROM medication
		WHERE LOWER(name) = LOWER($1) OR LOWER(generic_name) = LOWER($1)
		ORDER BY (LOWER(name) = LOWER($1)) DESC
		LIMIT 1`, strings.TrimSpace(name)))
}

func (r *medicationRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Medication, int, error) {
	var where []string
	var args []interface{}
	if q := params["q"]; q != "" {
		args = append(args, "%"+q+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR generic_name ILIKE $%d)", len(args), len(args)))
	}
	if cat := params["category"]; cat != "" {
		args = append(args, cat)
		where = append(where, fmt.Sprintf("LOWER(category) = LOWER($%d)", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM medication`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count medications: %w", err)
	}

	dataArgs := append(append([]interface{}{}, args...), limit, offset)
	rows, err := r.conn(ctx).Query(ctx,
		fmt.Sprintf(`SELECT %s FROM medication%s ORDER BY name LIMIT $%d OFFSET $%d`, medCols, clause, len(args)+1, len(args)+2),
		dataArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("search medications: %w", err)
	}
	defer rows.Close()

	var items []*Medication
	for rows.Next() {
		m, err := r.scanMed(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
