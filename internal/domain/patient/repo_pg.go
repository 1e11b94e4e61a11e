package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgRepo struct{ pool *pgxpool.Pool }

// NewPGRepo returns a Repository backed by the patients table.
func NewPGRepo(pool *pgxpool.Pool) Repository {
	return &pgRepo{pool: pool}
}

// EnsureSchema creates the patients table if it does not exist. Derived
// columns are stored alongside the inputs; the service recomputes them on
// every write so they cannot drift.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS patients (
			id      TEXT PRIMARY KEY,
			name    TEXT NOT NULL,
			city    TEXT NOT NULL,
			age     INTEGER NOT NULL,
			gender  TEXT NOT NULL,
			height  DOUBLE PRECISION NOT NULL,
			weight  DOUBLE PRECISION NOT NULL,
			bmi     DOUBLE PRECISION NOT NULL,
			verdict TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create patients table: %w", err)
	}
	return nil
}

const patientCols = `name, city, age, gender, height, weight, bmi, verdict`

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(&rec.Name, &rec.City, &rec.Age, &rec.Gender,
		&rec.Height, &rec.Weight, &rec.BMI, &rec.Verdict)
	return rec, err
}

func (r *pgRepo) GetAll(ctx context.Context) (map[string]Record, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, `+patientCols+` FROM patients`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	store := map[string]Record{}
	for rows.Next() {
		var id string
		var rec Record
		if err := rows.Scan(&id, &rec.Name, &rec.City, &rec.Age, &rec.Gender,
			&rec.Height, &rec.Weight, &rec.BMI, &rec.Verdict); err != nil {
			return nil, err
		}
		store[id] = rec
	}
	return store, rows.Err()
}

func (r *pgRepo) Get(ctx context.Context, id string) (Record, error) {
	rec, err := scanRecord(r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (r *pgRepo) Put(ctx context.Context, id string, rec Record) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patients (id, `+patientCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			name=$2, city=$3, age=$4, gender=$5,
			height=$6, weight=$7, bmi=$8, verdict=$9`,
		id, rec.Name, rec.City, rec.Age, rec.Gender,
		rec.Height, rec.Weight, rec.BMI, rec.Verdict)
	return err
}

func (r *pgRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
