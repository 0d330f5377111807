package laboratories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const laboratoryColumns = `id, name, test_date_start, test_date_finish`

type LaboratoryRepo struct{ pool *pgxpool.Pool }

func NewLaboratoryRepo(pool *pgxpool.Pool) *LaboratoryRepo { return &LaboratoryRepo{pool: pool} }

func scanLaboratory(row pgx.Row) (*Laboratory, error) {
	var l Laboratory
	if err := row.Scan(&l.ID, &l.Name, &l.TestDateStart, &l.TestDateFinish); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LaboratoryRepo) List(ctx context.Context) ([]Laboratory, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+laboratoryColumns+` FROM test_laboratories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Laboratory
	for rows.Next() {
		l, err := scanLaboratory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func (r *LaboratoryRepo) Get(ctx context.Context, id int64) (*Laboratory, error) {
	l, err := scanLaboratory(r.pool.QueryRow(ctx, `
		SELECT `+laboratoryColumns+` FROM test_laboratories WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return l, err
}

func (r *LaboratoryRepo) GetByName(ctx context.Context, name string) (*Laboratory, error) {
	l, err := scanLaboratory(r.pool.QueryRow(ctx, `
		SELECT `+laboratoryColumns+` FROM test_laboratories WHERE name = $1 ORDER BY id LIMIT 1
	`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return l, err
}

func (r *LaboratoryRepo) Create(ctx context.Context, in CreateLaboratory) (*Laboratory, error) {
	return scanLaboratory(r.pool.QueryRow(ctx, `
		INSERT INTO test_laboratories (name, test_date_finish) VALUES ($1,$2)
		RETURNING `+laboratoryColumns,
		in.Name, in.TestDateFinish))
}

func (r *LaboratoryRepo) Update(ctx context.Context, id int64, patch UpdateLaboratory) (*Laboratory, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	l, err := scanLaboratory(tx.QueryRow(ctx, `
		SELECT `+laboratoryColumns+` FROM test_laboratories WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	patch.Apply(l)

	l, err = scanLaboratory(tx.QueryRow(ctx, `
		UPDATE test_laboratories
		SET name=$2, test_date_start=$3, test_date_finish=$4
		WHERE id=$1
		RETURNING `+laboratoryColumns,
		id, l.Name, l.TestDateStart, l.TestDateFinish))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// Delete удаляет лабораторию с инструментами и сотрудниками;
// у продуктов ссылка на лабораторию обнуляется.
func (r *LaboratoryRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM test_laboratories WHERE id = $1`, id)
	return err
}

/* Tools */

type ToolRepo struct{ pool *pgxpool.Pool }

func NewToolRepo(pool *pgxpool.Pool) *ToolRepo { return &ToolRepo{pool: pool} }

func (r *ToolRepo) List(ctx context.Context) ([]Tool, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, laboratory_id FROM tools ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Tool
	for rows.Next() {
		var t Tool
		if err := rows.Scan(&t.ID, &t.Name, &t.LaboratoryID); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *ToolRepo) Get(ctx context.Context, id int64) (*Tool, error) {
	var t Tool
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, laboratory_id FROM tools WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.LaboratoryID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ToolRepo) Create(ctx context.Context, in CreateTool) (*Tool, error) {
	var t Tool
	if err := r.pool.QueryRow(ctx, `
		INSERT INTO tools (name, laboratory_id) VALUES ($1,$2)
		RETURNING id, name, laboratory_id
	`, in.Name, in.LaboratoryID).Scan(&t.ID, &t.Name, &t.LaboratoryID); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ToolRepo) Update(ctx context.Context, id int64, patch UpdateTool) (*Tool, error) {
	var t Tool
	err := r.pool.QueryRow(ctx, `
		UPDATE tools
		SET name = COALESCE($2, name), laboratory_id = COALESCE($3, laboratory_id)
		WHERE id = $1
		RETURNING id, name, laboratory_id
	`, id, patch.Name, patch.LaboratoryID).Scan(&t.ID, &t.Name, &t.LaboratoryID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ToolRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tools WHERE id = $1`, id)
	return err
}
