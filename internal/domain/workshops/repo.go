package workshops

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

/* Workshops */

type WorkshopRepo struct{ pool *pgxpool.Pool }

func NewWorkshopRepo(pool *pgxpool.Pool) *WorkshopRepo { return &WorkshopRepo{pool: pool} }

func (r *WorkshopRepo) List(ctx context.Context) ([]Workshop, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, product_category_id
		FROM workshop
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Workshop
	for rows.Next() {
		var w Workshop
		if err := rows.Scan(&w.ID, &w.Name, &w.ProductCategoryID); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *WorkshopRepo) Get(ctx context.Context, id int64) (*Workshop, error) {
	var w Workshop
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, product_category_id FROM workshop WHERE id = $1
	`, id).Scan(&w.ID, &w.Name, &w.ProductCategoryID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkshopRepo) Create(ctx context.Context, in CreateWorkshop) (*Workshop, error) {
	var w Workshop
	if err := r.pool.QueryRow(ctx, `
		INSERT INTO workshop (name, product_category_id) VALUES ($1,$2)
		RETURNING id, name, product_category_id
	`, in.Name, in.ProductCategoryID).Scan(&w.ID, &w.Name, &w.ProductCategoryID); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkshopRepo) Update(ctx context.Context, id int64, patch UpdateWorkshop) (*Workshop, error) {
	var w Workshop
	err := r.pool.QueryRow(ctx, `
		UPDATE workshop
		SET name = COALESCE($2, name),
		    product_category_id = COALESCE($3, product_category_id)
		WHERE id = $1
		RETURNING id, name, product_category_id
	`, id, patch.Name, patch.ProductCategoryID).Scan(&w.ID, &w.Name, &w.ProductCategoryID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Delete удаляет цех вместе с инженерами, рабочими и бригадами (каскад).
func (r *WorkshopRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM workshop WHERE id = $1`, id)
	return err
}

/* Brigades */

type BrigadeRepo struct{ pool *pgxpool.Pool }

func NewBrigadeRepo(pool *pgxpool.Pool) *BrigadeRepo { return &BrigadeRepo{pool: pool} }

func (r *BrigadeRepo) List(ctx context.Context) ([]Brigade, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, workshop_id, product_id
		FROM brigades
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Brigade
	for rows.Next() {
		var b Brigade
		if err := rows.Scan(&b.ID, &b.Name, &b.WorkshopID, &b.ProductID); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BrigadeRepo) Get(ctx context.Context, id int64) (*Brigade, error) {
	var b Brigade
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, workshop_id, product_id FROM brigades WHERE id = $1
	`, id).Scan(&b.ID, &b.Name, &b.WorkshopID, &b.ProductID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BrigadeRepo) Create(ctx context.Context, in CreateBrigade) (*Brigade, error) {
	var b Brigade
	if err := r.pool.QueryRow(ctx, `
		INSERT INTO brigades (name, workshop_id, product_id) VALUES ($1,$2,$3)
		RETURNING id, name, workshop_id, product_id
	`, in.Name, in.WorkshopID, in.ProductID).Scan(&b.ID, &b.Name, &b.WorkshopID, &b.ProductID); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BrigadeRepo) Update(ctx context.Context, id int64, patch UpdateBrigade) (*Brigade, error) {
	var b Brigade
	err := r.pool.QueryRow(ctx, `
		UPDATE brigades
		SET name = COALESCE($2, name),
		    workshop_id = COALESCE($3, workshop_id),
		    product_id = COALESCE($4, product_id)
		WHERE id = $1
		RETURNING id, name, workshop_id, product_id
	`, id, patch.Name, patch.WorkshopID, patch.ProductID).Scan(&b.ID, &b.Name, &b.WorkshopID, &b.ProductID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BrigadeRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM brigades WHERE id = $1`, id)
	return err
}
