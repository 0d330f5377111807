package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

/* Product categories */

type ProductCategoryRepo struct{ pool *pgxpool.Pool }

func NewProductCategoryRepo(pool *pgxpool.Pool) *ProductCategoryRepo {
	return &ProductCategoryRepo{pool: pool}
}

func (r *ProductCategoryRepo) List(ctx context.Context) ([]ProductCategory, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM product_category ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProductCategory
	for rows.Next() {
		var c ProductCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ProductCategoryRepo) Get(ctx context.Context, id int64) (*ProductCategory, error) {
	var c ProductCategory
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM product_category WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ProductCategoryRepo) Create(ctx context.Context, in CreateProductCategory) (*ProductCategory, error) {
	var c ProductCategory
	if err := r.pool.QueryRow(ctx, `
		INSERT INTO product_category (name) VALUES ($1)
		RETURNING id, name
	`, in.Name).Scan(&c.ID, &c.Name); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update у категории одно поле, поэтому обходимся без чтения строки.
func (r *ProductCategoryRepo) Update(ctx context.Context, id int64, patch UpdateProductCategory) (*ProductCategory, error) {
	var c ProductCategory
	err := r.pool.QueryRow(ctx, `
		UPDATE product_category SET name = COALESCE($2, name) WHERE id = $1
		RETURNING id, name
	`, id, patch.Name).Scan(&c.ID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ProductCategoryRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM product_category WHERE id = $1`, id)
	return err
}

/* Personal categories */

type PersonalCategoryRepo struct{ pool *pgxpool.Pool }

func NewPersonalCategoryRepo(pool *pgxpool.Pool) *PersonalCategoryRepo {
	return &PersonalCategoryRepo{pool: pool}
}

func (r *PersonalCategoryRepo) List(ctx context.Context) ([]PersonalCategory, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM personal_category ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PersonalCategory
	for rows.Next() {
		var c PersonalCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PersonalCategoryRepo) Get(ctx context.Context, id int64) (*PersonalCategory, error) {
	var c PersonalCategory
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM personal_category WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PersonalCategoryRepo) Create(ctx context.Context, in CreatePersonalCategory) (*PersonalCategory, error) {
	var c PersonalCategory
	if err := r.pool.QueryRow(ctx, `
		INSERT INTO personal_category (name) VALUES ($1)
		RETURNING id, name
	`, in.Name).Scan(&c.ID, &c.Name); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PersonalCategoryRepo) Update(ctx context.Context, id int64, patch UpdatePersonalCategory) (*PersonalCategory, error) {
	var c PersonalCategory
	err := r.pool.QueryRow(ctx, `
		UPDATE personal_category SET name = COALESCE($2, name) WHERE id = $1
		RETURNING id, name
	`, id, patch.Name).Scan(&c.ID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PersonalCategoryRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM personal_category WHERE id = $1`, id)
	return err
}
