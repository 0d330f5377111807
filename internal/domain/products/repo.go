package products

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id, name, count, process_start, process_finish, product_category_id, laboratory_id`

type ProductRepo struct{ pool *pgxpool.Pool }

func NewProductRepo(pool *pgxpool.Pool) *ProductRepo { return &ProductRepo{pool: pool} }

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Count,
		&p.ProcessStart,
		&p.ProcessFinish,
		&p.ProductCategoryID,
		&p.LaboratoryID,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM product ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (*Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM product WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// GetByName возвращает первый продукт с таким именем (имя уникально только на уровне приложения).
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `
		SELECT `+productColumns+` FROM product WHERE name = $1 ORDER BY id LIMIT 1
	`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *ProductRepo) Create(ctx context.Context, in CreateProduct) (*Product, error) {
	return scanProduct(r.pool.QueryRow(ctx, `
		INSERT INTO product (name, count, product_category_id, laboratory_id)
		VALUES ($1,$2,$3,$4)
		RETURNING `+productColumns,
		in.Name, in.Count, in.ProductCategoryID, in.LaboratoryID))
}

// Update: читаем строку, применяем переданные поля, пишем обратно.
// Блокировок нет, при параллельных изменениях побеждает последний.
func (r *ProductRepo) Update(ctx context.Context, id int64, patch UpdateProduct) (*Product, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := scanProduct(tx.QueryRow(ctx, `SELECT `+productColumns+` FROM product WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	patch.Apply(p)

	p, err = scanProduct(tx.QueryRow(ctx, `
		UPDATE product
		SET name=$2, count=$3, process_start=$4, process_finish=$5, product_category_id=$6, laboratory_id=$7
		WHERE id=$1
		RETURNING `+productColumns,
		id, p.Name, p.Count, p.ProcessStart, p.ProcessFinish, p.ProductCategoryID, p.LaboratoryID))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete удаляет продукт; работы и бригады уходят каскадом.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM product WHERE id = $1`, id)
	return err
}

/* Works with product */

type WorkItemRepo struct{ pool *pgxpool.Pool }

func NewWorkItemRepo(pool *pgxpool.Pool) *WorkItemRepo { return &WorkItemRepo{pool: pool} }

func (r *WorkItemRepo) List(ctx context.Context) ([]WorkItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, product_id FROM works_with_product ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WorkItem
	for rows.Next() {
		var w WorkItem
		if err := rows.Scan(&w.ID, &w.Name, &w.ProductID); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *WorkItemRepo) Get(ctx context.Context, id int64) (*WorkItem, error) {
	var w WorkItem
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, product_id FROM works_with_product WHERE id = $1
	`, id).Scan(&w.ID, &w.Name, &w.ProductID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkItemRepo) Create(ctx context.Context, in CreateWorkItem) (*WorkItem, error) {
	var w WorkItem
	if err := r.pool.QueryRow(ctx, `
		INSERT INTO works_with_product (name, product_id) VALUES ($1,$2)
		RETURNING id, name, product_id
	`, in.Name, in.ProductID).Scan(&w.ID, &w.Name, &w.ProductID); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkItemRepo) Update(ctx context.Context, id int64, patch UpdateWorkItem) (*WorkItem, error) {
	var w WorkItem
	err := r.pool.QueryRow(ctx, `
		UPDATE works_with_product
		SET name = COALESCE($2, name), product_id = COALESCE($3, product_id)
		WHERE id = $1
		RETURNING id, name, product_id
	`, id, patch.Name, patch.ProductID).Scan(&w.ID, &w.Name, &w.ProductID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkItemRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM works_with_product WHERE id = $1`, id)
	return err
}
