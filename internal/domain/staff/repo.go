package staff

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	tableEngineers = "engineer_personal"
	tableWorkers   = "personal_workers"
)

const personColumns = `id, full_name, birthday, status, personal_category_id, workshop_id`

// PersonRepo работает с одной из таблиц персонала цехов.
type PersonRepo struct {
	pool  *pgxpool.Pool
	table string
}

func NewEngineerRepo(pool *pgxpool.Pool) *PersonRepo {
	return &PersonRepo{pool: pool, table: tableEngineers}
}

func NewWorkerRepo(pool *pgxpool.Pool) *PersonRepo {
	return &PersonRepo{pool: pool, table: tableWorkers}
}

func scanPerson(row pgx.Row) (*Person, error) {
	var p Person
	if err := row.Scan(&p.ID, &p.FullName, &p.Birthday, &p.Status, &p.PersonalCategoryID, &p.WorkshopID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PersonRepo) List(ctx context.Context) ([]Person, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+personColumns+` FROM `+r.table+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PersonRepo) Get(ctx context.Context, id int64) (*Person, error) {
	p, err := scanPerson(r.pool.QueryRow(ctx, `SELECT `+personColumns+` FROM `+r.table+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *PersonRepo) Create(ctx context.Context, in CreatePerson) (*Person, error) {
	return scanPerson(r.pool.QueryRow(ctx, `
		INSERT INTO `+r.table+` (full_name, birthday, status, personal_category_id, workshop_id)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING `+personColumns,
		in.FullName, in.Birthday, in.Status, in.PersonalCategoryID, in.WorkshopID))
}

func (r *PersonRepo) Update(ctx context.Context, id int64, patch UpdatePerson) (*Person, error) {
	p, err := scanPerson(r.pool.QueryRow(ctx, `
		UPDATE `+r.table+`
		SET full_name = COALESCE($2, full_name),
		    birthday = COALESCE($3, birthday),
		    status = COALESCE($4, status),
		    personal_category_id = COALESCE($5, personal_category_id),
		    workshop_id = COALESCE($6, workshop_id)
		WHERE id = $1
		RETURNING `+personColumns,
		id, patch.FullName, patch.Birthday, patch.Status, patch.PersonalCategoryID, patch.WorkshopID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *PersonRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM `+r.table+` WHERE id = $1`, id)
	return err
}

/* Laboratory staff */

const labMemberColumns = `id, full_name, birthday, status, laboratory_id`

type LabMemberRepo struct{ pool *pgxpool.Pool }

func NewLabMemberRepo(pool *pgxpool.Pool) *LabMemberRepo { return &LabMemberRepo{pool: pool} }

func scanLabMember(row pgx.Row) (*LabMember, error) {
	var m LabMember
	if err := row.Scan(&m.ID, &m.FullName, &m.Birthday, &m.Status, &m.LaboratoryID); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *LabMemberRepo) List(ctx context.Context) ([]LabMember, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+labMemberColumns+` FROM personal_laboratories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LabMember
	for rows.Next() {
		m, err := scanLabMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *LabMemberRepo) Get(ctx context.Context, id int64) (*LabMember, error) {
	m, err := scanLabMember(r.pool.QueryRow(ctx, `
		SELECT `+labMemberColumns+` FROM personal_laboratories WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

func (r *LabMemberRepo) Create(ctx context.Context, in CreateLabMember) (*LabMember, error) {
	return scanLabMember(r.pool.QueryRow(ctx, `
		INSERT INTO personal_laboratories (full_name, birthday, status, laboratory_id)
		VALUES ($1,$2,$3,$4)
		RETURNING `+labMemberColumns,
		in.FullName, in.Birthday, in.Status, in.LaboratoryID))
}

func (r *LabMemberRepo) Update(ctx context.Context, id int64, patch UpdateLabMember) (*LabMember, error) {
	m, err := scanLabMember(r.pool.QueryRow(ctx, `
		UPDATE personal_laboratories
		SET full_name = COALESCE($2, full_name),
		    birthday = COALESCE($3, birthday),
		    status = COALESCE($4, status),
		    laboratory_id = COALESCE($5, laboratory_id)
		WHERE id = $1
		RETURNING `+labMemberColumns,
		id, patch.FullName, patch.Birthday, patch.Status, patch.LaboratoryID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

func (r *LabMemberRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM personal_laboratories WHERE id = $1`, id)
	return err
}
