package worker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"workers/inner/common"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	MsgAlreadyExists = "Worker with the same pesel or email already exists"

	uniqueViolation = pq.ErrorCode("23505")
)

type Repository struct {
	db      *sqlx.DB
	builder squirrel.StatementBuilderType
}

func NewRepository(database *sqlx.DB) *Repository {
	return &Repository{
		db:      database,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *Repository) selectWorkers() squirrel.SelectBuilder {
	return r.builder.
		Select(
			"w.id", "w.name", "w.surname", "w.email", "w.password", "w.birthdate", "w.pesel",
			"w.gender_id", "g.name AS gender_name", "w.roles", "w.created_at", "w.updated_at",
		).
		From("worker w").
		LeftJoin("gender g ON g.id = w.gender_id")
}

func (r *Repository) BeginTransaction(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, nil)
}

// ExistsTx: есть ли работник с таким pesel ИЛИ email (в транзакции создания)
func (r *Repository) ExistsTx(ctx context.Context, tx *sqlx.Tx, pesel, email string) (bool, error) {
	query, args, err := r.builder.
		Select("COUNT(id)").
		From("worker").
		Where(squirrel.Or{squirrel.Eq{"pesel": pesel}, squirrel.Eq{"email": email}}).
		ToSql()
	if err != nil {
		return false, err
	}

	var count int64
	if err = tx.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("error while checking worker existence: %w", err)
	}
	return count > 0, nil
}

func (r *Repository) FindById(ctx context.Context, id int64) (worker Entity, err error) {
	query, args, err := r.selectWorkers().Where(squirrel.Eq{"w.id": id}).ToSql()
	if err != nil {
		return Entity{}, err
	}
	err = r.db.GetContext(ctx, &worker, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return Entity{}, common.NewNotFoundError(fmt.Sprintf("worker with id %d not found", id))
	}
	return worker, err
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (worker Entity, err error) {
	query, args, err := r.selectWorkers().Where(squirrel.Eq{"w.email": email}).ToSql()
	if err != nil {
		return Entity{}, err
	}
	err = r.db.GetContext(ctx, &worker, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return Entity{}, common.NewNotFoundError("worker not found")
	}
	return worker, err
}

// FindAll выполняет отложенный QuerySpec
func (r *Repository) FindAll(ctx context.Context, spec QuerySpec) ([]Entity, error) {
	query, args, err := spec.Apply(r.selectWorkers()).ToSql()
	if err != nil {
		return nil, err
	}
	workers := make([]Entity, 0, spec.Limit)
	err = r.db.SelectContext(ctx, &workers, query, args...)
	return workers, err
}

func (r *Repository) SaveTx(ctx context.Context, tx *sqlx.Tx, worker *Entity) (int64, error) {
	query, args, err := r.builder.
		Insert("worker").
		Columns("name", "surname", "email", "password", "birthdate", "pesel", "gender_id", "roles").
		Values(worker.Name, worker.Surname, worker.Email, worker.Password, worker.Birthdate, worker.Pesel,
			worker.GenderId, rolesValue(worker.StoredRoles)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	if err = tx.QueryRowxContext(ctx, query, args...).Scan(&worker.Id); err != nil {
		return 0, translateError(err)
	}
	return worker.Id, nil
}

func (r *Repository) Update(ctx context.Context, worker *Entity) error {
	query, args, err := r.builder.
		Update("worker").
		Set("name", worker.Name).
		Set("surname", worker.Surname).
		Set("email", worker.Email).
		Set("password", worker.Password).
		Set("birthdate", worker.Birthdate).
		Set("pesel", worker.Pesel).
		Set("gender_id", worker.GenderId).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": worker.Id}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return common.NewNotFoundError(fmt.Sprintf("worker with id %d not found", worker.Id))
	}
	return nil
}

func (r *Repository) DeleteById(ctx context.Context, id int64) error {
	query, args, err := r.builder.Delete("worker").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func rolesValue(roles pq.StringArray) pq.StringArray {
	if roles == nil {
		return pq.StringArray{}
	}
	return roles
}

// нарушение уникальности pesel/email превращается в тот же конфликт, что и предварительная проверка
func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return common.AlreadyExistsError{Message: MsgAlreadyExists}
	}
	return err
}
