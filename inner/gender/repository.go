package gender

import (
	"context"
	"database/sql"
	"errors"

	"workers/inner/common"

	"github.com/jmoiron/sqlx"
)

const MsgNotFound = "Gender with the given name not found."

type Repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) *Repository {
	return &Repository{db: database}
}

// FindByName ищет запись справочника по точному названию
func (r *Repository) FindByName(ctx context.Context, name string) (gender Entity, err error) {
	err = r.db.GetContext(ctx, &gender, "SELECT id, name FROM gender WHERE name = $1", name)
	if errors.Is(err, sql.ErrNoRows) {
		return Entity{}, common.NewNotFoundError(MsgNotFound)
	}
	return gender, err
}

func (r *Repository) FindAll(ctx context.Context) ([]Entity, error) {
	var genders []Entity
	err := r.db.SelectContext(ctx, &genders, "SELECT id, name FROM gender ORDER BY id")
	return genders, err
}
