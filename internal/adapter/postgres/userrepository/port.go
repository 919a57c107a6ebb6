// package userrepository contains the PostgreSQL staff account lookup.
package userrepository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/codelab-2026.net/internal/core/ports/primary"
	"gitlab.com/codelab-2026.net/internal/core/ports/secondary"
	"gitlab.com/codelab-2026.net/internal/domain"
	querybuilder "gitlab.com/codelab-2026.net/internal/utils"
)

var _ secondary.UserPort = &userRepo{}

type userRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.UserPort {
	if schema == "" {
		schema = "public"
	}
	return &userRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (u userRepo) GetByUserName(userName string) (*domain.StaffUser, error) {
	tbl := domain.GetStaffUserTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Select(tbl.ID, tbl.UserName, tbl.PasswordHash, tbl.Role).
		From(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.UserName), userName).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var user domain.StaffUser
	if err := u.db.Get(&user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		u.logger.Error("Failed to get staff user", "username", userName, "error", err)
		return nil, fmt.Errorf("failed to get staff user: %w", err)
	}

	return &user, nil
}
