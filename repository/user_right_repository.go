package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"sales-pulse/db"
	"sales-pulse/models"
)

// UserRightRepository reads the role/menu rights matrix
type UserRightRepository struct {
	logger *logrus.Entry
}

// NewUserRightRepository creates a new UserRightRepository
func NewUserRightRepository(logger *logrus.Entry) *UserRightRepository {
	return &UserRightRepository{logger: logger}
}

var _ UserRightRepositoryInterface = (*UserRightRepository)(nil)

// ListRights returns every role/menu row. Flags are stored as '1'/'0'.
func (r *UserRightRepository) ListRights(ctx context.Context) ([]models.UserRight, error) {
	query := `
		SELECT
			ro.name,
			m.name,
			ur."create" = '1',
			ur."view" = '1',
			ur."update" = '1',
			ur."delete" = '1',
			ur."print" = '1'
		FROM user_rights ur
		INNER JOIN roles ro ON ro.id = ur.role_id
		INNER JOIN menus m ON m.id = ur.menu_id
		ORDER BY ro.name ASC, m.id ASC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		r.logger.WithError(err).Error("❌ ListRights: error querying user rights")
		return nil, fmt.Errorf("failed to query user rights: %w", err)
	}
	defer rows.Close()

	var rights []models.UserRight
	for rows.Next() {
		var right models.UserRight
		if err := rows.Scan(&right.Role, &right.Menu, &right.Create, &right.View, &right.Update, &right.Delete, &right.Print); err != nil {
			return nil, fmt.Errorf("failed to scan user right: %w", err)
		}
		rights = append(rights, right)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rights: %w", err)
	}

	r.logger.WithField("rows", len(rights)).Info("✓ ListRights: user rights loaded")
	return rights, nil
}
