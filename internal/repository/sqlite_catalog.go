package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/jobcolor/internal/db"
	"github.com/alexanderramin/jobcolor/internal/domain"
)

// SQLiteCatalogRepo implements CatalogRepo using a SQLite database.
type SQLiteCatalogRepo struct {
	db db.DBTX
}

// NewSQLiteCatalogRepo creates a new SQLiteCatalogRepo.
func NewSQLiteCatalogRepo(conn db.DBTX) *SQLiteCatalogRepo {
	return &SQLiteCatalogRepo{db: conn}
}

func (r *SQLiteCatalogRepo) Upsert(ctx context.Context, item domain.CatalogItem) error {
	query := `INSERT INTO catalog_items (item_id, item_name, item_group_id) VALUES (?, ?, ?)
		ON CONFLICT(item_id) DO UPDATE SET item_name = excluded.item_name`
	if _, err := r.db.ExecContext(ctx, query, string(item.ID), item.Name, domain.ItemGroupColor); err != nil {
		return fmt.Errorf("upserting catalog item %s: %w", item.ID, err)
	}
	return nil
}

// List returns the color items ordered by name.
func (r *SQLiteCatalogRepo) List(ctx context.Context) ([]domain.CatalogItem, error) {
	query := `SELECT item_id, item_name FROM catalog_items
		WHERE item_group_id = ?
		ORDER BY item_name COLLATE NOCASE, item_id`
	rows, err := r.db.QueryContext(ctx, query, domain.ItemGroupColor)
	if err != nil {
		return nil, fmt.Errorf("listing catalog items: %w", err)
	}
	defer rows.Close()

	out := []domain.CatalogItem{}
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scanning catalog item: %w", err)
		}
		out = append(out, domain.CatalogItem{ID: domain.ItemRef(id), Name: name})
	}
	return out, rows.Err()
}
