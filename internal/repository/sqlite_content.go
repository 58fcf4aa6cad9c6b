package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/jobcolor/internal/db"
	"github.com/alexanderramin/jobcolor/internal/domain"
)

// SQLiteContentRepo implements ContentRepo using a SQLite database.
type SQLiteContentRepo struct {
	db db.DBTX
}

// NewSQLiteContentRepo creates a new SQLiteContentRepo.
func NewSQLiteContentRepo(conn db.DBTX) *SQLiteContentRepo {
	return &SQLiteContentRepo{db: conn}
}

// ListByJob returns the contents of a job in stored order, each with its
// colors in position order.
func (r *SQLiteContentRepo) ListByJob(ctx context.Context, jobNumber string) ([]domain.Content, error) {
	query := `SELECT c.id, c.plan_cont_name, c.contents_id, c.plan_cont_type, c.plan_cont_qty,
			cc.id, cc.color_specification, cc.form_side, cc.item_group_id, cc.item_id, cc.item_name
		FROM contents c
		LEFT JOIN content_colors cc ON cc.content_id = c.id
		WHERE c.job_number = ?
		ORDER BY c.order_index, c.id, cc.position`
	rows, err := r.db.QueryContext(ctx, query, jobNumber)
	if err != nil {
		return nil, fmt.Errorf("listing contents: %w", err)
	}
	defer rows.Close()

	var out []domain.Content
	lastID := int64(-1)
	for rows.Next() {
		var (
			contentID            int64
			name                 string
			contentsID, typ, qty sql.NullString
			colorID              sql.NullInt64
			spec, side, itemName sql.NullString
			groupID, itemID      sql.NullInt64
		)
		if err := rows.Scan(&contentID, &name, &contentsID, &typ, &qty,
			&colorID, &spec, &side, &groupID, &itemID, &itemName); err != nil {
			return nil, fmt.Errorf("scanning content: %w", err)
		}
		if contentID != lastID {
			out = append(out, domain.Content{
				JobBookingJobCardContentsID: opaqueFromNull(contentsID),
				PlanContName:                name,
				PlanContType:                opaqueFromNull(typ),
				PlanContQty:                 opaqueFromNull(qty),
				Colors:                      []domain.ColorAssignment{},
			})
			lastID = contentID
		}
		if !colorID.Valid {
			continue
		}
		cur := &out[len(out)-1]
		cur.Colors = append(cur.Colors, domain.ColorAssignment{
			ColorSpecification: spec.String,
			FormSide:           side.String,
			ItemGroupID:        int(groupID.Int64),
			ItemID:             intFromNull(itemID),
			ItemName:           itemName.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contents: %w", err)
	}
	return out, nil
}

func (r *SQLiteContentRepo) Replace(ctx context.Context, jobNumber string, c domain.Content) error {
	now := nowUTC()

	var contentID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM contents WHERE job_number = ? AND plan_cont_name = ?`,
		jobNumber, c.PlanContName,
	).Scan(&contentID)
	switch {
	case err == sql.ErrNoRows:
		res, err := r.db.ExecContext(ctx, `INSERT INTO contents
			(job_number, plan_cont_name, contents_id, plan_cont_type, plan_cont_qty, order_index, updated_at)
			VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(order_index) + 1, 0) FROM contents WHERE job_number = ?), ?)`,
			jobNumber, c.PlanContName,
			opaqueToValue(c.JobBookingJobCardContentsID),
			opaqueToValue(c.PlanContType),
			opaqueToValue(c.PlanContQty),
			jobNumber, now,
		)
		if err != nil {
			return fmt.Errorf("inserting content %s: %w", c.PlanContName, err)
		}
		if contentID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("reading content id: %w", err)
		}
	case err != nil:
		return fmt.Errorf("looking up content %s: %w", c.PlanContName, err)
	default:
		_, err := r.db.ExecContext(ctx, `UPDATE contents SET
				contents_id    = COALESCE(?, contents_id),
				plan_cont_type = COALESCE(?, plan_cont_type),
				plan_cont_qty  = COALESCE(?, plan_cont_qty),
				updated_at     = ?
			WHERE id = ?`,
			opaqueToValue(c.JobBookingJobCardContentsID),
			opaqueToValue(c.PlanContType),
			opaqueToValue(c.PlanContQty),
			now, contentID,
		)
		if err != nil {
			return fmt.Errorf("updating content %s: %w", c.PlanContName, err)
		}
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM content_colors WHERE content_id = ?`, contentID); err != nil {
		return fmt.Errorf("clearing colors of %s: %w", c.PlanContName, err)
	}
	for i, col := range c.Colors {
		_, err := r.db.ExecContext(ctx, `INSERT INTO content_colors
			(content_id, position, color_specification, form_side, item_group_id, item_id, item_name)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			contentID, i,
			col.ColorSpecification,
			col.FormSide,
			col.ItemGroupID,
			nullableIntToValue(col.ItemID),
			col.ItemName,
		)
		if err != nil {
			return fmt.Errorf("inserting color %d of %s: %w", i, c.PlanContName, err)
		}
	}
	return nil
}
