package reservations

import (
	"context"
	"database/sql"
	"fmt"
)

type SQLiteRepo struct{ DB *sql.DB }

func (r *SQLiteRepo) Upsert(ctx context.Context, res Reservation) error {
	const op = "reservations.SQLiteRepo.Upsert"

	opts, err := encodeOptions(res.Options)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT OR REPLACE INTO reservation (
			id, business_id, business_name, item_id, item_name,
			start_date_time, end_date_time, options, location
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ID, res.BusinessID, res.BusinessName, res.ItemID, res.ItemName,
		res.Start.UTC(), res.End.UTC(), opts, res.Location,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *SQLiteRepo) ListAll(ctx context.Context) ([]Reservation, error) {
	const op = "reservations.SQLiteRepo.ListAll"

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, business_id, business_name, item_id, item_name,
		       start_date_time, end_date_time, options, location
		FROM reservation
		ORDER BY start_date_time, id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := []Reservation{}
	for rows.Next() {
		var (
			res Reservation
			raw string
		)
		if err := rows.Scan(&res.ID, &res.BusinessID, &res.BusinessName, &res.ItemID, &res.ItemName,
			&res.Start, &res.End, &raw, &res.Location); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if res.Options, err = decodeOptions(res.ID, raw); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		res.Start, res.End = res.Start.UTC(), res.End.UTC()
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
