package reservations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PGRepo struct{ DB *pgxpool.Pool }

func (r *PGRepo) Upsert(ctx context.Context, res Reservation) error {
	const op = "reservations.PGRepo.Upsert"

	opts, err := encodeOptions(res.Options)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	_, err = r.DB.Exec(ctx, `
		INSERT INTO reservation (
			id, business_id, business_name, item_id, item_name,
			start_date_time, end_date_time, options, location
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			business_id     = EXCLUDED.business_id,
			business_name   = EXCLUDED.business_name,
			item_id         = EXCLUDED.item_id,
			item_name       = EXCLUDED.item_name,
			start_date_time = EXCLUDED.start_date_time,
			end_date_time   = EXCLUDED.end_date_time,
			options         = EXCLUDED.options,
			location        = EXCLUDED.location`,
		res.ID, res.BusinessID, res.BusinessName, res.ItemID, res.ItemName,
		res.Start.UTC(), res.End.UTC(), opts, res.Location,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *PGRepo) ListAll(ctx context.Context) ([]Reservation, error) {
	const op = "reservations.PGRepo.ListAll"

	rows, err := r.DB.Query(ctx, `
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
