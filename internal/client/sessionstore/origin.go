package sessionstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/noticeboard/internal/dbx"
)

// BindOrigin ties the stored session to the backend at origin. When the
// database was last used with a different backend everything in it is
// dropped, so cookies are never replayed to the wrong server. It returns the
// number of dropped entries, not counting the old origin itself.
func BindOrigin(ctx context.Context, db *sql.DB, origin string) (dropped int, err error) {
	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)

		all, err := repo.List(ctx)
		if err != nil {
			return err
		}
		prev, bound := all[KeyOrigin]
		if bound && string(prev) == origin {
			return nil
		}

		if bound {
			if err := repo.Clear(ctx); err != nil {
				return err
			}
			dropped = len(all) - 1
		}
		return repo.Set(ctx, KeyOrigin, []byte(origin))
	})
	if err != nil {
		return 0, fmt.Errorf("bind session db to %s: %w", origin, err)
	}
	return dropped, nil
}
