package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"bankreviews/model"
)

// DefaultBatchSize is the review insert transaction size.
const DefaultBatchSize = 100

// UpsertBanks inserts missing banks and returns bank_code -> bank_id for
// every entry, existing or new.
func (s *Store) UpsertBanks(ctx context.Context, apps map[string]string) (map[string]int64, error) {
	ids := make(map[string]int64, len(apps))
	for code, appName := range apps {
		var id int64
		err := s.db.QueryRowContext(ctx,
			`SELECT bank_id FROM banks WHERE bank_code = ?`, code).Scan(&id)
		switch err {
		case nil:
			ids[code] = id
			continue
		case sql.ErrNoRows:
			// fall through to insert
		default:
			return nil, fmt.Errorf("look up bank %s: %w", code, err)
		}
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO banks(bank_code, app_name) VALUES(?,?)`, code, appName)
		if err != nil {
			return nil, fmt.Errorf("insert bank %s: %w", code, err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return nil, err
		}
		ids[code] = id
		log.Printf("[LOAD] inserted bank %s (id %d)", code, id)
	}
	return ids, nil
}

// InsertReviews bulk-loads reviews in batched transactions. Conflicting
// review_ids are skipped (INSERT OR IGNORE), making the load idempotent.
// Reviews whose bank is not in bankIDs are counted as skipped.
func (s *Store) InsertReviews(ctx context.Context, reviews []model.Review, bankIDs map[string]int64, batchSize int) (inserted, skipped int, err error) {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}

	var (
		tx   *sql.Tx
		stmt *sql.Stmt
	)

	begin := func() error {
		var err error
		tx, err = s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		stmt, err = tx.PrepareContext(ctx, `INSERT OR IGNORE INTO reviews
            (review_id, bank_id, review_text, rating, review_date,
             sentiment_label, sentiment_score, themes, source)
            VALUES(?,?,?,?,?,?,?,?,?)`)
		if err != nil {
			tx.Rollback()
			tx = nil
		}
		return err
	}

	commit := func() error {
		if stmt != nil {
			if err := stmt.Close(); err != nil {
				return err
			}
			stmt = nil
		}
		if tx != nil {
			if err := tx.Commit(); err != nil {
				return err
			}
			tx = nil
		}
		return nil
	}

	if err := begin(); err != nil {
		return 0, 0, err
	}
	defer func() {
		if tx != nil {
			tx.Rollback()
		}
	}()

	count := 0
	for _, r := range reviews {
		bankID, ok := bankIDs[r.Bank]
		if !ok {
			skipped++
			continue
		}
		res, err := stmt.ExecContext(ctx,
			r.ID, bankID, r.Text, r.Rating, r.Date,
			r.SentimentLabel, r.SentimentScore, r.Themes, r.Source)
		if err != nil {
			return inserted, skipped, fmt.Errorf("insert review %s: %w", r.ID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		} else {
			skipped++
		}
		count++
		if count%batchSize == 0 {
			if err := commit(); err != nil {
				return inserted, skipped, err
			}
			if err := begin(); err != nil {
				return inserted, skipped, err
			}
		}
	}
	if err := commit(); err != nil {
		return inserted, skipped, err
	}
	return inserted, skipped, nil
}
