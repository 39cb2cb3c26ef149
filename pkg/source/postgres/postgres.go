// Package postgres loads censor dictionaries from PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"antiswear/pkg/censor"
)

type Store struct {
	db *pgxpool.Pool
}

func New(ctx context.Context, conStr string) (*Store, error) {
	db, err := pgxpool.Connect(ctx, conStr)
	if err != nil {
		return nil, err
	}
	s := Store{
		db: db,
	}

	return &s, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) Close() {
	s.db.Close()
}

func (s *Store) String() string {
	return "postgres"
}

// Load reads both tables in one read-only transaction so the dictionary is
// built from a consistent view. NULL columns yield entries the dictionary
// drops.
func (s *Store) Load(ctx context.Context) (*censor.Dictionary, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly, IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `SELECT search, replace FROM blacklist`)
	if err != nil {
		return nil, fmt.Errorf("failed to query blacklist: %w", err)
	}
	var pairs []censor.Pair
	for rows.Next() {
		var p censor.Pair
		if err := rows.Scan(&p.Search, &p.Replace); err != nil {
			rows.Close()
			return nil, err
		}
		pairs = append(pairs, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = tx.Query(ctx, `SELECT phrase FROM whitelist WHERE phrase IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to query whitelist: %w", err)
	}
	var phrases []string
	for rows.Next() {
		var phrase string
		if err := rows.Scan(&phrase); err != nil {
			rows.Close()
			return nil, err
		}
		phrases = append(phrases, phrase)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return censor.NewDictionary(pairs, phrases), nil
}

// AddPairs inserts blacklist pairs within a single transaction.
func (s *Store) AddPairs(ctx context.Context, pairs []censor.Pair) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := new(pgx.Batch)
	for _, p := range pairs {
		batch.Queue(`INSERT INTO blacklist (search, replace) VALUES ($1, $2)`, p.Search, p.Replace)
	}
	res := tx.SendBatch(ctx, batch)
	for range pairs {
		if _, err := res.Exec(); err != nil {
			res.Close()
			return err
		}
	}
	if err := res.Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// AddPhrases inserts whitelist phrases within a single transaction.
func (s *Store) AddPhrases(ctx context.Context, phrases []string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := new(pgx.Batch)
	for _, p := range phrases {
		batch.Queue(`INSERT INTO whitelist (phrase) VALUES ($1)`, p)
	}
	res := tx.SendBatch(ctx, batch)
	for range phrases {
		if _, err := res.Exec(); err != nil {
			res.Close()
			return err
		}
	}
	if err := res.Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
