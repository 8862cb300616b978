package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	ie "github.com/voidshard/platen/pkg/errors"
	"github.com/voidshard/platen/pkg/structs"
)

// Postgres is a database implementation that uses postgres, for when more than one
// platen process shares a store.
type Postgres struct {
	opts *Options
	pool *pgxpool.Pool
}

// NewPostgres returns a new Postgres database connection.
func NewPostgres(opts *Options) (*Postgres, error) {
	opts.SetDefaults()
	opts.URL = strings.Replace(opts.URL, "$"+opts.UsernameEnvVar, os.Getenv(opts.UsernameEnvVar), 1)
	opts.URL = strings.Replace(opts.URL, "$"+opts.PasswordEnvVar, os.Getenv(opts.PasswordEnvVar), 1)

	if !opts.SkipMigrations {
		err := migratePostgres(opts.URL)
		if err != nil {
			return nil, err
		}
	}

	pool, err := pgxpool.New(context.Background(), opts.URL)
	return &Postgres{pool: pool, opts: opts}, err
}

// Close shuts down the database connection.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

// withTx acquires a connection & runs fn in a transaction, rolling back on error
func (p *Postgres) withTx(fn func(ctx context.Context, tx pgx.Tx) error) error {
	ctx := context.Background()
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}

	err = fn(ctx, tx)
	if err != nil {
		tx.Rollback(ctx)
		return err
	}

	err = tx.Commit(ctx)
	if err != nil {
		tx.Rollback(ctx)
	}
	return err
}

// SaveJob inserts or replaces a job
func (p *Postgres) SaveJob(j *structs.Job) error {
	args, err := toJobSqlArgs(j, j.CreatedAt.UTC(), j.UpdatedAt.UTC())
	if err != nil {
		return err
	}
	qstr := fmt.Sprintf(upsertJobSql, placeholders(len(args), dollar))
	return p.withTx(func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, qstr, args...)
		return err
	})
}

// Job returns a single job
func (p *Postgres) Job(id string) (*structs.Job, error) {
	ctx := context.Background()
	row := p.pool.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM jobs WHERE id=$1;`, jobColumns), id)
	j, err := scanPostgresJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w job %s", ie.ErrNotFound, id)
	}
	return j, err
}

// Jobs returns jobs matching the given query
func (p *Postgres) Jobs(q *structs.Query) ([]*structs.Job, error) {
	if q == nil {
		q = &structs.Query{}
	}
	q.Sanitize()

	where, args := toSqlQuery(q, dollar)
	args = append(args, q.Limit, q.Offset)

	qstr := fmt.Sprintf(`SELECT %s FROM jobs %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`,
		jobColumns, where, len(args)-1, len(args),
	)

	ctx := context.Background()
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, qstr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []*structs.Job{}
	for rows.Next() {
		j, err := scanPostgresJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}

	return jobs, rows.Err()
}

// UpdateJob applies a partial update to a job
func (p *Postgres) UpdateJob(id string, patch *structs.JobPatch) error {
	cols, args := patchColumns(patch, patchTime(patch, timeNow()).UTC())
	args = append(args, id)
	qstr := fmt.Sprintf(`UPDATE jobs SET %s WHERE id=$%d;`, toSqlSet(cols, dollar), len(args))

	return p.withTx(func(ctx context.Context, tx pgx.Tx) error {
		info, err := tx.Exec(ctx, qstr, args...)
		if err != nil {
			return err
		}
		if info.RowsAffected() == 0 {
			return fmt.Errorf("%w job %s", ie.ErrNotFound, id)
		}
		return nil
	})
}

// AppendJobEvent adds an event to a job's event list; the row is locked for the duration
func (p *Postgres) AppendJobEvent(id string, e *structs.JobEvent) error {
	return p.withTx(func(ctx context.Context, tx pgx.Tx) error {
		var raw []byte
		err := tx.QueryRow(ctx, `SELECT events FROM jobs WHERE id=$1 FOR UPDATE;`, id).Scan(&raw)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w job %s", ie.ErrNotFound, id)
		} else if err != nil {
			return err
		}

		events, err := decodeEvents(raw)
		if err != nil {
			return err
		}
		encoded, err := encodeEvents(append(events, e))
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `UPDATE jobs SET events=$1, updated_at=$2 WHERE id=$3;`, encoded, e.Timestamp.UTC(), id)
		return err
	})
}

// DeleteJob removes a job
func (p *Postgres) DeleteJob(id string) (bool, error) {
	var deleted bool
	err := p.withTx(func(ctx context.Context, tx pgx.Tx) error {
		info, err := tx.Exec(ctx, `DELETE FROM jobs WHERE id=$1;`, id)
		deleted = err == nil && info.RowsAffected() > 0
		return err
	})
	return deleted, err
}

// InsertKey adds a new api key
func (p *Postgres) InsertKey(k *structs.APIKey) error {
	return p.withTx(func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(
			ctx,
			fmt.Sprintf(`INSERT INTO api_keys (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`, keyColumns),
			k.ID, k.KeyHash, k.Prefix, k.Owner, k.MaxGenerations, k.CurrentGenerations, k.IsActive, k.CreatedAt.UTC(),
		)
		return err
	})
}

// KeyByHash returns the active key with the given hash
func (p *Postgres) KeyByHash(hash string) (*structs.APIKey, error) {
	row := p.pool.QueryRow(context.Background(), fmt.Sprintf(`SELECT %s FROM api_keys WHERE key_hash=$1 AND is_active;`, keyColumns), hash)
	k, err := scanPostgresKey(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w api key", ie.ErrNotFound)
	}
	return k, err
}

// Key returns a key by id
func (p *Postgres) Key(id string) (*structs.APIKey, error) {
	row := p.pool.QueryRow(context.Background(), fmt.Sprintf(`SELECT %s FROM api_keys WHERE id=$1;`, keyColumns), id)
	k, err := scanPostgresKey(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w api key %s", ie.ErrNotFound, id)
	}
	return k, err
}

// Keys returns all keys
func (p *Postgres) Keys() ([]*structs.APIKey, error) {
	ctx := context.Background()
	rows, err := p.pool.Query(ctx, fmt.Sprintf(`SELECT %s FROM api_keys ORDER BY created_at DESC;`, keyColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := []*structs.APIKey{}
	for rows.Next() {
		k, err := scanPostgresKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// IncrementKeyUsage locks the key row, checks the ceiling & bumps usage
func (p *Postgres) IncrementKeyUsage(id string) (bool, error) {
	ok := false
	err := p.withTx(func(ctx context.Context, tx pgx.Tx) error {
		var current, max int64
		var active bool
		err := tx.QueryRow(
			ctx,
			`SELECT current_generations, max_generations, is_active FROM api_keys WHERE id=$1 FOR UPDATE;`, id,
		).Scan(&current, &max, &active)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		} else if err != nil {
			return err
		}
		if !active || current >= max {
			return nil
		}

		_, err = tx.Exec(ctx, `UPDATE api_keys SET current_generations = current_generations + 1 WHERE id=$1;`, id)
		ok = err == nil
		return err
	})
	return ok, err
}

// DecrementKeyUsage refunds one unit of usage
func (p *Postgres) DecrementKeyUsage(id string) (bool, error) {
	var ok bool
	err := p.withTx(func(ctx context.Context, tx pgx.Tx) error {
		info, err := tx.Exec(ctx, `UPDATE api_keys SET current_generations = current_generations - 1 WHERE id=$1 AND current_generations > 0;`, id)
		ok = err == nil && info.RowsAffected() > 0
		return err
	})
	return ok, err
}

// RevokeKey deactivates a key
func (p *Postgres) RevokeKey(id string) (bool, error) {
	var ok bool
	err := p.withTx(func(ctx context.Context, tx pgx.Tx) error {
		info, err := tx.Exec(ctx, `UPDATE api_keys SET is_active=FALSE WHERE id=$1;`, id)
		ok = err == nil && info.RowsAffected() > 0
		return err
	})
	return ok, err
}

func scanPostgresJob(row pgx.Row) (*structs.Job, error) {
	j := &structs.Job{}
	var status string
	var submitted, overrides, resolved, events []byte
	err := row.Scan(
		&j.ID,
		&j.DisplayLabel,
		&j.Label,
		&status,
		&j.CreatedAt,
		&j.UpdatedAt,
		&j.PDFFilename,
		&j.PDFPath,
		&submitted,
		&overrides,
		&resolved,
		&j.OutputDir,
		&j.PlatePath,
		&j.ZipPath,
		&j.S3Key,
		&j.Error,
		&events,
	)
	if err != nil {
		return nil, err
	}
	j.Status = structs.Status(status)
	j.CreatedAt = j.CreatedAt.UTC()
	j.UpdatedAt = j.UpdatedAt.UTC()
	return j, decodeJobBlobs(j, submitted, overrides, resolved, events)
}

func scanPostgresKey(row pgx.Row) (*structs.APIKey, error) {
	k := &structs.APIKey{}
	err := row.Scan(
		&k.ID,
		&k.KeyHash,
		&k.Prefix,
		&k.Owner,
		&k.MaxGenerations,
		&k.CurrentGenerations,
		&k.IsActive,
		&k.CreatedAt,
	)
	k.CreatedAt = k.CreatedAt.UTC()
	return k, err
}
