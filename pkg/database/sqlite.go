package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	ie "github.com/voidshard/platen/pkg/errors"
	"github.com/voidshard/platen/pkg/structs"
)

const (
	// every transaction takes the write lock up front (BEGIN IMMEDIATE) so that
	// read-check-write sequences can't interleave.
	sqliteParams = "_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate&_foreign_keys=on"

	jobColumns = `id, display_label, effective_label, status, created_at, updated_at, pdf_filename, pdf_path,
	submitted_overrides, overrides, resolved_config, output_dir,
	COALESCE(plate_path, ''), COALESCE(zip_path, ''), COALESCE(s3_key, ''), COALESCE(error, ''), events`

	keyColumns = `id, key_hash, prefix, owner, max_generations, current_generations, is_active, created_at`
)

// SQLite is a database implementation over a local sqlite file.
type SQLite struct {
	opts *Options
	db   *sql.DB
}

// NewSQLite opens (creating if needed) a sqlite database & applies migrations.
func NewSQLite(opts *Options) (*SQLite, error) {
	opts.SetDefaults()
	path, dsn := sqliteDSN(opts.URL)
	if path != "" && path != ":memory:" {
		err := os.MkdirAll(filepath.Dir(path), 0755)
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer; a single connection serialises us without SQLITE_BUSY storms
	db.SetMaxOpenConns(1)

	err = db.Ping()
	if err != nil {
		db.Close()
		return nil, err
	}

	if !opts.SkipMigrations {
		err = migrateSQLite(db)
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	return &SQLite{opts: opts, db: db}, nil
}

// sqliteDSN returns the file path (if any) & go-sqlite3 DSN for the given URL.
func sqliteDSN(url string) (string, string) {
	for _, prefix := range []string{"sqlite3://", "sqlite://"} {
		url = strings.TrimPrefix(url, prefix)
	}
	path := strings.TrimPrefix(url, "file:")
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return path, url + sep + sqliteParams
}

// Close shuts down the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// withTx runs fn in a transaction, committing on success & rolling back on any error.
func (s *SQLite) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	err = fn(tx)
	if err != nil {
		tx.Rollback()
		return err
	}

	err = tx.Commit()
	if err != nil {
		tx.Rollback()
	}
	return err
}

// SaveJob inserts or replaces a job
func (s *SQLite) SaveJob(j *structs.Job) error {
	args, err := toJobSqlArgs(j, formatTime(j.CreatedAt), formatTime(j.UpdatedAt))
	if err != nil {
		return err
	}
	qstr := fmt.Sprintf(upsertJobSql, placeholders(len(args), question))
	return s.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(qstr, args...)
		return err
	})
}

// Job returns a single job
func (s *SQLite) Job(id string) (*structs.Job, error) {
	row := s.db.QueryRow(fmt.Sprintf(`SELECT %s FROM jobs WHERE id=?;`, jobColumns), id)
	j, err := scanSQLiteJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w job %s", ie.ErrNotFound, id)
	}
	return j, err
}

// Jobs returns jobs matching the given query
func (s *SQLite) Jobs(q *structs.Query) ([]*structs.Job, error) {
	if q == nil {
		q = &structs.Query{}
	}
	q.Sanitize()

	where, args := toSqlQuery(q, question)
	args = append(args, q.Limit, q.Offset)
	qstr := fmt.Sprintf(`SELECT %s FROM jobs %s ORDER BY created_at DESC LIMIT ? OFFSET ?;`, jobColumns, where)

	rows, err := s.db.Query(qstr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []*structs.Job{}
	for rows.Next() {
		j, err := scanSQLiteJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// UpdateJob applies a partial update to a job
func (s *SQLite) UpdateJob(id string, p *structs.JobPatch) error {
	cols, args := patchColumns(p, formatTime(patchTime(p, timeNow())))
	qstr := fmt.Sprintf(`UPDATE jobs SET %s WHERE id=?;`, toSqlSet(cols, question))
	args = append(args, id)

	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(qstr, args...)
		if err != nil {
			return err
		}
		return expectOne(res, id)
	})
}

// AppendJobEvent adds an event to the end of a job's event list
func (s *SQLite) AppendJobEvent(id string, e *structs.JobEvent) error {
	return s.withTx(func(tx *sql.Tx) error {
		var raw []byte
		err := tx.QueryRow(`SELECT events FROM jobs WHERE id=?;`, id).Scan(&raw)
		if errors.Is(err, sql.ErrNoRows) {
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

		_, err = tx.Exec(`UPDATE jobs SET events=?, updated_at=? WHERE id=?;`, encoded, formatTime(e.Timestamp), id)
		return err
	})
}

// DeleteJob removes a job
func (s *SQLite) DeleteJob(id string) (bool, error) {
	var deleted bool
	err := s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`DELETE FROM jobs WHERE id=?;`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		deleted = n > 0
		return err
	})
	return deleted, err
}

// InsertKey adds a new api key
func (s *SQLite) InsertKey(k *structs.APIKey) error {
	return s.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			fmt.Sprintf(`INSERT INTO api_keys (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`, keyColumns),
			k.ID, k.KeyHash, k.Prefix, k.Owner, k.MaxGenerations, k.CurrentGenerations, k.IsActive, formatTime(k.CreatedAt),
		)
		return err
	})
}

// KeyByHash returns the active key with the given hash
func (s *SQLite) KeyByHash(hash string) (*structs.APIKey, error) {
	row := s.db.QueryRow(fmt.Sprintf(`SELECT %s FROM api_keys WHERE key_hash=? AND is_active=1;`, keyColumns), hash)
	k, err := scanSQLiteKey(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w api key", ie.ErrNotFound)
	}
	return k, err
}

// Key returns a key by id
func (s *SQLite) Key(id string) (*structs.APIKey, error) {
	row := s.db.QueryRow(fmt.Sprintf(`SELECT %s FROM api_keys WHERE id=?;`, keyColumns), id)
	k, err := scanSQLiteKey(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w api key %s", ie.ErrNotFound, id)
	}
	return k, err
}

// Keys returns all keys
func (s *SQLite) Keys() ([]*structs.APIKey, error) {
	rows, err := s.db.Query(fmt.Sprintf(`SELECT %s FROM api_keys ORDER BY created_at DESC;`, keyColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := []*structs.APIKey{}
	for rows.Next() {
		k, err := scanSQLiteKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// IncrementKeyUsage checks & bumps a key's usage inside one immediate transaction
func (s *SQLite) IncrementKeyUsage(id string) (bool, error) {
	ok := false
	err := s.withTx(func(tx *sql.Tx) error {
		var current, max int64
		var active bool
		err := tx.QueryRow(
			`SELECT current_generations, max_generations, is_active FROM api_keys WHERE id=?;`, id,
		).Scan(&current, &max, &active)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		} else if err != nil {
			return err
		}
		if !active || current >= max {
			return nil
		}

		_, err = tx.Exec(`UPDATE api_keys SET current_generations = current_generations + 1 WHERE id=?;`, id)
		ok = err == nil
		return err
	})
	return ok, err
}

// DecrementKeyUsage refunds one unit of usage
func (s *SQLite) DecrementKeyUsage(id string) (bool, error) {
	var ok bool
	err := s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`UPDATE api_keys SET current_generations = current_generations - 1 WHERE id=? AND current_generations > 0;`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		ok = n > 0
		return err
	})
	return ok, err
}

// RevokeKey deactivates a key
func (s *SQLite) RevokeKey(id string) (bool, error) {
	var ok bool
	err := s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`UPDATE api_keys SET is_active=0 WHERE id=?;`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		ok = n > 0
		return err
	})
	return ok, err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSQLiteJob(row scanner) (*structs.Job, error) {
	j := &structs.Job{}
	var created, updated string
	var submitted, overrides, resolved, events []byte
	err := row.Scan(
		&j.ID,
		&j.DisplayLabel,
		&j.Label,
		&j.Status,
		&created,
		&updated,
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
	j.CreatedAt, err = parseTime(created)
	if err != nil {
		return nil, err
	}
	j.UpdatedAt, err = parseTime(updated)
	if err != nil {
		return nil, err
	}
	return j, decodeJobBlobs(j, submitted, overrides, resolved, events)
}

func scanSQLiteKey(row scanner) (*structs.APIKey, error) {
	k := &structs.APIKey{}
	var created string
	err := row.Scan(
		&k.ID,
		&k.KeyHash,
		&k.Prefix,
		&k.Owner,
		&k.MaxGenerations,
		&k.CurrentGenerations,
		&k.IsActive,
		&created,
	)
	if err != nil {
		return nil, err
	}
	k.CreatedAt, err = parseTime(created)
	return k, err
}

func expectOne(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w job %s", ie.ErrNotFound, id)
	}
	return nil
}
