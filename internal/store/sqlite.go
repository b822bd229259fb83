package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/models"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the session in a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger logging.Logger
}

// NewSQLiteStore opens (and migrates) the database at dbPath.
func NewSQLiteStore(dbPath string, logger logging.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Debug("Opened session database", logging.F(logging.FieldFile, dbPath))
	return &SQLiteStore{db: db, path: dbPath, logger: logger}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the whole session.
func (s *SQLiteStore) Load(ctx context.Context) (Session, error) {
	sess := NewSession()

	if err := s.loadOverrides(ctx, &sess); err != nil {
		return Session{}, err
	}
	if err := s.loadSortOrder(ctx, &sess); err != nil {
		return Session{}, err
	}
	if err := s.loadAdjustments(ctx, &sess); err != nil {
		return Session{}, err
	}
	if err := s.loadGoals(ctx, &sess); err != nil {
		return Session{}, err
	}
	if err := s.loadMateriality(ctx, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *SQLiteStore) loadOverrides(ctx context.Context, sess *Session) error {
	rows, err := s.db.QueryContext(ctx, `SELECT description, bucket FROM overrides`)
	if err != nil {
		return fmt.Errorf("query overrides: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var desc, bucket string
		if err := rows.Scan(&desc, &bucket); err != nil {
			return fmt.Errorf("scan override: %w", err)
		}
		sess.Overrides[desc] = models.BucketID(bucket)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadSortOrder(ctx context.Context, sess *Session) error {
	rows, err := s.db.QueryContext(ctx, `SELECT bucket, name FROM sort_order ORDER BY bucket, position`)
	if err != nil {
		return fmt.Errorf("query sort order: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bucket, name string
		if err := rows.Scan(&bucket, &name); err != nil {
			return fmt.Errorf("scan sort order: %w", err)
		}
		id := models.BucketID(bucket)
		sess.SortOrder[id] = append(sess.SortOrder[id], name)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadAdjustments(ctx context.Context, sess *Session) error {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM kpi_adjustments`)
	if err != nil {
		return fmt.Errorf("query kpi adjustments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("scan kpi adjustment: %w", err)
		}
		v, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Errorf("invalid kpi adjustment %s: %w", key, err)
		}
		sess.KPIAdjustments[key] = v
	}
	return rows.Err()
}

func (s *SQLiteStore) loadGoals(ctx context.Context, sess *Session) error {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, current, target FROM goals ORDER BY position`)
	if err != nil {
		return fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var g models.Goal
		var current, target string
		if err := rows.Scan(&g.ID, &g.Title, &current, &target); err != nil {
			return fmt.Errorf("scan goal: %w", err)
		}
		if g.Current, err = decimal.NewFromString(current); err != nil {
			return fmt.Errorf("invalid goal %s current: %w", g.ID, err)
		}
		if g.Target, err = decimal.NewFromString(target); err != nil {
			return fmt.Errorf("invalid goal %s target: %w", g.ID, err)
		}
		sess.Goals = append(sess.Goals, g)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadMateriality(ctx context.Context, sess *Session) error {
	var benchmark, percentage, risk string
	var saved bool
	err := s.db.QueryRowContext(ctx,
		`SELECT benchmark, percentage, risk_profile, saved FROM materiality WHERE id = 1`,
	).Scan(&benchmark, &percentage, &risk, &saved)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("query materiality: %w", err)
	}

	pct, err := decimal.NewFromString(percentage)
	if err != nil {
		return fmt.Errorf("invalid materiality percentage: %w", err)
	}
	sess.Materiality = models.MaterialitySettings{
		Benchmark:   models.Benchmark(benchmark),
		Percentage:  pct,
		RiskProfile: models.RiskProfile(risk),
		Saved:       saved,
	}
	return nil
}

// Save replaces the stored session in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, sess Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := clearTables(ctx, tx); err != nil {
		return err
	}

	for desc, bucket := range sess.Overrides {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO overrides (description, bucket) VALUES (?, ?)`, desc, string(bucket)); err != nil {
			return fmt.Errorf("insert override: %w", err)
		}
	}

	for bucket, names := range sess.SortOrder {
		for i, name := range names {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO sort_order (bucket, position, name) VALUES (?, ?, ?)`, string(bucket), i, name); err != nil {
				return fmt.Errorf("insert sort order: %w", err)
			}
		}
	}

	for key, value := range sess.KPIAdjustments {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO kpi_adjustments (key, value) VALUES (?, ?)`, key, value.String()); err != nil {
			return fmt.Errorf("insert kpi adjustment: %w", err)
		}
	}

	for i, g := range sess.Goals {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO goals (id, position, title, current, target) VALUES (?, ?, ?, ?, ?)`,
			g.ID, i, g.Title, g.Current.String(), g.Target.String()); err != nil {
			return fmt.Errorf("insert goal: %w", err)
		}
	}

	m := sess.Materiality
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO materiality (id, benchmark, percentage, risk_profile, saved) VALUES (1, ?, ?, ?, ?)`,
		string(m.Benchmark), m.Percentage.String(), string(m.RiskProfile), m.Saved); err != nil {
		return fmt.Errorf("insert materiality: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	s.logger.Info("Saved session", logging.F(logging.FieldFile, s.path))
	return nil
}

// Reset deletes all session data.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := clearTables(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	s.logger.Info("Session reset", logging.F(logging.FieldFile, s.path))
	return nil
}

func clearTables(ctx context.Context, tx *sql.Tx) error {
	for _, table := range []string{"overrides", "sort_order", "kpi_adjustments", "goals", "materiality"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
