package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"spendwatch-hq/spendwatch/pkg/limits"
)

// SQLiteBackend implements Backend using SQLite for persistence.
// This backend provides durable storage and is suitable for single-instance
// deployments where account state must survive restarts.
//
// SQLiteBackend uses a write-ahead log (WAL) for better concurrent performance
// and automatic checkpointing to balance write performance with durability.
type SQLiteBackend struct {
	db                 *sql.DB
	dbPath             string
	checkpointInterval time.Duration
	done               chan struct{}
	mu                 sync.RWMutex
	closeOnce          sync.Once

	// preparedStatements contains pre-compiled SQL statements for performance
	saveStmt    *sql.Stmt
	loadStmt    *sql.Stmt
	spendStmt   *sql.Stmt
	resetStmt   *sql.Stmt
	promoteStmt *sql.Stmt
	listStmt    *sql.Stmt
}

// SQLiteBackendConfig configures the SQLite backend.
type SQLiteBackendConfig struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// CheckpointInterval is how often to checkpoint the WAL.
	// Default: 5 minutes
	CheckpointInterval time.Duration

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// NewSQLiteBackend creates a new SQLite storage backend with default settings.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	return NewSQLiteBackendWithConfig(SQLiteBackendConfig{
		DBPath:             dbPath,
		CheckpointInterval: 5 * time.Minute,
		BusyTimeout:        5 * time.Second,
	})
}

// NewSQLiteBackendWithConfig creates a new SQLite backend with custom configuration.
func NewSQLiteBackendWithConfig(cfg SQLiteBackendConfig) (*SQLiteBackend, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.CheckpointInterval == 0 {
		cfg.CheckpointInterval = 5 * time.Minute
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	backend := &SQLiteBackend{
		db:                 db,
		dbPath:             cfg.DBPath,
		checkpointInterval: cfg.CheckpointInterval,
		done:               make(chan struct{}),
	}

	if err := backend.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := backend.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	go backend.checkpointLoop()

	return backend, nil
}

// initSchema creates the database schema if it doesn't exist.
func (s *SQLiteBackend) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS accounts (
		account TEXT PRIMARY KEY,
		daily_limit REAL NOT NULL,
		limit_type TEXT NOT NULL,
		total_spent REAL NOT NULL DEFAULT 0,
		transaction_count INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		last_updated INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_limit_type ON accounts(limit_type);
	`

	_, err := s.db.Exec(schema)
	return err
}

// prepareStatements prepares SQL statements for reuse.
func (s *SQLiteBackend) prepareStatements() error {
	var err error

	s.saveStmt, err = s.db.Prepare(`
		INSERT INTO accounts (account, daily_limit, limit_type, total_spent, transaction_count, created_at, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (account) DO UPDATE SET
			daily_limit = excluded.daily_limit,
			limit_type = excluded.limit_type,
			total_spent = excluded.total_spent,
			transaction_count = excluded.transaction_count,
			last_updated = excluded.last_updated
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare save statement: %w", err)
	}

	s.loadStmt, err = s.db.Prepare(`
		SELECT account, daily_limit, limit_type, total_spent, transaction_count, created_at, last_updated
		FROM accounts
		WHERE account = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare load statement: %w", err)
	}

	s.spendStmt, err = s.db.Prepare(`
		UPDATE accounts
		SET total_spent = total_spent + ?,
			transaction_count = transaction_count + 1,
			last_updated = ?
		WHERE account = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare spend statement: %w", err)
	}

	s.resetStmt, err = s.db.Prepare(`
		UPDATE accounts
		SET total_spent = 0,
			transaction_count = 0,
			last_updated = ?
		WHERE total_spent != 0 OR transaction_count != 0
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare reset statement: %w", err)
	}

	s.promoteStmt, err = s.db.Prepare(`
		UPDATE accounts
		SET limit_type = ?,
			daily_limit = ?,
			last_updated = ?
		WHERE limit_type = ? AND created_at <= ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare promote statement: %w", err)
	}

	s.listStmt, err = s.db.Prepare(`
		SELECT account, daily_limit, limit_type, total_spent, transaction_count, created_at, last_updated
		FROM accounts
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare list statement: %w", err)
	}

	return nil
}

// SaveAccount persists the state for an account.
func (s *SQLiteBackend) SaveAccount(ctx context.Context, state *AccountState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.Account == "" {
		return fmt.Errorf("account cannot be empty")
	}
	if !state.LimitType.Valid() {
		return fmt.Errorf("unknown limit type %q", state.LimitType)
	}

	now := time.Now()
	if state.CreatedAt.IsZero() {
		state.CreatedAt = now
	}
	state.LastUpdated = now

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.saveStmt.ExecContext(ctx,
		state.Account,
		state.DailyLimit,
		string(state.LimitType),
		state.Spending.TotalSpent,
		state.Spending.TransactionCount,
		state.CreatedAt.Unix(),
		state.LastUpdated.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}

	return nil
}

// LoadAccount retrieves the state for an account.
func (s *SQLiteBackend) LoadAccount(ctx context.Context, account string) (*AccountState, error) {
	if account == "" {
		return nil, fmt.Errorf("account cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	state, err := scanAccount(s.loadStmt.QueryRowContext(ctx, account))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	return state, nil
}

// RecordSpend atomically adds spending to an account.
func (s *SQLiteBackend) RecordSpend(ctx context.Context, account string, amount float64) error {
	if account == "" {
		return fmt.Errorf("account cannot be empty")
	}
	if amount < 0 {
		return fmt.Errorf("amount cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.spendStmt.ExecContext(ctx, amount, time.Now().Unix(), account)
	if err != nil {
		return fmt.Errorf("failed to record spend: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("record spend for %q: %w", account, limits.ErrAccountNotFound)
	}

	return nil
}

// ResetSpending zeroes the spending record of every account.
func (s *SQLiteBackend) ResetSpending(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.resetStmt.ExecContext(ctx, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to reset spending: %w", err)
	}

	reset, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(reset), nil
}

// PromoteAccounts upgrades new accounts that have reached the upgrade age.
func (s *SQLiteBackend) PromoteAccounts(ctx context.Context, upgradeAgeDays int, upgradedLimit float64) (int, error) {
	if upgradedLimit <= 0 {
		return 0, fmt.Errorf("upgraded limit must be positive")
	}

	now := time.Now()
	cutoff := now.Add(-time.Duration(upgradeAgeDays) * 24 * time.Hour)

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.promoteStmt.ExecContext(ctx,
		string(limits.LimitTypeEstablished),
		upgradedLimit,
		now.Unix(),
		string(limits.LimitTypeNewAccount),
		cutoff.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to promote accounts: %w", err)
	}

	promoted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(promoted), nil
}

// ListAccounts returns the state of every stored account.
func (s *SQLiteBackend) ListAccounts(ctx context.Context) ([]*AccountState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.listStmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var states []*AccountState
	for rows.Next() {
		state, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		states = append(states, state)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return states, nil
}

// Close releases any resources held by the backend.
// Close is idempotent and safe to call multiple times.
func (s *SQLiteBackend) Close() error {
	var closeErr error

	s.closeOnce.Do(func() {
		close(s.done)

		for _, stmt := range []*sql.Stmt{s.saveStmt, s.loadStmt, s.spendStmt, s.resetStmt, s.promoteStmt, s.listStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}

		if s.db != nil {
			// Run final checkpoint
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			closeErr = s.db.Close()
		}
	})

	return closeErr
}

// scanner abstracts *sql.Row and *sql.Rows for scanAccount.
type scanner interface {
	Scan(dest ...any) error
}

// scanAccount reads one accounts row into an AccountState.
func scanAccount(row scanner) (*AccountState, error) {
	var (
		account          string
		dailyLimit       float64
		limitType        string
		totalSpent       float64
		transactionCount int
		createdAt        int64
		lastUpdated      int64
	)

	if err := row.Scan(&account, &dailyLimit, &limitType, &totalSpent, &transactionCount, &createdAt, &lastUpdated); err != nil {
		return nil, err
	}

	return &AccountState{
		Account:    account,
		DailyLimit: dailyLimit,
		LimitType:  limits.LimitType(limitType),
		Spending: limits.SpendingRecord{
			TotalSpent:       totalSpent,
			TransactionCount: transactionCount,
		},
		CreatedAt:   time.Unix(createdAt, 0),
		LastUpdated: time.Unix(lastUpdated, 0),
	}, nil
}

// checkpointLoop runs periodic WAL checkpoints.
func (s *SQLiteBackend) checkpointLoop() {
	ticker := time.NewTicker(s.checkpointInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(PASSIVE)")
		case <-s.done:
			return
		}
	}
}
