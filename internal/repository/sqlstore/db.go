package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/pereval-service/internal/config"
)

const (
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed schema/*.sql
var schemaFS embed.FS

func init() {
	// modernc регистрируется как "sqlite", которого нет в таблице bindvar sqlx
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

type DB struct {
	*sqlx.DB
	logger *zap.Logger
}

func New(cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	dsn := cfg.DSN()
	if cfg.Driver == DriverSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sqlx.Connect(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Connection pool settings
	if cfg.Driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connected",
		zap.String("driver", cfg.Driver),
		zap.String("host", cfg.Host),
		zap.String("database", cfg.DBName),
	)

	return &DB{DB: db, logger: logger}, nil
}

// NewDBForTest creates a DB instance for testing with provided database and logger
func NewDBForTest(sqlxDB *sqlx.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{
		DB:     sqlxDB,
		logger: logger,
	}
}

// OpenSQLiteMemory открывает изолированную in-memory базу SQLite с применённой схемой
func OpenSQLiteMemory(logger *zap.Logger) (*DB, error) {
	sqlxDB, err := sqlx.Open(DriverSQLite, sqliteDSN(":memory:"))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Каждое соединение к :memory: - отдельная база
	sqlxDB.SetMaxOpenConns(1)

	db := NewDBForTest(sqlxDB, logger)
	if err := db.Migrate(context.Background()); err != nil {
		_ = sqlxDB.Close()
		return nil, err
	}
	return db, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func (db *DB) Close() error {
	db.logger.Info("Closing database connection")
	return db.DB.Close()
}

func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

func (db *DB) isSQLite() bool {
	return db.DriverName() == DriverSQLite
}

// Migrate применяет встроенную схему для текущего драйвера
func (db *DB) Migrate(ctx context.Context) error {
	file := "schema/postgres.sql"
	if db.isSQLite() {
		file = "schema/sqlite.sql"
	}

	content, err := schemaFS.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read schema %s: %w", file, err)
	}

	for _, stmt := range strings.Split(string(content), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema %s: %w", file, err)
		}
	}

	db.logger.Info("Database schema applied", zap.String("schema", file))
	return nil
}

// ext возвращает транзакцию из контекста, если она есть, иначе пул соединений
func (db *DB) ext(ctx context.Context) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db.DB
}

func (db *DB) get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	e := db.ext(ctx)
	return sqlx.GetContext(ctx, e, dest, e.Rebind(query), args...)
}

func (db *DB) selectAll(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	e := db.ext(ctx)
	return sqlx.SelectContext(ctx, e, dest, e.Rebind(query), args...)
}

func (db *DB) exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	e := db.ext(ctx)
	return e.ExecContext(ctx, e.Rebind(query), args...)
}

// insertReturningID выполняет INSERT ... RETURNING id
func (db *DB) insertReturningID(ctx context.Context, query string, args ...interface{}) (int64, error) {
	e := db.ext(ctx)
	var id int64
	if err := e.QueryRowxContext(ctx, e.Rebind(query), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// now - метка времени с точностью до микросекунд, как хранит PostgreSQL
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
