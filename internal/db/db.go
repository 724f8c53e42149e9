package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/gratefultolord/survey_bot/internal/config"
)

type DB struct {
	Conn   *sqlx.DB
	Driver string
}

func New(cfg *config.Config) (*DB, error) {
	dsn := cfg.DBDSN
	if cfg.DBDriver == config.DriverPostgres {
		dsn = cfg.PostgresDSN()
	}

	return Open(cfg.DBDriver, dsn)
}

func Open(driver, dsn string) (*DB, error) {
	dbConn, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db.Open: cannot connect to database: %w", err)
	}

	if driver == config.DriverSQLite {
		// a single connection keeps ":memory:" databases shared and serializes writers
		dbConn.SetMaxOpenConns(1)
	} else {
		dbConn.SetMaxOpenConns(20)
		dbConn.SetMaxIdleConns(5)
		dbConn.SetConnMaxLifetime(60 * time.Minute)
	}

	return &DB{Conn: dbConn, Driver: driver}, nil
}

func (db *DB) Close() error {
	return db.Conn.Close()
}
