package database

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Pool holds connection pool limits.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	PingTimeout time.Duration
}

// DefaultPool is used by Open.
var DefaultPool = Pool{
	MaxOpen:     25,
	MaxIdle:     25,
	MaxLifetime: 30 * time.Minute,
	PingTimeout: 5 * time.Second,
}

// MySQLDSN builds the DSN shared by the server and the migrator.  DATE and
// TIME columns are decoded in UTC so dates stay on their calendar day.
func MySQLDSN(user, pass, host, port, name string) string {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, port)
	cfg.DBName = name
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

// Open connects to MySQL with DefaultPool and verifies the connection.
func Open(ctx context.Context, user, pass, host, port, name string) (*sqlx.DB, error) {
	return OpenWithPool(ctx, MySQLDSN(user, pass, host, port, name), DefaultPool)
}

func OpenWithPool(ctx context.Context, dsn string, p Pool) (*sqlx.DB, error) {
	const op = "database.Open"

	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	db.SetMaxOpenConns(p.MaxOpen)
	db.SetMaxIdleConns(p.MaxIdle)
	db.SetConnMaxLifetime(p.MaxLifetime)

	ctx, cancel := context.WithTimeout(ctx, p.PingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}
	return db, nil
}
