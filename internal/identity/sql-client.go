// Package identity reads the identity backend's users table through a
// read-only MySQL replica connection. Accounts are never written here; the
// provisioner creates them through the admin API and this client only backs
// the dashboard listing.
package identity

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver

	"launchlist/entity"
	"launchlist/internal/config"
)

type MySql struct {
	db *sql.DB
}

func NewSQLClient(conf *config.Config) (*MySql, error) {
	if !conf.Identity.Enabled {
		return nil, fmt.Errorf("identity client is disabled in configuration")
	}
	connectionURI := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		conf.Identity.UserName, conf.Identity.Password, conf.Identity.HostName, conf.Identity.Port, conf.Identity.Database)
	db, err := sql.Open("mysql", connectionURI)
	if err != nil {
		return nil, fmt.Errorf("sql connect: %w", err)
	}

	// try to ping three times with a 30-second interval; wait for a database to start
	for i := 0; i < 3; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		if i == 2 {
			return nil, fmt.Errorf("ping database: %w", err)
		}
		time.Sleep(30 * time.Second)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return &MySql{db: db}, nil
}

func newWithDB(db *sql.DB) *MySql {
	return &MySql{db: db}
}

func (s *MySql) Close() {
	_ = s.db.Close()
}

// Accounts lists provisioned accounts for the admin dashboard, oldest first.
func (s *MySql) Accounts() ([]*entity.Account, error) {
	query := `SELECT id, email, created_at, email_confirmed_at, last_sign_in_at
		FROM users ORDER BY created_at`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var accounts []*entity.Account
	for rows.Next() {
		var account entity.Account
		var confirmedAt, lastSignInAt sql.NullTime
		err = rows.Scan(&account.Id, &account.Email, &account.CreatedAt, &confirmedAt, &lastSignInAt)
		if err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		if confirmedAt.Valid {
			account.ConfirmedAt = &confirmedAt.Time
		}
		if lastSignInAt.Valid {
			account.LastSignInAt = &lastSignInAt.Time
		}
		accounts = append(accounts, &account)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}
	return accounts, nil
}
