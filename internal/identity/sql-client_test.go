package identity

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAccounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	confirmed := created.Add(time.Hour)

	rows := sqlmock.NewRows([]string{"id", "email", "created_at", "email_confirmed_at", "last_sign_in_at"}).
		AddRow("u-1", "a@example.com", created, confirmed, nil).
		AddRow("u-2", "b@example.com", created, nil, nil)
	mock.ExpectQuery("SELECT (.+) FROM users").WillReturnRows(rows)

	client := newWithDB(db)
	accounts, err := client.Accounts()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("got %d accounts, want 2", len(accounts))
	}
	if accounts[0].Email != "a@example.com" {
		t.Errorf("email = %q, want a@example.com", accounts[0].Email)
	}
	if accounts[0].ConfirmedAt == nil || !accounts[0].ConfirmedAt.Equal(confirmed) {
		t.Errorf("confirmed_at = %v, want %v", accounts[0].ConfirmedAt, confirmed)
	}
	if accounts[1].ConfirmedAt != nil {
		t.Error("unconfirmed account has a confirmed_at value")
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAccountsQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").WillReturnError(fmt.Errorf("replica down"))

	client := newWithDB(db)
	if _, err = client.Accounts(); err == nil {
		t.Fatal("expected error when the query fails")
	}
}
