package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPgErrorClassification(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})
	noRows := fmt.Errorf("get: %w", pgx.ErrNoRows)
	other := errors.New("boom")

	tests := []struct {
		name      string
		err       error
		duplicate bool
		foreign   bool
		noRows    bool
	}{
		{"unique violation", dup, true, false, false},
		{"foreign key violation", fk, false, true, false},
		{"no rows", noRows, false, false, true},
		{"other", other, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPgDuplicateError(tt.err); got != tt.duplicate {
				t.Errorf("IsPgDuplicateError = %v, want %v", got, tt.duplicate)
			}
			if got := IsPgForeignKeyError(tt.err); got != tt.foreign {
				t.Errorf("IsPgForeignKeyError = %v, want %v", got, tt.foreign)
			}
			if got := IsPgNoRowsError(tt.err); got != tt.noRows {
				t.Errorf("IsPgNoRowsError = %v, want %v", got, tt.noRows)
			}
		})
	}
}

func TestIsValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"7d444840-9dc0-11d1-b245-5ffdce74fad2", true},
		{"", false},
		{"42", false},
		{"not-a-uuid", false},
	}

	for _, tt := range tests {
		if got := IsValidID(tt.id); got != tt.want {
			t.Errorf("IsValidID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestNewTableNames(t *testing.T) {
	tables := NewTableNames("test_")

	if tables.Users != "test_users" {
		t.Errorf("Users = %q, want %q", tables.Users, "test_users")
	}
	if tables.Tokens != "test_auth_tokens" {
		t.Errorf("Tokens = %q, want %q", tables.Tokens, "test_auth_tokens")
	}
	if tables.Folders != "test_folders" {
		t.Errorf("Folders = %q, want %q", tables.Folders, "test_folders")
	}
	if tables.Files != "test_files" {
		t.Errorf("Files = %q, want %q", tables.Files, "test_files")
	}
}
