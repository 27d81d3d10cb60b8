package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"syscall"
	"testing"

	"github.com/lib/pq"
)

func TestDriverFor(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{dsn: "postgres://user:pw@host:5432/bridge?sslmode=require", want: DriverPostgres},
		{dsn: "postgresql://user@host/bridge", want: DriverPostgres},
		{dsn: "host=localhost port=5432 dbname=bridge sslmode=disable", want: DriverPostgres},
		{dsn: "bridge.db", want: DriverSQLite},
		{dsn: "file::memory:?cache=shared", want: DriverSQLite},
	}

	for _, tc := range tests {
		if got := driverFor(tc.dsn); got != tc.want {
			t.Fatalf("driverFor(%q) = %q, want %q", tc.dsn, got, tc.want)
		}
	}
}

func TestNewAndExec(t *testing.T) {
	ctx := context.Background()
	d, err := New(ctx, "file::memory:?cache=shared", nil)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer d.Close()

	if d.Driver() != DriverSQLite {
		t.Fatalf("Driver = %q, want sqlite", d.Driver())
	}

	if _, err := d.Exec(ctx, `CREATE TABLE t (id INTEGER PRIMARY KEY, v TEXT)`); err != nil {
		t.Fatalf("exec create: %v", err)
	}
	if _, err := d.Exec(ctx, `INSERT INTO t (v) VALUES ($1)`, "hello"); err != nil {
		t.Fatalf("exec insert: %v", err)
	}

	var v string
	if err := d.QueryRow(ctx, `SELECT v FROM t WHERE id = $1`, 1).Scan(&v); err != nil {
		t.Fatalf("query row: %v", err)
	}
	if v != "hello" {
		t.Fatalf("v = %q, want hello", v)
	}
}

func TestIsUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "Nil", err: nil, want: false},
		{name: "BadConn", err: driver.ErrBadConn, want: true},
		{name: "WrappedBadConn", err: errors.Join(errors.New("exec"), driver.ErrBadConn), want: true},
		{name: "ConnRefused", err: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, want: true},
		{name: "DNSFailure", err: &net.DNSError{Err: "no such host", Name: "db.example.com"}, want: true},
		{name: "PqConnectionException", err: &pq.Error{Code: "08006"}, want: true},
		{name: "PqAdminShutdown", err: &pq.Error{Code: "57P01"}, want: true},
		{name: "PqUniqueViolation", err: &pq.Error{Code: "23505"}, want: false},
		{name: "Plain", err: errors.New("no such table: users"), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUnavailable(tc.err); got != tc.want {
				t.Fatalf("IsUnavailable = %v, want %v", got, tc.want)
			}
		})
	}
}
