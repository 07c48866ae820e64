package source

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// Describe turns a driver error into a short message for the terminal.
// Unknown errors are returned as is.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "28P01", "28000":
			return "authentication failed: " + pgErr.Message
		case "3D000":
			return "database does not exist: " + pgErr.Message
		case "42P01":
			return "table not found: " + pgErr.Message
		case "42601":
			return "syntax error: " + pgErr.Message
		}
		return fmt.Sprintf("postgres error %s: %s", pgErr.Code, pgErr.Message)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1045:
			return "authentication failed: " + myErr.Message
		case 1049:
			return "database does not exist: " + myErr.Message
		case 1146:
			return "table not found: " + myErr.Message
		case 1064:
			return "syntax error: " + myErr.Message
		}
		return fmt.Sprintf("mysql error %d: %s", myErr.Number, myErr.Message)
	}

	var dnsErr *net.DNSError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "query timed out"
	case errors.Is(err, syscall.ECONNREFUSED):
		return "connection refused: is the database server running?"
	case errors.As(err, &dnsErr):
		return "unknown host: " + dnsErr.Name
	}
	return err.Error()
}
