package foreign

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jay/internal/interop"
	"jay/internal/value"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// conn is satisfied by both *sql.DB and *sql.Tx.
type conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqlArg converts a value into a driver argument: integral decimals become
// int64, other decimals float64, and Opaque nil becomes NULL.
var sqlArg = interop.Param{
	Name: "args",
	Accepts: func(v value.Value) bool {
		switch x := v.(type) {
		case value.Decimal, value.Text, value.Boolean:
			return true
		case value.Opaque:
			switch x.Handle().(type) {
			case nil, time.Time:
				return true
			}
		}
		return false
	},
	Unwrap: func(v value.Value) (any, error) {
		switch x := v.(type) {
		case value.Decimal:
			d := x.Value()
			if d.Equal(d.Truncate(0)) && d.BigInt().IsInt64() {
				return d.IntPart(), nil
			}
			return d.InexactFloat64(), nil
		case value.Opaque:
			return x.Handle(), nil
		}
		return value.ToNative(v), nil
	},
}

func sqlType(maxOpenConns int) interop.HostType {
	db := interop.Handle[*sql.DB]("db")
	c := interop.Handle[conn]("conn")
	rows := interop.Handle[*sql.Rows]("rows")
	tx := interop.Handle[*sql.Tx]("tx")
	query := interop.String("query")

	return interop.HostType{
		Name: "jay.sql",
		Methods: []interop.Method{
			static("open", sqlOpen(maxOpenConns), interop.String("driver"), interop.String("dsn")),
			{Name: "exec", Receiver: &c, Params: []interop.Param{query}, Variadic: &sqlArg, Fn: sqlExec},
			{Name: "queryValue", Receiver: &c, Params: []interop.Param{query}, Variadic: &sqlArg, Fn: sqlQueryValue},
			{Name: "query", Receiver: &c, Params: []interop.Param{query}, Variadic: &sqlArg, Fn: sqlQuery},
			instance("begin", db, sqlBegin),
			instance("commit", tx, sqlCommit),
			instance("rollback", tx, sqlRollback),
			instance("next", rows, sqlNext),
			instance("column", rows, sqlColumn, interop.Integer("index")),
			instance("columnName", rows, sqlColumnName, interop.Integer("index")),
			instance("columnCount", rows, sqlColumnCount),
			instance("close", rows, sqlCloseRows),
			instance("close", db, sqlCloseDB),
		},
	}
}

func sqlOpen(maxOpenConns int) interop.Func {
	return func(ctx context.Context, _ any, args []any) (any, error) {
		driver, dsn := args[0].(string), args[1].(string)

		db, err := sql.Open(driver, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open connection: %w", err)
		}
		db.SetMaxOpenConns(maxOpenConns)
		if driver == "sqlite3" && (strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")) {
			// every new connection would see its own empty database
			db.SetMaxOpenConns(1)
		}

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return db, nil
	}
}

func sqlExec(ctx context.Context, recv any, args []any) (any, error) {
	result, err := recv.(conn).ExecContext(ctx, args[0].(string), args[1:]...)
	if err != nil {
		return nil, fmt.Errorf("exec failed: %w", err)
	}
	return result.RowsAffected()
}

// sqlQueryValue returns the first column of the first row.
func sqlQueryValue(ctx context.Context, recv any, args []any) (any, error) {
	rows, err := recv.(conn).QueryContext(ctx, args[0].(string), args[1:]...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query failed: %w", err)
		}
		return nil, fmt.Errorf("query returned no rows: %w", sql.ErrNoRows)
	}
	row, err := scanRow(rows)
	if err != nil {
		return nil, err
	}
	if len(row) == 0 {
		return nil, errors.New("query returned no columns")
	}
	return mapColumn(row[0]), nil
}

func sqlQuery(ctx context.Context, recv any, args []any) (any, error) {
	rows, err := recv.(conn).QueryContext(ctx, args[0].(string), args[1:]...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return rows, nil
}

func sqlBegin(ctx context.Context, recv any, _ []any) (any, error) {
	tx, err := recv.(*sql.DB).BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

func sqlCommit(_ context.Context, recv any, _ []any) (any, error) {
	if err := recv.(*sql.Tx).Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

func sqlRollback(_ context.Context, recv any, _ []any) (any, error) {
	if err := recv.(*sql.Tx).Rollback(); err != nil {
		return nil, fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return true, nil
}

// sqlNext advances the cursor. The cursor closes itself after the last row.
func sqlNext(_ context.Context, recv any, _ []any) (any, error) {
	rows := recv.(*sql.Rows)
	if rows.Next() {
		return true, nil
	}
	return false, rows.Err()
}

func sqlColumn(_ context.Context, recv any, args []any) (any, error) {
	row, err := scanRow(recv.(*sql.Rows))
	if err != nil {
		return nil, err
	}
	i := args[0].(int64)
	if i < 0 || i >= int64(len(row)) {
		return nil, fmt.Errorf("column index %d out of range for %d columns", i, len(row))
	}
	return mapColumn(row[i]), nil
}

func sqlColumnName(_ context.Context, recv any, args []any) (any, error) {
	columns, err := recv.(*sql.Rows).Columns()
	if err != nil {
		return nil, err
	}
	i := args[0].(int64)
	if i < 0 || i >= int64(len(columns)) {
		return nil, fmt.Errorf("column index %d out of range for %d columns", i, len(columns))
	}
	return columns[i], nil
}

func sqlColumnCount(_ context.Context, recv any, _ []any) (any, error) {
	columns, err := recv.(*sql.Rows).Columns()
	if err != nil {
		return nil, err
	}
	return len(columns), nil
}

func sqlCloseRows(_ context.Context, recv any, _ []any) (any, error) {
	return nil, recv.(*sql.Rows).Close()
}

func sqlCloseDB(_ context.Context, recv any, _ []any) (any, error) {
	return nil, recv.(*sql.DB).Close()
}

func scanRow(rows *sql.Rows) ([]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	values := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}
	if err := rows.Scan(pointers...); err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	return values, nil
}

// mapColumn normalizes driver values before they are wrapped: byte slices
// become text and timestamps RFC3339 text. NULL stays nil.
func mapColumn(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return x
	}
}
