package database

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/cybertec-postgresql/scankit/internal/errors"
	"github.com/cybertec-postgresql/scankit/internal/logger"
	"github.com/cybertec-postgresql/scankit/internal/sqlscript"
	"github.com/cybertec-postgresql/scankit/pkg/scanner"
	"github.com/jackc/pgx/v5/pgconn"
)

// Result summarises one applied script
type Result struct {
	Path       string   `json:"path"`
	Statements int      `json:"statements"` // statements executed successfully
	Notices    []Notice `json:"notices,omitempty"`
	RolledBack bool     `json:"rolled_back"`
}

// Notice is a message the server sent while a statement ran
type Notice struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"` // first line of the statement
}

// Apply executes the statements of script in a single transaction. With
// dryRun the transaction is rolled back instead of committed. A statement
// rejected by the server aborts the script with an *errors.ExecutionError
// positioned in the script file.
func Apply(ctx context.Context, pool *Pool, script *sqlscript.Script, dryRun bool) (*Result, error) {
	if timeout := pool.config.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // no-op after commit

	pool.notices.drain()
	result := &Result{Path: script.Path}
	for _, stmt := range script.Statements {
		logger.Debugf("%s:%d: executing %s statement", script.Path, stmt.StartLine, stmt.Type)
		if _, err := tx.Exec(ctx, stmt.RawSQL); err != nil {
			var pgErr *pgconn.PgError
			if stderrors.As(err, &pgErr) {
				pos := ErrorPosition(script, stmt, pgErr)
				return result, errors.NewExecutionError(script.Path, pos.Line, pos.Column, pgErr)
			}
			return result, fmt.Errorf("%s:%d: failed to execute statement: %w", script.Path, stmt.StartLine, err)
		}
		for _, n := range pool.notices.drain() {
			result.Notices = append(result.Notices, Notice{Severity: n.Severity, Message: n.Message, Line: stmt.StartLine})
		}
		result.Statements++
	}

	if dryRun {
		if err := tx.Rollback(ctx); err != nil {
			return result, fmt.Errorf("failed to roll back: %w", err)
		}
		result.RolledBack = true
		return result, nil
	}
	if err := tx.Commit(ctx); err != nil {
		return result, fmt.Errorf("failed to commit: %w", err)
	}
	return result, nil
}

// ErrorPosition maps the position the server reported for stmt back to
// the script. PostgreSQL counts characters from 1 within the statement;
// without a position the start of the statement is used.
func ErrorPosition(script *sqlscript.Script, stmt *sqlscript.Statement, pgErr *pgconn.PgError) scanner.Position {
	offset := stmt.StartPos
	if pgErr.Position > 0 {
		offset += len(stmt.RawSQL)
		n := int(pgErr.Position) - 1
		for i := range stmt.RawSQL {
			if n == 0 {
				offset = stmt.StartPos + i
				break
			}
			n--
		}
	}
	return scanner.Locate(script.Source, offset)
}
