package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/cybertec-postgresql/scankit/internal/balance"
	"github.com/cybertec-postgresql/scankit/internal/database"
	"github.com/cybertec-postgresql/scankit/internal/discovery"
	"github.com/cybertec-postgresql/scankit/internal/errors"
	"github.com/cybertec-postgresql/scankit/internal/logger"
	"github.com/cybertec-postgresql/scankit/internal/report"
	"github.com/cybertec-postgresql/scankit/internal/runner"
	"github.com/cybertec-postgresql/scankit/internal/sqlscript"
	"github.com/cybertec-postgresql/scankit/pkg/scanner"
)

// ApplyOptions select where and how scripts are applied
type ApplyOptions struct {
	DryRun  bool // roll back every script
	Scratch bool // run in a throwaway database
}

func discover(config *Config, searchPath string) ([]discovery.DiscoveredFile, error) {
	logger.SetVerbose(config.Verbose)
	logger.Debugf("discovering %v files in %s", config.Extensions, searchPath)

	files, err := discovery.Discover(searchPath, config.Extensions)
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}
	if len(files) == 0 {
		logger.Warnf("no files matching %v found in %s", config.Extensions, searchPath)
	}
	logger.Debugf("found %d file(s)", len(files))
	return files, nil
}

// parse splits a file; a scan failure is recorded as diagnostic and yields
// a nil script.
func parse(config *Config, file *discovery.DiscoveredFile, fr *report.FileReport) (*sqlscript.Script, error) {
	script, err := sqlscript.ParseFile(file.Path, scanner.WithExcerptLines(config.ExcerptLines))
	if err != nil {
		var parseErr *errors.ParseError
		if stderrors.As(err, &parseErr) {
			fr.Diagnostics = append(fr.Diagnostics, report.FromParseError(parseErr))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", file.RelativePath, err)
	}
	return script, nil
}

func finish(config *Config, rep *report.Report) (int, error) {
	if err := writeReport(config, rep); err != nil {
		return 1, err
	}
	if rep.HasDiagnostics() {
		return 1, nil
	}
	return 0, nil
}

// Split splits every discovered file into SQL statements and reports them
func Split(ctx context.Context, config *Config, searchPath string) (int, error) {
	files, err := discover(config, searchPath)
	if err != nil {
		return 1, err
	}

	pool := runner.NewWorkerPool(config.Parallelism)
	reports, err := pool.Run(ctx, files, func(ctx context.Context, file *discovery.DiscoveredFile) (*report.FileReport, error) {
		fr := &report.FileReport{Path: file.RelativePath}
		script, err := parse(config, file, fr)
		if err != nil {
			return nil, err
		}
		if script != nil {
			fr.Statements = script.Statements
		}
		return fr, nil
	})
	if err != nil {
		return 1, err
	}
	return finish(config, &report.Report{Files: reports})
}

// Check reports unbalanced delimiters in every discovered file using the
// comment syntax of its extension
func Check(ctx context.Context, config *Config, searchPath string) (int, error) {
	files, err := discover(config, searchPath)
	if err != nil {
		return 1, err
	}

	pool := runner.NewWorkerPool(config.Parallelism)
	reports, err := pool.Run(ctx, files, func(ctx context.Context, file *discovery.DiscoveredFile) (*report.FileReport, error) {
		logger.Debugf("checking %s as %s", file.RelativePath, file.Syntax)
		errs, err := balance.CheckFile(file.Path, file.Syntax.Comments, balance.DefaultPairs,
			scanner.WithExcerptLines(config.ExcerptLines))
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", file.RelativePath, err)
		}
		fr := &report.FileReport{Path: file.RelativePath}
		for _, e := range errs {
			fr.Diagnostics = append(fr.Diagnostics, report.FromScanError(e))
		}
		return fr, nil
	})
	if err != nil {
		return 1, err
	}
	return finish(config, &report.Report{Files: reports})
}

// Apply splits every discovered file and executes it against PostgreSQL,
// one transaction per file in discovery order. The first file that fails
// to parse or execute stops the run.
func Apply(ctx context.Context, config *Config, searchPath string, opts ApplyOptions) (int, error) {
	files, err := discover(config, searchPath)
	if err != nil {
		return 1, err
	}

	rep := &report.Report{}
	var scripts []*sqlscript.Script
	for i := range files {
		fr := rep.Add(files[i].RelativePath)
		script, err := parse(config, &files[i], fr)
		if err != nil {
			return 1, err
		}
		if script == nil {
			return finish(config, rep)
		}
		scripts = append(scripts, script)
	}

	pool, err := database.NewPool(ctx, config)
	if err != nil {
		return 1, fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	target := pool
	if opts.Scratch {
		target, err = database.CreateScratchDatabase(ctx, pool)
		if err != nil {
			return 1, err
		}
		logger.Infof("applying to scratch database %s", target.DatabaseName())
		defer func() {
			if err := database.DropScratchDatabase(ctx, pool, target); err != nil {
				logger.Errorf("failed to drop scratch database: %v", err)
			}
		}()
	}

	for i, script := range scripts {
		fr := rep.Files[i]
		result, err := database.Apply(ctx, target, script, opts.DryRun)
		fr.Applied = result
		if err != nil {
			var execErr *errors.ExecutionError
			if !stderrors.As(err, &execErr) {
				return 1, err
			}
			fr.Diagnostics = append(fr.Diagnostics, report.FromExecutionError(execErr))
			break
		}
		logger.Debugf("%s: %d statements applied", fr.Path, result.Statements)
	}
	return finish(config, rep)
}
