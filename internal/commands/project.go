package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/juntos-app/juntos/internal/activity"
	"github.com/juntos-app/juntos/internal/config"
	"github.com/juntos-app/juntos/internal/expenses"
	"github.com/juntos-app/juntos/internal/gitops"
	"github.com/juntos-app/juntos/internal/logger"
	"github.com/juntos-app/juntos/internal/model"
	"github.com/juntos-app/juntos/internal/period"
	"github.com/juntos-app/juntos/internal/storage"
)

// project is an opened juntos directory with its store wired up.
type project struct {
	root     string
	cfg      *config.Config
	log      zerolog.Logger
	expenses *expenses.Service
	close    func() error
}

func openProject(cmd *cobra.Command) (*project, error) {
	root, err := repoRoot(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no %s in %s (run 'juntos init' first): %w", config.FileName, root, err)
		}
		return nil, err
	}
	if err := config.ApplyEnv(root, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := newLogger(cmd, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	cmd.SetContext(logger.WithContext(cmd.Context(), log))

	p := &project{root: root, cfg: cfg, log: log, close: func() error { return nil }}

	var store expenses.Store
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		path := cfg.Storage.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		db, err := storage.NewSQLiteStore(path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		store = db
		p.close = db.Close
	default:
		store = expenses.NewCSVStore(root)
	}
	p.expenses = expenses.NewService(store, cfg.Couple)

	log.Debug().
		Str("root", root).
		Str("backend", cfg.Storage.Backend).
		Str("couple", cfg.Couple.ID).
		Msg("project opened")
	return p, nil
}

func repoRoot(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString("repo")
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}

// newLogger honors --log-level over the configured level.
func newLogger(cmd *cobra.Command, configured string) (zerolog.Logger, error) {
	level := configured
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		level = f.Value.String()
	}
	return logger.New(cmd.ErrOrStderr(), level)
}

// member resolves --as by member ID or, case-insensitively, by name.
func (p *project) member(ref string) (model.Member, error) {
	for _, m := range []model.Member{p.cfg.Couple.MemberA, p.cfg.Couple.MemberB} {
		if m.IsZero() {
			continue
		}
		if m.ID == ref || strings.EqualFold(m.Name, ref) {
			return m, nil
		}
	}
	return model.Member{}, fmt.Errorf("%q is not a member of this couple", ref)
}

// listPeriod reads the couple's expenses and keeps those in per, newest first.
func listPeriod(ctx context.Context, l expenses.Lister, coupleID string, per period.Period) ([]model.Expense, error) {
	all, err := l.ListExpenses(ctx, coupleID)
	if err != nil {
		return nil, err
	}
	return period.Filter(all, per, time.Now()), nil
}

// record commits the working tree when auto-commit is on, then logs the
// action with the resulting hash. A failed log write is only a warning.
// The SQLite database lives in an ignored directory, so commits there would
// carry only the activity log; auto-commit is skipped for that backend.
func (p *project) record(ctx context.Context, entry activity.Entry, commitMsg string) {
	switch {
	case !p.cfg.Git.AutoCommit || !gitops.IsRepo(p.root):
	case p.cfg.Storage.Backend == config.BackendSQLite:
		p.log.Debug().Str("action", string(entry.Action)).Msg("auto-commit skipped for sqlite backend")
	default:
		author := gitops.Author{Name: p.cfg.Git.AuthorName, Email: p.cfg.Git.AuthorEmail}
		hash, err := gitops.CommitAll(ctx, p.root, commitMsg, author)
		if err != nil {
			p.log.Warn().Err(err).Msg("auto-commit failed")
		} else {
			entry.CommitHash = hash
		}
	}

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if err := activity.Append(p.root, []activity.Entry{entry}); err != nil {
		p.log.Warn().Err(err).Msg("failed to write activity log")
	}
}

func formatMoney(symbol string, amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-" + symbol + amount.Abs().StringFixed(2)
	}
	return symbol + amount.StringFixed(2)
}
