package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/juntos-app/juntos/internal/activity"
	"github.com/juntos-app/juntos/internal/config"
	"github.com/juntos-app/juntos/internal/gitops"
	"github.com/juntos-app/juntos/internal/id"
	"github.com/juntos-app/juntos/internal/model"
)

func newInitCommand() *cobra.Command {
	var name, memberID string
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Start a new shared ledger for a couple",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, name, memberID, noGit)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "your name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&memberID, "id", "", "your member ID (default: derived from --name)")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "do not create a git repository")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name, memberID string, noGit bool) error {
	ctx := cmd.Context()

	if memberID == "" {
		memberID = id.MemberSlug(name)
	}
	if memberID == "" {
		return fmt.Errorf("cannot derive a member ID from %q, pass --id", name)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	for _, d := range []string{"expenses", "logs", "data"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	first := model.Member{ID: memberID, Name: name}
	cfg := config.Default(id.NewCoupleID(), first)
	cfg.Storage.Path = filepath.Join("data", "juntos.db")
	if noGit {
		cfg.Git.AutoCommit = false
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// SQLite files and local overrides stay out of history.
	gitignore := "data/\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	entry := activity.Entry{
		Timestamp: time.Now(),
		Member:    memberID,
		Action:    activity.ActionInit,
		Details:   fmt.Sprintf("couple %s created by %s", cfg.Couple.ID, name),
	}

	var hash string
	if !noGit {
		if err := gitops.Init(ctx, dir); err != nil {
			return err
		}
		author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
		h, err := gitops.CommitAll(ctx, dir, "init: "+name+" starts a shared ledger", author)
		if err != nil {
			return fmt.Errorf("initial commit: %w", err)
		}
		hash = h
		entry.CommitHash = h
	}
	if err := activity.Append(dir, []activity.Entry{entry}); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized juntos ledger at %s\n", dir)
	fmt.Fprintf(out, "Couple %s, first member %s (%s)\n", cfg.Couple.ID, name, memberID)
	if hash != "" {
		fmt.Fprintf(out, "Initial commit %s\n", hash)
	}
	fmt.Fprintln(out, "Ask your partner to run 'juntos link --name <name>' to join.")
	return nil
}
