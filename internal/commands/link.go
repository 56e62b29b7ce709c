package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/juntos-app/juntos/internal/activity"
	"github.com/juntos-app/juntos/internal/config"
	"github.com/juntos-app/juntos/internal/id"
	"github.com/juntos-app/juntos/internal/model"
)

func newLinkCommand() *cobra.Command {
	var name, memberID string

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Join the ledger as the second member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLink(cmd, name, memberID)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "your name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&memberID, "id", "", "your member ID (default: derived from --name)")

	return cmd
}

func runLink(cmd *cobra.Command, name, memberID string) error {
	p, err := openProject(cmd)
	if err != nil {
		return err
	}
	defer p.close()

	if p.cfg.Couple.Linked() {
		return fmt.Errorf("couple already linked: %s and %s", p.cfg.Couple.MemberA.Name, p.cfg.Couple.MemberB.Name)
	}

	if memberID == "" {
		memberID = id.MemberSlug(name)
	}
	if memberID == "" {
		return fmt.Errorf("cannot derive a member ID from %q, pass --id", name)
	}
	if memberID == p.cfg.Couple.MemberA.ID {
		return fmt.Errorf("member ID %q is already taken by %s, pass a different --id", memberID, p.cfg.Couple.MemberA.Name)
	}

	// Save from the file as written, not the env-adjusted copy.
	path := filepath.Join(p.root, config.FileName)
	raw, err := config.Load(path)
	if err != nil {
		return err
	}
	raw.Couple.MemberB = model.Member{ID: memberID, Name: name}
	if err := config.Save(path, raw); err != nil {
		return err
	}
	p.cfg.Couple.MemberB = raw.Couple.MemberB

	p.record(cmd.Context(), activity.Entry{
		Member:  memberID,
		Action:  activity.ActionLink,
		Details: fmt.Sprintf("%s joined %s", name, p.cfg.Couple.MemberA.Name),
	}, "link: "+name+" joins")

	p.log.Info().Str("member", memberID).Msg("couple linked")
	fmt.Fprintf(cmd.OutOrStdout(), "%s linked with %s\n", name, p.cfg.Couple.MemberA.Name)
	return nil
}
