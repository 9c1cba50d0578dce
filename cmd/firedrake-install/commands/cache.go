package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.trai.ch/firedrake-install/internal/core/domain"
	"go.trai.ch/firedrake-install/internal/ui/style"
)

// digestWidth is the number of digest characters shown in the status table.
const digestWidth = 12

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and refresh the artifact cache",
	}
	cmd.AddCommand(c.newCacheStatusCmd())
	cmd.AddCommand(c.newCacheWriteCmd())
	return cmd
}

func (c *CLI) newCacheStatusCmd() *cobra.Command {
	var (
		venvName string
		manifest string
		addons   []string
	)
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether each cacheable package would be restored from the cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := domain.DefaultInstallOptions()
			opts.VenvName = venvName
			opts.ManifestPath = manifest
			opts.Addons = addons

			reports, err := c.app.CacheStatus(cmd.Context(), opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderStatus(reports))
			return nil
		},
	}
	cmd.Flags().StringVar(&venvName, "venv-name", domain.DefaultVenvName, "Directory of the virtual environment")
	cmd.Flags().StringVar(&manifest, "manifest", "", "Install manifest to use instead of the built-in one")
	cmd.Flags().StringArrayVar(&addons, "install", nil, "Include the named add-on package (repeatable)")
	return cmd
}

func (c *CLI) newCacheWriteCmd() *cobra.Command {
	var flags installFlags
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Refresh the artifact cache from an installed environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.WriteCache(cmd.Context(), flags.options(), flags.runOptions())
		},
	}
	flags.register(cmd)
	return cmd
}

func renderStatus(reports []domain.CacheReport) string {
	if len(reports) == 0 {
		return "no cacheable packages"
	}

	hit := lipgloss.NewStyle().Foreground(style.Green)
	miss := lipgloss.NewStyle().Foreground(style.Slate)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("PACKAGE", "STORED", "LIVE", "CACHE", "DIGEST").
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow || col != 3 {
				return s
			}
			if reports[row].Decision == domain.CacheHit {
				return s.Inherit(hit)
			}
			return s.Inherit(miss)
		})

	for _, r := range reports {
		digest := r.Digest
		if len(digest) > digestWidth {
			digest = digest[:digestWidth]
		}
		t.Row(r.Name, short(r.Stored), short(r.Live), r.Decision.String(), digest)
	}
	return t.String()
}

func short(id domain.Identity) string {
	s := id.String()
	if len(s) > digestWidth {
		return s[:digestWidth]
	}
	return s
}
