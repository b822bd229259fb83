// Package override manages category overrides and the manual sort order.
package override

import (
	"context"
	"fmt"
	"io"
	"sort"

	"fjacquet/gl-analyzer/cmd/root"
	"fjacquet/gl-analyzer/internal/container"
	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the override command
var Cmd = &cobra.Command{
	Use:   "override",
	Short: "Manage category overrides and item order",
	Long: `Move items to another section regardless of their ledger code, and pin the
order in which items of a section are shown.

Example:
  gl-analyzer override set "Kantoorartikelen" otherExpenses
  gl-analyzer override unset "Kantoorartikelen"
  gl-analyzer override order sales "Omzet hoog" "Omzet laag"
  gl-analyzer override list`,
}

var setCmd = &cobra.Command{
	Use:   "set <description> <bucket>",
	Short: "Move every line with this description to a section",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Set(cmd.Context(), root.GetContainer(), args[0], args[1])
	},
}

var unsetCmd = &cobra.Command{
	Use:   "unset <description>",
	Short: "Remove an override",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Unset(cmd.Context(), root.GetContainer(), args[0])
	},
}

var orderCmd = &cobra.Command{
	Use:   "order <bucket> [item...]",
	Short: "Set the item order of a section (no items clears it)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Order(cmd.Context(), root.GetContainer(), args[0], args[1:])
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List overrides and item orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return List(cmd.Context(), root.GetContainer(), cmd.OutOrStdout())
	},
}

func init() {
	Cmd.AddCommand(setCmd, unsetCmd, orderCmd, listCmd)
}

// Set stores an override.
func Set(ctx context.Context, c *container.Container, description, bucket string) error {
	id, err := models.ParseBucketID(bucket)
	if err != nil {
		return err
	}
	s := c.GetStore()
	sess, err := s.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.SetOverride(description, id); err != nil {
		return err
	}
	if err := s.Save(ctx, sess); err != nil {
		return err
	}
	c.GetLogger().Info("Override set",
		logging.F(logging.FieldDescription, description),
		logging.F(logging.FieldBucket, string(id)))
	return nil
}

// Unset removes an override.
func Unset(ctx context.Context, c *container.Container, description string) error {
	s := c.GetStore()
	sess, err := s.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if _, ok := sess.Overrides[description]; !ok {
		return fmt.Errorf("no override for %q", description)
	}
	sess.ClearOverride(description)
	return s.Save(ctx, sess)
}

// Order pins the item order of bucket. An empty list clears it.
func Order(ctx context.Context, c *container.Container, bucket string, items []string) error {
	id, err := models.ParseBucketID(bucket)
	if err != nil {
		return err
	}
	s := c.GetStore()
	sess, err := s.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if len(items) == 0 {
		delete(sess.SortOrder, id)
	} else {
		sess.SortOrder[id] = items
	}
	return s.Save(ctx, sess)
}

// List prints overrides and item orders, sorted.
func List(ctx context.Context, c *container.Container, w io.Writer) error {
	sess, err := c.GetStore().Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	descriptions := make([]string, 0, len(sess.Overrides))
	for d := range sess.Overrides {
		descriptions = append(descriptions, d)
	}
	sort.Strings(descriptions)
	for _, d := range descriptions {
		if _, err := fmt.Fprintf(w, "override\t%s\t%s\n", d, sess.Overrides[d]); err != nil {
			return err
		}
	}

	for _, id := range models.AllBuckets() {
		items, ok := sess.SortOrder[id]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "order\t%s\t%v\n", id, items); err != nil {
			return err
		}
	}
	return nil
}
