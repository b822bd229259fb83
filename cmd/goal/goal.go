// Package goal manages the custom goals shown next to the KPIs.
package goal

import (
	"context"
	"fmt"
	"io"

	"fjacquet/gl-analyzer/cmd/root"
	"fjacquet/gl-analyzer/internal/container"
	"fjacquet/gl-analyzer/internal/kpi"
	"fjacquet/gl-analyzer/internal/logging"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Cmd represents the goal command
var Cmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage custom goals",
	Long: `Add, update, remove and list custom goals. A goal has a title, a target and
a current value; progress is current / target.

Example:
  gl-analyzer goal add "Nieuwe klanten" 25
  gl-analyzer goal update <id> 10`,
}

var addCmd = &cobra.Command{
	Use:   "add <title> <target>",
	Short: "Add a goal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Add(cmd.Context(), root.GetContainer(), args[0], args[1], cmd.OutOrStdout())
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id> <current>",
	Short: "Set the current value of a goal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Update(cmd.Context(), root.GetContainer(), args[0], args[1])
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Remove(cmd.Context(), root.GetContainer(), args[0])
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return List(cmd.Context(), root.GetContainer(), cmd.OutOrStdout())
	},
}

func init() {
	Cmd.AddCommand(addCmd, updateCmd, removeCmd, listCmd)
}

func parseAmount(s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return v, nil
}

// Add creates a goal and prints its id.
func Add(ctx context.Context, c *container.Container, title, target string, w io.Writer) error {
	t, err := parseAmount(target)
	if err != nil {
		return err
	}
	s := c.GetStore()
	sess, err := s.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	goals, g, err := kpi.AddGoal(sess.Goals, title, t)
	if err != nil {
		return err
	}
	sess.Goals = goals
	if err := s.Save(ctx, sess); err != nil {
		return err
	}
	c.GetLogger().Info("Goal added", logging.F("goal", g.ID))
	_, err = fmt.Fprintln(w, g.ID)
	return err
}

// Update sets the current value of goal id.
func Update(ctx context.Context, c *container.Container, id, current string) error {
	v, err := parseAmount(current)
	if err != nil {
		return err
	}
	s := c.GetStore()
	sess, err := s.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if sess.Goals, err = kpi.UpdateGoal(sess.Goals, id, v); err != nil {
		return err
	}
	return s.Save(ctx, sess)
}

// Remove deletes goal id.
func Remove(ctx context.Context, c *container.Container, id string) error {
	s := c.GetStore()
	sess, err := s.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if sess.Goals, err = kpi.RemoveGoal(sess.Goals, id); err != nil {
		return err
	}
	return s.Save(ctx, sess)
}

// List prints id, title, current, target and progress of every goal.
func List(ctx context.Context, c *container.Container, w io.Writer) error {
	sess, err := c.GetStore().Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	for _, g := range sess.Goals {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s%%\n",
			g.ID, g.Title, g.Current.String(), g.Target.String(),
			g.Progress().Mul(decimal.NewFromInt(100)).StringFixed(0)); err != nil {
			return err
		}
	}
	return nil
}
