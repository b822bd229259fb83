package main

import (
	"fmt"
	"os"

	"fjacquet/gl-analyzer/cmd/analyze"
	"fjacquet/gl-analyzer/cmd/batch"
	"fjacquet/gl-analyzer/cmd/check"
	"fjacquet/gl-analyzer/cmd/compare"
	"fjacquet/gl-analyzer/cmd/demo"
	"fjacquet/gl-analyzer/cmd/export"
	"fjacquet/gl-analyzer/cmd/goal"
	"fjacquet/gl-analyzer/cmd/insights"
	"fjacquet/gl-analyzer/cmd/kpi"
	"fjacquet/gl-analyzer/cmd/materiality"
	"fjacquet/gl-analyzer/cmd/override"
	"fjacquet/gl-analyzer/cmd/root"
	"fjacquet/gl-analyzer/cmd/session"
	"fjacquet/gl-analyzer/cmd/summary"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(compare.Cmd)
	root.Cmd.AddCommand(kpi.Cmd)
	root.Cmd.AddCommand(check.Cmd)
	root.Cmd.AddCommand(materiality.Cmd)
	root.Cmd.AddCommand(insights.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(demo.Cmd)
	root.Cmd.AddCommand(override.Cmd)
	root.Cmd.AddCommand(goal.Cmd)
	root.Cmd.AddCommand(session.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
