package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetbook/internal/cli"
)

var flagTop int

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print group, item and monthly totals",
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().IntVar(&flagTop, "top", 0, "Show only the largest N items (0 = all)")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	run, err := buildRun(cfg)
	if err != nil {
		return err
	}

	rep := run.Report
	if len(rep.Months) == 0 {
		fmt.Println("\n  Nothing is booked in the selected range.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGET  %s - %s",
		cli.FormatMonth(rep.Months[0]), cli.FormatMonth(rep.Months[len(rep.Months)-1]))))
	fmt.Println()

	// Group totals
	groupRows := make([][]string, 0, len(rep.Groups))
	for _, g := range rep.Groups {
		groupRows = append(groupRows, []string{g.DisplayGroup, cli.FormatMoney(g.AbsAmount)})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Display Groups",
		Headers: []string{"Group", "Total"},
		Rows:    groupRows,
	}))
	fmt.Println()

	// Item totals
	items := rep.Items
	if flagTop > 0 && flagTop < len(items) {
		items = items[:flagTop]
	}
	itemRows := make([][]string, 0, len(items))
	for _, it := range items {
		itemRows = append(itemRows, []string{
			it.ItemName, it.DisplayGroup, cli.FormatMoney(it.Amount), cli.FormatMoney(it.AbsAmount),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    "Items",
		Headers:  []string{"Item", "Group", "Net", "Absolute"},
		Rows:     itemRows,
		TextCols: 2,
	}))
	fmt.Println()

	// Monthly totals
	fmt.Print(cli.RenderTable(cli.MonthlyTable(rep.Monthly)))
	fmt.Println()

	return nil
}
