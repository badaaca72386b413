package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pmurley/ulb-trade-engine/internal/trade"
)

// evaluateCmd answers one proposal without changing anything
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Show how the receiving team would answer a proposal",
	Long: `Validate a proposal and run a single evaluation round, printing the
valuation breakdown behind the answer. The league is not modified.

Example proposal file:
  proposer: Havana Bananas
  receiver: Seattle Weiners
  offered:
    players:
      - name: Juan Soto
        retain: 25
    picks:
      - {year: 2026, round: 1}
  requested:
    players: [Bobby Witt Jr.]`,
	RunE: runEvaluate,
}

var (
	evaluateProposal string
	evaluateFormat   string
)

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVar(&evaluateProposal, "proposal", "", "Proposal YAML file (required)")
	evaluateCmd.Flags().StringVar(&evaluateFormat, "format", "table", "Output format (table|json)")
	evaluateCmd.MarkFlagRequired("proposal")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	if evaluateFormat != "table" && evaluateFormat != "json" {
		return fmt.Errorf("invalid format %q", evaluateFormat)
	}

	league, err := loadLeague()
	if err != nil {
		return err
	}
	pf, err := loadProposalFile(evaluateProposal)
	if err != nil {
		return err
	}
	p, problems := pf.Resolve(league)
	if len(problems) > 0 {
		return fmt.Errorf("proposal could not be resolved:\n  %s", strings.Join(problems, "\n  "))
	}

	v := trade.Validate(p, league)
	if !v.Valid {
		return fmt.Errorf("proposal is not valid:\n  %s", strings.Join(v.Errors, "\n  "))
	}

	res := newEvaluator().Evaluate(p, league, trade.NewSeededRandom(seedFlag))
	if evaluateFormat == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(newEvaluationReport(p, league, res))
	}
	return writeEvaluation(cmd.OutOrStdout(), p, league, res)
}

// evaluationReport is the JSON form of a single evaluation
type evaluationReport struct {
	Summary   string          `json:"summary"`
	Status    string          `json:"status"`
	Band      string          `json:"band"`
	Message   string          `json:"message"`
	Valuation trade.Valuation `json:"valuation"`
	Counter   string          `json:"counter,omitempty"`
}

func newEvaluationReport(p *trade.Proposal, league *trade.League, res trade.Result) evaluationReport {
	r := evaluationReport{
		Summary:   p.Summary(league),
		Status:    res.Status.String(),
		Band:      res.Band.String(),
		Message:   res.Message,
		Valuation: res.Valuation,
	}
	if res.Counter != nil {
		r.Counter = res.Counter.Summary(league)
	}
	return r
}

func writeEvaluation(out io.Writer, p *trade.Proposal, league *trade.League, res trade.Result) error {
	fmt.Fprintln(out, p.Summary(league))
	fmt.Fprintf(out, "%s: %s\n\n", res.Status, res.Message)

	v := res.Valuation
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	rows := []struct {
		name  string
		value float64
	}{
		{"Raw offered", v.RawOffered},
		{"Raw requested", v.RawRequested},
		{"Positional bonus", v.PositionalBonus},
		{"Window modifier", v.WindowModifier},
		{"Contract discount", v.ContractDiscount},
		{"Retention bonus", v.RetentionBonus},
		{"Risk jitter", v.RiskJitter},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\n", row.name, formatDollars(row.value))
	}
	fmt.Fprintf(w, "Activity multiplier\t%.2f\n", v.ActivityMultiplier)
	fmt.Fprintf(w, "Adjusted offered\t%s\n", formatDollars(v.AdjustedOffered))
	fmt.Fprintf(w, "Adjusted requested\t%s\n", formatDollars(v.AdjustedRequested))
	fmt.Fprintf(w, "Difference\t%s\n", formatDollars(v.Diff))
	fmt.Fprintf(w, "Ratio\t%.3f (%s)\n", v.Ratio, res.Band)
	if err := w.Flush(); err != nil {
		return err
	}

	if res.Counter != nil {
		fmt.Fprintf(out, "\nCounter-offer: %s\n", res.Counter.Summary(league))
	}
	return nil
}

func formatDollars(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%s$%.2fM", sign, v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%s$%.0fK", sign, v/1e3)
	}
	return fmt.Sprintf("%s$%.0f", sign, v)
}
