package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pmurley/ulb-trade-engine/internal/negotiation"
	"github.com/pmurley/ulb-trade-engine/internal/storage"
	"github.com/pmurley/ulb-trade-engine/internal/storage/memory"
	"github.com/pmurley/ulb-trade-engine/internal/trade"
)

// negotiateCmd plays a proposal out between two AI teams
var negotiateCmd = &cobra.Command{
	Use:   "negotiate",
	Short: "Play a proposal out until both sides settle",
	Long: `Submit a proposal and let the two teams trade counter-offers until one
accepts, one walks away or the round limit is reached. Executed trades are
kept in memory unless --history names a directory for the trade history CSV.

Examples:
  tradesim negotiate --proposal offer.yaml
  tradesim negotiate --proposal offer.yaml --rounds 8 --history ./data`,
	RunE: runNegotiate,
}

var (
	negotiateProposal string
	negotiateRounds   int
	negotiateHistory  string
)

func init() {
	rootCmd.AddCommand(negotiateCmd)

	negotiateCmd.Flags().StringVar(&negotiateProposal, "proposal", "", "Proposal YAML file (required)")
	negotiateCmd.Flags().IntVar(&negotiateRounds, "rounds", negotiation.DefaultMaxRounds, "Maximum rounds before the exchange is abandoned")
	negotiateCmd.Flags().StringVar(&negotiateHistory, "history", "", "Directory for the trade history CSV (default: in memory)")
	negotiateCmd.MarkFlagRequired("proposal")
}

func runNegotiate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	league, err := loadLeague()
	if err != nil {
		return err
	}
	pf, err := loadProposalFile(negotiateProposal)
	if err != nil {
		return err
	}
	p, problems := pf.Resolve(league)
	if len(problems) > 0 {
		return fmt.Errorf("proposal could not be resolved:\n  %s", strings.Join(problems, "\n  "))
	}

	history, err := openHistory(negotiateHistory)
	if err != nil {
		return err
	}

	log := newLogger()
	n := negotiation.New(league, negotiation.Config{
		Evaluator: newEvaluator(),
		Random:    trade.NewSeededRandom(seedFlag),
		History:   history,
		Logger:    log.With("component", "negotiation"),
		MaxRounds: negotiateRounds,
	})

	ng, err := n.Negotiate(ctx, p)
	if ng != nil {
		writeNegotiation(cmd.OutOrStdout(), league, ng)
	}
	return err
}

func openHistory(dir string) (storage.TradeHistoryStore, error) {
	if dir == "" {
		return memory.NewTradeHistoryStore(), nil
	}
	return storage.NewTradeHistoryStorage(dir)
}

// writeNegotiation prints one line per round and the final state
func writeNegotiation(out io.Writer, league *trade.League, ng *negotiation.Negotiation) {
	for i, round := range ng.Rounds {
		p := round.Proposal
		fmt.Fprintf(out, "Round %d: %s\n", i+1, p.Summary(league))
		if !round.Validation.Valid {
			fmt.Fprintf(out, "  invalid: %s\n", strings.Join(round.Validation.Errors, "; "))
			continue
		}
		fmt.Fprintf(out, "  %s answers %s (ratio %.3f): %s\n",
			p.Receiver, round.Result.Status, round.Result.Valuation.Ratio, round.Result.Message)
	}

	final := ng.Final()
	switch {
	case ng.Settled():
		fmt.Fprintf(out, "\nTrade executed as %s", final.Trade.ID)
		if len(final.Missing) > 0 {
			fmt.Fprintf(out, " (skipped unknown players: %s)", strings.Join(final.Missing, ", "))
		}
		fmt.Fprintln(out)
	case final.Result != nil && final.Result.Counter != nil:
		fmt.Fprintf(out, "\nNo deal after %d rounds. Last counter: %s\n", len(ng.Rounds), final.Result.Counter.Summary(league))
	default:
		fmt.Fprintln(out, "\nNo deal.")
	}
}
