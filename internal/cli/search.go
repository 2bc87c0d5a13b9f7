package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ManuelOsorioLab/searchGen1/internal/pipeline"
	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <organism>",
	Short: "Search one organism and write its alignment reports",
	Long: `Search submits the query sequence to the remote BLAST service,
restricted to a single organism, waits for the result and writes one
text report per alignment (first HSP only).

Example:
  searchgen search "Staphylococcus aureus" --seq-file query.fasta --email you@lab.org
  searchgen search "Homo sapiens" --seq MKTAYIAKQR... --email you@lab.org --out ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	registerSearchFlags(searchCmd)
}

// registerSearchFlags adds the flags shared by search and run
func registerSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sequence, "seq", "", "query protein sequence")
	cmd.Flags().StringVar(&sequenceFile, "seq-file", "", "file with the query sequence (plain or FASTA)")
	cmd.Flags().StringVar(&email, "email", "", "contact email sent to the search service")
	cmd.Flags().StringVar(&outputDir, "out", "", "output directory for reports")
	cmd.Flags().StringVar(&program, "program", "blastp", "BLAST program")
	cmd.Flags().StringVar(&database, "db", "nr", "BLAST database")
	cmd.Flags().Float64Var(&expect, "evalue", 0.001, "E-value threshold")
	cmd.Flags().IntVar(&hitlistSize, "hits", 5, "maximum alignments per organism")
	cmd.Flags().DurationVar(&delay, "delay", defaultDelay(), "fixed delay between organism queries")
	cmd.Flags().DurationVar(&pollInterval, "poll-interval", defaultPollInterval(), "delay between status polls")
	cmd.Flags().DurationVar(&runTimeout, "timeout", 30*time.Minute, "overall timeout for the whole run")
	cmd.Flags().StringVar(&userAgent, "ua", defaultUserAgent(), "HTTP User-Agent")
	cmd.Flags().Int64Var(&maxBytes, "max-bytes", 20_000_000, "max response bytes to read")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the per-run response cache")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "override the BLAST service URL")
}

func runSearch(cmd *cobra.Command, args []string) error {
	organism := args[0]

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Searching: %s\n", organism)
		fmt.Fprintf(os.Stderr, "Database:  %s/%s\n", cfg.Search.Program, cfg.Search.Database)
		fmt.Fprintf(os.Stderr, "Output:    %s\n", cfg.Output.Dir)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)

	results, err := p.Run(ctx, []string{organism})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	res := results[0]
	fmt.Fprintf(os.Stderr, "✓ %s: %d hits, %d reports written to %s\n",
		res.Organism, res.Hits, len(res.Files), cfg.Output.Dir)

	return nil
}
