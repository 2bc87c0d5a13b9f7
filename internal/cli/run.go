package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/ManuelOsorioLab/searchGen1/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	organisms     []string
	organismsFile string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Search a list of organisms sequentially",
	Long: `Run processes a list of organisms one after another:
- One remote BLAST search per organism, restricted via Entrez filter
- A fixed delay between organisms (service usage policy)
- One text report per alignment, named after organism, rank,
  similarity percentage and species

Organisms come from --organisms, --organisms-file (one per line,
# comments allowed) or the config file.

Example:
  searchgen run --seq-file query.fasta --email you@lab.org --organisms "Staphylococcus aureus","Homo sapiens"
  searchgen run --seq-file query.fasta --email you@lab.org --organisms-file organisms.txt --out ./reports`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	registerSearchFlags(runCmd)

	runCmd.Flags().StringSliceVar(&organisms, "organisms", nil, "organism filters to search")
	runCmd.Flags().StringVar(&organismsFile, "organisms-file", "", "file with organism filters (one per line)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	// Flags override the config file's organism list
	list := cfg.Search.Organisms
	if len(organisms) > 0 {
		list = organisms
	}
	if organismsFile != "" {
		list, err = readOrganismsFile(organismsFile)
		if err != nil {
			return fmt.Errorf("read organisms: %w", err)
		}
	}
	if len(list) == 0 {
		return fmt.Errorf("no organisms: use --organisms, --organisms-file or the config file")
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  searchgen Sequential Run\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Organisms:  %d\n", len(list))
	fmt.Fprintf(os.Stderr, "  Database:   %s/%s\n", cfg.Search.Program, cfg.Search.Database)
	fmt.Fprintf(os.Stderr, "  Delay:      %v\n", cfg.Search.Delay)
	fmt.Fprintf(os.Stderr, "  Output dir: %s\n", cfg.Output.Dir)
	fmt.Fprintf(os.Stderr, "\n")

	p := pipeline.NewPipeline(cfg)

	results, runErr := p.Run(ctx, list)

	fileCount := 0
	for _, res := range results {
		fileCount += len(res.Files)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Run Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Searched:  %d/%d organisms\n", len(results), len(list))
	fmt.Fprintf(os.Stderr, "  Reports:   %d\n", fileCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", cfg.Output.Dir)
	fmt.Fprintf(os.Stderr, "\n")

	if runErr != nil {
		return fmt.Errorf("run aborted: %w", runErr)
	}

	return nil
}
