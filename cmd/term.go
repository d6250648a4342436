package cmd

import (
	"fmt"
	"os"
	"strings"

	"lcftrans/core/config"
	"lcftrans/core/logger"
	"lcftrans/feature/status"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var termLimit int

// termCmd represents the term command
var termCmd = &cobra.Command{
	Use:   "term [text]",
	Short: "Find a term across all unit files",
	Long: `Searches originals and translations of every unit file in the output
directory for the given text and prints each hit with its unit, context,
translation state and the game locations it was extracted from.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runTermSearch(args[0])
	},
}

func init() {
	RootCmd.AddCommand(termCmd)
	termCmd.Flags().IntVar(&termLimit, "limit", 20, "Maximum number of hits to show")
}

func runTermSearch(text string) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	svc := status.NewService(cfg.Project.Output, 0, logg)

	results, err := svc.Search(text, termLimit)
	if err != nil {
		logg.Fatal("Term search failed", zap.Error(err))
	}

	if len(results) == 0 {
		fmt.Printf("No unit contains %q.\n", text)
		return
	}

	// Pretty Console Output
	fmt.Println("\n--- Term Detail View ---")
	fmt.Printf("Query:          %s\n", text)
	fmt.Printf("Hits:           %d\n", len(results))

	for _, r := range results {
		state := "TRANSLATED"
		stateColor := "\033[32m" // Green
		if r.Translation == "" {
			state = "OPEN"
			stateColor = "\033[31m" // Red
		} else if r.Fuzzy {
			state = "FUZZY"
			stateColor = "\033[33m" // Yellow
		}
		resetColor := "\033[0m"

		fmt.Println("------------------------")
		fmt.Printf("Unit:           %s\n", r.Unit)
		if r.Context != "" {
			fmt.Printf("Context:        %s\n", r.Context)
		}
		fmt.Printf("Original:       %s\n", oneLine(r.Original))
		if r.Translation != "" {
			fmt.Printf("Translation:    %s\n", oneLine(r.Translation))
		}
		fmt.Printf("State:          %s%s%s\n", stateColor, state, resetColor)
		if len(r.Locations) > 0 {
			fmt.Printf("Locations:      %s\n", strings.Join(r.Locations, ", "))
		}
	}
	fmt.Println("------------------------")

	if len(results) == termLimit {
		fmt.Printf("Showing the first %d hits. Raise --limit to see more.\n", termLimit)
	}
}

// oneLine flattens message text for the single-line detail view.
func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", "\\n")
}
