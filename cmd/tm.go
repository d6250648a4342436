package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"lcftrans/core/config"
	"lcftrans/core/database"
	"lcftrans/core/logger"
	"lcftrans/core/project"
	"lcftrans/core/translation"
	"lcftrans/feature/memory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fillFuzzy bool

// tmCmd is the parent command for all translation memory operations.
var tmCmd = &cobra.Command{
	Use:   "tm",
	Short: "Manage the translation memory database",
	Long: `The translation memory collects every translated term of the project in
a database. Import feeds it from unit files, fill copies its knowledge
back into untranslated terms, export rebuilds a unit from memory alone.`,
}

// tmImportCmd feeds translated terms of unit files into the memory.
var tmImportCmd = &cobra.Command{
	Use:   "import [UNIT]...",
	Short: "Import translated terms from unit files",
	Long: `Imports the translated terms of the named unit files into the memory.
Without arguments every unit file of the output directory is imported.
Untranslated and fuzzy terms are skipped, existing memory entries are
overwritten.`,
	RunE: runMemoryImport,
}

// tmExportCmd rebuilds one unit file from the memory.
var tmExportCmd = &cobra.Command{
	Use:   "export UNIT FILE",
	Short: "Write the remembered terms of a unit to a file",
	Args:  cobra.ExactArgs(2),
	RunE:  runMemoryExport,
}

// tmFillCmd copies memory translations into untranslated terms.
var tmFillCmd = &cobra.Command{
	Use:   "fill [UNIT]...",
	Short: "Fill untranslated terms from the memory",
	Long: `Rewrites unit files in place, copying remembered translations into
untranslated terms. Terms whose context, original and unit match
exactly are filled as confirmed translations. With fuzzy matching
enabled, terms that only share the original text are filled too,
flagged fuzzy for review.`,
	RunE: runMemoryFill,
}

// tmStatusCmd prints the size of the memory.
var tmStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how many terms the memory holds",
	RunE:  runMemoryStatus,
}

func init() {
	tmCmd.AddCommand(tmImportCmd, tmExportCmd, tmFillCmd, tmStatusCmd)

	tmFillCmd.Flags().BoolVar(&fillFuzzy, "fuzzy", true, "Also fill context-free matches, flagged fuzzy")

	RootCmd.AddCommand(tmCmd)
}

// openMemory wires config, logger, database and the memory service for
// the tm subcommands.
func openMemory() (*memory.Service, *config.Config, *zap.Logger, error) {
	//Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Create service and verify the schema
	svc := memory.NewService(db, l)
	if err := svc.Migrate(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to migrate memory table: %w", err)
	}

	return svc, cfg, l, nil
}

// unitArgs resolves the unit files a tm subcommand works on. Without
// arguments every live unit of the output directory is used, companion
// files never qualify.
func unitArgs(outputDir string, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var units []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(name), ".po") {
			continue
		}
		if project.IsCompanionUnit(name) {
			continue
		}
		units = append(units, name)
	}
	sort.Strings(units)
	return units, nil
}

func readUnitFile(path string, l *zap.Logger) (*translation.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open unit: %w", err)
	}
	defer f.Close()
	return translation.NewDecoder(f, l.With(zap.String("unit", filepath.Base(path)))).Decode()
}

func writeUnitFile(path string, store *translation.Store) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create unit: %w", err)
	}
	if err := translation.NewEncoder(f).Encode(store); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runMemoryImport(cmd *cobra.Command, args []string) error {
	svc, cfg, l, err := openMemory()
	if err != nil {
		return err
	}

	units, err := unitArgs(cfg.Project.Output, args)
	if err != nil {
		return err
	}
	if len(units) == 0 {
		l.Info("No unit files to import.")
		return nil
	}

	var imported, skipped int
	for _, unit := range units {
		store, err := readUnitFile(filepath.Join(cfg.Project.Output, unit), l)
		if err != nil {
			return err
		}
		res, err := svc.Import(store, unit)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", unit, err)
		}
		imported += res.Imported
		skipped += res.Skipped
	}

	l.Info("Import completed",
		zap.Int("units", len(units)),
		zap.Int("imported", imported),
		zap.Int("skipped", skipped),
	)
	return nil
}

func runMemoryExport(cmd *cobra.Command, args []string) error {
	svc, _, l, err := openMemory()
	if err != nil {
		return err
	}

	unit, target := args[0], args[1]
	store, err := svc.Export(unit)
	if err != nil {
		return fmt.Errorf("failed to export %s: %w", unit, err)
	}
	if store.Len() == 0 {
		l.Warn("The memory holds nothing for this unit", zap.String("unit", unit))
	}

	if err := writeUnitFile(target, store); err != nil {
		return err
	}

	l.Info("Export completed",
		zap.String("unit", unit),
		zap.String("file", target),
		zap.Int("terms", store.Len()),
	)
	return nil
}

func runMemoryFill(cmd *cobra.Command, args []string) error {
	svc, cfg, l, err := openMemory()
	if err != nil {
		return err
	}

	units, err := unitArgs(cfg.Project.Output, args)
	if err != nil {
		return err
	}
	if len(units) == 0 {
		l.Info("No unit files to fill.")
		return nil
	}

	var exact, fuzzy int
	for _, unit := range units {
		path := filepath.Join(cfg.Project.Output, unit)
		store, err := readUnitFile(path, l)
		if err != nil {
			return err
		}

		res, err := svc.Fill(store, fillFuzzy)
		if err != nil {
			return fmt.Errorf("failed to fill %s: %w", unit, err)
		}
		if res.Exact == 0 && res.Fuzzy == 0 {
			continue
		}

		if err := writeUnitFile(path, store); err != nil {
			return err
		}
		l.Info("Filled unit",
			zap.String("unit", unit),
			zap.Int("exact", res.Exact),
			zap.Int("fuzzy", res.Fuzzy),
		)
		exact += res.Exact
		fuzzy += res.Fuzzy
	}

	l.Info("Fill completed",
		zap.Int("units", len(units)),
		zap.Int("exact", exact),
		zap.Int("fuzzy", fuzzy),
	)
	return nil
}

func runMemoryStatus(cmd *cobra.Command, args []string) error {
	svc, cfg, _, err := openMemory()
	if err != nil {
		return err
	}

	stats, err := svc.Status()
	if err != nil {
		return fmt.Errorf("failed to read memory stats: %w", err)
	}

	// Pretty Console Output
	fmt.Println("\n=== Translation Memory ===")
	fmt.Printf("Driver:         %s\n", cfg.Database.Driver)
	fmt.Printf("Terms:          %d\n", stats.Records)
	fmt.Printf("Units:          %d\n", stats.Units)
	fmt.Println("==========================")

	return nil
}
