package cmd

import (
	"errors"
	"fmt"
	"os"

	"lcftrans/core/config"
	"lcftrans/core/encoding"
	"lcftrans/core/logger"
	"lcftrans/core/project"
	"lcftrans/core/rpg"
	"lcftrans/feature/extract"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the root extraction workflow
	createMode   bool
	updateMode   bool
	matchDir     string
	encodingName string
	outputDir    string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "lcftrans DIRECTORY",
	Short: "Translation toolkit for RPG Maker 2000/2003 games",
	Long: `lcftrans extracts the translatable text of an RPG Maker 2000/2003 game
into gettext unit files and keeps those files alive across game updates.

The default mode creates fresh unit files for a game directory. Update
mode re-extracts the game and merges existing translations back in,
parking terms the game no longer uses in .stale.po companions. Match
mode pairs unit files against an already-localized extraction of the
same game and bootstraps translations from it.

Examples:
  # Fresh extraction into ./out
  lcftrans -o out /games/YumeNikki

  # Re-extract after a game update, keeping existing translations
  lcftrans --update -o out /games/YumeNikki

  # Force the codepage instead of detecting it
  lcftrans -e 932 -o out /games/YumeNikki

  # Bootstrap ./ja units from the localized extraction in ./en
  lcftrans --match en -o out ja`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runWorkflow,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			// Log the error with structured logger (Console encoding will make it pretty)
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		if errors.Is(err, encoding.ErrUnsupported) {
			os.Exit(3)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.Flags().BoolVarP(&createMode, "create", "c", false, "Create fresh unit files (default)")
	RootCmd.Flags().BoolVarP(&updateMode, "update", "u", false, "Re-extract the game and merge existing unit files")
	RootCmd.Flags().StringVarP(&matchDir, "match", "m", "", "Bootstrap translations from the localized extraction in `DIR`")
	RootCmd.Flags().StringVarP(&encodingName, "encoding", "e", "", "Game text encoding (codepage number or IANA name)")
	RootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for unit files")
	RootCmd.MarkFlagsMutuallyExclusive("create", "update", "match")
}

func runWorkflow(cmd *cobra.Command, args []string) error {
	//Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Flags win over config file values
	if encodingName != "" {
		cfg.Project.Encoding = encodingName
	}
	if outputDir != "" {
		cfg.Project.Output = outputDir
	}

	dir := args[0]

	// Step 1: Match mode short-circuits, it only reads unit files
	if matchDir != "" {
		if cfg.Project.Output == dir {
			return fmt.Errorf("match mode would overwrite its input, pick a different --output than %q", dir)
		}
		l.Info("Matching unit files",
			zap.String("dir", dir),
			zap.String("match_dir", matchDir),
			zap.String("output", cfg.Project.Output))
		pipeline := project.NewPipeline(cfg.Project, nil, l)
		return pipeline.Match(dir, matchDir)
	}

	// Step 2: Scan the game directory
	layout, err := project.Scan(dir)
	if err != nil {
		return err
	}
	if layout.Database == "" && layout.MapTree == "" && len(layout.Maps) == 0 {
		return fmt.Errorf("%w: no RPG Maker files in %q", project.ErrGameDir, dir)
	}

	// Step 3: Resolve the text encoding
	dec, err := resolveEncoding(cfg.Project.Encoding, layout, l)
	if err != nil {
		return err
	}

	// Step 4: Extract and write the units
	pipeline := project.NewPipeline(cfg.Project, extract.New(dec, l), l)
	if updateMode {
		l.Info("Updating unit files",
			zap.String("game", dir),
			zap.String("output", cfg.Project.Output),
			zap.Int("maps", len(layout.Maps)))
		return pipeline.Update(layout)
	}

	l.Info("Creating unit files",
		zap.String("game", dir),
		zap.String("output", cfg.Project.Output),
		zap.Int("maps", len(layout.Maps)))
	return pipeline.Create(layout)
}

// resolveEncoding picks the codepage of the game text. An explicit name
// wins, then the Encoding key of RPG_RT.ini, then a frequency scan of
// the database strings. Games with no judgeable text fall back to 1252,
// the codepage most western games shipped with.
func resolveEncoding(name string, layout *project.Layout, l *zap.Logger) (*encoding.Decoder, error) {
	if name == "" && layout.INI != "" {
		if fromINI := encoding.FromINI(layout.Path(layout.INI)); fromINI != "" {
			name = fromINI
			l.Info("Encoding from RPG_RT.ini", zap.String("encoding", name))
		}
	}
	if name == "" && layout.Database != "" {
		db, err := rpg.ReadDatabase(layout.Path(layout.Database))
		if err != nil {
			return nil, fmt.Errorf("failed to read database for encoding detection: %w", err)
		}
		if guess := rpg.DetectEncoding(db); guess != "" {
			name = guess
			l.Info("Encoding detected from database text", zap.String("encoding", name))
		}
	}
	if name == "" {
		name = "1252"
		l.Info("No text to judge, assuming western codepage", zap.String("encoding", name))
	}

	dec, err := encoding.NewDecoder(name)
	if err != nil {
		return nil, err
	}
	l.Info("Using encoding", zap.String("encoding", dec.Name()))
	return dec, nil
}
