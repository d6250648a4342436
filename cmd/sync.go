package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"lcftrans/core/config"
	"lcftrans/core/logger"
	"lcftrans/core/storage"
	"lcftrans/feature/remote"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for sync push/pull commands
	dryRunSync bool
	deleteSync bool
	yesConfirm bool
)

// syncCmd is the parent command for all remote sync operations.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror unit files with the remote bucket",
	Long: `Sync mirrors the unit files of the output directory with an S3 bucket so
a translation team can share one set of files. Push uploads local
changes, pull downloads remote ones. Both plan first and only touch
files whose size or content hash differs.`,
}

// syncPushCmd uploads changed unit files to the bucket.
var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload changed unit files to the bucket",
	Long: `Upload unit files that are missing or outdated in the bucket.

Examples:
  # Show what would be uploaded
  sync push --dry-run

  # Upload with interactive confirmation
  sync push

  # Upload and delete remote units that vanished locally
  sync push --delete --yes`,
	RunE: runSyncPush,
}

// syncPullCmd downloads changed unit files from the bucket.
var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download changed unit files from the bucket",
	Long: `Download unit files that are missing or outdated locally.

Examples:
  # Show what would be downloaded
  sync pull --dry-run

  # Download and delete local units that vanished remotely
  sync pull --delete --yes`,
	RunE: runSyncPull,
}

func init() {
	// Add push and pull to sync
	syncCmd.AddCommand(syncPushCmd, syncPullCmd)

	// Add flags to both directions
	for _, c := range []*cobra.Command{syncPushCmd, syncPullCmd} {
		c.Flags().BoolVar(&dryRunSync, "dry-run", false, "Plan and report only, change nothing")
		c.Flags().BoolVar(&deleteSync, "delete", false, "Also delete units missing on the source side")
		c.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	}

	// Add sync to root
	RootCmd.AddCommand(syncCmd)
}

// openRemote wires config, logger, storage and the sync service.
func openRemote() (*remote.Service, *zap.Logger, error) {
	//Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Connect to storage
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to storage: %w", err)
	}

	svc := remote.NewService(client, cfg.Storage.Bucket, cfg.Storage.Prefix, cfg.Project.Output, l)
	return svc, l, nil
}

func runSyncPush(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, l, err := openRemote()
	if err != nil {
		return err
	}

	// Step 1: The bucket must exist before pushing into it
	if err := svc.EnsureBucket(ctx); err != nil {
		return fmt.Errorf("failed to prepare bucket: %w", err)
	}

	// Step 2: Plan (always runs)
	l.Info("Planning push...")
	plan, err := svc.PlanPush(ctx, remote.Options{Delete: deleteSync})
	if err != nil {
		return fmt.Errorf("failed to plan push: %w", err)
	}

	// Step 3: Print report
	printSyncReport(l, plan)

	// Step 4: Apply (if confirmed)
	return applySyncPlan(ctx, svc, plan, l)
}

func runSyncPull(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, l, err := openRemote()
	if err != nil {
		return err
	}

	// Step 1: Pulling from a missing bucket is an error, not a fix
	if err := svc.RequireBucket(ctx); err != nil {
		return err
	}

	// Step 2: Plan (always runs)
	l.Info("Planning pull...")
	plan, err := svc.PlanPull(ctx, remote.Options{Delete: deleteSync})
	if err != nil {
		return fmt.Errorf("failed to plan pull: %w", err)
	}

	// Step 3: Print report
	printSyncReport(l, plan)

	// Step 4: Apply (if confirmed)
	return applySyncPlan(ctx, svc, plan, l)
}

// applySyncPlan runs the confirmation gate and executes the plan.
func applySyncPlan(ctx context.Context, svc *remote.Service, plan *remote.Plan, l *zap.Logger) error {
	if plan.IsEmpty() {
		l.Info("Everything in sync. No actions required.")
		return nil
	}

	if dryRunSync {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	// Applying overwrites and deletes files, so it needs confirmation
	confirmed := confirmDestructiveAction()
	if !confirmed {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	// Execute actions
	l.Info("Applying actions...")
	res, err := svc.Apply(ctx, plan)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}

	l.Info("Successfully executed actions",
		zap.Int("uploaded", res.Uploaded),
		zap.Int("downloaded", res.Downloaded),
		zap.Int("deleted", res.Deleted),
	)
	return nil
}

// printSyncReport prints a formatted sync plan report using logger.
func printSyncReport(l *zap.Logger, plan *remote.Plan) {
	l.Info("Sync plan",
		zap.String("direction", plan.Direction),
		zap.String("bucket", plan.Bucket),
		zap.String("prefix", plan.Prefix),
		zap.Int("uploads", plan.Count(remote.ActionUpload)),
		zap.Int("downloads", plan.Count(remote.ActionDownload)),
		zap.Int("deletions", plan.Count(remote.ActionDeleteRemote)+plan.Count(remote.ActionDeleteLocal)),
		zap.Int("total_actions", len(plan.Actions)),
	)

	if len(plan.Actions) > 0 {
		// Show sample of actions (max 5 for logger)
		maxShow := 5
		if len(plan.Actions) < maxShow {
			maxShow = len(plan.Actions)
		}
		for i := 0; i < maxShow; i++ {
			action := plan.Actions[i]
			l.Info("Sample action",
				zap.String("type", string(action.Type)),
				zap.String("unit", action.Unit),
				zap.String("reason", action.Reason),
			)
		}
		if len(plan.Actions) > maxShow {
			l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
		}
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
