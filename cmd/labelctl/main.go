// Command labelctl is a maintenance CLI for the label catalogue. It talks to
// the sqlite store directly and is meant for operators seeding or inspecting
// labels without going through the HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"labelguard/application"
	"labelguard/database"
	"labelguard/domain/labels"
	"labelguard/infrastructure/config"
	"labelguard/infrastructure/crypto"
	"labelguard/infrastructure/repositories"
	"labelguard/logging"
	"labelguard/platform/events"
)

var dbPath string

func main() {
	_ = godotenv.Load()
	cfg := config.LoadAppConfigFromEnv()

	rootCmd := &cobra.Command{
		Use:   "labelctl",
		Short: "Manage sensitivity labels and classify content",
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.Database.Path, "database path")

	rootCmd.AddCommand(labelsCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(classifyCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openServices builds the service layer against the configured database.
// The CLI logs errors only; structured output goes to stdout.
func openServices(cfg *config.AppConfig) (*application.LabelService, application.ClassificationService, *database.Database, error) {
	logger := logging.NewLogger(&logging.Config{Level: "error", Format: "text", Output: "stderr"})
	logging.SetDefault(logger)

	dbCfg := *cfg.Database
	dbCfg.Path = dbPath
	db, err := database.New(dbCfg, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}

	labelRepo := repositories.NewSqliteLabelRepository(db)
	validator := labels.NewValidator()
	encryptor := crypto.NewLabelEncryptor(cfg.EncryptionSecret)

	labelService := application.NewLabelService(labelRepo, validator, events.NewClassificationEventBus())
	classificationService := application.NewClassificationService(labelRepo, encryptor, validator)

	return labelService, classificationService, db, nil
}

func labelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "List all labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadAppConfigFromEnv()
			labelService, _, db, err := openServices(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			ls, err := labelService.ListLabels(context.Background())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRIORITY\tENCRYPT\tACTIVE")
			for _, l := range ls {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%t\n",
					l.ID, l.Name, l.Priority.String(), l.Protection.RequireEncryption, l.Active)
			}
			return w.Flush()
		},
	}
}

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the label catalogue as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadAppConfigFromEnv()
			labelService, _, db, err := openServices(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			data, err := labelService.ExportLabels(context.Background())
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			fmt.Printf("Exported labels to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to stdout)")
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import labels from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}

			cfg := config.LoadAppConfigFromEnv()
			labelService, _, db, err := openServices(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			count, err := labelService.ImportLabels(context.Background(), data)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d labels\n", count)
			return nil
		},
	}
}

func classifyCmd(cfg *config.AppConfig) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "classify [content]",
		Short: "Classify content and print the suggested tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			var content string
			switch {
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read content file: %w", err)
				}
				content = string(data)
			case len(args) > 0:
				content = strings.Join(args, " ")
			default:
				return fmt.Errorf("provide content as an argument or via --file")
			}

			_, classificationService, db, err := openServices(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := classificationService.Classify(context.Background(), content)
			if err != nil {
				return err
			}

			fmt.Printf("Suggested tier: %s (confidence %.2f)\n", result.SuggestedTier.String(), result.Confidence)
			if len(result.Patterns) == 0 {
				fmt.Println("No sensitive patterns detected")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PATTERN\tRISK\tCONFIDENCE\tRANGE")
			for _, p := range result.Patterns {
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%d-%d\n", p.PatternType, p.Risk.String(), p.Confidence, p.Start, p.End)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read content from file")
	return cmd
}
