package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsawler/labscan/chat"
	"github.com/tsawler/labscan/export"
	"github.com/tsawler/labscan/labreport"
	"github.com/tsawler/labscan/mapper"
	"github.com/tsawler/labscan/normalize"
	"github.com/tsawler/labscan/tables"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		language string
		xlsxOut  string
	)

	cmd := &cobra.Command{
		Use:   "analyze IMAGE...",
		Short: "Run the full lab-report pipeline and print findings as JSON",
		Long: `analyze recognizes each page image, reconstructs the table, asks the
configured chat-completion endpoint to interpret it and prints the decoded
lab findings, highest confidence first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
			defer cancel()

			images, err := readFiles(args)
			if err != nil {
				return err
			}

			recognizer, closeFn, err := newRecognizer()
			if err != nil {
				return err
			}
			defer closeFn()

			reconstructor, err := tables.NewGeometricReconstructorWithConfig(cfg.Tables())
			if err != nil {
				return err
			}

			profiles, err := loadProfiles()
			if err != nil {
				return err
			}

			if language == "" {
				language = cfg.Chat.Language
			}

			completer := chat.NewClient(cfg.ChatClient(), chat.WithLogger(logger))
			analyzer := labreport.New(recognizer, completer,
				labreport.WithReconstructor(reconstructor),
				labreport.WithMapper(mapper.New(normalize.New(normalize.WithLogger(logger)), profiles)),
				labreport.WithOptions(labreport.Options{Language: language}),
				labreport.WithLogger(logger),
			)

			result, err := analyzer.Analyze(ctx, images)
			if err != nil {
				return err
			}

			if xlsxOut != "" {
				f, err := os.Create(xlsxOut)
				if err != nil {
					return err
				}
				if err := export.WriteFindingsXLSX(f, result.Findings); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
			}

			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "answer language: en, tr, de, fr (default: chat.language)")
	cmd.Flags().StringVar(&xlsxOut, "xlsx", "", "also write findings to this XLSX file")
	return cmd
}
