package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsawler/labscan/export"
	"github.com/tsawler/labscan/model"
	"github.com/tsawler/labscan/ocr"
	"github.com/tsawler/labscan/tables"
)

// Output formats for reconstructed tables.
const (
	formatTSV      = "tsv"
	formatMarkdown = "markdown"
	formatCSV      = "csv"
	formatXLSX     = "xlsx"
)

func newTableCmd() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "table IMAGE...",
		Short: "Recognize page images and print the reconstructed table",
		Long: `table runs OCR over each page image, in the order given, and prints the
rows of the reconstructed table.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
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

			pages, err := ocr.RecognizeDocument(ctx, recognizer, images)
			if err != nil {
				return fmt.Errorf("recognize: %w", err)
			}

			table, err := reconstruct(ctx, pages)
			if err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), table, format, out)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTSV, "output format: tsv, markdown, csv, xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout; required for xlsx)")
	return cmd
}

func newTokensCmd() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "tokens TSVFILE...",
		Short: "Reconstruct a table from saved tesseract TSV output",
		Long: `tokens reads files produced by "tesseract IMAGE stdout tsv" and reconstructs
the table without running OCR. Each file contributes its pages in order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pages []model.Page
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				parsed, err := ocr.ParseTSV(f, cfg.OCR.MinConfidence)
				f.Close()
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				for _, p := range parsed {
					p.Number = len(pages) + 1
					pages = append(pages, p)
				}
			}

			table, err := reconstruct(cmd.Context(), pages)
			if err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), table, format, out)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTSV, "output format: tsv, markdown, csv, xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout; required for xlsx)")
	return cmd
}

func reconstruct(ctx context.Context, pages []model.Page) (model.Table, error) {
	r, err := tables.NewGeometricReconstructorWithConfig(cfg.Tables())
	if err != nil {
		return model.Table{}, err
	}

	table, err := tables.ReconstructPages(ctx, r, pages)
	if err != nil {
		return model.Table{}, fmt.Errorf("reconstruct: %w", err)
	}

	logger.Info().
		Int("pages", len(pages)).
		Int("rows", table.RowCount()).
		Int("cols", table.ColCount()).
		Msg("tables.reconstructed")
	return table, nil
}

func writeTable(stdout io.Writer, table model.Table, format, out string) error {
	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case formatTSV:
		buf.WriteString(table.GetText())
	case formatMarkdown, "md":
		buf.WriteString(table.ToMarkdown())
	case formatCSV:
		if err := export.WriteCSV(&buf, table); err != nil {
			return err
		}
	case formatXLSX:
		if out == "" {
			return fmt.Errorf("--out is required for xlsx output")
		}
		return export.SaveXLSX(out, table, export.DefaultSheet)
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if out == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	return os.WriteFile(out, buf.Bytes(), 0o644)
}

func readFiles(paths []string) ([][]byte, error) {
	out := make([][]byte, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}
