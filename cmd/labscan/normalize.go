package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/labscan/normalize"
)

func newNormalizeCmd() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "normalize [FILE|-]",
		Short: "Decode a saved chat-completion answer into records",
		Long: `normalize reads a raw answer from FILE (or stdin when FILE is "-" or
omitted) and prints the decoded records as JSON.

Built-in profiles: department, disease, lab, home_remedy, natural_solution,
generic. More can be added with normalize.profiles_file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			profiles, err := loadProfiles()
			if err != nil {
				return err
			}
			p, err := profiles.Get(profile)
			if err != nil {
				return err
			}

			n := normalize.New(normalize.WithLogger(logger))
			records := n.Normalize(string(raw), p)

			strategy := ""
			if len(records) > 0 {
				strategy = records[0].Strategy
			}
			logger.Info().
				Str("profile", p.Name).
				Str("strategy", strategy).
				Int("records", len(records)).
				Msg("normalize.done")

			return writeJSON(cmd.OutOrStdout(), records)
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "generic", "record profile name")
	return cmd
}

// loadProfiles returns the profiles from normalize.profiles_file, or nil when
// none is configured. Profiles.Get falls back to the built-in set either way.
func loadProfiles() (normalize.Profiles, error) {
	if cfg.Normalize.ProfilesFile == "" {
		return nil, nil
	}
	profiles, err := normalize.LoadProfilesFile(cfg.Normalize.ProfilesFile)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	return profiles, nil
}

func readInput(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(args[0])
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
