package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quranpulse/quranpulse/internal/stderr"
)

// Version is set at build time.
var Version = "dev"

var (
	reciterFlag string

	rootCmd = &cobra.Command{
		Use:           "quranpulse",
		Short:         "Read and listen to the Quran in the terminal",
		Long:          "QuranPulse streams verse-by-verse and chapter recitations, with repeat\nand memorization modes, translations and tafseer.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerseTUI(cmd.Context(), 1, 1)
		},
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		stderr.WriteOriginal(fmt.Sprintf("quranpulse: %v\n", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&reciterFlag, "reciter", "r", "", "reciter ID to start with")
	rootCmd.AddCommand(
		chaptersCmd,
		recitersCmd,
		playCmd,
		chapterCmd,
		tafseerCmd,
		bookmarksCmd,
		settingsCmd,
		cityCmd,
		downloadCmd,
	)
}
