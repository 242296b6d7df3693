package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/quranpulse/quranpulse/internal/catalog"
	"github.com/quranpulse/quranpulse/internal/errmsg"
	"github.com/quranpulse/quranpulse/internal/reciter"
	"github.com/quranpulse/quranpulse/internal/state"
	"github.com/quranpulse/quranpulse/internal/tafseer"
	"github.com/quranpulse/quranpulse/internal/ui/render"
)

const textWidth = 78

var chaptersCmd = &cobra.Command{
	Use:   "chapters [query]",
	Short: "List chapters, optionally filtered by name or number",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			chapters, _, err := a.chapters(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 1 {
				chapters = catalog.Filter(chapters, args[0])
			}
			if len(chapters) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No chapters match.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, ch := range chapters {
				fmt.Fprintf(w, "%3d\t%s\t%s\t%s\t%d verses\n",
					ch.ID, ch.Name, ch.TranslatedName, ch.NameArabic, ch.VersesCount)
			}
			return w.Flush()
		})
	},
}

var recitersCmd = &cobra.Command{
	Use:   "reciters",
	Short: "List verse and chapter reciters; * marks the selected one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			ayah, err := a.cfg.AyahRegistry()
			if err != nil {
				return err
			}
			chapter, _, err := a.cfg.ChapterReciters()
			if err != nil {
				return err
			}
			ayahID, _ := a.state.AyahReciter().LoadReciter(cmd.Context())
			chapterID, _ := a.state.ChapterReciter().LoadReciter(cmd.Context())

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Verse reciters:")
			printReciters(out, ayah, ayah.Resolve(ayahID).ID)
			fmt.Fprintln(out, "\nChapter reciters:")
			printReciters(out, chapter, chapter.Resolve(chapterID).ID)
			return nil
		})
	},
}

func printReciters(out io.Writer, reg *reciter.Registry, selected string) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, r := range reg.All() {
		mark := " "
		if r.ID == selected {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", mark, r.ID, r.Name)
	}
	_ = w.Flush()
}

var playCmd = &cobra.Command{
	Use:   "play <surah> [ayah]",
	Short: "Play verse by verse starting at surah:ayah",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		nums, err := parseInts(args)
		if err != nil {
			return err
		}
		ayah := 1
		if len(nums) == 2 {
			ayah = nums[1]
		}
		return runVerseTUI(cmd.Context(), nums[0], ayah)
	},
}

var chapterCmd = &cobra.Command{
	Use:   "chapter <surah>",
	Short: "Play whole chapters starting at surah",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nums, err := parseInts(args)
		if err != nil {
			return err
		}
		return runChapterTUI(cmd.Context(), nums[0])
	},
}

var tafseerCmd = &cobra.Command{
	Use:   "tafseer <surah> <ayah>",
	Short: "Show the commentary for a verse",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		nums, err := parseInts(args)
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			_, idx, err := a.chapters(cmd.Context())
			if err != nil {
				return err
			}
			pos, err := idx.Position(nums[0], nums[1])
			if err != nil {
				return err
			}

			res := tafseer.NewLoader(a.api, a.cfg.GetAPIConfig().TafsirID).Load(cmd.Context(), pos)
			if res.Err != nil {
				a.logger.Warn("tafseer", "verse", pos.Key(), "err", res.Err)
				fmt.Fprintln(cmd.ErrOrStderr(), errmsg.Format(errmsg.OpTafseerLoad, res.Err))
			}

			out := cmd.OutOrStdout()
			header := pos.Key()
			if res.Resource != "" {
				header += " · " + res.Resource
			}
			fmt.Fprintln(out, header)
			fmt.Fprintln(out, strings.Repeat("─", min(textWidth, len(header)+8)))
			for _, line := range render.Wrap(res.Text, textWidth) {
				fmt.Fprintln(out, line)
			}
			return nil
		})
	},
}

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "List saved verses, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			list, err := a.state.Bookmarks(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No bookmarks yet.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, b := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					b.Key(), b.SurahName, render.Truncate(b.Translation, 48), humanize.Time(b.Time()))
			}
			return w.Flush()
		})
	},
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add <surah> <ayah>",
	Short: "Bookmark a verse",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		nums, err := parseInts(args)
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			b, err := buildBookmark(cmd.Context(), a, nums[0], nums[1])
			if err != nil {
				return err
			}
			if err := a.state.AddBookmark(cmd.Context(), b); err != nil {
				return errors.New(errmsg.Format(errmsg.OpBookmarkAdd, err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked %s %s\n", b.SurahName, b.Key())
			return nil
		})
	},
}

var bookmarkRemoveCmd = &cobra.Command{
	Use:   "remove <surah> <ayah>",
	Short: "Remove a bookmark",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		nums, err := parseInts(args)
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			if err := a.state.RemoveBookmark(cmd.Context(), nums[0], nums[1]); err != nil {
				return errors.New(errmsg.Format(errmsg.OpBookmarkRemove, err))
			}
			return nil
		})
	},
}

// buildBookmark fills a bookmark with the chapter name and verse text. The
// text is best effort; a bookmark is saved even when the API is down.
func buildBookmark(ctx context.Context, a *app, surah, ayah int) (state.Bookmark, error) {
	chapters, idx, err := a.chapters(ctx)
	if err != nil {
		return state.Bookmark{}, err
	}
	if _, err := idx.Position(surah, ayah); err != nil {
		return state.Bookmark{}, err
	}

	b := state.Bookmark{SurahID: surah, AyahNum: ayah, SurahName: chapters[surah-1].Name}
	verses, err := a.catalog.Verses(ctx, surah)
	if err != nil {
		a.logger.Warn("bookmark without text", "verse", b.Key(), "err", err)
		return b, nil
	}
	if ayah <= len(verses) {
		b.AyahText = verses[ayah-1].TextUthmani
		b.Translation = verses[ayah-1].Translation
	}
	return b, nil
}

var settingsCmd = &cobra.Command{
	Use:   "settings [name value]",
	Short: "Show settings, or change one",
	Args: cobra.MatchAll(cobra.MaximumNArgs(2), func(_ *cobra.Command, args []string) error {
		if len(args) == 1 {
			return errors.New("expected a name and a value")
		}
		return nil
	}),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			var s state.Settings
			var err error
			if len(args) == 2 {
				s, err = a.state.UpdateSettings(cmd.Context(), func(s *state.Settings) error {
					return s.Set(args[0], args[1])
				})
				if err != nil {
					return errors.New(errmsg.Format(errmsg.OpSettingsSave, err))
				}
			} else if s, err = a.state.Settings(cmd.Context()); err != nil {
				return errors.New(errmsg.Format(errmsg.OpSettingsLoad, err))
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "arabicFontSize\t%d\n", s.ArabicFontSize)
			fmt.Fprintf(w, "memorizationPause\t%ds\n", s.MemorizationPause)
			fmt.Fprintf(w, "isDarkMode\t%t\n", s.IsDarkMode)
			fmt.Fprintf(w, "autoPlayOnStart\t%t\n", s.AutoPlayOnStart)
			return w.Flush()
		})
	},
}

var cityReset bool

var cityCmd = &cobra.Command{
	Use:   "city [name]",
	Short: "Show or set the city used for prayer times",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			switch {
			case cityReset:
				if err := a.state.SetCity(cmd.Context(), ""); err != nil {
					return errors.New(errmsg.Format(errmsg.OpCitySave, err))
				}
			case len(args) == 1:
				if err := a.state.SetCity(cmd.Context(), strings.TrimSpace(args[0])); err != nil {
					return errors.New(errmsg.Format(errmsg.OpCitySave, err))
				}
			}
			city, err := a.state.City(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), city)
			return nil
		})
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download recitations for offline listening",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "Offline downloads are coming soon.")
	},
}

func init() {
	bookmarksCmd.AddCommand(bookmarkAddCmd, bookmarkRemoveCmd)
	cityCmd.Flags().BoolVar(&cityReset, "reset", false, "forget the saved city")
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%q is not a valid number", a)
		}
		out[i] = n
	}
	return out, nil
}
