package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/feedtune/internal/feed"
	"github.com/abhisek/feedtune/internal/prefs"
	"github.com/abhisek/feedtune/internal/prefsync"
	"github.com/abhisek/feedtune/internal/screens/preview"
	"github.com/abhisek/feedtune/internal/store"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Inspect and change feed preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current preferences",
	RunE:  runPrefsShow,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set preset, difficulty or question style",
	Example: `  feedtune prefs set --preset quiz-heavy
  feedtune prefs set --difficulty 0.8 --style application
  feedtune prefs set --auto --style any`,
	RunE: runPrefsSet,
}

var prefsMixCmd = &cobra.Command{
	Use:     "mix",
	Short:   "Move one content mix slider; the others rebalance",
	Example: `  feedtune prefs mix --card mcq --value 50`,
	RunE:    runPrefsMix,
}

var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default preferences",
	RunE:  runPrefsReset,
}

var prefsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent preference changes",
	RunE:  runPrefsHistory,
}

var prefsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print preferences as JSON suitable for import",
	RunE:  runPrefsExport,
}

var prefsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace preferences with a JSON file",
	Long: `Replace the current preferences with the contents of a JSON file in the
same shape the feed API accepts ("difficulty", "contentMix", "questionStyle").
Use - to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runPrefsImport,
}

func init() {
	prefsShowCmd.Flags().Bool("json", false, "Print the request payload as JSON")

	prefsSetCmd.Flags().String("preset", "", "Content mix preset: "+presetChoices())
	prefsSetCmd.Flags().Float64("difficulty", -1, "Manual difficulty in [0, 1]")
	prefsSetCmd.Flags().Bool("auto", false, "Let the feed pick difficulty")
	prefsSetCmd.Flags().String("style", "", "Question style: any, "+styleChoices())
	prefsSetCmd.MarkFlagsMutuallyExclusive("difficulty", "auto")

	prefsMixCmd.Flags().String("card", "", "Card type: mcq, flashcard or info_card")
	prefsMixCmd.Flags().Float64("value", 0, "New share in percent (0-100)")
	_ = prefsMixCmd.MarkFlagRequired("card")
	_ = prefsMixCmd.MarkFlagRequired("value")

	prefsResetCmd.Flags().Bool("forget", false, "Also delete the saved profile row")

	prefsHistoryCmd.Flags().Int("limit", 20, "Number of changes to show")

	prefsCmd.AddCommand(prefsShowCmd, prefsSetCmd, prefsMixCmd, prefsResetCmd, prefsHistoryCmd, prefsExportCmd, prefsImportCmd)
}

func runPrefsShow(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := prefsync.Load(cmd.Context(), e.st.PreferenceRepo(), e.cfg.Profile, e.log)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		payload, err := preview.Payload(p)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), payload)
		return nil
	}
	printPrefs(cmd.OutOrStdout(), e.cfg.Profile, p)
	return nil
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if !flags.Changed("preset") && !flags.Changed("difficulty") && !flags.Changed("auto") && !flags.Changed("style") {
		return errors.New("nothing to set: pass --preset, --difficulty, --auto or --style")
	}

	// Parse everything before touching the store so a bad flag changes nothing.
	var (
		presetKey prefs.PresetKey
		style     *prefs.QuestionStyle
		err       error
	)
	if flags.Changed("preset") {
		v, _ := flags.GetString("preset")
		if presetKey, err = prefs.ParsePresetKey(v); err != nil {
			return err
		}
		if presetKey == prefs.PresetCustom {
			return errors.New("CUSTOM is not a preset; use `prefs mix` to shape a custom mix")
		}
	}
	difficulty, _ := flags.GetFloat64("difficulty")
	if flags.Changed("difficulty") && (difficulty < 0 || difficulty > 1) {
		return fmt.Errorf("difficulty must be within [0, 1], got %v", difficulty)
	}
	if flags.Changed("style") {
		v, _ := flags.GetString("style")
		if style, err = prefs.ParseQuestionStyle(v); err != nil {
			return err
		}
	}

	return withPrefs(cmd, func(ps *prefs.Store) error {
		if presetKey != "" {
			ps.SelectPreset(presetKey)
		}
		if auto, _ := flags.GetBool("auto"); auto {
			ps.SetPreferences(prefs.Update{ClearDifficulty: true})
		}
		if flags.Changed("difficulty") {
			ps.SetPreferences(prefs.Update{Difficulty: prefs.Float(difficulty)})
		}
		if flags.Changed("style") {
			ps.SetQuestionStyle(style)
		}
		return nil
	})
}

func runPrefsMix(cmd *cobra.Command, args []string) error {
	cardVal, _ := cmd.Flags().GetString("card")
	percent, _ := cmd.Flags().GetFloat64("value")

	card, err := prefs.ParseCardType(cardVal)
	if err != nil {
		return err
	}
	if !card.IsSlider() {
		return fmt.Errorf("%s has a fixed share and cannot be tuned", card)
	}
	if percent < 0 || percent > 100 {
		return fmt.Errorf("value must be a percentage within [0, 100], got %v", percent)
	}

	return withPrefs(cmd, func(ps *prefs.Store) error {
		mix := ps.Preferences().ContentMix
		if !prefs.CanRedistribute(mix, card) {
			return fmt.Errorf("%s is locked: raise another card type above 0%% first", card.Label())
		}
		ps.ApplySlider(card, prefs.ClampUnit(percent/100))
		return nil
	})
}

func runPrefsReset(cmd *cobra.Command, args []string) error {
	forget, _ := cmd.Flags().GetBool("forget")
	if !forget {
		return withPrefs(cmd, func(ps *prefs.Store) error {
			ps.Reset()
			return nil
		})
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()
	if err := e.st.PreferenceRepo().Delete(cmd.Context(), e.cfg.Profile); err != nil {
		return err
	}
	e.log.Info("profile preferences deleted", "profile", e.cfg.Profile)
	fmt.Fprintf(cmd.OutOrStdout(), "Forgot saved preferences for profile %q.\n", e.cfg.Profile)
	return nil
}

func runPrefsHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	records, err := e.st.ChangeRepo().Query(cmd.Context(), e.cfg.Profile, store.QueryOpts{Limit: limit})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No preference changes yet.")
		return nil
	}
	printHistory(cmd.OutOrStdout(), records)
	return nil
}

func runPrefsExport(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := prefsync.Load(cmd.Context(), e.st.PreferenceRepo(), e.cfg.Profile, e.log)
	if err != nil {
		return err
	}
	b, err := marshalPrefs(p)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

func runPrefsImport(cmd *cobra.Command, args []string) error {
	var (
		raw []byte
		err error
	)
	if args[0] == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read preferences: %w", err)
	}

	p, err := feed.ParsePreferences(raw)
	if err != nil {
		return err
	}
	return withPrefs(cmd, func(ps *prefs.Store) error {
		ps.Replace(p)
		return nil
	})
}

// withPrefs loads the profile, runs fn against an attached store, waits for
// the resulting writes and prints the outcome.
func withPrefs(cmd *cobra.Command, fn func(ps *prefs.Store) error) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ps, syncer, err := e.attachPrefs(cmd)
	if err != nil {
		return err
	}
	err = fn(ps)
	syncer.Close()
	if err != nil {
		return err
	}

	printPrefs(cmd.OutOrStdout(), e.cfg.Profile, ps.Preferences())
	return nil
}

func printPrefs(w io.Writer, profile string, p prefs.FeedPreferences) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Profile\t%s\n", profile)
	fmt.Fprintf(tw, "Preset\t%s\n", prefs.PresetLabel(p.ActivePreset()))
	fmt.Fprintf(tw, "Difficulty\t%s\n", describeDifficulty(p.Difficulty))
	fmt.Fprintf(tw, "Question style\t%s\n", prefs.StyleLabel(p.QuestionStyle))
	for _, c := range prefs.SliderCards {
		fmt.Fprintf(tw, "%s\t%3d%%\n", c.Label(), p.ContentMix.Percent(c))
	}
	fmt.Fprintf(tw, "%s\t%3d%% (fixed)\n", prefs.CardResource.Label(), p.ContentMix.Percent(prefs.CardResource))
	tw.Flush()

	if p.IsNonDefault() {
		fmt.Fprintln(w, "\nCustomized. Run `feedtune prefs reset` to restore defaults.")
	}
}

func describeDifficulty(d *float64) string {
	if d == nil {
		return prefs.DifficultyLabel(d)
	}
	return fmt.Sprintf("%s (%.2f)", prefs.DifficultyLabel(d), *d)
}

func printHistory(w io.Writer, records []store.ChangeRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tWHEN\tACTION\tDETAIL\tPRESET\tMIX")
	for _, r := range records {
		mix := r.Preferences.ContentMix
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d/%d/%d\n",
			r.Sequence,
			r.Timestamp.Local().Format("Jan 02 15:04"),
			r.Action,
			r.Detail,
			prefs.PresetLabel(r.Preferences.ActivePreset()),
			mix.Percent(prefs.CardMCQ), mix.Percent(prefs.CardFlashcard), mix.Percent(prefs.CardInfo),
		)
	}
	tw.Flush()
}

func presetChoices() string {
	keys := prefs.PresetKeys()
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == prefs.PresetCustom {
			continue
		}
		names = append(names, strings.ToLower(strings.ReplaceAll(string(k), "_", "-")))
	}
	return strings.Join(names, ", ")
}

func styleChoices() string {
	styles := prefs.QuestionStyles()
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// marshalPrefs is the on-disk form accepted by `prefs import`.
func marshalPrefs(p prefs.FeedPreferences) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}
