package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/feedtune/internal/app"
	"github.com/abhisek/feedtune/internal/prefs"
	"github.com/abhisek/feedtune/internal/prefsync"
	"github.com/abhisek/feedtune/internal/screens/home"
)

// historyKeep bounds the change log per profile; older entries are pruned
// when the TUI starts.
const historyKeep = 500

// runApp opens the store, restores the profile's preferences, and launches
// the TUI. Every change made in the TUI is persisted in the background.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if n, err := e.st.ChangeRepo().Prune(cmd.Context(), e.cfg.Profile, historyKeep); err != nil {
		e.log.Warn("prune change log failed", "error", err)
	} else if n > 0 {
		e.log.Info("change log pruned", "removed", n)
	}

	ps, syncer, err := e.attachPrefs(cmd)
	if err != nil {
		return err
	}
	defer syncer.Close()

	deps := home.Deps{
		Prefs:      ps,
		ChangeRepo: e.st.ChangeRepo(),
		Profile:    e.cfg.Profile,
		SliderStep: e.cfg.SliderStep,
	}
	deps.Topic, _ = cmd.Flags().GetString("topic")
	if offline, _ := cmd.Flags().GetBool("offline"); !offline {
		deps.Backend = e.feedClient()
	}
	skip, _ := cmd.Flags().GetBool("skip-welcome")

	return app.Run(app.Options{
		Home:        deps,
		SkipWelcome: skip,
		Log:         e.log.With("component", "tui"),
	})
}

// attachPrefs loads the profile's preferences into a prefs.Store and starts
// a Syncer writing its changes back. Callers must Close the Syncer.
func (e *env) attachPrefs(cmd *cobra.Command) (*prefs.Store, *prefsync.Syncer, error) {
	p, err := prefsync.Load(cmd.Context(), e.st.PreferenceRepo(), e.cfg.Profile, e.log)
	if err != nil {
		return nil, nil, fmt.Errorf("load preferences: %w", err)
	}
	ps := prefs.NewStore(p)
	syncer := prefsync.New(e.st.PreferenceRepo(), e.st.ChangeRepo(), e.cfg.Profile, e.log)
	syncer.Attach(ps)
	return ps, syncer, nil
}
