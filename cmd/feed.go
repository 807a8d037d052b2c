package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/feedtune/internal/feed"
	"github.com/abhisek/feedtune/internal/prefs"
	"github.com/abhisek/feedtune/internal/prefsync"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Fetch cards from the feed server using the saved preferences",
}

var feedStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new scroll session",
	RunE:  runFeedStart,
}

var feedResumeCmd = &cobra.Command{
	Use:   "resume <session>",
	Short: "Fetch the next batch for an existing session",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeedResume,
}

func init() {
	feedStartCmd.Flags().String("topic", "", "Topic to study")
	feedStartCmd.Flags().Int("count", 0, "Number of cards to request (server default when 0)")

	feedCmd.AddCommand(feedStartCmd, feedResumeCmd)
}

func runFeedStart(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	count, _ := cmd.Flags().GetInt("count")
	if count < 0 {
		return fmt.Errorf("count must not be negative, got %d", count)
	}

	return withFeed(cmd, func(ctx context.Context, c *feed.Client, p prefs.FeedPreferences) (*feed.Session, error) {
		req := feed.BuildRequest(p)
		req.Topic = topic
		req.Count = count
		return c.StartSession(ctx, req)
	})
}

func runFeedResume(cmd *cobra.Command, args []string) error {
	sessionID := args[0]
	return withFeed(cmd, func(ctx context.Context, c *feed.Client, p prefs.FeedPreferences) (*feed.Session, error) {
		return c.ResumeSession(ctx, sessionID, p)
	})
}

// withFeed loads the profile's preferences, runs one feed call and prints
// the returned batch.
func withFeed(cmd *cobra.Command, call func(context.Context, *feed.Client, prefs.FeedPreferences) (*feed.Session, error)) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := prefsync.Load(cmd.Context(), e.st.PreferenceRepo(), e.cfg.Profile, e.log)
	if err != nil {
		return err
	}

	sess, err := call(cmd.Context(), e.feedClient(), p)
	if err != nil {
		return explainFeedError(err)
	}
	printSession(cmd.OutOrStdout(), sess)
	return nil
}

func explainFeedError(err error) error {
	if wait, ok := feed.IsRateLimited(err); ok {
		if wait > 0 {
			return fmt.Errorf("feed server is rate limiting requests, retry in %s: %w", wait, err)
		}
		return fmt.Errorf("feed server is rate limiting requests, retry later: %w", err)
	}
	if errors.Is(err, feed.ErrIncompatibleServer) {
		return fmt.Errorf("%w; upgrade feedtune", err)
	}
	return err
}

func printSession(w io.Writer, s *feed.Session) {
	fmt.Fprintf(w, "Session %s: %d cards\n\n", s.ID, len(s.Cards))
	for i, c := range s.Cards {
		fmt.Fprintf(w, "%2d. [%s] %s\n", i+1, c.Type().Label(), cardSummary(c))
	}
	if s.HasMore {
		fmt.Fprintf(w, "\nMore available: feedtune feed resume %s\n", s.ID)
	}
}

func cardSummary(c prefs.Card) string {
	switch c := c.(type) {
	case prefs.MCQCard:
		return fmt.Sprintf("%s (%d options)", c.Question, len(c.Options))
	case prefs.FlashcardCard:
		return c.Front
	case prefs.InfoCard:
		return c.Title
	case prefs.ResourceCard:
		return strings.TrimSpace(c.Title + "  " + c.URL)
	}
	return c.CardID()
}
