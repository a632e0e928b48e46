package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"mdt-records-be/pkg/lookup"
	"mdt-records-be/pkg/reactive"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type probeFlags struct {
	baseURL string
	token   string
	kind    string
	limit   int
}

func (f *probeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.baseURL, "url", envOr("MDT_API_URL", "http://localhost:3000"), "records API base URL")
	cmd.Flags().StringVar(&f.token, "token", os.Getenv("MDT_TOKEN"), "bearer token")
	cmd.Flags().StringVar(&f.kind, "kind", "citizen", "lookup kind (citizen, officer)")
	cmd.Flags().IntVar(&f.limit, "limit", 10, "maximum candidates")
}

func lookupCmd() *cobra.Command {
	var f probeFlags
	cmd := &cobra.Command{
		Use:   "lookup [query]",
		Short: "Send a single lookup and print the candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := lookup.NewClient(f.baseURL, f.token)
			start := time.Now()
			got, err := client.Lookup(cmd.Context(), f.kind, args[0], f.limit)
			if err != nil {
				return fmt.Errorf("lookup failed: %w", err)
			}
			fmt.Printf("%s %d candidates in %s\n", color.New(color.FgGreen).Sprint("✓"), len(got), time.Since(start).Round(time.Millisecond))
			printCandidates(got)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func typeCmd() *cobra.Command {
	var (
		f          probeFlags
		minLength  int
		debounce   time.Duration
		keystroke  time.Duration
		settleWait time.Duration
		resend     bool
	)
	cmd := &cobra.Command{
		Use:   "type [text...]",
		Short: "Type text one rune at a time into a search session",
		Long: `Each argument is typed rune by rune with --keystroke between runes,
then the probe waits --settle for the session to go quiet. Several arguments
simulate the user clearing the field and typing again.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			client := lookup.NewClient(f.baseURL, f.token)
			printer := &snapshotPrinter{started: time.Now()}

			session := reactive.NewSession(f.kind, client.Func(f.kind, f.limit), reactive.SessionConfig{
				MinLength:     minLength,
				Debounce:      debounce,
				SkipIdentical: !resend,
			},
				reactive.WithSessionContext(ctx),
				reactive.WithSessionListener(printer.print),
				reactive.WithSessionErrorReporter(printer.report),
			)
			defer session.Dispose()

			for _, text := range args {
				if err := typeText(ctx, session, text, keystroke); err != nil {
					return err
				}
				if err := sleep(ctx, settleWait); err != nil {
					return err
				}
				session.SetQuery("")
			}

			final := session.Snapshot()
			fmt.Printf("\n%s last token=%d revision=%d\n", color.New(color.FgCyan).Sprint("done"), final.Token, final.Revision)
			return nil
		},
	}
	f.bind(cmd)
	cmd.Flags().IntVar(&minLength, "min-length", reactive.DefaultMinLength, "minimum query length in runes")
	cmd.Flags().DurationVar(&debounce, "debounce", reactive.DefaultDebounce, "quiet interval before a lookup is sent")
	cmd.Flags().DurationVar(&keystroke, "keystroke", 120*time.Millisecond, "delay between typed runes")
	cmd.Flags().DurationVar(&settleWait, "settle", 2*time.Second, "wait after each text for answers to arrive")
	cmd.Flags().BoolVar(&resend, "resend", false, "send identical queries again")
	return cmd
}

func typeText(ctx context.Context, s *reactive.Session, text string, keystroke time.Duration) error {
	var typed strings.Builder
	for _, r := range text {
		typed.WriteRune(r)
		s.SetQuery(typed.String())
		if err := sleep(ctx, keystroke); err != nil {
			return err
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// snapshotPrinter drops snapshots older than the last one printed, the same
// rule a dashboard applies.
type snapshotPrinter struct {
	mu       sync.Mutex
	started  time.Time
	revision uint64
}

func (p *snapshotPrinter) print(snap reactive.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if snap.Revision <= p.revision {
		return
	}
	p.revision = snap.Revision

	elapsed := time.Since(p.started).Round(time.Millisecond)
	status := statusColor(snap.Status).Sprintf("%-10s", snap.Status)
	fmt.Printf("%8s  %s token=%-3d query=%q", elapsed, status, snap.Token, snap.Query)
	switch {
	case snap.Err != nil:
		fmt.Printf("  %s\n", color.New(color.FgRed).Sprint(snap.Err))
	case snap.Status == reactive.StatusSettled:
		fmt.Printf("  %d results\n", len(snap.Results))
		printCandidates(snap.Results)
	default:
		fmt.Println()
	}
}

func (p *snapshotPrinter) report(source string, err error) {
	fmt.Fprintf(os.Stderr, "%s [%s] %v\n", color.New(color.FgRed).Sprint("error"), source, err)
}

func statusColor(s reactive.Status) *color.Color {
	switch s {
	case reactive.StatusDebouncing:
		return color.New(color.FgYellow)
	case reactive.StatusInFlight:
		return color.New(color.FgBlue)
	case reactive.StatusSettled:
		return color.New(color.FgGreen)
	default:
		return color.New(color.Faint)
	}
}

func printCandidates(cs []reactive.Candidate) {
	for _, c := range cs {
		fmt.Printf("            - %s %s\n", c.Label, color.New(color.Faint).Sprintf("(%s)", c.ID))
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
