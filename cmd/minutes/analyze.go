package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

func newAnalyzeCommand() *cobra.Command {
	var (
		participants     string
		participantsFile string
	)

	cmd := &cobra.Command{
		Use:   "analyze <media-file>",
		Short: "Transcribe a recording and extract structured meeting notes",
		Long: `Transcribe a meeting recording with speaker diarization, extract the
four note sections, and archive the session for later publishing and chat.

Participants are optional hints, one per line in the form "Name (Client)"
or "Name (Internal)".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			hints, err := resolveParticipants(participants, participantsFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			onProgress := func(pct int) {
				fmt.Fprintf(cmd.OutOrStdout(), "\rTranscribing... %d%%", pct)
			}
			result, err := app.analyzer.Run(ctx, args[0], hints, onProgress)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Detected title: %s\n", result.Metadata.Title)
			if result.Metadata.Venue != "" {
				fmt.Fprintf(out, "Detected venue: %s\n", result.Metadata.Venue)
			}
			fmt.Fprintf(out, "Time range:     %s\n", result.Metadata.TimeRange())
			fmt.Fprintln(out)
			printSection(out, "Overview", result.Session.Notes.Overview)
			printSection(out, "Discussion", result.Session.Notes.Discussion)
			printSection(out, "Next Steps", result.Session.Notes.NextSteps)
			printSection(out, "Client Requests", result.Session.Notes.ClientRequests)
			return nil
		},
	}

	cmd.Flags().StringVar(&participants, "participants", "", "participant hints, newline or semicolon separated")
	cmd.Flags().StringVar(&participantsFile, "participants-file", "", "file with participant hints, one per line")
	return cmd
}

func resolveParticipants(inline, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read participants file: %w", err)
		}
		return string(data), nil
	}
	// Semicolons let hints be passed on a single shell line.
	return strings.ReplaceAll(inline, ";", "\n"), nil
}

func printSection(out io.Writer, name, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	fmt.Fprintf(out, "## %s\n%s\n\n", name, strings.TrimSpace(body))
}
