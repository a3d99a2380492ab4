package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"meeting-minutes/internal/compose"
	"meeting-minutes/internal/models"
	"meeting-minutes/internal/pipeline"
	"meeting-minutes/internal/publish"
	"meeting-minutes/internal/transcript"
)

func newPublishCommand() *cobra.Command {
	var (
		title        string
		dateStr      string
		timeRange    string
		venue        string
		clientReps   string
		internalReps string
		absent       string
		preparedBy   string

		driveFolder string
		todoTarget  string
		msgTarget   string
		vaultTarget string
	)

	cmd := &cobra.Command{
		Use:   "publish [session]",
		Short: "Compose the minutes document and send it to the selected destinations",
		Long: `Compose the minutes document from an archived session and publish it.

The session argument is an archive handle from "minutes history"; it
defaults to the most recent session. Destinations are cumulative: a drive
folder, a todo item, a message-board post, and a vault document can all be
requested in one run. --date and --prepared-by are required.

Project destinations are given as <project-id>:<tool-id>, for example
--todo 12345:678 posts a task under todo list 678 of project 12345.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			ctx := context.Background()
			session, _, err := loadSession(ctx, app, args)
			if err != nil {
				return err
			}

			fields, err := resolveFields(session, dateStr, timeRange, venue, clientReps, internalReps, absent, preparedBy)
			if err != nil {
				return err
			}
			if title == "" {
				title = session.DetectedTitle
			}
			if title == "" {
				title = app.cfg.Minutes.DefaultTitle
			}

			minutes, err := compose.ComposeMinutes(title, fields, session.Notes)
			if err != nil {
				return err
			}

			targets, err := resolveTargets(minutes.Filename, fields.Date, driveFolder, todoTarget, msgTarget, vaultTarget, title)
			if err != nil {
				return err
			}
			if len(targets) == 0 {
				targets = []publish.Target{publish.FolderUpload{Folder: app.cfg.Drive.MinutesFolder}}
			}

			results := app.publisher.PublishAll(ctx, minutes.Content, minutes.Filename, targets)
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%-8s FAILED: %v\n", r.Destination, r.Err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s ok\n", r.Destination)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d destinations failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "meeting title (default: detected title)")
	cmd.Flags().StringVar(&dateStr, "date", "", "meeting date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&timeRange, "time", "", `time range, e.g. "03:04 PM - 04:10 PM"`)
	cmd.Flags().StringVar(&venue, "venue", "", "meeting venue")
	cmd.Flags().StringVar(&clientReps, "client-reps", "", "client representatives (default: from participant hints)")
	cmd.Flags().StringVar(&internalReps, "internal-reps", "", "internal representatives (default: from participant hints)")
	cmd.Flags().StringVar(&absent, "absent", "", "absent participants")
	cmd.Flags().StringVar(&preparedBy, "prepared-by", "", "preparer name (required)")
	cmd.Flags().StringVar(&driveFolder, "drive-folder", "", "publish into this storage folder")
	cmd.Flags().StringVar(&todoTarget, "todo", "", "publish as a task: <project-id>:<todolist-id>")
	cmd.Flags().StringVar(&msgTarget, "message", "", "publish as a board message: <project-id>:<board-id>")
	cmd.Flags().StringVar(&vaultTarget, "vault", "", "publish as a vault document: <project-id>:<vault-id>")
	return cmd
}

// loadSession restores the named archive entry, or the newest one when no
// handle is given. Returns the archive filename alongside for re-saving.
func loadSession(ctx context.Context, app *app, args []string) (*pipeline.Session, string, error) {
	handle := ""
	name := ""
	if len(args) == 1 {
		handle = args[0]
	}
	entries, err := app.archive.List(ctx)
	if err != nil {
		return nil, "", err
	}
	if handle == "" {
		if len(entries) == 0 {
			return nil, "", fmt.Errorf("no archived sessions; run analyze first")
		}
		handle = entries[0].Handle
		name = entries[0].Name
	} else {
		for _, e := range entries {
			if e.Handle == handle {
				name = e.Name
				break
			}
		}
	}

	record, err := app.archive.Load(ctx, handle)
	if err != nil {
		return nil, "", err
	}
	return pipeline.FromRecord(record), name, nil
}

func resolveFields(session *pipeline.Session, dateStr, timeRange, venue, clientReps, internalReps, absent, preparedBy string) (compose.Fields, error) {
	fields := compose.Fields{
		TimeRange:    timeRange,
		Venue:        venue,
		ClientReps:   clientReps,
		InternalReps: internalReps,
		Absent:       absent,
		PreparedBy:   preparedBy,
	}

	if dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return compose.Fields{}, fmt.Errorf("invalid --date %q: %w", dateStr, err)
		}
		fields.Date = date
	}

	hints := transcript.ParseHints(session.ParticipantHintsRaw)
	if fields.ClientReps == "" {
		fields.ClientReps = strings.Join(transcript.NamesByRole(hints, models.RoleClient), ", ")
	}
	if fields.InternalReps == "" {
		fields.InternalReps = strings.Join(transcript.NamesByRole(hints, models.RoleInternal), ", ")
	}
	return fields, nil
}

func resolveTargets(filename string, date time.Time, driveFolder, todoTarget, msgTarget, vaultTarget, title string) ([]publish.Target, error) {
	var targets []publish.Target
	if driveFolder != "" {
		targets = append(targets, publish.FolderUpload{Folder: driveFolder})
	}

	subject := fmt.Sprintf("Meeting Minutes: %s (%s)", title, date.Format("2006-01-02"))
	if todoTarget != "" {
		projectID, toolID, err := parseProjectTool(todoTarget)
		if err != nil {
			return nil, fmt.Errorf("invalid --todo: %w", err)
		}
		targets = append(targets, publish.TaskItem{
			ProjectID:   projectID,
			ListID:      toolID,
			Title:       subject,
			Description: "Minutes attached.",
		})
	}
	if msgTarget != "" {
		projectID, toolID, err := parseProjectTool(msgTarget)
		if err != nil {
			return nil, fmt.Errorf("invalid --message: %w", err)
		}
		targets = append(targets, publish.DiscussionPost{
			ProjectID: projectID,
			BoardID:   toolID,
			Subject:   subject,
			Body:      "Minutes attached.",
		})
	}
	if vaultTarget != "" {
		projectID, toolID, err := parseProjectTool(vaultTarget)
		if err != nil {
			return nil, fmt.Errorf("invalid --vault: %w", err)
		}
		targets = append(targets, publish.VaultUpload{
			ProjectID: projectID,
			VaultID:   toolID,
			BaseName:  strings.TrimSuffix(filename, ".html"),
			Body:      subject,
		})
	}
	return targets, nil
}

func parseProjectTool(s string) (int64, int64, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected <project-id>:<tool-id>, got %q", s)
	}
	projectID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("project id: %w", err)
	}
	toolID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("tool id: %w", err)
	}
	return projectID, toolID, nil
}
