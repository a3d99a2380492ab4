package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"meeting-minutes/internal/archive"
	"meeting-minutes/internal/compose"
	"meeting-minutes/internal/publish"
)

func newChatCommand() *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "chat <question>",
		Short: "Ask a question about an analyzed meeting",
		Long: `Answer a question over the transcript of an archived session, streaming
the response as it is generated. The exchange is appended to the session's
chat history and the archive record is updated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			ctx := context.Background()
			var handleArgs []string
			if session != "" {
				handleArgs = []string{session}
			}
			sess, name, err := loadSession(ctx, app, handleArgs)
			if err != nil {
				return err
			}

			onChunk := func(chunk string) {
				fmt.Fprint(cmd.OutOrStdout(), chunk)
			}
			if _, err := sess.Chat(ctx, app.extractor, args[0], onChunk); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())

			// Persist the extended history under the session's original name.
			if _, err := app.archive.Save(ctx, sess.Record(), archive.SourceNameOf(name)); err != nil {
				app.log.Warn("chat history save failed", map[string]interface{}{"error": err.Error()})
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "archive handle (default: most recent session)")
	return cmd
}

func newExportChatCommand() *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "export-chat",
		Short: "Export a session's chat history as a document to storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			ctx := context.Background()
			var handleArgs []string
			if session != "" {
				handleArgs = []string{session}
			}
			sess, _, err := loadSession(ctx, app, handleArgs)
			if err != nil {
				return err
			}
			if len(sess.ChatHistory) == 0 {
				return fmt.Errorf("session has no chat history")
			}

			doc := compose.ComposeChatExport(sess.DetectedTitle, sess.ChatHistory)
			target := publish.FolderUpload{Folder: app.cfg.Drive.ChatFolder}
			if err := app.publisher.Publish(ctx, doc.Content, doc.Filename, target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to folder %q\n", doc.Filename, app.cfg.Drive.ChatFolder)
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "archive handle (default: most recent session)")
	return cmd
}
