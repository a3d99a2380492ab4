// Package compose merges manually entered fields with the extracted note
// fields into the populated minutes template, and renders chat-log exports.
package compose

import (
	"fmt"
	"html"
	"strings"
	"time"

	stderrors "meeting-minutes/internal/common/errors"
	"meeting-minutes/internal/markdown"
	"meeting-minutes/internal/models"
)

// Fields are the manually entered (or metadata-prefilled, then edited)
// values of the minutes header.
type Fields struct {
	Date         time.Time
	TimeRange    string
	Venue        string
	ClientReps   string
	InternalReps string
	Absent       string
	PreparedBy   string
}

// Minutes is the composed artifact plus its deterministic filename.
type Minutes struct {
	Filename string
	Content  []byte
}

var renderer = markdown.HTMLRenderer{}

// ComposeMinutes validates the required manual fields and produces the
// populated minutes document. Validation happens before any compilation so
// precondition violations never reach an external call.
func ComposeMinutes(title string, fields Fields, notes models.MeetingNotes) (*Minutes, error) {
	if fields.Date.IsZero() {
		return nil, stderrors.NewMissingRequiredFieldError("date")
	}
	if strings.TrimSpace(fields.PreparedBy) == "" {
		return nil, stderrors.NewMissingRequiredFieldError("prepared_by")
	}
	if title == "" {
		title = "Meeting"
	}

	date := fields.Date.Format("2006-01-02")

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&b, "<meta charset=\"utf-8\">\n<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>Minutes Of Meeting - %s</h1>\n", html.EscapeString(title))

	// header table
	b.WriteString("<table border=\"1\">\n")
	headerRow(&b, "Date", date)
	headerRow(&b, "Time", fields.TimeRange)
	headerRow(&b, "Venue", fields.Venue)
	headerRow(&b, "Client Representatives", fields.ClientReps)
	headerRow(&b, "Internal Representatives", fields.InternalReps)
	headerRow(&b, "Absent", fields.Absent)
	b.WriteString("</table>\n")

	// content sections; overview stays plain, the rest goes through the
	// markdown compiler
	section(&b, "Overview", "<p>"+html.EscapeString(notes.Overview)+"</p>\n")
	section(&b, "Discussion", renderer.RenderFragment(markdown.Parse(notes.Discussion)))
	section(&b, "Next Steps", renderer.RenderFragment(markdown.Parse(notes.NextSteps)))
	if strings.TrimSpace(notes.ClientRequests) != "" {
		section(&b, "Client Requests", renderer.RenderFragment(markdown.Parse(notes.ClientRequests)))
	}

	fmt.Fprintf(&b, "<p>Meeting adjourned at %s</p>\n", html.EscapeString(adjournedAt(fields.TimeRange)))
	fmt.Fprintf(&b, "<p>Prepared by: %s</p>\n", html.EscapeString(fields.PreparedBy))
	b.WriteString("</body>\n</html>\n")

	return &Minutes{
		Filename: fmt.Sprintf("%s_%s.html", title, date),
		Content:  []byte(b.String()),
	}, nil
}

func headerRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "<tr><td><strong>%s</strong></td><td>%s</td></tr>\n",
		html.EscapeString(label), html.EscapeString(value))
}

func section(b *strings.Builder, heading, body string) {
	fmt.Fprintf(b, "<h2>%s</h2>\n", html.EscapeString(heading))
	b.WriteString(body)
}

// adjournedAt takes the end of a "start - end" time range, or "Unknown".
func adjournedAt(timeRange string) string {
	parts := strings.SplitN(timeRange, "-", 2)
	if len(parts) != 2 {
		return "Unknown"
	}
	end := strings.TrimSpace(parts[1])
	if end == "" {
		return "Unknown"
	}
	return end
}

// ComposeChatExport renders the chat transcript as a standalone document,
// with each message body compiled through the full markdown renderer.
func ComposeChatExport(title string, history []models.ChatMessage) *Minutes {
	docTitle := fmt.Sprintf("Chat Log - %s", time.Now().Format("2006-01-02"))

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&b, "<meta charset=\"utf-8\">\n<title>%s</title>\n", html.EscapeString(docTitle))
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(docTitle))

	for _, msg := range history {
		role := "User"
		if msg.Role == models.ChatRoleAssistant {
			role = "AI"
		}
		fmt.Fprintf(&b, "<p><strong>%s:</strong></p>\n", role)
		b.WriteString(renderer.RenderFragment(markdown.Parse(msg.Content)))
		b.WriteString("<hr>\n")
	}
	b.WriteString("</body>\n</html>\n")

	if title == "" {
		title = "Log"
	}
	return &Minutes{
		Filename: fmt.Sprintf("Chat_%s.html", title),
		Content:  []byte(b.String()),
	}
}
