// Package archive persists analysis sessions as JSON records in a dedicated
// storage folder and restores them later. The record format is additive and
// forward-compatible by convention: readers default missing fields, never
// reject them.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"meeting-minutes/internal/common/drive"
	stderrors "meeting-minutes/internal/common/errors"
	"meeting-minutes/internal/common/logger"
	"meeting-minutes/internal/models"
)

// Store is the storage slice the archive needs.
type Store interface {
	ResolveOrCreateFolder(ctx context.Context, name string) (string, error)
	Upload(ctx context.Context, data []byte, filename, folderID string) (string, error)
	List(ctx context.Context, folderID, filter string) ([]drive.File, error)
	Download(ctx context.Context, fileID string) ([]byte, error)
}

// Entry describes one archived session in a listing.
type Entry struct {
	Handle    string
	Name      string
	CreatedAt time.Time
}

type Archive struct {
	store  Store
	folder string
	logger logger.Logger
}

func New(store Store, folder string, log logger.Logger) *Archive {
	return &Archive{
		store:  store,
		folder: folder,
		logger: log.With(map[string]interface{}{"stage": "archive"}),
	}
}

// Save serializes the record and stores it under a name derived from the
// source filename and date, so unrelated sessions never overwrite each
// other. Returns the storage handle.
func (a *Archive) Save(ctx context.Context, record models.SessionRecord, sourceName string) (string, error) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", stderrors.NewArchiveSaveFailedError(err)
	}

	folderID, err := a.store.ResolveOrCreateFolder(ctx, a.folder)
	if err != nil {
		return "", stderrors.NewArchiveSaveFailedError(err)
	}

	name := recordName(sourceName, record.CreatedAt)
	handle, err := a.store.Upload(ctx, data, name, folderID)
	if err != nil {
		return "", stderrors.NewArchiveSaveFailedError(err)
	}

	a.logger.Info("session archived", map[string]interface{}{"name": name, "handle": handle})
	return handle, nil
}

// List returns archived sessions, newest first.
func (a *Archive) List(ctx context.Context) ([]Entry, error) {
	folderID, err := a.store.ResolveOrCreateFolder(ctx, a.folder)
	if err != nil {
		return nil, stderrors.NewArchiveLoadFailedError(err)
	}

	files, err := a.store.List(ctx, folderID, "")
	if err != nil {
		return nil, stderrors.NewArchiveLoadFailedError(err)
	}

	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		entries = append(entries, Entry{Handle: f.ID, Name: f.Name, CreatedAt: f.CreatedAt})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })
	return entries, nil
}

// Load restores one archived session. Missing optional fields (chat history
// on older records, detected title) default to empty.
func (a *Archive) Load(ctx context.Context, handle string) (models.SessionRecord, error) {
	data, err := a.store.Download(ctx, handle)
	if err != nil {
		return models.SessionRecord{}, stderrors.NewArchiveLoadFailedError(err)
	}
	return Decode(data)
}

// wireRecord tolerates older layouts: date may be a non-RFC3339 string and
// optional keys may be absent entirely.
type wireRecord struct {
	Notes         models.MeetingNotes  `json:"ai_results"`
	Participants  string               `json:"participants"`
	ChatHistory   []models.ChatMessage `json:"chat_history"`
	Date          string               `json:"date"`
	DetectedTitle string               `json:"detected_title"`
}

// Decode deserializes an archive record defensively.
func Decode(data []byte) (models.SessionRecord, error) {
	var wire wireRecord
	if err := json.Unmarshal(data, &wire); err != nil {
		return models.SessionRecord{}, stderrors.NewArchiveLoadFailedError(err)
	}

	record := models.SessionRecord{
		Notes:               wire.Notes,
		ParticipantHintsRaw: wire.Participants,
		ChatHistory:         wire.ChatHistory,
		DetectedTitle:       wire.DetectedTitle,
	}
	if wire.ChatHistory == nil {
		record.ChatHistory = []models.ChatMessage{}
	}
	record.CreatedAt = parseRecordTime(wire.Date)
	return record, nil
}

// parseRecordTime accepts both RFC3339 and the looser layouts older records
// used; unparseable dates default to zero rather than erroring.
func parseRecordTime(s string) time.Time {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// SourceNameOf recovers the source name embedded in an archive filename,
// so a reloaded session can be re-archived under the same name. Unrecognized
// names are returned as-is, minus the extension.
func SourceNameOf(name string) string {
	base := strings.TrimSuffix(name, ".json")
	base = strings.TrimPrefix(base, "Data_")
	if i := strings.LastIndex(base, "_"); i > 0 {
		suffix := base[i+1:]
		if _, err := time.Parse("20060102", suffix); err == nil {
			return base[:i]
		}
	}
	return base
}

// recordName derives the deterministic archive filename.
func recordName(sourceName string, createdAt time.Time) string {
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	base := strings.TrimSpace(sourceName)
	if base == "" {
		base = "session"
	}
	return fmt.Sprintf("Data_%s_%s.json", base, createdAt.Format("20060102"))
}
