// Package publish sends a rendered artifact to heterogeneous destinations:
// a hierarchical-folder file store and a project-management service with
// three structurally different posting shapes.
package publish

import (
	"context"
	"fmt"

	stderrors "meeting-minutes/internal/common/errors"
	"meeting-minutes/internal/common/logger"
	"meeting-minutes/internal/common/metrics"
)

// FolderStore is the folder-sink slice of the storage client.
type FolderStore interface {
	ResolveOrCreateFolder(ctx context.Context, name string) (string, error)
	Upload(ctx context.Context, data []byte, filename, folderID string) (string, error)
}

// ProjectService is the posting slice of the project-management client.
type ProjectService interface {
	UploadAttachment(ctx context.Context, data []byte, filename string) (string, error)
	CreateTodo(ctx context.Context, projectID, listID int64, content, description string) error
	CreateMessage(ctx context.Context, projectID, boardID int64, subject, content string) error
	CreateVaultUpload(ctx context.Context, projectID, vaultID int64, sgid, baseName, content string) error
}

type Publisher struct {
	store    FolderStore
	projects ProjectService
	logger   logger.Logger
}

// Result reports one destination's outcome. Multi-destination publishes are
// reported per destination, never as one aggregate pass/fail.
type Result struct {
	Destination string
	Err         error
}

func NewPublisher(store FolderStore, projects ProjectService, log logger.Logger) *Publisher {
	return &Publisher{
		store:    store,
		projects: projects,
		logger:   log.With(map[string]interface{}{"stage": "publish"}),
	}
}

// Publish sends the artifact to one target. Project-management targets are
// two-phase: the attachment upload must succeed before the record post is
// attempted. Retried publishes may create duplicate records; there is no
// idempotency guarantee.
func (p *Publisher) Publish(ctx context.Context, artifact []byte, filename string, target Target) error {
	err := p.publish(ctx, artifact, filename, target)

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.PublishResults.WithLabelValues(destinationOf(target), status).Inc()
	return err
}

// PublishAll publishes to every target, collecting per-destination results.
func (p *Publisher) PublishAll(ctx context.Context, artifact []byte, filename string, targets []Target) []Result {
	results := make([]Result, 0, len(targets))
	for _, t := range targets {
		err := p.Publish(ctx, artifact, filename, t)
		if err != nil {
			p.logger.Error("publish failed", map[string]interface{}{
				"destination": destinationOf(t),
				"error":       err.Error(),
			})
		} else {
			p.logger.Info("published", map[string]interface{}{
				"destination": destinationOf(t),
				"filename":    filename,
			})
		}
		results = append(results, Result{Destination: destinationOf(t), Err: err})
	}
	return results
}

func (p *Publisher) publish(ctx context.Context, artifact []byte, filename string, target Target) error {
	switch t := target.(type) {
	case FolderUpload:
		folderID, err := p.store.ResolveOrCreateFolder(ctx, t.Folder)
		if err != nil {
			return stderrors.NewStorageUploadFailedError(err)
		}
		if _, err := p.store.Upload(ctx, artifact, filename, folderID); err != nil {
			return stderrors.NewStorageUploadFailedError(err)
		}
		return nil

	case TaskItem:
		sgid, err := p.projects.UploadAttachment(ctx, artifact, filename)
		if err != nil {
			return stderrors.NewAttachmentFailedError(err)
		}
		desc := t.Description + attachmentMarkup(sgid)
		if err := p.projects.CreateTodo(ctx, t.ProjectID, t.ListID, t.Title, desc); err != nil {
			return stderrors.NewPublishFailedError("todo list", err)
		}
		return nil

	case DiscussionPost:
		sgid, err := p.projects.UploadAttachment(ctx, artifact, filename)
		if err != nil {
			return stderrors.NewAttachmentFailedError(err)
		}
		body := t.Body + attachmentMarkup(sgid)
		if err := p.projects.CreateMessage(ctx, t.ProjectID, t.BoardID, t.Subject, body); err != nil {
			return stderrors.NewPublishFailedError("message board", err)
		}
		return nil

	case VaultUpload:
		sgid, err := p.projects.UploadAttachment(ctx, artifact, filename)
		if err != nil {
			return stderrors.NewAttachmentFailedError(err)
		}
		if err := p.projects.CreateVaultUpload(ctx, t.ProjectID, t.VaultID, sgid, t.BaseName, t.Body); err != nil {
			return stderrors.NewPublishFailedError("document vault", err)
		}
		return nil

	default:
		return stderrors.NewInvalidTargetError(fmt.Sprintf("%T", target))
	}
}

// attachmentMarkup embeds an attachment handle via the service's fixed
// inline token.
func attachmentMarkup(sgid string) string {
	return fmt.Sprintf(`<bc-attachment sgid="%s"></bc-attachment>`, sgid)
}

func destinationOf(target Target) string {
	if target == nil {
		return "unknown"
	}
	return target.destination()
}
