package publish

// Target is the tagged variant describing where an artifact is published.
// Each variant owns exactly the identifiers its posting shape requires, so
// invalid field combinations cannot be expressed.
type Target interface {
	destination() string
}

// FolderUpload publishes into a named folder of the file storage service.
type FolderUpload struct {
	Folder string
}

// TaskItem publishes as a task under a todo list, with the artifact
// embedded as an attachment in the description.
type TaskItem struct {
	ProjectID   int64
	ListID      int64
	Title       string
	Description string
}

// DiscussionPost publishes as a message on a message board.
type DiscussionPost struct {
	ProjectID int64
	BoardID   int64
	Subject   string
	Body      string
}

// VaultUpload files the artifact into a document vault.
type VaultUpload struct {
	ProjectID int64
	VaultID   int64
	BaseName  string
	Body      string
}

func (FolderUpload) destination() string   { return "folder" }
func (TaskItem) destination() string       { return "todo" }
func (DiscussionPost) destination() string { return "message" }
func (VaultUpload) destination() string    { return "vault" }
