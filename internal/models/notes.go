package models

// MeetingNotes holds the extracted sections of one analysis run. All fields
// default to empty; each new analysis supersedes the previous notes wholesale.
type MeetingNotes struct {
	Overview       string `json:"overview"`
	Discussion     string `json:"discussion"`
	NextSteps      string `json:"next_steps"`
	ClientRequests string `json:"client_reqs"`
	FullTranscript string `json:"full_transcript"`
}

// Chat message roles.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one entry of the conversation over the meeting content.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
