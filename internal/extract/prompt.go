package extract

import (
	"fmt"
	"strings"
)

// buildNotesPrompt produces the fixed meeting-secretary instruction. The
// participant hint block is passed verbatim; the model maps "Speaker N"
// labels to the hinted names and must never emit the literals.
func buildNotesPrompt(participantsRaw, transcript string) string {
	var b strings.Builder

	b.WriteString("You are an expert meeting secretary.\n")
	b.WriteString("Here is the context of who was in the meeting:\n")
	b.WriteString(participantsRaw)
	b.WriteString("\nThe transcript below uses \"Speaker 1\", \"Speaker 2\", etc.\n")
	b.WriteString("Your job is to figure out which Speaker matches which Name from the list above.\n")
	b.WriteString("Transcript:\n")
	b.WriteString(transcript)
	b.WriteString("\n---\n")
	b.WriteString("YOUR TASKS:\n")
	b.WriteString("1. RECONSTRUCTION: When writing the notes, DO NOT use \"Speaker 1\". Use their REAL NAMES (e.g., \"John said...\").\n")
	b.WriteString("2. EXTRACTION: Create structured sections exactly as follows:\n")
	b.WriteString("## OVERVIEW ##\n")
	b.WriteString("[Brief summary of WHO met and WHAT was discussed - 2-3 sentences]\n\n")
	b.WriteString("## DISCUSSION ##\n")
	b.WriteString("[Detailed bullet points grouped under ## headers, e.g.:]\n")
	b.WriteString("## Section Title\n")
	b.WriteString("* **Wording & Tone:** John requested avoiding the casual use of \"You are\".\n")
	b.WriteString("(Leave a blank line between sections)\n\n")
	b.WriteString("## NEXT STEPS ##\n")
	b.WriteString("[Specific actions: * **Name:** Action - Deadline]\n\n")
	b.WriteString("## CLIENT REQUESTS ##\n")
	b.WriteString("[Specific questions or requests asked BY the Client]\n")

	return b.String()
}

// buildChatPrompt produces the conversational prompt for questions over the
// meeting content.
func buildChatPrompt(participantsRaw, transcript, question string) string {
	return fmt.Sprintf(`Context: %s
(Use this to map "Speaker X" to real names.)
Transcript: %s
Question: %s
Rules:
1. Be professional and concise.
2. No Speaker IDs: NEVER use "Speaker 1" or "Speaker 2". Use real names.`,
		participantsRaw, transcript, question)
}
