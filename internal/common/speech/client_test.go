package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscribe_PollsUntilDone(t *testing.T) {
	polls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("X-API-Key"))
		switch r.URL.Path {
		case "/v1/speech:longrunningrecognize":
			var payload struct {
				Config RecognitionConfig `json:"config"`
				Audio  struct {
					URI string `json:"uri"`
				} `json:"audio"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "gs://bucket/audio.flac", payload.Audio.URI)
			assert.True(t, payload.Config.Diarization.Enabled)

			json.NewEncoder(w).Encode(map[string]interface{}{"name": "op-1"})

		case "/v1/operations/op-1":
			polls++
			if polls < 3 {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"name": "op-1", "done": false, "progressPercent": polls * 30,
				})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"name": "op-1", "done": true, "progressPercent": 100,
				"response": map[string]interface{}{
					"results": []map[string]interface{}{
						{
							"alternatives": []map[string]interface{}{
								{"transcript": "hello there"},
							},
						},
						{
							"alternatives": []map[string]interface{}{
								{
									"transcript": "",
									"words": []map[string]interface{}{
										{"word": "hello", "speakerTag": 1},
										{"word": "there", "speakerTag": 2},
									},
								},
							},
						},
					},
				},
			})

		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c := NewClient("key", server.URL, time.Millisecond)

	cfg := RecognitionConfig{Encoding: "FLAC", LanguageCode: "en-US"}
	cfg.Diarization.Enabled = true

	var progress []int
	result, err := c.Transcribe(context.Background(), "gs://bucket/audio.flac", cfg, func(p int) {
		progress = append(progress, p)
	})
	require.NoError(t, err)

	// last result's first alternative carries the diarized words
	require.Len(t, result.Words, 2)
	assert.Equal(t, "hello", result.Words[0].Text)
	assert.Equal(t, 1, result.Words[0].SpeakerTag)
	assert.Equal(t, 2, result.Words[1].SpeakerTag)

	// only non-empty transcripts are kept as fallback
	assert.Equal(t, []string{"hello there"}, result.Alternatives)

	assert.Equal(t, []int{30, 60, 100}, progress)
}

func TestTranscribe_OperationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/speech:longrunningrecognize":
			json.NewEncoder(w).Encode(map[string]interface{}{"name": "op-1"})
		default:
			json.NewEncoder(w).Encode(map[string]interface{}{
				"name": "op-1", "done": true,
				"error": map[string]string{"message": "audio too long"},
			})
		}
	}))
	defer server.Close()

	c := NewClient("key", server.URL, time.Millisecond)
	_, err := c.Transcribe(context.Background(), "gs://b/a.flac", RecognitionConfig{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audio too long")
}

func TestStartRecognize_MissingOperationName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{})
	}))
	defer server.Close()

	c := NewClient("key", server.URL, time.Millisecond)
	_, err := c.StartRecognize(context.Background(), "gs://b/a.flac", RecognitionConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no operation name")
}

func TestTranscribe_ContextCancelledBetweenPolls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/speech:longrunningrecognize":
			json.NewEncoder(w).Encode(map[string]interface{}{"name": "op-1"})
		default:
			json.NewEncoder(w).Encode(map[string]interface{}{"name": "op-1", "done": false})
		}
	}))
	defer server.Close()

	c := NewClient("key", server.URL, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := c.Transcribe(ctx, "gs://b/a.flac", RecognitionConfig{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
