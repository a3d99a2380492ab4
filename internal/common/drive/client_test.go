package drive

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

func TestResolveOrCreateFolder_Existing(t *testing.T) {
	var finds, creates int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v3/files":
			finds++
			assert.Equal(t, "folder", r.URL.Query().Get("type"))
			assert.Equal(t, "Meeting Notes", r.URL.Query().Get("name"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"files": []map[string]string{{"id": "f-1", "name": "Meeting Notes"}},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/v3/files":
			creates++
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	c := NewClient("tok", server.URL, 5*time.Second)

	id, err := c.ResolveOrCreateFolder(context.Background(), "Meeting Notes")
	require.NoError(t, err)
	assert.Equal(t, "f-1", id)
	assert.Zero(t, creates)

	// second resolution hits the cache
	id, err = c.ResolveOrCreateFolder(context.Background(), "Meeting Notes")
	require.NoError(t, err)
	assert.Equal(t, "f-1", id)
	assert.Equal(t, 1, finds)
}

func TestResolveOrCreateFolder_CreatesWhenAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]interface{}{"files": []map[string]string{}})
		case http.MethodPost:
			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "Meeting_Data", payload["name"])
			assert.Equal(t, "folder", payload["type"])
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"id": "f-new"})
		}
	}))
	defer server.Close()

	c := NewClient("tok", server.URL, 5*time.Second)
	id, err := c.ResolveOrCreateFolder(context.Background(), "Meeting_Data")
	require.NoError(t, err)
	assert.Equal(t, "f-new", id)
}

func TestUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/files/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1 << 20))

		var meta struct {
			Name    string   `json:"name"`
			Parents []string `json:"parents"`
		}
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("metadata")), &meta))
		assert.Equal(t, "Minutes_2025-03-10.html", meta.Name)
		assert.Equal(t, []string{"f-1"}, meta.Parents)

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		json.NewEncoder(w).Encode(map[string]string{"id": "uploaded-1"})
	}))
	defer server.Close()

	c := NewClient("tok", server.URL, 5*time.Second)
	id, err := c.Upload(context.Background(), []byte("<html>"), "Minutes_2025-03-10.html", "f-1")
	require.NoError(t, err)
	assert.Equal(t, "uploaded-1", id)
}

func TestList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "f-1", r.URL.Query().Get("parent"))
		assert.Equal(t, "createdTime desc", r.URL.Query().Get("orderBy"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"files": []map[string]string{
				{"id": "a", "name": "Data_x_20250310.json", "createdTime": "2025-03-10T09:00:00Z"},
			},
		})
	}))
	defer server.Close()

	c := NewClient("tok", server.URL, 5*time.Second)
	files, err := c.List(context.Background(), "f-1", "")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a", files[0].ID)
	assert.Equal(t, 2025, files[0].CreatedAt.Year())
}

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/files/a/content", r.URL.Path)
		w.Write([]byte(`{"ai_results": {}}`))
	}))
	defer server.Close()

	c := NewClient("tok", server.URL, 5*time.Second)
	data, err := c.Download(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, `{"ai_results": {}}`, string(data))
}

func TestErrorStatusSurfacesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer server.Close()

	c := NewClient("tok", server.URL, 5*time.Second)

	_, err := c.List(context.Background(), "f-1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.Contains(t, err.Error(), "quota exceeded")
}
