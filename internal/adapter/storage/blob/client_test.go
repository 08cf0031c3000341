package blob

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("video bytes"))
	}))
	defer srv.Close()

	client := NewClient("https://supabase.example.com", "sk-test", "previews")

	data, err := client.Fetch(context.Background(), srv.URL+"/out.mp4")
	require.NoError(t, err)
	assert.Equal(t, []byte("video bytes"), data)
}

func TestClient_FetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("expired"))
	}))
	defer srv.Close()

	client := NewClient("https://supabase.example.com", "sk-test", "previews")

	_, err := client.Fetch(context.Background(), srv.URL+"/out.mp4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestClient_Store(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "sk-service", "previews")

	url, err := client.Store(context.Background(), []byte("video bytes"), "video/mp4")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gotPath, "/storage/v1/object/previews/previews/preview_"), "path %s", gotPath)
	assert.True(t, strings.HasSuffix(gotPath, ".mp4"), "path %s", gotPath)
	assert.Equal(t, "Bearer sk-service", gotAuth)
	assert.Equal(t, "video/mp4", gotContentType)
	assert.Equal(t, []byte("video bytes"), gotBody)

	assert.True(t, strings.HasPrefix(url, srv.URL+"/storage/v1/object/public/previews/previews/preview_"), "url %s", url)
	assert.True(t, strings.HasSuffix(url, ".mp4"), "url %s", url)
}

func TestClient_StoreRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("bad key"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "wrong", "previews")

	_, err := client.Store(context.Background(), []byte("x"), "video/mp4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".mp4", extensionFor("video/mp4"))
	assert.Equal(t, ".mp3", extensionFor("audio/mpeg"))
	assert.Equal(t, "", extensionFor("application/octet-stream"))
}
