package tts

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apierrors "github.com/diogo/gemvoice/internal/errors"
)

func TestSynthesizeSuccess(t *testing.T) {
	audioBody := []byte("ID3\x04\x00fake mpeg frames")

	var gotPath, gotAuth, gotContentType string
	var gotBody map[string]string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.WriteHeader(http.StatusOK)
		w.Write(audioBody)
	}))
	defer ts.Close()

	client, err := NewElevenLabs("test-key", WithBaseURL(ts.URL))
	if err != nil {
		t.Fatalf("NewElevenLabs: %v", err)
	}

	src, err := client.Synthesize(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	if gotPath != "/v1/text-to-speech" {
		t.Errorf("request path = %q, want /v1/text-to-speech", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want Bearer test-key", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotBody["text"] != "hello world" {
		t.Errorf("body text = %q, want %q", gotBody["text"], "hello world")
	}

	if src.Len() != len(audioBody) {
		t.Fatalf("source Len = %d, want %d", src.Len(), len(audioBody))
	}
	// The buffered source must return the body bytes unchanged for any range
	for _, r := range [][2]int{{0, src.Len()}, {0, 4}, {3, 9}, {src.Len(), src.Len()}} {
		got, err := src.ReadRange(r[0], r[1])
		if err != nil {
			t.Fatalf("ReadRange(%d, %d): %v", r[0], r[1], err)
		}
		if string(got) != string(audioBody[r[0]:r[1]]) {
			t.Errorf("ReadRange(%d, %d) mismatch", r[0], r[1])
		}
	}
}

func TestSynthesizeNon200(t *testing.T) {
	const errBody = `{"detail":{"status":"invalid_api_key"}}`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, errBody)
	}))
	defer ts.Close()

	client, _ := NewElevenLabs("bad-key", WithBaseURL(ts.URL))

	src, err := client.Synthesize(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error on 401")
	}
	if src != nil {
		t.Error("no source should be returned on error")
	}

	if got := apierrors.GetHTTPStatus(err); got != http.StatusUnauthorized {
		t.Errorf("GetHTTPStatus = %d, want 401", got)
	}
	if got := apierrors.GetResponseBody(err); got != errBody {
		t.Errorf("GetResponseBody = %q, want %q", got, errBody)
	}
}

func TestSynthesizeTransportError(t *testing.T) {
	// Point at a server that is already closed
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	client, _ := NewElevenLabs("key", WithBaseURL(ts.URL))

	_, err := client.Synthesize(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected transport error")
	}
	if !apierrors.IsNetworkError(err) {
		t.Errorf("expected NetworkError, got %T: %v", err, err)
	}
}

func TestSynthesizeEmptyText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be issued for empty text")
	}))
	defer ts.Close()

	client, _ := NewElevenLabs("key", WithBaseURL(ts.URL))

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := client.Synthesize(context.Background(), text); err == nil {
			t.Errorf("Synthesize(%q) should fail", text)
		}
	}
}

func TestNewElevenLabsRequiresKey(t *testing.T) {
	if _, err := NewElevenLabs(""); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestSynthesizeLargeBody(t *testing.T) {
	big := strings.Repeat("abcdefgh", 16*1024) // 128 KiB

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, big)
	}))
	defer ts.Close()

	client, _ := NewElevenLabs("key", WithBaseURL(ts.URL))
	src, err := client.Synthesize(context.Background(), "long reply")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if src.Len() != len(big) {
		t.Errorf("Len = %d, want %d", src.Len(), len(big))
	}
}
