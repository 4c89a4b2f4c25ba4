package chat

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/diogo/gemvoice/internal/api"
	apierrors "github.com/diogo/gemvoice/internal/errors"
	"github.com/diogo/gemvoice/internal/models"
	"github.com/diogo/gemvoice/internal/transcript"
)

type mockSession struct {
	mu         sync.Mutex
	calls      int
	imageCalls int
	lastPrompt string
	output     *models.ModelOutput
	err        error
	// When set, SendMessage blocks until released
	block chan struct{}
	// Closed once a blocked call has started
	started chan struct{}
}

func (m *mockSession) SendMessage(ctx context.Context, prompt string) (*models.ModelOutput, error) {
	m.mu.Lock()
	m.calls++
	m.lastPrompt = prompt
	block := m.block
	started := m.started
	m.mu.Unlock()

	if block != nil {
		if started != nil {
			close(started)
		}
		<-block
	}
	return m.output, m.err
}

func (m *mockSession) SendMessageWithImages(ctx context.Context, prompt string, images []api.InlineImage) (*models.ModelOutput, error) {
	m.mu.Lock()
	m.imageCalls++
	m.lastPrompt = prompt
	m.mu.Unlock()
	return m.output, m.err
}

func reply(text string) *models.ModelOutput {
	return &models.ModelOutput{Candidates: []models.Candidate{{Text: text}}}
}

func TestSendAppendsUserThenAssistant(t *testing.T) {
	session := &mockSession{output: reply("hi there")}
	store := transcript.NewStore()
	d := NewDispatcher(session, store, nil)

	got, err := d.Send(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got != "hi there" {
		t.Errorf("reply = %q", got)
	}

	records := store.Snapshot()
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Kind != transcript.KindUserText || records[0].Text != "hello" {
		t.Errorf("records[0] = %+v", records[0])
	}
	if records[1].Kind != transcript.KindAssistantText || records[1].Text != "hi there" {
		t.Errorf("records[1] = %+v", records[1])
	}
}

func TestSendEmptyInputIsNoop(t *testing.T) {
	session := &mockSession{output: reply("unused")}
	store := transcript.NewStore()
	d := NewDispatcher(session, store, nil)

	for _, input := range []string{"", "   ", "\t\n  "} {
		got, err := d.Send(context.Background(), input)
		if err != nil {
			t.Errorf("Send(%q) error = %v, want nil", input, err)
		}
		if got != "" {
			t.Errorf("Send(%q) reply = %q, want empty", input, got)
		}
	}

	if session.calls != 0 {
		t.Errorf("session calls = %d, want 0", session.calls)
	}
	if store.Len() != 0 {
		t.Errorf("records = %d, want 0", store.Len())
	}
}

func TestSendFailureKeepsUserRecordOnly(t *testing.T) {
	session := &mockSession{err: errors.New("backend down")}
	store := transcript.NewStore()
	d := NewDispatcher(session, store, nil)

	_, err := d.Send(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}

	records := store.Snapshot()
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].Kind != transcript.KindUserText {
		t.Errorf("surviving record kind = %v", records[0].Kind)
	}
}

func TestSendEmptyReplyIsNoContent(t *testing.T) {
	session := &mockSession{output: reply("  \n")}
	store := transcript.NewStore()
	d := NewDispatcher(session, store, nil)

	_, err := d.Send(context.Background(), "hello")
	if !apierrors.IsNoContent(err) {
		t.Fatalf("error = %v, want ErrNoContent", err)
	}
	if store.Len() != 1 {
		t.Errorf("records = %d, want 1 (user only)", store.Len())
	}
}

func TestSendWhileBusyReturnsErrBusy(t *testing.T) {
	session := &mockSession{
		output:  reply("slow reply"),
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	store := transcript.NewStore()
	d := NewDispatcher(session, store, nil)

	done := make(chan error, 1)
	go func() {
		_, err := d.Send(context.Background(), "first")
		done <- err
	}()

	<-session.started

	// A second send while the first is in flight must be rejected
	// without a call or a record.
	_, err := d.Send(context.Background(), "second")
	if !errors.Is(err, apierrors.ErrBusy) {
		t.Errorf("second Send error = %v, want ErrBusy", err)
	}
	if store.Len() != 1 {
		t.Errorf("records while busy = %d, want 1", store.Len())
	}

	close(session.block)
	if err := <-done; err != nil {
		t.Fatalf("first Send: %v", err)
	}

	if session.calls != 1 {
		t.Errorf("session calls = %d, want 1", session.calls)
	}
	if d.Busy() {
		t.Error("dispatcher should be idle again")
	}
}

func TestRepeatedSendAppendsIndependentPairs(t *testing.T) {
	session := &mockSession{output: reply("same answer")}
	store := transcript.NewStore()
	d := NewDispatcher(session, store, nil)

	for i := 0; i < 2; i++ {
		if _, err := d.Send(context.Background(), "same question"); err != nil {
			t.Fatalf("Send %d: %v", i, err)
		}
	}

	records := store.Snapshot()
	if len(records) != 4 {
		t.Fatalf("records = %d, want 4", len(records))
	}
	wantKinds := []transcript.Kind{
		transcript.KindUserText, transcript.KindAssistantText,
		transcript.KindUserText, transcript.KindAssistantText,
	}
	for i, r := range records {
		if r.Kind != wantKinds[i] {
			t.Errorf("records[%d].Kind = %v, want %v", i, r.Kind, wantKinds[i])
		}
	}
}

func TestSendWithImage(t *testing.T) {
	session := &mockSession{output: reply("a drawing")}
	store := transcript.NewStore()
	d := NewDispatcher(session, store, nil)

	img := []byte{0xFF, 0xD8}
	got, err := d.SendWithImage(context.Background(), "what is this", img, "image/jpeg")
	if err != nil {
		t.Fatalf("SendWithImage: %v", err)
	}
	if got != "a drawing" {
		t.Errorf("reply = %q", got)
	}
	if session.imageCalls != 1 {
		t.Errorf("image calls = %d, want 1", session.imageCalls)
	}

	records := store.Snapshot()
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Kind != transcript.KindImage || records[0].MIME != "image/jpeg" {
		t.Errorf("records[0] = %+v", records[0])
	}
}

func TestSendWithImageEmptyTextIsNoop(t *testing.T) {
	session := &mockSession{output: reply("unused")}
	store := transcript.NewStore()
	d := NewDispatcher(session, store, nil)

	if _, err := d.SendWithImage(context.Background(), "  ", []byte{1}, "image/jpeg"); err != nil {
		t.Fatalf("SendWithImage: %v", err)
	}
	if session.imageCalls != 0 || store.Len() != 0 {
		t.Error("empty prompt with image should be a no-op")
	}
}

func TestBusyClearsAfterFailure(t *testing.T) {
	session := &mockSession{err: errors.New("boom")}
	store := transcript.NewStore()
	d := NewDispatcher(session, store, nil)

	if _, err := d.Send(context.Background(), "one"); err == nil {
		t.Fatal("expected error")
	}
	if d.Busy() {
		t.Error("dispatcher should not stay busy after a failed call")
	}

	// A later send must go through
	session.err = nil
	session.output = reply("recovered")
	if _, err := d.Send(context.Background(), "two"); err != nil {
		t.Fatalf("Send after failure: %v", err)
	}
}
