// Package chat turns user prompts into model calls and transcript records.
package chat

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/diogo/gemvoice/internal/api"
	"github.com/diogo/gemvoice/internal/config"
	apierrors "github.com/diogo/gemvoice/internal/errors"
	"github.com/diogo/gemvoice/internal/models"
	"github.com/diogo/gemvoice/internal/transcript"
)

// Session is the conversation surface the dispatcher drives
type Session interface {
	SendMessage(ctx context.Context, prompt string) (*models.ModelOutput, error)
	SendMessageWithImages(ctx context.Context, prompt string, images []api.InlineImage) (*models.ModelOutput, error)
}

// Dispatcher issues at most one request at a time. A prompt produces the
// user record before the call is awaited and the assistant record only
// after a successful reply; a failed call leaves just the user record.
type Dispatcher struct {
	session Session
	store   *transcript.Store
	persona *config.Persona
	busy    atomic.Bool
}

// NewDispatcher creates a dispatcher. persona may be nil.
func NewDispatcher(session Session, store *transcript.Store, persona *config.Persona) *Dispatcher {
	return &Dispatcher{
		session: session,
		store:   store,
		persona: persona,
	}
}

// Busy reports whether a request is currently in flight
func (d *Dispatcher) Busy() bool {
	return d.busy.Load()
}

// Store returns the transcript store the dispatcher appends to
func (d *Dispatcher) Store() *transcript.Store {
	return d.store
}

// Send dispatches a text prompt. Empty or whitespace-only input is a
// no-op: no record, no call, nil error. Returns the assistant reply text
// on success.
func (d *Dispatcher) Send(ctx context.Context, text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", nil
	}

	if !d.busy.CompareAndSwap(false, true) {
		return "", apierrors.ErrBusy
	}
	defer d.busy.Store(false)

	d.store.Append(transcript.UserText(trimmed))

	output, err := d.session.SendMessage(ctx, config.FormatPrompt(d.persona, trimmed))
	if err != nil {
		return "", err
	}

	reply := output.Text()
	if strings.TrimSpace(reply) == "" {
		return "", apierrors.ErrNoContent
	}

	d.store.Append(transcript.AssistantText(reply))
	return reply, nil
}

// SendWithImage dispatches a prompt carrying an attached image. The
// exchange follows the same record and error rules as Send; the image
// travels inline with the prompt.
func (d *Dispatcher) SendWithImage(ctx context.Context, text string, image []byte, mime string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", nil
	}

	if !d.busy.CompareAndSwap(false, true) {
		return "", apierrors.ErrBusy
	}
	defer d.busy.Store(false)

	d.store.Append(transcript.UserImage(trimmed, image, mime))

	images := []api.InlineImage{{Data: image, MIME: mime}}
	output, err := d.session.SendMessageWithImages(ctx, config.FormatPrompt(d.persona, trimmed), images)
	if err != nil {
		return "", err
	}

	reply := output.Text()
	if strings.TrimSpace(reply) == "" {
		return "", apierrors.ErrNoContent
	}

	d.store.Append(transcript.AssistantText(reply))
	return reply, nil
}
