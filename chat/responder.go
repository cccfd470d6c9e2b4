package chat

import "context"

// Responder produces the assistant reply for one chat turn. prompt is the
// raw user input; dataContext is the stage-specific reference block.
type Responder interface {
	Respond(ctx context.Context, prompt, dataContext string) (string, error)
}

// Echo is the no-credential fallback: it returns the input verbatim with
// a marker prefix so users can tell no model is attached.
type Echo struct{}

func (Echo) Respond(_ context.Context, prompt, _ string) (string, error) {
	return "[echo] " + prompt, nil
}
