// Package summary wraps the external generative-language API used to
// summarize note text.
package summary

import "context"

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
