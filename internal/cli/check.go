package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/passage/internal/presentation/markdown"
	"github.com/aretw0/passage/internal/presentation/tui"
	"github.com/aretw0/passage/pkg/domain"
)

// ErrQueryRejected is returned after a rejected query has already been reported to the user.
var ErrQueryRejected = errors.New("query rejected")

// Requirer answers trip queries.
type Requirer interface {
	GetRequirements(ctx context.Context, from, to string, duration any, purpose string) domain.Result
}

// CheckOptions are the inputs of the check command.
type CheckOptions struct {
	From    string
	To      string
	Days    string
	Purpose string
	JSON    bool
}

// Check answers one trip query and writes the result to w, as JSON or as rendered Markdown.
func Check(ctx context.Context, svc Requirer, opts CheckOptions, w io.Writer) error {
	res := svc.GetRequirements(ctx, opts.From, opts.To, opts.Days, opts.Purpose)

	if opts.JSON {
		if err := writeJSON(w, res); err != nil {
			return err
		}
	} else {
		var md string
		if res.OK() {
			md = markdown.Report(res.Report)
		} else {
			md = markdown.Error(res.Err)
		}
		if err := render(w, md); err != nil {
			return err
		}
	}

	if !res.OK() {
		return ErrQueryRejected
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func render(w io.Writer, md string) error {
	r, err := tui.NewRenderer(w)
	if err != nil {
		r = tui.Plain
	}
	out, err := r(md)
	if err != nil {
		out = md
	}
	_, err = io.WriteString(w, out)
	return err
}
