// Package scenario asks a language model to imagine the object described by a
// card.
package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"things_future/prompts"
	"things_future/session"
	"things_future/words"
)

// ErrDisabled is returned when no model is configured.
var ErrDisabled = errors.New("scenario writer disabled")

// Model generates text for a prompt.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Scenario is the model's reading of one card.
type Scenario struct {
	Title           string   `json:"title"`
	Story           string   `json:"story"`
	Questions       []string `json:"questions"`
	BackgroundColor string   `json:"background_color"`
}

// Writer turns selections into scenarios. A nil Model disables it.
type Writer struct {
	Model Model
}

// Enabled reports whether a model is configured.
func (w *Writer) Enabled() bool {
	return w != nil && w.Model != nil
}

// Write asks the model about sel, retrying once if the reply is not JSON.
func (w *Writer) Write(ctx context.Context, sel session.Selection) (Scenario, error) {
	if !w.Enabled() {
		return Scenario{}, ErrDisabled
	}
	if !sel.Complete() {
		return Scenario{}, errors.New("selection is incomplete")
	}

	prompt := fmt.Sprintf(prompts.ScenarioPrompt, sel[words.Future], sel[words.Thing], sel[words.Theme])
	reply, err := w.Model.Generate(ctx, prompt)
	if err != nil {
		return Scenario{}, errors.Wrap(err, "generate scenario")
	}

	sc, err := parse(reply)
	if err == nil {
		return sc, nil
	}

	reply, err = w.Model.Generate(ctx, fmt.Sprintf(prompts.JSONRetryPrompt, reply))
	if err != nil {
		return Scenario{}, errors.Wrap(err, "retry scenario")
	}
	sc, err = parse(reply)
	if err != nil {
		return Scenario{}, errors.Wrap(err, "parse scenario")
	}
	return sc, nil
}

// parse unmarshals a reply, which the model sometimes wraps in a markdown fence.
func parse(reply string) (Scenario, error) {
	clean := strings.TrimSpace(reply)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")

	var sc Scenario
	if err := json.Unmarshal([]byte(strings.TrimSpace(clean)), &sc); err != nil {
		return Scenario{}, err
	}
	if sc.Story == "" {
		return Scenario{}, errors.New("scenario has no story")
	}
	return sc, nil
}
