package services

import (
	"strings"

	"github.com/custodia-labs/nlquery/internal/core/ports/driven"
	"github.com/custodia-labs/nlquery/internal/logger"
)

// PromptComposer merges the instructional template with the schema table.
type PromptComposer struct {
	prompts driven.PromptStore
}

// NewPromptComposer creates a composer. A nil store means the embedded
// default template is always used.
func NewPromptComposer(prompts driven.PromptStore) *PromptComposer {
	return &PromptComposer{prompts: prompts}
}

// Compose returns the system instruction for one generation call.
// A template without the placeholder gets the table appended after a
// blank line.
func (c *PromptComposer) Compose(table string) string {
	tmpl := c.template()
	if !strings.Contains(tmpl, driven.SchemaPlaceholder) {
		return strings.TrimRight(tmpl, "\n") + "\n\n" + table
	}
	return strings.Replace(tmpl, driven.SchemaPlaceholder, table, 1)
}

func (c *PromptComposer) template() string {
	if c == nil || c.prompts == nil {
		return driven.DefaultQueryTranslationPrompt
	}
	tmpl, err := c.prompts.Load(driven.PromptQueryTranslation)
	if err != nil || strings.TrimSpace(tmpl) == "" {
		if err != nil {
			logger.Warn("Loading prompt %q failed, using default: %v", driven.PromptQueryTranslation, err)
		}
		return driven.DefaultQueryTranslationPrompt
	}
	return tmpl
}
