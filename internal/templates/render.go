package templates

import (
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)

// Render substitutes {{ key }} tokens in text with values from vars.
// Whitespace around the key is insignificant. Unknown keys render as the
// empty string; a template never errors on a missing variable.
func Render(text string, vars map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(token string) string {
		key := strings.TrimSpace(token[2 : len(token)-2])
		return vars[key]
	})
}

// RenderedMessage is the outcome of rendering one template.
type RenderedMessage struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// RenderMessage renders subject and body against the same variable set.
func RenderMessage(tpl Template, vars map[string]string) RenderedMessage {
	return RenderedMessage{
		Subject: Render(tpl.Subject, vars),
		Body:    Render(tpl.Body, vars),
	}
}
