package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSubstitutesVariables(t *testing.T) {
	vars := map[string]string{
		"client.name":    "Acme Studio",
		"invoice.number": "INV-042",
		"invoice.amount": "$1,500.00",
	}

	got := Render("Hi {{client.name}}, invoice {{invoice.number}} for {{invoice.amount}} is due.", vars)
	assert.Equal(t, "Hi Acme Studio, invoice INV-042 for $1,500.00 is due.", got)
}

func TestRenderIgnoresWhitespaceAroundKeys(t *testing.T) {
	vars := map[string]string{"client.name": "Acme"}

	for _, text := range []string{
		"{{client.name}}",
		"{{ client.name }}",
		"{{  client.name}}",
		"{{client.name   }}",
	} {
		assert.Equal(t, "Acme", Render(text, vars), "input %q", text)
	}
}

func TestRenderBlanksUnknownKeys(t *testing.T) {
	got := Render("Hello {{client.contact_name}}{{ no.such.key }}!", map[string]string{
		"client.contact_name": "Dana",
	})
	assert.Equal(t, "Hello Dana!", got)
}

func TestRenderLeavesPlainTextAlone(t *testing.T) {
	text := "No placeholders here, just braces } and { on their own."
	assert.Equal(t, text, Render(text, nil))
}

func TestRenderIsIdempotentOnResolvedText(t *testing.T) {
	vars := map[string]string{"invoice.number": "INV-7"}
	once := Render("Re: {{invoice.number}}", vars)
	assert.Equal(t, once, Render(once, vars))
}

func TestRenderMessageUsesOneVariableSet(t *testing.T) {
	tpl := Template{
		Subject: "Invoice {{invoice.number}} is {{invoice.days_overdue}} days overdue",
		Body:    "Hi {{client.contact_name}}, please settle {{invoice.number}}.",
	}
	msg := RenderMessage(tpl, map[string]string{
		"invoice.number":       "INV-9",
		"invoice.days_overdue": "14",
		"client.contact_name":  "Sam",
	})

	assert.Equal(t, "Invoice INV-9 is 14 days overdue", msg.Subject)
	assert.Equal(t, "Hi Sam, please settle INV-9.", msg.Body)
}
