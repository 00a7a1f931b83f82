package mailservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTemplate(t *testing.T) {
	tp := NewTemplate()

	data := ContactMessage{
		Name:    "Jane Visitor",
		Email:   "jane@example.com",
		Phone:   "555-0100",
		Message: "Hello there",
	}

	subject, plainBody, htmlBody, err := tp.ParseTemplate("contact_message.html", data)
	assert.NoError(t, err)

	assert.Contains(t, subject.String(), "Jane Visitor")
	assert.Contains(t, plainBody.String(), "jane@example.com")
	assert.Contains(t, plainBody.String(), "Hello there")
	assert.Contains(t, htmlBody.String(), "555-0100")
}

func TestParseTemplateMissing(t *testing.T) {
	tp := NewTemplate()

	_, _, _, err := tp.ParseTemplate("does_not_exist.html", nil)
	assert.Error(t, err)
}
