package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fisheye/pkg/models"
)

func validSubmission() ContactSubmission {
	return ContactSubmission{
		FirstName: "Jean",
		LastName:  "Dupont",
		Email:     "jean.dupont@example.com",
		Message:   "Bonjour, je voudrais discuter d'un shooting.",
	}
}

func TestContactServiceValidate(t *testing.T) {
	service := NewContactService(ContactServiceConfig{})

	t.Run("accepts a valid submission", func(t *testing.T) {
		assert.Empty(t, service.Validate(validSubmission()))
	})

	t.Run("accepts accented and hyphenated names", func(t *testing.T) {
		submission := validSubmission()
		submission.FirstName = "Ellie-Rose"
		submission.LastName = "Wïlkens"

		assert.Empty(t, service.Validate(submission))
	})

	t.Run("rejects a one-letter first name", func(t *testing.T) {
		submission := validSubmission()
		submission.FirstName = "J"

		problems := service.Validate(submission)
		assert.Contains(t, problems, "firstName")
	})

	t.Run("rejects an empty last name", func(t *testing.T) {
		submission := validSubmission()
		submission.LastName = "   "

		problems := service.Validate(submission)
		assert.Contains(t, problems, "lastName")
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		for _, bad := range []string{"nope", "nope@", "@example.com", "a b@example.com", "a@example"} {
			submission := validSubmission()
			submission.Email = bad

			problems := service.Validate(submission)
			assert.Contains(t, problems, "email", "email %q should fail", bad)
		}
	})

	t.Run("rejects a short message", func(t *testing.T) {
		submission := validSubmission()
		submission.Message = "Salut    "

		problems := service.Validate(submission)
		assert.Contains(t, problems, "message")
	})

	t.Run("reports every failing field", func(t *testing.T) {
		problems := service.Validate(ContactSubmission{})
		assert.Len(t, problems, 4)
	})
}

func TestContactServiceSubmit(t *testing.T) {
	photographer := models.Photographer{ID: 82, Name: "Mimi Keel"}

	t.Run("rejects an invalid submission", func(t *testing.T) {
		service := NewContactService(ContactServiceConfig{})
		assert.Error(t, service.Submit(photographer, ContactSubmission{}))
	})

	t.Run("logs without sending when no email key is configured", func(t *testing.T) {
		service := NewContactService(ContactServiceConfig{})
		assert.NoError(t, service.Submit(photographer, validSubmission()))
	})
}
