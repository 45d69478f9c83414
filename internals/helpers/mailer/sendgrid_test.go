package mailer

import (
	"testing"

	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	m := &sendgridMailer{
		key:        "test",
		from:       sgmail.NewEmail("IQRO", "no-reply@iqro.app"),
		subjPrefix: "[IQRO] ",
	}
	v3 := m.build(Message{
		ToName:  "Bu Aisyah",
		ToEmail: "aisyah@example.com",
		Subject: "Reminder Setoran Harian",
		Text:    "Ananda belum setoran hari ini",
	})

	require.Len(t, v3.Personalizations, 1)
	assert.Equal(t, "[IQRO] Reminder Setoran Harian", v3.Personalizations[0].Subject)
	require.Len(t, v3.Personalizations[0].To, 1)
	assert.Equal(t, "aisyah@example.com", v3.Personalizations[0].To[0].Address)
	require.Len(t, v3.Content, 2)
	assert.Equal(t, "<p>Ananda belum setoran hari ini</p>", v3.Content[1].Value)
}

func TestNewFromEnvDisabled(t *testing.T) {
	t.Setenv("SENDGRID_API_KEY", "")
	assert.Nil(t, NewFromEnv())
}
