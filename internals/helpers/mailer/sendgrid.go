package mailer

import (
	"fmt"
	"log"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"iqro_backend/internals/configs"
)

var (
	host     = "https://api.sendgrid.com"
	endpoint = "/v3/mail/send"
)

type Message struct {
	ToName  string
	ToEmail string
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(msg Message) error
}

type sendgridMailer struct {
	key        string
	from       *sgmail.Email
	subjPrefix string
}

// NewFromEnv: nil kalau SENDGRID_API_KEY kosong (email dinonaktifkan).
func NewFromEnv() Mailer {
	key := configs.GetEnv("SENDGRID_API_KEY")
	if key == "" {
		log.Println("⚠️ SENDGRID_API_KEY kosong, email notifikasi dinonaktifkan")
		return nil
	}
	appName := configs.GetEnv("APP_NAME", "IQRO")
	return &sendgridMailer{
		key:        key,
		from:       sgmail.NewEmail(appName, configs.GetEnv("MAIL_FROM", "no-reply@iqro.app")),
		subjPrefix: "[" + appName + "] ",
	}
}

func (m *sendgridMailer) build(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = m.subjPrefix + msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToEmail))

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)

	html := msg.HTML
	if html == "" {
		html = "<p>" + msg.Text + "</p>"
	}
	v3.AddContent(
		sgmail.NewContent("text/plain", msg.Text),
		sgmail.NewContent("text/html", html),
	)
	return v3
}

func (m *sendgridMailer) Send(msg Message) error {
	req := sendgrid.GetRequest(m.key, endpoint, host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m.build(msg))

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}
