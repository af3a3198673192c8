package resend

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"

	"github.com/resend/resend-go/v2"
)

const defaultFrom = "onboarding@resend.dev"

type ResendNotifier struct {
	client *resend.Client
	from   string
	email  string
}

// New returns a notifier that mails email. baseURL overrides the Resend API
// endpoint when set.
func New(apiKey, from, email, baseURL string) (*ResendNotifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}
	if email == "" {
		return nil, fmt.Errorf("notify email is required")
	}
	if from == "" {
		from = defaultFrom
	}
	client := resend.NewClient(apiKey)
	if baseURL != "" {
		if err := setBaseURL(client, baseURL); err != nil {
			return nil, err
		}
	}
	return &ResendNotifier{client: client, from: from, email: email}, nil
}

func setBaseURL(c *resend.Client, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid resend base URL: %w", err)
	}
	c.BaseURL = u
	return nil
}

var htmlTemplate = template.Must(template.New("email").Parse(`
<p>The following habit streaks are expiring within the next {{.Hours}} hours:</p>
<ul>
{{range .Habits}}
  <li>{{.}}</li>
{{end}}
</ul>
`))

func (r *ResendNotifier) SendNudge(ctx context.Context, habits []string, hoursTillExpiry int) error {
	data := struct {
		Habits []string
		Hours  int
	}{
		Habits: habits,
		Hours:  hoursTillExpiry,
	}
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    r.from,
		To:      []string{r.email},
		Subject: "Streaks are expiring soon",
		Html:    buf.String(),
	}
	if _, err := r.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}
