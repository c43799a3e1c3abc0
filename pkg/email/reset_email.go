package email

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// ResetEmailData carries the values rendered into the password reset email.
type ResetEmailData struct {
	Username string
	Token    string
	TTL      time.Duration
}

var resetEmailTmpl = template.Must(template.New("reset").Parse(`<html>
<body>
  <p>Hi {{.Username}},</p>
  <p>A password reset was requested for your account. Use the token below to
  complete the reset. It expires in {{.Minutes}} minutes.</p>
  <p><code style="font-size:1.2em">{{.Token}}</code></p>
  <p>If you did not request this, you can safely ignore this email.</p>
</body>
</html>`))

// NewResetEmail renders the password reset email for the given recipient.
// The token is a one-time credential; the resulting params must only be
// delivered to the account owner's verified address.
func NewResetEmail(sendTo string, data ResetEmailData) (SendEmailParams, error) {
	var sb strings.Builder
	err := resetEmailTmpl.Execute(&sb, struct {
		Username string
		Token    string
		Minutes  int
	}{
		Username: data.Username,
		Token:    data.Token,
		Minutes:  int(data.TTL.Minutes()),
	})
	if err != nil {
		return SendEmailParams{}, fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}

	return SendEmailParams{
		SendTo:   sendTo,
		Subject:  "Password reset request",
		BodyHTML: sb.String(),
		Tag:      "password-reset",
	}, nil
}
