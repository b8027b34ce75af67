package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/redmonkez12/carbon-tracker/internal/logging"
)

const loginCodeSubject = "Your Login Code for Carbon Tracker"

type Service struct {
	sender Sender
}

func NewService(sender Sender) *Service {
	return &Service{sender: sender}
}

// SendLoginCode e-mails a one-time login code to the user
func (s *Service) SendLoginCode(ctx context.Context, toEmail, code string, ttl time.Duration) error {
	logger := logging.GetLoggerFromContext(ctx)

	body, err := renderLoginCodeTemplate(code, ttl)
	if err != nil {
		logger.Error("failed to render login code template", "error", err)
		return fmt.Errorf("render template: %w", err)
	}

	if err := s.sender.Send(ctx, toEmail, loginCodeSubject, body); err != nil {
		logger.Error("failed to send login code email", "email", toEmail, "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	logger.Info("login code email sent", "email", toEmail)
	return nil
}

var loginCodeTemplate = template.Must(template.New("loginCode").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            background-color: #2E7D32;
            color: white;
            padding: 20px;
            text-align: center;
            border-radius: 5px 5px 0 0;
        }
        .content {
            background-color: #f9f9f9;
            padding: 30px;
            border-radius: 0 0 5px 5px;
        }
        .code {
            font-size: 32px;
            letter-spacing: 6px;
            font-weight: bold;
            text-align: center;
            margin: 20px 0;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Carbon Tracker</h1>
    </div>
    <div class="content">
        <p>Your One-Time Password is: <b>{{.Code}}</b></p>
        <div class="code">{{.Code}}</div>
        <p>It will expire in {{.Minutes}} minutes.</p>
        <p style="margin-top: 30px;">If you didn't try to sign in, you can safely ignore this email.</p>
    </div>
</body>
</html>
`))

func renderLoginCodeTemplate(code string, ttl time.Duration) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Code    string
		Minutes int
	}{
		Code:    code,
		Minutes: int(ttl.Minutes()),
	}

	if err := loginCodeTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
