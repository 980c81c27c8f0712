package notifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"sync"
	"text/template"

	"auction-tracker/utils"

	"github.com/shopspring/decimal"
)

// Mode selects how an EmailNotifier delivers messages
type Mode string

const (
	ModeDevelopment Mode = "development" // render and log only
	ModeTest        Mode = "test"        // simulated delivery, "fail@" recipients fail
	ModeProduction  Mode = "production"  // SMTP delivery
)

// WinnerTemplate is the name of the built-in auction winner message
const WinnerTemplate = "winner"

const winnerBody = `Hello {{.winner_name}},

Congratulations! You won the auction for '{{.item_name}}' with a winning bid of R${{.winning_amount}}.

To complete the purchase, please contact us within 48 hours.

Auction House {{.year}}
`

const simulatedFailurePrefix = "fail@"

// ParseMode validates a configured mode name
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeDevelopment, ModeTest, ModeProduction:
		return m, nil
	}
	return "", fmt.Errorf("unknown notifier mode %q", s)
}

// Result is the outcome of a single delivery attempt
type Result struct {
	Success bool   `json:"success"`
	Mode    Mode   `json:"mode"`
	Error   string `json:"error,omitempty"`
}

// Notifier delivers a templated message to a single recipient
type Notifier interface {
	Notify(ctx context.Context, recipient, subject, tmpl string, data map[string]any) Result
}

// Config holds the delivery settings of an EmailNotifier
type Config struct {
	Mode     Mode
	From     string
	SMTPHost string
	SMTPPort int
	Username string
	Password string
}

// Stats summarizes delivery attempts since the notifier was created
type Stats struct {
	Sent          int     `json:"emails_sent"`
	Failed        int     `json:"emails_failed"`
	TotalAttempts int     `json:"total_attempts"`
	SuccessRate   float64 `json:"success_rate"`
	Mode          Mode    `json:"mode"`
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailNotifier renders message templates and delivers them according to its Mode
type EmailNotifier struct {
	cfg       Config
	templates *template.Template
	sendMail  sendMailFunc

	mu     sync.Mutex
	sent   int
	failed int
}

// NewEmailNotifier creates a notifier; production mode requires an SMTP host and sender
func NewEmailNotifier(cfg Config) (*EmailNotifier, error) {
	if _, err := ParseMode(string(cfg.Mode)); err != nil {
		return nil, err
	}
	if cfg.Mode == ModeProduction {
		if cfg.SMTPHost == "" || cfg.From == "" {
			return nil, errors.New("notifier: production mode requires smtp host and sender address")
		}
		if cfg.SMTPPort == 0 {
			cfg.SMTPPort = 587
		}
	}

	templates := template.Must(template.New(WinnerTemplate).Parse(winnerBody))

	return &EmailNotifier{
		cfg:       cfg,
		templates: templates,
		sendMail:  smtp.SendMail,
	}, nil
}

// Notify renders tmpl with data and delivers it. Failures are reported in the Result, never panicked or returned.
// tmpl is either the name of a registered template or inline template text.
func (n *EmailNotifier) Notify(ctx context.Context, recipient, subject, tmpl string, data map[string]any) Result {
	body, err := n.render(tmpl, data)
	if err == nil {
		err = n.deliver(ctx, recipient, subject, body)
	}

	n.mu.Lock()
	if err != nil {
		n.failed++
	} else {
		n.sent++
	}
	n.mu.Unlock()

	if err != nil {
		utils.Warn("notifier: delivery failed", map[string]any{
			"mode":      n.cfg.Mode,
			"recipient": recipient,
			"subject":   subject,
			"error":     err.Error(),
		})
		return Result{Success: false, Mode: n.cfg.Mode, Error: err.Error()}
	}
	return Result{Success: true, Mode: n.cfg.Mode}
}

// Stats returns a snapshot of the delivery counters
func (n *EmailNotifier) Stats() Stats {
	n.mu.Lock()
	defer n.mu.Unlock()

	total := n.sent + n.failed
	rate := decimal.Zero
	if total > 0 {
		rate = decimal.NewFromInt(int64(n.sent)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(total))).
			Round(2)
	}
	return Stats{
		Sent:          n.sent,
		Failed:        n.failed,
		TotalAttempts: total,
		SuccessRate:   rate.InexactFloat64(),
		Mode:          n.cfg.Mode,
	}
}

func (n *EmailNotifier) render(tmpl string, data map[string]any) (string, error) {
	t := n.templates.Lookup(tmpl)
	if t == nil {
		var err error
		t, err = template.New("inline").Parse(tmpl)
		if err != nil {
			return "", fmt.Errorf("parse inline template: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func (n *EmailNotifier) deliver(ctx context.Context, recipient, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if recipient == "" {
		return errors.New("missing recipient address")
	}
	if strings.ContainsAny(recipient, "\r\n") {
		return fmt.Errorf("recipient address %q contains a line break", recipient)
	}

	switch n.cfg.Mode {
	case ModeDevelopment:
		utils.Info("notifier: email rendered (development mode, not sent)", map[string]any{
			"recipient": recipient,
			"subject":   subject,
			"body":      body,
		})
		return nil

	case ModeTest:
		if strings.HasPrefix(strings.ToLower(recipient), simulatedFailurePrefix) {
			return fmt.Errorf("simulated delivery failure for %s", recipient)
		}
		utils.Debug("notifier: simulated delivery", map[string]any{"recipient": recipient, "subject": subject})
		return nil

	default:
		addr := net.JoinHostPort(n.cfg.SMTPHost, strconv.Itoa(n.cfg.SMTPPort))
		var auth smtp.Auth
		if n.cfg.Username != "" {
			auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.SMTPHost)
		}
		if err := n.sendMail(addr, auth, n.cfg.From, []string{recipient}, buildMessage(n.cfg.From, recipient, subject, body)); err != nil {
			return fmt.Errorf("smtp send via %s: %w", addr, err)
		}
		utils.Info("notifier: email sent", map[string]any{"recipient": recipient, "subject": subject})
		return nil
	}
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// buildMessage assembles an RFC 5322 message. The subject is carried as an
// RFC 2047 encoded word whenever it holds anything but printable ASCII, so
// user text inside it can never start a new header line.
func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(lineBreaks.Replace(body), "\n", "\r\n"))
	return []byte(b.String())
}
