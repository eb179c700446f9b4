package notification

import (
	"bytes"
	"context"
	"fmt"
	"hotel-booking-service/config"
	"hotel-booking-service/internal/module/booking/models/entity"
	"html/template"

	"github.com/wneessen/go-mail"
)

const (
	TransportSMTP = "smtp"
	TransportSES  = "ses"
)

type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

type Message struct {
	To         string
	Subject    string
	HTMLBody   string
	Attachment *Attachment
}

type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// New picks the transport configured in MAIL_TRANSPORT.
func New(ctx context.Context, cfg *config.MailConfig) (Notifier, error) {
	switch cfg.Transport {
	case TransportSES:
		return NewSES(ctx, cfg)
	case TransportSMTP, "":
		return NewSMTP(cfg)
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.Transport)
	}
}

func buildMessage(cfg *config.MailConfig, msg Message) (*mail.Msg, error) {
	if msg.To == "" {
		return nil, fmt.Errorf("message has no recipient")
	}

	m := mail.NewMsg()
	if err := m.FromFormat(cfg.FromName, cfg.From); err != nil {
		return nil, fmt.Errorf("set from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("set to address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)

	if a := msg.Attachment; a != nil {
		contentType := a.ContentType
		if contentType == "" {
			contentType = "application/pdf"
		}
		if err := m.AttachReader(a.Name, bytes.NewReader(a.Data), mail.WithFileContentType(mail.ContentType(contentType))); err != nil {
			return nil, fmt.Errorf("attach %s: %w", a.Name, err)
		}
	}

	return m, nil
}

func Subject(s entity.Snapshot) string {
	return fmt.Sprintf("Booking confirmed: %s, %s to %s", s.HotelName, s.CheckIn, s.CheckOut)
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Helvetica, Arial, sans-serif; color: #222;">
<p>Hi {{.GuestName}},</p>
<p>Your stay at <strong>{{.HotelName}}</strong> is confirmed.</p>
<table cellpadding="4">
<tr><td>Booking reference</td><td>{{.BookingID}}</td></tr>
<tr><td>Room</td><td>{{.RoomType}} {{.RoomNumber}}</td></tr>
<tr><td>Check-in</td><td>{{.CheckIn}}</td></tr>
<tr><td>Check-out</td><td>{{.CheckOut}}</td></tr>
<tr><td>Nights</td><td>{{.Nights}}</td></tr>
<tr><td>Total paid</td><td>{{.Currency}} {{printf "%.2f" .TotalPrice}}</td></tr>
<tr><td>Payment</td><td>{{.PaymentID}}</td></tr>
</table>
{{with .Customization}}<p>Requests:{{with .Guests}} {{.Min}}-{{.Max}} guests.{{end}}{{with .IncludedItems}} Included: {{.}}.{{end}}</p>{{end}}
<p>Your receipt is attached.</p>
{{with .HotelAddress}}<p>{{.}}</p>{{end}}
</body>
</html>
`))

// ConfirmationBody renders the HTML mail for a confirmed booking.
func ConfirmationBody(s entity.Snapshot) (string, error) {
	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, s); err != nil {
		return "", fmt.Errorf("render confirmation body: %w", err)
	}
	return buf.String(), nil
}
