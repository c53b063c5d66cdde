package helper

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"train_station/config"
	"train_station/utils"

	"gopkg.in/gomail.v2"
)

// TicketLine is one row of the confirmation mail.
type TicketLine struct {
	ID            uint
	Route         string
	Train         string
	DepartureTime time.Time
	Cargo         int
	Seat          int
}

type OrderConfirmation struct {
	OrderID   uint
	CreatedAt time.Time
	Tickets   []TicketLine
}

type Mailer interface {
	Enabled() bool
	SendOrderConfirmation(to string, data OrderConfirmation)
}

type NoopMailer struct{}

func (NoopMailer) Enabled() bool { return false }

func (NoopMailer) SendOrderConfirmation(string, OrderConfirmation) {}

func NewMailer(settings config.Settings) Mailer {
	if settings.SMTPHost == "" {
		return NoopMailer{}
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(settings.SMTPHost, settings.SMTPPort, settings.SMTPUsername, settings.SMTPPassword),
		from:   settings.SMTPFrom,
	}
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func (m *SMTPMailer) Enabled() bool { return true }

// SendOrderConfirmation mails asynchronously so the order response is not delayed.
func (m *SMTPMailer) SendOrderConfirmation(to string, data OrderConfirmation) {
	go func() {
		msg, err := BuildOrderConfirmation(m.from, to, data)
		if err != nil {
			log.Printf("order %d confirmation: %v", data.OrderID, err)
			return
		}
		if err := m.dialer.DialAndSend(msg); err != nil {
			log.Printf("order %d confirmation to %s: %v", data.OrderID, to, err)
		}
	}()
}

var orderTemplate = template.Must(template.New("order").Parse(`<h2>Order #{{.OrderID}}</h2>
<p>Placed {{.CreatedAt.Format "2006-01-02 15:04 MST"}}</p>
<table>
<tr><th>Ticket</th><th>Route</th><th>Train</th><th>Departure</th><th>Cargo</th><th>Seat</th></tr>
{{range .Tickets}}<tr><td>{{.ID}}</td><td>{{.Route}}</td><td>{{.Train}}</td><td>{{.DepartureTime.Format "2006-01-02 15:04 MST"}}</td><td>{{.Cargo}}</td><td>{{.Seat}}</td></tr>
{{end}}</table>
`))

// TicketCode is the content of a ticket's QR code.
func TicketCode(orderID uint, t TicketLine) string {
	return fmt.Sprintf("order:%d;ticket:%d;cargo:%d;seat:%d", orderID, t.ID, t.Cargo, t.Seat)
}

// BuildOrderConfirmation renders the mail with one QR code attachment per ticket.
func BuildOrderConfirmation(from, to string, data OrderConfirmation) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := orderTemplate.Execute(&body, data); err != nil {
		return nil, err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Order #%d confirmation", data.OrderID))
	msg.SetBody("text/html", body.String())

	for _, t := range data.Tickets {
		png, err := utils.GenerateQRCode(TicketCode(data.OrderID, t), 256)
		if err != nil {
			return nil, fmt.Errorf("qr for ticket %d: %w", t.ID, err)
		}
		msg.Attach(fmt.Sprintf("ticket-%d.png", t.ID), gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(png)
			return err
		}))
	}
	return msg, nil
}
