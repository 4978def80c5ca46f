// Package mailer delivers leave decision notifications over SMTP. Delivery
// is fire and forget: messages are queued onto a buffered channel and sent
// by a background worker, and any failure is logged and dropped so a mail
// outage can never roll back a leave decision.
package mailer

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"minihr/internal/config"
	"minihr/internal/model"
)

const queueSize = 64

// Mailer sends leave status-change emails asynchronously.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	queue  chan *gomail.Message
}

// New creates a mailer and starts its delivery worker. Returns nil when
// mail credentials are not configured; a nil *Mailer is a valid notifier
// that skips sending.
func New(cfg *config.Config) *Mailer {
	if cfg.MailUser == "" || cfg.MailPass == "" {
		log.Println("mail credentials not configured, notifications disabled")
		return nil
	}

	m := &Mailer{
		dialer: gomail.NewDialer(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass),
		from:   fmt.Sprintf("%q <%s>", cfg.MailFrom, cfg.MailUser),
		queue:  make(chan *gomail.Message, queueSize),
	}
	go m.worker()
	return m
}

// worker drains the queue, reusing one SMTP connection while messages keep
// arriving.
func (m *Mailer) worker() {
	var sender gomail.SendCloser
	for {
		msg, ok := <-m.queue
		if !ok {
			if sender != nil {
				_ = sender.Close()
			}
			return
		}

		if sender == nil {
			s, err := m.dialer.Dial()
			if err != nil {
				log.Printf("mail: dial failed, dropping message: %v", err)
				continue
			}
			sender = s
		}

		if err := gomail.Send(sender, msg); err != nil {
			log.Printf("mail: send failed: %v", err)
			_ = sender.Close()
			sender = nil
			continue
		}

		// Close the connection when the queue runs dry.
		if len(m.queue) == 0 {
			_ = sender.Close()
			sender = nil
		}
	}
}

// NotifyDecision queues a status-change email for the request's owner.
// Non-blocking: if the queue is full the message is dropped with a log line.
func (m *Mailer) NotifyDecision(leave *model.LeaveRequest, owner *model.User, remainingBalance *int) {
	if m == nil || owner == nil || owner.Email == "" {
		return
	}

	subject, text := decisionCopy(leave.Status)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", owner.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", fmt.Sprintf("Your leave status has been updated to: %s", leave.Status))
	msg.AddAlternative("text/html", renderDecisionHTML(leave, owner, text, remainingBalance))

	select {
	case m.queue <- msg:
	default:
		log.Printf("mail: queue full, dropping notification for %s", owner.Email)
	}
}

func decisionCopy(status model.LeaveStatus) (subject, message string) {
	switch status {
	case model.LeaveStatusApproved:
		return "Leave Request Approved",
			"We are pleased to inform you that your leave request has been approved."
	case model.LeaveStatusRejected:
		return "Leave Request Update",
			"Your leave request has been reviewed and was not approved at this time."
	default:
		return "Leave Request Update",
			fmt.Sprintf("Your leave request status is now %s.", status)
	}
}
