package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"time"

	"minihr/internal/model"
)

var decisionTemplate = template.Must(template.New("decision").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; color: #333; background-color: #f4f4f4; margin: 0; padding: 0;">
  <div style="max-width: 600px; margin: 40px auto; background: #ffffff; border-radius: 12px; overflow: hidden;">
    <div style="background: {{.StatusColor}}; color: #ffffff; padding: 30px; text-align: center;">
      <h1 style="margin: 0; font-size: 24px;">HR Notification</h1>
    </div>
    <div style="padding: 35px 30px;">
      <p style="font-size: 18px; font-weight: 600;">Hello {{.FullName}},</p>
      <p style="text-align: center;">
        <span style="display: inline-block; padding: 8px 16px; color: {{.StatusColor}}; border: 1px solid {{.StatusColor}}; border-radius: 50px; font-weight: 700; font-size: 14px; text-transform: uppercase;">{{.Status}}</span>
      </p>
      <p style="color: #4a5568;">{{.Message}}</p>
      <table style="width: 100%; border-collapse: collapse; background-color: #f8fafc; border-radius: 8px;">
        <tr><td style="padding: 12px; color: #718096;">Leave Type</td><td style="padding: 12px; text-align: right; font-weight: 600;">{{.LeaveType}}</td></tr>
        <tr><td style="padding: 12px; color: #718096;">Duration</td><td style="padding: 12px; text-align: right; font-weight: 600;">{{.Duration}}</td></tr>
        <tr><td style="padding: 12px; color: #718096;">Start Date</td><td style="padding: 12px; text-align: right; font-weight: 600;">{{.StartDate}}</td></tr>
        <tr><td style="padding: 12px; color: #718096;">End Date</td><td style="padding: 12px; text-align: right; font-weight: 600;">{{.EndDate}}</td></tr>
        {{if .HasBalance}}<tr><td style="padding: 12px; color: #718096;">Remaining Balance</td><td style="padding: 12px; text-align: right; font-weight: 600;">{{.RemainingBalance}} Days</td></tr>{{end}}
      </table>
      <p style="margin-top: 30px; color: #718096; text-align: center; font-size: 14px;">
        This is an automated message. Please do not reply directly to this email.
      </p>
    </div>
    <div style="background-color: #f7fafc; padding: 20px; text-align: center; color: #a0aec0; font-size: 13px;">
      <p style="margin: 5px 0;">&copy; {{.Year}} Mini HR Tool. All rights reserved.</p>
      <p style="margin: 5px 0;">Human Resources Department</p>
    </div>
  </div>
</body>
</html>`))

type decisionView struct {
	FullName         string
	Status           model.LeaveStatus
	StatusColor      string
	Message          string
	LeaveType        model.LeaveType
	Duration         string
	StartDate        string
	EndDate          string
	HasBalance       bool
	RemainingBalance int
	Year             int
}

func statusColor(status model.LeaveStatus) string {
	switch status {
	case model.LeaveStatusApproved:
		return "#48bb78"
	case model.LeaveStatusRejected:
		return "#e53e3e"
	default:
		return "#718096"
	}
}

func formatDay(t time.Time) string {
	return t.Format("Mon, Jan 2, 2006")
}

func renderDecisionHTML(leave *model.LeaveRequest, owner *model.User, message string, remainingBalance *int) string {
	duration := fmt.Sprintf("%d Day", leave.TotalDays)
	if leave.TotalDays != 1 {
		duration += "s"
	}

	view := decisionView{
		FullName:    owner.FullName,
		Status:      leave.Status,
		StatusColor: statusColor(leave.Status),
		Message:     message,
		LeaveType:   leave.LeaveType,
		Duration:    duration,
		StartDate:   formatDay(leave.StartDate),
		EndDate:     formatDay(leave.EndDate),
		Year:        time.Now().Year(),
	}
	if remainingBalance != nil {
		view.HasBalance = true
		view.RemainingBalance = *remainingBalance
	}

	var buf bytes.Buffer
	if err := decisionTemplate.Execute(&buf, view); err != nil {
		log.Printf("mail: render template: %v", err)
		return fmt.Sprintf("<p>%s</p>", message)
	}
	return buf.String()
}
