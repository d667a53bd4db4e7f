package notify

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/google/uuid"
)

var emailTmpl = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Football Places Booking</h2>
  <p>{{.Message}}</p>
  {{if .AcceptURL}}
  <p>
    <a href="{{.AcceptURL}}" style="padding: 8px 16px; background: #2e7d32; color: #fff; text-decoration: none;">{{.AcceptLabel}}</a>
    &nbsp;
    <a href="{{.DeclineURL}}" style="padding: 8px 16px; background: #c62828; color: #fff; text-decoration: none;">{{.DeclineLabel}}</a>
  </p>
  {{end}}
  <p style="color: #888; font-size: 12px;">This is an automated message, please do not reply.</p>
</body>
</html>`))

type emailData struct {
	Message      string
	AcceptURL    string
	DeclineURL   string
	AcceptLabel  string
	DeclineLabel string
}

func (m *Mailer) render(data emailData) (string, error) {
	var buf bytes.Buffer
	if err := emailTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return buf.String(), nil
}

func (m *Mailer) enqueueRendered(to, subject string, data emailData) {
	body, err := m.render(data)
	if err != nil {
		m.log.Error().Err(err).Str("to", to).Msg("failed to build email")
		return
	}
	m.Enqueue(Email{To: to, Subject: subject, Body: body})
}

// SendTeamInvitation отправляет приглашение в команду со ссылками для ответа
func (m *Mailer) SendTeamInvitation(to, message string, memberID uuid.UUID) {
	base := m.cfg.PublicBaseURL + "/api/team-members/respond-mail/" + memberID.String()
	m.enqueueRendered(to, "Team Invitation", emailData{
		Message:      message,
		AcceptURL:    base + "?status=APPROVED",
		DeclineURL:   base + "?status=REJECTED",
		AcceptLabel:  "Accept",
		DeclineLabel: "Reject",
	})
}

// SendTeamJoinRequest уведомляет создателя команды о заявке со ссылками для ответа
func (m *Mailer) SendTeamJoinRequest(to, message string, memberID, organizerID uuid.UUID) {
	base := m.cfg.PublicBaseURL + "/api/team-members/join-request/respond-mail/" +
		memberID.String() + "/" + organizerID.String()
	m.enqueueRendered(to, "Team Join Request", emailData{
		Message:      message,
		AcceptURL:    base + "?status=APPROVED",
		DeclineURL:   base + "?status=REJECTED",
		AcceptLabel:  "Approve",
		DeclineLabel: "Reject",
	})
}

// SendMatchInvitation отправляет приглашение на матч со ссылками для ответа
func (m *Mailer) SendMatchInvitation(to, message string, participantID uuid.UUID) {
	base := m.cfg.PublicBaseURL + "/api/match-participants/respond-mail/" + participantID.String()
	m.enqueueRendered(to, "Match Invitation", emailData{
		Message:      message,
		AcceptURL:    base + "?status=ACCEPTED",
		DeclineURL:   base + "?status=DECLINED",
		AcceptLabel:  "Accept",
		DeclineLabel: "Decline",
	})
}

// SendNotice отправляет простое уведомление без ссылок
func (m *Mailer) SendNotice(to, subject, message string) {
	m.enqueueRendered(to, subject, emailData{Message: message})
}
