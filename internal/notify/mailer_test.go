package notify

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/config"
)

func newTestMailer() *Mailer {
	return &Mailer{
		cfg: &config.Config{
			PublicBaseURL: "http://localhost:8080",
			SMTPFrom:      "noreply@example.com",
		},
		log:   zerolog.Nop(),
		queue: make(chan Email, 4),
	}
}

func (m *Mailer) dequeue(t *testing.T) Email {
	t.Helper()
	select {
	case email := <-m.queue:
		return email
	default:
		t.Fatal("no email enqueued")
		return Email{}
	}
}

func TestSendTeamInvitation(t *testing.T) {
	m := newTestMailer()
	memberID := uuid.New()

	m.SendTeamInvitation("omar@example.com", "ahmed has invited you to join Team Falcons", memberID)

	email := m.dequeue(t)
	assert.Equal(t, "omar@example.com", email.To)
	assert.Equal(t, "Team Invitation", email.Subject)
	assert.Contains(t, email.Body, "ahmed has invited you to join Team Falcons")
	assert.Contains(t, email.Body, "http://localhost:8080/api/team-members/respond-mail/"+memberID.String()+"?status=APPROVED")
	assert.Contains(t, email.Body, "?status=REJECTED")
}

func TestSendTeamJoinRequest(t *testing.T) {
	m := newTestMailer()
	memberID := uuid.New()
	organizerID := uuid.New()

	m.SendTeamJoinRequest("ahmed@example.com", "omar is asking to join Falcons", memberID, organizerID)

	email := m.dequeue(t)
	assert.Contains(t, email.Body,
		"/api/team-members/join-request/respond-mail/"+memberID.String()+"/"+organizerID.String()+"?status=APPROVED")
}

func TestSendMatchInvitation(t *testing.T) {
	m := newTestMailer()
	participantID := uuid.New()

	m.SendMatchInvitation("omar@example.com", "match invitation", participantID)

	email := m.dequeue(t)
	assert.Equal(t, "Match Invitation", email.Subject)
	assert.Contains(t, email.Body, "/api/match-participants/respond-mail/"+participantID.String()+"?status=ACCEPTED")
	assert.Contains(t, email.Body, "?status=DECLINED")
}

func TestSendNotice(t *testing.T) {
	m := newTestMailer()

	m.SendNotice("ahmed@example.com", "Match Invitation Response", "omar has accepted the match invitation")

	email := m.dequeue(t)
	assert.Equal(t, "Match Invitation Response", email.Subject)
	assert.Contains(t, email.Body, "omar has accepted the match invitation")
	// без ссылок для ответа нет кнопок
	assert.NotContains(t, email.Body, "?status=")
}

func TestEnqueueDropsWhenFull(t *testing.T) {
	m := newTestMailer()
	m.queue = make(chan Email, 1)

	m.Enqueue(Email{To: "a@example.com"})
	m.Enqueue(Email{To: "b@example.com"})

	require.Len(t, m.queue, 1)
	email := m.dequeue(t)
	assert.Equal(t, "a@example.com", email.To)
}
