package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/ws"
)

func newParticipantUseCase(env *testEnv) *ParticipantUseCase {
	return NewParticipantUseCase(
		env.participants, env.bookings, env.places, env.users, env.requests,
		env.tx, env.authz, env.notifier, env.events,
	)
}

type matchFixture struct {
	organizer *entity.User
	place     *entity.Place
	team      *entity.Team
	match     *entity.BookingMatch
}

func newMatchFixture(t *testing.T, env *testEnv, placeType entity.PlaceType) *matchFixture {
	t.Helper()

	organizer := env.addUser("ahmed", "ahmed@example.com", entity.UserRoleUser)
	place := env.addPlace("Downtown Pitch", placeType)
	team := env.addTeam("Falcons", organizer)

	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	match := &entity.BookingMatch{
		ID:        uuid.New(),
		PlaceID:   place.ID,
		UserID:    organizer.ID,
		TeamID:    team.ID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    entity.MatchStatusPendingPlayers,
		CreatedAt: time.Now(),
	}
	require.NoError(t, env.bookings.Create(context.Background(), match))

	return &matchFixture{organizer: organizer, place: place, team: team, match: match}
}

func TestParticipantInvite(t *testing.T) {
	env := newTestEnv()
	uc := newParticipantUseCase(env)
	fx := newMatchFixture(t, env, entity.PlaceTypeFive)

	invitee := env.addUser("omar", "omar@example.com", entity.UserRoleUser)

	participant, err := uc.Invite(context.Background(), env.identity(fx.organizer), fx.match.ID, invitee.Email)
	require.NoError(t, err)
	assert.Equal(t, entity.ParticipantStatusInvited, participant.Status)
	assert.Equal(t, invitee.ID, participant.UserID)

	request, err := env.requests.GetByJoker(context.Background(), participant.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestTypeMatchInvitation, request.RequestType)
	assert.Equal(t, entity.ResponseStatusPending, request.Status)
	assert.Contains(t, request.RequestMessage, "ahmed has invited you to join match at Downtown Pitch")

	require.Len(t, env.notifier.Sent, 1)
	assert.Equal(t, invitee.Email, env.notifier.Sent[0].To)

	topics := env.events.topics()
	require.Len(t, topics, 1)
	assert.Equal(t, ws.NotificationTopic(invitee.ID), topics[0])
}

func TestParticipantInviteErrors(t *testing.T) {
	env := newTestEnv()
	uc := newParticipantUseCase(env)
	fx := newMatchFixture(t, env, entity.PlaceTypeFive)
	identity := env.identity(fx.organizer)

	t.Run("empty email", func(t *testing.T) {
		_, err := uc.Invite(context.Background(), identity, fx.match.ID, "  ")
		requireDomainCode(t, err, domainErrors.KindValidation, domainErrors.InvalidParticipantEmail)
	})

	t.Run("unknown match", func(t *testing.T) {
		_, err := uc.Invite(context.Background(), identity, uuid.New(), "omar@example.com")
		requireDomainCode(t, err, domainErrors.KindNotFound, domainErrors.BookingMatchNotFound)
	})

	t.Run("unknown invitee", func(t *testing.T) {
		_, err := uc.Invite(context.Background(), identity, fx.match.ID, "ghost@example.com")
		requireDomainCode(t, err, domainErrors.KindNotFound, domainErrors.UserNotFound)
	})

	t.Run("non-organizer forbidden", func(t *testing.T) {
		outsider := env.addUser("tarek", "tarek@example.com", entity.UserRoleUser)
		_, err := uc.Invite(context.Background(), env.identity(outsider), fx.match.ID, "tarek@example.com")
		requireDomainCode(t, err, domainErrors.KindForbidden, domainErrors.ForbiddenRole)
	})

	t.Run("duplicate invitation", func(t *testing.T) {
		invitee := env.addUser("omar", "omar@example.com", entity.UserRoleUser)
		_, err := uc.Invite(context.Background(), identity, fx.match.ID, invitee.Email)
		require.NoError(t, err)
		_, err = uc.Invite(context.Background(), identity, fx.match.ID, invitee.Email)
		requireDomainCode(t, err, domainErrors.KindAlreadyExists, domainErrors.MatchParticipantAlreadyExists)
	})
}

func TestParticipantRespond(t *testing.T) {
	env := newTestEnv()
	uc := newParticipantUseCase(env)
	fx := newMatchFixture(t, env, entity.PlaceTypeFive)

	invitee := env.addUser("omar", "omar@example.com", entity.UserRoleUser)
	participant, err := uc.Invite(context.Background(), env.identity(fx.organizer), fx.match.ID, invitee.Email)
	require.NoError(t, err)

	t.Run("only invitee can respond", func(t *testing.T) {
		_, err := uc.Respond(context.Background(), env.identity(fx.organizer), participant.ID, "ACCEPTED")
		requireDomainCode(t, err, domainErrors.KindForbidden, domainErrors.Forbidden)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := uc.Respond(context.Background(), env.identity(invitee), participant.ID, "MAYBE")
		requireDomainCode(t, err, domainErrors.KindValidation, domainErrors.InvalidParticipantStatus)
	})

	t.Run("accept", func(t *testing.T) {
		updated, err := uc.Respond(context.Background(), env.identity(invitee), participant.ID, "accepted")
		require.NoError(t, err)
		assert.Equal(t, entity.ParticipantStatusAccepted, updated.Status)
		require.NotNil(t, updated.RespondedAt)

		request, err := env.requests.GetByJoker(context.Background(), participant.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.ResponseStatusAccepted, request.Status)
		assert.Equal(t, "omar has accepted the match invitation", request.ResponseMessage)

		// организатор получает письмо и уведомление
		last := env.notifier.Sent[len(env.notifier.Sent)-1]
		assert.Equal(t, fx.organizer.Email, last.To)
	})

	t.Run("double response rejected", func(t *testing.T) {
		_, err := uc.Respond(context.Background(), env.identity(invitee), participant.ID, "DECLINED")
		requireDomainCode(t, err, domainErrors.KindAlreadyExists, domainErrors.MatchParticipantAlreadyResponded)
	})
}

func TestParticipantRespondByMail(t *testing.T) {
	env := newTestEnv()
	uc := newParticipantUseCase(env)
	fx := newMatchFixture(t, env, entity.PlaceTypeFive)

	invitee := env.addUser("omar", "omar@example.com", entity.UserRoleUser)
	participant, err := uc.Invite(context.Background(), env.identity(fx.organizer), fx.match.ID, invitee.Email)
	require.NoError(t, err)

	updated, err := uc.RespondByMail(context.Background(), participant.ID, "DECLINED")
	require.NoError(t, err)
	assert.Equal(t, entity.ParticipantStatusDeclined, updated.Status)

	request, err := env.requests.GetByJoker(context.Background(), participant.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ResponseStatusRejected, request.Status)
	assert.Equal(t, "omar has declined the match invitation", request.ResponseMessage)
}

func TestParticipantCapacityFlip(t *testing.T) {
	env := newTestEnv()
	uc := newParticipantUseCase(env)
	fx := newMatchFixture(t, env, entity.PlaceTypeFive)
	organizer := env.identity(fx.organizer)

	capacity := entity.PlaceTypeFive.Capacity()
	require.Equal(t, 10, capacity)

	// девять принимают, матч остается в наборе игроков
	for i := 0; i < capacity-1; i++ {
		invitee := env.addUser(
			fmt.Sprintf("player%d", i),
			fmt.Sprintf("player%d@example.com", i),
			entity.UserRoleUser,
		)
		participant, err := uc.Invite(context.Background(), organizer, fx.match.ID, invitee.Email)
		require.NoError(t, err)
		_, err = uc.Respond(context.Background(), env.identity(invitee), participant.ID, "ACCEPTED")
		require.NoError(t, err)
	}

	match, err := env.bookings.GetByID(context.Background(), fx.match.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MatchStatusPendingPlayers, match.Status)

	// десятый закрывает набор
	tenth := env.addUser("tenth", "tenth@example.com", entity.UserRoleUser)
	participant, err := uc.Invite(context.Background(), organizer, fx.match.ID, tenth.Email)
	require.NoError(t, err)
	_, err = uc.Respond(context.Background(), env.identity(tenth), participant.ID, "ACCEPTED")
	require.NoError(t, err)

	match, err = env.bookings.GetByID(context.Background(), fx.match.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MatchStatusPendingPayment, match.Status)

	var updateEvent *ws.SlotEvent
	for _, published := range env.events.Events {
		if event, ok := published.Event.(ws.SlotEvent); ok && event.Type == "SLOT_UPDATED" {
			updateEvent = &event
		}
	}
	require.NotNil(t, updateEvent)
	assert.Equal(t, string(entity.MatchStatusPendingPayment), updateEvent.Status)

	// одиннадцатый получает отказ по вместимости
	eleventh := env.addUser("eleventh", "eleventh@example.com", entity.UserRoleUser)
	participant, err = uc.Invite(context.Background(), organizer, fx.match.ID, eleventh.Email)
	require.NoError(t, err)
	_, err = uc.Respond(context.Background(), env.identity(eleventh), participant.ID, "ACCEPTED")
	requireDomainCode(t, err, domainErrors.KindAlreadyExists, domainErrors.MatchCapacityExceeded)

	// отклонить просроченное приглашение еще можно
	declined, err := uc.Respond(context.Background(), env.identity(eleventh), participant.ID, "DECLINED")
	require.NoError(t, err)
	assert.Equal(t, entity.ParticipantStatusDeclined, declined.Status)
}

func TestParticipantJoinAsOrganizer(t *testing.T) {
	env := newTestEnv()
	uc := newParticipantUseCase(env)
	fx := newMatchFixture(t, env, entity.PlaceTypeFive)

	participant, err := uc.JoinAsOrganizer(context.Background(), env.identity(fx.organizer), fx.match.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ParticipantStatusAccepted, participant.Status)
	require.NotNil(t, participant.RespondedAt)

	_, err = uc.JoinAsOrganizer(context.Background(), env.identity(fx.organizer), fx.match.ID)
	requireDomainCode(t, err, domainErrors.KindAlreadyExists, domainErrors.MatchParticipantAlreadyExists)

	outsider := env.addUser("omar", "omar@example.com", entity.UserRoleUser)
	_, err = uc.JoinAsOrganizer(context.Background(), env.identity(outsider), fx.match.ID)
	requireDomainCode(t, err, domainErrors.KindForbidden, domainErrors.ForbiddenRole)
}

func TestParticipantGetByMatchVisibility(t *testing.T) {
	env := newTestEnv()
	uc := newParticipantUseCase(env)
	fx := newMatchFixture(t, env, entity.PlaceTypeFive)
	organizer := env.identity(fx.organizer)

	accepted := env.addUser("omar", "omar@example.com", entity.UserRoleUser)
	invited := env.addUser("tarek", "tarek@example.com", entity.UserRoleUser)

	p1, err := uc.Invite(context.Background(), organizer, fx.match.ID, accepted.Email)
	require.NoError(t, err)
	_, err = uc.Respond(context.Background(), env.identity(accepted), p1.ID, "ACCEPTED")
	require.NoError(t, err)

	_, err = uc.Invite(context.Background(), organizer, fx.match.ID, invited.Email)
	require.NoError(t, err)

	all, err := uc.GetByMatch(context.Background(), organizer, fx.match.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	visible, err := uc.GetByMatch(context.Background(), env.identity(invited), fx.match.ID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, entity.ParticipantStatusAccepted, visible[0].Status)
}
