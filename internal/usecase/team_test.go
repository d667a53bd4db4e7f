package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
)

func newTeamUseCase(env *testEnv) *TeamUseCase {
	return NewTeamUseCase(env.teams, env.members, env.requests, env.tx, env.authz)
}

func TestTeamCreate(t *testing.T) {
	env := newTestEnv()
	uc := newTeamUseCase(env)

	creator := env.addUser("ahmed", "ahmed@example.com", entity.UserRoleUser)
	identity := env.identity(creator)

	team, err := uc.Create(context.Background(), identity, "Falcons", "Sunday league team")
	require.NoError(t, err)
	assert.Equal(t, creator.ID, team.CreatorID)

	// создатель сразу становится одобренным организатором
	member, err := env.members.GetByTeamAndUser(context.Background(), team.ID, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TeamRoleOrganizer, member.Role)
	assert.Equal(t, entity.TeamStatusApproved, member.Status)

	t.Run("empty name", func(t *testing.T) {
		_, err := uc.Create(context.Background(), identity, "  ", "desc")
		requireDomainCode(t, err, domainErrors.KindValidation, domainErrors.InvalidTeamName)
	})

	t.Run("empty description", func(t *testing.T) {
		_, err := uc.Create(context.Background(), identity, "Eagles", " ")
		requireDomainCode(t, err, domainErrors.KindValidation, domainErrors.InvalidTeamDescription)
	})

	t.Run("duplicate name case-insensitive", func(t *testing.T) {
		_, err := uc.Create(context.Background(), identity, "FALCONS", "another team")
		requireDomainCode(t, err, domainErrors.KindAlreadyExists, domainErrors.TeamAlreadyExists)
	})
}

func TestTeamUpdate(t *testing.T) {
	env := newTestEnv()
	uc := newTeamUseCase(env)

	creator := env.addUser("ahmed", "ahmed@example.com", entity.UserRoleUser)
	outsider := env.addUser("omar", "omar@example.com", entity.UserRoleUser)
	team := env.addTeam("Falcons", creator)
	env.addTeam("Eagles", creator)

	name := "Hawks"

	t.Run("no data", func(t *testing.T) {
		_, err := uc.Update(context.Background(), env.identity(creator), team.ID, UpdateTeamParams{})
		requireDomainCode(t, err, domainErrors.KindNoData, domainErrors.NoData)
	})

	t.Run("non-organizer forbidden", func(t *testing.T) {
		_, err := uc.Update(context.Background(), env.identity(outsider), team.ID, UpdateTeamParams{Name: &name})
		requireDomainCode(t, err, domainErrors.KindForbidden, domainErrors.ForbiddenRole)
	})

	t.Run("rename to taken name", func(t *testing.T) {
		taken := "eagles"
		_, err := uc.Update(context.Background(), env.identity(creator), team.ID, UpdateTeamParams{Name: &taken})
		requireDomainCode(t, err, domainErrors.KindAlreadyExists, domainErrors.TeamAlreadyExists)
	})

	t.Run("rename", func(t *testing.T) {
		updated, err := uc.Update(context.Background(), env.identity(creator), team.ID, UpdateTeamParams{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Hawks", updated.Name)
	})
}

func TestTeamDelete(t *testing.T) {
	env := newTestEnv()
	teamUC := newTeamUseCase(env)
	memberUC := newTeamMemberUseCase(env)

	creator := env.addUser("ahmed", "ahmed@example.com", entity.UserRoleUser)
	invitee := env.addUser("omar", "omar@example.com", entity.UserRoleUser)
	outsider := env.addUser("tarek", "tarek@example.com", entity.UserRoleUser)
	team := env.addTeam("Falcons", creator)

	member, err := memberUC.Invite(context.Background(), env.identity(creator), team.ID, invitee.Email)
	require.NoError(t, err)

	t.Run("only creator or admin", func(t *testing.T) {
		err := teamUC.Delete(context.Background(), env.identity(outsider), team.ID)
		requireDomainCode(t, err, domainErrors.KindForbidden, domainErrors.Forbidden)
	})

	t.Run("creator deletes with requests", func(t *testing.T) {
		err := teamUC.Delete(context.Background(), env.identity(creator), team.ID)
		require.NoError(t, err)

		_, err = env.teams.GetByID(context.Background(), team.ID)
		assert.ErrorIs(t, err, domainErrors.ErrNotFound)

		// запросы, ссылающиеся на членства команды, удалены
		_, err = env.requests.GetByJoker(context.Background(), member.ID)
		assert.ErrorIs(t, err, domainErrors.ErrNotFound)
	})

	t.Run("unknown team", func(t *testing.T) {
		err := teamUC.Delete(context.Background(), env.identity(creator), uuid.New())
		requireDomainCode(t, err, domainErrors.KindNotFound, domainErrors.TeamNotFound)
	})
}

func TestTeamGetMyAndOthers(t *testing.T) {
	env := newTestEnv()
	uc := newTeamUseCase(env)

	creator := env.addUser("ahmed", "ahmed@example.com", entity.UserRoleUser)
	other := env.addUser("omar", "omar@example.com", entity.UserRoleUser)

	mine := env.addTeam("Falcons", creator)
	foreign := env.addTeam("Eagles", other)

	my, err := uc.GetMy(context.Background(), env.identity(creator), 0, 20)
	require.NoError(t, err)
	require.Len(t, my, 1)
	assert.Equal(t, mine.ID, my[0].ID)

	others, err := uc.GetOthers(context.Background(), env.identity(creator), 0, 20)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, foreign.ID, others[0].ID)

	t.Run("empty is no content", func(t *testing.T) {
		loner := env.addUser("tarek", "tarek@example.com", entity.UserRoleUser)
		_, err := uc.GetMy(context.Background(), env.identity(loner), 0, 20)
		requireDomainCode(t, err, domainErrors.KindNoContent, domainErrors.NoContent)
	})
}
