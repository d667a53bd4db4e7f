package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, userID uuid.UUID) error
	GetByID(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Filter(ctx context.Context, filter entity.UserFilter) ([]*entity.User, error)
}

type PlaceRepository interface {
	Create(ctx context.Context, place *entity.Place) error
	Update(ctx context.Context, place *entity.Place) error
	Delete(ctx context.Context, placeID uuid.UUID) error
	GetByID(ctx context.Context, placeID uuid.UUID) (*entity.Place, error)
	Filter(ctx context.Context, filter entity.PlaceFilter) ([]*entity.Place, error)
}

type TeamRepository interface {
	Create(ctx context.Context, team *entity.Team) error
	Update(ctx context.Context, team *entity.Team) error
	Delete(ctx context.Context, teamID uuid.UUID) error
	GetByID(ctx context.Context, teamID uuid.UUID) (*entity.Team, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Filter(ctx context.Context, filter entity.TeamFilter) ([]*entity.Team, error)
	GetAll(ctx context.Context) ([]*entity.Team, error)
	GetExcluding(ctx context.Context, teamIDs []uuid.UUID, page, size int) ([]*entity.Team, error)
}

type TeamMemberRepository interface {
	Create(ctx context.Context, member *entity.TeamMember) error
	Update(ctx context.Context, member *entity.TeamMember) error
	Delete(ctx context.Context, memberID uuid.UUID) error
	GetByID(ctx context.Context, memberID uuid.UUID) (*entity.TeamMember, error)
	GetByTeamAndUser(ctx context.Context, teamID, userID uuid.UUID) (*entity.TeamMember, error)
	GetByTeam(ctx context.Context, teamID uuid.UUID) ([]*entity.TeamMemberDetail, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*entity.TeamMemberDetail, error)
	GetByUserAndStatus(ctx context.Context, userID uuid.UUID, status entity.TeamStatus) ([]*entity.TeamMember, error)
	GetByTeamAndStatus(ctx context.Context, teamID uuid.UUID, status entity.TeamStatus) ([]*entity.TeamMemberDetail, error)
}

type BookingMatchRepository interface {
	Create(ctx context.Context, match *entity.BookingMatch) error
	Update(ctx context.Context, match *entity.BookingMatch) error
	GetByID(ctx context.Context, matchID uuid.UUID) (*entity.BookingMatch, error)
	// GetByIDForUpdate блокирует строку брони до конца транзакции,
	// сериализуя конкурентные проверки вместимости
	GetByIDForUpdate(ctx context.Context, matchID uuid.UUID) (*entity.BookingMatch, error)
	ExistsOverlapping(ctx context.Context, placeID uuid.UUID, start, end time.Time) (bool, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BookingMatch, error)
	GetByTeam(ctx context.Context, teamID uuid.UUID) ([]*entity.BookingMatch, error)
	GetByPlace(ctx context.Context, placeID uuid.UUID) ([]*entity.BookingMatch, error)
	GetAllDetailed(ctx context.Context) ([]*entity.BookingDetail, error)
	GetDetail(ctx context.Context, matchID uuid.UUID) (*entity.BookingDetail, error)
}

type MatchParticipantRepository interface {
	Create(ctx context.Context, participant *entity.MatchParticipant) error
	Update(ctx context.Context, participant *entity.MatchParticipant) error
	GetByID(ctx context.Context, participantID uuid.UUID) (*entity.MatchParticipant, error)
	GetByMatchAndUser(ctx context.Context, matchID, userID uuid.UUID) (*entity.MatchParticipant, error)
	GetByMatch(ctx context.Context, matchID uuid.UUID) ([]*entity.ParticipantDetail, error)
	GetUserMatches(ctx context.Context, userID uuid.UUID) ([]*entity.UserMatch, error)
	CountAccepted(ctx context.Context, matchID uuid.UUID) (int, error)
}

type RequestRepository interface {
	Create(ctx context.Context, request *entity.Request) error
	Update(ctx context.Context, request *entity.Request) error
	GetByID(ctx context.Context, requestID uuid.UUID) (*entity.Request, error)
	GetByJoker(ctx context.Context, jokerID uuid.UUID) (*entity.Request, error)
	DeleteByJokers(ctx context.Context, jokerIDs []uuid.UUID) error
	GetByReceiver(ctx context.Context, receiverID uuid.UUID) ([]*entity.RequestDetail, error)
	GetBySender(ctx context.Context, senderID uuid.UUID) ([]*entity.RequestDetail, error)
}

type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
