package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
)

// requireDomainCode проверяет категорию и код доменной ошибки
func requireDomainCode(t *testing.T, err error, kind domainErrors.Kind, code domainErrors.Code) {
	t.Helper()
	require.Error(t, err)
	de, ok := domainErrors.AsDomain(err)
	require.True(t, ok, "expected domain error, got %v", err)
	assert.Equal(t, kind, de.Kind)
	assert.Equal(t, code.Code, de.Code)
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type sentEmail struct {
	To      string
	Subject string
	Message string
}

// fakeNotifier запоминает отправленные письма
type fakeNotifier struct {
	mu    sync.Mutex
	Sent  []sentEmail
	Links []uuid.UUID
}

func (n *fakeNotifier) record(to, subject, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, sentEmail{To: to, Subject: subject, Message: message})
}

func (n *fakeNotifier) SendTeamInvitation(to, message string, memberID uuid.UUID) {
	n.record(to, "Team Invitation", message)
	n.Links = append(n.Links, memberID)
}

func (n *fakeNotifier) SendTeamJoinRequest(to, message string, memberID, organizerID uuid.UUID) {
	n.record(to, "Team Join Request", message)
	n.Links = append(n.Links, memberID)
}

func (n *fakeNotifier) SendMatchInvitation(to, message string, participantID uuid.UUID) {
	n.record(to, "Match Invitation", message)
	n.Links = append(n.Links, participantID)
}

func (n *fakeNotifier) SendNotice(to, subject, message string) {
	n.record(to, subject, message)
}

type publishedEvent struct {
	Topic string
	Event interface{}
}

// fakeEvents запоминает опубликованные события
type fakeEvents struct {
	mu     sync.Mutex
	Events []publishedEvent
}

func (e *fakeEvents) Publish(topic string, event interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Events = append(e.Events, publishedEvent{Topic: topic, Event: event})
}

func (e *fakeEvents) topics() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	result := make([]string, 0, len(e.Events))
	for _, ev := range e.Events {
		result = append(result, ev.Topic)
	}
	return result
}

// --- Репозитории в памяти ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.users, userID)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			cp := *user
			return &cp, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r *fakeUserRepo) Filter(_ context.Context, filter entity.UserFilter) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.User
	for _, user := range r.users {
		if filter.Email != "" && !strings.Contains(strings.ToLower(user.Email), strings.ToLower(filter.Email)) {
			continue
		}
		if filter.Username != "" && !strings.Contains(strings.ToLower(user.Username), strings.ToLower(filter.Username)) {
			continue
		}
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if filter.Status != "" && user.Status != filter.Status {
			continue
		}
		cp := *user
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

type fakePlaceRepo struct {
	mu     sync.Mutex
	places map[uuid.UUID]*entity.Place
}

func newFakePlaceRepo() *fakePlaceRepo {
	return &fakePlaceRepo{places: make(map[uuid.UUID]*entity.Place)}
}

func (r *fakePlaceRepo) Create(_ context.Context, place *entity.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *place
	r.places[place.ID] = &cp
	return nil
}

func (r *fakePlaceRepo) Update(_ context.Context, place *entity.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.places[place.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	cp := *place
	r.places[place.ID] = &cp
	return nil
}

func (r *fakePlaceRepo) Delete(_ context.Context, placeID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.places[placeID]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.places, placeID)
	return nil
}

func (r *fakePlaceRepo) GetByID(_ context.Context, placeID uuid.UUID) (*entity.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	place, ok := r.places[placeID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *place
	return &cp, nil
}

func (r *fakePlaceRepo) Filter(_ context.Context, filter entity.PlaceFilter) ([]*entity.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Place
	for _, place := range r.places {
		if filter.Name != "" && !strings.Contains(strings.ToLower(place.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Location != "" && !strings.Contains(strings.ToLower(place.Location), strings.ToLower(filter.Location)) {
			continue
		}
		if filter.PlaceType != "" && place.PlaceType != filter.PlaceType {
			continue
		}
		cp := *place
		result = append(result, &cp)
	}
	return result, nil
}

type fakeTeamRepo struct {
	mu    sync.Mutex
	teams map[uuid.UUID]*entity.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[uuid.UUID]*entity.Team)}
}

func (r *fakeTeamRepo) Create(_ context.Context, team *entity.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *team
	r.teams[team.ID] = &cp
	return nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *entity.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[team.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	cp := *team
	r.teams[team.ID] = &cp
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, teamID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[teamID]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.teams, teamID)
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, teamID uuid.UUID) (*entity.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	team, ok := r.teams[teamID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *team
	return &cp, nil
}

func (r *fakeTeamRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, team := range r.teams {
		if strings.EqualFold(team.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTeamRepo) Filter(_ context.Context, filter entity.TeamFilter) ([]*entity.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Team
	for _, team := range r.teams {
		if filter.Name != "" && !strings.Contains(strings.ToLower(team.Name), strings.ToLower(filter.Name)) {
			continue
		}
		cp := *team
		result = append(result, &cp)
	}
	return result, nil
}

func (r *fakeTeamRepo) GetAll(_ context.Context) ([]*entity.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Team
	for _, team := range r.teams {
		cp := *team
		result = append(result, &cp)
	}
	return result, nil
}

func (r *fakeTeamRepo) GetExcluding(_ context.Context, teamIDs []uuid.UUID, page, size int) ([]*entity.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	excluded := make(map[uuid.UUID]bool, len(teamIDs))
	for _, id := range teamIDs {
		excluded[id] = true
	}
	var result []*entity.Team
	for _, team := range r.teams {
		if excluded[team.ID] {
			continue
		}
		cp := *team
		result = append(result, &cp)
	}
	return result, nil
}

type fakeMemberRepo struct {
	mu      sync.Mutex
	members map[uuid.UUID]*entity.TeamMember
	users   *fakeUserRepo
	teams   *fakeTeamRepo
}

func newFakeMemberRepo(users *fakeUserRepo, teams *fakeTeamRepo) *fakeMemberRepo {
	return &fakeMemberRepo{
		members: make(map[uuid.UUID]*entity.TeamMember),
		users:   users,
		teams:   teams,
	}
}

func (r *fakeMemberRepo) Create(_ context.Context, member *entity.TeamMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *member
	r.members[member.ID] = &cp
	return nil
}

func (r *fakeMemberRepo) Update(_ context.Context, member *entity.TeamMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[member.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	cp := *member
	r.members[member.ID] = &cp
	return nil
}

func (r *fakeMemberRepo) Delete(_ context.Context, memberID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[memberID]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.members, memberID)
	return nil
}

func (r *fakeMemberRepo) GetByID(_ context.Context, memberID uuid.UUID) (*entity.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	member, ok := r.members[memberID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *member
	return &cp, nil
}

func (r *fakeMemberRepo) GetByTeamAndUser(_ context.Context, teamID, userID uuid.UUID) (*entity.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, member := range r.members {
		if member.TeamID == teamID && member.UserID == userID {
			cp := *member
			return &cp, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r *fakeMemberRepo) detail(member *entity.TeamMember) *entity.TeamMemberDetail {
	d := &entity.TeamMemberDetail{
		ID:     member.ID,
		TeamID: member.TeamID,
		UserID: member.UserID,
		Role:   member.Role,
		Status: member.Status,
	}
	if team, err := r.teams.GetByID(context.Background(), member.TeamID); err == nil {
		d.TeamName = team.Name
	}
	if user, err := r.users.GetByID(context.Background(), member.UserID); err == nil {
		d.Username = user.Username
		d.Email = user.Email
	}
	return d
}

func (r *fakeMemberRepo) GetByTeam(_ context.Context, teamID uuid.UUID) ([]*entity.TeamMemberDetail, error) {
	r.mu.Lock()
	members := make([]*entity.TeamMember, 0)
	for _, member := range r.members {
		if member.TeamID == teamID {
			cp := *member
			members = append(members, &cp)
		}
	}
	r.mu.Unlock()

	result := make([]*entity.TeamMemberDetail, 0, len(members))
	for _, m := range members {
		result = append(result, r.detail(m))
	}
	return result, nil
}

func (r *fakeMemberRepo) GetByUser(_ context.Context, userID uuid.UUID) ([]*entity.TeamMemberDetail, error) {
	r.mu.Lock()
	members := make([]*entity.TeamMember, 0)
	for _, member := range r.members {
		if member.UserID == userID {
			cp := *member
			members = append(members, &cp)
		}
	}
	r.mu.Unlock()

	result := make([]*entity.TeamMemberDetail, 0, len(members))
	for _, m := range members {
		result = append(result, r.detail(m))
	}
	return result, nil
}

func (r *fakeMemberRepo) GetByUserAndStatus(_ context.Context, userID uuid.UUID, status entity.TeamStatus) ([]*entity.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.TeamMember
	for _, member := range r.members {
		if member.UserID == userID && member.Status == status {
			cp := *member
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeMemberRepo) GetByTeamAndStatus(_ context.Context, teamID uuid.UUID, status entity.TeamStatus) ([]*entity.TeamMemberDetail, error) {
	r.mu.Lock()
	members := make([]*entity.TeamMember, 0)
	for _, member := range r.members {
		if member.TeamID == teamID && member.Status == status {
			cp := *member
			members = append(members, &cp)
		}
	}
	r.mu.Unlock()

	result := make([]*entity.TeamMemberDetail, 0, len(members))
	for _, m := range members {
		result = append(result, r.detail(m))
	}
	return result, nil
}

type fakeBookingRepo struct {
	mu      sync.Mutex
	matches map[uuid.UUID]*entity.BookingMatch
	places  *fakePlaceRepo
	teams   *fakeTeamRepo
	users   *fakeUserRepo
}

func newFakeBookingRepo(places *fakePlaceRepo, teams *fakeTeamRepo, users *fakeUserRepo) *fakeBookingRepo {
	return &fakeBookingRepo{
		matches: make(map[uuid.UUID]*entity.BookingMatch),
		places:  places,
		teams:   teams,
		users:   users,
	}
}

func (r *fakeBookingRepo) Create(_ context.Context, match *entity.BookingMatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.matches {
		if existing.PlaceID == match.PlaceID &&
			existing.Status != entity.MatchStatusCancelled &&
			existing.StartTime.Before(match.EndTime) &&
			existing.EndTime.After(match.StartTime) {
			return domainErrors.ErrAlreadyExists
		}
	}
	cp := *match
	r.matches[match.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, match *entity.BookingMatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[match.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	cp := *match
	r.matches[match.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, matchID uuid.UUID) (*entity.BookingMatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	match, ok := r.matches[matchID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *match
	return &cp, nil
}

func (r *fakeBookingRepo) GetByIDForUpdate(ctx context.Context, matchID uuid.UUID) (*entity.BookingMatch, error) {
	return r.GetByID(ctx, matchID)
}

func (r *fakeBookingRepo) ExistsOverlapping(_ context.Context, placeID uuid.UUID, start, end time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, match := range r.matches {
		if match.PlaceID == placeID &&
			match.Status != entity.MatchStatusCancelled &&
			match.StartTime.Before(end) &&
			match.EndTime.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) GetByUser(_ context.Context, userID uuid.UUID) ([]*entity.BookingMatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.BookingMatch
	for _, match := range r.matches {
		if match.UserID == userID {
			cp := *match
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *fakeBookingRepo) GetByTeam(_ context.Context, teamID uuid.UUID) ([]*entity.BookingMatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.BookingMatch
	for _, match := range r.matches {
		if match.TeamID == teamID {
			cp := *match
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *fakeBookingRepo) GetByPlace(_ context.Context, placeID uuid.UUID) ([]*entity.BookingMatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.BookingMatch
	for _, match := range r.matches {
		if match.PlaceID == placeID {
			cp := *match
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *fakeBookingRepo) detail(match *entity.BookingMatch) *entity.BookingDetail {
	d := &entity.BookingDetail{
		ID:        match.ID,
		StartTime: match.StartTime,
		EndTime:   match.EndTime,
		Status:    match.Status,
		CreatedAt: match.CreatedAt,
		PlaceID:   match.PlaceID,
		TeamID:    match.TeamID,
		UserID:    match.UserID,
	}
	if place, err := r.places.GetByID(context.Background(), match.PlaceID); err == nil {
		d.PlaceName = place.Name
		d.PlaceType = place.PlaceType
	}
	if team, err := r.teams.GetByID(context.Background(), match.TeamID); err == nil {
		d.TeamName = team.Name
	}
	if user, err := r.users.GetByID(context.Background(), match.UserID); err == nil {
		d.Username = user.Username
	}
	return d
}

func (r *fakeBookingRepo) GetAllDetailed(_ context.Context) ([]*entity.BookingDetail, error) {
	r.mu.Lock()
	matches := make([]*entity.BookingMatch, 0, len(r.matches))
	for _, match := range r.matches {
		cp := *match
		matches = append(matches, &cp)
	}
	r.mu.Unlock()

	result := make([]*entity.BookingDetail, 0, len(matches))
	for _, m := range matches {
		result = append(result, r.detail(m))
	}
	return result, nil
}

func (r *fakeBookingRepo) GetDetail(ctx context.Context, matchID uuid.UUID) (*entity.BookingDetail, error) {
	match, err := r.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return r.detail(match), nil
}

type fakeParticipantRepo struct {
	mu           sync.Mutex
	participants map[uuid.UUID]*entity.MatchParticipant
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{participants: make(map[uuid.UUID]*entity.MatchParticipant)}
}

func (r *fakeParticipantRepo) Create(_ context.Context, participant *entity.MatchParticipant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *participant
	r.participants[participant.ID] = &cp
	return nil
}

func (r *fakeParticipantRepo) Update(_ context.Context, participant *entity.MatchParticipant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.participants[participant.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	cp := *participant
	r.participants[participant.ID] = &cp
	return nil
}

func (r *fakeParticipantRepo) GetByID(_ context.Context, participantID uuid.UUID) (*entity.MatchParticipant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	participant, ok := r.participants[participantID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *participant
	return &cp, nil
}

func (r *fakeParticipantRepo) GetByMatchAndUser(_ context.Context, matchID, userID uuid.UUID) (*entity.MatchParticipant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, participant := range r.participants {
		if participant.BookingMatchID == matchID && participant.UserID == userID {
			cp := *participant
			return &cp, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r *fakeParticipantRepo) GetByMatch(_ context.Context, matchID uuid.UUID) ([]*entity.ParticipantDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.ParticipantDetail
	for _, p := range r.participants {
		if p.BookingMatchID == matchID {
			result = append(result, &entity.ParticipantDetail{
				ID:             p.ID,
				BookingMatchID: p.BookingMatchID,
				UserID:         p.UserID,
				Status:         p.Status,
				RespondedAt:    p.RespondedAt,
			})
		}
	}
	return result, nil
}

func (r *fakeParticipantRepo) GetUserMatches(_ context.Context, userID uuid.UUID) ([]*entity.UserMatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.UserMatch
	for _, p := range r.participants {
		if p.UserID == userID {
			result = append(result, &entity.UserMatch{
				MatchID:          p.BookingMatchID,
				ParticipantID:    p.ID,
				InvitationStatus: p.Status,
			})
		}
	}
	return result, nil
}

func (r *fakeParticipantRepo) CountAccepted(_ context.Context, matchID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, p := range r.participants {
		if p.BookingMatchID == matchID && p.Status == entity.ParticipantStatusAccepted {
			count++
		}
	}
	return count, nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*entity.Request
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[uuid.UUID]*entity.Request)}
}

func (r *fakeRequestRepo) Create(_ context.Context, request *entity.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *request
	r.requests[request.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) Update(_ context.Context, request *entity.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[request.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	cp := *request
	r.requests[request.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, requestID uuid.UUID) (*entity.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[requestID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *request
	return &cp, nil
}

func (r *fakeRequestRepo) GetByJoker(_ context.Context, jokerID uuid.UUID) (*entity.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, request := range r.requests {
		if request.JokerID == jokerID {
			cp := *request
			return &cp, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r *fakeRequestRepo) DeleteByJokers(_ context.Context, jokerIDs []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, jokerID := range jokerIDs {
		for id, request := range r.requests {
			if request.JokerID == jokerID {
				delete(r.requests, id)
			}
		}
	}
	return nil
}

func (r *fakeRequestRepo) GetByReceiver(_ context.Context, receiverID uuid.UUID) ([]*entity.RequestDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.RequestDetail
	for _, request := range r.requests {
		if request.ReceiverID == receiverID {
			result = append(result, &entity.RequestDetail{Request: *request})
		}
	}
	return result, nil
}

func (r *fakeRequestRepo) GetBySender(_ context.Context, senderID uuid.UUID) ([]*entity.RequestDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.RequestDetail
	for _, request := range r.requests {
		if request.SenderID == senderID {
			result = append(result, &entity.RequestDetail{Request: *request})
		}
	}
	return result, nil
}

// --- Общая обвязка для тестов ---

type testEnv struct {
	users        *fakeUserRepo
	places       *fakePlaceRepo
	teams        *fakeTeamRepo
	members      *fakeMemberRepo
	bookings     *fakeBookingRepo
	participants *fakeParticipantRepo
	requests     *fakeRequestRepo
	notifier     *fakeNotifier
	events       *fakeEvents
	authz        *Authorizer
	tx           fakeTxManager
}

func newTestEnv() *testEnv {
	users := newFakeUserRepo()
	places := newFakePlaceRepo()
	teams := newFakeTeamRepo()
	members := newFakeMemberRepo(users, teams)
	return &testEnv{
		users:        users,
		places:       places,
		teams:        teams,
		members:      members,
		bookings:     newFakeBookingRepo(places, teams, users),
		participants: newFakeParticipantRepo(),
		requests:     newFakeRequestRepo(),
		notifier:     &fakeNotifier{},
		events:       &fakeEvents{},
		authz:        NewAuthorizer(teams, members),
	}
}

func (e *testEnv) addUser(username, email string, role entity.UserRole) *entity.User {
	user := &entity.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Role:      role,
		Status:    entity.UserStatusActive,
		CreatedAt: time.Now(),
	}
	_ = e.users.Create(context.Background(), user)
	return user
}

func (e *testEnv) identity(user *entity.User) entity.Identity {
	return entity.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Status: user.Status,
	}
}

func (e *testEnv) addPlace(name string, placeType entity.PlaceType) *entity.Place {
	place := &entity.Place{
		ID:        uuid.New(),
		Name:      name,
		Location:  "Cairo",
		PlaceType: placeType,
		CreatedAt: time.Now(),
	}
	_ = e.places.Create(context.Background(), place)
	return place
}

func (e *testEnv) addTeam(name string, creator *entity.User) *entity.Team {
	team := &entity.Team{
		ID:          uuid.New(),
		Name:        name,
		Description: "test team",
		CreatorID:   creator.ID,
		CreatedAt:   time.Now(),
	}
	_ = e.teams.Create(context.Background(), team)
	_ = e.members.Create(context.Background(), &entity.TeamMember{
		ID:        uuid.New(),
		TeamID:    team.ID,
		UserID:    creator.ID,
		Role:      entity.TeamRoleOrganizer,
		Status:    entity.TeamStatusApproved,
		CreatedAt: time.Now(),
	})
	return team
}
