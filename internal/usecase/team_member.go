package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/repository"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/ws"
)

// TeamMemberUseCase реализует приглашения, заявки и членства в командах
type TeamMemberUseCase struct {
	teamRepo    repository.TeamRepository
	memberRepo  repository.TeamMemberRepository
	userRepo    repository.UserRepository
	requestRepo repository.RequestRepository
	txManager   repository.TransactionManager
	authz       *Authorizer
	notifier    Notifier
	events      EventPublisher
}

// NewTeamMemberUseCase создает новый usecase членств
func NewTeamMemberUseCase(
	teamRepo repository.TeamRepository,
	memberRepo repository.TeamMemberRepository,
	userRepo repository.UserRepository,
	requestRepo repository.RequestRepository,
	txManager repository.TransactionManager,
	authz *Authorizer,
	notifier Notifier,
	events EventPublisher,
) *TeamMemberUseCase {
	return &TeamMemberUseCase{
		teamRepo:    teamRepo,
		memberRepo:  memberRepo,
		userRepo:    userRepo,
		requestRepo: requestRepo,
		txManager:   txManager,
		authz:       authz,
		notifier:    notifier,
		events:      events,
	}
}

func (uc *TeamMemberUseCase) getTeam(ctx context.Context, teamID uuid.UUID) (*entity.Team, error) {
	team, err := uc.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NotFoundError(domainErrors.TeamNotFound)
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

func (uc *TeamMemberUseCase) getMember(ctx context.Context, memberID uuid.UUID) (*entity.TeamMember, error) {
	member, err := uc.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NotFoundError(domainErrors.TeamMemberNotFound)
		}
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}
	return member, nil
}

func (uc *TeamMemberUseCase) notifyUser(userID, requestID uuid.UUID, message string) {
	uc.events.Publish(ws.NotificationTopic(userID), ws.NotificationEvent{
		Type:      "REQUEST",
		RequestID: requestID,
		Message:   message,
		SentAt:    time.Now(),
	})
}

// Invite приглашает пользователя по почте в команду; доступно организатору
func (uc *TeamMemberUseCase) Invite(ctx context.Context, identity entity.Identity, teamID uuid.UUID, email string) (*entity.TeamMember, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	if strings.TrimSpace(email) == "" {
		return nil, domainErrors.Validation(domainErrors.InvalidEmail)
	}

	team, err := uc.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if err := uc.authz.RequireTeamOrganizer(ctx, identity.UserID, teamID); err != nil {
		return nil, err
	}

	invitee, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NotFoundError(domainErrors.UserNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if _, err := uc.memberRepo.GetByTeamAndUser(ctx, teamID, invitee.ID); err == nil {
		return nil, domainErrors.AlreadyExists(domainErrors.TeamMemberAlreadyExists)
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	inviterID := identity.UserID
	member := &entity.TeamMember{
		ID:        uuid.New(),
		TeamID:    teamID,
		UserID:    invitee.ID,
		Role:      entity.TeamRolePlayer,
		Status:    entity.TeamStatusPending,
		InvitedBy: &inviterID,
		CreatedAt: time.Now(),
	}

	inviter, err := uc.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inviter: %w", err)
	}

	message := fmt.Sprintf("%s has invited you to join Team %s", inviter.Username, team.Name)

	request := &entity.Request{
		ID:             uuid.New(),
		SenderID:       identity.UserID,
		ReceiverID:     invitee.ID,
		JokerID:        member.ID,
		RequestType:    entity.RequestTypeJoinTeamInvitation,
		Status:         entity.ResponseStatusPending,
		RequestMessage: message,
		SendTime:       time.Now(),
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.memberRepo.Create(ctx, member); err != nil {
			return fmt.Errorf("failed to create team member: %w", err)
		}
		if err := uc.requestRepo.Create(ctx, request); err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.SendTeamInvitation(invitee.Email, message, member.ID)
	uc.notifyUser(invitee.ID, request.ID, message)

	return member, nil
}

// RequestToJoin создает заявку пользователя на вступление в команду
func (uc *TeamMemberUseCase) RequestToJoin(ctx context.Context, identity entity.Identity, teamID uuid.UUID) (*entity.TeamMember, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	team, err := uc.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if existing, err := uc.memberRepo.GetByTeamAndUser(ctx, teamID, identity.UserID); err == nil {
		if existing.Status == entity.TeamStatusPending {
			return nil, domainErrors.AlreadyExists(domainErrors.TeamMemberAlreadyPending)
		}
		return nil, domainErrors.AlreadyExists(domainErrors.TeamMemberAlreadyExists)
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	requester, err := uc.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	creator, err := uc.userRepo.GetByID(ctx, team.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team creator: %w", err)
	}

	member := &entity.TeamMember{
		ID:        uuid.New(),
		TeamID:    teamID,
		UserID:    identity.UserID,
		Role:      entity.TeamRolePlayer,
		Status:    entity.TeamStatusPending,
		CreatedAt: time.Now(),
	}

	message := fmt.Sprintf("%s is asking to join %s", requester.Username, team.Name)

	request := &entity.Request{
		ID:             uuid.New(),
		SenderID:       identity.UserID,
		ReceiverID:     team.CreatorID,
		JokerID:        member.ID,
		RequestType:    entity.RequestTypeJoinTeamRequest,
		Status:         entity.ResponseStatusPending,
		RequestMessage: message,
		SendTime:       time.Now(),
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.memberRepo.Create(ctx, member); err != nil {
			return fmt.Errorf("failed to create team member: %w", err)
		}
		if err := uc.requestRepo.Create(ctx, request); err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.SendTeamJoinRequest(creator.Email, message, member.ID, team.CreatorID)
	uc.notifyUser(team.CreatorID, request.ID, message)

	return member, nil
}

func parseTeamResponse(status string) (entity.TeamStatus, error) {
	s := entity.TeamStatus(strings.ToUpper(strings.TrimSpace(status)))
	if s != entity.TeamStatusApproved && s != entity.TeamStatusRejected {
		return "", domainErrors.Validation(domainErrors.InvalidTeamStatus)
	}
	return s, nil
}

// respondInvitation выполняет переход PENDING → APPROVED | REJECTED
// и закрывает связанный запрос
func (uc *TeamMemberUseCase) respondInvitation(ctx context.Context, member *entity.TeamMember, status entity.TeamStatus) (*entity.Request, error) {
	if member.Status != entity.TeamStatusPending {
		return nil, domainErrors.AlreadyExists(domainErrors.TeamMemberResponseAlreadyExists)
	}

	team, err := uc.getTeam(ctx, member.TeamID)
	if err != nil {
		return nil, err
	}

	responder, err := uc.userRepo.GetByID(ctx, member.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	request, err := uc.requestRepo.GetByJoker(ctx, member.ID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NotFoundError(domainErrors.RequestNotFound)
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	now := time.Now()
	member.Status = status

	request.ResponseMessage = fmt.Sprintf(
		"Your invitation to join Team %s has been %s by %s",
		team.Name, strings.ToLower(string(status)), responder.Username,
	)
	request.ResponseTime = &now
	if status == entity.TeamStatusApproved {
		request.Status = entity.ResponseStatusAccepted
	} else {
		request.Status = entity.ResponseStatusRejected
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.memberRepo.Update(ctx, member); err != nil {
			return fmt.Errorf("failed to update team member: %w", err)
		}
		if err := uc.requestRepo.Update(ctx, request); err != nil {
			return fmt.Errorf("failed to update request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if sender, err := uc.userRepo.GetByID(ctx, request.SenderID); err == nil {
		uc.notifier.SendNotice(sender.Email, "Team Invitation Response", request.ResponseMessage)
	}
	uc.notifyUser(request.SenderID, request.ID, request.ResponseMessage)

	return request, nil
}

// RespondToInvitation — ответ приглашенного на свое приглашение
func (uc *TeamMemberUseCase) RespondToInvitation(ctx context.Context, identity entity.Identity, memberID uuid.UUID, status string) (*entity.TeamMember, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	newStatus, err := parseTeamResponse(status)
	if err != nil {
		return nil, err
	}

	member, err := uc.getMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if member.UserID != identity.UserID {
		return nil, domainErrors.ForbiddenAction(domainErrors.Forbidden)
	}

	if _, err := uc.respondInvitation(ctx, member, newStatus); err != nil {
		return nil, err
	}

	return member, nil
}

// RespondToInvitationByMail — ответ по ссылке из письма, без аутентификации
func (uc *TeamMemberUseCase) RespondToInvitationByMail(ctx context.Context, memberID uuid.UUID, status string) (*entity.TeamMember, error) {
	newStatus, err := parseTeamResponse(status)
	if err != nil {
		return nil, err
	}

	member, err := uc.getMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.respondInvitation(ctx, member, newStatus); err != nil {
		return nil, err
	}

	return member, nil
}

// respondJoinRequest выполняет решение создателя команды по заявке
func (uc *TeamMemberUseCase) respondJoinRequest(ctx context.Context, memberID, organizerID uuid.UUID, status entity.TeamStatus) (*entity.TeamMember, error) {
	member, err := uc.getMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if member.Status != entity.TeamStatusPending {
		return nil, domainErrors.AlreadyExists(domainErrors.TeamMemberResponseAlreadyExists)
	}

	team, err := uc.getTeam(ctx, member.TeamID)
	if err != nil {
		return nil, err
	}

	if team.CreatorID != organizerID {
		return nil, domainErrors.ForbiddenAction(domainErrors.ForbiddenRole)
	}

	organizer, err := uc.userRepo.GetByID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organizer: %w", err)
	}

	request, err := uc.requestRepo.GetByJoker(ctx, member.ID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NotFoundError(domainErrors.RequestNotFound)
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	now := time.Now()
	member.Status = status

	request.ResponseMessage = fmt.Sprintf(
		"Your request to join Team %s has been %s by %s",
		team.Name, strings.ToLower(string(status)), organizer.Username,
	)
	request.ResponseTime = &now
	if status == entity.TeamStatusApproved {
		request.Status = entity.ResponseStatusAccepted
	} else {
		request.Status = entity.ResponseStatusRejected
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.memberRepo.Update(ctx, member); err != nil {
			return fmt.Errorf("failed to update team member: %w", err)
		}
		if err := uc.requestRepo.Update(ctx, request); err != nil {
			return fmt.Errorf("failed to update request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if requester, err := uc.userRepo.GetByID(ctx, member.UserID); err == nil {
		uc.notifier.SendNotice(requester.Email, "Team Join Request Response", request.ResponseMessage)
	}
	uc.notifyUser(member.UserID, request.ID, request.ResponseMessage)

	return member, nil
}

// RespondToJoinRequest — решение создателя команды по заявке на вступление
func (uc *TeamMemberUseCase) RespondToJoinRequest(ctx context.Context, identity entity.Identity, memberID, organizerID uuid.UUID, status string) (*entity.TeamMember, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	if identity.UserID != organizerID {
		return nil, domainErrors.ForbiddenAction(domainErrors.Forbidden)
	}

	newStatus, err := parseTeamResponse(status)
	if err != nil {
		return nil, err
	}

	return uc.respondJoinRequest(ctx, memberID, organizerID, newStatus)
}

// RespondToJoinRequestByMail — решение по ссылке из письма, без аутентификации
func (uc *TeamMemberUseCase) RespondToJoinRequestByMail(ctx context.Context, memberID, organizerID uuid.UUID, status string) (*entity.TeamMember, error) {
	newStatus, err := parseTeamResponse(status)
	if err != nil {
		return nil, err
	}

	return uc.respondJoinRequest(ctx, memberID, organizerID, newStatus)
}

// GetPendingByTeam возвращает нерассмотренные заявки команды; доступно организатору
func (uc *TeamMemberUseCase) GetPendingByTeam(ctx context.Context, identity entity.Identity, teamID uuid.UUID) ([]*entity.TeamMemberDetail, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	if err := uc.authz.RequireTeamOrganizer(ctx, identity.UserID, teamID); err != nil {
		return nil, err
	}

	members, err := uc.memberRepo.GetByTeamAndStatus(ctx, teamID, entity.TeamStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending members: %w", err)
	}

	return members, nil
}

// GetByTeam возвращает участников команды
func (uc *TeamMemberUseCase) GetByTeam(ctx context.Context, identity entity.Identity, teamID uuid.UUID) ([]*entity.TeamMemberDetail, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	if _, err := uc.getTeam(ctx, teamID); err != nil {
		return nil, err
	}

	members, err := uc.memberRepo.GetByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}

	return members, nil
}

// GetByUser возвращает членства пользователя
func (uc *TeamMemberUseCase) GetByUser(ctx context.Context, identity entity.Identity, userID uuid.UUID) ([]*entity.TeamMemberDetail, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	members, err := uc.memberRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}

	return members, nil
}

// GetByID возвращает членство по ID
func (uc *TeamMemberUseCase) GetByID(ctx context.Context, identity entity.Identity, memberID uuid.UUID) (*entity.TeamMember, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	return uc.getMember(ctx, memberID)
}

// IsOrganizer сообщает, является ли текущий пользователь организатором команды
func (uc *TeamMemberUseCase) IsOrganizer(ctx context.Context, identity entity.Identity, teamID uuid.UUID) (bool, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return false, err
	}

	return uc.authz.IsTeamOrganizer(ctx, identity.UserID, teamID)
}

// Delete удаляет членство вместе со связанным запросом: выйти из команды
// может сам участник, исключить другого — организатор
func (uc *TeamMemberUseCase) Delete(ctx context.Context, identity entity.Identity, memberID uuid.UUID) error {
	if err := uc.authz.RequireActive(identity); err != nil {
		return err
	}

	member, err := uc.getMember(ctx, memberID)
	if err != nil {
		return err
	}

	if member.UserID != identity.UserID {
		if err := uc.authz.RequireTeamOrganizer(ctx, identity.UserID, member.TeamID); err != nil {
			return err
		}
	}

	return uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.requestRepo.DeleteByJokers(ctx, []uuid.UUID{member.ID}); err != nil {
			return fmt.Errorf("failed to delete request: %w", err)
		}
		if err := uc.memberRepo.Delete(ctx, member.ID); err != nil {
			return fmt.Errorf("failed to delete team member: %w", err)
		}
		return nil
	})
}
