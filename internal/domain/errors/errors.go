package errors

import "errors"

var (
	ErrValidation         = errors.New("VALIDATION")
	ErrNotFound           = errors.New("NOT_FOUND")
	ErrAlreadyExists      = errors.New("ALREADY_EXISTS")
	ErrForbidden          = errors.New("FORBIDDEN")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrNoContent          = errors.New("NO_CONTENT")
	ErrNoData             = errors.New("NO_DATA")
	ErrUnauthorized       = errors.New("UNAUTHORIZED")
)

// Kind определяет категорию доменной ошибки, из неё выводится HTTP статус
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindAlreadyExists
	KindForbidden
	KindInvalidCredentials
	KindNoContent
	KindNoData
	KindUnauthorized
	KindInternal
)

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	case KindAlreadyExists:
		return ErrAlreadyExists
	case KindForbidden:
		return ErrForbidden
	case KindInvalidCredentials:
		return ErrInvalidCredentials
	case KindNoContent:
		return ErrNoContent
	case KindNoData:
		return ErrNoData
	case KindUnauthorized:
		return ErrUnauthorized
	default:
		return nil
	}
}

// Code — стабильный числовой код ошибки с сообщением для клиента
type Code struct {
	Code    int
	Message string
}

// Коды входят в публичный контракт API и не меняются
var (
	// Пользователи
	InvalidUsername    = Code{200, "Username is either empty or null"}
	InvalidEmail       = Code{201, "Email is either empty or null"}
	EmailAlreadyExists = Code{202, "Email already exists"}
	InvalidPassword    = Code{203, "Password is either empty or null"}
	InvalidUserRole    = Code{204, "User role is invalid"}
	InvalidUserStatus  = Code{205, "User status is invalid"}
	UserAlreadyExists  = Code{206, "User already exists"}
	UserNotFound       = Code{207, "User not found"}
	ForbiddenStatus    = Code{208, "Inactive user"}

	// Команды
	InvalidTeamID          = Code{300, "Team ID is either empty or null"}
	InvalidTeamName        = Code{301, "Team name is either empty or null"}
	InvalidTeamDescription = Code{302, "Team description is either empty or null"}
	TeamNotFound           = Code{303, "Team not found"}
	TeamAlreadyExists      = Code{304, "Team already exists"}
	ForbiddenRole          = Code{305, "Must be an organizer"}

	// Участники команд
	InvalidTeamMemberRole           = Code{400, "Team member role is invalid"}
	InvalidTeamMemberStatus         = Code{401, "Team member status is invalid"}
	TeamMemberAlreadyExists         = Code{402, "User is already a team member"}
	TeamMemberNotFound              = Code{403, "Team member not found"}
	InvalidTeamStatus               = Code{404, "Team status is invalid"}
	TeamMemberAlreadyPending        = Code{405, "User is already pending to join this team"}
	TeamMemberResponseAlreadyExists = Code{406, "Team member response already exists"}

	// Площадки
	InvalidPlaceID          = Code{500, "Place ID is either empty or null"}
	InvalidPlaceName        = Code{501, "Place name is either empty or null"}
	InvalidPlaceDescription = Code{502, "Place description is either empty or null"}
	InvalidPlaceImageURL    = Code{503, "Place image URL is either empty or null"}
	InvalidPlaceLocation    = Code{504, "Place location is either empty or null"}
	InvalidPlaceType        = Code{505, "Place type is invalid"}
	PlaceNotFound           = Code{506, "Place not found"}

	// Брони
	InvalidBookingMatchID     = Code{600, "Booking match ID is either empty or null"}
	InvalidBookingStartTime   = Code{601, "Booking start time is invalid"}
	InvalidBookingEndTime     = Code{602, "Booking end time is invalid"}
	InvalidMatchStatus        = Code{603, "Booking match status is invalid"}
	BookingMatchNotFound      = Code{604, "Booking match not found"}
	TimeSlotUnavailable       = Code{605, "The selected time slot is already booked for this place"}
	UnauthorizedBookingAction = Code{606, "Only team organizers can perform this action"}
	MatchCannotBeCancelledNow = Code{607, "Match Can not be cancelled now"}

	// Участники матчей
	InvalidParticipantID             = Code{700, "Participant ID is either empty or null"}
	InvalidParticipantStatus         = Code{701, "Participant status is invalid"}
	MatchParticipantNotFound         = Code{702, "Match participant not found"}
	MatchParticipantAlreadyExists    = Code{703, "User is already a participant in this match"}
	InvalidParticipantEmail          = Code{704, "Participant email is either empty or null"}
	MatchParticipantAlreadyResponded = Code{705, "Participant has already responded to the invitation"}
	MatchCapacityExceeded            = Code{706, "Match capacity exceeded - invitation expired"}

	// Запросы
	InvalidRequestType    = Code{800, "Request type is invalid"}
	InvalidRequestStatus  = Code{801, "Request status is invalid"}
	InvalidRequestMessage = Code{802, "Request message is either empty or null"}
	RequestNotFound       = Code{803, "Request not found"}

	// Общие
	NoContent          = Code{900, "No content available"}
	NotFound           = Code{901, "Resource not found"}
	NoData             = Code{902, "No data provided"}
	Unauthorized       = Code{903, "Unauthorized access"}
	Forbidden          = Code{904, "Action is forbidden"}
	InternalError      = Code{905, "Internal server error"}
	InvalidCredentials = Code{906, "Invalid credentials provided"}
	InvalidToken       = Code{907, "Token is invalid or expired"}
)

// DomainError представляет доменную ошибку с категорией и стабильным кодом
type DomainError struct {
	Kind    Kind
	Code    int
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// New создает доменную ошибку заданной категории
func New(kind Kind, code Code) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code.Code,
		Message: code.Message,
		Err:     kind.sentinel(),
	}
}

func Validation(code Code) *DomainError { return New(KindValidation, code) }

func NotFoundError(code Code) *DomainError { return New(KindNotFound, code) }

func AlreadyExists(code Code) *DomainError { return New(KindAlreadyExists, code) }

func ForbiddenAction(code Code) *DomainError { return New(KindForbidden, code) }

func InvalidCreds(code Code) *DomainError { return New(KindInvalidCredentials, code) }

func NoContentError(code Code) *DomainError { return New(KindNoContent, code) }

func NoDataError(code Code) *DomainError { return New(KindNoData, code) }

func UnauthorizedErr(code Code) *DomainError { return New(KindUnauthorized, code) }

// AsDomain извлекает DomainError из цепочки ошибок
func AsDomain(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
