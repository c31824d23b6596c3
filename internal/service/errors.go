package service

type ErrorCode string

const (
	ErrorCodeNotFound              ErrorCode = "NOT_FOUND"
	ErrorCodeAlreadyExists         ErrorCode = "ALREADY_EXISTS"
	ErrorCodeInvalidBody           ErrorCode = "INVALID_BODY"
	ErrorCodeAuthRequired          ErrorCode = "AUTH_REQUIRED"
	ErrorCodeForbidden             ErrorCode = "FORBIDDEN"
	ErrorCodeUnauthorizedDomain    ErrorCode = "UNAUTHORIZED_DOMAIN"
	ErrorCodeNoActiveHackathon     ErrorCode = "NO_ACTIVE_HACKATHON"
	ErrorCodeMemberNotApproved     ErrorCode = "MEMBER_NOT_APPROVED"
	ErrorCodeLeaderReassignPartial ErrorCode = "LEADER_REASSIGN_PARTIAL"
	ErrorCodeUnspecified           ErrorCode = "UNSPECIFIED"
)

type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func (e *Error) Error() string {
	return e.Message
}
