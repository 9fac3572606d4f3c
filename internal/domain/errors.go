package domain

import "errors"

var (
	ErrValidation           = errors.New("validation failed")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid login")
	ErrNotFound             = errors.New("not found")
	ErrConfirmationRequired = errors.New("confirmation required")
)

// UserMessage returns the notice shown to the user for err.
// Wrapped errors carry their own message after the sentinel prefix.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var notice *Notice
	if errors.As(err, &notice) {
		return notice.Message
	}
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		return "Email already registered"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid login"
	case errors.Is(err, ErrNotFound):
		return "Not found"
	case errors.Is(err, ErrConfirmationRequired):
		return "Please confirm the deletion"
	case errors.Is(err, ErrValidation):
		return "Please fill all fields"
	default:
		return "Something went wrong, please try again"
	}
}

// Notice is a user error with a specific message.
type Notice struct {
	Kind    error
	Message string
}

func NewNotice(kind error, message string) *Notice {
	return &Notice{Kind: kind, Message: message}
}

func (n *Notice) Error() string {
	return n.Kind.Error() + ": " + n.Message
}

func (n *Notice) Unwrap() error {
	return n.Kind
}
