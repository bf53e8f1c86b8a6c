package service

import "errors"

// ErrorKind classifies domain errors so the HTTP layer can pick a status code.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindGone
)

// Error is a domain failure with a client-safe message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the kind of the first domain error in err's chain.
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindUnknown
}

var (
	ErrAuthenticationRequired = newError(KindUnauthenticated, "Authentication required")
	ErrInvalidCredentials     = newError(KindUnauthenticated, "Invalid email or password")
	ErrInvalidToken           = newError(KindUnauthenticated, "Invalid or expired token")
	ErrEmailInUse             = newError(KindConflict, "Email already registered")
	ErrPasswordTooLong        = newError(KindValidation, "Password must be at most 72 bytes")
	ErrUserNotFound           = newError(KindNotFound, "User not found")

	ErrProjectNotFound    = newError(KindNotFound, "Project not found")
	ErrNotProjectOwner    = newError(KindForbidden, "Only the project owner can perform this action")
	ErrInvalidProjectName = newError(KindValidation, "Project name must be at least 2 characters")
	ErrInvalidDomain      = newError(KindValidation, "Please enter a valid domain (e.g. example.com)")
	ErrInvalidAPIKey      = newError(KindUnauthenticated, "Invalid API key")
	ErrNothingToUpdate    = newError(KindValidation, "Nothing to update")

	ErrFeedbackNotFound  = newError(KindNotFound, "Feedback item not found")
	ErrTitleTooShort     = newError(KindValidation, "Title must be at least 3 characters")
	ErrDescriptionShort  = newError(KindValidation, "Description must be at least 10 characters")
	ErrProjectIDRequired = newError(KindValidation, "Project ID is required")
	ErrInvalidVoteType   = newError(KindValidation, "Vote type must be upvote or downvote")

	ErrCommentNotFound       = newError(KindNotFound, "Comment not found")
	ErrParentCommentNotFound = newError(KindNotFound, "Parent comment not found")
	ErrCommentTooShort       = newError(KindValidation, "Comment must be at least 5 characters")
	ErrNotCommentOwner       = newError(KindForbidden, "Only comment owner can edit content")
	ErrModerationForbidden   = newError(KindForbidden, "Only project owner can moderate comments")
	ErrDeleteForbidden       = newError(KindForbidden, "Unauthorized to delete this comment")
	ErrCommentDeleted        = newError(KindGone, "Cannot update deleted comment")
	ErrCommentAlreadyDeleted = newError(KindGone, "Comment already deleted")

	ErrInvalidFullName = newError(KindValidation, "Please enter your full name")

	ErrNotificationNotFound = newError(KindNotFound, "Notification not found")
)
