package errors

import "fmt"

var (
	ErrWorkerPanic          = fmt.Errorf("worker panic")
	ErrEmptyWords           = fmt.Errorf("no words have been found")
	ErrAlreadySeeded        = fmt.Errorf("transcript has already been seeded")
	ErrEmptyContent         = fmt.Errorf("message content is empty")
	ErrUnknownAuthor        = fmt.Errorf("message has no author")
	ErrSendInFlight         = fmt.Errorf("a send is already in flight")
	ErrFeedStopped          = fmt.Errorf("chat feed is stopped")
	ErrFeedLoading          = fmt.Errorf("chat history is still loading")
	ErrEmptyDirectory       = fmt.Errorf("directory has no peers or no content")
	ErrDuplicateParticipant = fmt.Errorf("participant id is declared twice")
	ErrInvalidConfig        = fmt.Errorf("invalid configuration")
)
