package usecase

import "fmt"

// RepoErrorCode classifies a failed repository interaction.
type RepoErrorCode string

const (
	// RepoOpenFailed means the repository could not be opened at all.
	RepoOpenFailed RepoErrorCode = "open-failed"
	// RepoBare means the repository has no working tree.
	RepoBare RepoErrorCode = "bare-repository"
	// RepoHeadFailed means HEAD resolution failed for a reason other than
	// an unborn or missing branch.
	RepoHeadFailed RepoErrorCode = "head-failed"
	// RepoStatusFailed means the file status enumeration failed.
	RepoStatusFailed RepoErrorCode = "status-failed"
)

// RepoError is the single error type for repository interactions. All
// failures surfaced by the repository adapter carry a code and message.
type RepoError struct {
	Code    RepoErrorCode
	Message string
	Err     error
}

func (e *RepoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RepoError) Unwrap() error {
	return e.Err
}
