package cli

import (
	"errors"

	"github.com/alexanderramin/planeasy/internal/cli/formatter"
	"github.com/alexanderramin/planeasy/internal/domain"
)

const saveFailedMessage = "failed to save plans, please try again"

// userError keeps the cause reachable through errors.Is while showing a
// message written for the user.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

// FriendlyError rewrites errors whose raw text is not meant for users.
// A failed save becomes a retry hint; everything else passes through.
func FriendlyError(err error) error {
	var se *domain.StorageError
	if errors.As(err, &se) && se.Op == "save" {
		return &userError{msg: saveFailedMessage, err: err}
	}
	return err
}

// shellError renders an error for display inside the TUI.
func shellError(err error) string {
	return formatter.StyleRed.Render("Error: " + FriendlyError(err).Error())
}
