package cli

import (
	"errors"
	"fmt"

	"github.com/okian/swingsheet/internal/adapters/credentials"
	"github.com/okian/swingsheet/internal/adapters/history"
	"github.com/okian/swingsheet/internal/adapters/trackman"
	service "github.com/okian/swingsheet/internal/app"
)

// ErrInvalidReportID is returned when an argument is not a report identifier.
var ErrInvalidReportID = errors.New("invalid report identifier")

// Message turns err into the one-line text shown to the operator.
func Message(err error) string {
	var rerr *trackman.RetrievalError
	switch {
	case errors.Is(err, credentials.ErrAuthenticationMissing):
		return "no report service token found: sign in at the report site in your browser or run `swingsheet token set <token>`"
	case errors.Is(err, service.ErrNoCandidatesFound):
		return "no reports found in browser history: open a report in the browser first"
	case errors.Is(err, history.ErrStoreUnavailable):
		return fmt.Sprintf("browser history could not be read (%v)", err)
	case errors.As(err, &rerr) && rerr.StatusCode > 0:
		return fmt.Sprintf("report service answered with status %d", rerr.StatusCode)
	case errors.Is(err, trackman.ErrRetrievalFailed):
		return fmt.Sprintf("report service unreachable (%v)", err)
	default:
		return err.Error()
	}
}
