package errors

import (
	"errors"
	"maps"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"

	"github.com/louisbranch/kickback/internal/platform/errors/i18n"
)

// Domain is the ErrorInfo domain of kickback errors.
const Domain = "kickback.game"

// Error is a coded error. Message is for logs; players see the catalog
// message for Code rendered with Metadata.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string {
	switch {
	case e.Cause == nil:
		return e.Message
	case e.Message == "":
		return e.Cause.Error()
	default:
		return e.Message + ": " + e.Cause.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any coded error with the same code, so sentinels compare equal
// to copies carrying metadata or causes.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// New returns a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap returns a coded error around cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// With returns a copy of e with key set in its metadata.
func (e *Error) With(key, value string) *Error {
	clone := *e
	clone.Metadata = maps.Clone(e.Metadata)
	if clone.Metadata == nil {
		clone.Metadata = make(map[string]string, 1)
	}
	clone.Metadata[key] = value
	return &clone
}

// CodeOf returns the code of the first coded error in err's chain.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeUnknown
}

// Status converts err into a gRPC status carrying an ErrorInfo and a
// LocalizedMessage rendered from catalog. Uncoded errors become Internal.
func Status(err error, catalog *i18n.Catalog) *status.Status {
	var coded *Error
	if !errors.As(err, &coded) {
		coded = Wrap(CodeUnknown, "", err)
	}
	st := status.New(coded.Code.GRPCCode(), err.Error())
	if catalog == nil {
		catalog = i18n.GetCatalog(i18n.BaseLocale)
	}
	detailed, detailErr := st.WithDetails(
		&errdetails.ErrorInfo{
			Reason:   string(coded.Code),
			Domain:   Domain,
			Metadata: coded.Metadata,
		},
		&errdetails.LocalizedMessage{
			Locale:  catalog.Locale(),
			Message: catalog.Format(string(coded.Code), coded.Metadata),
		},
	)
	if detailErr != nil {
		return st
	}
	return detailed
}

// LocalizedMessage returns the LocalizedMessage detail of st, or its plain
// message when none is attached.
func LocalizedMessage(st *status.Status) string {
	for _, detail := range st.Details() {
		if localized, ok := detail.(*errdetails.LocalizedMessage); ok {
			return localized.Message
		}
	}
	return st.Message()
}
