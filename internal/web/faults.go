package web

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Fixed user-visible messages per failure class. Application faults carry
// their own message; transport and server-side failures never leak detail.
const (
	msgServiceUnavailable = "The service is currently unavailable. Please try again later."
	msgCommunication      = "A communication error occurred while contacting the service."
	msgUnexpected         = "An unexpected error occurred."
)

// userMessage maps a remote-call error to the message shown to the end user.
// Client-classified faults keep their service-provided text; everything else
// resolves to a fixed generic message.
func userMessage(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return msgUnexpected
	}
	switch st.Code() {
	case codes.InvalidArgument, codes.NotFound, codes.AlreadyExists,
		codes.FailedPrecondition, codes.PermissionDenied:
		return "Error: " + st.Message()
	case codes.Unauthenticated:
		return st.Message()
	case codes.Unavailable, codes.DeadlineExceeded:
		return msgCommunication
	default:
		return msgUnexpected
	}
}
