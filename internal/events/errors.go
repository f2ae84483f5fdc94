package events

import "errors"

var (
	// ErrUnexpectedType indicates the CloudEvent type does not match the route.
	ErrUnexpectedType = errors.New("unexpected event type")
	// ErrInvalidPayload indicates the event data could not be decoded.
	ErrInvalidPayload = errors.New("invalid event payload")
	// ErrPathMismatch indicates the document path does not match the trigger template.
	ErrPathMismatch = errors.New("document path does not match template")
)
