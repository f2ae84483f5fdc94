package events

import (
	"fmt"
	"strings"

	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/googleapis/google-cloudevents-go/cloud/firestoredata"
)

// DocumentUpdated is a decoded Firestore document-updated event.
// Before and After are nil when the corresponding image is missing.
type DocumentUpdated struct {
	Path   string
	Params map[string]string
	Before map[string]any
	After  map[string]any
}

// DecodeDocumentUpdated decodes a Firestore document-updated CloudEvent and matches its
// document path against template.
func DecodeDocumentUpdated(e *event.Event, template string) (DocumentUpdated, error) {
	if e.Type() != TypeFirestoreDocumentUpdated {
		return DocumentUpdated{}, fmt.Errorf("%w: %s", ErrUnexpectedType, e.Type())
	}

	var data firestoredata.DocumentEventData
	if err := unmarshalData(e, &data, nil); err != nil {
		return DocumentUpdated{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	path := documentPath(e, &data)
	params, ok := MatchPath(template, path)
	if !ok {
		return DocumentUpdated{}, fmt.Errorf("%w: %q vs %q", ErrPathMismatch, path, template)
	}

	return DocumentUpdated{
		Path:   path,
		Params: params,
		Before: documentFields(data.GetOldValue()),
		After:  documentFields(data.GetValue()),
	}, nil
}

func documentPath(e *event.Event, data *firestoredata.DocumentEventData) string {
	if doc, ok := e.Extensions()["document"].(string); ok && doc != "" {
		return strings.Trim(doc, "/")
	}
	if name := data.GetValue().GetName(); name != "" {
		return relativeDocumentPath(name)
	}
	if name := data.GetOldValue().GetName(); name != "" {
		return relativeDocumentPath(name)
	}
	return relativeDocumentPath(e.Subject())
}

func documentFields(doc *firestoredata.Document) map[string]any {
	if doc == nil {
		return nil
	}
	return convertFields(doc.GetFields())
}
