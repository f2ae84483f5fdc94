package events

import (
	"bytes"
	"fmt"
	"mime"

	"github.com/cloudevents/sdk-go/v2/event"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

var jsonOptions = protojson.UnmarshalOptions{DiscardUnknown: true}

// unmarshalData decodes the event data into out. JSON payloads are passed through
// prepare first when it is non-nil. Without a datacontenttype the payload is sniffed:
// structured-mode events omit it for JSON data.
func unmarshalData(e *event.Event, out proto.Message, prepare func([]byte) ([]byte, error)) error {
	payload := e.Data()
	if len(payload) == 0 {
		return nil
	}

	contentType := e.DataContentType()
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}
	if contentType == "" {
		contentType = sniffContentType(payload)
	}

	switch contentType {
	case ContentTypeJSON:
		if prepare != nil {
			var err error
			if payload, err = prepare(payload); err != nil {
				return err
			}
		}
		return jsonOptions.Unmarshal(payload, out)
	case ContentTypeProtobuf:
		return proto.Unmarshal(payload, out)
	default:
		return fmt.Errorf("unsupported data content type %q", contentType)
	}
}

func sniffContentType(payload []byte) string {
	if trimmed := bytes.TrimLeft(payload, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '{' {
		return ContentTypeJSON
	}
	return ContentTypeProtobuf
}
