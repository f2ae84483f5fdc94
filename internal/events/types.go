package events

// CloudEvent types delivered by Eventarc.
const (
	TypeAuthUserCreated          = "google.firebase.auth.user.v1.created"
	TypeFirestoreDocumentUpdated = "google.cloud.firestore.document.v1.updated"
)

// Data content types accepted for Firestore document events.
const (
	ContentTypeProtobuf = "application/protobuf"
	ContentTypeJSON     = "application/json"
)
