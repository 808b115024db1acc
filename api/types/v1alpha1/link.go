package v1alpha1

// LinkResponse is the remote pairing endpoint's reply to a link request.
// Exactly one of UUID or Message is populated: UUID on success, Message
// with a human-readable reason on rejection.
type LinkResponse struct {
	// UUID is the opaque device identity issued for the submitted code
	UUID string `json:"uuid,omitempty"`
	// Message explains why the code was rejected
	Message string `json:"message,omitempty"`
}
