package messages

const (
	FailedToParseMsg     = "failed to parse API response"
	FieldsDefaulted      = "payload for %s had missing fields"
	InvalidRegionMsg     = "unsupported region %q"
	ListenerFailed       = "listener on %s failed"
	RequestFailedMsg     = "API request failed on URL %s"
	UnsupportedMethodMsg = "unsupported HTTP method %s"
)
