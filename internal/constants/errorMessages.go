package constants

const (
	MsgAirportNotFound     = "Airport not found"
	MsgAirportLookupFailed = "Failed to look up airport"
	MsgTooManyRequests     = "Too many requests"
)
