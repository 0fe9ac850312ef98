package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixAirport CachePrefix = "AIRPORT_"
)
