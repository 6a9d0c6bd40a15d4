package engine

import "fmt"

var EmptyFeedErr = fmt.Errorf("data feed has no dates")
var NonMonotonicDatesErr = fmt.Errorf("feed dates must be strictly increasing")
var MissingSpotErr = fmt.Errorf("no spot price for date")
var NoFillValueErr = fmt.Errorf("missing value with no prior value to forward-fill from")
var NonFiniteResultErr = fmt.Errorf("computed a non-finite P&L value")
var UnknownTrackingPolicyErr = fmt.Errorf("tracking policy must be 'aggregate' or 'per-instrument'")
