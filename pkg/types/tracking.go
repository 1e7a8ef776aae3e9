package types

import (
	"net/http"
)

type SelectionSource string

const (
	SelectedFromMap  SelectionSource = "map"
	SelectedFromCard SelectionSource = "card"
)

type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackFilter(sessionId string, criteria *FilterCriteria, resultLen int, r *http.Request)
	TrackSelect(sessionId string, propertyId PropertyId, source SelectionSource)
	Close() error
}
