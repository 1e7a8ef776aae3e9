package server

import (
	"github.com/matst80/slask-property/pkg/listing"
	"github.com/matst80/slask-property/pkg/listview"
	"github.com/matst80/slask-property/pkg/mapview"
	"github.com/matst80/slask-property/pkg/scroll"
	"github.com/matst80/slask-property/pkg/selection"
	"github.com/matst80/slask-property/pkg/session"
	"github.com/matst80/slask-property/pkg/types"
)

type WebServer struct {
	Store    *listing.Store
	Sessions *session.Manager
	Tracking types.Tracking
}

// ViewResponse is everything the browser needs to render one session: the
// shared snapshot, both views and a scroll request if one is pending.
type ViewResponse struct {
	selection.View
	List   listview.State  `json:"list"`
	Map    mapview.State   `json:"map"`
	Scroll *scroll.Request `json:"scroll,omitempty"`
}

type ToggleResponse struct {
	FilterVisible bool `json:"filterVisible"`
}

// makeViewResponse reads both views while no transition is delivering, so the
// list and map always match the snapshot they are sent with.
func makeViewResponse(s *session.Session) ViewResponse {
	res := ViewResponse{}
	s.Coordinator.Read(func(view selection.View) {
		res.View = view
		res.List = s.List.State()
		res.Map = s.Map.State()
		res.Scroll = s.Scroll.Take()
	})
	return res
}
