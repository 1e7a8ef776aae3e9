package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/matst80/slask-property/pkg/common"
	"github.com/matst80/slask-property/pkg/selection"
	"github.com/matst80/slask-property/pkg/session"
	"github.com/matst80/slask-property/pkg/types"
)

var ErrInvalidSource = errors.New("invalid selection source")

func (ws *WebServer) getSession(r *http.Request, sessionId string) *session.Session {
	return ws.Sessions.Get(r.Context(), sessionId)
}

func (ws *WebServer) save(r *http.Request, s *session.Session) {
	if err := ws.Sessions.Save(r.Context(), s); err != nil {
		log.Printf("could not save session %s: %v", s.Id, err)
	}
}

func (ws *WebServer) trackFilter(r *http.Request, s *session.Session) ViewResponse {
	res := makeViewResponse(s)
	noFilters.Inc()
	if ws.Tracking != nil {
		ws.Tracking.TrackFilter(s.Id, &res.Criteria, len(res.Properties), r)
	}
	return res
}

func (ws *WebServer) Properties(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	w.Header().Set("Cache-Control", "public, max-age=600")
	return enc.Encode(ws.Store.All())
}

func (ws *WebServer) View(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	s := ws.getSession(r, sessionId)
	return enc.Encode(makeViewResponse(s))
}

// Filter replaces every criterion at once, fields missing from the request
// fall back to their defaults.
func (ws *WebServer) Filter(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	criteria, err := types.GetCriteriaFromRequest(r)
	if err != nil {
		return common.BadRequest(err)
	}
	s := ws.getSession(r, sessionId)
	s.Coordinator.SetCriteria(*criteria)
	ws.save(r, s)
	return enc.Encode(ws.trackFilter(r, s))
}

// FilterField updates the single filter panel field named in the path.
func (ws *WebServer) FilterField(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	value, err := types.GetFieldValueFromRequest(r)
	if err != nil {
		return common.BadRequest(err)
	}
	s := ws.getSession(r, sessionId)
	if err = s.Coordinator.UpdateCriterion(r.PathValue("name"), value); err != nil {
		return common.BadRequest(err)
	}
	ws.save(r, s)
	return enc.Encode(ws.trackFilter(r, s))
}

func (ws *WebServer) ClearFilter(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	s := ws.getSession(r, sessionId)
	s.Coordinator.Clear()
	ws.save(r, s)
	return enc.Encode(ws.trackFilter(r, s))
}

func (ws *WebServer) ToggleFilter(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	s := ws.getSession(r, sessionId)
	visible := s.Coordinator.ToggleFilter()
	ws.save(r, s)
	return enc.Encode(ToggleResponse{FilterVisible: visible})
}

// Select activates a property either from a map marker or from a card. Only
// properties currently displayed can be selected.
func (ws *WebServer) Select(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	id := types.PropertyId(r.PathValue("id"))
	source := types.SelectionSource(r.URL.Query().Get("source"))
	if source == "" {
		source = types.SelectedFromCard
	}
	s := ws.getSession(r, sessionId)
	var err error
	switch source {
	case types.SelectedFromMap:
		err = s.Map.Click(id)
	case types.SelectedFromCard:
		err = s.List.Click(id)
	default:
		return common.BadRequest(ErrInvalidSource)
	}
	if errors.Is(err, selection.ErrPropertyNotFound) {
		return common.NotFound(err)
	}
	if err != nil {
		return err
	}
	ws.save(r, s)
	noSelections.WithLabelValues(string(source)).Inc()
	if ws.Tracking != nil {
		ws.Tracking.TrackSelect(sessionId, id, source)
	}
	return enc.Encode(makeViewResponse(s))
}

func (ws *WebServer) ClientHandler() *http.ServeMux {
	srv := http.NewServeMux()
	handle := func(pattern string, fn common.JsonHandlerFunc) {
		srv.HandleFunc(pattern, common.JsonHandler(ws.Tracking, fn))
	}

	srv.HandleFunc("OPTIONS /", common.RespondToOptions)
	handle("GET /properties", ws.Properties)
	handle("GET /view", ws.View)
	handle("POST /filter", ws.Filter)
	handle("POST /filter/clear", ws.ClearFilter)
	handle("POST /filter/toggle", ws.ToggleFilter)
	handle("POST /filter/{name}", ws.FilterField)
	handle("POST /select/{id}", ws.Select)

	return srv
}
