package mapview

import (
	"fmt"
	"html"
	"sync"

	"github.com/matst80/slask-property/pkg/selection"
	"github.com/matst80/slask-property/pkg/types"
	"github.com/mmcloughlin/geohash"
)

const (
	DefaultZoom      = 15
	geohashPrecision = 7
)

type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Popup struct {
	Content string `json:"content"`
	Open    bool   `json:"open"`
}

type Marker struct {
	PropertyId types.PropertyId `json:"propertyId"`
	Index      int              `json:"index"`
	Label      string           `json:"label"`
	Position   Position         `json:"position"`
	Geohash    string           `json:"geohash"`
	Popup      Popup            `json:"popup"`
}

type Selector interface {
	Select(p types.Property, causedByMapClick bool)
}

// Map mirrors the marker state of the map widget for the displayed properties.
type Map struct {
	mu         sync.RWMutex
	selector   Selector
	markers    []Marker
	properties map[types.PropertyId]types.Property
	center     Position
	zoom       int
}

func NewMap(selector Selector) *Map {
	return &Map{
		selector:   selector,
		markers:    make([]Marker, 0),
		properties: make(map[types.PropertyId]types.Property),
		zoom:       DefaultZoom,
	}
}

func makeMarker(p types.Property) Marker {
	return Marker{
		PropertyId: p.Id,
		Index:      p.Index,
		Label:      fmt.Sprintf("%d", p.Index+1),
		Position:   Position{Lat: p.Latitude, Lng: p.Longitude},
		Geohash:    geohash.EncodeWithPrecision(p.Latitude, p.Longitude, geohashPrecision),
		Popup: Popup{
			Content: fmt.Sprintf("<h1>%s</h1>", html.EscapeString(p.Address)),
		},
	}
}

// Render rebuilds the markers and opens the popup of the active property only.
func (m *Map) Render(view selection.View) {
	markers := make([]Marker, 0, len(view.Properties))
	properties := make(map[types.PropertyId]types.Property, len(view.Properties))
	for _, p := range view.Properties {
		markers = append(markers, makeMarker(p))
		properties[p.Id] = p
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.markers = markers
	m.properties = properties
	m.openUnsafe(view.ActiveId)
	if active, ok := view.Active(); ok {
		m.center = Position{Lat: active.Latitude, Lng: active.Longitude}
	}
}

func (m *Map) hideAllUnsafe() {
	for i := range m.markers {
		m.markers[i].Popup.Open = false
	}
}

func (m *Map) openUnsafe(id types.PropertyId) {
	m.hideAllUnsafe()
	for i := range m.markers {
		if m.markers[i].PropertyId == id {
			m.markers[i].Popup.Open = true
			return
		}
	}
}

// Click handles a marker click: every other popup closes, the clicked one
// opens and the selection is reported as coming from the map.
func (m *Map) Click(id types.PropertyId) error {
	m.mu.Lock()
	p, ok := m.properties[id]
	if !ok {
		m.mu.Unlock()
		return selection.ErrPropertyNotFound
	}
	m.openUnsafe(id)
	m.mu.Unlock()

	if m.selector != nil {
		m.selector.Select(p, true)
	}
	return nil
}

func (m *Map) Markers() []Marker {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ret := make([]Marker, len(m.markers))
	copy(ret, m.markers)
	return ret
}

func (m *Map) OpenPopup() (Marker, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, marker := range m.markers {
		if marker.Popup.Open {
			return marker, true
		}
	}
	return Marker{}, false
}

func (m *Map) Center() (Position, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.center, m.zoom
}

type State struct {
	Center  Position `json:"center"`
	Zoom    int      `json:"zoom"`
	Markers []Marker `json:"markers"`
}

func (m *Map) State() State {
	center, zoom := m.Center()
	return State{
		Center:  center,
		Zoom:    zoom,
		Markers: m.Markers(),
	}
}
