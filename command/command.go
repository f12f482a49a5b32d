// Package command exposes the engine's inbound command surface:
// JSON-over-HTTP routes for adding agents, reading and updating SEC
// profiles, injecting world events and sensor readings, and snapshotting
// agent states. Lookup misses log a diagnostic and return an empty result;
// nothing here can abort the simulation.
package command

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"tidewatch/agent"
	"tidewatch/config"
	"tidewatch/events"
	"tidewatch/faction"
	"tidewatch/ids"
	"tidewatch/logicbridge"
	"tidewatch/psyche"
	"tidewatch/simulation"
	"tidewatch/vecmath"
)

// defaultMaxHP is the starting health for an add_agent-created agent; the
// request only carries faction/rank, so health is a fixed engine default
// rather than something the caller tunes per call.
const defaultMaxHP = 100.0

// Handler wires a simulation.Driver to the command-surface HTTP routes.
// The engine config supplies per-faction SEC profile defaults and psyche
// preset overrides for newly added agents.
type Handler struct {
	driver *simulation.Driver
	cfg    *config.EngineConfig
	ids    ids.Generator
}

// NewHandler returns a Handler bound to driver, drawing agent defaults from
// cfg (config.Default() when nil).
func NewHandler(driver *simulation.Driver, cfg *config.EngineConfig) *Handler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Handler{driver: driver, cfg: cfg}
}

// Router builds the mux.Router serving every command-surface route.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/agents", h.addAgent).Methods(http.MethodPost)
	r.HandleFunc("/agents", h.getAgentStates).Methods(http.MethodGet)
	r.HandleFunc("/agents/{name}/sec-profile", h.setSECProfile).Methods(http.MethodPut)
	r.HandleFunc("/agents/{name}/sec-profile", h.getSECProfile).Methods(http.MethodGet)
	r.HandleFunc("/events", h.publishEvent).Methods(http.MethodPost)
	r.HandleFunc("/sensors", h.publishSensors).Methods(http.MethodPost)
	return r
}

// addAgentRequest is the add_agent payload.
type addAgentRequest struct {
	Name      string `json:"name"`
	FactionID int    `json:"factionId"`
	Rank      int    `json:"rank"`
}

func (h *Handler) addAgent(w http.ResponseWriter, r *http.Request) {
	var req addAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := h.ids.Next()
	fid := faction.ID(req.FactionID).Clamp()
	a := agent.New(id, req.Name, vecmath.Vec3{}, faction.Component{
		ID:      fid,
		Rank:    req.Rank,
		Profile: h.cfg.DefaultSECProfile(strings.ToLower(fid.String())),
	}, h.bodyPreset(), defaultMaxHP)
	h.driver.AddAgent(a)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]uint64{"id": uint64(id)})
}

// bodyPreset returns the Humanoid body preset every added agent starts
// with, applying the config's "humanoid" psyche override when one is set.
func (h *Handler) bodyPreset() psyche.Psyche {
	if p, ok := h.cfg.PsychePresets["humanoid"]; ok {
		return p.ToPsyche()
	}
	return psyche.Humanoid()
}

func (h *Handler) byName(name string) (*agent.Agent, bool) {
	for _, a := range h.driver.Agents() {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// secProfileRequest is the partial update body for set_agent_sec_profile:
// missing keys leave prior values, hence all-pointer fields.
type secProfileRequest struct {
	TruthAwareness       *float64 `json:"truthAwareness,omitempty"`
	SufferingCoefficient *float64 `json:"sufferingCoefficient,omitempty"`
	WallDistrustIndex    *float64 `json:"wallDistrustIndex,omitempty"`
	Obedience            *float64 `json:"obedience,omitempty"`
	FearThreshold        *float64 `json:"fearThreshold,omitempty"`
}

func (h *Handler) setSECProfile(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	a, ok := h.byName(name)
	if !ok {
		log.Printf("set_agent_sec_profile: no such agent %q", name)
		http.Error(w, "no such agent", http.StatusNotFound)
		return
	}

	var req secProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a.Faction.ApplyPartial(faction.PartialSECProfile{
		TruthAwareness:       req.TruthAwareness,
		SufferingCoefficient: req.SufferingCoefficient,
		WallDistrustIndex:    req.WallDistrustIndex,
		Obedience:            req.Obedience,
		FearThreshold:        req.FearThreshold,
	})

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getSECProfile(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	a, ok := h.byName(name)
	if !ok {
		log.Printf("get_agent_sec_profile: no such agent %q", name)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a.Faction.Profile)
}

// publishEventRequest is the publish_event payload: the event is injected
// from a synthetic source, id 0, faction None.
type publishEventRequest struct {
	Type   int          `json:"type"`
	Pos    vecmath.Vec3 `json:"pos"`
	Radius float64      `json:"radius"`
}

func (h *Handler) publishEvent(w http.ResponseWriter, r *http.Request) {
	var req publishEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.driver.PublishEvent(events.Event{
		Type:          events.Type(req.Type).Clamp(),
		Position:      req.Pos,
		Radius:        req.Radius,
		SourceID:      ids.NoEntity,
		SourceFaction: faction.None,
	})

	w.WriteHeader(http.StatusAccepted)
}

// publishSensors accepts raw sensor readings and publishes
// whatever logicbridge.Translate maps them to onto the bus; unknown metrics
// or readings below threshold are silently dropped, same as Translate.
func (h *Handler) publishSensors(w http.ResponseWriter, r *http.Request) {
	var req []logicbridge.Sensor
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for _, e := range logicbridge.Translate(req) {
		h.driver.PublishEvent(e)
	}

	w.WriteHeader(http.StatusAccepted)
}

// agentState is a single get_agent_states snapshot row.
type agentState struct {
	ID     uint64       `json:"id"`
	Pos    vecmath.Vec3 `json:"pos"`
	Action int          `json:"action"`
}

func (h *Handler) getAgentStates(w http.ResponseWriter, r *http.Request) {
	agents := h.driver.Agents()
	out := make([]agentState, 0, len(agents))
	for _, a := range agents {
		out = append(out, agentState{
			ID:     uint64(a.ID),
			Pos:    a.Position,
			Action: int(a.LastAction),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
