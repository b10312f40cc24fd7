// Package api - Field handlers
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"quantity-editor/core/field"
	"quantity-editor/core/format"
	"quantity-editor/core/parser"
	"quantity-editor/core/types"
	"quantity-editor/core/validation"
)

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version": s.version,
		"service": "quantity-editor",
	}, http.StatusOK)
}

// handleStats handles GET /stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.Stats(), http.StatusOK)
}

// handleListFields handles GET /fields
func (s *Server) handleListFields(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, FieldsResponse{Fields: summaries(s.fields.All())}, http.StatusOK)
}

// handleGetField handles GET /fields/{name}
func (s *Server) handleGetField(w http.ResponseWriter, r *http.Request) {
	f := s.fieldOr404(w, r)
	if f == nil {
		return
	}
	s.writeJSON(w, summaries([]*field.Field{f})[0], http.StatusOK)
}

// handleText handles POST /fields/{name}/text
func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	f := s.fieldOr404(w, r)
	if f == nil {
		return
	}

	var req TextRequest
	if !s.decode(w, r, &req) {
		return
	}

	unit := f.DefaultUnitIndex()
	if req.Unit != "" {
		idx, err := f.UnitIndex(req.Unit)
		if err != nil {
			s.writeError(w, string(types.UnitNotRecognized), err.Error(), http.StatusBadRequest)
			return
		}
		unit = idx
	}

	res := f.OnTextChangedIn(req.Text, unit)
	resp := TextResponse{
		State:          res.State.String(),
		FormattedValue: res.FormattedValue,
	}
	if res.Reason != types.KindNone {
		resp.Reason = res.Reason.String()
		resp.Message = res.Reason.Error()
	}
	if res.Quantity != nil {
		q := payload(f, *res.Quantity)
		resp.Quantity = &q
	}
	s.writeJSON(w, resp, http.StatusOK)
}

// handleIncrement handles POST /fields/{name}/increment
func (s *Server) handleIncrement(w http.ResponseWriter, r *http.Request) {
	s.handleStep(w, r, types.Increment)
}

// handleDecrement handles POST /fields/{name}/decrement
func (s *Server) handleDecrement(w http.ResponseWriter, r *http.Request) {
	s.handleStep(w, r, types.Decrement)
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request, dir types.Direction) {
	f := s.fieldOr404(w, r)
	if f == nil {
		return
	}

	var req StepRequest
	if !s.decode(w, r, &req) {
		return
	}
	q, ok := s.quantity(w, f, req.Quantity)
	if !ok {
		return
	}

	var res types.StepResult
	if dir == types.Increment {
		res = f.OnIncrement(q)
	} else {
		res = f.OnDecrement(q)
	}

	resp := StepResponse{
		Quantity:    payload(f, res.Quantity),
		Rejected:    res.Rejected(),
		UnitChanged: res.UnitChanged,
	}
	if res.Rejected() {
		resp.Reason = res.Message.String()
		resp.Message = res.Message.Error()
	}
	s.writeJSON(w, resp, http.StatusOK)
}

// handleUnit handles POST /fields/{name}/unit
func (s *Server) handleUnit(w http.ResponseWriter, r *http.Request) {
	f := s.fieldOr404(w, r)
	if f == nil {
		return
	}

	var req UnitRequest
	if !s.decode(w, r, &req) {
		return
	}
	q, ok := s.quantity(w, f, req.Quantity)
	if !ok {
		return
	}

	// unknown targets reach the field as NoUnit and come back rejected
	target, err := f.UnitIndex(req.Unit)
	if err != nil {
		target = types.NoUnit
	}

	out, err := f.OnUnitSwitch(q, target)
	resp := UnitResponse{Quantity: payload(f, out)}
	if err != nil {
		kind, _ := types.KindOf(err)
		resp.Rejected = true
		resp.Reason = kind.String()
		resp.Message = kind.Error()
	}
	s.writeJSON(w, resp, http.StatusOK)
}

func (s *Server) fieldOr404(w http.ResponseWriter, r *http.Request) *field.Field {
	name := mux.Vars(r)["name"]
	f, err := s.fields.Get(name)
	if err != nil {
		s.writeError(w, "FIELD_NOT_FOUND", err.Error(), http.StatusNotFound)
		return nil
	}
	return f
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// quantity rebuilds the caller's quantity. The value goes through the same
// grammar as typed text, so it is a plain non-negative decimal of bounded
// length. An unknown unit is passed on as NoUnit so the field reports it the
// same way it would in-process.
func (s *Server) quantity(w http.ResponseWriter, f *field.Field, p QuantityPayload) (types.Quantity, bool) {
	res := parser.Parse(p.Value, f.Units())
	if !res.Complete() || res.UnitGiven {
		msg := "quantity.value must be a non-negative decimal number"
		if res.Reason != types.KindNone {
			msg += ": " + res.Reason.Error()
		}
		s.writeError(w, "INVALID_VALUE", msg, http.StatusBadRequest)
		return types.Quantity{}, false
	}

	idx, lookupErr := f.UnitIndex(p.Unit)
	if lookupErr != nil {
		idx = types.NoUnit
	}
	q := types.Quantity{Value: res.Quantity.Value, UnitIndex: idx}
	return format.WithText(q, f.Units()), true
}

func payload(f *field.Field, q types.Quantity) QuantityPayload {
	cfg := f.Units()
	p := QuantityPayload{
		Value: q.Value.String(),
		Text:  format.Format(q, cfg),
	}
	if cfg.Valid(q.UnitIndex) {
		p.Unit = cfg.Unit(q.UnitIndex).Symbol
		p.Base = validation.ToBase(q, cfg).String() + " " + cfg.Unit(cfg.BaseIndex()).Symbol
	}
	return p
}
