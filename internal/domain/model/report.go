// Package model contains the vendor report payload and discovery records
// passed between layers.
package model

import (
	"encoding/json"
	"time"
)

// Measurement is one recorded swing as produced by the vendor, in SI units.
// Every field is optional.
type Measurement struct {
	Time             Label    `json:"Time"`
	ClubSpeed        Quantity `json:"ClubSpeed"`
	BallSpeed        Quantity `json:"BallSpeed"`
	SmashFactor      Quantity `json:"SmashFactor"`
	Carry            Quantity `json:"Carry"`
	Total            Quantity `json:"Total"`
	ImpactHeight     Quantity `json:"ImpactHeight"`
	ImpactOffset     Quantity `json:"ImpactOffset"`
	ClubPath         Quantity `json:"ClubPath"`
	FaceAngle        Quantity `json:"FaceAngle"`
	FaceToPath       Quantity `json:"FaceToPath"`
	LaunchDirection  Quantity `json:"LaunchDirection"`
	AttackAngle      Quantity `json:"AttackAngle"`
	DynamicLoft      Quantity `json:"DynamicLoft"`
	LaunchAngle      Quantity `json:"LaunchAngle"`
	SpinLoft         Quantity `json:"SpinLoft"`
	SpinRate         Quantity `json:"SpinRate"`
	SpinAxis         Quantity `json:"SpinAxis"`
	Curve            Quantity `json:"Curve"`
	CarrySide        Quantity `json:"CarrySide"`
	TotalSide        Quantity `json:"TotalSide"`
	MaxHeight        Quantity `json:"MaxHeight"`
	LandingAngle     Quantity `json:"LandingAngle"`
	SwingDirection   Quantity `json:"SwingDirection"`
	SwingPlane       Quantity `json:"SwingPlane"`
	SwingRadius      Quantity `json:"SwingRadius"`
	DPlaneTilt       Quantity `json:"DPlaneTilt"`
	LowPointDistance Quantity `json:"LowPointDistance"`
	LandingHeight    Quantity `json:"LandingHeight"`
	HangTime         Quantity `json:"HangTime"`
	DynamicLie       Quantity `json:"DynamicLie"`
}

// Empty reports whether no field carries a value.
func (m *Measurement) Empty() bool {
	if m == nil {
		return true
	}
	if _, ok := m.Time.Get(); ok {
		return false
	}
	for _, q := range m.quantities() {
		if q.Present() {
			return false
		}
	}
	return true
}

func (m *Measurement) quantities() []Quantity {
	return []Quantity{
		m.ClubSpeed, m.BallSpeed, m.SmashFactor, m.Carry, m.Total,
		m.ImpactHeight, m.ImpactOffset, m.ClubPath, m.FaceAngle, m.FaceToPath,
		m.LaunchDirection, m.AttackAngle, m.DynamicLoft, m.LaunchAngle, m.SpinLoft,
		m.SpinRate, m.SpinAxis, m.Curve, m.CarrySide, m.TotalSide,
		m.MaxHeight, m.LandingAngle, m.SwingDirection, m.SwingPlane, m.SwingRadius,
		m.DPlaneTilt, m.LowPointDistance, m.LandingHeight, m.HangTime, m.DynamicLie,
	}
}

// Stroke wraps zero or one Measurement.
type Stroke struct {
	Measurement *Measurement `json:"Measurement"`
}

// UnmarshalJSON tolerates a Measurement that is not an object by treating it
// as missing.
func (s *Stroke) UnmarshalJSON(data []byte) error {
	var raw struct {
		Measurement json.RawMessage `json:"Measurement"`
	}
	*s = Stroke{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	if len(raw.Measurement) == 0 || raw.Measurement[0] != '{' {
		return nil
	}
	var m Measurement
	if err := json.Unmarshal(raw.Measurement, &m); err != nil {
		return nil
	}
	s.Measurement = &m
	return nil
}

// StrokeGroup is a named equipment group.
type StrokeGroup struct {
	Club    Label    `json:"Club"`
	Strokes []Stroke `json:"Strokes"`
}

// Measurements returns the non-empty measurements in source order.
func (g StrokeGroup) Measurements() []*Measurement {
	var out []*Measurement
	for i := range g.Strokes {
		if m := g.Strokes[i].Measurement; !m.Empty() {
			out = append(out, m)
		}
	}
	return out
}

// Report is the top-level vendor payload.
type Report struct {
	StrokeGroups []StrokeGroup `json:"StrokeGroups"`
}

// ReportCandidate is a report identifier found in browser history.
type ReportCandidate struct {
	ID        string
	URL       string
	LastVisit time.Time
}

// ReportMetadata is the lightweight metadata returned by a dm:false request.
// Fields the vendor omits or sends in an unexpected shape are absent.
type ReportMetadata struct {
	Time    Label `json:"Time"`
	Updated Label `json:"Updated"`
	Kind    Label `json:"Kind"`
}
