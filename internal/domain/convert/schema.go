// Package convert maps vendor measurements (SI units) to display rows
// (imperial and derived units) under a fixed column schema.
package convert

import (
	"github.com/okian/swingsheet/internal/domain/model"
)

// Conversion factors from vendor SI units.
const (
	MetersPerSecondToMPH = 2.23694
	MetersToYards        = 1.09361
	MetersToFeet         = 3.28084
	MetersToMillimeters  = 1000
	MetersToInches       = 39.3701
	Unscaled             = 1.0
)

// Column labels referenced by name elsewhere.
const (
	ColTime         = "Time"
	ColBallSpeed    = "Ball Speed (Mph)"
	ColSmashFactor  = "Smash Factor"
	ColImpactHeight = "Impact Height (mm)"
	ColImpactOffset = "Impact Offset (mm)"
	ColClubPath     = "Club Path (Deg)"
	ColFaceAngle    = "Face Angle (Deg)"
)

// Column binds a display label to exactly one source field.
type Column struct {
	Label  string
	Factor float64
	// Field reads the source quantity. Nil for the timestamp column.
	Field func(*model.Measurement) model.Quantity
}

// Schema is the immutable ordered column set shared by every sheet.
type Schema struct {
	columns []Column
	index   map[string]int
}

func newSchema(cols []Column) Schema {
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		idx[c.Label] = i
	}
	return Schema{columns: cols, index: idx}
}

// Len returns the number of columns.
func (s Schema) Len() int { return len(s.columns) }

// Labels returns a copy of the header labels in order.
func (s Schema) Labels() []string {
	out := make([]string, len(s.columns))
	for i, c := range s.columns {
		out[i] = c.Label
	}
	return out
}

// Index returns the position of a label, or -1.
func (s Schema) Index(label string) int {
	if i, ok := s.index[label]; ok {
		return i
	}
	return -1
}

// DefaultSchema returns the 31-column report schema.
func DefaultSchema() Schema {
	col := func(label string, f func(*model.Measurement) model.Quantity, factor float64) Column {
		return Column{Label: label, Field: f, Factor: factor}
	}

	return newSchema([]Column{
		{Label: ColTime},
		col("Club Speed (Mph)", func(m *model.Measurement) model.Quantity { return m.ClubSpeed }, MetersPerSecondToMPH),
		col(ColBallSpeed, func(m *model.Measurement) model.Quantity { return m.BallSpeed }, MetersPerSecondToMPH),
		col(ColSmashFactor, func(m *model.Measurement) model.Quantity { return m.SmashFactor }, Unscaled),
		col("Carry (Yds)", func(m *model.Measurement) model.Quantity { return m.Carry }, MetersToYards),
		col("Total (Yds)", func(m *model.Measurement) model.Quantity { return m.Total }, MetersToYards),
		col(ColImpactHeight, func(m *model.Measurement) model.Quantity { return m.ImpactHeight }, MetersToMillimeters),
		col(ColImpactOffset, func(m *model.Measurement) model.Quantity { return m.ImpactOffset }, MetersToMillimeters),
		col(ColClubPath, func(m *model.Measurement) model.Quantity { return m.ClubPath }, Unscaled),
		col(ColFaceAngle, func(m *model.Measurement) model.Quantity { return m.FaceAngle }, Unscaled),
		col("Face To Path (Deg)", func(m *model.Measurement) model.Quantity { return m.FaceToPath }, Unscaled),
		col("Launch Direction (Deg)", func(m *model.Measurement) model.Quantity { return m.LaunchDirection }, Unscaled),
		col("Attack Angle (Deg)", func(m *model.Measurement) model.Quantity { return m.AttackAngle }, Unscaled),
		col("Dynamic Loft (Deg)", func(m *model.Measurement) model.Quantity { return m.DynamicLoft }, Unscaled),
		col("Launch Angle (Deg)", func(m *model.Measurement) model.Quantity { return m.LaunchAngle }, Unscaled),
		col("Spin Loft (Deg)", func(m *model.Measurement) model.Quantity { return m.SpinLoft }, Unscaled),
		col("Spin Rate (Rpm)", func(m *model.Measurement) model.Quantity { return m.SpinRate }, Unscaled),
		col("Spin Axis (Deg)", func(m *model.Measurement) model.Quantity { return m.SpinAxis }, Unscaled),
		col("Curve (Ft)", func(m *model.Measurement) model.Quantity { return m.Curve }, MetersToFeet),
		col("Carry Side (Ft)", func(m *model.Measurement) model.Quantity { return m.CarrySide }, MetersToFeet),
		col("Total Side (Ft)", func(m *model.Measurement) model.Quantity { return m.TotalSide }, MetersToFeet),
		col("Max Height (Ft)", func(m *model.Measurement) model.Quantity { return m.MaxHeight }, MetersToFeet),
		col("Landing Angle (Deg)", func(m *model.Measurement) model.Quantity { return m.LandingAngle }, Unscaled),
		col("Swing Direction (Deg)", func(m *model.Measurement) model.Quantity { return m.SwingDirection }, Unscaled),
		col("Swing Plane (Deg)", func(m *model.Measurement) model.Quantity { return m.SwingPlane }, Unscaled),
		col("Swing Radius", func(m *model.Measurement) model.Quantity { return m.SwingRadius }, Unscaled),
		col("DPlane Tilt", func(m *model.Measurement) model.Quantity { return m.DPlaneTilt }, Unscaled),
		col("Low Point (In)", func(m *model.Measurement) model.Quantity { return m.LowPointDistance }, MetersToInches),
		col("Landing Height", func(m *model.Measurement) model.Quantity { return m.LandingHeight }, Unscaled),
		col("Hang Time (Sec)", func(m *model.Measurement) model.Quantity { return m.HangTime }, Unscaled),
		col("Dynamic Lie (Deg)", func(m *model.Measurement) model.Quantity { return m.DynamicLie }, Unscaled),
	})
}
