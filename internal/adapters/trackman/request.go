package trackman

// Environment is the fixed set of conditions the vendor normalizes a full
// report to.
type Environment struct {
	BallType        string
	Altitude        float64
	Temperature     float64
	TemperatureUnit string
	Pressure        float64
	Wind            float64
	Humidity        float64
}

// DefaultEnvironment returns the standard normalization conditions.
func DefaultEnvironment() Environment {
	return Environment{
		BallType:        "Premium",
		Altitude:        0,
		Temperature:     25,
		TemperatureUnit: "Celsius",
		Pressure:        1013,
		Wind:            0,
		Humidity:        50,
	}
}

type metadataRequest struct {
	ReportID string `json:"ReportId"`
	DM       bool   `json:"dm"`
}

type reportRequest struct {
	ReportID        string  `json:"ReportId"`
	DM              bool    `json:"dm"`
	ND              bool    `json:"nd"`
	BallType        string  `json:"nd_ballType"`
	Altitude        float64 `json:"nd_altitude"`
	Temperature     float64 `json:"nd_temperature"`
	TemperatureUnit string  `json:"nd_temperatureUnit"`
	LOP             bool    `json:"lop"`
	SRO             bool    `json:"sro"`
	DO              bool    `json:"do"`
	Pressure        float64 `json:"nd_pressure"`
	Wind            float64 `json:"nd_wind"`
	Humidity        float64 `json:"nd_humidity"`
}

func newReportRequest(id string, env Environment) reportRequest {
	return reportRequest{
		ReportID:        id,
		DM:              true,
		ND:              true,
		BallType:        env.BallType,
		Altitude:        env.Altitude,
		Temperature:     env.Temperature,
		TemperatureUnit: env.TemperatureUnit,
		LOP:             true,
		SRO:             false,
		DO:              true,
		Pressure:        env.Pressure,
		Wind:            env.Wind,
		Humidity:        env.Humidity,
	}
}
