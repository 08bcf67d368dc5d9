package pricing

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk pricing configuration.
type Config struct {
	Clinics map[string]ClinicPricing `yaml:"clinics"`
}

// Load builds a table from a yaml file, falling back to the built-in
// defaults when path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return NewTable(cfg.Clinics)
}

// Default returns the club's standard pricing table, taken from the
// pricing spreadsheet.
func Default() *Table {
	return &Table{clinics: map[string]ClinicPricing{
		"Red Ball (Ages 8 and Under)": {
			Member:     []float64{0, 15, 30, 45, 60, 75, 90, 90, 105, 120, 135},
			Guest:      []float64{0, 20, 40, 60, 80, 100, 120, 120, 140, 160, 180},
			MemberRate: 15,
			GuestRate:  20,
		},
		"Orange Ball (Ages 10 and Under)": {
			Member:     []float64{0, 15, 30, 45, 60, 75, 90, 90, 105, 120, 135},
			Guest:      []float64{0, 20, 40, 60, 80, 100, 120, 120, 140, 160, 180},
			MemberRate: 15,
			GuestRate:  20,
		},
		"Green Ball (Ages 12 and Under)": {
			Member:     []float64{0, 20, 40, 60, 80, 100, 120, 140, 140, 160, 180},
			Guest:      []float64{0, 25, 50, 75, 100, 125, 150, 175, 175, 200, 225},
			MemberRate: 20,
			GuestRate:  25,
		},
		"Middle School Yellow Ball Clinic (Ages 12-14)": {
			Member:     []float64{0, 25, 50, 75, 100, 125, 150, 175, 175, 200, 225},
			Guest:      []float64{0, 30, 60, 90, 120, 150, 180, 210, 210, 240, 270},
			MemberRate: 25,
			GuestRate:  30,
		},
		"High School Yellow Ball Clinic (Ages 14 and Over)": {
			Member:     []float64{0, 25, 50, 75, 100, 125, 150, 175, 200, 200, 225, 250, 275, 300, 325, 350},
			Guest:      []float64{0, 30, 60, 90, 120, 150, 180, 210, 240, 240, 270, 300, 330, 360, 390, 420},
			MemberRate: 25,
			GuestRate:  30,
		},
		"Bruno": {
			Member:     []float64{0, 20, 40, 60, 80, 100, 120, 140, 160, 180, 200},
			Guest:      []float64{0, 20, 40, 60, 80, 100, 120, 140, 160, 180, 200},
			MemberRate: 20,
			GuestRate:  20,
		},
	}}
}
