package db

// Member represents a unit member record
type Member struct {
	Number         int      `yaml:"number" validate:"required,min=1"`
	FullName       string   `yaml:"fullName" validate:"required"`
	Unit           string   `yaml:"unit,omitempty"`
	Team           string   `yaml:"team,omitempty"`
	Qualifications []string `yaml:"qualifications,omitempty"`
}

// Availability represents an availability record as stored upstream.
// Timestamps are ISO-8601 strings and statuses are raw wire values; both are
// parsed by the core model, not here.
type Availability struct {
	ID           string `yaml:"id,omitempty"`
	MemberNumber int    `yaml:"memberNumber" validate:"required,min=1"`
	Start        string `yaml:"start" validate:"required"`
	End          string `yaml:"end" validate:"required"`
	Storm        string `yaml:"storm,omitempty"`
	Rescue       string `yaml:"rescue,omitempty"`
	Vehicle      string `yaml:"vehicle,omitempty"`
	Note         string `yaml:"note,omitempty"`
}
