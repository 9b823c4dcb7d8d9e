package domain

// ValidationReport records how the consumer output compared against its fixture
type ValidationReport struct {
	Requested bool   `json:"requested"`
	Match     bool   `json:"match"`
	File      string `json:"file,omitempty"`
	Expected  string `json:"expected,omitempty"` // YAML rendering of the fixture
	Actual    string `json:"actual,omitempty"`   // YAML rendering of the output file
	Diff      string `json:"diff,omitempty"`
	Error     string `json:"error,omitempty"`
}
