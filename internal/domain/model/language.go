package model

type Language struct {
	Name           string   `json:"name"`
	Extensions     []string `json:"extensions"`
	TestFramework  string   `json:"testFramework"`
	Runner         string   `json:"runner"`
	TimeoutSeconds int      `json:"timeout"`
	MemoryLimit    string   `json:"memoryLimit"`
	CPULimit       string   `json:"cpuLimit"`
}

// Detection is the outcome of guessing a language from file names.
type Detection struct {
	Language   string   `json:"language"`
	Confidence float64  `json:"confidence"`
	Config     Language `json:"config"`
}
