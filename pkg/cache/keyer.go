package cache

// Keyer builds cache keys for pipeline stages.
type Keyer interface {
	// ProgramKey addresses a generated string.
	ProgramKey(systemHash string, opts ProgramKeyOpts) string
	// ArtifactKey addresses a rendered drawing in one format.
	ArtifactKey(drawingHash string, opts ArtifactKeyOpts) string
}

// ProgramKeyOpts holds the generation settings that change the result.
type ProgramKeyOpts struct {
	Generations int `json:"generations"`
	MaxLength   int `json:"max_length"`
}

// ArtifactKeyOpts holds the drawing settings that change the result.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Scale       float64 `json:"scale"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Padding     float64 `json:"padding"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"stroke_width"`
	Background  string  `json:"background"`
}

// DefaultKeyer hashes its inputs into fixed-width keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ProgramKey implements Keyer.
func (DefaultKeyer) ProgramKey(systemHash string, opts ProgramKeyOpts) string {
	return hashKey("program", systemHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(drawingHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", drawingHash, opts)
}

var _ Keyer = DefaultKeyer{}
