package sensors

// Params are the raw, optional filter values of a stats request.
// Empty means the parameter was not given.
type Params struct {
	Location  string `validate:"max=256"`
	Sensor    string `validate:"max=256"`
	StartDate string `validate:"max=64"`
	EndDate   string `validate:"max=64"`
}
