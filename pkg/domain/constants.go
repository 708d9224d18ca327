package domain

// Environment variables shared by adapters.
const (
	// EnvMaxInputSize overrides the maximum accepted size of puzzle texts.
	EnvMaxInputSize = "ATHENA_MAX_INPUT_SIZE"
)
