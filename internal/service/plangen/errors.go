package plangen

import "errors"

// Generator failures are recovered locally with fallback synthesis and are
// never surfaced to the caller of the seeder.
var (
	// ErrGeneratorUnavailable：网络错误、超时、非 2xx
	ErrGeneratorUnavailable = errors.New("generator unavailable")
	// ErrGeneratorMalformed：无法解析或空结果
	ErrGeneratorMalformed = errors.New("generator returned malformed payload")
)
