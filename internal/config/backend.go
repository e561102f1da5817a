package config

import (
	"fmt"
	"strings"
)

// Segmenter backends.
const (
	BackendGSE     = "gse"
	BackendUnigram = "unigram"
	BackendONNX    = "onnx"
)

// NormalizeBackend lower-cases and validates a segmenter backend name. An
// empty name selects gse.
func NormalizeBackend(raw string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(raw))
	if backend == "" {
		backend = BackendGSE
	}
	switch backend {
	case BackendGSE, BackendUnigram, BackendONNX:
		return backend, nil
	case "dict", "jieba":
		return BackendUnigram, nil
	default:
		return "", fmt.Errorf(
			"invalid backend %q (expected %s|%s|%s)",
			raw,
			BackendGSE,
			BackendUnigram,
			BackendONNX,
		)
	}
}
