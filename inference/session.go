// Package inference runs ONNX token-classification models with ONNX Runtime.
package inference

import (
	"context"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	ortEnvOnce sync.Once
	ortEnvErr  error
	ortLibPath string
)

// SetLibraryPath points ONNX Runtime at a shared library. It only has an
// effect before the first session is created.
func SetLibraryPath(path string) {
	ortLibPath = path
}

// initORT initializes ONNX Runtime environment once.
func initORT() error {
	ortEnvOnce.Do(func() {
		if ortLibPath != "" {
			ort.SetSharedLibraryPath(ortLibPath)
		}
		ortEnvErr = ort.InitializeEnvironment()
	})
	return ortEnvErr
}

// SessionConfig names the model inputs and output.
type SessionConfig struct {
	InputIDs      string
	AttentionMask string
	Logits        string
	Threads       int // intra-op threads; 0 keeps the runtime default
}

// DefaultSessionConfig matches token-classification exports from
// HuggingFace transformers.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		InputIDs:      "input_ids",
		AttentionMask: "attention_mask",
		Logits:        "logits",
	}
}

// Session wraps an ONNX Runtime session producing per-position label logits.
type Session struct {
	session *ort.DynamicAdvancedSession
	mu      sync.Mutex
	closed  bool
}

// NewSession creates a new ONNX session from a model file.
func NewSession(modelPath string, cfg SessionConfig) (*Session, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}

	if err := initORT(); err != nil {
		return nil, fmt.Errorf("initializing ONNX runtime: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("creating session options: %w", err)
	}
	defer func() { _ = options.Destroy() }() // Cleanup error doesn't affect success

	if cfg.Threads > 0 {
		if err := options.SetIntraOpNumThreads(cfg.Threads); err != nil {
			return nil, fmt.Errorf("setting thread count: %w", err)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{cfg.InputIDs, cfg.AttentionMask},
		[]string{cfg.Logits},
		options,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &Session{session: session}, nil
}

// Infer runs the model on one sequence and returns logits indexed by
// position, then label.
func (s *Session) Infer(ctx context.Context, inputIDs, attentionMask []int64) ([][]float32, error) {
	// Check context before expensive operation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("session is closed")
	}

	seqLen := int64(len(inputIDs))
	shape := ort.NewShape(1, seqLen)

	inputIDsTensor, err := ort.NewTensor(shape, inputIDs)
	if err != nil {
		return nil, fmt.Errorf("creating input_ids tensor: %w", err)
	}
	defer func() { _ = inputIDsTensor.Destroy() }()

	attentionMaskTensor, err := ort.NewTensor(shape, attentionMask)
	if err != nil {
		return nil, fmt.Errorf("creating attention_mask tensor: %w", err)
	}
	defer func() { _ = attentionMaskTensor.Destroy() }()

	inputs := []ort.Value{inputIDsTensor, attentionMaskTensor}
	outputs := []ort.Value{nil} // allocated by Run

	if err := s.session.Run(inputs, outputs); err != nil {
		return nil, fmt.Errorf("running inference: %w", err)
	}
	if outputs[0] == nil {
		return nil, fmt.Errorf("no output produced")
	}
	defer func() { _ = outputs[0].Destroy() }()

	logitsTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type")
	}

	dims := logitsTensor.GetShape()
	if len(dims) != 3 || dims[1] != seqLen {
		return nil, fmt.Errorf("unexpected logits shape %v for %d positions", dims, seqLen)
	}

	return splitRows(logitsTensor.GetData(), int(seqLen), int(dims[2])), nil
}

// splitRows copies a row-major [rows x cols] buffer into per-row slices.
func splitRows(data []float32, rows, cols int) [][]float32 {
	out := make([][]float32, rows)
	for i := range out {
		row := make([]float32, cols)
		copy(row, data[i*cols:(i+1)*cols])
		out[i] = row
	}
	return out
}

// Close releases ONNX resources.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	if s.session != nil {
		return s.session.Destroy()
	}
	return nil
}
