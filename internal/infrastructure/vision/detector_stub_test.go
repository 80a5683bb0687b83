//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"plant-bot/internal/domain/entity"
)

func TestStubDetector_Unavailable(t *testing.T) {
	dir := t.TempDir()
	weights := filepath.Join(dir, "best.onnx")
	labels := filepath.Join(dir, "data.yaml")
	require.NoError(t, os.WriteFile(weights, []byte("onnx"), 0o644))
	require.NoError(t, os.WriteFile(labels, []byte("names: [Adenium_obesum]\n"), 0o644))

	d, err := NewYOLODetector(DetectorConfig{ModelPath: weights, LabelsPath: labels})
	require.NoError(t, err)
	defer d.Close()

	_, err = d.Detect(context.Background(), &entity.DecodedImage{})
	require.True(t, errors.Is(err, entity.ErrDetectorUnavailable))
}

func TestStubDetector_MissingWeights(t *testing.T) {
	_, err := NewYOLODetector(DetectorConfig{ModelPath: "/nonexistent/best.onnx"})
	require.Error(t, err)
}
