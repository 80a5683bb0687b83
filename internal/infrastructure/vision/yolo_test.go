package vision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"plant-bot/internal/domain/entity"
)

// yoloOutput собирает выход [1, 4+nc, anchors] из описаний якорей.
func yoloOutput(numClasses int, anchors [][]float32) []float32 {
	rows := 4 + numClasses
	data := make([]float32, rows*len(anchors))
	for i, a := range anchors {
		for r := 0; r < rows; r++ {
			data[r*len(anchors)+i] = a[r]
		}
	}
	return data
}

func TestLetterbox_Geometry(t *testing.T) {
	lb := newLetterbox(1280, 640, 640)
	require.InDelta(t, 0.5, lb.scale, 1e-9)
	require.Equal(t, 0, lb.padX)
	require.Equal(t, 160, lb.padY)

	box := lb.toOriginal(320, 320, 100, 100)
	require.Equal(t, entity.BoundingBox{X: 540, Y: 220, Width: 200, Height: 200}, box)
}

func TestLetterbox_ClampsToImage(t *testing.T) {
	lb := newLetterbox(640, 640, 640)
	box := lb.toOriginal(10, 10, 60, 60)
	require.Equal(t, 0, box.X)
	require.Equal(t, 0, box.Y)
	require.Equal(t, 40, box.Width)
}

func TestDecodeYOLO_PicksBestClass(t *testing.T) {
	lb := newLetterbox(640, 640, 640)
	data := yoloOutput(2, [][]float32{
		{100, 100, 20, 20, 0.10, 0.80},
		{300, 300, 20, 20, 0.05, 0.10}, // ниже порога
	})

	dets, err := decodeYOLO(data, 2, 2, lb, 0.25)
	require.NoError(t, err)
	require.Len(t, dets, 1)
	require.Equal(t, 1, dets[0].ClassID)
	require.InDelta(t, 0.80, dets[0].Confidence, 1e-6)
}

func TestDecodeYOLO_BadShape(t *testing.T) {
	lb := newLetterbox(10, 10, 640)
	_, err := decodeYOLO([]float32{1, 2, 3}, 1, 4, lb, 0.25)
	require.Error(t, err)

	_, err = decodeYOLO(nil, 0, 4, lb, 0.25)
	require.Error(t, err)
}

func TestNonMaxSuppression_ClassAware(t *testing.T) {
	box := entity.BoundingBox{X: 0, Y: 0, Width: 100, Height: 100}
	shifted := entity.BoundingBox{X: 5, Y: 5, Width: 100, Height: 100}
	far := entity.BoundingBox{X: 500, Y: 500, Width: 50, Height: 50}

	dets := []entity.RawDetection{
		{ClassID: 0, Confidence: 0.6, Box: shifted},
		{ClassID: 0, Confidence: 0.9, Box: box},
		{ClassID: 1, Confidence: 0.5, Box: box},
		{ClassID: 0, Confidence: 0.4, Box: far},
	}

	kept := nonMaxSuppression(dets, 0.7, 300)
	require.Len(t, kept, 3)
	require.InDelta(t, 0.9, kept[0].Confidence, 1e-6)
	require.Equal(t, 1, kept[1].ClassID)
	require.Equal(t, far, kept[2].Box)
}

func TestNonMaxSuppression_MaxDetections(t *testing.T) {
	dets := []entity.RawDetection{
		{ClassID: 0, Confidence: 0.9, Box: entity.BoundingBox{X: 0, Width: 10, Height: 10}},
		{ClassID: 0, Confidence: 0.8, Box: entity.BoundingBox{X: 100, Width: 10, Height: 10}},
	}
	require.Len(t, nonMaxSuppression(dets, 0.7, 1), 1)
	require.Nil(t, nonMaxSuppression(nil, 0.7, 1))
}

func TestPostprocess_ResolvesLabels(t *testing.T) {
	labels, err := ParseLabels([]byte("names: [Adenium_obesum]\n"))
	require.NoError(t, err)

	data := yoloOutput(1, [][]float32{
		{320, 320, 64, 64, 0.91},
		{322, 322, 64, 64, 0.50}, // подавляется NMS
	})
	cfg := DefaultDetectorConfig()

	dets, err := postprocess(data, []int{1, 5, 2}, labels, newLetterbox(640, 640, 640), cfg)
	require.NoError(t, err)
	require.Len(t, dets, 1)
	require.Equal(t, "Adenium_obesum", dets[0].Label)

	_, err = postprocess(data, []int{5, 2}, labels, newLetterbox(640, 640, 640), cfg)
	require.Error(t, err)
}
