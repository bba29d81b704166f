package wallpaper

// TuningConfig holds the thresholds used by the smart and face anchors.
type TuningConfig struct {
	// SmartThumbSize bounds the longest side of the image analyzed by
	// smartcrop.
	SmartThumbSize int

	FaceThumbSize        int
	FaceIoUThreshold     float64 // Clustering
	FaceScaleFactor      float64 // pigo internal
	FaceDetectConfidence float32 // Base filter
	FaceDetectMinSizePct int     // Percent of the shorter side
	FaceDetectShift      float64 // Stride
}

// DefaultTuningConfig returns the standard values.
func DefaultTuningConfig() TuningConfig {
	return TuningConfig{
		SmartThumbSize:       512,
		FaceThumbSize:        1024,
		FaceIoUThreshold:     0.2,
		FaceScaleFactor:      1.1,
		FaceDetectConfidence: 10.0,
		FaceDetectMinSizePct: 1,
		FaceDetectShift:      0.1,
	}
}
