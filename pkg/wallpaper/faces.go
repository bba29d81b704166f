package wallpaper

import (
	"errors"
	"fmt"
	"image"
	"math"
	"os"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
	"github.com/jamesbarr/centr/util/log"
)

var errInvalidFaceModel = errors.New("invalid face model")

// LoadFaceDetector unpacks a pigo cascade file, such as pigo's "facefinder".
func LoadFaceDetector(path string) (classifier *pigo.Pigo, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading face model: %w", err)
	}

	// Unpack indexes into the packet without bounds checks.
	defer func() {
		if r := recover(); r != nil {
			classifier, err = nil, fmt.Errorf("unpacking face model %s: %w: %v", path, errInvalidFaceModel, r)
		}
	}()
	classifier, err = pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("unpacking face model %s: %w", path, err)
	}
	return classifier, nil
}

// faceFocus returns the center of the most confident face in img, in img's
// origin-anchored coordinates.
func (p *Processor) faceFocus(img image.Image) (float64, float64, bool) {
	if p.faces == nil {
		return 0, 0, false
	}

	thumb := imaging.Fit(img, p.tuning.FaceThumbSize, p.tuning.FaceThumbSize, imaging.Linear)
	cols, rows := thumb.Bounds().Dx(), thumb.Bounds().Dy()
	minDim := int(math.Min(float64(cols), float64(rows)))

	params := pigo.CascadeParams{
		MinSize:     int(math.Max(20, float64(minDim*p.tuning.FaceDetectMinSizePct/100))),
		MaxSize:     minDim,
		ShiftFactor: p.tuning.FaceDetectShift,
		ScaleFactor: p.tuning.FaceScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(thumb),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	detections := p.faces.RunCascade(params, 0.0)
	detections = p.faces.ClusterDetections(detections, p.tuning.FaceIoUThreshold)

	fx, fy, ok := bestFace(detections, p.tuning.FaceDetectConfidence, float64(img.Bounds().Dx())/float64(cols))
	if !ok {
		log.Debugf("No face above confidence %.1f among %d detections", p.tuning.FaceDetectConfidence, len(detections))
	}
	return fx, fy, ok
}

// bestFace returns the center of the most confident detection at or above
// minQ, scaled from thumbnail to image coordinates.
func bestFace(detections []pigo.Detection, minQ float32, scale float64) (float64, float64, bool) {
	best := -1
	for i, d := range detections {
		if d.Q < minQ {
			continue
		}
		if best < 0 || d.Q > detections[best].Q {
			best = i
		}
	}
	if best < 0 {
		return 0, 0, false
	}

	face := detections[best]
	log.Debugf("Face at row %d col %d scale %d (Q: %.2f)", face.Row, face.Col, face.Scale, face.Q)
	return float64(face.Col) * scale, float64(face.Row) * scale, true
}
