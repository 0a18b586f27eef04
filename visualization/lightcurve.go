package visualization

// LightCurvePoints is the rolling window kept by the renderer.
const LightCurvePoints = 200

// LightCurve is a fixed-size rolling buffer of brightness samples.
type LightCurve struct {
	buf   []float64
	start int
	size  int
}

func NewLightCurve(capacity int) *LightCurve {
	if capacity < 1 {
		capacity = LightCurvePoints
	}
	return &LightCurve{buf: make([]float64, capacity)}
}

// Push appends a sample, dropping the oldest once full.
func (l *LightCurve) Push(v float64) {
	if l.size < len(l.buf) {
		l.buf[(l.start+l.size)%len(l.buf)] = v
		l.size++
		return
	}
	l.buf[l.start] = v
	l.start = (l.start + 1) % len(l.buf)
}

func (l *LightCurve) Len() int { return l.size }

// Points returns the samples oldest first.
func (l *LightCurve) Points() []float64 {
	out := make([]float64, l.size)
	for i := range out {
		out[i] = l.buf[(l.start+i)%len(l.buf)]
	}
	return out
}

// Simulate steps the animation for the given number of frames at fps and
// returns the rolling light curve.
func (s Scene) Simulate(frames int, fps float64) *LightCurve {
	lc := NewLightCurve(LightCurvePoints)
	if fps <= 0 {
		fps = 60
	}
	for i := 0; i < frames; i++ {
		lc.Push(s.Brightness(float64(i) / fps))
	}
	return lc
}

// OrbitCurve samples one full animated orbit into LightCurvePoints points.
func (s Scene) OrbitCurve() []float64 {
	return s.Simulate(LightCurvePoints, LightCurvePoints/AnimationPeriod).Points()
}
