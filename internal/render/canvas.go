package render

// Canvas is the drawing surface handed to entity renderers and front overlays.
// Implementations live in the host (browser canvas, terminal, test recorder);
// the engine only issues primitive calls.
type Canvas interface {
	Width() float64
	Height() float64
	SetAlpha(a float64)
	FillRect(x, y, w, h float64, color string)
	FillCircle(x, y, r float64, color string)
	FillTriangle(x, y, side float64, color string)
	Text(x, y float64, size float64, text, color string)
}

// Nop discards every draw call. Used by the headless runner.
type Nop struct {
	W, H float64
}

func (n Nop) Width() float64                                { return n.W }
func (n Nop) Height() float64                               { return n.H }
func (Nop) SetAlpha(float64)                                {}
func (Nop) FillRect(_, _, _, _ float64, _ string)           {}
func (Nop) FillCircle(_, _, _ float64, _ string)            {}
func (Nop) FillTriangle(_, _, _ float64, _ string)          {}
func (Nop) Text(_, _ float64, _ float64, _ string, _ string) {}

// Call is one recorded draw primitive.
type Call struct {
	Op    string
	X, Y  float64
	A, B  float64
	Alpha float64
	Color string
	Text  string
}

// Recorder keeps every draw call in order. Front-pass overlays are asserted
// against it in tests.
type Recorder struct {
	W, H  float64
	Calls []Call
	alpha float64
}

func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h, alpha: 1}
}

func (r *Recorder) Width() float64  { return r.W }
func (r *Recorder) Height() float64 { return r.H }

func (r *Recorder) SetAlpha(a float64) { r.alpha = a }

func (r *Recorder) FillRect(x, y, w, h float64, color string) {
	r.Calls = append(r.Calls, Call{Op: "rect", X: x, Y: y, A: w, B: h, Alpha: r.alpha, Color: color})
}

func (r *Recorder) FillCircle(x, y, radius float64, color string) {
	r.Calls = append(r.Calls, Call{Op: "circle", X: x, Y: y, A: radius, Alpha: r.alpha, Color: color})
}

func (r *Recorder) FillTriangle(x, y, side float64, color string) {
	r.Calls = append(r.Calls, Call{Op: "triangle", X: x, Y: y, A: side, Alpha: r.alpha, Color: color})
}

func (r *Recorder) Text(x, y float64, size float64, text, color string) {
	r.Calls = append(r.Calls, Call{Op: "text", X: x, Y: y, A: size, Alpha: r.alpha, Color: color, Text: text})
}

// Count returns the number of recorded calls with the given op.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset drops recorded calls, typically once per frame.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
	r.alpha = 1
}
