package metrics

// MaxLag is the largest distance ever observed between the outermost and
// innermost node.
type MaxLag struct {
	name   string
	value  float64
	series []float64
}

func NewMaxLag() *MaxLag {
	return &MaxLag{name: "max_lag"}
}

func (m *MaxLag) Name() string { return m.name }

func (m *MaxLag) Observe(f Frame) {
	n := len(f.Positions)
	if n < 2 {
		m.series = append(m.series, 0)
		return
	}
	d := f.Positions[0].Dist(f.Positions[n-1])
	m.series = append(m.series, d)
	if d > m.value {
		m.value = d
	}
}

func (m *MaxLag) Value() float64 { return m.value }

// Series returns the per-frame lag, oldest first.
func (m *MaxLag) Series() []float64 { return m.series }

func (m *MaxLag) Reset() {
	m.value = 0
	m.series = nil
}
