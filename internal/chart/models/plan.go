package models

// ============================================================
// Render Plan
// ============================================================

type PlanKind string

const (
	KindTable       PlanKind = "table"
	KindEmpty       PlanKind = "empty"
	KindUnsupported PlanKind = "unsupported"
	KindCartesian   PlanKind = "cartesian"
	KindPie         PlanKind = "pie"
)

// RenderPlan результат компиляции спеки. Набор вариантов закрыт:
// TablePlan, EmptyPlan, UnsupportedPlan, CartesianPlan, PiePlan.
type RenderPlan interface {
	Kind() PlanKind
	isRenderPlan()
}

// TablePlan табличное представление данных.
type TablePlan struct {
	Title   string     `json:"title,omitempty"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// EmptyPlan явный результат "нет данных".
type EmptyPlan struct {
	Type ChartType `json:"type"`
}

// UnsupportedPlan явный результат для неизвестного типа графика.
type UnsupportedPlan struct {
	Type ChartType `json:"type"`
}

func (*TablePlan) Kind() PlanKind       { return KindTable }
func (*EmptyPlan) Kind() PlanKind       { return KindEmpty }
func (*UnsupportedPlan) Kind() PlanKind { return KindUnsupported }
func (*CartesianPlan) Kind() PlanKind   { return KindCartesian }
func (*PiePlan) Kind() PlanKind         { return KindPie }

func (*TablePlan) isRenderPlan()       {}
func (*EmptyPlan) isRenderPlan()       {}
func (*UnsupportedPlan) isRenderPlan() {}
func (*CartesianPlan) isRenderPlan()   {}
func (*PiePlan) isRenderPlan()         {}

// ============================================================
// Geometry primitives
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Segment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

type Tick struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type Bar struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Radius   float64 `json:"rx"`
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

type Marker struct {
	X        float64 `json:"cx"`
	Y        float64 `json:"cy"`
	R        float64 `json:"r"`
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

type SliceLabel struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Slice сектор круговой диаграммы. Углы отсчитываются от начала
// полного оборота, т.е. лежат в [0, 2π].
type Slice struct {
	Index      int         `json:"index"`
	Value      float64     `json:"value"`
	StartAngle float64     `json:"startAngle"`
	EndAngle   float64     `json:"endAngle"`
	LargeArc   bool        `json:"largeArc"`
	Path       string      `json:"path"`
	Fill       string      `json:"fill"`
	Label      *SliceLabel `json:"label,omitempty"`
}

// Angle угловой размер сектора.
func (s Slice) Angle() float64 {
	return s.EndAngle - s.StartAngle
}

// PiePlan геометрия круговой диаграммы.
type PiePlan struct {
	Label  string  `json:"label"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Total  float64 `json:"total"`
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
	// Rotation угол экрана, с которого начинается первый сектор.
	Rotation float64 `json:"rotation"`
	Slices   []Slice `json:"slices"`
}
