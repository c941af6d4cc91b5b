package scene

import (
	"sync"
	"time"
)

const (
	// boxSpin — прирост поворота вокруг Y за кадр.
	boxSpin = 0.005
	// hoverDuration — длительность перехода при наведении и уходе указателя.
	hoverDuration = 400 * time.Millisecond
)

// Целевые значения наклона коробки при наведении.
const (
	hoverRotationX = 0.03
	hoverRotationY = -0.1
	hoverPositionZ = 5
)

// BoxOptions — параметры коробки с обложкой.
type BoxOptions struct {
	// ImageURL — обложка на передней и задней гранях.
	ImageURL  string
	Width     float64
	Height    float64
	Thickness float64
}

// Vec3 — тройка координат или углов.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Face — материал одной грани в порядке +X, -X, +Y, -Y, +Z, -Z.
type Face struct {
	Name    string  `json:"name"`
	Color   string  `json:"color,omitempty"`
	Image   string  `json:"image,omitempty"`
	Opacity float64 `json:"opacity"`
}

// BoxSnapshot — копия состояния коробки на момент кадра.
type BoxSnapshot struct {
	Frame     uint64  `json:"frame"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Thickness float64 `json:"thickness"`
	Faces     []Face  `json:"faces"`
	Rotation  Vec3    `json:"rotation"`
	Position  Vec3    `json:"position"`
	Hovered   bool    `json:"hovered"`
}

// tween — переход наклона и выдвижения к цели с замедлением в конце.
type tween struct {
	active  bool
	started bool
	start   time.Duration
	fromRot Vec3
	fromZ   float64
	toRot   Vec3
	toZ     float64
}

// Box — вращающаяся коробка с обложкой.
// Advance, SetHover и Snapshot защищены мьютексом.
type Box struct {
	mu       sync.Mutex
	frame    uint64
	width    float64
	height   float64
	thick    float64
	faces    []Face
	rotation Vec3
	position Vec3
	hovered  bool
	tw       tween
}

// NewBox создаёт коробку фронтальной гранью к камере.
// Нулевые размеры заменяются значениями по умолчанию 10x200x1.
func NewBox(opts BoxOptions) *Box {
	b := &Box{
		width:  opts.Width,
		height: opts.Height,
		thick:  opts.Thickness,
	}
	if b.width <= 0 {
		b.width = 10
	}
	if b.height <= 0 {
		b.height = 200
	}
	if b.thick <= 0 {
		b.thick = 1
	}

	b.faces = []Face{
		{Name: "right", Color: "#050505", Opacity: 0.7},
		{Name: "left", Color: "#050505", Opacity: 0.7},
		{Name: "top", Color: "#1a1a1a", Opacity: 0.8},
		{Name: "bottom", Color: "#1a1a1a", Opacity: 0.8},
		{Name: "front", Image: opts.ImageURL, Opacity: 1},
		{Name: "back", Image: opts.ImageURL, Opacity: 0.9},
	}

	return b
}

// Advance выполняет один кадр для момента elapsed от старта анимации.
// Пока идёт переход наведения, он задаёт наклон и выдвижение поверх вращения.
func (b *Box) Advance(elapsed time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.frame++
	b.rotation.Y += boxSpin

	if !b.tw.active {
		return
	}

	if !b.tw.started {
		b.tw.started = true
		b.tw.start = elapsed
		b.tw.fromRot = Vec3{X: b.rotation.X, Y: b.rotation.Y}
		b.tw.fromZ = b.position.Z
	}

	p := float64(elapsed-b.tw.start) / float64(hoverDuration)
	if p >= 1 {
		p = 1
		b.tw.active = false
	}
	if p < 0 {
		p = 0
	}

	// power2.out
	e := 1 - (1-p)*(1-p)

	b.rotation.X = b.tw.fromRot.X + (b.tw.toRot.X-b.tw.fromRot.X)*e
	b.rotation.Y = b.tw.fromRot.Y + (b.tw.toRot.Y-b.tw.fromRot.Y)*e
	b.position.Z = b.tw.fromZ + (b.tw.toZ-b.tw.fromZ)*e
}

// SetHover запускает переход к наклону (true) или обратно в нейтраль (false).
// Переход начинается со следующего кадра от текущего положения.
func (b *Box) SetHover(hovered bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.hovered = hovered
	b.tw = tween{active: true}
	if hovered {
		b.tw.toRot = Vec3{X: hoverRotationX, Y: hoverRotationY}
		b.tw.toZ = hoverPositionZ
	}
}

// Snapshot возвращает независимую копию состояния.
func (b *Box) Snapshot() BoxSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return BoxSnapshot{
		Frame:     b.frame,
		Width:     b.width,
		Height:    b.height,
		Thickness: b.thick,
		Faces:     append(make([]Face, 0, len(b.faces)), b.faces...),
		Rotation:  b.rotation,
		Position:  b.position,
		Hovered:   b.hovered,
	}
}
