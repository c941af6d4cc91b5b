// scene хранит состояние декоративных сцен: героя (солнце, планеты и звёзды)
// и вращающейся коробки с обложкой. Параметры объектов выбираются один раз
// при создании, дальше меняется только их положение и прозрачность.
package scene

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// pointerEase — доля расстояния до указателя, проходимая за кадр.
const pointerEase = 0.05

// Options — состав сцены.
type Options struct {
	Planets   int
	Particles int
	// Seed — зерно генератора; 0 означает текущее время.
	Seed int64
}

// Sun — состояние солнца.
type Sun struct {
	Rotation         float64 `json:"rotation"`
	Pulse            float64 `json:"pulse"`
	GlowRotation     float64 `json:"glow_rotation"`
	GlowOpacity      float64 `json:"glow_opacity"`
	CoronaRotation   float64 `json:"corona_rotation"`
	CoronaOpacity    float64 `json:"corona_opacity"`
	OuterGlowOpacity float64 `json:"outer_glow_opacity"`
	FlareOpacity     float64 `json:"flare_opacity"`
}

// Planet — планета на круговой орбите.
type Planet struct {
	Radius        float64 `json:"radius"`
	OrbitRadius   float64 `json:"orbit_radius"`
	OrbitSpeed    float64 `json:"orbit_speed"`
	RotationSpeed float64 `json:"rotation_speed"`
	BaseAngle     float64 `json:"base_angle"`
	BaseHeight    float64 `json:"base_height"`
	Rings         int     `json:"rings"`

	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Z            float64 `json:"z"`
	Rotation     float64 `json:"rotation"`
	RingRotation float64 `json:"ring_rotation"`
	RingOpacity  float64 `json:"ring_opacity"`
}

// Particle — звезда в одном из трёх слоёв вокруг солнца.
type Particle struct {
	Depth float64 `json:"depth"`
	Speed float64 `json:"speed"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
}

// Pointer — сглаженное положение указателя в координатах [-1, 1].
type Pointer struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Snapshot — копия состояния сцены на момент кадра.
type Snapshot struct {
	Frame     uint64     `json:"frame"`
	Time      float64    `json:"time"`
	Sun       Sun        `json:"sun"`
	Planets   []Planet   `json:"planets"`
	Particles []Particle `json:"particles"`
	Pointer   Pointer    `json:"pointer"`
}

// Hero — сцена героя. Advance и чтение состояния защищены мьютексом.
type Hero struct {
	mu        sync.Mutex
	frame     uint64
	time      float64
	sun       Sun
	planets   []Planet
	particles []Particle
	pointer   Pointer
	target    Pointer
}

// NewHero создаёт сцену со случайными, но фиксированными параметрами.
func NewHero(opts Options) *Hero {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	h := &Hero{
		planets:   make([]Planet, 0, max(opts.Planets, 0)),
		particles: make([]Particle, 0, max(opts.Particles, 0)),
	}

	for i := 0; i < opts.Planets; i++ {
		angle := float64(i) / float64(opts.Planets) * 2 * math.Pi
		p := Planet{
			Radius:      0.3 + rnd.Float64()*0.2,
			OrbitRadius: 3 + rnd.Float64(),
			BaseAngle:   angle,
		}

		if rnd.Float64() > 0.3 {
			p.Rings = 2 + rnd.Intn(2)
		}

		p.BaseHeight = (rnd.Float64() - 0.5) * 2
		p.OrbitSpeed = 0.1 + rnd.Float64()*0.2
		p.RotationSpeed = 0.02 + rnd.Float64()*0.03

		p.X = math.Cos(angle) * p.OrbitRadius
		p.Y = p.BaseHeight
		p.Z = math.Sin(angle) * p.OrbitRadius
		p.RingOpacity = 0.6

		h.planets = append(h.planets, p)
	}

	n := opts.Particles
	for i := 0; i < n; i++ {
		var radius, height float64

		switch {
		case float64(i) < float64(n)*0.3:
			radius = 1.5 + rnd.Float64()*1.5
			height = (rnd.Float64() - 0.5) * 1
		case float64(i) < float64(n)*0.6:
			radius = 3 + rnd.Float64()*2
			height = (rnd.Float64() - 0.5) * 1.5
		default:
			radius = 5 + rnd.Float64()*3
			height = (rnd.Float64() - 0.5) * 2
		}

		angle := rnd.Float64() * 2 * math.Pi
		h.particles = append(h.particles, Particle{
			Depth: radius,
			Speed: rnd.Float64()*0.3 + 0.2,
			X:     math.Cos(angle) * radius,
			Y:     height,
			Z:     math.Sin(angle) * radius,
		})
	}

	h.sun = Sun{Pulse: 0.3, GlowOpacity: 0.6, CoronaOpacity: 0.7, OuterGlowOpacity: 0.4, FlareOpacity: 0.6}

	return h
}

// Advance выполняет один кадр для момента elapsed от старта анимации.
//
// Орбиты и вертикальное покачивание планет обновляются каждый кадр,
// солнце, кольца, звёзды и указатель через кадр.
func (h *Hero) Advance(elapsed time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.frame++
	t := elapsed.Seconds()
	h.time = t
	even := h.frame%2 == 0

	if even {
		h.sun.Rotation += 0.005
		h.sun.Pulse = 0.3 + math.Sin(t*2)*0.2
		h.sun.GlowRotation += 0.01
		h.sun.GlowOpacity = 0.6 + math.Sin(t*1.5)*0.2
		h.sun.CoronaRotation -= 0.015
		h.sun.CoronaOpacity = 0.7 + math.Sin(t*2.5)*0.2
		h.sun.OuterGlowOpacity = 0.4 + math.Sin(t*1.8)*0.2
		h.sun.FlareOpacity = 0.6 + math.Sin(t*2.2)*0.2
	}

	for i := range h.planets {
		p := &h.planets[i]

		angle := p.BaseAngle + t*p.OrbitSpeed
		p.X = math.Cos(angle) * p.OrbitRadius
		p.Z = math.Sin(angle) * p.OrbitRadius
		p.Y = p.BaseHeight + math.Sin(t*1.2+float64(i))*0.1
		p.Rotation += p.RotationSpeed * 0.3

		if even && p.Rings > 0 {
			p.RingRotation += 0.003
			p.RingOpacity = 0.6 + math.Sin(t*2+float64(i))*0.2
		}
	}

	if even {
		for i := range h.particles {
			s := &h.particles[i]

			angle := math.Atan2(s.Z, s.X) + 0.002 + s.Speed*0.001
			s.X = math.Cos(angle) * s.Depth
			s.Z = math.Sin(angle) * s.Depth
			s.Y += math.Sin(t*0.2*s.Speed+float64(i*3)) * 0.0002

			if math.Abs(s.Y) > 3 {
				s.Y = -s.Y * 0.8
			}
		}

		h.pointer.X += (h.target.X - h.pointer.X) * pointerEase
		h.pointer.Y += (h.target.Y - h.pointer.Y) * pointerEase
	}
}

// SetTarget задаёт положение указателя; значения ограничиваются [-1, 1].
func (h *Hero) SetTarget(x, y float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.target = Pointer{X: clamp(x), Y: clamp(y)}
}

// Snapshot возвращает независимую копию состояния.
func (h *Hero) Snapshot() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	return Snapshot{
		Frame:     h.frame,
		Time:      h.time,
		Sun:       h.sun,
		Planets:   append(make([]Planet, 0, len(h.planets)), h.planets...),
		Particles: append(make([]Particle, 0, len(h.particles)), h.particles...),
		Pointer:   h.pointer,
	}
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < -1:
		return -1
	case v > 1:
		return 1
	default:
		return v
	}
}
