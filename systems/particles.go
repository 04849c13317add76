package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/emberfield/components"
	"github.com/pthm-cable/emberfield/config"
)

// Particle is a copy of one particle's state.
type Particle struct {
	Pos  components.Position
	Vel  components.Velocity
	Life components.Life
	Look components.Look
}

// Stroke is one particle's draw command for the current frame.
// The square is centered on (X, Y) and rotated by Theta about that point.
type Stroke struct {
	X, Y  float64
	Size  float64
	Theta float64
	Hue   float64
	Alpha float64 // 0-1
}

// Pool owns a fixed population of particles stored in its own ECS world.
// Particles are never added or removed after NewPool, only respawned in place.
type Pool struct {
	world  *ecs.World
	mapper *ecs.Map4[components.Position, components.Velocity, components.Life, components.Look]
	filter *ecs.Filter4[components.Position, components.Velocity, components.Life, components.Look]

	// entities[i] is particle i
	entities []ecs.Entity

	cfg    config.FieldConfig
	spiral float64
	rng    *rand.Rand

	tick     uint64
	respawns int
}

// NewPool allocates cfg.Count particles. Call SpawnAll before stepping.
func NewPool(cfg config.FieldConfig, rng *rand.Rand) *Pool {
	world := ecs.NewWorld()

	p := &Pool{
		world:    world,
		mapper:   ecs.NewMap4[components.Position, components.Velocity, components.Life, components.Look](world),
		filter:   ecs.NewFilter4[components.Position, components.Velocity, components.Life, components.Look](world),
		entities: make([]ecs.Entity, cfg.Count),
		cfg:      cfg,
		spiral:   cfg.SpiralOffset(),
		rng:      rng,
	}

	for i := range p.entities {
		pos := components.Position{}
		vel := components.Velocity{}
		life := components.Life{}
		look := components.Look{}
		p.entities[i] = p.mapper.NewEntity(&pos, &vel, &life, &look)
	}

	return p
}

// Len returns the configured population size.
func (p *Pool) Len() int {
	return len(p.entities)
}

// Live counts the particles present in the world.
func (p *Pool) Live() int {
	n := 0
	query := p.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Tick returns the frame counter.
func (p *Pool) Tick() uint64 {
	return p.tick
}

// Advance increments the frame counter and returns the new value.
func (p *Pool) Advance() uint64 {
	p.tick++
	return p.tick
}

// TakeRespawns returns the number of respawns since the last call and resets it.
func (p *Pool) TakeRespawns() int {
	n := p.respawns
	p.respawns = 0
	return n
}

// SpawnAll respawns every particle and resets the frame counter.
func (p *Pool) SpawnAll(vp Viewport) {
	p.tick = 0
	p.respawns = 0
	for i := range p.entities {
		p.SpawnOne(i, vp)
	}
}

// SpawnOne redraws every attribute of particle i from its configured range.
func (p *Pool) SpawnOne(i int, vp Viewport) {
	pos, vel, life, look := p.mapper.Get(p.entities[i])
	p.spawn(pos, vel, life, look, vp)
}

func (p *Pool) spawn(pos *components.Position, vel *components.Velocity, life *components.Life, look *components.Look, vp Viewport) {
	cfg := &p.cfg

	pos.X = p.rng.Float64() * vp.Width
	pos.Y = p.rng.Float64() * vp.Height

	// Launch toward the center
	theta := Angle(pos.X, pos.Y, vp.CenterX, vp.CenterY)
	vel.X = math.Cos(theta) * cfg.SpawnSpeed
	vel.Y = math.Sin(theta) * cfg.SpawnSpeed
	vel.Speed = cfg.SpeedBase + p.rng.Float64()*cfg.SpeedRange

	life.Age = 0
	life.Lifetime = cfg.LifetimeBase + p.rng.Float64()*cfg.LifetimeRange

	look.Size = cfg.SizeBase + p.rng.Float64()*cfg.SizeRange
	look.Hue = cfg.HueBase + p.rng.Float64()*cfg.HueRange
}

// Get returns a copy of particle i.
func (p *Pool) Get(i int) Particle {
	pos, vel, life, look := p.mapper.Get(p.entities[i])
	return Particle{Pos: *pos, Vel: *vel, Life: *life, Look: *look}
}

// Set overwrites particle i.
func (p *Pool) Set(i int, part Particle) {
	pos, vel, life, look := p.mapper.Get(p.entities[i])
	*pos = part.Pos
	*vel = part.Vel
	*life = part.Life
	*look = part.Look
}

// Step advances particle i by one frame and returns its stroke at the pre-update position.
func (p *Pool) Step(i int, vp Viewport) Stroke {
	pos, vel, life, look := p.mapper.Get(p.entities[i])
	return p.advance(pos, vel, life, look, vp)
}

// StepAll advances every particle by one frame, appending their strokes to dst.
// Particles are independent, so query order does not matter.
func (p *Pool) StepAll(vp Viewport, dst []Stroke) []Stroke {
	query := p.filter.Query()
	for query.Next() {
		pos, vel, life, look := query.Get()
		dst = append(dst, p.advance(pos, vel, life, look, vp))
	}
	return dst
}

func (p *Pool) advance(pos *components.Position, vel *components.Velocity, life *components.Life, look *components.Look, vp Viewport) Stroke {
	cfg := &p.cfg

	// Steer toward a heading offset from the center so paths spiral in
	theta := Angle(pos.X, pos.Y, vp.CenterX, vp.CenterY) + p.spiral
	vel.X = Lerp(vel.X, cfg.TargetSpeed*math.Cos(theta), cfg.Steer)
	vel.Y = Lerp(vel.Y, cfg.TargetSpeed*math.Sin(theta), cfg.Steer)

	stroke := Stroke{
		X:     pos.X,
		Y:     pos.Y,
		Size:  look.Size,
		Theta: theta,
		Hue:   look.Hue,
		Alpha: clamp01(Fade(float64(life.Age), life.Lifetime) * cfg.AlphaScale),
	}

	pos.X += vel.X * vel.Speed
	pos.Y += vel.Y * vel.Speed

	life.Age++
	if life.Expired() {
		p.spawn(pos, vel, life, look, vp)
		p.respawns++
	}

	return stroke
}
