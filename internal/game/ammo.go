package game

import "image/color"

// Behavior is how a projectile travels and resolves.
type Behavior int

const (
	BehaviorNormal  Behavior = iota // straight travel, single hit
	BehaviorGrenade                 // detonates on impact, timeout or max range
	BehaviorBomb                    // instantaneous area effect at the shooter
)

func (b Behavior) String() string {
	switch b {
	case BehaviorNormal:
		return "normal"
	case BehaviorGrenade:
		return "grenade"
	case BehaviorBomb:
		return "bomb"
	default:
		return "unknown"
	}
}

// Element tags projectiles and shields. ElementNone means untagged.
type Element int

const (
	ElementNone Element = iota
	ElementRed
	ElementGreen
	ElementYellow
)

// shieldElements are the elements a shield can roll.
var shieldElements = [...]Element{ElementRed, ElementGreen, ElementYellow}

func (e Element) String() string {
	switch e {
	case ElementNone:
		return "none"
	case ElementRed:
		return "red"
	case ElementGreen:
		return "green"
	case ElementYellow:
		return "yellow"
	default:
		return "unknown"
	}
}

// Color is the element's display colour.
func (e Element) Color() color.RGBA {
	switch e {
	case ElementRed:
		return color.RGBA{R: 255, G: 77, B: 77, A: 255}
	case ElementGreen:
		return color.RGBA{R: 77, G: 255, B: 77, A: 255}
	case ElementYellow:
		return color.RGBA{R: 255, G: 255, B: 77, A: 255}
	default:
		return color.RGBA{R: 200, G: 200, B: 200, A: 255}
	}
}

// Rarity controls how often a definition shows up as a drop.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityMedium
	RarityRare
	RarityShopOnly
)

// DropWeight is the rarity's relative weight in a drop table.
func (r Rarity) DropWeight() float64 {
	switch r {
	case RarityCommon:
		return 1.0
	case RarityMedium:
		return 0.6
	case RarityRare:
		return 0.2
	default:
		return 0
	}
}

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityMedium:
		return "medium"
	case RarityRare:
		return "rare"
	case RarityShopOnly:
		return "shop"
	default:
		return "unknown"
	}
}

// DisplayShape is a hint for how the HUD draws a round.
type DisplayShape int

const (
	ShapeCircle DisplayShape = iota
	ShapeLong
	ShapeBigCircle
	ShapeFlame
	ShapeIce
	ShapeElemental
)

// UseRange is the inclusive range of uses rolled when a definition drops.
type UseRange struct {
	Min, Max int
}

// InfiniteUses marks a definition that never runs out.
const InfiniteUses = -1

// AmmoDef is an immutable ammunition definition. Magazines store values, so
// decrementing uses produces a new definition rather than mutating a shared
// one.
type AmmoDef struct {
	Name          string
	Speed         float64
	Damage        float64
	Radius        float64
	Color         color.RGBA
	UsesRemaining int // InfiniteUses, 0 = exhausted, >0 counts down
	ReloadTime    float64
	RearrangeTime float64
	Behavior      Behavior
	SplashDamage  float64
	SplashRadius  float64
	Effect        StatusKind
	Element       Element
	Rarity        Rarity
	Shape         DisplayShape
	DropUses      UseRange // zero value keeps UsesRemaining on drop
}

// Infinite reports whether the definition never runs out.
func (d AmmoDef) Infinite() bool { return d.UsesRemaining == InfiniteUses }

// Exhausted reports whether a finite definition has no uses left.
func (d AmmoDef) Exhausted() bool { return d.UsesRemaining == 0 }

// WithDecrementedUse returns a copy with one fewer use. Infinite and already
// exhausted definitions are returned unchanged.
func (d AmmoDef) WithDecrementedUse() AmmoDef {
	if d.UsesRemaining > 0 {
		d.UsesRemaining--
	}
	return d
}

// WithUses returns a copy with the given use count.
func (d AmmoDef) WithUses(n int) AmmoDef {
	d.UsesRemaining = n
	return d
}

// NewProjectile instantiates a projectile fired from (x,y) along angle.
func (d AmmoDef) NewProjectile(x, y, angle float64) *Projectile {
	return &Projectile{
		x:            x,
		y:            y,
		originX:      x,
		originY:      y,
		angle:        angle,
		speed:        d.Speed,
		damage:       d.Damage,
		radius:       d.Radius,
		color:        d.Color,
		behavior:     d.Behavior,
		splashDamage: d.SplashDamage,
		splashRadius: d.SplashRadius,
		effect:       d.Effect,
		element:      d.Element,
		name:         d.Name,
		alive:        true,
	}
}

// --- Catalogue ---

var (
	// AmmoWeak is the infinite starter round every magazine begins with.
	AmmoWeak = AmmoDef{
		Name: "Weak", Speed: 400, Damage: 15, Radius: 5,
		Color:         color.RGBA{R: 230, G: 230, B: 128, A: 255},
		UsesRemaining: InfiniteUses, ReloadTime: 0.15, RearrangeTime: 0.05,
		Rarity: RarityShopOnly, Shape: ShapeCircle,
	}

	AmmoInfinite = AmmoDef{
		Name: "Infinite", Speed: 350, Damage: 10, Radius: 5,
		Color:         color.RGBA{R: 230, G: 230, B: 128, A: 255},
		UsesRemaining: InfiniteUses, ReloadTime: 0.15, RearrangeTime: 0.05,
		Rarity: RarityShopOnly, Shape: ShapeCircle,
	}

	AmmoRifle = AmmoDef{
		Name: "Rifle", Speed: 800, Damage: 45, Radius: 4,
		Color:         color.RGBA{R: 204, G: 179, B: 77, A: 255},
		UsesRemaining: 3, ReloadTime: 0.8, RearrangeTime: 0.4,
		Rarity: RarityCommon, Shape: ShapeLong, DropUses: UseRange{2, 4},
	}

	AmmoFire = AmmoDef{
		Name: "Fire", Speed: 300, Damage: 20, Radius: 6,
		Color:         color.RGBA{R: 255, G: 102, B: 26, A: 255},
		UsesRemaining: 2, ReloadTime: 0.5, RearrangeTime: 0.2,
		Effect: StatusBurning, Rarity: RarityMedium, Shape: ShapeFlame, DropUses: UseRange{1, 2},
	}

	AmmoIce = AmmoDef{
		Name: "Ice", Speed: 320, Damage: 18, Radius: 6,
		Color:         color.RGBA{R: 128, G: 204, B: 255, A: 255},
		UsesRemaining: 4, ReloadTime: 0.35, RearrangeTime: 0.2,
		Effect: StatusFrozen, Rarity: RarityMedium, Shape: ShapeIce, DropUses: UseRange{3, 5},
	}

	// AmmoBomb uses Radius as its blast radius around the shooter.
	AmmoBomb = AmmoDef{
		Name: "Bomb", Speed: 0, Damage: 60, Radius: 150,
		Color:         color.RGBA{R: 230, G: 51, B: 51, A: 255},
		UsesRemaining: 1, ReloadTime: 1.2, RearrangeTime: 0.5,
		Behavior: BehaviorBomb, Rarity: RarityRare, Shape: ShapeBigCircle, DropUses: UseRange{1, 1},
	}

	AmmoGrenade = AmmoDef{
		Name: "Grenade", Speed: 200, Damage: 40, Radius: 10,
		Color:         color.RGBA{R: 77, G: 204, B: 77, A: 255},
		UsesRemaining: 2, ReloadTime: 0.6, RearrangeTime: 0.45,
		Behavior: BehaviorGrenade, SplashDamage: 30, SplashRadius: 80,
		Rarity: RarityRare, Shape: ShapeBigCircle, DropUses: UseRange{1, 2},
	}

	AmmoRedBolt    = elementalBolt("Red Bolt", ElementRed)
	AmmoGreenBolt  = elementalBolt("Green Bolt", ElementGreen)
	AmmoYellowBolt = elementalBolt("Yellow Bolt", ElementYellow)
)

func elementalBolt(name string, e Element) AmmoDef {
	return AmmoDef{
		Name: name, Speed: 350, Damage: 15, Radius: 5,
		Color:         e.Color(),
		UsesRemaining: 4, ReloadTime: 0.2, RearrangeTime: 0.1,
		Element: e, Rarity: RarityCommon, Shape: ShapeElemental, DropUses: UseRange{3, 5},
	}
}

// DroppableAmmo lists every definition that can come out of a drop table.
func DroppableAmmo() []AmmoDef {
	return []AmmoDef{
		AmmoRifle, AmmoFire, AmmoIce, AmmoBomb, AmmoGrenade,
		AmmoRedBolt, AmmoGreenBolt, AmmoYellowBolt,
	}
}
