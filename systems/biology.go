package systems

import (
	"math"

	"github.com/NeoLorenzo/eco-system-evolution/components"
	"github.com/NeoLorenzo/eco-system-evolution/config"
)

const secondsPerHour = 3600.0

// radiusFromArea inverts the disc area, cm.
func radiusFromArea(a float64) float64 {
	if a <= 0 {
		return 0
	}
	return math.Sqrt(a / math.Pi)
}

// updateSeed runs one dormancy tick. A seed pays a small fixed upkeep and
// waits for its cached germination conditions to be favorable; it never
// photosynthesizes and never appears on the competition grids.
func (p *Plant) updateSeed(ctx *UpdateContext, dt float64) {
	cfg := config.Cfg().Plant
	i := p.Index

	if p.soil == components.SoilNone {
		p.Die(ctx, components.DeathInvalidSoil)
		return
	}

	p.store.Energy[i] -= cfg.DormancyMetabolismJPerHour / secondsPerHour * dt
	if p.store.Energy[i] <= 0 {
		p.Die(ctx, components.DeathDormancyFailure)
		return
	}

	temp := p.store.Temperature[i]
	humidity := p.store.Humidity[i]
	favorable := temp >= cfg.GerminationMinTemp && temp <= cfg.GerminationMaxTemp &&
		humidity >= cfg.GerminationHumidityThreshold
	if !favorable || p.store.Energy[i] < cfg.SproutingEnergyCost {
		return
	}

	p.sprout(ctx)
}

// sprout pays the germination cost and instantiates the seedling body.
func (p *Plant) sprout(ctx *UpdateContext) {
	cfg := config.Cfg().Plant
	i := p.Index

	p.store.Energy[i] -= cfg.SproutingEnergyCost
	p.store.Radius[i] = cfg.SproutRadiusCM
	p.store.RootRadius[i] = cfg.SproutRootRadiusCM
	p.store.CoreRadius[i] = cfg.SproutCoreRadiusCM
	p.store.Height[i] = cfg.SproutRadiusCM * p.morphFactor
	p.stage = components.StageSeedling

	// The frame-wide rate sweep ran while this row was still a bodiless
	// seed; refresh it so the first growth tick sees real rates.
	p.store.RecomputeRow(i)

	if ctx.Trace.Enabled(p.id) {
		ctx.Trace.Event(p.id, ctx.Now, "seed germinated",
			"energy", p.store.Energy[i], "soil", p.soil.String())
	}
}

// updateGrowth runs one tick of the sprouted-plant energy budget.
func (p *Plant) updateGrowth(ctx *UpdateContext, dt float64) {
	cfg := config.Cfg().Plant
	i := p.Index

	canopy := canopyArea(p.store.Radius[i])
	root := canopyArea(p.store.RootRadius[i])
	core := canopyArea(p.store.CoreRadius[i])

	effCanopy := canopy - p.store.ShadedArea[i]
	if effCanopy < 0 {
		effCanopy = 0
	}
	gain := effCanopy * p.store.PhotoRate[i] * dt
	cost := (canopy + root + core) * p.store.MetRate[i] * dt
	net := gain - cost

	if ctx.Trace.Enabled(p.id) {
		ctx.Trace.Event(p.id, ctx.Now, "energy balance",
			"gain", gain, "cost", cost, "net", net,
			"energy", p.store.Energy[i], "shaded_area", p.store.ShadedArea[i])
	}

	if net >= 0 {
		p.applySurplus(ctx, dt, net)
	} else {
		p.applyDeficit(ctx, dt, net)
		if !p.alive {
			return
		}
	}

	if p.store.Energy[i] <= 0 {
		p.Die(ctx, components.DeathStarvation)
		return
	}

	if p.coreGrowthAccum >= cfg.CrushCheckCoreGrowthCM {
		p.coreGrowthAccum = 0
		p.crushNeighbors(ctx)
	}

	// Reproduction is a surplus activity; a tick that ran a deficit
	// diverts nothing regardless of reserves.
	if p.stage == components.StageMature && net >= 0 {
		p.investInReproduction(ctx, dt)
	}
	p.ageOrgans(ctx, dt)

	// Structural integrity: the core must carry the canopy it supports.
	canopy = canopyArea(p.store.Radius[i])
	core = canopyArea(p.store.CoreRadius[i])
	if canopy > 0 && core/canopy < cfg.MinCoreToCanopyAreaRatio {
		p.Die(ctx, components.DeathStructuralFailure)
	}
}

// applySurplus banks the tick's net gain and reinvests the same amount as
// growth, spent core-first toward the ideal support ratio, the remainder
// split between canopy and root against whichever efficiency is lagging.
func (p *Plant) applySurplus(ctx *UpdateContext, dt, net float64) {
	i := p.Index
	p.store.Energy[i] += net

	if !p.selfSufficient && net > 0 {
		p.selfSufficient = true
		if p.stage == components.StageSeedling {
			p.stage = components.StageMature
			if ctx.Trace.Enabled(p.id) {
				ctx.Trace.Event(p.id, ctx.Now, "reached maturity", "age", p.store.Age[i])
			}
		}
	}

	if net > 0 {
		p.growTissue(ctx, net)
	}
}

// growTissue converts a growth energy budget into new tissue area.
func (p *Plant) growTissue(ctx *UpdateContext, budget float64) {
	cfg := config.Cfg()
	pc := cfg.Plant
	i := p.Index

	canopy := canopyArea(p.store.Radius[i])
	root := canopyArea(p.store.RootRadius[i])
	core := canopyArea(p.store.CoreRadius[i])

	// Core first: structural tissue is several times more expensive but
	// takes priority until the support ratio is restored.
	if canopy > 0 && core/canopy < pc.IdealCoreToCanopyAreaRatio {
		needed := pc.IdealCoreToCanopyAreaRatio*canopy - core
		spend := needed * cfg.Derived.CoreBiomassEnergyCost
		if spend > budget {
			spend = budget
		}
		grown := spend / cfg.Derived.CoreBiomassEnergyCost
		oldRadius := p.store.CoreRadius[i]
		core += grown
		p.store.CoreRadius[i] = radiusFromArea(core)
		p.coreGrowthAccum += p.store.CoreRadius[i] - oldRadius
		budget -= spend
	}
	if budget <= 0 {
		p.updateMorphology(ctx)
		return
	}

	// Remainder: grow the limiting organ. A lagging soil supply chain
	// pulls investment toward roots, a lagging climate fit toward canopy.
	envEff := p.store.EnvEff[i]
	soilEff := p.store.SoilEff[i]
	canopyShare := 0.5
	if sum := envEff + soilEff; sum > 0 {
		canopyShare = soilEff / sum
	}

	canopy += canopyShare * budget / cfg.Derived.BiomassEnergyCost
	root += (1 - canopyShare) * budget / cfg.Derived.BiomassEnergyCost
	p.store.Radius[i] = radiusFromArea(canopy)
	p.store.RootRadius[i] = radiusFromArea(root)

	p.updateMorphology(ctx)
}

// updateMorphology adapts the radius-to-height factor toward the shade
// level and refreshes the height column.
func (p *Plant) updateMorphology(ctx *UpdateContext) {
	pc := config.Cfg().Plant
	i := p.Index

	canopy := canopyArea(p.store.Radius[i])
	shadeFrac := 0.0
	if canopy > 0 {
		shadeFrac = clamp01(p.store.ShadedArea[i] / canopy)
	}

	target := pc.RadiusToHeightFactor +
		(pc.MaxShadeRadiusToHeightFactor-pc.RadiusToHeightFactor)*shadeFrac
	p.morphFactor += (target - p.morphFactor) * pc.MorphologyAdaptationRate
	p.store.Height[i] = p.store.Radius[i] * p.morphFactor
}

// applyDeficit covers a negative tick balance from reserves while they
// hold above the safety floor, then sheds tissue instead. A plant that
// has never been self-sufficient additionally burns its seed provisions
// as growth investment, which is how a seedling outgrows its own deficit.
func (p *Plant) applyDeficit(ctx *UpdateContext, dt, net float64) {
	pc := config.Cfg().Plant
	i := p.Index

	if p.store.Energy[i] > pc.GrowthInvestmentReserve {
		p.store.Energy[i] += net

		if !p.selfSufficient {
			invest := pc.GrowthInvestmentJPerHour / secondsPerHour * dt
			if headroom := p.store.Energy[i] - pc.GrowthInvestmentReserve; invest > headroom {
				invest = headroom
			}
			if invest > 0 {
				p.store.Energy[i] -= invest
				p.growTissue(ctx, invest)
			}
		}
		return
	}

	upkeep := p.store.MetRate[i] * dt
	if upkeep <= 0 {
		p.store.Energy[i] += net
		return
	}
	shedArea := -net / upkeep

	canopy := canopyArea(p.store.Radius[i])
	root := canopyArea(p.store.RootRadius[i])
	core := canopyArea(p.store.CoreRadius[i])
	total := canopy + root + core
	if total <= 0 {
		p.Die(ctx, components.DeathPruningCollapse)
		return
	}

	frac := shedArea / total
	if frac > 1 {
		frac = 1
	}
	p.store.Radius[i] = radiusFromArea(canopy * (1 - frac))
	p.store.RootRadius[i] = radiusFromArea(root * (1 - frac))
	p.store.CoreRadius[i] = radiusFromArea(core * (1 - frac))
	p.store.Height[i] = p.store.Radius[i] * p.morphFactor

	if ctx.Trace.Enabled(p.id) {
		ctx.Trace.Event(p.id, ctx.Now, "pruned tissue",
			"shed_area", shedArea, "new_radius", p.store.Radius[i])
	}

	if p.store.Radius[i] < pc.MinViableCanopyRadiusCM {
		p.Die(ctx, components.DeathPruningCollapse)
	}
}

// crushNeighbors kills small plants whose center the expanding trunk has
// grown over. A neighbor dies when its canopy is both smaller than this
// plant's core and below the crush-resistance radius. Runs only after a
// configured amount of accumulated core growth, so established neighbors
// are not re-checked every tick.
func (p *Plant) crushNeighbors(ctx *UpdateContext) {
	pc := config.Cfg().Plant
	i := p.Index

	core := p.store.CoreRadius[i]
	if core <= 0 || ctx.Index == nil {
		return
	}

	for _, o := range ctx.Index.QueryCircle(p.x, p.y, core, nil) {
		other, ok := o.(*Plant)
		if !ok || other == p || !other.IsAlive() {
			continue
		}
		canopy := other.store.Radius[other.Index]
		if canopy >= pc.CrushResistanceRadiusCM || canopy >= core {
			continue
		}
		other.Die(ctx, components.DeathCoreCrush)
		if ctx.Trace.Enabled(p.id) {
			ctx.Trace.Event(p.id, ctx.Now, "crushed neighbor", "victim_id", other.ID())
		}
	}
}

// investInReproduction diverts energy above the safety reserve into the
// reproductive store and spawns flowers once enough has accumulated.
func (p *Plant) investInReproduction(ctx *UpdateContext, dt float64) {
	pc := config.Cfg().Plant
	i := p.Index

	if p.store.Energy[i] > pc.GrowthInvestmentReserve {
		invest := pc.ReproductiveInvestmentJPerHour / secondsPerHour * dt
		if headroom := p.store.Energy[i] - pc.GrowthInvestmentReserve; invest > headroom {
			invest = headroom
		}
		p.store.Energy[i] -= invest
		p.store.ReproStore[i] += invest
	}

	canopy := canopyArea(p.store.Radius[i])
	maxFlowers := int(pc.MaxFlowersPerCanopyArea * canopy)

	// Spawning waits for a full buffer, then pays per flower, keeping a
	// provisioning cushion in the store between bursts.
	for p.store.ReproStore[i] >= pc.ReproductionMinimumStoredEnergy && len(p.organs) < maxFlowers {
		p.store.ReproStore[i] -= pc.FlowerEnergyCost
		p.organs = append(p.organs, p.newFlower(ctx))
		if ctx.Trace.Enabled(p.id) {
			ctx.Trace.Event(p.id, ctx.Now, "flower spawned",
				"organs", len(p.organs), "repro_store", p.store.ReproStore[i])
		}
	}
}

// newFlower places a flower at a uniform random point of the canopy disc.
func (p *Plant) newFlower(ctx *UpdateContext) components.ReproductiveOrgan {
	r := p.store.Radius[p.Index] * math.Sqrt(ctx.Rng.Float64())
	theta := ctx.Rng.Float64() * 2 * math.Pi
	return components.ReproductiveOrgan{
		Type:    components.OrganFlower,
		OffsetX: r * math.Cos(theta),
		OffsetY: r * math.Sin(theta),
	}
}

// ageOrgans advances every attached organ through its lifecycle:
// flower ripens to fruit, fruit drops and attempts seed dispersal.
// The organ slice is compacted in place.
func (p *Plant) ageOrgans(ctx *UpdateContext, dt float64) {
	pc := config.Cfg().Plant

	kept := p.organs[:0]
	for idx := range p.organs {
		organ := p.organs[idx]
		organ.Age += dt

		switch organ.Type {
		case components.OrganFlower:
			if organ.Age >= pc.FlowerLifespanSeconds {
				organ.Type = components.OrganFruit
				organ.Age = 0
			}
			kept = append(kept, organ)
		case components.OrganFruit:
			if organ.Age >= pc.FruitLifespanSeconds {
				p.dropFruit(ctx, organ)
				continue // organ is gone whether dispersal succeeded or not
			}
			kept = append(kept, organ)
		}
	}
	p.organs = kept
}

// dropFruit attempts to disperse one seed from a fallen fruit. The seed
// starts at the canopy edge in the organ's direction and rolls downhill;
// a landing in water or inside another plant's core personal space aborts
// the attempt at no energy cost. A successful dispersal provisions the
// seed from the parent's reserves.
func (p *Plant) dropFruit(ctx *UpdateContext, organ components.ReproductiveOrgan) {
	cfg := config.Cfg()
	pc := cfg.Plant
	i := p.Index

	if p.store.Energy[i] <= pc.SeedProvisioningEnergy {
		return
	}

	// Drop point: the canopy rim in the organ's direction.
	ox, oy := organ.OffsetX, organ.OffsetY
	norm := math.Hypot(ox, oy)
	if norm == 0 {
		theta := ctx.Rng.Float64() * 2 * math.Pi
		ox, oy = math.Cos(theta), math.Sin(theta)
		norm = 1
	}
	radius := p.store.Radius[i]
	startX := p.x + ox/norm*radius
	startY := p.y + oy/norm*radius

	// Roll downhill; on flat ground pick a random direction.
	gx, gy := SlopeAt(ctx.Env, startX, startY)
	slope := math.Hypot(gx, gy)
	var dirX, dirY float64
	if slope > 0 {
		dirX, dirY = -gx/slope, -gy/slope
	} else {
		theta := ctx.Rng.Float64() * 2 * math.Pi
		dirX, dirY = math.Cos(theta), math.Sin(theta)
	}
	dist := pc.SeedRollBaseDistanceCM + slope*pc.SeedRollDistanceFactor

	landX := clampF(startX+dirX*dist, 0, cfg.World.WidthCM)
	landY := clampF(startY+dirY*dist, 0, cfg.World.HeightCM)

	if SoilTypeAt(ctx.Env.Elevation(landX, landY)) == components.SoilNone {
		return
	}
	if p.landingContested(ctx, landX, landY) {
		return
	}

	p.store.Energy[i] -= pc.SeedProvisioningEnergy
	seed := NewSeed(ctx.Store, ctx.Env, landX, landY, pc.SeedProvisioningEnergy)
	ctx.Hooks.AddNewborn(seed)

	if ctx.Trace.Enabled(p.id) {
		ctx.Trace.Event(p.id, ctx.Now, "seed dispersed",
			"seed_id", seed.ID(), "x", landX, "y", landY, "roll_distance", dist)
	}
}

// landingContested reports whether a landing point falls inside an
// established plant's core personal space.
func (p *Plant) landingContested(ctx *UpdateContext, x, y float64) bool {
	if ctx.Index == nil {
		return false
	}
	pc := config.Cfg().Plant

	// Search wide enough to see any core whose personal space could
	// reach the landing point.
	reach := pc.CrushResistanceRadiusCM * pc.CorePersonalSpaceFactor
	for _, o := range ctx.Index.QueryCircle(x, y, reach, nil) {
		other, ok := o.(*Plant)
		if !ok || other == p || !other.IsAlive() {
			continue
		}
		space := other.store.CoreRadius[other.Index] * pc.CorePersonalSpaceFactor
		if space <= 0 {
			continue
		}
		px, py := other.Position()
		dx, dy := px-x, py-y
		if dx*dx+dy*dy < space*space {
			return true
		}
	}
	return false
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
