package engine

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/piwi3910/CorruCalc/internal/model"
)

// TuneBounds limits the flat width (mm) and fold angle (degrees) explored by TuneFit.
type TuneBounds struct {
	MinFlatWidth float64 `json:"min_flat_width"`
	MaxFlatWidth float64 `json:"max_flat_width"`
	MinFoldAngle float64 `json:"min_fold_angle"`
	MaxFoldAngle float64 `json:"max_fold_angle"`
}

// DefaultTuneBounds matches the slider ranges of the desktop app.
func DefaultTuneBounds() TuneBounds {
	return TuneBounds{
		MinFlatWidth: 10,
		MaxFlatWidth: 200,
		MinFoldAngle: 15,
		MaxFoldAngle: 85,
	}
}

// TuneConfig holds parameters for the genetic search.
type TuneConfig struct {
	PopulationSize int     `json:"population_size"`
	Generations    int     `json:"generations"`
	MutationRate   float64 `json:"mutation_rate"`
	TournamentSize int     `json:"tournament_size"`
	EliteCount     int     `json:"elite_count"`
	Seed           int64   `json:"seed"`
}

// DefaultTuneConfig returns sensible default parameters.
func DefaultTuneConfig() TuneConfig {
	return TuneConfig{
		PopulationSize: 40,
		Generations:    60,
		MutationRate:   0.2,
		TournamentSize: 3,
		EliteCount:     2,
		Seed:           42,
	}
}

// TuneResult is the best layout found and the one it started from.
type TuneResult struct {
	Base     model.Estimate `json:"base"`
	Best     model.Estimate `json:"best"`
	Improved bool           `json:"improved"` // Best has strictly less leftover than Base
}

// candidate is one point of the search space with its cached score.
type candidate struct {
	flatWidth float64
	foldAngle float64
	score     float64 // Leftover length, +Inf for failed layouts. Lower is better.
	cost      float64
}

type fitTuner struct {
	base   model.Params
	bounds TuneBounds
	config TuneConfig
	rng    *rand.Rand
}

// TuneFit searches flat width and fold angle within bounds for the layout
// that leaves the least material on the sheet without overrunning it. Peak
// height, sheet length and cost per bend are kept from base. The base layout
// seeds the population, so Best is never worse than Base.
func TuneFit(base model.Params, bounds TuneBounds, cfg TuneConfig) TuneResult {
	if cfg.PopulationSize < 1 {
		cfg.PopulationSize = 1
	}
	if cfg.TournamentSize < 1 {
		cfg.TournamentSize = 1
	}
	// At least one elite keeps the best layout found so far
	if cfg.EliteCount < 1 {
		cfg.EliteCount = 1
	}
	t := &fitTuner{
		base:   base,
		bounds: bounds,
		config: cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}
	best := t.search()

	p := base
	p.FlatWidth = best.flatWidth
	p.FoldAngle = best.foldAngle

	baseEst := model.Analyze(base)
	bestEst := model.Analyze(p)
	return TuneResult{
		Base:     baseEst,
		Best:     bestEst,
		Improved: !bestEst.DesignFailed && (baseEst.DesignFailed || bestEst.Profile.LeftoverLength < baseEst.Profile.LeftoverLength),
	}
}

func (t *fitTuner) search() candidate {
	population := t.initPopulation()

	for gen := 0; gen < t.config.Generations; gen++ {
		t.rank(population)

		next := make([]candidate, 0, t.config.PopulationSize)

		// Elitism: carry over the best individuals unchanged
		eliteCount := t.config.EliteCount
		if eliteCount > len(population) {
			eliteCount = len(population)
		}
		next = append(next, population[:eliteCount]...)

		for len(next) < t.config.PopulationSize {
			child := t.crossover(t.tournamentSelect(population), t.tournamentSelect(population))
			t.mutate(&child)
			t.evaluate(&child)
			next = append(next, child)
		}

		population = next
	}

	t.rank(population)
	return population[0]
}

func (t *fitTuner) initPopulation() []candidate {
	population := make([]candidate, t.config.PopulationSize)

	// Seed with the starting layout
	population[0] = candidate{flatWidth: t.base.FlatWidth, foldAngle: t.base.FoldAngle}
	for i := 1; i < len(population); i++ {
		population[i] = candidate{
			flatWidth: t.bounds.MinFlatWidth + t.rng.Float64()*(t.bounds.MaxFlatWidth-t.bounds.MinFlatWidth),
			foldAngle: t.bounds.MinFoldAngle + t.rng.Float64()*(t.bounds.MaxFoldAngle-t.bounds.MinFoldAngle),
		}
		t.clamp(&population[i])
	}
	for i := range population {
		t.evaluate(&population[i])
	}
	return population
}

// evaluate scores a candidate by the leftover of its layout.
func (t *fitTuner) evaluate(c *candidate) {
	p := t.base
	p.FlatWidth = c.flatWidth
	p.FoldAngle = c.foldAngle
	est := model.Analyze(p)

	c.cost = est.Cost.TotalCost
	c.score = est.Profile.LeftoverLength
	if est.DesignFailed || math.IsNaN(c.score) {
		c.score = math.Inf(1)
	}
}

func (t *fitTuner) rank(population []candidate) {
	sort.SliceStable(population, func(i, j int) bool {
		return betterFit(population[i].score, population[i].cost, population[j].score, population[j].cost)
	})
}

// tournamentSelect picks the best individual from a random tournament.
func (t *fitTuner) tournamentSelect(population []candidate) candidate {
	best := population[t.rng.Intn(len(population))]
	for i := 1; i < t.config.TournamentSize; i++ {
		c := population[t.rng.Intn(len(population))]
		if betterFit(c.score, c.cost, best.score, best.cost) {
			best = c
		}
	}
	return best
}

// crossover blends both genes of the parents at a random ratio.
func (t *fitTuner) crossover(a, b candidate) candidate {
	w := t.rng.Float64()
	child := candidate{
		flatWidth: w*a.flatWidth + (1-w)*b.flatWidth,
		foldAngle: w*a.foldAngle + (1-w)*b.foldAngle,
	}
	t.clamp(&child)
	return child
}

// mutate nudges each gene by a gaussian step of a tenth of its range.
func (t *fitTuner) mutate(c *candidate) {
	if t.rng.Float64() < t.config.MutationRate {
		c.flatWidth += t.rng.NormFloat64() * (t.bounds.MaxFlatWidth - t.bounds.MinFlatWidth) / 10
	}
	if t.rng.Float64() < t.config.MutationRate {
		c.foldAngle += t.rng.NormFloat64() * (t.bounds.MaxFoldAngle - t.bounds.MinFoldAngle) / 10
	}
	t.clamp(c)
}

// clamp keeps a candidate inside the bounds at 0.1 mm / 0.1° resolution.
func (t *fitTuner) clamp(c *candidate) {
	c.flatWidth = scalar.Round(math.Min(math.Max(c.flatWidth, t.bounds.MinFlatWidth), t.bounds.MaxFlatWidth), 1)
	c.foldAngle = scalar.Round(math.Min(math.Max(c.foldAngle, t.bounds.MinFoldAngle), t.bounds.MaxFoldAngle), 1)
}
