package qket

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
)

/*
ShotConfig describes a batch of shots. Prepare builds a fresh, already
evolved System for every shot; it must not share state between calls.
Positions selects what is measured, defaulting to every qubit.
*/
type ShotConfig struct {
	Shots     int
	Seed      uint64
	Positions []int
	Prepare   func() (*System, error)
}

/*
shotSource gives shot i its own deterministic stream, so a batch yields the
same histogram for a seed however its shots are spread across workers.
*/
func shotSource(seed uint64, shot int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, splitmix64(uint64(shot))))
}

// splitmix64 spreads consecutive shot numbers across the stream space.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

func (cfg ShotConfig) validate() error {
	if cfg.Shots < 1 {
		return fmt.Errorf("shots must be positive, got %d", cfg.Shots)
	}
	if cfg.Prepare == nil {
		return fmt.Errorf("shot config has no Prepare function")
	}
	return nil
}

// runShot prepares a fresh system and measures it with shot i's stream.
func (cfg ShotConfig) runShot(shot int) (Outcome, error) {
	sys, err := cfg.Prepare()
	if err != nil {
		return Outcome{}, fmt.Errorf("prepare shot %d: %w", shot, err)
	}

	positions := cfg.Positions
	if len(positions) == 0 {
		positions = sys.allPositions()
	}

	return sys.Measure(shotSource(cfg.Seed, shot), positions...)
}

/*
RunShots runs every shot of cfg as its own job on q and tallies the outcomes.
Results are collected in shot order. While the pool is under back pressure,
the oldest pending shot is collected before another is scheduled.
*/
func RunShots(ctx context.Context, q *Q, cfg ShotConfig) (*Histogram, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	batchID := uuid.NewString()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch %s: %w", batchID, err)
	}

	errnie.Info("RunShots - batch %s, %d shots, seed %d", batchID, cfg.Shots, cfg.Seed)

	var regulator Regulator = NewBackPressureRegulator(cap(q.jobs), q.config.TargetJobTime)

	ids := make([]string, cfg.Shots)
	results := make([]chan Result, cfg.Shots)
	hist := newHistogram()
	collected := 0

	tally := func(i int, r Result) error {
		q.space.Delete(ids[i])

		if r.Error != nil {
			return fmt.Errorf("batch %s shot %d: %w", batchID, i, r.Error)
		}

		out, ok := r.Value.(Outcome)
		if !ok {
			return fmt.Errorf("batch %s shot %d: unexpected result %T", batchID, i, r.Value)
		}
		hist.add(out)
		return nil
	}

	collect := func() error {
		i := collected
		collected++

		select {
		case <-ctx.Done():
			return fmt.Errorf("batch %s: %w", batchID, ctx.Err())
		case <-q.ctx.Done():
			// a result stored before the pool closed is still good
			select {
			case r := <-results[i]:
				return tally(i, r)
			default:
				return fmt.Errorf("batch %s shot %d: %w", batchID, i, ErrPoolClosed)
			}
		case r := <-results[i]:
			return tally(i, r)
		}
	}

	for i := 0; i < cfg.Shots; i++ {
		regulator.Observe(q.metrics)
		for regulator.Limit() && collected < i {
			if err := collect(); err != nil {
				return nil, err
			}
			regulator.Renormalize()
		}

		shot := i
		ids[i] = fmt.Sprintf("%s/%d", batchID, i)
		results[i] = q.Schedule(ids[i], func() (any, error) {
			return cfg.runShot(shot)
		})
	}

	for collected < cfg.Shots {
		if err := collect(); err != nil {
			return nil, err
		}
	}

	return hist, nil
}

// RunShotsSequential runs the same batch on the calling goroutine. It matches RunShots for the same seed.
func RunShotsSequential(cfg ShotConfig) (*Histogram, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	hist := newHistogram()
	for i := 0; i < cfg.Shots; i++ {
		out, err := cfg.runShot(i)
		if err != nil {
			return nil, fmt.Errorf("shot %d: %w", i, err)
		}
		hist.add(out)
	}
	return hist, nil
}

// Histogram counts observed bit-strings over a batch of shots.
type Histogram struct {
	Shots  int
	Counts map[string]int
}

func newHistogram() *Histogram {
	return &Histogram{Counts: make(map[string]int)}
}

func (h *Histogram) add(out Outcome) {
	h.Shots++
	h.Counts[out.Bits()]++
}

// Frequency is the fraction of shots that observed bits.
func (h *Histogram) Frequency(bits string) float64 {
	if h.Shots == 0 {
		return 0
	}
	return float64(h.Counts[bits]) / float64(h.Shots)
}

// Outcomes lists the observed bit-strings in ascending order.
func (h *Histogram) Outcomes() []string {
	out := make([]string, 0, len(h.Counts))
	for bits := range h.Counts {
		out = append(out, bits)
	}
	sort.Strings(out)
	return out
}

// Entropy is the Shannon entropy, in bits, of the observed frequencies.
func (h *Histogram) Entropy() float64 {
	p := make([]float64, 0, len(h.Counts))
	for _, bits := range h.Outcomes() {
		p = append(p, h.Frequency(bits))
	}
	return entropyBits(p)
}
