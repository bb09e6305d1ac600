// Package replay turns an unordered batch of price observations into a
// deterministic stream and drives it through a median estimator and a
// change-gated emitter.
package replay

import (
	"cmp"
	"slices"

	"medianflow/emit"
	"medianflow/median"
)

// Observation is one timestamped price reading. Origin and Seq exist solely
// to make replay order total when timestamps collide: Origin identifies the
// source (the input file) and Seq the position within it.
type Observation struct {
	ReceiveTS uint64
	Price     float64
	Origin    string
	Seq       uint64
}

// Sequence stable-sorts observations into replay order: ascending ReceiveTS,
// ties broken by Origin then Seq. The order is fully deterministic, so the
// same batch always produces the same median trajectory.
func Sequence(observations []Observation) {
	slices.SortStableFunc(observations, func(a, b Observation) int {
		if c := cmp.Compare(a.ReceiveTS, b.ReceiveTS); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Origin, b.Origin); c != 0 {
			return c
		}
		return cmp.Compare(a.Seq, b.Seq)
	})
}

// Pipeline feeds observations through an estimator and gates the resulting
// medians through an emitter. Each Pipeline owns its estimator and emitter;
// running several pipelines side by side needs one Pipeline per stream.
type Pipeline struct {
	estimator median.Estimator
	emitter   *emit.Emitter
}

// NewPipeline creates a Pipeline around the given estimator strategy.
func NewPipeline(estimator median.Estimator) *Pipeline {
	return &Pipeline{
		estimator: estimator,
		emitter:   emit.NewEmitter(),
	}
}

// Run sequences the observations, adds each price to the estimator in replay
// order, queries the median after every add, and collects the emissions the
// gate lets through. Steps where the estimator reports no median are skipped.
// The returned records are non-decreasing in timestamp with no two
// consecutive equal medians. Processing is strictly sequential.
func (p *Pipeline) Run(observations []Observation) []emit.Record {
	Sequence(observations)

	var records []emit.Record
	for _, o := range observations {
		p.estimator.Add(o.Price)
		m, ok := p.estimator.Median()
		if !ok {
			continue
		}
		if rec, ok := p.emitter.Offer(o.ReceiveTS, m); ok {
			records = append(records, rec)
		}
	}
	return records
}
