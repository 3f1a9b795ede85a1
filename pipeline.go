package smooth

import "fmt"

// Pipeline composes densification, smoothing and rescaling.
type Pipeline struct {
	// Smoother is the smoothing strategy. If nil, CornerCutting{} is used.
	Smoother Smoother
	// Metric is used for densification. If nil, Euclidean is used.
	Metric Metric
	// Densify enables [Densify] before smoothing.
	Densify bool
	// Rescale enables [Rescale] after smoothing.
	Rescale bool
}

// DefaultPipeline returns a pipeline that densifies with the euclidean
// metric, cuts corners, and rescales the result to the original length.
func DefaultPipeline() Pipeline {
	return Pipeline{
		Smoother: CornerCutting{},
		Metric:   Euclidean,
		Densify:  true,
		Rescale:  true,
	}
}

// Apply runs the pipeline on p. params are clamped before use. p is never
// modified.
func (pl Pipeline) Apply(p Polyline, params Params) (Polyline, error) {
	if err := p.validate(); err != nil {
		return Polyline{}, err
	}
	params = params.Clamp()

	in := p
	if pl.Densify {
		var err error
		in, err = Densify(p, pl.Metric)
		if err != nil {
			return Polyline{}, fmt.Errorf("densify: %w", err)
		}
	}

	sm := pl.Smoother
	if sm == nil {
		sm = CornerCutting{}
	}
	out, err := sm.Smooth(in, params)
	if err != nil {
		return Polyline{}, fmt.Errorf("smooth: %w", err)
	}

	if pl.Rescale {
		out, err = Rescale(p, out)
		if err != nil {
			return Polyline{}, fmt.Errorf("rescale: %w", err)
		}
	}
	return out, nil
}
