package grader

// orchestrator.go sequences discovered exercises through Exercise and
// folds the outcomes into a GradeResult.

import (
	"context"
	"sync"

	"github.com/perfgo/lingsgrade/model"
	"golang.org/x/sync/errgroup"
)

// GradeAll grades every exercise found below root. Graded failures are
// recorded and grading continues; the first hard error aborts the run and
// no result is returned.
func (g *Grader) GradeAll(ctx context.Context, root string) (*model.GradeResult, error) {
	shape := g.cfg.Policy.Shape(root)
	files := g.cfg.Policy.Find(root, shape)

	g.logger.Debug().
		Str("root", root).
		Str("shape", shape.String()).
		Int("count", len(files)).
		Msg("Discovered exercises")

	g.observer.Discovered(len(files))

	if g.cfg.Jobs > 1 && len(files) > 1 {
		return g.gradeConcurrently(ctx, files, shape)
	}

	result := model.NewGradeResult()
	for i, file := range files {
		outcome, err := g.Exercise(ctx, file, shape, g.observer)
		if err != nil {
			return nil, err
		}
		result.Add(outcome)
		g.observer.Progress(i+1, len(files))
	}
	return result, nil
}

// GradeSingle grades exactly one exercise file.
func (g *Grader) GradeSingle(ctx context.Context, file string) (*model.GradeResult, error) {
	outcome, err := g.Exercise(ctx, file, g.cfg.Policy.Shape(file), g.observer)
	if err != nil {
		return nil, err
	}

	result := model.NewGradeResult()
	result.Add(outcome)
	return result, nil
}

// gradeConcurrently grades up to Jobs exercises at once. Outcomes are kept by
// discovery index and folded in that order once all exercises are done.
func (g *Grader) gradeConcurrently(ctx context.Context, files []string, shape model.ProjectShape) (*model.GradeResult, error) {
	outcomes := make([]model.Outcome, len(files))

	var mu sync.Mutex
	done := 0

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Jobs)
	for i, file := range files {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			events := &eventLog{}
			outcome, err := g.Exercise(egCtx, file, shape, events)
			if err != nil && egCtx.Err() != nil {
				// another exercise already aborted the run
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			events.replay(g.observer)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			done++
			g.observer.Progress(done, len(files))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result := model.NewGradeResult()
	for _, outcome := range outcomes {
		result.Add(outcome)
	}
	return result, nil
}
