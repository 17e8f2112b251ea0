package pipeline

import (
	"context"
	"sync"

	"golang.org/x/xerrors"
)

// fifo processes payloads sequentially, maintaining their input order.
type fifo struct {
	proc Processor
}

// FIFO returns a StageRunner that passes incoming payloads one at a time
// through proc and emits the outputs to the next stage. Input order is
// preserved, which keeps downstream consumers that depend on first-seen
// ordering deterministic.
func FIFO(proc Processor) StageRunner {
	return fifo{proc: proc}
}

// Run implements StageRunner.
func (f fifo) Run(ctx context.Context, params StageParams) {
	for {
		select {
		case <-ctx.Done():
			return
		case payloadIn, ok := <-params.Input():
			if !ok {
				return
			}
			payloadOut, err := f.proc.Process(ctx, payloadIn)
			if err != nil {
				wrappedErr := xerrors.Errorf("pipeline stage %d: %w", params.StageIndex(), err)
				maybeEmitError(wrappedErr, params.Error())
				return
			}
			// A nil output means the processor filtered the payload out.
			if payloadOut == nil {
				payloadIn.MarkAsProcessed()
				continue
			}
			select {
			case params.Output() <- payloadOut:
			case <-ctx.Done():
				return
			}
		}
	}
}

type fixedWorkerPool struct {
	fifos []StageRunner
}

// FixedWorkerPool returns a StageRunner that fans incoming payloads out to
// a pool of numWorkers concurrent processors. Output order is not
// guaranteed to match input order.
func FixedWorkerPool(proc Processor, numWorkers int) StageRunner {
	if numWorkers <= 0 {
		panic("FixedWorkerPool: numWorkers must be > 0")
	}
	fifos := make([]StageRunner, numWorkers)
	for i := 0; i < len(fifos); i++ {
		fifos[i] = FIFO(proc)
	}
	return &fixedWorkerPool{fifos: fifos}
}

// Run implements StageRunner.
func (p *fixedWorkerPool) Run(ctx context.Context, params StageParams) {
	var wg sync.WaitGroup
	wg.Add(len(p.fifos))
	for i := 0; i < len(p.fifos); i++ {
		go func(i int) {
			defer wg.Done()
			p.fifos[i].Run(ctx, params)
		}(i)
	}
	wg.Wait()
}
