package pipeline

import (
	"context"
	"sort"
	"testing"

	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(PipelineTestSuite))

func Test(t *testing.T) { gc.TestingT(t) }

type PipelineTestSuite struct{}

type intPayload struct {
	value     int
	processed bool
}

func (p *intPayload) Clone() Payload   { return &intPayload{value: p.value} }
func (p *intPayload) MarkAsProcessed() { p.processed = true }

type intSource struct {
	values []int
	pos    int
	err    error
}

func (s *intSource) Next(context.Context) bool {
	if s.pos >= len(s.values) {
		return false
	}
	s.pos++
	return true
}

func (s *intSource) Payload() Payload { return &intPayload{value: s.values[s.pos-1]} }
func (s *intSource) Error() error     { return s.err }

type collectSink struct {
	values []int
}

func (s *collectSink) Consume(_ context.Context, p Payload) error {
	s.values = append(s.values, p.(*intPayload).value)
	return nil
}

func double(_ context.Context, p Payload) (Payload, error) {
	p.(*intPayload).value *= 2
	return p, nil
}

func (s *PipelineTestSuite) TestFIFOPreservesOrder(c *gc.C) {
	src := &intSource{values: []int{1, 2, 3, 4}}
	sink := new(collectSink)

	err := New(FIFO(ProcessorFunc(double))).Process(context.Background(), src, sink)
	c.Assert(err, gc.IsNil)
	c.Assert(sink.values, gc.DeepEquals, []int{2, 4, 6, 8})
}

func (s *PipelineTestSuite) TestMultipleStages(c *gc.C) {
	src := &intSource{values: []int{1, 2}}
	sink := new(collectSink)

	err := New(
		FIFO(ProcessorFunc(double)),
		FIFO(ProcessorFunc(double)),
	).Process(context.Background(), src, sink)
	c.Assert(err, gc.IsNil)
	c.Assert(sink.values, gc.DeepEquals, []int{4, 8})
}

func (s *PipelineTestSuite) TestWorkerPoolDeliversAllPayloads(c *gc.C) {
	values := make([]int, 50)
	for i := range values {
		values[i] = i
	}
	src := &intSource{values: values}
	sink := new(collectSink)

	err := New(FixedWorkerPool(ProcessorFunc(double), 4)).Process(context.Background(), src, sink)
	c.Assert(err, gc.IsNil)

	sort.Ints(sink.values)
	c.Assert(sink.values, gc.HasLen, len(values))
	for i, v := range sink.values {
		c.Assert(v, gc.Equals, i*2)
	}
}

func (s *PipelineTestSuite) TestProcessorCanFilterPayloads(c *gc.C) {
	dropOdd := func(_ context.Context, p Payload) (Payload, error) {
		if p.(*intPayload).value%2 == 1 {
			return nil, nil
		}
		return p, nil
	}
	src := &intSource{values: []int{1, 2, 3, 4}}
	sink := new(collectSink)

	err := New(FIFO(ProcessorFunc(dropOdd))).Process(context.Background(), src, sink)
	c.Assert(err, gc.IsNil)
	c.Assert(sink.values, gc.DeepEquals, []int{2, 4})
}

func (s *PipelineTestSuite) TestProcessorErrorAbortsPipeline(c *gc.C) {
	boom := xerrors.New("boom")
	fail := func(_ context.Context, p Payload) (Payload, error) {
		if p.(*intPayload).value == 3 {
			return nil, boom
		}
		return p, nil
	}
	src := &intSource{values: []int{1, 2, 3, 4}}
	sink := new(collectSink)

	err := New(FIFO(ProcessorFunc(fail))).Process(context.Background(), src, sink)
	c.Assert(err, gc.NotNil)
	c.Assert(xerrors.Is(err, boom), gc.Equals, true, gc.Commentf("the original stage error must remain reachable via unwrapping"))
}

func (s *PipelineTestSuite) TestSourceErrorIsReported(c *gc.C) {
	src := &intSource{values: []int{1}, err: xerrors.New("truncated input")}
	sink := new(collectSink)

	err := New(FIFO(ProcessorFunc(double))).Process(context.Background(), src, sink)
	c.Assert(err, gc.NotNil)
}
