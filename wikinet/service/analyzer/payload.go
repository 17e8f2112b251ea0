package analyzer

import (
	"Social_Graph/pipeline"
	"Social_Graph/records"
	"context"
	"sync"
)

var payloadPool = sync.Pool{
	New: func() interface{} { return new(recordPayload) },
}

// recordPayload carries one interaction record through the ingestion
// pipeline.
type recordPayload struct {
	Record records.Record
}

// Clone implements pipeline.Payload.
func (p *recordPayload) Clone() pipeline.Payload {
	newP := payloadPool.Get().(*recordPayload)
	newP.Record = p.Record
	return newP
}

// MarkAsProcessed implements pipeline.Payload.
func (p *recordPayload) MarkAsProcessed() {
	p.Record = records.Record{}
	payloadPool.Put(p)
}

// recordSource adapts a records.Iterator to the pipeline.Source contract.
type recordSource struct {
	it records.Iterator
}

func (s *recordSource) Next(_ context.Context) bool { return s.it.Next() }

func (s *recordSource) Error() error { return s.it.Error() }

func (s *recordSource) Payload() pipeline.Payload {
	p := payloadPool.Get().(*recordPayload)
	p.Record = s.it.Record()
	return p
}
