package services

import (
	"context"
	"log"
	"time"
)

// PainObservation is one queued enrichment job.
type PainObservation struct {
	UserID      uint
	SymptomType string
	Intensity   int
	Date        time.Time
}

// PatternWorker applies pain observations in the background so a symptom log
// never blocks on, or fails because of, model enrichment. Failed or dropped
// observations are logged and forgotten.
type PatternWorker struct {
	patterns *PainPatternService
	queue    chan PainObservation
}

func NewPatternWorker(patterns *PainPatternService, queueSize int) *PatternWorker {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &PatternWorker{
		patterns: patterns,
		queue:    make(chan PainObservation, queueSize),
	}
}

func (worker *PatternWorker) Start(ctx context.Context) {
	go worker.run(ctx)
}

// Enqueue never blocks; when the queue is full the observation is dropped.
func (worker *PatternWorker) Enqueue(observation PainObservation) {
	select {
	case worker.queue <- observation:
	default:
		log.Printf("pain pattern queue full, dropping observation for user %d", observation.UserID)
	}
}

func (worker *PatternWorker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case observation := <-worker.queue:
			if err := worker.patterns.ApplyObservation(
				observation.UserID,
				observation.SymptomType,
				observation.Intensity,
				observation.Date,
			); err != nil {
				log.Printf("pain pattern update failed for user %d: %v", observation.UserID, err)
			}
		}
	}
}
