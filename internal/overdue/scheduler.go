package overdue

import (
	"log"
	"time"
)

// DefaultInterval is the scan cadence used when none is configured.
const DefaultInterval = time.Minute

// Scheduler fires the scanner on a fixed interval. The first scan runs
// immediately on Start; later runs wait for the ticker, so scans never
// overlap within a process.
type Scheduler struct {
	scanner  *Scanner
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewScheduler builds a scheduler. A non-positive interval falls back to
// DefaultInterval.
func NewScheduler(scanner *Scanner, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		scanner:  scanner,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the scan loop in a background goroutine.
func (s *Scheduler) Start() {
	go s.loop()
}

// Stop halts the loop and waits for any in-flight scan to finish. It
// must be called at most once.
func (s *Scheduler) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

func (s *Scheduler) loop() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runOnce()
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *Scheduler) runOnce() {
	if n := s.scanner.RunScan(); n > 0 {
		log.Printf("overdue: scan created %d notifications", n)
	}
}
