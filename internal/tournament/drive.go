package tournament

import "context"

// Drive runs the clock without a display. It resumes s, starts the ticker and
// applies ticks until the schedule completes or ctx is cancelled. Every event
// produced along the way is passed to handle. The ticker is stopped on return.
func Drive(ctx context.Context, s *State, ticker *Ticker, handle func(Event)) error {
	if !s.HasSchedule() {
		return nil
	}

	s.Resume()
	ticker.Start(ctx)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Pause()
			return ctx.Err()
		case tick := <-ticker.C():
			if !ticker.Current(tick) {
				continue
			}
			for _, event := range s.Tick() {
				handle(event)
			}
			if s.Paused() {
				return nil
			}
		}
	}
}
