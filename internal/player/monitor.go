// internal/player/monitor.go
package player

import "time"

// monitor publishes status for s until it is unloaded. Position updates
// are dropped when the consumer lags; the finish event is not.
func (p *Player) monitor(s *stream) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.unloaded:
			return
		case <-s.ended:
			st := s.snapshot()
			st.Playing = false
			st.JustFinished = true
			st.Position = st.Duration
			select {
			case p.status <- st:
			case <-s.unloaded:
				return
			}
		case <-ticker.C:
			if !s.playing() {
				continue
			}
			select {
			case p.status <- s.snapshot():
			default:
			}
		}
	}
}
