package playback

import "time"

const eventBufferSize = 16

// Subscription provides event channels for a subscriber. A Session never
// sends on ChapterChanged and a ChapterPlayer never sends on VerseChanged.
type Subscription struct {
	StateChanged    <-chan StateChange
	VerseChanged    <-chan VerseChange
	ChapterChanged  <-chan ChapterChange
	PositionChanged <-chan PositionChange
	ModeChanged     <-chan ModeChange
	ReciterChanged  <-chan ReciterChange
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	// Internal write channels
	stateCh    chan StateChange
	verseCh    chan VerseChange
	chapterCh  chan ChapterChange
	positionCh chan PositionChange
	modeCh     chan ModeChange
	reciterCh  chan ReciterChange
	errorCh    chan ErrorEvent
	doneCh     chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:    make(chan StateChange, eventBufferSize),
		verseCh:    make(chan VerseChange, eventBufferSize),
		chapterCh:  make(chan ChapterChange, eventBufferSize),
		positionCh: make(chan PositionChange, eventBufferSize),
		modeCh:     make(chan ModeChange, eventBufferSize),
		reciterCh:  make(chan ReciterChange, eventBufferSize),
		errorCh:    make(chan ErrorEvent, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.VerseChanged = s.verseCh
	s.ChapterChanged = s.chapterCh
	s.PositionChanged = s.positionCh
	s.ModeChanged = s.modeCh
	s.ReciterChanged = s.reciterCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// All sends below are non-blocking and drop the event if the buffer is full.

func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
	}
}

func (s *Subscription) sendVerse(e VerseChange) {
	select {
	case s.verseCh <- e:
	default:
	}
}

func (s *Subscription) sendChapter(e ChapterChange) {
	select {
	case s.chapterCh <- e:
	default:
	}
}

func (s *Subscription) sendPosition(pos, dur time.Duration) {
	select {
	case s.positionCh <- PositionChange{Position: pos, Duration: dur}:
	default:
	}
}

func (s *Subscription) sendMode(e ModeChange) {
	select {
	case s.modeCh <- e:
	default:
	}
}

func (s *Subscription) sendReciter(e ReciterChange) {
	select {
	case s.reciterCh <- e:
	default:
	}
}

func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
