package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/quranpulse/quranpulse/internal/errmsg"
	"github.com/quranpulse/quranpulse/internal/keymap"
	"github.com/quranpulse/quranpulse/internal/mpris"
	"github.com/quranpulse/quranpulse/internal/notify"
	"github.com/quranpulse/quranpulse/internal/playback"
	"github.com/quranpulse/quranpulse/internal/player"
	"github.com/quranpulse/quranpulse/internal/quran"
	"github.com/quranpulse/quranpulse/internal/qurancom"
	"github.com/quranpulse/quranpulse/internal/reciter"
	"github.com/quranpulse/quranpulse/internal/state"
	"github.com/quranpulse/quranpulse/internal/stderr"
	"github.com/quranpulse/quranpulse/internal/tafseer"
	"github.com/quranpulse/quranpulse/internal/ui/playerbar"
	"github.com/quranpulse/quranpulse/internal/ui/render"
	"github.com/quranpulse/quranpulse/internal/ui/styles"
)

const (
	seekStep        = 5 * time.Second
	maxPauseSeconds = 30
)

type tuiMode int

const (
	modeVerse tuiMode = iota
	modeChapter
)

type (
	eventMsg   struct{ ev any }
	subDoneMsg struct{}
	versesMsg  struct {
		chapter int
		verses  []qurancom.Verse
		err     error
	}
	tafseerMsg tafseer.Result
	cmdErrMsg  struct {
		op  errmsg.Op
		err error
	}
	infoMsg string
)

// controls is what the key handlers need from either player kind.
type controls interface {
	Snapshot() playback.Snapshot
	TogglePlayPause(ctx context.Context) error
	SeekTo(ctx context.Context, position time.Duration) error
	SetReciter(ctx context.Context, id string) error
}

var (
	_ controls = (*playback.Session)(nil)
	_ controls = (*playback.ChapterPlayer)(nil)
)

type model struct {
	ctx  context.Context
	a    *app
	mode tuiMode

	chapters []quran.Chapter
	index    *quran.Index
	reciters *reciter.Registry
	keys     *keymap.Resolver
	player   controls
	session  *playback.Session       // modeVerse
	chapterP *playback.ChapterPlayer // modeChapter
	sub      *playback.Subscription
	tafseer  *tafseer.Loader
	pause    *atomic.Int64 // memorization pause, seconds
	settings state.Settings

	start       quran.Position
	verses      map[int][]qurancom.Verse
	loading     map[int]bool
	tafseerRes  *tafseer.Result
	showTafseer bool
	rangeStart  int
	message     string
	barMode     playerbar.DisplayMode
	width       int
	height      int
}

// engine holds what both TUI modes share.
type engine struct {
	chapters  []quran.Chapter
	index     *quran.Index
	transport *player.Player
	alerter   *notify.Alerter
	settings  state.Settings
	logger    *log.Logger
	media     *mpris.Adapter
}

func newEngine(ctx context.Context, a *app) (*engine, error) {
	chapters, idx, err := a.chapters(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := a.state.Settings(ctx)
	if err != nil {
		a.logger.Warn("settings", "err", err)
	}
	styles.SetDark(settings.IsDarkMode)

	if err := stderr.Start(); err != nil {
		a.logger.Warn("stderr capture unavailable", "err", err)
	}
	stderr.Forward(a.logger)

	audio := a.cfg.GetAudioConfig()
	transport := player.New(player.Options{
		HTTPClient:     &http.Client{Timeout: audio.FetchTimeout()},
		StatusInterval: audio.StatusInterval(),
		UserAgent:      "quranpulse/" + Version,
		Logger:         a.logger,
	})

	notifier, err := notify.New()
	if err != nil {
		a.logger.Warn("notifications unavailable", "err", err)
	}

	return &engine{
		chapters:  chapters,
		index:     idx,
		transport: transport,
		alerter:   notify.NewAlerter(notifier, a.logger),
		settings:  settings,
		logger:    a.logger,
	}, nil
}

// exposeMediaKeys publishes c over MPRIS. Failure only disables media keys.
func (e *engine) exposeMediaKeys(ctx context.Context, c mpris.Controls) {
	media, err := mpris.New(ctx, mpris.Options{Controls: c, Index: e.index, Logger: e.logger})
	if err != nil {
		e.logger.Warn("media keys unavailable", "err", err)
		return
	}
	e.media = media
}

func (e *engine) Close() {
	if e.media != nil {
		_ = e.media.Close()
	}
	_ = e.transport.Close()
	stderr.Stop()
}

func runVerseTUI(ctx context.Context, surah, ayah int) error {
	return withApp(ctx, func(a *app) error {
		e, err := newEngine(ctx, a)
		if err != nil {
			return err
		}
		defer e.Close()

		start, err := e.index.Position(surah, ayah)
		if err != nil {
			return fmt.Errorf("%d:%d: %w", surah, ayah, err)
		}
		reg, err := a.cfg.AyahRegistry()
		if err != nil {
			return err
		}

		pause := &atomic.Int64{}
		pause.Store(int64(e.settings.MemorizationPause))
		sess := playback.NewSession(playback.Options{
			Transport:         e.transport,
			Index:             e.index,
			Reciters:          reg,
			Resolver:          a.cfg.AyahResolver(),
			Store:             a.state.AyahReciter(),
			Alerter:           e.alerter,
			MemorizationPause: func() time.Duration { return time.Duration(pause.Load()) * time.Second },
			Logger:            a.logger,
		})
		defer sess.Close()

		sess.RestoreReciter(ctx)
		if reciterFlag != "" {
			if err := sess.SetReciter(ctx, reciterFlag); err != nil {
				return errors.New(errmsg.Format(errmsg.OpReciterSave, err))
			}
		}

		e.exposeMediaKeys(ctx, mpris.SessionControls{Session: sess})

		m := newModel(ctx, a, e, modeVerse, reg)
		m.session, m.player, m.sub = sess, sess, sess.Subscribe()
		m.start = start
		m.pause = pause
		m.tafseer = tafseer.NewLoader(a.api, a.cfg.GetAPIConfig().TafsirID)
		return runProgram(ctx, m, sess.Run)
	})
}

func runChapterTUI(ctx context.Context, surah int) error {
	return withApp(ctx, func(a *app) error {
		e, err := newEngine(ctx, a)
		if err != nil {
			return err
		}
		defer e.Close()

		if _, err := e.index.Chapter(surah); err != nil {
			return fmt.Errorf("chapter %d: %w", surah, err)
		}
		reg, resolver, err := a.cfg.ChapterReciters()
		if err != nil {
			return err
		}

		cp := playback.NewChapterPlayer(playback.ChapterOptions{
			Transport: e.transport,
			Index:     e.index,
			Reciters:  reg,
			Resolver:  resolver,
			Store:     a.state.ChapterReciter(),
			Alerter:   e.alerter,
			Logger:    a.logger,
		})
		defer cp.Close()

		cp.RestoreReciter(ctx)
		if reciterFlag != "" {
			if err := cp.SetReciter(ctx, reciterFlag); err != nil {
				return errors.New(errmsg.Format(errmsg.OpReciterSave, err))
			}
		}

		e.exposeMediaKeys(ctx, cp)

		m := newModel(ctx, a, e, modeChapter, reg)
		m.chapterP, m.player, m.sub = cp, cp, cp.Subscribe()
		m.start = quran.Position{Surah: surah}
		return runProgram(ctx, m, cp.Run)
	})
}

func runProgram(ctx context.Context, m model, pump func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := pump(ctx); err != nil && !errors.Is(err, context.Canceled) {
			m.a.logger.Warn("status pump stopped", "err", err)
		}
	}()

	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil &&
		!errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func newModel(ctx context.Context, a *app, e *engine, mode tuiMode, reg *reciter.Registry) model {
	m := model{
		ctx:      ctx,
		a:        a,
		mode:     mode,
		chapters: e.chapters,
		index:    e.index,
		reciters: reg,
		settings: e.settings,
		pause:    &atomic.Int64{},
		verses:   make(map[int][]qurancom.Verse),
		loading:  make(map[int]bool),
	}
	m.keys = keymap.NewResolver(keymap.ForMode(m.keyContext()))
	return m
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitEvent(m.sub)}
	if m.mode == modeVerse {
		m.loading[m.start.Surah] = true
		cmds = append(cmds, m.loadVerses(m.start.Surah))
	}
	if m.settings.AutoPlayOnStart {
		cmds = append(cmds, m.playStart())
	}
	return tea.Batch(cmds...)
}

func waitEvent(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-sub.StateChanged:
			return eventMsg{ev}
		case ev := <-sub.VerseChanged:
			return eventMsg{ev}
		case ev := <-sub.ChapterChanged:
			return eventMsg{ev}
		case ev := <-sub.PositionChanged:
			return eventMsg{ev}
		case ev := <-sub.ModeChanged:
			return eventMsg{ev}
		case ev := <-sub.ReciterChanged:
			return eventMsg{ev}
		case ev := <-sub.Error:
			return eventMsg{ev}
		case <-sub.Done:
			return subDoneMsg{}
		}
	}
}

// run executes fn off the UI goroutine; loads can take a while.
func (m model) run(op errmsg.Op, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		if err := fn(ctx); err != nil {
			return cmdErrMsg{op: op, err: err}
		}
		return nil
	}
}

func (m model) playStart() tea.Cmd {
	if m.mode == modeChapter {
		return m.run(errmsg.OpPlayChapter, func(ctx context.Context) error {
			return m.chapterP.PlayChapter(ctx, m.start.Surah)
		})
	}
	return m.run(errmsg.OpPlayVerse, func(ctx context.Context) error {
		return m.session.PlayAyah(ctx, m.start)
	})
}

func (m model) loadVerses(chapter int) tea.Cmd {
	ctx, cat := m.ctx, m.a.catalog
	return func() tea.Msg {
		verses, err := cat.Verses(ctx, chapter)
		return versesMsg{chapter: chapter, verses: verses, err: err}
	}
}

func (m model) loadTafseer(pos quran.Position) tea.Cmd {
	ctx, loader := m.ctx, m.tafseer
	return func() tea.Msg {
		return tafseerMsg(loader.Load(ctx, pos))
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case eventMsg:
		return m, tea.Batch(m.handleEvent(msg.ev), waitEvent(m.sub))

	case subDoneMsg:
		return m, tea.Quit

	case versesMsg:
		delete(m.loading, msg.chapter)
		if msg.err != nil {
			m.message = errmsg.Format(errmsg.OpVersesLoad, msg.err)
			return m, nil
		}
		m.verses[msg.chapter] = msg.verses
		return m, nil

	case tafseerMsg:
		res := tafseer.Result(msg)
		if errors.Is(res.Err, tafseer.ErrSuperseded) {
			return m, nil
		}
		if res.Err != nil {
			m.message = errmsg.Format(errmsg.OpTafseerLoad, res.Err)
		}
		m.tafseerRes = &res
		return m, nil

	case cmdErrMsg:
		m.message = errmsg.Format(msg.op, msg.err)
		return m, nil

	case infoMsg:
		m.message = string(msg)
		return m, nil
	}
	return m, nil
}

func (m model) handleEvent(ev any) tea.Cmd {
	switch e := ev.(type) {
	case playback.VerseChange:
		if e.Current == nil {
			return nil
		}
		var cmds []tea.Cmd
		surah := e.Current.Surah
		if _, ok := m.verses[surah]; !ok && !m.loading[surah] {
			m.loading[surah] = true
			cmds = append(cmds, m.loadVerses(surah))
		}
		if m.showTafseer {
			cmds = append(cmds, m.loadTafseer(*e.Current))
		}
		return tea.Batch(cmds...)
	case playback.ErrorEvent:
		m.a.logger.Debug("playback error shown", "op", e.Operation, "url", e.URL)
	}
	return nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.player.Snapshot()

	action := m.keys.Resolve(msg.String())
	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit

	case keymap.ActionPlayPause:
		if snap.Loading {
			return m, nil
		}
		if !snap.State.IsActive() && !snap.HasVerse() && snap.Chapter == 0 {
			return m, m.playStart()
		}
		return m, m.run(errmsg.OpToggle, m.player.TogglePlayPause)

	case keymap.ActionSeekBack:
		return m, m.seek(snap, -seekStep)
	case keymap.ActionSeekForward:
		return m, m.seek(snap, seekStep)

	case keymap.ActionCycleReciter:
		next := m.reciters.Cycle(snap.Reciter.ID)
		m.message = "Reciter: " + next.Name
		return m, m.run(errmsg.OpReciterSave, func(ctx context.Context) error {
			return m.player.SetReciter(ctx, next.ID)
		})

	case keymap.ActionTogglePlayerDisplay:
		if m.barMode == playerbar.ModeCompact {
			m.barMode = playerbar.ModeExpanded
		} else {
			m.barMode = playerbar.ModeCompact
		}
		return m, nil

	case keymap.ActionToggleTheme:
		m.settings.IsDarkMode = !m.settings.IsDarkMode
		styles.SetDark(m.settings.IsDarkMode)
		m.a.state.SaveSettingsDebounced(m.settings)
		return m, nil
	}

	if m.mode == modeChapter {
		return m.handleChapterKey(action)
	}
	return m.handleVerseKey(action, snap)
}

func (m model) seek(snap playback.Snapshot, delta time.Duration) tea.Cmd {
	if !snap.State.IsActive() {
		return nil
	}
	target := max(snap.Position+delta, 0)
	return m.run(errmsg.OpSeek, func(ctx context.Context) error {
		return m.player.SeekTo(ctx, target)
	})
}

func (m model) handleChapterKey(action keymap.Action) (tea.Model, tea.Cmd) {
	switch action {
	case keymap.ActionNext:
		if !m.chapterP.HasNext() {
			return m, nil
		}
		return m, m.run(errmsg.OpPlayChapter, m.chapterP.Next)
	case keymap.ActionPrev:
		if !m.chapterP.HasPrevious() {
			return m, nil
		}
		return m, m.run(errmsg.OpPlayChapter, m.chapterP.Previous)
	}
	return m, nil
}

func (m model) handleVerseKey(action keymap.Action, snap playback.Snapshot) (tea.Model, tea.Cmd) {
	switch action {
	case keymap.ActionNext:
		if !snap.HasVerse() {
			return m, m.playStart()
		}
		return m, m.run(errmsg.OpPlayVerse, m.session.NextAyah)
	case keymap.ActionPrev:
		if !snap.HasVerse() {
			return m, m.playStart()
		}
		return m, m.run(errmsg.OpPlayVerse, m.session.PreviousAyah)

	case keymap.ActionCycleRepeat:
		mode := m.session.CycleRepeatMode()
		m.message = "Repeat: " + mode.String()
		if mode == playback.RepeatRange && !snap.Range.Valid() {
			m.message += " (set the range with [ and ])"
		}
		return m, nil

	case keymap.ActionRangeStart:
		if snap.HasVerse() {
			m.rangeStart = snap.Verse.Ayah
			m.message = fmt.Sprintf("Range starts at %s", snap.Verse.Key())
		}
		return m, nil
	case keymap.ActionRangeEnd:
		if !snap.HasVerse() {
			return m, nil
		}
		start := m.rangeStart
		if start == 0 {
			start = 1
		}
		if err := m.session.SetRepeatRange(start, snap.Verse.Ayah); err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.session.SetRepeatMode(playback.RepeatRange)
		m.message = fmt.Sprintf("Repeating %d:%d-%d", snap.Verse.Surah, start, snap.Verse.Ayah)
		return m, nil

	case keymap.ActionMemorize:
		if m.session.ToggleMemorizationMode() {
			m.message = fmt.Sprintf("Memorization on, %ds pause", m.pause.Load())
		} else {
			m.message = "Memorization off"
		}
		return m, nil

	case keymap.ActionPauseLonger:
		return m, m.adjustPause(1)
	case keymap.ActionPauseShorter:
		return m, m.adjustPause(-1)

	case keymap.ActionToggleTafseer:
		m.showTafseer = !m.showTafseer
		if m.showTafseer {
			pos := m.start
			if snap.HasVerse() {
				pos = *snap.Verse
			}
			m.tafseerRes = nil
			return m, m.loadTafseer(pos)
		}
		m.tafseer.Cancel()
		return m, nil

	case keymap.ActionBookmark:
		pos := m.start
		if snap.HasVerse() {
			pos = *snap.Verse
		}
		return m, m.bookmark(pos)
	}
	return m, nil
}

func (m *model) adjustPause(delta int64) tea.Cmd {
	secs := min(max(m.pause.Load()+delta, 0), maxPauseSeconds)
	m.pause.Store(secs)
	m.settings.MemorizationPause = int(secs)
	m.a.state.SaveSettingsDebounced(m.settings)
	return func() tea.Msg { return infoMsg(fmt.Sprintf("Memorization pause: %ds", secs)) }
}

func (m model) bookmark(pos quran.Position) tea.Cmd {
	ctx, a := m.ctx, m.a
	return func() tea.Msg {
		b, err := buildBookmark(ctx, a, pos.Surah, pos.Ayah)
		if err == nil {
			err = a.state.AddBookmark(ctx, b)
		}
		if err != nil {
			return cmdErrMsg{op: errmsg.OpBookmarkAdd, err: err}
		}
		return infoMsg("Bookmarked " + pos.Key())
	}
}

func (m model) View() string {
	if m.width == 0 {
		return ""
	}
	snap := m.player.Snapshot()

	bar := playerbar.Render(playerbar.NewState(snap, m.chapter(snap.Chapter), m.barMode), m.width)
	barHeight := 0
	if bar != "" {
		barHeight = lipgloss.Height(bar)
	}

	header := styles.Banner("QuranPulse") + "  " + styles.T().S().Muted.Render(snap.Reciter.Name)
	footer := styles.T().S().Subtle.Render(render.Truncate(m.help(), m.width))
	if m.message != "" {
		footer = styles.T().S().Warning.Render(render.Truncate(m.message, m.width))
	}

	bodyHeight := max(m.height-barHeight-3, 0)
	var body []string
	if m.mode == modeChapter {
		body = m.chapterBody(snap, bodyHeight)
	} else {
		body = m.verseBody(snap)
	}
	if len(body) > bodyHeight {
		body = body[:bodyHeight]
	}
	for len(body) < bodyHeight {
		body = append(body, "")
	}

	parts := []string{header, ""}
	parts = append(parts, body...)
	parts = append(parts, footer)
	if bar != "" {
		parts = append(parts, bar)
	}
	return strings.Join(parts, "\n")
}

func (m model) chapter(id int) quran.Chapter {
	if id < 1 || id > len(m.chapters) {
		return quran.Chapter{}
	}
	return m.chapters[id-1]
}

func (m model) help() string {
	return keymap.HelpLine(keymap.ForMode(m.keyContext()))
}

func (m model) keyContext() string {
	if m.mode == modeChapter {
		return keymap.ContextChapter
	}
	return keymap.ContextVerse
}

func (m model) verseBody(snap playback.Snapshot) []string {
	s := styles.T().S()
	pos := m.start
	if snap.HasVerse() {
		pos = *snap.Verse
	}
	ch := m.chapter(pos.Surah)
	width := max(m.width-4, 10)

	lines := []string{s.Title.Render(fmt.Sprintf("%s · %s", chapterLabel(ch), pos.Key())), ""}

	verses, ok := m.verses[pos.Surah]
	switch {
	case !ok && m.loading[pos.Surah]:
		lines = append(lines, s.Muted.Render("Loading verses..."))
	case !ok || pos.Ayah > len(verses):
		lines = append(lines, s.Muted.Render("Verse text unavailable."))
	default:
		v := verses[pos.Ayah-1]
		for _, l := range render.Wrap(v.TextUthmani, width) {
			lines = append(lines, s.Arabic.Render(render.AlignRight(l, width)))
		}
		if v.Translation != "" {
			lines = append(lines, "")
			for _, l := range render.Wrap(v.Translation, width) {
				lines = append(lines, s.Translation.Render(l))
			}
		}
	}

	if m.showTafseer {
		lines = append(lines, "", s.Title.Render("Tafseer"))
		switch {
		case m.tafseerRes == nil:
			lines = append(lines, s.Muted.Render("Loading..."))
		default:
			if m.tafseerRes.Resource != "" {
				lines = append(lines, s.Subtle.Render(m.tafseerRes.Resource))
			}
			for _, l := range render.Wrap(m.tafseerRes.Text, width) {
				lines = append(lines, s.Base.Render(l))
			}
		}
	}
	return lines
}

func (m model) chapterBody(snap playback.Snapshot, height int) []string {
	s := styles.T().S()
	current := snap.Chapter
	if current == 0 {
		current = m.start.Surah
	}

	// Keep the current chapter roughly centered.
	first := max(current-height/2, 1)
	last := min(first+height-1, len(m.chapters))
	first = max(last-height+1, 1)

	var lines []string
	for id := first; id <= last; id++ {
		ch := m.chapter(id)
		row := render.Row(
			fmt.Sprintf("%3d  %s", ch.ID, chapterLabel(ch)),
			fmt.Sprintf("%s  %d verses", ch.NameArabic, ch.VersesCount),
			max(m.width-2, 20),
		)
		if id == current {
			lines = append(lines, s.Playing.Render(row))
		} else {
			lines = append(lines, s.Base.Render(row))
		}
	}
	return lines
}

func chapterLabel(ch quran.Chapter) string {
	switch {
	case ch.Name == "":
		return fmt.Sprintf("Surah %d", ch.ID)
	case ch.TranslatedName != "":
		return fmt.Sprintf("%s (%s)", ch.Name, ch.TranslatedName)
	default:
		return ch.Name
	}
}
