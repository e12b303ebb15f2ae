package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/fakefy/internal/app"
	"github.com/desertthunder/fakefy/internal/formatter"
	"github.com/desertthunder/fakefy/internal/models"
	"github.com/desertthunder/fakefy/internal/shared"
	"github.com/desertthunder/fakefy/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoginView ViewState = iota
	PlaylistsView
	TracksView
	SongsView
	FormView
	ExportView
)

// Section names recorded as the last visited section.
const (
	sectionPlaylists = "playlists"
	sectionSongs     = "songs"
)

var songModes = []tasks.QueryClass{tasks.ClassPopular, tasks.ClassTop10, tasks.ClassSearch, tasks.ClassAlbum}

// Options configures a [Model].
type Options struct {
	Logger       *log.Logger
	ExportDir    string
	ExportFormat string
}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	app    *app.App
	opts   Options
	logger *log.Logger

	view     ViewState
	returnTo ViewState
	width    int
	height   int

	playlistList list.Model
	trackList    list.Model
	songList     list.Model
	current      models.Playlist
	form         *form
	formTarget   string
	detail       string

	catalog *tasks.CatalogState
	mode    tasks.QueryClass
	queries map[tasks.QueryClass]tasks.CatalogQuery

	progressChan chan tasks.ProgressUpdate
	exportDone   chan exportOutcome
	progress     tasks.ProgressUpdate
	exportResult *tasks.ExportResult
	exporting    bool

	status string
	err    error
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model over a.
func NewModel(ctx context.Context, a *app.App, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = shared.DiscardLogger()
	}
	if opts.ExportFormat == "" {
		opts.ExportFormat = formatter.FormatMarkdown
	}

	m := &Model{
		ctx:     ctx,
		app:     a,
		opts:    opts,
		logger:  opts.Logger,
		view:    LoginView,
		catalog: tasks.NewCatalogState(a.Sequencer),
		mode:    tasks.ClassPopular,
		queries: make(map[tasks.QueryClass]tasks.CatalogQuery),
		help:    help.New(),
		keys:    newKeyMap(),
	}
	m.playlistList = m.newList(nil, "Playlists")
	m.trackList = m.newList(nil, "Tracks")
	m.songList = m.newList(nil, "Popular")
	return m
}

// Init restores the last visited section, or shows the login form without a session.
func (m *Model) Init() tea.Cmd {
	if !m.app.Sessions.Authenticated() {
		m.showLogin()
		return textinput.Blink
	}
	if m.app.Sessions.LastSection() == sectionSongs {
		return m.enterSongs()
	}
	m.enterPlaylists()
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := m.listSize()
		m.playlistList.SetSize(w, h)
		m.trackList.SetSize(w, h)
		m.songList.SetSize(w, h)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case LoginView, FormView:
			return m.handleFormKeys(msg)
		case PlaylistsView:
			return m.handlePlaylistsKeys(msg)
		case TracksView:
			return m.handleTracksKeys(msg)
		case SongsView:
			return m.handleSongsKeys(msg)
		case ExportView:
			return m.handleExportKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateActive(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgCatalogResult:
		result := msg.data.(tasks.CatalogResult)
		if !m.catalog.Apply(result) {
			m.logger.Debug("dropped stale catalog result", "class", result.Class, "generation", result.Generation)
			return m, nil
		}
		if result.Err != nil {
			m.logger.Warn("catalog request failed", "class", result.Class, "error", result.Err)
		}
		m.refreshSongs()
		return m, nil

	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgExportComplete:
		out := msg.data.(exportOutcome)
		m.exporting = false
		m.exportResult = out.result
		m.err = out.err
		m.progressChan = nil
		m.exportDone = nil
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case LoginView, FormView:
		body = m.renderForm()
	case PlaylistsView:
		body = m.renderPlaylists()
	case TracksView:
		body = m.renderTracks()
	case SongsView:
		body = m.renderSongs()
	case ExportView:
		body = m.renderExport()
	}
	return body + m.renderStatus()
}

func (m *Model) listSize() (int, int) {
	return max(m.width-4, 0), max(m.height-8, 0)
}

func (m *Model) newList(items []list.Item, title string) list.Model {
	w, h := m.listSize()
	l := list.New(items, list.NewDefaultDelegate(), w, h)
	l.Title = title
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}

func (m *Model) setStatus(format string, args ...any) {
	m.err = nil
	m.status = fmt.Sprintf(format, args...)
}

func (m *Model) setError(err error) {
	m.status = ""
	m.err = err
}

func (m *Model) showLogin() {
	m.view = LoginView
	m.form = newForm(formLogin, "Log in to fakefy",
		field{label: "Email"},
		field{label: "Password", secret: true},
	)
}

func (m *Model) openForm(f *form, target string) tea.Cmd {
	m.returnTo = m.view
	m.view = FormView
	m.form = f
	m.formTarget = target
	return textinput.Blink
}

func (m *Model) enterPlaylists() {
	m.view = PlaylistsView
	m.detail = ""
	m.app.Sessions.SetLastSection(sectionPlaylists)
	m.app.ReloadPlaylists()
	m.refreshPlaylists()
}

func (m *Model) refreshPlaylists() {
	playlists, err := m.app.ListPlaylists()
	if err != nil {
		m.setError(err)
		return
	}
	m.playlistList.SetItems(playlistItems(playlists))
}

func (m *Model) openPlaylist(id string) {
	p, err := m.app.OpenPlaylist(id)
	if err != nil {
		m.setError(err)
		return
	}
	m.current = p
	m.trackList.Title = fmt.Sprintf("Tracks in '%s'", p.Name)
	m.trackList.SetItems(trackItems(p.Tracks))
	m.detail = ""
	m.view = TracksView
}

// reloadCurrent refreshes the open playlist and selects index.
func (m *Model) reloadCurrent(index int) {
	p, err := m.app.GetPlaylist(m.current.ID)
	if err != nil {
		m.setError(err)
		m.enterPlaylists()
		return
	}
	m.current = p
	m.trackList.SetItems(trackItems(p.Tracks))
	if index >= 0 && index < len(p.Tracks) {
		m.trackList.Select(index)
	}
}

func (m *Model) enterSongs() tea.Cmd {
	m.view = SongsView
	m.detail = ""
	m.app.Sessions.SetLastSection(sectionSongs)
	m.refreshSongs()
	if m.mode == tasks.ClassPopular && len(m.catalog.Popular) == 0 && !m.catalog.Loading() {
		return m.dispatch(tasks.CatalogQuery{Class: tasks.ClassPopular})
	}
	return nil
}

// dispatch starts q under a fresh generation for its class.
func (m *Model) dispatch(q tasks.CatalogQuery) tea.Cmd {
	m.queries[q.Class] = q
	gen := m.catalog.Begin(q.Class)
	m.refreshSongs()

	engine, ctx := m.app.Catalog, m.ctx
	return func() tea.Msg {
		return catalogResultMsg(engine.Execute(ctx, gen, q))
	}
}

func (m *Model) refreshSongs() {
	var items []list.Item
	switch m.mode {
	case tasks.ClassPopular:
		m.songList.Title = "Popular"
		items = trackItems(m.catalog.Popular)
	case tasks.ClassTop10:
		m.songList.Title = "Top 10"
		if q, ok := m.queries[tasks.ClassTop10]; ok {
			m.songList.Title = fmt.Sprintf("Top 10: %s", q.Artist)
		}
		items = trackItems(m.catalog.Top10)
	case tasks.ClassSearch:
		m.songList.Title = "Search"
		items = resultItems(m.catalog.Results)
	case tasks.ClassAlbum:
		m.songList.Title = "Albums"
		items = albumItems(m.catalog.Albums)
	}
	if m.catalog.Loading() {
		m.songList.Title += " (loading...)"
	}
	m.songList.SetItems(items)
}

func (m *Model) nextMode() tea.Cmd {
	i := 0
	for j, mode := range songModes {
		if mode == m.mode {
			i = j
		}
	}
	m.mode = songModes[(i+1)%len(songModes)]
	m.detail = ""
	m.refreshSongs()
	if m.mode == tasks.ClassPopular && len(m.catalog.Popular) == 0 && !m.catalog.Loading() {
		return m.dispatch(tasks.CatalogQuery{Class: tasks.ClassPopular})
	}
	return nil
}

func (m *Model) queryForm() tea.Cmd {
	q := m.queries[m.mode]
	switch m.mode {
	case tasks.ClassTop10:
		return m.openForm(newForm(formTop10, "Top tracks", field{label: "Artist", value: q.Artist}), "")
	case tasks.ClassSearch:
		return m.openForm(newForm(formSearch, "Search",
			field{label: "Artist", value: q.Artist},
			field{label: "Title", value: q.Title},
			field{label: "Album", value: q.Album},
		), "")
	case tasks.ClassAlbum:
		return m.openForm(newForm(formAlbum, "Album search",
			field{label: "Artist", value: q.Artist},
			field{label: "Album", value: q.Album},
		), "")
	default:
		return m.dispatch(tasks.CatalogQuery{Class: tasks.ClassPopular})
	}
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		if m.form.kind == formLogin {
			return m, tea.Quit
		}
		m.view = m.returnTo
		m.form = nil
		return m, nil
	case msg.String() == "tab" || msg.String() == "down":
		return m, m.form.cycle(1)
	case msg.String() == "shift+tab" || msg.String() == "up":
		return m, m.form.cycle(-1)
	case key.Matches(msg, m.keys.enter):
		return m.submitForm()
	}
	return m, m.form.update(msg)
}

func (m *Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	v := f.values()

	switch f.kind {
	case formLogin:
		s, err := m.app.Login(v[0], v[1])
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		m.form = nil
		m.setStatus("Logged in as %s", s.Email)
		if m.app.Sessions.LastSection() == sectionSongs {
			return m, m.enterSongs()
		}
		m.enterPlaylists()
		return m, nil

	case formCreate:
		p, err := m.app.CreatePlaylist(v[0])
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		m.setStatus("Created '%s'", p.Name)
		m.form = nil
		m.enterPlaylists()
		return m, nil

	case formRename:
		if err := m.app.RenamePlaylist(m.formTarget, v[0]); err != nil {
			f.err = err.Error()
			return m, nil
		}
		m.setStatus("Renamed to '%s'", strings.TrimSpace(v[0]))
		m.form = nil
		m.enterPlaylists()
		return m, nil

	case formTop10:
		m.form = nil
		m.view = SongsView
		return m, m.dispatch(tasks.CatalogQuery{Class: tasks.ClassTop10, Artist: strings.TrimSpace(v[0])})

	case formSearch:
		m.form = nil
		m.view = SongsView
		return m, m.dispatch(tasks.CatalogQuery{Class: tasks.ClassSearch, Artist: v[0], Title: v[1], Album: v[2]})

	case formAlbum:
		m.form = nil
		m.view = SongsView
		return m, m.dispatch(tasks.CatalogQuery{Class: tasks.ClassAlbum, Artist: strings.TrimSpace(v[0]), Album: strings.TrimSpace(v[1])})
	}
	return m, nil
}

func (m *Model) selectedPlaylist() (models.Playlist, bool) {
	if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
		return item.playlist, true
	}
	return models.Playlist{}, false
}

func (m *Model) handlePlaylistsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.playlistList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.playlistList, cmd = m.playlistList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		m.enterPlaylists()
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if p, ok := m.selectedPlaylist(); ok {
			m.openPlaylist(p.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.create):
		return m, m.openForm(newForm(formCreate, "New playlist", field{label: "Name"}), "")
	case key.Matches(msg, m.keys.rename):
		if p, ok := m.selectedPlaylist(); ok {
			return m, m.openForm(newForm(formRename, "Rename playlist", field{label: "Name", value: p.Name}), p.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.delete):
		if p, ok := m.selectedPlaylist(); ok {
			if _, err := m.app.DeletePlaylist(p.ID); err != nil {
				m.setError(err)
			} else {
				m.setStatus("Deleted '%s'", p.Name)
			}
			m.refreshPlaylists()
		}
		return m, nil
	case key.Matches(msg, m.keys.export):
		playlists, err := m.app.ListPlaylists()
		if err != nil {
			m.setError(err)
			return m, nil
		}
		return m, m.startExport(playlists)
	case key.Matches(msg, m.keys.songs):
		return m, m.enterSongs()
	case key.Matches(msg, m.keys.logout):
		m.app.Logout()
		m.catalog = tasks.NewCatalogState(m.app.Sequencer)
		m.setStatus("Logged out")
		m.showLogin()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleTracksKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.trackList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.trackList, cmd = m.trackList.Update(msg)
		return m, cmd
	}

	index := m.trackList.Index()
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		if m.detail != "" {
			m.detail = ""
			return m, nil
		}
		m.enterPlaylists()
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.trackList.SelectedItem().(trackItem); ok {
			m.detail = formatter.TrackDetail(item.track)
		}
		return m, nil
	case key.Matches(msg, m.keys.moveUp):
		return m.moveTrack(index, index-1)
	case key.Matches(msg, m.keys.moveDown):
		return m.moveTrack(index, index+1)
	case key.Matches(msg, m.keys.remove):
		if item, ok := m.trackList.SelectedItem().(trackItem); ok {
			if _, err := m.app.RemoveTrack(m.current.ID, item.track.ID); err != nil {
				m.setError(err)
			} else {
				m.setStatus("Removed '%s'", item.track.Name)
			}
			m.detail = ""
			m.reloadCurrent(min(index, len(m.current.Tracks)-2))
		}
		return m, nil
	case key.Matches(msg, m.keys.songs):
		return m, m.enterSongs()
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) moveTrack(from, to int) (tea.Model, tea.Cmd) {
	moved, err := m.app.ReorderTrack(m.current.ID, from, to)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	if moved {
		m.reloadCurrent(to)
	}
	return m, nil
}

func (m *Model) handleSongsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.songList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.songList, cmd = m.songList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		if m.detail != "" {
			m.detail = ""
			return m, nil
		}
		m.enterPlaylists()
		return m, nil
	case key.Matches(msg, m.keys.mode):
		return m, m.nextMode()
	case key.Matches(msg, m.keys.query):
		return m, m.queryForm()
	case key.Matches(msg, m.keys.refresh):
		if q, ok := m.queries[m.mode]; ok {
			return m, m.dispatch(q)
		}
		return m, m.queryForm()
	case key.Matches(msg, m.keys.enter):
		switch item := m.songList.SelectedItem().(type) {
		case trackItem:
			m.detail = formatter.TrackDetail(item.track)
		case albumItem:
			m.detail = fmt.Sprintf("%s\n%s | %s | %s", item.album.Name, item.album.Artist, item.album.Year, item.album.Genre)
		}
		return m, nil
	case key.Matches(msg, m.keys.add):
		return m.addSelectedSong()
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

// addSelectedSong adds the highlighted track to the last viewed playlist.
func (m *Model) addSelectedSong() (tea.Model, tea.Cmd) {
	item, ok := m.songList.SelectedItem().(trackItem)
	if !ok {
		return m, nil
	}
	target, ok := m.app.LastViewedPlaylist()
	if !ok {
		m.setError(fmt.Errorf("open a playlist first"))
		return m, nil
	}

	added, err := m.app.AddTrack(target.ID, item.track)
	switch {
	case err != nil:
		m.setError(err)
	case added:
		m.setStatus("Added '%s' to '%s'", item.track.Name, target.Name)
	default:
		m.setStatus("'%s' is already in '%s'", item.track.Name, target.Name)
	}
	return m, nil
}

func (m *Model) handleExportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.exporting {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.enter):
		m.exportResult = nil
		m.enterPlaylists()
	}
	return m, nil
}

func (m *Model) startExport(playlists []models.Playlist) tea.Cmd {
	m.view = ExportView
	m.exporting = true
	m.exportResult = nil
	m.progress = tasks.ProgressUpdate{}
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	m.exportDone = make(chan exportOutcome, 1)

	ch, done := m.progressChan, m.exportDone
	engine, ctx := m.app.Catalog, m.ctx
	opts := tasks.ExportOpts{Format: m.opts.ExportFormat, OutputDir: m.opts.ExportDir}

	go func() {
		result, err := engine.ExportPlaylists(ctx, ch, playlists, opts)
		done <- exportOutcome{result, err}
		close(ch)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	ch, done := m.progressChan, m.exportDone
	return func() tea.Msg {
		if ch == nil {
			return exportCompleteMsg(nil, nil)
		}

		update, ok := <-ch
		if !ok {
			out := <-done
			return exportCompleteMsg(out.result, out.err)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case LoginView, FormView:
		if m.form != nil {
			cmd = m.form.update(msg)
		}
	case PlaylistsView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case TracksView:
		m.trackList, cmd = m.trackList.Update(msg)
	case SongsView:
		m.songList, cmd = m.songList.Update(msg)
	}
	return m, cmd
}

func (m *Model) renderForm() string {
	if m.form == nil {
		return ""
	}
	helpKeys := []key.Binding{m.keys.enter, m.keys.back}
	if len(m.form.inputs) > 1 {
		helpKeys = append(helpKeys, m.keys.tab)
	}
	return fmt.Sprintf("%s\n%s", m.form.view(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderPlaylists() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.create, m.keys.rename, m.keys.delete, m.keys.export, m.keys.songs, m.keys.refresh, m.keys.logout, m.keys.quit}
	return fmt.Sprintf("%s\n%s\n\n%s", m.renderHeader(), m.playlistList.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderTracks() string {
	helpKeys := []key.Binding{m.keys.moveUp, m.keys.moveDown, m.keys.remove, m.keys.enter, m.keys.songs, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n%s%s\n\n%s", m.renderHeader(), m.trackList.View(), m.renderDetail(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderSongs() string {
	helpKeys := []key.Binding{m.keys.add, m.keys.mode, m.keys.query, m.keys.refresh, m.keys.enter, m.keys.back, m.keys.quit}

	target := "none (open a playlist to add songs)"
	if p, ok := m.app.LastViewedPlaylist(); ok {
		target = p.Name
	}
	info := styles.help.Render(fmt.Sprintf("Mode: %s | Adding to: %s", m.mode, target))

	var catalogErr string
	if m.catalog.Error != "" {
		catalogErr = "\n" + styles.err.Render("Error: "+m.catalog.Error)
	}

	return fmt.Sprintf("%s\n%s%s\n%s%s\n\n%s",
		m.renderHeader(), info, catalogErr, m.songList.View(), m.renderDetail(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderExport() string {
	if m.exporting {
		title := styles.title.Render("Exporting Playlists")
		phase := "Preparing..."
		if m.progress.Total > 0 {
			phase = fmt.Sprintf("Exporting (%d/%d)", m.progress.Step, m.progress.Total)
		}
		return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	if m.err != nil || m.exportResult == nil {
		return styles.err.Render("Export failed") + "\n\n" + m.help.ShortHelpView(helpKeys)
	}

	r := m.exportResult
	title := styles.ok.Render("✓ Export Complete!")
	info := fmt.Sprintf("\nDirectory: %s\nExported: %d/%d\nManifest: %s",
		r.OutputDirectory, r.SuccessfulExports, r.TotalPlaylists, r.ManifestPath)

	var failed string
	if r.FailedExports > 0 {
		failed = "\n\n" + styles.warn.Render(fmt.Sprintf("Failed to export %d playlists:", r.FailedExports))
		for _, res := range r.Results {
			if res.Error != nil {
				failed += fmt.Sprintf("\n  • %s: %v", res.PlaylistName, res.Error)
			}
		}
	}

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderHeader() string {
	who := "not logged in"
	if s, ok := m.app.CurrentSession(); ok {
		who = s.Email
	}
	return styles.title.Render("fakefy") + "  " + styles.help.Render(who)
}

func (m *Model) renderDetail() string {
	if m.detail == "" {
		return ""
	}
	return "\n" + styles.detail.Render(m.detail)
}

func (m *Model) renderStatus() string {
	switch {
	case m.err != nil:
		return "\n" + styles.err.Render("Error: "+m.err.Error())
	case m.status != "":
		return "\n" + styles.ok.Render(m.status)
	}
	return ""
}
