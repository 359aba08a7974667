package app

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/pfassina/mdoutline/internal/config"
	"github.com/pfassina/mdoutline/internal/index"
	"github.com/pfassina/mdoutline/internal/outline"
	"github.com/pfassina/mdoutline/internal/panel"
	"github.com/pfassina/mdoutline/internal/session"
	"github.com/pfassina/mdoutline/internal/theme"
	"github.com/pfassina/mdoutline/internal/ui"
	"github.com/pfassina/mdoutline/internal/vault"
)

type focusedPanel int

const (
	focusTree focusedPanel = iota
	focusOutline
	focusFinder
)

// Jumper moves an editor to a line of a file.
type Jumper interface {
	Jump(path string, lineno int) error
}

// Deps are the shared services an App works with. All fields are optional.
type Deps struct {
	DB      *index.DB
	Indexer *index.Indexer
	Builder *outline.Builder
	Jumper  Jumper
	Logger  *log.Logger

	// Watch starts a file watcher once the first indexing pass is done.
	Watch bool
	// Poll re-reads the index at this interval when set, for apps that
	// share an index kept current by someone else.
	Poll time.Duration
}

// App is the outline browser: a note tree, the outline of the selected note
// and a vault-wide heading search.
type App struct {
	cfg       config.Config
	program   *tea.Program
	tree      panel.Tree
	outline   panel.Outline
	finder    panel.Finder
	status    panel.Status
	vault     *vault.Vault
	db        *index.DB
	indexer   *index.Indexer
	builder   *outline.Builder
	watcher   *index.Watcher
	jumper    Jumper
	logger    *log.Logger
	store     *session.Store
	state     session.State
	theme     theme.Theme
	watch     bool
	pollEvery time.Duration
	width     int
	height    int
	focused   focusedPanel
	showTree  bool

	// currentFile is the vault-relative path of the note whose outline is shown.
	currentFile string

	// pendingLine is the header line to select once the outline of
	// currentFile arrives, or -1.
	pendingLine int
}

func New(cfg config.Config, deps Deps) *App {
	v := vault.New(cfg.VaultPath)
	th := theme.Named(cfg.Theme)
	styles := ui.NewStyles(th)

	store := session.NewStore(cfg.VaultPath)
	state, err := store.Load()
	if err != nil {
		state = session.Default()
	}

	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	builder := deps.Builder
	if builder == nil {
		builder = outline.New(outline.Options{SkipFrontmatter: cfg.SkipFrontmatter})
	}

	a := &App{
		cfg:         cfg,
		tree:        panel.NewTree(v, styles),
		outline:     panel.NewOutline(styles, cfg.ShowNumbers),
		finder:      panel.NewFinder(styles),
		status:      panel.NewStatus(cfg.VaultPath, th),
		vault:       v,
		db:          deps.DB,
		indexer:     deps.Indexer,
		builder:     builder,
		jumper:      deps.Jumper,
		logger:      logger,
		store:       store,
		state:       state,
		theme:       th,
		watch:       deps.Watch,
		pollEvery:   deps.Poll,
		showTree:    state.ShowTree,
		pendingLine: -1,
	}
	if err != nil {
		a.status.SetError(fmt.Sprintf("load session: %v", err))
	}
	// A saved toggle wins over the configured default.
	if store.Exists() {
		a.outline.SetShowNumbers(state.ShowNumbers)
	} else {
		a.state.ShowNumbers = cfg.ShowNumbers
	}
	if err := a.tree.Refresh(); err != nil {
		a.status.SetError(fmt.Sprintf("list notes: %v", err))
	}
	a.finder.SetSearchFunc(a.searchHeadings)
	if a.showTree {
		a.setFocus(focusTree)
	} else {
		a.setFocus(focusOutline)
	}

	if state.ActiveNote != "" {
		a.currentFile = state.ActiveNote
		a.tree.Select(state.ActiveNote)
		a.status.SetFile(state.ActiveNote)
	}
	return a
}

// SetProgram lets background goroutines deliver messages to the running program.
func (a *App) SetProgram(p *tea.Program) {
	a.program = p
}

func (a *App) Init() tea.Cmd {
	var cmds []tea.Cmd
	if a.indexer != nil {
		cmds = append(cmds, a.initIndex(false))
	} else {
		cmds = append(cmds, a.loadCounts())
		if a.currentFile != "" {
			cmds = append(cmds, a.loadOutline(a.currentFile))
		}
	}
	if a.pollEvery > 0 {
		cmds = append(cmds, a.poll())
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case panel.FileSelectedMsg:
		a.setFocus(focusOutline)
		return a, a.openNote(msg.Path, -1)

	case outlineLoadedMsg:
		a.handleOutlineLoaded(msg)
		return a, nil

	case countsLoadedMsg:
		if msg.counts != nil {
			a.tree.SetCounts(msg.counts)
		}
		return a, nil

	case panel.HeadingSelectedMsg:
		a.state.SetCursor(msg.Path, a.outline.Cursor())
		return a, a.jump(msg.Path, msg.Header.Lineno)

	case jumpedMsg:
		if msg.err != nil {
			a.status.SetError(fmt.Sprintf("jump to %s: %v", jumpTarget(msg.path, msg.lineno), msg.err))
			return a, nil
		}
		a.status.ClearError()
		a.status.SetMessage(jumpTarget(msg.path, msg.lineno))
		return a, nil

	case panel.FinderResultMsg:
		a.setFocus(focusOutline)
		return a, tea.Batch(a.openNote(msg.Path, msg.Line), a.jump(msg.Path, msg.Line))

	case panel.FinderClosedMsg:
		a.setFocus(focusOutline)
		return a, nil

	case panel.NumbersToggledMsg:
		a.state.ShowNumbers = msg.Show
		return a, nil

	case indexDoneMsg:
		if msg.err != nil {
			return a, fatalCmd(fmt.Errorf("indexing failed: %w", msg.err))
		}
		a.logger.Info("index ready", "changed", msg.changed)
		if a.watch && a.watcher == nil {
			if err := a.startWatcher(); err != nil {
				return a, fatalCmd(fmt.Errorf("watcher init failed: %w", err))
			}
		}
		return a, a.refresh()

	case noteChangedMsg:
		if err := a.tree.Refresh(); err != nil {
			a.status.SetError(fmt.Sprintf("list notes: %v", err))
		}
		cmds := []tea.Cmd{a.loadCounts()}
		if msg.path == a.currentFile {
			cmds = append(cmds, a.loadOutline(a.currentFile))
		}
		return a, tea.Batch(cmds...)

	case pollMsg:
		return a, tea.Batch(a.refresh(), a.poll())

	case fatalErrorMsg:
		a.Close()
		return a, fatalCmd(msg.err)
	}

	// Non-key messages (cursor blink and friends) go to whichever input is live.
	var cmd tea.Cmd
	switch a.focused {
	case focusFinder:
		a.finder, cmd = a.finder.Update(msg)
	case focusOutline:
		a.outline, cmd = a.outline.Update(msg)
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		a.Close()
		return tea.Quit
	}

	var cmd tea.Cmd
	if a.focused == focusFinder {
		a.finder, cmd = a.finder.Update(msg)
		return cmd
	}
	if a.outline.Filtering() {
		a.outline, cmd = a.outline.Update(msg)
		a.syncMode()
		return cmd
	}
	if a.focused == focusTree && a.tree.ShowingHelp() {
		a.tree, cmd = a.tree.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "q":
		a.Close()
		return tea.Quit
	case "tab":
		if a.focused == focusTree {
			a.setFocus(focusOutline)
		} else if a.showTree {
			a.setFocus(focusTree)
		}
		return nil
	case "ctrl+h", "left", "h":
		if a.showTree {
			a.setFocus(focusTree)
		}
		return nil
	case "ctrl+l", "right", "l":
		a.setFocus(focusOutline)
		return nil
	case "ctrl+f", "s":
		if a.db == nil {
			a.status.SetError("heading search needs an index")
			return nil
		}
		a.setFocus(focusFinder)
		return a.finder.Show()
	case "t":
		a.toggleTree()
		return nil
	case "r":
		if a.indexer == nil {
			return nil
		}
		a.status.SetMessage("reindexing...")
		return a.initIndex(true)
	}

	switch a.focused {
	case focusTree:
		a.tree, cmd = a.tree.Update(msg)
	case focusOutline:
		a.outline, cmd = a.outline.Update(msg)
		a.syncMode()
	}
	return cmd
}

// openNote shows the outline of path, selecting the header at line when it
// is not negative.
func (a *App) openNote(path string, line int) tea.Cmd {
	if a.currentFile != "" && a.currentFile != path && a.outline.Path() == a.currentFile {
		a.state.SetCursor(a.currentFile, a.outline.Cursor())
	}
	a.currentFile = path
	a.pendingLine = line
	a.state.ActiveNote = path
	a.tree.Select(path)
	a.status.ClearError()
	a.status.SetFile(path)
	return a.loadOutline(path)
}

func (a *App) handleOutlineLoaded(msg outlineLoadedMsg) {
	if msg.path != a.currentFile {
		return
	}
	if msg.err != nil {
		a.status.SetError(fmt.Sprintf("outline of %s: %v", msg.path, msg.err))
		a.outline.SetHeaders(msg.path, nil)
		return
	}

	switching := a.outline.Path() != msg.path
	a.outline.SetHeaders(msg.path, msg.headers)

	switch {
	case a.pendingLine >= 0:
		for i, h := range msg.headers {
			if h.Lineno == a.pendingLine {
				a.outline.SetCursor(i)
				break
			}
		}
		a.pendingLine = -1
	case switching:
		a.outline.SetCursor(a.state.Cursor(msg.path))
	}
}

// refresh reloads the tree counts and the current outline from the index.
func (a *App) refresh() tea.Cmd {
	cmds := []tea.Cmd{a.loadCounts()}
	if a.currentFile != "" {
		cmds = append(cmds, a.loadOutline(a.currentFile))
	}
	return tea.Batch(cmds...)
}

func (a *App) startWatcher() error {
	w, err := index.NewWatcher(a.indexer, a.cfg.VaultPath, func(path string) {
		if a.program != nil {
			a.program.Send(noteChangedMsg{path: a.vault.Rel(path)})
		}
	}, func(err error) {
		if a.program != nil {
			a.program.Send(fatalErrorMsg{err: err})
		}
	})
	if err != nil {
		return err
	}
	a.watcher = w
	go w.Start()
	return nil
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	minW, minH := a.minWindowSize()
	if a.width < minW || a.height < minH {
		msg := fmt.Sprintf("Window too small (%dx%d)\nMinimum supported: %dx%d", a.width, a.height, minW, minH)
		style := lipgloss.NewStyle().
			Foreground(a.theme.Text).
			Padding(1, 2)
		base := strings.Repeat("\n", a.height)
		return overlayCenter(base, style.Render(msg), a.width, a.height)
	}

	layout := ComputeLayout(a.width, a.height, a.showTree, a.cfg.TreeWidth)

	var columns []string
	if a.showTree {
		tw := layout.TreeWidth - 1
		if tw < 0 {
			tw = 0
		}
		borderStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, true, false, false).
			BorderForeground(a.theme.Border).
			Width(tw).
			Height(layout.Height)
		columns = append(columns, borderStyle.Render(a.tree.View()))
	}

	outlineStyle := lipgloss.NewStyle().
		Width(layout.OutlineWidth).
		Height(layout.Height)
	columns = append(columns, outlineStyle.Render(a.outline.View()))

	result := lipgloss.JoinHorizontal(lipgloss.Top, columns...) + "\n" + a.status.View()

	if a.finder.Visible() {
		if finderView := a.finder.View(); finderView != "" {
			result = overlayCenter(result, finderView, a.width, a.height)
		}
	}

	return result
}

// Close saves the session and stops the watcher. The index is owned by the
// caller.
func (a *App) Close() {
	if a.store != nil {
		if a.outline.Path() != "" {
			a.state.SetCursor(a.outline.Path(), a.outline.Cursor())
		}
		a.state.TreeWidth = a.cfg.TreeWidth
		a.state.ShowTree = a.showTree
		if err := a.store.Save(a.state); err != nil {
			a.logger.Error("save session state", "err", err)
		}
	}

	if a.watcher != nil {
		if err := a.watcher.Stop(); err != nil {
			a.logger.Error("stop watcher", "err", err)
		}
		a.watcher = nil
	}
}

func (a *App) minWindowSize() (minW, minH int) {
	return 40, 10
}

func (a *App) updateLayout() {
	layout := ComputeLayout(a.width, a.height, a.showTree, a.cfg.TreeWidth)

	a.tree.SetSize(layout.TreeWidth, layout.Height)
	a.outline.SetSize(layout.OutlineWidth, layout.Height)
	a.status.SetWidth(a.width)
	a.finder.SetSize(a.width, a.height)
}

func (a *App) setFocus(target focusedPanel) {
	if target != focusFinder && a.finder.Visible() {
		a.finder.Hide()
	}
	a.tree.SetFocused(target == focusTree)
	a.outline.SetFocused(target == focusOutline)
	a.focused = target
	a.syncMode()
}

// syncMode shows the focused panel in the status bar.
func (a *App) syncMode() {
	switch {
	case a.focused == focusFinder:
		a.status.SetMode("SEARCH")
	case a.focused == focusOutline && a.outline.Filtering():
		a.status.SetMode("FILTER")
	case a.focused == focusOutline:
		a.status.SetMode("OUTLINE")
	default:
		a.status.SetMode("NOTES")
	}
}

func (a *App) toggleTree() {
	a.showTree = !a.showTree
	if !a.showTree && a.focused == focusTree {
		a.setFocus(focusOutline)
	}
	a.updateLayout()
}

func overlayCenter(base, overlay string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	overlayWidth := 0
	for _, line := range overlayLines {
		if w := lipgloss.Width(line); w > overlayWidth {
			overlayWidth = w
		}
	}

	startRow := (height - len(overlayLines)) / 2
	startCol := (width - overlayWidth) / 2
	if startRow < 0 {
		startRow = 0
	}
	if startCol < 0 {
		startCol = 0
	}

	padToCol := func(s string, col int) string {
		// Pad based on visible width so ANSI sequences are not counted.
		for lipgloss.Width(s) < col {
			s += " "
		}
		return s
	}

	for i, overlayLine := range overlayLines {
		row := startRow + i
		if row >= len(baseLines) {
			break
		}

		baseLine := padToCol(baseLines[row], startCol)

		// Cut by columns without breaking ANSI sequences.
		left := ansi.Cut(baseLine, 0, startCol)
		right := ansi.Cut(baseLine, startCol+overlayWidth, width)

		baseLines[row] = ansi.Truncate(left+overlayLine+right, width, "")
	}

	return strings.Join(baseLines, "\n")
}
