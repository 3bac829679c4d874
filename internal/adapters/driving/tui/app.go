package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pagesplit/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/pagesplit/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pagesplit/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pagesplit/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pagesplit/internal/adapters/driving/tui/views/form"
	"github.com/custodia-labs/pagesplit/internal/adapters/driving/tui/views/result"
	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	keymap *keymap.KeyMap

	formView   *form.View
	resultView *result.View

	spinner   spinner.Model
	help      help.Model
	statusBar *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is restored when help closes.
	previousView messages.ViewType

	// running is the request of the split in progress.
	running *domain.SplitRequest

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = s.Success

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		formView:    form.NewView(s, defaultSettings(ports).Prefix),
		resultView:  result.NewView(s),
		spinner:     sp,
		help:        help.New(),
		statusBar:   status.NewBar(s, km),
		currentView: messages.ViewForm,
	}, nil
}

// defaultSettings returns the stored settings, or the built-in defaults
// when none are available.
func defaultSettings(ports *Ports) domain.Settings {
	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil && settings != nil {
			return *settings
		}
	}
	return domain.DefaultSettings()
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("pagesplit"),
		a.formView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.FormSubmitted:
		return a, a.startSplit(msg)

	case messages.SplitCompleted:
		a.running = nil
		a.err = msg.Err
		a.resultView.SetOutcome(msg.Request, msg.Result, msg.Err)
		a.currentView = messages.ViewResult
		if msg.Result != nil {
			a.statusBar.SetCounts(msg.Result.WrittenCount, msg.Result.FailedCount)
		}
		if msg.Err != nil {
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(msg.Err.Error())
		} else {
			a.statusBar.SetState(status.StateDone)
		}
		return a, nil

	case messages.ViewChanged:
		if msg.View == messages.ViewForm {
			a.err = nil
			a.statusBar.Clear()
		}
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(msg.Err.Error())
		return a, nil

	case spinner.TickMsg:
		if a.running == nil {
			return a, nil
		}
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	// Forward other messages, such as cursor blinks, to the form.
	if a.currentView == messages.ViewForm {
		a.formView, cmd = a.formView.Update(msg)
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if keymap.Matches(msg.String(), a.keymap.Quit) {
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewForm:
		// Every other key is text for the focused field.
		a.formView, cmd = a.formView.Update(msg)
		return a, cmd

	case messages.ViewRunning:
		// The split cannot be interrupted except by quitting.
		return a, nil

	case messages.ViewResult:
		if keymap.Matches(msg.String(), a.keymap.Help) {
			a.showHelp()
			return a, nil
		}
		a.resultView, cmd = a.resultView.Update(msg)
		return a, cmd

	case messages.ViewHelp:
		if keymap.Matches(msg.String(), a.keymap.Help) || keymap.Matches(msg.String(), a.keymap.Back) {
			a.currentView = a.previousView
			a.statusBar.SetState(status.StateDone)
			if a.err != nil {
				a.statusBar.SetState(status.StateError)
			}
		}
		return a, nil
	}
	return a, nil
}

func (a *App) showHelp() {
	a.previousView = a.currentView
	a.currentView = messages.ViewHelp
	a.statusBar.SetState(status.StateHelp)
}

// startSplit builds the request from the form values and the stored
// settings, then runs the split in the background.
func (a *App) startSplit(submitted messages.FormSubmitted) tea.Cmd {
	settings := defaultSettings(a.ports)

	rules, err := a.ports.Rules.Load(settings.RulesFile)
	if err != nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: err} }
	}

	req := domain.SplitRequest{
		Source:      submitted.Source,
		Destination: submitted.Destination,
		Prefix:      submitted.Prefix,
		Suffix:      settings.Suffix,
		Rules:       rules,
	}

	a.err = nil
	a.running = &req
	a.currentView = messages.ViewRunning
	a.statusBar.SetState(status.StateSplitting)
	a.statusBar.SetMessage(req.Source)

	ctx := a.ctx
	svc := a.ports.Split
	run := func() tea.Msg {
		res, err := svc.Split(ctx, req)
		return messages.SplitCompleted{Request: req, Result: res, Err: err}
	}
	return tea.Batch(a.spinner.Tick, run)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewForm:
		body = a.formView.View()
		if a.err != nil {
			body += "\n" + a.styles.Error.Render("Error: "+a.err.Error()) + "\n"
		}
	case messages.ViewRunning:
		body = a.viewRunning()
	case messages.ViewResult:
		body = a.resultView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	}

	return body + "\n" + a.statusBar.View()
}

func (a *App) viewRunning() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("pagesplit"))
	b.WriteString("\n\n")
	if a.running != nil {
		b.WriteString(fmt.Sprintf("%s Splitting %s into %s\n",
			a.spinner.View(), a.running.Source, a.running.Destination))
	}
	return b.String()
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Keys"))
	b.WriteString("\n\n")
	b.WriteString(a.help.FullHelpView(a.keymap.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("Press ? or esc to close"))
	b.WriteString("\n")
	return b.String()
}

// CurrentView returns the currently active view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its first window size.
func (a *App) Ready() bool {
	return a.ready
}

// Result returns the result of the last finished run, if any.
func (a *App) Result() *domain.BatchResult {
	return a.resultView.Result()
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.formView.SetDimensions(width, height)
	a.resultView.SetDimensions(width, height)
	a.statusBar.SetWidth(width)
	a.help.Width = width
}
