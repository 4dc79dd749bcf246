package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/discana/companion/internal/api"
	"github.com/discana/companion/internal/form"
	"github.com/discana/companion/internal/nav"
	"github.com/discana/companion/internal/ui/components"
)

// --- Overlay States ---

type overlayState int

const (
	stateIdle overlayState = iota
	stateResolving
	stateEditing
	stateSubmitting
	stateMoving
)

// Resolver turns an album reference into the best available record.
type Resolver interface {
	Resolve(albumID string) (api.Membership, api.Record)
}

// Catalog is the mutation surface of the album catalog.
type Catalog interface {
	CreateAlbum(payload api.Submission) (int, error)
	UpdateAlbum(albumID string, payload api.Submission) (int, error)
	MoveAlbum(origin, dest api.Membership, albumID string) (int, error)
}

// --- Messages ---

type navMsg nav.Event

type resolvedMsg struct {
	album      string
	membership api.Membership
	record     api.Record
}

type submitDoneMsg struct {
	album   string
	status  int
	created bool
}

type moveDoneMsg struct {
	album  string
	status int
	dest   api.Membership
}

type errMsg struct{ err error }
type clearToastMsg struct{}

type appToast struct {
	level string
	text  string
}

// --- App Model ---

// App is the root TUI model. It mirrors the browsing session of the host
// catalog: a location bar drives a navigation watcher, and landing on an
// album route opens the management overlay for that album.
type App struct {
	catalog  Catalog
	resolver Resolver

	watcher  *nav.Watcher
	history  *nav.History
	location *nav.MemoryLocation
	events   chan nav.Event
	visited  []string

	width  int
	height int

	state      overlayState
	album      string
	membership api.Membership
	form       *form.Model
	focus      int
	tagBuf     string
	notice     string

	addressing bool
	addressBuf string

	err   string
	toast *appToast
}

// NewApp creates the root application model. The watcher is installed over an
// in-process location bar starting at startURL.
func NewApp(catalog Catalog, resolver Resolver, startURL string) *App {
	a := &App{
		catalog:  catalog,
		resolver: resolver,
		location: nav.NewMemoryLocation(startURL),
		events:   make(chan nav.Event, 8),
		state:    stateIdle,
	}
	a.history = a.location.History()
	a.watcher = nav.NewWatcher(func(ev nav.Event) {
		a.events <- ev
	})
	a.watcher.Install(a.history)
	return a
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.waitForNav()}
	// The start URL may already be an album route.
	if ref := nav.AlbumID(a.location.Current()); ref != "" {
		a.album = ref
		a.state = stateResolving
		cmds = append(cmds, a.resolveCmd(ref))
	}
	return tea.Batch(cmds...)
}

func (a *App) waitForNav() tea.Cmd {
	return func() tea.Msg {
		return navMsg(<-a.events)
	}
}

func (a *App) resolveCmd(album string) tea.Cmd {
	return func() tea.Msg {
		membership, record := a.resolver.Resolve(album)
		return resolvedMsg{album: album, membership: membership, record: record}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case navMsg:
		return a.handleNav(nav.Event(msg))

	case resolvedMsg:
		// A resolution that raced a later navigation must not clobber the
		// overlay of the album the user is actually looking at.
		if msg.album != a.album || a.state != stateResolving {
			return a, nil
		}
		a.membership = msg.membership
		a.form = form.Build(msg.record, msg.membership, msg.album)
		a.focus = 0
		a.tagBuf = ""
		a.notice = ""
		a.state = stateEditing
		return a, nil

	case submitDoneMsg:
		if msg.album != a.album {
			return a, nil
		}
		// Success or failure, a finished submit closes the overlay.
		a.teardown()
		if msg.status >= 200 && msg.status < 300 {
			verb := "actualizado"
			if msg.created {
				verb = "guardado"
			}
			return a, a.setToast("success", fmt.Sprintf("Álbum %s (%d).", verb, msg.status))
		}
		return a, a.setToast("error", fmt.Sprintf("HTTP %d", msg.status))

	case moveDoneMsg:
		if msg.album != a.album {
			return a, nil
		}
		dest := msg.dest
		a.teardown()
		if msg.status >= 200 && msg.status < 300 {
			a.membership = dest
			return a, a.setToast("success", fmt.Sprintf("Movido a %s (%d).", dest, msg.status))
		}
		return a, a.setToast("error", fmt.Sprintf("HTTP %d", msg.status))

	case errMsg:
		if a.state == stateSubmitting || a.state == stateMoving {
			a.teardown()
		}
		a.err = msg.err.Error()
		return a, nil

	case clearToastMsg:
		a.toast = nil
		return a, nil

	case tea.KeyMsg:
		return a.handleKeys(msg)
	}
	return a, nil
}

func (a *App) handleNav(ev nav.Event) (tea.Model, tea.Cmd) {
	ref := nav.AlbumID(ev.URL)
	if ref == a.album {
		// Settled on the same album: in-page churn, not a navigation.
		return a, a.waitForNav()
	}
	a.teardown()
	a.album = ref
	if ref == "" {
		a.state = stateIdle
		return a, a.waitForNav()
	}
	a.state = stateResolving
	return a, tea.Batch(a.resolveCmd(ref), a.waitForNav())
}

// teardown discards all overlay state. Every navigation passes through here
// so that no edit buffer survives a route change.
func (a *App) teardown() {
	a.form = nil
	a.focus = 0
	a.tagBuf = ""
	a.notice = ""
	a.membership = api.MembershipUnset
	a.state = stateIdle
}

func (a *App) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.addressing {
		return a.handleAddressKeys(msg)
	}
	if isKey(msg, "ctrl+c") {
		return a, tea.Quit
	}
	if a.err != "" {
		a.err = ""
	}
	if isKey(msg, "ctrl+g") {
		a.addressing = true
		a.addressBuf = ""
		return a, nil
	}

	if a.state == stateEditing {
		return a.handleEditingKeys(msg)
	}

	switch {
	case isQuit(msg):
		return a, tea.Quit
	case isKey(msg, "g"):
		a.addressing = true
		a.addressBuf = ""
	case isKey(msg, "b"):
		return a, a.goBack()
	case isKey(msg, "o"):
		// Reopen the overlay for the current album route.
		if a.album != "" && a.state == stateIdle {
			a.state = stateResolving
			return a, a.resolveCmd(a.album)
		}
	}
	return a, nil
}

func (a *App) handleAddressKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case isBack(msg):
		a.addressing = false
		a.addressBuf = ""
	case isEnter(msg):
		target := strings.TrimSpace(a.addressBuf)
		a.addressing = false
		a.addressBuf = ""
		if target == "" {
			return a, nil
		}
		if !strings.HasPrefix(target, "http") && !strings.HasPrefix(target, "/") {
			// A bare reference is shorthand for its album route.
			target = "https://open.spotify.com/album/" + target
		}
		a.visited = append(a.visited, a.location.Current())
		a.history.Push(target)
	case isKey(msg, "backspace"):
		if len(a.addressBuf) > 0 {
			a.addressBuf = a.addressBuf[:len(a.addressBuf)-1]
		}
	default:
		ch := msg.String()
		if len(ch) == 1 {
			a.addressBuf += ch
		}
	}
	return a, nil
}

// goBack replays a back-button traversal: the location moves first, then the
// pop signal fires.
func (a *App) goBack() tea.Cmd {
	if len(a.visited) == 0 {
		return a.setToast("info", "Nothing to go back to.")
	}
	last := a.visited[len(a.visited)-1]
	a.visited = a.visited[:len(a.visited)-1]
	a.location.Restore(last)
	a.watcher.HandlePop()
	return nil
}

func (a *App) handleEditingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.form == nil {
		a.state = stateIdle
		return a, nil
	}
	a.notice = ""

	switch {
	case isBack(msg):
		a.teardown()
		return a, nil
	case isUp(msg):
		a.commitTag()
		if a.focus > 0 {
			a.focus--
		}
		return a, nil
	case isDown(msg):
		a.commitTag()
		if a.focus < len(a.form.Fields)-1 {
			a.focus++
		}
		return a, nil
	case isKey(msg, "ctrl+s"):
		return a.startSubmit()
	case isKey(msg, "ctrl+t"):
		return a.startMove()
	}

	f := &a.form.Fields[a.focus]
	switch f.Kind {
	case form.KindIdentifier:
		// Shown and submitted, never edited: the route owns this value.
	case form.KindEnum:
		switch {
		case isKey(msg, "left"):
			f.OptionIdx = (f.OptionIdx - 1 + len(f.Options)) % len(f.Options)
		case isKey(msg, "right"):
			f.OptionIdx = (f.OptionIdx + 1) % len(f.Options)
		}
	case form.KindTagList:
		switch {
		case isEnter(msg), isKey(msg, ","):
			a.commitTag()
		case isKey(msg, "backspace"):
			if len(a.tagBuf) > 0 {
				a.tagBuf = a.tagBuf[:len(a.tagBuf)-1]
			} else {
				f.Tags.RemoveLast()
			}
		default:
			ch := msg.String()
			if len(ch) == 1 && ch != "," {
				a.tagBuf += ch
			}
		}
	case form.KindDate:
		switch {
		case isKey(msg, "backspace"):
			if len(f.Value) > 0 {
				f.Value = f.Value[:len(f.Value)-1]
			}
		default:
			ch := msg.String()
			if len(ch) == 1 && (ch == "-" || (ch >= "0" && ch <= "9")) {
				f.Value += ch
			}
		}
	default:
		switch {
		case isKey(msg, "backspace"):
			if len(f.Value) > 0 {
				f.Value = f.Value[:len(f.Value)-1]
			}
		default:
			ch := msg.String()
			if len(ch) == 1 {
				f.Value += ch
			}
		}
	}
	return a, nil
}

func (a *App) commitTag() {
	buf := strings.TrimSpace(a.tagBuf)
	a.tagBuf = ""
	if buf == "" || a.form == nil {
		return
	}
	f := &a.form.Fields[a.focus]
	if f.Kind == form.KindTagList {
		f.Tags.Append(buf)
	}
}

func (a *App) startSubmit() (tea.Model, tea.Cmd) {
	a.commitTag()
	payload := a.form.Serialize()
	album := a.album
	recordID := a.form.RecordID()
	a.state = stateSubmitting
	return a, func() tea.Msg {
		var status int
		var err error
		created := false
		if recordID == "" {
			status, err = a.catalog.CreateAlbum(payload)
			created = true
		} else {
			status, err = a.catalog.UpdateAlbum(recordID, payload)
		}
		if err != nil {
			return errMsg{err}
		}
		return submitDoneMsg{album: album, status: status, created: created}
	}
}

func (a *App) startMove() (tea.Model, tea.Cmd) {
	a.commitTag()
	origin := a.form.Origin()
	dest := a.form.Destination()
	recordID := a.form.RecordID()

	// Invalid moves are rejected here; the catalog never sees them.
	switch {
	case recordID == "" || origin == api.MembershipUnset:
		a.notice = "El álbum no está en el catálogo; guárdalo primero."
		return a, nil
	case dest == api.MembershipUnset:
		a.notice = "Elige una colección de destino."
		return a, nil
	case dest == origin:
		a.notice = "El álbum ya está en esa colección."
		return a, nil
	}

	album := a.album
	a.state = stateMoving
	return a, func() tea.Msg {
		status, err := a.catalog.MoveAlbum(origin, dest, recordID)
		if err != nil {
			return errMsg{err}
		}
		return moveDoneMsg{album: album, status: status, dest: dest}
	}
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}
