package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/discana/companion/internal/api"
)

func TestViewIdleShowsPrompt(t *testing.T) {
	app := testApp(t, nil, &stubResolver{})
	out := app.View()
	assert.Contains(t, out, "Discana")
	assert.Contains(t, out, "Navega a un álbum")
}

func TestViewResolvingShowsLoading(t *testing.T) {
	app := testApp(t, nil, &stubResolver{})
	app.Update(albumNav("abc123"))
	assert.Contains(t, app.View(), "Cargando")
}

func TestViewBadgeReflectsMembership(t *testing.T) {
	app := testApp(t, nil, &stubResolver{})
	openOverlay(t, app, "abc123", api.CollectionAlbums, api.Record{
		"_id":        "64fa12",
		"collection": "albums",
		"title":      "OK Computer",
	})
	out := app.View()
	assert.Contains(t, out, "En colección")
	assert.Contains(t, out, "OK Computer")

	app.membership = api.CollectionPendientes
	assert.Contains(t, app.View(), "Pendiente")

	app.membership = api.MembershipUnset
	assert.Contains(t, app.View(), "Añadir")
}

func TestViewRendersTagChips(t *testing.T) {
	app := testApp(t, nil, &stubResolver{})
	openOverlay(t, app, "abc123", api.MembershipUnset, api.Record{
		"title":     "Kid A",
		"subgenres": "idm,glitch",
	})
	out := app.View()
	assert.Contains(t, out, "[idm]")
	assert.Contains(t, out, "[glitch]")
}

func TestViewShowsNoticeAndProgress(t *testing.T) {
	app := testApp(t, nil, &stubResolver{})
	openOverlay(t, app, "abc123", api.CollectionAlbums, api.Record{
		"_id":        "64fa12",
		"collection": "albums",
	})

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	require.NotEmpty(t, app.notice)
	assert.Contains(t, app.View(), app.notice)

	app.notice = ""
	app.state = stateSubmitting
	assert.Contains(t, app.View(), "Guardando")
	app.state = stateMoving
	assert.Contains(t, app.View(), "Moviendo")
}

func TestViewAddressDialog(t *testing.T) {
	app := testApp(t, nil, &stubResolver{})
	app.Update(keyRunes("g"))
	app.Update(keyRunes("a"))
	out := app.View()
	assert.Contains(t, out, "Ir a")
	assert.Contains(t, out, "> a")
}

func TestViewEditingHints(t *testing.T) {
	app := testApp(t, nil, &stubResolver{})
	openOverlay(t, app, "abc123", api.MembershipUnset, nil)
	out := app.View()
	assert.Contains(t, out, "ctrl+s")
	assert.Contains(t, out, "Guardar")
	assert.Contains(t, out, "ctrl+t")
	assert.Contains(t, out, "Mover")
}

func TestViewToastLevels(t *testing.T) {
	app := testApp(t, nil, &stubResolver{})
	app.setToast("success", "Álbum guardado (201).")
	assert.Contains(t, app.View(), "Éxito")

	app.setToast("error", "HTTP 500")
	assert.Contains(t, app.View(), "HTTP 500")

	app.Update(clearToastMsg{})
	assert.Nil(t, app.toast)
}
