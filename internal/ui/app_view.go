package ui

import (
	"fmt"
	"strings"

	"github.com/discana/companion/internal/api"
	"github.com/discana/companion/internal/form"
	"github.com/discana/companion/internal/ui/components"
)

func (a *App) View() string {
	header := HeaderStyle.Render("Discana") + "  " +
		MutedStyle.Render(components.SanitizeOneLine(a.location.Current()))

	var content string
	switch {
	case a.addressing:
		content = components.InputDialog("Ir a", a.addressBuf)
	case a.state == stateResolving:
		content = components.TitledBox("Álbum", MutedStyle.Render("Cargando..."), a.width)
	case a.form != nil:
		content = a.renderOverlay()
	default:
		content = a.renderIdle()
	}

	feedback := ""
	if a.err != "" {
		feedback = "\n\n" + components.ErrorBox("Error", a.err, a.width)
	} else if a.toast != nil {
		feedback = "\n\n" + a.renderToast()
	}

	hints := components.StatusBar(a.statusHints(), a.width)

	return fmt.Sprintf("%s\n\n%s%s\n\n%s", header, components.Indent(content, 1), feedback, hints)
}

func (a *App) renderIdle() string {
	if a.album != "" {
		body := components.InfoRow("Ruta", "/album/"+a.album) + "\n" +
			MutedStyle.Render("Pulsa o para abrir la ficha.")
		return components.TitledBox("Álbum", body, a.width)
	}
	return components.TitledBox("Discana",
		MutedStyle.Render("Navega a un álbum con g."), a.width)
}

func (a *App) renderOverlay() string {
	var b strings.Builder
	b.WriteString(a.membershipBadge())
	b.WriteString("\n\n")

	for i, f := range a.form.Fields {
		focused := i == a.focus
		label := fieldLabel(f.Name)
		if focused {
			b.WriteString(SelectedStyle.Render("> " + label + ":"))
		} else {
			b.WriteString(MutedStyle.Render("  " + label + ":"))
		}
		b.WriteString("\n")
		b.WriteString(NormalStyle.Render("  " + a.renderFieldValue(f, focused)))
		if i < len(a.form.Fields)-1 {
			b.WriteString("\n\n")
		}
	}

	if a.notice != "" {
		b.WriteString("\n\n" + WarningStyle.Render(a.notice))
	}
	switch a.state {
	case stateSubmitting:
		b.WriteString("\n\n" + MutedStyle.Render("Guardando..."))
	case stateMoving:
		b.WriteString("\n\n" + MutedStyle.Render("Moviendo..."))
	}

	return components.TitledBox("Ficha del álbum", b.String(), a.width)
}

func (a *App) membershipBadge() string {
	switch a.membership {
	case api.CollectionAlbums:
		return BadgeTrackedStyle.Render("En colección")
	case api.CollectionPendientes:
		return BadgePendingStyle.Render("Pendiente")
	default:
		return BadgeNewStyle.Render("Añadir")
	}
}

func (a *App) renderFieldValue(f form.Field, focused bool) string {
	switch f.Kind {
	case form.KindIdentifier:
		value := components.SanitizeOneLine(f.Value)
		if value == "" {
			return "-"
		}
		return MutedStyle.Render(value)
	case form.KindEnum:
		parts := make([]string, 0, len(f.Options))
		for i, opt := range f.Options {
			label := opt
			if label == "" {
				label = "-"
			}
			if i == f.OptionIdx {
				parts = append(parts, SelectedStyle.Render("("+label+")"))
			} else {
				parts = append(parts, MutedStyle.Render(label))
			}
		}
		return strings.Join(parts, " ")
	case form.KindTagList:
		chips := components.Chips(f.Tags.Values())
		if focused {
			if chips != "" {
				chips += " "
			}
			if a.tagBuf != "" {
				chips += components.SanitizeOneLine(a.tagBuf)
			}
			chips += AccentStyle.Render("█")
			return chips
		}
		if chips == "" {
			return "-"
		}
		return chips
	default:
		value := components.SanitizeOneLine(f.Value)
		if focused {
			return value + AccentStyle.Render("█")
		}
		if value == "" {
			return "-"
		}
		return value
	}
}

func (a *App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	title := "Info"
	switch a.toast.level {
	case "success":
		title = "Éxito"
	case "error":
		return components.ErrorBox("Error", a.toast.text, a.width)
	}
	return components.TitledBox(title, a.toast.text, a.width)
}

func (a *App) statusHints() []string {
	if a.addressing {
		return []string{
			components.Hint("enter", "Ir"),
			components.Hint("esc", "Cancelar"),
		}
	}
	switch a.state {
	case stateEditing, stateSubmitting, stateMoving:
		return []string{
			components.Hint("↑/↓", "Campo"),
			components.Hint("←/→", "Opción"),
			components.Hint("ctrl+s", "Guardar"),
			components.Hint("ctrl+t", "Mover"),
			components.Hint("ctrl+g", "Ir a"),
			components.Hint("esc", "Cerrar"),
		}
	}
	hints := []string{
		components.Hint("g", "Ir a"),
		components.Hint("b", "Atrás"),
	}
	if a.album != "" {
		hints = append(hints, components.Hint("o", "Abrir ficha"))
	}
	return append(hints, components.Hint("q", "Salir"))
}

func fieldLabel(name string) string {
	if name == api.KeyCollection {
		return "Colección"
	}
	return strings.ReplaceAll(name, "_", " ")
}
