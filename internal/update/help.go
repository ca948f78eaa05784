package update

import (
	"fmt"

	"focusgrid/internal/views"
)

const helpDocs = `# focusgrid

A marathon day is a list of blocks. Scheduled blocks run on the wall
clock and flip between work and break on their own. Manual blocks are
started by hand from the Focus view.

Hard mode repeats end-of-session alarms every few seconds until they
are acknowledged with ` + "`a`" + `.
`

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	m.docsViewport.SetContent(views.RenderMarkdown(helpDocs))
	return "\n" + views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    m.viewBindings(),
		DocsView:    m.docsViewport.View(),
	})
}

func (m Model) renderDocsView() string {
	m.docsViewport.SetContent(views.RenderMarkdown(helpDocs))
	return "docs:\n" + m.docsViewport.View()
}

func (m Model) viewBindings() []string {
	global := []string{
		"1-6 switch view",
		"/ command palette",
		"a acknowledge alarm",
		"? toggle help",
		"q quit",
	}
	switch m.CurrentView {
	case ViewToday, ViewTomorrow:
		return append(global,
			"j/k move cursor",
			"x toggle block done",
			"s record skipped session",
			"D remove block",
			"R reflection editor (today)",
		)
	case ViewArchive:
		return append(global, "j/k move through archived days")
	case ViewFocus:
		return append(global,
			"space start/stop manual session",
			"r reset manual session",
		)
	case ViewSettings:
		return append(global,
			"h/m/t/v toggle modes",
			"j/k + enter toggle alarms",
		)
	}
	return global
}

func formatDuration(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSec/60, totalSec%60)
}
