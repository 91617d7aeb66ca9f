package web

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/KirkDiggler/strain-screen/internal/entities"
	"github.com/KirkDiggler/strain-screen/internal/screen"
)

var funcMap = template.FuncMap{
	"join": strings.Join,
	"extraValue": func(v interface{}) string {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	},
}

// backControlView carries the two fixed offsets of the go-back control
type backControlView struct {
	RestOffset       int
	HoverOffset      int
	TransitionMillis int
}

func newBackControlView() backControlView {
	var back entities.BackControl
	rest := back.Offset()
	back.Enter()
	hover := back.Offset()

	return backControlView{
		RestOffset:       rest,
		HoverOffset:      hover,
		TransitionMillis: entities.BackTransitionMillis,
	}
}

// strainPage is the data the strain template renders. It is built from a
// snapshot only; View is read only when Loaded is true.
type strainPage struct {
	Title          string
	Params         entities.RouteParams
	RaceLabel      string
	Icon           string
	Loading        bool
	Loaded         bool
	Failed         bool
	View           *entities.StrainView
	ErrorCode      string
	ErrorMessage   string
	Retryable      bool
	RetryPath      string
	RefreshSeconds int
	Back           backControlView
}

func newStrainPage(snap screen.Snapshot, refreshSeconds int) strainPage {
	page := strainPage{
		Title:          snap.Params.Name,
		Params:         snap.Params,
		RaceLabel:      snap.Params.RaceLabel(),
		Icon:           snap.Params.Icon(),
		RetryPath:      strainPath(snap.Params) + "/retry",
		RefreshSeconds: refreshSeconds,
		Back:           newBackControlView(),
	}

	switch snap.Status {
	case screen.StatusLoaded:
		page.Loaded = snap.View != nil
		page.Loading = snap.View == nil
		page.View = snap.View
	case screen.StatusFailed:
		page.Failed = true
		page.ErrorCode = snap.ErrorCode.String()
		page.ErrorMessage = snap.ErrorMessage
		page.Retryable = snap.ErrorCode.Retryable()
	default:
		page.Loading = true
	}

	return page
}

type indexPage struct {
	Races   []entities.Race
	Message string
}

// strainPath builds the strain screen URL for params
func strainPath(p entities.RouteParams) string {
	return "/strain/" + url.PathEscape(p.Race) + "/" + url.PathEscape(p.ID) + "/" + url.PathEscape(p.Name)
}
