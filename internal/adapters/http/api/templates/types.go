package templates

import (
	"github.com/okian/futvis/internal/domain/model"
	"github.com/okian/futvis/internal/domain/types"
)

// DashboardPageData is what the dashboard page renders from.
type DashboardPageData struct {
	Ready     bool
	Meta      types.Meta
	Window    model.TimeWindow
	HasVideo  bool
	AssetsURL string
}

// PanelCard describes one chart on the page.
type PanelCard struct {
	Panel       types.Panel
	Heading     string
	Description string
	Note        string
}
