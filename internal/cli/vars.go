package cli

import (
	"github.com/calebodette/docaudit/internal/observability"
	"github.com/calebodette/docaudit/internal/storage"
	"github.com/calebodette/docaudit/internal/validate"
)

// Service instances, set during app initialization in internal/app.go.
var (
	BasePath string

	Engine    validate.Engine
	Rules     validate.RuleSetLoader
	Artifacts storage.ArtifactStore
	Reports   storage.ReportStore

	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
	Notifier    observability.Notifier
)
