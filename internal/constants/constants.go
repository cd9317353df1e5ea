package constants

// Pagination
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Request tracing
const (
	ContextKeyRequestID = "request_id"
	HeaderRequestID     = "X-Request-ID"
)

// Catalog workbook layout. The defaults match the sheet maintained by the PMO.
const (
	DefaultCatalogSheet       = "Catálogo de Tarefas"
	DefaultCatalogNameColumn  = "Tarefa (Português)"
	DefaultCatalogDescColumn  = "Categoria"
	DefaultCatalogClassColumn = "Classificação"
	DefaultCatalogHoursColumn = "Estimativa (Horas)"
	CatalogManagementClass    = "Gestão"
)

// AI planning
const (
	MaxSuggestedStages    = 12
	MaxProjectBriefLength = 4000
)
