package models

// DashboardSummary is the server-derived snapshot of aggregate counts.
// It is read-only and recomputed on each fetch.
type DashboardSummary struct {
	TotalAssets       int            `json:"total_assets"`
	AvailableAssets   int            `json:"available_assets"`
	CheckedOutAssets  int            `json:"checked_out_assets"`
	MaintenanceAssets int            `json:"maintenance_assets"`
	RetiredAssets     int            `json:"retired_assets"`
	AssetsByCategory  map[string]int `json:"assets_by_category,omitempty"`
}
