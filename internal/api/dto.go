package api

import "github.com/starford/vaultstats/internal/models"

// VaultStatistics is the statistics snapshot response (aliased from the domain layer).
type VaultStatistics = models.VaultStatistics

// HeatmapData is the heatmap response (aliased from the domain layer).
type HeatmapData = models.HeatmapData

// TopTagsResponse wraps the most used tags.
type TopTagsResponse struct {
	Tags      []models.TagInfo `json:"tags" validate:"required"`
	TotalTags int              `json:"totalTags" example:"128" validate:"required"`
}

// HubNotesResponse wraps the most linked notes.
type HubNotesResponse struct {
	Notes []models.NoteInfo `json:"notes" validate:"required"`
}
