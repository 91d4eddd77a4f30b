package models

import "codeberg.org/pixelgate/server/internal/catalog"

// Model describes one text-to-image model the gateway forwards to
type Model = catalog.Model

type Response struct {
	Success bool    `json:"success"`
	Models  []Model `json:"models"`
}
