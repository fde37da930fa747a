package source

import "lunch-radar/internal/domain/entity"

// DTO is the wire representation of a registered source.
type DTO struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	TargetURL   string `json:"target_url"`
	ParserKind  string `json:"parser_kind"`
	Active      bool   `json:"active"`
}

func toDTO(d entity.SourceDescriptor) DTO {
	return DTO{
		ID:          d.ID,
		DisplayName: d.DisplayName,
		TargetURL:   d.TargetURL,
		ParserKind:  d.ParserKind,
		Active:      d.Active,
	}
}
