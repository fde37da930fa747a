package parser

import (
	"lunch-radar/internal/domain/entity"
)

// New builds the MenuParser for a validated descriptor, routing on parser
// kind. An unknown kind is a configuration error; the descriptor validator
// normally catches it before this point.
func New(d entity.SourceDescriptor, fetcher DocumentFetcher) (MenuParser, error) {
	switch d.ParserKind {
	case "", entity.ParserKindHTML:
		return NewHTMLMenuParser(d, fetcher), nil
	default:
		return nil, &entity.ConfigurationError{
			SourceID: d.ID,
			Reason:   "unknown parser_kind: " + d.ParserKind,
		}
	}
}
