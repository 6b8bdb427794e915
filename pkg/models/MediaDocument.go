package models

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed media-schema.json
var mediaDocumentSchema []byte

/*
MediaDocument is the shape of the site's backing JSON document: the full
list of photographers plus every media entry across all of them.
*/
type MediaDocument struct {
	Photographers []Photographer `json:"photographers"`
	Media         []Media        `json:"media"`
}

// ParseMediaDocument validates raw document bytes against the embedded
// schema and decodes them. The schema enforces the image/video
// exclusivity and the non-negative like count so malformed entries never
// make it into memory.
func ParseMediaDocument(b []byte) (MediaDocument, error) {
	var (
		err error
		doc MediaDocument
	)

	if err = validateMediaDocumentBytes(b); err != nil {
		return doc, err
	}

	if err = json.Unmarshal(b, &doc); err != nil {
		return doc, fmt.Errorf("error parsing media document: %w", err)
	}

	return doc, nil
}

func validateMediaDocumentBytes(b []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(mediaDocumentSchema)
	documentLoader := gojsonschema.NewBytesLoader(b)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)

	if err != nil {
		return fmt.Errorf("error running schema validation on media document: %w", err)
	}

	if !result.Valid() {
		problems := []string{}

		for _, resultError := range result.Errors() {
			problems = append(problems, resultError.String())
		}

		return fmt.Errorf("media document failed schema validation: %s", strings.Join(problems, "; "))
	}

	return nil
}

func (d MediaDocument) FindMedia(mediaID int) (*Media, error) {
	for index := range d.Media {
		if d.Media[index].ID == mediaID {
			return &d.Media[index], nil
		}
	}

	return nil, fmt.Errorf("media %d: %w", mediaID, ErrMediaNotFound)
}

func (d MediaDocument) FindPhotographer(photographerID int) (*Photographer, error) {
	for index := range d.Photographers {
		if d.Photographers[index].ID == photographerID {
			return &d.Photographers[index], nil
		}
	}

	return nil, fmt.Errorf("photographer %d: %w", photographerID, ErrPhotographerNotFound)
}

// MediaFor returns this photographer's media in document order.
func (d MediaDocument) MediaFor(photographerID int) []Media {
	result := []Media{}

	for _, m := range d.Media {
		if m.PhotographerID == photographerID {
			result = append(result, m)
		}
	}

	return result
}
