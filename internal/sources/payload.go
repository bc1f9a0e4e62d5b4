package sources

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonesrussell/godeals/internal/domain"
)

// ErrUnknownPayloadShape indicates the payload matched no known shape.
var ErrUnknownPayloadShape = errors.New("payload matches no known shape")

// Payload is the decoded result of one source response.
type Payload struct {
	// Records are the candidate records carried by the response.
	Records []domain.CandidateRecord
	// BlobURL is set when the response is only a pointer to a further
	// artifact holding the records.
	BlobURL string
	// Breakdown carries per-sub-collector outcomes when the payload
	// exposes them.
	Breakdown []domain.SourceRun
}

// envelope covers every known object-shaped source response.
type envelope struct {
	Deals  []domain.CandidateRecord `json:"deals"`
	Items  []domain.CandidateRecord `json:"items"`
	Output *struct {
		Deals []domain.CandidateRecord `json:"deals"`
	} `json:"output"`
	Data *struct {
		Deals []domain.CandidateRecord `json:"deals"`
	} `json:"data"`
	BlobURL        string             `json:"blobUrl"`
	ScraperResults []domain.SourceRun `json:"scraperResults"`
}

// adapter decodes one known payload shape.
type adapter func(data []byte) (*Payload, error)

// adapters maps shape names to their decoder. Sources pin a shape in
// configuration; unknown-shape responses go through sniffPayload instead.
var adapters = map[string]adapter{
	ShapeTopLevelArray: decodeTopLevelArray,
	ShapeDeals:         decodeEnvelopeField(func(env *envelope) []domain.CandidateRecord { return env.Deals }),
	ShapeItems:         decodeEnvelopeField(func(env *envelope) []domain.CandidateRecord { return env.Items }),
	ShapeOutputDeals: decodeEnvelopeField(func(env *envelope) []domain.CandidateRecord {
		if env.Output == nil {
			return nil
		}
		return env.Output.Deals
	}),
	ShapeDataDeals: decodeEnvelopeField(func(env *envelope) []domain.CandidateRecord {
		if env.Data == nil {
			return nil
		}
		return env.Data.Deals
	}),
}

// Extract decodes a source response. A pinned shape selects its adapter;
// an empty shape falls back to best-effort sniffing across all known
// shapes.
func Extract(data []byte, shape string) (*Payload, error) {
	if shape == "" {
		return sniffPayload(data)
	}

	decode, ok := adapters[shape]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPayloadShape, shape)
	}
	return decode(data)
}

// decodeTopLevelArray decodes a bare CandidateRecord array.
func decodeTopLevelArray(data []byte) (*Payload, error) {
	var records []domain.CandidateRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode top-level array: %w", err)
	}
	return &Payload{Records: records}, nil
}

// decodeEnvelopeField builds an adapter extracting one envelope field.
func decodeEnvelopeField(pick func(env *envelope) []domain.CandidateRecord) adapter {
	return func(data []byte) (*Payload, error) {
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("failed to decode envelope: %w", err)
		}

		records := pick(&env)
		if records == nil && env.BlobURL == "" {
			return nil, ErrUnknownPayloadShape
		}
		return &Payload{
			Records:   records,
			BlobURL:   env.BlobURL,
			Breakdown: env.ScraperResults,
		}, nil
	}
}

// sniffPayload is the best-effort fallback for sources without a pinned
// shape: top-level array first, then each known envelope field, then a
// bare blobUrl pointer.
func sniffPayload(data []byte) (*Payload, error) {
	if payload, err := decodeTopLevelArray(data); err == nil {
		return payload, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownPayloadShape, err)
	}

	payload := &Payload{
		BlobURL:   env.BlobURL,
		Breakdown: env.ScraperResults,
	}
	switch {
	case env.Deals != nil:
		payload.Records = env.Deals
	case env.Items != nil:
		payload.Records = env.Items
	case env.Output != nil && env.Output.Deals != nil:
		payload.Records = env.Output.Deals
	case env.Data != nil && env.Data.Deals != nil:
		payload.Records = env.Data.Deals
	case env.BlobURL != "":
		// Pointer-only response; the fetcher follows it.
	default:
		return nil, ErrUnknownPayloadShape
	}

	return payload, nil
}
