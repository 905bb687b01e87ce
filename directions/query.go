package directions

import (
	"fmt"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/theoremus-urban-solutions/transit-directions/utils"
)

// Travel modes accepted in a Query.
const (
	ModeDriving   = "driving"
	ModeWalking   = "walking"
	ModeBicycling = "bicycling"
	ModeTransit   = "transit"
)

var validate = validator.New()

// Query is one directions request. Origin and Destination accept anything the
// service accepts, typically "place_id:..." identifiers.
type Query struct {
	Origin           string `validate:"required"`
	Destination      string `validate:"required"`
	Mode             string `validate:"required,oneof=driving walking bicycling transit"`
	WantAlternatives bool
	Language         string `validate:"omitempty,bcp47_language_tag"`
	DepartureTime    time.Time
}

// Validate checks the query before any request is made.
func (q Query) Validate() error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return nil
}

// Values builds the URL parameters. alternatives is omitted when false.
func (q Query) Values(apiKey string) url.Values {
	v := url.Values{}
	v.Set("origin", q.Origin)
	v.Set("destination", q.Destination)
	v.Set("mode", q.Mode)
	if q.WantAlternatives {
		v.Set("alternatives", "true")
	}
	if q.Language != "" {
		v.Set("language", q.Language)
	}
	if dt := utils.UnixSecondsParam(q.DepartureTime); dt != "" {
		v.Set("departure_time", dt)
	}
	if apiKey != "" {
		v.Set("key", apiKey)
	}
	return v
}
