package config

// DefaultDirectionsURL is the Google Directions web service endpoint
const DefaultDirectionsURL = "https://maps.googleapis.com/maps/api/directions/json"

// APIKeyEnv names the environment variable that overrides credentials.apiKey
const APIKeyEnv = "GOOGLE_MAPS_API_KEY"

// CredentialsConfig holds the key shared by the map surface and the directions API
type CredentialsConfig struct {
	APIKey string `yaml:"apiKey"`
}

// DirectionsConfig contains directions web service configuration
type DirectionsConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"omitempty,url"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
	Language  string `yaml:"language" validate:"omitempty,bcp47_language_tag"`
}

// CameraConfig is the initial camera of the map surface
type CameraConfig struct {
	Lat  float64 `yaml:"lat" validate:"gte=-90,lte=90"`
	Lng  float64 `yaml:"lng" validate:"gte=-180,lte=180"`
	Zoom float64 `yaml:"zoom" validate:"gte=0,lte=22"`
}

// MapConfig describes the map surface the route is drawn on
type MapConfig struct {
	Camera        CameraConfig `yaml:"camera"`
	DisplayWidth  float64      `yaml:"displayWidth" validate:"gte=0"`
	DisplayHeight float64      `yaml:"displayHeight" validate:"gte=0"`
}

// QueryConfig is the default directions query
type QueryConfig struct {
	Origin       string `yaml:"origin"`
	Destination  string `yaml:"destination"`
	Mode         string `yaml:"mode" validate:"omitempty,oneof=driving walking bicycling transit"`
	Alternatives bool   `yaml:"alternatives"`
	RouteIndex   int    `yaml:"routeIndex" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Credentials CredentialsConfig `yaml:"credentials"`
	Directions  DirectionsConfig  `yaml:"directions"`
	Map         MapConfig         `yaml:"map"`
	Query       QueryConfig       `yaml:"query"`
	Places      map[string]string `yaml:"places" validate:"dive,keys,required,endkeys,required"`
}

// Default returns the configuration used when no file overrides a field.
// The camera and places match the New York transit sample.
func Default() AppConfig {
	return AppConfig{
		Directions: DirectionsConfig{
			BaseURL: DefaultDirectionsURL,
		},
		Map: MapConfig{
			Camera: CameraConfig{
				Lat:  40.670884415976886,
				Lng:  -73.958119273615,
				Zoom: 14,
			},
			DisplayWidth:  390,
			DisplayHeight: 844,
		},
		Query: QueryConfig{
			Origin:       "MedgarEversCollege",
			Destination:  "TimesSquare",
			Mode:         "transit",
			Alternatives: true,
		},
		Places: map[string]string{
			"MedgarEversCollege": "place_id:ChIJzVCft3ZbwokRlCL7B6LA8U4",
			"TimesSquare":        "place_id:ChIJmQJIxlVYwokRLgeuocVOGVU",
			"BarclaysCenter":     "place_id:ChIJo3lEaa5bwokRnuZS2oWTlLk",
		},
	}
}

// ResolvePlace maps a configured place name to its identifier.
// Unknown names are returned unchanged so raw "place_id:..." values and
// addresses work too.
func (c AppConfig) ResolvePlace(name string) string {
	if id, ok := c.Places[name]; ok {
		return id
	}
	return name
}
