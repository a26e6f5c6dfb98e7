package advisory

import (
	"net/http"

	"github.com/dailyvegies/api/internal/advisory/inbound"
	"github.com/dailyvegies/api/internal/advisory/outbound/ai"
	"github.com/dailyvegies/api/internal/advisory/outbound/nominatim"
	"github.com/dailyvegies/api/internal/advisory/outbound/openweather"
	"github.com/dailyvegies/api/internal/advisory/outbound/sentinel"
	"github.com/dailyvegies/api/internal/advisory/usecase"
	"github.com/dailyvegies/api/internal/pkg/config"
	"github.com/dailyvegies/api/internal/pkg/instrument"
	"github.com/dailyvegies/api/internal/pkg/router"
	"github.com/dailyvegies/api/internal/pkg/validator"
)

type Dependency struct {
	Router     *router.Router             `validate:"required"`
	HTTPClient *http.Client               `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		Weather: openweather.NewClient(
			dep.HTTPClient,
			cfgString(dep.Config, "advisory.openweather_base_url", "https://api.openweathermap.org"),
			dep.Config.GetString("advisory.openweather_api_key"),
			dep.Instrument,
		),
		Satellite: sentinel.NewClient(
			dep.HTTPClient,
			cfgString(dep.Config, "advisory.sentinel_base_url", "https://services.sentinel-hub.com"),
			dep.Config.GetString("advisory.sentinel_instance_id"),
			dep.Instrument,
		),
		Geocode: nominatim.NewClient(
			dep.HTTPClient,
			cfgString(dep.Config, "advisory.nominatim_base_url", "https://nominatim.openstreetmap.org"),
			dep.Instrument,
		),
		Guide: ai.NewClient(
			dep.Config.GetString("advisory.ai_api_key"),
			dep.Config.GetString("advisory.ai_base_url"),
			cfgString(dep.Config, "advisory.ai_model", "gpt-4o-mini"),
			dep.Instrument,
		),
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

func cfgString(cfg config.Config, key, fallback string) string {
	if v := cfg.GetString(key); v != "" {
		return v
	}

	return fallback
}
