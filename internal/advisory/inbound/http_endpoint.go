package inbound

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dailyvegies/api/internal/advisory/usecase"
	"github.com/dailyvegies/api/internal/pkg/goerror"
	"github.com/dailyvegies/api/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for farming advisory proxies.
type HTTPEndpoint struct {
	uc uc
}

// Weather endpoint.
//
// @Summary		Weather forecast
// @Description	Proxies the 5-day forecast for a coordinate, metric units.
// @Tags		advisory
// @Produce		json
// @Param		lat	query	number	true	"Latitude"
// @Param		lon	query	number	true	"Longitude"
// @Success		200	{object}	WeatherResponse
// @Router		/api/v1/advisory/weather [get]
func (h *HTTPEndpoint) Weather(r *router.Request) (any, error) {
	lat, err := r.GetQueryFloat64("lat")
	if err != nil {
		return nil, err
	}

	lon, err := r.GetQueryFloat64("lon")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Weather(r.Context(), usecase.WeatherInput{Lat: lat, Lon: lon})
	if err != nil {
		return nil, err
	}

	return newWeatherResponse(resp.Forecast), nil
}

// NDVIImage endpoint.
//
// @Summary		NDVI satellite image
// @Description	Renders a vegetation-index PNG around a coordinate.
// @Tags		advisory
// @Produce		png
// @Param		lat	query	number	true	"Latitude"
// @Param		lon	query	number	true	"Longitude"
// @Success		200	{file}	binary
// @Router		/api/v1/advisory/ndvi [get]
func (h *HTTPEndpoint) NDVIImage() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r := &router.Request{Request: req}

		lat, err := r.GetQueryFloat64("lat")
		if err != nil {
			writeRawError(w, err)
			return
		}

		lon, err := r.GetQueryFloat64("lon")
		if err != nil {
			writeRawError(w, err)
			return
		}

		resp, err := h.uc.NDVI(req.Context(), usecase.NDVIInput{Lat: lat, Lon: lon})
		if err != nil {
			writeRawError(w, err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(resp.Image)
	})
}

// Guide endpoint.
//
// @Summary		Crop guidance
// @Description	Asks the generative model for crop-specific growing advice.
// @Tags		advisory
// @Accept		json
// @Produce		json
// @Param		payload	body	GuideRequest	true	"Guide payload"
// @Success		200	{object}	GuideResponse
// @Router		/api/v1/advisory/guide [post]
func (h *HTTPEndpoint) Guide(r *router.Request) (any, error) {
	var req GuideRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Guide(r.Context(), usecase.GuideInput{
		Crop:     req.Crop,
		Question: req.Question,
		Location: req.Location,
	})
	if err != nil {
		return nil, err
	}

	return GuideResponse{Answer: resp.Answer}, nil
}

// Geocode endpoint.
//
// @Summary		Geocode address
// @Description	Resolves a free-form address into a coordinate.
// @Tags		advisory
// @Produce		json
// @Param		q	query	string	true	"Address query"
// @Success		200	{object}	GeocodeResponse
// @Router		/api/v1/advisory/geocode [get]
func (h *HTTPEndpoint) Geocode(r *router.Request) (any, error) {
	resp, err := h.uc.Geocode(r.Context(), usecase.GeocodeInput{Query: r.GetQuery("q")})
	if err != nil {
		return nil, err
	}

	return GeocodeResponse{
		Name: resp.Place.Name,
		Lat:  resp.Place.Lat,
		Lon:  resp.Place.Lon,
	}, nil
}

// writeRawError encodes a failure on a raw (non-enveloped) endpoint.
func writeRawError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var ge *goerror.Error
	if errors.As(err, &ge) {
		status = ge.StatusCode()
		message = ge.Msg()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
