package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dailyvegies/api/internal/advisory/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
	"github.com/dailyvegies/api/internal/pkg/instrument"
	"github.com/dailyvegies/api/internal/pkg/validator"
)

type fakeWeather struct {
	forecast *entity.Forecast
	err      error
}

func (c *fakeWeather) Forecast(context.Context, float64, float64) (*entity.Forecast, error) {
	return c.forecast, c.err
}

type fakeSatellite struct {
	image []byte
	err   error
}

func (c *fakeSatellite) NDVI(context.Context, float64, float64) ([]byte, error) {
	return c.image, c.err
}

type fakeGeocode struct {
	place *entity.Place
	err   error
}

func (c *fakeGeocode) Search(context.Context, string) (*entity.Place, error) {
	return c.place, c.err
}

type fakeGuide struct {
	answer string
	err    error

	system string
	prompt string
}

func (c *fakeGuide) Ask(_ context.Context, system, prompt string) (string, error) {
	c.system = system
	c.prompt = prompt

	return c.answer, c.err
}

type fixture struct {
	uc        *Usecase
	weather   *fakeWeather
	satellite *fakeSatellite
	geocode   *fakeGeocode
	guide     *fakeGuide
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	f := &fixture{
		weather:   &fakeWeather{},
		satellite: &fakeSatellite{},
		geocode:   &fakeGeocode{},
		guide:     &fakeGuide{},
	}

	f.uc = New(Dependency{
		Weather:    f.weather,
		Satellite:  f.satellite,
		Geocode:    f.geocode,
		Guide:      f.guide,
		Validator:  v,
		Instrument: instrument.NewNoop(),
	})

	return f
}

func assertCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	gerr, ok := err.(*goerror.Error)
	if !ok {
		t.Fatalf("expected *goerror.Error, got %T: %v", err, err)
	}
	if gerr.Code() != want {
		t.Fatalf("expected code %d, got %d (%s)", want, gerr.Code(), gerr.Msg())
	}
}

func TestWeather(t *testing.T) {
	t.Run("ReturnsTheForecast", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.weather.forecast = &entity.Forecast{
			City: "Bandung",
			Points: []entity.ForecastPoint{
				{At: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), Temp: 24.5, Humidity: 80, Condition: "light rain"},
			},
		}

		// Act
		out, err := f.uc.Weather(context.Background(), WeatherInput{Lat: -6.9, Lon: 107.6})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Forecast.City != "Bandung" {
			t.Fatalf("expected Bandung, got %s", out.Forecast.City)
		}
		if len(out.Forecast.Points) != 1 {
			t.Fatalf("expected 1 point, got %d", len(out.Forecast.Points))
		}
	})

	t.Run("InvalidCoordinate", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.Weather(context.Background(), WeatherInput{Lat: 99, Lon: 200})

		// Assert
		assertCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("UpstreamFailure", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.weather.err = errors.New("timeout")

		// Act
		_, err := f.uc.Weather(context.Background(), WeatherInput{Lat: -6.9, Lon: 107.6})

		// Assert
		if err == nil {
			t.Fatalf("expected an error")
		}
	})
}

func TestNDVI(t *testing.T) {
	t.Run("ReturnsTheImage", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.satellite.image = []byte{0x89, 'P', 'N', 'G'}

		// Act
		out, err := f.uc.NDVI(context.Background(), NDVIInput{Lat: -6.9, Lon: 107.6})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !bytes.Equal(out.Image, f.satellite.image) {
			t.Fatalf("expected the upstream bytes back")
		}
	})

	t.Run("InvalidCoordinate", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.NDVI(context.Background(), NDVIInput{Lat: -91, Lon: 0})

		// Assert
		assertCode(t, err, goerror.CodeInvalidInput)
	})
}

func TestGeocode(t *testing.T) {
	t.Run("ResolvesAPlace", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.geocode.place = &entity.Place{Name: "Bandung, West Java", Lat: -6.9, Lon: 107.6}

		// Act
		out, err := f.uc.Geocode(context.Background(), GeocodeInput{Query: "Bandung"})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Place.Name != "Bandung, West Java" {
			t.Fatalf("unexpected place %+v", out.Place)
		}
	})

	t.Run("NothingFound", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.geocode.err = goerror.ErrNotFound

		// Act
		_, err := f.uc.Geocode(context.Background(), GeocodeInput{Query: "xyzzy"})

		// Assert
		assertCode(t, err, goerror.CodeNotFound)
	})
}

func TestGuide(t *testing.T) {
	t.Run("BuildsThePromptFromTheInput", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.guide.answer = "Water deeply twice a week."

		// Act
		out, err := f.uc.Guide(context.Background(), GuideInput{
			Crop:     "tomato",
			Question: "How often should I water during the dry season?",
			Location: "Bandung",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Answer != "Water deeply twice a week." {
			t.Fatalf("unexpected answer %q", out.Answer)
		}
		want := "Crop: tomato\nLocation: Bandung\nQuestion: How often should I water during the dry season?"
		if f.guide.prompt != want {
			t.Fatalf("unexpected prompt %q", f.guide.prompt)
		}
		if f.guide.system == "" {
			t.Fatalf("expected a system prompt")
		}
	})

	t.Run("QuestionTooShort", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.Guide(context.Background(), GuideInput{Crop: "tomato", Question: "hi"})

		// Assert
		assertCode(t, err, goerror.CodeInvalidInput)
	})
}
