package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"weather-lookup/apperrors"
	"weather-lookup/logger"
	"weather-lookup/models"
)

type recordingRenderer struct {
	statuses []string
	warnings []string
	errors   []string
	weather  []string
}

func (r *recordingRenderer) Status(text string)       { r.statuses = append(r.statuses, text) }
func (r *recordingRenderer) Warn(text string)         { r.warnings = append(r.warnings, text) }
func (r *recordingRenderer) Error(title, text string) { r.errors = append(r.errors, title+": "+text) }
func (r *recordingRenderer) Weather(loc models.ResolvedLocation, cur models.CurrentConditions, daily models.DailyForecast) {
	r.weather = append(r.weather, loc.DisplayName)
}

// fakeSubmitter запоминает deliver, тест сам решает когда доставить
type fakeSubmitter struct {
	gen      uint64
	delivers map[uint64]func(models.LookupResult)
}

func (f *fakeSubmitter) Submit(raw string, deliver func(models.LookupResult)) (uint64, error) {
	if _, err := models.NewSearchQuery(raw); err != nil {
		return 0, err
	}
	f.gen++
	if f.delivers == nil {
		f.delivers = make(map[uint64]func(models.LookupResult))
	}
	f.delivers[f.gen] = deliver
	return f.gen, nil
}

func (f *fakeSubmitter) deliver(gen uint64, r models.LookupResult) {
	r.Generation = gen
	f.delivers[gen](r)
}

func TestPresenterBlankInputWarns(t *testing.T) {
	sub, rend := &fakeSubmitter{}, &recordingRenderer{}
	p := NewPresenter(sub, rend, logger.Discard())

	p.Search("   ")
	require.Equal(t, []string{"gotta type something"}, rend.warnings)
	require.Empty(t, rend.statuses)
	require.Zero(t, sub.gen)
	require.Zero(t, p.InFlight())
}

func TestPresenterSuccess(t *testing.T) {
	sub, rend := &fakeSubmitter{}, &recordingRenderer{}
	p := NewPresenter(sub, rend, logger.Discard())

	p.Search(" Paris ")
	require.Equal(t, []string{"looking up Paris..."}, rend.statuses)
	require.Equal(t, 1, p.InFlight())

	sub.deliver(1, models.Success(
		models.ResolvedLocation{DisplayName: "Paris, France"},
		models.CurrentConditions{TemperatureC: 15.2, WeatherCode: 2},
		nil,
	))
	require.Equal(t, []string{"Paris, France"}, rend.weather)
	require.Equal(t, "Paris, France • just now", rend.statuses[len(rend.statuses)-1])
	require.Empty(t, rend.errors)
	require.Zero(t, p.InFlight())
}

func TestPresenterNotFoundAndFailure(t *testing.T) {
	sub, rend := &fakeSubmitter{}, &recordingRenderer{}
	p := NewPresenter(sub, rend, logger.Discard())

	p.Search("Atlantis")
	sub.deliver(1, models.NotFound("Atlantis"))
	require.Equal(t, []string{"nah: can't find Atlantis"}, rend.errors)

	p.Search("Paris")
	sub.deliver(2, models.Failure(apperrors.Wrap(apperrors.CodeUpstreamFailure, "boom", nil).Error()))
	require.Equal(t, "rip: something died: boom", rend.errors[1])
	require.Empty(t, rend.weather)
}

func TestPresenterNewerResultClearsOlderPending(t *testing.T) {
	sub, rend := &fakeSubmitter{}, &recordingRenderer{}
	p := NewPresenter(sub, rend, logger.Discard())

	p.Search("Paris")
	p.Search("Berlin")
	require.Equal(t, 2, p.InFlight())

	sub.deliver(2, models.Success(models.ResolvedLocation{DisplayName: "Berlin, Germany"}, models.CurrentConditions{}, nil))
	require.Zero(t, p.InFlight())
	require.Equal(t, []string{"Berlin, Germany"}, rend.weather)
}

func TestPresenterCloseWaitsForPending(t *testing.T) {
	sub, rend := &fakeSubmitter{}, &recordingRenderer{}
	p := NewPresenter(sub, rend, logger.Discard())

	p.Search("Paris")
	p.Close()
	select {
	case <-p.Drained():
		t.Fatal("drained before the result arrived")
	default:
	}

	p.Search("Berlin")
	require.Equal(t, uint64(1), sub.gen)

	sub.deliver(1, models.NotFound("Paris"))
	select {
	case <-p.Drained():
	case <-time.After(time.Second):
		t.Fatal("not drained")
	}
	p.Close()
}

func TestFormatWeather(t *testing.T) {
	out := FormatWeather(
		models.ResolvedLocation{DisplayName: "Paris, France"},
		models.CurrentConditions{TemperatureC: 15.2, HumidityPercent: 60, WindSpeedKmh: 12.1, WeatherCode: 2},
		models.DailyForecast{
			{Date: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), WeatherCode: 61, TempMaxC: 16, TempMinC: 9, PrecipitationMm: 5.1},
			{Date: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), WeatherCode: 99, TempMaxC: 17, TempMinC: 10},
		},
	)

	require.Contains(t, out, "Paris, France")
	require.Contains(t, out, "15.2°C  Partly cloudy")
	require.Contains(t, out, "Humidity: 60%   Wind: 12.1 km/h")
	require.Contains(t, out, "2-Day Forecast")
	require.Contains(t, out, "Thu Oct 15")
	require.Contains(t, out, "Rain")
	require.Contains(t, out, "Code 99")
	require.Contains(t, out, "💧 5.1mm")
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextRenderer(&buf)

	r.Status("looking up Paris...")
	r.Warn("gotta type something")
	r.Error("nah", "can't find Atlantis")

	require.Equal(t, "· looking up Paris...\n⚠ oops: gotta type something\n✗ nah: can't find Atlantis\n", buf.String())
}
