package ui

import (
	"fmt"
	"io"
	"strings"

	"weather-lookup/models"
	"weather-lookup/weathercode"
)

// Renderer цель отрисовки. Вызывается только из UI потока.
type Renderer interface {
	// Status заменяет строку статуса
	Status(text string)
	// Warn локальное предупреждение, например пустой ввод
	Warn(text string)
	// Error уведомление об ошибке поиска
	Error(title, text string)
	// Weather полностью заменяет блоки текущей погоды и прогноза
	Weather(loc models.ResolvedLocation, cur models.CurrentConditions, daily models.DailyForecast)
}

// TextRenderer рисует в терминал
type TextRenderer struct {
	w io.Writer
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) Status(text string) {
	fmt.Fprintf(r.w, "· %s\n", text)
}

func (r *TextRenderer) Warn(text string) {
	fmt.Fprintf(r.w, "⚠ oops: %s\n", text)
}

func (r *TextRenderer) Error(title, text string) {
	fmt.Fprintf(r.w, "✗ %s: %s\n", title, text)
}

func (r *TextRenderer) Weather(loc models.ResolvedLocation, cur models.CurrentConditions, daily models.DailyForecast) {
	fmt.Fprint(r.w, FormatWeather(loc, cur, daily))
}

// FormatWeather текстовое представление текущей погоды и прогноза
func FormatWeather(loc models.ResolvedLocation, cur models.CurrentConditions, daily models.DailyForecast) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🌤️  %s\n", loc.DisplayName)
	b.WriteString(strings.Repeat("=", 40) + "\n")
	fmt.Fprintf(&b, "%g°C  %s\n", cur.TemperatureC, weathercode.Describe(cur.WeatherCode))
	fmt.Fprintf(&b, "Humidity: %g%%   Wind: %g km/h\n", cur.HumidityPercent, cur.WindSpeedKmh)

	if len(daily) > 0 {
		fmt.Fprintf(&b, "\n%d-Day Forecast\n", len(daily))
		b.WriteString(strings.Repeat("-", 40) + "\n")
		for _, day := range daily {
			fmt.Fprintf(&b, "%-10s %-14s ↑%g° ↓%g°  💧 %gmm\n",
				day.Date.Format("Mon Jan 02"),
				weathercode.Describe(day.WeatherCode),
				day.TempMaxC, day.TempMinC, day.PrecipitationMm)
		}
	}
	return b.String()
}
