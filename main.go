package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"weather-lookup/api"
	"weather-lookup/config"
	"weather-lookup/logger"
	"weather-lookup/lookup"
	"weather-lookup/models"
	"weather-lookup/providers"
	"weather-lookup/ui"
	"weather-lookup/weathercode"
)

var cfg *config.Config

func main() {
	// Загружаем конфигурацию
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	var rootCmd = &cobra.Command{
		Use:           "weather",
		Short:         "Погода по названию города",
		Long:          "Находит город через геокодер Open-Meteo и показывает текущую погоду и прогноз на неделю",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Интерактивный режим
	var searchCmd = &cobra.Command{
		Use:   "search",
		Short: "Интерактивный поиск: вводите города по одному на строку",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context())
		},
	}

	// Разовый запрос
	var getCmd = &cobra.Command{
		Use:   "get [город]",
		Short: "Получить погоду для города",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			return getWeatherCLI(cmd.Context(), args[0], output)
		},
	}
	getCmd.Flags().StringP("output", "o", "text", "Формат вывода (text, json)")

	// HTTP API
	var serverCmd = &cobra.Command{
		Use:   "server",
		Short: "Запуск HTTP сервера",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startServer(cmd.Context())
		},
	}

	// Таблица кодов погоды
	var codesCmd = &cobra.Command{
		Use:   "codes",
		Short: "Показать известные коды погоды",
		Run: func(cmd *cobra.Command, args []string) {
			showCodes()
		},
	}

	rootCmd.AddCommand(searchCmd, getCmd, serverCmd, codesCmd)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// newClients собирает геокодер и клиент прогноза с общим лимитом запросов
func newClients() (providers.LocationResolver, providers.ForecastFetcher) {
	geo := providers.NewGeocodingClient(cfg.GeocodingURL, cfg.HTTPTimeout)
	forecast := providers.NewForecastClient(cfg.ForecastURL, cfg.HTTPTimeout, cfg.ForecastDays)
	return providers.WithRateLimit(geo, forecast, cfg.RateLimitRPS, cfg.RateLimitBurst)
}

// runSearch интерактивный клиент
func runSearch(ctx context.Context) error {
	log := logger.New(os.Stderr, cfg.LogLevel, false)
	resolver, fetcher := newClients()

	loop := ui.NewLoop(64)
	pipeline := lookup.NewPipeline(resolver, fetcher, loop, log)
	renderer := ui.NewTextRenderer(os.Stdout)
	presenter := ui.NewPresenter(pipeline, renderer, log)

	renderer.Status("type a city and hit enter (quit to exit)")
	return ui.RunConsole(ctx, os.Stdin, loop, presenter)
}

// getWeatherCLI получает погоду через CLI
func getWeatherCLI(ctx context.Context, city, output string) error {
	log := logger.New(os.Stderr, cfg.LogLevel, false)

	query, err := models.NewSearchQuery(city)
	if err != nil {
		return err
	}

	resolver, fetcher := newClients()
	pipeline := lookup.NewPipeline(resolver, fetcher, nil, log)

	result := pipeline.Lookup(ctx, query)
	if err := result.Err(); err != nil {
		return err
	}

	if output == "json" {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	fmt.Print(ui.FormatWeather(*result.Location, *result.Current, result.Daily))
	return nil
}

// startServer запускает HTTP сервер
func startServer(ctx context.Context) error {
	log := logger.New(os.Stdout, cfg.LogLevel, true)
	resolver, fetcher := newClients()

	pipeline := lookup.NewPipeline(resolver, fetcher, nil, log)
	server := api.NewServer(":"+cfg.ServerPort, api.NewHandler(pipeline, log))

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", "port", cfg.ServerPort)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка при завершении работы сервера: %w", err)
	}
	log.Info("http server stopped")
	return nil
}

// showCodes печатает таблицу кодов погоды
func showCodes() {
	for _, code := range weathercode.Codes() {
		fmt.Printf("%3d  %s\n", code, weathercode.Describe(code))
	}
}
