package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jaydubbbbb/train-departures-backend/pkg/board"
	"github.com/jaydubbbbb/train-departures-backend/pkg/config"
	"github.com/jaydubbbbb/train-departures-backend/pkg/metrics"
	"github.com/jaydubbbbb/train-departures-backend/pkg/transperth"
)

// Server exposes the departure board as a small JSON API.
type Server struct {
	app       *fiber.App
	cfg       *config.AppConfig
	source    transperth.Source
	collector *metrics.Collector
	location  *time.Location
}

// departuresResponse is the JSON body of /api/departures.
type departuresResponse struct {
	Success     bool              `json:"success"`
	Perth       []board.Departure `json:"perth"`
	South       []board.Departure `json:"south"`
	LastUpdated string            `json:"last_updated"`
}

// New wires the web app together. The source and collector are injected so
// tests can swap in stubs.
func New(cfg *config.AppConfig, source transperth.Source, collector *metrics.Collector) (*Server, error) {
	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		source:    source,
		collector: collector,
		location:  location,
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(NewLogger())

	app.Get("/", s.index)
	app.Get("/api/departures", s.getDepartures)
	app.Get("/api/health", s.getHealth)

	s.app = app
	return s, nil
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving the API on the given address.
func (s *Server) Listen(addr string) error {
	log.Info().Str("addr", addr).Str("station", s.cfg.StationName).Msg("Departures API listening")
	return s.app.Listen(addr)
}

func (s *Server) getDepartures(c *fiber.Ctx) error {
	s.collector.RequestsTotal.WithLabelValues("departures").Inc()

	fetchStart := time.Now()
	s.collector.FetchesTotal.Inc()

	raws, err := s.source.FetchDepartures()
	s.collector.FetchDuration.Observe(time.Since(fetchStart).Seconds())

	if err != nil {
		s.collector.FetchErrors.Inc()
		log.Error().Err(err).Msg("Upstream departure fetch failed")

		c.Status(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	now := time.Now().In(s.location)

	directions := make(map[string]board.Direction, len(s.cfg.PlatformDirections))
	for platform, direction := range s.cfg.PlatformDirections {
		directions[platform] = board.Direction(direction)
	}

	result, drops := board.Build(raws, now, board.Options{
		HubToken:           s.cfg.HubToken,
		PlatformDirections: directions,
		Limit:              s.cfg.Limit,
	})

	for _, drop := range drops {
		s.collector.DroppedRecords.WithLabelValues(string(drop.Reason)).Inc()
		log.Debug().
			Str("reason", string(drop.Reason)).
			Str("destination", drop.Raw.Destination).
			Str("time_display", drop.Raw.TimeDisplay).
			Msg("Dropped departure record")
	}

	s.collector.BoardSize.WithLabelValues(string(board.DirectionCitybound)).Set(float64(len(result.Citybound)))
	s.collector.BoardSize.WithLabelValues(string(board.DirectionOutbound)).Set(float64(len(result.Outbound)))

	return c.JSON(departuresResponse{
		Success:     true,
		Perth:       result.Citybound,
		South:       result.Outbound,
		LastUpdated: now.Format(time.RFC3339),
	})
}

func (s *Server) getHealth(c *fiber.Ctx) error {
	s.collector.RequestsTotal.WithLabelValues("health").Inc()

	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().In(s.location).Format(time.RFC3339),
	})
}

func (s *Server) index(c *fiber.Ctx) error {
	c.Type("html")
	return c.SendString(`<html>
	<head><title>` + s.cfg.StationName + ` Departure API</title></head>
	<body style="font-family: Arial; padding: 40px; max-width: 600px; margin: 0 auto;">
		<h1>` + s.cfg.StationName + ` Departure API</h1>
		<p>Live Transperth train departures, split into Perth-bound and South-bound lists.</p>
		<h2>Endpoints:</h2>
		<ul>
			<li><code>GET /api/departures</code> - Get all departures</li>
			<li><code>GET /api/health</code> - Health check</li>
		</ul>
	</body>
</html>`)
}
