package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/jamkick/jamkick/pkg/aggregator"
	"github.com/jamkick/jamkick/pkg/history"
)

type handler struct {
	aggregator aggregator.Service
	log        logrus.FieldLogger
}

func newHandler(aggregatorService aggregator.Service, log logrus.FieldLogger) *handler {
	return &handler{
		aggregator: aggregatorService,
		log:        log,
	}
}

// showsResponse is the results payload: date-grouped events plus a
// completion flag, with domain errors rendered in-band.
type showsResponse struct {
	Events []aggregator.DateGroup `json:"events"`
	Done   bool                   `json:"done"`
	Error  string                 `json:"error,omitempty"`
}

// getShows handles GET /api/v1/shows
func (h *handler) getShows(c fiber.Ctx) error {
	username := c.Query("username")
	location := c.Query("location")

	if username == "" || location == "" {
		return fiber.NewError(fiber.StatusBadRequest, "username and location are required")
	}

	var pageNum *int

	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "page must be a positive integer")
		}

		pageNum = &n
	}

	result, err := h.aggregator.Aggregate(c.Context(), username, location, pageNum)
	if err != nil {
		var (
			unknownLocation *aggregator.UnknownLocationError
			unknownUser     *history.UnknownUserError
		)

		// Domain errors render in-band: empty grouping, done, and the
		// message for the user.
		if errors.As(err, &unknownLocation) || errors.As(err, &unknownUser) {
			return c.JSON(showsResponse{Events: []aggregator.DateGroup{}, Done: true, Error: err.Error()})
		}

		h.log.WithError(err).WithFields(logrus.Fields{
			"username": username,
			"location": location,
		}).Error("Aggregation failed")

		return fiber.NewError(fiber.StatusBadGateway, "upstream services unavailable")
	}

	return c.JSON(showsResponse{Events: result.Groups, Done: result.Done})
}

// healthz handles GET /healthz
func (h *handler) healthz(c fiber.Ctx) error {
	return c.SendString("ok")
}
