package clients

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Domenick1991/airbooking-gateway/internal/domain"
)

type FlightClient struct {
	baseClient
}

func NewFlightClient(baseURL string, timeout time.Duration) *FlightClient {
	return &FlightClient{baseClient: newBaseClient("flight", baseURL, timeout)}
}

func (c *FlightClient) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	var flight domain.Flight
	err := c.do(ctx, call{
		op:     "get flight",
		method: http.MethodGet,
		path:   "/api/v1/flights/" + url.PathEscape(number),
		out:    &flight,
	})
	if err != nil {
		return nil, notFoundAs(err, domain.ErrFlightNotFound)
	}
	return &flight, nil
}

func (c *FlightClient) List(ctx context.Context, page, size int) (*domain.FlightPage, error) {
	result := domain.FlightPage{Items: []domain.Flight{}}
	err := c.do(ctx, call{
		op:     "list flights",
		method: http.MethodGet,
		path:   "/api/v1/flights",
		query: url.Values{
			"page": {strconv.Itoa(page)},
			"size": {strconv.Itoa(size)},
		},
		out: &result,
	})
	if err != nil {
		return nil, notFoundAs(err, c.fail("list flights", http.StatusNotFound, errNotFound))
	}
	return &result, nil
}
