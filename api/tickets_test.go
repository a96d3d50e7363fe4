package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Domenick1991/airbooking-gateway/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testUID = "049161bb-badd-4fa8-9d90-87c9a82b0668"

var testUser = domain.Principal{Username: "Test Max"}

func newTicketContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
		c.Request = httptest.NewRequest(method, target, reader)
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request = httptest.NewRequest(method, target, nil)
	}
	c.Request.Header.Set("X-User-Name", testUser.Username)
	return c, w
}

func TestTicketHandler_purchase(t *testing.T) {
	mockReader := &MockAggregatorUseCase{}
	mockSagas := &MockSagaUseCase{}
	handler := NewTicketHandler(mockReader, mockSagas)

	c, w := newTicketContext("POST", "/api/v1/tickets", `{"flightNumber":"AFL031","price":1500,"paidFromBalance":false}`)

	outcome := &domain.PurchaseOutcome{
		TicketUID:     testUID,
		FlightNumber:  "AFL031",
		FromAirport:   "Санкт-Петербург Пулково",
		ToAirport:     "Москва Шереметьево",
		Date:          "2021-10-08 20:00",
		Price:         1500,
		PaidByMoney:   1500,
		PaidByBonuses: 0,
		Status:        domain.TicketStatusPaid,
		Privilege:     domain.PrivilegeInfo{Balance: 150, Status: domain.PrivilegeStatusBronze},
	}
	mockSagas.On("Purchase", c.Request.Context(), testUser, domain.PurchaseRequest{
		FlightNumber:    "AFL031",
		Price:           1500,
		PaidFromBalance: false,
	}).Return(outcome, nil)

	handler.purchase(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"ticketUid": "049161bb-badd-4fa8-9d90-87c9a82b0668",
		"flightNumber": "AFL031",
		"fromAirport": "Санкт-Петербург Пулково",
		"toAirport": "Москва Шереметьево",
		"date": "2021-10-08 20:00",
		"price": 1500,
		"paidByMoney": 1500,
		"paidByBonuses": 0,
		"status": "PAID",
		"privilege": {"balance": 150, "status": "BRONZE"}
	}`, w.Body.String())
	mockSagas.AssertExpectations(t)
}

func TestTicketHandler_purchase_LargePrice(t *testing.T) {
	mockReader := &MockAggregatorUseCase{}
	mockSagas := &MockSagaUseCase{}
	handler := NewTicketHandler(mockReader, mockSagas)

	c, w := newTicketContext("POST", "/api/v1/tickets", `{"flightNumber":"AFL031","price":1000000000000000000,"paidFromBalance":false}`)

	mockSagas.On("Purchase", c.Request.Context(), testUser, domain.PurchaseRequest{
		FlightNumber: "AFL031",
		Price:        1_000_000_000_000_000_000,
	}).Return(&domain.PurchaseOutcome{
		TicketUID:    testUID,
		FlightNumber: "AFL031",
		Price:        1_000_000_000_000_000_000,
		PaidByMoney:  1_000_000_000_000_000_000,
		Status:       domain.TicketStatusPaid,
		Privilege:    domain.PrivilegeInfo{Balance: 100_000_000_000_000_000, Status: domain.PrivilegeStatusBronze},
	}, nil)

	handler.purchase(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body domain.PurchaseOutcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1_000_000_000_000_000_000, body.Price)
	assert.Equal(t, 100_000_000_000_000_000, body.Privilege.Balance)
	mockSagas.AssertExpectations(t)
}

func TestTicketHandler_purchase_Validation(t *testing.T) {
	testCases := []struct {
		name   string
		body   string
		fields []string
	}{
		{name: "missing everything", body: `{}`, fields: []string{"flightNumber", "price", "paidFromBalance"}},
		{name: "zero price", body: `{"flightNumber":"AFL031","price":0,"paidFromBalance":true}`, fields: []string{"price"}},
		{name: "negative price", body: `{"flightNumber":"AFL031","price":-10,"paidFromBalance":true}`, fields: []string{"price"}},
		{name: "fractional price", body: `{"flightNumber":"AFL031","price":12.5,"paidFromBalance":true}`, fields: []string{"price"}},
		{name: "string flag", body: `{"flightNumber":"AFL031","price":1500,"paidFromBalance":"yes"}`, fields: []string{"paidFromBalance"}},
		{name: "missing flag", body: `{"flightNumber":"AFL031","price":1500}`, fields: []string{"paidFromBalance"}},
		{name: "malformed", body: `{"flightNumber":`, fields: []string{"body"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockSagas := &MockSagaUseCase{}
			handler := NewTicketHandler(&MockAggregatorUseCase{}, mockSagas)
			c, w := newTicketContext("POST", "/api/v1/tickets", tc.body)

			handler.purchase(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var response ValidationErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, "validation error", response.Message)
			got := make([]string, 0, len(response.Errors))
			for _, f := range response.Errors {
				got = append(got, f.Field)
				assert.NotEmpty(t, f.Description)
			}
			assert.Equal(t, tc.fields, got)
			mockSagas.AssertNotCalled(t, "Purchase", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTicketHandler_purchase_FlightNotFound(t *testing.T) {
	mockSagas := &MockSagaUseCase{}
	handler := NewTicketHandler(&MockAggregatorUseCase{}, mockSagas)
	c, w := newTicketContext("POST", "/api/v1/tickets", `{"flightNumber":"NOPE","price":1500,"paidFromBalance":false}`)

	mockSagas.On("Purchase", c.Request.Context(), testUser, mock.Anything).Return(nil, domain.ErrFlightNotFound)

	handler.purchase(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Flight not found"}`, w.Body.String())
}

func TestTicketHandler_purchase_TicketServiceDown(t *testing.T) {
	mockSagas := &MockSagaUseCase{}
	handler := NewTicketHandler(&MockAggregatorUseCase{}, mockSagas)
	c, w := newTicketContext("POST", "/api/v1/tickets", `{"flightNumber":"AFL031","price":1500,"paidFromBalance":false}`)

	mockSagas.On("Purchase", c.Request.Context(), testUser, mock.Anything).
		Return(nil, &domain.ServiceError{Service: "ticket", Op: "create ticket", StatusCode: 503, Err: errors.New("unavailable")})

	handler.purchase(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Ticket Service unavailable"}`, w.Body.String())
}

func TestTicketHandler_MissingUser(t *testing.T) {
	mockReader := &MockAggregatorUseCase{}
	mockSagas := &MockSagaUseCase{}
	handler := NewTicketHandler(mockReader, mockSagas)

	routes := []struct {
		method string
		call   func(*gin.Context)
	}{
		{method: "GET", call: handler.list},
		{method: "POST", call: handler.purchase},
		{method: "GET", call: handler.get},
		{method: "DELETE", call: handler.refund},
	}
	for _, r := range routes {
		c, w := newTicketContext(r.method, "/api/v1/tickets", "")
		c.Request.Header.Del("X-User-Name")

		r.call(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"X-User-Name header is required"}`, w.Body.String())
	}
	mockReader.AssertExpectations(t)
	mockSagas.AssertExpectations(t)
}

func TestTicketHandler_list(t *testing.T) {
	mockReader := &MockAggregatorUseCase{}
	handler := NewTicketHandler(mockReader, &MockSagaUseCase{})
	c, w := newTicketContext("GET", "/api/v1/tickets", "")

	mockReader.On("Tickets", c.Request.Context(), testUser).Return([]domain.TicketView{{
		TicketUID:    testUID,
		FlightNumber: "AFL031",
		FromAirport:  "Санкт-Петербург Пулково",
		ToAirport:    "Москва Шереметьево",
		Date:         "2021-10-08 20:00",
		Price:        1500,
		Status:       domain.TicketStatusPaid,
	}}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response []domain.TicketView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.Equal(t, "Москва Шереметьево", response[0].ToAirport)
}

func TestTicketHandler_list_Empty(t *testing.T) {
	mockReader := &MockAggregatorUseCase{}
	handler := NewTicketHandler(mockReader, &MockSagaUseCase{})
	c, w := newTicketContext("GET", "/api/v1/tickets", "")

	mockReader.On("Tickets", c.Request.Context(), testUser).Return([]domain.TicketView{}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestTicketHandler_get(t *testing.T) {
	mockReader := &MockAggregatorUseCase{}
	handler := NewTicketHandler(mockReader, &MockSagaUseCase{})
	c, w := newTicketContext("GET", "/api/v1/tickets/"+testUID, "")
	c.Params = gin.Params{{Key: "ticketUid", Value: testUID}}

	mockReader.On("Ticket", c.Request.Context(), testUser, testUID).
		Return(&domain.TicketView{TicketUID: testUID, FlightNumber: "AFL031", Price: 1500, Status: domain.TicketStatusPaid}, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response domain.TicketView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, testUID, response.TicketUID)
}

func TestTicketHandler_get_NotFound(t *testing.T) {
	mockReader := &MockAggregatorUseCase{}
	handler := NewTicketHandler(mockReader, &MockSagaUseCase{})
	c, w := newTicketContext("GET", "/api/v1/tickets/missing", "")
	c.Params = gin.Params{{Key: "ticketUid", Value: "missing"}}

	mockReader.On("Ticket", c.Request.Context(), testUser, "missing").Return(nil, domain.ErrTicketNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Ticket not found"}`, w.Body.String())
}

func TestTicketHandler_refund(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{name: "refunded", status: http.StatusNoContent},
		{name: "already canceled", err: domain.ErrTicketAlreadyCanceled, status: http.StatusBadRequest, body: `{"message":"Ticket already canceled"}`},
		{name: "not found", err: domain.ErrTicketNotFound, status: http.StatusNotFound, body: `{"message":"Ticket not found"}`},
		{name: "cancel failed", err: &domain.ServiceError{Service: "ticket", Op: "cancel ticket", Err: context.DeadlineExceeded}, status: http.StatusInternalServerError, body: `{"message":"Ticket Service unavailable"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockSagas := &MockSagaUseCase{}
			handler := NewTicketHandler(&MockAggregatorUseCase{}, mockSagas)
			c, w := newTicketContext("DELETE", "/api/v1/tickets/"+testUID, "")
			c.Params = gin.Params{{Key: "ticketUid", Value: testUID}}

			mockSagas.On("Refund", c.Request.Context(), testUser, testUID).Return(tc.err)

			handler.refund(c)

			assert.Equal(t, tc.status, c.Writer.Status())
			if tc.body == "" {
				assert.Empty(t, w.Body.String())
			} else {
				assert.JSONEq(t, tc.body, w.Body.String())
			}
			mockSagas.AssertExpectations(t)
		})
	}
}
