package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/property_market_app/internal/apperrors"
	"github.com/SscSPs/property_market_app/internal/core/domain"
	"github.com/SscSPs/property_market_app/internal/dto"
	"github.com/SscSPs/property_market_app/internal/handlers"
	"github.com/SscSPs/property_market_app/internal/middleware"
	"github.com/SscSPs/property_market_app/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExchangeRateHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	rateService   *MockExchangeRateService
	recalculation *MockRecalculationService
}

func (s *ExchangeRateHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.StructuredLoggingMiddleware(logger.Nop()))

	s.rateService = new(MockExchangeRateService)
	s.recalculation = new(MockRecalculationService)

	v1 := s.router.Group("/api/v1")
	authed := v1.Group("", middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterExchangeRateRoutes(v1, authed, s.rateService, s.recalculation)
}

func (s *ExchangeRateHandlerTestSuite) TearDownTest() {
	s.rateService.AssertExpectations(s.T())
	s.recalculation.AssertExpectations(s.T())
}

func (s *ExchangeRateHandlerTestSuite) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+generateTestToken("admin-1"))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ExchangeRateHandlerTestSuite) TestUpdateExchangeRate_Success() {
	rate := decimal.NewFromInt(20000)
	s.rateService.On("UpdateExchangeRate", mock.Anything, "LAK", mock.MatchedBy(rate.Equal), "admin-1").
		Return(&domain.Rate{CurrencyCode: "LAK", Rate: rate}, nil).Once()

	w := s.do(http.MethodPut, "/api/v1/exchange-rates/LAK", `{"rate":"20000"}`, true)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ExchangeRateResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("LAK", resp.CurrencyCode)
	s.Equal("USD", resp.BaseCurrencyCode)
	s.True(resp.Rate.Equal(rate))
}

func (s *ExchangeRateHandlerTestSuite) TestUpdateExchangeRate_RequiresToken() {
	w := s.do(http.MethodPut, "/api/v1/exchange-rates/LAK", `{"rate":"20000"}`, false)

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *ExchangeRateHandlerTestSuite) TestUpdateExchangeRate_BadInput() {
	tests := []struct {
		name string
		path string
		body string
	}{
		{"bad currency code", "/api/v1/exchange-rates/LA1", `{"rate":"1"}`},
		{"missing rate", "/api/v1/exchange-rates/LAK", `{}`},
		{"malformed rate", "/api/v1/exchange-rates/LAK", `{"rate":"abc"}`},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(http.MethodPut, tt.path, tt.body, true)
			s.Equal(http.StatusBadRequest, w.Code)
		})
	}
}

func (s *ExchangeRateHandlerTestSuite) TestUpdateExchangeRate_ValidationFromService() {
	s.rateService.On("UpdateExchangeRate", mock.Anything, "LAK", mock.Anything, "admin-1").
		Return(nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)).Once()

	w := s.do(http.MethodPut, "/api/v1/exchange-rates/LAK", `{"rate":"-5"}`, true)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "rate must be positive")
}

func (s *ExchangeRateHandlerTestSuite) TestGetExchangeRate_NotFound() {
	s.rateService.On("GetExchangeRate", mock.Anything, "VND").
		Return(nil, apperrors.NewNotFoundError("exchange rate for VND not found")).Once()

	w := s.do(http.MethodGet, "/api/v1/exchange-rates/VND", "", false)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *ExchangeRateHandlerTestSuite) TestListExchangeRates() {
	s.rateService.On("ListExchangeRates", mock.Anything).Return([]domain.Rate{
		{CurrencyCode: "LAK", Rate: decimal.NewFromInt(20000)},
		{CurrencyCode: "USD", Rate: decimal.NewFromInt(1)},
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/exchange-rates", "", false)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ListExchangeRatesResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Len(resp.Rates, 2)
}

func (s *ExchangeRateHandlerTestSuite) TestRemoveExchangeRate() {
	s.rateService.On("RemoveExchangeRate", mock.Anything, "VND").Return(nil).Once()

	w := s.do(http.MethodDelete, "/api/v1/exchange-rates/VND", "", true)

	s.Equal(http.StatusNoContent, w.Code)
}

func (s *ExchangeRateHandlerTestSuite) TestRecalculate() {
	report := domain.RecalculationReport{
		StartedAt: time.Now(),
		Duration:  1500 * time.Millisecond,
		Processed: 3,
		Skipped:   1,
		Issues:    []domain.RecalculationIssue{{ListingID: "L9", Reason: "no base amount"}},
	}
	s.recalculation.On("RunNow", mock.Anything).Return(report, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/exchange-rates/recalculate", "", true)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.RecalculationReportResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(3, resp.Processed)
	s.Equal(1, resp.Skipped)
	s.Equal(int64(1500), resp.DurationMS)
	s.Len(resp.Issues, 1)
}

func (s *ExchangeRateHandlerTestSuite) TestRecalculate_Failure() {
	s.recalculation.On("RunNow", mock.Anything).
		Return(domain.RecalculationReport{}, fmt.Errorf("rate table unavailable")).Once()

	w := s.do(http.MethodPost, "/api/v1/exchange-rates/recalculate", "", true)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Contains(w.Body.String(), "Recalculation failed")
}

func TestExchangeRateHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateHandlerTestSuite))
}
