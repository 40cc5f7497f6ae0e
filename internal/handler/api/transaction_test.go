//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"rifa-hub/internal/domain/transaction"
	"rifa-hub/internal/handler/api"
	resdto "rifa-hub/internal/handler/dto/response"
	"rifa-hub/internal/infra"
	"rifa-hub/internal/pkg/clock"
	"rifa-hub/internal/usecase/queries"
	"rifa-hub/tests/common/httptest"
	commandsmock "rifa-hub/tests/mock/commands"
	queriesmock "rifa-hub/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type TransactionHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockQueries  *queriesmock.MockTransactionQueries
	mockCheckout *commandsmock.MockCheckoutCommands
	mockExpiry   *commandsmock.MockExpiryCommands
	clock        *clock.MockClock
	handler      *api.TransactionHandler
}

func (s *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockTransactionQueries(s.mockCtrl)
	s.mockCheckout = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.mockExpiry = commandsmock.NewMockExpiryCommands(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	s.handler = api.NewTransactionHandler(s.mockQueries, s.mockCheckout, s.mockExpiry, s.clock)

	s.router.GET("/transactions/:id", s.handler.GetByID)
	s.router.GET("/transactions/:id/status", s.handler.GetStatus)
}

func (s *TransactionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

func (s *TransactionHandlerTestSuite) pendingView(id uuid.UUID, expiresAt time.Time) *queries.TransactionView {
	qrCode := "00020126pixcopypaste"
	return &queries.TransactionView{
		ID:            id,
		CampaignID:    uuid.New(),
		CampaignTitle: "Rifa do bairro",
		BuyerName:     "Maria Silva",
		BuyerWhatsApp: "5511987654321",
		Numbers:       []int{7, 13},
		AmountCents:   2000,
		Method:        "PIX",
		Status:        "PENDING",
		QRCode:        &qrCode,
		ExpiresAt:     expiresAt,
		CreatedAt:     expiresAt.Add(-30 * time.Minute),
	}
}

// ================================================================================
// TestGetStatus
// ================================================================================

func (s *TransactionHandlerTestSuite) TestGetStatus() {
	trID := uuid.New()
	url := "/transactions/" + trID.String() + "/status"

	s.Run("success: returns the current status", func() {
		view := &queries.TransactionStatusView{
			ID:        trID,
			Status:    "PENDING",
			ExpiresAt: s.clock.Now().Add(10 * time.Minute),
		}
		s.mockQueries.EXPECT().GetStatus(gomock.Any(), trID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp resdto.TransactionStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(trID, resp.ID)
		s.Equal("PENDING", resp.Status)
	})

	s.Run("success: an overdue pending read triggers the lazy expiry", func() {
		overdue := &queries.TransactionStatusView{
			ID:        trID,
			Status:    "PENDING",
			ExpiresAt: s.clock.Now().Add(-time.Minute),
		}
		expired := &queries.TransactionStatusView{
			ID:        trID,
			Status:    "EXPIRED",
			ExpiresAt: overdue.ExpiresAt,
		}

		gomock.InOrder(
			s.mockQueries.EXPECT().GetStatus(gomock.Any(), trID).Return(overdue, nil),
			s.mockExpiry.EXPECT().ExpireTransaction(gomock.Any(), trID).Return(true, nil),
			s.mockQueries.EXPECT().GetStatus(gomock.Any(), trID).Return(expired, nil),
		)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp resdto.TransactionStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("EXPIRED", resp.Status)
	})

	s.Run("success: keeps the first view when the expiry lost the race", func() {
		overdue := &queries.TransactionStatusView{
			ID:        trID,
			Status:    "PENDING",
			ExpiresAt: s.clock.Now().Add(-time.Minute),
		}
		s.mockQueries.EXPECT().GetStatus(gomock.Any(), trID).Return(overdue, nil).Times(1)
		s.mockExpiry.EXPECT().ExpireTransaction(gomock.Any(), trID).Return(false, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: terminal statuses never trigger expiry", func() {
		paidAt := s.clock.Now().Add(-time.Hour)
		view := &queries.TransactionStatusView{
			ID:        trID,
			Status:    string(transaction.StatusPaid),
			ExpiresAt: s.clock.Now().Add(-2 * time.Hour),
			PaidAt:    &paidAt,
		}
		s.mockQueries.EXPECT().GetStatus(gomock.Any(), trID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp resdto.TransactionStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("PAID", resp.Status)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/transactions/not-a-uuid/status", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid transaction ID")
	})

	s.Run("error: 404 Not Found for an unknown transaction", func() {
		s.mockQueries.EXPECT().GetStatus(gomock.Any(), trID).
			Return(nil, infra.WrapRepoErr("transaction not found", nil, infra.KindNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Transaction not found")
	})

	s.Run("error: 500 Internal Server Error on query failure", func() {
		s.mockQueries.EXPECT().GetStatus(gomock.Any(), trID).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestGetByID
// ================================================================================

func (s *TransactionHandlerTestSuite) TestGetByID() {
	trID := uuid.New()
	url := "/transactions/" + trID.String()

	s.Run("success: returns the full view", func() {
		view := s.pendingView(trID, s.clock.Now().Add(10*time.Minute))
		s.mockQueries.EXPECT().GetByID(gomock.Any(), trID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp resdto.TransactionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(trID, resp.ID)
		s.Equal("Rifa do bairro", resp.CampaignTitle)
		s.Equal([]int{7, 13}, resp.Numbers)
		s.Require().NotNil(resp.QRCode)
	})

	s.Run("success: regenerates a missing artifact on read", func() {
		view := s.pendingView(trID, s.clock.Now().Add(10*time.Minute))
		view.QRCode = nil

		s.mockQueries.EXPECT().GetByID(gomock.Any(), trID).Return(view, nil).Times(1)
		s.mockCheckout.EXPECT().RegenerateArtifact(gomock.Any(), trID).
			Return(&transaction.PaymentArtifact{
				ExternalID: "ch_002",
				QRCode:     "00020126regenerated",
				QRCodeURL:  "https://gateway.test/qr/ch_002.png",
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp resdto.TransactionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Require().NotNil(resp.QRCode)
		s.Equal("00020126regenerated", *resp.QRCode)
	})

	s.Run("success: serves the view even when regeneration keeps failing", func() {
		view := s.pendingView(trID, s.clock.Now().Add(10*time.Minute))
		view.QRCode = nil

		s.mockQueries.EXPECT().GetByID(gomock.Any(), trID).Return(view, nil).Times(1)
		s.mockCheckout.EXPECT().RegenerateArtifact(gomock.Any(), trID).
			Return(nil, errors.New("gateway timeout")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp resdto.TransactionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Nil(resp.QRCode)
	})

	s.Run("success: an overdue pending read triggers the lazy expiry", func() {
		overdue := s.pendingView(trID, s.clock.Now().Add(-time.Minute))
		expired := s.pendingView(trID, overdue.ExpiresAt)
		expired.Status = "EXPIRED"

		gomock.InOrder(
			s.mockQueries.EXPECT().GetByID(gomock.Any(), trID).Return(overdue, nil),
			s.mockExpiry.EXPECT().ExpireTransaction(gomock.Any(), trID).Return(true, nil),
			s.mockQueries.EXPECT().GetByID(gomock.Any(), trID).Return(expired, nil),
		)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp resdto.TransactionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("EXPIRED", resp.Status)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/transactions/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid transaction ID")
	})

	s.Run("error: 404 Not Found for an unknown transaction", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), trID).
			Return(nil, infra.WrapRepoErr("transaction not found", nil, infra.KindNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Transaction not found")
	})
}
