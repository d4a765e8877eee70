package agent

import (
	"context"
	"strings"
	"testing"
	"time"

	catalogRepo "tablebooker/database/repository/catalog"
	"tablebooker/models"
	"tablebooker/services/session"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(api *fakeBookingAPI) *Service {
	catalog := catalogRepo.NewStaticCatalogRepo()
	return &Service{
		Store:      session.NewMemoryStore(0),
		Extractor:  &RuleExtractor{Catalog: catalog},
		Dispatcher: newTestDispatcher(api),
		Catalog:    catalog,
		Policy:     KeywordClarifyPolicy{},
		Logger:     zap.NewNop(),
	}
}

func TestHandleTurnBooksInOneTurn(t *testing.T) {
	api := newFakeBookingAPI()
	api.openTimes["PizzaPalace"] = []string{"19:00:00"}
	svc := newTestService(api)

	result, err := svc.HandleTurn(context.Background(), "s1",
		"Book a table at Pizza Palace for 4 people tomorrow at 7pm, name is Jane Smith, email jane@example.com")
	require.NoError(t, err)

	require.Len(t, api.createCalls, 1, "a fully specified explicit booking completes in one turn")
	require.Contains(t, result.Message, "NEW1234")
	require.NotNil(t, result.Booking)
	require.True(t, result.Booking.Verified)

	sess, err := svc.Store.Get(context.Background(), "s1")
	require.NoError(t, err)
	require.Equal(t, "NEW1234", sess.Slots.BookingReference)
	require.Len(t, sess.History, 2)
}

func TestHandleTurnAccumulatesSlotsAcrossTurns(t *testing.T) {
	api := newFakeBookingAPI()
	api.openTimes["SushiZen"] = []string{"19:00:00", "20:00:00"}
	svc := newTestService(api)
	ctx := context.Background()

	turns := []string{
		"Hello, we are 2 people",
		"Sushi Zen on 2026-09-15 at 7pm",
		"I'm John Doe, email john@example.com",
	}
	var last *TurnResult
	for _, msg := range turns {
		var err error
		last, err = svc.HandleTurn(ctx, "s2", msg)
		require.NoError(t, err)
		require.Empty(t, api.createCalls, "no booking before the user confirms")
	}

	// All slots are on file, so the agent proposes the booking.
	require.Contains(t, last.Message, "Shall I book it?")

	sess, err := svc.Store.Get(ctx, "s2")
	require.NoError(t, err)
	require.Equal(t, "SushiZen", sess.Slots.Restaurant)
	require.Equal(t, 2, sess.Slots.PartySize)
	require.Equal(t, "John Doe", sess.Slots.Name)
	require.True(t, sess.AwaitingConfirmation)

	// A bare confirmation places the booking from accumulated state.
	result, err := svc.HandleTurn(ctx, "s2", "yes")
	require.NoError(t, err)
	require.Len(t, api.createCalls, 1)
	require.Equal(t, "19:00:00", api.createCalls[0].VisitTime)
	require.Contains(t, result.Message, "NEW1234")
}

func TestHandleTurnActionUsesSessionSlots(t *testing.T) {
	api := newFakeBookingAPI()
	api.openTimes["PizzaPalace"] = []string{"19:00:00"}
	svc := newTestService(api)
	ctx := context.Background()

	// Details arrive first, the action verb arrives later.
	_, err := svc.HandleTurn(ctx, "s3", "Pizza Palace on 2026-09-15 at 7pm, party of 4")
	require.NoError(t, err)
	_, err = svc.HandleTurn(ctx, "s3", "Jane Smith here, email jane@example.com")
	require.NoError(t, err)

	result, err := svc.HandleTurn(ctx, "s3", "yes, book it")
	require.NoError(t, err)
	require.Len(t, api.createCalls, 1)
	require.Equal(t, "2026-09-15", api.createCalls[0].VisitDate)
	require.Equal(t, 4, api.createCalls[0].PartySize)
	require.Contains(t, result.Message, "NEW1234")
}

func TestHandleTurnFallbackWithoutBackend(t *testing.T) {
	api := newFakeBookingAPI()
	svc := newTestService(api)

	result, err := svc.HandleTurn(context.Background(), "s4", "Hi there, what can you do?")
	require.NoError(t, err)
	require.Equal(t, "fallback", result.AIMode)
	require.NotEmpty(t, result.Message)
	require.NotEmpty(t, result.Suggestions)
}

func TestHandleTurnCancelThenRebookingStartsClean(t *testing.T) {
	api := newFakeBookingAPI()
	api.addRecord("PizzaPalace", &models.BookingRecord{
		Reference: "ABC1234", Status: "confirmed", VisitDate: "2026-09-15", VisitTime: "19:00:00",
	})
	svc := newTestService(api)
	ctx := context.Background()

	result, err := svc.HandleTurn(ctx, "s5", "Cancel my booking ABC1234")
	require.NoError(t, err)
	require.Equal(t, 1, api.cancelCalls)
	require.Contains(t, result.Message, "cancelled")

	// Repeating the cancel does not hit the remote cancel again.
	_, err = svc.HandleTurn(ctx, "s5", "Cancel my booking ABC1234")
	require.NoError(t, err)
	require.Equal(t, 1, api.cancelCalls)
}

func TestPruneHistory(t *testing.T) {
	sess := models.NewSession("s6")
	for i := 0; i < 80; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		sess.History = append(sess.History, models.ChatMessage{Role: role, Content: strings.Repeat("x", i)})
	}

	pruneHistory(sess)

	if len(sess.History) != historyHead+historyTail {
		t.Fatalf("history length = %d, want %d", len(sess.History), historyHead+historyTail)
	}
	if !sess.Summarized {
		t.Error("pruned session must be marked summarized")
	}
	// Opening exchange survives, recent tail survives.
	if sess.History[0].Content != "" || len(sess.History[historyHead].Content) != 30 {
		t.Errorf("unexpected pruning boundaries: first=%q boundary len=%d",
			sess.History[0].Content, len(sess.History[historyHead].Content))
	}
}

func TestPruneHistoryBelowCap(t *testing.T) {
	sess := models.NewSession("s7")
	for i := 0; i < 10; i++ {
		sess.History = append(sess.History, models.ChatMessage{Role: "user", Content: "hi"})
	}
	pruneHistory(sess)
	if len(sess.History) != 10 || sess.Summarized {
		t.Errorf("history below cap must be untouched, got len=%d summarized=%v", len(sess.History), sess.Summarized)
	}
}

func TestHandleTurnPinsRelativeDatesToTheirTurn(t *testing.T) {
	api := newFakeBookingAPI()
	api.openTimes["PizzaPalace"] = []string{"19:00:00"}
	svc := newTestService(api)
	ctx := context.Background()

	_, err := svc.HandleTurn(ctx, "s8", "Pizza Palace tomorrow at 7pm")
	require.NoError(t, err)

	sess, err := svc.Store.Get(ctx, "s8")
	require.NoError(t, err)
	require.Equal(t, "2026-09-01", sess.Slots.Date, "relative dates resolve on the turn they were said")
	require.Equal(t, "19:00:00", sess.Slots.Time)

	// The conversation crosses midnight before the booking lands.
	svc.Dispatcher.Now = func() time.Time { return testNow.Add(24 * time.Hour) }

	_, err = svc.HandleTurn(ctx, "s8", "book it for 4 people, name is Jane Smith, email jane@example.com")
	require.NoError(t, err)

	require.Len(t, api.createCalls, 1)
	require.Equal(t, "2026-09-01", api.createCalls[0].VisitDate,
		"the date must stay what 'tomorrow' meant when it was said")
}
