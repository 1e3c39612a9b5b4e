package listener_test

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"text-assistant/aiclient"
	"text-assistant/dto"
	"text-assistant/listener"
	"text-assistant/models"
	"text-assistant/repositories"
	"text-assistant/services"
)

type stubCompleter struct {
	result *aiclient.CompletionResult
	err    error
}

func (s *stubCompleter) Complete(context.Context, string, string, aiclient.Params) (*aiclient.CompletionResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubCompleter) Analyze(_ context.Context, text string) aiclient.AnalysisResult {
	return aiclient.BasicAnalysis(text)
}

func (s *stubCompleter) Model() string { return "gpt-3.5-turbo" }

type stubStore struct {
	inserted []*models.ModificationRecord
}

func (s *stubStore) Insert(_ context.Context, rec *models.ModificationRecord) error {
	s.inserted = append(s.inserted, rec)
	return nil
}

func (s *stubStore) ListByUser(context.Context, repositories.ListOptions) ([]models.ModificationRecord, int64, error) {
	return nil, 0, nil
}

func (s *stubStore) AggregateUserStats(context.Context, string) (*repositories.UserStats, error) {
	return nil, nil
}

// startListener serves on an ephemeral loopback port and returns its
// address once bound.
func startListener(t *testing.T, completer *stubCompleter, store *stubStore) string {
	t.Helper()

	svc := services.NewTextService(completer, store, nil)
	l := listener.New("127.0.0.1:0", svc)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() { done <- l.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("listener did not stop")
		}
	})

	deadline := time.Now().Add(5 * time.Second)
	for l.Addr() == nil {
		if time.Now().After(deadline) {
			t.Fatal("listener never bound")
		}
		time.Sleep(10 * time.Millisecond)
	}
	return l.Addr().String()
}

func roundTrip(t *testing.T, addr string, payload any) dto.BackgroundResponse {
	t.Helper()

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, json.NewEncoder(conn).Encode(payload))

	var resp dto.BackgroundResponse
	require.NoError(t, json.NewDecoder(conn).Decode(&resp))
	return resp
}

func TestListenerProcessesRequest(t *testing.T) {
	completer := &stubCompleter{result: &aiclient.CompletionResult{
		ModifiedText: "Corrected text.",
		FinishReason: "stop",
		Confidence:   0.9,
	}}
	store := &stubStore{}
	addr := startListener(t, completer, store)

	resp := roundTrip(t, addr, dto.BackgroundRequest{
		Text:              "teh text to corect",
		Operation:         "correct",
		UserID:            "desktop-user",
		SourceApplication: "notepad.exe",
		WindowTitle:       "Untitled - Notepad",
	})

	assert.True(t, resp.Success)
	assert.Equal(t, "Corrected text.", resp.ModifiedText)
	assert.Empty(t, resp.ErrorMessage)
	assert.False(t, resp.Timestamp.IsZero())

	// Source metadata lands on the persisted record.
	require.Len(t, store.inserted, 1)
	assert.Equal(t, "notepad.exe", store.inserted[0].SourceApplication)
	assert.Equal(t, "Untitled - Notepad", store.inserted[0].WindowTitle)
}

func TestListenerRejectsMalformedJSON(t *testing.T) {
	addr := startListener(t, &stubCompleter{}, &stubStore{})

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("this is not json"))
	require.NoError(t, err)

	var resp dto.BackgroundResponse
	require.NoError(t, json.NewDecoder(conn).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.ErrorMessage, "Invalid request format")
}

func TestListenerReportsValidationFailure(t *testing.T) {
	completer := &stubCompleter{}
	addr := startListener(t, completer, &stubStore{})

	resp := roundTrip(t, addr, dto.BackgroundRequest{
		Text:      "",
		Operation: "improve",
	})

	assert.False(t, resp.Success)
	assert.Contains(t, resp.ErrorMessage, "Missing required field: text")
}

func TestListenerReportsProcessingFailure(t *testing.T) {
	completer := &stubCompleter{err: &aiclient.CompletionError{
		Kind:      aiclient.KindTransport,
		Retryable: true,
	}}
	addr := startListener(t, completer, &stubStore{})

	resp := roundTrip(t, addr, dto.BackgroundRequest{
		Text:      "some text",
		Operation: "improve",
	})

	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.ErrorMessage)
}
