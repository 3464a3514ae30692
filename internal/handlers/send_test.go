package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailrelay/internal/handlers"
	"github.com/dmitrymomot/mailrelay/pkg/mailer"
)

// spySender records the last message it was asked to deliver.
type spySender struct {
	lastEmail *mailer.Email
	result    *mailer.Result
	err       error
	calls     int
}

func (s *spySender) Send(_ context.Context, email *mailer.Email) (*mailer.Result, error) {
	s.calls++
	s.lastEmail = email
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &mailer.Result{MessageID: "spy-1", Raw: map[string]any{"messageId": "spy-1"}}, nil
}

func (s *spySender) Name() string { return "spy" }

var defaultSender = mailer.Address{Email: "noreply@example.com", Name: "Mail Relay"}

func postSend(t *testing.T, h http.Handler, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/send-email", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSendValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		payload string
	}{
		{"missing to", `{"subject":"Hi","html":"<p>hi</p>"}`},
		{"empty to list", `{"to":[],"subject":"Hi","html":"<p>hi</p>"}`},
		{"blank to entries", `{"to":["", "  "],"subject":"Hi","html":"<p>hi</p>"}`},
		{"missing subject", `{"to":"a@x.com","html":"<p>hi</p>"}`},
		{"whitespace subject", `{"to":"a@x.com","subject":"  ","html":"<p>hi</p>"}`},
		{"missing html", `{"to":"a@x.com","subject":"Hi"}`},
		{"empty html", `{"to":"a@x.com","subject":"Hi","html":""}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			spy := &spySender{}
			rec := postSend(t, handlers.NewSend(spy, defaultSender, nil), tc.payload)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, false, decodeBody(t, rec)["success"])
			require.Zero(t, spy.calls, "provider must not be called")
		})
	}

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()

		spy := &spySender{}
		rec := postSend(t, handlers.NewSend(spy, defaultSender, nil), `{"to":`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Zero(t, spy.calls)
	})

	t.Run("non-JSON content type", func(t *testing.T) {
		t.Parallel()

		spy := &spySender{}
		req := httptest.NewRequest(http.MethodPost, "/send-email",
			strings.NewReader(`{"to":"a@x.com","subject":"Hi","html":"<p>hi</p>"}`))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		handlers.NewSend(spy, defaultSender, nil).ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Zero(t, spy.calls)
	})
}

func TestSendNormalization(t *testing.T) {
	t.Parallel()

	t.Run("single recipient string becomes one address object", func(t *testing.T) {
		t.Parallel()

		spy := &spySender{}
		rec := postSend(t, handlers.NewSend(spy, defaultSender, nil),
			`{"to":"a@x.com","subject":"Hi","html":"<p>hi</p>"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 1, spy.calls)
		require.Equal(t, []mailer.Address{{Email: "a@x.com"}}, spy.lastEmail.To)
		require.Equal(t, defaultSender, spy.lastEmail.Sender)
		require.Nil(t, spy.lastEmail.CC, "empty cc must never be forwarded")
	})

	t.Run("recipient list and cc are forwarded per entry", func(t *testing.T) {
		t.Parallel()

		spy := &spySender{}
		rec := postSend(t, handlers.NewSend(spy, defaultSender, nil),
			`{"to":["a@x.com","b@x.com"],"subject":"Hi","html":"<p>hi</p>","cc":["c@x.com"]}`)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, []mailer.Address{{Email: "a@x.com"}, {Email: "b@x.com"}}, spy.lastEmail.To)
		require.Equal(t, []mailer.Address{{Email: "c@x.com"}}, spy.lastEmail.CC)
	})

	t.Run("explicit empty cc list is dropped", func(t *testing.T) {
		t.Parallel()

		spy := &spySender{}
		postSend(t, handlers.NewSend(spy, defaultSender, nil),
			`{"to":"a@x.com","subject":"Hi","html":"<p>hi</p>","cc":[]}`)

		require.Nil(t, spy.lastEmail.CC)
	})

	t.Run("sender override replaces default identity", func(t *testing.T) {
		t.Parallel()

		spy := &spySender{}
		postSend(t, handlers.NewSend(spy, defaultSender, nil),
			`{"to":"a@x.com","subject":"Hi","html":"<p>hi</p>","from":"sales@example.com","name":"Sales"}`)

		require.Equal(t, mailer.Address{Email: "sales@example.com", Name: "Sales"}, spy.lastEmail.Sender)
	})

	t.Run("emailType becomes the category label", func(t *testing.T) {
		t.Parallel()

		spy := &spySender{}
		postSend(t, handlers.NewSend(spy, defaultSender, nil),
			`{"to":"a@x.com","subject":"Hi","html":"<p>hi</p>","emailType":"welcome"}`)

		require.Equal(t, "welcome", spy.lastEmail.Category)
	})
}

func TestSendDispatch(t *testing.T) {
	t.Parallel()

	t.Run("success echoes opaque provider data", func(t *testing.T) {
		t.Parallel()

		spy := &spySender{result: &mailer.Result{
			MessageID: "id-9",
			Raw:       map[string]any{"messageId": "id-9", "batch": "b-1"},
		}}
		rec := postSend(t, handlers.NewSend(spy, defaultSender, nil),
			`{"to":"a@x.com","subject":"Hi","html":"<p>hi</p>"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		require.Equal(t, true, body["success"])
		require.Equal(t, "Email sent successfully", body["message"])
		require.Equal(t, map[string]any{"messageId": "id-9", "batch": "b-1"}, body["data"])
		require.NotEmpty(t, body["timestamp"])
	})

	t.Run("structured provider failure composes status and body", func(t *testing.T) {
		t.Parallel()

		spy := &spySender{err: &mailer.ProviderError{
			Provider:   "brevo",
			StatusCode: 402,
			Code:       "not_enough_credits",
			Body:       `{"message":"out of credits"}`,
		}}
		rec := postSend(t, handlers.NewSend(spy, defaultSender, nil),
			`{"to":"a@x.com","subject":"Hi","html":"<p>hi</p>"}`)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeBody(t, rec)
		require.Equal(t, false, body["success"])
		require.Contains(t, body["error"], "brevo")
		require.Contains(t, body["error"], "status 402")
		require.Contains(t, body["error"], "not_enough_credits")
		require.Contains(t, body["error"], "out of credits")
	})

	t.Run("unstructured failure surfaces the raw message", func(t *testing.T) {
		t.Parallel()

		spy := &spySender{err: context.DeadlineExceeded}
		rec := postSend(t, handlers.NewSend(spy, defaultSender, nil),
			`{"to":"a@x.com","subject":"Hi","html":"<p>hi</p>"}`)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, context.DeadlineExceeded.Error(), decodeBody(t, rec)["error"])
	})
}

func TestRecipientListUnmarshal(t *testing.T) {
	t.Parallel()

	t.Run("string form", func(t *testing.T) {
		t.Parallel()

		var l handlers.RecipientList
		require.NoError(t, json.Unmarshal([]byte(`"a@x.com"`), &l))
		require.Equal(t, handlers.RecipientList{"a@x.com"}, l)
	})

	t.Run("list form", func(t *testing.T) {
		t.Parallel()

		var l handlers.RecipientList
		require.NoError(t, json.Unmarshal([]byte(`["a@x.com","b@x.com"]`), &l))
		require.Equal(t, handlers.RecipientList{"a@x.com", "b@x.com"}, l)
	})

	t.Run("rejects other shapes", func(t *testing.T) {
		t.Parallel()

		var l handlers.RecipientList
		require.Error(t, json.Unmarshal([]byte(`{"email":"a@x.com"}`), &l))
	})
}
