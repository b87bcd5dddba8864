package wikibase

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppedin/wikibase-api/internal/retry"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL + "/", Username: "bot", Password: "secret"}, opts...)
	require.NoError(t, err)
	return c
}

func requireAuth(t *testing.T, r *http.Request) {
	t.Helper()
	user, pass, ok := r.BasicAuth()
	require.True(t, ok, "request without basic auth")
	assert.Equal(t, "bot", user)
	assert.Equal(t, "secret", pass)
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	data, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing url", Config{Username: "u", Password: "p"}},
		{"relative url", Config{BaseURL: "wikibase.local", Username: "u", Password: "p"}},
		{"ftp url", Config{BaseURL: "ftp://wikibase.local", Username: "u", Password: "p"}},
		{"missing username", Config{BaseURL: "http://wikibase.local", Password: "p"}},
		{"missing password", Config{BaseURL: "http://wikibase.local", Username: "u"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, wbapi.ErrInvalidConfig)
		})
	}
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c, err := NewClient(Config{BaseURL: "https://wikibase.local/", Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "https://wikibase.local", c.BaseURL())
}

func TestCheckConnection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requireAuth(t, r)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest.php/wikibase/v1/entities/properties/P1", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"P1","data_type":"string"}`))
	})

	require.NoError(t, c.CheckConnection(context.Background()))
}

func TestCheckConnection_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	})

	err := c.CheckConnection(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, wbapi.ErrConnectionFailed)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode())
}

func TestCheckConnection_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(Config{BaseURL: url, Username: "u", Password: "p", Timeout: time.Second})
	require.NoError(t, err)

	err = c.CheckConnection(context.Background())
	assert.ErrorIs(t, err, wbapi.ErrConnectionFailed)
}

func TestFindItemByLabel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requireAuth(t, r)
		assert.Equal(t, "/api.php", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "wbsearchentities", q.Get("action"))
		assert.Equal(t, "Divina Commedia", q.Get("search"))
		assert.Equal(t, "it", q.Get("language"))
		assert.Equal(t, "item", q.Get("type"))
		assert.Equal(t, "json", q.Get("format"))
		_, _ = w.Write([]byte(`{"search":[{"id":"Q42","label":"Divina Commedia"},{"id":"Q43"}]}`))
	})

	id, found, err := c.FindItemByLabel(context.Background(), "Divina Commedia", "it")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Q42", id)
}

func TestFindItemByLabel_NoHits(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"search":[]}`))
	})

	id, found, err := c.FindItemByLabel(context.Background(), "Nothing", "it")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, id)
}

func TestFindItemByLabel_ErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, _, err := c.FindItemByLabel(context.Background(), "x", "it")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "search item", apiErr.Op)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestCreateItem(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requireAuth(t, r)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest.php/wikibase/v1/entities/items", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body := decodeBody(t, r)
		item := body["item"].(map[string]any)
		assert.Equal(t, map[string]any{"it": "Divina Commedia"}, item["labels"])
		assert.Equal(t, map[string]any{"en": "A poem"}, item["descriptions"])
		assert.Equal(t, map[string]any{}, item["statements"])
		assert.Equal(t, "", body["comment"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"Q7"}`))
	})

	id, err := c.CreateItem(context.Background(), ItemSpec{
		Label:               "Divina Commedia",
		Language:            "it",
		Description:         "A poem",
		DescriptionLanguage: "en",
	})
	require.NoError(t, err)
	assert.Equal(t, "Q7", id)
}

func TestCreateItem_EmptyDescriptionsObject(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		item := body["item"].(map[string]any)
		assert.Equal(t, map[string]any{}, item["descriptions"])
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"Q8"}`))
	})

	id, err := c.CreateItem(context.Background(), ItemSpec{Label: "L", Language: "it"})
	require.NoError(t, err)
	assert.Equal(t, "Q8", id)
}

func TestCreateItem_IsNeverRetried(t *testing.T) {
	var calls atomic.Int32
	executor := retry.NewExecutor(
		retry.NewHTTPErrorClassifier(),
		retry.NewExponentialBackoff(3, retry.WithInitialDelay(time.Millisecond), retry.WithJitter(0)),
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, WithRetry(executor))

	_, err := c.CreateItem(context.Background(), ItemSpec{Label: "L", Language: "it"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCreateItem_RequiresLabel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	_, err := c.CreateItem(context.Background(), ItemSpec{Label: "  ", Language: "it"})
	assert.Error(t, err)
}

func TestPropertyDatatype(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest.php/wikibase/v1/entities/properties/P73", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"P73","data_type":"wikibase-item","labels":{"it":"autore"}}`))
	})

	dt, err := c.PropertyDatatype(context.Background(), "P73")
	require.NoError(t, err)
	assert.Equal(t, DatatypeItem, dt)
}

func TestPropertyDatatype_MissingField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"P73"}`))
	})

	_, err := c.PropertyDatatype(context.Background(), "P73")
	assert.ErrorContains(t, err, "data_type")
}

func TestPropertyDatatype_RetriesTransientReads(t *testing.T) {
	var calls atomic.Int32
	executor := retry.NewExecutor(
		retry.NewHTTPErrorClassifier(),
		retry.NewExponentialBackoff(2, retry.WithInitialDelay(time.Millisecond), retry.WithJitter(0)),
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"id":"P72","data_type":"string"}`))
	}, WithRetry(executor))

	dt, err := c.PropertyDatatype(context.Background(), "P72")
	require.NoError(t, err)
	assert.Equal(t, DatatypeString, dt)
	assert.Equal(t, int32(2), calls.Load())
}

func TestProperty_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	executor := retry.NewExecutor(
		retry.NewHTTPErrorClassifier(),
		retry.NewExponentialBackoff(3, retry.WithInitialDelay(time.Millisecond), retry.WithJitter(0)),
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"code":"property-not-found"}`, http.StatusNotFound)
	}, WithRetry(executor))

	_, err := c.Property(context.Background(), "P999")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Contains(t, apiErr.Body, "property-not-found")
	assert.Equal(t, int32(1), calls.Load())
}

func TestAddStatement(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requireAuth(t, r)
		assert.Equal(t, "/rest.php/wikibase/v1/entities/items/Q7/statements", r.URL.Path)

		body := decodeBody(t, r)
		stmt := body["statement"].(map[string]any)
		assert.Equal(t, map[string]any{"id": "P73"}, stmt["property"])
		assert.Equal(t, map[string]any{"type": "wikibase-entityid", "content": "Q5"}, stmt["value"])
		assert.Equal(t, []any{}, stmt["qualifiers"])
		assert.Equal(t, []any{}, stmt["references"])
		assert.Equal(t, false, body["bot"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"Q7$abc"}`))
	})

	err := c.AddStatement(context.Background(), "Q7", "P73", Value{Kind: ValueEntityID, Content: "Q5"})
	require.NoError(t, err)
}

func TestAddStatement_IsNeverRetried(t *testing.T) {
	var calls atomic.Int32
	executor := retry.NewExecutor(
		retry.NewHTTPErrorClassifier(),
		retry.NewExponentialBackoff(3, retry.WithInitialDelay(time.Millisecond), retry.WithJitter(0)),
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}, WithRetry(executor))

	err := c.AddStatement(context.Background(), "Q7", "P72", Value{Kind: ValueLiteral, Content: "x"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestAddStatement_Rejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"invalid-statement-value"}`))
	})

	err := c.AddStatement(context.Background(), "Q7", "P72", Value{Kind: ValueLiteral, Content: "x"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "add statement P72 to Q7")
}

func TestCreateProperty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest.php/wikibase/v1/entities/properties", r.URL.Path)
		body := decodeBody(t, r)
		prop := body["property"].(map[string]any)
		assert.Equal(t, "external-id", prop["data_type"])
		assert.Equal(t, map[string]any{"it": "VIAF"}, prop["labels"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"P100"}`))
	})

	id, err := c.CreateProperty(context.Background(), PropertySpec{Label: "VIAF", Language: "it", Datatype: DatatypeExternalID})
	require.NoError(t, err)
	assert.Equal(t, "P100", id)
}

func TestCreateProperty_DefaultsToString(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		prop := decodeBody(t, r)["property"].(map[string]any)
		assert.Equal(t, "string", prop["data_type"])
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"P101"}`))
	})

	_, err := c.CreateProperty(context.Background(), PropertySpec{Label: "note", Language: "it"})
	require.NoError(t, err)
}

func TestClient_HonorsContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, _, err := c.FindItemByLabel(ctx, "x", "it")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestKindForDatatype(t *testing.T) {
	assert.Equal(t, ValueEntityID, KindForDatatype(DatatypeItem))
	assert.Equal(t, ValueLiteral, KindForDatatype(DatatypeString))
	assert.Equal(t, ValueLiteral, KindForDatatype(DatatypeExternalID))
	assert.Equal(t, ValueLiteral, KindForDatatype(""))
}

func TestAPIError_TruncatesBody(t *testing.T) {
	long := make([]byte, 1000)
	for i := range long {
		long[i] = 'x'
	}
	err := newAPIError("op", 500, long)
	assert.LessOrEqual(t, len([]rune(err.Body)), wbapi.MaxErrorPreviewLength+3)
	assert.Equal(t, "op: unexpected status 500", (&APIError{Op: "op", Status: 500}).Error())
}
