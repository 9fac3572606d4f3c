package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"

	"hostelhunt/internal/models"
	"hostelhunt/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getPage(t *testing.T, env *testEnv, path, clientID string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, env.ts.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set(clientHeader, clientID)

	resp, err := noRedirect.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestPages_Index(t *testing.T) {
	env := newTestEnv(t, nil)

	status, body := getPage(t, env, "/", "c1")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Sunrise Hostel")
	assert.Contains(t, body, "Campus Stay")
	assert.Contains(t, body, "₹3000 / month")

	_, body = getPage(t, env, "/?location=cuttack", "c1")
	assert.NotContains(t, body, "Sunrise Hostel")
	assert.Contains(t, body, "Campus Stay")
	assert.Contains(t, body, "Owner email: owner@example.com")

	_, body = getPage(t, env, "/?location=delhi", "c1")
	assert.Contains(t, body, models.NoticeNoResults)

	_, body = getPage(t, env, "/?location=cuttack", "c1")
	assert.NotContains(t, body, models.NoticeNoResults)

	status, _ = getPage(t, env, "/missing", "c1")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPages_LargePricesStayPlain(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	logger := zerolog.New(io.Discard)
	hostels := store.NewCollection[models.Hostel](env.kv, models.KeyHostels, &logger)
	require.NoError(t, hostels.Append(ctx, models.Hostel{
		ID: "h9", Name: "Palace", Location: "Goa", Price: 1000000, OwnerEmail: "owner@example.com",
	}))

	for _, path := range []string{"/", "/owner", "/admin", "/?max_price=2500000"} {
		_, body := getPage(t, env, path, "c1")
		assert.NotContains(t, body, "e+06", path)
		assert.NotContains(t, body, "e+6", path)
	}

	_, body := getPage(t, env, "/", "c1")
	assert.Contains(t, body, "₹1000000 / month")
	_, body = getPage(t, env, "/admin", "c1")
	assert.Contains(t, body, "<td>1000000</td>")
	_, body = getPage(t, env, "/?max_price=2500000", "c1")
	assert.Contains(t, body, `value="2500000"`)
}

func TestPlainNumber(t *testing.T) {
	assert.Equal(t, "1000000", plainNumber(1e6))
	assert.Equal(t, "2500.5", plainNumber(2500.5))
	assert.Equal(t, "0", plainNumber(0))
}

func TestPages_NoticeIsEscaped(t *testing.T) {
	env := newTestEnv(t, nil)
	_, body := getPage(t, env, "/login?notice="+url.QueryEscape("<b>hi</b>"), "c1")
	assert.Contains(t, body, "&lt;b&gt;hi&lt;/b&gt;")
}

func TestPages_BookingPrefill(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.form(t, "/api/v1/hostels/select", "c1", url.Values{"hostel_id": {"h1"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/booking", resp.Header.Get("Location"))

	_, body := getPage(t, env, "/booking", "c1")
	assert.Contains(t, body, `value="Sunrise Hostel"`)

	_, body = getPage(t, env, "/booking", "c2")
	assert.NotContains(t, body, `value="Sunrise Hostel"`)
}

func TestPages_OwnerAndAdmin(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, path := range []string{"/signup", "/login", "/owner", "/admin"} {
		status, _ := getPage(t, env, path, "c1")
		assert.Equal(t, http.StatusOK, status, path)
	}

	_, body := getPage(t, env, "/admin", "c1")
	assert.Contains(t, body, "alice@example.com")
	assert.Contains(t, body, "Download spreadsheet")
}
