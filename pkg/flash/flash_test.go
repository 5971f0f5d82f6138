package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddThenPopOnNextRequest(t *testing.T) {
	e := echo.New()
	store := NewStore("secret", false)

	req := httptest.NewRequest(http.MethodPost, "/bulletins/1/delete", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, store.Error(c, "Не удалось удалить"))
	require.NoError(t, store.Success(c, "Готово"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// Каждый Save перезаписывает cookie; браузер оставит последнюю.
	next := httptest.NewRequest(http.MethodGet, "/bulletins", nil)
	next.AddCookie(cookies[len(cookies)-1])
	nextRec := httptest.NewRecorder()
	msgs := store.Pop(e.NewContext(next, nextRec))

	require.Len(t, msgs, 2)
	assert.Equal(t, Message{Kind: Error, Text: "Не удалось удалить"}, msgs[0])
	assert.Equal(t, Success, msgs[1].Kind)
}

func TestStore_PopWithoutCookie(t *testing.T) {
	e := echo.New()
	store := NewStore("secret", false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Empty(t, store.Pop(e.NewContext(req, httptest.NewRecorder())))
}
