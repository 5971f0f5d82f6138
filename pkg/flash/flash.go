package flash

import (
	"crypto/sha256"
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

const sessionName = "ereport_flash"

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

// Message — всплывающее уведомление, которое показывается один раз
// на следующей отрисованной странице.
type Message struct {
	Kind Kind
	Text string
}

func init() {
	gob.Register(Message{})
}

type Store struct {
	store *sessions.CookieStore
}

func NewStore(secret string, secure bool) *Store {
	// Ключ подписи и ключ шифрования выводятся из одного секрета.
	h := sha256.Sum256([]byte("auth:" + secret))
	e := sha256.Sum256([]byte("enc:" + secret))

	store := sessions.NewCookieStore(h[:], e[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   10 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
	return &Store{store: store}
}

func (s *Store) Add(c echo.Context, kind Kind, text string) error {
	sess, _ := s.store.Get(c.Request(), sessionName)
	sess.AddFlash(Message{Kind: kind, Text: text})
	return sess.Save(c.Request(), c.Response())
}

func (s *Store) Success(c echo.Context, text string) error { return s.Add(c, Success, text) }

func (s *Store) Error(c echo.Context, text string) error { return s.Add(c, Error, text) }

// Pop забирает накопленные сообщения. Повреждённая cookie просто сбрасывается.
func (s *Store) Pop(c echo.Context) []Message {
	sess, err := s.store.Get(c.Request(), sessionName)
	if err != nil && sess == nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(c.Request(), c.Response())

	out := make([]Message, 0, len(raw))
	for _, r := range raw {
		if m, ok := r.(Message); ok {
			out = append(out, m)
		}
	}
	return out
}
