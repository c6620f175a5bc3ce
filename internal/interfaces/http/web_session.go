package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// SessionUserKey clave de sesión con el id de la identidad autenticada.
const SessionUserKey = "logged_user_id"

// RequestSession sesión del navegador cargada para un request concreto.
// Se obtiene con LoadSession y se pasa explícitamente a quien la necesite.
type RequestSession struct {
	sess *session.Session
}

// LoadSession lee (o crea, sin persistir) la sesión del request.
func LoadSession(store *session.Store, c *fiber.Ctx) (*RequestSession, error) {
	sess, err := store.Get(c)
	if err != nil {
		return nil, fmt.Errorf("cargar sesión: %w", err)
	}
	return &RequestSession{sess: sess}, nil
}

// UserID id guardado en la sesión; false si no hay login.
func (s *RequestSession) UserID() (int64, bool) {
	id, ok := s.sess.Get(SessionUserKey).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

// SignIn emite un id de sesión nuevo y asocia la identidad.
func (s *RequestSession) SignIn(userID int64) error {
	if err := s.sess.Regenerate(); err != nil {
		return fmt.Errorf("regenerar sesión: %w", err)
	}
	s.sess.Set(SessionUserKey, userID)
	if err := s.sess.Save(); err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

// Destroy borra la sesión del storage y expira la cookie.
func (s *RequestSession) Destroy() error {
	if err := s.sess.Destroy(); err != nil {
		return fmt.Errorf("destruir sesión: %w", err)
	}
	return nil
}
