package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	sessionName   = "tripplan_session"
	sessionMaxAge = 14 * 24 * time.Hour
)

type SessionManager struct{ sc *securecookie.SecureCookie }

func NewSessionManager(hashKey, blockKey []byte) *SessionManager {
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int(sessionMaxAge.Seconds()))
	return &SessionManager{sc: sc}
}

func (s *SessionManager) SetMemberID(w http.ResponseWriter, r *http.Request, memberID string) error {
	encoded, err := s.sc.Encode(sessionName, map[string]string{"mid": memberID})
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionMaxAge.Seconds()),
	})
	return nil
}

func (s *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name: sessionName, Value: "", Path: "/", MaxAge: -1,
		HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
}

func (s *SessionManager) MemberID(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionName)
	if err != nil {
		return "", false
	}
	value := map[string]string{}
	if err := s.sc.Decode(sessionName, c.Value, &value); err != nil {
		return "", false
	}
	mid := value["mid"]
	return mid, mid != ""
}

type ctxKeyMemberID struct{}

// RequireMember rejects requests without a valid session cookie.
func (s *SessionManager) RequireMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mid, ok := s.MemberID(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "login required"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyMemberID{}, mid)))
	})
}

func memberIDFromCtx(r *http.Request) string {
	mid, _ := r.Context().Value(ctxKeyMemberID{}).(string)
	return mid
}
