package session

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

var _ CredentialStore = &CookieStore{}

// CookieStore keeps the credential as a cookie scoped to the backend
// URL. Pair it with TransportCookie so requests carry the same cookie
// the store manages.
type CookieStore struct {
	jar  http.CookieJar
	base *url.URL
	name string
	now  func() time.Time
}

func NewCookieStore(baseURL, name string) (*CookieStore, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = "token"
	}

	return &CookieStore{
		jar:  jar,
		base: base,
		name: name,
		now:  time.Now,
	}, nil
}

// Jar exposes the underlying cookie jar.
func (s *CookieStore) Jar() http.CookieJar {
	return s.jar
}

func (s *CookieStore) Save(token string, ttl time.Duration) error {
	cookie := &http.Cookie{
		Name:  s.name,
		Value: token,
		Path:  "/",
	}
	if ttl > 0 {
		cookie.Expires = s.now().Add(ttl)
	}
	s.jar.SetCookies(s.base, []*http.Cookie{cookie})
	return nil
}

func (s *CookieStore) Load() (string, bool) {
	for _, cookie := range s.jar.Cookies(s.base) {
		if cookie.Name == s.name && cookie.Value != "" {
			return cookie.Value, true
		}
	}
	return "", false
}

func (s *CookieStore) Clear() error {
	s.jar.SetCookies(s.base, []*http.Cookie{{
		Name:    s.name,
		Value:   "",
		Path:    "/",
		MaxAge:  -1,
		Expires: s.now().Add(-time.Hour * (24 * 365)),
	}})
	return nil
}
