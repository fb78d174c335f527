package session

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

var _ Client = &RemoteClient{}

// ClientRoutes holds the backend paths, relative to the base URL.
type ClientRoutes struct {
	Verify        string
	Login         string
	Register      string
	Logout        string
	Account       string
	Recovery      string
	PasswordReset string
}

func defaultClientRoutes() *ClientRoutes {
	return &ClientRoutes{
		Verify:        "/verify",
		Login:         "/login",
		Register:      "/register",
		Logout:        "/logout",
		Account:       "/user",
		Recovery:      "/recovery",
		PasswordReset: "/reset-password",
	}
}

// RemoteClient is the RPC wrapper around the backend session API. Every
// request carries the stored credential, every response is inspected
// for a refreshed tokenSession, and any authorization rejection clears
// the store. The interceptors are client-level, so calls made through
// Request by other modules get the same treatment.
type RemoteClient struct {
	rest   *resty.Client
	store  CredentialStore
	cfg    Config
	routes *ClientRoutes

	Debug  bool
	Logger Logger

	now func() time.Time
}

type RemoteClientOption func(*RemoteClient) *RemoteClient

// WithClientLogger overrides the default logger.
func WithClientLogger(logger Logger) RemoteClientOption {
	return func(c *RemoteClient) *RemoteClient {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

// WithClientDebug enables payload dumps on responses.
func WithClientDebug(debug bool) RemoteClientOption {
	return func(c *RemoteClient) *RemoteClient {
		c.Debug = debug
		return c
	}
}

// WithClientRoutes overrides the backend paths.
func WithClientRoutes(routes *ClientRoutes) RemoteClientOption {
	return func(c *RemoteClient) *RemoteClient {
		if routes != nil {
			c.routes = routes
		}
		return c
	}
}

func NewRemoteClient(cfg Config, store CredentialStore, opts ...RemoteClientOption) *RemoteClient {
	c := &RemoteClient{
		store:  store,
		cfg:    cfg,
		routes: defaultClientRoutes(),
		Logger: defLogger{},
		now:    time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	c.rest = resty.New().
		SetBaseURL(cfg.GetBaseURL()).
		SetTimeout(cfg.GetRequestTimeout()).
		SetHeader("Accept", "application/json")

	c.rest.OnBeforeRequest(c.attachCredential)
	c.rest.OnAfterResponse(c.inspectResponse)

	return c
}

// Request exposes a prepared request builder so out-of-scope modules
// (interview CRUD, grading) share the credential interceptors.
func (c *RemoteClient) Request() *resty.Request {
	return c.rest.R()
}

func (c *RemoteClient) attachCredential(_ *resty.Client, req *resty.Request) error {
	token, ok := c.store.Load()
	if !ok {
		return nil
	}
	c.setCredential(req, token)
	return nil
}

func (c *RemoteClient) setCredential(req *resty.Request, token string) {
	switch c.cfg.GetCredentialTransport() {
	case TransportCookie:
		req.SetCookie(&http.Cookie{
			Name:  c.cfg.GetCookieName(),
			Value: token,
		})
	default:
		req.SetHeader("Authorization", c.cfg.GetAuthScheme()+" "+token)
	}
}

func (c *RemoteClient) inspectResponse(_ *resty.Client, resp *resty.Response) error {
	if resp.StatusCode() == http.StatusUnauthorized {
		c.Logger.Debug("credential rejected by %s, clearing store", resp.Request.URL)
		if err := c.store.Clear(); err != nil {
			c.Logger.Error("clear credential: %v", err)
		}
		return nil
	}

	var envelope struct {
		TokenSession string `json:"tokenSession"`
	}
	if len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil
	}
	if envelope.TokenSession == "" {
		return nil
	}

	ttl := credentialTTL(envelope.TokenSession, c.now())
	if err := c.store.Save(envelope.TokenSession, ttl); err != nil {
		c.Logger.Error("save refreshed credential: %v", err)
	}
	return nil
}

func (c *RemoteClient) Verify(ctx context.Context, token string) (*AccountPayload, error) {
	payload := &AccountPayload{}
	req := c.rest.R().SetContext(ctx).SetResult(payload)
	if token != "" {
		// explicit credential wins over whatever the store holds
		c.setCredential(req, token)
	}

	resp, err := req.Get(c.routes.Verify)
	return c.accountResponse(payload, resp, err, NewAuthFailure)
}

func (c *RemoteClient) Login(ctx context.Context, payload SignInRequest) (*AccountPayload, error) {
	account := &AccountPayload{}
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(account).
		Post(c.routes.Login)

	return c.accountResponse(account, resp, err, NewAuthFailure)
}

func (c *RemoteClient) Register(ctx context.Context, payload SignUpRequest) (*AccountPayload, error) {
	account := &AccountPayload{}
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(account).
		Post(c.routes.Register)

	return c.accountResponse(account, resp, err, NewValidationFailure)
}

// Logout is best effort on the caller's side: the manager proceeds with
// local cleanup whatever this returns.
func (c *RemoteClient) Logout(ctx context.Context) error {
	resp, err := c.rest.R().SetContext(ctx).Post(c.routes.Logout)
	if err != nil {
		return NewNetworkFailure(err)
	}
	return classifyResponse(resp)
}

func (c *RemoteClient) DeleteAccount(ctx context.Context, payload DeleteAccountRequest) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(payload).
		Delete(c.routes.Account)
	if err != nil {
		return NewNetworkFailure(err)
	}
	return classifyResponse(resp)
}

// RequestPasswordRecovery asks the backend to send a recovery email.
// Pure pass-through: no session state is touched.
func (c *RemoteClient) RequestPasswordRecovery(ctx context.Context, email string) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email}).
		Post(c.routes.Recovery)
	if err != nil {
		return NewNetworkFailure(err)
	}
	return classifyResponse(resp)
}

// ResetPassword completes a recovery flow with the emailed reset token.
func (c *RemoteClient) ResetPassword(ctx context.Context, resetToken, password string) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(map[string]string{"token": resetToken, "password": password}).
		Post(c.routes.PasswordReset)
	if err != nil {
		return NewNetworkFailure(err)
	}
	return classifyResponse(resp)
}

func (c *RemoteClient) accountResponse(payload *AccountPayload, resp *resty.Response, err error, softFailure func(string) *goerrors.Error) (*AccountPayload, error) {
	if err != nil {
		return nil, NewNetworkFailure(err)
	}

	if c.Debug {
		c.Logger.Debug("session response %s: %s", resp.Request.URL, print.MaybePrettyJSON(payload))
	}

	if failure := classifyResponse(resp); failure != nil {
		return nil, failure
	}

	// soft-error envelope: 2xx with {error: true, message}
	if payload.Error {
		return nil, softFailure(payload.Message)
	}

	return payload, nil
}

func classifyResponse(resp *resty.Response) error {
	code := resp.StatusCode()
	if code < http.StatusBadRequest {
		return nil
	}

	message := responseMessage(resp)
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return NewAuthFailure(message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return NewValidationFailure(message)
	default:
		return NewUnknownFailure(message)
	}
}

func responseMessage(resp *resty.Response) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return resp.Status()
}
