package komfovent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	DefaultPort    = 80
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 1 << 20 // 1 MB
)

// Config describes how to reach one panel.
type Config struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
	// BaseURL overrides Host and Port, e.g. "https://panel.lan:8443".
	BaseURL string `mapstructure:"base_url"`
	// Profile defaults to DefaultProfile().
	Profile *Profile `mapstructure:"-"`
}

// session is the lazily opened connection pool of a Client.
type session struct {
	http      *http.Client
	transport *http.Transport
	ctx       context.Context
	cancel    context.CancelFunc
}

// Client talks to one C6 web panel. Calls on one Client must be serialized
// by the caller; Close may be called from any goroutine.
type Client struct {
	baseURL  string
	username string
	password string
	timeout  time.Duration
	profile  *Profile

	mu   sync.Mutex // guards sess
	sess *session
}

// NewClient builds a client. No connection is made until the first call.
func NewClient(cfg Config) *Client {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Profile == nil {
		cfg.Profile = DefaultProfile()
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "http://" + net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	}
	return &Client{
		baseURL:  base,
		username: cfg.Username,
		password: cfg.Password,
		timeout:  cfg.Timeout,
		profile:  cfg.Profile,
	}
}

// BaseURL returns the panel root URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Profile returns the register map used by the client.
func (c *Client) Profile() *Profile { return c.profile }

// Authenticate checks the credentials against the panel root page.
// An unexpected HTTP status yields false without error; a rejected login
// yields ErrAuth and an unreachable panel ErrConnection.
func (c *Client) Authenticate(ctx context.Context) (bool, error) {
	body, err := c.request(ctx, c.profile.Endpoints.Auth, nil)
	if errors.Is(err, errUnexpectedStatus) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(body) > c.profile.Auth.MinBody, nil
}

// GetState reads the main and detail documents and merges them.
func (c *Client) GetState(ctx context.Context) (DeviceState, error) {
	main, err := c.fetch(ctx, c.profile.Endpoints.Main)
	if err != nil {
		return DeviceState{}, err
	}
	detail, err := c.fetch(ctx, c.profile.Endpoints.Detail)
	if err != nil {
		return DeviceState{}, err
	}
	st, err := ParseState(main, detail)
	if err != nil {
		return DeviceState{}, fmt.Errorf("%w: failed to parse state: %w", ErrConnection, err)
	}
	return st, nil
}

// SetMode switches the operating mode: away, normal, intensive or boost.
func (c *Client) SetMode(ctx context.Context, name string) error {
	code, ok := c.profile.ModeCode(name)
	if !ok {
		return fmt.Errorf("%w: unknown mode %q", ErrValidation, name)
	}
	return c.SetRegister(ctx, c.profile.Registers.Mode, strconv.Itoa(code))
}

// SetSupplyTemp writes the supply temperature setpoint in °C.
func (c *Client) SetSupplyTemp(ctx context.Context, celsius float64) error {
	if math.IsNaN(celsius) || math.IsInf(celsius, 0) {
		return fmt.Errorf("%w: temperature %v", ErrValidation, celsius)
	}
	return c.SetRegister(ctx, c.profile.Registers.SupplyTemp, formatScaled(celsius, c.profile.Registers.SupplyTempScale))
}

// SetRegister writes one register. value must already be scaled.
func (c *Client) SetRegister(ctx context.Context, number int, value string) error {
	form := url.Values{}
	form.Set(strconv.Itoa(number), value)
	_, err := c.request(ctx, c.profile.Endpoints.Control, form)
	return err
}

// GetSchedule reads the schedule registers and the active program.
func (c *Client) GetSchedule(ctx context.Context) (RawSchedule, error) {
	data, err := c.fetch(ctx, c.profile.Endpoints.Schedule)
	if err != nil {
		return RawSchedule{}, err
	}
	raw, err := decodeRawSchedule(data, c.profile.Schedule)
	if err != nil {
		return RawSchedule{}, fmt.Errorf("%w: failed to parse schedule: %w", ErrConnection, err)
	}
	return raw, nil
}

// SetSchedule posts a batch of register writes in one request.
func (c *Client) SetSchedule(ctx context.Context, commands map[string]int) error {
	if len(commands) == 0 {
		return nil
	}
	form := url.Values{}
	for reg, v := range commands {
		if _, err := strconv.Atoi(reg); err != nil {
			return fmt.Errorf("%w: register %q is not a number", ErrValidation, reg)
		}
		form.Set(reg, strconv.Itoa(v))
	}
	_, err := c.request(ctx, c.profile.Endpoints.Schedule, form)
	return err
}

// Close cancels in-flight requests and releases pooled connections.
// It is safe to call more than once; a later call reopens a session.
func (c *Client) Close() error {
	c.mu.Lock()
	sess := c.sess
	c.sess = nil
	c.mu.Unlock()

	if sess == nil {
		return nil
	}
	sess.cancel()
	sess.transport.CloseIdleConnections()
	return nil
}

func (c *Client) ensureSession() *session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess != nil {
		return c.sess
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.MaxIdleConnsPerHost = 2
	ctx, cancel := context.WithCancel(context.Background())
	c.sess = &session{
		http:      &http.Client{Transport: tr, Timeout: c.timeout},
		transport: tr,
		ctx:       ctx,
		cancel:    cancel,
	}
	return c.sess
}

// fetch is request for reads: one retry on a transport failure with fresh
// connections. A Close during the first attempt suppresses the retry.
func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	sess := c.ensureSession()
	data, err := c.request(ctx, path, nil)
	if err == nil || sess.ctx.Err() != nil || !retryable(ctx, err) {
		return data, err
	}
	sess.transport.CloseIdleConnections()
	return c.request(ctx, path, nil)
}

func retryable(ctx context.Context, err error) bool {
	return ctx.Err() == nil &&
		errors.Is(err, ErrConnection) &&
		!errors.Is(err, errUnexpectedStatus)
}

// request performs one authenticated exchange with the panel. Every call
// to the device goes through here.
func (c *Client) request(ctx context.Context, path string, form url.Values) ([]byte, error) {
	auth := c.profile.Auth
	body := url.Values{}
	for k, vs := range form {
		// The login fields share the register namespace of the form.
		if k == auth.UsernameField || k == auth.PasswordField {
			return nil, fmt.Errorf("%w: register %s is reserved for the login form", ErrValidation, k)
		}
		body[k] = vs
	}
	body.Set(auth.UsernameField, c.username)
	body.Set(auth.PasswordField, c.password)

	sess := c.ensureSession()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(sess.ctx, cancel)
	defer stop()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(body.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %w", ErrConnection, path, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.username, c.password)

	resp, err := sess.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConnection, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrConnection, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: %s returned %d", ErrAuth, path, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %w %d from %s", ErrConnection, errUnexpectedStatus, resp.StatusCode, path)
	case c.isLoginPage(data):
		return nil, fmt.Errorf("%w: %s answered with the login page", ErrAuth, path)
	}
	return data, nil
}

func (c *Client) isLoginPage(body []byte) bool {
	lower := bytes.ToLower(body)
	for _, marker := range c.profile.Auth.LoginMarkers {
		if bytes.Contains(lower, []byte(strings.ToLower(marker))) {
			return true
		}
	}
	return false
}

func decodeRawSchedule(data []byte, l ScheduleLayout) (RawSchedule, error) {
	fields, err := readDocument(data)
	if err != nil {
		return RawSchedule{}, err
	}
	var raw RawSchedule
	if v := strings.TrimSpace(fields[l.Tags.Program]); v != "" {
		if raw.CurrentProgram, err = strconv.Atoi(v); err != nil {
			return RawSchedule{}, fmt.Errorf("%w: current program %q", ErrParse, v)
		}
	}
	lists := []struct {
		tag  string
		dst  *[]int
		want int
	}{
		{l.Tags.WeekdayMask, &raw.WeekdayMask, l.TotalRows()},
		{l.Tags.Mode, &raw.Mode, l.TotalEntries()},
		{l.Tags.Start, &raw.Start, l.TotalEntries()},
		{l.Tags.Stop, &raw.Stop, l.TotalEntries()},
	}
	for _, list := range lists {
		vals, err := parseIntList(fields[list.tag])
		if err != nil {
			return RawSchedule{}, fmt.Errorf("%s: %w", list.tag, err)
		}
		if len(vals) < list.want {
			return RawSchedule{}, fmt.Errorf("%w: %s has %d values, want %d", ErrParse, list.tag, len(vals), list.want)
		}
		*list.dst = vals
	}
	return raw, nil
}

func parseIntList(s string) ([]int, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == ',' || r == ' ' || r == '\n' || r == '\t' || r == '\r'
	})
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrParse, p)
		}
		out = append(out, v)
	}
	return out, nil
}
