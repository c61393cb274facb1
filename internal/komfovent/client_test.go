package komfovent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
)

const rootPage = `<html><head><title>C6</title></head><body>` +
	`<div>Komfovent C6 control panel, firmware 1.3.15, all systems nominal.</div>` +
	`<div>Supply 21.5 Extract 23.0 Outdoor 5.0</div></body></html>`

const loginPage = `<html><body><form><input name="1"><input type="password" name="2"></form></body></html>`

// fakePanel is a scripted C6 web panel.
type fakePanel struct {
	mu       sync.Mutex
	posts    []url.Values
	paths    []string
	status   int
	login    bool
	main     string
	detail   string
	schedule string
}

func (p *fakePanel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	p.mu.Lock()
	p.posts = append(p.posts, r.PostForm)
	p.paths = append(p.paths, r.URL.Path)
	status, login := p.status, p.login
	main, detail, schedule := p.main, p.detail, p.schedule
	p.mu.Unlock()

	user, pass, ok := r.BasicAuth()
	if !ok || user != "user" || pass != "pass" || r.PostForm.Get("1") != "user" || r.PostForm.Get("2") != "pass" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if status != 0 {
		w.WriteHeader(status)
		return
	}
	if login {
		fmt.Fprint(w, loginPage)
		return
	}
	switch r.URL.Path {
	case "/":
		fmt.Fprint(w, rootPage)
	case "/i.asp":
		fmt.Fprint(w, main)
	case "/det.asp":
		fmt.Fprint(w, detail)
	case "/sh.asp":
		fmt.Fprint(w, schedule)
	default:
		http.NotFound(w, r)
	}
}

func (p *fakePanel) lastPost(t *testing.T) url.Values {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.posts) == 0 {
		t.Fatalf("no request reached the panel")
	}
	return p.posts[len(p.posts)-1]
}

func (p *fakePanel) set(fn func(p *fakePanel)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p)
}

func (p *fakePanel) path(i int) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 {
		i += len(p.paths)
	}
	return p.paths[i]
}

func (p *fakePanel) requests() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.posts)
}

func newPanel(t *testing.T) (*fakePanel, *Client) {
	t.Helper()
	panel := &fakePanel{main: fullMainXML, detail: fullDetailXML}
	srv := httptest.NewServer(panel)
	t.Cleanup(srv.Close)
	c := NewClient(Config{BaseURL: srv.URL, Username: "user", Password: "pass", Timeout: 2 * time.Second})
	t.Cleanup(func() { _ = c.Close() })
	return panel, c
}

func TestNewClient_BaseURL(t *testing.T) {
	if got := NewClient(Config{Host: "192.168.0.50"}).BaseURL(); got != "http://192.168.0.50:80" {
		t.Fatalf("base url: %s", got)
	}
	if got := NewClient(Config{Host: "panel.lan", Port: 8080}).BaseURL(); got != "http://panel.lan:8080" {
		t.Fatalf("base url: %s", got)
	}
	if got := NewClient(Config{Host: "ignored", BaseURL: "https://panel.lan:8443/"}).BaseURL(); got != "https://panel.lan:8443" {
		t.Fatalf("base url: %s", got)
	}
}

func TestClient_Authenticate(t *testing.T) {
	panel, c := newPanel(t)
	ctx := context.Background()

	ok, err := c.Authenticate(ctx)
	if err != nil || !ok {
		t.Fatalf("Authenticate: %v, %v", ok, err)
	}

	panel.set(func(p *fakePanel) { p.login = true })
	if _, err := c.Authenticate(ctx); !errors.Is(err, ErrAuth) {
		t.Fatalf("login page: expected ErrAuth, got %v", err)
	}

	panel.set(func(p *fakePanel) { p.login, p.status = false, http.StatusInternalServerError })
	ok, err = c.Authenticate(ctx)
	if err != nil || ok {
		t.Fatalf("unexpected status: expected false without error, got %v, %v", ok, err)
	}
}

func TestClient_AuthenticateRejected(t *testing.T) {
	_, c := newPanel(t)
	c.password = "wrong"
	if _, err := c.Authenticate(context.Background()); !errors.Is(err, ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
}

func TestClient_AuthenticateShortBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>ok</html>")
	}))
	defer srv.Close()
	c := NewClient(Config{BaseURL: srv.URL})
	defer c.Close()

	ok, err := c.Authenticate(context.Background())
	if err != nil || ok {
		t.Fatalf("short body: got %v, %v", ok, err)
	}
}

func TestClient_GetState(t *testing.T) {
	panel, c := newPanel(t)

	st, err := c.GetState(context.Background())
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if st.Mode != "NORMALNY" || st.SupplyTemp == nil || *st.SupplyTemp != 21.5 {
		t.Fatalf("state: %+v", st)
	}
	if st.HeatExchangerPercent == nil || *st.HeatExchangerPercent != 85 {
		t.Fatalf("detail fields not merged: %+v", st)
	}
	if panel.path(0) != "/i.asp" || panel.path(1) != "/det.asp" {
		t.Fatalf("paths: %s %s", panel.path(0), panel.path(1))
	}
}

func TestClient_GetStateParseError(t *testing.T) {
	panel, c := newPanel(t)
	panel.set(func(p *fakePanel) { p.detail = "<data><SFI>50" })

	_, err := c.GetState(context.Background())
	if !errors.Is(err, ErrConnection) || !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrConnection wrapping ErrParse, got %v", err)
	}
	if !strings.Contains(err.Error(), "failed to parse") {
		t.Fatalf("message: %v", err)
	}
}

func TestClient_SetMode(t *testing.T) {
	panel, c := newPanel(t)
	ctx := context.Background()

	if err := c.SetMode(ctx, "intensive"); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if got := panel.lastPost(t).Get("3"); got != "3" {
		t.Fatalf("mode register: got %q", got)
	}
	if panel.path(-1) != "/i.asp" {
		t.Fatalf("control path: %s", panel.path(-1))
	}

	before := panel.requests()
	if err := c.SetMode(ctx, "turbo"); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown mode: expected ErrValidation, got %v", err)
	}
	if panel.requests() != before {
		t.Fatalf("an invalid mode must not reach the panel")
	}
}

func TestClient_SetSupplyTemp(t *testing.T) {
	panel, c := newPanel(t)
	ctx := context.Background()

	for in, want := range map[float64]string{22.5: "225", 10.0: "100", 21.04: "210"} {
		if err := c.SetSupplyTemp(ctx, in); err != nil {
			t.Fatalf("SetSupplyTemp(%v): %v", in, err)
		}
		if got := panel.lastPost(t).Get("4"); got != want {
			t.Fatalf("SetSupplyTemp(%v): register 4 = %q, want %q", in, got, want)
		}
	}
}

func TestClient_WriteErrors(t *testing.T) {
	panel, c := newPanel(t)
	ctx := context.Background()

	panel.set(func(p *fakePanel) { p.status = http.StatusServiceUnavailable })
	if err := c.SetRegister(ctx, 247, "50"); !errors.Is(err, ErrConnection) {
		t.Fatalf("expected ErrConnection, got %v", err)
	}
	if panel.requests() != 1 {
		t.Fatalf("writes must not be retried, got %d requests", panel.requests())
	}

	panel.set(func(p *fakePanel) { p.status = http.StatusUnauthorized })
	if err := c.SetMode(ctx, "away"); !errors.Is(err, ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
}

func TestClient_LoginFieldRegisters(t *testing.T) {
	panel, c := newPanel(t)
	ctx := context.Background()

	if err := c.SetRegister(ctx, 2, "55"); !errors.Is(err, ErrValidation) {
		t.Fatalf("register 2: expected ErrValidation, got %v", err)
	}
	if err := c.SetSchedule(ctx, map[string]int{"700": 127, "1": 3}); !errors.Is(err, ErrValidation) {
		t.Fatalf("schedule with register 1: expected ErrValidation, got %v", err)
	}
	if panel.requests() != 0 {
		t.Fatalf("a write over a login field must not reach the panel, got %d requests", panel.requests())
	}

	if err := c.SetRegister(ctx, 247, "50"); err != nil {
		t.Fatalf("SetRegister: %v", err)
	}
	post := panel.lastPost(t)
	if post.Get("1") != "user" || post.Get("2") != "pass" || post.Get("247") != "50" {
		t.Fatalf("form: %v", post)
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c := NewClient(Config{BaseURL: addr, Timeout: time.Second})
	defer c.Close()

	if _, err := c.GetState(context.Background()); !errors.Is(err, ErrConnection) {
		t.Fatalf("GetState: expected ErrConnection, got %v", err)
	}
	if _, err := c.Authenticate(context.Background()); !errors.Is(err, ErrConnection) {
		t.Fatalf("Authenticate: expected ErrConnection, got %v", err)
	}
}

func TestClient_CloseIdempotent(t *testing.T) {
	_, c := newPanel(t)

	if err := c.Close(); err != nil {
		t.Fatalf("close before use: %v", err)
	}
	if _, err := c.GetState(context.Background()); err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	// a closed client reopens on demand
	if _, err := c.GetState(context.Background()); err != nil {
		t.Fatalf("GetState after close: %v", err)
	}
}

func TestClient_CloseCancelsInFlight(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	done := make(chan error, 1)
	go func() {
		_, err := c.GetState(context.Background())
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	_ = c.Close()

	select {
	case err := <-done:
		if !errors.Is(err, ErrConnection) {
			t.Fatalf("expected ErrConnection, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Close did not cancel the request")
	}
}

func scheduleDoc() string {
	masks := make([]string, 16)
	modes := make([]string, 80)
	starts := make([]string, 80)
	stops := make([]string, 80)
	for i := range masks {
		masks[i] = "0"
	}
	for i := range modes {
		modes[i], starts[i], stops[i] = "1", "0", "0"
	}
	masks[0] = "127"
	modes[0], starts[0], stops[0] = "2", "480", "1080"
	return "<data><PRG>2</PRG>" +
		"<WM>" + strings.Join(masks, ";") + "</WM>" +
		"<SM>" + strings.Join(modes, ",") + "</SM>" +
		"<SB>" + strings.Join(starts, " ") + "</SB>" +
		"<SE>" + strings.Join(stops, ";") + "</SE></data>"
}

func TestClient_GetSchedule(t *testing.T) {
	panel, c := newPanel(t)
	panel.set(func(p *fakePanel) { p.schedule = scheduleDoc() })

	raw, err := c.GetSchedule(context.Background())
	if err != nil {
		t.Fatalf("GetSchedule: %v", err)
	}
	if raw.CurrentProgram != 2 || raw.WeekdayMask[0] != 127 || raw.Mode[0] != 2 || raw.Start[0] != 480 || raw.Stop[0] != 1080 {
		t.Fatalf("raw: program=%d mask=%d mode=%d start=%d stop=%d",
			raw.CurrentProgram, raw.WeekdayMask[0], raw.Mode[0], raw.Start[0], raw.Stop[0])
	}
	schedules, err := ParseScheduleConfig(raw)
	if err != nil || len(schedules[0].Rows) != 1 {
		t.Fatalf("parse: %v %+v", err, schedules)
	}

	panel.set(func(p *fakePanel) { p.schedule = "<data><PRG>0</PRG><WM>1;2</WM></data>" })
	if _, err := c.GetSchedule(context.Background()); !errors.Is(err, ErrConnection) || !errors.Is(err, ErrParse) {
		t.Fatalf("short lists: expected ErrConnection and ErrParse, got %v", err)
	}
}

func TestClient_SetSchedule(t *testing.T) {
	panel, c := newPanel(t)
	ctx := context.Background()

	cmds, err := BuildScheduleCommands(0, 0, 127, []ScheduleEntry{{Mode: ScheduleNormal, StartHour: 8, StopHour: 18}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := c.SetSchedule(ctx, cmds); err != nil {
		t.Fatalf("SetSchedule: %v", err)
	}
	if panel.requests() != 1 {
		t.Fatalf("expected one batched request, got %d", panel.requests())
	}
	form := panel.lastPost(t)
	if form.Get("700") != "127" || form.Get("620") != "2" || form.Get("300") != "480" || form.Get("380") != "1080" {
		t.Fatalf("form: %v", form)
	}

	if err := c.SetSchedule(ctx, nil); err != nil || panel.requests() != 1 {
		t.Fatalf("empty batch must be a no-op: %v", err)
	}
	if err := c.SetSchedule(ctx, map[string]int{"abc": 1}); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad register: expected ErrValidation, got %v", err)
	}
}
