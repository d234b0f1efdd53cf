package browser

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/kwshi/stripcode-bot/internal/auth"
	"github.com/kwshi/stripcode-bot/internal/config"
)

// GitHub login form selectors
const (
	loginField    = "form [name='login']"
	passwordField = "form [name='password']"
	otpField      = "form [name='otp']"
	submitButton  = "form [type='submit']"
)

// ErrNotOpen is returned when the session is used before Open
var ErrNotOpen = errors.New("browser session not open")

// Authenticator supplies login credentials and 2FA codes
type Authenticator interface {
	Credentials() (auth.Credentials, error)
	OTP() (string, error)
}

// Session owns the browser process and the single game page
type Session struct {
	cfg     config.BrowserConfig
	gameURL string
	auth    Authenticator
	logger  *zap.Logger

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *Page
}

// NewSession creates a session. Nothing is launched until Open.
func NewSession(cfg *config.Config, authenticator Authenticator, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		cfg:     cfg.Browser,
		gameURL: cfg.Game.URL,
		auth:    authenticator,
		logger:  logger,
	}
}

// Open launches Chrome, restores saved cookies and loads the game
func (s *Session) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser != nil {
		return nil
	}

	l := launcher.New().Headless(!s.cfg.ShowWindow)
	if s.cfg.Bin != "" {
		l = l.Bin(s.cfg.Bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launch chrome: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connect to chrome: %w", err)
	}

	rp, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = b.Close()
		l.Kill()
		return fmt.Errorf("create page: %w", err)
	}

	s.launcher = l
	s.browser = b
	s.page = NewPage(rp, s.cfg.NavigationTimeout)

	cookies, err := LoadCookies(s.cfg.CookiesPath)
	if err != nil {
		s.logger.Warn("ignoring saved cookies", zap.String("path", s.cfg.CookiesPath), zap.Error(err))
	} else if err := s.page.SetCookies(ctx, cookies); err != nil {
		s.logger.Warn("failed to restore cookies", zap.Error(err))
	} else if len(cookies) > 0 {
		s.logger.Debug("restored cookies", zap.Int("count", len(cookies)))
	}

	if err := s.page.Navigate(ctx, s.gameURL); err != nil {
		return err
	}

	s.logger.Info("browser session opened", zap.String("url", s.gameURL), zap.Bool("headless", !s.cfg.ShowWindow))
	return nil
}

// Page returns the game page, or nil before Open
func (s *Session) Page() *Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// EnsureAuthenticated logs in when the game has redirected to the login host
func (s *Session) EnsureAuthenticated(ctx context.Context) error {
	page := s.Page()
	if page == nil {
		return ErrNotOpen
	}

	current, err := page.URL(ctx)
	if err != nil {
		return err
	}
	if !NeedsLogin(current, s.cfg.LoginHost) {
		return nil
	}

	s.logger.Info("login required", zap.String("url", current))
	return s.Login(ctx)
}

// Reload navigates back to the game
func (s *Session) Reload(ctx context.Context) error {
	page := s.Page()
	if page == nil {
		return ErrNotOpen
	}
	return page.Navigate(ctx, s.gameURL)
}

// Login submits the GitHub login form, answers the 2FA prompt when shown,
// returns to the game and saves the session cookies
func (s *Session) Login(ctx context.Context) error {
	page := s.Page()
	if page == nil {
		return ErrNotOpen
	}

	creds, err := s.auth.Credentials()
	if err != nil {
		return err
	}

	if err := page.Input(ctx, loginField, creds.Username); err != nil {
		return err
	}
	if err := page.Input(ctx, passwordField, creds.Password); err != nil {
		return err
	}
	if err := page.SubmitAndWait(ctx, submitButton); err != nil {
		return err
	}

	hasOTP, err := page.Has(ctx, otpField)
	if err != nil {
		return fmt.Errorf("check for 2FA form: %w", err)
	}
	if hasOTP {
		code, err := s.auth.OTP()
		if err != nil {
			return err
		}
		if err := page.Input(ctx, otpField, code); err != nil {
			return err
		}
		if err := page.SubmitAndWait(ctx, submitButton); err != nil {
			return err
		}
	}

	current, err := page.URL(ctx)
	if err != nil {
		return err
	}
	if NeedsLogin(current, s.cfg.LoginHost) {
		return fmt.Errorf("login did not complete, still at %s", current)
	}
	if !strings.HasPrefix(current, s.gameURL) {
		if err := page.Navigate(ctx, s.gameURL); err != nil {
			return err
		}
	}

	s.logger.Info("logged in", zap.String("username", creds.Username))
	return s.SaveCookies(ctx)
}

// SaveCookies persists the browser's cookies to the configured path
func (s *Session) SaveCookies(ctx context.Context) error {
	page := s.Page()
	if page == nil {
		return ErrNotOpen
	}

	cookies, err := page.Cookies(ctx)
	if err != nil {
		return fmt.Errorf("failed to read cookies: %w", err)
	}
	if err := SaveCookies(s.cfg.CookiesPath, cookies); err != nil {
		return err
	}

	s.logger.Debug("saved cookies", zap.String("path", s.cfg.CookiesPath), zap.Int("count", len(cookies)))
	return nil
}

// Close shuts down the browser
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher.Cleanup()
		s.launcher = nil
	}
	s.page = nil
	return err
}

// NeedsLogin reports whether rawURL is on the login host or one of its subdomains
func NeedsLogin(rawURL, loginHost string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	loginHost = strings.ToLower(loginHost)
	return host == loginHost || strings.HasSuffix(host, "."+loginHost)
}
