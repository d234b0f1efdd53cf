// Package browser drives the game page through a Chrome DevTools session.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/sync/errgroup"
)

// Page adapts a rod page to the reader and driver interfaces used by the bot.
// Every call is bounded by the navigation timeout.
type Page struct {
	page    *rod.Page
	timeout time.Duration
}

// NewPage wraps a rod page
func NewPage(page *rod.Page, timeout time.Duration) *Page {
	return &Page{page: page, timeout: timeout}
}

func (p *Page) scoped(ctx context.Context) (*rod.Page, context.CancelFunc) {
	if p.timeout <= 0 {
		ctx, cancel := context.WithCancel(ctx)
		return p.page.Context(ctx), cancel
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	return p.page.Context(ctx), cancel
}

// WaitForElements blocks until every selector matches
func (p *Page) WaitForElements(ctx context.Context, selectors ...string) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, sel := range selectors {
		sel := sel
		g.Go(func() error {
			pg, cancel := p.scoped(gctx)
			defer cancel()
			if _, err := pg.Element(sel); err != nil {
				return fmt.Errorf("wait for %s: %w", sel, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// ReadText returns the text of the first element matching selector
func (p *Page) ReadText(ctx context.Context, selector string) (string, bool, error) {
	pg, cancel := p.scoped(ctx)
	defer cancel()

	has, el, err := pg.Has(selector)
	if err != nil {
		return "", false, fmt.Errorf("query %s: %w", selector, err)
	}
	if !has {
		return "", false, nil
	}

	text, err := el.Text()
	if err != nil {
		return "", false, fmt.Errorf("read text of %s: %w", selector, err)
	}
	return text, true, nil
}

// ReadAll returns the text of every element matching selector
func (p *Page) ReadAll(ctx context.Context, selector string) ([]string, error) {
	pg, cancel := p.scoped(ctx)
	defer cancel()

	els, err := pg.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", selector, err)
	}

	texts := make([]string, 0, len(els))
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			return nil, fmt.Errorf("read text of %s: %w", selector, err)
		}
		texts = append(texts, text)
	}
	return texts, nil
}

// ReadAttributes returns attr of every element matching selector, skipping
// elements without it
func (p *Page) ReadAttributes(ctx context.Context, selector, attr string) ([]string, error) {
	pg, cancel := p.scoped(ctx)
	defer cancel()

	els, err := pg.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", selector, err)
	}

	values := make([]string, 0, len(els))
	for _, el := range els {
		v, err := el.Attribute(attr)
		if err != nil {
			return nil, fmt.Errorf("read %s of %s: %w", attr, selector, err)
		}
		if v != nil {
			values = append(values, *v)
		}
	}
	return values, nil
}

// Click waits for selector and clicks it
func (p *Page) Click(ctx context.Context, selector string) error {
	pg, cancel := p.scoped(ctx)
	defer cancel()

	el, err := pg.Element(selector)
	if err != nil {
		return fmt.Errorf("find %s: %w", selector, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

// Input waits for selector and types text into it
func (p *Page) Input(ctx context.Context, selector, text string) error {
	pg, cancel := p.scoped(ctx)
	defer cancel()

	el, err := pg.Element(selector)
	if err != nil {
		return fmt.Errorf("find %s: %w", selector, err)
	}
	if err := el.Input(text); err != nil {
		return fmt.Errorf("input into %s: %w", selector, err)
	}
	return nil
}

// Has reports whether selector currently matches, without waiting
func (p *Page) Has(ctx context.Context, selector string) (bool, error) {
	pg, cancel := p.scoped(ctx)
	defer cancel()

	has, _, err := pg.Has(selector)
	return has, err
}

// Navigate loads url and waits for the load event
func (p *Page) Navigate(ctx context.Context, url string) error {
	pg, cancel := p.scoped(ctx)
	defer cancel()

	if err := pg.Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := pg.WaitLoad(); err != nil {
		return fmt.Errorf("wait for %s: %w", url, err)
	}
	return nil
}

// SubmitAndWait clicks selector and waits for the navigation it triggers
func (p *Page) SubmitAndWait(ctx context.Context, selector string) error {
	pg, cancel := p.scoped(ctx)
	defer cancel()

	wait := pg.WaitNavigation(proto.PageLifecycleEventNameNetworkAlmostIdle)

	el, err := pg.Element(selector)
	if err != nil {
		return fmt.Errorf("find %s: %w", selector, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}

	wait()
	return nil
}

// URL returns the page's current location
func (p *Page) URL(ctx context.Context) (string, error) {
	pg, cancel := p.scoped(ctx)
	defer cancel()

	info, err := pg.Info()
	if err != nil {
		return "", fmt.Errorf("page info: %w", err)
	}
	return info.URL, nil
}

// Cookies returns every cookie visible to the browser
func (p *Page) Cookies(ctx context.Context) ([]*proto.NetworkCookie, error) {
	pg, cancel := p.scoped(ctx)
	defer cancel()

	res, err := proto.NetworkGetAllCookies{}.Call(pg)
	if err != nil {
		return nil, err
	}
	return res.Cookies, nil
}

// SetCookies installs cookies into the browser
func (p *Page) SetCookies(ctx context.Context, cookies []*proto.NetworkCookieParam) error {
	if len(cookies) == 0 {
		return nil
	}
	pg, cancel := p.scoped(ctx)
	defer cancel()

	return pg.SetCookies(cookies)
}
