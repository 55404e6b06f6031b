package view

import (
	"fmt"
	"slices"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nfrund/examwhispers/internal/domain"
)

// Page names known to the navigator.
const (
	PageHome    = "home"
	PageHistory = "history"
	PageQuiz    = "quiz"
)

// PageNames lists the page sections in display order.
var PageNames = []string{PageHome, PageHistory, PageQuiz}

var titleCaser = cases.Title(language.English)

// PageTitle returns the display title of a page name.
func PageTitle(name string) string {
	return titleCaser.String(name)
}

// PageID is the element id of a page section.
func PageID(name string) string {
	return "page-" + name
}

// Pages tracks which page section of a tab is active. At most one is.
type Pages struct {
	mu     sync.RWMutex
	active string
}

func NewPages() *Pages {
	return &Pages{}
}

// IsPage reports whether name is a known page.
func IsPage(name string) bool {
	return slices.Contains(PageNames, name)
}

// ActivatePage makes name the only active page.
func (p *Pages) ActivatePage(name string) error {
	if !IsPage(name) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPage, name)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = name
	return nil
}

// DeactivateAll clears the active state from every page.
func (p *Pages) DeactivateAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = ""
}

// Active returns the active page name, or "" when none is.
func (p *Pages) Active() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.active
}
