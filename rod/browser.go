package rod

import (
	"github.com/fwojciec/stagger"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// connect attaches to the DevTools endpoint at controlURL, or launches a
// local Chrome when controlURL is empty. The returned launcher is nil when
// attaching to an existing browser.
func connect(controlURL string, headless bool) (*rod.Browser, *launcher.Launcher, error) {
	if controlURL != "" {
		u, err := launcher.ResolveURL(controlURL)
		if err != nil {
			return nil, nil, stagger.Errorf(stagger.EUNAVAILABLE, "cannot reach browser at %s: %v", controlURL, err)
		}
		browser := rod.New().ControlURL(u)
		if err := browser.Connect(); err != nil {
			return nil, nil, stagger.Errorf(stagger.EUNAVAILABLE, "connecting to browser at %s: %v", controlURL, err)
		}
		return browser, nil, nil
	}

	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(headless)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, nil, stagger.Errorf(stagger.EUNAVAILABLE, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, nil, stagger.Errorf(stagger.EUNAVAILABLE, "connecting to browser: %v", err)
	}

	return browser, lnchr, nil
}
