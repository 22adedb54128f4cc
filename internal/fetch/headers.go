package fetch

import (
	"math/rand"
	"net/http"
	"sync"
)

// The site throttles repeat clients, so every request wears a different
// browser identity drawn from these pools.

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36 Edg/124.0.0.0",
	"Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0",
}

var referers = []string{
	"https://google.com/",
	"https://youtube.com/",
	"https://facebook.com/",
	"https://twitter.com/",
	"https://nytimes.com/",
	"https://washingtonpost.com/",
	"https://linkedin.com/",
	"https://nhl.com/",
	"https://mlb.com/",
	"https://nfl.com/",
}

type headerPool struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newHeaderPool(seed int64) *headerPool {
	return &headerPool{rng: rand.New(rand.NewSource(seed))}
}

// apply stamps a randomized browser identity onto the request.
func (p *headerPool) apply(req *http.Request) {
	p.mu.Lock()
	ua := userAgents[p.rng.Intn(len(userAgents))]
	ref := referers[p.rng.Intn(len(referers))]
	p.mu.Unlock()

	req.Header.Set("User-Agent", ua)
	req.Header.Set("Referer", ref)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
}
