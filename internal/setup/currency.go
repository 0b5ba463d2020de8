package setup

import "saturn/pkg/algorithm"

// CurrencyFeedEnsurer guarantees a conversion data feed exists for every
// currency the portfolio references.
type CurrencyFeedEnsurer interface {
	EnsureCurrencyDataFeeds(subs *algorithm.SubscriptionManager, portfolio *algorithm.Portfolio) error
}

// Compile-time interface check.
var _ CurrencyFeedEnsurer = (*FeedEnsurer)(nil)

// FeedEnsurer adds a conversion-pair subscription for each non-account
// currency found in the cash book or holdings that does not already have one.
type FeedEnsurer struct{}

// NewFeedEnsurer creates a FeedEnsurer.
func NewFeedEnsurer() *FeedEnsurer {
	return &FeedEnsurer{}
}

// EnsureCurrencyDataFeeds subscribes the missing conversion pairs. The pair
// symbol is the foreign currency followed by the account currency, e.g.
// "EURUSD" for a EUR balance in a USD account.
func (f *FeedEnsurer) EnsureCurrencyDataFeeds(subs *algorithm.SubscriptionManager, portfolio *algorithm.Portfolio) error {
	account := portfolio.AccountCurrency()
	for _, cur := range portfolio.Currencies() {
		if cur == account {
			continue
		}
		pair := cur + account
		if !subs.Has(pair) {
			subs.Add(pair)
		}
	}
	return nil
}
