package algorithm

// Holding is a position held by the portfolio in a single symbol.
type Holding struct {
	Symbol   string
	Quantity float64
	Currency string
}

// Portfolio tracks the algorithm's cash book and holdings. Balances are keyed
// by ISO currency code; the account currency is the reporting currency for
// Cash().
type Portfolio struct {
	accountCurrency string
	cashBook        map[string]float64
	holdings        map[string]Holding
}

// NewPortfolio creates an empty Portfolio reporting in accountCurrency.
func NewPortfolio(accountCurrency string) *Portfolio {
	return &Portfolio{
		accountCurrency: accountCurrency,
		cashBook:        make(map[string]float64),
		holdings:        make(map[string]Holding),
	}
}

// AccountCurrency returns the portfolio's reporting currency.
func (p *Portfolio) AccountCurrency() string {
	return p.accountCurrency
}

// Cash returns the balance held in the account currency.
func (p *Portfolio) Cash() float64 {
	return p.cashBook[p.accountCurrency]
}

// SetCash sets the balance for a currency.
func (p *Portfolio) SetCash(currency string, amount float64) {
	p.cashBook[currency] = amount
}

// CashBook returns a copy of all currency balances.
func (p *Portfolio) CashBook() map[string]float64 {
	book := make(map[string]float64, len(p.cashBook))
	for cur, amount := range p.cashBook {
		book[cur] = amount
	}
	return book
}

// AddHolding records a holding, replacing any existing one for the symbol.
func (p *Portfolio) AddHolding(h Holding) {
	p.holdings[h.Symbol] = h
}

// Holdings returns a copy of all holdings.
func (p *Portfolio) Holdings() []Holding {
	out := make([]Holding, 0, len(p.holdings))
	for _, h := range p.holdings {
		out = append(out, h)
	}
	return out
}

// Currencies returns every currency referenced by the cash book or by a
// holding, including the account currency.
func (p *Portfolio) Currencies() []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(p.cashBook)+1)
	add := func(cur string) {
		if cur != "" && !seen[cur] {
			seen[cur] = true
			out = append(out, cur)
		}
	}
	add(p.accountCurrency)
	for cur := range p.cashBook {
		add(cur)
	}
	for _, h := range p.holdings {
		add(h.Currency)
	}
	return out
}
