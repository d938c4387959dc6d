package registry

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Entry describes one listed company the directory knows about.
type Entry struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	CompanyName string `json:"company_name"`
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
}

// Suggestion is one search result for the suggestions endpoint.
type Suggestion struct {
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	Display string `json:"display"`
}

// fuzzyCutoff is the minimum similarity for a closest-match hit.
const fuzzyCutoff = 0.6

// directory maps lowercase search names to entries. Several names can point
// at the same symbol.
var directory = []Entry{
	{"tcs", "TCS.NS", "Tata Consultancy Services Limited", "Information Technology", "Software Services"},
	{"tata consultancy services", "TCS.NS", "Tata Consultancy Services Limited", "Information Technology", "Software Services"},
	{"infosys", "INFY.NS", "Infosys Limited", "Information Technology", "Software Services"},
	{"wipro", "WIPRO.NS", "Wipro Limited", "Information Technology", "Software Services"},
	{"reliance", "RELIANCE.NS", "Reliance Industries Limited", "Oil & Gas", "Integrated Oil & Gas"},
	{"reliance industries", "RELIANCE.NS", "Reliance Industries Limited", "Oil & Gas", "Integrated Oil & Gas"},
	{"hdfc bank", "HDFCBANK.NS", "HDFC Bank Limited", "Financial Services", "Private Sector Bank"},
	{"hdfc", "HDFCBANK.NS", "HDFC Bank Limited", "Financial Services", "Private Sector Bank"},
	{"icici bank", "ICICIBANK.NS", "ICICI Bank Limited", "Financial Services", "Private Sector Bank"},
	{"icici", "ICICIBANK.NS", "ICICI Bank Limited", "Financial Services", "Private Sector Bank"},
	{"sbi", "SBIN.NS", "State Bank of India", "Financial Services", "Public Sector Bank"},
	{"state bank of india", "SBIN.NS", "State Bank of India", "Financial Services", "Public Sector Bank"},
	{"bharti airtel", "BHARTIARTL.NS", "Bharti Airtel Limited", "Telecommunication", "Telecom Services"},
	{"airtel", "BHARTIARTL.NS", "Bharti Airtel Limited", "Telecommunication", "Telecom Services"},
	{"itc", "ITC.NS", "ITC Limited", "Consumer Goods", "Tobacco Products"},
	{"hindustan unilever", "HINDUNILVR.NS", "Hindustan Unilever Limited", "Consumer Goods", "Personal Products"},
	{"hul", "HINDUNILVR.NS", "Hindustan Unilever Limited", "Consumer Goods", "Personal Products"},
	{"bajaj finance", "BAJFINANCE.NS", "Bajaj Finance Limited", "Financial Services", "NBFC"},
	{"bajaj", "BAJFINANCE.NS", "Bajaj Finance Limited", "Financial Services", "NBFC"},
	{"maruti suzuki", "MARUTI.NS", "Maruti Suzuki India Limited", "Automobile", "Passenger Cars"},
	{"maruti", "MARUTI.NS", "Maruti Suzuki India Limited", "Automobile", "Passenger Cars"},
	{"asian paints", "ASIANPAINT.NS", "Asian Paints Limited", "Consumer Goods", "Paints"},
	{"larsen", "LT.NS", "Larsen & Toubro Limited", "Construction", "Engineering"},
	{"l&t", "LT.NS", "Larsen & Toubro Limited", "Construction", "Engineering"},
	{"axis bank", "AXISBANK.NS", "Axis Bank Limited", "Financial Services", "Private Sector Bank"},
	{"axis", "AXISBANK.NS", "Axis Bank Limited", "Financial Services", "Private Sector Bank"},
	{"kotak bank", "KOTAKBANK.NS", "Kotak Mahindra Bank Limited", "Financial Services", "Private Sector Bank"},
	{"kotak", "KOTAKBANK.NS", "Kotak Mahindra Bank Limited", "Financial Services", "Private Sector Bank"},
	{"sun pharma", "SUNPHARMA.NS", "Sun Pharmaceutical Industries Limited", "Pharmaceuticals", "Pharmaceuticals"},
	{"titan", "TITAN.NS", "Titan Company Limited", "Consumer Goods", "Gems & Jewellery"},
	{"nestle", "NESTLEIND.NS", "Nestle India Limited", "Consumer Goods", "Packaged Foods"},
	{"ongc", "ONGC.NS", "Oil and Natural Gas Corporation", "Oil & Gas", "Exploration & Production"},
	{"ntpc", "NTPC.NS", "NTPC Limited", "Power", "Power Generation"},
	{"powergrid", "POWERGRID.NS", "Power Grid Corporation of India", "Power", "Power Transmission"},
	{"coal india", "COALINDIA.NS", "Coal India Limited", "Mining", "Coal"},
	{"dr reddy", "DRREDDY.NS", "Dr Reddys Laboratories Limited", "Pharmaceuticals", "Pharmaceuticals"},
	{"tech mahindra", "TECHM.NS", "Tech Mahindra Limited", "Information Technology", "Software Services"},
	{"hcl tech", "HCLTECH.NS", "HCL Technologies Limited", "Information Technology", "Software Services"},
	{"hcl", "HCLTECH.NS", "HCL Technologies Limited", "Information Technology", "Software Services"},
	{"adani", "ADANIENT.NS", "Adani Enterprises Limited", "Diversified", "Trading"},
	{"tata steel", "TATASTEEL.NS", "Tata Steel Limited", "Metals", "Steel"},
	{"jsw steel", "JSWSTEEL.NS", "JSW Steel Limited", "Metals", "Steel"},
	{"ultratech cement", "ULTRACEMCO.NS", "UltraTech Cement Limited", "Cement", "Cement"},
	{"ultratech", "ULTRACEMCO.NS", "UltraTech Cement Limited", "Cement", "Cement"},
	{"britannia", "BRITANNIA.NS", "Britannia Industries Limited", "Consumer Goods", "Packaged Foods"},
}

// Registry resolves free-text queries to symbols and serves directory facts.
type Registry struct {
	byName   map[string]Entry
	bySymbol map[string]Entry
	names    []string
}

// New builds the registry from the built-in directory.
func New() *Registry {
	r := &Registry{
		byName:   make(map[string]Entry, len(directory)),
		bySymbol: make(map[string]Entry),
	}
	for _, e := range directory {
		r.byName[e.Name] = e
		r.names = append(r.names, e.Name)
		if _, ok := r.bySymbol[e.Symbol]; !ok {
			r.bySymbol[e.Symbol] = e
		}
	}
	sort.Strings(r.names)
	return r
}

// Resolve maps a user query to a symbol. Lookup order: exact name, substring
// either way, closest fuzzy match above the cutoff. Unknown queries become an
// uppercase NSE symbol so live tiers still get a chance.
func (r *Registry) Resolve(query string) (symbol, matchedName string) {
	q := strings.ToLower(strings.TrimSpace(query))

	if e, ok := r.byName[q]; ok {
		return e.Symbol, e.Name
	}

	for _, name := range r.names {
		if strings.Contains(name, q) || strings.Contains(q, name) {
			return r.byName[name].Symbol, name
		}
	}

	if name, ok := r.closest(q); ok {
		return r.byName[name].Symbol, name
	}

	sym := strings.ToUpper(q)
	if !strings.HasSuffix(sym, ".NS") {
		sym += ".NS"
	}
	return sym, q
}

// closest returns the directory name most similar to the query, if the
// similarity clears the cutoff.
func (r *Registry) closest(q string) (string, bool) {
	best := ""
	bestSim := 0.0
	for _, name := range r.names {
		d := levenshtein.ComputeDistance(q, name)
		maxLen := len(q)
		if len(name) > maxLen {
			maxLen = len(name)
		}
		if maxLen == 0 {
			continue
		}
		sim := 1 - float64(d)/float64(maxLen)
		if sim > bestSim {
			bestSim = sim
			best = name
		}
	}
	if bestSim >= fuzzyCutoff {
		return best, true
	}
	return "", false
}

// Suggest returns up to limit suggestions whose name contains the query.
func (r *Registry) Suggest(query string, limit int) []Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Suggestion
	for _, name := range r.names {
		if !strings.Contains(name, q) {
			continue
		}
		e := r.byName[name]
		title := titleCase(name)
		out = append(out, Suggestion{
			Name:    title,
			Symbol:  e.Symbol,
			Display: title + " (" + e.Symbol + ")",
		})
		if len(out) >= limit {
			break
		}
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Lookup returns the directory entry for a symbol.
func (r *Registry) Lookup(symbol string) (Entry, bool) {
	e, ok := r.bySymbol[strings.ToUpper(symbol)]
	return e, ok
}

// Popular returns the fixed popular-stocks list.
func (r *Registry) Popular() []Entry {
	symbols := []string{
		"TCS.NS", "RELIANCE.NS", "INFY.NS", "HDFCBANK.NS",
		"ICICIBANK.NS", "SBIN.NS", "BAJFINANCE.NS", "ASIANPAINT.NS",
	}
	out := make([]Entry, 0, len(symbols))
	for _, s := range symbols {
		if e, ok := r.bySymbol[s]; ok {
			out = append(out, e)
		}
	}
	return out
}
