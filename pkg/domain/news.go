package domain

import "time"

// NewsItem is a single market news article used for digests
type NewsItem struct {
	Headline  string    `json:"headline"`
	Summary   string    `json:"summary"`
	URL       string    `json:"url"`
	Source    string    `json:"source"`
	Published time.Time `json:"datetime"`
}

// SymbolInfo describes a stock as reported by the market data provider
type SymbolInfo struct {
	Symbol   string `json:"symbol" validate:"required"`
	Company  string `json:"company"`
	Exchange string `json:"exchange"`
	Currency string `json:"currency"`
	Country  string `json:"country"`
}

// Confidence of a symbol mapping
type Confidence string

// allowed confidence levels
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Valid reports whether c is one of the allowed levels
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// SymbolMapping is the structured reply of the symbol-mapping generation task
type SymbolMapping struct {
	TradingViewSymbol string     `json:"tradingViewSymbol" jsonschema:"description=TradingView symbol in EXCHANGE:SYMBOL form"`
	Confidence        Confidence `json:"confidence" jsonschema:"enum=high,enum=medium,enum=low"`
	Reasoning         string     `json:"reasoning" jsonschema:"description=short explanation of the mapping"`
}
