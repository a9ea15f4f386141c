package market

import "context"

// PriceInfo 描述一个代币的行情快照。
type PriceInfo struct {
	Price     float64 `json:"price" yaml:"price"`
	Change24h float64 `json:"change_24h" yaml:"change_24h"`
	MarketCap string  `json:"market_cap" yaml:"market_cap"`
	Volume24h string  `json:"volume_24h" yaml:"volume_24h"`
}

// SwapQuote 描述一组代币对的兑换条件。Rate 的含义是 1 from = rate to。
type SwapQuote struct {
	Rate     float64 `json:"rate" yaml:"rate"`
	Fees     string  `json:"fees" yaml:"fees"`
	Slippage float64 `json:"slippage" yaml:"slippage"`
	Route    string  `json:"route" yaml:"route"`
}

// Source 定义了行情查询的统一接口。实现必须容忍未知的
// 代币与代币对，返回合成的兜底数据而不是报错。
type Source interface {
	GetPrice(ctx context.Context, symbol string) (PriceInfo, error)
	GetSwapQuote(ctx context.Context, fromSymbol, toSymbol string) (SwapQuote, error)
}
