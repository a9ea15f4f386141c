package chat

import (
	"fmt"
	"regexp"
	"strings"

	"SonicChat/internal/market"
)

// priceFailureReply 在行情查询失败时返回给用户。
const priceFailureReply = "I'm sorry, I couldn't retrieve the token price information at this time. Please try again later."

// unknownSymbol 在消息中找不到代币符号时使用。
const unknownSymbol = "Unknown"

// 按顺序尝试的代币符号提取模式。
var symbolPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)price of ([a-zA-Z0-9]+)`),
	regexp.MustCompile(`(?i)price for ([a-zA-Z0-9]+)`),
	regexp.MustCompile(`(?i)([a-zA-Z0-9]+) price`),
	regexp.MustCompile(`(?i)worth of ([a-zA-Z0-9]+)`),
	regexp.MustCompile(`(?i)value of ([a-zA-Z0-9]+)`),
	regexp.MustCompile(`(?i)cost of ([a-zA-Z0-9]+)`),
	regexp.MustCompile(`(?i)rate for ([a-zA-Z0-9]+)`),
	regexp.MustCompile(`(?i)how much is ([a-zA-Z0-9]+)`),
}

// ExtractSymbol 从用户消息中提取代币符号并转为大写。
// 找不到时返回 "Unknown"。
func ExtractSymbol(text string) string {
	for _, p := range symbolPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.ToUpper(m[1])
		}
	}
	return unknownSymbol
}

// PriceReply 将行情信息格式化为面向用户的回复文本。
func PriceReply(symbol string, info market.PriceInfo) string {
	return fmt.Sprintf(
		"The current price of %s is $%v.\n\n24h Change: %v%%\nMarket Cap: %s\nVolume (24h): %s",
		symbol, info.Price, info.Change24h, info.MarketCap, info.Volume24h,
	)
}
