package swap

import (
	"fmt"
	"regexp"
)

// Quote 描述一组待确认的兑换条件。Rate 的含义是 1 FromToken = Rate ToToken。
// 报价只保存在会话内存中，确认、取消或被新请求顶替时销毁。
type Quote struct {
	FromToken string  `json:"from_token"`
	ToToken   string  `json:"to_token"`
	Rate      float64 `json:"rate"`
	Fees      string  `json:"fees"`
	Slippage  float64 `json:"slippage"`
	Route     string  `json:"route"`
}

// ExecutionResult 保存一次兑换执行的结果，只由执行步骤创建。
type ExecutionResult struct {
	Success        bool    `json:"success"`
	TxHash         string  `json:"tx_hash"`
	AmountSent     float64 `json:"amount_sent"`
	AmountReceived float64 `json:"amount_received"`
	FeePaid        float64 `json:"fee_paid"`
}

// unknownToken 在无法从消息中解析出代币时作为占位符。
const unknownToken = "Unknown"

// pairPatterns 按顺序尝试，先匹配带 swap 动词的形式，再匹配裸代币对。
var pairPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)swap ([a-zA-Z0-9]+) (?:to|for) ([a-zA-Z0-9]+)`),
	regexp.MustCompile(`(?i)([a-zA-Z0-9]+) (?:to|for) ([a-zA-Z0-9]+)`),
}

// ParsePair 从用户消息中解析兑换代币对。两侧都解析失败时返回占位符。
func ParsePair(text string) (fromToken, toToken string) {
	for _, pattern := range pairPatterns {
		if match := pattern.FindStringSubmatch(text); len(match) >= 3 {
			return match[1], match[2]
		}
	}
	return unknownToken, unknownToken
}

// QuoteMessage 生成描述报价的助手消息。
func QuoteMessage(q Quote) string {
	return fmt.Sprintf(`Here's the current swap rate for %s to %s:

1 %s = %v %s

Estimated fees: $%s
Slippage: %v%%
Route: %s`,
		q.FromToken, q.ToToken,
		q.FromToken, q.Rate, q.ToToken,
		q.Fees, q.Slippage, q.Route,
	)
}

// SuccessMessage 生成兑换成功的助手消息。
func SuccessMessage(q Quote, result ExecutionResult) string {
	return fmt.Sprintf("✅ Swap completed successfully!\n\nTransaction Hash: `%s`\nAmount Sent: %v %s\nAmount Received: %.6f %s\nFee Paid: $%v",
		result.TxHash,
		result.AmountSent, q.FromToken,
		result.AmountReceived, q.ToToken,
		result.FeePaid,
	)
}

// CancelMessage 生成取消兑换的助手消息。
func CancelMessage() string {
	return "Swap cancelled. Is there anything else I can help you with?"
}

// FailureMessage 生成兑换执行失败的助手消息。
func FailureMessage() string {
	return "I'm sorry, there was an error executing the swap. Please try again later."
}
