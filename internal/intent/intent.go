package intent

import "strings"

// Intent 表示一条用户消息被识别出的目的。
type Intent string

const (
	// PriceQuery 表示用户在询问某个代币的价格。
	PriceQuery Intent = "price_query"
	// SwapQuery 表示用户想要兑换代币。
	SwapQuery Intent = "swap_query"
	// GeneralChat 表示普通对话，交给大模型处理。
	GeneralChat Intent = "general_chat"
)

// ruleSet 将一组关键字绑定到一个意图，按声明顺序匹配。
type ruleSet struct {
	intent   Intent
	keywords []string
}

// rules 按优先级排列：价格查询的措辞更特定，先于兑换判断。
// 兑换关键字里包含 "for"、"to get" 这类日常介词，容易误伤价格提问。
var rules = []ruleSet{
	{
		intent: PriceQuery,
		keywords: []string{
			"price of", "token price", "how much is", "what is the price",
			"price for", "worth", "value of", "cost of", "rate for",
		},
	},
	{
		intent: SwapQuery,
		keywords: []string{
			"swap", "exchange", "trade", "convert", "switching",
			"change from", "change to", "for", "to get",
		},
	},
}

// Classify 判断一条消息的意图。大小写不敏感，无副作用。
func Classify(text string) Intent {
	lowered := strings.ToLower(text)
	for _, rule := range rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.intent
			}
		}
	}
	return GeneralChat
}
