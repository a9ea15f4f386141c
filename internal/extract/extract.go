package extract

import (
	"regexp"
	"strings"
)

// DefaultNFTImageURL 在回复中没有出现图片链接时作为占位图。
const DefaultNFTImageURL = "/images/nft-placeholder.png"

// Token 描述从智能体回复中识别出的新建代币。
// 行情相关的数值字段入库时使用零值占位，后续由行情同步补齐。
type Token struct {
	Name        string
	Symbol      string
	MintAddress string
	Description string
	Metadata    string
	Price       float64
	MarketCap   float64
	Volume24h   float64
	Change24h   float64
}

// NFT 描述从智能体回复中识别出的新建 NFT。
type NFT struct {
	Name        string
	MintAddress string
	ImageURL    string
	Metadata    string
}

// Entity 是识别结果的标签联合，Token 与 NFT 二选一。
type Entity struct {
	Token *Token
	NFT   *NFT
}

var (
	// 名称模板按声明顺序尝试，带引号的形式优先。
	tokenNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)created a new token:?\s+"([^"]+)"`),
		regexp.MustCompile(`(?i)created a new token:?\s+([A-Za-z0-9_-]+)`),
		regexp.MustCompile(`(?i)token (?:called|named)\s+"([^"]+)"`),
		regexp.MustCompile(`(?i)token (?:called|named)\s+([A-Za-z0-9_-]+)`),
	}
	nftNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)created a new nft:?\s+"([^"]+)"`),
		regexp.MustCompile(`(?i)created a new nft:?\s+([A-Za-z0-9_-]+)`),
		regexp.MustCompile(`(?i)nft (?:called|named)\s+"([^"]+)"`),
		regexp.MustCompile(`(?i)nft (?:called|named)\s+([A-Za-z0-9_-]+)`),
		regexp.MustCompile(`(?i)minted (?:an? )?nft:?\s+"([^"]+)"`),
	}

	// 符号必须是 2-10 位大写字母或数字，须带 symbol 标签。
	symbolPattern = regexp.MustCompile(`(?i:symbol:?\s*)\(?([A-Z0-9]{2,10})\)?`)
	// 铸造地址是 32-44 位字母数字串，与 Solana 地址长度一致。
	mintPattern = regexp.MustCompile(`\b([A-Za-z0-9]{32,44})\b`)
	// 图片链接可选。
	imagePattern = regexp.MustCompile(`(https?://\S+\.(?:png|jpe?g|gif|webp|svg))`)
)

// Extract 扫描智能体回复，识别其中描述的新建代币与 NFT。
// 这是尽力而为的启发式提取：部分匹配直接丢弃而不是猜测，
// 措辞不在已知模板内的创建事件允许漏报。
func Extract(responseText string) []Entity {
	var entities []Entity
	if token, ok := extractToken(responseText); ok {
		entities = append(entities, Entity{Token: token})
	}
	if nft, ok := extractNFT(responseText); ok {
		entities = append(entities, Entity{NFT: nft})
	}
	return entities
}

// extractToken 要求名称、符号、铸造地址三者齐备，缺一不可。
func extractToken(text string) (*Token, bool) {
	name, ok := firstMatch(tokenNamePatterns, text)
	if !ok {
		return nil, false
	}
	symbolMatch := symbolPattern.FindStringSubmatch(text)
	if symbolMatch == nil {
		return nil, false
	}
	mint, ok := findMintAddress(text)
	if !ok {
		return nil, false
	}
	return &Token{
		Name:        name,
		Symbol:      symbolMatch[1],
		MintAddress: mint,
		Description: "",
		Metadata:    "{}",
	}, true
}

// extractNFT 要求名称与铸造地址，图片链接缺失时使用占位图。
func extractNFT(text string) (*NFT, bool) {
	name, ok := firstMatch(nftNamePatterns, text)
	if !ok {
		return nil, false
	}
	mint, ok := findMintAddress(text)
	if !ok {
		return nil, false
	}
	imageURL := DefaultNFTImageURL
	if imageMatch := imagePattern.FindStringSubmatch(text); imageMatch != nil {
		imageURL = imageMatch[1]
	}
	return &NFT{
		Name:        name,
		MintAddress: mint,
		ImageURL:    imageURL,
		Metadata:    "{}",
	}, true
}

func firstMatch(patterns []*regexp.Regexp, text string) (string, bool) {
	for _, pattern := range patterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			name := strings.TrimSpace(match[1])
			if name != "" {
				return name, true
			}
		}
	}
	return "", false
}

// findMintAddress 跳过纯数字串，避免把长数字误认成地址。
func findMintAddress(text string) (string, bool) {
	for _, match := range mintPattern.FindAllStringSubmatch(text, -1) {
		candidate := match[1]
		if strings.IndexFunc(candidate, func(r rune) bool {
			return r < '0' || r > '9'
		}) == -1 {
			continue
		}
		return candidate, true
	}
	return "", false
}
