package extract

import "testing"

const demoMint = "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"

func TestExtractTokenRequiresAllThreeParts(t *testing.T) {
	// 名称与符号齐备，但没有合法的铸造地址。
	text := `I created a new token: MoonCat with symbol: MCAT for you.`
	if entities := Extract(text); len(entities) != 0 {
		t.Fatalf("expected no entities without mint address, got %d", len(entities))
	}
}

func TestExtractTokenFullMatch(t *testing.T) {
	text := `Done! I created a new token: MoonCat with symbol: MCAT.
The mint address is ` + demoMint + `.`
	entities := Extract(text)
	if len(entities) != 1 {
		t.Fatalf("expected exactly one entity, got %d", len(entities))
	}
	token := entities[0].Token
	if token == nil {
		t.Fatalf("expected token entity, got %+v", entities[0])
	}
	if token.Name != "MoonCat" {
		t.Fatalf("unexpected name: %q", token.Name)
	}
	if token.Symbol != "MCAT" {
		t.Fatalf("unexpected symbol: %q", token.Symbol)
	}
	if token.MintAddress != demoMint {
		t.Fatalf("unexpected mint address: %q", token.MintAddress)
	}
}

func TestExtractTokenQuotedName(t *testing.T) {
	text := `Your token called "Moon Cat Coin" is live, symbol: MOON, mint ` + demoMint
	entities := Extract(text)
	if len(entities) != 1 || entities[0].Token == nil {
		t.Fatalf("expected one token entity, got %+v", entities)
	}
	if entities[0].Token.Name != "Moon Cat Coin" {
		t.Fatalf("unexpected name: %q", entities[0].Token.Name)
	}
}

func TestExtractSymbolMustBeUppercase(t *testing.T) {
	text := `token called MoonCat, symbol: mcat, mint ` + demoMint
	for _, entity := range Extract(text) {
		if entity.Token != nil {
			t.Fatalf("lowercase symbol should not produce a token: %+v", entity.Token)
		}
	}
}

func TestExtractNFTWithPlaceholderImage(t *testing.T) {
	text := `I minted an NFT: "Sunset Ape" for you. Mint address: ` + demoMint
	entities := Extract(text)
	if len(entities) != 1 || entities[0].NFT == nil {
		t.Fatalf("expected one NFT entity, got %+v", entities)
	}
	nft := entities[0].NFT
	if nft.Name != "Sunset Ape" {
		t.Fatalf("unexpected NFT name: %q", nft.Name)
	}
	if nft.ImageURL != DefaultNFTImageURL {
		t.Fatalf("expected placeholder image, got %q", nft.ImageURL)
	}
}

func TestExtractNFTWithImageURL(t *testing.T) {
	text := `Created a new NFT: SunsetApe at ` + demoMint + `
Preview: https://cdn.example.com/nfts/sunset-ape.png`
	entities := Extract(text)
	if len(entities) != 1 || entities[0].NFT == nil {
		t.Fatalf("expected one NFT entity, got %+v", entities)
	}
	if entities[0].NFT.ImageURL != "https://cdn.example.com/nfts/sunset-ape.png" {
		t.Fatalf("unexpected image url: %q", entities[0].NFT.ImageURL)
	}
}

func TestExtractPlainChatProducesNothing(t *testing.T) {
	if entities := Extract("The current price of SOL is $256.35."); len(entities) != 0 {
		t.Fatalf("expected no entities, got %+v", entities)
	}
}

func TestExtractIgnoresNumericRuns(t *testing.T) {
	text := `token called MoonCat, symbol: MCAT, ref 12345678901234567890123456789012345`
	for _, entity := range Extract(text) {
		if entity.Token != nil {
			t.Fatalf("numeric run must not count as mint address: %+v", entity.Token)
		}
	}
}
