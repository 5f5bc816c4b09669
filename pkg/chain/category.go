package chain

import "strings"

// Category is the 21-valued compliance classification carried by an
// Address/Asset. Wire encoding is snake_case (§4.6); ParseCategory also
// accepts the backend-native PascalCase spelling, grounded on
// entities/category.rs's FromStr/Display arms (note the irregular casing on
// abbreviations: "OtcBroker", "Atm").
type Category int

const (
	CategoryNone Category = iota
	CategoryWalletService
	CategoryMerchantService
	CategoryMiningPool
	CategoryExchange
	CategoryDeFi
	CategoryOTCBroker
	CategoryATM
	CategoryGambling
	CategoryIllicitOrganization
	CategoryMixer
	CategoryDarknetService
	CategoryScam
	CategoryRansomware
	CategoryTheft
	CategoryCounterfeit
	CategoryTerroristFinancing
	CategorySanctions
	CategoryChildAbuse
	CategoryHacker
	CategoryHighRiskJurisdiction
)

var categorySnake = [...]string{
	"none", "wallet_service", "merchant_service", "mining_pool", "exchange",
	"defi", "otc_broker", "atm", "gambling", "illicit_organization", "mixer",
	"darknet_service", "scam", "ransomware", "theft", "counterfeit",
	"terrorist_financing", "sanctions", "child_abuse", "hacker",
	"high_risk_jurisdiction",
}

var categoryPascal = [...]string{
	"None", "WalletService", "MerchantService", "MiningPool", "Exchange",
	"DeFi", "OtcBroker", "Atm", "Gambling", "IllicitOrganization", "Mixer",
	"DarknetService", "Scam", "Ransomware", "Theft", "Counterfeit",
	"TerroristFinancing", "Sanctions", "ChildAbuse", "Hacker",
	"HighRiskJurisdiction",
}

// String emits the canonical snake_case spelling used on the wire (§4.6).
func (c Category) String() string {
	if int(c) < 0 || int(c) >= len(categorySnake) {
		return categorySnake[CategoryNone]
	}
	return categorySnake[c]
}

// Pascal emits the PascalCase alias, used nowhere on the wire but kept for
// parity with the backend-native spelling accepted by ParseCategory.
func (c Category) Pascal() string {
	if int(c) < 0 || int(c) >= len(categoryPascal) {
		return categoryPascal[CategoryNone]
	}
	return categoryPascal[c]
}

func ParseCategory(s string) (Category, error) {
	for i, v := range categorySnake {
		if strings.EqualFold(v, s) {
			return Category(i), nil
		}
	}
	for i, v := range categoryPascal {
		if strings.EqualFold(v, s) {
			return Category(i), nil
		}
	}
	return 0, InvalidInputError("invalid category: "+s, nil)
}

func CategoryFromUint8(v uint8) (Category, error) {
	if int(v) >= len(categorySnake) {
		return 0, ContractDataError("invalid category value", nil)
	}
	return Category(v), nil
}

func (c Category) MarshalJSON() ([]byte, error) { return []byte(`"` + c.String() + `"`), nil }

func (c *Category) UnmarshalJSON(data []byte) error {
	v, err := ParseCategory(trimQuotes(string(data)))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
