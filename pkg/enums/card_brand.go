package enums

// CardBrand is the card network inferred from a card number prefix.
type CardBrand string

const (
	CardBrandVisa       CardBrand = "Visa"
	CardBrandMastercard CardBrand = "Mastercard"
	CardBrandAmex       CardBrand = "American Express"
	CardBrandDiscover   CardBrand = "Discover"
	CardBrandUnknown    CardBrand = "Unknown"
)

// String implements fmt.Stringer.
func (c CardBrand) String() string {
	return string(c)
}

// CVVLength returns the number of digits the brand's security code carries.
func (c CardBrand) CVVLength() int {
	if c == CardBrandAmex {
		return 4
	}
	return 3
}
