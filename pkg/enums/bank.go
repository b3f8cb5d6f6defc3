package enums

import "fmt"

// Bank is one of the supported banks for bank-transfer payments. The list is
// closed; customers cannot add their own.
type Bank string

const (
	BankBarclays   Bank = "barclays"
	BankHSBC       Bank = "hsbc"
	BankLloyds     Bank = "lloyds"
	BankNatWest    Bank = "natwest"
	BankSantander  Bank = "santander"
	BankNationwide Bank = "nationwide"
	BankHalifax    Bank = "halifax"
	BankMonzo      Bank = "monzo"
	BankStarling   Bank = "starling"
)

var supportedBanks = []Bank{
	BankBarclays,
	BankHSBC,
	BankLloyds,
	BankNatWest,
	BankSantander,
	BankNationwide,
	BankHalifax,
	BankMonzo,
	BankStarling,
}

var bankDisplayNames = map[Bank]string{
	BankBarclays:   "Barclays",
	BankHSBC:       "HSBC",
	BankLloyds:     "Lloyds Bank",
	BankNatWest:    "NatWest",
	BankSantander:  "Santander",
	BankNationwide: "Nationwide",
	BankHalifax:    "Halifax",
	BankMonzo:      "Monzo",
	BankStarling:   "Starling Bank",
}

// SupportedBanks returns the closed list of banks in display order.
func SupportedBanks() []Bank {
	out := make([]Bank, len(supportedBanks))
	copy(out, supportedBanks)
	return out
}

// String implements fmt.Stringer.
func (b Bank) String() string {
	return string(b)
}

// DisplayName returns the human readable bank name.
func (b Bank) DisplayName() string {
	return bankDisplayNames[b]
}

// IsValid reports whether the bank is in the supported list.
func (b Bank) IsValid() bool {
	for _, candidate := range supportedBanks {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBank converts raw input into a Bank.
func ParseBank(value string) (Bank, error) {
	for _, candidate := range supportedBanks {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid bank %q", value)
}
