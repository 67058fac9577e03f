// internal/models/brackets.go
package models

import "encoding/json"

// Bracket values are the literal strings the questionnaire submits. Anything
// else parses to the Unknown variant of its type.

type SpendBracket string

const (
	SpendUnder1K  SpendBracket = "<$1,000"
	Spend1KTo5K   SpendBracket = "$1,000-$5,000"
	Spend5KTo10K  SpendBracket = "$5,000-$10,000"
	Spend10KTo25K SpendBracket = "$10,000-$25,000"
	Spend25KPlus  SpendBracket = "$25,000+"
	SpendUnknown  SpendBracket = "unknown"
)

var SpendBrackets = []SpendBracket{SpendUnder1K, Spend1KTo5K, Spend5KTo10K, Spend10KTo25K, Spend25KPlus}

func ParseSpendBracket(s string) SpendBracket {
	for _, b := range SpendBrackets {
		if string(b) == s {
			return b
		}
	}
	return SpendUnknown
}

// Known reports whether b is one of SpendBrackets.
func (b SpendBracket) Known() bool {
	_, ok := b.Midpoint()
	return ok
}

// DefaultMonthlySpend is used for brackets outside the closed set.
const DefaultMonthlySpend = 3000

// Midpoint returns the nominal monthly spend of the bracket and whether the
// bracket was recognised.
func (b SpendBracket) Midpoint() (int, bool) {
	switch b {
	case SpendUnder1K:
		return 750, true
	case Spend1KTo5K:
		return 3000, true
	case Spend5KTo10K:
		return 7500, true
	case Spend10KTo25K:
		return 17500, true
	case Spend25KPlus:
		return 35000, true
	default:
		return DefaultMonthlySpend, false
	}
}

type RevenueBracket string

const (
	RevenueUnder2M  RevenueBracket = "Under $2M"
	Revenue2MTo5M   RevenueBracket = "$2M - $5M"
	Revenue5MTo10M  RevenueBracket = "$5M - $10M"
	Revenue10MTo20M RevenueBracket = "$10M - $20M"
	Revenue20MPlus  RevenueBracket = "$20M+"
	RevenueUnknown  RevenueBracket = "unknown"
)

var RevenueBrackets = []RevenueBracket{RevenueUnder2M, Revenue2MTo5M, Revenue5MTo10M, Revenue10MTo20M, Revenue20MPlus}

func ParseRevenueBracket(s string) RevenueBracket {
	for _, b := range RevenueBrackets {
		if string(b) == s {
			return b
		}
	}
	return RevenueUnknown
}

type CompanySize string

const (
	Size1To10    CompanySize = "1-10 employees"
	Size11To50   CompanySize = "11-50 employees"
	Size51To200  CompanySize = "51-200 employees"
	Size201To500 CompanySize = "201-500 employees"
	Size500Plus  CompanySize = "500+ employees"
	SizeUnknown  CompanySize = "unknown"
)

var CompanySizes = []CompanySize{Size1To10, Size11To50, Size51To200, Size201To500, Size500Plus}

func ParseCompanySize(s string) CompanySize {
	for _, c := range CompanySizes {
		if string(c) == s {
			return c
		}
	}
	return SizeUnknown
}

type UrgencyBracket string

const (
	UrgencyImmediate   UrgencyBracket = "Immediate (within 30 days)"
	UrgencyShortTerm   UrgencyBracket = "Short-term (1-3 months)"
	UrgencyMediumTerm  UrgencyBracket = "Medium-term (3-6 months)"
	UrgencyLongTerm    UrgencyBracket = "Long-term (6+ months)"
	UrgencyExploratory UrgencyBracket = "Exploratory (no timeline)"
	UrgencyUnknown     UrgencyBracket = "unknown"
)

var UrgencyBrackets = []UrgencyBracket{UrgencyImmediate, UrgencyShortTerm, UrgencyMediumTerm, UrgencyLongTerm, UrgencyExploratory}

func ParseUrgencyBracket(s string) UrgencyBracket {
	for _, u := range UrgencyBrackets {
		if string(u) == s {
			return u
		}
	}
	return UrgencyUnknown
}

type Industry string

const (
	IndustrySaaS                 Industry = "SaaS"
	IndustryProfessionalServices Industry = "Professional Services"
	IndustryTechnology           Industry = "Technology"
	IndustryFinancialServices    Industry = "Financial Services"
	IndustryHealthcare           Industry = "Healthcare"
	IndustryManufacturing        Industry = "Manufacturing"
	IndustryRetail               Industry = "Retail & E-commerce"
	IndustryEducation            Industry = "Education"
	IndustryOther                Industry = "Other"
	IndustryUnknown              Industry = "unknown"
)

var Industries = []Industry{
	IndustrySaaS, IndustryProfessionalServices, IndustryTechnology, IndustryFinancialServices,
	IndustryHealthcare, IndustryManufacturing, IndustryRetail, IndustryEducation, IndustryOther,
}

func ParseIndustry(s string) Industry {
	for _, i := range Industries {
		if string(i) == s {
			return i
		}
	}
	return IndustryUnknown
}

// UnmarshalJSON keeps the closed-set guarantee when a response is decoded
// straight into the struct, e.g. from a workflow variable.
func (b *SpendBracket) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*b = ParseSpendBracket(s)
	return nil
}

func (b *RevenueBracket) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*b = ParseRevenueBracket(s)
	return nil
}

func (c *CompanySize) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = ParseCompanySize(s)
	return nil
}

func (u *UrgencyBracket) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*u = ParseUrgencyBracket(s)
	return nil
}

func (i *Industry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*i = ParseIndustry(s)
	return nil
}
