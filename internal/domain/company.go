package domain

import "strings"

// Country ids known to the remote service.
type Country int

const CountrySwitzerland Country = 1

// Company is a counterparty of invoices and payables.
type Company struct {
	UUID string
	Name string
}

// Address belongs to a company and is what invoices are addressed to.
type Address struct {
	ID      int64
	Street  string
	City    string
	Zip     string
	Country Country
}

// PaymentProfileType distinguishes how a counterparty is paid.
type PaymentProfileType int

// PaymentProfile is a company's payment route onto one ledger account.
type PaymentProfile struct {
	ID          int64
	CompanyUUID string
	Account     AccountRef
	IBAN        string
	Type        PaymentProfileType
}

// PaymentProfileRef references a payment profile by id.
type PaymentProfileRef struct {
	ID int64
}

// SameRoute reports whether two profiles pay through the same account, iban and type.
func (p PaymentProfile) SameRoute(other PaymentProfile) bool {
	return p.Account.ID == other.Account.ID && p.IBAN == other.IBAN && p.Type == other.Type
}

// DuplicatePolicy decides what a lookup does when several records share the search key.
type DuplicatePolicy string

const (
	// DuplicateFirstMatch picks the first match in the order the directory returned.
	DuplicateFirstMatch DuplicatePolicy = "first"
	// DuplicateReject fails with ErrAmbiguousMatch.
	DuplicateReject DuplicatePolicy = "reject"
)

// MatchCompany finds the company with the exact given name. found is false when none
// matches.
func MatchCompany(companies []Company, name string, policy DuplicatePolicy) (match Company, found bool, err error) {
	var matches []Company
	for _, c := range companies {
		if c.Name == name {
			matches = append(matches, c)
		}
	}

	switch {
	case len(matches) == 0:
		return Company{}, false, nil
	case len(matches) > 1 && policy == DuplicateReject:
		uuids := make([]string, len(matches))
		for i, m := range matches {
			uuids[i] = m.UUID
		}
		return Company{}, false, &AmbiguousMatchError{Key: name, Candidates: uuids}
	default:
		return matches[0], true, nil
	}
}

// AmbiguousMatchError lists the records competing for one search key.
type AmbiguousMatchError struct {
	Key        string
	Candidates []string
}

func (e *AmbiguousMatchError) Error() string {
	return "more than one record matches " + `"` + e.Key + `": ` + strings.Join(e.Candidates, ", ")
}

func (e *AmbiguousMatchError) Is(target error) bool {
	return target == ErrAmbiguousMatch
}
