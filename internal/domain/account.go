package domain

// AccountType is the chart-of-accounts class reported by the remote service.
type AccountType int

const (
	AccountTypeAsset     AccountType = 1
	AccountTypeLiability AccountType = 2
	AccountTypeExpense   AccountType = 3
	AccountTypeRevenue   AccountType = 4
	AccountTypeEquity    AccountType = 5
)

// AccountFunctionType tags accounts with a special role (bank, VAT, receivables...).
type AccountFunctionType int

// Account represents a ledger account. Number is the stable external identifier used in
// raw import data, ID the internal reference used once resolved.
type Account struct {
	ID           int64
	Number       int64
	Name         string
	Currency     string
	Type         AccountType
	FunctionType *AccountFunctionType
}

// AccountRef references an account by internal id.
type AccountRef struct {
	ID int64
}

// AccountDirectory maps account numbers to account ids.
type AccountDirectory map[int64]int64

// NewAccountDirectory builds a directory from an account list. Later duplicates of a
// number overwrite earlier ones, matching the remote list order.
func NewAccountDirectory(accounts []Account) AccountDirectory {
	dir := make(AccountDirectory, len(accounts))
	for _, a := range accounts {
		dir[a.Number] = a.ID
	}
	return dir
}

// Resolve returns the account id for a number.
func (d AccountDirectory) Resolve(number int64) (int64, error) {
	id, ok := d[number]
	if !ok {
		return 0, &UnknownAccountError{Number: number}
	}
	return id, nil
}
