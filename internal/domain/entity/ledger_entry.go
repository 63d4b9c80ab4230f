package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerKind tipo de asiento simple. Cada tipo vive en su propia colección.
type LedgerKind string

const (
	LedgerAccount    LedgerKind = "account"    // saldos de cuentas (account_balances)
	LedgerReceivable LedgerKind = "receivable" // saldos por cobrar (balances_to_receive)
	LedgerExpense    LedgerKind = "expense"    // gastos (expenses)
)

// LedgerKinds todos los tipos soportados.
var LedgerKinds = []LedgerKind{LedgerAccount, LedgerReceivable, LedgerExpense}

// Valid indica si k es un tipo conocido.
func (k LedgerKind) Valid() bool {
	switch k {
	case LedgerAccount, LedgerReceivable, LedgerExpense:
		return true
	}
	return false
}

// Collection nombre de la colección en el store.
func (k LedgerKind) Collection() string {
	switch k {
	case LedgerAccount:
		return "account_balances"
	case LedgerReceivable:
		return "balances_to_receive"
	case LedgerExpense:
		return "expenses"
	}
	return ""
}

// LedgerEntry cuenta, saldo por cobrar o gasto. Sin relación con ventas ni stock.
// Label es el nombre de la cuenta, del cliente o del gasto según Kind.
type LedgerEntry struct {
	ID        string
	Kind      LedgerKind
	Label     string
	Amount    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
